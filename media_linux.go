//go:build linux
// +build linux

package main

import (
	"fmt"
	"time"

	"github.com/Pauloo27/go-mpris"
	"github.com/godbus/dbus/v5"
)

const mprisObjectPath = "/org/mpris/MediaPlayer2"

// mprisPlayer talks to a single MPRIS player over the D-Bus session bus.
type mprisPlayer struct {
	conn    *dbus.Conn
	player  *mpris.Player
	busName string
}

// NewPlayer connects to the session bus and binds to the configured
// well-known player name.
func NewPlayer(busName string) (Player, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &mprisPlayer{
		conn:    conn,
		player:  mpris.New(conn, busName),
		busName: busName,
	}, nil
}

func (m *mprisPlayer) Close() error {
	// The shared session bus connection is owned by the godbus package,
	// closing it would break other users in the same process.
	return nil
}

// running reports whether the player owns its well-known name on the bus.
func (m *mprisPlayer) running() (bool, error) {
	var owned bool
	err := m.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, m.busName).Store(&owned)
	if err != nil {
		return false, fmt.Errorf("checking bus name owner: %w", err)
	}
	return owned, nil
}

func (m *mprisPlayer) Now() (Song, error) {
	owned, err := m.running()
	if err != nil {
		return Song{}, err
	}
	if !owned {
		return Song{}, errPlayerNotRunning
	}

	md, err := m.player.GetMetadata()
	if err != nil {
		return Song{}, fmt.Errorf("reading metadata: %w", err)
	}

	song := songFromMetadata(md)
	if song.Title == "" {
		return Song{}, errNoSong
	}

	status, err := m.player.GetPlaybackStatus()
	if err != nil {
		return Song{}, fmt.Errorf("reading playback status: %w", err)
	}
	song.Status = PlaybackStatus(status)

	// Position is best-effort: some players do not implement it.
	if pos, err := m.position(); err == nil {
		song.Position = pos
	}

	return song, nil
}

// position reads the Position property directly; it is an int64 microsecond
// count per the MPRIS spec.
func (m *mprisPlayer) position() (time.Duration, error) {
	obj := m.conn.Object(m.busName, mprisObjectPath)
	v, err := obj.GetProperty("org.mpris.MediaPlayer2.Player.Position")
	if err != nil {
		return 0, err
	}
	us, ok := v.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected Position type %T", v.Value())
	}
	return time.Duration(us) * time.Microsecond, nil
}

func (m *mprisPlayer) Control(cmd Command) error {
	owned, err := m.running()
	if err != nil {
		return err
	}
	if !owned {
		return errPlayerNotRunning
	}

	switch cmd {
	case CmdPlayPause:
		err = m.player.PlayPause()
	case CmdPlay:
		err = m.player.Play()
	case CmdPause:
		err = m.player.Pause()
	case CmdNext:
		err = m.player.Next()
	case CmdPrevious:
		err = m.player.Previous()
	case CmdRaise:
		err = m.player.Raise()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", cmd, err)
	}
	return nil
}
