package main

import (
	"errors"
	"strings"
	"time"
)

// PlaybackStatus mirrors the MPRIS PlaybackStatus property values.
type PlaybackStatus string

const (
	StatusPlaying PlaybackStatus = "Playing"
	StatusPaused  PlaybackStatus = "Paused"
	StatusStopped PlaybackStatus = "Stopped"
)

// Command is a transport command understood by the player.
type Command string

const (
	CmdPlayPause Command = "play-pause"
	CmdPlay      Command = "play"
	CmdPause     Command = "pause"
	CmdNext      Command = "next"
	CmdPrevious  Command = "previous"
	CmdRaise     Command = "raise"
)

// Commands lists every supported transport command.
var Commands = []Command{CmdPlayPause, CmdPlay, CmdPause, CmdNext, CmdPrevious, CmdRaise}

// ParseCommand maps a CLI argument to a Command.
func ParseCommand(s string) (Command, error) {
	for _, c := range Commands {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.New("unknown command: " + s)
}

var (
	// errPlayerNotRunning means the well-known bus name has no owner.
	errPlayerNotRunning = errors.New("player is not running")
	// errNoSong means the player is up but has no usable track loaded.
	errNoSong = errors.New("no song playing")
	// errUnsupported is returned by the stub on platforms without a session bus.
	errUnsupported = errors.New("media player control is not supported on this platform")
)

// Song holds the now-playing state read from the player.
type Song struct {
	Title    string
	Artists  []string
	Album    string
	TrackID  string
	ArtURL   string
	Length   time.Duration
	Position time.Duration
	Status   PlaybackStatus
}

// PrimaryArtist returns the first artist, or "" when none were reported.
func (s Song) PrimaryArtist() string {
	if len(s.Artists) == 0 {
		return ""
	}
	return s.Artists[0]
}

// ArtistLine joins all artists for display.
func (s Song) ArtistLine() string {
	return strings.Join(s.Artists, ", ")
}

// Playing reports whether the track is actively playing.
func (s Song) Playing() bool {
	return s.Status == StatusPlaying
}

// Progress returns the playback position as a 0..1 fraction.
func (s Song) Progress() float64 {
	if s.Length <= 0 {
		return 0
	}
	p := float64(s.Position) / float64(s.Length)
	if p > 1 {
		p = 1
	}
	return p
}

// Player is the narrow contract against the media player. The concrete
// implementation lives in the per-platform files.
type Player interface {
	// Now returns the current song. Returns errPlayerNotRunning when the
	// player is not on the bus and errNoSong when nothing is loaded.
	Now() (Song, error)
	// Control invokes a transport command on the player.
	Control(cmd Command) error
	// Close releases the bus connection.
	Close() error
}
