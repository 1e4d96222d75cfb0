package main

import (
	"errors"
	"io"
	"os"
	"strings"
)

// renderStatus prints the full markup document for the current player state.
// Degraded states (player closed, nothing playing, errors) still produce a
// document; the host rerenders every interval.
func renderStatus(out io.Writer, player Player, cfg Config) error {
	w := NewWriter(out)

	song, err := player.Now()
	switch {
	case err == nil:
		writeSong(w, cfg, song)
	case errors.Is(err, errPlayerNotRunning):
		writeLauncher(w, cfg)
	case errors.Is(err, errNoSong):
		writeIdle(w, cfg)
	default:
		writeError(w, cfg, err)
	}

	return w.Err()
}

// writeSong renders the ticker, the track details, the transport controls and
// the artwork for a loaded track.
func writeSong(w *Writer, cfg Config, song Song) {
	var art Artwork
	if cfg.Artwork.Enabled && song.ArtURL != "" {
		a, err := loadArtwork(cfg, song.ArtURL, cfg.UI.ColorMode == "album")
		if err != nil {
			debugf("artwork: %v", err)
		} else {
			art = a
		}
	}

	ticker := song.Title
	if a := song.PrimaryArtist(); a != "" {
		ticker = a + " - " + song.Title
	}
	ticker = truncateText(ticker, cfg.UI.MaxWidth)

	line := NewLine(ticker).
		Attr("iconName", cfg.statusIcon(song.Status)).
		Bool("useMarkup", false).
		Bool("unescape", true)
	if c := accentColor(cfg, art); c != "" {
		line.Attr("color", c)
	}
	w.Line(line)
	w.Separator()

	infoLine := func(body string) {
		w.Line(NewLine(body).
			Attr("color", cfg.UI.InfoColor).
			Bool("useMarkup", false))
	}
	infoLine("Song Title: " + song.Title)
	infoLine("Album: " + song.Album)
	if len(song.Artists) > 1 {
		infoLine("Artists: " + song.ArtistLine())
	} else {
		infoLine("Artist: " + song.PrimaryArtist())
	}

	writeControls(w, cfg, song.Status)
	w.Separator()

	if art.Encoded != "" {
		w.Line(NewLine("").
			Attr("image", art.Encoded).
			Int("imageWidth", cfg.Artwork.Width))
	}
}

// accentColor picks the ticker color: a fixed accent when configured, the
// album-art color in album mode, none otherwise.
func accentColor(cfg Config, art Artwork) string {
	if cfg.UI.ColorMode == "album" && art.Color != "" {
		return art.Color
	}
	return cfg.UI.AccentColor
}

// writeControls renders the clickable transport entries. The bold half of the
// Play/Pause label marks the action a click performs.
func writeControls(w *Writer, cfg Config, status PlaybackStatus) {
	playPause := "<b>Play</b>/Pause"
	ppIcon := cfg.Icons.Play
	if status == StatusPlaying {
		playPause = "Play/<b>Pause</b>"
		ppIcon = cfg.Icons.Pause
	}

	control := func(body, icon string, cmd Command) {
		w.Line(NewLine(body).
			Attr("iconName", icon).
			Attr("bash", controlCommand(cmd)).
			Bool("terminal", false))
	}
	control(playPause, ppIcon, CmdPlayPause)
	control("Previous", cfg.Icons.Backward, CmdPrevious)
	control("Next", cfg.Icons.Forward, CmdNext)
	control("Show "+playerDisplayName(cfg), cfg.Icons.Player, CmdRaise)
}

// writeLauncher renders the document shown when the player is not running.
func writeLauncher(w *Writer, cfg Config) {
	name := playerDisplayName(cfg)
	w.Line(NewLine(name).Attr("iconName", cfg.Icons.Player))
	w.Separator()
	w.Line(NewLine("Open " + name).
		Attr("bash", cfg.Player.LaunchCommand).
		Bool("terminal", false))
}

// writeIdle renders the document shown when the player has no track loaded.
func writeIdle(w *Writer, cfg Config) {
	w.Line(NewLine("Nothing Playing").Attr("iconName", cfg.Icons.Stop))
}

// writeError renders an unexpected failure into the dropdown so it is
// visible without digging through logs.
func writeError(w *Writer, cfg Config, err error) {
	w.Line(NewLine("Something went wrong!").Attr("iconName", cfg.Icons.Error))
	w.Separator()
	w.Text("<b>Error:</b>")
	w.Line(NewLine(strings.ReplaceAll(err.Error(), "\n", "\\n")).
		Attr("font", "monospace").
		Bool("useMarkup", false))
}

// playerDisplayName derives a human name from the well-known bus name,
// e.g. org.mpris.MediaPlayer2.spotify -> Spotify.
func playerDisplayName(cfg Config) string {
	name := strings.TrimPrefix(cfg.Player.BusName, "org.mpris.MediaPlayer2.")
	if i := strings.Index(name, "."); i > 0 {
		// Instance suffixes like spotify.instance123
		name = name[:i]
	}
	if name == "" {
		return "Player"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// controlCommand builds the shell command a menu entry runs, calling back
// into this binary.
func controlCommand(cmd Command) string {
	exe, err := os.Executable()
	if err != nil {
		exe = "spotargos"
	}
	return exe + " ctl " + string(cmd)
}
