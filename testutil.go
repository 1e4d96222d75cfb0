package main

import (
	"image"
	"image/color"
	"testing"
	"time"
)

// testConfig returns a Config populated with the shipped defaults, without
// going through viper (which holds process-global state).
func testConfig() Config {
	var cfg Config
	cfg.Player.BusName = "org.mpris.MediaPlayer2.spotify"
	cfg.Player.LaunchCommand = "spotify"
	cfg.Icons.Player = "spotify-client"
	cfg.Icons.Play = "media-playback-start"
	cfg.Icons.Pause = "media-playback-pause"
	cfg.Icons.Stop = "media-playback-stop"
	cfg.Icons.Backward = "media-skip-backward"
	cfg.Icons.Forward = "media-skip-forward"
	cfg.Icons.Error = "dialog-warning"
	cfg.UI.InfoColor = "#888888"
	cfg.UI.ColorMode = "fixed"
	cfg.UI.MaxWidth = 45
	cfg.Artwork.Enabled = true
	cfg.Artwork.Width = 400
	cfg.Artwork.FallbackBaseURL = "https://i.scdn.co/image/"
	cfg.HTTP.TimeoutMs = 5000
	cfg.HTTP.RetryMax = 2
	cfg.Timing.UIRefreshMs = 100
	cfg.Timing.DataFetchMs = 1000
	return cfg
}

// testSong returns a playing track with every field set.
func testSong() Song {
	return Song{
		Title:    "Weird Fishes/Arpeggi",
		Artists:  []string{"Radiohead"},
		Album:    "In Rainbows",
		TrackID:  "/com/spotify/track/abc123",
		ArtURL:   "https://open.spotify.com/image/ab67616d",
		Length:   5*time.Minute + 18*time.Second,
		Position: 1 * time.Minute,
		Status:   StatusPlaying,
	}
}

// fakePlayer is a Player stand-in for rendering tests.
type fakePlayer struct {
	song       Song
	err        error
	controlled []Command
	controlErr error
}

func (f *fakePlayer) Now() (Song, error) { return f.song, f.err }

func (f *fakePlayer) Control(c Command) error {
	f.controlled = append(f.controlled, c)
	return f.controlErr
}

func (f *fakePlayer) Close() error { return nil }

// generateTestImage creates a solid-color test image
func generateTestImage(width, height int, fillColor color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fillColor)
		}
	}
	return img
}

// assertError is a test helper that checks if an error occurred and fails the test if not
func assertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Errorf("Expected error: %s, got nil", msg)
	}
}

// assertNoError is a test helper that fails the test if an error occurred
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// assertEqual is a generic test helper for comparing values
func assertEqual(t *testing.T, got, want interface{}, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", msg, got, want)
	}
}

// isValidHexColor checks if a string is a valid hex color (e.g., "#RRGGBB")
func isValidHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		ch := c[i]
		if !((ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')) {
			return false
		}
	}
	return true
}
