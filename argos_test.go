package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestLineString tests markup line rendering
func TestLineString(t *testing.T) {
	tests := []struct {
		name     string
		line     *Line
		expected string
	}{
		{
			name:     "bare body",
			line:     NewLine("Nothing Playing"),
			expected: "Nothing Playing",
		},
		{
			name:     "single attribute",
			line:     NewLine("Nothing Playing").Attr("iconName", "media-playback-stop"),
			expected: "Nothing Playing | iconName=media-playback-stop",
		},
		{
			name: "attribute order is preserved",
			line: NewLine("Song").
				Attr("iconName", "media-playback-start").
				Attr("color", "#888888"),
			expected: "Song | iconName=media-playback-start color=#888888",
		},
		{
			name:     "value with spaces is quoted",
			line:     NewLine("Open").Attr("bash", "spotargos ctl play-pause"),
			expected: "Open | bash='spotargos ctl play-pause'",
		},
		{
			name:     "boolean attribute",
			line:     NewLine("Next").Bool("terminal", false),
			expected: "Next | terminal=false",
		},
		{
			name:     "integer attribute",
			line:     NewLine("").Attr("image", "aGVsbG8=").Int("imageWidth", 400),
			expected: " | image=aGVsbG8= imageWidth=400",
		},
		{
			name:     "body with pipe is left alone",
			line:     NewLine("Artist | Sessions").Attr("color", "#888888"),
			expected: "Artist | Sessions | color=#888888",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.String(); got != tt.expected {
				t.Errorf("Line.String() = %q; want %q", got, tt.expected)
			}
		})
	}
}

// TestQuoteValue tests the space-quoting rule
func TestQuoteValue(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"spotify", "spotify"},
		{"", ""},
		{"two words", "'two words'"},
		{"#888888", "#888888"},
		{"a b c", "'a b c'"},
	}
	for _, tt := range tests {
		if got := quoteValue(tt.in); got != tt.expected {
			t.Errorf("quoteValue(%q) = %q; want %q", tt.in, got, tt.expected)
		}
	}
}

// TestWriter tests document assembly
func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Line(NewLine("Radiohead - Weird Fishes").Attr("iconName", "media-playback-start"))
	w.Separator()
	w.Text("<b>Error:</b>")
	assertNoError(t, w.Err())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assertEqual(t, len(lines), 3, "line count")
	assertEqual(t, lines[0], "Radiohead - Weird Fishes | iconName=media-playback-start", "ticker line")
	assertEqual(t, lines[1], "---", "separator")
	assertEqual(t, lines[2], "<b>Error:</b>", "text line")
}

// TestWriterPropagatesError tests that a failed write surfaces through Err
func TestWriterPropagatesError(t *testing.T) {
	w := NewWriter(failingWriter{})
	w.Text("anything")
	assertError(t, w.Err(), "write to failing writer")

	// Subsequent writes keep the first error
	w.Separator()
	assertError(t, w.Err(), "error is sticky")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}
