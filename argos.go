package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Argos/BitBar markup: each line is a body optionally followed by
// ` | key=value ...` attributes, with `---` separating the ticker from the
// dropdown. Attribute values containing spaces are wrapped in single quotes.

// attr is a single key=value markup attribute. Attributes keep insertion
// order so output is deterministic.
type attr struct {
	key   string
	value string
}

// Line is one line of markup under construction.
type Line struct {
	body  string
	attrs []attr
}

// NewLine starts a markup line. An empty body is valid (used for
// attribute-only lines such as the artwork line).
func NewLine(body string) *Line {
	return &Line{body: body}
}

// Attr appends a string attribute.
func (l *Line) Attr(key, value string) *Line {
	l.attrs = append(l.attrs, attr{key: key, value: value})
	return l
}

// Bool appends a boolean attribute as "true"/"false".
func (l *Line) Bool(key string, v bool) *Line {
	return l.Attr(key, strconv.FormatBool(v))
}

// Int appends an integer attribute.
func (l *Line) Int(key string, v int) *Line {
	return l.Attr(key, strconv.Itoa(v))
}

// String renders the line in markup form, without a trailing newline.
func (l *Line) String() string {
	if len(l.attrs) == 0 {
		return l.body
	}
	parts := make([]string, 0, len(l.attrs))
	for _, a := range l.attrs {
		parts = append(parts, a.key+"="+quoteValue(a.value))
	}
	return l.body + " | " + strings.Join(parts, " ")
}

// quoteValue wraps values containing spaces in single quotes, the quoting
// rule the markup dialect understands.
func quoteValue(v string) string {
	if strings.ContainsRune(v, ' ') {
		return "'" + v + "'"
	}
	return v
}

// Writer emits markup lines to an underlying stream.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w for markup output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Line writes one markup line.
func (w *Writer) Line(l *Line) {
	w.print(l.String())
}

// Text writes a bare line with no attributes.
func (w *Writer) Text(body string) {
	w.print(body)
}

// Separator writes the ticker/dropdown separator.
func (w *Writer) Separator() {
	w.print("---")
}

func (w *Writer) print(s string) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.w, s)
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}
