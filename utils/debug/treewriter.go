// Package debug has helpers for human readable dumps of internal structures.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) pad(depth int) {
	tw.w.WriteString(strings.Repeat(indent, depth))
}

// Line writes formatted line at requested depth.
func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "name=value" line, value is formatted with %v.
func (tw TreeWriter) Field(depth int, name string, value any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, "%s=%v\n", name, value)
}

// TextBlock writes labeled text, quoting it so control characters and
// whitespace stay visible.
func (tw TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}
