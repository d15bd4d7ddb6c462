//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

const unnamedFile = "_unnamed_"

// CleanFileName makes single path segment out of arbitrary text: separators
// and control characters are removed, so are leading dots to avoid producing
// hidden files.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == os.PathSeparator || sym == os.PathListSeparator || unicode.IsControl(sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimSpace(strings.TrimLeft(out, "."))
	if len(out) == 0 {
		return unnamedFile
	}
	return out
}

// EnableColorOutput reports whether stream is attached to terminal.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
