package pnm

import (
	"bytes"
	"fmt"
	"strings"
)

// lineScanner walks the data lines of a plain Netpbm file. The first line
// (the magic tag) is never returned, nor are blank lines or lines whose
// first non-blank character is '#'.
type lineScanner struct {
	lines [][]byte
	pos   int // index of the current line; 0 is the magic line
	cur   string
}

func newLineScanner(data []byte) *lineScanner {
	return &lineScanner{lines: bytes.Split(data, []byte{'\n'})}
}

// next advances to the next data line and reports whether there is one.
func (s *lineScanner) next() bool {
	for s.pos+1 < len(s.lines) {
		s.pos++
		line := strings.TrimRight(string(s.lines[s.pos]), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		s.cur = line
		return true
	}
	s.cur = ""
	return false
}

// text returns the current line without its line terminator.
func (s *lineScanner) text() string { return s.cur }

// errorf builds a FormatError pointing at the current line.
func (s *lineScanner) errorf(f Format, format string, args ...any) *FormatError {
	return &FormatError{Format: f, Line: s.pos + 1, Reason: fmt.Sprintf(format, args...)}
}
