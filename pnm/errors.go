package pnm

import (
	"errors"
	"fmt"
)

// ErrFormat is returned when the data does not start with the magic tag of
// the requested format. It signals a format mismatch, not corrupt data.
var ErrFormat = errors.New("pnm: not a plain PBM or PGM image")

// FormatError describes malformed image data.
type FormatError struct {
	Format Format
	// Line is the 1-based line number of the offending line, or 0 when the
	// problem is not tied to a line (such as a short sample count).
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("pnm: invalid %s data: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("pnm: invalid %s data at line %d: %s", e.Format, e.Line, e.Reason)
}
