// Package source opens cut inputs and reads them one line at a time.
package source

import "fmt"

// Stdin is the input name that stands for standard input.
const Stdin = "-"

// Location points at a line of a named input.
type Location struct {
	Source string // input name as given on the command line
	Line   int    // 1-based, 0 when the whole source is meant
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.Source
	}
	return fmt.Sprintf("%s:%d", l.Source, l.Line)
}

// IsZero reports whether the location names no source.
func (l Location) IsZero() bool {
	return l.Source == "" && l.Line == 0
}
