package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how input paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths, shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
	// PathModeAsGiven prints the name exactly as passed on the command line.
	PathModeAsGiven
)

func (m PathMode) String() string {
	switch m {
	case PathModeAuto:
		return "auto"
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	case PathModeAsGiven:
		return "given"
	}
	return "unknown"
}

// ParsePathMode converts a flag/config value to PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "given":
		return PathModeAsGiven, nil
	case "auto":
		return PathModeAuto, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "relative":
		return PathModeRelative, nil
	case "basename":
		return PathModeBasename, nil
	}
	return PathModeAsGiven, fmt.Errorf("invalid path mode %q (expected given|auto|absolute|relative|basename)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Prefix    string // напр. "cutr", печатается перед каждой строкой
	PathMode  PathMode
	BaseDir   string // для PathModeRelative, пусто - рабочая директория
	Width     int    // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}
