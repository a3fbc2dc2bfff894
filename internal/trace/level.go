package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only failures
	LevelSource              // driver + per-input spans
	LevelLine                // everything including per-line events
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelSource:
		return "source"
	case LevelLine:
		return "line"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "source":
		return LevelSource, nil
	case "line":
		return LevelLine, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|source|line)", s)
	}
}

// ShouldEmit reports whether an event of the given kind and scope passes
// this level.
func (l Level) ShouldEmit(kind Kind, scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return kind == KindError
	case LevelSource:
		return kind == KindError || scope <= ScopeSource
	case LevelLine:
		return true
	}
	return false
}
