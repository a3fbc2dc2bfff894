package source

import (
	"os"
	"path/filepath"
	"strings"
)

// FormatPath renders an input name for diagnostics.
// mode: "absolute", "relative", "basename", "auto".
// baseDir is only used by "relative"; empty means the working directory.
// Stdin is never rewritten.
func FormatPath(name, mode, baseDir string) string {
	if name == Stdin || name == "" {
		return name
	}
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(name); err == nil {
			return normalizePath(abs)
		}
		return name

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		return relativePath(name, baseDir)

	case "basename":
		return filepath.Base(name)

	case "auto":
		// короткие и относительные пути как есть, длинные абсолютные - basename
		if len(name) < 40 || !filepath.IsAbs(name) {
			return name
		}
		return filepath.Base(name)

	default:
		return name
	}
}

// relativePath falls back to the absolute path when name lies outside base.
func relativePath(name, base string) string {
	abs, err := filepath.Abs(name)
	if err != nil {
		return name
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return normalizePath(abs)
	}
	rel, err := filepath.Rel(absBase, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return normalizePath(abs)
	}
	return normalizePath(rel)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
