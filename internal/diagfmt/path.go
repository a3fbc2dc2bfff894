package diagfmt

import "cutr/internal/source"

func formatPath(name string, mode PathMode, baseDir string) string {
	if mode == PathModeAsGiven {
		return name
	}
	return source.FormatPath(name, mode.String(), baseDir)
}

func formatLocation(loc source.Location, mode PathMode, baseDir string) string {
	loc.Source = formatPath(loc.Source, mode, baseDir)
	return loc.String()
}
