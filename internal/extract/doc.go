// Package extract applies a canonical range set to single lines of text.
//
// A Selection fixes one of three modes for the whole run:
//
//   - ModeBytes slices the raw bytes of the line. A range may end inside a
//     multi-byte character; the partial bytes are emitted unchanged.
//   - ModeChars slices Unicode characters. Each character is kept intact.
//   - ModeFields splits the line on a single-character delimiter and joins
//     the selected fields with the same delimiter. Lines that contain no
//     delimiter are passed through whole unless OnlyDelimited is set.
//
// Selections are built with New (from user input) or NewSelection (from
// parsed parts) and are safe for concurrent use once built.
package extract
