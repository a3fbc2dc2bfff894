// Package diag defines the diagnostic model shared by the CLI and the
// extraction driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string ID (CFG*, LST*, IO*), a short message, the primary source.Location
// and optional notes. Producers emit through a Reporter; BagReporter
// collects into a Bag that the CLI renders with internal/diagfmt once the
// run is over.
//
// Package diag performs no formatting or IO.
package diag
