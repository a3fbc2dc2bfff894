// Package driver runs a Selection over a list of inputs.
//
// Inputs are opened lazily in argument order, read one line at a time and
// closed before the next one is opened. Each input yields an Outcome; an
// input that fails to open or read is reported through the diag.Reporter
// and the run moves on to the next one.
package driver
