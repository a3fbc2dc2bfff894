// Package trace provides leveled event tracing for cutr runs.
//
// Tracing is off by default and enabled from the command line:
//
//	cutr -f 2 --trace=- --trace-level=source a.txt b.txt
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: failed inputs only
//   - LevelSource: driver span, one span per input, failures
//   - LevelLine: all of the above plus one event per input line
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeSource, "source", parentID)
//	defer span.End("")
package trace
