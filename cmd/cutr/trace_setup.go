package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cutr/internal/trace"
)

// setupTracing initializes the tracer described by env and attaches it to
// the command context. It returns a cleanup function that flushes and closes it.
func setupTracing(cmd *cobra.Command, env envSettings) (func(), error) {
	if env.traceLevel == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	cfg := trace.Config{
		Level:      env.traceLevel,
		OutputPath: env.traceOutput,
	}
	if env.traceOutput == "" || env.traceOutput == "-" {
		// stderr команды не закрываем
		cfg.Output = struct{ io.Writer }{cmd.ErrOrStderr()}
	}

	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
