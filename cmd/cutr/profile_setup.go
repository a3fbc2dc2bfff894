package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cutr/internal/prof"
)

// setupProfiling enables the runtime profilers requested by flags. The
// returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command, cfg prof.Config) (func(), error) {
	if !cfg.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "cutr: failed to write profiles: %v\n", err)
		}
	}, nil
}
