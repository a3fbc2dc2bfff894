package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cutr/internal/diag"
	"cutr/internal/diagfmt"
	"cutr/internal/driver"
	"cutr/internal/extract"
	"cutr/internal/observ"
	"cutr/internal/source"
)

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	if o.showVersion {
		colored := o.color == "on" || (o.color == "auto" && isTerminal(stdout))
		renderVersionPretty(stdout, collectVersionInfo(), o.full, colored)
		return nil
	}

	var timer *observ.Timer
	if o.timings {
		timer = observ.NewTimer()
	}
	setupPhase := timer.Begin("setup")

	bag := diag.NewBag(o.maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	cfg, cfgErr := loadConfig(o.configPath, wd)
	if cfgErr != nil {
		diag.ReportError(reporter, diag.CfgLoadFailed, source.Location{}, cfgErr.Error()).Emit()
		cfg = &loadedConfig{}
	}
	env, envErrs := o.resolveEnv(cmd, cfg)
	for _, err := range envErrs {
		diag.ReportError(reporter, diag.CfgBadValue, source.Location{Source: cfg.Path}, err.Error()).Emit()
	}
	if cfgErr != nil || len(envErrs) > 0 {
		return o.finish(cmd, bag, env, wd, timer, true)
	}

	sel, err := extract.New(o.selectionOptions(cmd, cfg))
	if err != nil {
		diag.ReportError(reporter, selectionCode(err), source.Location{}, err.Error()).Emit()
		return o.finish(cmd, bag, env, wd, timer, true)
	}

	cleanup, err := setupTracing(cmd, env)
	if err != nil {
		diag.ReportError(reporter, diag.CfgBadValue, source.Location{}, err.Error()).Emit()
		return o.finish(cmd, bag, env, wd, timer, true)
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd, o.profile)
	if err != nil {
		diag.ReportError(reporter, diag.CfgBadValue, source.Location{}, err.Error()).Emit()
		return o.finish(cmd, bag, env, wd, timer, true)
	}
	defer stopProfiling()
	timer.End(setupPhase, sel.Mode.String()+" "+sel.Ranges.String())

	res, runErr := driver.Run(cmd.Context(), driver.Request{
		Selection:    sel,
		Inputs:       args,
		Opener:       source.FS{Stdin: cmd.InOrStdin()},
		Output:       stdout,
		Reporter:     reporter,
		Timer:        timer,
		LineBuffered: isTerminal(stdout),
	})
	if runErr != nil && !errors.Is(runErr, driver.ErrWrite) {
		// отмена: остальные входы не обработаны
		diag.ReportError(reporter, diag.UnknownCode, source.Location{}, runErr.Error()).
			WithNote(source.Location{}, fmt.Sprintf("processed %d of %d inputs", len(res.Outcomes), len(source.Names(args)))).
			Emit()
	}
	return o.finish(cmd, bag, env, wd, timer, runErr != nil)
}

// finish prints collected diagnostics and timings to stderr. Per-input
// failures alone do not make the run fail.
func (o *rootOptions) finish(cmd *cobra.Command, bag *diag.Bag, env envSettings, wd string, timer *observ.Timer, fatal bool) error {
	stderr := cmd.ErrOrStderr()
	if bag.Len() > 0 || bag.Dropped() > 0 {
		if err := renderDiagnostics(stderr, bag, env, wd); err != nil {
			return fmt.Errorf("failed to print diagnostics: %w", err)
		}
	}
	if timer != nil {
		if err := timer.WriteSummary(stderr); err != nil {
			return fmt.Errorf("failed to print timings: %w", err)
		}
	}
	if fatal {
		return errReported
	}
	return nil
}

func renderDiagnostics(w io.Writer, bag *diag.Bag, env envSettings, wd string) error {
	bag.Sort()
	if env.diagFormat == "json" {
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{
			PathMode:     env.pathMode,
			BaseDir:      wd,
			IncludeNotes: true,
		})
	}
	return diagfmt.Pretty(w, bag, diagfmt.PrettyOpts{
		Color:     env.color,
		Prefix:    "cutr",
		PathMode:  env.pathMode,
		BaseDir:   wd,
		Width:     terminalWidth(w),
		ShowNotes: true,
	})
}

// terminalWidth returns 0 (no truncation) unless w is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
