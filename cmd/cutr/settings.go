package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cutr/internal/diag"
	"cutr/internal/diagfmt"
	"cutr/internal/extract"
	"cutr/internal/ranges"
	"cutr/internal/trace"
)

// envSettings is everything around the extraction itself: how diagnostics
// look and where trace events go.
type envSettings struct {
	color       bool
	diagFormat  string
	pathMode    diagfmt.PathMode
	traceLevel  trace.Level
	traceOutput string
}

func defaultEnv() envSettings {
	return envSettings{diagFormat: "pretty", pathMode: diagfmt.PathModeAsGiven}
}

// pick returns the flag value when the flag was set on the command line,
// then the config value when the file defines it, then the flag default.
func pick(cmd *cobra.Command, flag, flagValue string, cfg *loadedConfig, cfgValue string, key ...string) string {
	if !cmd.Flags().Changed(flag) && cfg.has(key...) {
		return cfgValue
	}
	return flagValue
}

func pickBool(cmd *cobra.Command, flag string, flagValue bool, cfg *loadedConfig, cfgValue bool, key ...string) bool {
	if !cmd.Flags().Changed(flag) && cfg.has(key...) {
		return cfgValue
	}
	return flagValue
}

// resolveEnv merges flags with the config file. The returned settings are
// usable for printing diagnostics even when some values were rejected.
func (o *rootOptions) resolveEnv(cmd *cobra.Command, cfg *loadedConfig) (envSettings, []error) {
	env := defaultEnv()
	var errs []error

	colorMode := strings.ToLower(pick(cmd, "color", o.color, cfg, cfg.Values.Output.Color, "output", "color"))
	switch colorMode {
	case "on":
		env.color = true
	case "off":
	case "auto":
		env.color = isTerminal(cmd.ErrOrStderr())
	default:
		errs = append(errs, fmt.Errorf("invalid color mode %q (must be auto, on or off)", colorMode))
	}

	format := strings.ToLower(pick(cmd, "diag-format", o.diagFormat, cfg, cfg.Values.Output.DiagFormat, "output", "diag_format"))
	switch format {
	case "pretty", "json":
		env.diagFormat = format
	default:
		errs = append(errs, fmt.Errorf("unsupported diagnostics format %q (must be pretty or json)", format))
	}

	pm, err := diagfmt.ParsePathMode(pick(cmd, "path-mode", o.pathMode, cfg, cfg.Values.Output.PathMode, "output", "path_mode"))
	if err != nil {
		errs = append(errs, err)
	} else {
		env.pathMode = pm
	}

	levelSet := cmd.Flags().Changed("trace-level") || cfg.has("trace", "level")
	level, err := trace.ParseLevel(pick(cmd, "trace-level", o.traceLevel, cfg, cfg.Values.Trace.Level, "trace", "level"))
	if err != nil {
		errs = append(errs, err)
	}
	env.traceOutput = pick(cmd, "trace", o.traceOutput, cfg, cfg.Values.Trace.Output, "trace", "output")
	// --trace без уровня включает трассировку по файлам
	if env.traceOutput != "" && !levelSet {
		level = trace.LevelSource
	}
	env.traceLevel = level

	return env, errs
}

// selectionOptions builds extract.Options; a mode is requested only when its
// flag was given, even with an empty value.
func (o *rootOptions) selectionOptions(cmd *cobra.Command, cfg *loadedConfig) extract.Options {
	flags := cmd.Flags()
	var opts extract.Options
	if flags.Changed("bytes") {
		opts.Bytes = &o.bytes
	}
	if flags.Changed("chars") {
		opts.Chars = &o.chars
	}
	if flags.Changed("fields") {
		opts.Fields = &o.fields
	}
	switch {
	case flags.Changed("delim"):
		opts.Delimiter = &o.delim
	case cfg.has("cut", "delimiter"):
		d := cfg.Values.Cut.Delimiter
		opts.Delimiter = &d
	}
	opts.OnlyDelimited = pickBool(cmd, "only-delimited", o.onlyDelimited, cfg, cfg.Values.Cut.OnlyDelimited, "cut", "only_delimited")
	opts.Normalize = pickBool(cmd, "normalize", o.normalize, cfg, cfg.Values.Cut.Normalize, "cut", "normalize")
	return opts
}

// selectionCode maps extract.New errors to diagnostics codes.
func selectionCode(err error) diag.Code {
	switch {
	case errors.Is(err, extract.ErrNoMode):
		return diag.CfgNoMode
	case errors.Is(err, extract.ErrMultipleModes):
		return diag.CfgMultipleModes
	case errors.Is(err, extract.ErrBadDelimiter):
		return diag.CfgBadDelimiter
	case errors.Is(err, ranges.ErrEmpty):
		return diag.ListEmpty
	case errors.Is(err, ranges.ErrInvalidToken):
		return diag.ListInvalidToken
	default:
		return diag.CfgBadValue
	}
}
