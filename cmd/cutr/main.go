package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cutr/internal/prof"
)

// errReported означает, что диагностика уже напечатана и main
// должен только выставить код выхода.
var errReported = errors.New("diagnostics reported")

type rootOptions struct {
	fields string
	bytes  string
	chars  string
	delim  string

	onlyDelimited bool
	normalize     bool

	configPath     string
	color          string
	diagFormat     string
	pathMode       string
	maxDiagnostics int

	traceOutput string
	traceLevel  string
	timings     bool

	profile prof.Config

	showVersion bool
	full        bool
}

// newRootCmd собирает корневую команду. Каждый вызов получает свой набор флагов.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "cutr [flags] [FILE...]",
		Short: "Print selected parts of lines from each FILE to standard output",
		Long: `cutr prints selected bytes, characters or fields of every input line.

With no FILE, or when FILE is -, read standard input. LIST is made up of
one range, or many ranges separated by commas: N, N-, N-M or -M, counted
from 1. Selected parts are printed in input order, each at most once.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&opts.fields, "fields", "f", "", "select only these fields")
	flags.StringVarP(&opts.bytes, "bytes", "b", "", "select only these bytes")
	flags.StringVarP(&opts.chars, "chars", "c", "", "select only these characters")
	flags.StringVarP(&opts.delim, "delim", "d", "\t", "use DELIM instead of TAB as the field delimiter")
	flags.BoolVarP(&opts.onlyDelimited, "only-delimited", "s", false, "do not print lines without delimiters")
	flags.BoolVar(&opts.normalize, "normalize", false, "apply Unicode NFC to lines before selecting characters or fields")

	// Окружение запуска
	flags.StringVar(&opts.configPath, "config", "", "config file (default: nearest cutr.toml)")
	flags.StringVar(&opts.color, "color", "auto", "colorize diagnostics (auto|on|off)")
	flags.StringVar(&opts.diagFormat, "diag-format", "pretty", "diagnostics format (pretty|json)")
	flags.StringVar(&opts.pathMode, "path-mode", "given", "how to print input paths (given|auto|absolute|relative|basename)")
	flags.IntVar(&opts.maxDiagnostics, "max-diagnostics", 100, "maximum number of diagnostics to keep")
	flags.StringVar(&opts.traceOutput, "trace", "", "write trace events to PATH (- for stderr)")
	flags.StringVar(&opts.traceLevel, "trace-level", "off", "trace level (off|error|source|line)")
	flags.BoolVar(&opts.timings, "timings", false, "print phase timings to stderr")
	flags.StringVar(&opts.profile.CPUPath, "cpu-profile", "", "write a CPU profile to PATH")
	flags.StringVar(&opts.profile.MemPath, "mem-profile", "", "write a heap profile to PATH on exit")
	flags.StringVar(&opts.profile.TracePath, "runtime-trace", "", "write a Go runtime trace to PATH")

	flags.BoolVarP(&opts.showVersion, "version", "V", false, "print version information and exit")
	flags.BoolVar(&opts.full, "full", false, "with --version, show every recorded bit of build metadata")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\nTry '%s --help' for more information.", err, c.Name())
	})
	return cmd
}

// main runs the root command and exits with status 1 when it fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "cutr: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
