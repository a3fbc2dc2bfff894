package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cutr/internal/diag"
)

type palette struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	path   *color.Color
	code   *color.Color
	note   *color.Color
	prefix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		path:   color.New(color.Bold),
		code:   color.New(color.FgHiBlack),
		note:   color.New(color.FgBlue),
		prefix: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.code, p.note, p.prefix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид, по одной строке:
//
//	[<prefix>: ]<location>: <sev> <CODE>: <message>
//
// location опускается, если пуст. Заметки печатаются с отступом при
// ShowNotes. Если часть диагностик не поместилась в Bag, в конце
// печатается сводка.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		var sb strings.Builder
		if opts.Prefix != "" {
			sb.WriteString(p.prefix.Sprint(opts.Prefix))
			sb.WriteString(": ")
		}
		if !d.Primary.IsZero() {
			sb.WriteString(p.path.Sprint(formatLocation(d.Primary, opts.PathMode, opts.BaseDir)))
			sb.WriteString(": ")
		}
		sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
		sb.WriteString(" ")
		sb.WriteString(p.code.Sprint(d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(truncate(d.Message, opts.Width, runewidth.StringWidth(stripped(opts, d))))
		sb.WriteString("\n")

		if opts.ShowNotes {
			for _, n := range d.Notes {
				sb.WriteString("  ")
				sb.WriteString(p.note.Sprint("note"))
				sb.WriteString(": ")
				if !n.Where.IsZero() {
					sb.WriteString(formatLocation(n.Where, opts.PathMode, opts.BaseDir))
					sb.WriteString(": ")
				}
				sb.WriteString(n.Msg)
				sb.WriteString("\n")
			}
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	if bag.Dropped() > 0 {
		if _, err := fmt.Fprintf(w, "... and %d more diagnostics\n", bag.Dropped()); err != nil {
			return err
		}
	}
	return nil
}

// stripped returns the uncolored header printed before the message.
func stripped(opts PrettyOpts, d diag.Diagnostic) string {
	var sb strings.Builder
	if opts.Prefix != "" {
		sb.WriteString(opts.Prefix + ": ")
	}
	if !d.Primary.IsZero() {
		sb.WriteString(formatLocation(d.Primary, opts.PathMode, opts.BaseDir) + ": ")
	}
	sb.WriteString(d.Severity.String() + " " + d.Code.ID() + ": ")
	return sb.String()
}

// truncate fits msg into width minus the header width, measured in
// terminal cells.
func truncate(msg string, width, used int) string {
	if width <= 0 {
		return msg
	}
	avail := width - used
	if avail <= 3 {
		avail = 4
	}
	if runewidth.StringWidth(msg) <= avail {
		return msg
	}
	return runewidth.Truncate(msg, avail, "...")
}
