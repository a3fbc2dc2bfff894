package driver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"cutr/internal/diag"
	"cutr/internal/extract"
	"cutr/internal/observ"
	"cutr/internal/source"
	"cutr/internal/trace"
)

// ErrWrite wraps failures of the output writer. They abort the run.
var ErrWrite = errors.New("write output")

// Request describes one run.
type Request struct {
	Selection *extract.Selection
	// Inputs in processing order; empty means stdin.
	Inputs   []string
	Opener   source.Opener // nil: source.FS{}
	Output   io.Writer
	Reporter diag.Reporter // nil: diag.Nop
	Timer    *observ.Timer // nil: no timings

	// LineBuffered flushes after every record (interactive output).
	LineBuffered bool
}

// Run extracts the selection from every input in order and writes one
// record per emitted line. An input that cannot be opened or read is
// reported and skipped; the remaining inputs are still processed. The
// returned error is non-nil only when output could not be written or ctx
// was cancelled.
func Run(ctx context.Context, req Request) (Result, error) {
	if req.Selection == nil {
		return Result{}, fmt.Errorf("missing selection")
	}
	if req.Output == nil {
		return Result{}, fmt.Errorf("missing output writer")
	}
	if req.Opener == nil {
		req.Opener = source.FS{}
	}
	if req.Reporter == nil {
		req.Reporter = diag.Nop
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "run", 0)

	names := source.Names(req.Inputs)
	res := Result{Outcomes: make([]Outcome, 0, len(names))}
	w := bufio.NewWriter(req.Output)

	var runErr error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		out, err := runSource(ctx, &req, name, w, runSpan.ID())
		res.Outcomes = append(res.Outcomes, out)
		if err != nil {
			runErr = err
			break
		}
	}
	if err := w.Flush(); err != nil && runErr == nil {
		runErr = writeFailed(req.Reporter, err)
	}

	runSpan.
		WithExtra("sources", strconv.Itoa(len(res.Outcomes))).
		WithExtra("failed", strconv.Itoa(res.Failed())).
		End("")
	return res, runErr
}

// runSource processes one input. Read problems land in the Outcome; only
// write failures and cancellation are returned as errors.
func runSource(ctx context.Context, req *Request, name string, w *bufio.Writer, parent uint64) (Outcome, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeSource, "source", parent)
	phase := req.Timer.Begin("source " + name)
	out := Outcome{Name: name}

	defer func() {
		span.WithExtra("lines", strconv.Itoa(out.Lines)).
			WithExtra("emitted", strconv.Itoa(out.Emitted)).
			End(name)
		req.Timer.End(phase, strconv.Itoa(out.Lines)+" lines")
	}()

	rc, err := req.Opener.Open(name)
	if err != nil {
		out.Err = err
		trace.Error(tracer, trace.ScopeSource, "open", span.ID(), err)
		diag.ReportError(req.Reporter, diag.IOOpenFailed, source.Location{Source: name}, causeMessage(err)).Emit()
		return out, nil
	}
	defer rc.Close()

	done := ctx.Done()
	lr := source.NewLineReader(rc)
	for lr.Next() {
		select {
		case <-done:
			return out, ctx.Err()
		default:
		}

		out.Lines++
		trace.Point(tracer, trace.ScopeLine, "line", span.ID(), strconv.Itoa(lr.Line()))

		record, ok := req.Selection.Line(lr.Bytes())
		if !ok {
			continue
		}
		if err := writeRecord(w, record, req.LineBuffered); err != nil {
			return out, writeFailed(req.Reporter, err)
		}
		out.Emitted++
	}
	if err := lr.Err(); err != nil {
		out.Err = err
		trace.Error(tracer, trace.ScopeSource, "read", span.ID(), err)
		loc := source.Location{Source: name, Line: lr.Line() + 1}
		diag.ReportError(req.Reporter, diag.IOReadFailed, loc, causeMessage(err)).Emit()
	}
	return out, nil
}

func writeRecord(w *bufio.Writer, record []byte, flush bool) error {
	if _, err := w.Write(record); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	if flush {
		return w.Flush()
	}
	return nil
}

func writeFailed(r diag.Reporter, err error) error {
	diag.ReportError(r, diag.IOWriteFailed, source.Location{}, err.Error()).Emit()
	return fmt.Errorf("%w: %w", ErrWrite, err)
}

// causeMessage strips the "open <path>:" prefix of *fs.PathError since the
// location already names the input.
func causeMessage(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
