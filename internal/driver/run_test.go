package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"cutr/internal/diag"
	"cutr/internal/extract"
	"cutr/internal/observ"
	"cutr/internal/ranges"
	"cutr/internal/source"
	"cutr/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func fieldsSel(list string, delim rune) *extract.Selection {
	return extract.NewSelection(extract.ModeFields, ranges.MustParse(list), delim, false, false)
}

func TestRunContinuesAfterMissingInput(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "one.csv", "a,b,c\nd,e,f\n")
	missing := filepath.Join(dir, "two.csv")
	third := writeFile(t, dir, "three.csv", "g,h,i\n")

	bag := diag.NewBag(diag.DefaultMax)
	var out bytes.Buffer
	res, err := Run(context.Background(), Request{
		Selection: fieldsSel("1,3", ','),
		Inputs:    []string{first, missing, third},
		Output:    &out,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "a,c\nd,f\ng,i\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if len(res.Outcomes) != 3 || res.Failed() != 1 || res.Lines() != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !errors.Is(res.Outcomes[1].Err, os.ErrNotExist) {
		t.Fatalf("Outcomes[1].Err = %v, want ErrNotExist", res.Outcomes[1].Err)
	}
	if bag.Len() != 1 {
		t.Fatalf("bag has %d diagnostics, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.IOOpenFailed || d.Primary.Source != missing {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if strings.Contains(d.Message, missing) {
		t.Fatalf("message repeats the path: %q", d.Message)
	}
}

func TestRunStdinDefault(t *testing.T) {
	var out bytes.Buffer
	sel := extract.NewSelection(extract.ModeBytes, ranges.MustParse("2-"), extract.DefaultDelimiter, false, false)
	res, err := Run(context.Background(), Request{
		Selection: sel,
		Opener:    source.FS{Stdin: strings.NewReader("abcdef\r\n\nxy")},
		Output:    &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "bcdef\n\ny\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	if len(res.Outcomes) != 1 || res.Outcomes[0].Name != source.Stdin {
		t.Fatalf("unexpected outcomes %+v", res.Outcomes)
	}
}

func TestRunOnlyDelimited(t *testing.T) {
	var out bytes.Buffer
	sel := extract.NewSelection(extract.ModeFields, ranges.MustParse("2"), '\t', true, false)
	res, err := Run(context.Background(), Request{
		Selection: sel,
		Opener:    source.FS{Stdin: strings.NewReader("abc\nx\ty\n")},
		Output:    &out,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "y\n" {
		t.Fatalf("output = %q, want y", out.String())
	}
	if o := res.Outcomes[0]; o.Lines != 2 || o.Emitted != 1 {
		t.Fatalf("outcome = %+v", o)
	}
}

func TestRunReadErrorKeepsEarlierLines(t *testing.T) {
	boom := errors.New("device gone")
	opener := source.OpenerFunc(func(name string) (io.ReadCloser, error) {
		if name == "bad" {
			return io.NopCloser(io.MultiReader(strings.NewReader("a,b\n"), iotest.ErrReader(boom))), nil
		}
		return io.NopCloser(strings.NewReader("c,d\n")), nil
	})
	bag := diag.NewBag(10)
	var out bytes.Buffer
	res, err := Run(context.Background(), Request{
		Selection: fieldsSel("2", ','),
		Inputs:    []string{"bad", "good"},
		Opener:    opener,
		Output:    &out,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "b\nd\n" {
		t.Fatalf("output = %q", out.String())
	}
	if !errors.Is(res.Outcomes[0].Err, boom) || res.Outcomes[1].Err != nil {
		t.Fatalf("unexpected outcomes %+v", res.Outcomes)
	}
	d := bag.Items()[0]
	if d.Code != diag.IOReadFailed || d.Primary.Line != 2 || d.Message != "device gone" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunWriteFailureIsFatal(t *testing.T) {
	bag := diag.NewBag(10)
	_, err := Run(context.Background(), Request{
		Selection:    fieldsSel("1", ','),
		Inputs:       []string{"a", "b"},
		Opener:       source.OpenerFunc(func(string) (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("x\n")), nil }),
		Output:       failWriter{},
		Reporter:     diag.BagReporter{Bag: bag},
		LineBuffered: true,
	})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Run error = %v, want ErrWrite", err)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.IOWriteFailed {
		t.Fatalf("unexpected diagnostics %+v", bag.Items())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	res, err := Run(ctx, Request{
		Selection: fieldsSel("1", ','),
		Opener:    source.FS{Stdin: strings.NewReader("a\n")},
		Output:    &out,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(res.Outcomes) != 0 || out.Len() != 0 {
		t.Fatalf("expected nothing processed, got %+v / %q", res, out.String())
	}
}

func TestRunValidatesRequest(t *testing.T) {
	if _, err := Run(context.Background(), Request{Output: io.Discard}); err == nil {
		t.Fatalf("expected error for missing selection")
	}
	if _, err := Run(context.Background(), Request{Selection: fieldsSel("1", ',')}); err == nil {
		t.Fatalf("expected error for missing output")
	}
}

func TestRunTracesSources(t *testing.T) {
	var traceBuf bytes.Buffer
	tr := trace.NewStreamTracer(&traceBuf, trace.LevelSource, trace.FormatNDJSON)
	ctx := trace.WithTracer(context.Background(), tr)

	opener := source.OpenerFunc(func(name string) (io.ReadCloser, error) {
		if name == "missing" {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader("a\nb\n")), nil
	})
	timer := observ.NewTimer()
	_, err := Run(ctx, Request{
		Selection: fieldsSel("1", ','),
		Inputs:    []string{"x", "missing"},
		Opener:    opener,
		Output:    io.Discard,
		Timer:     timer,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	type event struct {
		Kind   string            `json:"kind"`
		Scope  string            `json:"scope"`
		Name   string            `json:"name"`
		Detail string            `json:"detail"`
		Extra  map[string]string `json:"extra"`
	}
	var events []event
	for _, line := range strings.Split(strings.TrimSpace(traceBuf.String()), "\n") {
		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("unmarshal %q: %v", line, err)
		}
		events = append(events, ev)
	}
	// run begin, x begin, x end, missing begin, open error, missing end, run end
	if len(events) != 7 {
		t.Fatalf("got %d events: %+v", len(events), events)
	}
	if events[2].Kind != "end" || events[2].Extra["lines"] != "2" || events[2].Detail != "x" {
		t.Fatalf("unexpected source end %+v", events[2])
	}
	if events[4].Kind != "error" || events[4].Name != "open" {
		t.Fatalf("unexpected error event %+v", events[4])
	}
	if events[6].Extra["failed"] != "1" {
		t.Fatalf("unexpected run end %+v", events[6])
	}

	if phases := timer.Report().Phases; len(phases) != 2 || phases[0].Name != "source x" {
		t.Fatalf("unexpected phases %+v", phases)
	}
}
