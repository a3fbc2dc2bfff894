package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cutr/internal/diag"
	"cutr/internal/source"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.IOOpenFailed, source.Location{Source: "/home/user/data/missing.txt"}, "open: no such file or directory").
		WithNote(source.Location{}, "remaining inputs were processed"))
	bag.Add(diag.NewError(diag.ListInvalidToken, source.Location{}, `illegal list value: "a"`))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Prefix: "cutr", PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "cutr: missing.txt: error IO4001: open: no such file or directory\n" +
		"  note: remaining inputs were processed\n" +
		"cutr: error LST2002: illegal list value: \"a\"\n"
	if buf.String() != want {
		t.Fatalf("Pretty output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyPathModes(t *testing.T) {
	tests := []struct {
		mode     PathMode
		contains string
	}{
		{PathModeAsGiven, "/home/user/data/missing.txt:"},
		{PathModeAbsolute, "/home/user/data/missing.txt:"},
		{PathModeBasename, " missing.txt:"},
		{PathModeRelative, "missing.txt:"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{Prefix: "cutr", PathMode: tt.mode, BaseDir: "/home/user/data"}
			if err := Pretty(&buf, sampleBag(), opts); err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Fatalf("output %q does not contain %q", buf.String(), tt.contains)
			}
		})
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes in %q", buf.String())
	}
	buf.Reset()
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: false}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected ANSI escapes in %q", buf.String())
	}
}

func TestPrettyWidth(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOReadFailed, source.Location{Source: "f"}, strings.Repeat("x", 200)))
	bag.Add(diag.NewError(diag.IOReadFailed, source.Location{Source: "g"}, "dropped"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, PrettyOpts{Width: 40}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if len(lines[0]) != 40 || !strings.HasSuffix(lines[0], "...") {
		t.Fatalf("line not truncated to 40 cells: %q (%d)", lines[0], len(lines[0]))
	}
	if lines[1] != "... and 1 more diagnostics" {
		t.Fatalf("summary line = %q", lines[1])
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("Count = %d, len = %d", out.Count, len(out.Diagnostics))
	}
	first := out.Diagnostics[0]
	if first.Code != "IO4001" || first.Severity != "error" || first.Location.Source != "missing.txt" {
		t.Fatalf("unexpected first diagnostic %+v", first)
	}
	if len(first.Notes) != 1 {
		t.Fatalf("notes = %+v", first.Notes)
	}
}

func TestJSONMax(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), JSONOpts{Max: 1})
	if out.Count != 1 || out.Dropped != 1 {
		t.Fatalf("Count=%d Dropped=%d, want 1 and 1", out.Count, out.Dropped)
	}
}

func TestParsePathMode(t *testing.T) {
	for _, s := range []string{"given", "auto", "absolute", "relative", "basename"} {
		m, err := ParsePathMode(s)
		if err != nil {
			t.Fatalf("ParsePathMode(%q): %v", s, err)
		}
		if m.String() != s {
			t.Fatalf("ParsePathMode(%q).String() = %q", s, m.String())
		}
	}
	if _, err := ParsePathMode("weird"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
