package observ

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(2 * time.Millisecond)

	parse := timer.Begin("parse")
	timer.End(parse, "")
	src := timer.Begin("source a.txt")
	timer.End(src, "3 lines")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[1].Note != "3 lines" || report.Phases[1].DurationMS != 2 {
		t.Fatalf("unexpected phase %+v", report.Phases[1])
	}
	if report.TotalMS != 4 {
		t.Fatalf("TotalMS = %v, want 4", report.TotalMS)
	}

	var buf bytes.Buffer
	if err := timer.WriteSummary(&buf); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "timings:\n") || !strings.Contains(out, "// 3 lines") || !strings.Contains(out, "total") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestTimerNilSafe(t *testing.T) {
	var timer *Timer
	idx := timer.Begin("x")
	timer.End(idx, "")
	if r := timer.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported phases")
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(5, "ignored")
	if len(timer.Report().Phases) != 0 {
		t.Fatalf("unexpected phases")
	}
}
