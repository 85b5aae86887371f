package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	timer := NewTimer()

	idx := timer.Begin("parse")
	time.Sleep(time.Millisecond)
	timer.End(idx, "3 blocks")

	timer.Track("rules", func() string { return "" })

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 blocks" {
		t.Errorf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[0].DurationMS <= 0 {
		t.Errorf("duration = %v", report.Phases[0].DurationMS)
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Errorf("total %v < first phase %v", report.TotalMS, report.Phases[0].DurationMS)
	}

	summary := timer.Summary()
	if !strings.Contains(summary, "parse") || !strings.Contains(summary, "total") {
		t.Errorf("summary = %q", summary)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(5, "ignored") // не должен паниковать
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("phases = %+v", got.Phases)
	}
}
