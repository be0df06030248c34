package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/caddr/pkg/advisor"
	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

func newPrinter(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	var buf bytes.Buffer
	return &PrettyPrint{Out: &buf, Width: 20}, &buf
}

func TestDayPrintsGoalBlocksAndJournal(t *testing.T) {
	pp, buf := newPrinter(t)
	daily := recurrence.Rule{Recurrence: recurrence.Daily}
	done := routine.Task{ID: "t1", Title: "Stretch", Rule: daily, CompletedDates: []string{"2024-03-13"}, StartTime: "07:00", Duration: 10}
	open := routine.Task{ID: "t2", Title: "Read", Rule: daily, Priority: routine.PriorityHigh}
	pp.Day(app.DayView{
		Date:     "2024-03-13",
		Goal:     "Ship it",
		Reminder: "08:30",
		Blocks: []overlay.Scheduled{{
			Block: routine.Block{ID: "b1", Title: "Morning", Rule: daily},
			Tasks: []overlay.ScheduledTask{{Task: done}, {Task: open}},
		}},
		Journal: routine.DayRoutine{Note: "calm"},
		Perf:    analytics.DayPerf{Date: "2024-03-13", Scheduled: 2, Done: 1, Percent: 50},
	})
	out := buf.String()
	for _, want := range []string{"2024-03-13 · 50%", "○ Ship it (08:30)", "Morning - 2", "✘ Stretch", "07:00 · 10 min", "✷ ● Read", "calm"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCollapsedBlockHidesTasks(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Block("2024-03-13", overlay.Scheduled{
		Block: routine.Block{ID: "b1", Title: "Evening", IsCollapsed: true},
		Tasks: []overlay.ScheduledTask{{Task: routine.Task{ID: "t", Title: "Hidden"}}},
	})
	if strings.Contains(buf.String(), "Hidden") {
		t.Fatalf("expected collapsed block to hide tasks, got %q", buf.String())
	}
}

func TestAdviceWraps(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Advice(&advisor.Advice{Advice: "one two three four five six seven eight", PowerTask: "Run"})
	lines := strings.Split(buf.String(), "\n")
	if len(lines[0]) > 20 {
		t.Fatalf("expected wrapped first line, got %q", lines[0])
	}
	if !strings.Contains(buf.String(), "Power task: Run") {
		t.Fatalf("expected power task, got %q", buf.String())
	}
}

func TestNilAdviceSaysUnavailable(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Advice(nil)
	if !strings.Contains(buf.String(), "No suggestion available.") {
		t.Fatalf("expected unavailable notice, got %q", buf.String())
	}
}

func TestStatsTable(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Stats(analytics.Stats{
		Start: "2024-03-11", End: "2024-03-13", Average: 67, TotalScheduled: 6, TotalDone: 4, Streak: 2,
		Best:   analytics.BestDay{Date: "2024-03-12", Percent: 100},
		Blocks: []analytics.BlockStat{{Title: "Morning", Appearances: 3, Validated: 2, Rate: 67}},
	})
	out := buf.String()
	for _, want := range []string{"67%", "4 / 6", "2024-03-12 (100%)", "Morning"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestProfileBar(t *testing.T) {
	pp, buf := newPrinter(t)
	pp.Profile(app.Profile{XP: 75, Level: 2, Rank: "Apprenti", Progress: 50, NextLevel: 200})
	if !strings.Contains(buf.String(), strings.Repeat("█", 15)+strings.Repeat("░", 15)) {
		t.Fatalf("expected half filled bar, got:\n%s", buf.String())
	}
}

func TestPrintMonthPercentLayout(t *testing.T) {
	pp, buf := newPrinter(t)
	then := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	pp.PrintMonthPercent(then, make([]int, DaysIn(then)))
	out := buf.String()
	if !strings.Contains(out, "March 2024") {
		t.Fatalf("expected month header, got %q", out)
	}
	if !strings.Contains(out, "31 ") {
		t.Fatalf("expected 31 days, got %q", out)
	}
}

func TestDaysInAndStartDay(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local)
	if got := DaysIn(feb); got != 29 {
		t.Fatalf("expected 29 days, got %d", got)
	}
	if got := StartDay(feb); got != time.Thursday {
		t.Fatalf("expected Thursday, got %v", got)
	}
}
