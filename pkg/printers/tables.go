package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/glyph"
	"tableflip.dev/caddr/pkg/routine"
)

func (pp *PrettyPrint) table(tbl *uitable.Table) {
	tbl.Separator = "  "
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Stats prints the aggregates of a window followed by per-block rates.
func (pp *PrettyPrint) Stats(s analytics.Stats) {
	bold := color.New(color.Bold)
	pp.Title(fmt.Sprintf("Stats · %s → %s", s.Start, s.End))

	summary := uitable.New()
	summary.AddRow("Average", fmt.Sprintf("%d%%", s.Average))
	summary.AddRow("Done", fmt.Sprintf("%d / %d", s.TotalDone, s.TotalScheduled))
	summary.AddRow("Streak", fmt.Sprintf("%d", s.Streak))
	if s.Best.Date != "" {
		summary.AddRow("Best day", fmt.Sprintf("%s (%d%%)", s.Best.Date, s.Best.Percent))
	}
	summary.RightAlign(0)
	pp.table(summary)
	pp.NewLine()

	if len(s.Blocks) == 0 {
		return
	}
	blocks := uitable.New()
	blocks.AddRow(bold.Sprint("Block"), bold.Sprint("Rate"), bold.Sprint("Validated"), bold.Sprint("Days"))
	for _, b := range s.Blocks {
		blocks.AddRow(b.Title, fmt.Sprintf("%d%%", b.Rate), b.Validated, b.Appearances)
	}
	blocks.RightAlign(1)
	pp.table(blocks)
	pp.NewLine()
}

// Templates prints the saved templates.
func (pp *PrettyPrint) Templates(list []routine.Template, editing string) {
	pp.TitleWithCount("Templates", len(list))
	if len(list) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Blocks"), bold.Sprint("Goals"), bold.Sprint("Goal"))
	for _, t := range list {
		name := t.Name
		if t.ID == editing {
			name += " (editing)"
		}
		tbl.AddRow(t.ID, name, len(t.Blocks), len(t.RecurringGoals), t.TemplateGoal)
	}
	pp.table(tbl)
	pp.NewLine()
}

// Goals prints the recurring goals.
func (pp *PrettyPrint) Goals(goals []routine.RecurringGoal) {
	pp.TitleWithCount("Goals", len(goals))
	if len(goals) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	for _, g := range goals {
		tbl.AddRow(g.ID, fmt.Sprintf("%s %s", glyph.Goal, g.Title), string(g.Recurrence), g.ReminderTime)
	}
	pp.table(tbl)
	pp.NewLine()
}

// Profile prints level, rank and a progress bar toward the next level.
func (pp *PrettyPrint) Profile(p app.Profile) {
	const barWidth = 30
	filled := int(p.Progress / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	tbl := uitable.New()
	tbl.AddRow("Level", p.Level)
	tbl.AddRow("Rank", p.Rank)
	tbl.AddRow("XP", fmt.Sprintf("%d / %d", p.XP, p.NextLevel))
	tbl.AddRow("", color.New(color.FgGreen).Sprint(bar))
	tbl.RightAlign(0)
	pp.table(tbl)
	pp.NewLine()
}

// Report prints completed tasks grouped by block.
func (pp *PrettyPrint) Report(r app.ReportResult, label string) {
	pp.Title(fmt.Sprintf("Report · last %s (%s → %s)", label, r.Since, r.Until))
	if r.Total == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No completed tasks found in this window.")
		pp.NewLine()
		return
	}
	for _, section := range r.Sections {
		_, _ = color.New(color.Bold).Fprintf(pp.out(), "\n%s\n", section.Block)
		for _, item := range section.Entries {
			indent := ""
			if item.Parent != "" {
				indent = "  "
			}
			_, _ = fmt.Fprintf(pp.out(), "  %s%s %s  (%s)\n", indent, glyph.Completed, item.Task.Title, item.Date)
		}
	}
	pp.NewLine()
}

// Migration prints the open tasks eligible for rescheduling.
func (pp *PrettyPrint) Migration(candidates []app.MigrationCandidate, since, until, label string) {
	pp.Title(fmt.Sprintf("Migration candidates · last %s (%s → %s)", label, since, until))
	if len(candidates) == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No open tasks matched this window.")
		pp.NewLine()
		return
	}
	tbl := uitable.New()
	for _, c := range candidates {
		title := c.Title
		if c.Parent != "" {
			title = fmt.Sprintf("%s · parent: %s", title, c.Parent)
		}
		tbl.AddRow(c.Date, c.Block, fmt.Sprintf("%s %s", glyph.Task, title))
		if pp.ShowID {
			tbl.AddRow("", "", color.New(color.Faint).Sprintf("block:%s task:%s", c.Ref.BlockID, refTask(c)))
		}
	}
	pp.table(tbl)
	pp.NewLine()
}

func refTask(c app.MigrationCandidate) string {
	if c.Ref.ParentTaskID != "" {
		return c.Ref.ParentTaskID + "/" + c.Ref.TaskID
	}
	return c.Ref.TaskID
}
