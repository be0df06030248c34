package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/caddr/pkg/advisor"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/glyph"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/routine"
)

// DefaultWidth is the wrap width for free text.
const DefaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	Width  int
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("3f2b1c9e-8d4a-4e6f-9b7c-1a2d3e4f5a6b  "))
)

// ConfigureColor turns color off unless fd is a terminal.
func ConfigureColor(fd uintptr) {
	color.NoColor = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.out(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	} else {
		_, _ = y.Fprint(pp.out(), " ")
	}
}

func (pp *PrettyPrint) pad() {
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	pp.pad()
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	pp.pad()
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	pp.pad()
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Day prints the resolved schedule of one date with its goal and journal.
func (pp *PrettyPrint) Day(v app.DayView) {
	title := fmt.Sprintf("%s · %d%%", v.Date, v.Perf.Percent)
	if v.Detached {
		title += " · detached"
	}
	pp.Title(title)

	if v.Goal != "" {
		line := fmt.Sprintf("%s %s", glyph.ForGoal(v.Journal.GoalCompleted), v.Goal)
		if v.Reminder != "" {
			line += fmt.Sprintf(" (%s)", v.Reminder)
		}
		pp.pad()
		_, _ = color.New(color.Italic).Fprintln(pp.out(), line)
	}
	pp.NewLine()

	if len(v.Blocks) == 0 {
		pp.none()
	}
	for _, sched := range v.Blocks {
		pp.Block(v.Date, sched)
	}
	pp.Journal(v.Journal)
}

// Block prints one scheduled block and its visible tasks.
func (pp *PrettyPrint) Block(date string, sched overlay.Scheduled) {
	b := sched.Block
	h := color.New(color.Bold)
	pp.id(b.ID)
	_, _ = h.Fprintf(pp.out(), "%s %s", glyph.ForBlock(b), b.Title)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), " - %d\n", len(sched.Tasks))
	if b.IsCollapsed {
		return
	}
	for _, st := range sched.Tasks {
		pp.task(date, st.Task, 0)
		for _, sub := range st.SubTasks {
			pp.task(date, sub, 1)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) task(date string, t routine.Task, depth int) {
	p := color.New()
	if t.IsDone(date) {
		p = color.New(color.CrossedOut, color.Faint)
	}
	pp.id(t.ID)
	line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth+1), glyph.ForPriority(t.Priority), glyph.ForTask(t, date), t.Title)
	_, _ = p.Fprint(pp.out(), line)
	if t.StartTime != "" || t.Duration > 0 {
		_, _ = color.New(color.Faint).Fprint(pp.out(), "  "+timing(t))
	}
	_, _ = fmt.Fprintln(pp.out(), "")
	if note := t.ExecutionNotes[date]; note != "" {
		pp.pad()
		_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), "%s    %s\n", strings.Repeat("  ", depth+1), note)
	}
}

func timing(t routine.Task) string {
	switch {
	case t.StartTime != "" && t.Duration > 0:
		return fmt.Sprintf("%s · %d min", t.StartTime, t.Duration)
	case t.StartTime != "":
		return t.StartTime
	default:
		return fmt.Sprintf("%d min", t.Duration)
	}
}

// Journal prints the note, mood, reflection and AI review of a day.
func (pp *PrettyPrint) Journal(d routine.DayRoutine) {
	label := color.New(color.Faint)
	field := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		_, _ = label.Fprintf(pp.out(), "%s\n", name)
		_, _ = fmt.Fprintln(pp.out(), pp.wrap(value))
	}
	field("Note", d.Note)
	field("Mood", d.Mood)
	field("Reflection", d.Reflection)
	if d.AIFeedback != nil {
		pp.Feedback(d.AIFeedback)
	}
}

// Feedback prints an end-of-day review.
func (pp *PrettyPrint) Feedback(f *routine.Feedback) {
	if f == nil {
		pp.unavailable()
		return
	}
	b := color.New(color.Bold)
	_, _ = b.Fprintln(pp.out(), "Review")
	_, _ = fmt.Fprintln(pp.out(), pp.wrap(f.Feedback))
	if f.FocusTomorrow != "" {
		_, _ = b.Fprintln(pp.out(), "Tomorrow")
		_, _ = fmt.Fprintln(pp.out(), pp.wrap(f.FocusTomorrow))
	}
	pp.NewLine()
}

// Advice prints a coaching suggestion.
func (pp *PrettyPrint) Advice(a *advisor.Advice) {
	if a == nil {
		pp.unavailable()
		return
	}
	b := color.New(color.Bold)
	_, _ = fmt.Fprintln(pp.out(), pp.wrap(a.Advice))
	if a.PowerTask != "" {
		pp.NewLine()
		_, _ = b.Fprint(pp.out(), "Power task: ")
		_, _ = fmt.Fprintln(pp.out(), a.PowerTask)
	}
	if a.Motivation != "" {
		pp.NewLine()
		_, _ = color.New(color.Italic).Fprintln(pp.out(), pp.wrap(a.Motivation))
	}
	pp.NewLine()
}

func (pp *PrettyPrint) unavailable() {
	_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "No suggestion available.")
}

func (pp *PrettyPrint) wrap(s string) string {
	return wordwrap.String(strings.TrimSpace(s), pp.width())
}

// Tasks prints a flat list such as the inbox.
func (pp *PrettyPrint) Tasks(title string, tasks []routine.Task) {
	pp.TitleWithCount(title, len(tasks))
	if len(tasks) == 0 {
		pp.none()
		return
	}
	for _, t := range tasks {
		pp.id(t.ID)
		_, _ = fmt.Fprintf(pp.out(), "%s %s %s\n", glyph.ForPriority(t.Priority), glyph.Task, t.Title)
	}
	pp.NewLine()
}

// Created reports the id of a newly created node.
func (pp *PrettyPrint) Created(kind, id string) {
	_, _ = fmt.Fprintf(pp.out(), "%s %s\n", kind, color.New(color.FgHiYellow).Sprint(id))
}
