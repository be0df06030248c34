package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
)

// FieldOptions carries the editable fields shared by tasks, blocks and goals.
// Only flags the user actually set become updates.
type FieldOptions struct {
	Title        string
	Description  string
	Priority     string
	StartTime    string
	Duration     int
	Recurrence   string
	SpecificDate string
	StartDate    string
	EndDate      string
	Reminder     string
	Note         string
	Collapsed    bool
	Locked       bool
}

func addRuleArgs(cmd *cobra.Command, o *FieldOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "", "New title.")
	cmd.Flags().StringVar(&o.Recurrence, "recurrence", "",
		"One of daily, weekdays, weekends, specific, once, week, month or period.")
	cmd.Flags().StringVar(&o.SpecificDate, "specific-date", "", "Date for specific or once recurrence.")
	cmd.Flags().StringVar(&o.StartDate, "start-date", "", "First date of a period.")
	cmd.Flags().StringVar(&o.EndDate, "end-date", "", "Last date of a period.")
}

func AddTaskFieldArgs(cmd *cobra.Command, o *FieldOptions) {
	addRuleArgs(cmd, o)
	cmd.Flags().StringVar(&o.Description, "description", "", "Description.")
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", "", "One of low, medium or high.")
	cmd.Flags().StringVar(&o.StartTime, "start-time", "", "Start time as HH:MM.")
	cmd.Flags().IntVar(&o.Duration, "duration", 0, "Duration in minutes.")
	cmd.Flags().StringVar(&o.Note, "note", "", "Execution note for the selected date.")
}

func AddBlockFieldArgs(cmd *cobra.Command, o *FieldOptions) {
	addRuleArgs(cmd, o)
	cmd.Flags().StringVar(&o.Description, "description", "", "Description.")
	cmd.Flags().BoolVar(&o.Collapsed, "collapsed", false, "Collapse the block.")
	cmd.Flags().BoolVar(&o.Locked, "locked", false, "Lock the block.")
}

func AddGoalFieldArgs(cmd *cobra.Command, o *FieldOptions) {
	addRuleArgs(cmd, o)
	cmd.Flags().StringVar(&o.Reminder, "reminder", "", "Reminder time as HH:MM.")
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func (o *FieldOptions) recurrenceKind() (recurrence.Kind, error) {
	k := recurrence.Kind(strings.ToLower(strings.TrimSpace(o.Recurrence)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown recurrence %q", o.Recurrence)
	}
	return k, nil
}

// TaskUpdates converts the set flags into task updates.
func (o *FieldOptions) TaskUpdates(cmd *cobra.Command) ([]mutate.TaskUpdate, error) {
	var u []mutate.TaskUpdate
	if changed(cmd, "title") {
		u = append(u, mutate.Title(o.Title))
	}
	if changed(cmd, "description") {
		u = append(u, mutate.Description(o.Description))
	}
	if changed(cmd, "priority") {
		p, err := ParsePriority(o.Priority)
		if err != nil {
			return nil, err
		}
		u = append(u, mutate.Priority(p))
	}
	if changed(cmd, "start-time") {
		u = append(u, mutate.StartTime(o.StartTime))
	}
	if changed(cmd, "duration") {
		u = append(u, mutate.Duration(o.Duration))
	}
	if changed(cmd, "specific-date") {
		u = append(u, mutate.SpecificDate(o.SpecificDate))
	}
	if changed(cmd, "start-date") {
		u = append(u, mutate.StartDate(o.StartDate))
	}
	if changed(cmd, "end-date") {
		u = append(u, mutate.EndDate(o.EndDate))
	}
	if changed(cmd, "recurrence") {
		k, err := o.recurrenceKind()
		if err != nil {
			return nil, err
		}
		u = append(u, mutate.Recurrence(k))
	}
	if changed(cmd, "note") {
		u = append(u, mutate.ExecutionNote(o.Note))
	}
	return u, nil
}

// BlockUpdates converts the set flags into block updates.
func (o *FieldOptions) BlockUpdates(cmd *cobra.Command) ([]mutate.BlockUpdate, error) {
	var u []mutate.BlockUpdate
	if changed(cmd, "title") {
		u = append(u, mutate.Title(o.Title))
	}
	if changed(cmd, "description") {
		u = append(u, mutate.Description(o.Description))
	}
	if changed(cmd, "collapsed") {
		u = append(u, mutate.Collapsed(o.Collapsed))
	}
	if changed(cmd, "locked") {
		u = append(u, mutate.Locked(o.Locked))
	}
	if changed(cmd, "specific-date") {
		u = append(u, mutate.SpecificDate(o.SpecificDate))
	}
	if changed(cmd, "start-date") {
		u = append(u, mutate.StartDate(o.StartDate))
	}
	if changed(cmd, "end-date") {
		u = append(u, mutate.EndDate(o.EndDate))
	}
	if changed(cmd, "recurrence") {
		k, err := o.recurrenceKind()
		if err != nil {
			return nil, err
		}
		u = append(u, mutate.Recurrence(k))
	}
	return u, nil
}

// GoalUpdates converts the set flags into goal updates.
func (o *FieldOptions) GoalUpdates(cmd *cobra.Command) ([]mutate.GoalUpdate, error) {
	var u []mutate.GoalUpdate
	if changed(cmd, "title") {
		u = append(u, mutate.Title(o.Title))
	}
	if changed(cmd, "reminder") {
		u = append(u, mutate.ReminderTime(o.Reminder))
	}
	if changed(cmd, "specific-date") {
		u = append(u, mutate.SpecificDate(o.SpecificDate))
	}
	if changed(cmd, "start-date") {
		u = append(u, mutate.StartDate(o.StartDate))
	}
	if changed(cmd, "end-date") {
		u = append(u, mutate.EndDate(o.EndDate))
	}
	if changed(cmd, "recurrence") {
		k, err := o.recurrenceKind()
		if err != nil {
			return nil, err
		}
		u = append(u, mutate.Recurrence(k))
	}
	return u, nil
}

// ParsePriority validates a priority name. Empty clears it.
func ParsePriority(s string) (routine.Priority, error) {
	switch p := routine.Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "", routine.PriorityLow, routine.PriorityMedium, routine.PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}
