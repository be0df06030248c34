// Package mcp provides the Model Context Protocol server integration for caddr.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/caddr/pkg/advisor"
	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/progress"
	"tableflip.dev/caddr/pkg/recurrence"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/timeutil"
)

// Service adapts the routine service to string arguments coming from MCP
// tool calls. Dates are YYYY-MM-DD and default to today; ids may be unique
// prefixes.
type Service struct {
	App *app.Service
}

var errNoService = errors.New("routine service is not configured")

// NewService builds a service wrapper around a routine service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// TaskFields are the optional edits of a task. Nil means unchanged.
type TaskFields struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority"`
	StartTime    *string `json:"start_time"`
	Duration     *int    `json:"duration"`
	Recurrence   *string `json:"recurrence"`
	SpecificDate *string `json:"specific_date"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Note         *string `json:"note"`
}

// BlockFields are the optional edits of a block.
type BlockFields struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Collapsed    *bool   `json:"collapsed"`
	Locked       *bool   `json:"locked"`
	Recurrence   *string `json:"recurrence"`
	SpecificDate *string `json:"specific_date"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// JournalFields are the optional edits of a day.
type JournalFields struct {
	Note       *string `json:"note"`
	Reflection *string `json:"reflection"`
	Mood       *string `json:"mood"`
	Reminder   *string `json:"reminder_time"`
	Goal       *string `json:"goal_override"`
}

// NodeResult identifies a node created or changed by a tool.
type NodeResult struct {
	ID  string     `json:"id"`
	Ref mutate.Ref `json:"ref"`
}

func (s *Service) ready() error {
	if s == nil || s.App == nil {
		return errNoService
	}
	return nil
}

// Date validates a date key, defaulting to today.
func (s *Service) Date(input string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return s.App.Today(), nil
	}
	if _, err := timeutil.ParseDateKey(input); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", input)
	}
	return input, nil
}

func (s *Service) scope(date string, day bool) (mutate.Scope, error) {
	d, err := s.Date(date)
	if err != nil {
		return mutate.Scope{}, err
	}
	if day {
		return mutate.Day(d), nil
	}
	return mutate.Global(d), nil
}

func (s *Service) locate(date string, day bool, id string) (mutate.Scope, mutate.Ref, error) {
	scope, err := s.scope(date, day)
	if err != nil {
		return scope, mutate.Ref{}, err
	}
	ref, err := s.App.Locate(scope, id)
	return scope, ref, err
}

// Day returns the resolved view of date.
func (s *Service) Day(date string) (app.DayView, error) {
	d, err := s.Date(date)
	if err != nil {
		return app.DayView{}, err
	}
	return s.App.Day(d), nil
}

// AddBlock adds a block to the template, or to date only when day is set.
func (s *Service) AddBlock(date string, day bool, title string) (NodeResult, error) {
	scope, err := s.scope(date, day)
	if err != nil {
		return NodeResult{}, err
	}
	id := s.App.AddBlock(scope, title)
	return NodeResult{ID: id, Ref: mutate.BlockRef(id)}, nil
}

// AddTask adds a task under a block, or a sub-task under a task.
func (s *Service) AddTask(date string, day bool, parentID, title string) (NodeResult, error) {
	scope, parent, err := s.locate(date, day, parentID)
	if err != nil {
		return NodeResult{}, err
	}
	if parent.IsSubTask() {
		return NodeResult{}, errors.New("sub-tasks can not have sub-tasks")
	}
	id := s.App.AddTask(scope, parent.BlockID, parent.TaskID, title)
	if id == "" {
		return NodeResult{}, app.ErrNotFound
	}
	ref := mutate.TaskRef(parent.BlockID, id)
	if parent.TaskID != "" {
		ref = mutate.SubTaskRef(parent.BlockID, parent.TaskID, id)
	}
	return NodeResult{ID: id, Ref: ref}, nil
}

// ToggleTask flips a task's completion on date and awards the points. The id
// is looked up in the routine date shows, detached or not.
func (s *Service) ToggleTask(date, id string) (progress.Result, error) {
	scope, ref, err := s.locate(date, true, id)
	if err != nil {
		return progress.Result{}, err
	}
	if ref.IsBlock() {
		return progress.Result{}, fmt.Errorf("%s is a block, not a task", id)
	}
	res := s.App.Toggle(scope, ref)
	if !res.Found {
		return res, app.ErrNotFound
	}
	return res, nil
}

// ToggleGoal flips the daily goal of date.
func (s *Service) ToggleGoal(date string) (progress.Result, error) {
	d, err := s.Date(date)
	if err != nil {
		return progress.Result{}, err
	}
	return s.App.ToggleGoal(d), nil
}

// UpdateTask applies the set fields to a task or sub-task.
func (s *Service) UpdateTask(date string, day bool, id string, f TaskFields) error {
	scope, ref, err := s.locate(date, day, id)
	if err != nil {
		return err
	}
	if ref.IsBlock() {
		return fmt.Errorf("%s is a block, not a task", id)
	}
	var u []mutate.TaskUpdate
	if f.Title != nil {
		u = append(u, mutate.Title(*f.Title))
	}
	if f.Description != nil {
		u = append(u, mutate.Description(*f.Description))
	}
	if f.Priority != nil {
		p, err := ParsePriority(*f.Priority)
		if err != nil {
			return err
		}
		u = append(u, mutate.Priority(p))
	}
	if f.StartTime != nil {
		u = append(u, mutate.StartTime(*f.StartTime))
	}
	if f.Duration != nil {
		u = append(u, mutate.Duration(*f.Duration))
	}
	if f.SpecificDate != nil {
		u = append(u, mutate.SpecificDate(*f.SpecificDate))
	}
	if f.StartDate != nil {
		u = append(u, mutate.StartDate(*f.StartDate))
	}
	if f.EndDate != nil {
		u = append(u, mutate.EndDate(*f.EndDate))
	}
	if f.Recurrence != nil {
		k, err := ParseRecurrence(*f.Recurrence)
		if err != nil {
			return err
		}
		u = append(u, mutate.Recurrence(k))
	}
	if f.Note != nil {
		u = append(u, mutate.ExecutionNote(*f.Note))
	}
	if !s.App.UpdateTask(scope, ref, u...) {
		return app.ErrNotFound
	}
	return nil
}

// UpdateBlock applies the set fields to a block.
func (s *Service) UpdateBlock(date string, day bool, id string, f BlockFields) error {
	scope, ref, err := s.locate(date, day, id)
	if err != nil {
		return err
	}
	if !ref.IsBlock() {
		return fmt.Errorf("%s is a task, not a block", id)
	}
	var u []mutate.BlockUpdate
	if f.Title != nil {
		u = append(u, mutate.Title(*f.Title))
	}
	if f.Description != nil {
		u = append(u, mutate.Description(*f.Description))
	}
	if f.Collapsed != nil {
		u = append(u, mutate.Collapsed(*f.Collapsed))
	}
	if f.Locked != nil {
		u = append(u, mutate.Locked(*f.Locked))
	}
	if f.SpecificDate != nil {
		u = append(u, mutate.SpecificDate(*f.SpecificDate))
	}
	if f.StartDate != nil {
		u = append(u, mutate.StartDate(*f.StartDate))
	}
	if f.EndDate != nil {
		u = append(u, mutate.EndDate(*f.EndDate))
	}
	if f.Recurrence != nil {
		k, err := ParseRecurrence(*f.Recurrence)
		if err != nil {
			return err
		}
		u = append(u, mutate.Recurrence(k))
	}
	if !s.App.UpdateBlock(scope, ref.BlockID, u...) {
		return app.ErrNotFound
	}
	return nil
}

// Delete removes a block, task or sub-task.
func (s *Service) Delete(date string, day bool, id string) error {
	scope, ref, err := s.locate(date, day, id)
	if err != nil {
		return err
	}
	if !s.App.Delete(scope, ref) {
		return app.ErrNotFound
	}
	return nil
}

// Move swaps a node with its previous or next sibling.
func (s *Service) Move(date string, day bool, id, direction string) error {
	dir, err := ParseDirection(direction)
	if err != nil {
		return err
	}
	scope, ref, err := s.locate(date, day, id)
	if err != nil {
		return err
	}
	if !s.App.Move(scope, ref, dir) {
		return app.ErrNotFound
	}
	return nil
}

// Duplicate copies a node next to itself.
func (s *Service) Duplicate(date string, day bool, id string) (NodeResult, error) {
	scope, ref, err := s.locate(date, day, id)
	if err != nil {
		return NodeResult{}, err
	}
	copyID := s.App.Duplicate(scope, ref)
	if copyID == "" {
		return NodeResult{}, app.ErrNotFound
	}
	out := NodeResult{ID: copyID, Ref: ref}
	if ref.IsBlock() {
		out.Ref = mutate.BlockRef(copyID)
	} else {
		out.Ref.TaskID = copyID
	}
	return out, nil
}

// Reschedule moves a task seen on date to target.
func (s *Service) Reschedule(date, id, target string) error {
	scope, ref, err := s.locate(date, true, id)
	if err != nil {
		return err
	}
	if ref.IsBlock() {
		return errors.New("only tasks can be rescheduled")
	}
	to, err := s.Date(target)
	if err != nil {
		return err
	}
	if !s.App.Reschedule(scope.Date, ref, to) {
		return app.ErrNotFound
	}
	return nil
}

// Promote copies a day-only task or block into the template.
func (s *Service) Promote(date, id string) error {
	scope, ref, err := s.locate(date, true, id)
	if err != nil {
		return err
	}
	var ok bool
	if ref.IsBlock() {
		ok = s.App.PromoteBlock(scope.Date, ref.BlockID)
	} else {
		ok = s.App.PromoteTask(scope.Date, ref)
	}
	if !ok {
		return app.ErrNotFound
	}
	return nil
}

// Detach freezes the current template view on date.
func (s *Service) Detach(date string) error {
	d, err := s.Date(date)
	if err != nil {
		return err
	}
	s.App.Detach(d)
	return nil
}

// Reattach drops the override of date so it follows the template again.
func (s *Service) Reattach(date string) (bool, error) {
	d, err := s.Date(date)
	if err != nil {
		return false, err
	}
	return s.App.Reattach(d), nil
}

// UpdateJournal applies the set journal fields of date.
func (s *Service) UpdateJournal(date string, f JournalFields) error {
	d, err := s.Date(date)
	if err != nil {
		return err
	}
	var u []mutate.DayUpdate
	if f.Note != nil {
		u = append(u, mutate.Note(*f.Note))
	}
	if f.Reflection != nil {
		u = append(u, mutate.Reflection(*f.Reflection))
	}
	if f.Mood != nil {
		u = append(u, mutate.Mood(*f.Mood))
	}
	if f.Reminder != nil {
		u = append(u, mutate.ReminderTime(*f.Reminder))
	}
	if f.Goal != nil {
		u = append(u, mutate.GoalOverride(*f.Goal))
	}
	if len(u) == 0 {
		return errors.New("no journal fields given")
	}
	s.App.UpdateDay(d, u...)
	return nil
}

// Goals lists the recurring goals.
func (s *Service) Goals() ([]routine.RecurringGoal, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Snapshot().RecurringGoals, nil
}

// AddGoal creates a daily recurring goal.
func (s *Service) AddGoal(title string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		return "", errors.New("goal title is required")
	}
	return s.App.AddGoal(title), nil
}

// DeleteGoal removes a recurring goal by id or prefix.
func (s *Service) DeleteGoal(id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	full, err := s.App.GoalID(id)
	if err != nil {
		return err
	}
	if !s.App.DeleteGoal(full) {
		return app.ErrNotFound
	}
	return nil
}

// GoalFields are the optional edits of a recurring goal.
type GoalFields struct {
	Title        *string `json:"title"`
	Recurrence   *string `json:"recurrence"`
	SpecificDate *string `json:"specific_date"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Reminder     *string `json:"reminder_time"`
}

// UpdateGoal edits a recurring goal, or only its appearance on date when
// day is set.
func (s *Service) UpdateGoal(date string, day bool, id string, f GoalFields) error {
	scope, err := s.scope(date, day)
	if err != nil {
		return err
	}
	full, err := s.App.GoalID(id)
	if err != nil {
		return err
	}
	var u []mutate.GoalUpdate
	if f.Title != nil {
		u = append(u, mutate.Title(*f.Title))
	}
	if f.SpecificDate != nil {
		u = append(u, mutate.SpecificDate(*f.SpecificDate))
	}
	if f.StartDate != nil {
		u = append(u, mutate.StartDate(*f.StartDate))
	}
	if f.EndDate != nil {
		u = append(u, mutate.EndDate(*f.EndDate))
	}
	if f.Recurrence != nil {
		k, err := ParseRecurrence(*f.Recurrence)
		if err != nil {
			return err
		}
		u = append(u, mutate.Recurrence(k))
	}
	if f.Reminder != nil {
		u = append(u, mutate.ReminderTime(*f.Reminder))
	}
	if !s.App.UpdateGoal(scope, full, u...) {
		return app.ErrNotFound
	}
	return nil
}

// Stats aggregates a preset timeframe, or an explicit since/until window
// when timeframe is empty.
func (s *Service) Stats(timeframe, since, until string) (analytics.Stats, error) {
	if err := s.ready(); err != nil {
		return analytics.Stats{}, err
	}
	if since != "" || until != "" {
		start, err := s.Date(since)
		if err != nil {
			return analytics.Stats{}, err
		}
		end, err := s.Date(until)
		if err != nil {
			return analytics.Stats{}, err
		}
		return s.App.Stats(start, end)
	}
	tf, err := ParseTimeframe(timeframe)
	if err != nil {
		return analytics.Stats{}, err
	}
	return s.App.StatsFor(tf)
}

// Report lists completed tasks over a window like "2w" ending today.
func (s *Service) Report(window string) (app.ReportResult, error) {
	since, until, err := s.window(window)
	if err != nil {
		return app.ReportResult{}, err
	}
	return s.App.Report(since, until)
}

// Migration lists past tasks left undone over a window ending today.
func (s *Service) Migration(window string) ([]app.MigrationCandidate, error) {
	since, until, err := s.window(window)
	if err != nil {
		return nil, err
	}
	return s.App.MigrationCandidates(since, until)
}

func (s *Service) window(input string) (string, string, error) {
	if err := s.ready(); err != nil {
		return "", "", err
	}
	days, _, err := timeutil.ParseWindow(input)
	if err != nil {
		return "", "", err
	}
	until := s.App.Today()
	return timeutil.AddDays(until, -(days - 1)), until, nil
}

// Templates lists the saved templates.
func (s *Service) Templates() ([]routine.Template, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Templates(), nil
}

// SaveTemplate snapshots the current template blocks and goals, then clears them.
func (s *Service) SaveTemplate(name, goal string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.App.SaveTemplate(name, goal)
}

// ApplyTemplate replaces the template with a saved one and checkpoints date.
func (s *Service) ApplyTemplate(id, date string) error {
	d, err := s.Date(date)
	if err != nil {
		return err
	}
	full, err := s.App.TemplateID(id)
	if err != nil {
		return err
	}
	return s.App.ApplyTemplate(full, d)
}

// Inbox lists the undeployed inbox tasks.
func (s *Service) Inbox() ([]routine.Task, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Snapshot().InboxTasks, nil
}

// AddInboxTask captures a task for later.
func (s *Service) AddInboxTask(title string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(title) == "" {
		return "", errors.New("task title is required")
	}
	return s.App.AddInboxTask(title), nil
}

// DeployInboxTask moves an inbox task into a template block.
func (s *Service) DeployInboxTask(taskID, blockID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	full, err := s.App.InboxID(taskID)
	if err != nil {
		return err
	}
	block, err := s.App.Locate(mutate.Global(s.App.Today()), blockID)
	if err != nil {
		return err
	}
	if !block.IsBlock() {
		return fmt.Errorf("%s is not a block", blockID)
	}
	if !s.App.DeployInboxTask(full, block.BlockID) {
		return app.ErrNotFound
	}
	return nil
}

// Undo restores the state before the last checkpoint.
func (s *Service) Undo() error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.App.Undo()
}

// Profile returns the experience summary.
func (s *Service) Profile() (app.Profile, error) {
	if err := s.ready(); err != nil {
		return app.Profile{}, err
	}
	return s.App.Profile(), nil
}

// Advice asks the advisor about date. A nil result means none was available.
func (s *Service) Advice(ctx context.Context, date string) (*advisor.Advice, error) {
	d, err := s.Date(date)
	if err != nil {
		return nil, err
	}
	return s.App.Advice(ctx, d), nil
}

// Review asks the advisor to review the reflection written on date.
func (s *Service) Review(ctx context.Context, date string) (*routine.Feedback, error) {
	d, err := s.Date(date)
	if err != nil {
		return nil, err
	}
	return s.App.Review(ctx, d), nil
}

// Generate asks the advisor for blocks that work towards goal and appends
// them to the template.
func (s *Service) Generate(ctx context.Context, goal string) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(goal) == "" {
		return nil, errors.New("goal is required")
	}
	return s.App.GenerateFromGoal(ctx, goal), nil
}

// ParsePriority converts user input into a priority. Empty clears it.
func ParsePriority(input string) (routine.Priority, error) {
	switch p := routine.Priority(strings.ToLower(strings.TrimSpace(input))); p {
	case "", routine.PriorityLow, routine.PriorityMedium, routine.PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", input)
	}
}

// ParseRecurrence converts user input into a recurrence kind.
func ParseRecurrence(input string) (recurrence.Kind, error) {
	k := recurrence.Kind(strings.ToLower(strings.TrimSpace(input)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown recurrence %q", input)
	}
	return k, nil
}

// ParseDirection converts "up" or "down" into a move direction.
func ParseDirection(input string) (mutate.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "up":
		return mutate.Up, nil
	case "down":
		return mutate.Down, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", input)
	}
}

// ParseTimeframe converts user input into a stats timeframe. Empty means week.
func ParseTimeframe(input string) (analytics.Timeframe, error) {
	switch tf := analytics.Timeframe(strings.ToLower(strings.TrimSpace(input))); tf {
	case "":
		return analytics.TimeframeWeek, nil
	case analytics.TimeframeDay, analytics.TimeframeWeek, analytics.TimeframeMonth, analytics.TimeframeYear:
		return tf, nil
	default:
		return "", fmt.Errorf("unknown timeframe %q", input)
	}
}
