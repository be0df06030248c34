// Package routine holds the persisted routine document and its value helpers.
package routine

import (
	"github.com/google/uuid"

	"tableflip.dev/caddr/pkg/recurrence"
)

// NewID returns a fresh node identifier. Tests may swap it for a sequence.
var NewID = func() string {
	return uuid.NewString()
}

// Priority ranks a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a checkable item. Sub-tasks are one level deep only.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// CompletedDates holds each date key at most once.
	CompletedDates []string `json:"completedDates"`
	recurrence.Rule
	SubTasks       []Task            `json:"subTasks,omitempty"`
	StartTime      string            `json:"startTime,omitempty"`
	Duration       int               `json:"duration,omitempty"`
	Priority       Priority          `json:"priority,omitempty"`
	ExecutionNotes map[string]string `json:"executionNotes,omitempty"`
}

// Block is an ordered group of tasks sharing a visibility rule.
type Block struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Tasks       []Task `json:"tasks"`
	recurrence.Rule
	IsCollapsed bool `json:"isCollapsed,omitempty"`
	IsLocked    bool `json:"isLocked,omitempty"`
}

// RecurringGoal is the headline objective for the dates its rule matches.
type RecurringGoal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	recurrence.Rule
	ReminderTime string `json:"reminderTime,omitempty"`
}

// Feedback is the evening review returned by the advisor.
type Feedback struct {
	Feedback      string `json:"feedback"`
	FocusTomorrow string `json:"focusTomorrow"`
}

// Template is a named, inert snapshot of the template blocks and goals.
type Template struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Blocks         []Block         `json:"blocks"`
	RecurringGoals []RecurringGoal `json:"recurringGoals"`
	TemplateGoal   string          `json:"templateGoal,omitempty"`
}

// UserProfile is the experience ledger.
type UserProfile struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// AppData is the single per-user document.
type AppData struct {
	Days           map[string]DayRoutine `json:"days"`
	Blocks         []Block               `json:"blocks"`
	Templates      []Template            `json:"templates"`
	RecurringGoals []RecurringGoal       `json:"recurringGoals"`
	InboxTasks     []Task                `json:"inboxTasks"`
	UserProfile    *UserProfile          `json:"userProfile,omitempty"`
}

// Empty returns the document a first-time user starts with.
func Empty() AppData {
	return AppData{
		Days:           map[string]DayRoutine{},
		Blocks:         []Block{},
		Templates:      []Template{},
		RecurringGoals: []RecurringGoal{},
		InboxTasks:     []Task{},
		UserProfile:    &UserProfile{XP: 0, Level: 1},
	}
}

// Profile returns the user profile, defaulting when absent.
func (a AppData) Profile() UserProfile {
	if a.UserProfile == nil {
		return UserProfile{XP: 0, Level: 1}
	}
	return *a.UserProfile
}

// Day returns the routine for date, zero-valued when none is stored.
func (a AppData) Day(date string) DayRoutine {
	if d, ok := a.Days[date]; ok {
		return d
	}
	return DayRoutine{}
}

// WithDay returns a copy of a with days[date] replaced. Other days are shared
// by value, so the map itself is the only thing copied.
func (a AppData) WithDay(date string, d DayRoutine) AppData {
	days := make(map[string]DayRoutine, len(a.Days)+1)
	for k, v := range a.Days {
		days[k] = v
	}
	days[date] = d
	a.Days = days
	return a
}

// IsDone reports whether t was completed on date.
func (t Task) IsDone(date string) bool {
	for _, d := range t.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// FindBlock returns the index of the block with id, or -1.
func FindBlock(blocks []Block, id string) int {
	for i := range blocks {
		if blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTask returns the index of the task with id, or -1.
func FindTask(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// FindTemplate returns the index of the template with id, or -1.
func FindTemplate(templates []Template, id string) int {
	for i := range templates {
		if templates[i].ID == id {
			return i
		}
	}
	return -1
}

// FindGoal returns the index of the goal with id, or -1.
func FindGoal(goals []RecurringGoal, id string) int {
	for i := range goals {
		if goals[i].ID == id {
			return i
		}
	}
	return -1
}

// Outline is a suggested block: a title and its task titles.
type Outline struct {
	Title string   `json:"title"`
	Tasks []string `json:"tasks"`
}
