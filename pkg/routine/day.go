package routine

import "encoding/json"

// DayView says where a day's blocks come from.
type DayView interface {
	isDayView()
}

// Inherited days filter the template blocks live.
type Inherited struct{}

// Overridden days own a detached copy of their blocks.
type Overridden struct {
	Blocks []Block
}

func (Inherited) isDayView()  {}
func (Overridden) isDayView() {}

// DayRoutine is the per-date journal and optional block override.
type DayRoutine struct {
	DailyGoalOverride string    `json:"dailyGoalOverride,omitempty"`
	GoalCompleted     bool      `json:"goalCompleted"`
	Note              string    `json:"note"`
	ReminderTime      string    `json:"reminderTime,omitempty"`
	Reflection        string    `json:"reflection,omitempty"`
	Mood              string    `json:"mood,omitempty"`
	AIFeedback        *Feedback `json:"aiFeedback,omitempty"`
	View              DayView   `json:"-"`
}

// Override returns the detached blocks and true when the day is overridden.
func (d DayRoutine) Override() ([]Block, bool) {
	if o, ok := d.View.(Overridden); ok {
		return o.Blocks, true
	}
	return nil, false
}

// Detached reports whether the day owns its own blocks.
func (d DayRoutine) Detached() bool {
	_, ok := d.Override()
	return ok
}

// WithBlocks returns d overridden by blocks.
func (d DayRoutine) WithBlocks(blocks []Block) DayRoutine {
	if blocks == nil {
		blocks = []Block{}
	}
	d.View = Overridden{Blocks: blocks}
	return d
}

// Inherit returns d reverted to template filtering.
func (d DayRoutine) Inherit() DayRoutine {
	d.View = Inherited{}
	return d
}

type dayRoutineWire struct {
	DailyGoalOverride string    `json:"dailyGoalOverride,omitempty"`
	GoalCompleted     bool      `json:"goalCompleted"`
	Note              string    `json:"note"`
	ReminderTime      string    `json:"reminderTime,omitempty"`
	Reflection        string    `json:"reflection,omitempty"`
	Mood              string    `json:"mood,omitempty"`
	AIFeedback        *Feedback `json:"aiFeedback,omitempty"`
	Blocks            *[]Block  `json:"blocks,omitempty"`
}

// MarshalJSON writes the blocks key only for overridden days.
func (d DayRoutine) MarshalJSON() ([]byte, error) {
	w := dayRoutineWire{
		DailyGoalOverride: d.DailyGoalOverride,
		GoalCompleted:     d.GoalCompleted,
		Note:              d.Note,
		ReminderTime:      d.ReminderTime,
		Reflection:        d.Reflection,
		Mood:              d.Mood,
		AIFeedback:        d.AIFeedback,
	}
	if blocks, ok := d.Override(); ok {
		if blocks == nil {
			blocks = []Block{}
		}
		w.Blocks = &blocks
	}
	return json.Marshal(w)
}

// UnmarshalJSON treats a present blocks key, even an empty one, as an override.
func (d *DayRoutine) UnmarshalJSON(data []byte) error {
	var w dayRoutineWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = DayRoutine{
		DailyGoalOverride: w.DailyGoalOverride,
		GoalCompleted:     w.GoalCompleted,
		Note:              w.Note,
		ReminderTime:      w.ReminderTime,
		Reflection:        w.Reflection,
		Mood:              w.Mood,
		AIFeedback:        w.AIFeedback,
		View:              Inherited{},
	}
	if w.Blocks != nil {
		*d = d.WithBlocks(*w.Blocks)
	}
	return nil
}
