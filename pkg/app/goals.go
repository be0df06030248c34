package app

import (
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/xp"
)

// AddGoal appends a daily recurring goal and returns its id.
func (s *Service) AddGoal(title string) string {
	var id string
	s.update(false, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		data, id = mutate.AddGoal(data, title)
		return data
	})
	return id
}

// DeleteGoal removes a recurring goal after an undo checkpoint.
func (s *Service) DeleteGoal(id string) bool {
	return s.routed(func(data routine.AppData, _ overlay.Resolver) (routine.AppData, bool) {
		if routine.FindGoal(data.RecurringGoals, id) < 0 {
			return data, false
		}
		return mutate.DeleteGoal(data, id), true
	}, true)
}

// UpdateGoal edits a recurring goal. In a day scope only the title and the
// reminder apply, and they land on the day's override and reminder instead.
func (s *Service) UpdateGoal(scope mutate.Scope, id string, updates ...mutate.GoalUpdate) bool {
	if scope.Day {
		var day []mutate.DayUpdate
		for _, u := range updates {
			switch v := u.(type) {
			case mutate.Title:
				day = append(day, mutate.GoalOverride(v))
			case mutate.ReminderTime:
				day = append(day, v)
			}
		}
		return s.UpdateDay(scope.Date, day...)
	}
	return s.routed(func(data routine.AppData, _ overlay.Resolver) (routine.AppData, bool) {
		if routine.FindGoal(data.RecurringGoals, id) < 0 {
			return data, false
		}
		data.RecurringGoals = mutate.UpdateGoal(data.RecurringGoals, id, scope.Date, updates...)
		return data, true
	}, false)
}

// UpdateDay edits the journal of date: goal override, note, reflection,
// mood, feedback or reminder.
func (s *Service) UpdateDay(date string, updates ...mutate.DayUpdate) bool {
	if len(updates) == 0 {
		return false
	}
	s.update(false, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		return mutate.UpdateDay(data, date, updates...)
	})
	return true
}

// Profile is the experience ledger with its derived level data.
type Profile struct {
	XP        int     `json:"xp"`
	Level     int     `json:"level"`
	Rank      string  `json:"rank"`
	Progress  float64 `json:"progress"`
	NextLevel int     `json:"nextLevelXp"`
}

// Profile returns the user's experience summary.
func (s *Service) Profile() Profile {
	s.mu.Lock()
	p := s.data.Profile()
	s.mu.Unlock()
	return Profile{
		XP:        p.XP,
		Level:     p.Level,
		Rank:      xp.Rank(p.Level),
		Progress:  xp.Progress(p.XP, p.Level),
		NextLevel: xp.Threshold(p.Level),
	}
}

// AddInboxTask puts a task at the top of the inbox and returns its id.
func (s *Service) AddInboxTask(title string) string {
	var id string
	s.update(false, func(data routine.AppData, _ overlay.Resolver) routine.AppData {
		data, id = mutate.AddInboxTask(data, title)
		return data
	})
	return id
}

// DeleteInboxTask drops an inbox task after an undo checkpoint.
func (s *Service) DeleteInboxTask(id string) bool {
	return s.routed(func(data routine.AppData, _ overlay.Resolver) (routine.AppData, bool) {
		if routine.FindTask(data.InboxTasks, id) < 0 {
			return data, false
		}
		return mutate.DeleteInboxTask(data, id), true
	}, true)
}

// DeployInboxTask moves an inbox task into a template block after an undo
// checkpoint.
func (s *Service) DeployInboxTask(taskID, blockID string) bool {
	return s.routed(func(data routine.AppData, _ overlay.Resolver) (routine.AppData, bool) {
		return mutate.DeployInboxTask(data, taskID, blockID)
	}, true)
}
