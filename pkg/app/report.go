package app

import (
	"fmt"
	"sort"

	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/timeutil"
)

// ReportItem captures a completed task or sub-task and the date it was done.
type ReportItem struct {
	Task   routine.Task `json:"task"`
	Parent string       `json:"parent,omitempty"`
	Date   string       `json:"date"`
}

// ReportSection groups completed tasks by block title.
type ReportSection struct {
	Block   string       `json:"block"`
	Entries []ReportItem `json:"entries"`
}

// ReportResult encapsulates a completed-tasks report for a date window.
type ReportResult struct {
	Since    string          `json:"since"`
	Until    string          `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report returns the tasks completed between since and until inclusive,
// grouped by the title of the block they were scheduled in.
func (s *Service) Report(since, until string) (ReportResult, error) {
	start, err := timeutil.ParseDateKey(since)
	if err != nil {
		return ReportResult{}, fmt.Errorf("app: report since: %w", err)
	}
	end, err := timeutil.ParseDateKey(until)
	if err != nil {
		return ReportResult{}, fmt.Errorf("app: report until: %w", err)
	}
	if start.After(end) {
		since, until = until, since
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.resolver()

	grouped := make(map[string][]ReportItem)
	total := 0
	for _, date := range timeutil.EachDay(since, until) {
		for _, sched := range res.View(s.data, date) {
			for _, st := range sched.Tasks {
				if st.Task.IsDone(date) {
					grouped[sched.Block.Title] = append(grouped[sched.Block.Title], ReportItem{Task: st.Task.Clone(), Date: date})
					total++
				}
				for _, sub := range st.SubTasks {
					if sub.IsDone(date) {
						grouped[sched.Block.Title] = append(grouped[sched.Block.Title], ReportItem{Task: sub.Clone(), Parent: st.Task.Title, Date: date})
						total++
					}
				}
			}
		}
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	if len(grouped) == 0 {
		return result, nil
	}

	titles := make([]string, 0, len(grouped))
	for title := range grouped {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	result.Sections = make([]ReportSection, 0, len(titles))
	for _, title := range titles {
		result.Sections = append(result.Sections, ReportSection{Block: title, Entries: grouped[title]})
	}
	return result, nil
}
