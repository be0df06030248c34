package app

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/timeutil"
)

// MigrationCandidate is a task left undone on a past date. Ref addresses it
// on Date so it can be rescheduled.
type MigrationCandidate struct {
	Date   string     `json:"date"`
	Block  string     `json:"block"`
	Title  string     `json:"title"`
	Parent string     `json:"parent,omitempty"`
	Ref    mutate.Ref `json:"ref"`
}

// MigrationCandidates returns the tasks and sub-tasks that were scheduled
// between since and until but never completed there. Dates after today are
// skipped. Results are most recent first, then by block title.
func (s *Service) MigrationCandidates(since, until string) ([]MigrationCandidate, error) {
	if _, err := timeutil.ParseDateKey(since); err != nil {
		return nil, fmt.Errorf("app: migration since: %w", err)
	}
	if _, err := timeutil.ParseDateKey(until); err != nil {
		return nil, fmt.Errorf("app: migration until: %w", err)
	}
	today := s.Today()
	if until > today {
		until = today
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.resolver()

	var results []MigrationCandidate
	for _, date := range timeutil.EachDay(since, until) {
		for _, sched := range res.View(s.data, date) {
			for _, st := range sched.Tasks {
				if !st.Task.IsDone(date) {
					results = append(results, MigrationCandidate{
						Date:  date,
						Block: sched.Block.Title,
						Title: st.Task.Title,
						Ref:   mutate.TaskRef(sched.Block.ID, st.Task.ID),
					})
				}
				for _, sub := range st.SubTasks {
					if sub.IsDone(date) {
						continue
					}
					results = append(results, MigrationCandidate{
						Date:   date,
						Block:  sched.Block.Title,
						Title:  sub.Title,
						Parent: st.Task.Title,
						Ref:    mutate.SubTaskRef(sched.Block.ID, st.Task.ID, sub.ID),
					})
				}
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Date == results[j].Date {
			return strings.Compare(results[i].Block, results[j].Block) < 0
		}
		return results[i].Date > results[j].Date
	})
	return results, nil
}

// Migrate moves an undone candidate onto target.
func (s *Service) Migrate(c MigrationCandidate, target string) bool {
	return s.Reschedule(c.Date, c.Ref, target)
}
