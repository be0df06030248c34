// Package analytics folds a date range of routine history into statistics.
package analytics

import (
	"math"
	"sort"

	"tableflip.dev/caddr/pkg/overlay"
	"tableflip.dev/caddr/pkg/routine"
	"tableflip.dev/caddr/pkg/timeutil"
)

// DayPerf is one point of the completion series.
type DayPerf struct {
	Date      string `json:"date"`
	Scheduled int    `json:"scheduled"`
	Done      int    `json:"done"`
	Percent   int    `json:"val"`
}

// BestDay is the highest scoring date of a range.
type BestDay struct {
	Date    string `json:"date"`
	Percent int    `json:"val"`
}

// BlockStat aggregates every appearance of blocks sharing a title.
type BlockStat struct {
	Title       string `json:"title"`
	Appearances int    `json:"totalAppearances"`
	Validated   int    `json:"fullyValidated"`
	Rate        int    `json:"rate"`
}

// LogEntry is one scheduled task or sub-task occurrence.
type LogEntry struct {
	Date      string           `json:"date"`
	Title     string           `json:"title"`
	Block     string           `json:"block"`
	Parent    string           `json:"parent,omitempty"`
	Completed bool             `json:"completed"`
	Priority  routine.Priority `json:"priority,omitempty"`
}

// DayBlocks counts scheduled and fully validated blocks for a date.
type DayBlocks struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Validated int    `json:"validated"`
}

// Stats is the summary of a range.
type Stats struct {
	Start          string      `json:"start"`
	End            string      `json:"end"`
	Average        int         `json:"avg"`
	TotalScheduled int         `json:"totalScheduledCount"`
	TotalDone      int         `json:"totalDoneCount"`
	Streak         int         `json:"streakCount"`
	Best           BestDay     `json:"bestDay"`
	History        []DayPerf   `json:"history"`
	Blocks         []BlockStat `json:"sortedBlockStats"`
	Log            []LogEntry  `json:"taskLog"`
	DailyBlocks    []DayBlocks `json:"dailyBlockHistory"`
}

// Aggregator walks dates through a resolver.
type Aggregator struct {
	Resolver overlay.Resolver
}

// New returns an aggregator over res.
func New(res overlay.Resolver) Aggregator {
	return Aggregator{Resolver: res}
}

// Compute summarises every date from start to end inclusive. today is the
// running date, which never breaks a streak.
func (a Aggregator) Compute(data routine.AppData, start, end, today string) Stats {
	st := Stats{
		Start:       start,
		End:         end,
		History:     []DayPerf{},
		Log:         []LogEntry{},
		DailyBlocks: []DayBlocks{},
	}
	blockIndex := map[string]int{}
	var blocks []BlockStat

	for _, date := range timeutil.EachDay(start, end) {
		day := DayPerf{Date: date}
		db := DayBlocks{Date: date}

		for _, s := range a.Resolver.View(data, date) {
			if len(s.Tasks) == 0 {
				continue
			}
			db.Total++
			i, ok := blockIndex[s.Block.Title]
			if !ok {
				i = len(blocks)
				blockIndex[s.Block.Title] = i
				blocks = append(blocks, BlockStat{Title: s.Block.Title})
			}
			blocks[i].Appearances++

			total, done := 0, 0
			count := func(t routine.Task, parent string) {
				total++
				completed := t.IsDone(date)
				if completed {
					done++
				}
				st.Log = append(st.Log, LogEntry{
					Date:      date,
					Title:     t.Title,
					Block:     s.Block.Title,
					Parent:    parent,
					Completed: completed,
					Priority:  t.Priority,
				})
			}
			for _, t := range s.Tasks {
				count(t.Task, "")
				for _, sub := range t.SubTasks {
					count(sub, t.Task.Title)
				}
			}
			day.Scheduled += total
			day.Done += done
			if total > 0 && done == total {
				db.Validated++
				blocks[i].Validated++
			}
		}

		day.Percent = percent(day.Done, day.Scheduled)
		st.TotalScheduled += day.Scheduled
		st.TotalDone += day.Done
		st.History = append(st.History, day)
		st.DailyBlocks = append(st.DailyBlocks, db)

		if day.Percent == 100 {
			st.Streak++
		} else if date != today {
			st.Streak = 0
		}
		if day.Percent > st.Best.Percent {
			st.Best = BestDay{Date: date, Percent: day.Percent}
		}
	}

	st.Average = percent(st.TotalDone, st.TotalScheduled)
	for i := range blocks {
		blocks[i].Rate = percent(blocks[i].Validated, blocks[i].Appearances)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Rate > blocks[j].Rate
	})
	if blocks == nil {
		blocks = []BlockStat{}
	}
	st.Blocks = blocks

	for i, j := 0, len(st.Log)-1; i < j; i, j = i+1, j-1 {
		st.Log[i], st.Log[j] = st.Log[j], st.Log[i]
	}
	return st
}

// Day returns the completion of a single date.
func (a Aggregator) Day(data routine.AppData, date string) DayPerf {
	st := a.Compute(data, date, date, date)
	if len(st.History) == 0 {
		return DayPerf{Date: date}
	}
	return st.History[0]
}

// CompletedTitles lists titles of tasks and sub-tasks done on date.
func (a Aggregator) CompletedTitles(data routine.AppData, date string) []string {
	var titles []string
	for _, s := range a.Resolver.View(data, date) {
		for _, t := range s.Tasks {
			if t.Task.IsDone(date) {
				titles = append(titles, t.Task.Title)
			}
			for _, sub := range t.SubTasks {
				if sub.IsDone(date) {
					titles = append(titles, sub.Title)
				}
			}
		}
	}
	return titles
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
