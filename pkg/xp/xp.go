// Package xp derives levels and ranks from the experience ledger.
package xp

import "math"

const (
	// LevelConstant scales the level curve: level = floor(sqrt(xp/LevelConstant)) + 1.
	LevelConstant = 50

	// TaskPoints is awarded for completing a top-level task.
	TaskPoints = 15
	// SubTaskPoints is awarded for completing a sub-task.
	SubTaskPoints = 5
	// GoalPoints is awarded for completing the daily goal.
	GoalPoints = 50
)

// Level returns the level for a point total. Negative totals count as zero.
func Level(points int) int {
	if points < 0 {
		points = 0
	}
	return int(math.Floor(math.Sqrt(float64(points)/LevelConstant))) + 1
}

// Threshold is the total needed to leave level. Threshold(0) is 0.
func Threshold(level int) int {
	if level <= 0 {
		return 0
	}
	return level * level * LevelConstant
}

// Progress returns how far points are through level, as a percentage in [0,100].
func Progress(points, level int) float64 {
	lo := Threshold(level - 1)
	hi := Threshold(level)
	if hi <= lo {
		return 0
	}
	pct := float64(points-lo) / float64(hi-lo) * 100
	return math.Max(0, math.Min(100, pct))
}

var ranks = []struct {
	below int
	title string
}{
	{5, "Novice"},
	{10, "Initié"},
	{15, "Disciple"},
	{20, "Adepte"},
	{30, "Expert"},
	{40, "Maître"},
	{50, "Grand Maître"},
	{75, "Sage"},
	{100, "Légende"},
}

// TopRank is the title past the last step.
const TopRank = "Divinité"

// Rank returns the title for level.
func Rank(level int) string {
	for _, r := range ranks {
		if level < r.below {
			return r.title
		}
	}
	return TopRank
}

// Result reports the effect of a points delta.
type Result struct {
	Points      int
	Delta       int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// Award applies delta to points, clamping at zero, and recomputes the level.
// levelBefore is the stored level, which may be stale.
func Award(points, levelBefore, delta int) Result {
	next := points + delta
	if next < 0 {
		next = 0
	}
	after := Level(next)
	return Result{
		Points:      next,
		Delta:       next - points,
		LevelBefore: levelBefore,
		LevelAfter:  after,
		LevelUp:     after > levelBefore,
	}
}
