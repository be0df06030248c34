// Package glyph holds the symbols used to print a routine in the terminal.
package glyph

import (
	"fmt"

	"tableflip.dev/caddr/pkg/routine"
)

type Glyph struct {
	Key       string
	Symbol    string
	Meaning   string
	Signifier bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Italic(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, italicCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// DefaultGlyphs is the legend, bullets first, in display order.
func DefaultGlyphs() []Glyph {
	return []Glyph{
		{Key: "+", Symbol: "●", Meaning: "task"},
		{Key: "x", Symbol: "✘", Meaning: "task completed"},
		{Key: "o", Symbol: "○", Meaning: "daily goal"},
		{Key: "*", Symbol: "★", Meaning: "daily goal reached"},
		{Key: "#", Symbol: "▸", Meaning: "block"},
		{Key: "~", Symbol: "▪", Meaning: "locked block"},
		{Key: "!", Symbol: "✷", Meaning: "high priority", Signifier: true},
		{Key: "^", Symbol: "!", Meaning: "medium priority", Signifier: true},
		{Key: " ", Symbol: " ", Meaning: "low or no priority", Signifier: true},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int
type Signifier int

const (
	Task Bullet = iota
	Completed
	Goal
	GoalReached
	Block
	LockedBlock
)

const (
	High Signifier = iota + Signifier(LockedBlock) + 1
	Medium
	None
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}

func (s Signifier) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Signifier) String() string {
	return s.Glyph().String()
}

// ForTask picks the bullet of t as seen on date.
func ForTask(t routine.Task, date string) Bullet {
	if t.IsDone(date) {
		return Completed
	}
	return Task
}

// ForPriority maps a task priority to its signifier.
func ForPriority(p routine.Priority) Signifier {
	switch p {
	case routine.PriorityHigh:
		return High
	case routine.PriorityMedium:
		return Medium
	default:
		return None
	}
}

// ForBlock picks the bullet of a block header.
func ForBlock(b routine.Block) Bullet {
	if b.IsLocked {
		return LockedBlock
	}
	return Block
}

// ForGoal picks the bullet of the daily goal line.
func ForGoal(done bool) Bullet {
	if done {
		return GoalReached
	}
	return Goal
}
