// Package history keeps a bounded stack of routine snapshots for undo.
package history

import (
	"encoding/json"
	"errors"

	"tableflip.dev/caddr/pkg/routine"
)

// DefaultDepth is the number of checkpoints retained.
const DefaultDepth = 20

// ErrEmpty is returned by Pop when there is nothing to undo.
var ErrEmpty = errors.New("history: nothing to undo")

// Stack is a LIFO of deep copies. The oldest checkpoint is dropped once the
// depth is reached. The zero value uses DefaultDepth.
type Stack struct {
	Depth     int
	snapshots []routine.AppData
}

// New returns a stack holding at most depth checkpoints.
func New(depth int) *Stack {
	return &Stack{Depth: depth}
}

func (s *Stack) depth() int {
	if s.Depth <= 0 {
		return DefaultDepth
	}
	return s.Depth
}

// Push records a deep copy of data.
func (s *Stack) Push(data routine.AppData) {
	s.snapshots = append(s.snapshots, data.Clone())
	if over := len(s.snapshots) - s.depth(); over > 0 {
		s.snapshots = append([]routine.AppData(nil), s.snapshots[over:]...)
	}
}

// Pop removes and returns the most recent checkpoint.
func (s *Stack) Pop() (routine.AppData, error) {
	if len(s.snapshots) == 0 {
		return routine.AppData{}, ErrEmpty
	}
	last := s.snapshots[len(s.snapshots)-1]
	s.snapshots = s.snapshots[:len(s.snapshots)-1]
	return last, nil
}

// Len returns the number of checkpoints held.
func (s *Stack) Len() int {
	return len(s.snapshots)
}

// MarshalJSON writes the checkpoints oldest first.
func (s *Stack) MarshalJSON() ([]byte, error) {
	snaps := s.snapshots
	if snaps == nil {
		snaps = []routine.AppData{}
	}
	return json.Marshal(snaps)
}

// UnmarshalJSON restores checkpoints, keeping only the newest ones.
func (s *Stack) UnmarshalJSON(data []byte) error {
	var snaps []routine.AppData
	if err := json.Unmarshal(data, &snaps); err != nil {
		return err
	}
	s.snapshots = nil
	for _, snap := range snaps {
		s.Push(routine.Normalize(snap))
	}
	return nil
}
