// Package complete provides the runner logic for toggling tasks and goals.
package complete

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/progress"
)

// Complete toggles the task named by ID on Scope.Date, or the daily goal
// when Goal is set.
type Complete struct {
	Service *app.Service
	Scope   mutate.Scope
	ID      string
	Goal    bool
	Out     io.Writer
}

// Toggle applies the toggle and returns its outcome.
func (n *Complete) Toggle() (progress.Result, error) {
	if n.Service == nil {
		return progress.Result{}, errors.New("can not complete, no service")
	}
	if n.Goal {
		return n.Service.ToggleGoal(n.Scope.Date), nil
	}
	// Completions belong to a date, so look in what that date shows.
	ref, err := n.Service.Locate(mutate.Day(n.Scope.Date), n.ID)
	if err != nil {
		return progress.Result{}, err
	}
	if ref.IsBlock() {
		return progress.Result{}, fmt.Errorf("%s is a block, not a task", n.ID)
	}
	res := n.Service.Toggle(n.Scope, ref)
	if !res.Found {
		return res, fmt.Errorf("%w: %s", app.ErrNotFound, n.ID)
	}
	return res, nil
}

func (n *Complete) Do(ctx context.Context) error {
	res, err := n.Toggle()
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	state := "reopened"
	if res.Completed {
		state = "completed"
	}
	_, _ = fmt.Fprintf(out, "%s on %s (%+d XP, %d total)\n", state, n.Scope.Date, res.XP.Delta, res.XP.Points)
	if res.XP.LevelUp {
		_, _ = color.New(color.Bold, color.FgGreen).Fprintf(out, "Level up! %d → %d\n", res.XP.LevelBefore, res.XP.LevelAfter)
	}
	return nil
}
