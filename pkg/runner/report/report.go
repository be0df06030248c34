// Package report provides the runner that prints completion statistics.
package report

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/printers"
)

// Stats prints the aggregates of a window. Timeframe wins over Since/Until
// when set.
type Stats struct {
	Service   *app.Service
	Timeframe analytics.Timeframe
	Since     string
	Until     string
	Calendar  bool
	Out       io.Writer
}

// Compute returns the statistics Stats would print.
func (n *Stats) Compute() (analytics.Stats, error) {
	if n.Service == nil {
		return analytics.Stats{}, errors.New("can not report, no service")
	}
	if n.Timeframe != "" {
		return n.Service.StatsFor(n.Timeframe)
	}
	return n.Service.Stats(n.Since, n.Until)
}

func (n *Stats) Do(ctx context.Context) error {
	s, err := n.Compute()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Stats(s)
	if n.Calendar {
		pp.Calendar(s.History)
	}
	return nil
}

// Completed prints the tasks completed in a window grouped by block.
type Completed struct {
	Service *app.Service
	Since   string
	Until   string
	Label   string
	Out     io.Writer
}

func (n *Completed) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	r, err := n.Service.Report(n.Since, n.Until)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Report(r, n.Label)
	return nil
}
