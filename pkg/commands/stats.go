package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/analytics"
	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/runner/report"
)

func addStats(topLevel *cobra.Command) {
	var timeframe, since, until string
	var calendar bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion rates, streak and per-block statistics",
		Example: `
caddr stats
caddr stats --timeframe month --calendar
caddr stats --since 2024-1-1 --until 2024-3-31
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			r := report.Stats{Calendar: calendar}
			if since != "" || until != "" {
				now := time.Now()
				var err error
				if r.Since, err = options.ParseDate(since, now); err != nil {
					return output.HandleError(err)
				}
				if r.Until, err = options.ParseDate(until, now); err != nil {
					return output.HandleError(err)
				}
			} else {
				r.Timeframe = analytics.Timeframe(strings.ToLower(timeframe))
			}
			err := withService(cmd.Context(), func(svc *app.Service) error {
				r.Service = svc
				if output.JSON {
					s, err := r.Compute()
					if err != nil {
						return err
					}
					_, err = output.Emit(s)
					return err
				}
				return r.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&timeframe, "timeframe", string(analytics.TimeframeWeek), "One of day, week, month or year.")
	cmd.Flags().StringVar(&since, "since", "", "First date of a custom range.")
	cmd.Flags().StringVar(&until, "until", "", "Last date of a custom range.")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Print a month calendar of daily completion.")
	topLevel.AddCommand(cmd)
}
