package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	ids := &options.IDOptions{}
	var days int

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "today"},
		Short:   "Show the routine, goal and journal of a day",
		Example: `
caddr show
caddr show --on yesterday
caddr show --on 2024-3-1 --days 6 --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			date, err := on.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				s := show.Show{Service: svc, Date: date, Days: days, ShowID: ids.ShowID}
				if output.JSON {
					views, err := s.Views()
					if err != nil {
						return err
					}
					_, err = output.Emit(views)
					return err
				}
				return s.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, ids)
	cmd.Flags().IntVar(&days, "days", 0, "Number of following days to include.")
	topLevel.AddCommand(cmd)
}
