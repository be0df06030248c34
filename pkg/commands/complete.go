package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var goal bool

	cmd := &cobra.Command{
		Use:     "complete [task id]",
		Aliases: []string{"done", "toggle"},
		Short:   "Toggle a task, or the daily goal, on a date",
		Example: `
caddr complete 9c1d
caddr done 9c1d --on yesterday
caddr done --goal
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 && !goal {
				return errors.New("requires a task id or --goal")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			scope, err := on.Scope(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			c := complete.Complete{Scope: scope, Goal: goal}
			if len(args) > 0 {
				c.ID = args[0]
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				c.Service = svc
				if output.JSON {
					res, err := c.Toggle()
					if err != nil {
						return err
					}
					_, err = output.Emit(res)
					return err
				}
				return c.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().BoolVar(&goal, "goal", false, "Toggle the daily goal instead of a task.")
	topLevel.AddCommand(cmd)
}
