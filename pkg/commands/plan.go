package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/mutate"
)

// addPlan registers the verbs that move work between days and layers.
func addPlan(topLevel *cobra.Command) {
	addReschedule(topLevel)
	addPromote(topLevel)
	addDetach(topLevel)
}

func addReschedule(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var to string
	cmd := &cobra.Command{
		Use:   "reschedule <task id>",
		Short: "Move a task seen on a date to another date",
		Long: options.Wrap80(`Copy the task into a one-off block on the target date and remove it
from the source date only. The template is never changed.`),
		Example: `
caddr reschedule 9c1d --to tomorrow
caddr reschedule 9c1d --on yesterday --to 2024-3-20
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			date, err := on.Date(now)
			if err != nil {
				return output.HandleError(err)
			}
			target, err := options.ParseDate(to, now)
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				ref, err := svc.Locate(mutate.Day(date), args[0])
				if err != nil {
					return err
				}
				if ref.IsBlock() {
					return errors.New("only tasks can be rescheduled")
				}
				if !svc.Reschedule(date, ref, target) {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(cmd, on)
	cmd.Flags().StringVar(&to, "to", "tomorrow", "Target date.")
	topLevel.AddCommand(cmd)
}

func addPromote(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	cmd := &cobra.Command{
		Use:   "promote <id>",
		Short: "Turn a task or block of a detached day into a daily template item",
		Example: `
caddr promote 9c1d --on 2024-3-20
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			date, err := on.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				ref, err := svc.Locate(mutate.Day(date), args[0])
				if err != nil {
					return err
				}
				var ok bool
				if ref.IsBlock() {
					ok = svc.PromoteBlock(date, ref.BlockID)
				} else {
					ok = svc.PromoteTask(date, ref)
				}
				if !ok {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(cmd, on)
	topLevel.AddCommand(cmd)
}

func addDetach(topLevel *cobra.Command) {
	for _, attach := range []bool{false, true} {
		attach := attach
		on := &options.OnOptions{}
		cmd := &cobra.Command{
			Use:   "detach",
			Short: "Give a date its own copy of the resolved routine",
			Args:  cobra.NoArgs,
		}
		if attach {
			cmd.Use = "reattach"
			cmd.Short = "Drop a date's own routine and follow the template again"
		}
		cmd.RunE = func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			date, err := on.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				if !attach {
					svc.Detach(date)
					return nil
				}
				if !svc.Reattach(date) {
					return errors.New("day is not detached")
				}
				return nil
			})
			return output.HandleError(err)
		}
		options.AddOnArgs(cmd, on)
		topLevel.AddCommand(cmd)
	}
}
