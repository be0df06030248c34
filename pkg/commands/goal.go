package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/printers"
	"tableflip.dev/caddr/pkg/runner/complete"
)

func addGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage recurring goals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recurring goals",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				goals := svc.Snapshot().RecurringGoals
				return emit(goals, func() { (&printers.PrettyPrint{}).Goals(goals) })
			})
			return output.HandleError(err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Add a daily recurring goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id := svc.AddGoal(strings.Join(args, " "))
				return emit(map[string]string{"id": id}, func() {
					(&printers.PrettyPrint{}).Created("goal", id)
				})
			})
			return output.HandleError(err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <goal id>",
		Aliases: []string{"delete"},
		Short:   "Delete a recurring goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.GoalID(args[0])
				if err != nil {
					return err
				}
				if !svc.DeleteGoal(id) {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	})

	fo := &options.FieldOptions{}
	on := &options.OnOptions{}
	set := &cobra.Command{
		Use:   "set <goal id>",
		Short: "Edit a recurring goal, or override it for one day with --day",
		Example: `
caddr goal set 71ab --title "Lire 20 pages" --reminder 21:00
caddr goal set 71ab --title "Finir le rapport" --day --on tomorrow
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			scope, err := on.Scope(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				id := args[0]
				if !scope.Day {
					if id, err = svc.GoalID(args[0]); err != nil {
						return err
					}
				}
				updates, err := fo.GoalUpdates(cmd)
				if err != nil {
					return err
				}
				if !svc.UpdateGoal(scope, id, updates...) {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	}
	options.AddGoalFieldArgs(set, fo)
	options.AddDayScopeArgs(set, on)
	cmd.AddCommand(set)

	doneOn := &options.OnOptions{}
	done := &cobra.Command{
		Use:   "done",
		Short: "Toggle the daily goal of a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			scope, err := doneOn.Scope(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				c := complete.Complete{Service: svc, Scope: scope, Goal: true}
				return c.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(done, doneOn)
	cmd.AddCommand(done)

	topLevel.AddCommand(cmd)
}
