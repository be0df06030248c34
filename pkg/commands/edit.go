package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/printers"
)

func addEdit(topLevel *cobra.Command) {
	fo := &options.FieldOptions{}
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "edit <id>",
		Aliases: []string{"set"},
		Short:   "Edit the fields of a block or task",
		Long: options.Wrap80(`Edit a block or task in the template, or in one day with --day. Only
the flags given are changed. Switching to a dated recurrence fills missing
dates with the selected day.`),
		Example: `
caddr edit 9c1d --title "Sport 30 min" --priority high --start-time 07:00
caddr edit 3f2b --recurrence weekdays
caddr edit 9c1d --note "done at the gym" --on yesterday
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			scope, err := on.Scope(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				ref, err := svc.Locate(scope, args[0])
				if err != nil {
					return err
				}
				var ok bool
				if ref.IsBlock() {
					updates, err := fo.BlockUpdates(cmd)
					if err != nil {
						return err
					}
					ok = svc.UpdateBlock(scope, ref.BlockID, updates...)
				} else {
					updates, err := fo.TaskUpdates(cmd)
					if err != nil {
						return err
					}
					ok = svc.UpdateTask(scope, ref, updates...)
				}
				if !ok {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddDayScopeArgs(cmd, on)
	options.AddTaskFieldArgs(cmd, fo)
	cmd.Flags().BoolVar(&fo.Collapsed, "collapsed", false, "Collapse the block.")
	cmd.Flags().BoolVar(&fo.Locked, "locked", false, "Lock the block.")
	topLevel.AddCommand(cmd)

	addStructural(topLevel)
}

// addStructural registers the verbs that reshape the tree: rm, move, dup and
// collapse.
func addStructural(topLevel *cobra.Command) {
	structural := func(use, short string, aliases []string, minArgs int, run func(*app.Service, mutate.Scope, mutate.Ref, []string) error) {
		on := &options.OnOptions{}
		cmd := &cobra.Command{
			Use:     use,
			Aliases: aliases,
			Short:   short,
			Args:    cobra.MinimumNArgs(minArgs),
			RunE: func(cmd *cobra.Command, args []string) error {
				cmd.SilenceUsage = true
				scope, err := on.Scope(time.Now())
				if err != nil {
					return output.HandleError(err)
				}
				err = withService(cmd.Context(), func(svc *app.Service) error {
					ref, err := svc.Locate(scope, args[0])
					if err != nil {
						return err
					}
					return run(svc, scope, ref, args[1:])
				})
				return output.HandleError(err)
			},
		}
		options.AddDayScopeArgs(cmd, on)
		topLevel.AddCommand(cmd)
	}

	structural("rm <id>", "Delete a block, task or sub-task", []string{"delete"}, 1,
		func(svc *app.Service, scope mutate.Scope, ref mutate.Ref, _ []string) error {
			if !svc.Delete(scope, ref) {
				return app.ErrNotFound
			}
			return nil
		})

	structural("move <id> <up|down>", "Move a block, task or sub-task among its siblings", []string{"mv"}, 2,
		func(svc *app.Service, scope mutate.Scope, ref mutate.Ref, args []string) error {
			var dir mutate.Direction
			switch strings.ToLower(args[0]) {
			case "up":
				dir = mutate.Up
			case "down":
				dir = mutate.Down
			default:
				return fmt.Errorf("unknown direction %q (expected up or down)", args[0])
			}
			if !svc.Move(scope, ref, dir) {
				return app.ErrNotFound
			}
			return nil
		})

	structural("dup <id>", "Duplicate a block, task or sub-task with fresh ids", []string{"duplicate"}, 1,
		func(svc *app.Service, scope mutate.Scope, ref mutate.Ref, _ []string) error {
			id := svc.Duplicate(scope, ref)
			if id == "" {
				return app.ErrNotFound
			}
			return emit(map[string]string{"id": id}, func() {
				(&printers.PrettyPrint{}).Created("copy", id)
			})
		})

	structural("collapse <block id>", "Fold or unfold a block", nil, 1,
		func(svc *app.Service, scope mutate.Scope, ref mutate.Ref, _ []string) error {
			if !ref.IsBlock() {
				return errors.New("only blocks can be collapsed")
			}
			if !svc.ToggleCollapse(scope, ref.BlockID) {
				return app.ErrNotFound
			}
			return nil
		})
}
