package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/printers"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a block or a task",
	}
	addAddBlock(cmd)
	addAddTask(cmd)
	topLevel.AddCommand(cmd)
}

func addAddBlock(parent *cobra.Command) {
	on := &options.OnOptions{}
	cmd := &cobra.Command{
		Use:   "block [title]",
		Short: "Add a daily block to the template, or to one day with --day",
		Example: `
caddr add block Matin
caddr add block Rendez-vous --day --on tomorrow
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			scope, err := on.Scope(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				id := svc.AddBlock(scope, strings.Join(args, " "))
				return emit(map[string]string{"id": id}, func() {
					(&printers.PrettyPrint{}).Created("block", id)
				})
			})
			return output.HandleError(err)
		},
	}
	options.AddDayScopeArgs(cmd, on)
	parent.AddCommand(cmd)
}

func addAddTask(parent *cobra.Command) {
	on := &options.OnOptions{}
	var under string
	cmd := &cobra.Command{
		Use:   "task <block-or-task-id> [title]",
		Short: "Add a task to a block, or a sub-task to a task",
		Long: options.Wrap80(`Add a task at the end of a block. When the id names a task, the new
task becomes one of its sub-tasks. Ids may be shortened to any unique prefix.`),
		Example: `
caddr add task 3f2b Sport
caddr add task 9c1d Etirements
caddr add task 3f2b Dentiste --day --on 2024-3-20
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 && under == "" {
				return errors.New("requires a block or task id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			scope, err := on.Scope(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			target := under
			if target == "" {
				target, args = args[0], args[1:]
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				ref, err := svc.Locate(scope, target)
				if err != nil {
					return err
				}
				if ref.IsSubTask() {
					return errors.New("sub-tasks can not have sub-tasks")
				}
				id := svc.AddTask(scope, ref.BlockID, ref.TaskID, strings.Join(args, " "))
				if id == "" {
					return app.ErrNotFound
				}
				return emit(map[string]string{"id": id}, func() {
					(&printers.PrettyPrint{}).Created("task", id)
				})
			})
			return output.HandleError(err)
		},
	}
	options.AddDayScopeArgs(cmd, on)
	cmd.Flags().StringVar(&under, "under", "", "Block or task id, instead of the first argument.")
	parent.AddCommand(cmd)
}
