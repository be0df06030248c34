package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/mutate"
	"tableflip.dev/caddr/pkg/printers"
)

func addInbox(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Capture tasks now, place them in a block later",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				tasks := svc.Snapshot().InboxTasks
				return emit(tasks, func() { (&printers.PrettyPrint{ShowID: true}).Tasks("Inbox", tasks) })
			})
			return output.HandleError(err)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Put a task at the top of the inbox",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id := svc.AddInboxTask(strings.Join(args, " "))
				return emit(map[string]string{"id": id}, func() {
					(&printers.PrettyPrint{}).Created("inbox task", id)
				})
			})
			return output.HandleError(err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <inbox id>",
		Aliases: []string{"delete"},
		Short:   "Drop an inbox task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.InboxID(args[0])
				if err != nil {
					return err
				}
				if !svc.DeleteInboxTask(id) {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "deploy <inbox id> <block id>",
		Short: "Move an inbox task to the end of a template block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.InboxID(args[0])
				if err != nil {
					return err
				}
				ref, err := svc.Locate(mutate.Global(svc.Today()), args[1])
				if err != nil {
					return err
				}
				if !svc.DeployInboxTask(id, ref.BlockID) {
					return app.ErrNotFound
				}
				return nil
			})
			return output.HandleError(err)
		},
	})

	topLevel.AddCommand(cmd)
}
