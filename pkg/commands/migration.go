package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/printers"
)

func addMigration(topLevel *cobra.Command) {
	migrationCmd := &cobra.Command{
		Use:   "migration",
		Short: "Inspect and reschedule tasks left undone",
	}

	addMigrationList(migrationCmd)
	addMigrationApply(migrationCmd)
	topLevel.AddCommand(migrationCmd)
}

func addMigrationList(parent *cobra.Command) {
	wo := &options.WindowOptions{}
	ids := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List migration candidates using the specified time window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			since, until, label, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				candidates, err := svc.MigrationCandidates(since, until)
				if err != nil {
					return err
				}
				return emit(candidates, func() {
					(&printers.PrettyPrint{ShowID: ids.ShowID}).Migration(candidates, since, until, label)
				})
			})
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddShowIDArgs(cmd, ids)
	parent.AddCommand(cmd)
}

func addMigrationApply(parent *cobra.Command) {
	wo := &options.WindowOptions{}
	var to string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reschedule every candidate of the window to one date",
		Example: `
caddr migration apply --last 3d --to today
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			since, until, _, err := wo.Range(now)
			if err != nil {
				return output.HandleError(err)
			}
			target, err := options.ParseDate(to, now)
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				candidates, err := svc.MigrationCandidates(since, until)
				if err != nil {
					return err
				}
				moved := 0
				for _, c := range candidates {
					if c.Date == target {
						continue
					}
					if svc.Migrate(c, target) {
						moved++
					}
				}
				return emit(map[string]int{"moved": moved}, func() {
					fmt.Printf("Moved %d of %d tasks to %s\n", moved, len(candidates), target)
				})
			})
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	cmd.Flags().StringVar(&to, "to", "today", "Target date.")
	parent.AddCommand(cmd)
}
