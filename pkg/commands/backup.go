package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
)

// addBackup registers import, export, reset, undo and sync.
func addBackup(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole routine with a backup file",
		Long: `Import validates the file first; an invalid backup leaves the routine untouched.
The previous routine can be restored with "caddr undo".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				return svc.Import(f)
			})
			return output.HandleError(err)
		},
	})

	var dir string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the whole routine to caddr_backup_<date>.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				var buf bytes.Buffer
				if err := svc.Export(&buf); err != nil {
					return err
				}
				path := filepath.Join(dir, svc.BackupFileName())
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return err
				}
				return emit(map[string]string{"path": path}, func() { fmt.Println(path) })
			})
			return output.HandleError(err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "Directory to write to.")
	topLevel.AddCommand(export)

	var archive string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear blocks and goals, optionally archiving them as a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				return svc.Reset(cmd.Flags().Changed("archive"), archive)
			})
			return output.HandleError(err)
		},
	}
	reset.Flags().StringVar(&archive, "archive", "", "Archive the routine under this template name first.")
	topLevel.AddCommand(reset)

	topLevel.AddCommand(&cobra.Command{
		Use:   "undo",
		Short: "Restore the routine as it was before the last delete, import, apply, reset or reschedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				if err := svc.Undo(); err != nil {
					return err
				}
				left := svc.UndoDepth()
				return emit(map[string]int{"remaining": left}, func() {
					fmt.Printf("Undone, %d checkpoints left\n", left)
				})
			})
			return output.HandleError(err)
		},
	})

	topLevel.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Save the routine locally and remotely now and report the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				if err := svc.Flush(cmd.Context()); err != nil {
					return err
				}
				st := svc.SyncStatus()
				report := map[string]any{"origin": svc.Origin(), "lastSync": st.LastSync, "pending": st.Pending}
				return emit(report, func() {
					fmt.Printf("Loaded from %s, synced at %s\n", svc.Origin(), st.LastSync.Format("2006-01-02 15:04:05"))
				})
			})
			return output.HandleError(err)
		},
	})
}
