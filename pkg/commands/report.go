package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed tasks grouped by block",
		Long: `Report lists completed tasks grouped by block within the specified time window.

Examples:
  caddr report
  caddr report --last 3d
  caddr report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, until, label, err := wo.Range(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				if output.JSON {
					result, err := svc.Report(since, until)
					if err != nil {
						return err
					}
					_, err = output.Emit(result)
					return err
				}
				r := report.Completed{Service: svc, Since: since, Until: until, Label: label}
				return r.Do(cmd.Context())
			})
			return output.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	topLevel.AddCommand(cmd)
}
