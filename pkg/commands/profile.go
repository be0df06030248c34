package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/printers"
)

func addProfile(topLevel *cobra.Command) {
	topLevel.AddCommand(&cobra.Command{
		Use:     "profile",
		Aliases: []string{"xp", "level"},
		Short:   "Show experience, level and rank",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				p := svc.Profile()
				return emit(p, func() { (&printers.PrettyPrint{}).Profile(p) })
			})
			return output.HandleError(err)
		},
	})
}
