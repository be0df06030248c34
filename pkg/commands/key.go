package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/glyph"
	"tableflip.dev/caddr/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the bullets and signifiers",
		Example: `
caddr key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if output.JSON {
				_, err := output.Emit(glyph.DefaultGlyphs())
				return err
			}
			k := key.Key{}
			err := k.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
