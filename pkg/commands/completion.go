package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(caddr completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(caddr completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completeTemplates offers saved template names for the first argument.
func completeTemplates(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return templateCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}

func templateCompletions(toComplete string) []string {
	ctx := context.Background()
	w, err := openWorkspace(ctx)
	if err != nil {
		return nil
	}
	defer func() { _ = w.Close(ctx) }()

	var names []string
	for _, t := range w.Service.Templates() {
		if strings.HasPrefix(t.Name, toComplete) {
			names = append(names, strconv.Quote(t.Name))
		}
	}
	return names
}
