package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "caddr",
		Short: options.Wrap80("Daily routines, habits and goals on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&output.JSON, "json", false, "Output as JSON.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addKey(topLevel)
	addAdd(topLevel)
	addComplete(topLevel)
	addEdit(topLevel)
	addPlan(topLevel)
	addGoal(topLevel)
	addJournal(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addMigration(topLevel)
	addTemplate(topLevel)
	addInbox(topLevel)
	addBackup(topLevel)
	addProfile(topLevel)
	addAI(topLevel)
	addRemind(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
