package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/mutate"
)

func addJournal(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	var note, reflection, mood, reminder, goal string

	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"note", "log"},
		Short:   "Write the note, reflection, mood or reminder of a day",
		Example: `
caddr journal --note "Bonne énergie ce matin"
caddr journal --reflection "Trop de réunions" --mood neutral --on yesterday
caddr journal --reminder 07:30 --goal "Finir le rapport"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			date, err := on.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			var updates []mutate.DayUpdate
			flags := cmd.Flags()
			if flags.Changed("note") {
				updates = append(updates, mutate.Note(note))
			}
			if flags.Changed("reflection") {
				updates = append(updates, mutate.Reflection(reflection))
			}
			if flags.Changed("mood") {
				updates = append(updates, mutate.Mood(mood))
			}
			if flags.Changed("reminder") {
				updates = append(updates, mutate.ReminderTime(reminder))
			}
			if flags.Changed("goal") {
				updates = append(updates, mutate.GoalOverride(goal))
			}
			if len(updates) == 0 {
				return output.HandleError(errors.New("nothing to write, pass at least one flag"))
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				svc.UpdateDay(date, updates...)
				return nil
			})
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, on)
	cmd.Flags().StringVar(&note, "note", "", "Free note for the day.")
	cmd.Flags().StringVar(&reflection, "reflection", "", "End of day reflection.")
	cmd.Flags().StringVar(&mood, "mood", "", "One of great, good, neutral or bad.")
	cmd.Flags().StringVar(&reminder, "reminder", "", "Reminder time as HH:MM.")
	cmd.Flags().StringVar(&goal, "goal", "", "Override the daily goal for this day.")
	topLevel.AddCommand(cmd)
}
