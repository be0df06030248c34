package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/reminder"
)

func addRemind(topLevel *cobra.Command) {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Stay in the foreground and announce goal and day reminders",
		Long: `Remind checks the routine every interval and prints a line when a visible
goal's or the day's reminder time matches the current minute. Edits made by
other caddr commands are picked up as they are saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := openWorkspace(ctx)
			if err != nil {
				return output.HandleError(err)
			}
			defer func() { _ = w.Close(cmd.Context()) }()

			events, err := w.Local.Watch(ctx)
			if err != nil {
				w.Log.Warn("not watching for changes", "err", err)
			} else {
				go w.Service.Follow(ctx, events)
			}

			bold := color.New(color.Bold, color.FgYellow)
			notify := func(title string) {
				_, _ = bold.Fprintf(color.Output, "\a%s  %s\n", time.Now().Format("15:04"), title)
			}
			w.Log.Info("watching reminders", "interval", interval)
			var checker reminder.Checker
			checker.Run(ctx, interval, w.Service.Snapshot, notify)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", reminder.PollInterval, "How often to check.")
	topLevel.AddCommand(cmd)
}
