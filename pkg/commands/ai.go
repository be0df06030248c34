package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/printers"
)

func addAI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Ask the configured advisor for advice, reviews and routines",
		Long: options.Wrap80(`The advisor is an external command set with advisor.command in
.caddr.yaml. It reads one JSON request on stdin and answers with JSON on
stdout. When it is missing or fails, nothing changes.`),
	}

	adviceOn := &options.OnOptions{}
	advice := &cobra.Command{
		Use:   "advice",
		Short: "Get coaching advice on a day's routine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			date, err := adviceOn.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				a := svc.Advice(cmd.Context(), date)
				return emit(a, func() { (&printers.PrettyPrint{}).Advice(a) })
			})
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(advice, adviceOn)
	cmd.AddCommand(advice)

	reviewOn := &options.OnOptions{}
	review := &cobra.Command{
		Use:   "review",
		Short: "Review a day from its reflection and store the feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			date, err := reviewOn.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				if strings.TrimSpace(svc.Day(date).Journal.Reflection) == "" {
					return errors.New("write a reflection first: caddr journal --reflection")
				}
				fb := svc.Review(cmd.Context(), date)
				return emit(fb, func() { (&printers.PrettyPrint{}).Feedback(fb) })
			})
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(review, reviewOn)
	cmd.AddCommand(review)

	cmd.AddCommand(&cobra.Command{
		Use:   "goal <goal>",
		Short: "Draft blocks and tasks toward a goal and append them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				ids := svc.GenerateFromGoal(cmd.Context(), strings.Join(args, " "))
				return emitGenerated(ids)
			})
			return output.HandleError(err)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "image <file>",
		Short: "Read a planner photo and append the routine it shows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			image, err := os.ReadFile(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				return emitGenerated(svc.GenerateFromImage(cmd.Context(), image))
			})
			return output.HandleError(err)
		},
	})

	topLevel.AddCommand(cmd)
}

func emitGenerated(ids []string) error {
	return emit(map[string][]string{"blocks": ids}, func() {
		if len(ids) == 0 {
			fmt.Println("No suggestion available.")
			return
		}
		for _, id := range ids {
			(&printers.PrettyPrint{}).Created("block", id)
		}
	})
}
