package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/caddr/pkg/app"
	"tableflip.dev/caddr/pkg/commands/options"
	"tableflip.dev/caddr/pkg/printers"
)

func addTemplate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Save, apply and edit routine templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				list := svc.Templates()
				editing, _ := svc.EditingTemplate()
				return emit(list, func() { (&printers.PrettyPrint{}).Templates(list, editing) })
			})
			return output.HandleError(err)
		},
	})

	var goal string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the live routine as a template and clear it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.SaveTemplate(strings.Join(args, " "), goal)
				if err != nil {
					return err
				}
				return emit(map[string]string{"id": id}, func() {
					(&printers.PrettyPrint{}).Created("template", id)
				})
			})
			return output.HandleError(err)
		},
	}
	save.Flags().StringVar(&goal, "goal", "", "Goal scheduled when the template is applied.")
	cmd.AddCommand(save)

	on := &options.OnOptions{}
	apply := &cobra.Command{
		Use:               "apply <template>",
		Short:             "Replace the live routine with a template",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			date, err := on.Date(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			err = withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.TemplateID(args[0])
				if err != nil {
					return err
				}
				return svc.ApplyTemplate(id, date)
			})
			return output.HandleError(err)
		},
	}
	options.AddOnArgs(apply, on)
	cmd.AddCommand(apply)

	var newGoal string
	rename := &cobra.Command{
		Use:               "rename <template> <name>",
		Short:             "Rename a template and set its goal",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.TemplateID(args[0])
				if err != nil {
					return err
				}
				g := newGoal
				if !cmd.Flags().Changed("goal") {
					for _, t := range svc.Templates() {
						if t.ID == id {
							g = t.TemplateGoal
						}
					}
				}
				return svc.RenameTemplate(id, strings.Join(args[1:], " "), g)
			})
			return output.HandleError(err)
		},
	}
	rename.Flags().StringVar(&newGoal, "goal", "", "Goal scheduled when the template is applied.")
	cmd.AddCommand(rename)

	cmd.AddCommand(templateVerb("rm <template>", "Delete a template", func(svc *app.Service, id string) error {
		return svc.RemoveTemplate(id)
	}))
	cmd.AddCommand(templateVerb("edit <template>", "Load a template into the live routine for editing", func(svc *app.Service, id string) error {
		return svc.BeginTemplateEdit(id)
	}))

	cmd.AddCommand(&cobra.Command{
		Use:   "commit",
		Short: "Write the edited routine back to its template and restore the live one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withService(cmd.Context(), func(svc *app.Service) error {
				return svc.CommitTemplateEdit()
			}))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Discard template edits and restore the live routine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return output.HandleError(withService(cmd.Context(), func(svc *app.Service) error {
				return svc.CancelTemplateEdit()
			}))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Add a template file to the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				id, err := svc.ImportTemplate(f)
				if err != nil {
					return err
				}
				return emit(map[string]string{"id": id}, func() {
					(&printers.PrettyPrint{}).Created("template", id)
				})
			})
			return output.HandleError(err)
		},
	})

	var dir string
	export := &cobra.Command{
		Use:               "export <template>",
		Short:             "Write a template to caddr_template_<name>.json",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.TemplateID(args[0])
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				name, err := svc.ExportTemplate(&buf, id)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, name)
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return err
				}
				return emit(map[string]string{"path": path}, func() { fmt.Println(path) })
			})
			return output.HandleError(err)
		},
	}
	export.Flags().StringVar(&dir, "dir", ".", "Directory to write to.")
	cmd.AddCommand(export)

	topLevel.AddCommand(cmd)
}

func templateVerb(use, short string, run func(*app.Service, string) error) *cobra.Command {
	return &cobra.Command{
		Use:               use,
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withService(cmd.Context(), func(svc *app.Service) error {
				id, err := svc.TemplateID(args[0])
				if err != nil {
					return err
				}
				return run(svc, id)
			})
			return output.HandleError(err)
		},
	}
}
