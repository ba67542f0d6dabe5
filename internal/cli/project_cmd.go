package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/service"
	"github.com/spf13/cobra"
)

var (
	errNameOwnerRequired = errors.New("--name and --owner are required")
	errClearNeedsYes     = errors.New("refusing to clear without --yes")
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectStatusCmd(app),
		newProjectRemoveCmd(app),
		newProjectClearCmd(app),
		newProjectImportCmd(app),
		newProjectExportCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, owner string
	var status domain.ProjectStatus

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project to the top of the backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() && (strings.TrimSpace(name) == "" || strings.TrimSpace(owner) == "") {
				if err := wizardAddProject(&name, &owner, &status).Run(); err != nil {
					return err
				}
			}

			p, err := app.Projects.Add(cmd.Context(), strings.TrimSpace(name), strings.TrimSpace(owner), status)
			if err != nil {
				return err
			}
			if p == nil {
				return errNameOwnerRequired
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(p.Name), formatter.Dim("["+p.DisplayID()+"]"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&owner, "owner", "", "Project owner")
	statusFlag(cmd.Flags(), &status, domain.StatusNotStarted)
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatus)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Projects.Filter(search)
			out := cmd.OutOrStdout()

			if search != "" {
				if len(projects) == 0 {
					fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("No projects match %q.", search)))
					return nil
				}
				fmt.Fprintln(out, formatter.Dim(formatter.BacklogCount(0, len(projects), true)))
			}
			fmt.Fprintln(out, formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, owner, or status")

	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID [STATUS]",
		Short: "Set a project's status, or advance it when STATUS is omitted",
		Args:  cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return completeStatus(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Projects.Resolve(args[0])
			if err != nil {
				return err
			}
			p, ok := app.Projects.Get(id)
			if !ok {
				return fmt.Errorf("%w: %q", service.ErrProjectNotFound, args[0])
			}

			next := p.Status.Next()
			if len(args) == 2 {
				if next, err = domain.ParseStatus(args[1]); err != nil {
					return err
				}
			}

			if err := app.Projects.SetStatus(cmd.Context(), id, next); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(p.Name), formatter.Dim("→"), formatter.StatusPill(next))
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Projects.Resolve(args[0])
			if err != nil {
				return err
			}
			p, ok := app.Projects.Get(id)
			if !ok {
				return fmt.Errorf("%w: %q", service.ErrProjectNotFound, args[0])
			}

			if err := app.Projects.Remove(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(p.Name))
			return nil
		},
	}
}

func newProjectClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every project and delete the saved backlog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errClearNeedsYes
				}
				if err := wizardConfirmClear(len(app.Projects.Projects()), &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing cleared."))
					return nil
				}
			}

			n := len(app.Projects.Projects())
			if err := app.Projects.Clear(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(fmt.Sprintf("%d projects", n)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
