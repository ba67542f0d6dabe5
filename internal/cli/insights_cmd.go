package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(app.Projects.Aggregate()))
			return nil
		},
	}
}

func newInsightsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Ask the AI assistant for a status report on all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Projects.Projects()

			stop := func() {}
			if app.interactive() && len(projects) > 0 {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Analyzing...")
			}
			text := app.AI.ProjectInsights(cmd.Context(), projects)
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInsights(text))
			return nil
		},
	}
}

func newPreviewCmd(app *App) *cobra.Command {
	var name, owner string
	var status domain.ProjectStatus

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Ask the AI assistant for first-step suggestions on a new project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, owner = strings.TrimSpace(name), strings.TrimSpace(owner)
			if name == "" || owner == "" {
				return errNameOwnerRequired
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Generating preview...")
			}
			text := app.AI.ProjectPreview(cmd.Context(), name, owner, status)
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("AI Preview", strings.TrimSpace(text)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&owner, "owner", "", "Project owner")
	statusFlag(cmd.Flags(), &status, domain.StatusNotStarted)
	_ = cmd.RegisterFlagCompletionFunc("status", completeStatus)

	return cmd
}
