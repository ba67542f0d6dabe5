package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/intelligence"
	"github.com/alexanderramin/teamflow/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the collection and the AI gateway used by commands and views.
type App struct {
	Projects service.ProjectTracker
	AI       intelligence.Gateway

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// headless returns a copy of the app that never prompts or starts the TUI.
func (a *App) headless() *App {
	cp := *a
	cp.IsInteractive = func() bool { return false }
	return &cp
}

// NewRootCmd creates the top-level "teamflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "teamflow",
		Short:        "Team project tracker with AI status reports",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(app.Projects.Projects(), app.now()))
			return nil
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newStatsCmd(app),
		newInsightsCmd(app),
		newPreviewCmd(app),
	)

	return root
}

func runTUI(app *App) error {
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
