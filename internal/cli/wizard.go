package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// teamflowHuhTheme styles huh prompts with the TUI palette: indigo for the
// focused field, slate for everything blurred.
func teamflowHuhTheme() *huh.Theme {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	accent, muted, text := formatter.ColorHeader, formatter.ColorDim, formatter.ColorFg

	t := huh.ThemeBase()

	f := &t.Focused
	f.Title = fg(accent).Bold(true)
	f.Description = fg(muted)
	f.SelectSelector = fg(accent)
	f.SelectedOption = fg(formatter.ColorGreen)
	f.UnselectedOption = fg(text)
	f.FocusedButton = formatter.StyleBadge
	f.BlurredButton = fg(muted).Padding(0, 1)
	f.TextInput.Cursor = fg(accent)
	f.TextInput.Prompt = fg(accent)
	f.TextInput.Text = fg(text)
	f.TextInput.Placeholder = fg(muted)

	b := &t.Blurred
	for _, st := range []*lipgloss.Style{
		&b.Title, &b.SelectSelector, &b.SelectedOption, &b.UnselectedOption,
		&b.TextInput.Prompt, &b.TextInput.Text,
	} {
		*st = fg(muted)
	}

	return t
}

// requireNonBlank returns a huh validator rejecting empty or whitespace input.
func requireNonBlank(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// statusOptions lists the statuses as huh select options in workflow order.
func statusOptions() []huh.Option[domain.ProjectStatus] {
	opts := make([]huh.Option[domain.ProjectStatus], 0, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		opts = append(opts, huh.NewOption(string(st), st))
	}
	return opts
}

// wizardAddProject creates a huh form collecting a new project's fields.
// Values already set on the pointers are used as defaults.
func wizardAddProject(name, owner *string, status *domain.ProjectStatus) *huh.Form {
	if !status.Valid() {
		*status = domain.StatusNotStarted
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Placeholder("Design Audit...").
				Value(name).
				Validate(requireNonBlank("Project name")),
			huh.NewInput().
				Title("Project Owner").
				Placeholder("Full Name...").
				Value(owner).
				Validate(requireNonBlank("Project owner")),
			huh.NewSelect[domain.ProjectStatus]().
				Title("Status").
				Options(statusOptions()...).
				Value(status),
		).Title("New Project Entry"),
	).WithTheme(teamflowHuhTheme()).WithShowHelp(false)
}

// wizardConfirmClear asks before the whole backlog is deleted.
func wizardConfirmClear(count int, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d projects?", count)).
				Description("The saved backlog is removed too.").
				Affirmative("Clear").
				Negative("Keep").
				Value(confirmed),
		),
	).WithTheme(teamflowHuhTheme()).WithShowHelp(false)
}
