package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
)

// captureCobraOutput runs a command through the Cobra tree and captures output.
// The app is made headless so handlers never prompt or start a nested TUI
// inside the alternate screen.
func captureCobraOutput(app *App, args []string) string {
	var buf strings.Builder

	root := NewRootCmd(app.headless())
	root.SetOut(&buf)
	root.SetErr(&buf)
	// Cobra falls back to os.Args when args is nil.
	root.SetArgs(append([]string{}, args...))
	root.SilenceUsage = true
	root.SilenceErrors = true

	if execErr := root.Execute(); execErr != nil {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(execErr))
		if strings.Contains(execErr.Error(), "unknown command") && len(args) > 0 {
			if hint := suggestAlternatives(app, args[0]); hint != "" {
				buf.WriteString("\n" + hint)
			}
		}
	}

	return strings.TrimRight(buf.String(), "\n")
}

// suggestAlternatives returns Cobra's near-miss command suggestions for an
// unrecognized input.
func suggestAlternatives(app *App, input string) string {
	root := NewRootCmd(app)
	// Cobra only fills in the default distance on its own Find path.
	if root.SuggestionsMinimumDistance <= 0 {
		root.SuggestionsMinimumDistance = 2
	}
	matches := root.SuggestionsFor(input)
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for _, match := range matches {
		fmt.Fprintf(&b, "\n  %s", formatter.StyleGreen.Render(match))
	}
	return b.String()
}
