package cli

import (
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const cmdBarPrompt = "teamflow ❯ "

type cmdBarKeyMap struct {
	Run      key.Binding
	Previous key.Binding
	Next     key.Binding
	Cancel   key.Binding
}

var cmdBarKeys = cmdBarKeyMap{
	Run:      key.NewBinding(key.WithKeys("enter")),
	Previous: key.NewBinding(key.WithKeys("up")),
	Next:     key.NewBinding(key.WithKeys("down")),
	Cancel:   key.NewBinding(key.WithKeys("esc")),
}

// commandBar is the ":" prompt under the content area. A line typed here is
// split like a shell would and run through the same cobra tree as the
// binary, with its output shown in the output pane.
type commandBar struct {
	input   textinput.Model
	app     *App
	focused bool
	tree    commandTree
	history lineHistory
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.ShowSuggestions = true
	// Only live while the bar has focus, so ctrl+p still reaches the form.
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{
		input: ti,
		app:   state.App,
		tree:  newCommandTree(state.App),
	}
}

func (c *commandBar) Focus() tea.Cmd {
	c.focused = true
	return c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool { return c.focused }

func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-len([]rune(cmdBarPrompt))-1, 1)
}

// Update handles a key while the bar has focus.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, cmdBarKeys.Run):
		line := strings.TrimSpace(c.input.Value())
		c.setLine("")
		if line == "" {
			return nil
		}
		c.history.add(line)
		return c.run(line)
	case key.Matches(msg, cmdBarKeys.Previous):
		if line, ok := c.history.previous(); ok {
			c.setLine(line)
		}
		return nil
	case key.Matches(msg, cmdBarKeys.Next):
		c.setLine(c.history.next())
		return nil
	case key.Matches(msg, cmdBarKeys.Cancel):
		c.Blur()
		return nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.input.SetSuggestions(c.tree.complete(c.input.Value()))
	return cmd
}

// UpdateNonKey passes cursor blinks and similar through to the input.
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) setLine(line string) {
	c.input.SetValue(line)
	c.input.CursorEnd()
	c.input.SetSuggestions(nil)
}

// run executes one line off the Update loop.
func (c *commandBar) run(line string) tea.Cmd {
	args, err := splitShellArgs(line)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(args) == 0 {
		return nil
	}

	if name := strings.ToLower(args[0]); name == "exit" || name == "quit" {
		return func() tea.Msg { return quitMsg{} }
	}

	app := c.app
	return func() tea.Msg {
		return cmdOutputMsg{output: captureCobraOutput(app, args)}
	}
}

func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("teamflow") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

// lineHistory is the command bar's in-memory history. The cursor sits one
// past the newest entry when not browsing.
type lineHistory struct {
	lines  []string
	cursor int
}

// add records line unless it repeats the newest entry, and stops browsing.
func (h *lineHistory) add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
	}
	h.cursor = len(h.lines)
}

func (h *lineHistory) previous() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.lines[h.cursor], true
}

// next moves toward the newest entry; stepping past it yields an empty line.
func (h *lineHistory) next() string {
	if h.cursor >= len(h.lines)-1 {
		h.cursor = len(h.lines)
		return ""
	}
	h.cursor++
	return h.lines[h.cursor]
}

// commandTree maps each top-level command name to its subcommand names.
type commandTree map[string][]string

func newCommandTree(app *App) commandTree {
	tree := commandTree{"exit": nil, "quit": nil}
	for _, c := range NewRootCmd(app).Commands() {
		if c.Hidden || c.Name() == "help" || c.Name() == "completion" {
			continue
		}
		subs := make([]string, 0, len(c.Commands()))
		for _, sc := range c.Commands() {
			subs = append(subs, sc.Name())
		}
		tree[c.Name()] = subs
	}
	return tree
}

// complete returns full-line suggestions for text: command names while the
// first word is being typed, then "<command> <sub>" for the second word.
func (t commandTree) complete(text string) []string {
	if text == "" {
		return nil
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	trailing := strings.HasSuffix(text, " ")

	if len(words) == 1 && !trailing {
		return withPrefix(slices.Sorted(maps.Keys(t)), words[0])
	}
	if len(words) > 2 || (len(words) == 2 && trailing) {
		return nil
	}

	partial := ""
	if len(words) == 2 {
		partial = words[1]
	}
	var out []string
	for _, sub := range withPrefix(t[strings.ToLower(words[0])], partial) {
		out = append(out, words[0]+" "+sub)
	}
	return out
}

// withPrefix keeps the candidates that start with prefix, ignoring case.
func withPrefix(candidates []string, prefix string) []string {
	lp := strings.ToLower(prefix)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), lp) {
			out = append(out, c)
		}
	}
	return out
}
