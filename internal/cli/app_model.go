package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type appKeyMap struct {
	ForceQuit key.Binding
	Layout    key.Binding
	Command   key.Binding
	Quit      key.Binding
	Back      key.Binding
}

// ctrl+c and ctrl+l work even while a text input has focus; the rest only
// when nothing is capturing keys.
var appKeys = appKeyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Layout:    key.NewBinding(key.WithKeys("ctrl+l")),
	Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

var layoutSoftKey = key.NewBinding(key.WithKeys("m"))

// appModel is the TUI root: the layout shell around a stack of views, the
// command bar and the command output pane.
type appModel struct {
	state    *SharedState
	stack    viewStack
	cmdBar   commandBar
	output   outputPane
	quitting bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state:  state,
		stack:  viewStack{newTrackerView(state)},
		cmdBar: newCommandBar(state),
		output: newOutputPane(),
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.stack.top(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.output.active() {
			m.output.resize(msg.Width, m.state.ContentHeight())
		}
		cmd := m.stack.updateTop(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.output.active() {
			cmd := m.output.scroll(msg)
			return m, cmd
		}
		cmd := m.stack.updateTop(msg)
		return m, cmd

	case pushViewMsg:
		m.cmdBar.Blur()
		m.output.clear()
		m.stack.push(msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.stack.pop()
		return m, nil

	// The view that asked for a result may no longer be on top, and a closed
	// form never sees its own.
	case refreshViewMsg, insightsResultMsg, previewResultMsg, spinner.TickMsg:
		cmd := m.stack.updateAll(msg)
		return m, cmd

	case cmdOutputMsg:
		m.output.show(msg.output, m.state.Width, m.state.ContentHeight())
		// The command may have changed the collection.
		return m, refreshViews()

	case formCompleteMsg:
		m.stack.pop()
		m.output.clear()
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	if m.cmdBar.Focused() {
		cmds = append(cmds, m.cmdBar.UpdateNonKey(msg))
	}
	cmds = append(cmds, m.stack.updateTop(msg))
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, appKeys.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, appKeys.Layout):
		m.state.Layout = m.state.Layout.Toggle()
		return m, nil
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.output.clear()
		}
		cmd := m.cmdBar.Update(msg)
		return m, cmd
	}

	if m.output.active() {
		if isScrollKey(msg) {
			cmd := m.output.scroll(msg)
			return m, cmd
		}
		m.output.clear()
		if key.Matches(msg, appKeys.Back) {
			return m, nil
		}
	}

	if viewCapturesInput(m.stack.top()) {
		cmd := m.stack.updateTop(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, appKeys.Command):
		cmd := m.cmdBar.Focus()
		return m, cmd
	case key.Matches(msg, appKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, layoutSoftKey):
		m.state.Layout = m.state.Layout.Toggle()
		return m, nil
	case key.Matches(msg, appKeys.Back):
		if m.stack.pop() {
			m.output.clear()
		}
		return m, nil
	}

	cmd := m.stack.updateTop(msg)
	return m, cmd
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := ""
	switch {
	case m.output.active() && m.state.Height > 0:
		content = m.output.view()
	case m.output.active():
		// No size yet, so the viewport has nothing to lay out into.
		content = m.output.text
	default:
		if v := m.stack.top(); v != nil {
			content = v.View()
		}
	}

	body := strings.Join([]string{
		m.renderHeader(),
		content,
		m.renderHints(),
		m.cmdBar.View(),
	}, "\n")

	// Fill the screen so the footer sits on the last line and the alt-screen
	// renderer leaves no stale rows behind.
	if used := strings.Count(body, "\n") + 2; used < m.state.Height {
		body += strings.Repeat("\n", m.state.Height-used)
	}
	return body + "\n" + m.renderFooter()
}

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

func (m *appModel) renderHeader() string {
	left := formatter.StyleHeader.Render("TEAMFLOW")
	if crumbs := m.stack.titles(); len(crumbs) > 0 {
		left += " " + formatter.Dim("› "+strings.Join(crumbs, " › "))
	}

	badge := formatter.StyleBadge.Render(strings.TrimSuffix(m.state.Layout.String(), " Mode"))
	gap := max(m.state.Width-lipgloss.Width(left)-lipgloss.Width(badge), 2)
	return left + strings.Repeat(" ", gap) + badge + "\n" + m.rule()
}

func (m *appModel) renderHints() string {
	var hints []string
	switch {
	case m.output.active():
		if m.output.overflows() {
			hints = m.output.hints()
		}
	default:
		if v := m.stack.top(); v != nil {
			for _, b := range v.ShortHelp() {
				hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
			}
		}
		if !m.cmdBar.Focused() {
			if len(m.stack) > 1 {
				hints = append(hints, formatter.Dim(appKeys.Back.Help().Key+": "+appKeys.Back.Help().Desc))
			}
			hints = append(hints, formatter.Dim(appKeys.Command.Help().Key+" "+appKeys.Command.Help().Desc))
		}
	}
	return m.rule() + "\n" + strings.Join(hints, "  ")
}

func (m *appModel) renderFooter() string {
	return formatter.Dim(fmt.Sprintf("© %d TeamFlow Pro • %s", m.state.App.now().Year(), m.state.Layout))
}

// viewCapturesInput reports whether v currently owns the keyboard, which
// turns off the single-letter global keys.
func viewCapturesInput(v View) bool {
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}
