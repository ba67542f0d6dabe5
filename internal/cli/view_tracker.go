package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/alexanderramin/teamflow/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const insightsPlaceholder = "Press i to generate an AI summary of your current project health."

// insightsResultMsg carries the gateway's status report back to the tracker.
type insightsResultMsg struct {
	text string
}

// trackerView is the home view: the backlog, its search bar, aggregate
// counts and the AI status report panel.
type trackerView struct {
	state *SharedState

	projects []*domain.Project // current filtered snapshot
	stats    service.Stats
	cursor   int
	err      error

	search    textinput.Model
	searching bool

	spin             spinner.Model
	insightsInFlight bool
	insights         string
}

func newTrackerView(state *SharedState) *trackerView {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Filter by name, owner, or status..."
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = formatter.StylePurple

	v := &trackerView{state: state, search: ti, spin: sp}
	v.reload()
	return v
}

func (v *trackerView) ID() ViewID    { return ViewTracker }
func (v *trackerView) Title() string { return "Backlog" }

func (v *trackerView) CapturesInput() bool { return v.searching }

func (v *trackerView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep filter")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insights")),
		key.NewBinding(key.WithKeys("m", "ctrl+l"), key.WithHelp("m", "layout")),
	}
}

func (v *trackerView) Init() tea.Cmd {
	return nil
}

// reload takes a fresh snapshot from the collection, keeping the filter term.
func (v *trackerView) reload() {
	c := v.state.App.Projects
	v.projects = c.Filter(v.search.Value())
	v.stats = c.Aggregate()
	if v.cursor >= len(v.projects) {
		v.cursor = max(len(v.projects)-1, 0)
	}
}

func (v *trackerView) selected() *domain.Project {
	if v.cursor < 0 || v.cursor >= len(v.projects) {
		return nil
	}
	return v.projects[v.cursor]
}

func (v *trackerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.reload()
		return v, nil

	case insightsResultMsg:
		v.insightsInFlight = false
		v.insights = msg.text
		return v, nil

	case spinner.TickMsg:
		if !v.insightsInFlight {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *trackerView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.projects)-1 {
			v.cursor++
		}
	case "/":
		v.searching = true
		return v, v.search.Focus()
	case "s":
		if p := v.selected(); p != nil {
			v.err = v.state.App.Projects.SetStatus(context.Background(), p.ID, p.Status.Next())
			v.reload()
		}
	case "d", "x":
		if p := v.selected(); p != nil {
			v.err = v.state.App.Projects.Remove(context.Background(), p.ID)
			v.reload()
		}
	case "a":
		return v, pushView(newFormView(v.state))
	case "i":
		return v, v.requestInsights()
	}
	return v, nil
}

func (v *trackerView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.cursor = 0
		v.reload()
		return v, nil
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.cursor = 0
	v.reload()
	return v, cmd
}

// requestInsights starts a status report unless the collection is empty or
// a report is already being generated.
func (v *trackerView) requestInsights() tea.Cmd {
	if v.insightsInFlight || v.stats.Total == 0 {
		return nil
	}
	v.insightsInFlight = true

	ai := v.state.App.AI
	projects := v.state.App.Projects.Projects()
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		return insightsResultMsg{text: ai.ProjectInsights(context.Background(), projects)}
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *trackerView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	term := v.search.Value()
	count := formatter.BacklogCount(v.stats.Total, len(v.projects), term != "")
	b.WriteString("  " + formatter.StyleHeader.Render("BACKLOG") + "  " + formatter.Dim(count) + "\n")

	if v.searching || term != "" {
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.search.View() + "\n")
	}
	b.WriteString("\n")

	switch {
	case v.stats.Total == 0:
		b.WriteString("  " + formatter.Dim(formatter.EmptyBacklog) + "\n")
		b.WriteString("  " + formatter.Dim("Press a to add your first project.") + "\n")
	case len(v.projects) == 0:
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("No projects match %q.", term)) + "\n")
	case v.state.Layout == LayoutMobile:
		b.WriteString(v.renderCards())
	default:
		b.WriteString(v.renderTable())
	}

	b.WriteString("\n  " + formatter.FormatStats(v.stats) + "\n")

	if v.err != nil {
		b.WriteString("\n  " + shellError(v.err) + "\n")
	}

	b.WriteString("\n" + v.renderInsights())
	return b.String()
}

func (v *trackerView) renderTable() string {
	now := v.state.App.now()
	start, end := visibleWindow(len(v.projects), v.cursor, v.maxRows(1))

	rows := make([][]string, 0, end-start)
	for _, p := range v.projects[start:end] {
		rows = append(rows, formatter.ProjectRow(p, now))
	}
	table := formatter.RenderSelectableTable(formatter.ProjectTableHeaders, rows, v.cursor-start)
	return indent(strings.TrimRight(table, "\n"), "  ") + "\n" + v.moreIndicator(start, end)
}

func (v *trackerView) renderCards() string {
	now := v.state.App.now()
	start, end := visibleWindow(len(v.projects), v.cursor, v.maxRows(4))

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(indent(formatter.FormatProjectCard(v.projects[i], now, i == v.cursor), "  ") + "\n")
	}
	return b.String() + v.moreIndicator(start, end)
}

func (v *trackerView) moreIndicator(start, end int) string {
	if start == 0 && end == len(v.projects) {
		return ""
	}
	return "  " + formatter.Dim(fmt.Sprintf("%d–%d of %d", start+1, end, len(v.projects))) + "\n"
}

// maxRows is how many projects fit when each takes linesPer lines, leaving
// room for the heading, stats and insights panel.
func (v *trackerView) maxRows(linesPer int) int {
	if v.state.Height == 0 {
		return len(v.projects)
	}
	return max((v.state.ContentHeight()-14)/linesPer, 3)
}

func (v *trackerView) renderInsights() string {
	var b strings.Builder
	b.WriteString("  " + formatter.StyleHeader.Render("AI PROJECT ASSISTANT") + "  ")

	switch {
	case v.insightsInFlight:
		b.WriteString(v.spin.View() + " " + formatter.Dim("Analyzing..."))
	case v.stats.Total == 0:
		b.WriteString(formatter.Dim("[i] Get Status Report"))
	default:
		b.WriteString(formatter.StyleGreen.Render("[i] Get Status Report"))
	}
	b.WriteString("\n")

	if v.insights == "" {
		b.WriteString("  " + formatter.Dim(insightsPlaceholder) + "\n")
		return b.String()
	}
	return b.String() + indent(formatter.FormatInsights(v.insights), "  ") + "\n"
}

// visibleWindow returns the [start, end) slice of n rows of at most size
// rows that keeps cursor in view.
func visibleWindow(n, cursor, size int) (int, int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start := 0
	if cursor >= size {
		start = cursor - size + 1
	}
	return start, start + size
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
