package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/alexanderramin/teamflow/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// previewResultMsg carries a preview back to the form that requested it.
// seq identifies the request; forms drop results that are not their own.
type previewResultMsg struct {
	seq  int
	text string
}

type formField int

const (
	fieldName formField = iota
	fieldOwner
	fieldStatus
	fieldCount
)

// formView collects a new project. Submitting and previewing are both
// disabled until name and owner are non-blank.
type formView struct {
	state *SharedState

	name   textinput.Model
	owner  textinput.Model
	status domain.ProjectStatus
	focus  formField

	spin            spinner.Model
	previewSeq      int
	previewInFlight bool
	preview         string

	err error
}

func newFormView(state *SharedState) *formView {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Design Audit..."
	name.CharLimit = 120
	name.Focus()

	owner := textinput.New()
	owner.Prompt = ""
	owner.Placeholder = "Full Name..."
	owner.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = formatter.StylePurple

	return &formView{
		state:  state,
		name:   name,
		owner:  owner,
		status: domain.StatusNotStarted,
		spin:   sp,
	}
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return "New Project" }

func (v *formView) CapturesInput() bool { return true }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "commit")),
		key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "AI preview")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *formView) Init() tea.Cmd {
	return textinput.Blink
}

// ready reports whether both required fields are non-blank.
func (v *formView) ready() bool {
	return strings.TrimSpace(v.name.Value()) != "" && strings.TrimSpace(v.owner.Value()) != ""
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewResultMsg:
		if !v.previewInFlight || msg.seq != v.previewSeq {
			return v, nil
		}
		v.previewInFlight = false
		v.preview = msg.text
		return v, nil

	case spinner.TickMsg:
		if !v.previewInFlight {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.updateKey(msg)
	}

	return v, v.updateInputs(msg)
}

func (v *formView) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, popView()
	case "tab", "down":
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if v.focus < fieldStatus {
			return v, v.setFocus(v.focus + 1)
		}
		return v, v.submit()
	case "ctrl+s":
		return v, v.submit()
	case "ctrl+p":
		return v, v.requestPreview()
	}

	if v.focus == fieldStatus {
		switch msg.String() {
		case "right", "l", " ":
			v.status = v.status.Next()
		case "left", "h":
			v.status = v.status.Next().Next()
		}
		return v, nil
	}

	return v, v.updateInputs(msg)
}

func (v *formView) updateInputs(msg tea.Msg) tea.Cmd {
	var nameCmd, ownerCmd tea.Cmd
	v.name, nameCmd = v.name.Update(msg)
	v.owner, ownerCmd = v.owner.Update(msg)
	return tea.Batch(nameCmd, ownerCmd)
}

func (v *formView) setFocus(f formField) tea.Cmd {
	v.focus = f
	v.name.Blur()
	v.owner.Blur()
	switch f {
	case fieldName:
		return v.name.Focus()
	case fieldOwner:
		return v.owner.Focus()
	}
	return nil
}

// submit adds the project and closes the form. It is a no-op until both
// required fields are filled. A rejected status keeps the form open; a save
// failure closes it, since the project is already in the collection.
func (v *formView) submit() tea.Cmd {
	if !v.ready() {
		return nil
	}
	v.err = nil
	name := strings.TrimSpace(v.name.Value())
	owner := strings.TrimSpace(v.owner.Value())

	p, err := v.state.App.Projects.Add(context.Background(), name, owner, v.status)
	if errors.Is(err, domain.ErrInvalidStatus) {
		v.err = err
		return nil
	}
	if err != nil {
		return func() tea.Msg { return formCompleteMsg{nextCmd: outputCmd(shellError(err))} }
	}

	out := formatter.StyleGreen.Render("✔") + " Added " + formatter.Bold(p.Name) + " " + formatter.Dim("["+p.DisplayID()+"]")
	return func() tea.Msg { return formCompleteMsg{nextCmd: outputCmd(out)} }
}

// requestPreview asks for suggestions on the project being entered. Only one
// preview runs at a time per form.
func (v *formView) requestPreview() tea.Cmd {
	if v.previewInFlight || !v.ready() {
		return nil
	}
	v.previewInFlight = true
	seq := v.state.NextPreviewSeq()
	v.previewSeq = seq

	ai := v.state.App.AI
	name := strings.TrimSpace(v.name.Value())
	owner := strings.TrimSpace(v.owner.Value())
	status := v.status
	return tea.Batch(v.spin.Tick, func() tea.Msg {
		return previewResultMsg{seq: seq, text: ai.ProjectPreview(context.Background(), name, owner, status)}
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *formView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("NEW PROJECT ENTRY") + "\n\n")

	b.WriteString(v.renderField(fieldName, "Project Name", v.name.View()))
	b.WriteString(v.renderField(fieldOwner, "Project Owner", v.owner.View()))

	var pills []string
	for _, st := range domain.AllStatuses {
		if st == v.status {
			pills = append(pills, formatter.StatusPill(st))
		} else {
			pills = append(pills, formatter.Dim(string(st)))
		}
	}
	statusLine := strings.Join(pills, "   ")
	if v.focus == fieldStatus {
		statusLine = formatter.Dim("‹ ") + statusLine + formatter.Dim(" ›")
	}
	b.WriteString(v.renderField(fieldStatus, "Status", statusLine))

	commit := "[ Commit Project ]"
	previewBtn := "[ ctrl+p AI Preview ]"
	if v.ready() {
		commit = formatter.StyleGreen.Render(commit)
		if !v.previewInFlight {
			previewBtn = formatter.StylePurple.Render(previewBtn)
		} else {
			previewBtn = formatter.Dim(previewBtn)
		}
	} else {
		commit = formatter.Dim(commit)
		previewBtn = formatter.Dim(previewBtn)
	}
	b.WriteString("  " + commit + "  " + previewBtn + "\n")

	if v.err != nil {
		b.WriteString("\n  " + shellError(v.err) + "\n")
	}

	switch {
	case v.previewInFlight:
		b.WriteString("\n  " + v.spin.View() + " " + formatter.Dim("Generating preview...") + "\n")
	case v.preview != "":
		b.WriteString("\n" + indent(formatter.RenderBox("AI Preview", strings.TrimSpace(v.preview)), "  ") + "\n")
	}

	return b.String()
}

func (v *formView) renderField(f formField, label, body string) string {
	marker := "  "
	title := formatter.Dim(label)
	if v.focus == f {
		marker = formatter.StyleHeader.Render("▸ ")
		title = formatter.StyleHeader.Render(label)
	}
	return marker + title + "\n    " + body + "\n\n"
}
