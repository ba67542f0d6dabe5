package cli

import (
	"fmt"

	"github.com/alexanderramin/teamflow/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// outputPane shows the text printed by a command-bar command in place of the
// active view until a non-scroll key dismisses it.
type outputPane struct {
	vp   viewport.Model
	text string
}

func newOutputPane() outputPane {
	vp := viewport.New(0, 0)
	// Letters stay free so they dismiss the pane or reach the view.
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return outputPane{vp: vp}
}

func (p *outputPane) active() bool {
	return p.text != ""
}

func (p *outputPane) show(text string, width, height int) {
	p.text = text
	p.vp.SetContent(text)
	p.resize(width, height)
	p.vp.GotoTop()
}

func (p *outputPane) clear() {
	p.text = ""
}

func (p *outputPane) resize(width, height int) {
	p.vp.Width = width
	p.vp.Height = height
}

func (p *outputPane) scroll(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.vp, cmd = p.vp.Update(msg)
	return cmd
}

func (p *outputPane) view() string {
	return p.vp.View()
}

func (p *outputPane) overflows() bool {
	return p.vp.TotalLineCount() > p.vp.Height
}

func (p *outputPane) position() string {
	switch {
	case p.vp.AtTop():
		return "[TOP]"
	case p.vp.AtBottom():
		return "[END]"
	}
	return fmt.Sprintf("[%d%%]", int(p.vp.ScrollPercent()*100))
}

func (p *outputPane) hints() []string {
	return []string{
		formatter.Dim(p.position()),
		formatter.Dim("↑↓ pgup/pgdn: scroll"),
		formatter.Dim("esc: dismiss"),
	}
}

func isScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}
