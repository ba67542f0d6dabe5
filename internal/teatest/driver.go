// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed back
// until nothing is left. Cmds that block on timers (cursor blink, spinner
// follow-up ticks) are given a short deadline and dropped when they miss it.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many Update rounds a single Send may trigger.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates immediate Cmds (store writes, stub gateways,
// message factories) from timer Cmds that sleep for 100ms or more.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.QuitMsg comes out of a Cmd. The runtime
	// normally swallows it, so the driver tracks it itself.
	Quitting bool

	timeout time.Duration
	log     []string
}

// New creates a Driver for model. Call DrainInit afterwards to run Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides how long a Cmd may block before it is dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// DrainInit runs the model's Init command to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send delivers msg through Update and drains whatever follows.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.deliver(msg, 0)
}

// SendKey delivers a key press.
func (d *Driver) SendKey(msg tea.KeyMsg) {
	d.T.Helper()
	d.Send(msg)
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressKeyType sends a key with no runes, e.g. tea.KeyCtrlP.
func (d *Driver) PressKeyType(t tea.KeyType) {
	d.T.Helper()
	d.SendKey(tea.KeyMsg{Type: t})
}

// Named key helpers.
func (d *Driver) PressEnter() { d.PressKeyType(tea.KeyEnter) }
func (d *Driver) PressEsc() { d.PressKeyType(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.PressKeyType(tea.KeyCtrlC) }
func (d *Driver) PressUp() { d.PressKeyType(tea.KeyUp) }
func (d *Driver) PressDown() { d.PressKeyType(tea.KeyDown) }
func (d *Driver) PressLeft() { d.PressKeyType(tea.KeyLeft) }
func (d *Driver) PressRight() { d.PressKeyType(tea.KeyRight) }
func (d *Driver) PressTab() { d.PressKeyType(tea.KeyTab) }
func (d *Driver) PressShiftTab() { d.PressKeyType(tea.KeyShiftTab) }
func (d *Driver) PressBackspace() { d.PressKeyType(tea.KeyBackspace) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

// Delivered returns the dynamic types (e.g. "cli.insightsResultMsg") of
// every message passed to Update so far, in order.
func (d *Driver) Delivered() []string {
	return append([]string(nil), d.log...)
}

// Saw reports whether a message whose type name ends in suffix was
// delivered.
func (d *Driver) Saw(suffix string) bool {
	for _, name := range d.log {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func (d *Driver) deliver(msg tea.Msg, depth int) {
	d.T.Helper()
	d.log = append(d.log, fmt.Sprintf("%T", msg))
	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.exec(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			if sub != nil {
				d.drainCmd(sub, depth+1)
			}
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.log = append(d.log, fmt.Sprintf("%T", msg))
		updated, _ := d.Model.Update(msg)
		d.Model = updated
	default:
		d.deliver(msg, depth)
	}
}

// exec runs cmd on its own goroutine and gives up after the driver timeout.
// A dropped Cmd's goroutine finishes on its own later.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.timeout):
		return nil
	}
}

// isCursorBlink matches the bubbles cursor blink messages, which are partly
// unexported and chain into timer Cmds.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
