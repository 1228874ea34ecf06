// Package teatest drives bubbletea models synchronously in tests.
//
// The Driver calls Update directly and runs every returned Cmd in turn,
// feeding the resulting messages back in. Cmds that do not return within the
// configured timeout (cursor blinks, idle spinner ticks) are dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds a single message may produce.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates instant Cmds from timer-driven ones.
const DefaultCmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a tea.Model without a tea.Program.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool

	cmdTimeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// WithCmdTimeout lets slow Cmds, such as ones waiting on a background job,
// complete instead of being dropped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.cmdTimeout = timeout
	}
}

// New creates a Driver. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and drains what it produces.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a named key such as "enter", "esc", "up", "down" or
// "ctrl+c".
func (d *Driver) Press(name string) {
	d.T.Helper()
	var k tea.KeyType
	switch name {
	case "enter":
		k = tea.KeyEnter
	case "esc":
		k = tea.KeyEsc
	case "up":
		k = tea.KeyUp
	case "down":
		k = tea.KeyDown
	case "right":
		k = tea.KeyRight
	case "space":
		d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		return
	case "ctrl+c":
		k = tea.KeyCtrlC
	default:
		d.T.Fatalf("teatest: unknown key %q", name)
	}
	d.Send(tea.KeyMsg{Type: k})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// Submit types s and presses enter.
func (d *Driver) Submit(s string) {
	d.T.Helper()
	d.Type(s)
	d.Press("enter")
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// ViewContains reports whether the rendered view contains every fragment.
func (d *Driver) ViewContains(fragments ...string) bool {
	view := d.View()
	for _, f := range fragments {
		if !strings.Contains(view, f) {
			return false
		}
	}
	return true
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := d.run(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(m)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// run executes cmd, giving up after the driver's timeout.
func (d *Driver) run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
