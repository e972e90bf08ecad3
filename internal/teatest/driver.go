// Package teatest drives bubbletea models in tests without a tea.Program.
//
// Update is called directly and every returned Cmd is run and fed back until
// nothing is left. Cmds that block on timers (spinner ticks, cursor blinks)
// do not return within the driver's timeout and are dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// DefaultCmdTimeout separates Cmds that do work from Cmds that wait on a
// timer. Spinner ticks wait at least 80ms.
const DefaultCmdTimeout = 40 * time.Millisecond

// Driver is a synchronous harness around one tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg comes out of a Cmd.
	Quitting bool

	timeout time.Duration
	skip    []func(tea.Msg) bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides DefaultCmdTimeout.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// WithSkip drops messages for which fn returns true instead of delivering them.
func WithSkip(fn func(tea.Msg) bool) Option {
	return func(d *Driver) {
		d.skip = append(d.skip, fn)
	}
}

// New wraps model. Call Init to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: DefaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Init runs the model's Init command to completion.
func (d *Driver) Init() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains what it produces. Nothing is delivered after
// the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"ctrl+c":    tea.KeyCtrlC,
}

// Press sends one key by name ("enter", "shift+tab", "ctrl+c") or, for any
// other string, each of its runes.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		if t, ok := namedKeys[k]; ok {
			d.Send(tea.KeyMsg{Type: t})
			continue
		}
		d.Type(k)
	}
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", depth)
		return
	}

	msg := d.run(cmd)
	if msg == nil || isBlink(msg) || d.skipped(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}

func (d *Driver) skipped(msg tea.Msg) bool {
	for _, fn := range d.skip {
		if fn(msg) {
			return true
		}
	}
	return false
}

// run executes cmd and gives up after the driver's timeout.
func (d *Driver) run(cmd tea.Cmd) tea.Msg {
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

// isBlink matches the unexported cursor blink messages of bubbles.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
