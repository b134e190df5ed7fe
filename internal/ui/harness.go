package ui

import (
	"time"

	uistate "github.com/atomicstack/i2c-ble-client/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Commands returned by Update are not executed: most of them block on a
// queue or a timer. Tests feed the resulting messages in directly instead.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, _ := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
}

// Type sends each rune of text as its own key press.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Press sends non-printable key presses in order.
func (h *Harness) Press(keys ...tea.KeyType) {
	for _, k := range keys {
		h.Send(tea.KeyMsg{Type: k})
	}
}

// Deliver feeds queued application events to the model until none arrives
// within wait. It returns how many were delivered.
func (h *Harness) Deliver(wait time.Duration) int {
	if h.model == nil || h.model.events == nil {
		return 0
	}
	delivered := 0
	for {
		select {
		case evt, ok := <-h.model.events.Out():
			if !ok {
				h.Send(eventsDoneMsg{})
				return delivered
			}
			h.Send(eventMsg{event: evt})
			delivered++
		case <-time.After(wait):
			return delivered
		}
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// State exposes the application state.
func (h *Harness) State() *uistate.State {
	if h.model == nil {
		return nil
	}
	return h.model.state
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
