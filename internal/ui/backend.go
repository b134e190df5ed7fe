package ui

import (
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/backend"
	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/event"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

type eventMsg struct {
	event event.Event
}

type eventsDoneMsg struct{}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type tickMsg time.Time

// waitForEvent yields exactly one queued application event.
func waitForEvent(q *bridge.Queue[event.Event]) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-q.Out()
		if !ok {
			return eventsDoneMsg{}
		}
		return eventMsg{event: evt}
	}
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) handleEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(eventMsg)
	if !ok {
		return nil
	}
	m.applyEvent(evtMsg.event)
	if m.events != nil {
		return waitForEvent(m.events)
	}
	return nil
}

func (m *Model) applyEvent(evt event.Event) {
	lines := m.state.Apply(evt)
	events.UI.Event(evt.Kind.String(), lines)
	m.syncViewports()
}

func (m *Model) handleEventsDoneMsg(msg tea.Msg) tea.Cmd {
	m.events = nil
	return nil
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	evtMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(evtMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	switch evt.Kind {
	case backend.KindLink:
		if evt.Connected {
			m.link = linkUp
		} else {
			m.link = linkDown
		}
	}
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	if t, ok := msg.(tickMsg); ok {
		m.clock = time.Time(t)
	} else {
		m.clock = m.now()
	}
	if m.quitting {
		return nil
	}
	return tick(m.tickInterval)
}
