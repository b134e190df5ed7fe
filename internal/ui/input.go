package ui

import (
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
	uistate "github.com/atomicstack/i2c-ble-client/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const inputPlaceholder = "press c to type a command"

// translateKey maps a Bubble Tea key press onto the state machine's keys.
// Pasted text arrives as one message carrying several runes.
func translateKey(msg tea.KeyMsg) []uistate.Key {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []uistate.Key{uistate.Press(uistate.KeyInterrupt)}
	case tea.KeyEnter:
		return []uistate.Key{uistate.Press(uistate.KeyEnter)}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []uistate.Key{uistate.Press(uistate.KeyBackspace)}
	case tea.KeyEsc:
		return []uistate.Key{uistate.Press(uistate.KeyEsc)}
	case tea.KeyTab:
		return []uistate.Key{uistate.Press(uistate.KeyTab)}
	case tea.KeyUp:
		return []uistate.Key{uistate.Press(uistate.KeyUp)}
	case tea.KeyDown:
		return []uistate.Key{uistate.Press(uistate.KeyDown)}
	case tea.KeyPgUp:
		return []uistate.Key{uistate.Press(uistate.KeyPageUp)}
	case tea.KeyPgDown:
		return []uistate.Key{uistate.Press(uistate.KeyPageDown)}
	case tea.KeyHome:
		return []uistate.Key{uistate.Press(uistate.KeyHome)}
	case tea.KeyEnd:
		return []uistate.Key{uistate.Press(uistate.KeyEnd)}
	case tea.KeyF12:
		return []uistate.Key{uistate.Press(uistate.KeyF12)}
	case tea.KeySpace:
		return []uistate.Key{uistate.Rune(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]uistate.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, uistate.Rune(r))
		}
		return keys
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	for _, k := range translateKey(keyMsg) {
		m.applyKey(k)
		if m.state.ShouldQuit() {
			reason := "key"
			if k.Code == uistate.KeyInterrupt {
				reason = "interrupt"
			}
			return m.quit(reason)
		}
	}
	m.syncViewports()
	return nil
}

func (m *Model) applyKey(k uistate.Key) {
	st := m.state
	beforeMode := st.Mode()
	beforeBuffer := st.Buffer()
	beforeTelemetry := st.TelemetryCursor()
	beforeStatus := st.StatusCursor()

	command, emitted := st.ApplyKey(k)
	if emitted {
		m.bus.Submit(command)
	}

	if st.Mode() != beforeMode {
		events.UI.Mode(st.Mode().String())
	}
	if st.Buffer() != beforeBuffer {
		m.inputCursorDirty = true
		switch k.Code {
		case uistate.KeyTab:
			events.Input.Complete(beforeBuffer, st.Buffer())
		case uistate.KeyEsc:
			events.Input.Cancel(beforeBuffer)
		}
	}
	if c := st.TelemetryCursor(); c != beforeTelemetry {
		events.UI.Scroll("telemetry", c)
	}
	if c := st.StatusCursor(); c != beforeStatus {
		events.UI.Scroll("status", c)
	}
}

func (m *Model) updateInputCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputCursor, cmd = m.inputCursor.Update(msg)
	return cmd
}

// inputLine renders the command line. While editing, the caret sits after
// the buffer; otherwise a hint is shown.
func (m *Model) inputLine() string {
	prompt := "> "
	if styles.Prompt != nil {
		prompt = styles.Prompt.Render(prompt)
	}
	if m.state.Mode() != uistate.ModeEditing {
		return prompt + render(styles.Placeholder, inputPlaceholder)
	}
	text := render(styles.Input, sanitize(m.state.Buffer()))
	return prompt + text + m.inputCursor.View()
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}
