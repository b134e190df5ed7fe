package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/backend"
	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/event"
	uistate "github.com/atomicstack/i2c-ble-client/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)

func newTestModel(cfg Config) *Model {
	if cfg.State.Now == nil {
		cfg.State.Now = func() time.Time { return fixedNow }
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return fixedNow }
	}
	return NewModel(cfg)
}

func TestTranslateKeyMapsInterrupt(t *testing.T) {
	keys := translateKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if len(keys) != 1 || keys[0].Code != uistate.KeyInterrupt {
		t.Fatalf("expected interrupt key, got %#v", keys)
	}
}

func TestTranslateKeyRunes(t *testing.T) {
	keys := translateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if len(keys) != 2 || keys[0].Rune != 'a' || keys[1].Rune != 'b' {
		t.Fatalf("expected one key per pasted rune, got %#v", keys)
	}
	if keys := translateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}); keys != nil {
		t.Fatalf("expected alt chords to be ignored, got %#v", keys)
	}
	keys = translateKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if len(keys) != 1 || keys[0] != uistate.Rune(' ') {
		t.Fatalf("expected space rune, got %#v", keys)
	}
	if keys := translateKey(tea.KeyMsg{Type: tea.KeyF12}); len(keys) != 1 || keys[0].Code != uistate.KeyF12 {
		t.Fatalf("expected F12, got %#v", keys)
	}
}

func TestInterruptQuitsWhileEditing(t *testing.T) {
	h := NewHarness(newTestModel(Config{}))
	h.Type("cLI")
	if h.State().Mode() != uistate.ModeEditing {
		t.Fatalf("expected editing mode")
	}
	h.Press(tea.KeyCtrlC)
	if !h.Model().Quitting() {
		t.Fatalf("expected ctrl+c to quit while editing")
	}
}

func TestQuitKeyOnlyInNormalMode(t *testing.T) {
	h := NewHarness(newTestModel(Config{}))
	h.Type("cq")
	if h.Model().Quitting() {
		t.Fatalf("q must be typed into the buffer while editing")
	}
	if got := h.State().Buffer(); got != "q" {
		t.Fatalf("expected buffer q, got %q", got)
	}
	h.Press(tea.KeyEsc)
	if got := h.State().Buffer(); got != "" {
		t.Fatalf("expected esc to clear the buffer, got %q", got)
	}
	h.Type("q")
	if !h.Model().Quitting() {
		t.Fatalf("expected q to quit in normal mode")
	}
}

func TestQuitReturnsQuitCommand(t *testing.T) {
	m := newTestModel(Config{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestEventMsgAppliesAndRearms(t *testing.T) {
	q := bridge.New[event.Event]()
	m := newTestModel(Config{Events: q})
	_, cmd := m.Update(eventMsg{event: event.Classify("[0x42] READ: 0x10")})
	if cmd == nil {
		t.Fatalf("expected the event wait to be re-armed")
	}
	if m.State().TelemetryLen() != 1 {
		t.Fatalf("expected telemetry entry, got %d", m.State().TelemetryLen())
	}
	m.Update(eventMsg{event: event.Classify("Config updated")})
	if m.State().StatusLen() != 1 {
		t.Fatalf("expected status entry, got %d", m.State().StatusLen())
	}
}

func TestWaitForEventYieldsOneEvent(t *testing.T) {
	q := bridge.New[event.Event]()
	q.Send(event.Status("first"))
	q.Send(event.Status("second"))
	msg := waitForEvent(q)()
	got, ok := msg.(eventMsg)
	if !ok || got.event.Text != "first" {
		t.Fatalf("expected first event, got %#v", msg)
	}
	msg = waitForEvent(q)()
	if got, ok := msg.(eventMsg); !ok || got.event.Text != "second" {
		t.Fatalf("expected second event, got %#v", msg)
	}
	q.Close()
	if _, ok := waitForEvent(q)().(eventsDoneMsg); !ok {
		t.Fatalf("expected done message after close")
	}
}

func TestEventsDoneStopsWaiting(t *testing.T) {
	q := bridge.New[event.Event]()
	m := newTestModel(Config{Events: q})
	m.Update(eventsDoneMsg{})
	if m.events != nil {
		t.Fatalf("expected event queue to be released")
	}
	if _, cmd := m.Update(eventMsg{event: event.Status("late")}); cmd != nil {
		t.Fatalf("expected no re-arm once the queue is done")
	}
}

func TestBackendEventsUpdateLink(t *testing.T) {
	m := newTestModel(Config{})
	if m.link != linkUnknown {
		t.Fatalf("expected unknown link before first probe")
	}
	m.Update(backendEventMsg{event: backend.Event{Kind: backend.KindLink, Connected: true}})
	if m.link != linkUp {
		t.Fatalf("expected link up")
	}
	m.Update(backendEventMsg{event: backend.Event{Kind: backend.KindLink, Connected: false}})
	if m.link != linkDown {
		t.Fatalf("expected link down")
	}
	m.Update(backendDoneMsg{})
	if m.backend != nil {
		t.Fatalf("expected watcher to be released")
	}
}

func TestTickAdvancesClock(t *testing.T) {
	m := newTestModel(Config{})
	at := time.Date(2024, 5, 1, 13, 14, 15, 0, time.Local)
	_, cmd := m.Update(tickMsg(at))
	if !m.clock.Equal(at) {
		t.Fatalf("expected clock %v, got %v", at, m.clock)
	}
	if cmd == nil {
		t.Fatalf("expected tick to be re-armed")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := newTestModel(Config{Width: 50})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 50 {
		t.Fatalf("expected fixed width 50, got %d", m.width)
	}
	if m.height != 40 {
		t.Fatalf("expected height to follow terminal, got %d", m.height)
	}
}

func TestScrollKeysMoveTelemetryCursor(t *testing.T) {
	h := NewHarness(newTestModel(Config{Height: 24}))
	for i := 0; i < 30; i++ {
		h.Send(eventMsg{event: event.Telemetry(fmt.Sprintf("line-%02d", i))})
	}
	if got := h.State().TelemetryCursor(); got != 29 {
		t.Fatalf("expected cursor on newest entry, got %d", got)
	}
	h.Press(tea.KeyPgUp)
	if got := h.State().TelemetryCursor(); got != 19 {
		t.Fatalf("expected page up to move 10, got %d", got)
	}
	h.Press(tea.KeyUp, tea.KeyUp)
	if got := h.State().TelemetryCursor(); got != 17 {
		t.Fatalf("expected cursor 17, got %d", got)
	}
	h.Press(tea.KeyHome)
	if got := h.State().TelemetryCursor(); got != 0 {
		t.Fatalf("expected home to reach the oldest entry, got %d", got)
	}
	h.Press(tea.KeyEnd)
	if got := h.State().TelemetryCursor(); got != 29 {
		t.Fatalf("expected end to reach the newest entry, got %d", got)
	}
}

func TestStatusScrollKeys(t *testing.T) {
	h := NewHarness(newTestModel(Config{}))
	for i := 0; i < 5; i++ {
		h.Send(eventMsg{event: event.Status(fmt.Sprintf("status-%d", i))})
	}
	h.Type("[[")
	if got := h.State().StatusCursor(); got != 2 {
		t.Fatalf("expected status cursor 2, got %d", got)
	}
	h.Type("]")
	if got := h.State().StatusCursor(); got != 3 {
		t.Fatalf("expected status cursor 3, got %d", got)
	}
}

func TestTabCompletesCommand(t *testing.T) {
	h := NewHarness(newTestModel(Config{}))
	h.Type("ccle")
	h.Press(tea.KeyTab)
	if got := h.State().Buffer(); got != "CLEAR" {
		t.Fatalf("expected completion to CLEAR, got %q", got)
	}
}
