package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/backend"
	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/event"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
	"github.com/atomicstack/i2c-ble-client/internal/theme"
	"github.com/atomicstack/i2c-ble-client/internal/ui/command"
	uistate "github.com/atomicstack/i2c-ble-client/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickInterval bounds how stale the screen can get while idle.
const DefaultTickInterval = 100 * time.Millisecond

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

type linkState int

const (
	linkUnknown linkState = iota
	linkUp
	linkDown
)

// Config wires a Model to the rest of the program. Every collaborator is
// optional so tests can build a bare model.
type Config struct {
	DeviceName string
	Events     *bridge.Queue[event.Event]
	Bus        *command.Bus
	Watcher    *backend.Watcher
	State      uistate.Options
	// Width and Height pin the layout; zero follows the terminal.
	Width  int
	Height int
	// Now drives the header clock; defaults to time.Now.
	Now          func() time.Time
	TickInterval time.Duration
}

// Model implements the Bubble Tea model for the logger client.
type Model struct {
	state   *uistate.State
	events  *bridge.Queue[event.Event]
	bus     *command.Bus
	backend *backend.Watcher

	device      string
	link        linkState
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	telemetryOffset int
	statusOffset    int

	inputCursor      cursor.Model
	inputCursorDirty bool

	clock        time.Time
	now          func() time.Time
	tickInterval time.Duration
	quitting     bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model from cfg.
func NewModel(cfg Config) *Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	m := &Model{
		state:        uistate.New(cfg.State),
		events:       cfg.Events,
		bus:          cfg.Bus,
		backend:      cfg.Watcher,
		device:       cfg.DeviceName,
		now:          cfg.Now,
		tickInterval: cfg.TickInterval,
	}
	m.clock = m.now()
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	m.inputCursor = c
	m.registerHandlers()
	return m
}

// State exposes the application state for inspection. Callers must not
// mutate it while the program runs.
func (m *Model) State() *uistate.State {
	return m.state
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.tickInterval)}
	if m.events != nil {
		cmds = append(cmds, waitForEvent(m.events))
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.inputCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateInputCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(eventMsg{}):          m.handleEventMsg,
		reflect.TypeOf(eventsDoneMsg{}):     m.handleEventsDoneMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.inputCursorDirty {
		m.inputCursorDirty = false
		m.inputCursor.Blink = false
		if cmd := m.inputCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) quit(reason string) tea.Cmd {
	if !m.quitting {
		m.quitting = true
		events.UI.Quit(reason)
	}
	return tea.Quit
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}
