package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/backend"
	"github.com/atomicstack/i2c-ble-client/internal/ble"
	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/dispatcher"
	"github.com/atomicstack/i2c-ble-client/internal/event"
	"github.com/atomicstack/i2c-ble-client/internal/format/table"
	"github.com/atomicstack/i2c-ble-client/internal/logging"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
	"github.com/atomicstack/i2c-ble-client/internal/ui"
	"github.com/atomicstack/i2c-ble-client/internal/ui/command"
	uistate "github.com/atomicstack/i2c-ble-client/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// ConnectHint is printed after a connection failure.
const ConnectHint = "Make sure the I2C BLE Logger is powered on and advertising."

// Config describes user-provided application options.
type Config struct {
	DeviceName        string
	ScanOnly          bool
	ScanWindow        time.Duration
	LinkInterval      time.Duration
	TelemetryCapacity int
	StatusCapacity    int
	Profile           ble.Profile
}

// ConnectError reports that no usable session could be established.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("Failed to connect: %v", e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// ProgramRunner runs the interactive program until it exits.
type ProgramRunner func(model tea.Model) error

type runtime struct {
	adapter    ble.Adapter
	out        io.Writer
	runProgram ProgramRunner
	// pause lets the operator read the startup banner before the alternate
	// screen takes over.
	pause time.Duration
}

// Run bootstraps the device session and executes the Bubble Tea program.
func Run(cfg Config) error {
	return run(context.Background(), cfg, runtime{
		adapter:    ble.DefaultAdapter(),
		out:        os.Stdout,
		runProgram: runTea,
		pause:      time.Second,
	})
}

func runTea(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func run(ctx context.Context, cfg Config, rt runtime) error {
	rt.out = &lockedWriter{w: rt.out}
	if cfg.ScanOnly {
		return scan(ctx, cfg, rt)
	}

	// Notices go to the terminal only while it is not owned by the program.
	var programActive atomic.Bool
	fmt.Fprintf(rt.out, "Connecting to %s...\n", cfg.DeviceName)
	session, err := ble.Connect(ctx, rt.adapter, cfg.DeviceName, ble.Options{
		ScanWindow: cfg.ScanWindow,
		Profile:    cfg.Profile,
		Notice: func(msg string) {
			if !programActive.Load() {
				fmt.Fprintln(rt.out, msg)
			}
		},
	})
	if err != nil {
		return &ConnectError{Err: err}
	}

	eventQueue := bridge.New[event.Event]()
	commandQueue := bridge.New[string]()

	if err := session.Subscribe(func(text string) {
		eventQueue.Send(event.Classify(text))
	}); err != nil {
		disconnect(session, rt.out)
		return fmt.Errorf("subscribe: %w", err)
	}

	dispatcher.New(session, commandQueue, eventQueue).Start()

	watchCtx, stopWatching := context.WithCancel(ctx)
	watcher := backend.NewWatcher(watchCtx, session, cfg.LinkInterval)

	model := ui.NewModel(ui.Config{
		DeviceName: cfg.DeviceName,
		Events:     eventQueue,
		Bus:        command.New(commandQueue),
		Watcher:    watcher,
		State: uistate.Options{
			TelemetryCapacity: cfg.TelemetryCapacity,
			StatusCapacity:    cfg.StatusCapacity,
		},
	})

	fmt.Fprintln(rt.out, "Starting TUI interface...")
	fmt.Fprintln(rt.out, "Press 'q' to quit, 'c' to enter commands")
	if rt.pause > 0 {
		time.Sleep(rt.pause)
	}

	programActive.Store(true)
	programErr := rt.runProgram(model)
	programActive.Store(false)
	events.App.ProgramExit(programErr)

	stopWatching()
	commandQueue.Close()

	fmt.Fprintln(rt.out, "Disconnecting...")
	disconnect(session, rt.out)
	fmt.Fprintln(rt.out, "Goodbye!")
	return programErr
}

// disconnect is best effort; failures are logged and never propagated.
func disconnect(session *ble.Session, out io.Writer) {
	events.App.Shutdown(session.Name())
	if err := session.Disconnect(); err != nil {
		logging.Error(err)
		fmt.Fprintf(out, "Warning: %v\n", err)
	}
}

func scan(ctx context.Context, cfg Config, rt runtime) error {
	fmt.Fprintln(rt.out, "Scanning for BLE devices...")
	found, err := ble.Scan(ctx, rt.adapter, cfg.ScanWindow)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintln(rt.out, "No devices found.")
		return nil
	}
	rows := [][]string{{"NAME", "ADDRESS", "RSSI", ""}}
	for _, adv := range found {
		name := adv.Name
		if name == "" {
			name = "(unnamed)"
		}
		marker := ""
		if adv.Name == cfg.DeviceName {
			marker = "*"
		}
		rows = append(rows, []string{name, adv.Address, strconv.Itoa(int(adv.RSSI)), marker})
	}
	for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight}) {
		fmt.Fprintln(rt.out, line)
	}
	return nil
}

// lockedWriter serialises notices written from session goroutines.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
