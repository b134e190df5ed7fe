package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/i2c-ble-client/internal/app"
	"github.com/atomicstack/i2c-ble-client/internal/config"
	"github.com/atomicstack/i2c-ble-client/internal/logging"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		var connErr *app.ConnectError
		if errors.As(err, &connErr) {
			fmt.Fprintln(os.Stderr, connErr.Error())
			fmt.Fprintln(os.Stderr, app.ConnectHint)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg, int(os.Stdout.Fd())))
}

// startupTracePayload records how the client was invoked and whether the
// TUI has a terminal to draw on.
func startupTracePayload(cfg config.Config, stdout int) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+3)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	if cfg.File != "" {
		flags["configFile"] = cfg.File
	}
	return map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"app":      cfg.App,
		"terminal": probeTerminal(stdout),
	}
}

type terminalInfo struct {
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func probeTerminal(fd int) terminalInfo {
	if fd < 0 || !term.IsTerminal(fd) {
		return terminalInfo{}
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return terminalInfo{IsTerminal: true, Error: err.Error()}
	}
	return terminalInfo{IsTerminal: true, Width: width, Height: height}
}
