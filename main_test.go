package main

import (
	"testing"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/app"
	"github.com/atomicstack/i2c-ble-client/internal/ble"
	"github.com/atomicstack/i2c-ble-client/internal/config"
)

func TestProbeTerminalRejectsInvalidDescriptor(t *testing.T) {
	if info := probeTerminal(-1); info.IsTerminal || info.Width != 0 {
		t.Fatalf("expected no terminal for invalid descriptor, got %#v", info)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			DeviceName:        "Bench-Logger",
			ScanOnly:          true,
			ScanWindow:        3 * time.Second,
			LinkInterval:      time.Second,
			TelemetryCapacity: 1000,
			StatusCapacity:    100,
			Profile:           ble.DefaultProfile(),
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"device-name": "Bench-Logger",
			"scan-only":   "true",
		},
		Args: []string{"-d", "Bench-Logger", "-s"},
		File: "client.yaml",
	}

	payload := startupTracePayload(cfg, -1)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["device-name"] != "Bench-Logger" {
		t.Fatalf("expected device-name flag %q, got %v", "Bench-Logger", flagsValue["device-name"])
	}
	if flagsValue["scan-only"] != "true" {
		t.Fatalf("expected scan-only flag true, got %v", flagsValue["scan-only"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if flagsValue["configFile"] != "client.yaml" {
		t.Fatalf("expected config file client.yaml, got %v", flagsValue["configFile"])
	}

	if info, ok := payload["terminal"].(terminalInfo); !ok || info.IsTerminal {
		t.Fatalf("expected non-terminal probe in payload, got %#v", payload["terminal"])
	}
	if appValue, ok := payload["app"].(app.Config); !ok || appValue != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, payload["app"])
	}
}
