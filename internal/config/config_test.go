package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/ble"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DeviceName != DefaultDeviceName {
		t.Fatalf("expected default device name, got %q", cfg.App.DeviceName)
	}
	if cfg.App.ScanOnly {
		t.Fatalf("expected scan-only to default off")
	}
	if cfg.App.ScanWindow != ble.DefaultScanWindow {
		t.Fatalf("expected default scan window, got %s", cfg.App.ScanWindow)
	}
	if cfg.App.TelemetryCapacity != 1000 || cfg.App.StatusCapacity != 100 {
		t.Fatalf("unexpected capacities %d/%d", cfg.App.TelemetryCapacity, cfg.App.StatusCapacity)
	}
	if cfg.App.Profile != ble.DefaultProfile() {
		t.Fatalf("expected default profile")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadArgsFlags(t *testing.T) {
	cfg, err := LoadArgs([]string{"-d", "Bench-Logger", "--scan-only"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DeviceName != "Bench-Logger" {
		t.Fatalf("expected flag device name, got %q", cfg.App.DeviceName)
	}
	if !cfg.App.ScanOnly {
		t.Fatalf("expected scan-only")
	}
	if cfg.Flags["device-name"] != "Bench-Logger" || cfg.Flags["scan-only"] != "true" {
		t.Fatalf("unexpected flag record %#v", cfg.Flags)
	}

	cfg, err = LoadArgs([]string{"--device-name=Other", "-s"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DeviceName != "Other" || !cfg.App.ScanOnly {
		t.Fatalf("unexpected long-form parse %#v", cfg.App)
	}
}

func TestLoadArgsHelp(t *testing.T) {
	_, err := LoadArgs([]string{"-h"}, nil)
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	usage := Usage()
	for _, want := range []string{"--device-name", "-d", "--scan-only", "-s", "--help"} {
		if !strings.Contains(usage, want) {
			t.Fatalf("expected %q in usage:\n%s", want, usage)
		}
	}
}

func TestLoadArgsRejectsUnknownFlags(t *testing.T) {
	if _, err := LoadArgs([]string{"--width", "10"}, nil); err == nil {
		t.Fatalf("expected unknown flag to fail")
	}
	if _, err := LoadArgs([]string{"extra"}, nil); err == nil {
		t.Fatalf("expected positional argument to fail")
	}
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := []string{
		envDevice + "=Env-Logger",
		envTrace + "=true",
		envLogFile + "=/tmp/client.log",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DeviceName != "Env-Logger" {
		t.Fatalf("expected env device name, got %q", cfg.App.DeviceName)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/client.log" {
		t.Fatalf("unexpected logging config %#v", cfg.Logging)
	}

	cfg, err = LoadArgs([]string{"-d", "Flag-Logger"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DeviceName != "Flag-Logger" {
		t.Fatalf("expected flag to beat env, got %q", cfg.App.DeviceName)
	}
}

func TestLoadArgsConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
device_name: File-Logger
scan_window: 5s
link_interval: 2s
telemetry_capacity: 200
status_capacity: 20
uuids:
  status: 12345678-1234-1234-1234-1234567890ff
`)
	cfg, err := LoadArgs(nil, []string{envConfig + "=" + path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := cfg.App
	if a.DeviceName != "File-Logger" {
		t.Fatalf("expected file device name, got %q", a.DeviceName)
	}
	if a.ScanWindow != 5*time.Second || a.LinkInterval != 2*time.Second {
		t.Fatalf("unexpected durations %s/%s", a.ScanWindow, a.LinkInterval)
	}
	if a.TelemetryCapacity != 200 || a.StatusCapacity != 20 {
		t.Fatalf("unexpected capacities %d/%d", a.TelemetryCapacity, a.StatusCapacity)
	}
	want := uuid.MustParse("12345678-1234-1234-1234-1234567890ff")
	if a.Profile.Status != want {
		t.Fatalf("expected status uuid override, got %s", a.Profile.Status)
	}
	if a.Profile.Telemetry != ble.DefaultProfile().Telemetry {
		t.Fatalf("expected untouched uuids to keep defaults")
	}
	if cfg.File != path {
		t.Fatalf("expected file path recorded, got %q", cfg.File)
	}

	cfg, err = LoadArgs(nil, []string{envConfig + "=" + path, envDevice + "=Env-Logger"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DeviceName != "Env-Logger" {
		t.Fatalf("expected env to beat file, got %q", cfg.App.DeviceName)
	}
}

func TestLoadArgsConfigFileErrors(t *testing.T) {
	if _, err := LoadArgs(nil, []string{envConfig + "=/does/not/exist.yaml"}); err == nil {
		t.Fatalf("expected missing file to fail")
	}
	bad := writeConfigFile(t, "uuids:\n  telemetry: not-a-uuid\n")
	_, err := LoadArgs(nil, []string{envConfig + "=" + bad})
	if err == nil || !strings.Contains(err.Error(), "uuids.telemetry") {
		t.Fatalf("expected uuid error naming the field, got %v", err)
	}
	broken := writeConfigFile(t, "scan_window: [\n")
	if _, err := LoadArgs(nil, []string{envConfig + "=" + broken}); err == nil {
		t.Fatalf("expected malformed yaml to fail")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := base
	cfg.App.DeviceName = ""
	if Validate(cfg) == nil {
		t.Fatalf("expected empty device name to fail")
	}

	cfg = base
	cfg.App.ScanWindow = 0
	if Validate(cfg) == nil {
		t.Fatalf("expected zero scan window to fail")
	}

	cfg = base
	cfg.App.LinkInterval = 100 * time.Millisecond
	if Validate(cfg) == nil {
		t.Fatalf("expected sub-minimum link interval to fail")
	}

	cfg = base
	cfg.App.LinkInterval = 0
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected zero link interval to select the default, got %v", err)
	}

	cfg = base
	cfg.App.StatusCapacity = -1
	if Validate(cfg) == nil {
		t.Fatalf("expected negative capacity to fail")
	}

	cfg = base
	cfg.App.Profile.Config = uuid.Nil
	if Validate(cfg) == nil {
		t.Fatalf("expected unset uuid to fail")
	}
}

func TestBlankDeviceFlagFailsValidation(t *testing.T) {
	cfg, err := LoadArgs([]string{"-d", "   "}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Validate(cfg) == nil {
		t.Fatalf("expected blank device name to fail validation")
	}
}
