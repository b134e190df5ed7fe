package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/app"
	"github.com/atomicstack/i2c-ble-client/internal/backend"
	"github.com/atomicstack/i2c-ble-client/internal/ble"
	"github.com/atomicstack/i2c-ble-client/internal/state"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultDeviceName is the name the stock firmware advertises.
const DefaultDeviceName = "I2C-BLE-Logger"

const programName = "i2c-ble-client"

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	// File is the YAML file that was loaded, if any.
	File string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envDevice  = "I2C_BLE_CLIENT_DEVICE"
	envTrace   = "I2C_BLE_CLIENT_TRACE"
	envLogFile = "I2C_BLE_CLIENT_LOG_FILE"
	envConfig  = "I2C_BLE_CLIENT_CONFIG"
)

// fileConfig is the optional YAML document named by I2C_BLE_CLIENT_CONFIG.
type fileConfig struct {
	DeviceName        string        `yaml:"device_name"`
	ScanWindow        time.Duration `yaml:"scan_window"`
	LinkInterval      time.Duration `yaml:"link_interval"`
	TelemetryCapacity int           `yaml:"telemetry_capacity"`
	StatusCapacity    int           `yaml:"status_capacity"`
	UUIDs             fileUUIDs     `yaml:"uuids"`
}

type fileUUIDs struct {
	SerialService string `yaml:"serial_service"`
	ConfigService string `yaml:"config_service"`
	Telemetry     string `yaml:"telemetry"`
	Receive       string `yaml:"receive"`
	Config        string `yaml:"config"`
	Status        string `yaml:"status"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then config file, then built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	appCfg := defaults()
	configPath := strings.TrimSpace(env[envConfig])
	if configPath != "" {
		if err := applyFile(&appCfg, configPath); err != nil {
			return Config{}, err
		}
	}

	fs := newFlagSet()
	device := fs.StringP("device-name", "d", envOrDefault(env, envDevice, appCfg.DeviceName), "advertised name of the device to connect to")
	scanOnly := fs.BoolP("scan-only", "s", false, "list advertising devices and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	appCfg.DeviceName = strings.TrimSpace(*device)
	appCfg.ScanOnly = *scanOnly

	cfg := Config{
		App: appCfg,
		Logging: Logging{
			FilePath: envOrDefault(env, envLogFile, ""),
			Trace:    envOrBool(env, envTrace, false),
		},
		Flags: map[string]string{
			"device-name": appCfg.DeviceName,
			"scan-only":   strconv.FormatBool(appCfg.ScanOnly),
		},
		Args: append([]string(nil), args...),
		File: configPath,
	}
	return cfg, nil
}

func defaults() app.Config {
	return app.Config{
		DeviceName:        DefaultDeviceName,
		ScanWindow:        ble.DefaultScanWindow,
		LinkInterval:      backend.DefaultInterval,
		TelemetryCapacity: state.TelemetryCapacity,
		StatusCapacity:    state.StatusCapacity,
		Profile:           ble.DefaultProfile(),
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false
	return fs
}

// Usage returns the help text printed for --help.
func Usage() string {
	fs := newFlagSet()
	fs.StringP("device-name", "d", DefaultDeviceName, "advertised name of the device to connect to")
	fs.BoolP("scan-only", "s", false, "list advertising devices and exit")
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s [flags]\n\n", programName)
	b.WriteString("Terminal client for the I2C BLE Logger.\n\n")
	b.WriteString("Flags:\n")
	b.WriteString(fs.FlagUsages())
	b.WriteString("  -h, --help                 show this help\n\n")
	b.WriteString("Environment:\n")
	fmt.Fprintf(&b, "  %-26s default device name\n", envDevice)
	fmt.Fprintf(&b, "  %-26s enable JSON trace logging\n", envTrace)
	fmt.Fprintf(&b, "  %-26s path to the log file\n", envLogFile)
	fmt.Fprintf(&b, "  %-26s path to a YAML config file\n", envConfig)
	return b.String()
}

func applyFile(cfg *app.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if name := strings.TrimSpace(fc.DeviceName); name != "" {
		cfg.DeviceName = name
	}
	if fc.ScanWindow != 0 {
		cfg.ScanWindow = fc.ScanWindow
	}
	if fc.LinkInterval != 0 {
		cfg.LinkInterval = fc.LinkInterval
	}
	if fc.TelemetryCapacity != 0 {
		cfg.TelemetryCapacity = fc.TelemetryCapacity
	}
	if fc.StatusCapacity != 0 {
		cfg.StatusCapacity = fc.StatusCapacity
	}
	overrides := []struct {
		name  string
		value string
		dst   *uuid.UUID
	}{
		{"serial_service", fc.UUIDs.SerialService, &cfg.Profile.SerialService},
		{"config_service", fc.UUIDs.ConfigService, &cfg.Profile.ConfigService},
		{"telemetry", fc.UUIDs.Telemetry, &cfg.Profile.Telemetry},
		{"receive", fc.UUIDs.Receive, &cfg.Profile.Receive},
		{"config", fc.UUIDs.Config, &cfg.Profile.Config},
		{"status", fc.UUIDs.Status, &cfg.Profile.Status},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(o.value))
		if err != nil {
			return fmt.Errorf("config file %s: uuids.%s: %w", path, o.name, err)
		}
		*o.dst = id
	}
	return nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits. --help prints usage and exits 0.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(os.Stdout, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		fmt.Fprint(os.Stderr, Usage())
		os.Exit(2)
	}
	return cfg
}

// Validate rejects configuration the client cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	if a.DeviceName == "" {
		return errors.New("device name must not be empty")
	}
	if a.ScanWindow <= 0 {
		return fmt.Errorf("scan window must be > 0 (got %s)", a.ScanWindow)
	}
	if a.LinkInterval < 0 {
		return fmt.Errorf("link interval must be >= 0 (got %s)", a.LinkInterval)
	}
	if a.LinkInterval > 0 && a.LinkInterval < backend.MinInterval {
		return fmt.Errorf("link interval must be at least %s (got %s)", backend.MinInterval, a.LinkInterval)
	}
	if a.TelemetryCapacity <= 0 {
		return fmt.Errorf("telemetry capacity must be > 0 (got %d)", a.TelemetryCapacity)
	}
	if a.StatusCapacity <= 0 {
		return fmt.Errorf("status capacity must be > 0 (got %d)", a.StatusCapacity)
	}
	if err := a.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	return nil
}
