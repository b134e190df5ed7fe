package ble

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
	"github.com/google/uuid"
)

// DefaultScanWindow matches the firmware's advertising cadence with margin.
const DefaultScanWindow = 3 * time.Second

// Options tunes Connect and Scan.
type Options struct {
	ScanWindow time.Duration
	Profile    Profile
	// Notice receives human-readable progress messages. Every notice is also
	// written to the trace log.
	Notice func(string)
}

func (o Options) withDefaults() Options {
	if o.ScanWindow <= 0 {
		o.ScanWindow = DefaultScanWindow
	}
	if o.Profile == (Profile{}) {
		o.Profile = DefaultProfile()
	}
	return o
}

// Capabilities records which groups and endpoints were confirmed on connect.
type Capabilities struct {
	Serial    bool
	Config    bool
	Telemetry bool
	Receive   bool
	Command   bool
	Status    bool
}

// Complete reports whether both required service groups are present.
func (c Capabilities) Complete() bool {
	return c.Serial && c.Config
}

// Session is a validated connection to one device.
type Session struct {
	name       string
	peripheral Peripheral
	caps       Capabilities
	profile    Profile
	notice     func(string)

	telemetry Characteristic
	status    Characteristic
	config    Characteristic

	notifications *bridge.Queue[Notification]
	listenOnce    sync.Once
	closeOnce     sync.Once
}

// Connect discovers the device advertising exactly name, connects to it and
// validates its services.
func Connect(ctx context.Context, adapter Adapter, name string, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	if adapter == nil {
		return nil, ErrAdapterUnavailable
	}
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAdapterUnavailable, err)
	}

	match, err := findByName(ctx, adapter, name, opts.ScanWindow)
	if err != nil {
		return nil, err
	}

	peripheral, err := adapter.Connect(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", name, err)
	}

	s := &Session{
		name:          name,
		peripheral:    peripheral,
		profile:       opts.Profile,
		notice:        opts.Notice,
		notifications: bridge.New[Notification](),
	}
	if err := s.discover(); err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Services found: Serial=%t, Config=%t", s.caps.Serial, s.caps.Config)
	if !s.caps.Complete() {
		events.Transport.Notice(summary)
		// The link stays up; the caller exits on this error.
		return nil, fmt.Errorf("%w (serial=%t, config=%t)", ErrIncompleteDevice, s.caps.Serial, s.caps.Config)
	}
	s.noticef("Connected to I2C BLE Logger")
	s.noticef("%s", summary)
	return s, nil
}

// Scan lists every peer advertising during the window, sorted by name then
// address. Repeated advertisements keep the most recent signal strength.
func Scan(ctx context.Context, adapter Adapter, window time.Duration) ([]Advertisement, error) {
	if adapter == nil {
		return nil, ErrAdapterUnavailable
	}
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAdapterUnavailable, err)
	}
	if window <= 0 {
		window = DefaultScanWindow
	}
	scanCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	events.Transport.ScanStart("", window.Milliseconds())
	seen := make(map[string]Advertisement)
	err := adapter.Scan(scanCtx, func(adv Advertisement) bool {
		events.Transport.ScanResult(adv.Name, adv.Address, adv.RSSI)
		seen[adv.Address] = adv
		return true
	})
	events.Transport.ScanStop("", len(seen) > 0)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	out := make([]Advertisement, 0, len(seen))
	for _, adv := range seen {
		out = append(out, adv)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Address < out[j].Address
	})
	return out, nil
}

func findByName(ctx context.Context, adapter Adapter, name string, window time.Duration) (Advertisement, error) {
	scanCtx, cancel := context.WithTimeout(ctx, window)
	defer cancel()

	events.Transport.ScanStart(name, window.Milliseconds())
	var (
		match Advertisement
		found bool
	)
	err := adapter.Scan(scanCtx, func(adv Advertisement) bool {
		events.Transport.ScanResult(adv.Name, adv.Address, adv.RSSI)
		if adv.Name != name {
			return true
		}
		match = adv
		found = true
		return false
	})
	events.Transport.ScanStop(name, found)
	if err != nil {
		return Advertisement{}, fmt.Errorf("scan: %w", err)
	}
	if !found {
		return Advertisement{}, &NotFoundError{Name: name}
	}
	return match, nil
}

func (s *Session) discover() error {
	services, err := s.peripheral.Services()
	if err != nil {
		return fmt.Errorf("discover services: %w", err)
	}
	for _, svc := range services {
		switch svc.UUID() {
		case s.profile.SerialService:
			s.caps.Serial = true
		case s.profile.ConfigService:
			s.caps.Config = true
		default:
			continue
		}
		chars, err := svc.Characteristics()
		if err != nil {
			return fmt.Errorf("discover characteristics of %s: %w", svc.UUID(), err)
		}
		for _, c := range chars {
			switch c.UUID() {
			case s.profile.Telemetry:
				s.telemetry = c
				s.caps.Telemetry = true
			case s.profile.Receive:
				s.caps.Receive = true
			case s.profile.Config:
				s.config = c
				s.caps.Command = true
			case s.profile.Status:
				s.status = c
				s.caps.Status = true
			}
		}
	}
	return nil
}

// Name returns the advertised name the session was opened with.
func (s *Session) Name() string {
	return s.name
}

// Address returns the peer address.
func (s *Session) Address() string {
	return s.peripheral.Address()
}

// Capabilities returns the validated capability set.
func (s *Session) Capabilities() Capabilities {
	return s.caps
}

// SendCommand trims text and writes it to the config characteristic.
func (s *Session) SendCommand(text string) error {
	clean := strings.TrimSpace(text)
	if s.config == nil {
		return fmt.Errorf("%w: config characteristic not found", ErrNotReady)
	}
	if err := s.config.Write([]byte(clean)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	s.noticef("Sent config command: %s", clean)
	return nil
}

// Subscribe enables notifications on the telemetry and status endpoints and
// starts the listener that feeds onText. Endpoints that do not advertise
// notify are skipped.
func (s *Session) Subscribe(onText func(string)) error {
	if s.telemetry == nil {
		return fmt.Errorf("%w: telemetry characteristic not found", ErrNotReady)
	}
	if s.status == nil {
		return fmt.Errorf("%w: status characteristic not found", ErrNotReady)
	}
	if err := s.enable(s.telemetry, "telemetry", "Subscribed to I2C data stream"); err != nil {
		return err
	}
	if err := s.enable(s.status, "status", "Subscribed to status updates"); err != nil {
		return err
	}
	s.listenOnce.Do(func() {
		go s.listen(onText)
	})
	return nil
}

func (s *Session) enable(c Characteristic, label, notice string) error {
	if !c.CanNotify() {
		events.Transport.SubscribeSkipped(label)
		return nil
	}
	endpoint := c.UUID()
	err := c.Notify(func(p []byte) {
		payload := make([]byte, len(p))
		copy(payload, p)
		s.notifications.Send(Notification{Endpoint: endpoint, Payload: payload})
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", label, err)
	}
	events.Transport.Subscribed(label)
	s.noticef("%s", notice)
	return nil
}

// listen runs until the notification stream is closed by Disconnect.
func (s *Session) listen(onText func(string)) {
	defer events.Transport.ListenerDone()
	for n := range s.notifications.Out() {
		if !utf8.Valid(n.Payload) {
			events.Transport.Dropped(s.endpointLabel(n.Endpoint), len(n.Payload))
			continue
		}
		if onText != nil {
			onText(string(n.Payload))
		}
	}
}

func (s *Session) endpointLabel(id uuid.UUID) string {
	switch id {
	case s.profile.Telemetry:
		return "telemetry"
	case s.profile.Status:
		return "status"
	default:
		return id.String()
	}
}

// Disconnect ends the notification stream and drops the link. Errors are
// returned for reporting only.
func (s *Session) Disconnect() error {
	s.closeOnce.Do(s.notifications.Close)
	err := s.peripheral.Disconnect()
	events.Transport.Disconnect(err)
	if err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	s.noticef("Disconnected from I2C BLE Logger")
	return nil
}

// IsConnected probes the link. Any probe failure counts as disconnected.
func (s *Session) IsConnected() bool {
	connected, err := s.peripheral.Connected()
	if err != nil {
		return false
	}
	return connected
}

func (s *Session) noticef(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	events.Transport.Notice(msg)
	if s.notice != nil {
		s.notice(msg)
	}
}
