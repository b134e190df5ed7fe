package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/atomicstack/i2c-ble-client/internal/ble"
	"github.com/google/uuid"
)

// ErrFake is a generic failure injected by fakes.
var ErrFake = errors.New("fake transport failure")

// FakeAdapter replays a fixed list of advertisements and hands out the
// matching FakePeripheral on Connect.
type FakeAdapter struct {
	mu sync.Mutex

	EnableErr   error
	ScanErr     error
	ConnectErr  error
	Adverts     []ble.Advertisement
	Peripherals map[string]*FakePeripheral

	Enabled   int
	Scans     int
	Connected []string
}

// NewFakeAdapter advertises each peripheral under name.
func NewFakeAdapter(name string, peripherals ...*FakePeripheral) *FakeAdapter {
	a := &FakeAdapter{Peripherals: make(map[string]*FakePeripheral)}
	for _, p := range peripherals {
		a.Adverts = append(a.Adverts, ble.Advertisement{Name: name, Address: p.Addr, RSSI: -60})
		a.Peripherals[p.Addr] = p
	}
	return a
}

func (a *FakeAdapter) Enable() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Enabled++
	return a.EnableErr
}

// Scan reports every advert then waits for the window to close, like a
// radio that keeps listening.
func (a *FakeAdapter) Scan(ctx context.Context, found func(ble.Advertisement) bool) error {
	a.mu.Lock()
	a.Scans++
	adverts := append([]ble.Advertisement(nil), a.Adverts...)
	err := a.ScanErr
	a.mu.Unlock()
	if err != nil {
		return err
	}
	for _, adv := range adverts {
		if ctx.Err() != nil {
			return nil
		}
		if !found(adv) {
			return nil
		}
	}
	<-ctx.Done()
	return nil
}

func (a *FakeAdapter) Connect(_ context.Context, adv ble.Advertisement) (ble.Peripheral, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ConnectErr != nil {
		return nil, a.ConnectErr
	}
	p, ok := a.Peripherals[adv.Address]
	if !ok {
		return nil, ErrFake
	}
	a.Connected = append(a.Connected, adv.Address)
	p.setConnected(true)
	return p, nil
}

// FakePeripheral is an in-memory remote device.
type FakePeripheral struct {
	mu sync.Mutex

	Addr          string
	ServiceList   []*FakeService
	ServicesErr   error
	ConnectedErr  error
	DisconnectErr error

	connected   bool
	disconnects int
}

func (p *FakePeripheral) Address() string { return p.Addr }

func (p *FakePeripheral) Services() ([]ble.Service, error) {
	if p.ServicesErr != nil {
		return nil, p.ServicesErr
	}
	out := make([]ble.Service, 0, len(p.ServiceList))
	for _, s := range p.ServiceList {
		out = append(out, s)
	}
	return out, nil
}

func (p *FakePeripheral) Connected() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ConnectedErr != nil {
		return false, p.ConnectedErr
	}
	return p.connected, nil
}

func (p *FakePeripheral) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnects++
	if p.DisconnectErr != nil {
		return p.DisconnectErr
	}
	p.connected = false
	return nil
}

// Disconnects reports how many times Disconnect was called.
func (p *FakePeripheral) Disconnects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disconnects
}

// SetConnected flips the link state, simulating the radio dropping.
func (p *FakePeripheral) SetConnected(connected bool) {
	p.setConnected(connected)
}

func (p *FakePeripheral) setConnected(connected bool) {
	p.mu.Lock()
	p.connected = connected
	p.mu.Unlock()
}

// Characteristic returns the characteristic with id from any service.
func (p *FakePeripheral) Characteristic(id uuid.UUID) *FakeCharacteristic {
	for _, s := range p.ServiceList {
		for _, c := range s.Chars {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}

// FakeService is a capability group.
type FakeService struct {
	ID    uuid.UUID
	Chars []*FakeCharacteristic
	Err   error
}

func (s *FakeService) UUID() uuid.UUID { return s.ID }

func (s *FakeService) Characteristics() ([]ble.Characteristic, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]ble.Characteristic, 0, len(s.Chars))
	for _, c := range s.Chars {
		out = append(out, c)
	}
	return out, nil
}

// FakeCharacteristic records writes and lets tests push notifications.
type FakeCharacteristic struct {
	mu sync.Mutex

	ID         uuid.UUID
	Notifiable bool
	WriteErr   error
	NotifyErr  error

	writes  []string
	handler func([]byte)
}

func (c *FakeCharacteristic) UUID() uuid.UUID { return c.ID }

func (c *FakeCharacteristic) CanNotify() bool { return c.Notifiable }

func (c *FakeCharacteristic) Write(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.WriteErr != nil {
		return c.WriteErr
	}
	c.writes = append(c.writes, string(p))
	return nil
}

func (c *FakeCharacteristic) Notify(fn func([]byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.NotifyErr != nil {
		return c.NotifyErr
	}
	c.handler = fn
	return nil
}

// Writes returns every payload written so far.
func (c *FakeCharacteristic) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// Subscribed reports whether a notification handler is registered.
func (c *FakeCharacteristic) Subscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler != nil
}

// Emit pushes payload to the registered handler. It reports false when
// nothing is subscribed.
func (c *FakeCharacteristic) Emit(payload []byte) bool {
	c.mu.Lock()
	fn := c.handler
	c.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(payload)
	return true
}

// NewLoggerPeripheral builds a device exposing the full firmware profile.
func NewLoggerPeripheral(addr string, profile ble.Profile) *FakePeripheral {
	return &FakePeripheral{
		Addr: addr,
		ServiceList: []*FakeService{
			serialService(profile),
			{
				ID: profile.ConfigService,
				Chars: []*FakeCharacteristic{
					{ID: profile.Config},
					{ID: profile.Status, Notifiable: true},
				},
			},
		},
	}
}

// NewTelemetryOnlyPeripheral builds a device missing the config group.
func NewTelemetryOnlyPeripheral(addr string, profile ble.Profile) *FakePeripheral {
	return &FakePeripheral{
		Addr:        addr,
		ServiceList: []*FakeService{serialService(profile)},
	}
}

func serialService(profile ble.Profile) *FakeService {
	return &FakeService{
		ID: profile.SerialService,
		Chars: []*FakeCharacteristic{
			{ID: profile.Receive},
			{ID: profile.Telemetry, Notifiable: true},
		},
	}
}
