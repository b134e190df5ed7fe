package ble

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"
)

// DefaultAdapter returns the host's default bluetooth controller.
func DefaultAdapter() Adapter {
	return newTinygoAdapter(bluetooth.DefaultAdapter)
}

type tinygoAdapter struct {
	adapter *bluetooth.Adapter

	mu        sync.Mutex
	addresses map[string]bluetooth.Address
	links     map[string]*tinygoPeripheral
}

func newTinygoAdapter(adapter *bluetooth.Adapter) *tinygoAdapter {
	return &tinygoAdapter{
		adapter:   adapter,
		addresses: make(map[string]bluetooth.Address),
		links:     make(map[string]*tinygoPeripheral),
	}
}

func (a *tinygoAdapter) Enable() error {
	if a.adapter == nil {
		return fmt.Errorf("bluetooth adapter missing")
	}
	if err := a.adapter.Enable(); err != nil {
		return err
	}
	a.adapter.SetConnectHandler(a.onConnectionChange)
	return nil
}

func (a *tinygoAdapter) Scan(ctx context.Context, found func(Advertisement) bool) error {
	stopped := make(chan struct{})
	var once sync.Once
	halt := func() {
		once.Do(func() {
			close(stopped)
			_ = a.adapter.StopScan()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			halt()
		case <-stopped:
		}
	}()

	err := a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		adv := Advertisement{
			Name:    result.LocalName(),
			Address: result.Address.String(),
			RSSI:    result.RSSI,
		}
		a.rememberAddress(adv.Address, result.Address)
		if !found(adv) {
			halt()
		}
	})
	halt()
	return err
}

func (a *tinygoAdapter) Connect(_ context.Context, adv Advertisement) (Peripheral, error) {
	a.mu.Lock()
	addr, ok := a.addresses[adv.Address]
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("address %s was not seen during scan", adv.Address)
	}
	device, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return nil, err
	}
	p := &tinygoPeripheral{device: device, address: adv.Address}
	p.connected.Store(true)
	a.mu.Lock()
	a.links[adv.Address] = p
	a.mu.Unlock()
	return p, nil
}

func (a *tinygoAdapter) rememberAddress(key string, addr bluetooth.Address) {
	a.mu.Lock()
	a.addresses[key] = addr
	a.mu.Unlock()
}

func (a *tinygoAdapter) onConnectionChange(device bluetooth.Device, connected bool) {
	a.mu.Lock()
	p := a.links[device.Address.String()]
	a.mu.Unlock()
	if p != nil {
		p.connected.Store(connected)
	}
}

type tinygoPeripheral struct {
	device    bluetooth.Device
	address   string
	connected atomic.Bool
}

func (p *tinygoPeripheral) Address() string {
	return p.address
}

func (p *tinygoPeripheral) Services() ([]Service, error) {
	services, err := p.device.DiscoverServices(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Service, 0, len(services))
	for i := range services {
		out = append(out, &tinygoService{service: &services[i]})
	}
	return out, nil
}

// Connected reflects the adapter's connect/disconnect callbacks.
func (p *tinygoPeripheral) Connected() (bool, error) {
	return p.connected.Load(), nil
}

func (p *tinygoPeripheral) Disconnect() error {
	err := p.device.Disconnect()
	p.connected.Store(false)
	return err
}

type tinygoService struct {
	service *bluetooth.DeviceService
}

func (s *tinygoService) UUID() uuid.UUID {
	return toUUID(s.service.UUID())
}

func (s *tinygoService) Characteristics() ([]Characteristic, error) {
	chars, err := s.service.DiscoverCharacteristics(nil)
	if err != nil {
		return nil, err
	}
	out := make([]Characteristic, 0, len(chars))
	for i := range chars {
		out = append(out, &tinygoCharacteristic{char: &chars[i]})
	}
	return out, nil
}

type tinygoCharacteristic struct {
	char *bluetooth.DeviceCharacteristic
}

func (c *tinygoCharacteristic) UUID() uuid.UUID {
	return toUUID(c.char.UUID())
}

// CanNotify is always true: the characteristic properties are not exposed
// on every platform, so an unsupported endpoint surfaces as a Notify error.
func (c *tinygoCharacteristic) CanNotify() bool {
	return true
}

func (c *tinygoCharacteristic) Write(p []byte) error {
	_, err := c.char.WriteWithoutResponse(p)
	return err
}

func (c *tinygoCharacteristic) Notify(fn func([]byte)) error {
	return c.char.EnableNotifications(fn)
}

func toUUID(id bluetooth.UUID) uuid.UUID {
	parsed, err := uuid.Parse(id.String())
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
