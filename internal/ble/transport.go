package ble

import (
	"context"

	"github.com/google/uuid"
)

// Advertisement is one discovered peer.
type Advertisement struct {
	Name    string
	Address string
	RSSI    int16
}

// Notification is a raw payload pushed by the remote, tagged with the
// characteristic it arrived on.
type Notification struct {
	Endpoint uuid.UUID
	Payload  []byte
}

// Adapter is the local wireless controller.
type Adapter interface {
	Enable() error
	// Scan reports advertisements to found until found returns false or ctx
	// is done. Reaching the end of ctx is not an error.
	Scan(ctx context.Context, found func(Advertisement) bool) error
	Connect(ctx context.Context, adv Advertisement) (Peripheral, error)
}

// Peripheral is a connected remote device.
type Peripheral interface {
	Address() string
	// Services enumerates the remote GATT services.
	Services() ([]Service, error)
	Connected() (bool, error)
	Disconnect() error
}

// Service is a capability group on the remote.
type Service interface {
	UUID() uuid.UUID
	Characteristics() ([]Characteristic, error)
}

// Characteristic is a single endpoint inside a Service.
type Characteristic interface {
	UUID() uuid.UUID
	// CanNotify reports whether the remote advertises notifications.
	CanNotify() bool
	// Write sends p without requesting a response.
	Write(p []byte) error
	// Notify registers fn for every notification the endpoint pushes.
	Notify(fn func([]byte)) error
}
