package ble

import (
	"fmt"

	"github.com/google/uuid"
)

// Profile names the GATT identifiers the firmware exposes.
type Profile struct {
	SerialService uuid.UUID
	ConfigService uuid.UUID
	// Telemetry notifies formatted bus transactions (Nordic UART TX).
	Telemetry uuid.UUID
	// Receive is the Nordic UART RX characteristic. The client does not
	// write to it; it is recorded in the capability set only.
	Receive uuid.UUID
	Config  uuid.UUID
	Status  uuid.UUID
}

var defaultProfile = Profile{
	SerialService: uuid.MustParse("6E400001-B5A3-F393-E0A9-E50E24DCCA9E"),
	ConfigService: uuid.MustParse("12345678-1234-1234-1234-123456789ABC"),
	Receive:       uuid.MustParse("6E400002-B5A3-F393-E0A9-E50E24DCCA9E"),
	Telemetry:     uuid.MustParse("6E400003-B5A3-F393-E0A9-E50E24DCCA9E"),
	Config:        uuid.MustParse("12345678-1234-1234-1234-123456789ABD"),
	Status:        uuid.MustParse("12345678-1234-1234-1234-123456789ABE"),
}

// DefaultProfile returns the identifiers used by the stock firmware.
func DefaultProfile() Profile {
	return defaultProfile
}

// Validate rejects profiles with unset identifiers.
func (p Profile) Validate() error {
	fields := []struct {
		name string
		id   uuid.UUID
	}{
		{"serial service", p.SerialService},
		{"config service", p.ConfigService},
		{"telemetry characteristic", p.Telemetry},
		{"receive characteristic", p.Receive},
		{"config characteristic", p.Config},
		{"status characteristic", p.Status},
	}
	for _, f := range fields {
		if f.id == uuid.Nil {
			return fmt.Errorf("%s uuid is not set", f.name)
		}
	}
	return nil
}
