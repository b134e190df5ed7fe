package ble

import (
	"errors"
	"fmt"
)

var (
	// ErrAdapterUnavailable means no usable wireless adapter was found.
	ErrAdapterUnavailable = errors.New("no usable bluetooth adapter")
	// ErrDeviceNotFound means no advertisement matched the requested name.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrIncompleteDevice means a required service group is missing.
	ErrIncompleteDevice = errors.New("required services not found on device")
	// ErrNotReady means a characteristic needed for the operation is missing.
	ErrNotReady = errors.New("characteristic not available")
)

// NotFoundError carries the name that was scanned for.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("device '%s' not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDeviceNotFound
}
