// Package ble owns the connection to one I2C BLE Logger device.
//
// The wireless stack is reached only through the Adapter, Peripheral,
// Service and Characteristic interfaces so the session lifecycle can be
// exercised without radio hardware. DefaultAdapter binds those interfaces
// to tinygo.org/x/bluetooth.
//
// Lifecycle:
//   - Connect enables the adapter, scans for a bounded window, matches the
//     advertised name exactly, connects, and validates that both the serial
//     (telemetry) and config service groups are present.
//   - Subscribe enables notifications on the telemetry and status
//     characteristics. Raw notifications are queued and a detached listener
//     decodes them as UTF-8 text before handing them to the callback.
//   - SendCommand writes trimmed text to the config characteristic without
//     waiting for a response; acknowledgements arrive later as status text.
//   - Disconnect closes the notification stream, which ends the listener.
package ble
