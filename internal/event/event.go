// Package event defines the application events that flow from the device
// session and the command dispatcher into the UI.
package event

import "strings"

// Kind tags an Event.
type Kind int

const (
	KindTelemetry Kind = iota
	KindStatus
	KindCommandAck
)

func (k Kind) String() string {
	switch k {
	case KindTelemetry:
		return "telemetry"
	case KindStatus:
		return "status"
	case KindCommandAck:
		return "ack"
	default:
		return "unknown"
	}
}

// Event is a single message for the UI. Text may span several lines.
type Event struct {
	Kind Kind
	Text string
}

// Telemetry wraps bus log text.
func Telemetry(text string) Event { return Event{Kind: KindTelemetry, Text: text} }

// Status wraps human-readable device status text.
func Status(text string) Event { return Event{Kind: KindStatus, Text: text} }

// CommandAck wraps the outcome of a command send.
func CommandAck(text string) Event { return Event{Kind: KindCommandAck, Text: text} }

// Classify routes a decoded notification payload. Text carrying a bracketed
// address tag and a READ:/WRITE: marker is telemetry; everything else,
// including anything ambiguous, is status.
func Classify(text string) Event {
	if IsTelemetry(text) {
		return Telemetry(text)
	}
	return Status(text)
}

// IsTelemetry reports whether text looks like a bus transaction line.
func IsTelemetry(text string) bool {
	if !strings.Contains(text, "[") {
		return false
	}
	return strings.Contains(text, "READ:") || strings.Contains(text, "WRITE:")
}
