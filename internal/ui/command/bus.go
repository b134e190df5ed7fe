package command

import (
	"strings"

	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
)

// Bus hands submitted commands to the dispatcher queue.
type Bus struct {
	queue *bridge.Queue[string]
}

// New initialises a command bus feeding queue.
func New(queue *bridge.Queue[string]) *Bus {
	return &Bus{queue: queue}
}

// Submit enqueues text without blocking. Blank text is ignored. It reports
// whether the command was accepted.
func (b *Bus) Submit(text string) bool {
	if b == nil || b.queue == nil {
		return false
	}
	if strings.TrimSpace(text) == "" {
		return false
	}
	events.Command.Queue(text)
	return b.queue.Send(text)
}
