package dispatcher

import (
	"fmt"

	"github.com/atomicstack/i2c-ble-client/internal/bridge"
	"github.com/atomicstack/i2c-ble-client/internal/event"
	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
)

// Sender writes one command to the device.
type Sender interface {
	SendCommand(text string) error
}

// Dispatcher forwards operator commands to the device strictly in the order
// they were typed, one write at a time, and reports each outcome as a
// command acknowledgement event.
type Dispatcher struct {
	sender   Sender
	commands *bridge.Queue[string]
	events   *bridge.Queue[event.Event]
}

func New(sender Sender, commands *bridge.Queue[string], out *bridge.Queue[event.Event]) *Dispatcher {
	return &Dispatcher{sender: sender, commands: commands, events: out}
}

// Start runs the dispatcher on its own goroutine. It is never joined.
func (d *Dispatcher) Start() {
	go d.Run()
}

// Run drains the command queue until it is closed.
func (d *Dispatcher) Run() {
	for cmd := range d.commands.Out() {
		d.Handle(cmd)
	}
}

// Handle sends cmd and publishes the acknowledgement.
func (d *Dispatcher) Handle(cmd string) event.Event {
	var ack event.Event
	if err := d.sender.SendCommand(cmd); err != nil {
		events.Command.Error(cmd, err)
		ack = event.CommandAck(fmt.Sprintf("Error sending command: %v", err))
	} else {
		events.Command.Sent(cmd)
		ack = event.CommandAck(fmt.Sprintf("Sent: %s", cmd))
	}
	d.events.Send(ack)
	return ack
}
