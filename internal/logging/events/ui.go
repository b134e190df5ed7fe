package events

import "github.com/atomicstack/i2c-ble-client/internal/logging"

type UITracer struct{}

type InputTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Input   = InputTracer{}
	Command = CommandTracer{}
)

func (UITracer) Event(kind string, lines int) {
	logging.Trace("ui.event", map[string]interface{}{"kind": kind, "lines": lines})
}

func (UITracer) Mode(mode string) {
	logging.Trace("ui.mode", map[string]interface{}{"mode": mode})
}

func (UITracer) Scroll(panel string, cursor int) {
	logging.Trace("ui.scroll", map[string]interface{}{"panel": panel, "cursor": cursor})
}

func (UITracer) Quit(reason string) {
	logging.Trace("ui.quit", map[string]interface{}{"reason": reason})
}

func (InputTracer) Complete(buffer, completion string) {
	logging.Trace("input.complete", map[string]interface{}{"buffer": buffer, "completion": completion})
}

func (InputTracer) Cancel(buffer string) {
	logging.Trace("input.cancel", map[string]interface{}{"buffer": buffer})
}

func (CommandTracer) Queue(text string) {
	logging.Trace("command.queue", map[string]interface{}{"command": text})
}

func (CommandTracer) Sent(text string) {
	logging.Trace("command.sent", map[string]interface{}{"command": text})
}

func (CommandTracer) Error(text string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"command": text, "error": err.Error()})
}
