package events

import "github.com/atomicstack/i2c-ble-client/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) ProgramExit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.program.exit", payload)
}

func (AppTracer) Shutdown(device string) {
	logging.Trace("app.shutdown", map[string]interface{}{"device": device})
}
