package events

import "github.com/atomicstack/i2c-ble-client/internal/logging"

type TransportTracer struct{}

type LinkTracer struct{}

var (
	Transport = TransportTracer{}
	Link      = LinkTracer{}
)

func (TransportTracer) ScanStart(name string, windowMillis int64) {
	logging.Trace("ble.scan.start", map[string]interface{}{"name": name, "window_ms": windowMillis})
}

func (TransportTracer) ScanResult(name, address string, rssi int16) {
	logging.Trace("ble.scan.result", map[string]interface{}{"name": name, "address": address, "rssi": rssi})
}

func (TransportTracer) ScanStop(name string, matched bool) {
	logging.Trace("ble.scan.stop", map[string]interface{}{"name": name, "matched": matched})
}

func (TransportTracer) Notice(message string) {
	logging.Trace("ble.notice", map[string]interface{}{"message": message})
}

func (TransportTracer) Subscribed(endpoint string) {
	logging.Trace("ble.subscribe", map[string]interface{}{"endpoint": endpoint})
}

func (TransportTracer) SubscribeSkipped(endpoint string) {
	logging.Trace("ble.subscribe.skip", map[string]interface{}{"endpoint": endpoint})
}

func (TransportTracer) Dropped(endpoint string, size int) {
	logging.Trace("ble.notification.drop", map[string]interface{}{"endpoint": endpoint, "bytes": size})
}

func (TransportTracer) ListenerDone() {
	logging.Trace("ble.listener.done", nil)
}

func (TransportTracer) Disconnect(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ble.disconnect", payload)
}

func (LinkTracer) Changed(connected bool) {
	logging.Trace("link.changed", map[string]interface{}{"connected": connected})
}
