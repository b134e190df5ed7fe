package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/i2c-ble-client/internal/logging/events"
)

// DefaultInterval is how often the link is probed when no interval is given.
const DefaultInterval = time.Second

// MinInterval is the shortest probe period; shorter intervals are raised
// to it so polling cannot hammer the radio.
const MinInterval = 250 * time.Millisecond

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindLink Kind = iota
)

// Event conveys a change observed by a backend poll.
type Event struct {
	Kind      Kind
	Connected bool
}

// Prober reports whether the device link is still up. It must not block.
type Prober interface {
	IsConnected() bool
}

// Watcher polls the device link at a fixed interval and publishes an event
// whenever its state changes. The first probe is always published.
type Watcher struct {
	prober   Prober
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling prober every interval until ctx is cancelled
// or Stop is called. A zero interval selects DefaultInterval.
func NewWatcher(ctx context.Context, prober Prober, interval time.Duration) *Watcher {
	switch {
	case interval <= 0:
		interval = DefaultInterval
	case interval < MinInterval:
		interval = MinInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		prober:   prober,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.startLinkPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events. It is closed once the
// watcher has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startLinkPoller() {
	w.wg.Add(1)
	go w.poll(KindLink, w.prober.IsConnected)
}

func (w *Watcher) poll(kind Kind, probe func() bool) {
	defer w.wg.Done()

	var (
		last  bool
		first = true
	)
	emit := func() bool {
		connected := probe()
		if !first && connected == last {
			return true
		}
		first = false
		last = connected
		events.Link.Changed(connected)
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Kind: kind, Connected: connected}:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
