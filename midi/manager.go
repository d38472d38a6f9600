package midi

import (
	"context"
	"slices"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// PortEvent is emitted when an output port appears or disappears
type PortEvent struct {
	Type PortEventType
	Name string
}

type PortEventType int

const (
	PortConnected PortEventType = iota
	PortDisconnected
)

// ListPorts returns the output port names, or nil if the driver does not
// answer within timeout (CoreMIDI can hang).
func ListPorts(timeout time.Duration) []string {
	ch := make(chan []string, 1)
	go func() {
		names := []string{}
		for _, p := range gomidi.GetOutPorts() {
			names = append(names, p.String())
		}
		ch <- names
	}()

	select {
	case names := <-ch:
		return names
	case <-time.After(timeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil
	}
}

// PortWatcher handles hot-plug detection of MIDI output ports
type PortWatcher struct {
	ports    map[string]bool
	mu       sync.RWMutex
	events   chan PortEvent
	pollRate time.Duration
	list     func() []string
}

// NewPortWatcher creates a watcher polling the system's output ports
func NewPortWatcher() *PortWatcher {
	return newPortWatcher(func() []string { return ListPorts(3 * time.Second) }, time.Second)
}

func newPortWatcher(list func() []string, pollRate time.Duration) *PortWatcher {
	return &PortWatcher{
		ports:    make(map[string]bool),
		events:   make(chan PortEvent, 16),
		pollRate: pollRate,
		list:     list,
	}
}

// Events returns a channel of connect/disconnect events
func (w *PortWatcher) Events() <-chan PortEvent {
	return w.events
}

// Ports returns a sorted snapshot of known output ports
func (w *PortWatcher) Ports() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	names := make([]string, 0, len(w.ports))
	for name := range w.ports {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run starts the polling loop (blocking - run in goroutine)
func (w *PortWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()
	defer close(w.events)

	// Initial scan
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *PortWatcher) scan(ctx context.Context) {
	names := w.list()
	if names == nil {
		return // driver hung or no ports; keep what we had
	}

	seen := make(map[string]bool, len(names))
	var events []PortEvent

	w.mu.Lock()
	for _, name := range names {
		seen[name] = true
		if !w.ports[name] {
			w.ports[name] = true
			events = append(events, PortEvent{Type: PortConnected, Name: name})
		}
	}
	for name := range w.ports {
		if !seen[name] {
			delete(w.ports, name)
			events = append(events, PortEvent{Type: PortDisconnected, Name: name})
		}
	}
	w.mu.Unlock()

	for _, ev := range events {
		select {
		case w.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
