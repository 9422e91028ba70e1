package clock

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

// ManualScheduler fires actions only when told to. It never starts
// goroutines, which makes tick ordering deterministic in tests.
type ManualScheduler struct {
	mu      deadlock.Mutex
	entries []*manualEntry
}

type manualEntry struct {
	mu        deadlock.Mutex
	period    time.Duration
	repeating bool
	state     int
	fn        func(Handle)
}

func (e *manualEntry) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != stateActive {
		return false
	}
	e.state = stateExpired
	return true
}

func (e *manualEntry) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateActive
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (m *ManualScheduler) add(d time.Duration, repeating bool, fn func(Handle)) Handle {
	e := &manualEntry{period: d, repeating: repeating, fn: fn}
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
	return e
}

func (m *ManualScheduler) Every(d time.Duration, fn func(Handle)) Handle {
	return m.add(d, true, fn)
}

func (m *ManualScheduler) After(d time.Duration, fn func(Handle)) Handle {
	return m.add(d, false, fn)
}

func (m *ManualScheduler) snapshot(repeating bool) []*manualEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*manualEntry
	for _, e := range m.entries {
		if e.repeating == repeating {
			out = append(out, e)
		}
	}
	return out
}

// Tick fires every active repeating action once, in creation order. An
// action stopped by an earlier callback in the same round does not fire.
func (m *ManualScheduler) Tick() {
	for _, e := range m.snapshot(true) {
		if e.Active() {
			e.fn(e)
		}
	}
}

// FireDelayed fires every pending one-shot action.
func (m *ManualScheduler) FireDelayed() {
	for _, e := range m.snapshot(false) {
		if e.Stop() {
			e.fn(e)
		}
	}
}

// ActiveCount returns the number of actions that can still fire.
func (m *ManualScheduler) ActiveCount() int {
	m.mu.Lock()
	entries := append([]*manualEntry(nil), m.entries...)
	m.mu.Unlock()
	n := 0
	for _, e := range entries {
		if e.Active() {
			n++
		}
	}
	return n
}
