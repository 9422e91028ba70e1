// Package clock schedules the game's repeating ticks and delayed actions.
//
// Every scheduled action is represented by a Handle. Callbacks receive their
// own handle so the owner can check, under its own lock, that the handle is
// still the one it expects before touching any state.
package clock

import (
	"time"

	"github.com/sasha-s/go-deadlock"
)

const (
	stateActive = iota
	stateExpired
)

// Handle is a scheduled action that can be cancelled.
type Handle interface {
	// Stop prevents any further firing. It returns false if the action had
	// already expired or been stopped.
	Stop() bool
	// Active reports whether the action can still fire.
	Active() bool
}

// Scheduler creates scheduled actions.
type Scheduler interface {
	// Every calls fn every d until the returned handle is stopped.
	Every(d time.Duration, fn func(Handle)) Handle
	// After calls fn once after d unless the returned handle is stopped first.
	After(d time.Duration, fn func(Handle)) Handle
}

// RealScheduler runs actions on the wall clock.
type RealScheduler struct{}

type ticker struct {
	l     deadlock.Mutex
	state int
	stop  chan struct{}
}

func (t *ticker) Stop() bool {
	t.l.Lock()
	defer t.l.Unlock()
	if t.state != stateActive {
		return false
	}
	t.state = stateExpired
	close(t.stop)
	return true
}

func (t *ticker) Active() bool {
	t.l.Lock()
	defer t.l.Unlock()
	return t.state == stateActive
}

func (RealScheduler) Every(d time.Duration, fn func(Handle)) Handle {
	t := &ticker{stop: make(chan struct{})}
	tk := time.NewTicker(d)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				if !t.Active() {
					return
				}
				fn(t)
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

type timer struct {
	l     deadlock.Mutex
	state int
	t     *time.Timer
}

func (t *timer) Stop() bool {
	t.l.Lock()
	defer t.l.Unlock()
	if t.state != stateActive {
		return false
	}
	t.state = stateExpired
	t.t.Stop()
	return true
}

func (t *timer) Active() bool {
	t.l.Lock()
	defer t.l.Unlock()
	return t.state == stateActive
}

func (RealScheduler) After(d time.Duration, fn func(Handle)) Handle {
	t := &timer{}
	t.l.Lock()
	defer t.l.Unlock()
	t.t = time.AfterFunc(d, func() {
		t.l.Lock()
		if t.state != stateActive {
			t.l.Unlock()
			return
		}
		t.state = stateExpired
		t.l.Unlock()
		fn(t)
	})
	return t
}
