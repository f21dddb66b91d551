// timer/timer.go

// Package timer provides the cooperative periodic task primitives of the
// simulated machine: Timer (one-shot / periodic), Watchdog (fatal fault on a
// missed feed) and WakeupClock (repeating wakeups). Callbacks run on the
// task's own goroutine, never on the caller's; stopping a task joins its loop
// so no callback fires after the stop returns.
package timer

import (
	"sync"
	"time"

	"mockmachine-go/hwerr"
	"mockmachine-go/x/timex"
)

// State is the task lifecycle: Idle -> Armed -> Running -> {Idle, Fault}.
type State uint8

const (
	StateIdle State = iota
	StateArmed
	StateRunning
	StateFault
)

func (s State) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	case StateFault:
		return "fault"
	default:
		return "idle"
	}
}

type Mode uint8

const (
	ModeOneShot Mode = iota
	ModePeriodic
)

// Timer sleeps its period and invokes the callback, once or repeatedly.
type Timer struct {
	mu     sync.Mutex
	state  State
	cancel chan struct{}
	done   chan struct{}
}

func NewTimer() *Timer {
	return &Timer{}
}

// Init (re)arms the timer. Any previous loop is cancelled and joined first,
// so two loops never run concurrently. ModeOneShot fires once and returns to
// Idle; ModePeriodic repeats until Stop.
func (t *Timer) Init(period time.Duration, mode Mode, cb func()) error {
	if period <= 0 {
		return hwerr.ErrInvalidPeriod
	}
	if cb == nil {
		return hwerr.ErrMissingCallback
	}
	t.Stop()

	t.mu.Lock()
	cancel := make(chan struct{})
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done
	t.state = StateArmed
	t.mu.Unlock()

	go t.loop(period, mode, cb, cancel, done)
	return nil
}

func (t *Timer) loop(period time.Duration, mode Mode, cb func(), cancel, done chan struct{}) {
	defer close(done)

	t.mu.Lock()
	if t.done == done {
		t.state = StateRunning
	}
	t.mu.Unlock()

	tick := time.NewTimer(period)
	defer tick.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-tick.C:
			cb()
			if mode == ModeOneShot {
				t.mu.Lock()
				if t.done == done {
					t.state = StateIdle
					t.cancel = nil
				}
				t.mu.Unlock()
				return
			}
			timex.ResetTimer(tick, period)
		}
	}
}

// Stop cancels the loop and blocks until it has exited; after Stop returns
// the callback will not be invoked again. Stop is idempotent.
func (t *Timer) Stop() {
	t.mu.Lock()
	cancel := t.cancel
	done := t.done
	t.cancel = nil
	if cancel != nil {
		t.state = StateIdle
	}
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	close(cancel)
	<-done
}

func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
