// timer/wakeup.go
package timer

import (
	"sync"
	"time"

	"mockmachine-go/hwerr"
)

// DefaultWakeupInterval is used when Wakeup is armed without a timeout.
const DefaultWakeupInterval = time.Second

// WakeupClock invokes a callback on a repeating interval, standing in for an
// RTC wakeup source. Re-arming replaces the previous loop.
type WakeupClock struct {
	mu     sync.Mutex
	state  State
	cancel chan struct{}
	done   chan struct{}
}

func NewWakeupClock() *WakeupClock {
	return &WakeupClock{}
}

// Wakeup (re)arms the repeating loop. timeout <= 0 selects
// DefaultWakeupInterval.
func (c *WakeupClock) Wakeup(timeout time.Duration, cb func()) error {
	if cb == nil {
		return hwerr.ErrMissingCallback
	}
	if timeout <= 0 {
		timeout = DefaultWakeupInterval
	}
	c.Stop()

	c.mu.Lock()
	cancel := make(chan struct{})
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.state = StateRunning
	c.mu.Unlock()

	go func() {
		defer close(done)
		tick := time.NewTicker(timeout)
		defer tick.Stop()
		for {
			select {
			case <-cancel:
				return
			case <-tick.C:
				cb()
			}
		}
	}()
	return nil
}

// Stop requests termination and blocks the caller until the loop has
// observably exited. Idempotent.
func (c *WakeupClock) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	if cancel != nil {
		c.state = StateIdle
	}
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	close(cancel)
	<-done
}

func (c *WakeupClock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
