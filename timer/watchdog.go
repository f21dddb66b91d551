// timer/watchdog.go
package timer

import (
	"sync"
	"time"

	"mockmachine-go/hwerr"
)

// WatchdogPoll is the fixed interval at which the monitor checks the feed
// deadline.
const WatchdogPoll = 5 * time.Millisecond

// Watchdog faults when Feed is not called within the timeout. The fault is
// terminal, modelling the hardware reset a real watchdog would force: no feed
// recovers it, and Faulted() is closed so tests can observe it.
type Watchdog struct {
	mu      sync.Mutex
	timeout time.Duration
	last    time.Time
	state   State

	fault  chan struct{}
	cancel chan struct{}
	done   chan struct{}
}

// NewWatchdog arms a watchdog and starts its monitor loop.
func NewWatchdog(timeout time.Duration) (*Watchdog, error) {
	if timeout <= 0 {
		return nil, hwerr.ErrInvalidPeriod
	}
	w := &Watchdog{
		timeout: timeout,
		last:    time.Now(),
		state:   StateRunning,
		fault:   make(chan struct{}),
		cancel:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.monitor()
	return w, nil
}

func (w *Watchdog) monitor() {
	defer close(w.done)
	tick := time.NewTicker(WatchdogPoll)
	defer tick.Stop()
	for {
		select {
		case <-w.cancel:
			return
		case <-tick.C:
			w.mu.Lock()
			expired := time.Since(w.last) > w.timeout
			if expired {
				w.state = StateFault
			}
			w.mu.Unlock()
			if expired {
				close(w.fault)
				return
			}
		}
	}
}

// Feed resets the deadline. Feeding a faulted watchdog fails; the fault is
// not recoverable.
func (w *Watchdog) Feed() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateFault {
		return hwerr.ErrWatchdogFault
	}
	w.last = time.Now()
	return nil
}

// Disable permanently stops monitoring. It blocks until the monitor has
// exited and is idempotent. A fault that already happened stays terminal.
func (w *Watchdog) Disable() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	if w.state == StateRunning {
		w.state = StateIdle
	}
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	close(cancel)
	<-w.done
}

// Faulted is closed when the deadline was missed.
func (w *Watchdog) Faulted() <-chan struct{} { return w.fault }

func (w *Watchdog) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}
