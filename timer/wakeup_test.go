package timer

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"mockmachine-go/hwerr"
)

func TestWakeupValidation(t *testing.T) {
	c := NewWakeupClock()
	if err := c.Wakeup(time.Millisecond, nil); !errors.Is(err, hwerr.ErrMissingCallback) {
		t.Fatalf("nil callback err = %v", err)
	}
	if c.State() != StateIdle {
		t.Fatalf("state after rejected arm = %v", c.State())
	}
}

func TestWakeupRepeats(t *testing.T) {
	c := NewWakeupClock()
	fired := make(chan struct{}, 16)
	if err := c.Wakeup(5*time.Millisecond, func() { fired <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	for i := 0; i < 3; i++ {
		waitTick(t, fired, time.Second)
	}
	if c.State() != StateRunning {
		t.Fatalf("state while armed = %v", c.State())
	}
}

func TestWakeupStopJoins(t *testing.T) {
	c := NewWakeupClock()
	var calls atomic.Int64
	if err := c.Wakeup(time.Millisecond, func() { calls.Add(1) }); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	c.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != after {
		t.Fatalf("callback ran after Stop: %d -> %d", after, got)
	}
	if c.State() != StateIdle {
		t.Fatalf("state after Stop = %v", c.State())
	}
	c.Stop() // idempotent
}

func TestWakeupRearmReplacesLoop(t *testing.T) {
	c := NewWakeupClock()
	old := make(chan struct{}, 16)
	fresh := make(chan struct{}, 16)

	if err := c.Wakeup(time.Millisecond, func() { old <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	waitTick(t, old, time.Second)

	if err := c.Wakeup(time.Millisecond, func() { fresh <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	waitTick(t, fresh, time.Second)
	c.Stop()
}
