package timer

import (
	"errors"
	"testing"
	"time"

	"mockmachine-go/hwerr"
)

func TestWatchdogValidation(t *testing.T) {
	if _, err := NewWatchdog(0); !errors.Is(err, hwerr.ErrInvalidPeriod) {
		t.Fatalf("zero timeout err = %v", err)
	}
}

func TestWatchdogFaultsWithoutFeed(t *testing.T) {
	w, err := NewWatchdog(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Disable()

	select {
	case <-w.Faulted():
	case <-time.After(time.Second):
		t.Fatal("watchdog never faulted")
	}
	if w.State() != StateFault {
		t.Fatalf("state after fault = %v", w.State())
	}

	// The fault is terminal.
	if err := w.Feed(); !errors.Is(err, hwerr.ErrWatchdogFault) {
		t.Fatalf("Feed after fault err = %v", err)
	}
}

func TestWatchdogFeedKeepsAlive(t *testing.T) {
	w, err := NewWatchdog(30 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Disable()

	for i := 0; i < 8; i++ {
		time.Sleep(10 * time.Millisecond)
		if err := w.Feed(); err != nil {
			t.Fatalf("feed %d: %v", i, err)
		}
	}
	select {
	case <-w.Faulted():
		t.Fatal("fed watchdog faulted")
	default:
	}
	if w.State() != StateRunning {
		t.Fatalf("state while fed = %v", w.State())
	}
}

func TestWatchdogDisable(t *testing.T) {
	w, err := NewWatchdog(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	w.Disable()
	w.Disable() // idempotent

	if w.State() != StateIdle {
		t.Fatalf("state after Disable = %v", w.State())
	}

	// A disabled watchdog never faults.
	time.Sleep(50 * time.Millisecond)
	select {
	case <-w.Faulted():
		t.Fatal("disabled watchdog faulted")
	default:
	}
	if err := w.Feed(); err != nil {
		t.Fatalf("Feed after Disable: %v", err)
	}
}

func TestWatchdogDisableAfterFault(t *testing.T) {
	w, err := NewWatchdog(10 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	<-w.Faulted()
	w.Disable()

	// The fault stays terminal through Disable.
	if w.State() != StateFault {
		t.Fatalf("state = %v", w.State())
	}
	if err := w.Feed(); !errors.Is(err, hwerr.ErrWatchdogFault) {
		t.Fatalf("Feed err = %v", err)
	}
}
