package gpio

import (
	"testing"
	"time"
)

func waitFired(t *testing.T, ch <-chan *Pin, d time.Duration) *Pin {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(d):
		t.Fatal("timeout waiting for handler")
		return nil
	}
}

func assertSilent(t *testing.T, ch <-chan *Pin, d time.Duration) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("unexpected handler invocation")
	case <-time.After(d):
	}
}

func TestIRQRisingOnly(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	fired := make(chan *Pin, 4)
	pin := r.InputPin("one")
	pin.Set(0)
	pin.IRQ(func(p *Pin) { fired <- p }, TriggerRising)

	assertSilent(t, fired, 10*time.Millisecond)

	pin.Set(1) // rising
	if p := waitFired(t, fired, time.Second); p != pin {
		t.Fatalf("handler got %v, want the triggering pin", p)
	}

	pin.Set(0) // falling: not in the mask
	assertSilent(t, fired, 20*time.Millisecond)

	pin.Set(0) // steady state: no edge
	assertSilent(t, fired, 20*time.Millisecond)
}

func TestIRQFallingAndBoth(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	fired := make(chan *Pin, 4)
	pin := r.InputPin("f")
	pin.Set(1)
	pin.IRQ(func(p *Pin) { fired <- p }, TriggerFalling)

	pin.Set(0)
	waitFired(t, fired, time.Second)

	pin.IRQ(func(p *Pin) { fired <- p }, TriggerBoth)
	pin.Set(1)
	waitFired(t, fired, time.Second)
	pin.Set(0)
	waitFired(t, fired, time.Second)
}

func TestIRQExactlyOncePerEdge(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	fired := make(chan *Pin, 8)
	pin := r.InputPin("once")
	pin.IRQ(func(p *Pin) { fired <- p }, TriggerRising)

	pin.Set(1)
	waitFired(t, fired, time.Second)
	assertSilent(t, fired, 20*time.Millisecond)
}

func TestIRQDeliveryOrderFIFO(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	order := make(chan string, 4)
	a := r.InputPin("a")
	b := r.InputPin("b")
	a.IRQ(func(*Pin) { order <- "a" }, TriggerRising)
	b.IRQ(func(*Pin) { order <- "b" }, TriggerRising)

	a.Set(1)
	b.Set(1)

	for _, want := range []string{"a", "b"} {
		select {
		case got := <-order:
			if got != want {
				t.Fatalf("delivery order: got %q, want %q", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for ordered delivery")
		}
	}
}

func TestIRQHandlerReplaced(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	first := make(chan *Pin, 1)
	second := make(chan *Pin, 1)
	pin := r.InputPin("swap")
	pin.IRQ(func(p *Pin) { first <- p }, TriggerRising)
	pin.IRQ(func(p *Pin) { second <- p }, TriggerRising)

	pin.Set(1)
	waitFired(t, second, time.Second)
	assertSilent(t, first, 20*time.Millisecond)
}

func TestPinIdentityByName(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	firstUser := r.InputPin("one")
	different := r.InputPin("two")
	secondUser := r.InputPin("one")

	if firstUser != secondUser {
		t.Fatal("same name must yield the same pin")
	}

	firstUser.Set(1)
	different.Set(0)

	if firstUser.Get() != 1 || secondUser.Get() != 1 {
		t.Fatal("value not shared between holders")
	}
	if different.Get() != 0 {
		t.Fatal("unrelated pin changed")
	}

	secondUser.Set(0)
	if firstUser.Get() != 0 {
		t.Fatal("value not shared after second holder set")
	}
}

func TestOnOffToggle(t *testing.T) {
	r := NewRegistry()
	defer r.Close()

	pin := r.Pin("led", ModeOutput, PullNone)
	pin.On()
	if pin.Get() != 1 {
		t.Fatalf("On: value = %d", pin.Get())
	}
	pin.Off()
	if pin.Get() != 0 {
		t.Fatalf("Off: value = %d", pin.Get())
	}
	pin.Toggle()
	if pin.Get() != 1 {
		t.Fatalf("Toggle: value = %d", pin.Get())
	}
	if pin.Mode() != ModeOutput {
		t.Fatalf("Mode = %v", pin.Mode())
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	r := NewRegistry()

	fired := make(chan *Pin, 1)
	pin := r.InputPin("x")
	pin.IRQ(func(p *Pin) { fired <- p }, TriggerRising)

	r.Close()
	r.Close() // idempotent

	pin.Set(1)
	assertSilent(t, fired, 20*time.Millisecond)
}
