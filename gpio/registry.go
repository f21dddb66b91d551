// gpio/registry.go
package gpio

import "sync"

// Registry owns the pin identity map and the dispatcher that delivers IRQ
// handlers. Test harnesses create one per simulated board; there is no
// package-level pin state.
type Registry struct {
	mu     sync.Mutex
	pins   map[string]*Pin
	closed bool

	events  chan invocation
	quit    chan struct{}
	stopped chan struct{}

	board *Namespace
	cpu   *Namespace
}

type invocation struct {
	h Handler
	p *Pin
}

// DefaultQueueLen bounds pending handler invocations per registry.
const DefaultQueueLen = 64

func NewRegistry() *Registry {
	r := &Registry{
		pins:    make(map[string]*Pin),
		events:  make(chan invocation, DefaultQueueLen),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		board:   newNamespace(),
		cpu:     newNamespace(),
	}
	go r.dispatch()
	return r
}

// Pin returns the pin registered under name, creating it on first use.
// An existing pin is reconfigured with mode and pull; its value and IRQ
// registration are preserved.
func (r *Registry) Pin(name string, mode Mode, pull Pull) *Pin {
	r.mu.Lock()
	p, ok := r.pins[name]
	if !ok {
		p = &Pin{reg: r, name: name}
		r.pins[name] = p
	}
	r.mu.Unlock()
	p.Init(mode, pull)
	return p
}

// InputPin is shorthand for Pin(name, ModeInput, PullNone).
func (r *Registry) InputPin(name string) *Pin { return r.Pin(name, ModeInput, PullNone) }

// Board resolves board-level pin aliases (see Namespace).
func (r *Registry) Board() *Namespace { return r.board }

// CPU resolves CPU-level pin names.
func (r *Registry) CPU() *Namespace { return r.cpu }

// dispatch drains the FIFO, invoking handlers in trigger order. Handlers run
// here, never on the goroutine that mutated the pin.
func (r *Registry) dispatch() {
	defer close(r.stopped)
	for {
		select {
		case <-r.quit:
			return
		case inv := <-r.events:
			inv.h(inv.p)
		}
	}
}

func (r *Registry) enqueue(h Handler, p *Pin) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	select {
	case r.events <- invocation{h: h, p: p}:
	default:
		// queue full: drop rather than block the setter
	}
}

// Close stops the dispatcher. After Close returns no handler runs; pending
// queued invocations are discarded. Close is idempotent.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()
	close(r.quit)
	<-r.stopped
}
