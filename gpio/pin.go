// gpio/pin.go
package gpio

import "sync"

type Mode uint8

const (
	ModeInput Mode = iota
	ModeOutput
	ModeOpenDrain
	ModeAlt
	ModeAnalog
)

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Trigger selects which edges invoke a pin's handler.
type Trigger uint8

const (
	TriggerNone    Trigger = 0
	TriggerRising  Trigger = 1 << 0
	TriggerFalling Trigger = 1 << 1
	TriggerBoth            = TriggerRising | TriggerFalling
)

// Handler is invoked asynchronously after a qualifying edge.
type Handler func(p *Pin)

// Pin is a single named digital line. Pins are obtained from a Registry and
// deduplicated by name, so every holder of the same name observes the same
// state, as on real hardware.
type Pin struct {
	reg  *Registry
	name string

	mu      sync.Mutex
	value   int
	mode    Mode
	pull    Pull
	handler Handler
	trigger Trigger
}

func (p *Pin) Name() string { return p.name }

// Init reconfigures mode and pull, leaving value and IRQ untouched.
func (p *Pin) Init(mode Mode, pull Pull) {
	p.mu.Lock()
	p.mode = mode
	p.pull = pull
	p.mu.Unlock()
}

func (p *Pin) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *Pin) SetMode(mode Mode) {
	p.mu.Lock()
	p.mode = mode
	p.mu.Unlock()
}

func (p *Pin) Pull() Pull {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pull
}

func (p *Pin) Get() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Set stores v and evaluates edges: rising when v > old, falling when
// v < old. A qualifying edge schedules the handler exactly once on the
// registry dispatcher; it never runs inside Set.
func (p *Pin) Set(v int) {
	p.mu.Lock()
	old := p.value
	p.value = v
	h := p.handler
	trig := p.trigger
	p.mu.Unlock()

	if h == nil {
		return
	}
	switch {
	case v > old && trig&TriggerRising != 0:
		p.reg.enqueue(h, p)
	case v < old && trig&TriggerFalling != 0:
		p.reg.enqueue(h, p)
	}
}

func (p *Pin) On()  { p.Set(1) }
func (p *Pin) Off() { p.Set(0) }

func (p *Pin) Toggle() {
	if p.Get() == 0 {
		p.Set(1)
	} else {
		p.Set(0)
	}
}

// IRQ replaces the pin's handler and trigger mask. Only one handler is active
// per pin; passing nil clears it.
func (p *Pin) IRQ(h Handler, trigger Trigger) {
	p.mu.Lock()
	p.handler = h
	p.trigger = trigger
	p.mu.Unlock()
}
