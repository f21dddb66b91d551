// pwm/pwm.go

// Package pwm simulates a PWM output slice. A duty cycle is required at
// construction, mirroring the configuration the real peripheral cannot start
// without.
package pwm

import (
	"sync"

	"mockmachine-go/gpio"
	"mockmachine-go/hwerr"
)

// DefaultFreq is used when the config leaves Freq zero.
const DefaultFreq = 1000

type Config struct {
	Freq uint32
	// DutyU16 is mandatory; 0..65535.
	DutyU16 *uint16
}

type PWM struct {
	mu   sync.Mutex
	pin  *gpio.Pin
	freq uint32
	duty uint16
}

func New(pin *gpio.Pin, cfg Config) (*PWM, error) {
	if cfg.DutyU16 == nil {
		return nil, hwerr.ErrMissingDuty
	}
	freq := cfg.Freq
	if freq == 0 {
		freq = DefaultFreq
	}
	return &PWM{pin: pin, freq: freq, duty: *cfg.DutyU16}, nil
}

func (p *PWM) Pin() *gpio.Pin { return p.pin }

func (p *PWM) Freq() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freq
}

func (p *PWM) SetFreq(f uint32) {
	p.mu.Lock()
	p.freq = f
	p.mu.Unlock()
}

func (p *PWM) DutyU16() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duty
}

func (p *PWM) SetDutyU16(d uint16) {
	p.mu.Lock()
	p.duty = d
	p.mu.Unlock()
}
