// adc/adc.go

// Package adc simulates an analog input whose reading is set directly by the
// test.
package adc

import (
	"sync"

	"mockmachine-go/gpio"
)

type ADC struct {
	mu    sync.Mutex
	pin   *gpio.Pin
	value uint16
}

func New(pin *gpio.Pin) *ADC {
	return &ADC{pin: pin}
}

// Pin returns the line the ADC samples.
func (a *ADC) Pin() *gpio.Pin { return a.pin }

// SetU16 scripts the next raw reading.
func (a *ADC) SetU16(v uint16) {
	a.mu.Lock()
	a.value = v
	a.mu.Unlock()
}

// ReadU16 takes a raw reading in the range 0-65535.
func (a *ADC) ReadU16() uint16 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}
