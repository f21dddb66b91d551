// Package hwrev reads a board's hardware revision from two strap pins and
// sizes the external SPI flash via its RDID response.
package hwrev

import (
	"errors"

	"mockmachine-go/gpio"
)

// RDID command of common SPI NOR flashes; byte 3 of the response encodes the
// capacity as a power of two.
const cmdRDID = 0x9F

var ErrShortRDID = errors.New("hwrev: short rdid response")

// SPIBus is the subset of the flash's bus the driver needs.
type SPIBus interface {
	Read(n int, filler byte) []byte
}

type Device struct {
	pin0, pin1 *gpio.Pin
	bus        SPIBus
	cs         *gpio.Pin
}

// New wires the driver to the HW0/HW1 strap pins, the flash's SPI bus and
// its chip-select line.
func New(pin0, pin1 *gpio.Pin, bus SPIBus, cs *gpio.Pin) *Device {
	return &Device{pin0: pin0, pin1: pin1, bus: bus, cs: cs}
}

// Read returns the revision encoded by the strap pins.
func (d *Device) Read() int {
	return d.pin0.Get() + 2*d.pin1.Get()
}

// FlashSize returns the number of bytes in the external SPI flash.
func (d *Device) FlashSize() (int64, error) {
	d.cs.Off()
	rdid := d.bus.Read(4, cmdRDID)
	d.cs.On()
	if len(rdid) < 4 {
		return 0, ErrShortRDID
	}
	return 1 << rdid[3], nil
}
