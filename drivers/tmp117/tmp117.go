// Package tmp117 provides a driver for the TMP117 digital temperature
// sensor. It talks register-addressed reads only, so it runs unchanged
// against the simulated bus or a real one.
//
// Datasheet: https://www.ti.com/lit/ds/symlink/tmp117.pdf
package tmp117

import (
	"encoding/binary"
	"errors"
)

// Default address: ADD0 == GND == 1001000.
const Address = 0x48

// Registers.
const (
	RegTempResult = 0x00
	RegDeviceID   = 0x0F
)

// The device-ID register always reads 0x0117.
const deviceID = 0x0117

// One LSB of the temperature result is 1/128 degC.
const lsbCelsius = 0.0078125

var ErrBadDeviceID = errors.New("tmp117: bad device id")

// Bus is the register-addressed subset of a bus the driver needs.
type Bus interface {
	ReadRegisterInto(addr uint16, reg uint8, p []byte) error
}

type Device struct {
	bus  Bus
	addr uint16
}

// New probes the device-ID register and fails when the device does not
// answer or identifies wrongly; bus failures propagate as-is.
func New(bus Bus, addr uint16) (*Device, error) {
	if addr == 0 {
		addr = Address
	}
	d := &Device{bus: bus, addr: addr}
	var b [2]byte
	if err := bus.ReadRegisterInto(addr, RegDeviceID, b[:]); err != nil {
		return nil, err
	}
	if binary.BigEndian.Uint16(b[:]) != deviceID {
		return nil, ErrBadDeviceID
	}
	return d, nil
}

// RawTemperature returns the signed 16-bit temperature result register.
func (d *Device) RawTemperature() (int16, error) {
	var b [2]byte
	if err := d.bus.ReadRegisterInto(d.addr, RegTempResult, b[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b[:])), nil
}

// Temperature returns degrees Celsius.
func (d *Device) Temperature() (float64, error) {
	raw, err := d.RawTemperature()
	if err != nil {
		return 0, err
	}
	return float64(raw) * lsbCelsius, nil
}
