// i2c/device.go
package i2c

import (
	"sync"

	"github.com/pkg/errors"

	"mockmachine-go/hwerr"
)

// Device is one addressable unit on a simulated bus. Implementations hold
// in-memory state only; errors mirror the failure modes of a real transfer.
type Device interface {
	Addr() uint16
	// ReadFrom fills p from the device's flat read buffer.
	ReadFrom(p []byte) error
	// WriteTo accepts p and returns the number of bytes acknowledged.
	WriteTo(p []byte) (int, error)
	// ReadRegister fills p from the register's stored content.
	ReadRegister(reg uint8, p []byte) error
	// WriteRegister replaces the register's content with p.
	WriteRegister(reg uint8, p []byte) error
}

// SimDevice is the default Device: a flat read buffer for plain transfers and
// an exact-length register store for register-addressed ones. Tests seed it
// via SetReadBuf / SetRegister and hand it to a Bus.
type SimDevice struct {
	mu      sync.Mutex
	addr    uint16
	readBuf []byte
	regs    map[uint8][]byte
}

func NewSimDevice(addr uint16) *SimDevice {
	return &SimDevice{
		addr: addr,
		regs: make(map[uint8][]byte),
	}
}

func (d *SimDevice) Addr() uint16 { return d.addr }

// SetReadBuf replaces the flat buffer served by ReadFrom.
func (d *SimDevice) SetReadBuf(p []byte) {
	d.mu.Lock()
	d.readBuf = append([]byte(nil), p...)
	d.mu.Unlock()
}

// SetRegister seeds a register directly, fixing its length.
func (d *SimDevice) SetRegister(reg uint8, p []byte) {
	d.mu.Lock()
	d.regs[reg] = append([]byte(nil), p...)
	d.mu.Unlock()
}

func (d *SimDevice) ReadFrom(p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.readBuf) < len(p) {
		return errors.Wrapf(hwerr.ErrShortRead, "device 0x%02x: have %d, want %d", d.addr, len(d.readBuf), len(p))
	}
	copy(p, d.readBuf[:len(p)])
	return nil
}

// WriteTo acknowledges every byte. Wrap SimDevice to simulate partial NACKs.
func (d *SimDevice) WriteTo(p []byte) (int, error) {
	return len(p), nil
}

func (d *SimDevice) ReadRegister(reg uint8, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	stored, ok := d.regs[reg]
	if !ok {
		return errors.Wrapf(hwerr.ErrUnknownRegister, "device 0x%02x reg 0x%02x", d.addr, reg)
	}
	if len(stored) < len(p) {
		return errors.Wrapf(hwerr.ErrShortRead, "device 0x%02x reg 0x%02x: have %d, want %d", d.addr, reg, len(stored), len(p))
	}
	copy(p, stored[:len(p)])
	return nil
}

func (d *SimDevice) WriteRegister(reg uint8, p []byte) error {
	d.mu.Lock()
	d.regs[reg] = append([]byte(nil), p...)
	d.mu.Unlock()
	return nil
}
