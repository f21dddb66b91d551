// i2c/regdevice.go
package i2c

import (
	"sync"

	"github.com/pkg/errors"

	"mockmachine-go/hwerr"
)

// RegDevice models the register-auto-increment protocol common to RTC and
// sensor chips: the first byte of every write selects the current register,
// following bytes land there one slot each, and reads stream from the
// selection onward. The register file has a fixed size; writes past the end
// are dropped, reads past the end return zeros.
type RegDevice struct {
	mu     sync.Mutex
	addr   uint16
	file   []byte
	ptr    int
	hasPtr bool
}

func NewRegDevice(addr uint16, size int) *RegDevice {
	if size < 1 {
		size = 1
	}
	return &RegDevice{
		addr: addr,
		file: make([]byte, size),
	}
}

func (d *RegDevice) Addr() uint16 { return d.addr }

// Size returns the register file length.
func (d *RegDevice) Size() int { return len(d.file) }

// Peek returns the current content of one register slot for assertions.
func (d *RegDevice) Peek(reg uint8) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(reg) >= len(d.file) {
		return 0
	}
	return d.file[reg]
}

// WriteTo interprets p[0] as the new register pointer; p[1:] is stored at the
// pointer, advancing one slot per byte and silently dropped past the end.
// Every byte is acknowledged.
func (d *RegDevice) WriteTo(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	d.mu.Lock()
	d.ptr = int(p[0])
	d.hasPtr = true
	for _, b := range p[1:] {
		if d.ptr < len(d.file) {
			d.file[d.ptr] = b
		}
		d.ptr++
	}
	d.mu.Unlock()
	return len(p), nil
}

// ReadFrom streams bytes from the current pointer, zero-filling past the end
// of the file. It fails until a write has established the pointer.
func (d *RegDevice) ReadFrom(p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.hasPtr {
		return errors.Wrapf(hwerr.ErrNoRegisterPointer, "device 0x%02x", d.addr)
	}
	for i := range p {
		if d.ptr < len(d.file) {
			p[i] = d.file[d.ptr]
		} else {
			p[i] = 0
		}
		d.ptr++
	}
	return nil
}

func (d *RegDevice) ReadRegister(reg uint8, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(reg) >= len(d.file) {
		return errors.Wrapf(hwerr.ErrUnknownRegister, "device 0x%02x reg 0x%02x", d.addr, reg)
	}
	if avail := len(d.file) - int(reg); avail < len(p) {
		return errors.Wrapf(hwerr.ErrShortRead, "device 0x%02x reg 0x%02x: have %d, want %d", d.addr, reg, avail, len(p))
	}
	copy(p, d.file[reg:int(reg)+len(p)])
	return nil
}

func (d *RegDevice) WriteRegister(reg uint8, p []byte) error {
	d.mu.Lock()
	for i, b := range p {
		if idx := int(reg) + i; idx < len(d.file) {
			d.file[idx] = b
		}
	}
	d.mu.Unlock()
	return nil
}
