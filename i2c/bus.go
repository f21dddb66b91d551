// i2c/bus.go
package i2c

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"

	"mockmachine-go/hwerr"
)

// Valid 7-bit addressing range reported by Scan. Devices registered outside
// it stay on the bus but are never scanned, modelling the reserved address
// ranges of the physical bus.
const (
	ScanAddrMin = 0x08
	ScanAddrMax = 0x77
)

// Bus routes transfers to simulated devices by address. It implements
// drivers.I2C, so TinyGo drivers can run against it unchanged.
type Bus struct {
	mu      sync.Mutex
	devices map[uint16]Device
}

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{devices: make(map[uint16]Device)}
}

// AddDevice registers d at its address. An address holds at most one device.
func (b *Bus) AddDevice(d Device) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	addr := d.Addr()
	if _, exists := b.devices[addr]; exists {
		return errors.Wrapf(hwerr.ErrDuplicateAddress, "address 0x%02x", addr)
	}
	b.devices[addr] = d
	return nil
}

// Scan returns the sorted registered addresses within the valid range.
func (b *Bus) Scan() []uint16 {
	b.mu.Lock()
	defer b.mu.Unlock()
	var addrs []uint16
	for a := range b.devices {
		if a >= ScanAddrMin && a <= ScanAddrMax {
			addrs = append(addrs, a)
		}
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

func (b *Bus) device(addr uint16) (Device, error) {
	b.mu.Lock()
	d, ok := b.devices[addr]
	b.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(hwerr.ErrDeviceNotFound, "address 0x%02x", addr)
	}
	return d, nil
}

// ReadFrom reads n bytes from the device at addr.
func (b *Bus) ReadFrom(addr uint16, n int) ([]byte, error) {
	p := make([]byte, n)
	if err := b.ReadFromInto(addr, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadFromInto fills p from the device at addr.
func (b *Bus) ReadFromInto(addr uint16, p []byte) error {
	d, err := b.device(addr)
	if err != nil {
		return err
	}
	return d.ReadFrom(p)
}

// WriteTo writes p to the device at addr and returns the bytes acknowledged.
func (b *Bus) WriteTo(addr uint16, p []byte) (int, error) {
	d, err := b.device(addr)
	if err != nil {
		return 0, err
	}
	return d.WriteTo(p)
}

// ReadRegister reads n bytes stored at reg on the device at addr.
func (b *Bus) ReadRegister(addr uint16, reg uint8, n int) ([]byte, error) {
	p := make([]byte, n)
	if err := b.ReadRegisterInto(addr, reg, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadRegisterInto fills p from reg on the device at addr.
func (b *Bus) ReadRegisterInto(addr uint16, reg uint8, p []byte) error {
	d, err := b.device(addr)
	if err != nil {
		return err
	}
	return d.ReadRegister(reg, p)
}

// WriteRegister replaces reg on the device at addr with p.
func (b *Bus) WriteRegister(addr uint16, reg uint8, p []byte) error {
	d, err := b.device(addr)
	if err != nil {
		return err
	}
	return d.WriteRegister(reg, p)
}

// Tx performs a write followed by a read against the addressed device,
// matching the drivers.I2C contract (write then repeated-start read without
// releasing the bus). Against a RegDevice this reproduces the usual
// "write register index, read back" driver sequence.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	d, err := b.device(addr)
	if err != nil {
		return err
	}
	if len(w) > 0 {
		if _, err := d.WriteTo(w); err != nil {
			return err
		}
	}
	if len(r) > 0 {
		return d.ReadFrom(r)
	}
	return nil
}
