// profile/profile.go

// Package profile assembles a simulated board from a YAML description:
// pre-registered bus devices, serial buffer sizes and an optional pin-alias
// table. Tools and larger test fixtures load one instead of wiring
// peripherals by hand.
package profile

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"mockmachine-go/gpio"
	"mockmachine-go/i2c"
	"mockmachine-go/uart"
	"mockmachine-go/x/mathx"
)

// DeviceSpec describes one bus device. Kind "device" (the default) is a
// register-map device seeded from Registers and ReadBuf; kind "regfile" is a
// register-auto-increment device with a fixed file Size.
type DeviceSpec struct {
	Addr      int           `yaml:"addr"`
	Kind      string        `yaml:"kind,omitempty"`
	Size      int           `yaml:"size,omitempty"`
	ReadBuf   []int         `yaml:"read_buf,omitempty"`
	Registers map[int][]int `yaml:"registers,omitempty"`
}

type UARTSpec struct {
	RxBuf int `yaml:"rx_buf,omitempty"`
	TxBuf int `yaml:"tx_buf,omitempty"`
}

type Profile struct {
	AliasTable string       `yaml:"alias_table,omitempty"`
	UART       UARTSpec     `yaml:"uart,omitempty"`
	Devices    []DeviceSpec `yaml:"devices,omitempty"`
}

// Load reads and parses a profile file.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read profile")
	}
	return Parse(raw)
}

// Parse decodes a YAML profile.
func Parse(raw []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, errors.Wrap(err, "parse profile")
	}
	return &p, nil
}

// Board is an assembled simulated machine.
type Board struct {
	Pins *gpio.Registry
	Bus  *i2c.Bus
	UART *uart.UART
}

// Close stops the pin dispatcher.
func (b *Board) Close() { b.Pins.Close() }

// Build assembles the board the profile describes.
func (p *Profile) Build() (*Board, error) {
	b := &Board{
		Pins: gpio.NewRegistry(),
		Bus:  i2c.NewBus(),
		UART: uart.New(uart.Config{RxBuf: p.UART.RxBuf, TxBuf: p.UART.TxBuf}),
	}
	if p.AliasTable != "" {
		b.Pins.LoadAliasTable(p.AliasTable)
	}
	for _, spec := range p.Devices {
		dev, err := buildDevice(spec)
		if err != nil {
			b.Close()
			return nil, err
		}
		if err := b.Bus.AddDevice(dev); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}

func buildDevice(spec DeviceSpec) (i2c.Device, error) {
	if !mathx.Between(spec.Addr, 0, 0x7F) {
		return nil, errors.Errorf("device address 0x%x out of range", spec.Addr)
	}
	addr := uint16(spec.Addr)

	switch spec.Kind {
	case "", "device":
		d := i2c.NewSimDevice(addr)
		if len(spec.ReadBuf) > 0 {
			buf, err := toBytes(spec.ReadBuf)
			if err != nil {
				return nil, errors.Wrapf(err, "device 0x%02x read_buf", addr)
			}
			d.SetReadBuf(buf)
		}
		for reg, val := range spec.Registers {
			if !mathx.Between(reg, 0, 0xFF) {
				return nil, errors.Errorf("device 0x%02x: register 0x%x out of range", addr, reg)
			}
			content, err := toBytes(val)
			if err != nil {
				return nil, errors.Wrapf(err, "device 0x%02x reg 0x%02x", addr, reg)
			}
			d.SetRegister(uint8(reg), content)
		}
		return d, nil
	case "regfile":
		size := spec.Size
		if size <= 0 {
			size = 256
		}
		d := i2c.NewRegDevice(addr, size)
		for reg, val := range spec.Registers {
			if !mathx.Between(reg, 0, 0xFF) {
				return nil, errors.Errorf("device 0x%02x: register 0x%x out of range", addr, reg)
			}
			content, err := toBytes(val)
			if err != nil {
				return nil, errors.Wrapf(err, "device 0x%02x reg 0x%02x", addr, reg)
			}
			if err := d.WriteRegister(uint8(reg), content); err != nil {
				return nil, err
			}
		}
		return d, nil
	default:
		return nil, errors.Errorf("device 0x%02x: unknown kind %q", addr, spec.Kind)
	}
}

func toBytes(vals []int) ([]byte, error) {
	p := make([]byte, len(vals))
	for i, v := range vals {
		if !mathx.Between(v, 0, 0xFF) {
			return nil, errors.Errorf("byte value %d out of range", v)
		}
		p[i] = byte(v)
	}
	return p, nil
}
