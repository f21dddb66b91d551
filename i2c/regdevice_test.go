package i2c

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmachine-go/hwerr"
)

func TestRegDeviceReadBeforePointer(t *testing.T) {
	d := NewRegDevice(0x68, 8)
	err := d.ReadFrom(make([]byte, 1))
	assert.ErrorIs(t, err, hwerr.ErrNoRegisterPointer)
}

func TestRegDevicePointerProtocol(t *testing.T) {
	d := NewRegDevice(0x68, 8)

	// First byte selects register 2, the rest auto-increment from there.
	n, err := d.WriteTo([]byte{0x02, 0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, byte(0xAA), d.Peek(0x02))
	assert.Equal(t, byte(0xBB), d.Peek(0x03))

	// A pointer-only write rewinds; the following read streams from there.
	_, err = d.WriteTo([]byte{0x02})
	require.NoError(t, err)
	buf := make([]byte, 2)
	require.NoError(t, d.ReadFrom(buf))
	assert.Equal(t, []byte{0xAA, 0xBB}, buf)

	// The pointer advanced past the read bytes.
	require.NoError(t, d.ReadFrom(buf))
	assert.Equal(t, []byte{0x00, 0x00}, buf)
}

func TestRegDeviceWritePastEndDropped(t *testing.T) {
	d := NewRegDevice(0x68, 4)
	// Registers 3, then 4 and 5 are beyond the file; all bytes still ack.
	n, err := d.WriteTo([]byte{0x03, 0x11, 0x22, 0x33})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, byte(0x11), d.Peek(0x03))

	// The file did not grow; reads past the end zero-fill.
	_, err = d.WriteTo([]byte{0x03})
	require.NoError(t, err)
	buf := make([]byte, 3)
	require.NoError(t, d.ReadFrom(buf))
	assert.Equal(t, []byte{0x11, 0x00, 0x00}, buf)
}

func TestRegDeviceTxSequence(t *testing.T) {
	// The usual driver sequence via the drivers.I2C surface: write the
	// register index, read back with auto-increment.
	bus := NewBus()
	d := NewRegDevice(0x68, 16)
	require.NoError(t, bus.AddDevice(d))
	require.NoError(t, d.WriteRegister(0x04, []byte{0xDE, 0xAD}))

	r := make([]byte, 2)
	require.NoError(t, bus.Tx(0x68, []byte{0x04}, r))
	assert.Equal(t, []byte{0xDE, 0xAD}, r)

	// A combined write+read stores then streams from the advanced pointer.
	require.NoError(t, bus.Tx(0x68, []byte{0x00, 0x55}, r))
	assert.Equal(t, []byte{0x00, 0x00}, r) // pointer advanced past the stored byte
	assert.Equal(t, byte(0x55), d.Peek(0x00))
}

func TestRegDeviceRegisterAddressed(t *testing.T) {
	d := NewRegDevice(0x68, 4)

	require.NoError(t, d.WriteRegister(0x01, []byte{0x0A, 0x0B}))
	out := make([]byte, 2)
	require.NoError(t, d.ReadRegister(0x01, out))
	assert.Equal(t, []byte{0x0A, 0x0B}, out)

	err := d.ReadRegister(0x07, out)
	assert.ErrorIs(t, err, hwerr.ErrUnknownRegister)

	err = d.ReadRegister(0x03, out)
	assert.ErrorIs(t, err, hwerr.ErrShortRead)
}
