// spi/spi.go

// Package spi simulates a full-duplex serial peripheral bus. Responses are
// scripted with SetReadBuf; everything the driver clocks out is captured for
// assertions.
package spi

import (
	"sync"

	"mockmachine-go/hwerr"
	"mockmachine-go/x/mathx"
)

type SPI struct {
	mu      sync.Mutex
	readBuf []byte
	written []byte
}

func New() *SPI {
	return &SPI{}
}

// SetReadBuf scripts the bytes returned by subsequent reads.
func (s *SPI) SetReadBuf(p []byte) {
	s.mu.Lock()
	s.readBuf = append([]byte(nil), p...)
	s.mu.Unlock()
}

// Read returns up to n bytes of the scripted response while continuously
// clocking out filler. Fewer bytes are returned when the script is shorter.
func (s *SPI) Read(n int, filler byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	n = mathx.Clamp(n, 0, len(s.readBuf))
	return append([]byte(nil), s.readBuf[:n]...)
}

// ReadInto fills p from the scripted response, zero-filling past its end.
func (s *SPI) ReadInto(p []byte, filler byte) {
	s.mu.Lock()
	n := copy(p, s.readBuf)
	s.mu.Unlock()
	for i := n; i < len(p); i++ {
		p[i] = 0
	}
}

// Write captures p.
func (s *SPI) Write(p []byte) {
	s.mu.Lock()
	s.written = append(s.written, p...)
	s.mu.Unlock()
}

// WriteReadInto captures w while filling r from the script. Both buffers
// must have the same length, as on the real bus.
func (s *SPI) WriteReadInto(w, r []byte) error {
	if len(w) != len(r) {
		return hwerr.ErrLengthMismatch
	}
	s.Write(w)
	s.ReadInto(r, 0)
	return nil
}

// Written returns everything captured so far.
func (s *SPI) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.written...)
}
