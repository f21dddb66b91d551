// uart/uart.go

// Package uart simulates a serial port with two independent bounded ring
// buffers. Tests inject incoming wire data on the receive side and assert on
// bytes captured by the transmit side. Writes past capacity truncate and
// report the accepted count; they never fail.
package uart

import (
	"context"
	"sync"

	"mockmachine-go/x/ring"
)

// DefaultBufSize is used when a buffer size is not configured.
const DefaultBufSize = 256

type Config struct {
	RxBuf int // receive capacity (default DefaultBufSize)
	TxBuf int // transmit capacity (default DefaultBufSize)
	// DataForRead preloads the receive buffer.
	DataForRead []byte
}

type UART struct {
	rxMu sync.Mutex
	txMu sync.Mutex
	rx   *ring.Ring
	tx   *ring.Ring
}

func New(cfg Config) *UART {
	rxCap := cfg.RxBuf
	if rxCap <= 0 {
		rxCap = DefaultBufSize
	}
	txCap := cfg.TxBuf
	if txCap <= 0 {
		txCap = DefaultBufSize
	}
	u := &UART{
		rx: ring.New(rxCap),
		tx: ring.New(txCap),
	}
	if len(cfg.DataForRead) > 0 {
		u.Inject(cfg.DataForRead)
	}
	return u
}

// Write appends p to the transmit buffer, truncating at capacity, and returns
// the count accepted. The error is always nil; short counts signal overflow.
func (u *UART) Write(p []byte) (int, error) {
	u.txMu.Lock()
	n := u.tx.WriteFrom(p)
	u.txMu.Unlock()
	return n, nil
}

// Inject appends incoming wire data to the receive buffer, truncating at
// capacity, and returns the count accepted.
func (u *UART) Inject(p []byte) int {
	u.rxMu.Lock()
	n := u.rx.WriteFrom(p)
	u.rxMu.Unlock()
	return n
}

// Read removes and returns up to n unread bytes; n < 0 drains everything
// available. An empty buffer yields an empty slice, never an error.
func (u *UART) Read(n int) []byte {
	u.rxMu.Lock()
	defer u.rxMu.Unlock()
	avail := u.rx.Len()
	if n < 0 || n > avail {
		n = avail
	}
	p := make([]byte, n)
	u.rx.ReadInto(p)
	return p
}

// ReadLine removes and returns bytes up to and including the first '\n', or
// all remaining bytes when no terminator is buffered.
func (u *UART) ReadLine() []byte {
	u.rxMu.Lock()
	defer u.rxMu.Unlock()
	n := u.rx.IndexByte('\n')
	if n >= 0 {
		n++
	} else {
		n = u.rx.Len()
	}
	p := make([]byte, n)
	u.rx.ReadInto(p)
	return p
}

// ReadInto fills p from the receive buffer and returns the count copied,
// which may be less than len(p).
func (u *UART) ReadInto(p []byte) int {
	u.rxMu.Lock()
	n := u.rx.ReadInto(p)
	u.rxMu.Unlock()
	return n
}

// Buffered returns the number of unread receive bytes.
func (u *UART) Buffered() int {
	u.rxMu.Lock()
	n := u.rx.Len()
	u.rxMu.Unlock()
	return n
}

// PollReadable reports whether a read would return data, for readiness-based
// polling loops.
func (u *UART) PollReadable() bool { return u.Buffered() > 0 }

// Readable signals the empty -> non-empty receive transition. Consumers
// should still check Buffered before blocking on it.
func (u *UART) Readable() <-chan struct{} { return u.rx.Readable() }

// RecvSomeContext fills p with whatever receive data arrives first, blocking
// until data is available or ctx is done.
func (u *UART) RecvSomeContext(ctx context.Context, p []byte) (int, error) {
	for {
		if n := u.ReadInto(p); n > 0 {
			return n, nil
		}
		select {
		case <-u.rx.Readable():
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// Written removes and returns everything captured by the transmit buffer.
func (u *UART) Written() []byte {
	u.txMu.Lock()
	defer u.txMu.Unlock()
	p := make([]byte, u.tx.Len())
	u.tx.ReadInto(p)
	return p
}

// TxBuffered returns the number of captured, not yet retrieved transmit
// bytes.
func (u *UART) TxBuffered() int {
	u.txMu.Lock()
	n := u.tx.Len()
	u.txMu.Unlock()
	return n
}
