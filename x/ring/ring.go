// Package ring provides a bounded FIFO byte store for simulated peripheral
// buffers. Writes past the configured capacity are truncated, never grown.
package ring

import (
	"sync/atomic"
)

// Ring is a single-producer, single-consumer byte ring with a hard capacity.
// The backing buffer is rounded up to a power of two; Cap() reports the
// configured limit, which writers never exceed.
type Ring struct {
	buf   []byte
	mask  uint32
	limit uint32
	rd    atomic.Uint32 // consumer index (monotonic)
	wr    atomic.Uint32 // producer index (monotonic)

	readable chan struct{} // 0 -> >0 available edge
}

// New returns a ring holding at most capacity bytes. capacity < 1 is coerced
// to 1.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Ring{
		buf:      make([]byte, size),
		mask:     uint32(size - 1),
		limit:    uint32(capacity),
		readable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Cap returns the configured capacity.
func (r *Ring) Cap() int { return int(r.limit) }

// Len returns the number of unread bytes.
func (r *Ring) Len() int {
	rd := r.rd.Load()
	wr := r.wr.Load()
	return int(wr - rd)
}

// WriteFrom appends as much of src as fits below the capacity limit and
// returns the count accepted. A full ring accepts zero bytes.
func (r *Ring) WriteFrom(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	beforeAvail := wr - rd
	space := int(r.limit - beforeAvail)
	if space <= 0 {
		return 0
	}
	if len(src) < space {
		space = len(src)
	}
	n = space

	size := r.size()
	wrIdx := wr & r.mask
	first := int(size - wrIdx)
	if first > n {
		first = n
	}
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	// Notify reader on the 0 -> >0 transition.
	if beforeAvail == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return n
}

// ReadInto removes up to len(dst) bytes into dst and returns the count.
func (r *Ring) ReadInto(dst []byte) (n int) {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	avail := int(wr - rd)
	if avail <= 0 {
		return 0
	}
	if len(dst) < avail {
		avail = len(dst)
	}
	n = avail

	size := r.size()
	rdIdx := rd & r.mask
	first := int(size - rdIdx)
	if first > n {
		first = n
	}
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release
	return n
}

// IndexByte returns the offset of the first occurrence of b among the unread
// bytes, or -1. The consumer side only; does not consume.
func (r *Ring) IndexByte(b byte) int {
	rd := r.rd.Load()
	wr := r.wr.Load()
	for i := uint32(0); i < wr-rd; i++ {
		if r.buf[(rd+i)&r.mask] == b {
			return int(i)
		}
	}
	return -1
}

// Readable signals the 0 -> >0 available transition.
func (r *Ring) Readable() <-chan struct{} { return r.readable }
