// Package ring implements a bounded, lock-free, single-producer /
// single-consumer byte queue.
//
// A Buffer never blocks: Write stores as many bytes as fit and Read
// copies as many bytes as are available, both returning a short count
// instead of an error. Exactly one goroutine may call Write and one
// goroutine may call Read at a time; callers that need multiple
// producers or consumers must serialize externally (microserial's
// session type does this for its transmit ring with a mutex).
package ring

import "sync/atomic"

// Buffer is a bounded SPSC byte queue backed by a power-of-two slice.
// One slot is always kept empty to distinguish a full buffer from an
// empty one without a separate counter, so a Buffer created with
// capacity C has usable capacity C-1.
type Buffer struct {
	data []byte
	mask uint64

	head atomic.Uint64 // next write index; advanced by the producer
	tail atomic.Uint64 // next read index; advanced by the consumer
}

// New creates a Buffer whose capacity is the next power of two that
// is at least max(capacity, 2).
func New(capacity int) *Buffer {
	c := nextPowerOfTwo(capacity)
	return &Buffer{
		data: make([]byte, c),
		mask: uint64(c - 1),
	}
}

func nextPowerOfTwo(n int) int {
	if n < 2 {
		return 2
	}
	v := uint64(n - 1)
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return int(v + 1)
}

// Cap returns the rounded capacity the Buffer was created with.
func (b *Buffer) Cap() int {
	return int(b.mask) + 1
}

// Len returns the current occupancy. The result is a snapshot and may
// be stale immediately in the presence of a concurrent peer.
func (b *Buffer) Len() int {
	head := b.head.Load()
	tail := b.tail.Load()
	return int((head - tail) & b.mask)
}

// Write stores as many bytes from data as fit and returns that count.
// It never blocks and never returns an error.
func (b *Buffer) Write(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	head := b.head.Load()
	tail := b.tail.Load()
	occupancy := (head - tail) & b.mask
	available := uint64(b.Cap()) - 1 - occupancy
	n := uint64(len(data))
	if n > available {
		n = available
	}
	if n == 0 {
		return 0
	}
	for i := uint64(0); i < n; i++ {
		b.data[(head+i)&b.mask] = data[i]
	}
	b.head.Store(head + n)
	return int(n)
}

// Read copies as many bytes as are available into out and returns
// that count. It never blocks and never returns an error.
func (b *Buffer) Read(out []byte) int {
	if len(out) == 0 {
		return 0
	}
	head := b.head.Load()
	tail := b.tail.Load()
	occupancy := (head - tail) & b.mask
	n := uint64(len(out))
	if n > occupancy {
		n = occupancy
	}
	if n == 0 {
		return 0
	}
	for i := uint64(0); i < n; i++ {
		out[i] = b.data[(tail+i)&b.mask]
	}
	b.tail.Store(tail + n)
	return int(n)
}
