package serial

import (
	"golang.org/x/sys/unix"

	"github.com/daedaluz/microserial/internal/clock"
	"github.com/daedaluz/microserial/internal/logging"
)

const (
	maxEvents = 4    // bounded batch per poll cycle, per §4.D
	chunkSize = 4096 // bounded read/write chunk per drain, per §4.D
)

func (p *Port) emitEvent(code int, message string) {
	cb := p.cb.Load()
	if cb != nil && cb.OnEvent != nil {
		cb.OnEvent(code, message)
	}
}

func (p *Port) emitData(data []byte) {
	cb := p.cb.Load()
	if cb != nil && cb.OnData != nil {
		cb.OnData(data)
	}
}

// dispatchRX reads at most one chunkSize chunk from the device into
// the rx ring and the on_data callback, so a single Poll cycle moves
// at most maxEvents*chunkSize received bytes. Bytes still pending on
// the device keep it readable and are picked up by the next wait.
func (p *Port) dispatchRX() {
	rx := p.rx.Load()
	if rx == nil {
		return
	}
	var buf [chunkSize]byte
	n, err := unix.Read(p.fd, buf[:])
	switch {
	case n > 0:
		rx.Write(buf[:n])
		logging.Trace("fd=%d rx %d bytes at t=%dns", p.fd, n, clock.NowNS())
		p.emitData(buf[:n])
	case n == 0:
		p.emitEvent(1, "remote closed")
	case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
	default:
		p.emitEvent(-int(errnoOf(err)), "read error")
	}
}

// dispatchTX flushes pendingTX first (bytes a prior EAGAIN left
// unwritten), then drains the tx ring into the device. This is the
// §9-resolution (b) staging slice: the worker never re-enqueues onto
// the ring from the consumer side, which would turn the SPSC ring
// into an ad hoc MPMC queue.
func (p *Port) dispatchTX() {
	if len(p.pendingTX) > 0 {
		if !p.writeChunk() {
			return
		}
	}

	tx := p.tx.Load()
	if tx == nil {
		return
	}
	var buf [chunkSize]byte
	for {
		n := tx.Read(buf[:])
		if n == 0 {
			return
		}
		p.pendingTX = append(p.pendingTX[:0], buf[:n]...)
		if !p.writeChunk() {
			return
		}
	}
}

// writeChunk writes p.pendingTX to the device, advancing past any
// partial write. It returns false if the drain should stop (EAGAIN,
// taking the remaining bytes with it to the next writable event, or a
// hard error that ended the drain).
func (p *Port) writeChunk() bool {
	offset := 0
	for offset < len(p.pendingTX) {
		n, err := unix.Write(p.fd, p.pendingTX[offset:])
		if n > 0 {
			offset += n
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			p.pendingTX = p.pendingTX[offset:]
			return false
		}
		p.pendingTX = p.pendingTX[:0]
		p.emitEvent(-int(errnoOf(err)), "write error")
		return false
	}
	p.pendingTX = p.pendingTX[:0]
	return true
}

func errnoOf(err error) unix.Errno {
	if errno, ok := err.(unix.Errno); ok {
		return errno
	}
	return unix.EIO
}

func (p *Port) drainWake() {
	var buf [16]byte
	for {
		n, err := unix.Read(p.wakeR, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

func (p *Port) logStart(facility string) {
	logging.Debug("worker starting on fd=%d via %s", p.fd, facility)
}
