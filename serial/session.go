// Package serial implements the microserial core: a POSIX
// asynchronous serial-port session built from a ring-buffered
// transmit/receive pair and a readiness-driven background worker.
//
// A Port moves through four states: Opened (after Open), Configured
// (after Configure), Running (after Start), and closed (terminal,
// after Close). Write is legal in Configured and Running; Start
// requires Configured; Configure refuses to run while the worker is
// Running (see ErrBusy).
package serial

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"

	"github.com/daedaluz/microserial/internal/logging"
	"github.com/daedaluz/microserial/ring"
)

// Callbacks are invoked from the worker goroutine. Implementations
// must assume concurrent calls across Ports and must not block for
// long, since they run inline with the event loop.
type Callbacks struct {
	// OnData fires whenever bytes have been read from the device. The
	// slice is only valid for the duration of the call.
	OnData func(data []byte)
	// OnEvent fires on errors and remote-close. Conventional codes:
	// +1 remote closed, -errno read/write errors, -1 generic device
	// error.
	OnEvent func(code int, message string)
}

// Port is an open serial-port session. The zero value is not usable;
// construct one with Open.
type Port struct {
	fd int

	cfgMu sync.Mutex
	cfg   Config

	rx atomic.Pointer[ring.Buffer]
	tx atomic.Pointer[ring.Buffer]

	txMu sync.Mutex

	cb atomic.Pointer[Callbacks]

	running atomic.Bool
	closed  atomic.Bool

	wakeR, wakeW int
	pollFD       int // platform readiness-facility handle, -1 when not running

	pendingTX []byte // bytes an EAGAIN left unwritten; worker-owned only

	workerWG sync.WaitGroup
}

// Open opens path read/write, with no controlling terminal and in
// non-blocking mode, and allocates a Port around it. No configuration
// is applied yet; call Configure before Start or Write.
func Open(path string) (*Port, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, wrapOSError("open", err)
	}
	p, err := newPort(fd)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	return p, nil
}

// newPort wraps an already-open, non-blocking device descriptor in a
// Port, allocating its wake channel. Used by Open and by OpenPTY,
// which obtains its descriptors from a pty pair instead of a path.
func newPort(fd int) (*Port, error) {
	var wake [2]int
	if err := unix.Pipe2(wake[:], unix.O_NONBLOCK); err != nil {
		return nil, wrapOSError("open", err)
	}
	return &Port{
		fd:     fd,
		wakeR:  wake[0],
		wakeW:  wake[1],
		pollFD: -1,
	}, nil
}

// Configure applies the line parameters described in cfg and
// (re)allocates the rx/tx ring buffers to the requested sizes. It
// fails with ErrBusy if the worker is currently running: replacing
// the buffers out from under a running worker is unsafe, so Configure
// must be called before Start or after Stop.
func (p *Port) Configure(cfg Config) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if p.running.Load() {
		return ErrBusy
	}

	p.cfgMu.Lock()
	defer p.cfgMu.Unlock()

	if err := configureTermios(p.fd, cfg); err != nil {
		return err
	}

	p.rx.Store(ring.New(int(cfg.RXBufferSize)))
	p.tx.Store(ring.New(int(cfg.TXBufferSize)))
	p.cfg = cfg
	return nil
}

// Write enqueues as many bytes from data as fit in the transmit ring
// and returns that count. It fails with ErrInvalid if data is empty
// and ErrPipe if Configure has not run yet. A short count is normal
// back-pressure, not an error.
func (p *Port) Write(data []byte) (int, error) {
	if p.closed.Load() {
		return 0, ErrClosed
	}
	if len(data) == 0 {
		return 0, newError("write", KindInvalid, "empty write")
	}
	tx := p.tx.Load()
	if tx == nil {
		return 0, ErrPipe
	}

	p.txMu.Lock()
	n := tx.Write(data)
	p.txMu.Unlock()

	if n > 0 {
		p.wake()
	}
	return n, nil
}

// wake prods the worker's wait call. A dropped wake is harmless: the
// worker either observes the new tx bytes on its own or is already
// mid-dispatch and will loop back into the wait where this byte is
// waiting.
func (p *Port) wake() {
	_, err := unix.Write(p.wakeW, []byte{'w'})
	if err != nil && err != unix.EAGAIN && err != unix.EWOULDBLOCK {
		logging.Debug("wake write failed: %v", err)
	}
}

// Close stops the worker if running, closes the device and wake
// channel, and releases the ring buffers. It is idempotent and safe
// to call on an already-closed Port.
func (p *Port) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	_ = p.Stop()
	unix.Close(p.fd)
	unix.Close(p.wakeR)
	unix.Close(p.wakeW)
	p.rx.Store(nil)
	p.tx.Store(nil)
	return nil
}

// Fd returns the underlying device descriptor, or -1 once closed.
// Exposed for tests and tooling; not part of the state machine.
func (p *Port) Fd() int {
	if p.closed.Load() {
		return -1
	}
	return p.fd
}
