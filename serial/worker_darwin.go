//go:build darwin

package serial

import (
	"time"

	"golang.org/x/sys/unix"
)

func setKevent(fd int, filter, flags int16) unix.Kevent_t {
	return unix.Kevent_t{
		Ident:  uint64(fd),
		Filter: filter,
		Flags:  uint16(flags),
	}
}

func (p *Port) setupPoll() error {
	kq, err := unix.Kqueue()
	if err != nil {
		return wrapOSError("start", err)
	}

	changes := []unix.Kevent_t{
		setKevent(p.fd, unix.EVFILT_READ, unix.EV_ADD|unix.EV_ENABLE),
		setKevent(p.fd, unix.EVFILT_WRITE, unix.EV_ADD|unix.EV_ENABLE),
		setKevent(p.wakeR, unix.EVFILT_READ, unix.EV_ADD|unix.EV_ENABLE),
	}
	if _, err := unix.Kevent(kq, changes, nil, nil); err != nil {
		unix.Close(kq)
		return wrapOSError("start", err)
	}

	p.pollFD = kq
	p.logStart("kqueue")
	return nil
}

func (p *Port) teardownPoll() {
	if p.pollFD >= 0 {
		unix.Close(p.pollFD)
		p.pollFD = -1
	}
}

// Poll runs one kevent wait cycle, dispatching at most maxEvents
// sources before returning, per §4.D's bounded-work guarantee.
func (p *Port) Poll() error {
	if p.pollFD < 0 {
		return newError("poll", KindInvalid, "worker not started")
	}
	var events [maxEvents]unix.Kevent_t

	var timeoutPtr *unix.Timespec
	if ms := p.cfg.ReadTimeoutMS; ms > 0 {
		ts := unix.NsecToTimespec((time.Duration(ms) * time.Millisecond).Nanoseconds())
		timeoutPtr = &ts
	}

	n, err := unix.Kevent(p.pollFD, nil, events[:], timeoutPtr)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		p.emitEvent(-int(errnoOf(err)), "kevent failed")
		return wrapOSError("poll", err)
	}

	for i := 0; i < n; i++ {
		ev := events[i]
		fd := int(ev.Ident)
		if fd == p.wakeR {
			p.drainWake()
			continue
		}
		if ev.Flags&unix.EV_ERROR != 0 {
			p.emitEvent(-1, "device error")
		}
		switch ev.Filter {
		case unix.EVFILT_READ:
			p.dispatchRX()
		case unix.EVFILT_WRITE:
			p.dispatchTX()
		}
	}
	return nil
}
