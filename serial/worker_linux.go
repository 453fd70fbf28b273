//go:build linux

package serial

import (
	"golang.org/x/sys/unix"
)

func (p *Port) setupPoll() error {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return wrapOSError("start", err)
	}

	dev := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLERR | unix.EPOLLHUP}
	dev.Fd = int32(p.fd)
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, p.fd, &dev); err != nil {
		unix.Close(epfd)
		return wrapOSError("start", err)
	}

	wakeEv := unix.EpollEvent{Events: unix.EPOLLIN}
	wakeEv.Fd = int32(p.wakeR)
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, p.wakeR, &wakeEv); err != nil {
		unix.Close(epfd)
		return wrapOSError("start", err)
	}

	p.pollFD = epfd
	p.logStart("epoll")
	return nil
}

func (p *Port) teardownPoll() {
	if p.pollFD >= 0 {
		unix.Close(p.pollFD)
		p.pollFD = -1
	}
}

// Poll runs one epoll_wait cycle, dispatching at most maxEvents
// sources before returning, per §4.D's bounded-work guarantee.
func (p *Port) Poll() error {
	if p.pollFD < 0 {
		return newError("poll", KindInvalid, "worker not started")
	}
	var events [maxEvents]unix.EpollEvent

	timeout := -1
	if ms := int(p.cfg.ReadTimeoutMS); ms > 0 {
		timeout = ms
	}

	n, err := unix.EpollWait(p.pollFD, events[:], timeout)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		p.emitEvent(-int(errnoOf(err)), "epoll_wait failed")
		return wrapOSError("poll", err)
	}

	for i := 0; i < n; i++ {
		ev := events[i]
		fd := int(ev.Fd)
		if fd == p.wakeR {
			p.drainWake()
			continue
		}
		if ev.Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0 {
			p.emitEvent(-1, "device error")
		}
		if ev.Events&unix.EPOLLIN != 0 {
			p.dispatchRX()
		}
		if ev.Events&unix.EPOLLOUT != 0 {
			p.dispatchTX()
		}
	}
	return nil
}
