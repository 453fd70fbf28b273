//go:build linux

package serial

import "golang.org/x/sys/unix"

// ModemLine is a bitmask of RS-232 modem control signals, as reported
// or set through TIOCM* ioctls.
type ModemLine int

const (
	ModemLE  ModemLine = unix.TIOCM_LE
	ModemDTR ModemLine = unix.TIOCM_DTR
	ModemRTS ModemLine = unix.TIOCM_RTS
	ModemCTS ModemLine = unix.TIOCM_CTS
	ModemCAR ModemLine = unix.TIOCM_CAR
	ModemRNG ModemLine = unix.TIOCM_RNG
	ModemDSR ModemLine = unix.TIOCM_DSR
)

// ModemLines reports the current state of the modem control lines.
// These are not part of the core's required contract (spec.md scopes
// them out beyond what hardware flow control needs) but the
// underlying ioctls are cheap and useful, so Port exposes them
// directly the way Daedaluz-goserial's Port does.
func (p *Port) ModemLines() (ModemLine, error) {
	v, err := unix.IoctlGetInt(p.fd, unix.TIOCMGET)
	if err != nil {
		return 0, wrapOSError("modem-lines", err)
	}
	return ModemLine(v), nil
}

// SetModemLines sets the modem control lines to exactly the given
// mask.
func (p *Port) SetModemLines(lines ModemLine) error {
	if err := unix.IoctlSetPointerInt(p.fd, unix.TIOCMSET, int(lines)); err != nil {
		return wrapOSError("modem-lines", err)
	}
	return nil
}

// EnableModemLines sets the indicated bits, leaving others untouched.
func (p *Port) EnableModemLines(lines ModemLine) error {
	if err := unix.IoctlSetPointerInt(p.fd, unix.TIOCMBIS, int(lines)); err != nil {
		return wrapOSError("modem-lines", err)
	}
	return nil
}

// DisableModemLines clears the indicated bits, leaving others
// untouched.
func (p *Port) DisableModemLines(lines ModemLine) error {
	if err := unix.IoctlSetPointerInt(p.fd, unix.TIOCMBIC, int(lines)); err != nil {
		return wrapOSError("modem-lines", err)
	}
	return nil
}

// SendBreak sends a break condition for roughly 0.25 to 0.5 seconds,
// per TCSBRK(2)'s semantics for a zero argument.
func (p *Port) SendBreak() error {
	if err := unix.IoctlSetInt(p.fd, unix.TCSBRK, 0); err != nil {
		return wrapOSError("send-break", err)
	}
	return nil
}
