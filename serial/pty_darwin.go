//go:build darwin

package serial

import (
	"golang.org/x/sys/unix"
)

// OpenPTY allocates a fresh pseudoterminal pair and returns Ports for
// both ends, for use by tests and by tools that want a loopback
// device without real hardware.
func OpenPTY() (master, slave *Port, err error) {
	masterFD, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, nil, wrapOSError("open-pty", err)
	}

	if err := unix.IoctlSetInt(masterFD, unix.TIOCPTYGRANT, 0); err != nil {
		unix.Close(masterFD)
		return nil, nil, wrapOSError("open-pty", err)
	}
	if err := unix.IoctlSetInt(masterFD, unix.TIOCPTYUNLK, 0); err != nil {
		unix.Close(masterFD)
		return nil, nil, wrapOSError("open-pty", err)
	}

	name, err := unix.IoctlGetString(masterFD, unix.TIOCPTYGNAME)
	if err != nil {
		unix.Close(masterFD)
		return nil, nil, wrapOSError("open-pty", err)
	}

	slaveFD, err := unix.Open(name, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		unix.Close(masterFD)
		return nil, nil, wrapOSError("open-pty", err)
	}

	master, err = newPort(masterFD)
	if err != nil {
		unix.Close(masterFD)
		unix.Close(slaveFD)
		return nil, nil, err
	}
	slave, err = newPort(slaveFD)
	if err != nil {
		master.Close()
		unix.Close(slaveFD)
		return nil, nil, err
	}
	return master, slave, nil
}
