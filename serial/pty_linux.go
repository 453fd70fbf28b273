//go:build linux

package serial

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// OpenPTY allocates a fresh pseudoterminal pair and returns Ports for
// both ends, for use by tests and by tools that want a loopback
// device without real hardware (§8's loopback property test runs
// against exactly this).
func OpenPTY() (master, slave *Port, err error) {
	masterFD, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, nil, wrapOSError("open-pty", err)
	}

	if err := unix.IoctlSetPointerInt(masterFD, unix.TIOCSPTLCK, 0); err != nil {
		unix.Close(masterFD)
		return nil, nil, wrapOSError("open-pty", err)
	}

	n, err := unix.IoctlGetInt(masterFD, unix.TIOCGPTN)
	if err != nil {
		unix.Close(masterFD)
		return nil, nil, wrapOSError("open-pty", err)
	}

	slaveFD, err := unix.Open(fmt.Sprintf("/dev/pts/%d", n), unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
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
