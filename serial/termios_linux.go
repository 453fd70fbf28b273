//go:build linux

package serial

import (
	"golang.org/x/sys/unix"

	"github.com/daedaluz/microserial/internal/logging"
)

var linuxBaudRates = map[uint32]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// configureTermios applies §4.B of the design to fd: raw mode, frame
// shape, parity, the VMIN/VTIME pair, baud rate (a second
// get/modify/set round trip, as specified) and flow control, finally
// flushing both queues.
func configureTermios(fd int, cfg Config) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return wrapOSError("configure", err)
	}

	makeRaw(tio)
	applyFrame(tio, cfg)

	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = deciSecondTimeout(cfg.ReadTimeoutMS)

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return wrapOSError("configure", err)
	}

	tio, err = unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return wrapOSError("configure", err)
	}
	tio.Cflag &^= unix.CBAUD
	tio.Cflag |= baudToSpeed(cfg.BaudRate)
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return wrapOSError("configure", err)
	}

	if err := applyFlowControl(fd, cfg.FlowControl); err != nil {
		return err
	}

	if err := unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIOFLUSH); err != nil {
		return wrapOSError("configure", err)
	}
	return nil
}

func baudToSpeed(baud uint32) uint32 {
	if speed, ok := linuxBaudRates[baud]; ok {
		return speed
	}
	logging.Warn("unrecognized baud rate %d, falling back to 115200", baud)
	return unix.B115200
}

// applyFlowControl sets the line's flow-control mode independently of
// a full Configure, so callers can toggle it while Configured or
// Running without reallocating the ring buffers.
func applyFlowControl(fd int, flow FlowControl) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return wrapOSError("set-flow-control", err)
	}
	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	tio.Cflag &^= unix.CRTSCTS
	switch flow {
	case FlowRTSCTS:
		tio.Cflag |= unix.CRTSCTS
	case FlowXonXoff:
		tio.Iflag |= unix.IXON | unix.IXOFF
	case FlowNone:
	}
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, tio); err != nil {
		return wrapOSError("set-flow-control", err)
	}
	return nil
}

func makeRaw(tio *unix.Termios) {
	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	tio.Oflag &^= unix.OPOST
	tio.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Cflag &^= unix.CSIZE | unix.PARENB
	tio.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL
}

func applyFrame(tio *unix.Termios, cfg Config) {
	tio.Cflag &^= unix.CSIZE
	switch cfg.DataBits {
	case 5:
		tio.Cflag |= unix.CS5
	case 6:
		tio.Cflag |= unix.CS6
	case 7:
		tio.Cflag |= unix.CS7
	default:
		tio.Cflag |= unix.CS8
	}

	if cfg.StopBits == 2 {
		tio.Cflag |= unix.CSTOPB
	} else {
		tio.Cflag &^= unix.CSTOPB
	}

	tio.Cflag &^= unix.PARENB | unix.PARODD
	switch cfg.Parity {
	case ParityEven:
		tio.Cflag |= unix.PARENB
	case ParityOdd:
		tio.Cflag |= unix.PARENB | unix.PARODD
	case ParityNone:
	}
}

// deciSecondTimeout converts a millisecond timeout to the
// tenths-of-a-second unit VTIME expects, rounding up, as §4.B
// specifies (⌈read_timeout_ms / 100⌉).
func deciSecondTimeout(ms uint32) uint8 {
	v := (ms + 99) / 100
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
