//go:build darwin

package serial

import (
	"golang.org/x/sys/unix"

	"github.com/daedaluz/microserial/internal/logging"
)

var darwinBaudRates = map[uint32]uint64{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
	460800: unix.B460800,
	921600: unix.B921600,
}

// configureTermios mirrors the Linux implementation but follows BSD
// termios conventions: the baud rate lives in the Ispeed/Ospeed
// fields rather than a CBAUD-masked Cflag, and hardware flow control
// is CCTS_OFLOW/CRTS_IFLOW rather than CRTSCTS.
func configureTermios(fd int, cfg Config) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return wrapOSError("configure", err)
	}

	makeRaw(tio)
	applyFrame(tio, cfg)

	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = deciSecondTimeout(cfg.ReadTimeoutMS)

	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, tio); err != nil {
		return wrapOSError("configure", err)
	}

	tio, err = unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return wrapOSError("configure", err)
	}
	speed := baudToSpeed(cfg.BaudRate)
	tio.Ispeed = speed
	tio.Ospeed = speed
	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, tio); err != nil {
		return wrapOSError("configure", err)
	}

	if err := applyFlowControl(fd, cfg.FlowControl); err != nil {
		return err
	}

	if err := unix.IoctlSetInt(fd, unix.TIOCFLUSH, unix.FREAD|unix.FWRITE); err != nil {
		return wrapOSError("configure", err)
	}
	return nil
}

func baudToSpeed(baud uint32) uint64 {
	if speed, ok := darwinBaudRates[baud]; ok {
		return speed
	}
	logging.Warn("unrecognized baud rate %d, falling back to 115200", baud)
	return unix.B115200
}

func applyFlowControl(fd int, flow FlowControl) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TIOCGETA)
	if err != nil {
		return wrapOSError("set-flow-control", err)
	}
	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	tio.Cflag &^= unix.CCTS_OFLOW | unix.CRTS_IFLOW
	switch flow {
	case FlowRTSCTS:
		tio.Cflag |= unix.CCTS_OFLOW | unix.CRTS_IFLOW
	case FlowXonXoff:
		tio.Iflag |= unix.IXON | unix.IXOFF
	case FlowNone:
	}
	if err := unix.IoctlSetTermios(fd, unix.TIOCSETA, tio); err != nil {
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

func deciSecondTimeout(ms uint32) uint8 {
	v := (ms + 99) / 100
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
