package uartlog

import "golang.org/x/sys/unix"

// getBaudRate converts an integer baud rate to the unix constant
func getBaudRate(rate int) (uint32, error) {
	switch rate {
	case 50:
		return unix.B50, nil
	case 75:
		return unix.B75, nil
	case 110:
		return unix.B110, nil
	case 134:
		return unix.B134, nil
	case 150:
		return unix.B150, nil
	case 200:
		return unix.B200, nil
	case 300:
		return unix.B300, nil
	case 600:
		return unix.B600, nil
	case 1200:
		return unix.B1200, nil
	case 1800:
		return unix.B1800, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 500000:
		return unix.B500000, nil
	case 576000:
		return unix.B576000, nil
	case 921600:
		return unix.B921600, nil
	case 1000000:
		return unix.B1000000, nil
	case 1152000:
		return unix.B1152000, nil
	case 1500000:
		return unix.B1500000, nil
	case 2000000:
		return unix.B2000000, nil
	case 2500000:
		return unix.B2500000, nil
	case 3000000:
		return unix.B3000000, nil
	case 3500000:
		return unix.B3500000, nil
	case 4000000:
		return unix.B4000000, nil
	default:
		return 0, ErrInvalidBaudRate
	}
}

// makeRaw rewrites t in place for raw 8N1 I/O. Only the bits it names are
// touched; everything else in the current attributes is preserved.
func makeRaw(t *unix.Termios, config Config) error {
	speed, err := getBaudRate(config.BaudRate)
	if err != nil {
		return err
	}

	// Control modes: 8N1, no hardware flow control, receiver on, ignore modem lines
	t.Cflag &^= unix.PARENB | unix.CSTOPB | unix.CSIZE | unix.CRTSCTS
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	// Local modes: no canonical input, echo or signal characters
	t.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHOE | unix.ECHONL | unix.ISIG

	// Input modes: no software flow control, pass every byte through untouched
	t.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL

	// Output modes: no post-processing
	t.Oflag &^= unix.OPOST | unix.ONLCR

	// Return as soon as any byte is available, or after VTIME with whatever arrived
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = config.vtime()

	t.Cflag = (t.Cflag &^ unix.CBAUD) | speed
	t.Ispeed = speed
	t.Ospeed = speed

	return nil
}
