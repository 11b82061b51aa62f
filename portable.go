package uartlog

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
)

// portablePort adapts a go.bug.st/serial port to Port.
type portablePort struct {
	serial.Port
}

var _ Port = (*portablePort)(nil)

// OpenPortable opens device through go.bug.st/serial instead of raw termios
// ioctls. The frame format and read timeout match Open.
func OpenPortable(device string, opts ...Option) (Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, portableOpenError(device, err)
	}

	if err := p.SetReadTimeout(config.ReadTimeout); err != nil {
		p.Close()
		return nil, &ConfigError{Device: device, Op: "tcsetattr", Err: err}
	}

	return &portablePort{Port: p}, nil
}

func (p *portablePort) FlushInput() error {
	return p.ResetInputBuffer()
}

func portableOpenError(device string, err error) error {
	var perr *serial.PortError
	if errors.As(err, &perr) {
		switch perr.Code() {
		case serial.PortNotFound:
			return fmt.Errorf("failed to open %s: %w", device, ErrDeviceNotFound)
		case serial.PermissionDenied:
			return fmt.Errorf("failed to open %s: %w", device, ErrPermissionDenied)
		case serial.PortBusy:
			return fmt.Errorf("failed to open %s: %w", device, ErrDeviceInUse)
		case serial.InvalidSpeed:
			return fmt.Errorf("failed to open %s: %w", device, ErrInvalidBaudRate)
		}
	}
	return fmt.Errorf("failed to open %s: %w", device, err)
}
