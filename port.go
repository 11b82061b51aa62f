package uartlog

import (
	"sync"

	"github.com/GoogleCloudPlatform/galog"
	"golang.org/x/sys/unix"
)

// Port represents a serial port connection interface
type Port interface {
	Read(buf []byte) (int, error)
	Write(data []byte) (int, error)
	FlushInput() error
	Drain() error
	Close() error
}

// Opener opens and configures a serial device.
type Opener func(device string, opts ...Option) (Port, error)

// port is the native termios implementation of the Port interface
type port struct {
	mu     sync.RWMutex
	fd     int
	device string
	config Config
	closed bool
}

// Ensure port implements Port interface at compile time
var _ Port = (*port)(nil)

// Open opens a serial port with the given device path and options and puts
// it into raw 8N1 mode.
func Open(device string, opts ...Option) (Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	flags := unix.O_RDWR | unix.O_NOCTTY
	if config.WriteMode == WriteModeSynced {
		flags |= unix.O_SYNC
	}

	fd, err := unix.Open(device, flags, 0)
	if err != nil {
		return nil, openError(device, err)
	}

	if err := configurePort(fd, device, config); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &port{
		fd:     fd,
		device: device,
		config: config,
	}, nil
}

// configurePort reads the current attributes, makes them raw and commits them
// immediately.
func configurePort(fd int, device string, config Config) error {
	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return &ConfigError{Device: device, Op: "tcgetattr", Err: err}
	}

	if err := makeRaw(termios, config); err != nil {
		return err
	}

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		return &ConfigError{Device: device, Op: "tcsetattr", Err: err}
	}

	galog.Debugf("Configured %s: %d 8N1, VMIN=0 VTIME=%d", device, config.BaudRate, config.vtime())
	return nil
}

// Close closes the serial port
func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}

	err := unix.Close(p.fd)
	p.closed = true
	return err
}

// Read reads data from the serial port. It returns (0, nil) when the read
// timeout elapses without data.
func (p *port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	n, err := unix.Read(p.fd, buf)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Write writes data to the serial port
func (p *port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	return unix.Write(p.fd, data)
}

// Drain waits until all output written to the port has been transmitted
func (p *port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCSBRK, 1)
}

// FlushInput discards any unread input data
func (p *port) FlushInput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	return unix.IoctlSetInt(p.fd, unix.TCFLSH, unix.TCIFLUSH)
}

// attributes returns the committed terminal attributes.
func (p *port) attributes() (*unix.Termios, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPortClosed
	}

	return unix.IoctlGetTermios(p.fd, unix.TCGETS)
}
