package uartlog

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Predefined error types for robust error handling
var (
	ErrDeviceNotFound    = errors.New("serial device not found")
	ErrPermissionDenied  = errors.New("permission denied accessing serial device")
	ErrDeviceInUse       = errors.New("serial device already in use")
	ErrInvalidBaudRate   = errors.New("invalid baud rate")
	ErrInvalidConfig     = errors.New("invalid serial configuration")
	ErrPortClosed        = errors.New("serial port is closed")
	ErrJournalClosed     = errors.New("journal is closed")
	ErrAttemptsExhausted = errors.New("no complete message within the attempt limit")
)

// ConfigError reports a failure to read or commit terminal attributes.
type ConfigError struct {
	Device string
	Op     string // "tcgetattr" or "tcsetattr"
	Err    error
}

func (e *ConfigError) Error() string {
	var errno unix.Errno
	if errors.As(e.Err, &errno) {
		return fmt.Sprintf("%s: Error %d from %s: %s", e.Device, int(errno), e.Op, errno.Error())
	}
	return fmt.Sprintf("%s: error from %s: %v", e.Device, e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FlushError reports a failure to discard pending input after a short read.
type FlushError struct {
	Err error
}

func (e *FlushError) Error() string { return fmt.Sprintf("tcflush() error: %v", e.Err) }

func (e *FlushError) Unwrap() error { return e.Err }

// ReadError reports a failed read from the device.
type ReadError struct {
	Attempt int
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Error reading (attempt %d): %v", e.Attempt, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// JournalError reports a failure to open or append to the log file.
type JournalError struct {
	Path string
	Err  error
}

func (e *JournalError) Error() string { return fmt.Sprintf("journal %s: %v", e.Path, e.Err) }

func (e *JournalError) Unwrap() error { return e.Err }

// WriteError reports a failure to echo the message back to the device.
type WriteError struct {
	Device string
	Err    error
}

func (e *WriteError) Error() string { return fmt.Sprintf("echo to %s: %v", e.Device, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// ExitCode maps the outcome of Run to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// openError maps errno values from open(2) onto the package sentinels.
func openError(device string, err error) error {
	switch {
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENXIO), errors.Is(err, unix.ENODEV):
		return fmt.Errorf("failed to open %s: %w", device, ErrDeviceNotFound)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("failed to open %s: %w", device, ErrPermissionDenied)
	case errors.Is(err, unix.EBUSY):
		return fmt.Errorf("failed to open %s: %w", device, ErrDeviceInUse)
	default:
		return fmt.Errorf("failed to open %s: %w", device, err)
	}
}
