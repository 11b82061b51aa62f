package uartlog

import "time"

// WriteMode represents the write synchronization mode
type WriteMode int

const (
	WriteModeBuffered WriteMode = iota // Default: kernel buffers writes
	WriteModeSynced                    // O_SYNC: writes block until hardware transmission
)

// MaxReadTimeout is the longest read timeout VTIME can express (255 deciseconds).
const MaxReadTimeout = 25500 * time.Millisecond

// Config holds the configuration for a serial port. Frame format is always
// 8N1 without flow control.
type Config struct {
	BaudRate    int
	ReadTimeout time.Duration // VTIME, must be a multiple of 100ms
	WriteMode   WriteMode
}

// Option is a functional option for configuring a serial port
type Option func(*Config) error

// DefaultConfig returns 115200 8N1 with a one second read timeout.
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		ReadTimeout: time.Second,
		WriteMode:   WriteModeBuffered,
	}
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if _, err := getBaudRate(rate); err != nil {
			return err
		}
		c.BaudRate = rate
		return nil
	}
}

// WithReadTimeout sets how long a read waits for the first byte. A read
// returns as soon as any data is present.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 || timeout > MaxReadTimeout || timeout%(100*time.Millisecond) != 0 {
			return ErrInvalidConfig
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithWriteMode sets the write synchronization mode
func WithWriteMode(mode WriteMode) Option {
	return func(c *Config) error {
		c.WriteMode = mode
		return nil
	}
}

// WithSyncWrite enables synchronous writes (O_SYNC) for guaranteed transmission
func WithSyncWrite() Option {
	return func(c *Config) error {
		c.WriteMode = WriteModeSynced
		return nil
	}
}

// vtime converts the read timeout to deciseconds.
func (c Config) vtime() uint8 {
	return uint8(c.ReadTimeout / (100 * time.Millisecond))
}
