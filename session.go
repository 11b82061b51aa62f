package uartlog

import (
	"context"
	"fmt"
	"time"

	"github.com/GoogleCloudPlatform/galog"
)

// Backend names accepted in Settings.Backend.
const (
	BackendTermios  = "termios"
	BackendPortable = "portable"
)

// Defaults matching the BeagleBone deployment this tool was written for.
const (
	DefaultDevice  = "/dev/ttyO1"
	DefaultLogFile = "/home/debian/rms/tokenfile.txt"
)

// Settings is the complete configuration of one receive-log-echo run.
type Settings struct {
	Device      string        `mapstructure:"device"`
	LogFile     string        `mapstructure:"log_file"`
	Backend     string        `mapstructure:"backend"`
	BaudRate    int           `mapstructure:"baud"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	SyncWrites  bool          `mapstructure:"sync_writes"`
	BufferSize  int           `mapstructure:"buffer_size"`
	MinLength   int           `mapstructure:"min_length"`
	Backoff     time.Duration `mapstructure:"backoff"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Drain       bool          `mapstructure:"drain"`
}

// DefaultSettings returns the original fixed behaviour: /dev/ttyO1 at
// 115200, 256 byte buffer, 142 byte threshold, one second backoff and no
// attempt limit.
func DefaultSettings() Settings {
	port := DefaultConfig()
	return Settings{
		Device:      DefaultDevice,
		LogFile:     DefaultLogFile,
		Backend:     BackendTermios,
		BaudRate:    port.BaudRate,
		ReadTimeout: port.ReadTimeout,
		BufferSize:  DefaultBufferSize,
		MinLength:   DefaultMinLength,
		Backoff:     DefaultBackoff,
	}
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	switch {
	case s.Device == "":
		return fmt.Errorf("%w: device must be set", ErrInvalidConfig)
	case s.LogFile == "":
		return fmt.Errorf("%w: log file must be set", ErrInvalidConfig)
	case s.BufferSize <= 0:
		return fmt.Errorf("%w: buffer size %d", ErrInvalidConfig, s.BufferSize)
	case s.MinLength <= 0 || s.MinLength > s.BufferSize:
		return fmt.Errorf("%w: min length %d outside 1..%d", ErrInvalidConfig, s.MinLength, s.BufferSize)
	case s.Backoff < 0:
		return fmt.Errorf("%w: negative backoff", ErrInvalidConfig)
	case s.MaxAttempts < 0:
		return fmt.Errorf("%w: negative max attempts", ErrInvalidConfig)
	case s.Timeout < 0:
		return fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}
	if s.Backend != BackendTermios && s.Backend != BackendPortable {
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, s.Backend)
	}
	config := DefaultConfig()
	for _, opt := range s.PortOptions() {
		if err := opt(&config); err != nil {
			return err
		}
	}
	return nil
}

// PortOptions converts the settings into port options.
func (s Settings) PortOptions() []Option {
	opts := []Option{
		WithBaudRate(s.BaudRate),
		WithReadTimeout(s.ReadTimeout),
	}
	if s.SyncWrites {
		opts = append(opts, WithSyncWrite())
	}
	return opts
}

// Opener returns the port opener for the configured backend.
func (s Settings) Opener() Opener {
	if s.Backend == BackendPortable {
		return OpenPortable
	}
	return Open
}

// EventKind identifies a pipeline step reported through Session.OnEvent.
type EventKind int

const (
	EventJournalOpened EventKind = iota
	EventPortOpened
	EventAttempt
	EventPersisted
	EventEchoed
)

// Event is a progress notification from Run.
type Event struct {
	Kind    EventKind
	Path    string // journal path or device
	Existed bool   // EventJournalOpened
	Attempt Attempt
	Bytes   int
	Data    []byte // EventPersisted: the logged text, EventEchoed: the bytes sent
}

// Result summarises a completed run.
type Result struct {
	Bytes    int
	Text     []byte
	Raw      []byte
	Echoed   int
	Attempts int
}

// Session runs the receive-log-echo pipeline once.
type Session struct {
	Settings Settings
	// Open overrides the backend selected by Settings.Backend.
	Open    Opener
	OnEvent func(Event)
}

// Run executes the pipeline with the given settings.
func Run(ctx context.Context, settings Settings, onEvent func(Event)) (*Result, error) {
	s := &Session{Settings: settings, OnEvent: onEvent}
	return s.Run(ctx)
}

func (s *Session) emit(e Event) {
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

// Run opens the journal and the port, receives one complete message, appends
// its text to the journal and echoes the raw bytes back. Both handles are
// closed before returning on every path.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	cfg := s.Settings
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	journal, err := OpenJournal(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	defer journal.Close()
	s.emit(Event{Kind: EventJournalOpened, Path: journal.Path(), Existed: journal.Existed()})

	open := s.Open
	if open == nil {
		open = cfg.Opener()
	}
	port, err := open(cfg.Device, cfg.PortOptions()...)
	if err != nil {
		return nil, err
	}
	defer port.Close()
	s.emit(Event{Kind: EventPortOpened, Path: cfg.Device})

	result := &Result{}
	receiver := &Receiver{
		Port:        port,
		MinLength:   cfg.MinLength,
		Backoff:     cfg.Backoff,
		MaxAttempts: cfg.MaxAttempts,
		OnAttempt: func(a Attempt) {
			result.Attempts = a.Number
			s.emit(Event{Kind: EventAttempt, Path: cfg.Device, Attempt: a, Bytes: a.Bytes})
		},
	}

	buf := NewBuffer(cfg.BufferSize)
	n, err := receiver.Receive(ctx, buf)
	if err != nil {
		return result, err
	}
	result.Bytes = n
	result.Text = append([]byte(nil), buf.Text()...)
	result.Raw = append([]byte(nil), buf.Bytes()...)

	if _, err := journal.Append(buf.Text()); err != nil {
		return result, err
	}
	s.emit(Event{Kind: EventPersisted, Path: journal.Path(), Bytes: n, Data: result.Text})

	written, err := port.Write(buf.Bytes())
	if err != nil {
		return result, &WriteError{Device: cfg.Device, Err: err}
	}
	result.Echoed = written
	if written < n {
		galog.Warnf("Short echo to %s: %d of %d bytes", cfg.Device, written, n)
	}
	if cfg.Drain {
		if err := port.Drain(); err != nil {
			return result, &WriteError{Device: cfg.Device, Err: fmt.Errorf("drain: %w", err)}
		}
	}
	s.emit(Event{Kind: EventEchoed, Path: cfg.Device, Bytes: written, Data: result.Raw[:written]})

	galog.Infof("Logged %d bytes to %s and echoed %d bytes to %s", n, journal.Path(), written, cfg.Device)
	return result, nil
}
