package uartlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoogleCloudPlatform/galog"
	"golang.org/x/sys/unix"
)

const (
	// DefaultMinLength is the smallest read accepted as a complete message.
	DefaultMinLength = 142
	// DefaultBackoff is the pause between read attempts.
	DefaultBackoff = time.Second
)

// Outcome classifies a single read attempt.
type Outcome int

const (
	OutcomeTimeout Outcome = iota // no bytes before the read timeout
	OutcomeShort                  // fewer than MinLength bytes, input flushed
	OutcomeComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTimeout:
		return "timeout"
	case OutcomeShort:
		return "partial"
	case OutcomeComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Attempt describes one pass of the receive loop.
type Attempt struct {
	Number  int
	Bytes   int
	Outcome Outcome
}

// Receiver reads from a Port until a single read returns at least
// MinLength bytes.
type Receiver struct {
	Port      Port
	MinLength int
	Backoff   time.Duration
	// MaxAttempts bounds the loop; zero retries until ctx is done.
	MaxAttempts int
	// OnAttempt, if set, is called after every attempt.
	OnAttempt func(Attempt)

	sleep func(ctx context.Context, d time.Duration) error
}

// NewReceiver returns a Receiver with the default threshold and backoff.
func NewReceiver(p Port) *Receiver {
	return &Receiver{
		Port:      p,
		MinLength: DefaultMinLength,
		Backoff:   DefaultBackoff,
	}
}

// Receive fills buf with the first complete message and returns its length.
// Short reads are discarded together with any pending input.
func (r *Receiver) Receive(ctx context.Context, buf *Buffer) (int, error) {
	sleep := r.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("receive cancelled before attempt %d: %w", attempt, err)
		}

		n, err := buf.readFrom(r.Port)
		if err != nil && !retryable(err) {
			return 0, &ReadError{Attempt: attempt, Err: err}
		}

		outcome := OutcomeTimeout
		switch {
		case n >= r.MinLength:
			outcome = OutcomeComplete
		case n > 0:
			if err := r.Port.FlushInput(); err != nil {
				return 0, &FlushError{Err: err}
			}
			galog.Warnf("Partial read: %d bytes.", n)
			buf.Reset()
			outcome = OutcomeShort
		}
		galog.V(2).Debugf("Read attempt %d: %d bytes (%s)", attempt, n, outcome)

		if r.OnAttempt != nil {
			r.OnAttempt(Attempt{Number: attempt, Bytes: n, Outcome: outcome})
		}

		if outcome == OutcomeComplete {
			return n, nil
		}
		if r.MaxAttempts > 0 && attempt >= r.MaxAttempts {
			return 0, fmt.Errorf("%w (%d attempts)", ErrAttemptsExhausted, attempt)
		}

		if err := sleep(ctx, r.Backoff); err != nil {
			return 0, fmt.Errorf("receive cancelled after attempt %d: %w", attempt, err)
		}
	}
}

// retryable reports read errors that mean "no data yet" rather than failure.
func retryable(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
