package uartlog

import (
	"errors"
	"sync"
)

// readStep scripts one Read call: either n bytes of payload or an error.
type readStep struct {
	data []byte
	err  error
}

// bytesOf returns n bytes starting with text and padded with NULs.
func bytesOf(text string, n int) []byte {
	b := make([]byte, n)
	copy(b, text)
	return b
}

// fakePort replays scripted reads and records everything else.
type fakePort struct {
	mu       sync.Mutex
	steps    []readStep
	reads    int
	flushes  int
	drains   int
	written  [][]byte
	flushErr error
	writeErr error
	closed   bool
}

var _ Port = (*fakePort)(nil)

func newFakePort(steps ...readStep) *fakePort {
	return &fakePort{steps: steps}
}

func (f *fakePort) Read(buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrPortClosed
	}
	if f.reads >= len(f.steps) {
		f.reads++
		return 0, nil
	}
	step := f.steps[f.reads]
	f.reads++
	if step.err != nil {
		return -1, step.err
	}
	return copy(buf, step.data), nil
}

func (f *fakePort) Write(data []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.written = append(f.written, append([]byte(nil), data...))
	return len(data), nil
}

func (f *fakePort) FlushInput() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.flushes++
	return f.flushErr
}

func (f *fakePort) Drain() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.drains++
	return nil
}

func (f *fakePort) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrPortClosed
	}
	f.closed = true
	return nil
}

var errDevice = errors.New("device fault")
