package uartlog

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Journal is the append-only log file received messages are written to.
type Journal struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	existed bool
}

// OpenJournal opens path for appending, creating it if absent. Existing
// content is never truncated.
func OpenJournal(path string) (*Journal, error) {
	_, statErr := os.Stat(path)
	existed := statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return nil, &JournalError{Path: path, Err: statErr}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, &JournalError{Path: path, Err: err}
	}

	return &Journal{file: file, path: path, existed: existed}, nil
}

// Path returns the journal file path.
func (j *Journal) Path() string { return j.path }

// Existed reports whether the file was present before OpenJournal.
func (j *Journal) Existed() bool { return j.existed }

// Append writes text followed by a newline as a single write.
func (j *Journal) Append(text []byte) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return 0, ErrJournalClosed
	}

	line := make([]byte, 0, len(text)+1)
	line = append(line, text...)
	line = append(line, '\n')

	n, err := j.file.Write(line)
	if err != nil {
		return n, &JournalError{Path: j.path, Err: err}
	}
	return n, nil
}

// Close closes the underlying file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrJournalClosed
	}
	err := j.file.Close()
	j.file = nil
	return err
}
