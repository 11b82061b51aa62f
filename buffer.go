package uartlog

import "bytes"

// DefaultBufferSize is the capacity of the receive buffer.
const DefaultBufferSize = 256

// Buffer is a fixed-capacity receive buffer. The number of bytes read is
// tracked separately from the text length, which ends at the first NUL.
type Buffer struct {
	data []byte
	n    int
}

// NewBuffer returns a zeroed buffer holding at most size bytes.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Len returns the number of bytes stored by the last successful read.
func (b *Buffer) Len() int { return b.n }

// Bytes returns the raw bytes of the last read.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// Text returns the stored bytes up to, not including, the first NUL.
func (b *Buffer) Text() []byte {
	raw := b.Bytes()
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		return raw[:i]
	}
	return raw
}

// Reset zeroes the whole buffer and forgets the stored length.
func (b *Buffer) Reset() {
	clear(b.data)
	b.n = 0
}

// readFrom performs exactly one read from p into the buffer.
func (b *Buffer) readFrom(p Port) (int, error) {
	b.Reset()
	n, err := p.Read(b.data)
	if err != nil {
		return 0, err
	}
	b.n = n
	return n, nil
}
