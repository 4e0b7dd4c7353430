package stream

import (
	"io"

	"braces.dev/errtrace"
)

// Buffer is a growable in-memory file. Writes at the cursor overwrite existing bytes
// and extend the buffer when needed.
// The zero value is an empty buffer ready to use.
type Buffer struct {
	buf []byte
	off int64
}

// NewBuffer creates a buffer holding b with the cursor at the beginning.
// The buffer takes ownership of b.
func NewBuffer(b []byte) *Buffer { return &Buffer{buf: b} }

// Read implements [io.Reader].
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= int64(len(b.buf)) {
		return 0, io.EOF //errtrace:skip
	}
	n := copy(p, b.buf[b.off:])
	b.off += int64(n)
	return n, nil
}

// Write implements [io.Writer].
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.off + int64(len(p))
	if l := int64(len(b.buf)); end > l {
		if end > int64(cap(b.buf)) {
			buf := make([]byte, end, max(end, 2*int64(cap(b.buf))))
			copy(buf, b.buf)
			b.buf = buf
		} else {
			b.buf = b.buf[:end]
			if b.off > l {
				clear(b.buf[l:b.off])
			}
		}
	}
	n := copy(b.buf[b.off:], p)
	b.off += int64(n)
	return n, nil
}

// Seek implements [io.Seeker]. Seeking past the end is allowed,
// a subsequent write fills the gap with zeros.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.off + offset
	case io.SeekEnd:
		abs = int64(len(b.buf)) + offset
	default:
		return 0, errtrace.Wrap(errInvalidWhence)
	}
	if abs < 0 {
		return 0, errtrace.Wrap(errNegativeOffset)
	}
	b.off = abs
	return abs, nil
}

// Size returns the buffer length.
func (b *Buffer) Size() int64 { return int64(len(b.buf)) }

// Bytes returns the buffer content. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.buf }

const (
	errInvalidWhence  Error = "invalid whence"
	errNegativeOffset Error = "negative position"
)
