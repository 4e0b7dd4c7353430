// Package stream provides the byte stream used as message bodies and uploaded file contents.
package stream

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -source=stream.go -destination=streammock/stream_mock.go -package=streammock

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

// Error is a stream error.
type Error = errorutil.Error

const (
	ErrClosed       Error = "stream is closed"
	ErrNotReadable  Error = "stream is not readable"
	ErrNotWritable  Error = "stream is not writable"
	ErrNotSeekable  Error = "stream is not seekable"
	ErrInvalidMode  Error = "invalid stream mode"
	ErrInvalidInput Error = "invalid stream input"
)

// Stream is a byte stream with a cursor.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer
	// Tell returns the current cursor position.
	Tell() (int64, error)
	// Rewind moves the cursor to the beginning.
	Rewind() error
	// EOF reports whether the end of the stream was reached.
	// Closed streams are always at EOF.
	EOF() bool
	// Size returns the stream size when known.
	Size() (int64, bool)
	// Detach releases the underlying resource without closing it.
	// The stream is unusable afterwards.
	Detach() any
	// Contents reads the remainder of the stream.
	Contents() (string, error)
	IsReadable() bool
	IsWritable() bool
	IsSeekable() bool
	// String returns the whole stream content from the beginning
	// and restores the cursor. Non-readable or non-seekable streams render as "".
	String() string
}

// Resource is a [Stream] backed by a file or any reader/writer.
// It is not safe for concurrent use.
type Resource struct {
	rsc  any
	mode string

	r io.Reader
	w io.Writer
	s io.Seeker

	pos int64
	eof bool
}

var _ Stream = (*Resource)(nil)

var modeFlags = map[string]int{
	"r":  os.O_RDONLY,
	"r+": os.O_RDWR,
	"w":  os.O_WRONLY | os.O_CREATE | os.O_TRUNC,
	"w+": os.O_RDWR | os.O_CREATE | os.O_TRUNC,
	"a":  os.O_WRONLY | os.O_CREATE | os.O_APPEND,
	"a+": os.O_RDWR | os.O_CREATE | os.O_APPEND,
	"x":  os.O_WRONLY | os.O_CREATE | os.O_EXCL,
	"x+": os.O_RDWR | os.O_CREATE | os.O_EXCL,
	"c":  os.O_WRONLY | os.O_CREATE,
	"c+": os.O_RDWR | os.O_CREATE,
}

// parseMode strips the b/t flags and returns the canonical mode with its open flags.
func parseMode(mode string) (string, int, error) {
	m := strings.NewReplacer("b", "", "t", "").Replace(mode)
	flag, ok := modeFlags[m]
	if !ok {
		return "", 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMode, "%q", mode))
	}
	return m, flag, nil
}

// Open opens the named file with an fopen-like mode ("r", "r+", "w", "w+", "a", "a+", "x", "x+", "c", "c+",
// optionally with "b" or "t").
func Open(name, mode string) (*Resource, error) {
	m, flag, err := parseMode(mode)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	f, err := os.OpenFile(name, flag, 0o644)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return newResource(f, m), nil
}

// NewFile wraps an already opened file. The mode describes the access the file was opened with.
func NewFile(f *os.File, mode string) (*Resource, error) {
	if f == nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidInput, "nil file"))
	}
	m, _, err := parseMode(mode)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return newResource(f, m), nil
}

// New wraps rw inferring capabilities from the interfaces it implements.
// rw must implement at least one of [io.Reader] or [io.Writer].
func New(rw any) (*Resource, error) {
	if f, ok := rw.(*os.File); ok && f != nil {
		return newResource(f, "r+"), nil
	}

	_, canRead := rw.(io.Reader)
	_, canWrite := rw.(io.Writer)
	var m string
	switch {
	case canRead && canWrite:
		m = "r+"
	case canRead:
		m = "r"
	case canWrite:
		m = "w"
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidInput, "%T is neither a reader nor a writer", rw))
	}
	return newResource(rw, m), nil
}

// Temp returns a readable, writable and seekable in-memory stream.
func Temp() *Resource { return newResource(new(Buffer), "w+") }

// FromString returns a temporary stream holding s with the cursor at the beginning.
func FromString(s string) *Resource { return newResource(NewBuffer([]byte(s)), "w+") }

func newResource(rsc any, mode string) *Resource {
	r := &Resource{rsc: rsc, mode: mode}
	if strings.ContainsAny(mode, "r+") {
		r.r, _ = rsc.(io.Reader)
	}
	if strings.ContainsAny(mode, "acwx+") {
		r.w, _ = rsc.(io.Writer)
	}
	if s, ok := rsc.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekCurrent); err == nil {
			r.s = s
		}
	}
	return r
}

// Mode returns the canonical access mode of the stream.
func (r *Resource) Mode() string {
	if r == nil {
		return ""
	}
	return r.mode
}

func (r *Resource) closed() bool { return r == nil || r.rsc == nil }

// IsReadable reports whether the stream can be read from.
func (r *Resource) IsReadable() bool { return !r.closed() && r.r != nil }

// IsWritable reports whether the stream can be written to.
func (r *Resource) IsWritable() bool { return !r.closed() && r.w != nil }

// IsSeekable reports whether the stream cursor can be moved.
func (r *Resource) IsSeekable() bool { return !r.closed() && r.s != nil }

// Read implements [io.Reader]. The end of stream is reported with the bare [io.EOF].
func (r *Resource) Read(p []byte) (int, error) {
	if r.closed() {
		return 0, errtrace.Wrap(ErrClosed)
	}
	if r.r == nil {
		return 0, errtrace.Wrap(ErrNotReadable)
	}

	n, err := r.r.Read(p)
	r.pos += int64(n)
	if errors.Is(err, io.EOF) {
		r.eof = true
		return n, io.EOF //errtrace:skip
	}
	if err != nil {
		return n, errtrace.Wrap(err)
	}
	return n, nil
}

// Write implements [io.Writer].
func (r *Resource) Write(p []byte) (int, error) {
	if r.closed() {
		return 0, errtrace.Wrap(ErrClosed)
	}
	if r.w == nil {
		return 0, errtrace.Wrap(ErrNotWritable)
	}

	n, err := r.w.Write(p)
	r.pos += int64(n)
	if err != nil {
		return n, errtrace.Wrap(err)
	}
	return n, nil
}

// Seek implements [io.Seeker].
func (r *Resource) Seek(offset int64, whence int) (int64, error) {
	if r.closed() {
		return 0, errtrace.Wrap(ErrClosed)
	}
	if r.s == nil {
		return 0, errtrace.Wrap(ErrNotSeekable)
	}

	pos, err := r.s.Seek(offset, whence)
	if err != nil {
		return 0, errtrace.Wrap(err)
	}
	r.pos = pos
	r.eof = false
	return pos, nil
}

// Tell returns the current cursor position.
func (r *Resource) Tell() (int64, error) {
	if r.closed() {
		return 0, errtrace.Wrap(ErrClosed)
	}
	if r.s == nil {
		return r.pos, nil
	}
	return errtrace.Wrap2(r.s.Seek(0, io.SeekCurrent))
}

// Rewind moves the cursor to the beginning.
func (r *Resource) Rewind() error {
	_, err := r.Seek(0, io.SeekStart)
	return errtrace.Wrap(err)
}

// EOF reports whether a read hit the end of the stream.
func (r *Resource) EOF() bool { return r.closed() || r.eof }

// Size returns the stream size when the underlying resource knows it.
func (r *Resource) Size() (int64, bool) {
	if r.closed() {
		return 0, false
	}

	switch v := r.rsc.(type) {
	case interface{ Stat() (os.FileInfo, error) }:
		fi, err := v.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0, false
		}
		return fi.Size(), true
	case interface{ Size() int64 }:
		return v.Size(), true
	case interface{ Len() int }:
		return int64(v.Len()), true
	default:
		return 0, false
	}
}

// Detach returns the underlying resource and leaves the stream unusable.
// Detaching an already detached stream returns nil.
func (r *Resource) Detach() any {
	if r.closed() {
		return nil
	}
	rsc := r.rsc
	*r = Resource{mode: r.mode}
	return rsc
}

// Close closes the underlying resource if it is an [io.Closer].
// Closing a closed stream is a no-op.
func (r *Resource) Close() error {
	rsc := r.Detach()
	if c, ok := rsc.(io.Closer); ok {
		return errtrace.Wrap(c.Close())
	}
	return nil
}

// Contents reads the remainder of the stream.
func (r *Resource) Contents() (string, error) {
	if r.closed() {
		return "", errtrace.Wrap(ErrClosed)
	}
	if r.r == nil {
		return "", errtrace.Wrap(ErrNotReadable)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return string(b), errtrace.Wrap(err)
	}
	r.eof = true
	return string(b), nil
}

// String returns the whole content of a readable and seekable stream
// and restores the cursor afterwards. Otherwise it returns "".
func (r *Resource) String() string {
	if !r.IsReadable() || !r.IsSeekable() {
		return ""
	}

	pos, err := r.Tell()
	if err != nil {
		return ""
	}
	eof := r.eof
	defer func() {
		r.Seek(pos, io.SeekStart) //nolint:errcheck
		r.eof = eof
	}()

	if err := r.Rewind(); err != nil {
		return ""
	}
	s, _ := r.Contents()
	return s
}

// Format implements [fmt.Formatter].
func (r *Resource) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, r.String())
		return
	case 'q':
		fmt.Fprintf(f, "%q", r.String())
		return
	default:
		type hideMethods Resource
		type Resource hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Resource)(r))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (r *Resource) LogValue() slog.Value {
	if r == nil {
		return slog.Value{}
	}
	attrs := []slog.Attr{
		slog.String("type", fmt.Sprintf("%T", r.rsc)),
		slog.String("mode", r.mode),
		slog.Bool("closed", r.closed()),
	}
	if size, ok := r.Size(); ok {
		attrs = append(attrs, slog.Int64("size", size))
	}
	return slog.GroupValue(attrs...)
}
