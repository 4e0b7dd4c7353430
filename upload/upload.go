// Package upload implements uploaded files attached to server requests.
//
// An [Upload] starts pending and can be moved to its final location exactly once.
// Uploads created with a failure status reject every operation with [ErrUploadFailed].
package upload

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/log"
	"github.com/ghettovoice/httpmsg/stream"
)

// Error is an upload error.
type Error = errorutil.Error

const (
	ErrInvalidArgument = errorutil.ErrInvalidArgument
	ErrAlreadyMoved    Error = "uploaded file already moved"
	ErrUploadFailed    Error = "file upload failed"
	ErrInvalidTarget   Error = "invalid move target"
)

// File is an uploaded file.
type File interface {
	// Stream returns the file content.
	Stream() (stream.Stream, error)
	// MoveTo moves the file to path. It can be done only once.
	MoveTo(path string) error
	Size() int64
	Status() Status
	ClientFilename() string
	ClientMediaType() string
}

// Options configure an [Upload].
type Options struct {
	// Logger is used to log moves.
	// If nil, [log.Default] is used.
	Logger *slog.Logger
}

func (o *Options) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

type state string

const (
	statePending state = "pending"
	stateMoved   state = "moved"
	stateFailed  state = "failed"
)

const evtMove = "move"

// Upload is a [File] backed by a file path or a stream.
// It is safe for concurrent use.
type Upload struct {
	mu   sync.Mutex
	fsm  *stateless.StateMachine
	log  *slog.Logger
	path string
	strm stream.Stream

	size            int64
	status          Status
	clientFilename  string
	clientMediaType string
}

var _ File = (*Upload)(nil)

// NewFromPath creates an upload whose content lives in the file at path.
// The path may be empty when status is not [StatusOK].
func NewFromPath(
	path string,
	size int64,
	status Status,
	clientFilename, clientMediaType string,
	opts *Options,
) (*Upload, error) {
	if status.IsOK() && path == "" {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty file path"))
	}
	u, err := newUpload(size, status, clientFilename, clientMediaType, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u.path = path
	return u, nil
}

// NewFromStream creates an upload whose content is read from s.
// The stream may be nil when status is not [StatusOK].
func NewFromStream(
	s stream.Stream,
	size int64,
	status Status,
	clientFilename, clientMediaType string,
	opts *Options,
) (*Upload, error) {
	if status.IsOK() && s == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil stream"))
	}
	u, err := newUpload(size, status, clientFilename, clientMediaType, opts)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u.strm = s
	return u, nil
}

func newUpload(size int64, status Status, clientFilename, clientMediaType string, opts *Options) (*Upload, error) {
	if size < 0 {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("negative size %d", size))
	}
	if !status.IsValid() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown status %d", uint8(status)))
	}

	u := &Upload{
		log:             opts.log(),
		size:            size,
		status:          status,
		clientFilename:  clientFilename,
		clientMediaType: clientMediaType,
	}
	u.initFSM()
	return u, nil
}

func (u *Upload) initFSM() {
	start := statePending
	if !u.status.IsOK() {
		start = stateFailed
	}
	u.fsm = stateless.NewStateMachine(start)

	u.fsm.Configure(statePending).
		Permit(evtMove, stateMoved)

	u.fsm.Configure(stateMoved).
		OnEntryFrom(evtMove, u.actMoved)
}

func (u *Upload) actMoved(ctx context.Context, args ...any) error {
	u.log.LogAttrs(ctx, slog.LevelDebug, "uploaded file moved",
		slog.Any("upload", u),
		slog.Any("target", args[0]),
	)
	return nil
}

// checkState must be called with u.mu held.
func (u *Upload) checkState() error {
	switch u.fsm.MustState() {
	case stateFailed:
		return errtrace.Wrap(errorutil.NewWrapperError(ErrUploadFailed, u.status.Text()))
	case stateMoved:
		return errtrace.Wrap(ErrAlreadyMoved)
	default:
		return nil
	}
}

// Stream returns the upload content.
// Path-backed uploads open the file on the first call.
func (u *Upload) Stream() (stream.Stream, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.checkState(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if u.strm != nil {
		return u.strm, nil
	}

	s, err := stream.Open(u.path, "rb")
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u.strm = s
	return s, nil
}

// MoveTo moves the upload to target.
// Path-backed uploads are renamed, falling back to copying when renaming fails.
// Stream-backed uploads are copied from the beginning of the stream.
func (u *Upload) MoveTo(target string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.checkState(); err != nil {
		return errtrace.Wrap(err)
	}
	if target == "" {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("empty target path"))
	}
	if err := checkTargetDir(target); err != nil {
		return errtrace.Wrap(err)
	}

	var err error
	if u.path != "" {
		if u.strm != nil {
			u.strm.Close() //nolint:errcheck
			u.strm = nil
		}
		err = u.movePath(target)
	} else {
		err = u.copyStream(target)
	}
	if err != nil {
		return errtrace.Wrap(err)
	}

	return errtrace.Wrap(u.fsm.Fire(evtMove, target))
}

func checkTargetDir(target string) error {
	dir := filepath.Dir(target)
	fi, err := os.Stat(dir)
	if err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidTarget, err))
	}
	if !fi.IsDir() {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidTarget, "%q is not a directory", dir))
	}
	return nil
}

func (u *Upload) movePath(target string) error {
	err := os.Rename(u.path, target)
	if err == nil {
		return nil
	}

	u.log.LogAttrs(context.Background(), slog.LevelDebug, "rename failed, copying uploaded file",
		slog.String("source", u.path),
		slog.String("target", target),
		slog.Any("error", err),
	)

	src, err := os.Open(u.path)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if err := writeFile(target, src); err != nil {
		src.Close()
		return errtrace.Wrap(err)
	}
	src.Close()
	return errtrace.Wrap(os.Remove(u.path))
}

func (u *Upload) copyStream(target string) error {
	if u.strm.IsSeekable() {
		if err := u.strm.Rewind(); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return errtrace.Wrap(writeFile(target, u.strm))
}

func writeFile(name string, r io.Reader) error {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(f.Close())
}

// Moved reports whether the upload was moved.
func (u *Upload) Moved() bool {
	if u == nil {
		return false
	}
	return u.fsm.MustState() == stateMoved
}

// Size returns the upload size in bytes as reported by the client.
func (u *Upload) Size() int64 {
	if u == nil {
		return 0
	}
	return u.size
}

// Status returns the upload status.
func (u *Upload) Status() Status {
	if u == nil {
		return StatusNoFile
	}
	return u.status
}

// ClientFilename returns the file name sent by the client.
// It must not be trusted.
func (u *Upload) ClientFilename() string {
	if u == nil {
		return ""
	}
	return u.clientFilename
}

// ClientMediaType returns the media type sent by the client.
// It must not be trusted.
func (u *Upload) ClientMediaType() string {
	if u == nil {
		return ""
	}
	return u.clientMediaType
}

// LogValue implements [slog.LogValuer].
func (u *Upload) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	return slog.GroupValue(
		slog.String("ptr", fmt.Sprintf("%p", u)),
		slog.String("state", fmt.Sprint(u.fsm.MustState())),
		slog.Int64("size", u.size),
		slog.Any("status", u.status),
		slog.String("client_filename", u.clientFilename),
		slog.String("client_media_type", u.clientMediaType),
	)
}
