// Package message implements immutable HTTP messages.
//
// [Message], [Request], [ServerRequest] and [Response] never change after construction:
// every With* method returns a modified copy that shares no mutable state with the receiver,
// and leaves the receiver intact when it fails.
// URIs are immutable values and are shared between copies, body streams are shared handles.
package message

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/internal/util"
	"github.com/ghettovoice/httpmsg/stream"
)

// Error is a message error.
type Error = errorutil.Error

const (
	ErrInvalidArgument        = errorutil.ErrInvalidArgument
	ErrInvalidProtocolVersion Error = "invalid protocol version"
	ErrInvalidMethod          Error = "invalid request method"
	ErrInvalidRequestTarget   Error = "invalid request target"
	ErrInvalidHostHeader      Error = "invalid Host header"
	ErrInvalidParsedBody      Error = "invalid parsed body"
	ErrInvalidAttributeKey    Error = "invalid attribute key"
	ErrInvalidUploadedFiles   Error = "invalid uploaded files"
	ErrInvalidStatus          Error = "invalid response status"
)

// DefaultProtocolVersion is the protocol version of new messages.
const DefaultProtocolVersion = "2"

// ProtoInfo is the protocol part of a start line.
// See [types.ProtoInfo].
type ProtoInfo = types.ProtoInfo

// RenderOptions are options of the RenderTo methods.
// See [types.RenderOptions].
type RenderOptions = types.RenderOptions

// ProtocolVersions returns the supported protocol versions, newest first.
func ProtocolVersions() []string {
	vers := make([]string, len(types.ProtoVersions))
	copy(vers, types.ProtoVersions)
	return vers
}

// with applies fn to a copy of m and returns the copy.
func with[P interface{ Clone() P }](m P, fn func(m P) error) (P, error) {
	m2 := m.Clone()
	if err := fn(m2); err != nil {
		var zero P
		return zero, errtrace.Wrap(err)
	}
	return m2, nil
}

// core holds the fields shared by all messages.
type core struct {
	proto string
	hdrs  *header.List
	body  stream.Stream
}

func (c *core) clone() core {
	return core{
		proto: c.proto,
		hdrs:  c.hdrs.Clone(),
		body:  c.body,
	}
}

// ProtocolVersion returns the HTTP protocol version, e.g. "1.1".
func (c *core) ProtocolVersion() string {
	if c.proto == "" {
		return DefaultProtocolVersion
	}
	return c.proto
}

// Proto returns the protocol as it appears in a start line.
func (c *core) Proto() ProtoInfo { return types.HTTP(c.ProtocolVersion()) }

// Headers returns a copy of the header fields in order.
func (c *core) Headers() []header.Entry {
	return c.hdrs.Entries()
}

// HeaderList returns a copy of the header list.
func (c *core) HeaderList() *header.List {
	if c.hdrs == nil {
		return new(header.List)
	}
	return c.hdrs.Clone()
}

// HasHeader reports whether a header field matching name exists.
// Names are case-insensitive.
func (c *core) HasHeader(name string) (bool, error) {
	return errtrace.Wrap2(c.hdrs.Has(name))
}

// Header returns the values of the header field matching name, nil if absent.
func (c *core) Header(name string) ([]string, error) {
	return errtrace.Wrap2(c.hdrs.Get(name))
}

// HeaderLine returns the values of the header field matching name
// joined with [header.DefaultSeparator].
func (c *core) HeaderLine(name string) (string, error) {
	return errtrace.Wrap2(c.HeaderLineSep(name, header.DefaultSeparator))
}

// HeaderLineSep returns the values of the header field matching name joined with sep.
func (c *core) HeaderLineSep(name, sep string) (string, error) {
	return errtrace.Wrap2(c.hdrs.LineSep(name, sep))
}

// Body returns the body stream, nil if the message has no body.
func (c *core) Body() stream.Stream {
	return c.body
}

func (c *core) setProtocolVersion(v string) error {
	if !types.IsProtoVersion(v) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidProtocolVersion, "%q", v))
	}
	c.proto = v
	return nil
}

func (c *core) headers() *header.List {
	if c.hdrs == nil {
		c.hdrs = new(header.List)
	}
	return c.hdrs
}

func (c *core) setHeader(name string, value any) error {
	return errtrace.Wrap(c.headers().Set(name, value))
}

func (c *core) addHeader(name string, value any) error {
	return errtrace.Wrap(c.headers().Add(name, value))
}

func (c *core) removeHeader(name string) error {
	return errtrace.Wrap(c.headers().Remove(name))
}

func (c *core) setBody(body stream.Stream) { c.body = body }

func (c *core) validate() []error {
	var errs []error
	if c.proto != "" && !types.IsProtoVersion(c.proto) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidProtocolVersion, "%q", c.proto))
	}
	return errs
}

func (c *core) logAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("proto", c.ProtocolVersion())}
	if c.hdrs.Len() > 0 {
		attrs = append(attrs, slog.Any("headers", c.hdrs))
	}
	if c.body != nil {
		attrs = append(attrs, slog.String("body", fmt.Sprintf("%T", c.body)))
	}
	return attrs
}

// renderTo writes the start line, the header block and the empty line.
// The body is not rendered.
func (c *core) renderTo(w io.Writer, startLine func(w io.Writer) (int, error), opts *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(startLine)
	cw.Fprint("\r\n")
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(c.hdrs.RenderTo(w, opts))
	})
	cw.Fprint("\r\n")
	return errtrace.Wrap2(cw.Result())
}

// Message is an HTTP message without a start line.
// The zero value is an empty message of [DefaultProtocolVersion].
type Message struct {
	core
}

// NewMessage creates an empty message of [DefaultProtocolVersion].
func NewMessage() *Message { return new(Message) }

// WithProtocolVersion returns a copy with the protocol version replaced.
// Supported versions are listed by [ProtocolVersions].
func (m *Message) WithProtocolVersion(v string) (*Message, error) {
	return errtrace.Wrap2(with(m, func(m *Message) error { return m.setProtocolVersion(v) }))
}

// WithHeader returns a copy with the header field matching name replaced by value.
// See [header.ToValues] for accepted values.
func (m *Message) WithHeader(name string, value any) (*Message, error) {
	return errtrace.Wrap2(with(m, func(m *Message) error { return m.setHeader(name, value) }))
}

// WithAddedHeader returns a copy with value appended to the header field matching name.
func (m *Message) WithAddedHeader(name string, value any) (*Message, error) {
	return errtrace.Wrap2(with(m, func(m *Message) error { return m.addHeader(name, value) }))
}

// WithoutHeader returns a copy without the header field matching name.
func (m *Message) WithoutHeader(name string) (*Message, error) {
	return errtrace.Wrap2(with(m, func(m *Message) error { return m.removeHeader(name) }))
}

// WithBody returns a copy with the body replaced.
func (m *Message) WithBody(body stream.Stream) *Message {
	m2 := m.Clone()
	m2.setBody(body)
	return m2
}

// Clone returns a copy of the message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	return &Message{core: m.core.clone()}
}

// Validate returns an error describing every invalid field.
func (m *Message) Validate() error {
	if m == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil message"))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid message:", m.validate()...))
}

// IsValid reports whether the message is valid.
func (m *Message) IsValid() bool { return m.Validate() == nil }

// RenderTo writes the header block followed by an empty line.
func (m *Message) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if m == nil {
		return 0, nil
	}
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Call(func(w io.Writer) (int, error) {
		return errtrace.Wrap2(m.hdrs.RenderTo(w, opts))
	})
	cw.Fprint("\r\n")
	return errtrace.Wrap2(cw.Result())
}

// Render returns the header block followed by an empty line.
func (m *Message) Render(opts *RenderOptions) string {
	return render(m, opts)
}

// LogValue implements [slog.LogValuer].
func (m *Message) LogValue() slog.Value {
	if m == nil {
		return slog.Value{}
	}
	return slog.GroupValue(m.logAttrs()...)
}

func render(r types.Renderer, opts *RenderOptions) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	r.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}
