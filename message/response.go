package message

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/stream"
)

// ResponseStatus is an HTTP response status code.
// See [types.ResponseStatus].
type ResponseStatus = types.ResponseStatus

// ResponseReason is an HTTP response reason phrase.
// See [types.ResponseReason].
type ResponseReason = types.ResponseReason

// resCore holds the response fields on top of [core].
type resCore struct {
	core
	status ResponseStatus
	// custom reason phrase, empty means the standard one
	reason string
}

func (c *resCore) clone() resCore {
	return resCore{
		core:   c.core.clone(),
		status: c.status,
		reason: c.reason,
	}
}

// StatusCode returns the response status code.
func (c *resCore) StatusCode() int {
	if c.status == 0 {
		return int(types.ResponseStatusOK)
	}
	return int(c.status)
}

// Status returns the response status.
func (c *resCore) Status() ResponseStatus { return ResponseStatus(c.StatusCode()) }

// ReasonPhrase returns the reason phrase.
// It is the standard text of the status code unless a custom phrase was set.
func (c *resCore) ReasonPhrase() string {
	if c.reason != "" {
		return c.reason
	}
	return string(c.Status().Reason())
}

func (c *resCore) setStatus(code int, reason string) error {
	s := ResponseStatus(code)
	if code < 0 || !s.IsValid() {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidStatus, "code %d", code))
	}
	if strings.ContainsAny(reason, "\r\n") {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidStatus, "reason %q", reason))
	}
	c.status = s
	c.reason = reason
	return nil
}

func (c *resCore) validate() []error {
	errs := c.core.validate()
	if c.status != 0 && !c.status.IsValid() {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidStatus, "code %d", uint(c.status)))
	}
	return errs
}

func (c *resCore) logAttrs() []slog.Attr {
	return append([]slog.Attr{
		slog.Int("status", c.StatusCode()),
		slog.String("reason", c.ReasonPhrase()),
	}, c.core.logAttrs()...)
}

func (c *resCore) renderStartLine(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(c.Proto(), " ", c.StatusCode(), " ", c.ReasonPhrase())
	return errtrace.Wrap2(cw.Result())
}

// Response is an outgoing HTTP response.
// The zero value is a "200 OK" response of [DefaultProtocolVersion].
type Response struct {
	resCore
}

// NewResponse creates a response with the given status code and its standard reason phrase.
func NewResponse(code int) (*Response, error) {
	res := new(Response)
	if err := res.setStatus(code, ""); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return res, nil
}

// WithStatus returns a copy with the status replaced.
// The code must be in range 100..599. An empty reason means the standard text.
func (res *Response) WithStatus(code int, reason string) (*Response, error) {
	return errtrace.Wrap2(with(res, func(res *Response) error { return res.setStatus(code, reason) }))
}

// WithProtocolVersion returns a copy with the protocol version replaced.
func (res *Response) WithProtocolVersion(v string) (*Response, error) {
	return errtrace.Wrap2(with(res, func(res *Response) error { return res.setProtocolVersion(v) }))
}

// WithHeader returns a copy with the header field matching name replaced by value.
func (res *Response) WithHeader(name string, value any) (*Response, error) {
	return errtrace.Wrap2(with(res, func(res *Response) error { return res.setHeader(name, value) }))
}

// WithAddedHeader returns a copy with value appended to the header field matching name.
func (res *Response) WithAddedHeader(name string, value any) (*Response, error) {
	return errtrace.Wrap2(with(res, func(res *Response) error { return res.addHeader(name, value) }))
}

// WithoutHeader returns a copy without the header field matching name.
func (res *Response) WithoutHeader(name string) (*Response, error) {
	return errtrace.Wrap2(with(res, func(res *Response) error { return res.removeHeader(name) }))
}

// WithBody returns a copy with the body replaced.
func (res *Response) WithBody(body stream.Stream) *Response {
	res2 := res.Clone()
	res2.setBody(body)
	return res2
}

// Clone returns a copy of the response.
func (res *Response) Clone() *Response {
	if res == nil {
		return nil
	}
	return &Response{resCore: res.resCore.clone()}
}

// Validate returns an error describing every invalid field.
func (res *Response) Validate() error {
	if res == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil response"))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid response:", res.validate()...))
}

// IsValid reports whether the response is valid.
func (res *Response) IsValid() bool { return res.Validate() == nil }

// RenderTo writes the status line, the header block and an empty line.
func (res *Response) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if res == nil {
		return 0, nil
	}
	return errtrace.Wrap2(res.renderTo(w, res.renderStartLine, opts))
}

// Render returns the status line, the header block and an empty line.
func (res *Response) Render(opts *RenderOptions) string { return render(res, opts) }

// String returns the status line.
func (res *Response) String() string {
	if res == nil {
		return "<nil>"
	}
	var sb strings.Builder
	res.renderStartLine(&sb) //nolint:errcheck
	return sb.String()
}

// Format implements [fmt.Formatter].
func (res *Response) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			res.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, res.String())
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprintf(f, "%q", res.Render(nil))
			return
		}
		fmt.Fprintf(f, "%q", res.String())
		return
	default:
		type hideMethods Response
		type Response hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Response)(res))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (res *Response) LogValue() slog.Value {
	if res == nil {
		return slog.Value{}
	}
	return slog.GroupValue(res.logAttrs()...)
}
