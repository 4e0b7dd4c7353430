package message

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/internal/util"
	"github.com/ghettovoice/httpmsg/stream"
	"github.com/ghettovoice/httpmsg/uri"
)

// RequestMethod is an HTTP request method.
// See [types.RequestMethod].
type RequestMethod = types.RequestMethod

// Request method constants.
// See [types.RequestMethod].
const (
	RequestMethodGet     = types.RequestMethodGet
	RequestMethodHead    = types.RequestMethodHead
	RequestMethodPost    = types.RequestMethodPost
	RequestMethodPut     = types.RequestMethodPut
	RequestMethodPatch   = types.RequestMethodPatch
	RequestMethodDelete  = types.RequestMethodDelete
	RequestMethodConnect = types.RequestMethodConnect
	RequestMethodOptions = types.RequestMethodOptions
	RequestMethodTrace   = types.RequestMethodTrace
)

// RequestMethods returns the supported request methods.
func RequestMethods() []RequestMethod { return types.RequestMethods() }

const hostHeader = "Host"

// reqCore holds the request fields on top of [core].
type reqCore struct {
	core
	method RequestMethod
	uri    *uri.URI
	// explicit request target, empty means derived from uri
	target string
}

func (c *reqCore) clone() reqCore {
	return reqCore{
		core:   c.core.clone(),
		method: c.method,
		uri:    c.uri,
		target: c.target,
	}
}

// Method returns the request method.
func (c *reqCore) Method() RequestMethod {
	if c.method == "" {
		return RequestMethodGet
	}
	return c.method
}

// URI returns the request URI, nil if the request has no URI.
// URIs are immutable, the returned value can be shared safely.
func (c *reqCore) URI() *uri.URI { return c.uri }

// RequestTarget returns the explicit request target if one was set.
// Otherwise it is the URI path, or "/" when the path is empty, followed by "?query" when the query is not empty.
func (c *reqCore) RequestTarget() string {
	if c.target != "" {
		return c.target
	}

	path := util.OrDefault(c.uri.Path(), "/")
	if q := c.uri.Query(); q != "" {
		return path + "?" + q
	}
	return path
}

func (c *reqCore) setMethod(method string) error {
	m := RequestMethod(method)
	if !m.IsValid() {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMethod, "%q", method))
	}
	c.method = m
	return nil
}

func (c *reqCore) setURI(u *uri.URI, preserveHost bool) error {
	if u == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil URI"))
	}
	c.uri = u

	if preserveHost {
		has, err := c.hdrs.Has(hostHeader)
		if err != nil {
			return errtrace.Wrap(err)
		}
		if has {
			return errtrace.Wrap(c.checkHostHeader())
		}
	}
	if u.Host() == "" {
		return nil
	}
	return errtrace.Wrap(c.setHeader(hostHeader, u.Addr().String()))
}

// checkHostHeader reports an error unless the Host header is absent, empty
// or a single "host[:port]" value.
func (c *reqCore) checkHostHeader() error {
	vals, err := c.Header(hostHeader)
	if err != nil {
		return errtrace.Wrap(err)
	}
	switch {
	case len(vals) == 0:
		return nil
	case len(vals) > 1:
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHostHeader, "%d values", len(vals)))
	case vals[0] == "":
		return nil
	}
	if _, err := types.ParseAddr(vals[0]); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHostHeader, "%q: %v", vals[0], err))
	}
	return nil
}

func (c *reqCore) setRequestTarget(target string) error {
	if strings.ContainsFunc(target, unicode.IsSpace) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRequestTarget,
			"%q contains whitespace", target))
	}
	c.target = target
	return nil
}

func (c *reqCore) validate() []error {
	errs := c.core.validate()
	if c.method != "" && !c.method.IsValid() {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidMethod, "%q", string(c.method)))
	}
	if c.uri != nil {
		if err := c.uri.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if strings.ContainsFunc(c.target, unicode.IsSpace) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidRequestTarget, "%q", c.target))
	}
	if err := c.checkHostHeader(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (c *reqCore) logAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("method", string(c.Method())),
		slog.String("target", c.RequestTarget()),
	}
	if c.uri != nil {
		attrs = append(attrs, slog.Any("uri", c.uri))
	}
	return append(attrs, c.core.logAttrs()...)
}

func (c *reqCore) renderStartLine(w io.Writer) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(c.Method(), " ", c.RequestTarget(), " ", c.Proto())
	return errtrace.Wrap2(cw.Result())
}

// Request is an outgoing HTTP request.
// The zero value is a GET request of [DefaultProtocolVersion] to "/".
type Request struct {
	reqCore
}

// NewRequest creates a request parsing rawURI with [uri.Parse].
// The Host header is not set, use [Request.WithURI] to derive it from a URI.
func NewRequest(method, rawURI string) (*Request, error) {
	u, err := uri.Parse(rawURI)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(NewRequestWithURI(method, u))
}

// NewRequestWithURI creates a request for the given URI.
func NewRequestWithURI(method string, u *uri.URI) (*Request, error) {
	req := new(Request)
	if err := req.setMethod(method); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if u == nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil URI"))
	}
	req.uri = u
	return req, nil
}

// WithMethod returns a copy with the method replaced.
// Methods are case-sensitive, see [RequestMethods].
func (req *Request) WithMethod(method string) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.setMethod(method) }))
}

// WithURI returns a copy with the URI replaced.
// The Host header is set from the URI host and non-default port, unless preserveHost is true
// and the request already has a Host header. A kept header must be a single "host[:port]" value,
// otherwise [ErrInvalidHostHeader] is returned. URIs without a host leave the header untouched.
func (req *Request) WithURI(u *uri.URI, preserveHost bool) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.setURI(u, preserveHost) }))
}

// WithRequestTarget returns a copy with an explicit request target, e.g. "*" or an absolute URI.
// An empty target restores the target derived from the URI.
func (req *Request) WithRequestTarget(target string) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.setRequestTarget(target) }))
}

// WithProtocolVersion returns a copy with the protocol version replaced.
func (req *Request) WithProtocolVersion(v string) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.setProtocolVersion(v) }))
}

// WithHeader returns a copy with the header field matching name replaced by value.
func (req *Request) WithHeader(name string, value any) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.setHeader(name, value) }))
}

// WithAddedHeader returns a copy with value appended to the header field matching name.
func (req *Request) WithAddedHeader(name string, value any) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.addHeader(name, value) }))
}

// WithoutHeader returns a copy without the header field matching name.
func (req *Request) WithoutHeader(name string) (*Request, error) {
	return errtrace.Wrap2(with(req, func(req *Request) error { return req.removeHeader(name) }))
}

// WithBody returns a copy with the body replaced.
func (req *Request) WithBody(body stream.Stream) *Request {
	req2 := req.Clone()
	req2.setBody(body)
	return req2
}

// Clone returns a copy of the request.
func (req *Request) Clone() *Request {
	if req == nil {
		return nil
	}
	return &Request{reqCore: req.reqCore.clone()}
}

// Validate returns an error describing every invalid field.
func (req *Request) Validate() error {
	if req == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil request"))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid request:", req.validate()...))
}

// IsValid reports whether the request is valid.
func (req *Request) IsValid() bool { return req.Validate() == nil }

// RenderTo writes the request line, the header block and an empty line.
func (req *Request) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if req == nil {
		return 0, nil
	}
	return errtrace.Wrap2(req.renderTo(w, req.renderStartLine, opts))
}

// Render returns the request line, the header block and an empty line.
func (req *Request) Render(opts *RenderOptions) string { return render(req, opts) }

// String returns the request line.
func (req *Request) String() string {
	if req == nil {
		return "<nil>"
	}
	var sb strings.Builder
	req.renderStartLine(&sb) //nolint:errcheck
	return sb.String()
}

// Format implements [fmt.Formatter].
func (req *Request) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			req.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, req.String())
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprintf(f, "%q", req.Render(nil))
			return
		}
		fmt.Fprintf(f, "%q", req.String())
		return
	default:
		type hideMethods Request
		type Request hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Request)(req))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (req *Request) LogValue() slog.Value {
	if req == nil {
		return slog.Value{}
	}
	return slog.GroupValue(req.logAttrs()...)
}
