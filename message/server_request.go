package message

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/util"
	"github.com/ghettovoice/httpmsg/stream"
	"github.com/ghettovoice/httpmsg/upload"
	"github.com/ghettovoice/httpmsg/uri"
)

// srvCore holds the server request fields on top of [reqCore].
type srvCore struct {
	reqCore
	srvParams  map[string]any
	cookies    map[string]string
	query      url.Values
	files      map[string]any
	parsedBody any
	attrs      map[string]any
}

func (c *srvCore) clone() srvCore {
	return srvCore{
		reqCore:    c.reqCore.clone(),
		srvParams:  maps.Clone(c.srvParams),
		cookies:    maps.Clone(c.cookies),
		query:      cloneValues(c.query),
		files:      cloneFilesMap(c.files),
		parsedBody: c.parsedBody,
		attrs:      maps.Clone(c.attrs),
	}
}

func cloneValues(vals url.Values) url.Values {
	if vals == nil {
		return nil
	}
	vals2 := make(url.Values, len(vals))
	for k, v := range vals {
		vals2[k] = slices.Clone(v)
	}
	return vals2
}

func cloneFilesMap(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}
	tree2 := make(map[string]any, len(tree))
	for k, v := range tree {
		tree2[k] = cloneFilesNode(v)
	}
	return tree2
}

func cloneFilesNode(node any) any {
	switch n := node.(type) {
	case upload.File:
		return n
	case map[string]any:
		return cloneFilesMap(n)
	case []any:
		n2 := make([]any, len(n))
		for i := range n {
			n2[i] = cloneFilesNode(n[i])
		}
		return n2
	default:
		return n
	}
}

// ServerParams returns a copy of the server parameters, e.g. environment of the request.
func (c *srvCore) ServerParams() map[string]any { return maps.Clone(c.srvParams) }

// CookieParams returns a copy of the request cookies.
func (c *srvCore) CookieParams() map[string]string { return maps.Clone(c.cookies) }

// QueryParams returns a copy of the deserialized query arguments.
// They are not derived from the URI and may differ from it.
func (c *srvCore) QueryParams() url.Values { return cloneValues(c.query) }

// UploadedFiles returns a copy of the uploaded files tree.
// Leaves are [upload.File], inner nodes are map[string]any or []any.
// Files themselves are shared.
func (c *srvCore) UploadedFiles() map[string]any { return cloneFilesMap(c.files) }

// ParsedBody returns the deserialized body. The value is shared, not copied.
func (c *srvCore) ParsedBody() any { return c.parsedBody }

// Attributes returns a copy of the request attributes keyed by lower-cased names.
func (c *srvCore) Attributes() map[string]any { return maps.Clone(c.attrs) }

// Attribute returns the attribute stored under key or def when there is none.
// Keys are strings or integers, strings are matched case-insensitively.
func (c *srvCore) Attribute(key, def any) (any, error) {
	k, err := attrKey(key)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if v, ok := c.attrs[k]; ok {
		return v, nil
	}
	return def, nil
}

func attrKey(key any) (string, error) {
	if s, ok := key.(string); ok {
		return util.LCase(s), nil
	}

	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.String:
		return util.LCase(rv.String()), nil
	default:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidAttributeKey, "unexpected key type %T", key))
	}
}

func (c *srvCore) setCookieParams(cookies map[string]string) { c.cookies = maps.Clone(cookies) }

func (c *srvCore) setQueryParams(query url.Values) { c.query = cloneValues(query) }

func (c *srvCore) setUploadedFiles(tree map[string]any) error {
	if err := checkFilesMap("", tree); err != nil {
		return errtrace.Wrap(err)
	}
	c.files = cloneFilesMap(tree)
	return nil
}

func checkFilesMap(path string, tree map[string]any) error {
	for _, k := range slices.Sorted(maps.Keys(tree)) {
		if err := checkFilesNode(joinFilesPath(path, k), tree[k]); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func checkFilesNode(path string, node any) error {
	switch n := node.(type) {
	case upload.File:
		return nil
	case map[string]any:
		return errtrace.Wrap(checkFilesMap(path, n))
	case []any:
		for i := range n {
			if err := checkFilesNode(joinFilesPath(path, strconv.Itoa(i)), n[i]); err != nil {
				return errtrace.Wrap(err)
			}
		}
		return nil
	default:
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidUploadedFiles,
			"unexpected %T at %q", node, path))
	}
}

func joinFilesPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "[" + key + "]"
}

func (c *srvCore) setParsedBody(body any) error {
	if !isParsedBody(body) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidParsedBody,
			"want nil, map, slice, array or struct, got %T", body))
	}
	c.parsedBody = body
	return nil
}

func isParsedBody(body any) bool {
	if body == nil {
		return true
	}
	t := reflect.TypeOf(body)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	default:
		return false
	}
}

func (c *srvCore) setAttribute(key, value any) error {
	k, err := attrKey(key)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if c.attrs == nil {
		c.attrs = make(map[string]any)
	}
	c.attrs[k] = value
	return nil
}

func (c *srvCore) removeAttribute(key any) error {
	k, err := attrKey(key)
	if err != nil {
		return errtrace.Wrap(err)
	}
	delete(c.attrs, k)
	return nil
}

func (c *srvCore) validate() []error {
	errs := c.reqCore.validate()
	if err := checkFilesMap("", c.files); err != nil {
		errs = append(errs, err)
	}
	if !isParsedBody(c.parsedBody) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidParsedBody, "%T", c.parsedBody))
	}
	return errs
}

func (c *srvCore) logAttrs() []slog.Attr {
	attrs := c.reqCore.logAttrs()
	if len(c.attrs) > 0 {
		attrs = append(attrs, slog.Any("attributes", slices.Sorted(maps.Keys(c.attrs))))
	}
	if len(c.files) > 0 {
		attrs = append(attrs, slog.Any("uploaded_files", slices.Sorted(maps.Keys(c.files))))
	}
	if c.parsedBody != nil {
		attrs = append(attrs, slog.String("parsed_body", fmt.Sprintf("%T", c.parsedBody)))
	}
	return attrs
}

// ServerRequest is an incoming HTTP request as seen by a server.
type ServerRequest struct {
	srvCore
}

// NewServerRequest creates a server request parsing rawURI with [uri.Parse].
func NewServerRequest(method, rawURI string, serverParams map[string]any) (*ServerRequest, error) {
	u, err := uri.Parse(rawURI)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(NewServerRequestWithURI(method, u, serverParams))
}

// NewServerRequestWithURI creates a server request for the given URI.
// The server parameters are copied.
func NewServerRequestWithURI(method string, u *uri.URI, serverParams map[string]any) (*ServerRequest, error) {
	req, err := NewRequestWithURI(method, u)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &ServerRequest{
		srvCore: srvCore{
			reqCore:   req.reqCore,
			srvParams: maps.Clone(serverParams),
		},
	}, nil
}

// WithCookieParams returns a copy with the cookies replaced.
func (req *ServerRequest) WithCookieParams(cookies map[string]string) *ServerRequest {
	req2 := req.Clone()
	req2.setCookieParams(cookies)
	return req2
}

// WithQueryParams returns a copy with the query arguments replaced.
func (req *ServerRequest) WithQueryParams(query url.Values) *ServerRequest {
	req2 := req.Clone()
	req2.setQueryParams(query)
	return req2
}

// WithUploadedFiles returns a copy with the uploaded files tree replaced.
// Leaves must be [upload.File], inner nodes map[string]any or []any.
func (req *ServerRequest) WithUploadedFiles(tree map[string]any) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setUploadedFiles(tree) }))
}

// WithParsedBody returns a copy with the deserialized body replaced.
// The body must be nil, a map, a slice, an array, a struct or a pointer to one of them.
func (req *ServerRequest) WithParsedBody(body any) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setParsedBody(body) }))
}

// WithAttribute returns a copy with the attribute stored under key.
// Keys are strings or integers, strings are lower-cased.
func (req *ServerRequest) WithAttribute(key, value any) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setAttribute(key, value) }))
}

// WithoutAttribute returns a copy without the attribute stored under key.
func (req *ServerRequest) WithoutAttribute(key any) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.removeAttribute(key) }))
}

// WithMethod returns a copy with the method replaced.
func (req *ServerRequest) WithMethod(method string) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setMethod(method) }))
}

// WithURI returns a copy with the URI replaced. See [Request.WithURI].
func (req *ServerRequest) WithURI(u *uri.URI, preserveHost bool) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setURI(u, preserveHost) }))
}

// WithRequestTarget returns a copy with an explicit request target.
func (req *ServerRequest) WithRequestTarget(target string) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setRequestTarget(target) }))
}

// WithProtocolVersion returns a copy with the protocol version replaced.
func (req *ServerRequest) WithProtocolVersion(v string) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setProtocolVersion(v) }))
}

// WithHeader returns a copy with the header field matching name replaced by value.
func (req *ServerRequest) WithHeader(name string, value any) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.setHeader(name, value) }))
}

// WithAddedHeader returns a copy with value appended to the header field matching name.
func (req *ServerRequest) WithAddedHeader(name string, value any) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.addHeader(name, value) }))
}

// WithoutHeader returns a copy without the header field matching name.
func (req *ServerRequest) WithoutHeader(name string) (*ServerRequest, error) {
	return errtrace.Wrap2(with(req, func(req *ServerRequest) error { return req.removeHeader(name) }))
}

// WithBody returns a copy with the body replaced.
func (req *ServerRequest) WithBody(body stream.Stream) *ServerRequest {
	req2 := req.Clone()
	req2.setBody(body)
	return req2
}

// Clone returns a copy of the server request.
// Containers are copied, uploaded files and the parsed body are shared.
func (req *ServerRequest) Clone() *ServerRequest {
	if req == nil {
		return nil
	}
	return &ServerRequest{srvCore: req.srvCore.clone()}
}

// Validate returns an error describing every invalid field.
func (req *ServerRequest) Validate() error {
	if req == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil server request"))
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid server request:", req.validate()...))
}

// IsValid reports whether the server request is valid.
func (req *ServerRequest) IsValid() bool { return req.Validate() == nil }

// RenderTo writes the request line, the header block and an empty line.
func (req *ServerRequest) RenderTo(w io.Writer, opts *RenderOptions) (int, error) {
	if req == nil {
		return 0, nil
	}
	return errtrace.Wrap2(req.renderTo(w, req.renderStartLine, opts))
}

// Render returns the request line, the header block and an empty line.
func (req *ServerRequest) Render(opts *RenderOptions) string { return render(req, opts) }

// String returns the request line.
func (req *ServerRequest) String() string {
	if req == nil {
		return "<nil>"
	}
	var sb strings.Builder
	req.renderStartLine(&sb) //nolint:errcheck
	return sb.String()
}

// Format implements [fmt.Formatter].
// The "%+s" and "%+q" verbs print the request line with the header block.
func (req *ServerRequest) Format(f fmt.State, verb rune) {
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
		type hideMethods ServerRequest
		type ServerRequest hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*ServerRequest)(req))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (req *ServerRequest) LogValue() slog.Value {
	if req == nil {
		return slog.Value{}
	}
	return slog.GroupValue(req.logAttrs()...)
}
