package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/idna"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/types"
	"github.com/ghettovoice/httpmsg/internal/util"
)

type Error = errorutil.Error

const (
	ErrMalformedURI    Error = "malformed URI"
	ErrInvalidScheme   Error = "invalid scheme"
	ErrInvalidUserInfo Error = "invalid user info"
	ErrInvalidHost     Error = "invalid host"
	ErrInvalidPort     Error = "invalid port"
)

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

// Addr represents a host with an optional port.
type Addr = types.Addr

const redactedPasswd = "xxxxx"

// URI is an immutable URI value.
// Components are validated and normalized on construction and on every With* call,
// so a URI obtained from this package is always valid.
// The zero value is the empty URI.
type URI struct {
	scheme   string
	user     string
	passwd   string
	host     string
	port     uint16
	path     string
	query    string
	fragment string
}

// Parse parses a URI from the given input s (string or []byte).
//
// Empty input yields the empty URI. A non-empty input without a path gets path "/".
// An opaque part (as in "http:foo") is treated as a relative path.
// Path, query and fragment are taken verbatim, no escaping is applied or checked.
func Parse[T ~string | ~[]byte](s T) (*URI, error) {
	u := new(URI)
	if len(s) == 0 {
		return u, nil
	}

	rp, err := splitRaw(string(s))
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	path := rp.path
	if path == "" {
		path = "/"
	}

	// port goes after scheme, it is normalized against the scheme default port
	if err := errorutil.Join(
		u.setScheme(rp.scheme),
		u.setUserInfo(rp.user, rp.passwd),
		u.setHost(rp.host),
		u.setPort(rp.port),
	); err != nil {
		return nil, errtrace.Wrap(err)
	}
	u.setPath(path)
	u.setQuery(rp.query)
	u.setFragment(rp.fragment)
	return u, nil
}

type rawParts struct {
	scheme, user, passwd, host string
	port                       int
	path, query, fragment      string
}

// splitRaw splits s into components along the generic URI syntax
// "scheme:[//[userinfo@]host[:port]]path[?query][#fragment]".
func splitRaw(s string) (rawParts, error) {
	var rp rawParts

	rest, frag, _ := strings.Cut(s, "#")
	rest, query, _ := strings.Cut(rest, "?")
	rp.query, rp.fragment = query, frag

	if i := strings.IndexByte(rest, ':'); i > 0 && grammar.IsScheme(rest[:i]) {
		rp.scheme, rest = rest[:i], rest[i+1:]
	}

	rp.path = rest
	auth, ok := strings.CutPrefix(rest, "//")
	if !ok {
		return rp, nil
	}
	rp.path = ""
	if i := strings.IndexByte(auth, '/'); i >= 0 {
		auth, rp.path = auth[:i], auth[i:]
	}

	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		var userinfo string
		userinfo, auth = auth[:i], auth[i+1:]
		rp.user, rp.passwd, _ = strings.Cut(userinfo, ":")
	}

	host, port := auth, ""
	if strings.HasPrefix(auth, "[") {
		// IP literal, rejected later by the host grammar
		if i := strings.IndexByte(auth, ']'); i >= 0 {
			host, port = auth[:i+1], auth[i+1:]
			if port != "" && port[0] != ':' {
				return rp, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "unexpected %q after host %q", port, host))
			}
			port = strings.TrimPrefix(port, ":")
		}
	} else if i := strings.LastIndexByte(auth, ':'); i >= 0 {
		host, port = auth[:i], auth[i+1:]
	}
	if host == "" {
		return rp, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "missing host in %q", s))
	}
	rp.host = host

	if port != "" {
		if strings.Trim(port, "0123456789") != "" {
			return rp, errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "invalid port %q", port))
		}
		n, err := strconv.Atoi(port)
		if err != nil {
			return rp, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %q out of range 1..65535", port))
		}
		rp.port = n
	}
	return rp, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T ~string | ~[]byte](s T) *URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URI) setScheme(scheme string) error {
	scheme = util.LCase(scheme)
	if scheme != "" {
		if _, ok := DefaultPort(scheme); !ok {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "scheme %q is not registered", scheme))
		}
	}
	u.scheme = scheme
	return nil
}

func (u *URI) setUserInfo(user, passwd string) error {
	if user == "" {
		u.user, u.passwd = "", ""
		return nil
	}

	if err := grammar.ValidateUserinfoToken(user); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidUserInfo, "user %q", user))
	}
	if passwd != "" {
		if err := grammar.ValidateUserinfoToken(passwd); err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidUserInfo, "password contains invalid characters"))
		}
	}
	u.user, u.passwd = user, passwd
	return nil
}

func (u *URI) setHost(host string) error {
	host = strings.Trim(util.LCase(host), "/")
	if host == "" {
		u.host = ""
		return nil
	}

	if err := grammar.ValidateHost(host); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, "host %q: %v", host, err))
	}
	u.host = host
	return nil
}

func (u *URI) setPort(port int) error {
	if port < 0 || port > 65535 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "port %d out of range 1..65535", port))
	}
	u.port = uint16(port)
	u.normalizePort()
	return nil
}

func (u *URI) normalizePort() {
	if dp, ok := DefaultPort(u.scheme); ok && dp != 0 && dp == u.port {
		u.port = 0
	}
}

func (u *URI) setPath(path string) { u.path = normalizePath(path) }

func (u *URI) setQuery(query string) { u.query = query }

func (u *URI) setFragment(fragment string) { u.fragment = fragment }

// Scheme returns the lower-cased scheme or empty string.
func (u *URI) Scheme() string {
	if u == nil {
		return ""
	}
	return u.scheme
}

// UserInfo returns "user[:password]" or empty string when there is no user.
func (u *URI) UserInfo() string {
	if u == nil || u.user == "" {
		return ""
	}
	if u.passwd == "" {
		return u.user
	}
	return u.user + ":" + u.passwd
}

func (u *URI) User() string {
	if u == nil {
		return ""
	}
	return u.user
}

func (u *URI) Password() string {
	if u == nil {
		return ""
	}
	return u.passwd
}

// Host returns the lower-cased host in its ASCII form or empty string.
func (u *URI) Host() string {
	if u == nil {
		return ""
	}
	return u.host
}

// Port returns the port, in case it is set, and a bool flag indicating whether it is set.
// A port equal to the scheme default port is never set.
func (u *URI) Port() (uint16, bool) {
	if u == nil {
		return 0, false
	}
	return u.port, u.port != 0
}

// Addr returns the host and port of the URI.
func (u *URI) Addr() Addr {
	if u == nil {
		return Addr{}
	}
	return types.HostPort(u.host, u.port)
}

// Path returns the normalized path or empty string.
func (u *URI) Path() string {
	if u == nil {
		return ""
	}
	return u.path
}

func (u *URI) Query() string {
	if u == nil {
		return ""
	}
	return u.query
}

func (u *URI) Fragment() string {
	if u == nil {
		return ""
	}
	return u.fragment
}

// Authority returns "[userinfo@]host[:port]" or empty string when there is no host.
func (u *URI) Authority() string {
	if u == nil || u.host == "" {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.renderAuthority(sb, nil) //nolint:errcheck
	return sb.String()
}

// with runs fn against a copy of u and returns the copy.
func (u *URI) with(fn func(u2 *URI) error) (*URI, error) {
	u2 := u.Clone()
	if u2 == nil {
		u2 = new(URI)
	}
	if err := fn(u2); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u2, nil
}

// WithScheme returns a copy of the URI with the scheme replaced.
// Empty scheme removes it. The port is re-normalized against the new scheme default port.
func (u *URI) WithScheme(scheme string) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		if err := u2.setScheme(scheme); err != nil {
			return errtrace.Wrap(err)
		}
		u2.normalizePort()
		return nil
	}))
}

// WithUserInfo returns a copy of the URI with the user info replaced.
// Empty user removes the user info together with the password.
func (u *URI) WithUserInfo(user, passwd string) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		return errtrace.Wrap(u2.setUserInfo(user, passwd))
	}))
}

// WithHost returns a copy of the URI with the host replaced.
// The host must be ASCII, see [URI.WithIDNHost] for internationalized names.
func (u *URI) WithHost(host string) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		return errtrace.Wrap(u2.setHost(host))
	}))
}

// WithIDNHost is like [URI.WithHost] but first converts an internationalized host
// to its ASCII (punycode) form, e.g. "пример.рф" to "xn--e1afmkfd.xn--p1ai".
func (u *URI) WithIDNHost(host string) (*URI, error) {
	ascii, err := idna.Lookup.ToASCII(strings.Trim(host, "/"))
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHost, err))
	}
	return errtrace.Wrap2(u.WithHost(ascii))
}

// WithPort returns a copy of the URI with the port replaced. Port 0 removes it.
func (u *URI) WithPort(port int) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		return errtrace.Wrap(u2.setPort(port))
	}))
}

// WithPath returns a copy of the URI with the path replaced and normalized.
func (u *URI) WithPath(path string) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		u2.setPath(path)
		return nil
	}))
}

// WithQuery returns a copy of the URI with the query replaced.
func (u *URI) WithQuery(query string) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		u2.setQuery(query)
		return nil
	}))
}

// WithFragment returns a copy of the URI with the fragment replaced.
func (u *URI) WithFragment(fragment string) (*URI, error) {
	return errtrace.Wrap2(u.with(func(u2 *URI) error {
		u2.setFragment(fragment)
		return nil
	}))
}

// Clone returns a copy of the URI.
func (u *URI) Clone() *URI {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// RenderTo writes the URI to the provided writer.
//
// A path not starting with "/", the empty one included, replaces everything
// rendered before it, so relative references keep their exact shape.
func (u *URI) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if strings.HasPrefix(u.path, "/") {
		if u.scheme != "" {
			cw.Fprint(u.scheme, ":")
		}
		if u.host != "" {
			cw.Fprint("//")
			cw.Call(func(w io.Writer) (int, error) { return errtrace.Wrap2(u.renderAuthority(w, opts)) })
		}
	}
	cw.Fprint(u.path)
	if u.query != "" {
		cw.Fprint("?", u.query)
	}
	if u.fragment != "" {
		cw.Fprint("#", u.fragment)
	}
	return errtrace.Wrap2(cw.Result())
}

func (u *URI) renderAuthority(w io.Writer, opts *RenderOptions) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.user != "" {
		cw.Fprint(u.user)
		if u.passwd != "" {
			if opts.ShouldRedact() {
				cw.Fprint(":", redactedPasswd)
			} else {
				cw.Fprint(":", u.passwd)
			}
		}
		cw.Fprint("@")
	}
	cw.Fprint(u.Addr())
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the URI.
func (u *URI) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the URI.
func (u *URI) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// LogValue implements [slog.LogValuer]. The password is redacted.
func (u *URI) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	return slog.StringValue(u.Render(&RenderOptions{Redact: true}))
}

// Equal compares this URI with another for equality.
// Components are compared in their normalized form.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return *u == *other
}

// IsZero reports whether the URI has no components at all.
func (u *URI) IsZero() bool { return u == nil || *u == URI{} }

// IsValid reports whether every component of the URI passes validation.
func (u *URI) IsValid() bool { return u != nil && u.Validate() == nil }

// Validate re-runs component validation.
// It may fail for a URI built before its scheme was unregistered.
func (u *URI) Validate() error {
	if u == nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "nil URI"))
	}

	var u2 URI
	return errtrace.Wrap(errorutil.JoinPrefix("invalid URI:",
		u2.setScheme(u.scheme),
		u2.setUserInfo(u.user, u.passwd),
		u2.setHost(u.host),
		u2.setPort(int(u.port)),
	))
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
