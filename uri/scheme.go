package uri

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/syncutil"
	"github.com/ghettovoice/httpmsg/internal/util"
)

var schemes = syncutil.NewRWMap(map[string]uint16{
	"http":  80,
	"https": 443,
})

// RegisterScheme adds a scheme to the set accepted by [Parse] and [URI.WithScheme].
// Port is the default port of the scheme, 0 means the scheme has no default port.
// Registering an existing scheme replaces its default port.
// Already constructed URIs are not affected.
func RegisterScheme(name string, port uint16) error {
	if !grammar.IsScheme(name) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "scheme %q", name))
	}
	schemes.Set(util.LCase(name), port)
	return nil
}

// UnregisterScheme removes a scheme from the registry.
func UnregisterScheme(name string) {
	schemes.Del(util.LCase(name))
}

// DefaultPort returns the default port of the registered scheme.
// The bool result reports whether the scheme is registered at all.
func DefaultPort(scheme string) (uint16, bool) {
	return schemes.Get(util.LCase(scheme))
}

// Schemes returns registered schemes sorted by name.
func Schemes() []string {
	return schemes.SortedKeys(strings.Compare)
}
