package types

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/grammar"
	"github.com/ghettovoice/httpmsg/internal/util"
)

// Addr is a container for host and optional port, as found in the URI authority
// and in the Host header.
type Addr struct {
	host string
	port uint16
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr { return Addr{host: host} }

// HostPort returns an [Addr] containing the provided host and port.
// Port 0 means no port.
func HostPort(host string, port uint16) Addr { return Addr{host: host, port: port} }

// ParseAddr parses a "host[:port]" string into an [Addr].
func ParseAddr[T ~string | ~[]byte](s T) (Addr, error) {
	if len(s) == 0 {
		return Addr{}, errtrace.Wrap(grammar.ErrEmptyInput)
	}

	str := string(s)
	host, portStr, err := net.SplitHostPort(str)
	if err != nil {
		var aerr *net.AddrError
		if !errors.As(err, &aerr) || aerr.Err != "missing port in address" {
			return Addr{}, errtrace.Wrap(grammar.ErrMalformedInput)
		}
		host, portStr = str, ""
	}
	if err := grammar.ValidateHost(host); err != nil {
		return Addr{}, errtrace.Wrap(err)
	}
	if portStr == "" {
		return Host(util.LCase(host)), nil
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return Addr{}, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrMalformedInput, "port %q", portStr))
	}
	return HostPort(util.LCase(host), uint16(port)), nil
}

// Host returns the hostname portion of the address.
func (addr Addr) Host() string { return addr.host }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.port != 0 }

// String formats the address as host[:port].
func (addr Addr) String() string {
	if addr.port == 0 {
		return addr.host
	}
	return addr.host + ":" + strconv.Itoa(int(addr.port))
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (addr Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, addr.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, addr.String())
			return
		}

		type hideMethods Addr
		type Addr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(addr))
		return
	}
}
