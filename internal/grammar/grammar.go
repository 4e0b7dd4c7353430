// Package grammar holds the ABNF rules used to validate URI components.
//
//	alphanum       = ALPHA / DIGIT
//	label-char     = alphanum / "_" / "-"
//	label          = alphanum [ *label-char alphanum ]
//	host           = label *( "." label )
//	userinfo-token = 1*label-char
//	scheme         = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
package grammar

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
)

func init() {
	abnf.EnableNodeCache(1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

var (
	alpha = abnf.Alt(
		"ALPHA",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
	)
	digit    = abnf.Range("DIGIT", []byte{0x30}, []byte{0x39})
	alphanum = abnf.Alt("alphanum", alpha, digit)

	labelChar = abnf.Alt(
		"label-char",
		alphanum,
		abnf.Literal("\"_\"", []byte("_")),
		abnf.Literal("\"-\"", []byte("-")),
	)

	label = abnf.Concat(
		"label",
		alphanum,
		abnf.Optional(
			"[ *label-char alphanum ]",
			abnf.Concat(
				"*label-char alphanum",
				abnf.Repeat0Inf("*label-char", labelChar),
				alphanum,
			),
		),
	)

	host = abnf.Concat(
		"host",
		label,
		abnf.Repeat0Inf(
			"*( \".\" label )",
			abnf.Concat("\".\" label", abnf.Literal("\".\"", []byte(".")), label),
		),
	)

	userinfoToken = abnf.Repeat1Inf("userinfo-token", labelChar)

	scheme = abnf.Concat(
		"scheme",
		alpha,
		abnf.Repeat0Inf(
			"*( ALPHA / DIGIT / \"+\" / \"-\" / \".\" )",
			abnf.Alt(
				"ALPHA / DIGIT / \"+\" / \"-\" / \".\"",
				alpha,
				digit,
				abnf.Literal("\"+\"", []byte("+")),
				abnf.Literal("\"-\"", []byte("-")),
				abnf.Literal("\".\"", []byte(".")),
			),
		),
	)
)

// match runs op over s and requires it to consume the whole input.
func match[T ~string | ~[]byte](op abnf.Operator, s T) error {
	if len(s) == 0 {
		return errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return errtrace.Wrap(newMalformedInputErr(err))
	}

	if nl, il := ns.Best().Len(), len(s); nl < il {
		return errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return nil
}

// ValidateHost checks that s is a dot-separated list of labels.
// Upper-case letters are accepted, callers lower-case hosts themselves.
func ValidateHost[T ~string | ~[]byte](s T) error {
	return errtrace.Wrap(match(host, s))
}

func IsHost[T ~string | ~[]byte](s T) bool { return match(host, s) == nil }

func IsHostLabel[T ~string | ~[]byte](s T) bool { return match(label, s) == nil }

// ValidateUserinfoToken checks that s consists of letters, digits, "_" and "-" only.
func ValidateUserinfoToken[T ~string | ~[]byte](s T) error {
	return errtrace.Wrap(match(userinfoToken, s))
}

func IsUserinfoToken[T ~string | ~[]byte](s T) bool { return match(userinfoToken, s) == nil }

func IsScheme[T ~string | ~[]byte](s T) bool { return match(scheme, s) == nil }
