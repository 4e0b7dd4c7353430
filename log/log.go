// Package log provides the slog loggers used across httpmsg.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/httpmsg/header"
	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/uri"
)

// RedactedKeys lists attribute keys whose values are masked in log output.
var RedactedKeys = []string{
	"password", "passwd",
	"authorization", "Authorization",
	"proxy-authorization", "Proxy-Authorization",
	"cookie", "Cookie", "set-cookie", "Set-Cookie",
}

const redacted = "xxxxx"

var newHandler = slogformatter.NewFormatterHandler(
	append(
		[]slogformatter.Formatter{
			slogformatter.ErrorFormatter("error"),
			slogformatter.FormatByType(func(f *os.File) slog.Value {
				if f == nil {
					return slog.StringValue("<nil>")
				}
				return slog.GroupValue(
					slog.String("type", fmt.Sprintf("%T", f)),
					slog.String("ptr", fmt.Sprintf("%p", f)),
					slog.String("name", f.Name()),
				)
			}),
			slogformatter.FormatByType(func(u *uri.URI) slog.Value {
				return u.LogValue()
			}),
			slogformatter.FormatByType(func(l *header.List) slog.Value {
				return l.LogValue()
			}),
		},
		redactors()...,
	)...,
)

func redactors() []slogformatter.Formatter {
	fs := make([]slogformatter.Formatter, 0, len(RedactedKeys))
	for _, k := range RedactedKeys {
		fs = append(fs, slogformatter.FormatByKey(k, func(v slog.Value) slog.Value {
			if v.Kind() == slog.KindString && v.String() == "" {
				return v
			}
			return slog.StringValue(redacted)
		}))
	}
	return fs
}

// NewConsoleHandler returns a colored console handler writing to w.
func NewConsoleHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      lvl,
			TimeFormat: time.RFC3339Nano,
		}),
	)
}

// NewDevHandler returns a verbose developer handler writing to w.
func NewDevHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     lvl,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	)
}

// Def is a default logger.
var Def = slog.New(NewConsoleHandler(os.Stdout, slog.LevelDebug))

// Dev is a developer logger.
var Dev = slog.New(NewDevHandler(os.Stdout, slog.LevelDebug))

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

var defLogger atomic.Pointer[slog.Logger]

func init() {
	defLogger.Store(Noop)
}

// Default returns the package-wide logger used when no logger is configured explicitly.
// It is [Noop] until [SetDefault] is called.
func Default() *slog.Logger { return defLogger.Load() }

// SetDefault replaces the package-wide logger. Nil resets it to [Noop].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Noop
	}
	defLogger.Store(l)
}

// ErrInvalidLevel is returned by [ParseLevel] for unknown level names.
const ErrInvalidLevel errorutil.Error = "invalid log level"

// ParseLevel parses level names like "debug", "INFO", "warn+2".
// "off" and "none" map to a level above [slog.LevelError] that disables output.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LevelOff, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidLevel, err))
	}
	return lvl, nil
}

// LevelOff is above every level emitted by httpmsg.
const LevelOff = slog.Level(1 << 10)

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

type calcValue struct{ fn func() any }

func (v calcValue) LogValue() slog.Value {
	switch cv := v.fn().(type) {
	case slog.Value:
		return cv
	default:
		return slog.AnyValue(cv)
	}
}

// CalcValue returns a value logger that computes a value using a fn.
func CalcValue(fn func() any) slog.LogValuer { return calcValue{fn} }

type stringValue[T ~string | ~[]byte] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T ~string | ~[]byte](v T) slog.LogValuer { return stringValue[T]{v} }
