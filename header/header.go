package header

//go:generate go tool errtrace -w .

import (
	"fmt"
	"reflect"
	"strconv"

	"braces.dev/errtrace"
	"golang.org/x/net/http/httpguts"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/types"
)

type Error = errorutil.Error

const (
	ErrInvalidHeaderName  Error = "invalid header name"
	ErrInvalidHeaderValue Error = "invalid header value"
	ErrAmbiguousHeader    Error = "ambiguous header"
)

// RenderOptions contains options for rendering headers.
type RenderOptions = types.RenderOptions

// DefaultSeparator joins values in [List.Line].
const DefaultSeparator = ";"

func checkName(name string) error {
	if name == "" {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderName, "empty name"))
	}
	return nil
}

// validateName checks that name is a non-empty HTTP token.
func validateName(name string) error {
	if err := checkName(name); err != nil {
		return errtrace.Wrap(err)
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderName, "name %q is not a token", name))
	}
	return nil
}

// ToValues coerces v to a list of header values.
//
// Accepted values: string, []string, []any of scalars, integer and float kinds,
// [fmt.Stringer]. Slices must not be empty.
func ToValues(v any) ([]string, error) {
	var vals []string
	switch v := v.(type) {
	case []string:
		vals = make([]string, 0, len(v))
		vals = append(vals, v...)
	case []any:
		vals = make([]string, 0, len(v))
		for i, e := range v {
			s, err := toValue(e)
			if err != nil {
				return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderValue, "element %d: %v", i, err))
			}
			vals = append(vals, s)
		}
	default:
		s, err := toValue(v)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		vals = []string{s}
	}

	if len(vals) == 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderValue, "empty value list"))
	}
	for _, s := range vals {
		if !httpguts.ValidHeaderFieldValue(s) {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderValue, "value %q contains forbidden characters", s))
		}
	}
	return vals, nil
}

func toValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			break
		}
		return v.String(), nil
	case nil:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderValue, "nil value"))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.String:
		return rv.String(), nil
	default:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeaderValue, "unsupported value type %T", v))
	}
}
