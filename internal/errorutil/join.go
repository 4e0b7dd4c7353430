package errorutil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ghettovoice/httpmsg/internal/util"
)

const defaultJoinLabel = "multiple errors"

// Join combines errs into a single error, skipping nil values.
// It returns nil when nothing is left and the error itself when only one remains.
func Join(errs ...error) error {
	return JoinPrefix("", errs...) //errtrace:skip
}

// JoinPrefix is like [Join] but labels the result with prefix.
// A single error is returned as "prefix: err", several are listed one per line under prefix.
func JoinPrefix(prefix string, errs ...error) error {
	errs = slices.DeleteFunc(slices.Clone(errs), func(err error) bool { return err == nil })
	switch {
	case len(errs) == 0:
		return nil
	case len(errs) > 1:
		return &joinError{label: prefix, errs: errs} //errtrace:skip
	case prefix == "":
		return errs[0] //errtrace:skip
	default:
		return fmt.Errorf("%s: %w", strings.TrimSuffix(prefix, ":"), errs[0]) //errtrace:skip
	}
}

type joinError struct {
	label string
	errs  []error
}

func (e *joinError) title() string {
	if e.label == "" {
		return defaultJoinLabel
	}
	return e.label
}

func (e *joinError) Error() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	sb.WriteString(e.title())
	e.writeList(sb, 1)
	return sb.String()
}

// writeList prints every error as a "- " item indented by depth levels.
func (e *joinError) writeList(sb *strings.Builder, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, err := range e.errs {
		sb.WriteString("\n" + pad + "- ")
		if nested, ok := err.(*joinError); ok { //nolint:errorlint
			sb.WriteString(nested.title())
			nested.writeList(sb, depth+1)
			continue
		}
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n"+pad+"  "))
	}
}

func (e *joinError) Unwrap() []error { return e.errs }
