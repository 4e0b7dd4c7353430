// Package util holds small string helpers shared by the httpmsg packages.
package util

import (
	"strings"
	"sync"
)

// LCase lower-cases s keeping its type.
func LCase[T ~string](s T) T { return T(strings.ToLower(string(s))) }

// EqFold reports whether s1 and s2 are equal under Unicode case folding.
func EqFold[T1, T2 ~string](s1 T1, s2 T2) bool {
	return strings.EqualFold(string(s1), string(s2))
}

// OrDefault returns s if it is non-empty and def otherwise.
func OrDefault[T ~string](s, def T) T {
	if s == "" {
		return def
	}
	return s
}

const builderSize = 128

var builders = sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(builderSize)
		return sb
	},
}

// GetStringBuilder takes an empty builder from the pool.
// Return it with [FreeStringBuilder] once its content was copied out.
func GetStringBuilder() *strings.Builder {
	return builders.Get().(*strings.Builder) //nolint:forcetypeassert
}

// FreeStringBuilder resets sb and puts it back to the pool.
func FreeStringBuilder(sb *strings.Builder) {
	if sb == nil {
		return
	}
	sb.Reset()
	builders.Put(sb)
}
