// Package types contains the value types shared by the uri, header and message packages.
package types

//go:generate go tool errtrace -w .

import "io"

// Renderer is implemented by values with a wire form.
type Renderer interface {
	// Render returns the wire form.
	Render(opts *RenderOptions) string
	// RenderTo writes the wire form to w and returns the number of bytes written.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions tune [Renderer] output. A nil value means defaults.
type RenderOptions struct {
	// Redact masks credentials (URI passwords) in the output.
	Redact bool `json:"redact,omitempty"`
}

// ShouldRedact is a nil-safe accessor of [RenderOptions.Redact].
func (o *RenderOptions) ShouldRedact() bool { return o != nil && o.Redact }
