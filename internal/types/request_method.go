package types

import "slices"

const (
	RequestMethodGet     RequestMethod = "GET"
	RequestMethodHead    RequestMethod = "HEAD"
	RequestMethodPost    RequestMethod = "POST"
	RequestMethodPut     RequestMethod = "PUT"
	RequestMethodPatch   RequestMethod = "PATCH"
	RequestMethodDelete  RequestMethod = "DELETE"
	RequestMethodConnect RequestMethod = "CONNECT"
	RequestMethodOptions RequestMethod = "OPTIONS"
	RequestMethodTrace   RequestMethod = "TRACE"
)

var requestMethods = []RequestMethod{
	RequestMethodGet,
	RequestMethodHead,
	RequestMethodPost,
	RequestMethodPut,
	RequestMethodPatch,
	RequestMethodDelete,
	RequestMethodConnect,
	RequestMethodOptions,
	RequestMethodTrace,
}

// RequestMethods returns all known request methods.
func RequestMethods() []RequestMethod { return slices.Clone(requestMethods) }

type RequestMethod string

// IsValid reports whether m is a known method. Methods are case-sensitive.
func (m RequestMethod) IsValid() bool { return slices.Contains(requestMethods, m) }

func (m RequestMethod) String() string { return string(m) }
