// Package header implements an ordered, case-insensitive, case-preserving collection
// of HTTP header fields.
//
// A [List] keeps fields in insertion order. Each field name is stored with the casing
// of its first insertion and maps to a non-empty list of values:
//
//	var hdrs header.List
//	hdrs.Add("X-A", "v1")
//	hdrs.Add("x-a", "v2")
//	hdrs.Get("X-A")  // ["v1", "v2"]
//	hdrs.Line("X-A") // "v1;v2"
//
// Name lookup is case-insensitive. Insertion through [List.Add] and [List.Set] never
// creates a second differently-cased field for the same name. A list restored from
// a JSON snapshot may contain such fields; every operation resolving a name matched
// by more than one stored field fails with [ErrAmbiguousHeader] instead of picking one.
//
// Values are coerced to strings: strings, string slices, slices of scalars,
// numbers and [fmt.Stringer] values are accepted, anything else is rejected
// with [ErrInvalidHeaderValue].
package header
