package header

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpmsg/internal/errorutil"
	"github.com/ghettovoice/httpmsg/internal/ioutil"
	"github.com/ghettovoice/httpmsg/internal/util"
)

// Entry is a single header field: the name as stored and its values.
type Entry struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	e.Values = slices.Clone(e.Values)
	return e
}

// List is an ordered collection of header fields with case-insensitive name lookup.
// The zero value is an empty list ready to use.
// A List is not safe for concurrent mutation.
type List struct {
	entries []Entry
	// lower-cased name -> positions in entries
	index map[string][]int
}

// New creates a list from entries applying add semantics,
// so differently-cased names of the same field are merged.
func New(entries ...Entry) (*List, error) {
	l := new(List)
	for _, e := range entries {
		if err := l.Add(e.Name, e.Values); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return l, nil
}

// FromMap creates a list from a name to value(s) mapping applying add semantics.
// Keys are applied in sorted order.
func FromMap(m map[string]any) (*List, error) {
	l := new(List)
	for _, name := range slices.Sorted(maps.Keys(m)) {
		if err := l.Add(name, m[name]); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return l, nil
}

func (l *List) reindex() {
	clear(l.index)
	if l.index == nil {
		l.index = make(map[string][]int, len(l.entries))
	}
	for i := range l.entries {
		k := util.LCase(l.entries[i].Name)
		l.index[k] = append(l.index[k], i)
	}
}

// lookup resolves name to the position of the stored entry, -1 if absent.
func (l *List) lookup(name string) (int, error) {
	if err := checkName(name); err != nil {
		return -1, errtrace.Wrap(err)
	}
	if l == nil {
		return -1, nil
	}

	pos := l.index[util.LCase(name)]
	switch len(pos) {
	case 0:
		return -1, nil
	case 1:
		return pos[0], nil
	default:
		names := make([]string, len(pos))
		for i, p := range pos {
			names[i] = strconv.Quote(l.entries[p].Name)
		}
		return -1, errtrace.Wrap(errorutil.NewWrapperError(ErrAmbiguousHeader,
			"name %q matches %s", name, strings.Join(names, ", ")))
	}
}

// Has reports whether a field matching name exists.
func (l *List) Has(name string) (bool, error) {
	i, err := l.lookup(name)
	if err != nil {
		return false, errtrace.Wrap(err)
	}
	return i >= 0, nil
}

// Get returns a copy of the values of the field matching name, nil if absent.
func (l *List) Get(name string) ([]string, error) {
	i, err := l.lookup(name)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	if i < 0 {
		return nil, nil
	}
	return slices.Clone(l.entries[i].Values), nil
}

// Line returns the values of the field matching name joined with [DefaultSeparator].
func (l *List) Line(name string) (string, error) {
	return errtrace.Wrap2(l.LineSep(name, DefaultSeparator))
}

// LineSep returns the values of the field matching name joined with sep.
func (l *List) LineSep(name, sep string) (string, error) {
	i, err := l.lookup(name)
	if err != nil {
		return "", errtrace.Wrap(err)
	}
	if i < 0 {
		return "", nil
	}
	return strings.Join(l.entries[i].Values, sep), nil
}

// Set replaces the field matching name with a new field named exactly name.
// See [ToValues] for accepted values.
func (l *List) Set(name string, value any) error {
	if err := validateName(name); err != nil {
		return errtrace.Wrap(err)
	}
	vals, err := ToValues(value)
	if err != nil {
		return errtrace.Wrap(err)
	}
	i, err := l.lookup(name)
	if err != nil {
		return errtrace.Wrap(err)
	}

	if i >= 0 {
		l.entries = slices.Delete(l.entries, i, i+1)
	}
	l.entries = append(l.entries, Entry{Name: name, Values: vals})
	l.reindex()
	return nil
}

// Add appends values to the field matching name keeping its stored name,
// or inserts a new field when there is no match.
// See [ToValues] for accepted values.
func (l *List) Add(name string, value any) error {
	if err := validateName(name); err != nil {
		return errtrace.Wrap(err)
	}
	vals, err := ToValues(value)
	if err != nil {
		return errtrace.Wrap(err)
	}
	i, err := l.lookup(name)
	if err != nil {
		return errtrace.Wrap(err)
	}

	if i >= 0 {
		l.entries[i].Values = append(l.entries[i].Values, vals...)
		return nil
	}
	l.entries = append(l.entries, Entry{Name: name, Values: vals})
	l.reindex()
	return nil
}

// Remove deletes the field matching name. Absent fields are ignored.
func (l *List) Remove(name string) error {
	i, err := l.lookup(name)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if i < 0 {
		return nil
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	l.reindex()
	return nil
}

// Len returns the number of stored fields.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Names returns stored field names in order.
func (l *List) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, len(l.entries))
	for i := range l.entries {
		names[i] = l.entries[i].Name
	}
	return names
}

// Entries returns a deep copy of stored fields in order.
func (l *List) Entries() []Entry {
	if l == nil {
		return nil
	}
	entries := make([]Entry, len(l.entries))
	for i := range l.entries {
		entries[i] = l.entries[i].Clone()
	}
	return entries
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	if l == nil {
		return nil
	}
	l2 := &List{entries: l.Entries()}
	l2.reindex()
	return l2
}

// Equal reports whether val is a list with the same fields in the same order.
// Names are compared case-insensitively, values exactly.
func (l *List) Equal(val any) bool {
	var other *List
	switch v := val.(type) {
	case *List:
		other = v
	default:
		return false
	}

	if l.Len() != other.Len() {
		return false
	}
	for i := range l.Len() {
		e1, e2 := l.entries[i], other.entries[i]
		if !util.EqFold(e1.Name, e2.Name) || !slices.Equal(e1.Values, e2.Values) {
			return false
		}
	}
	return true
}

// RenderTo writes fields as "Name: v1, v2\r\n" lines.
func (l *List) RenderTo(w io.Writer, _ *RenderOptions) (num int, err error) {
	if l == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, e := range l.entries {
		cw.Fprint(e.Name, ": ", strings.Join(e.Values, ", "), "\r\n")
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the fields as a header block.
func (l *List) Render(opts *RenderOptions) string {
	if l == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	l.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

func (l *List) String() string { return l.Render(nil) }

// LogValue implements [slog.LogValuer].
func (l *List) LogValue() slog.Value {
	if l == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, len(l.entries))
	for i, e := range l.entries {
		attrs[i] = slog.String(e.Name, strings.Join(e.Values, ", "))
	}
	return slog.GroupValue(attrs...)
}

// MarshalJSON implements [json.Marshaler].
func (l *List) MarshalJSON() ([]byte, error) {
	entries := l.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	return errtrace.Wrap2(json.Marshal(entries))
}

// UnmarshalJSON implements [json.Unmarshaler].
// Fields are restored as stored, differently-cased names are not merged.
func (l *List) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errtrace.Wrap(err)
	}

	errs := make([]error, 0, len(entries))
	for i := range entries {
		if err := validateName(entries[i].Name); err != nil {
			errs = append(errs, err)
			continue
		}
		vals, err := ToValues(entries[i].Values)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", entries[i].Name, err))
			continue
		}
		entries[i].Values = vals
	}
	if err := errorutil.JoinPrefix("invalid header list:", errs...); err != nil {
		return errtrace.Wrap(err)
	}

	l.entries = entries
	l.reindex()
	return nil
}
