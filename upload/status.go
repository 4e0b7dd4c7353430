package upload

import (
	"fmt"
	"strconv"
)

// Status is an upload outcome reported by the form decoder.
type Status uint8

const (
	StatusOK Status = iota
	StatusIniSize
	StatusFormSize
	StatusPartial
	StatusNoFile
	_
	StatusNoTmpDir
	StatusCantWrite
	StatusExtension
)

var statusTexts = map[Status]string{
	StatusOK:        "the file uploaded with success",
	StatusIniSize:   "the uploaded file exceeds the server size limit",
	StatusFormSize:  "the uploaded file exceeds the size limit specified in the form",
	StatusPartial:   "the uploaded file was only partially uploaded",
	StatusNoFile:    "no file was uploaded",
	StatusNoTmpDir:  "missing a temporary folder",
	StatusCantWrite: "failed to write file to disk",
	StatusExtension: "an extension stopped the file upload",
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := statusTexts[s]
	return ok
}

// IsOK reports whether the file was uploaded successfully.
func (s Status) IsOK() bool { return s == StatusOK }

// Text returns a human readable description of the status.
func (s Status) Text() string {
	if txt, ok := statusTexts[s]; ok {
		return txt
	}
	return "unknown upload status " + strconv.Itoa(int(s))
}

func (s Status) String() string { return strconv.Itoa(int(s)) }

// Format implements [fmt.Formatter].
func (s Status) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			fmt.Fprintf(f, "%d (%s)", uint8(s), s.Text())
			return
		}
		fmt.Fprint(f, s.String())
	case 'q':
		fmt.Fprintf(f, "%q", s.String())
	default:
		fmt.Fprintf(f, fmt.FormatString(f, verb), uint8(s))
	}
}
