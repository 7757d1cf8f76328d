// Package hwperr defines the error taxonomy shared by every HWP parsing
// component. Callers distinguish error categories with errors.As against
// *Error and its Kind field, the way a caller of the teacher's FIB/OLE2
// layers would check a wrapped sentinel with errors.Is.
package hwperr

import "fmt"

// Kind classifies a parsing failure into one of the categories a caller
// needs to branch on (retry in lenient mode, report encryption, etc).
type Kind int

const (
	KindUnknownFormat Kind = iota
	KindUnsupportedFormat
	KindEncrypted
	KindDistributionRestricted
	KindDecompression
	KindRecordParse
	KindXMLParse
	KindInvalidData
	KindMissingComponent
	KindStyleNotFound
	KindResourceNotFound
	KindEncoding
)

func (k Kind) String() string {
	switch k {
	case KindUnknownFormat:
		return "unknown format"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindEncrypted:
		return "encrypted"
	case KindDistributionRestricted:
		return "distribution restricted"
	case KindDecompression:
		return "decompression"
	case KindRecordParse:
		return "record parse"
	case KindXMLParse:
		return "xml parse"
	case KindInvalidData:
		return "invalid data"
	case KindMissingComponent:
		return "missing component"
	case KindStyleNotFound:
		return "style not found"
	case KindResourceNotFound:
		return "resource not found"
	case KindEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// Error is the concrete error type produced by every package in this
// module. Offset is only meaningful for KindRecordParse.
type Error struct {
	Kind    Kind
	Detail  string
	Offset  int64
	Wrapped error
}

func (e *Error) Error() string {
	if e.Kind == KindRecordParse {
		return fmt.Sprintf("hwp: record parse at offset %d: %s", e.Offset, e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("hwp: %s", e.Kind)
	}
	return fmt.Sprintf("hwp: %s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, hwperr.New(hwperr.KindEncrypted, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Wrapped: err}
}

func RecordParse(offset int64, detail string) *Error {
	return &Error{Kind: KindRecordParse, Detail: detail, Offset: offset}
}

// Is reports whether err (or anything it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if asErr, ok := err.(*Error); ok {
			e = asErr
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == k
}
