// Package hwpdoc is the top-level facade: Open sniffs a document's
// container format and dispatches to the matching parser (hwp5, hwpx, or
// hwp3), the way the teacher's pkg/msdoc package wraps ole2+fib+streams
// behind a single Document type.
package hwpdoc

import (
	"io"
	"os"

	"github.com/iyulab/go-unhwp/format"
	"github.com/iyulab/go-unhwp/hwp3"
	"github.com/iyulab/go-unhwp/hwp5"
	"github.com/iyulab/go-unhwp/hwperr"
	"github.com/iyulab/go-unhwp/hwpx"
	"github.com/iyulab/go-unhwp/hwpxzip"
	"github.com/iyulab/go-unhwp/model"
	"github.com/iyulab/go-unhwp/ole2"
	"github.com/iyulab/go-unhwp/options"
)

// Re-exported so callers don't need to import the options package
// directly for common usage (hwpdoc.Lenient, hwpdoc.TextOnly, etc.),
// mirroring how the teacher's pkg/msdoc re-exports fib constants.
type (
	ErrorMode    = options.ErrorMode
	ExtractMode  = options.ExtractMode
	ParseOptions = options.ParseOptions
)

const (
	Strict  = options.Strict
	Lenient = options.Lenient

	Full          = options.Full
	TextOnly      = options.TextOnly
	StructureOnly = options.StructureOnly
)

// DefaultOptions returns the zero-configuration default: strict error
// handling, full extraction, resources included, logging discarded.
func DefaultOptions() ParseOptions {
	return options.Default()
}

// Open reads and parses filename, auto-detecting its container format.
func Open(filename string) (*model.Document, error) {
	return OpenWithOptions(filename, DefaultOptions())
}

// OpenWithOptions reads and parses filename under the given options.
func OpenWithOptions(filename string, opts ParseOptions) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindInvalidData, "reading file", err)
	}
	return ParseBytes(data, opts)
}

// ParseBytes parses an in-memory document, auto-detecting its container
// format and dispatching to the matching component.
func ParseBytes(data []byte, opts ParseOptions) (*model.Document, error) {
	sniffLen := len(data)
	if sniffLen > 32 {
		sniffLen = 32
	}
	f, err := format.Detect(data[:sniffLen])
	if err != nil {
		return nil, err
	}

	log := opts.Log()
	log.WithField("format", f.String()).Debug("detected HWP container format")

	switch f {
	case format.BinaryCompound:
		r, err := ole2.NewReader(newByteReaderAt(data))
		if err != nil {
			return nil, err
		}
		return hwp5.Parse(r, opts)

	case format.XMLZip:
		archive, err := hwpxzip.Open(data)
		if err != nil {
			return nil, err
		}
		return hwpx.Parse(archive, opts)

	case format.LegacyBinary:
		return hwp3.Parse(data, opts)

	default:
		return nil, hwperr.New(hwperr.KindUnknownFormat, "")
	}
}

type byteReaderAt struct{ data []byte }

func newByteReaderAt(data []byte) *byteReaderAt { return &byteReaderAt{data: data} }

func (b *byteReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
