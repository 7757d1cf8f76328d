// Package format sniffs the on-disk container format of an HWP document
// before any structural parsing begins, the way the teacher's ole2.Reader
// checks its compound-file signature before trusting the rest of a .doc
// file.
package format

import (
	"bytes"

	"github.com/iyulab/go-unhwp/hwperr"
)

// Format identifies which of the three container shells a document uses.
type Format int

const (
	// Unknown is returned from Detect only together with a non-nil
	// error; it exists so zero-value Format comparisons fail closed.
	Unknown Format = iota
	// BinaryCompound is an OLE2/CFB container (HWP 5.x).
	BinaryCompound
	// XMLZip is a ZIP container holding HWPML section XML (HWPX).
	XMLZip
	// LegacyBinary is the fixed-layout HWP 3.x format.
	LegacyBinary
)

func (f Format) String() string {
	switch f {
	case BinaryCompound:
		return "binary-compound"
	case XMLZip:
		return "xml-zip"
	case LegacyBinary:
		return "legacy-binary"
	default:
		return "unknown"
	}
}

var (
	cfbSignature  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature  = []byte{0x50, 0x4B, 0x03, 0x04}
	legacySigHead = []byte("HWP Document File V")
	bareSignature = []byte("HWP Document File")
)

// Detect sniffs up to the first 32 bytes of a document to classify its
// container format.
func Detect(header []byte) (Format, error) {
	if len(header) < 8 {
		return Unknown, hwperr.New(hwperr.KindInvalidData, "header too short to sniff")
	}

	switch {
	case bytes.Equal(header[:8], cfbSignature):
		return BinaryCompound, nil
	case bytes.Equal(header[:4], zipSignature):
		return XMLZip, nil
	case len(header) >= len(legacySigHead) && bytes.Equal(header[:len(legacySigHead)], legacySigHead):
		return LegacyBinary, nil
	case len(header) >= len(bareSignature) && bytes.Equal(header[:len(bareSignature)], bareSignature):
		// Rare variant: the FileHeader signature without a surrounding
		// compound container.
		return BinaryCompound, nil
	default:
		return Unknown, hwperr.New(hwperr.KindUnknownFormat, "")
	}
}
