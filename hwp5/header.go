// Package hwp5 parses the BinaryCompound (HWP 5.x) container: its
// FileHeader, DocInfo, BodyText sections, and embedded BinData resources,
// orchestrated in the same strict order the original implementation uses
// (encryption check, then DocInfo, then sections in ascending index, then
// resources).
package hwp5

import (
	"fmt"

	"github.com/iyulab/go-unhwp/hwperr"
)

// Version is the four-part HWP binary format version (major.minor.build.revision).
type Version struct {
	Major, Minor, Build, Revision byte
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// AtLeast reports whether v is the same or a later version than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	if v.Build != other.Build {
		return v.Build > other.Build
	}
	return v.Revision >= other.Revision
}

// Properties is the FileHeader's feature-flag bitfield (spec.md §4.13
// step 3), one bool per named bit.
type Properties struct {
	Compressed       bool
	Encrypted        bool
	Distribution     bool
	Script           bool
	DRM              bool
	XMLTemplate      bool
	History          bool
	Signature        bool
	PublicKeyEncrypt bool
	SignatureReserved bool
	CertificateDRM   bool
	CCL              bool
	Mobile           bool
	Privacy          bool
	TrackChanges     bool
	KOGL             bool
	VideoControl     bool
	OrderField       bool
}

// FileHeader is the decoded 256-byte FileHeader stream.
type FileHeader struct {
	Version    Version
	Properties Properties
}

const fileHeaderSignature = "HWP Document File"

// ParseFileHeader decodes the 256-byte FileHeader stream.
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < 40 {
		return FileHeader{}, hwperr.New(hwperr.KindInvalidData, "FileHeader stream too short")
	}
	if string(data[0:len(fileHeaderSignature)]) != fileHeaderSignature {
		return FileHeader{}, hwperr.New(hwperr.KindUnknownFormat, "bad FileHeader signature")
	}

	version := Version{
		Revision: data[32],
		Build:    data[33],
		Minor:    data[34],
		Major:    data[35],
	}

	props := uint32(data[36]) | uint32(data[37])<<8 | uint32(data[38])<<16 | uint32(data[39])<<24
	bit := func(n uint) bool { return props&(1<<n) != 0 }

	return FileHeader{
		Version: version,
		Properties: Properties{
			Compressed:        bit(0),
			Encrypted:         bit(1),
			Distribution:      bit(2),
			Script:            bit(3),
			DRM:               bit(4),
			XMLTemplate:       bit(5),
			History:           bit(6),
			Signature:         bit(7),
			PublicKeyEncrypt:  bit(8),
			SignatureReserved: bit(9),
			CertificateDRM:    bit(10),
			CCL:               bit(11),
			Mobile:            bit(12),
			Privacy:           bit(13),
			TrackChanges:      bit(14),
			KOGL:              bit(15),
			VideoControl:      bit(16),
			OrderField:        bit(17),
		},
	}, nil
}
