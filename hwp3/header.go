// Package hwp3 parses the legacy, pre-OLE2 HWP 3.x binary format: a fixed
// 128-byte header followed by an in-band control-byte text stream,
// optionally zlib-compressed. Grounded on the corresponding original
// source files.
package hwp3

import (
	"strings"

	"github.com/iyulab/go-unhwp/hwperr"
)

const headerSize = 128
const signaturePrefix = "HWP Document File V"

// Header is the decoded 128-byte legacy file header.
type Header struct {
	VersionString string
	Compressed    bool
	Encrypted     bool
	BodyOffset    uint32
	BodySize      uint32
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// ParseHeader decodes the 128-byte legacy header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, hwperr.New(hwperr.KindInvalidData, "legacy header too short")
	}
	if !strings.HasPrefix(string(data[:len(signaturePrefix)]), signaturePrefix) {
		return Header{}, hwperr.New(hwperr.KindUnknownFormat, "bad legacy signature")
	}

	version := strings.TrimRight(string(data[len(signaturePrefix):30]), "\x00 ")
	flags := data[30]
	compressed := flags&0x1 != 0
	encrypted := flags&0x2 != 0

	return Header{
		VersionString: version,
		Compressed:    compressed,
		Encrypted:     encrypted,
		BodyOffset:    le32(data[96:100]),
		BodySize:      le32(data[100:104]),
	}, nil
}
