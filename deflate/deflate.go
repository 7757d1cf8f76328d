// Package deflate decompresses the stream payloads HWP containers wrap
// their record data in. HWP 5.x (BinaryCompound) and HWPX both use raw
// DEFLATE with no zlib or gzip wrapper; the legacy HWP 3.x format wraps
// its body in a zlib stream instead. Both paths are exposed here so C10
// and C2/C13 each call the one that matches their container.
package deflate

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/iyulab/go-unhwp/hwperr"
)

// RawInflate decompresses a raw DEFLATE stream (no header/trailer), the
// format used by HWP 5.x's compressed DocInfo/BodyText streams. HWPX's
// member files are already handled by the archive/zip reader and never
// passed through here.
func RawInflate(data []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(data))
	defer fr.Close()

	out, err := io.ReadAll(fr)
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindDecompression, "raw deflate", err)
	}
	return out, nil
}

// ZlibInflate decompresses a zlib-wrapped stream, the format the legacy
// HWP 3.x parser uses for its compressed body.
func ZlibInflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindDecompression, "zlib header", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, hwperr.Wrap(hwperr.KindDecompression, "zlib body", err)
	}
	return out, nil
}
