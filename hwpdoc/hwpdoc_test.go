package hwpdoc

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/iyulab/go-unhwp/hwperr"
)

func TestParseBytesDetectsXMLZipFormat(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("Contents/section0.xml")
	w.Write([]byte(`<section><p><run><t>hello</t></run></p></section>`))
	w, _ = zw.Create("mimetype")
	w.Write([]byte("application/hwp+zip"))
	zw.Close()

	doc, err := ParseBytes(buf.Bytes(), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
}

func TestParseBytesRejectsUnknownFormat(t *testing.T) {
	_, err := ParseBytes([]byte("not a recognized hwp container"), DefaultOptions())
	if err == nil {
		t.Fatalf("expected an error for an unrecognized format")
	}
	if !hwperr.Is(err, hwperr.KindUnknownFormat) {
		t.Fatalf("expected KindUnknownFormat, got %v", err)
	}
}

func TestOpenWithOptionsReturnsErrorForMissingFile(t *testing.T) {
	if _, err := OpenWithOptions("/nonexistent/path/to/file.hwp", DefaultOptions()); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestByteReaderAtReturnsEOFPastEnd(t *testing.T) {
	r := newByteReaderAt([]byte("abcdef"))
	buf := make([]byte, 4)
	n, err := r.ReadAt(buf, 10)
	if err != io.EOF {
		t.Fatalf("expected io.EOF reading past the end, got %v (n=%d)", err, n)
	}
}

func TestByteReaderAtPartialReadReturnsEOF(t *testing.T) {
	r := newByteReaderAt([]byte("abcdef"))
	buf := make([]byte, 4)
	n, err := r.ReadAt(buf, 4)
	if err != io.EOF {
		t.Fatalf("expected io.EOF for a short final read, got %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 bytes read, got %d", n)
	}
}

func TestByteReaderAtFullReadReturnsNoError(t *testing.T) {
	r := newByteReaderAt([]byte("abcdef"))
	buf := make([]byte, 3)
	n, err := r.ReadAt(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 || string(buf) != "abc" {
		t.Fatalf("unexpected read result: n=%d data=%q", n, buf)
	}
}
