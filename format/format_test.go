package format

import (
	"testing"

	"github.com/iyulab/go-unhwp/hwperr"
)

func TestDetectBinaryCompound(t *testing.T) {
	header := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0, 0, 0, 0}
	f, err := Detect(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != BinaryCompound {
		t.Fatalf("expected BinaryCompound, got %s", f)
	}
}

func TestDetectXMLZip(t *testing.T) {
	header := []byte{0x50, 0x4B, 0x03, 0x04, 0, 0, 0, 0}
	f, err := Detect(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != XMLZip {
		t.Fatalf("expected XMLZip, got %s", f)
	}
}

func TestDetectLegacyBinary(t *testing.T) {
	header := append([]byte("HWP Document File V"), 0, 0, 0)
	f, err := Detect(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != LegacyBinary {
		t.Fatalf("expected LegacyBinary, got %s", f)
	}
}

func TestDetectBareSignatureBinaryCompound(t *testing.T) {
	header := append([]byte("HWP Document File"), 0, 0, 0, 0)
	f, err := Detect(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != BinaryCompound {
		t.Fatalf("expected BinaryCompound for the bare signature variant, got %s", f)
	}
}

func TestDetectUnknownFormat(t *testing.T) {
	header := []byte("not a real hwp file!")
	_, err := Detect(header)
	if !hwperr.Is(err, hwperr.KindUnknownFormat) {
		t.Fatalf("expected KindUnknownFormat, got %v", err)
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	_, err := Detect([]byte{0x50, 0x4B})
	if !hwperr.Is(err, hwperr.KindInvalidData) {
		t.Fatalf("expected KindInvalidData, got %v", err)
	}
}
