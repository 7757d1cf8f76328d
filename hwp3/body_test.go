package hwp3

import (
	"testing"

	"github.com/iyulab/go-unhwp/options"
)

func TestParseDecodesPlainAsciiParagraphs(t *testing.T) {
	body := []byte("Hello" + "\x0D" + "World" + "\x0D")
	data := append(buildLegacyHeader("3.0.0.0", 0, 0, 0), body...)

	doc, err := Parse(data, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected a single implicit section, got %d", len(doc.Sections))
	}
	if len(doc.Sections[0].Content) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Sections[0].Content))
	}
	if got := doc.Sections[0].Content[0].Paragraph.PlainText(); got != "Hello" {
		t.Fatalf("unexpected first paragraph text: %q", got)
	}
	if got := doc.Sections[0].Content[1].Paragraph.PlainText(); got != "World" {
		t.Fatalf("unexpected second paragraph text: %q", got)
	}
}

func TestParseRejectsEncryptedLegacyDocument(t *testing.T) {
	data := buildLegacyHeader("3.0.0.0", 0x2, 0, 0)
	if _, err := Parse(data, options.Default()); err == nil {
		t.Fatalf("expected an error for an encrypted legacy document")
	}
}

func TestParseToggleStylesOnControlBytes(t *testing.T) {
	body := []byte{}
	body = append(body, 0x1B, toggleBold)
	body = append(body, []byte("Bold")...)
	body = append(body, 0x1B, toggleBold)
	body = append(body, []byte("Plain")...)
	body = append(body, byteParaEnd)

	section, err := decodeBody(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(section.Content) != 1 {
		t.Fatalf("expected a single paragraph, got %d", len(section.Content))
	}
	runs := section.Content[0].Paragraph.Content
	if len(runs) != 2 {
		t.Fatalf("expected 2 text runs, got %d", len(runs))
	}
	if runs[0].Text != "Bold" || !runs[0].Style.Bold {
		t.Fatalf("expected first run to be bold 'Bold', got %+v", runs[0])
	}
	if runs[1].Text != "Plain" || runs[1].Style.Bold {
		t.Fatalf("expected second run to be non-bold 'Plain', got %+v", runs[1])
	}
}

func TestParseDecodesTwoByteCP949Sequence(t *testing.T) {
	// 0xB0 0xA1 is the CP949/EUC-KR encoding of the Hangul syllable "가".
	body := []byte{0xB0, 0xA1, byteParaEnd}

	section, err := decodeBody(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(section.Content) != 1 {
		t.Fatalf("expected a single paragraph, got %d", len(section.Content))
	}
	got := section.Content[0].Paragraph.PlainText()
	if got != "가" {
		t.Fatalf("expected decoded Hangul syllable 가, got %q", got)
	}
}

func TestParseTabAndHardSpaceControlBytes(t *testing.T) {
	body := []byte{'a', byteTab, byteHardSpace, 'b', byteParaEnd}
	section, err := decodeBody(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := section.Content[0].Paragraph.PlainText()
	if got != "a\t b" {
		t.Fatalf("expected %q, got %q", "a\t b", got)
	}
}
