package hwpx

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/iyulab/go-unhwp/hwperr"
	"github.com/iyulab/go-unhwp/hwpxzip"
	"github.com/iyulab/go-unhwp/options"
)

func buildHWPXZip(t *testing.T, files map[string]string) *hwpxzip.Archive {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	archive, err := hwpxzip.Open(buf.Bytes())
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	return archive
}

func TestParseOrchestratesHeaderManifestAndSections(t *testing.T) {
	archive := buildHWPXZip(t, map[string]string{
		"Contents/header.xml": `<head><charShape id="0"><bold val="1"/></charShape></head>`,
		"Contents/content.hpf": `<package>
			<metadata><dc:title>My Report</dc:title><dc:creator>Jane Doe</dc:creator></metadata>
			<manifest>
				<item id="sec0" href="section0.xml"/>
			</manifest>
			<spine><itemref idref="sec0"/></spine>
		</package>`,
		"Contents/section0.xml": `<section><p><run charPrIDRef="0"><t>Hello</t></run></p></section>`,
	})

	doc, err := Parse(archive, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Metadata.Title != "My Report" {
		t.Fatalf("unexpected title: %q", doc.Metadata.Title)
	}
	if doc.Metadata.Author != "Jane Doe" {
		t.Fatalf("unexpected author: %q", doc.Metadata.Author)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(doc.Sections))
	}
	if got := doc.Sections[0].Content[0].Paragraph.PlainText(); got != "Hello" {
		t.Fatalf("unexpected section text: %q", got)
	}
}

func TestParseFallsBackToLexicographicSectionOrderWithoutManifest(t *testing.T) {
	archive := buildHWPXZip(t, map[string]string{
		"Contents/section1.xml": `<section><p><run><t>Second</t></run></p></section>`,
		"Contents/section0.xml": `<section><p><run><t>First</t></run></p></section>`,
	})

	doc, err := Parse(archive, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(doc.Sections))
	}
	if got := doc.Sections[0].Content[0].Paragraph.PlainText(); got != "First" {
		t.Fatalf("expected section0 first, got %q", got)
	}
	if got := doc.Sections[1].Content[0].Paragraph.PlainText(); got != "Second" {
		t.Fatalf("expected section1 second, got %q", got)
	}
}

func TestParseRejectsDistributionRestrictedDocument(t *testing.T) {
	archive := buildHWPXZip(t, map[string]string{
		"Contents/header.xml": `<head><docOption distribute="true"/></head>`,
	})
	_, err := Parse(archive, options.Default())
	if err == nil {
		t.Fatalf("expected an error for a distribution-restricted document")
	}
	if !hwperr.Is(err, hwperr.KindDistributionRestricted) {
		t.Fatalf("expected KindDistributionRestricted, got %v", err)
	}
}

func TestParseLenientModeSkipsMalformedSection(t *testing.T) {
	archive := buildHWPXZip(t, map[string]string{
		"Contents/section0.xml": `<section><p><run><t>Good</t></run></p></section>`,
		"Contents/section1.xml": `<section><p><run><t>Bad</x></t></run></p></section>`,
	})
	doc, err := Parse(archive, options.Default().WithLenient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("expected the well-formed section to still parse, got %d sections", len(doc.Sections))
	}
}

func TestParseSkipsBinDataExtractionInStructureOnlyMode(t *testing.T) {
	archive := buildHWPXZip(t, map[string]string{
		"Contents/section0.xml": `<section><p><run><t>x</t></run></p></section>`,
		"BinData/BIN0001.jpg":   "\xff\xd8\xff",
	})
	doc, err := Parse(archive, options.Default().WithStructureOnly())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Resources) != 0 {
		t.Fatalf("expected no resources extracted in structure-only mode, got %d", len(doc.Resources))
	}
}

func TestExtractBinDataGuessesMimeTypeFromExtension(t *testing.T) {
	archive := buildHWPXZip(t, map[string]string{
		"BinData/BIN0001.png": "pngdata",
	})
	doc, err := Parse(archive, options.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, ok := doc.Resources["BIN0001.png"]
	if !ok {
		t.Fatalf("expected BIN0001.png resource to be extracted")
	}
	if res.MimeType != "image/png" {
		t.Fatalf("unexpected mime type: %q", res.MimeType)
	}
}

func TestParseHeaderOptionsDetectsDistributeFlag(t *testing.T) {
	distribute, err := parseHeaderOptions(`<head><docOption distribute="1"/></head>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !distribute {
		t.Fatalf("expected distribute flag detected for value \"1\"")
	}

	distribute, err = parseHeaderOptions(`<head><docOption/></head>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if distribute {
		t.Fatalf("did not expect distribute flag without the attribute")
	}
}
