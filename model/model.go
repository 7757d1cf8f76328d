// Package model defines the unified document tree every HWP container
// format (BinaryCompound, XmlZip, LegacyBinary) is parsed into. It mirrors
// the teacher's plain-struct, JSON-serializable metadata style
// (metadata.DocumentMetadata) generalized to a full paragraph/table tree.
package model

import (
	"strings"

	"github.com/google/uuid"

	"github.com/iyulab/go-unhwp/style"
)

// InlineKind tags the variant held by an InlineContent value.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineLineBreak
	InlineImage
	InlineEquation
	InlineFootnote
	InlineLink
)

// InlineContent is the tagged union of everything that can appear inside a
// paragraph's run sequence.
type InlineContent struct {
	Kind InlineKind

	// InlineText
	Text  string
	Style style.TextStyle

	// InlineImage
	ImageID     string
	AltText     string
	ImageWidth  int
	ImageHeight int

	// InlineEquation
	Script string
	LaTeX  string

	// InlineFootnote
	Footnote string

	// InlineLink
	LinkText string
	LinkURL  string
}

// Paragraph is a styled sequence of inline content.
type Paragraph struct {
	Style   style.ParagraphStyle
	Content []InlineContent
}

// PlainText concatenates every text run in the paragraph, ignoring
// formatting, images, and equations.
func (p *Paragraph) PlainText() string {
	var b strings.Builder
	for _, c := range p.Content {
		switch c.Kind {
		case InlineText:
			b.WriteString(c.Text)
		case InlineLineBreak:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// HasTextContent reports whether the paragraph carries any non-empty text
// run.
func (p *Paragraph) HasTextContent() bool {
	for _, c := range p.Content {
		if c.Kind == InlineText && strings.TrimSpace(c.Text) != "" {
			return true
		}
	}
	return false
}

// IsImageOnly reports whether the paragraph's only content is image
// references (no text runs at all).
func (p *Paragraph) IsImageOnly() bool {
	sawImage := false
	for _, c := range p.Content {
		switch c.Kind {
		case InlineImage:
			sawImage = true
		case InlineText:
			if strings.TrimSpace(c.Text) != "" {
				return false
			}
		}
	}
	return sawImage
}

// TableCell holds one cell's nested paragraph content and span.
type TableCell struct {
	Content         []Paragraph
	RowSpan         int
	ColSpan         int
	Alignment       style.Alignment
	VerticalAlign   string // "top"|"center"|"bottom"
	BackgroundColor string
}

// TableRow is a row of cells.
type TableRow struct {
	Cells    []TableCell
	IsHeader bool
}

// Table is a grid of cells with optional column-width hints.
type Table struct {
	Rows         []TableRow
	ColumnWidths []int
	HasHeaderRow bool
}

// BlockKind tags the variant held by a Block value.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockTable
)

// Block is the tagged union of top-level section content: a paragraph or
// a table.
type Block struct {
	Kind      BlockKind
	Paragraph Paragraph
	Table     Table
}

// Section is one BodyText/SectionN (binary) or Contents/sectionN.xml
// (HWPX), in document order.
type Section struct {
	Index   int
	Content []Block
	Header  []Paragraph
	Footer  []Paragraph
}

// ResourceKind classifies an embedded binary resource.
type ResourceKind int

const (
	ResourceImage ResourceKind = iota
	ResourceOLEObject
	ResourceOther
)

// Resource is an embedded binary payload (image, OLE object, or other),
// keyed by filename in Document.Resources.
type Resource struct {
	Kind     ResourceKind
	Filename string
	MimeType string
	Data     []byte
}

// Metadata is document-level descriptive information. Every field except
// Keywords and Restricted is optional and left as the zero value when not
// present in the source container.
type Metadata struct {
	Title         string
	Author        string
	Subject       string
	Keywords      []string
	Created       string // RFC3339, empty if unknown
	Modified      string
	CreatorApp    string
	FormatVersion string
	PreviewText   string
	Restricted    bool
}

// Document is the root of the unified model every parser produces.
type Document struct {
	// DocumentID is a synthetic identifier assigned at parse time, not
	// read from the source container — HWP has no native per-document
	// GUID, so callers that need to correlate a parsed Document across a
	// pipeline (cache keys, log correlation) get a stable one for free.
	DocumentID string
	Metadata   Metadata
	Sections   []Section
	Styles     *style.Registry
	Resources  map[string]Resource
}

// NewDocument returns an empty Document ready to be populated by a parser.
func NewDocument() *Document {
	return &Document{
		DocumentID: uuid.NewString(),
		Styles:     style.NewRegistry(),
		Resources:  make(map[string]Resource),
	}
}

// ParagraphCount returns the total number of paragraphs across every
// section, including ones nested inside table cells.
func (d *Document) ParagraphCount() int {
	count := 0
	for _, s := range d.Sections {
		for _, b := range s.Content {
			switch b.Kind {
			case BlockParagraph:
				count++
			case BlockTable:
				for _, row := range b.Table.Rows {
					for _, cell := range row.Cells {
						count += len(cell.Content)
					}
				}
			}
		}
	}
	return count
}

// Paragraphs yields every paragraph in document order, descending into
// table cells the same way ParagraphCount does, so that len(Paragraphs())
// always equals ParagraphCount().
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for si := range d.Sections {
		for bi := range d.Sections[si].Content {
			blk := &d.Sections[si].Content[bi]
			switch blk.Kind {
			case BlockParagraph:
				out = append(out, &blk.Paragraph)
			case BlockTable:
				for ri := range blk.Table.Rows {
					for ci := range blk.Table.Rows[ri].Cells {
						cell := &blk.Table.Rows[ri].Cells[ci]
						for pi := range cell.Content {
							out = append(out, &cell.Content[pi])
						}
					}
				}
			}
		}
	}
	return out
}

// PlainText concatenates the plain text of every top-level paragraph in
// the document, writing a newline after each one. Table blocks (and the
// paragraphs inside their cells) are skipped.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, s := range d.Sections {
		for _, blk := range s.Content {
			if blk.Kind == BlockParagraph {
				b.WriteString(blk.Paragraph.PlainText())
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
