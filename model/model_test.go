package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocumentAssignsStableID(t *testing.T) {
	a := NewDocument()
	b := NewDocument()

	require.NotEmpty(t, a.DocumentID)
	require.NotEmpty(t, b.DocumentID)
	assert.NotEqual(t, a.DocumentID, b.DocumentID)
	require.NotNil(t, a.Styles)
	require.NotNil(t, a.Resources)
}

func TestParagraphPlainTextJoinsTextAndLineBreaks(t *testing.T) {
	p := Paragraph{Content: []InlineContent{
		{Kind: InlineText, Text: "hello "},
		{Kind: InlineLineBreak},
		{Kind: InlineText, Text: "world"},
		{Kind: InlineImage, ImageID: "BIN0001.jpg"},
	}}

	assert.Equal(t, "hello \nworld", p.PlainText())
}

func TestParagraphHasTextContent(t *testing.T) {
	withText := Paragraph{Content: []InlineContent{{Kind: InlineText, Text: "  hi  "}}}
	assert.True(t, withText.HasTextContent())

	blank := Paragraph{Content: []InlineContent{{Kind: InlineText, Text: "   "}}}
	assert.False(t, blank.HasTextContent())

	noRuns := Paragraph{}
	assert.False(t, noRuns.HasTextContent())
}

func TestParagraphIsImageOnly(t *testing.T) {
	imageOnly := Paragraph{Content: []InlineContent{
		{Kind: InlineImage, ImageID: "BIN0001.jpg"},
	}}
	assert.True(t, imageOnly.IsImageOnly())

	mixed := Paragraph{Content: []InlineContent{
		{Kind: InlineImage, ImageID: "BIN0001.jpg"},
		{Kind: InlineText, Text: "caption"},
	}}
	assert.False(t, mixed.IsImageOnly())

	empty := Paragraph{}
	assert.False(t, empty.IsImageOnly())
}

func TestDocumentParagraphCountIncludesTableCells(t *testing.T) {
	doc := NewDocument()
	doc.Sections = []Section{
		{
			Index: 0,
			Content: []Block{
				{Kind: BlockParagraph, Paragraph: Paragraph{}},
				{Kind: BlockTable, Table: Table{
					Rows: []TableRow{
						{Cells: []TableCell{
							{Content: []Paragraph{{}, {}}},
							{Content: []Paragraph{{}}},
						}},
					},
				}},
			},
		},
	}

	assert.Equal(t, 4, doc.ParagraphCount())
}

func TestDocumentPlainTextSkipsTableCellContent(t *testing.T) {
	doc := NewDocument()
	doc.Sections = []Section{
		{Content: []Block{
			{Kind: BlockParagraph, Paragraph: Paragraph{Content: []InlineContent{
				{Kind: InlineText, Text: "top level"},
			}}},
			{Kind: BlockTable, Table: Table{Rows: []TableRow{
				{Cells: []TableCell{{Content: []Paragraph{{Content: []InlineContent{
					{Kind: InlineText, Text: "cell text"},
				}}}}}},
			}}},
		}},
	}

	text := doc.PlainText()
	assert.Contains(t, text, "top level")
	assert.NotContains(t, text, "cell text")
}

func TestDocumentParagraphsIncludesTableCellParagraphs(t *testing.T) {
	doc := NewDocument()
	doc.Sections = []Section{
		{Content: []Block{
			{Kind: BlockParagraph, Paragraph: Paragraph{Content: []InlineContent{{Kind: InlineText, Text: "a"}}}},
			{Kind: BlockTable, Table: Table{Rows: []TableRow{
				{Cells: []TableCell{{Content: []Paragraph{
					{Content: []InlineContent{{Kind: InlineText, Text: "cell"}}},
				}}}},
			}}},
			{Kind: BlockParagraph, Paragraph: Paragraph{Content: []InlineContent{{Kind: InlineText, Text: "b"}}}},
		}},
	}

	paras := doc.Paragraphs()
	require.Len(t, paras, 3)
	assert.Equal(t, "a", paras[0].PlainText())
	assert.Equal(t, "cell", paras[1].PlainText())
	assert.Equal(t, "b", paras[2].PlainText())
	assert.Equal(t, doc.ParagraphCount(), len(paras))
}
