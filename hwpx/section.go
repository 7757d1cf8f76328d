// section.go parses Contents/section<N>.xml, the HWPX body content
// stream, using encoding/xml's Decoder.Token() pull-parser — the Go
// ecosystem's idiomatic analogue of the grounding source's streaming XML
// reader. Elements are matched by local name only, ignoring namespace
// prefixes, since HWPX documents vary prefix conventions across
// producers.
package hwpx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/iyulab/go-unhwp/hwperr"
	"github.com/iyulab/go-unhwp/model"
	"github.com/iyulab/go-unhwp/style"
)

// ParseSection decodes one section<N>.xml document into a model.Section.
func ParseSection(xmlData []byte, index int, registry *style.Registry) (model.Section, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlData))
	section := model.Section{Index: index}

	p := &sectionParser{dec: dec, registry: registry}
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && localName(se.Name) == "p" {
			para, tables, err := p.parseParagraph(se)
			if err != nil {
				return section, err
			}
			section.Content = append(section.Content, model.Block{Kind: model.BlockParagraph, Paragraph: para})
			for _, t := range tables {
				section.Content = append(section.Content, model.Block{Kind: model.BlockTable, Table: t})
			}
		}
	}

	return section, nil
}

type sectionParser struct {
	dec      *xml.Decoder
	registry *style.Registry
}

func localName(n xml.Name) string { return n.Local }

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// parseParagraph consumes everything up to the matching </p>, returning
// the paragraph and any tables found nested in its runs/ctrls — those are
// hoisted to become sibling blocks immediately following the paragraph.
func (p *sectionParser) parseParagraph(start xml.StartElement) (model.Paragraph, []model.Table, error) {
	para := model.Paragraph{Style: p.paragraphStyleFromAttrs(start)}
	var hoistedTables []model.Table
	var currentRunStyle style.TextStyle

	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return para, hoistedTables, nil
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "run":
				currentRunStyle = p.charStyleFromAttrs(t)
			case "t":
				text, err := p.readCharData()
				if err != nil {
					return para, hoistedTables, err
				}
				if text != "" {
					para.Content = append(para.Content, model.InlineContent{
						Kind: model.InlineText, Text: text, Style: currentRunStyle,
					})
				}
			case "lineSeg", "linesegarray":
				if err := p.skipSubtree(); err != nil {
					return para, hoistedTables, err
				}
			case "ctrl":
				content, tables, err := p.parseCtrl()
				if err != nil {
					return para, hoistedTables, err
				}
				para.Content = append(para.Content, content...)
				hoistedTables = append(hoistedTables, tables...)
			case "tbl":
				table, err := p.parseTable()
				if err != nil {
					return para, hoistedTables, err
				}
				hoistedTables = append(hoistedTables, table)
			default:
				depth++
			}

		case xml.EndElement:
			if localName(t.Name) == "p" && depth == 0 {
				return para, hoistedTables, nil
			}
			if depth > 0 {
				depth--
			}
		}
	}
}

// parseCtrl consumes a <ctrl>...</ctrl> subtree, dispatching on its
// content: an embedded picture, equation, footnote/endnote, or table.
// Field-control text that is neither of those is dropped: only text
// inside <t> elements ever contributes, and field controls carry none of
// the <t> elements this walk recognizes.
func (p *sectionParser) parseCtrl() ([]model.InlineContent, []model.Table, error) {
	var content []model.InlineContent
	var tables []model.Table

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return content, tables, nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "pic":
				img, err := p.parsePic(t)
				if err != nil {
					return content, tables, err
				}
				content = append(content, img)
			case "eqEdit", "equation":
				eq, err := p.parseEquation()
				if err != nil {
					return content, tables, err
				}
				content = append(content, eq)
			case "fn", "footnote", "en", "endnote":
				note, err := p.parseNote()
				if err != nil {
					return content, tables, err
				}
				if note.Footnote != "" {
					content = append(content, note)
				}
			case "tbl":
				table, err := p.parseTable()
				if err != nil {
					return content, tables, err
				}
				tables = append(tables, table)
			}
		case xml.EndElement:
			if localName(t.Name) == "ctrl" {
				return content, tables, nil
			}
		}
	}
}

func (p *sectionParser) parsePic(start xml.StartElement) (model.InlineContent, error) {
	img := model.InlineContent{Kind: model.InlineImage}
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return img, nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if localName(t.Name) == "img" {
				if id, ok := attr(t, "binaryItemIDRef"); ok {
					img.ImageID = id
				}
			} else {
				depth++
			}
		case xml.EndElement:
			if localName(t.Name) == "pic" && depth == 0 {
				return img, nil
			}
			if depth > 0 {
				depth--
			}
		}
	}
}

func (p *sectionParser) parseEquation() (model.InlineContent, error) {
	text, err := p.readUntilEndAnyText("eqEdit", "equation")
	return model.InlineContent{Kind: model.InlineEquation, Script: text}, err
}

func (p *sectionParser) parseNote() (model.InlineContent, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if localName(t.Name) == "t" {
				text, _ := p.readCharData()
				if text != "" {
					b.WriteString(text)
				}
			} else {
				depth++
			}
		case xml.EndElement:
			name := localName(t.Name)
			if (name == "fn" || name == "footnote" || name == "en" || name == "endnote") && depth == 0 {
				return model.InlineContent{Kind: model.InlineFootnote, Footnote: b.String()}, nil
			}
			if depth > 0 {
				depth--
			}
		}
	}
	return model.InlineContent{Kind: model.InlineFootnote, Footnote: b.String()}, nil
}

func (p *sectionParser) parseTable() (model.Table, error) {
	var table model.Table
	depth := 0
	var curRow *model.TableRow

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return table, nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "tr":
				table.Rows = append(table.Rows, model.TableRow{})
				curRow = &table.Rows[len(table.Rows)-1]
			case "tc":
				cell, err := p.parseCell(t)
				if err != nil {
					return table, err
				}
				if curRow != nil {
					curRow.Cells = append(curRow.Cells, cell)
				}
			default:
				depth++
			}
		case xml.EndElement:
			if localName(t.Name) == "tbl" && depth == 0 {
				if len(table.Rows) > 0 {
					table.HasHeaderRow = true
					table.Rows[0].IsHeader = true
				}
				return table, nil
			}
			if depth > 0 {
				depth--
			}
		}
	}
}

func (p *sectionParser) parseCell(start xml.StartElement) (model.TableCell, error) {
	cell := model.TableCell{RowSpan: 1, ColSpan: 1}
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return cell, nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch localName(t.Name) {
			case "cellSpan":
				if v, ok := attr(t, "colSpan"); ok {
					if n, err := strconv.Atoi(v); err == nil && n > 0 {
						cell.ColSpan = n
					}
				}
				if v, ok := attr(t, "rowSpan"); ok {
					if n, err := strconv.Atoi(v); err == nil && n > 0 {
						cell.RowSpan = n
					}
				}
			case "p":
				para, tables, err := p.parseParagraph(t)
				if err != nil {
					return cell, err
				}
				cell.Content = append(cell.Content, para)
				_ = tables // nested tables inside a cell are not hoisted further
			default:
				depth++
			}
		case xml.EndElement:
			if localName(t.Name) == "tc" && depth == 0 {
				return cell, nil
			}
			if depth > 0 {
				depth--
			}
		}
	}
}

func (p *sectionParser) readCharData() (string, error) {
	var b strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return b.String(), err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if localName(t.Name) == "t" {
				return b.String(), nil
			}
		}
	}
}

// readUntilEndAnyText concatenates every <t> element's text found before
// the matching end tag of any of the given element names.
func (p *sectionParser) readUntilEndAnyText(names ...string) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return b.String(), nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if localName(t.Name) == "t" {
				text, _ := p.readCharData()
				b.WriteString(text)
			} else {
				depth++
			}
		case xml.EndElement:
			name := localName(t.Name)
			for _, n := range names {
				if name == n && depth == 0 {
					return b.String(), nil
				}
			}
			if depth > 0 {
				depth--
			}
		}
	}
}

func (p *sectionParser) skipSubtree() error {
	depth := 1
	for depth > 0 {
		tok, err := p.dec.Token()
		if err != nil {
			return hwperr.Wrap(hwperr.KindXMLParse, "skipping subtree", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

func (p *sectionParser) paragraphStyleFromAttrs(se xml.StartElement) style.ParagraphStyle {
	var s style.ParagraphStyle
	if ref, ok := attr(se, "paraPrIDRef"); ok {
		if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
			if resolved, found := p.registry.ParaStyle(uint32(id)); found {
				s = resolved
			}
		}
	}
	return s
}

func (p *sectionParser) charStyleFromAttrs(se xml.StartElement) style.TextStyle {
	var s style.TextStyle
	if ref, ok := attr(se, "charPrIDRef"); ok {
		if id, err := strconv.ParseUint(ref, 10, 32); err == nil {
			if resolved, found := p.registry.CharStyle(uint32(id)); found {
				s = resolved
			}
		}
	}
	return s
}
