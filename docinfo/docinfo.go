// Package docinfo parses the DocInfo record stream of a BinaryCompound
// (HWP 5.x) document, registering every CharShape/ParaShape/FaceName it
// finds into a style.Registry. It is grounded on the same record-cracking
// technique the teacher applies to CHPX/PAPX FKPs: fixed byte offsets,
// manual little-endian reads, bitfield masks.
package docinfo

import (
	"unicode/utf16"

	"github.com/iyulab/go-unhwp/records"
	"github.com/iyulab/go-unhwp/style"
)

// Parse walks a decompressed DocInfo stream and registers every style
// record it contains into registry. It returns the number of BinData
// records encountered, in encounter order, so the caller can pair that
// count against the BinData/ storage listing to resolve picture-index to
// filename.
func Parse(data []byte, registry *style.Registry) (binDataCount int, err error) {
	it := records.NewIterator(data)
	var charIdx, paraIdx uint32

	for {
		rec, ok, err := it.Next()
		if err != nil {
			return binDataCount, err
		}
		if !ok {
			return binDataCount, nil
		}

		switch rec.Tag {
		case records.TagFaceName:
			registry.RegisterFaceName(parseFaceName(rec))
		case records.TagCharShape:
			registry.RegisterCharStyle(charIdx, parseCharShape(rec, registry))
			charIdx++
		case records.TagParaShape:
			registry.RegisterParaStyle(paraIdx, parseParaShape(rec))
			paraIdx++
		case records.TagBinData:
			binDataCount++
		}
	}
}

// parseFaceName decodes a FaceName record: 2 reserved/property bytes,
// followed by a UTF-16LE null-terminated (or length-bound) font name.
func parseFaceName(rec records.Record) string {
	if len(rec.Payload) < 2 {
		return ""
	}
	body := rec.Payload[2:]
	var units []uint16
	for i := 0; i+1 < len(body); i += 2 {
		u := uint16(body[i]) | uint16(body[i+1])<<8
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// parseCharShape decodes a CharShape record per the spec's byte layout:
// face name index (u16 @0-1), font size (i32 @70-73, hundredths of a
// point), properties bitfield (u32 @74-77), text color RGB (@78-80).
func parseCharShape(rec records.Record, registry *style.Registry) style.TextStyle {
	var s style.TextStyle

	if faceIdx, ok := rec.ReadU16(0); ok {
		if name, found := registry.FaceName(faceIdx); found {
			s.FontName = name
		}
	}
	if size, ok := rec.ReadI32(70); ok {
		s.FontSize = float64(size) / 100.0
	}
	if props, ok := rec.ReadU32(74); ok {
		s.Bold = props&(1<<0) != 0
		s.Italic = props&(1<<1) != 0
		s.Underline = props&(1<<2) != 0
		s.Superscript = props&(1<<11) != 0
		s.Subscript = props&(1<<12) != 0
		s.Strikethrough = props&(1<<13) != 0
	}
	if b0, ok0 := rec.ReadU8(78); ok0 {
		if b1, ok1 := rec.ReadU8(79); ok1 {
			if b2, ok2 := rec.ReadU8(80); ok2 {
				s.Color = rgbToHex(b0, b1, b2)
			}
		}
	}
	return s
}

// parseParaShape decodes a ParaShape record per the spec's byte layout.
func parseParaShape(rec records.Record) style.ParagraphStyle {
	var s style.ParagraphStyle

	props1, _ := rec.ReadU32(0)
	alignment := props1 & 0x3
	lineSpacingType := (props1 >> 4) & 0x3

	switch alignment {
	case 0:
		s.Alignment = style.AlignJustify
	case 1:
		s.Alignment = style.AlignLeft
	case 2:
		s.Alignment = style.AlignRight
	case 3:
		s.Alignment = style.AlignCenter
	}

	if v, ok := rec.ReadI32(16); ok {
		s.SpaceBefore = float64(v) * 72.0 / 7200.0
	}
	if v, ok := rec.ReadI32(20); ok {
		s.SpaceAfter = float64(v) * 72.0 / 7200.0
	}
	if raw, ok := rec.ReadI32(24); ok {
		if lineSpacingType == 0 {
			s.LineSpacing = float64(raw) / 100.0
		} else {
			s.LineSpacing = float64(raw) * 72.0 / 7200.0
		}
	}

	if numberingID, ok := rec.ReadU16(30); ok && numberingID > 0 {
		s.List = &style.ListStyle{Kind: style.ListOrdered}
	}

	if props3, ok := rec.ReadU32(50); ok {
		level := int(props3 & 0x7)
		if level > 0 {
			if level > 6 {
				level = 6
			}
			s.HeadingLevel = level
		}
	}

	return s
}

func rgbToHex(r, g, b byte) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 7)
	buf[0] = '#'
	vals := [3]byte{r, g, b}
	for i, v := range vals {
		buf[1+i*2] = hexDigits[v>>4]
		buf[2+i*2] = hexDigits[v&0xF]
	}
	return string(buf)
}

