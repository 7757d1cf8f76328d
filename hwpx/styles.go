// styles.go parses Contents/header.xml's character and paragraph style
// definitions, recognizing both full HWPML element names (charShape,
// paraShape) and the abbreviated forms (charPr, paraPr) producers
// commonly emit, grounded directly on the corresponding original source
// walk.
package hwpx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/iyulab/go-unhwp/style"
)

// ParseStyles decodes header.xml's style definitions into registry.
func ParseStyles(xmlData []byte, registry *style.Registry) error {
	dec := xml.NewDecoder(bytes.NewReader(xmlData))

	var curCharID uint32
	var curChar style.TextStyle
	var curParaID uint32
	var curPara style.ParagraphStyle
	inChar, inPara := false, false

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := localName(t.Name)
			switch {
			case isCharEntry(name):
				curCharID = idAttr(t)
				curChar = style.TextStyle{}
				inChar = true
			case isParaEntry(name):
				curParaID = idAttr(t)
				curPara = style.ParagraphStyle{}
				inPara = true
			case inChar:
				applyCharElement(name, t, &curChar)
			case inPara:
				applyParaElement(name, t, &curPara)
			}

		case xml.EndElement:
			name := localName(t.Name)
			switch {
			case isCharEntry(name):
				registry.RegisterCharStyle(curCharID, curChar)
				inChar = false
			case isParaEntry(name):
				registry.RegisterParaStyle(curParaID, curPara)
				inPara = false
			}
		}
	}
	return nil
}

func isCharEntry(name string) bool {
	return name == "charShape" || name == "charPr" || name == "charProperties"
}

func isParaEntry(name string) bool {
	return name == "paraShape" || name == "paraPr" || name == "paraProperties"
}

func idAttr(se xml.StartElement) uint32 {
	if v, ok := attr(se, "id"); ok {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint32(n)
		}
	}
	return 0
}

func boolAttr(se xml.StartElement, name string) (bool, bool) {
	v, ok := attr(se, name)
	if !ok {
		return false, false
	}
	return v == "1" || strings.EqualFold(v, "true"), true
}

func floatAttr(se xml.StartElement, names ...string) (float64, bool) {
	for _, name := range names {
		if v, ok := attr(se, name); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func intAttr(se xml.StartElement, names ...string) (int, bool) {
	for _, name := range names {
		if v, ok := attr(se, name); ok {
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func stringAttr(se xml.StartElement, names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := attr(se, name); ok {
			return v, true
		}
	}
	return "", false
}

func applyCharElement(name string, se xml.StartElement, s *style.TextStyle) {
	switch name {
	case "bold":
		s.Bold = boolAttrOrDefaultTrue(se, "val")
	case "italic":
		s.Italic = boolAttrOrDefaultTrue(se, "val")
	case "underline":
		utype, _ := stringAttr(se, "type")
		s.Underline = utype == "" || (utype != "none" && utype != "0")
	case "strikeout", "strikethrough":
		s.Strikethrough = true
	case "supscript", "superscript":
		s.Superscript = true
	case "subscript":
		s.Subscript = true
	case "fontRef", "font", "fontface":
		if face, ok := stringAttr(se, "face", "hangul", "latin"); ok {
			s.FontName = face
		}
	case "sz", "size", "height":
		if size, ok := floatAttr(se, "val", "height"); ok {
			s.FontSize = size / 100.0
		}
	case "color", "textColor":
		if c, ok := stringAttr(se, "val", "textColor"); ok {
			s.Color = normalizeColor(c)
		}
	case "highlight", "shd", "shading":
		if c, ok := stringAttr(se, "val", "backColor"); ok {
			s.BackgroundColor = normalizeColor(c)
		}
	}
}

func boolAttrOrDefaultTrue(se xml.StartElement, name string) bool {
	v, ok := boolAttr(se, name)
	if !ok {
		return true
	}
	return v
}

func normalizeColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	if len(c) == 6 || len(c) == 8 {
		return "#" + c
	}
	return c
}

func applyParaElement(name string, se xml.StartElement, s *style.ParagraphStyle) {
	switch name {
	case "align", "alignment":
		if v, ok := stringAttr(se, "val", "horizontal"); ok {
			s.Alignment = parseAlignment(v)
		}
	case "outlineLevel", "heading", "level":
		if v, ok := intAttr(se, "val", "level"); ok && v > 0 {
			if v > 6 {
				v = 6
			}
			s.HeadingLevel = v
		}
	case "indent", "margin":
		if v, ok := intAttr(se, "level"); ok {
			s.IndentLevel = maxInt(v, 0)
		} else if v, ok := intAttr(se, "left"); ok {
			s.IndentLevel = maxInt(v/850, 0)
		}
	case "lineSpacing", "spacing", "lnSpc":
		if v, ok := floatAttr(se, "val", "line"); ok {
			s.LineSpacing = v / 100.0
		}
	case "numbering":
		s.List = &style.ListStyle{Kind: style.ListOrdered}
	case "bullet":
		if v, ok := stringAttr(se, "char"); ok && v != "" {
			s.List = &style.ListStyle{Kind: style.ListCustomBullet, Char: []rune(v)[0]}
		} else {
			s.List = &style.ListStyle{Kind: style.ListUnordered}
		}
	}
}

func parseAlignment(v string) style.Alignment {
	switch strings.ToLower(v) {
	case "left", "0":
		return style.AlignLeft
	case "center", "1":
		return style.AlignCenter
	case "right", "2":
		return style.AlignRight
	case "justify", "both", "3":
		return style.AlignJustify
	default:
		return style.AlignLeft
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
