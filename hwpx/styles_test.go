package hwpx

import (
	"testing"

	"github.com/iyulab/go-unhwp/style"
)

func TestParseStylesDecodesFullCharShapeElement(t *testing.T) {
	xmlData := []byte(`<styles>
		<charShape id="3">
			<bold val="1"/>
			<fontRef face="Gungsuh"/>
			<sz val="1200"/>
			<color val="FF0000"/>
		</charShape>
	</styles>`)

	registry := style.NewRegistry()
	if err := ParseStyles(xmlData, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, ok := registry.CharStyle(3)
	if !ok {
		t.Fatalf("expected charShape id 3 to be registered")
	}
	if !cs.Bold {
		t.Fatalf("expected bold to be set")
	}
	if cs.FontName != "Gungsuh" {
		t.Fatalf("unexpected font name: %q", cs.FontName)
	}
	if cs.FontSize != 12 {
		t.Fatalf("unexpected font size: %v", cs.FontSize)
	}
	if cs.Color != "#FF0000" {
		t.Fatalf("unexpected color: %q", cs.Color)
	}
}

func TestParseStylesRecognizesAbbreviatedCharPrElement(t *testing.T) {
	xmlData := []byte(`<styles>
		<charPr id="1">
			<italic val="1"/>
			<underline type="single"/>
		</charPr>
	</styles>`)

	registry := style.NewRegistry()
	if err := ParseStyles(xmlData, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, ok := registry.CharStyle(1)
	if !ok {
		t.Fatalf("expected charPr id 1 to be registered")
	}
	if !cs.Italic || !cs.Underline {
		t.Fatalf("expected italic and underline set, got %+v", cs)
	}
}

func TestParseStylesDecodesParaShapeAlignmentAndHeading(t *testing.T) {
	xmlData := []byte(`<styles>
		<paraShape id="2">
			<align val="center"/>
			<outlineLevel val="3"/>
		</paraShape>
	</styles>`)

	registry := style.NewRegistry()
	if err := ParseStyles(xmlData, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ps, ok := registry.ParaStyle(2)
	if !ok {
		t.Fatalf("expected paraShape id 2 to be registered")
	}
	if ps.Alignment != style.AlignCenter {
		t.Fatalf("expected center alignment, got %v", ps.Alignment)
	}
	if ps.HeadingLevel != 3 {
		t.Fatalf("expected heading level 3, got %d", ps.HeadingLevel)
	}
}

func TestParseStylesClampsOutlineLevelToSix(t *testing.T) {
	xmlData := []byte(`<styles><paraPr id="0"><heading val="9"/></paraPr></styles>`)

	registry := style.NewRegistry()
	if err := ParseStyles(xmlData, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ps, _ := registry.ParaStyle(0)
	if ps.HeadingLevel != 6 {
		t.Fatalf("expected heading level clamped to 6, got %d", ps.HeadingLevel)
	}
}

func TestParseStylesDefaultsBoldToTrueWhenValAttrMissing(t *testing.T) {
	xmlData := []byte(`<styles><charShape id="0"><bold/></charShape></styles>`)

	registry := style.NewRegistry()
	if err := ParseStyles(xmlData, registry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cs, _ := registry.CharStyle(0)
	if !cs.Bold {
		t.Fatalf("expected bold to default to true when val attribute is absent")
	}
}

func TestNormalizeColorAddsHashPrefixToBareHex(t *testing.T) {
	if got := normalizeColor("00FF00"); got != "#00FF00" {
		t.Fatalf("expected #00FF00, got %q", got)
	}
	if got := normalizeColor("#112233"); got != "#112233" {
		t.Fatalf("expected unchanged, got %q", got)
	}
}

func TestParseAlignmentFallsBackToLeftForUnknownValue(t *testing.T) {
	if got := parseAlignment("nonsense"); got != style.AlignLeft {
		t.Fatalf("expected AlignLeft fallback, got %v", got)
	}
	if got := parseAlignment("3"); got != style.AlignJustify {
		t.Fatalf("expected AlignJustify for numeric code 3, got %v", got)
	}
}
