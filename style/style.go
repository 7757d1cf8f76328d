// Package style defines character- and paragraph-level formatting values
// and the ID-keyed registry a document's body-text parser resolves
// CharShape/ParaShape references against. It also holds the picture-index
// to resource-filename map C7 needs to turn an inline GSO control into an
// image reference.
package style

// Alignment is paragraph text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// ListKind distinguishes ordered, unordered, and custom-bullet paragraphs.
type ListKind int

const (
	ListNone ListKind = iota
	ListOrdered
	ListUnordered
	ListCustomBullet
)

// ListStyle describes a paragraph's list membership. Char is only
// meaningful when Kind == ListCustomBullet.
type ListStyle struct {
	Kind ListKind
	Char rune
}

// TextStyle is character-level formatting, resolved from a CharShape
// record (binary formats) or a charShape/charPr XML style entry.
type TextStyle struct {
	Bold            bool
	Italic          bool
	Underline       bool
	Strikethrough   bool
	Superscript     bool
	Subscript       bool
	FontName        string
	FontSize        float64 // points; zero means unset
	Color           string  // "#RRGGBB"
	BackgroundColor string  // "#RRGGBB"
}

// ParagraphStyle is paragraph-level formatting, resolved from a ParaShape
// record (binary formats) or a paraShape/paraPr XML style entry.
type ParagraphStyle struct {
	HeadingLevel int // 0 means not a heading, else 1..6
	Alignment    Alignment
	List         *ListStyle
	IndentLevel  int
	LineSpacing  float64 // multiplier, e.g. 1.6 for 160%; points for a fixed-spacing binary ParaShape
	SpaceBefore  float64 // points
	SpaceAfter   float64 // points
}

// Registry is an append-only set of lookup tables populated while walking
// DocInfo (binary formats) or header.xml (HWPX), then queried while
// walking body text.
type Registry struct {
	charStyles  map[uint32]TextStyle
	paraStyles  map[uint32]ParagraphStyle
	namedStyles map[string]uint32
	faceNames   []string
	binDataIdx  map[uint32]string // 1-based picture index -> resource filename
}

// NewRegistry returns an empty Registry ready to be populated by a
// DocInfo or header.xml parser.
func NewRegistry() *Registry {
	return &Registry{
		charStyles:  make(map[uint32]TextStyle),
		paraStyles:  make(map[uint32]ParagraphStyle),
		namedStyles: make(map[string]uint32),
		binDataIdx:  make(map[uint32]string),
	}
}

func (r *Registry) RegisterCharStyle(id uint32, s TextStyle)     { r.charStyles[id] = s }
func (r *Registry) RegisterParaStyle(id uint32, s ParagraphStyle) { r.paraStyles[id] = s }
func (r *Registry) RegisterNamedStyle(name string, id uint32)    { r.namedStyles[name] = id }

// RegisterFaceName appends a FaceName record's decoded name; face names
// are referenced from CharShape by positional index.
func (r *Registry) RegisterFaceName(name string) {
	r.faceNames = append(r.faceNames, name)
}

func (r *Registry) FaceName(index uint16) (string, bool) {
	if int(index) >= len(r.faceNames) {
		return "", false
	}
	return r.faceNames[index], true
}

func (r *Registry) CharStyle(id uint32) (TextStyle, bool) {
	s, ok := r.charStyles[id]
	return s, ok
}

func (r *Registry) ParaStyle(id uint32) (ParagraphStyle, bool) {
	s, ok := r.paraStyles[id]
	return s, ok
}

func (r *Registry) NamedStyle(name string) (uint32, bool) {
	id, ok := r.namedStyles[name]
	return id, ok
}

// RegisterBinDataFilename records the resource filename for a 1-based
// picture index. hwp5 populates it after DocInfo is parsed, pairing the
// BinData record count with the sorted BinData storage listing.
func (r *Registry) RegisterBinDataFilename(pictureIndex uint32, filename string) {
	r.binDataIdx[pictureIndex] = filename
}

// BinDataFilename resolves a 1-based picture index (the running counter
// C7 maintains per section) to the resource filename it refers to.
func (r *Registry) BinDataFilename(pictureIndex uint32) (string, bool) {
	name, ok := r.binDataIdx[pictureIndex]
	return name, ok
}
