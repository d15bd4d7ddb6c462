// Package rtf defines in-memory representation of a parsed rich-text document
// as handed over by the parser: paragraphs of styled spans plus page metrics.
package rtf

// Type definitions for the rich-text document model.

// Document is the root of the model. Margins are in twips.
type Document struct {
	Content      []*Paragraph `json:"content" yaml:"content"`
	Style        Style        `json:"style" yaml:"style"`
	MarginLeft   int          `json:"marginLeft" yaml:"margin_left"`
	MarginRight  int          `json:"marginRight" yaml:"margin_right"`
	MarginTop    int          `json:"marginTop" yaml:"margin_top"`
	MarginBottom int          `json:"marginBottom" yaml:"margin_bottom"`
}

// Paragraph is an ordered run of spans. When Content is nil the paragraph may
// carry a single bare Value instead. A nil Content and an empty non-nil
// Content are different things: the latter is a defined but empty sequence.
type Paragraph struct {
	Content []Span  `json:"content,omitempty" yaml:"content,omitempty"`
	Value   *string `json:"value,omitempty" yaml:"value,omitempty"`
	Style   Style   `json:"style" yaml:"style"`
}

// HasSpans reports whether paragraph defines span sequence (possibly empty).
func (p *Paragraph) HasSpans() bool {
	return p != nil && p.Content != nil
}

// IsBlank reports whether there is nothing to render: neither spans nor a
// bare value.
func (p *Paragraph) IsBlank() bool {
	return p == nil || (len(p.Content) == 0 && p.Value == nil)
}

// Span is a leaf text bearing unit.
type Span struct {
	Value string `json:"value" yaml:"value"`
	Style Style  `json:"style" yaml:"style"`
}

// Font names a typeface and its generic family.
type Font struct {
	Name   string     `json:"name" yaml:"name"`
	Family FontFamily `json:"family,omitempty" yaml:"family,omitempty"`
}

// Color is an RGB triple, every channel in 0-255 range.
type Color struct {
	Red   int `json:"red" yaml:"red" validate:"gte=0,lte=255"`
	Green int `json:"green" yaml:"green" validate:"gte=0,lte=255"`
	Blue  int `json:"blue" yaml:"blue" validate:"gte=0,lte=255"`
}

// Equal compares colors channel by channel.
func (c Color) Equal(o Color) bool {
	return c.Red == o.Red && c.Green == o.Green && c.Blue == o.Blue
}

// FontFamily is a generic font family of the source format. Values not
// listed below are kept verbatim.
type FontFamily string

const (
	FontFamilyNil    FontFamily = "nil"
	FontFamilyRoman  FontFamily = "roman"
	FontFamilySwiss  FontFamily = "swiss"
	FontFamilyScript FontFamily = "script"
	FontFamilyDecor  FontFamily = "decor"
	FontFamilyModern FontFamily = "modern"
	FontFamilyTech   FontFamily = "tech"
	FontFamilyBidi   FontFamily = "bidi"
)

// Align is horizontal paragraph alignment. Empty value means "not set".
type Align string

const (
	AlignLeft    Align = "left"
	AlignRight   Align = "right"
	AlignCenter  Align = "center"
	AlignJustify Align = "justify"
)

// VAlign is vertical text position. Empty value means "not set".
type VAlign string

const (
	VAlignNormal VAlign = "normal"
	VAlignSuper  VAlign = "super"
	VAlignSub    VAlign = "sub"
)
