package markup

import (
	"rtfhtml/rtf"
)

// Context is a fully resolved style: what a node looks like when it does not
// override anything. It is a value type, every With call produces a new one
// and never changes receiver.
type Context struct {
	Font            rtf.Font
	FontSize        int // half-points
	Bold            bool
	Italic          bool
	Underline       bool
	Strikethrough   bool
	Foreground      rtf.Color
	Background      rtf.Color
	FirstLineIndent int // twips
	Indent          int // twips
	Align           rtf.Align
	VAlign          rtf.VAlign
}

const (
	defaultFontName = "Times"
	defaultFontSize = 24
)

// baseContext returns context every document starts with before
// configuration overrides: document font, size and first line indent when
// present, everything else off, black on white, left aligned.
func baseContext(doc *rtf.Document) Context {
	ctx := Context{
		Font:       rtf.Font{Name: defaultFontName, Family: rtf.FontFamilyRoman},
		FontSize:   defaultFontSize,
		Foreground: rtf.Color{},
		Background: rtf.Color{Red: 255, Green: 255, Blue: 255},
		Align:      rtf.AlignLeft,
		VAlign:     rtf.VAlignNormal,
	}
	if doc == nil {
		return ctx
	}
	if f := doc.Style.Font; f != nil && f.Name != "" {
		ctx.Font = *f
	}
	if fs := doc.Style.FontSize; fs != nil && *fs != 0 {
		ctx.FontSize = *fs
	}
	if fi := doc.Style.FirstLineIndent; fi != nil {
		ctx.FirstLineIndent = *fi
	}
	return ctx
}

// With returns copy of the context with every attribute explicitly set in
// style laid over it.
func (c Context) With(s rtf.Style) Context {
	if s.Font != nil && s.Font.Name != "" {
		c.Font = *s.Font
	}
	if s.FontSize != nil {
		c.FontSize = *s.FontSize
	}
	c.Bold = s.Bold.Resolve(c.Bold)
	c.Italic = s.Italic.Resolve(c.Italic)
	c.Underline = s.Underline.Resolve(c.Underline)
	c.Strikethrough = s.Strikethrough.Resolve(c.Strikethrough)
	if s.Foreground != nil {
		c.Foreground = *s.Foreground
	}
	if s.Background != nil {
		c.Background = *s.Background
	}
	if s.FirstLineIndent != nil {
		c.FirstLineIndent = *s.FirstLineIndent
	}
	if s.Indent != nil {
		c.Indent = *s.Indent
	}
	if s.Align != "" {
		c.Align = s.Align
	}
	if s.VAlign != "" {
		c.VAlign = s.VAlign
	}
	return c
}
