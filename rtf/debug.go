package rtf

import (
	"fmt"

	"rtfhtml/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the document. It exists solely for
// manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(d).String()
}

func (tw treeWriter) document(d *Document) treeWriter {
	tw.Line(0, "Document margins left=%d right=%d top=%d bottom=%d", d.MarginLeft, d.MarginRight, d.MarginTop, d.MarginBottom)
	tw.style(1, &d.Style)
	tw.Line(1, "Paragraphs: %d", len(d.Content))
	for i, p := range d.Content {
		tw.paragraph(2, p, i)
	}
	return tw
}

func (tw treeWriter) paragraph(depth int, p *Paragraph, idx int) {
	if p == nil {
		tw.Line(depth, "Paragraph[%d] <nil>", idx)
		return
	}
	switch {
	case p.Content != nil:
		tw.Line(depth, "Paragraph[%d] spans=%d", idx, len(p.Content))
	case p.Value != nil:
		tw.Line(depth, "Paragraph[%d] bare", idx)
		tw.TextBlock(depth+1, "Value", *p.Value)
	default:
		tw.Line(depth, "Paragraph[%d] empty", idx)
	}
	tw.style(depth+1, &p.Style)
	for i := range p.Content {
		s := &p.Content[i]
		tw.Line(depth+1, "Span[%d]", i)
		tw.TextBlock(depth+2, "Value", s.Value)
		tw.style(depth+2, &s.Style)
	}
}

func (tw treeWriter) style(depth int, s *Style) {
	if s.IsEmpty() {
		return
	}
	tw.Line(depth, "Style")
	if s.Font != nil {
		tw.Field(depth+1, "font", fmt.Sprintf("%q family=%q", s.Font.Name, s.Font.Family))
	}
	if s.FontSize != nil {
		tw.Field(depth+1, "fontSize", *s.FontSize)
	}
	for _, f := range []struct {
		name string
		val  Tristate
	}{
		{"bold", s.Bold},
		{"italic", s.Italic},
		{"underline", s.Underline},
		{"strikethrough", s.Strikethrough},
	} {
		if f.val.IsSet() {
			tw.Field(depth+1, f.name, f.val)
		}
	}
	if s.Foreground != nil {
		tw.Field(depth+1, "foreground", *s.Foreground)
	}
	if s.Background != nil {
		tw.Field(depth+1, "background", *s.Background)
	}
	if s.FirstLineIndent != nil {
		tw.Field(depth+1, "firstLineIndent", *s.FirstLineIndent)
	}
	if s.Indent != nil {
		tw.Field(depth+1, "indent", *s.Indent)
	}
	if s.Align != "" {
		tw.Field(depth+1, "align", s.Align)
	}
	if s.VAlign != "" {
		tw.Field(depth+1, "valign", s.VAlign)
	}
}
