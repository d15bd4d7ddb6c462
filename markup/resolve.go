package markup

import (
	"strings"

	"rtfhtml/css"
	"rtfhtml/rtf"
)

// Wrapper is a pair of semantic tags enclosing styled text.
type Wrapper struct {
	Open  string
	Close string
}

func tagPair(name string) Wrapper {
	return Wrapper{Open: "<" + name + ">", Close: "</" + name + ">"}
}

// Resolution is the outcome of resolving node style against its context.
type Resolution struct {
	// Inline presentation properties which differ from context, in
	// inlineProperties order.
	Attributes css.Declarations
	// Semantic wrappers, outermost first, in wrapperOrder order.
	Wrappers []Wrapper
}

// Open returns opening tags outermost first.
func (r Resolution) Open() string {
	var sb strings.Builder
	for _, w := range r.Wrappers {
		sb.WriteString(w.Open)
	}
	return sb.String()
}

// Close returns closing tags in exact reverse of Open.
func (r Resolution) Close() string {
	var sb strings.Builder
	for i := len(r.Wrappers) - 1; i >= 0; i-- {
		sb.WriteString(r.Wrappers[i].Close)
	}
	return sb.String()
}

// Wrap encloses already rendered markup into wrapper tags.
func (r Resolution) Wrap(inner string) string {
	return r.Open() + inner + r.Close()
}

type inlineProperty struct {
	name  string
	value func(res *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool)
}

func declaration(property, value string) (css.Declaration, bool) {
	return css.Declaration{Property: property, Value: value}, true
}

// inlineProperties is the order inline attributes are emitted in. Each is
// emitted only when node sets a value and it differs from context.
var inlineProperties = [...]inlineProperty{
	{"color", func(_ *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if s.Foreground == nil || ColorsEqual(*s.Foreground, ctx.Foreground) {
			return css.Declaration{}, false
		}
		return declaration("color", ColorValue(*s.Foreground))
	}},
	{"background-color", func(_ *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if s.Background == nil || ColorsEqual(*s.Background, ctx.Background) {
			return css.Declaration{}, false
		}
		return declaration("background-color", ColorValue(*s.Background))
	}},
	{"text-indent", func(_ *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if s.FirstLineIndent == nil || *s.FirstLineIndent <= 0 || *s.FirstLineIndent == ctx.FirstLineIndent {
			return css.Declaration{}, false
		}
		return declaration("text-indent", FormatPoints(PointsFromTwips(*s.FirstLineIndent)))
	}},
	{"padding-left", func(_ *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if s.Indent == nil || *s.Indent == ctx.Indent {
			return css.Declaration{}, false
		}
		return declaration("padding-left", FormatPoints(PointsFromTwips(*s.Indent)))
	}},
	{"text-align", func(_ *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if s.Align == "" || s.Align == ctx.Align {
			return css.Declaration{}, false
		}
		return declaration("text-align", string(s.Align))
	}},
	{"font-size", func(_ *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if s.FontSize == nil || *s.FontSize == ctx.FontSize {
			return css.Declaration{}, false
		}
		return declaration("font-size", FormatPoints(PointsFromHalfPoints(*s.FontSize)))
	}},
	{"font-family", func(res *Resolver, s rtf.Style, ctx Context) (css.Declaration, bool) {
		if res.disableFonts || s.Font == nil || s.Font.Name == "" || s.Font.Name == ctx.Font.Name {
			return css.Declaration{}, false
		}
		return FontDeclaration(*s.Font, res.symbolFonts)
	}},
}

type wrapperProperty struct {
	wrapper Wrapper
	active  func(s rtf.Style, ctx Context) bool
}

// wrapperOrder is the nesting order of semantic wrappers, outermost first.
// Vertical alignment is always innermost and handled separately since super
// and sub are mutually exclusive.
var wrapperOrder = [...]wrapperProperty{
	{tagPair("em"), func(s rtf.Style, ctx Context) bool { return s.Italic.Resolve(ctx.Italic) }},
	{tagPair("strong"), func(s rtf.Style, ctx Context) bool { return s.Bold.Resolve(ctx.Bold) }},
	{tagPair("s"), func(s rtf.Style, ctx Context) bool { return s.Strikethrough.Resolve(ctx.Strikethrough) }},
	{tagPair("u"), func(s rtf.Style, ctx Context) bool { return s.Underline.Resolve(ctx.Underline) }},
}

var (
	superWrapper = tagPair("sup")
	subWrapper   = tagPair("sub")
)

// InlinePropertyOrder returns names of inline properties in emission order.
func InlinePropertyOrder() []string {
	names := make([]string, 0, len(inlineProperties))
	for _, p := range inlineProperties {
		names = append(names, p.name)
	}
	return names
}

// Resolver decides how node style is expressed in markup.
type Resolver struct {
	disableFonts bool
	symbolFonts  []string
}

// NewResolver creates resolver. When disableFonts is set font-family is never
// emitted, symbolFonts lists font names never emitted either.
func NewResolver(disableFonts bool, symbolFonts []string) *Resolver {
	return &Resolver{disableFonts: disableFonts, symbolFonts: symbolFonts}
}

// Resolve determines inline attributes and semantic wrappers for node style
// against context the node lives in.
func (res *Resolver) Resolve(s rtf.Style, ctx Context) Resolution {
	var out Resolution
	for _, p := range inlineProperties {
		if d, ok := p.value(res, s, ctx); ok {
			out.Attributes = append(out.Attributes, d)
		}
	}
	for _, w := range wrapperOrder {
		if w.active(s, ctx) {
			out.Wrappers = append(out.Wrappers, w.wrapper)
		}
	}
	valign := ctx.VAlign
	if s.VAlign != "" {
		valign = s.VAlign
	}
	switch valign {
	case rtf.VAlignSuper:
		out.Wrappers = append(out.Wrappers, superWrapper)
	case rtf.VAlignSub:
		out.Wrappers = append(out.Wrappers, subWrapper)
	}
	return out
}
