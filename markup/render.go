// Package markup renders rich-text document model as HTML.
//
// Rendering is a single top-down pass: document level context is built from
// configuration and document defaults, every paragraph lays its own style
// over it to produce context for its spans, every span is expressed as
// semantic wrapper tags plus inline CSS for whatever differs from that
// context. Renderer keeps no state between calls and is safe for concurrent
// use.
package markup

import (
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"rtfhtml/rtf"
)

// Placeholder keeps otherwise empty paragraph from collapsing.
const Placeholder = "&nbsp;"

// Renderer converts documents into markup.
type Renderer struct {
	opts     options
	resolver *Resolver
	log      *zap.Logger
}

// New creates renderer with requested options applied over defaults.
func New(log *zap.Logger, opts ...Option) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts:     o,
		resolver: NewResolver(o.disableFonts, o.symbolFonts),
		log:      log.Named("markup"),
	}
}

// RootContext returns context paragraphs of the document are rendered
// against: built-in defaults, then document base style, then configured
// overrides.
func (r *Renderer) RootContext(doc *rtf.Document) Context {
	return baseContext(doc).With(r.opts.style)
}

// RenderSpan renders single span against paragraph context.
func (r *Renderer) RenderSpan(span rtf.Span, ctx Context) string {
	res := r.resolver.Resolve(span.Style, ctx)
	value := res.Wrap(html.EscapeString(span.Value))
	if len(res.Attributes) == 0 {
		return value
	}
	return `<span style="` + html.EscapeString(res.Attributes.String()) + `">` + value + `</span>`
}

// RenderParagraph renders paragraph as a block element. Second return value
// is false when there is nothing to render and paragraph must be skipped.
func (r *Renderer) RenderParagraph(p *rtf.Paragraph, ctx Context) (string, bool) {
	if p.IsBlank() {
		return "", false
	}

	res := r.resolver.Resolve(p.Style, ctx)

	var content string
	if p.HasSpans() {
		// paragraph overrides become defaults for its spans
		inner := ctx.With(p.Style)

		var sb strings.Builder
		for _, span := range p.Content {
			sb.WriteString(r.RenderSpan(span, inner))
		}
		content = sb.String()
		if len(content) == 0 {
			content = Placeholder
		}
	} else {
		content = html.EscapeString(*p.Value)
	}

	var sb strings.Builder
	sb.WriteString("<" + r.opts.paraTag)
	if len(res.Attributes) > 0 {
		sb.WriteString(` style="` + html.EscapeString(res.Attributes.String()) + `"`)
	}
	sb.WriteString(">")
	sb.WriteString(res.Wrap(content))
	sb.WriteString("</" + r.opts.paraTag + ">")
	return sb.String(), true
}

// RenderContent renders all paragraphs of the document joined with
// configured separator, blank paragraphs are dropped.
func (r *Renderer) RenderContent(doc *rtf.Document, ctx Context) string {
	return strings.Join(r.renderParagraphs(doc, ctx), r.opts.paraBreaks)
}

func (r *Renderer) renderParagraphs(doc *rtf.Document, ctx Context) []string {
	parts := make([]string, 0, len(doc.Content))
	for i, p := range doc.Content {
		out, ok := r.RenderParagraph(p, ctx)
		if !ok {
			r.log.Debug("Skipping blank paragraph", zap.Int("index", i))
			continue
		}
		parts = append(parts, out)
	}
	return parts
}

// Render converts whole document and assembles it with configured template.
// Rendering itself never fails, error only comes from the template.
func (r *Renderer) Render(doc *rtf.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("no document to render")
	}
	ctx := r.RootContext(doc)
	paras := r.renderParagraphs(doc, ctx)

	out, err := r.opts.template.Assemble(Page{
		Document:   doc,
		Context:    ctx,
		Content:    strings.Join(paras, r.opts.paraBreaks),
		Paragraphs: paras,
		Separator:  r.opts.paraBreaks,
		Stylesheet: r.opts.stylesheet,
	})
	if err != nil {
		return "", fmt.Errorf("unable to assemble document: %w", err)
	}
	return out, nil
}
