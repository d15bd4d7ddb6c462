package markup

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"

	"rtfhtml/common"
	"rtfhtml/css"
	"rtfhtml/rtf"
)

//go:embed default.html.tmpl
var defaultHTMLTemplate string

// Page is everything a template needs to assemble final document. Content
// is Paragraphs joined with Separator.
type Page struct {
	Document   *rtf.Document
	Context    Context
	Content    string
	Paragraphs []string
	Separator  string
	Stylesheet *css.Stylesheet
}

// Template assembles rendered content into the final document.
type Template interface {
	Assemble(page Page) (string, error)
}

// TemplateFunc adapts ordinary function to Template.
type TemplateFunc func(page Page) (string, error)

func (f TemplateFunc) Assemble(page Page) (string, error) {
	return f(page)
}

// FragmentTemplate returns rendered content as is, without document shell.
func FragmentTemplate() Template {
	return TemplateFunc(func(page Page) (string, error) {
		return page.Content, nil
	})
}

type textTemplate struct {
	tmpl *template.Template
}

func (t *textTemplate) Assemble(page Page) (string, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NewTextTemplate parses user template. Template is executed with Page as
// data and has slim-sprig functions available together with unit helpers:
// twips, halfPoints, stylesheet and joinIndented.
func NewTextTemplate(name, src string) (Template, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	return &textTemplate{tmpl: tmpl}, nil
}

// HTMLTemplate returns built-in HTML document template.
func HTMLTemplate() Template {
	t, err := NewTextTemplate("html", defaultHTMLTemplate)
	if err != nil {
		// embedded template is always valid
		panic(err)
	}
	return t
}

func templateFuncs() template.FuncMap {
	funcMap := sprig.FuncMap()
	funcMap["twips"] = func(v int) string { return FormatPoints(PointsFromTwips(v)) }
	funcMap["halfPoints"] = func(v int) string { return FormatPoints(PointsFromHalfPoints(v)) }
	funcMap["stylesheet"] = func(sheet *css.Stylesheet, indent string) (string, error) {
		var sb strings.Builder
		if err := sheet.WriteTo(&sb, indent); err != nil {
			return "", err
		}
		return strings.TrimRight(sb.String(), "\n"), nil
	}
	funcMap["joinIndented"] = joinIndented
	return funcMap
}

// joinIndented joins paragraphs with separator, indenting every paragraph
// but the first one when separator ends with line break. Paragraph text
// itself is never touched.
func joinIndented(spaces int, sep string, paras []string) string {
	if strings.HasSuffix(sep, "\n") {
		sep += strings.Repeat(" ", spaces)
	}
	return strings.Join(paras, sep)
}

// bodyStyle returns document level style rule shared by built-in templates.
func bodyStyle(page Page) css.Rule {
	var decls css.Declarations
	decls.Add("margin-left", FormatPoints(PointsFromTwips(page.Document.MarginLeft)))
	decls.Add("margin-right", FormatPoints(PointsFromTwips(page.Document.MarginRight)))
	decls.Add("margin-top", FormatPoints(PointsFromTwips(page.Document.MarginTop)))
	decls.Add("margin-bottom", FormatPoints(PointsFromTwips(page.Document.MarginBottom)))
	decls.Add("font-size", FormatPoints(PointsFromHalfPoints(page.Context.FontSize)))
	decls.Add("text-indent", FormatPoints(PointsFromTwips(page.Context.FirstLineIndent)))
	return css.Rule{Selector: "body", Declarations: decls}
}

type xhtmlTemplate struct {
	parser *css.Parser
}

// XHTMLTemplate returns template producing well-formed XHTML document.
// Rendered content is re-parsed, so malformed content is reported as error
// instead of being silently written out. Style attributes are normalized on
// the way: every property is kept once and empty attributes are dropped.
func XHTMLTemplate() Template {
	return xhtmlTemplate{parser: css.NewParser(nil)}
}

func (t xhtmlTemplate) Assemble(page Page) (string, error) {
	frag := etree.NewDocument()
	frag.ReadSettings.Entity = map[string]string{"nbsp": "\u00a0"}
	if err := frag.ReadFromString("<body>" + page.Content + "</body>"); err != nil {
		return "", fmt.Errorf("rendered content is not well-formed: %w", err)
	}
	for _, el := range frag.FindElements("//*[@style]") {
		decls := t.parser.ParseInline(el.SelectAttrValue("style", "")).Compact()
		if len(decls) == 0 {
			el.RemoveAttr("style")
			continue
		}
		el.CreateAttr("style", decls.String())
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	root := doc.CreateElement("html")
	root.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	head := root.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "UTF-8")

	sheet := &css.Stylesheet{}
	rule := bodyStyle(page)
	sheet.Items = append(sheet.Items, css.StylesheetItem{Rule: &rule})
	if page.Stylesheet != nil {
		sheet.Items = append(sheet.Items, page.Stylesheet.Items...)
	}
	var sb strings.Builder
	if err := sheet.WriteTo(&sb, "      "); err != nil {
		return "", err
	}
	head.CreateElement("style").SetText("\n" + sb.String() + "    ")

	body := root.CreateElement("body")
	// indent shell only, content whitespace must stay intact
	doc.Indent(2)
	for _, tok := range slices.Clone(frag.Root().Child) {
		body.AddChild(tok)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to write XHTML: %w", err)
	}
	return out, nil
}

// BuiltinTemplate returns one of built-in templates. Custom templates are
// created with NewTextTemplate.
func BuiltinTemplate(kind common.TemplateKind) (Template, error) {
	switch kind {
	case common.TemplateKindHtml:
		return HTMLTemplate(), nil
	case common.TemplateKindXhtml:
		return XHTMLTemplate(), nil
	case common.TemplateKindFragment:
		return FragmentTemplate(), nil
	default:
		return nil, fmt.Errorf("%s is not a built-in template", kind)
	}
}
