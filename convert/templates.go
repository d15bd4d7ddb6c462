package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	sprig "github.com/go-task/slim-sprig/v3"

	"rtfhtml/config"
	"rtfhtml/rtf"
)

// maxTitleRunes limits Title value, so first paragraph could be used in file
// names.
const maxTitleRunes = 64

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	SourceFile string
	SourceDir  string
	Format     string
	ID         string
	Title      string
	Paragraphs int
	Font       string
}

func newValues(doc *rtf.Document, src, id string, cfg *config.DocumentConfig) Values {
	v := Values{
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		SourceDir:  filepath.ToSlash(filepath.Dir(src)),
		Format:     cfg.Template.Kind.String(),
		ID:         id,
	}
	if v.SourceDir == "." {
		v.SourceDir = ""
	}
	if doc == nil {
		return v
	}
	if doc.Style.Font != nil {
		v.Font = doc.Style.Font.Name
	}
	for _, p := range doc.Content {
		if p.IsBlank() {
			continue
		}
		v.Paragraphs++
		if v.Title == "" {
			v.Title = paragraphText(p)
		}
	}
	return v
}

// paragraphText returns plain text of the paragraph on a single line,
// shortened to maxTitleRunes.
func paragraphText(p *rtf.Paragraph) string {
	var sb strings.Builder
	if p.HasSpans() {
		for _, span := range p.Content {
			sb.WriteString(span.Value)
		}
	} else if p.Value != nil {
		sb.WriteString(*p.Value)
	}
	text := strings.Join(strings.Fields(sb.String()), " ")
	if utf8.RuneCountInString(text) > maxTitleRunes {
		text = strings.TrimSpace(string([]rune(text)[:maxTitleRunes]))
	}
	return text
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
