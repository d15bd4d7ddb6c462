package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rtfhtml/common"
	"rtfhtml/rtf"
)

func TestNewRenderer_FromConfig(t *testing.T) {
	_, env := setupTestEnv(t)
	doc := &env.Cfg.Document
	doc.Style = rtf.Style{Italic: rtf.On, FontSize: rtf.Int(20)}
	doc.ParaTag = "div"
	doc.ParaBreaks = "\n"
	doc.Template.Kind = common.TemplateKindFragment

	rnd, err := newRenderer(doc, env.Log)
	if err != nil {
		t.Fatalf("newRenderer() error = %v", err)
	}
	out, err := rnd.Render(&rtf.Document{Content: []*rtf.Paragraph{
		{Content: []rtf.Span{{Value: "a"}}},
		{Content: []rtf.Span{{Value: "b", Style: rtf.Style{Italic: rtf.Off}}}},
	}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// inherited italic is active on both paragraph and span level
	if want := "<div><em><em>a</em></em></div>\n<div><em>b</em></div>"; out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestNewRenderer_CustomTemplate(t *testing.T) {
	_, env := setupTestEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "page.tmpl")
	if err := os.WriteFile(path, []byte(`<main data-size="{{ halfPoints .Context.FontSize }}">{{ .Content }}</main>`), 0644); err != nil {
		t.Fatal(err)
	}
	env.Cfg.Document.Template.Kind = common.TemplateKindCustom
	env.Cfg.Document.Template.Path = path

	rnd, err := newRenderer(&env.Cfg.Document, env.Log)
	if err != nil {
		t.Fatalf("newRenderer() error = %v", err)
	}
	out, err := rnd.Render(&rtf.Document{Content: []*rtf.Paragraph{{Content: []rtf.Span{{Value: "x"}}}}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := `<main data-size="12pt"><p>x</p></main>`; out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestNewRenderer_Errors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.tmpl")
	if err := os.WriteFile(broken, []byte("{{ .Content"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		setup func(kind *common.TemplateKind, path, css *string)
	}{
		{"custom without path", func(kind *common.TemplateKind, path, css *string) {
			*kind = common.TemplateKindCustom
		}},
		{"custom missing file", func(kind *common.TemplateKind, path, css *string) {
			*kind, *path = common.TemplateKindCustom, filepath.Join(dir, "absent.tmpl")
		}},
		{"custom broken template", func(kind *common.TemplateKind, path, css *string) {
			*kind, *path = common.TemplateKindCustom, broken
		}},
		{"missing stylesheet", func(kind *common.TemplateKind, path, css *string) {
			*css = filepath.Join(dir, "absent.css")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, env := setupTestEnv(t)
			doc := &env.Cfg.Document
			tt.setup(&doc.Template.Kind, &doc.Template.Path, &doc.StylesheetPath)
			if _, err := newRenderer(doc, env.Log); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadStylesheet(t *testing.T) {
	_, env := setupTestEnv(t)
	path := filepath.Join(t.TempDir(), "extra.css")
	content := `@import url("x.css");
p { margin: 0; }
@media print { p { color: black; } }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sheet, err := loadStylesheet(path, env.Log)
	if err != nil {
		t.Fatalf("loadStylesheet() error = %v", err)
	}
	if len(sheet.Warnings) != 1 {
		t.Errorf("expected @import warning, got %v", sheet.Warnings)
	}
	if len(sheet.RulesBySelector("p")) != 1 {
		t.Errorf("expected one top level p rule, got %d", len(sheet.RulesBySelector("p")))
	}

	env.Cfg.Document.StylesheetPath = path
	rnd, err := newRenderer(&env.Cfg.Document, env.Log)
	if err != nil {
		t.Fatalf("newRenderer() error = %v", err)
	}
	out, err := rnd.Render(&rtf.Document{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "@media print") {
		t.Errorf("stylesheet not injected into document:\n%s", out)
	}
}
