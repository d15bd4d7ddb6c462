package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"rtfhtml/common"
	"rtfhtml/config"
	"rtfhtml/markup"
	"rtfhtml/state"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = testLogger(t)
	env.Cfg = cfg
	return ctx, env
}

func testLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func testRenderer(t *testing.T, env *state.LocalEnv) *markup.Renderer {
	t.Helper()
	rnd, err := newRenderer(&env.Cfg.Document, env.Log)
	if err != nil {
		t.Fatalf("newRenderer() error = %v", err)
	}
	return rnd
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func makeArchive(t *testing.T, dir, name string, members map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(dir, name)
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for member, content := range members {
		f, err := w.CreateHeader(&zip.FileHeader{Name: member, Method: zip.Store})
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write to zip: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

var allEncodings = []struct {
	name string
	enc  srcEncoding
}{
	{"utf-8", encUnknown},
	{"utf-8 bom", encUTF8},
	{"utf-16be", encUTF16BigEndian},
	{"utf-16le", encUTF16LittleEndian},
	{"utf-32be", encUTF32BigEndian},
	{"utf-32le", encUTF32LittleEndian},
}

func encodeAs(t *testing.T, data []byte, enc srcEncoding) []byte {
	t.Helper()
	var encoder transform.Transformer
	switch enc {
	case encUnknown:
		return data
	case encUTF8:
		return append([]byte{0xEF, 0xBB, 0xBF}, data...)
	case encUTF16BigEndian:
		encoder = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	case encUTF16LittleEndian:
		encoder = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	case encUTF32BigEndian:
		encoder = utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder()
	case encUTF32LittleEndian:
		encoder = utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder()
	default:
		t.Fatalf("unsupported encoding: %v", enc)
	}
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, encoder)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}
	return buf.Bytes()
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected output %s: %v", path, err)
	}
	return string(data)
}

func TestProcess_NonExistentPath(t *testing.T) {
	ctx, env := setupTestEnv(t)

	err := process(ctx, "/nonexistent/path/doc.json", t.TempDir(), testRenderer(t, env), env.Log)
	if err == nil || !strings.Contains(err.Error(), "input source was not found") {
		t.Fatalf("Expected not found error, got: %v", err)
	}
}

func TestProcess_CancelledContext(t *testing.T) {
	ctx, env := setupTestEnv(t)
	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()

	tmpDir := t.TempDir()
	if err := process(cancelCtx, tmpDir, tmpDir, testRenderer(t, env), env.Log); err != context.Canceled {
		t.Errorf("Expected context.Canceled error, got %v", err)
	}
}

func TestProcess_SingleFile(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "letter.json"), sampleJSON)
	dst := t.TempDir()

	if err := process(ctx, src, dst, testRenderer(t, env), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	out := readOutput(t, filepath.Join(dst, "letter.html"))
	for _, want := range []string{"<!DOCTYPE html>", "margin-left: 72pt;", "<p>Hello <strong>world</strong></p>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestProcess_SingleFileEncodings(t *testing.T) {
	ctx, env := setupTestEnv(t)
	rnd := testRenderer(t, env)

	for _, enc := range allEncodings {
		t.Run(enc.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "doc.yaml")
			if err := os.WriteFile(src, encodeAs(t, []byte(sampleYAML), enc.enc), 0644); err != nil {
				t.Fatal(err)
			}
			dst := t.TempDir()
			if err := process(ctx, src, dst, rnd, env.Log); err != nil {
				t.Fatalf("process() error = %v", err)
			}
			if out := readOutput(t, filepath.Join(dst, "doc.html")); !strings.Contains(out, "<strong>world</strong>") {
				t.Errorf("unexpected output:\n%s", out)
			}
		})
	}
}

func TestProcess_NotADocument(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "test.txt"), "not a document")

	err := process(ctx, src, t.TempDir(), testRenderer(t, env), env.Log)
	if err == nil || !strings.Contains(err.Error(), "input was not recognized as document") {
		t.Fatalf("Expected recognition error, got: %v", err)
	}
}

func TestProcess_FileWithTail(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "doc.json"), sampleJSON)

	if err := process(ctx, filepath.Join(src, "extra"), t.TempDir(), testRenderer(t, env), env.Log); err == nil {
		t.Fatal("Expected error for document path with tail, got nil")
	}
}

func TestProcess_DirectoryWithTail(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dir := filepath.Join(t.TempDir(), "subdir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := process(ctx, filepath.Join(dir, "nonexistent.json"), t.TempDir(), testRenderer(t, env), env.Log); err == nil {
		t.Fatal("Expected error for directory with tail, got nil")
	}
}

func TestProcess_Directory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "a.json"), sampleJSON)
	writeFile(t, filepath.Join(src, "nested", "b.yaml"), sampleYAML)
	writeFile(t, filepath.Join(src, "notes.txt"), "skipped")
	makeArchive(t, filepath.Join(src, "nested"), "more.zip", map[string]string{"inner/c.json": sampleJSON})

	if err := process(ctx, src, dst, testRenderer(t, env), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, name := range []string{"a.html", "nested/b.html", "nested/inner/c.html"} {
		readOutput(t, filepath.Join(dst, filepath.FromSlash(name)))
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.html")); err == nil {
		t.Error("non-document file should be skipped")
	}
}

func TestProcess_DirectoryNoDirs(t *testing.T) {
	ctx, env := setupTestEnv(t)
	env.NoDirs = true
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "nested", "deep", "b.yaml"), sampleYAML)

	if err := process(ctx, src, dst, testRenderer(t, env), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	readOutput(t, filepath.Join(dst, "b.html"))
}

func TestProcess_DirectoryKeepsGoing(t *testing.T) {
	ctx, env := setupTestEnv(t)
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "1.json"), sampleJSON)
	writeFile(t, filepath.Join(src, "2.json"), `{"content": [}`)
	writeFile(t, filepath.Join(src, "3.json"), `{"content": "wrong"}`)
	writeFile(t, filepath.Join(src, "10.json"), sampleJSON)

	err := process(ctx, src, dst, testRenderer(t, env), env.Log)
	if err == nil {
		t.Fatal("Expected aggregated error for broken documents")
	}
	for _, bad := range []string{"2.json", "3.json"} {
		if !strings.Contains(err.Error(), bad) {
			t.Errorf("error does not mention %s: %v", bad, err)
		}
	}
	readOutput(t, filepath.Join(dst, "1.html"))
	readOutput(t, filepath.Join(dst, "10.html"))
}

func TestProcess_EmptyDirectory(t *testing.T) {
	ctx, env := setupTestEnv(t)
	if err := process(ctx, t.TempDir(), t.TempDir(), testRenderer(t, env), env.Log); err != nil {
		t.Errorf("process() should handle empty directory, got error: %v", err)
	}
}

func TestProcess_Archive(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dst := t.TempDir()
	zipPath := makeArchive(t, t.TempDir(), "docs.zip", map[string]string{
		"one.json":       sampleJSON,
		"sub/two.yaml":   sampleYAML,
		"sub/readme.txt": "skipped",
	})

	if err := process(ctx, zipPath, dst, testRenderer(t, env), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	readOutput(t, filepath.Join(dst, "one.html"))
	readOutput(t, filepath.Join(dst, "sub", "two.html"))
}

func TestProcess_ArchiveWithPath(t *testing.T) {
	ctx, env := setupTestEnv(t)
	dst := t.TempDir()
	zipPath := makeArchive(t, t.TempDir(), "docs.zip", map[string]string{
		"one.json":     sampleJSON,
		"sub/two.yaml": sampleYAML,
	})

	if err := process(ctx, filepath.Join(zipPath, "sub"), dst, testRenderer(t, env), env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	readOutput(t, filepath.Join(dst, "sub", "two.html"))
	if _, err := os.Stat(filepath.Join(dst, "one.html")); err == nil {
		t.Error("document outside requested archive path should be skipped")
	}
}

func TestProcess_Overwrite(t *testing.T) {
	ctx, env := setupTestEnv(t)
	rnd := testRenderer(t, env)
	src := writeFile(t, filepath.Join(t.TempDir(), "doc.json"), sampleJSON)
	dst := t.TempDir()
	existing := writeFile(t, filepath.Join(dst, "doc.html"), "old")

	err := process(ctx, src, dst, rnd, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("Expected already exists error, got: %v", err)
	}
	if readOutput(t, existing) != "old" {
		t.Error("existing file must stay untouched")
	}

	env.Overwrite = true
	if err := process(ctx, src, dst, rnd, env.Log); err != nil {
		t.Fatalf("process() with overwrite error = %v", err)
	}
	if readOutput(t, existing) == "old" {
		t.Error("existing file should be overwritten")
	}
}

func TestProcess_TemplateKinds(t *testing.T) {
	tests := []struct {
		kind common.TemplateKind
		file string
		want string
	}{
		{common.TemplateKindHtml, "doc.html", "<!DOCTYPE html>"},
		{common.TemplateKindXhtml, "doc.xhtml", `<html xmlns="http://www.w3.org/1999/xhtml">`},
		{common.TemplateKindFragment, "doc.html", "<p>Hello <strong>world</strong></p>"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ctx, env := setupTestEnv(t)
			env.Cfg.Document.Template.Kind = tt.kind
			src := writeFile(t, filepath.Join(t.TempDir(), "doc.json"), sampleJSON)
			dst := t.TempDir()

			if err := process(ctx, src, dst, testRenderer(t, env), env.Log); err != nil {
				t.Fatalf("process() error = %v", err)
			}
			out := readOutput(t, filepath.Join(dst, tt.file))
			if !strings.Contains(out, tt.want) {
				t.Errorf("output does not contain %q:\n%s", tt.want, out)
			}
			if tt.kind == common.TemplateKindFragment && strings.Contains(out, "<body") {
				t.Errorf("fragment must not have document shell:\n%s", out)
			}
		})
	}
}

func TestProcessDocument_Report(t *testing.T) {
	ctx, env := setupTestEnv(t)
	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt
	dst := t.TempDir()

	err = processDocument(ctx, strings.NewReader(sampleJSON), common.InputFmtJson, "doc.json", dst, testRenderer(t, env), env.Log)
	if err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("report Close() error = %v", err)
	}
	zr, err := zip.OpenReader(rpt.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()

	var source, result bool
	for _, f := range zr.File {
		source = source || (strings.HasPrefix(f.Name, "source/") && strings.HasSuffix(f.Name, "-doc.json"))
		result = result || (strings.HasPrefix(f.Name, "result/") && strings.HasSuffix(f.Name, ".html"))
	}
	if !source || !result {
		t.Errorf("report lacks source (%v) or result (%v)", source, result)
	}
}

func TestProcessDocument_DecodeError(t *testing.T) {
	ctx, env := setupTestEnv(t)

	err := processDocument(ctx, strings.NewReader(""), common.InputFmtYaml, "empty.yaml", t.TempDir(), testRenderer(t, env), env.Log)
	if err == nil || !strings.Contains(err.Error(), "unable to decode source") {
		t.Fatalf("Expected decode error, got: %v", err)
	}
}

type panicTemplate struct{}

func (panicTemplate) Assemble(markup.Page) (string, error) {
	panic("template exploded")
}

func TestProcessDocument_RecoversPanic(t *testing.T) {
	ctx, env := setupTestEnv(t)
	rnd := markup.New(env.Log, markup.WithTemplate(panicTemplate{}))

	err := processDocument(ctx, strings.NewReader(sampleJSON), common.InputFmtJson, "doc.json", t.TempDir(), rnd, env.Log)
	if err == nil || !strings.Contains(err.Error(), "conversion panic") {
		t.Fatalf("Expected panic converted to error, got: %v", err)
	}
}
