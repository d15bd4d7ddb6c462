package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
)

func TestReadDocument(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "doc.yaml"), sampleYAML)

	doc, err := readDocument(path)
	if err != nil {
		t.Fatalf("readDocument() error = %v", err)
	}
	if doc.MarginLeft != 1440 || len(doc.Content) != 1 || len(doc.Content[0].Content) != 2 {
		t.Errorf("unexpected document: %s", doc)
	}

	if _, err := readDocument(writeFile(t, filepath.Join(t.TempDir(), "doc.txt"), sampleYAML)); err == nil {
		t.Error("expected error for unrecognized file")
	}
	if _, err := readDocument(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for absent file")
	}
}

func TestDump(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "doc.json"), sampleJSON)
	dst := filepath.Join(t.TempDir(), "dump.txt")

	cmd := &cli.Command{Name: "dump", Action: Dump}
	if err := cmd.Run(ctx, []string{"dump", src, dst}); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"Document margins left=1440", "Paragraphs: 1", `"Hello "`, "bold=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}
}

func TestDump_NoSource(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	cmd := &cli.Command{Name: "dump", Action: Dump}
	if err := cmd.Run(ctx, []string{"dump"}); err == nil {
		t.Error("expected error without source")
	}
}
