package debug

import (
	"testing"
)

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{"no depth", 0, "Document", nil, "Document\n"},
		{"depth 1", 1, "Style", nil, "  Style\n"},
		{"depth 2 with args", 2, "Paragraph[%d] spans=%d", []any{3, 2}, "    Paragraph[3] spans=2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Field(t *testing.T) {
	tw := NewTreeWriter()
	tw.Field(1, "fontSize", 24)
	tw.Field(2, "align", "center")

	want := "  fontSize=24\n    align=center\n"
	if got := tw.String(); got != want {
		t.Errorf("Field() = %q, want %q", got, want)
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", "Value: \n"},
		{"simple text", "hello", "Value: \"hello\"\n"},
		{"with quotes", `say "hi"`, "Value: \"say \\\"hi\\\"\"\n"},
		{"with newline", "line1\nline2", "Value: \"line1\\nline2\"\n"},
		{"with tab", "col1\tcol2", "Value: \"col1\\tcol2\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(0, "Value", tt.input)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_MultipleOperations(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "Document")
	tw.Line(1, "Paragraph[0]")
	tw.TextBlock(2, "Value", "hi")
	tw.Field(2, "bold", true)

	want := "Document\n  Paragraph[0]\n    Value: \"hi\"\n    bold=true\n"
	if got := tw.String(); got != want {
		t.Errorf("Multiple operations:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
