package rtf

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v3"
)

// Tristate is a boolean style flag which may be left unset to inherit value
// from the surrounding context.
type Tristate int8

const (
	Inherit Tristate = iota
	On
	Off
)

// TristateOf converts explicit boolean into a set flag.
func TristateOf(b bool) Tristate {
	if b {
		return On
	}
	return Off
}

// IsSet reports whether flag carries explicit value.
func (t Tristate) IsSet() bool {
	return t == On || t == Off
}

// Resolve returns effective value of the flag given inherited one.
//
//	flag     inherited  result
//	Inherit  false      false
//	Inherit  true       true
//	On       any        true
//	Off      any        false
func (t Tristate) Resolve(inherited bool) bool {
	switch t {
	case On:
		return true
	case Off:
		return false
	default:
		return inherited
	}
}

func (t Tristate) String() string {
	switch t {
	case On:
		return "true"
	case Off:
		return "false"
	default:
		return "inherit"
	}
}

// UnmarshalJSON accepts true, false and null.
func (t *Tristate) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("tri-state flag must be boolean or null: %w", err)
	}
	if b == nil {
		*t = Inherit
		return nil
	}
	*t = TristateOf(*b)
	return nil
}

func (t Tristate) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(t == On)
}

// UnmarshalYAML accepts boolean scalars. Null nodes never reach here and
// leave flag at Inherit.
func (t *Tristate) UnmarshalYAML(value *yaml.Node) error {
	var b bool
	if err := value.Decode(&b); err != nil {
		return fmt.Errorf("tri-state flag must be boolean or null: %w", err)
	}
	*t = TristateOf(b)
	return nil
}

func (t Tristate) MarshalYAML() (any, error) {
	if !t.IsSet() {
		return nil, nil
	}
	return t == On, nil
}

// Style is a set of independently optional attributes. Nil pointers, empty
// strings and Inherit flags all mean "take it from context".
type Style struct {
	Font            *Font    `json:"font,omitempty" yaml:"font,omitempty"`
	FontSize        *int     `json:"fontSize,omitempty" yaml:"font_size,omitempty" validate:"omitempty,gt=0"`
	Bold            Tristate `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic          Tristate `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline       Tristate `json:"underline,omitempty" yaml:"underline,omitempty"`
	Strikethrough   Tristate `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Foreground      *Color   `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background      *Color   `json:"background,omitempty" yaml:"background,omitempty"`
	FirstLineIndent *int     `json:"firstLineIndent,omitempty" yaml:"first_line_indent,omitempty"`
	Indent          *int     `json:"indent,omitempty" yaml:"indent,omitempty"`
	Align           Align    `json:"align,omitempty" yaml:"align,omitempty"`
	VAlign          VAlign   `json:"valign,omitempty" yaml:"valign,omitempty"`
}

// IsEmpty reports whether style sets nothing at all.
func (s Style) IsEmpty() bool {
	return s == Style{}
}

// Merge returns base with every attribute explicitly set in override laid on
// top of it. Neither argument is modified, pointer values are copied so
// result never aliases inputs.
func Merge(base, override Style) Style {
	res := base.clone()
	if override.Font != nil {
		res.Font = ptr(*override.Font)
	}
	if override.FontSize != nil {
		res.FontSize = ptr(*override.FontSize)
	}
	if override.Bold.IsSet() {
		res.Bold = override.Bold
	}
	if override.Italic.IsSet() {
		res.Italic = override.Italic
	}
	if override.Underline.IsSet() {
		res.Underline = override.Underline
	}
	if override.Strikethrough.IsSet() {
		res.Strikethrough = override.Strikethrough
	}
	if override.Foreground != nil {
		res.Foreground = ptr(*override.Foreground)
	}
	if override.Background != nil {
		res.Background = ptr(*override.Background)
	}
	if override.FirstLineIndent != nil {
		res.FirstLineIndent = ptr(*override.FirstLineIndent)
	}
	if override.Indent != nil {
		res.Indent = ptr(*override.Indent)
	}
	if override.Align != "" {
		res.Align = override.Align
	}
	if override.VAlign != "" {
		res.VAlign = override.VAlign
	}
	return res
}

func (s Style) clone() Style {
	res := s
	if s.Font != nil {
		res.Font = ptr(*s.Font)
	}
	if s.FontSize != nil {
		res.FontSize = ptr(*s.FontSize)
	}
	if s.Foreground != nil {
		res.Foreground = ptr(*s.Foreground)
	}
	if s.Background != nil {
		res.Background = ptr(*s.Background)
	}
	if s.FirstLineIndent != nil {
		res.FirstLineIndent = ptr(*s.FirstLineIndent)
	}
	if s.Indent != nil {
		res.Indent = ptr(*s.Indent)
	}
	return res
}

func ptr[T any](v T) *T {
	return &v
}

// Int is a convenience for building styles in code.
func Int(v int) *int {
	return &v
}

// RGB is a convenience for building styles in code.
func RGB(r, g, b int) *Color {
	return &Color{Red: r, Green: g, Blue: b}
}
