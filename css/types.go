// Package css keeps CSS declarations in a stable order and parses/normalizes
// user supplied stylesheets.
package css

import (
	"io"
	"strings"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value + ";"
}

// Declarations is an ordered list of declarations. Order is significant for
// output stability and is preserved exactly as added.
type Declarations []Declaration

// Add appends declaration.
func (ds *Declarations) Add(property, value string) {
	*ds = append(*ds, Declaration{Property: property, Value: value})
}

// Get returns value of the last declaration for property.
func (ds Declarations) Get(property string) (string, bool) {
	for i := len(ds) - 1; i >= 0; i-- {
		if ds[i].Property == property {
			return ds[i].Value, true
		}
	}
	return "", false
}

// Properties returns property names in declaration order.
func (ds Declarations) Properties() []string {
	names := make([]string, 0, len(ds))
	for _, d := range ds {
		names = append(names, d.Property)
	}
	return names
}

// Compact returns declarations listing every property once, at the position
// of its first occurrence and with the value of its last one.
func (ds Declarations) Compact() Declarations {
	out := make(Declarations, 0, len(ds))
	for _, name := range ds.Properties() {
		if _, seen := out.Get(name); seen {
			continue
		}
		value, _ := ds.Get(name)
		out.Add(name, value)
	}
	return out
}

// String renders declarations as a style attribute value. Empty list
// produces empty string.
func (ds Declarations) String() string {
	var sb strings.Builder
	for _, d := range ds {
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Rule is a selector with its declarations.
type Rule struct {
	Selector     string
	Declarations Declarations
}

// MediaBlock keeps @media query text and its rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// StylesheetItem is one top level stylesheet entry, exactly one field is set.
type StylesheetItem struct {
	Rule       *Rule
	MediaBlock *MediaBlock
	FontFace   Declarations
}

// Stylesheet is a parsed stylesheet in source order.
type Stylesheet struct {
	Items    []StylesheetItem
	Warnings []string
}

// Rules returns all plain top level rules (no @media content).
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// RulesBySelector returns top level rules for exact selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var rules []Rule
	for _, r := range s.Rules() {
		if r.Selector == selector {
			rules = append(rules, r)
		}
	}
	return rules
}

// WriteTo serializes stylesheet with every line prefixed by indent.
func (s *Stylesheet) WriteTo(w io.Writer, indent string) error {
	var sb strings.Builder
	writeRule := func(prefix string, r Rule) {
		sb.WriteString(prefix + r.Selector + " {\n")
		for _, d := range r.Declarations {
			sb.WriteString(prefix + "  " + d.String() + "\n")
		}
		sb.WriteString(prefix + "}\n")
	}
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			writeRule(indent, *item.Rule)
		case item.MediaBlock != nil:
			sb.WriteString(indent + "@media " + item.MediaBlock.Query + " {\n")
			for _, r := range item.MediaBlock.Rules {
				writeRule(indent+"  ", r)
			}
			sb.WriteString(indent + "}\n")
		case len(item.FontFace) > 0:
			writeRule(indent, Rule{Selector: "@font-face", Declarations: item.FontFace})
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// String returns serialized stylesheet without indentation.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	_ = s.WriteTo(&sb, "")
	return sb.String()
}
