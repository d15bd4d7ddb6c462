// Package common keeps enums shared between configuration and conversion code
// so config does not have to import renderer packages.
package common

//go:generate go tool go-enum --marshal --names

// Specification of the output template used to assemble the final document.
// ENUM(html, xhtml, fragment, custom)
type TemplateKind int

// Ext returns extension of the produced file.
func (k TemplateKind) Ext() string {
	switch k {
	case TemplateKindXhtml:
		return ".xhtml"
	default:
		return ".html"
	}
}

// Specification of input document encoding format.
// ENUM(json, yaml)
type InputFmt int
