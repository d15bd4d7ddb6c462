package markup

import (
	"slices"

	"rtfhtml/css"
	"rtfhtml/rtf"
)

const (
	DefaultParaBreaks = "\n\n"
	DefaultParaTag    = "p"
)

type options struct {
	style        rtf.Style
	paraBreaks   string
	paraTag      string
	template     Template
	disableFonts bool
	symbolFonts  []string
	stylesheet   *css.Stylesheet
}

func defaultOptions() options {
	return options{
		paraBreaks:  DefaultParaBreaks,
		paraTag:     DefaultParaTag,
		template:    HTMLTemplate(),
		symbolFonts: slices.Clone(DefaultSymbolFonts),
	}
}

// Option changes renderer configuration.
type Option func(*options)

// WithStyle lays root style overrides on top of document defaults. Multiple
// calls accumulate, later ones win.
func WithStyle(s rtf.Style) Option {
	return func(o *options) {
		o.style = rtf.Merge(o.style, s)
	}
}

// WithParaBreaks sets separator placed between rendered paragraphs.
func WithParaBreaks(sep string) Option {
	return func(o *options) {
		o.paraBreaks = sep
	}
}

// WithParaTag sets block element name used for paragraphs, empty name keeps
// default.
func WithParaTag(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.paraTag = tag
		}
	}
}

// WithTemplate sets strategy assembling final document.
func WithTemplate(t Template) Option {
	return func(o *options) {
		if t != nil {
			o.template = t
		}
	}
}

// WithDisableFonts suppresses any font-family emission.
func WithDisableFonts(disable bool) Option {
	return func(o *options) {
		o.disableFonts = disable
	}
}

// WithSymbolFonts replaces list of fonts for which no font-family is emitted.
func WithSymbolFonts(names []string) Option {
	return func(o *options) {
		o.symbolFonts = slices.Clone(names)
	}
}

// WithStylesheet adds rules to the document level style block.
func WithStylesheet(sheet *css.Stylesheet) Option {
	return func(o *options) {
		o.stylesheet = sheet
	}
}
