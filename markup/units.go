package markup

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"rtfhtml/css"
	"rtfhtml/rtf"
)

// PointsFromTwips converts twentieths of a point to points.
func PointsFromTwips(v int) float64 {
	return float64(v) / 20
}

// PointsFromHalfPoints converts half-points (font sizes) to points.
func PointsFromHalfPoints(v int) float64 {
	return float64(v) / 2
}

// FormatPoints renders length in points with the shortest exact decimal
// representation, 72 -> "72pt", 0.75 -> "0.75pt".
func FormatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "pt"
}

// ColorsEqual compares two colors channel by channel.
func ColorsEqual(a, b rtf.Color) bool {
	return a.Equal(b)
}

// ColorValue renders color in functional RGB notation.
func ColorValue(c rtf.Color) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.Red, c.Green, c.Blue)
}

var genericFamilies = map[rtf.FontFamily]string{
	rtf.FontFamilyRoman:  "serif",
	rtf.FontFamilySwiss:  "sans-serif",
	rtf.FontFamilyScript: "cursive",
	rtf.FontFamilyDecor:  "fantasy",
	rtf.FontFamilyModern: "sans-serif",
	rtf.FontFamilyTech:   "monospace",
	rtf.FontFamilyBidi:   "serif",
}

// FontFamilyHint returns generic CSS family to fall back to.
func FontFamilyHint(family rtf.FontFamily) (string, bool) {
	generic, ok := genericFamilies[family]
	return generic, ok
}

// DefaultSymbolFonts lists fonts whose glyphs are pictures rather than
// letters, no font-family is ever emitted for them.
var DefaultSymbolFonts = []string{"ZapfDingbatsITC"}

var variantSuffix = regexp.MustCompile(`-\w+$`)

// FontDeclaration builds font-family declaration for font. Trailing variant
// suffix ("Helvetica-Bold") is dropped and generic family appended when
// known. Fonts without name and fonts from symbolFonts (compared after
// suffix removal) produce nothing.
func FontDeclaration(font rtf.Font, symbolFonts []string) (css.Declaration, bool) {
	name := variantSuffix.ReplaceAllString(font.Name, "")
	if name == "" || slices.Contains(symbolFonts, name) {
		return css.Declaration{}, false
	}
	if generic, ok := FontFamilyHint(font.Family); ok {
		name += ", " + generic
	}
	return css.Declaration{Property: "font-family", Value: name}, true
}
