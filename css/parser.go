package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets and inline declaration lists.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Rulesets, @media and @font-face
// blocks are kept, other @-rules are dropped with a warning. The optional
// source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
				sheet.Warnings = append(sheet.Warnings, "parse error: "+parser.Err().Error())
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media":
				query := joinTokens(parser.Values())
				rules := p.parseRulesets(parser, css.EndAtRuleGrammar)
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{MediaBlock: &MediaBlock{Query: query, Rules: rules}})
			case "@font-face":
				decls := p.parseDeclarations(parser, css.EndAtRuleGrammar)
				if len(decls) > 0 {
					sheet.Items = append(sheet.Items, StylesheetItem{FontFace: decls})
				}
			default:
				skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule dropped: "+atRule)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule dropped: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, css.EndRulesetGrammar)
			for _, sel := range selectors {
				rule := Rule{Selector: sel, Declarations: append(Declarations(nil), decls...)}
				sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
			}
		}
	}
}

// ParseInline parses content of a style attribute.
func (p *Parser) ParseInline(text string) Declarations {
	parser := css.NewParser(parse.NewInputString(text), true)
	return p.parseDeclarations(parser, css.ErrorGrammar)
}

func (p *Parser) parseRulesets(parser *css.Parser, end css.GrammarType) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, end:
			return rules
		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, css.EndRulesetGrammar)
			for _, sel := range selectors {
				rules = append(rules, Rule{Selector: sel, Declarations: append(Declarations(nil), decls...)})
			}
		}
	}
}

// parseDeclarations collects declarations until end grammar (or end of input).
func (p *Parser) parseDeclarations(parser *css.Parser, end css.GrammarType) Declarations {
	var decls Declarations
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, end:
			return decls
		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				p.log.Debug("Skipping empty declaration", zap.ByteString("property", data))
				continue
			}
			decls.Add(strings.ToLower(string(data)), joinTokens(values))
		case css.CustomPropertyGrammar:
			continue
		}
	}
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseSelectors splits grouped selector into individual selectors.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// joinTokens builds value text collapsing whitespace runs into single space.
func joinTokens(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
