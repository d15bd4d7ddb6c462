package convert

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"rtfhtml/common"
	"rtfhtml/config"
	"rtfhtml/css"
	"rtfhtml/markup"
)

// newRenderer prepares renderer for the whole run, template and stylesheet
// files are read once.
func newRenderer(cfg *config.DocumentConfig, log *zap.Logger) (*markup.Renderer, error) {
	opts, err := rendererOptions(cfg, log)
	if err != nil {
		return nil, err
	}
	return markup.New(log, opts...), nil
}

func rendererOptions(cfg *config.DocumentConfig, log *zap.Logger) ([]markup.Option, error) {
	tmpl, err := loadTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}
	opts := []markup.Option{
		markup.WithStyle(cfg.Style),
		markup.WithParaBreaks(cfg.ParaBreaks),
		markup.WithParaTag(cfg.ParaTag),
		markup.WithTemplate(tmpl),
		markup.WithDisableFonts(cfg.DisableFonts),
		markup.WithSymbolFonts(cfg.SymbolFonts),
	}
	if cfg.StylesheetPath != "" {
		sheet, err := loadStylesheet(cfg.StylesheetPath, log)
		if err != nil {
			return nil, err
		}
		opts = append(opts, markup.WithStylesheet(sheet))
	}
	log.Debug("Renderer configured",
		zap.Stringer("template", cfg.Template.Kind), zap.String("para_tag", cfg.ParaTag), zap.Bool("disable_fonts", cfg.DisableFonts))
	return opts, nil
}

func loadTemplate(cfg config.TemplateConfig) (markup.Template, error) {
	if cfg.Kind != common.TemplateKindCustom {
		return markup.BuiltinTemplate(cfg.Kind)
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("custom template requested but no template path specified")
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to read template from %q: %w", cfg.Path, err)
	}
	return markup.NewTextTemplate(cfg.Path, string(data))
}

func loadStylesheet(path string, log *zap.Logger) (*css.Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read stylesheet from %q: %w", path, err)
	}
	sheet := css.NewParser(log).Parse(data, path)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet problem", zap.String("file", path), zap.String("warning", w))
	}
	return sheet, nil
}
