package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"rtfhtml/config"
	"rtfhtml/state"
)

// buildOutputPath returns output file path for converted document. Name is
// either source file name or result of user defined template, which may
// contain subdirectories. Source directory structure is kept unless NoDirs
// is requested. Every name segment is cleaned and if requested transliterated.
func buildOutputPath(values Values, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	ext := env.Cfg.Document.Template.Kind.Ext()

	if env.Cfg.Document.OutputNameTemplate != "" {
		if name := expandOutputNameTemplate(values, env); name != "" {
			return assemblePathWithSubdirs(outDir, name, ext, env)
		}
	}
	return filepath.Join(outDir, buildDefaultFileName(src, ext, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildDefaultFileName(src, ext string, env *state.LocalEnv) string {
	return cleanPathSegment(strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)), env) + ext
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	name, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(filepath.FromSlash(name))
}

// assemblePathWithSubdirs turns expanded template (possibly with path
// separators) into full output path.
func assemblePathWithSubdirs(outDir, name, ext string, env *state.LocalEnv) string {
	segments := splitPath(name)
	if len(segments) == 0 {
		return outDir
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+ext)
	return filepath.Join(parts...)
}

// splitPath splits path into its non-empty segments, "." and ".." are
// dropped so template could not escape destination directory.
func splitPath(path string) []string {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == os.PathSeparator || r == '/'
	})
	return slices.DeleteFunc(segments, func(s string) bool {
		return s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
