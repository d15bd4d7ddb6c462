package rtf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v3"

	"rtfhtml/common"
)

// Decode reads single document produced by the parser in requested format.
// Unknown fields are ignored: parser output carries tables (fonts, colors)
// already folded into styles.
func Decode(r io.Reader, format common.InputFmt) (*Document, error) {
	doc := &Document{}
	switch format {
	case common.InputFmtJson:
		if err := json.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("unable to decode JSON document: %w", err)
		}
	case common.InputFmtYaml:
		if err := yaml.NewDecoder(r).Decode(doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("unable to decode YAML document: empty input")
			}
			return nil, fmt.Errorf("unable to decode YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
	return doc, nil
}
