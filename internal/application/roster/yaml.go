package roster

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a roster document. Unknown keys are rejected so that a
// misspelled field does not silently drop data.
func ParseYAML(data []byte) (Document, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, fmt.Errorf("parsing roster yaml: %w", err)
	}
	return doc, nil
}
