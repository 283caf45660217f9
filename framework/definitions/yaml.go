package definitions

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-beans/framework/beans"
)

// parseYAML decodes the mapping form. Unknown keys are rejected so a typo
// like "propeties" cannot silently drop values.
func parseYAML(data []byte) ([]beans.Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	return doc.definitions(), nil
}
