package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML material document from disk and resolves it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a YAML material document and resolves it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := doc.Resolve(); err != nil {
		return nil, err
	}
	return &doc, nil
}
