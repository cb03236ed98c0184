package schema

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// LoadMetadata reads schema metadata from a YAML file, typically one
// written by SaveMetadata or the querykit introspect command.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading schema metadata: %w", err)
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parsing schema metadata %s: %w", path, err)
	}
	return meta, nil
}

// SaveMetadata writes schema metadata to a YAML file.
func SaveMetadata(path string, meta Metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding schema metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing schema metadata: %w", err)
	}
	return nil
}
