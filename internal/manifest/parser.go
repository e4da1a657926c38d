package manifest

import (
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads a manifest file from disk.
func Parse(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseFS reads a manifest file from fsys.
func ParseFS(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes decodes manifest YAML. name is only used in error messages.
func ParseBytes(data []byte, name string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	if m.Type == "" {
		return nil, fmt.Errorf("parsing manifest %s: missing required 'type' field", name)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
