package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDescriptor reads a descriptor from a YAML or JSON document whose top
// level is a mapping. An empty document yields an empty, non-nil descriptor.
func LoadDescriptor(r io.Reader) (Descriptor, error) {
	var d Descriptor
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schema: decode descriptor: %w", err)
	}

	if d == nil {
		d = Descriptor{}
	}

	return d, nil
}

// LoadDescriptorFile reads a descriptor from the file at path.
func LoadDescriptorFile(path string) (Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schema: open descriptor: %w", err)
	}
	defer f.Close()

	return LoadDescriptor(f)
}
