package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type fileCatalog struct {
	Charts []Descriptor `yaml:"charts"`
}

// FromFile returns a source that reads and validates a YAML catalog when
// built.
func FromFile(path string) Source {
	return SourceFunc(func() (*Catalog, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		return Decode(path, f)
	})
}

// Decode parses a YAML catalog. Every entry must pass Validate.
func Decode(name string, r io.Reader) (*Catalog, error) {
	var fc fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode catalog %s: %w", name, err)
	}

	b := NewBuilder(name)
	for i, d := range fc.Charts {
		if err := Validate(d); err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}
		b.Add(d)
	}
	return b.Build()
}

// Encode writes descriptors in the format Decode reads.
func Encode(w io.Writer, descriptors []Descriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileCatalog{Charts: descriptors}); err != nil {
		return err
	}
	return enc.Close()
}
