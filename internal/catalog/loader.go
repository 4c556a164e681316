package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/projects.yaml
var defaultPayload []byte

// payload is the on-disk shape of a project catalog.
type payload struct {
	Projects []ProjectRecord `yaml:"projects"`
}

// Parse decodes a YAML payload and builds a catalog from it.
// Unknown fields are rejected so typos surface at load time.
func Parse(data []byte, opts ...Option) (*Catalog, error) {
	return Load(bytes.NewReader(data), opts...)
}

// Load reads a YAML payload from r.
func Load(r io.Reader, opts ...Option) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p payload
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil, opts...)
		}
		return nil, fmt.Errorf("%w: decode payload: %v", ErrInvalidCatalog, err)
	}
	return New(p.Projects, opts...)
}

// LoadFile reads the payload at path.
func LoadFile(path string, opts ...Option) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	opts = append([]Option{WithSource(path)}, opts...)
	return Load(f, opts...)
}

// Default builds the catalog compiled into the binary.
func Default(opts ...Option) (*Catalog, error) {
	opts = append([]Option{WithSource("(embedded)")}, opts...)
	return Parse(defaultPayload, opts...)
}

// Open loads the payload at path, or the embedded payload when path is empty.
func Open(path string, opts ...Option) (*Catalog, error) {
	if path == "" {
		return Default(opts...)
	}
	return LoadFile(path, opts...)
}
