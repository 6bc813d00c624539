// Package registry loads the domain registry (routing keywords, context
// recipes and router thresholds) from YAML.
package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
)

//go:embed registry.yaml
var defaultYAML []byte

type registryFile struct {
	Router  domain.RouterConfig `yaml:"router"`
	Domains []domainEntry       `yaml:"domains"`
}

type domainEntry struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Icon        string             `yaml:"icon"`
	Color       string             `yaml:"color"`
	Description string             `yaml:"description"`
	Keywords    []string           `yaml:"keywords"`
	Builder     domain.BuilderSpec `yaml:"builder"`
}

// Default returns the registry compiled into the binary.
func Default() (*domain.Registry, error) {
	return Parse(defaultYAML)
}

// DefaultYAML returns the embedded registry document, e.g. as a template for overrides.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Load returns the registry at path, or the embedded default when path is empty.
func Load(path string) (*domain.Registry, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes a registry document. Unknown keys are rejected so typos in
// overrides fail at startup instead of silently changing routing.
func Parse(data []byte) (*domain.Registry, error) {
	f := registryFile{Router: domain.DefaultRouterConfig()}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty registry document", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	domains := make([]domain.Domain, 0, len(f.Domains))
	for _, e := range f.Domains {
		id, err := domain.ParseDomainID(e.ID)
		if err != nil {
			return nil, err
		}
		domains = append(domains, domain.Domain{
			ID:          id,
			Name:        e.Name,
			Icon:        e.Icon,
			Color:       e.Color,
			Description: e.Description,
			Keywords:    e.Keywords,
			Builder:     e.Builder,
		})
	}

	return domain.NewRegistry(domains, f.Router)
}
