// Package schema describes the property layout of bridged object types.
// Schemas are declared in YAML and drive bulk conversion between positional
// engine arrays and named native dictionaries.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Property is one named slot of an object schema. Type is advisory metadata
// ("number", "string", "object", ...); conversion does not enforce it.
type Property struct {
	Name string `yaml:"name"`
	Type string `yaml:"type,omitempty"`
}

// ObjectSchema is the ordered property layout of one bridged object type.
// Property order is significant: positional conversions pair array elements
// with properties by position.
type ObjectSchema struct {
	Name       string     `yaml:"name"`
	Properties []Property `yaml:"properties"`
}

// PropertyNames returns the schema's property names in declaration order.
func (s *ObjectSchema) PropertyNames() []string {
	names := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		names[i] = p.Name
	}
	return names
}

// Validate checks structural well-formedness: a schema name, at least a
// name per property, and no duplicate property names.
func (s *ObjectSchema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	seen := make(map[string]bool, len(s.Properties))
	for i, p := range s.Properties {
		if p.Name == "" {
			return fmt.Errorf("schema %q: property %d has no name", s.Name, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("schema %q: duplicate property %q", s.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Load parses and validates a YAML schema document.
func Load(data []byte) (*ObjectSchema, error) {
	var s ObjectSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads and parses a YAML schema file.
func LoadFile(path string) (*ObjectSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}
