package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SkipList is a list of rule selectors that also accepts a bare scalar
// in YAML, so both of these parse:
//
//	rules:
//	  skip: all
//	rules:
//	  skip: [14, wrap]
type SkipList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SkipList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return fmt.Errorf("decode skip value: %w", err)
		}
		if single == "" {
			*s = nil
			return nil
		}
		*s = SkipList{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("decode skip list: %w", err)
		}
		*s = SkipList(list)
		return nil
	default:
		return fmt.Errorf("skip must be a string or a list, got %v node", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler.
// A single "all" entry round-trips back to the scalar form.
func (s SkipList) MarshalYAML() (any, error) {
	if len(s) == 1 && s[0] == "all" {
		return "all", nil
	}
	return []string(s), nil
}

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.Rules.Skip != nil {
		clone.Rules.Skip = make(SkipList, len(c.Rules.Skip))
		copy(clone.Rules.Skip, c.Rules.Skip)
	}
	if c.Rules.Include != nil {
		clone.Rules.Include = make([]string, len(c.Rules.Include))
		copy(clone.Rules.Include, c.Rules.Include)
	}

	return &clone
}
