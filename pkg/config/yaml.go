package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
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

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Merge overlays non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.GroffCode != "" {
		c.GroffCode = other.GroffCode
	}
	if other.Charset != "" {
		c.Charset = other.Charset
	}
	c.Untranslated = append(c.Untranslated, other.Untranslated...)
	c.NoArg = append(c.NoArg, other.NoArg...)
	c.TranslateJoined = append(c.TranslateJoined, other.TranslateJoined...)
	c.TranslateEach = append(c.TranslateEach, other.TranslateEach...)
	c.Inline = append(c.Inline, other.Inline...)
	c.NoWrap = append(c.NoWrap, other.NoWrap...)
	c.Ignore = append(c.Ignore, other.Ignore...)
	if other.Verbose {
		c.Verbose = true
	}
	c.Debug = append(c.Debug, other.Debug...)
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.Jobs != 0 {
		c.Jobs = other.Jobs
	}
}
