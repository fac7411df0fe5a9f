// Package config defines the configuration types for po4a-man. These
// are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"strings"

	"github.com/comradekingu/po4a/pkg/nroff"
)

// OutputFormat specifies the diagnostics output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Config is the root configuration structure for po4a-man.
type Config struct {
	// GroffCode is the policy for .de/.ie/.if blocks: fail, verbatim or
	// translate.
	GroffCode string `yaml:"groff_code"`

	// Charset names the input charset used to pick the non-breaking
	// space sentinel.
	Charset string `yaml:"charset"`

	// Macro table amendments, comma-separated macro names in YAML or
	// repeated flags on the CLI.
	Untranslated    []string `yaml:"untranslated"`
	NoArg           []string `yaml:"noarg"`
	TranslateJoined []string `yaml:"translate_joined"`
	TranslateEach   []string `yaml:"translate_each"`
	Inline          []string `yaml:"inline"`

	// NoWrap lists additional begin:end no-wrap macro pairs.
	NoWrap []string `yaml:"no_wrap"`

	// Ignore contains glob patterns for files to skip during
	// discovery.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Verbose increases diagnostic chatter.
	Verbose bool `yaml:"-"`

	// Debug enables the named parser debug streams.
	Debug []string `yaml:"-"`

	// Format names the diagnostics output format. It is validated and
	// merged, but no command reads it: diagnostics are always rendered
	// as styled text.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GroffCode: string(nroff.GroffCodeFail),
		Format:    FormatText,
	}
}

// ParserOptions maps the configuration onto the nroff parser options.
func (c *Config) ParserOptions() nroff.Options {
	return nroff.Options{
		GroffCode:       nroff.GroffCodePolicy(c.GroffCode),
		Untranslated:    splitLists(c.Untranslated),
		NoArg:           splitLists(c.NoArg),
		TranslateJoined: splitLists(c.TranslateJoined),
		TranslateEach:   splitLists(c.TranslateEach),
		Inline:          splitLists(c.Inline),
		NoWrap:          splitLists(c.NoWrap),
		Charset:         c.Charset,
		Verbose:         c.Verbose,
		Debug:           c.Debug,
	}
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	if c.GroffCode != "" && !nroff.GroffCodePolicy(c.GroffCode).Valid() {
		return &ValidationError{Field: "groff_code", Value: c.GroffCode,
			Hint: "must be fail, verbatim or translate"}
	}
	switch c.Format {
	case "", FormatText, FormatJSON:
	default:
		return &ValidationError{Field: "format", Value: string(c.Format),
			Hint: "must be text or json"}
	}
	return nil
}

// ValidationError describes one rejected configuration value.
type ValidationError struct {
	Field string
	Value string
	Hint  string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + " " + e.Value + ": " + e.Hint
}

// splitLists flattens comma-separated list entries, so both
// "untranslated: [a, b]" and "untranslated: [a,b]" work, as does a
// single comma-joined CLI flag value.
func splitLists(lists []string) []string {
	var out []string
	for _, l := range lists {
		for _, item := range strings.Split(l, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
