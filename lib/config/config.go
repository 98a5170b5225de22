// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the environment variable read by Load.
const EnvironmentVariable = "ASSETPACK_CONFIG"

// MainJSTarget is the name of the built-in target.
const MainJSTarget = "main_js"

// Config is the master configuration for assetpack.
type Config struct {
	// DefaultTarget is used when no --target flag is given.
	DefaultTarget string `yaml:"default_target"`

	// Targets maps target names to their settings. Targets defined in
	// a file replace built-in targets of the same name; built-ins not
	// mentioned in the file remain available.
	Targets map[string]Target `yaml:"targets"`

	// Compression applies to every target without its own section.
	Compression CompressionConfig `yaml:"compression"`

	// Layout controls array rendering.
	Layout LayoutConfig `yaml:"layout"`

	// path is the file the configuration was loaded from, if any.
	path string
}

// Target is one asset and the source file it is packed into.
type Target struct {
	// Source is the asset used when no path argument is given and
	// discovery finds nothing.
	Source string `yaml:"source"`

	// Destination is the file rewritten when no path argument is given
	// and discovery finds nothing.
	Destination string `yaml:"destination"`

	// HeaderMarker and FooterMarker bound the replaced region.
	HeaderMarker string `yaml:"header_marker"`
	FooterMarker string `yaml:"footer_marker"`

	// Discovery configures the directory search that runs before the
	// interactive prompt.
	Discovery DiscoveryConfig `yaml:"discovery"`

	// Compression overrides the top-level compression settings.
	Compression *CompressionConfig `yaml:"compression,omitempty"`
}

// DiscoveryConfig configures the search for conventional file names.
type DiscoveryConfig struct {
	// SourceRoot is searched for a file with Source's base name.
	SourceRoot string `yaml:"source_root"`

	// DestinationRoot is searched for a file with Destination's base
	// name.
	DestinationRoot string `yaml:"destination_root"`

	// Recursive extends the search to subdirectories.
	// Default: false (only the root directory itself)
	Recursive bool `yaml:"recursive"`
}

// CompressionConfig selects the payload encoding.
type CompressionConfig struct {
	// Format is one of gzip, zstd, lz4, none.
	// Default: gzip
	Format string `yaml:"format"`

	// Level is the format-specific level; 0 selects the default.
	Level int `yaml:"level"`

	// Stamp records the source name and modification time in the gzip
	// header. Stamped output is not reproducible across checkouts.
	// Default: false
	Stamp bool `yaml:"stamp"`
}

// LayoutConfig controls how the array is rendered.
type LayoutConfig struct {
	// RowWidth is the number of literals per row.
	// Default: 16
	RowWidth int `yaml:"row_width"`

	// Indent starts every row.
	// Default: two spaces
	Indent string `yaml:"indent"`

	// LineEnding is "crlf" or "lf".
	// Default: crlf
	LineEnding string `yaml:"line_ending"`
}

// Default returns the built-in configuration. Paths are relative to
// the firmware Tools directory, where the packer is run from.
func Default() *Config {
	return &Config{
		DefaultTarget: MainJSTarget,
		Targets: map[string]Target{
			MainJSTarget: {
				Source:       "../RTK_Surveyor/AP-Config/src/main.js",
				Destination:  "../RTK_Surveyor/Form.h",
				HeaderMarker: "static const uint8_t main_js[] PROGMEM = {",
				FooterMarker: "}; ///main_js",
				Discovery: DiscoveryConfig{
					SourceRoot:      "../RTK_Surveyor/AP-Config/src",
					DestinationRoot: "../RTK_Surveyor",
				},
			},
		},
		Compression: CompressionConfig{
			Format: "gzip",
		},
		Layout: LayoutConfig{
			RowWidth:   16,
			Indent:     "  ",
			LineEnding: "crlf",
		},
	}
}

// Load loads configuration from the file named by ASSETPACK_CONFIG, or
// returns Default when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, on top of
// the built-in defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from, or "" for
// the built-in default.
func (c *Config) Path() string {
	return c.path
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so the stripped document goes
		// through the same decoder and struct tags.
		data = jsonc.ToJSON(data)
	}

	builtin := c.Targets
	c.Targets = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, target := range builtin {
		if _, defined := c.Targets[name]; defined {
			continue
		}
		if c.Targets == nil {
			c.Targets = make(map[string]Target)
		}
		c.Targets[name] = target
	}

	c.path = path
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	if c.path != "" {
		vars["CONFIG_DIR"] = filepath.Dir(c.path)
	}

	for name, target := range c.Targets {
		target.Source = expandVars(target.Source, vars)
		target.Destination = expandVars(target.Destination, vars)
		target.Discovery.SourceRoot = expandVars(target.Discovery.SourceRoot, vars)
		target.Discovery.DestinationRoot = expandVars(target.Discovery.DestinationRoot, vars)
		c.Targets[name] = target
	}
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	validFormats     = []string{"gzip", "zstd", "lz4", "none"}
	validLineEndings = []string{"crlf", "lf"}
)

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Targets) == 0 {
		errs = append(errs, fmt.Errorf("at least one target is required"))
	}
	if c.DefaultTarget != "" {
		if _, ok := c.Targets[c.DefaultTarget]; !ok {
			errs = append(errs, fmt.Errorf("default_target %q is not defined", c.DefaultTarget))
		}
	}

	errs = append(errs, c.Compression.validate("compression")...)

	for _, name := range c.TargetNames() {
		target := c.Targets[name]
		if target.HeaderMarker == "" {
			errs = append(errs, fmt.Errorf("targets.%s.header_marker is required", name))
		}
		if target.FooterMarker == "" {
			errs = append(errs, fmt.Errorf("targets.%s.footer_marker is required", name))
		}
		if target.HeaderMarker != "" && target.HeaderMarker == target.FooterMarker {
			errs = append(errs, fmt.Errorf("targets.%s: header and footer markers are identical", name))
		}
		if target.Compression != nil {
			errs = append(errs, target.Compression.validate("targets."+name+".compression")...)
		}
	}

	if c.Layout.RowWidth <= 0 {
		errs = append(errs, fmt.Errorf("layout.row_width must be > 0"))
	}
	if !contains(validLineEndings, c.Layout.LineEnding) {
		errs = append(errs, fmt.Errorf("layout.line_ending must be one of %v, got %q",
			validLineEndings, c.Layout.LineEnding))
	}

	return errors.Join(errs...)
}

func (compression CompressionConfig) validate(prefix string) []error {
	var errs []error
	if compression.Format != "" && !contains(validFormats, compression.Format) {
		errs = append(errs, fmt.Errorf("%s.format must be one of %v, got %q",
			prefix, validFormats, compression.Format))
	}
	if compression.Level < 0 {
		errs = append(errs, fmt.Errorf("%s.level must be >= 0", prefix))
	}
	return errs
}

// TargetNames returns the defined target names in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Target returns the named target, or the default target when name is
// empty.
func (c *Config) Target(name string) (Target, error) {
	if name == "" {
		name = c.DefaultTarget
	}
	if name == "" {
		return Target{}, fmt.Errorf("no target specified and no default_target configured")
	}
	target, ok := c.Targets[name]
	if !ok {
		return Target{}, fmt.Errorf("unknown target %q (defined: %s)", name, strings.Join(c.TargetNames(), ", "))
	}
	return target, nil
}

// CompressionFor returns the effective compression settings of target.
func (c *Config) CompressionFor(target Target) CompressionConfig {
	if target.Compression != nil {
		return *target.Compression
	}
	return c.Compression
}

// LineEndingBytes returns the literal line ending for the configured
// name.
func (layout LayoutConfig) LineEndingBytes() string {
	if layout.LineEnding == "lf" {
		return "\n"
	}
	return "\r\n"
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
