// SPDX-FileCopyrightText: 2026 propmap
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for propmap.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config represents the propmap configuration.
type Config struct {
	// Profile is the CMS profile to decode exports with (auto, drupal7, drupal8, canonical)
	Profile string `mapstructure:"profile" yaml:"profile" json:"profile"`

	// Output is the output file path for the generated descriptor document
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Format is the output format (yaml, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Shape is the descriptor layout (tree, flattened)
	Shape string `mapstructure:"shape" yaml:"shape" json:"shape"`

	// Source contains export discovery configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Mapping contains conversion engine configuration
	Mapping MappingConfig `mapstructure:"mapping" yaml:"mapping" json:"mapping"`

	// Report contains issue report configuration
	Report ReportConfig `mapstructure:"report" yaml:"report" json:"report"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`

	// Log contains logging configuration
	Log LogConfig `mapstructure:"log" yaml:"log" json:"log"`
}

// SourceConfig contains export discovery configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// MappingConfig contains conversion engine configuration.
type MappingConfig struct {
	// Category is the dialog category of generated properties
	Category string `mapstructure:"category" yaml:"category" json:"category"`

	// Cache enables memoization of field conversions
	Cache bool `mapstructure:"cache" yaml:"cache" json:"cache"`

	// Severity overrides rule severities (rule -> error, warn, required)
	Severity map[string]string `mapstructure:"severity" yaml:"severity,omitempty" json:"severity,omitempty"`

	// SuggestionProviders maps channel ids to suggestion provider names
	SuggestionProviders map[string]string `mapstructure:"suggestionProviders" yaml:"suggestionProviders,omitempty" json:"suggestionProviders,omitempty"`

	// ProviderEntities lists the term entities each suggestion provider handles
	ProviderEntities map[string][]string `mapstructure:"providerEntities" yaml:"providerEntities,omitempty" json:"providerEntities,omitempty"`
}

// ReportConfig contains issue report configuration.
type ReportConfig struct {
	// Format is the report format (table, markdown, csv, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`

	// OnChange is the command to run on change
	OnChange string `mapstructure:"onChange" yaml:"onChange" json:"onChange"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `mapstructure:"level" yaml:"level" json:"level"`

	// Format is the log format (text, json)
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"propmap.yaml",
	"propmap.json",
	".propmap.yaml",
	".propmap.json",
}

var (
	supportedProfiles      = []string{"auto", "canonical", "drupal7", "drupal8"}
	supportedFormats       = []string{"yaml", "json"}
	supportedShapes        = []string{"tree", "flattened"}
	supportedReportFormats = []string{"table", "markdown", "csv", "json"}
	supportedLogLevels     = []string{"debug", "info", "warn", "error"}
	supportedLogFormats    = []string{"text", "json"}
	supportedSeverities    = []string{"error", "warn", "required"}
)

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Profile: "auto",
		Output:  "properties.yaml",
		Format:  "yaml",
		Shape:   "tree",
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: []string{"**/*.yaml", "**/*.yml", "**/*.json"},
			Exclude: defaultExclude(),
		},
		Mapping: MappingConfig{
			Category: "GeneralFields",
			Cache:    true,
		},
		Report: ReportConfig{
			Format: "table",
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

func defaultExclude() []string {
	return []string{
		".git/**",
		"**/testdata/**",
		"node_modules/**",
		"propmap.yaml",
		"propmap.json",
		".propmap.yaml",
		".propmap.json",
		"properties.yaml",
		"properties.json",
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. propmap.yaml
// 2. propmap.json
// 3. .propmap.yaml
// 4. .propmap.json
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("profile", "auto")
	v.SetDefault("output", "properties.yaml")
	v.SetDefault("format", "yaml")
	v.SetDefault("shape", "tree")
	v.SetDefault("source.paths", []string{"."})
	v.SetDefault("source.include", []string{"**/*.yaml", "**/*.yml", "**/*.json"})
	v.SetDefault("source.exclude", defaultExclude())
	v.SetDefault("mapping.category", "GeneralFields")
	v.SetDefault("mapping.cache", true)
	v.SetDefault("report.format", "table")
	v.SetDefault("watch.debounce", 500)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	check := func(field, value string, supported []string) {
		if value != "" && !contains(supported, value) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unsupported value %q, must be one of: %s", value, strings.Join(supported, ", ")),
			})
		}
	}

	check("profile", c.Profile, supportedProfiles)
	check("format", c.Format, supportedFormats)
	check("shape", c.Shape, supportedShapes)
	check("report.format", c.Report.Format, supportedReportFormats)
	check("log.level", c.Log.Level, supportedLogLevels)
	check("log.format", c.Log.Format, supportedLogFormats)

	for _, rule := range sortedKeys(c.Mapping.Severity) {
		mode := strings.ToLower(c.Mapping.Severity[rule])
		if !contains(supportedSeverities, mode) {
			errs = append(errs, ValidationError{
				Field:   "mapping.severity." + rule,
				Message: fmt.Sprintf("unsupported severity %q, must be one of: %s", c.Mapping.Severity[rule], strings.Join(supportedSeverities, ", ")),
			})
		}
	}

	for _, channel := range sortedKeys(c.Mapping.SuggestionProviders) {
		if _, err := cast.ToIntE(channel); err != nil {
			errs = append(errs, ValidationError{
				Field:   "mapping.suggestionProviders." + channel,
				Message: "channel id must be an integer",
			})
		}
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if c.Output == "" {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: "output is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ChannelProviders returns the suggestion provider per channel id. Entries
// with a non-numeric channel are skipped; Validate reports them.
func (c *Config) ChannelProviders() map[int]string {
	out := make(map[int]string, len(c.Mapping.SuggestionProviders))
	for channel, provider := range c.Mapping.SuggestionProviders {
		id, err := cast.ToIntE(channel)
		if err != nil {
			continue
		}
		out[id] = provider
	}
	return out
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
