package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/fmemu/internal/util"
	"gopkg.in/yaml.v3"
)

// Log verbosity values accepted by [ConfigOverride.LogLvl]
const (
	ErrorVerbose = iota + util.MinVerbosity
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.WarnLevel

	// DefaultDrive is the letter of the only drive; the root is named "C:"
	DefaultDrive = "C"

	// DefaultMaxBaseLen is the longest allowed name before the period
	DefaultMaxBaseLen = 8

	// DefaultMaxExtLen is the longest allowed extension after the period
	DefaultMaxExtLen = 3

	// DefaultIndent is the number of spaces per depth level when rendering
	DefaultIndent = 2

	// DefaultStrictCommands keeps unknown command words silently ignored
	DefaultStrictCommands = false
)

// Config contains runtime configuration values for the emulator.
type Config struct {
	LogLvl         util.LogLevel // Internal log level (Default info)
	Drive          string        `validate:"required,len=1,alpha"` // Drive letter of the root (Default "C")
	MaxBaseLen     int           `validate:"gte=1,lte=255"`        // Max base name length (Default 8)
	MaxExtLen      int           `validate:"gte=0,lte=255"`        // Max extension length (Default 3)
	Indent         int           `validate:"gte=0,lte=16"`         // Spaces per depth level in the rendered tree (Default 2)
	StrictCommands bool          // Fail the run on unknown command words (Default false)
}

// DriveName returns the root's display name, e.g. "C:"
func (c *Config) DriveName() string {
	return strings.ToUpper(c.Drive) + ":"
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
//
// LogLvl is a verbosity between 1 (error) and 5 (trace) rather than a [util.LogLevel].
type ConfigOverride struct {
	LogLvl         *int    `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Drive          *string `yaml:"drive,omitempty" json:"drive,omitempty"`
	MaxBaseLen     *int    `yaml:"max_base_len,omitempty" json:"max_base_len,omitempty"`
	MaxExtLen      *int    `yaml:"max_ext_len,omitempty" json:"max_ext_len,omitempty"`
	Indent         *int    `yaml:"indent,omitempty" json:"indent,omitempty"`
	StrictCommands *bool   `yaml:"strict_commands,omitempty" json:"strict_commands,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:         DefaultLogLvl,
		Drive:          DefaultDrive,
		MaxBaseLen:     DefaultMaxBaseLen,
		MaxExtLen:      DefaultMaxExtLen,
		Indent:         DefaultIndent,
		StrictCommands: DefaultStrictCommands,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.LogLvl)
	}
	if override.Drive != nil {
		c.Drive = *override.Drive
	}
	if override.MaxBaseLen != nil {
		c.MaxBaseLen = *override.MaxBaseLen
	}
	if override.MaxExtLen != nil {
		c.MaxExtLen = *override.MaxExtLen
	}
	if override.Indent != nil {
		c.Indent = *override.Indent
	}
	if override.StrictCommands != nil {
		c.StrictCommands = *override.StrictCommands
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults
// and validates the result.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig(override)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
