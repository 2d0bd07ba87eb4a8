// ============================================================================
// Mini-PL - Interpreter Toolchain
// ============================================================================
//
// Package:     config
// Description: Typed configuration for the minipl CLI and playground server,
//              loaded from TOML or YAML
// Author:      Mike Stoffels
// Created:     2025-10-17
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "MINIPL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general" yaml:"general"`
	Interpreter InterpreterConfig `toml:"interpreter" yaml:"interpreter"`
	History     HistoryConfig     `toml:"history" yaml:"history"`
	Playground  PlaygroundConfig  `toml:"playground" yaml:"playground"`

	// path of the file the configuration was read from, empty for defaults
	path string
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogOutput string `toml:"log_output" yaml:"log_output"`
}

// InterpreterConfig holds evaluation limits
type InterpreterConfig struct {
	MaxIterations int64 `toml:"max_iterations" yaml:"max_iterations"`
	MaxDepth      int   `toml:"max_depth" yaml:"max_depth"`
	EchoInput     bool  `toml:"echo_input" yaml:"echo_input"`
}

// HistoryConfig holds run history settings
type HistoryConfig struct {
	Enabled       bool   `toml:"enabled" yaml:"enabled"`
	Path          string `toml:"path" yaml:"path"`
	RetentionDays int    `toml:"retention_days" yaml:"retention_days"`
}

// PlaygroundConfig holds the WebSocket playground server settings
type PlaygroundConfig struct {
	Host           string   `toml:"host" yaml:"host"`
	Port           int      `toml:"port" yaml:"port"`
	ReadTimeout    Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout" yaml:"write_timeout"`
	RunTimeout     Duration `toml:"run_timeout" yaml:"run_timeout"`
	MaxSourceBytes int      `toml:"max_source_bytes" yaml:"max_source_bytes"`
	MaxIterations  int64    `toml:"max_iterations" yaml:"max_iterations"`
	CacheSize      int      `toml:"cache_size" yaml:"cache_size"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Format is a configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat determines the format from the file extension; TOML is the default
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Load").
				WithDetail("path", path)
		}
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load")
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, err
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes configuration content, then applies defaults and
// environment overrides
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Parse")
	}

	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by MINIPL_CONFIG, or the first file
// found in the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the default config locations in lookup order
func SearchPaths() []string {
	paths := []string{
		"./configs/minipl.toml",
		"./minipl.toml",
		"./minipl.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config/minipl/minipl.toml"))
	}
	return paths
}

// Path returns the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "minipl"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.LogOutput == "" {
		c.General.LogOutput = "stderr"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "./data/history.db"
	}
	if c.History.RetentionDays == 0 {
		c.History.RetentionDays = 30
	}

	// Playground
	if c.Playground.Host == "" {
		c.Playground.Host = "127.0.0.1"
	}
	if c.Playground.Port == 0 {
		c.Playground.Port = 8470
	}
	if c.Playground.ReadTimeout.Duration == 0 {
		c.Playground.ReadTimeout.Duration = 5 * time.Minute
	}
	if c.Playground.WriteTimeout.Duration == 0 {
		c.Playground.WriteTimeout.Duration = 10 * time.Second
	}
	if c.Playground.RunTimeout.Duration == 0 {
		c.Playground.RunTimeout.Duration = time.Minute
	}
	if c.Playground.MaxSourceBytes == 0 {
		c.Playground.MaxSourceBytes = 64 * 1024
	}
	if c.Playground.MaxIterations == 0 {
		c.Playground.MaxIterations = 1000000
	}
}

// applyEnv overrides single settings from MINIPL_<SECTION>_<KEY> variables
func (c *Config) applyEnv() error {
	textKeys := map[string]*string{
		"general.log_level":  &c.General.LogLevel,
		"general.log_format": &c.General.LogFormat,
		"general.log_output": &c.General.LogOutput,
		"history.path":       &c.History.Path,
		"playground.host":    &c.Playground.Host,
	}
	for key, target := range textKeys {
		if v := os.Getenv(EnvKey(key)); v != "" {
			*target = v
		}
	}

	if v := os.Getenv(EnvKey("history.enabled")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalidEnv("history.enabled", v, err)
		}
		c.History.Enabled = b
	}
	if v := os.Getenv(EnvKey("playground.port")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return invalidEnv("playground.port", v, err)
		}
		c.Playground.Port = port
	}
	if v := os.Getenv(EnvKey("interpreter.max_iterations")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return invalidEnv("interpreter.max_iterations", v, err)
		}
		c.Interpreter.MaxIterations = n
	}
	return nil
}

// EnvKey converts a config key to its environment variable name:
// history.path -> MINIPL_HISTORY_PATH
func EnvKey(key string) string {
	return "MINIPL_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func invalidEnv(key, value string, cause error) error {
	return mdwerror.Wrap(cause, fmt.Sprintf("invalid value %q for %s", value, EnvKey(key))).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.applyEnv").
		WithDetail("key", key)
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
	if c.General.LogOutput != "stderr" && c.General.LogOutput != "stdout" {
		c.General.LogOutput = os.ExpandEnv(c.General.LogOutput)
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var problems []string

	if c.Interpreter.MaxIterations < 0 {
		problems = append(problems, "interpreter.max_iterations must not be negative")
	}
	if c.Interpreter.MaxDepth < 0 {
		problems = append(problems, "interpreter.max_depth must not be negative")
	}
	if c.History.RetentionDays < 0 {
		problems = append(problems, "history.retention_days must not be negative")
	}
	if c.Playground.Port < 1 || c.Playground.Port > 65535 {
		problems = append(problems, fmt.Sprintf("playground.port %d is out of range", c.Playground.Port))
	}
	if c.Playground.MaxSourceBytes < 0 {
		problems = append(problems, "playground.max_source_bytes must not be negative")
	}

	if len(problems) > 0 {
		return mdwerror.New("invalid configuration: " + strings.Join(problems, "; ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate")
	}
	return nil
}

// PlaygroundAddress returns the listen address of the playground server
func (c *Config) PlaygroundAddress() string {
	return fmt.Sprintf("%s:%d", c.Playground.Host, c.Playground.Port)
}
