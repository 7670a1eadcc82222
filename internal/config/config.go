// Package config loads the installer configuration.
//
// Configuration is applied in order of increasing precedence:
//  1. Hardcoded defaults (NewConfig)
//  2. Project config (.installer.yaml or .installer.yml)
//  3. .env file next to the project config
//  4. Environment variables (INSTALLER_*)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/bjyadmin/installer/internal/errors"
)

// FileName is the primary project configuration file name.
const FileName = ".installer.yaml"

// altFileName is accepted when FileName is absent.
const altFileName = ".installer.yml"

// DotEnvFile holds INSTALLER_* defaults for hosts that cannot set
// process environment, such as shared hosting panels.
const DotEnvFile = ".env"

// Directories checked for writability, relative to the base path.
const (
	DefaultUploadDir  = "Public/Upload"
	DefaultRuntimeDir = "Runtime"
	DefaultInstallDir = "Public/install"
	DefaultConfDir    = "Admin/Common/Conf"
)

// Config represents the complete installer configuration.
type Config struct {
	Version      int                `yaml:"version" json:"version"`
	Paths        PathsConfig        `yaml:"paths" json:"paths"`
	Requirements RequirementsConfig `yaml:"requirements" json:"requirements"`
	Runtime      RuntimeConfig      `yaml:"runtime" json:"runtime"`
	Server       ServerConfig       `yaml:"server" json:"server"`
	UI           UIConfig           `yaml:"ui" json:"ui"`
}

// PathsConfig holds every directory the readiness check probes.
// Empty sub-paths are derived from Base when the config is resolved.
type PathsConfig struct {
	Base    string `yaml:"base" json:"base"`
	Upload  string `yaml:"upload" json:"upload"`
	Runtime string `yaml:"runtime" json:"runtime"`
	Install string `yaml:"install" json:"install"`
	Conf    string `yaml:"conf" json:"conf"`
}

// RequirementsConfig holds the minimum environment the admin panel needs.
type RequirementsConfig struct {
	// MinVersion is the lowest accepted interpreter version as "major.minor".
	MinVersion string `yaml:"min_version" json:"min_version"`
}

// RuntimeConfig describes how the interpreter version is discovered.
type RuntimeConfig struct {
	// Binary is the interpreter executed to report its version.
	Binary string `yaml:"binary" json:"binary"`
	// Version overrides discovery; when set, Binary is never executed.
	Version string `yaml:"version" json:"version"`
	// Timeout bounds the interpreter invocation (e.g. "5s").
	Timeout string `yaml:"timeout" json:"timeout"`
}

// ServerConfig configures the wizard HTTP server.
type ServerConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// UIConfig configures page rendering.
type UIConfig struct {
	// Language selects the message bundle: "zh" or "en".
	Language string `yaml:"language" json:"language"`
}

// NewConfig creates a new Config with sensible defaults.
// Base defaults to the current working directory.
func NewConfig() *Config {
	base, err := os.Getwd()
	if err != nil {
		base = "."
	}
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Base: base,
		},
		Requirements: RequirementsConfig{
			MinVersion: "5.3",
		},
		Runtime: RuntimeConfig{
			Binary:  "php",
			Timeout: "5s",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			LogLevel: "info",
		},
		UI: UIConfig{
			Language: "zh",
		},
	}
}

// Load loads configuration from the specified directory.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	lookup, err := envLookup(dir)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides(lookup)
	cfg.resolvePaths(dir)

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.ConfigError("invalid configuration", err).
			WithSuggestion("check " + filepath.Join(dir, FileName))
	}

	return cfg, nil
}

// loadFromFile attempts to load .installer.yaml, then .installer.yml.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{FileName, altFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return c.loadYAML(path)
		}
	}
	// No config file is fine - use defaults
	return nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeConfigNotFound,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Paths.Base != "" {
		c.Paths.Base = other.Paths.Base
	}
	if other.Paths.Upload != "" {
		c.Paths.Upload = other.Paths.Upload
	}
	if other.Paths.Runtime != "" {
		c.Paths.Runtime = other.Paths.Runtime
	}
	if other.Paths.Install != "" {
		c.Paths.Install = other.Paths.Install
	}
	if other.Paths.Conf != "" {
		c.Paths.Conf = other.Paths.Conf
	}

	if other.Requirements.MinVersion != "" {
		c.Requirements.MinVersion = other.Requirements.MinVersion
	}

	if other.Runtime.Binary != "" {
		c.Runtime.Binary = other.Runtime.Binary
	}
	if other.Runtime.Version != "" {
		c.Runtime.Version = other.Runtime.Version
	}
	if other.Runtime.Timeout != "" {
		c.Runtime.Timeout = other.Runtime.Timeout
	}

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}

	if other.UI.Language != "" {
		c.UI.Language = other.UI.Language
	}
}

// envLookup resolves INSTALLER_* variables from the process environment,
// falling back to dir/.env. The process environment is not modified.
func envLookup(dir string) (func(string) string, error) {
	path := filepath.Join(dir, DotEnvFile)
	dotenv := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		dotenv, err = godotenv.Read(path)
		if err != nil {
			return nil, apperrors.ConfigError("failed to parse "+path, err)
		}
	}
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}, nil
}

// applyEnvOverrides applies INSTALLER_* overrides read through getenv.
func (c *Config) applyEnvOverrides(getenv func(string) string) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"INSTALLER_BASE_PATH", &c.Paths.Base},
		{"INSTALLER_MIN_VERSION", &c.Requirements.MinVersion},
		{"INSTALLER_RUNTIME_BINARY", &c.Runtime.Binary},
		{"INSTALLER_RUNTIME_VERSION", &c.Runtime.Version},
		{"INSTALLER_ADDR", &c.Server.Addr},
		{"INSTALLER_LOG_LEVEL", &c.Server.LogLevel},
		{"INSTALLER_LANGUAGE", &c.UI.Language},
	}
	for _, o := range overrides {
		if v := getenv(o.key); v != "" {
			*o.target = v
		}
	}
}

// resolvePaths makes Base absolute (relative to dir) and fills empty
// sub-paths from their defaults under Base. Relative sub-paths are
// interpreted against Base.
func (c *Config) resolvePaths(dir string) {
	if !filepath.IsAbs(c.Paths.Base) {
		c.Paths.Base = filepath.Join(dir, c.Paths.Base)
	}
	if abs, err := filepath.Abs(c.Paths.Base); err == nil {
		c.Paths.Base = abs
	}

	resolve := func(p, def string) string {
		if p == "" {
			p = def
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(c.Paths.Base, p)
	}

	c.Paths.Upload = resolve(c.Paths.Upload, DefaultUploadDir)
	c.Paths.Runtime = resolve(c.Paths.Runtime, DefaultRuntimeDir)
	c.Paths.Install = resolve(c.Paths.Install, DefaultInstallDir)
	c.Paths.Conf = resolve(c.Paths.Conf, DefaultConfDir)
}

// RuntimeTimeout returns the parsed interpreter timeout.
// Invalid values were rejected by Validate; zero means "no timeout".
func (c *Config) RuntimeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Runtime.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.Base) == "" {
		return fmt.Errorf("paths.base must not be empty")
	}

	if !validMinVersion(c.Requirements.MinVersion) {
		return fmt.Errorf("requirements.min_version must look like 'major.minor', got %q", c.Requirements.MinVersion)
	}

	if c.Runtime.Version == "" && strings.TrimSpace(c.Runtime.Binary) == "" {
		return fmt.Errorf("runtime.binary must be set when runtime.version is empty")
	}

	if c.Runtime.Timeout != "" {
		if d, err := time.ParseDuration(c.Runtime.Timeout); err != nil || d < 0 {
			return fmt.Errorf("runtime.timeout must be a non-negative duration, got %q", c.Runtime.Timeout)
		}
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel)
	}

	validLanguages := map[string]bool{"zh": true, "en": true}
	if !validLanguages[strings.ToLower(c.UI.Language)] {
		return fmt.Errorf("ui.language must be 'zh' or 'en', got %s", c.UI.Language)
	}

	return nil
}

// validMinVersion accepts "5", "5.3" and "5.3.0"; every component numeric.
func validMinVersion(v string) bool {
	if v == "" {
		return false
	}
	for _, part := range strings.Split(v, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
