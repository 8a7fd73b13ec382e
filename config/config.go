package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the configuration file looked up in the working directory.
	FileName = "xray.yaml"
	// DirName holds the cache and an alternative configuration file.
	DirName = ".xray"
)

// Config holds all configuration for the xray tool.
type Config struct {
	Parse    ParseConfig    `yaml:"parse"`
	Generate GenerateConfig `yaml:"generate"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ParseConfig controls which files are read and how the result is written.
type ParseConfig struct {
	Includes []string      `yaml:"includes"`
	Excludes []string      `yaml:"excludes"`
	Format   string        `yaml:"format"`   // "toml" or "yaml"
	Output   string        `yaml:"output"`   // empty: <root name>.<format>
	Debounce time.Duration `yaml:"debounce"` // watch mode
}

// GenerateConfig holds source generation configuration.
type GenerateConfig struct {
	SkipValidations bool `yaml:"skip_validations"`
}

// CacheConfig controls the parse result cache under .xray/.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			Includes: []string{"**/*.py"},
			Excludes: []string{"**/__pycache__/**", "**/.xray/**", "**/.git/**", "**/.venv/**"},
			Format:   "toml",
			Debounce: 300 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads xray.yaml, then .xray/config.yaml, from dir.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, DirName, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CacheDBPath returns the path to the parse cache of a source tree.
func CacheDBPath(dir string) string {
	return filepath.Join(dir, DirName, "cache.db")
}

// EnsureXrayDir ensures the .xray directory exists.
func EnsureXrayDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, DirName), 0755)
}
