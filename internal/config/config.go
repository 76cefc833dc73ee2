// Package config loads qembed configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the qembed configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the qembed configuration directory.
const ConfigDirName = ".qembed"

// Config holds all qembed configuration.
type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Cache  CacheConfig  `yaml:"cache"`
	Prefix PrefixConfig `yaml:"prefix"`
}

// ModelConfig selects the embedding model and its loading parameters.
// The per-input token budget is not configurable here: the tokenizer
// truncates at the snapshot's own position limit.
type ModelConfig struct {
	ID           string `yaml:"id"`
	OnnxFilename string `yaml:"onnx_filename"`
}

// CacheConfig holds cache locations and behavior.
type CacheConfig struct {
	// Dir is where model artifacts are expected or downloaded to.
	Dir string `yaml:"dir"`

	// SkipVectorCache disables the vectors.db side cache, forcing
	// inference on every invocation.
	SkipVectorCache bool `yaml:"skip_vector_cache"`
}

// PrefixConfig holds the role markers prepended before embedding. The model
// was trained asymmetrically, so queries and passages carry different
// prefixes.
type PrefixConfig struct {
	Query   string `yaml:"query"`
	Passage string `yaml:"passage"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .qembed/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	return LoadFromPath(filepath.Join(configDir, ConfigFileName))
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .qembed directory by walking up from startDir.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Validate checks that config values are valid.
func Validate(cfg *Config) error {
	if cfg.Model.ID == "" {
		return fmt.Errorf("%w: model id must not be empty", ErrInvalidConfig)
	}

	if cfg.Cache.Dir == "" {
		return fmt.Errorf("%w: cache dir must not be empty", ErrInvalidConfig)
	}

	return nil
}
