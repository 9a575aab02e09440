package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration for a selection pass.
type Config struct {
	File            *File
	Path            string
	LogDir          string
	LogLevel        string
	Workers         int
	BatchSize       int
	AdmissionRules  string
	AdmissionPolicy string
}

// Load reads a chain YAML file and produces a runtime Config. Relative
// admission_rules and admission_policy paths are resolved against the config
// file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := LoadBytes(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.AdmissionRules = relativeTo(path, cfg.AdmissionRules)
	cfg.AdmissionPolicy = relativeTo(path, cfg.AdmissionPolicy)
	return cfg, nil
}

func relativeTo(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// LoadBytes parses YAML data and produces a runtime Config.
func LoadBytes(data []byte) (*Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return fromFile(&f), nil
}

func fromFile(f *File) *Config {
	cfg := &Config{
		File:            f,
		LogDir:          f.Settings.LogDir,
		LogLevel:        f.Settings.LogLevel,
		Workers:         f.Settings.Workers,
		BatchSize:       f.Settings.BatchSize,
		AdmissionRules:  expandHome(f.Settings.AdmissionRules),
		AdmissionPolicy: expandHome(f.Settings.AdmissionPolicy),
	}

	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir()
	}
	cfg.LogDir = expandHome(cfg.LogDir)

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers()
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}

	return cfg
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfig returns a config without user filters, for when no config
// file is given.
func DefaultConfig() *Config {
	return fromFile(&File{Version: FileVersion})
}

// MarshalYAML serializes the chain file, with its defaults unresolved, for
// display.
func (c *Config) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(c.File)
}
