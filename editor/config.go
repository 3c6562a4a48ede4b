package editor

import (
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config holds user-tunable editor settings.
type Config struct {
	// TabSize is the indent width used for guides, depth, and tab expansion.
	TabSize int `yaml:"tab_size"`
	// AutoClose toggles automatic closing-bracket insertion.
	AutoClose bool `yaml:"auto_close"`
	// CaseSensitiveSearch is the default case mode for new find sessions.
	CaseSensitiveSearch bool `yaml:"case_sensitive_search"`
	// MinimapBucket is the number of source lines per minimap row.
	MinimapBucket int `yaml:"minimap_bucket"`
	// Theme names the color theme; the core only passes it through.
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		TabSize:       4,
		AutoClose:     true,
		MinimapBucket: 4,
		Theme:         "dark",
	}
}

// LoadConfig reads settings from a YAML file, filling unset fields from the
// defaults. A missing file is not an error: the defaults are returned.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	cfg := DefaultConfig()
	if fs == nil {
		fs = afero.NewOsFs()
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return cfg, err
	}
	if !exists {
		return cfg, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TabSize <= 0 {
		cfg.TabSize = DefaultConfig().TabSize
	}
	if cfg.MinimapBucket <= 0 {
		cfg.MinimapBucket = DefaultConfig().MinimapBucket
	}
	return cfg, nil
}
