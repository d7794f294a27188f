// Package config provides TOML configuration and XDG path helpers.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from a zero value so CLI flags can layer on top.
type FileConfig struct {
	Drill DrillConfig `toml:"drill"`
	Data  DataConfig  `toml:"data"`
}

// DrillConfig maps drill-related settings.
type DrillConfig struct {
	System     *string `toml:"system"`
	Mode       *string `toml:"mode"`
	Count      *int    `toml:"count"`
	Prioritize *bool   `toml:"prioritize"`
	JLPTLevels []int   `toml:"jlpt-levels"`
	WKLevels   []int   `toml:"wk-levels"`
}

// DataConfig maps data file locations.
type DataConfig struct {
	Kanji *string `toml:"kanji"`
	DB    *string `toml:"db"`
}

// Load reads a TOML config from the given path. Missing file is not an error.
func Load(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "kanjidrill", "config.toml")
}

// DefaultKanjiPath returns the default kanji dataset path.
func DefaultKanjiPath() string {
	return filepath.Join(XDGDataHome(), "kanjidrill", "kanji.json")
}
