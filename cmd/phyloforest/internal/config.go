package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents CLI-wide settings loaded from a JSON file.
type Config struct {
	Output struct {
		DefaultFormat string `json:"default_format"` // table, json, yaml, csv
		Color         bool   `json:"color"`
		Progress      bool   `json:"progress"`
	} `json:"output"`
	Cache struct {
		QuerySize int `json:"query_size"`
	} `json:"cache"`
	Storage struct {
		BadgerPath   string `json:"badger_path"`
		SQLitePath   string `json:"sqlite_path"`
		DatabaseURL  string `json:"database_url"`
		UsePostgres  bool   `json:"use_postgres"`
	} `json:"storage"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	config := &Config{}
	config.Output.DefaultFormat = "table"
	config.Output.Color = true
	config.Output.Progress = true
	config.Cache.QuerySize = 1000
	config.Storage.BadgerPath = "forest.badger"
	config.Storage.SQLitePath = "forest.sqlite"
	return config
}

// LoadConfig loads configuration from configPath, or from
// ~/.phyloforest/config.json / ~/.config/phyloforest/config.json when
// configPath is empty, falling back to DefaultConfig if none exists.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}

		configPath = filepath.Join(homeDir, ".phyloforest", "config.json")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = filepath.Join(homeDir, ".config", "phyloforest", "config.json")
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				return DefaultConfig(), nil
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig writes config to configPath, defaulting to
// ~/.phyloforest/config.json when configPath is empty.
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".phyloforest", "config.json")
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
