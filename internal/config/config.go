package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines console configuration.
type Config struct {
	DB   DBConfig   `yaml:"db"`
	Data DataConfig `yaml:"data"`
	Log  LogConfig  `yaml:"log"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// DataConfig optionally points at a JSON file replacing the embedded lead
// dataset.
type DataConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		DB: DBConfig{
			Path: "seller-console.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("SELLER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("SELLER_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if dataPath := os.Getenv("SELLER_DATA_PATH"); dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if level := os.Getenv("SELLER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("SELLER_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
