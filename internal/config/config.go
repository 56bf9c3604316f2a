// Package config loads the app configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration for the app.
//
//	db: ./stockpile.db
//	low_stock_threshold: 2
//	verbose: false
type Config struct {
	// DB is the path to the SQLite database file.
	DB string `yaml:"db"`

	// LowStockThreshold is the quantity below which a product counts
	// as low inventory on the dashboard.
	LowStockThreshold int64 `yaml:"low_stock_threshold"`

	// Verbose enables diagnostic logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DB:                "stockpile.db",
		LowStockThreshold: 2,
	}
}

// Load reads a config file, filling unset fields from Default. A
// missing file is not an error - defaults apply; a malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.DB == "" {
		cfg.DB = Default().DB
	}
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = Default().LowStockThreshold
	}
	return cfg, nil
}
