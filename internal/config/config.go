package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"solar_battery_sim/internal/model"
)

// Config is the on-disk configuration shape (YAML). All fields are optional;
// zero values fall back to defaults.
type Config struct {
	Addr        string       `yaml:"addr"`
	FrontendDir string       `yaml:"frontend_dir"`
	LogLevel    string       `yaml:"log_level"`
	Params      model.Params `yaml:"params"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:        ":8080",
		FrontendDir: "frontend/build",
		LogLevel:    "info",
		Params:      model.DefaultParams(),
	}
}

// Load reads a YAML config file and merges it over the defaults. Parameter
// fields left at zero keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if file.Addr != "" {
		cfg.Addr = file.Addr
	}
	if file.FrontendDir != "" {
		cfg.FrontendDir = file.FrontendDir
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	cfg.Params = model.Merge(cfg.Params, file.Params)

	if err := cfg.Params.Validate(); err != nil {
		return cfg, fmt.Errorf("params in %s: %w", path, err)
	}
	return cfg, nil
}
