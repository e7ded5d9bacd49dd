package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Rooms []RoomConfig `yaml:"rooms"`
}

type RoomConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Default returns the built-in room set used when no config file is given.
func Default() *Config {
	return &Config{
		Rooms: []RoomConfig{
			{ID: "first-floor", Title: "Moskee +1"},
			{ID: "beneden", Title: "Moskee +0"},
			{ID: "garage", Title: "Garage"},
		},
	}
}

// Load reads and parses the YAML room configuration at path.
// The result is not validated; callers run Validate then Normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
