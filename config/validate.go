package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only and MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil || len(cfg.Rooms) == 0 {
		return fmt.Errorf("no rooms configured")
	}

	seen := make(map[string]struct{}, len(cfg.Rooms))

	for i, r := range cfg.Rooms {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return fmt.Errorf("room %d: id must not be empty", i)
		}
		if strings.TrimSpace(r.Title) == "" {
			return fmt.Errorf("room %q: title must not be empty", id)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("duplicate room id %q", id)
		}
		seen[id] = struct{}{}
	}

	return nil
}
