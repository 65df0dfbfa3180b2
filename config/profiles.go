package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/soocke/dino-bot-go/assets"
)

// ProfileNames lists the built-in profiles in sorted order.
func ProfileNames() []string {
	profiles, err := assets.Profiles()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyProfile overlays the named built-in profile onto c. Only the fields the
// profile names are changed.
func (c *Config) ApplyProfile(name string) error {
	profiles, err := assets.Profiles()
	if err != nil {
		return err
	}
	raw, ok := profiles[name]
	if !ok {
		return fmt.Errorf("config: unknown profile %q (have %v)", name, ProfileNames())
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: profile %q: %w", name, err)
	}
	c.Profile = name
	return c.Validate()
}

// FromProfile returns the defaults with the named profile applied.
func FromProfile(name string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyProfile(name); err != nil {
		return nil, err
	}
	return cfg, nil
}
