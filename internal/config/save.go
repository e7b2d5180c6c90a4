package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileName is the file searched for in the working directory and
// in ConfigDir.
const configFileName = "config.yaml"

// UserConfigPath returns where Save writes.
func UserConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Save writes the merged settings to the user's config file, where the
// next Load picks them up when no ./config.yaml exists.
func (c *Config) Save() (string, error) {
	path := UserConfigPath()
	return path, c.SaveTo(path)
}

// SaveTo writes the settings as YAML, creating parent directories.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
