package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSpawn loads the spawn configuration.
// Search order: customPath -> ~/.climb/configs/spawning.yaml -> ./configs/spawning.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error. The
// implicit locations are skipped silently when broken.
func LoadSpawn(customPath string) (SpawnConfig, error) {
	var cfg SpawnConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("spawning.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "spawning.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSpawnYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultSpawnConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads and validates a config file, reporting whether it was usable.
func tryLoad(path string) (SpawnConfig, bool) {
	var cfg SpawnConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".climb", "configs", filename)
}
