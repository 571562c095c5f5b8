package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTower loads the tower's level definitions.
// Search order: customPath -> ~/.tower/levels.yaml -> ./levels.yaml -> embedded default
func LoadTower(customPath string) (Tower, error) {
	var tw Tower

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return tw, fmt.Errorf("failed to read levels %s: %w", customPath, err)
		}
		if err := parseTower(data, &tw); err != nil {
			return tw, fmt.Errorf("failed to parse levels %s: %w", customPath, err)
		}
		return tw, nil
	}

	// Try user config directory
	if userPath := userLevelsPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := parseTower(data, &tw); err == nil {
				return tw, nil
			}
		}
	}

	// Try local levels file
	if data, err := os.ReadFile("levels.yaml"); err == nil {
		if err := parseTower(data, &tw); err == nil {
			return tw, nil
		}
	}

	// Use embedded default YAML
	if err := parseTower(defaultTowerYAML, &tw); err != nil {
		return DefaultTower(), nil // Fallback to hardcoded if embed fails
	}
	return tw, nil
}

func parseTower(data []byte, tw *Tower) error {
	if err := yaml.Unmarshal(data, tw); err != nil {
		return err
	}
	if len(tw.Levels) == 0 {
		return fmt.Errorf("no levels defined")
	}
	for _, lv := range tw.Levels {
		if err := lv.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// userLevelsPath returns ~/.tower/levels.yaml, or "" if the home
// directory cannot be determined.
func userLevelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tower", "levels.yaml")
}
