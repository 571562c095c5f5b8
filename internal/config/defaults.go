package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTower returns the built-in tower used when no levels file is
// found. Kept as a hardcoded fallback mirroring the embedded YAML's
// first floor, in case the embed itself fails to parse.
func DefaultTower() Tower {
	return Tower{
		Levels: []Level{
			{
				Name:       "first-steps",
				Width:      8,
				Height:     1,
				RoundLimit: 30,
				Stairs:     PointConfig{X: 7, Y: 0},
				Samurai: SpawnConfig{
					X: 0, Y: 0, Facing: "east",
					Abilities: []string{"walk!", "feel"},
				},
			},
		},
	}
}
