// Package config defines level configurations for the tower and
// loads them from YAML with an embedded default tower as fallback.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-tower/internal/game"
)

// Tower is an ordered list of levels.
type Tower struct {
	Levels []Level `yaml:"levels"`
}

// Level describes one floor: its grid, the stairs, the samurai spawn,
// and the unit roster. Everything the engine needs to start a
// playthrough except the player script.
type Level struct {
	Name       string       `yaml:"name"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	RoundLimit int          `yaml:"round_limit"`
	Stairs     PointConfig  `yaml:"stairs"`
	Samurai    SpawnConfig  `yaml:"samurai"`
	Units      []UnitConfig `yaml:"units"`
}

// PointConfig is a grid coordinate in YAML.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SpawnConfig places the samurai and grants its ability set for the
// level. Abilities use canonical names ("walk!", "feel", ...).
type SpawnConfig struct {
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Facing    string   `yaml:"facing"`
	Abilities []string `yaml:"abilities"`
}

// UnitConfig places one non-player unit. A positive fuse arms the
// unit's bomb: it detonates that many rounds in.
type UnitConfig struct {
	Kind   string `yaml:"kind"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
	Fuse   int    `yaml:"fuse"`
}

// Validate checks the level is self-consistent before any floor is
// built: positive dimensions, in-bounds placements, known kinds,
// directions, and ability names.
func (lv Level) Validate() error {
	if lv.Name == "" {
		return fmt.Errorf("level: name is required")
	}
	if lv.Width <= 0 || lv.Height <= 0 {
		return fmt.Errorf("level %s: dimensions %dx%d invalid", lv.Name, lv.Width, lv.Height)
	}
	inBounds := func(x, y int) bool {
		return x >= 0 && x < lv.Width && y >= 0 && y < lv.Height
	}
	if !inBounds(lv.Stairs.X, lv.Stairs.Y) {
		return fmt.Errorf("level %s: stairs (%d,%d) out of bounds", lv.Name, lv.Stairs.X, lv.Stairs.Y)
	}
	if !inBounds(lv.Samurai.X, lv.Samurai.Y) {
		return fmt.Errorf("level %s: samurai (%d,%d) out of bounds", lv.Name, lv.Samurai.X, lv.Samurai.Y)
	}
	if _, err := game.ParseDirection(lv.Samurai.Facing); err != nil {
		return fmt.Errorf("level %s: samurai: %w", lv.Name, err)
	}
	for _, name := range lv.Samurai.Abilities {
		if _, err := game.ParseAbilityID(name); err != nil {
			return fmt.Errorf("level %s: samurai: %w", lv.Name, err)
		}
	}
	for i, uc := range lv.Units {
		kind, err := game.ParseKind(uc.Kind)
		if err != nil {
			return fmt.Errorf("level %s: unit %d: %w", lv.Name, i, err)
		}
		if kind == game.KindSamurai || kind == game.KindGolem {
			return fmt.Errorf("level %s: unit %d: %s cannot be placed from config", lv.Name, i, kind)
		}
		if !inBounds(uc.X, uc.Y) {
			return fmt.Errorf("level %s: unit %d: (%d,%d) out of bounds", lv.Name, i, uc.X, uc.Y)
		}
		if _, err := game.ParseDirection(uc.Facing); err != nil {
			return fmt.Errorf("level %s: unit %d: %w", lv.Name, i, err)
		}
		if uc.Fuse < 0 {
			return fmt.Errorf("level %s: unit %d: fuse %d is negative", lv.Name, i, uc.Fuse)
		}
	}
	return nil
}

// Build assembles the floor for this level. Placement order follows
// the config: samurai first, then the roster top to bottom, so round
// order is exactly what the level author wrote.
func (lv Level) Build() (*game.Floor, error) {
	if err := lv.Validate(); err != nil {
		return nil, err
	}

	f := game.NewFloor(lv.Width, lv.Height)

	samurai := game.NewUnit(game.KindSamurai)
	for _, name := range lv.Samurai.Abilities {
		id, _ := game.ParseAbilityID(name)
		if err := samurai.AddAbilities(id); err != nil {
			return nil, fmt.Errorf("level %s: %w", lv.Name, err)
		}
	}
	facing, _ := game.ParseDirection(lv.Samurai.Facing)
	if err := f.Add(samurai, lv.Samurai.X, lv.Samurai.Y, facing); err != nil {
		return nil, fmt.Errorf("level %s: %w", lv.Name, err)
	}

	for i, uc := range lv.Units {
		kind, _ := game.ParseKind(uc.Kind)
		dir, _ := game.ParseDirection(uc.Facing)
		u := game.NewUnit(kind)
		if uc.Fuse > 0 {
			u.SetFuse(uc.Fuse)
		}
		if err := f.Add(u, uc.X, uc.Y, dir); err != nil {
			return nil, fmt.Errorf("level %s: unit %d: %w", lv.Name, i, err)
		}
	}

	if err := f.PlaceStairs(lv.Stairs.X, lv.Stairs.Y); err != nil {
		return nil, fmt.Errorf("level %s: %w", lv.Name, err)
	}
	return f, nil
}

// Find returns the level matching a name or 1-based index.
func (tw Tower) Find(key string) (Level, error) {
	for i, lv := range tw.Levels {
		if lv.Name == key || fmt.Sprintf("%d", i+1) == key {
			return lv, nil
		}
	}
	return Level{}, fmt.Errorf("unknown level %q (have %d levels)", key, len(tw.Levels))
}
