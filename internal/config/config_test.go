package config

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tower/internal/game"
)

func validLevel() Level {
	return Level{
		Name:       "test-floor",
		Width:      6,
		Height:     2,
		RoundLimit: 40,
		Stairs:     PointConfig{X: 5, Y: 0},
		Samurai: SpawnConfig{
			X: 0, Y: 0, Facing: "east",
			Abilities: []string{"walk!", "feel", "attack!"},
		},
		Units: []UnitConfig{
			{Kind: "bandit", X: 3, Y: 0, Facing: "west"},
			{Kind: "captive", X: 5, Y: 1, Facing: "north"},
		},
	}
}

func TestLevelValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Level)
		wantErr string
	}{
		{"valid", func(lv *Level) {}, ""},
		{"missing name", func(lv *Level) { lv.Name = "" }, "name is required"},
		{"zero width", func(lv *Level) { lv.Width = 0 }, "dimensions"},
		{"stairs out of bounds", func(lv *Level) { lv.Stairs.X = 6 }, "stairs"},
		{"samurai out of bounds", func(lv *Level) { lv.Samurai.Y = -1 }, "samurai"},
		{"bad facing", func(lv *Level) { lv.Samurai.Facing = "up" }, "direction"},
		{"bad ability", func(lv *Level) { lv.Samurai.Abilities = []string{"teleport!"} }, "ability"},
		{"unknown kind", func(lv *Level) { lv.Units[0].Kind = "dragon" }, "kind"},
		{"samurai in roster", func(lv *Level) { lv.Units[0].Kind = "samurai" }, "cannot be placed"},
		{"golem in roster", func(lv *Level) { lv.Units[0].Kind = "golem" }, "cannot be placed"},
		{"unit out of bounds", func(lv *Level) { lv.Units[0].X = 9 }, "out of bounds"},
		{"unit bad facing", func(lv *Level) { lv.Units[1].Facing = "left" }, "direction"},
		{"negative fuse", func(lv *Level) { lv.Units[1].Fuse = -2 }, "fuse"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lv := validLevel()
			tc.mutate(&lv)
			err := lv.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLevelBuild(t *testing.T) {
	lv := validLevel()
	f, err := lv.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	units := f.Units()
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}

	// Samurai is placed first so it acts first each round.
	if units[0].Kind() != game.KindSamurai {
		t.Errorf("expected samurai first, got %s", units[0].Kind())
	}
	if !units[0].HasAbility(game.AbilityWalk) || units[0].HasAbility(game.AbilityRest) {
		t.Error("samurai abilities do not match config")
	}

	if units[1].Kind() != game.KindBandit || units[1].Facing() != game.West {
		t.Errorf("unexpected second unit: %s facing %s", units[1].Kind(), units[1].Facing())
	}
	if units[2].Kind() != game.KindCaptive || !units[2].Bound() {
		t.Error("captive should spawn bound")
	}
	if units[2].Ticking() {
		t.Error("a captive without a fuse must not tick")
	}

	stairs, ok := f.Stairs()
	if !ok || stairs != (game.Point{X: 5, Y: 0}) {
		t.Errorf("unexpected stairs: %v placed=%v", stairs, ok)
	}
}

func TestLevelBuildArmsFuse(t *testing.T) {
	lv := validLevel()
	lv.Units[1].Fuse = 12
	f, err := lv.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	captive := f.Units()[2]
	if !captive.Ticking() || captive.Fuse() != 12 {
		t.Errorf("fuse = %d ticking=%v, expected an armed captive", captive.Fuse(), captive.Ticking())
	}
}

func TestLevelBuildRejectsOverlap(t *testing.T) {
	lv := validLevel()
	lv.Units[0].X = lv.Samurai.X
	lv.Units[0].Y = lv.Samurai.Y
	if _, err := lv.Build(); err == nil {
		t.Fatal("expected error for overlapping placement")
	}
}
