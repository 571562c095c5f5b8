package game

// Snapshot captures the complete observable state of a playthrough
// for presentation and determinism testing. It is a pure value: the
// TUI renders from it and never reaches back into the engine.
type Snapshot struct {
	Width   int
	Height  int
	Stairs  Point
	Round   int
	Outcome Outcome
	Score   int
	Units   []UnitSnapshot
}

// UnitSnapshot is one placed, living unit's public state.
type UnitSnapshot struct {
	Kind      Kind
	Name      string
	Character rune
	X, Y      int
	Facing    Direction
	Health    int
	MaxHealth int
	Bound     bool
	Fuse      int
}

// Snapshot returns the current read-only state in placement order.
func (e *Engine) Snapshot() Snapshot {
	stairs, _ := e.floor.Stairs()
	snap := Snapshot{
		Width:   e.floor.Width(),
		Height:  e.floor.Height(),
		Stairs:  stairs,
		Round:   e.round,
		Outcome: e.outcome,
		Score:   e.Score(),
	}
	for _, u := range e.floor.Units() {
		snap.Units = append(snap.Units, UnitSnapshot{
			Kind:      u.Kind(),
			Name:      u.Name(),
			Character: u.Character(),
			X:         u.Position().X,
			Y:         u.Position().Y,
			Facing:    u.Facing(),
			Health:    u.Health(),
			MaxHealth: u.MaxHealth(),
			Bound:     u.Bound(),
			Fuse:      u.Fuse(),
		})
	}
	return snap
}
