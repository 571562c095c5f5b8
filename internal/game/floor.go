package game

import "fmt"

// Floor owns one level's grid: cell occupancy, the stairs cell, and
// the roster of placed units in placement order. The grid is the
// single source of truth for occupancy; each unit mirrors its own
// position for fast lookup.
type Floor struct {
	width, height int
	stairs        Point
	hasStairs     bool
	cells         map[Point]*Unit
	units         []*Unit

	score int
}

// NewFloor creates an empty floor of the given dimensions.
func NewFloor(width, height int) *Floor {
	return &Floor{
		width:  width,
		height: height,
		cells:  make(map[Point]*Unit),
	}
}

// Width returns the floor width in cells.
func (f *Floor) Width() int { return f.width }

// Height returns the floor height in cells.
func (f *Floor) Height() int { return f.height }

// InBounds reports whether (x, y) lies on the grid.
func (f *Floor) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// PlaceStairs marks the terminal goal cell. It rejects out-of-bounds
// or occupied cells and may only be called once per floor.
func (f *Floor) PlaceStairs(x, y int) error {
	if !f.InBounds(x, y) {
		return fmt.Errorf("stairs at (%d,%d): out of bounds", x, y)
	}
	if f.hasStairs {
		return fmt.Errorf("stairs at (%d,%d): stairs already placed", x, y)
	}
	if f.cells[Point{x, y}] != nil {
		return fmt.Errorf("stairs at (%d,%d): cell occupied", x, y)
	}
	f.stairs = Point{x, y}
	f.hasStairs = true
	return nil
}

// Stairs returns the stairs cell and whether one has been placed.
func (f *Floor) Stairs() (Point, bool) {
	return f.stairs, f.hasStairs
}

// Add places a detached unit at (x, y) facing the given direction.
// It rejects occupied and out-of-bounds cells without modifying the
// unit.
func (f *Floor) Add(u *Unit, x, y int, facing Direction) error {
	if u.placed {
		return fmt.Errorf("add %s: already placed", u.name)
	}
	if !f.InBounds(x, y) {
		return fmt.Errorf("add %s at (%d,%d): out of bounds", u.name, x, y)
	}
	p := Point{x, y}
	if f.cells[p] != nil {
		return fmt.Errorf("add %s at (%d,%d): cell occupied", u.name, x, y)
	}
	u.pos = p
	u.facing = facing
	u.placed = true
	u.floor = f
	f.cells[p] = u
	f.units = append(f.units, u)
	return nil
}

// Remove clears a unit's cell back to empty. The unit stays in the
// placement-order roster so round iteration order is stable; the
// engine's cleanup pass compacts it out.
func (f *Floor) Remove(u *Unit) {
	if !u.placed {
		return
	}
	delete(f.cells, u.pos)
	u.placed = false
	u.floor = nil
}

// Get returns the occupant of (x, y), or nil.
func (f *Floor) Get(x, y int) *Unit {
	return f.cells[Point{x, y}]
}

// Space returns the queryable view of (x, y) from an allied
// perspective. Out-of-bounds coordinates report as walls.
func (f *Floor) Space(x, y int) Space {
	return f.spaceFor(nil, Point{x, y})
}

// SpaceAt resolves a relative direction against a unit's facing and
// returns the neighboring space from that unit's perspective.
func (f *Floor) SpaceAt(u *Unit, rel RelativeDirection) Space {
	return f.spaceFor(u, f.PointAt(u, rel))
}

// PointAt resolves a relative direction against a unit's facing to an
// absolute coordinate one step away.
func (f *Floor) PointAt(u *Unit, rel RelativeDirection) Point {
	dx, dy := u.facing.Turn(rel).Offset()
	return u.pos.Translate(dx, dy)
}

func (f *Floor) spaceFor(viewer *Unit, p Point) Space {
	if !f.InBounds(p.X, p.Y) {
		return Space{point: p, wall: true, viewer: viewer}
	}
	return Space{
		point:  p,
		unit:   f.cells[p],
		stairs: f.hasStairs && p == f.stairs,
		viewer: viewer,
	}
}

// Units returns the placed-and-alive roster in placement order.
func (f *Floor) Units() []*Unit {
	out := make([]*Unit, 0, len(f.units))
	for _, u := range f.units {
		if u.placed && u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// Score returns the points accumulated on this floor (kills and
// rescues).
func (f *Floor) Score() int {
	return f.score
}

// move shifts a placed unit to an unoccupied in-bounds cell. Callers
// have already validated the destination.
func (f *Floor) move(u *Unit, to Point) {
	delete(f.cells, u.pos)
	u.pos = to
	f.cells[to] = u
}

// unitDied credits a kill and frees the cell. Called from TakeDamage
// the moment health reaches zero, so a unit killed early in a round is
// no longer a target later in the same round.
func (f *Floor) unitDied(u *Unit) {
	if u.kind.Hostile() {
		f.score += u.maxHealth
	}
	f.Remove(u)
}

// rescuePoints is awarded for walking a captive off the floor.
const rescuePoints = 20

// unitRescued credits a rescue and frees the cell. Rescuing a ticking
// captive also defuses its bomb.
func (f *Floor) unitRescued(u *Unit) {
	u.fuse = 0
	f.score += rescuePoints
	f.Remove(u)
}

// / Blast damage: a detonation hits its target cell hard and splashes
// the four orthogonal neighbors; an expiring fuse is one detonation
// centered on the carrier.
const (
	bombDamage = 8
	bombSplash = 4
)

// tickFuses burns every live fuse down one step and detonates the ones
// that reach zero. Called once per round after all units have acted.
// The armed set is fixed up front, so a bomb that dies in an earlier
// / blast this round never goes off itself: death disarms.
func (f *Floor) tickFuses() {
	var armed []*Unit
	for _, u := range f.units {
		if u.placed && u.Ticking() {
			armed = append(armed, u)
		}
	}
	for _, u := range armed {
		if !u.placed || !u.Alive() {
			continue
		}
		u.fuse--
		if u.fuse == 0 {
			f.detonate(u.pos)
		}
	}
}

// detonate resolves one explosion: bombDamage to the target cell's
// occupant, bombSplash to occupants of the four orthogonal neighbors.
func (f *Floor) detonate(target Point) {
	if occ := f.cells[target]; occ != nil {
		occ.TakeDamage(bombDamage)
	}
	for d := North; d <= West; d++ {
		dx, dy := d.Offset()
		if occ := f.cells[target.Translate(dx, dy)]; occ != nil {
			occ.TakeDamage(bombSplash)
		}
	}
}
