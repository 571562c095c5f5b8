package game

// Space is a read-only view of one floor cell, answering the five
// predicates a sensing unit cares about. Exactly one of wall, stairs,
// occupied, or empty holds for a cell; enemy/captive refine "occupied"
// from the point of view of the unit that sensed the space.
//
// Note that stairs are not "empty": IsEmpty is false for the stairs
// cell even though nothing stands on it. Callers that want "safe to
// walk into" must accept stairs as well.
type Space struct {
	point  Point
	unit   *Unit
	stairs bool
	wall   bool
	viewer *Unit
}

// Point returns the cell coordinate this space describes.
func (s Space) Point() Point {
	return s.point
}

// Unit returns the occupant, or nil for an unoccupied cell.
func (s Space) Unit() *Unit {
	return s.unit
}

// IsWall reports whether the cell is a wall. Out-of-bounds cells are
// walls.
func (s Space) IsWall() bool {
	return s.wall
}

// IsStairs reports whether the cell holds the stairs.
func (s Space) IsStairs() bool {
	return s.stairs
}

// IsEmpty reports whether the cell holds nothing at all: no occupant,
// no stairs, no wall.
func (s Space) IsEmpty() bool {
	return s.unit == nil && !s.stairs && !s.wall
}

// IsEnemy reports whether the occupant is hostile to the unit that
// sensed this space. Bound units never read as enemies.
func (s Space) IsEnemy() bool {
	if s.unit == nil || s.unit.bound {
		return false
	}
	viewerHostile := s.viewer != nil && s.viewer.kind.Hostile()
	return s.unit.kind.Hostile() != viewerHostile
}

// IsCaptive reports whether the occupant is rescuable. Captives spawn
// bound; a combatant bound mid-fight reads as captive too.
func (s Space) IsCaptive() bool {
	return s.unit != nil && s.unit.bound
}

// IsTicking reports whether the occupant carries a live bomb fuse.
func (s Space) IsTicking() bool {
	return s.unit != nil && s.unit.Ticking()
}
