// Package game implements the tower combat simulation: the floor grid,
// the unit roster, the ability registry, and the round-by-round turn
// engine. It contains no UI dependencies so the simulation stays pure
// and testable; presentation consumes read-only snapshots.
package game

import "fmt"

// Point is an integer grid coordinate. The origin is the top-left cell
// and Y grows downward, matching terminal rendering.
type Point struct {
	X, Y int
}

// Translate returns the point shifted by (dx, dy).
func (p Point) Translate(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Distance returns the Manhattan distance between two points.
// It is symmetric and zero iff the points are equal; diagonal
// neighbors are at distance 2.
func Distance(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is an absolute compass facing.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"north", "east", "south", "west"}

func (d Direction) String() string {
	if d < North || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection parses a lowercase compass name.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// Opposite returns the reverse facing.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Offset returns the unit step for this direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	default:
		return -1, 0
	}
}

// RelativeDirection is a facing-relative direction token, the form in
// which scripts and built-in behaviors address neighboring cells.
type RelativeDirection int

const (
	Forward RelativeDirection = iota
	Right
	Backward
	Left
)

var relativeNames = [...]string{"forward", "right", "backward", "left"}

// relativeDirections lists all tokens in scan order. Behaviors that
// check every side iterate this slice so the order is deterministic.
var relativeDirections = [...]RelativeDirection{Forward, Left, Right, Backward}

func (r RelativeDirection) String() string {
	if r < Forward || r > Left {
		return fmt.Sprintf("RelativeDirection(%d)", int(r))
	}
	return relativeNames[r]
}

// ParseRelativeDirection parses a lowercase relative token.
func ParseRelativeDirection(s string) (RelativeDirection, error) {
	for i, name := range relativeNames {
		if s == name {
			return RelativeDirection(i), nil
		}
	}
	return Forward, fmt.Errorf("unknown relative direction %q", s)
}

// Turn resolves a relative token against this facing, yielding the
// absolute direction it points at.
func (d Direction) Turn(r RelativeDirection) Direction {
	return (d + Direction(r)) % 4
}

// RelativeTo expresses the absolute direction toward as a relative
// token from the perspective of this facing.
func (d Direction) RelativeTo(toward Direction) RelativeDirection {
	return RelativeDirection((toward - d + 4) % 4)
}
