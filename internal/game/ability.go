package game

import (
	"errors"
	"fmt"
	"strings"
)

// AbilityID is the canonical name of a capability. Actions carry a
// trailing "!" marker; senses are bare words.
type AbilityID string

const (
	AbilityWalk     AbilityID = "walk!"
	AbilityAttack   AbilityID = "attack!"
	AbilityShoot    AbilityID = "shoot!"
	AbilityRest     AbilityID = "rest!"
	AbilityRescue   AbilityID = "rescue!"
	AbilityBind     AbilityID = "bind!"
	AbilityPivot    AbilityID = "pivot!"
	AbilityForm     AbilityID = "form!"
	AbilityDetonate AbilityID = "detonate!"

	AbilityFeel              AbilityID = "feel"
	AbilityLook              AbilityID = "look"
	AbilityHealth            AbilityID = "health"
	AbilityDistanceOf        AbilityID = "distance_of"
	AbilityDirectionOf       AbilityID = "direction_of"
	AbilityDirectionOfStairs AbilityID = "direction_of_stairs"
	AbilityListen            AbilityID = "listen"
)

var (
	// ErrUnknownAbility is returned when a name is dispatched that is
	// not in the unit's action or sense set, or registered at all.
	ErrUnknownAbility = errors.New("unknown ability")

	// ErrActionTaken is returned when a second action is recorded on
	// the same turn.
	ErrActionTaken = errors.New("action already taken this turn")
)

// ParseAbilityID validates a canonical ability name from config.
func ParseAbilityID(s string) (AbilityID, error) {
	id := AbilityID(s)
	if _, ok := abilityTable[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAbility, s)
	}
	return id, nil
}

// IsAction reports whether the canonical name carries the mutation
// marker.
func (id AbilityID) IsAction() bool {
	return strings.HasSuffix(string(id), "!")
}

type abilityClass int

const (
	classAction abilityClass = iota
	classSense
)

// abilityDef binds a canonical name to its class and implementation.
// Actions mutate the world through the floor and return no value;
// senses are read-only and return one.
type abilityDef struct {
	class  abilityClass
	invoke func(u *Unit, args []any) (any, error)
}

// abilityTable is the process-wide registry, a read-only table built
// once at init. The action/sense partition is fixed here and never
// changes at runtime.
var abilityTable = map[AbilityID]*abilityDef{}

func registerAbility(id AbilityID, class abilityClass, invoke func(*Unit, []any) (any, error)) {
	if _, dup := abilityTable[id]; dup {
		panic(fmt.Sprintf("ability %q registered twice", id))
	}
	if id.IsAction() != (class == classAction) {
		panic(fmt.Sprintf("ability %q: name marker does not match class", id))
	}
	abilityTable[id] = &abilityDef{class: class, invoke: invoke}
}

func init() {
	registerAbility(AbilityWalk, classAction, walkAbility)
	registerAbility(AbilityAttack, classAction, attackAbility)
	registerAbility(AbilityShoot, classAction, shootAbility)
	registerAbility(AbilityRest, classAction, restAbility)
	registerAbility(AbilityRescue, classAction, rescueAbility)
	registerAbility(AbilityBind, classAction, bindAbility)
	registerAbility(AbilityPivot, classAction, pivotAbility)
	registerAbility(AbilityForm, classAction, formAbility)
	registerAbility(AbilityDetonate, classAction, detonateAbility)

	registerAbility(AbilityFeel, classSense, feelAbility)
	registerAbility(AbilityLook, classSense, lookAbility)
	registerAbility(AbilityHealth, classSense, healthAbility)
	registerAbility(AbilityDistanceOf, classSense, distanceOfAbility)
	registerAbility(AbilityDirectionOf, classSense, directionOfAbility)
	registerAbility(AbilityDirectionOfStairs, classSense, directionOfStairsAbility)
	registerAbility(AbilityListen, classSense, listenAbility)
}

// lookRange is how far look and shoot reach, in cells.
const lookRange = 3

// relativeArg extracts an optional leading relative-direction
// argument, accepting either the token type or its string form.
func relativeArg(args []any, def RelativeDirection) (RelativeDirection, error) {
	if len(args) == 0 || args[0] == nil {
		return def, nil
	}
	switch v := args[0].(type) {
	case RelativeDirection:
		return v, nil
	case string:
		return ParseRelativeDirection(v)
	default:
		return Forward, fmt.Errorf("want a relative direction, got %T", args[0])
	}
}

// spaceArg extracts a required Space argument.
func spaceArg(args []any) (Space, error) {
	if len(args) == 0 {
		return Space{}, errors.New("want a space argument")
	}
	sp, ok := args[0].(Space)
	if !ok {
		return Space{}, fmt.Errorf("want a space argument, got %T", args[0])
	}
	return sp, nil
}

// walkAbility moves one cell in the given relative direction. Walking
// into a wall or an occupied cell fails silently; walking onto the
// stairs is the win condition, detected by the engine.
func walkAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	sp := u.floor.SpaceAt(u, rel)
	if sp.Unit() != nil || sp.IsWall() {
		return nil, nil
	}
	u.floor.move(u, sp.Point())
	return nil, nil
}

// attackAbility strikes the adjacent cell for the unit's full attack
// power; a no-op if nobody is there.
func attackAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	if target := u.floor.SpaceAt(u, rel).Unit(); target != nil {
		target.TakeDamage(u.attackPower)
	}
	return nil, nil
}

// shootAbility hits the first unit within lookRange cells in the
// given direction. Shots stop at walls.
func shootAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	for _, sp := range lineOfSpaces(u, rel) {
		if sp.IsWall() {
			break
		}
		if target := sp.Unit(); target != nil {
			target.TakeDamage(u.attackPower)
			break
		}
	}
	return nil, nil
}

// restAbility heals a tenth of max health, rounded down, never past
// max. A no-op at full health.
func restAbility(u *Unit, _ []any) (any, error) {
	u.Heal(u.maxHealth / 10)
	return nil, nil
}

// rescueAbility frees a bound unit in the adjacent cell, removing it
// from the floor. A no-op against anything else.
func rescueAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	sp := u.floor.SpaceAt(u, rel)
	if sp.IsCaptive() {
		u.floor.unitRescued(sp.Unit())
	}
	return nil, nil
}

// bindAbility ties up the adjacent unit. Bound units skip their turns
// and read as captives until damage releases them.
func bindAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	if target := u.floor.SpaceAt(u, rel).Unit(); target != nil {
		target.bound = true
	}
	return nil, nil
}

// pivotAbility turns the unit in place. Defaults to an about-face.
func pivotAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Backward)
	if err != nil {
		return nil, err
	}
	u.facing = u.facing.Turn(rel)
	return nil, nil
}

// formAbility spawns an allied golem on the adjacent cell, seeding it
// with half the creator's health. Both halvings floor-divide the same
// pre-transfer value: at health 20 the golem gets 10 and the creator
// keeps 10. The target cell must be empty; against a unit, a wall, or
// the stairs the whole action is a no-op, as it is when the creator is
// too weak for the transfer to leave anything on either side. An
// optional callback becomes the golem's per-round behavior.
func formAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	var behavior Behavior
	for _, a := range args {
		switch v := a.(type) {
		case Behavior:
			behavior = v
		case func(*Turn):
			behavior = v
		}
	}
	sp := u.floor.SpaceAt(u, rel)
	if !sp.IsEmpty() {
		return nil, nil
	}
	transfer := u.health / 2
	if transfer == 0 {
		return nil, nil
	}
	golem := newGolem(transfer, behavior)
	outward := u.facing.Turn(rel)
	if err := u.floor.Add(golem, sp.Point().X, sp.Point().Y, outward); err != nil {
		return nil, err
	}
	u.health = transfer
	return nil, nil
}

// detonateAbility sets off an explosive one cell away in the given
// / relative direction: bombDamage to the target cell, bombSplash to the
// four cells around it. The actor stands in one of those four, so
// detonating point-blank costs the actor splash damage too.
func detonateAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	u.floor.detonate(u.floor.PointAt(u, rel))
	return nil, nil
}

// feelAbility returns the adjacent space from the unit's perspective.
func feelAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	return u.floor.SpaceAt(u, rel), nil
}

// lookAbility returns the next lookRange spaces in the given
// direction, nearest first.
func lookAbility(u *Unit, args []any) (any, error) {
	rel, err := relativeArg(args, Forward)
	if err != nil {
		return nil, err
	}
	return lineOfSpaces(u, rel), nil
}

func lineOfSpaces(u *Unit, rel RelativeDirection) []Space {
	dir := u.facing.Turn(rel)
	dx, dy := dir.Offset()
	spaces := make([]Space, 0, lookRange)
	p := u.pos
	for i := 0; i < lookRange; i++ {
		p = p.Translate(dx, dy)
		spaces = append(spaces, u.floor.spaceFor(u, p))
	}
	return spaces
}

// healthAbility returns current health.
func healthAbility(u *Unit, _ []any) (any, error) {
	return u.health, nil
}

// distanceOfAbility returns the Manhattan distance to a sensed space.
func distanceOfAbility(u *Unit, args []any) (any, error) {
	sp, err := spaceArg(args)
	if err != nil {
		return nil, err
	}
	return Distance(u.pos, sp.Point()), nil
}

// directionOfAbility returns the relative token that points most
// directly at a sensed space, preferring the axis with the larger
// remaining distance.
func directionOfAbility(u *Unit, args []any) (any, error) {
	sp, err := spaceArg(args)
	if err != nil {
		return nil, err
	}
	return u.relativeToward(sp.Point()), nil
}

// directionOfStairsAbility returns the relative token toward the
// stairs cell.
func directionOfStairsAbility(u *Unit, _ []any) (any, error) {
	stairs, ok := u.floor.Stairs()
	if !ok {
		return nil, errors.New("floor has no stairs")
	}
	return u.relativeToward(stairs), nil
}

func (u *Unit) relativeToward(p Point) RelativeDirection {
	dx := p.X - u.pos.X
	dy := p.Y - u.pos.Y
	var toward Direction
	switch {
	case abs(dx) >= abs(dy) && dx > 0:
		toward = East
	case abs(dx) >= abs(dy) && dx < 0:
		toward = West
	case dy > 0:
		toward = South
	case dy < 0:
		toward = North
	default:
		return Forward
	}
	return u.facing.RelativeTo(toward)
}

// listenAbility returns the spaces of every other placed unit on the
// floor, in placement order.
func listenAbility(u *Unit, _ []any) (any, error) {
	var spaces []Space
	for _, other := range u.floor.Units() {
		if other == u {
			continue
		}
		spaces = append(spaces, u.floor.spaceFor(u, other.pos))
	}
	return spaces, nil
}
