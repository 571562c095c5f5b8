package game

import "fmt"

// Turn is the short-lived handle through which one unit makes one
// round's decision. It is the sole protocol surrounding decision
// making: built-in behaviors and the scripting bridge both speak only
// DoAction / DoSense / HasAction / HasSense.
//
// Senses execute immediately and may run any number of times. At most
// one action may be recorded per turn; the engine applies it in the
// perform phase.
type Turn struct {
	unit    *Unit
	pending *pendingAction
}

type pendingAction struct {
	id   AbilityID
	args []any
}

func newTurn(u *Unit) *Turn {
	return &Turn{unit: u}
}

// Unit returns the acting unit.
func (t *Turn) Unit() *Unit {
	return t.unit
}

// HasAction reports whether the unit may perform the named action.
func (t *Turn) HasAction(id AbilityID) bool {
	class, ok := t.unit.abilities[id]
	return ok && class == classAction
}

// HasSense reports whether the unit may query the named sense.
func (t *Turn) HasSense(id AbilityID) bool {
	class, ok := t.unit.abilities[id]
	return ok && class == classSense
}

// DoAction records the turn's single action. It rejects names outside
// the unit's action set and a second action on the same turn.
func (t *Turn) DoAction(id AbilityID, args ...any) error {
	if !t.HasAction(id) {
		return fmt.Errorf("%w: action %q", ErrUnknownAbility, id)
	}
	if t.pending != nil {
		return fmt.Errorf("%w: %q already recorded", ErrActionTaken, t.pending.id)
	}
	t.pending = &pendingAction{id: id, args: args}
	return nil
}

// DoSense queries a read-only sense and returns its value. It rejects
// names outside the unit's sense set.
func (t *Turn) DoSense(id AbilityID, args ...any) (any, error) {
	if !t.HasSense(id) {
		return nil, fmt.Errorf("%w: sense %q", ErrUnknownAbility, id)
	}
	return abilityTable[id].invoke(t.unit, args)
}

// perform applies the recorded action, if any, against the floor and
// unit model. Called by the engine once per turn.
func (t *Turn) perform() error {
	if t.pending == nil {
		return nil
	}
	if !t.unit.placed || !t.unit.Alive() {
		return nil
	}
	_, err := abilityTable[t.pending.id].invoke(t.unit, t.pending.args)
	return err
}
