package game

import "fmt"

// Kind discriminates the closed set of unit variants.
type Kind int

const (
	KindSamurai Kind = iota
	KindGolem
	KindBandit
	KindRonin
	KindArcher
	KindCaptive
)

var kindNames = [...]string{"samurai", "golem", "bandit", "ronin", "archer", "captive"}

func (k Kind) String() string {
	if k < KindSamurai || k > KindCaptive {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a lowercase kind name, as used in level YAML.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return KindSamurai, fmt.Errorf("unknown unit kind %q", s)
}

// Hostile reports whether this kind fights against the samurai's side.
func (k Kind) Hostile() bool {
	switch k {
	case KindBandit, KindRonin, KindArcher:
		return true
	default:
		return false
	}
}

// kindStats is the process-wide stat table, fixed at startup. The
// ronin is the reinforced bandit: double the health, heavier hits.
// Golem stats are dynamic (health comes from the creator) so the table
// only carries its glyph and attack power.
var kindStats = map[Kind]struct {
	character   rune
	maxHealth   int
	attackPower int
	abilities   []AbilityID
	behavior    Behavior
}{
	KindSamurai: {character: '@', maxHealth: 20, attackPower: 5},
	KindGolem:   {character: 'G', attackPower: 3},
	KindBandit: {
		character: 'b', maxHealth: 12, attackPower: 3,
		abilities: []AbilityID{AbilityFeel, AbilityAttack},
		behavior:  meleeBehavior,
	},
	KindRonin: {
		character: 'R', maxHealth: 24, attackPower: 5,
		abilities: []AbilityID{AbilityFeel, AbilityAttack},
		behavior:  meleeBehavior,
	},
	KindArcher: {
		character: 'a', maxHealth: 7, attackPower: 3,
		abilities: []AbilityID{AbilityLook, AbilityShoot},
		behavior:  archerBehavior,
	},
	KindCaptive: {character: 'C', maxHealth: 1},
}

// Behavior is a unit's built-in per-round decision routine. It is
// invoked once per round with the unit's fresh Turn handle and must
// express its decision purely through the Turn protocol.
type Behavior func(*Turn)

// Unit is any entity occupying a floor cell. All variants share this
// one struct; the Kind tag plus the stats table and the pluggable
// Behavior cover what a subclass hierarchy would.
type Unit struct {
	kind        Kind
	name        string
	character   rune
	health      int
	maxHealth   int
	attackPower int

	pos    Point
	facing Direction
	placed bool
	bound  bool
	fuse   int
	floor  *Floor

	abilities map[AbilityID]abilityClass
	behavior  Behavior
}

// NewUnit creates a detached unit of the given kind with its default
// stats, abilities, and built-in behavior. Golems are not built this
// way; the form ability creates them from their creator's health.
func NewUnit(kind Kind) *Unit {
	st := kindStats[kind]
	u := &Unit{
		kind:        kind,
		name:        kind.String(),
		character:   st.character,
		health:      st.maxHealth,
		maxHealth:   st.maxHealth,
		attackPower: st.attackPower,
		abilities:   make(map[AbilityID]abilityClass),
		behavior:    st.behavior,
	}
	// Default sets are drawn from the closed registry, so this cannot
	// fail for table entries.
	if err := u.AddAbilities(st.abilities...); err != nil {
		panic(err)
	}
	if kind == KindCaptive {
		u.bound = true
	}
	return u
}

// newGolem creates the allied construct spawned by the form ability.
// Health is whatever the creator transferred; the behavior is the
// creator-supplied callback and may be nil, in which case the golem
// stands idle.
func newGolem(health int, behavior Behavior) *Unit {
	st := kindStats[KindGolem]
	u := &Unit{
		kind:        KindGolem,
		name:        KindGolem.String(),
		character:   st.character,
		health:      health,
		maxHealth:   health,
		attackPower: st.attackPower,
		abilities:   make(map[AbilityID]abilityClass),
		behavior:    behavior,
	}
	if err := u.AddAbilities(AbilityWalk, AbilityFeel, AbilityAttack); err != nil {
		panic(err)
	}
	return u
}

func (u *Unit) Kind() Kind        { return u.kind }
func (u *Unit) Name() string      { return u.name }
func (u *Unit) Character() rune   { return u.character }
func (u *Unit) Health() int       { return u.health }
func (u *Unit) MaxHealth() int    { return u.maxHealth }
func (u *Unit) AttackPower() int  { return u.attackPower }
func (u *Unit) Position() Point   { return u.pos }
func (u *Unit) Facing() Direction { return u.facing }
func (u *Unit) Placed() bool      { return u.placed }
func (u *Unit) Bound() bool       { return u.bound }
func (u *Unit) Fuse() int         { return u.fuse }

// Ticking reports whether the unit carries a live bomb. The fuse burns
// down one step at the end of every round and detonates at zero.
func (u *Unit) Ticking() bool {
	return u.fuse > 0 && u.Alive()
}

// SetFuse arms the unit's bomb with the given number of rounds. Level
// setups use it to put ticking captives on the floor.
func (u *Unit) SetFuse(rounds int) {
	if rounds < 0 {
		rounds = 0
	}
	u.fuse = rounds
}

// Alive reports whether health is above zero. Dead units never
// resurrect.
func (u *Unit) Alive() bool {
	return u.health > 0
}

// TakeDamage subtracts n from health, clamped at zero. Damage releases
// a bind, and a killing blow removes the unit from its floor
// immediately.
func (u *Unit) TakeDamage(n int) {
	if n <= 0 || !u.Alive() {
		return
	}
	u.bound = false
	u.health -= n
	if u.health <= 0 {
		u.health = 0
		if u.floor != nil {
			u.floor.unitDied(u)
		}
	}
}

// Heal adds n to health, clamped at max.
func (u *Unit) Heal(n int) {
	if n <= 0 || !u.Alive() {
		return
	}
	u.health += n
	if u.health > u.maxHealth {
		u.health = u.maxHealth
	}
}

// SetBehavior overrides the built-in decision routine. Level setups
// use it to give scripted patrols to otherwise default units.
func (u *Unit) SetBehavior(b Behavior) {
	u.behavior = b
}

// AddAbilities attaches named capabilities to the unit. Re-adding an
// ability is a no-op; unknown IDs are rejected.
func (u *Unit) AddAbilities(ids ...AbilityID) error {
	for _, id := range ids {
		def, ok := abilityTable[id]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAbility, id)
		}
		u.abilities[id] = def.class
	}
	return nil
}

// HasAbility reports whether the unit owns the named capability,
// action or sense.
func (u *Unit) HasAbility(id AbilityID) bool {
	_, ok := u.abilities[id]
	return ok
}

// meleeBehavior checks each side and strikes the first enemy found.
// Expressed through the Turn protocol only, like any other driver.
func meleeBehavior(t *Turn) {
	for _, rel := range relativeDirections {
		v, err := t.DoSense(AbilityFeel, rel)
		if err != nil {
			return
		}
		if sp, ok := v.(Space); ok && sp.IsEnemy() {
			t.DoAction(AbilityAttack, rel) //nolint:errcheck // idle on failure
			return
		}
	}
}

// archerBehavior scans each side out to its engagement range and
// shoots the first enemy in line. Shots do not pass through units or
// walls, so the scan stops at the first blocker.
func archerBehavior(t *Turn) {
	for _, rel := range relativeDirections {
		v, err := t.DoSense(AbilityLook, rel)
		if err != nil {
			return
		}
		spaces, ok := v.([]Space)
		if !ok {
			return
		}
		for _, sp := range spaces {
			if sp.IsEnemy() {
				t.DoAction(AbilityShoot, rel) //nolint:errcheck // idle on failure
				return
			}
			if sp.Unit() != nil || sp.IsWall() {
				break
			}
		}
	}
}
