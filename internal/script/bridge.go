// Package script embeds a Lua interpreter (Shopify/go-lua) and adapts
// the engine's Turn protocol to Lua calling conventions. The engine
// never sees the Lua runtime; it only sees a game.Controller.
//
// A player script defines a Player table with a play_turn method:
//
//	Player = {}
//	function Player:play_turn(samurai)
//	    if samurai:feel() == nil then
//	        samurai:walk()
//	    else
//	        samurai:attack()
//	    end
//	end
//
// Method names follow Lua convention (snake_case, no punctuation); the
// bridge maps them onto the native ability names, where actions carry
// a trailing "!" marker. Sensing an empty or stairs cell yields nil,
// anything else a space object with is_empty/is_enemy/is_captive/
// is_stairs/is_wall/is_ticking predicates.
package script

import (
	"errors"
	"fmt"

	lua "github.com/Shopify/go-lua"

	"github.com/vovakirdan/tui-tower/internal/game"
)

const (
	turnTypeName  = "tower.turn"
	spaceTypeName = "tower.space"
)

// Phase tells where a script failure happened.
type Phase string

const (
	PhaseCompile Phase = "compile"
	PhaseTurn    Phase = "turn"
)

// Error is a structured script failure. Compile-phase errors surface
// before any round runs; turn-phase errors convert the round into "no
// action" and are preserved for display.
type Error struct {
	Phase Phase
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("script %s error: %v", e.Phase, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Controller is a compiled player script. It implements
// game.Controller; the Lua state persists across rounds, so fields a
// script hangs off its Player table survive between turns.
type Controller struct {
	state *lua.State
}

// Compile runs the player source in a fresh Lua state and verifies it
// defines Player.play_turn. Syntax errors and top-level runtime
// errors are both compile-phase failures: either way no round may run.
func Compile(source string) (*Controller, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	registerTurnType(l)
	registerSpaceType(l)

	if err := lua.LoadString(l, source); err != nil {
		return nil, &Error{Phase: PhaseCompile, Err: err}
	}
	if err := l.ProtectedCall(0, 0, 0); err != nil {
		return nil, &Error{Phase: PhaseCompile, Err: err}
	}

	l.Global("Player")
	isTable := l.TypeOf(-1) == lua.TypeTable
	var hasPlayTurn bool
	if isTable {
		l.Field(-1, "play_turn")
		hasPlayTurn = l.TypeOf(-1) == lua.TypeFunction
		l.Pop(1)
	}
	l.Pop(1)

	if !isTable {
		return nil, &Error{Phase: PhaseCompile, Err: errors.New("script must define a Player table")}
	}
	if !hasPlayTurn {
		return nil, &Error{Phase: PhaseCompile, Err: errors.New("Player must have a play_turn function")}
	}
	return &Controller{state: l}, nil
}

// PlayTurn invokes Player:play_turn with the adapted turn handle.
// Lua errors are caught at the ProtectedCall boundary and returned as
// a turn-phase Error; the engine treats the round as "no action".
func (c *Controller) PlayTurn(t *game.Turn) error {
	l := c.state
	base := l.Top()

	l.Global("Player")
	l.Field(-1, "play_turn")
	l.PushValue(-2) // self
	pushTurn(l, t)
	if err := l.ProtectedCall(2, 0, 0); err != nil {
		l.SetTop(base)
		return &Error{Phase: PhaseTurn, Err: err}
	}
	l.SetTop(base)
	return nil
}

func pushTurn(l *lua.State, t *game.Turn) {
	l.PushUserData(t)
	lua.SetMetaTableNamed(l, turnTypeName)
}

// registerTurnType installs the turn metatable. __index is a function
// so any method name resolves to a dispatcher closure; unknown names
// fail at call time with a Lua-visible error rather than a nil call.
func registerTurnType(l *lua.State) {
	lua.NewMetaTable(l, turnTypeName)
	l.PushGoFunction(turnIndex)
	l.SetField(-2, "__index")
	l.Pop(1)
}

func turnIndex(l *lua.State) int {
	name := lua.CheckString(l, 2)
	l.PushGoFunction(func(l *lua.State) int {
		return turnCall(l, name)
	})
	return 1
}

// turnCall dispatches one Lua method call against the native turn.
// The Lua name "walk" maps to the action "walk!"; a bare name with no
// marker maps to the sense of the same name. A name matching neither
// set raises a Lua error.
func turnCall(l *lua.State, name string) int {
	t := checkTurn(l)
	args := collectArgs(l, 2)

	actionID := game.AbilityID(name + "!")
	senseID := game.AbilityID(name)
	switch {
	case t.HasAction(actionID):
		if err := t.DoAction(actionID, args...); err != nil {
			lua.Errorf(l, "%s", err.Error())
		}
		return 0
	case t.HasSense(senseID):
		v, err := t.DoSense(senseID, args...)
		if err != nil {
			lua.Errorf(l, "%s", err.Error())
		}
		return pushValue(l, v)
	default:
		lua.Errorf(l, "%s", fmt.Sprintf("unknown ability %q", name))
		return 0
	}
}

func checkTurn(l *lua.State) *game.Turn {
	ud := lua.CheckUserData(l, 1, turnTypeName)
	if t, ok := ud.(*game.Turn); ok && t != nil {
		return t
	}
	lua.ArgumentError(l, 1, "turn expected")
	return nil
}

// registerSpaceType installs the space proxy metatable. Predicates
// resolve lazily: asking for a predicate the proxy does not implement
// raises at the point of the offending call, not at wrap time.
func registerSpaceType(l *lua.State) {
	lua.NewMetaTable(l, spaceTypeName)
	l.PushGoFunction(spaceIndex)
	l.SetField(-2, "__index")
	l.Pop(1)
}

var spacePredicates = map[string]func(game.Space) bool{
	"is_empty":   game.Space.IsEmpty,
	"is_enemy":   game.Space.IsEnemy,
	"is_captive": game.Space.IsCaptive,
	"is_stairs":  game.Space.IsStairs,
	"is_wall":    game.Space.IsWall,
	"is_ticking": game.Space.IsTicking,
}

func spaceIndex(l *lua.State) int {
	name := lua.CheckString(l, 2)
	l.PushGoFunction(func(l *lua.State) int {
		return spaceCall(l, name)
	})
	return 1
}

func spaceCall(l *lua.State, name string) int {
	ud := lua.CheckUserData(l, 1, spaceTypeName)
	sp, ok := ud.(game.Space)
	if !ok {
		lua.ArgumentError(l, 1, "space expected")
		return 0
	}
	pred, ok := spacePredicates[name]
	if !ok {
		lua.Errorf(l, "%s", fmt.Sprintf("unknown space predicate %q", name))
		return 0
	}
	l.PushBoolean(pred(sp))
	return 1
}
