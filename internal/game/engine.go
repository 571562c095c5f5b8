package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// Outcome is the terminal state of a playthrough.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeTimeout
)

var outcomeNames = [...]string{"in progress", "win", "loss", "timeout"}

func (o Outcome) String() string {
	if o < OutcomeNone || o > OutcomeTimeout {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Controller is the decision source for the protagonist. The script
// bridge implements it; tests substitute plain functions.
type Controller interface {
	PlayTurn(*Turn) error
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(*Turn) error

func (f ControllerFunc) PlayTurn(t *Turn) error { return f(t) }

// RoundFailure records a controller error. The round still counts;
// the protagonist simply took no action.
type RoundFailure struct {
	Round int
	Err   error
}

// Result summarizes a finished playthrough.
type Result struct {
	Outcome  Outcome
	Rounds   int
	Score    int
	Failures []RoundFailure
}

// Engine drives the per-round state machine: for every living unit in
// placement order, prepare a decision through a fresh Turn, perform
// it, and after the whole round clean up the dead. The engine is the
// sole writer of floor and unit state during the perform step.
type Engine struct {
	floor       *Floor
	protagonist *Unit
	controller  Controller
	maxRounds   int

	round    int
	outcome  Outcome
	failures []RoundFailure
	logger   *log.Logger
}

// DefaultRoundLimit bounds a playthrough when the level does not set
// its own limit.
const DefaultRoundLimit = 200

// NewEngine creates an engine for a fully assembled floor. The
// protagonist must already be placed. A nil controller leaves the
// protagonist idle every round; callers that fail to compile a script
// should refuse to start instead.
func NewEngine(floor *Floor, controller Controller, maxRounds int) (*Engine, error) {
	var protagonist *Unit
	for _, u := range floor.Units() {
		if u.Kind() == KindSamurai {
			protagonist = u
			break
		}
	}
	if protagonist == nil {
		return nil, errors.New("engine: no samurai on the floor")
	}
	if _, ok := floor.Stairs(); !ok {
		return nil, errors.New("engine: no stairs on the floor")
	}
	if maxRounds <= 0 {
		maxRounds = DefaultRoundLimit
	}
	return &Engine{
		floor:       floor,
		protagonist: protagonist,
		controller:  controller,
		maxRounds:   maxRounds,
	}, nil
}

// SetLogger attaches an optional structured logger. The engine stays
// silent without one, keeping tests and headless runs clean.
func (e *Engine) SetLogger(l *log.Logger) {
	e.logger = l
}

// Floor returns the engine's floor.
func (e *Engine) Floor() *Floor { return e.floor }

// Round returns the number of completed rounds.
func (e *Engine) Round() int { return e.round }

// Outcome returns the terminal state, or OutcomeNone while running.
func (e *Engine) Outcome() Outcome { return e.outcome }

// Done reports whether a terminal condition has been reached.
func (e *Engine) Done() bool { return e.outcome != OutcomeNone }

// Failures returns every controller failure so far, oldest first.
func (e *Engine) Failures() []RoundFailure { return e.failures }

// Score returns the points accumulated so far.
func (e *Engine) Score() int { return e.floor.Score() }

// PlayRound resolves one full round. Units act in placement order; a
// unit killed earlier in the round is gone before later units act.
// Units spawned mid-round (formed golems) first act next round. After
// everyone has acted, live bomb fuses burn down one step and any that
// reach zero detonate.
func (e *Engine) PlayRound() {
	if e.Done() {
		return
	}
	order := e.floor.Units()
	for _, u := range order {
		if e.Done() {
			break
		}
		if !u.Placed() || !u.Alive() {
			continue
		}
		if u.Bound() {
			continue
		}
		e.playTurn(u)
		e.checkOutcome()
	}
	if !e.Done() {
		e.floor.tickFuses()
		e.checkOutcome()
	}
	e.round++
	if !e.Done() && e.round >= e.maxRounds {
		e.outcome = OutcomeTimeout
		if e.logger != nil {
			e.logger.Info("round limit reached", "rounds", e.round)
		}
	}
}

func (e *Engine) playTurn(u *Unit) {
	t := newTurn(u)

	// Prepare: obtain the intent. The protagonist's comes from the
	// controller, everyone else's from their built-in behavior. A
	// controller failure converts to "no action this round".
	if u == e.protagonist {
		if e.controller != nil {
			if err := e.controller.PlayTurn(t); err != nil {
				e.failures = append(e.failures, RoundFailure{Round: e.round + 1, Err: err})
				if e.logger != nil {
					e.logger.Warn("controller failed", "round", e.round+1, "error", err)
				}
				return
			}
		}
	} else if u.behavior != nil {
		u.behavior(t)
	}

	// Perform: apply the recorded action against the floor.
	if err := t.perform(); err != nil {
		e.failures = append(e.failures, RoundFailure{Round: e.round + 1, Err: err})
		if e.logger != nil {
			e.logger.Warn("action failed", "round", e.round+1, "unit", u.Name(), "error", err)
		}
	}
}

func (e *Engine) checkOutcome() {
	if !e.protagonist.Alive() {
		e.outcome = OutcomeLoss
		if e.logger != nil {
			e.logger.Info("samurai has fallen", "round", e.round+1)
		}
		return
	}
	stairs, _ := e.floor.Stairs()
	if e.protagonist.Placed() && e.protagonist.Position() == stairs {
		e.outcome = OutcomeWin
		if e.logger != nil {
			e.logger.Info("stairs reached", "round", e.round+1, "score", e.Score())
		}
	}
}

// Run plays rounds until a terminal condition and returns the result.
func (e *Engine) Run() Result {
	for !e.Done() {
		e.PlayRound()
	}
	return Result{
		Outcome:  e.outcome,
		Rounds:   e.round,
		Score:    e.Score(),
		Failures: e.failures,
	}
}
