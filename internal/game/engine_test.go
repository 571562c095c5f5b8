package game

import (
	"errors"
	"testing"
)

// buildFloor assembles a floor with a samurai at (0,0) facing east and
// stairs in the far corner, returning both.
func buildFloor(t *testing.T, w, h int) (*Floor, *Unit) {
	t.Helper()
	f := NewFloor(w, h)
	samurai := NewUnit(KindSamurai)
	if err := samurai.AddAbilities(AbilityWalk, AbilityAttack, AbilityFeel, AbilityRest, AbilityHealth); err != nil {
		t.Fatal(err)
	}
	if err := f.Add(samurai, 0, 0, East); err != nil {
		t.Fatal(err)
	}
	if err := f.PlaceStairs(w-1, h-1); err != nil {
		t.Fatal(err)
	}
	return f, samurai
}

func TestEngineWinOnStairs(t *testing.T) {
	f, _ := buildFloor(t, 4, 1)
	walker := ControllerFunc(func(turn *Turn) error {
		return turn.DoAction(AbilityWalk, "forward")
	})
	e, err := NewEngine(f, walker, 10)
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}

	result := e.Run()
	if result.Outcome != OutcomeWin {
		t.Fatalf("outcome = %v, expected win", result.Outcome)
	}
	if result.Rounds != 3 {
		t.Errorf("rounds = %d, expected 3 walks to the stairs", result.Rounds)
	}
}

func TestEngineTimeout(t *testing.T) {
	f, _ := buildFloor(t, 4, 1)
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 5)
	if err != nil {
		t.Fatal(err)
	}

	result := e.Run()
	if result.Outcome != OutcomeTimeout {
		t.Fatalf("outcome = %v, expected timeout", result.Outcome)
	}
	if result.Rounds != 5 {
		t.Errorf("rounds = %d, expected the configured limit", result.Rounds)
	}
}

func TestEngineLossWhenSamuraiDies(t *testing.T) {
	f, samurai := buildFloor(t, 3, 1)
	bandit := NewUnit(KindBandit)
	if err := f.Add(bandit, 1, 0, West); err != nil {
		t.Fatal(err)
	}
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 50)
	if err != nil {
		t.Fatal(err)
	}

	result := e.Run()
	if result.Outcome != OutcomeLoss {
		t.Fatalf("outcome = %v, expected loss", result.Outcome)
	}
	if samurai.Alive() {
		t.Error("samurai should be dead")
	}
	// 20 health, 3 damage per round
	if result.Rounds != 7 {
		t.Errorf("rounds = %d, expected 7", result.Rounds)
	}
}

func TestEngineControllerFailureMeansNoAction(t *testing.T) {
	f, samurai := buildFloor(t, 4, 1)
	boom := errors.New("script exploded")
	failing := ControllerFunc(func(turn *Turn) error {
		if err := turn.DoAction(AbilityWalk, "forward"); err != nil {
			return err
		}
		return boom
	})
	e, err := NewEngine(f, failing, 3)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	if samurai.Position() != (Point{0, 0}) {
		t.Errorf("position = %v, a failed round must not move the unit", samurai.Position())
	}
	failures := e.Failures()
	if len(failures) != 1 {
		t.Fatalf("got %d failures, expected 1", len(failures))
	}
	if !errors.Is(failures[0].Err, boom) {
		t.Errorf("failure = %v, expected the controller error", failures[0].Err)
	}
	if failures[0].Round != 1 {
		t.Errorf("failure round = %d, expected 1", failures[0].Round)
	}

	// Subsequent rounds keep running
	e.PlayRound()
	if e.Done() {
		t.Error("engine should keep running after a failed round")
	}
}

func TestEngineRoundOrderIsPlacementOrder(t *testing.T) {
	f, _ := buildFloor(t, 6, 1)
	var acted []string
	first := NewUnit(KindCaptive)
	second := NewUnit(KindCaptive)
	first.bound = false
	second.bound = false
	first.SetBehavior(func(*Turn) { acted = append(acted, "first") })
	second.SetBehavior(func(*Turn) { acted = append(acted, "second") })
	if err := f.Add(first, 3, 0, West); err != nil {
		t.Fatal(err)
	}
	if err := f.Add(second, 4, 0, West); err != nil {
		t.Fatal(err)
	}

	protagonist := ControllerFunc(func(*Turn) error {
		acted = append(acted, "samurai")
		return nil
	})
	e, err := NewEngine(f, protagonist, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	e.PlayRound()
	want := []string{"samurai", "first", "second", "samurai", "first", "second"}
	if len(acted) != len(want) {
		t.Fatalf("acted = %v, expected %v", acted, want)
	}
	for i := range want {
		if acted[i] != want[i] {
			t.Fatalf("acted = %v, expected %v", acted, want)
		}
	}
}

func TestEngineMidRoundDeathRemovesTarget(t *testing.T) {
	// The samurai kills the bandit early in the round; a later unit
	// must no longer see it as a target in the same round.
	f, _ := buildFloor(t, 4, 1)
	bandit := NewUnit(KindBandit)
	bandit.health = 1
	if err := f.Add(bandit, 1, 0, West); err != nil {
		t.Fatal(err)
	}
	var watcherSaw bool
	watcher := NewUnit(KindCaptive)
	watcher.bound = false
	watcher.SetBehavior(func(turn *Turn) {
		watcherSaw = !f.Space(1, 0).IsEmpty()
	})
	if err := f.Add(watcher, 2, 0, West); err != nil {
		t.Fatal(err)
	}

	killer := ControllerFunc(func(turn *Turn) error {
		return turn.DoAction(AbilityAttack, "forward")
	})
	e, err := NewEngine(f, killer, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	if bandit.Alive() || bandit.Placed() {
		t.Error("bandit should be dead and off the floor")
	}
	if watcherSaw {
		t.Error("a unit killed earlier in the round must not be sensed later in the same round")
	}
}

func TestEngineBoundUnitsSkipTurns(t *testing.T) {
	f, _ := buildFloor(t, 4, 1)
	var calls int
	bandit := NewUnit(KindBandit)
	bandit.SetBehavior(func(*Turn) { calls++ })
	bandit.bound = true
	if err := f.Add(bandit, 2, 0, West); err != nil {
		t.Fatal(err)
	}
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 3)
	if err != nil {
		t.Fatal(err)
	}

	e.Run()
	if calls != 0 {
		t.Errorf("bound unit acted %d times, expected 0", calls)
	}
}

func TestEngineGolemActsOncePerRound(t *testing.T) {
	f, samurai := buildFloor(t, 5, 1)
	if err := samurai.AddAbilities(AbilityForm); err != nil {
		t.Fatal(err)
	}

	var calls int
	formed := false
	controller := ControllerFunc(func(turn *Turn) error {
		if !formed {
			formed = true
			return turn.DoAction(AbilityForm, "forward", Behavior(func(*Turn) { calls++ }))
		}
		return nil
	})
	e, err := NewEngine(f, controller, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound() // golem is formed, acts starting next round
	if calls != 0 {
		t.Fatalf("golem acted %d times in its spawn round, expected 0", calls)
	}
	e.PlayRound()
	e.PlayRound()
	if calls != 2 {
		t.Errorf("golem acted %d times over two rounds, expected 2", calls)
	}
}

func TestEngineRoninIsReinforcedBandit(t *testing.T) {
	ronin := NewUnit(KindRonin)
	bandit := NewUnit(KindBandit)
	if ronin.MaxHealth() != 2*bandit.MaxHealth() {
		t.Errorf("ronin max health = %d, expected double the bandit's %d",
			ronin.MaxHealth(), bandit.MaxHealth())
	}
	if ronin.Health() != ronin.MaxHealth() {
		t.Errorf("ronin current health = %d, expected full %d", ronin.Health(), ronin.MaxHealth())
	}
	if ronin.AttackPower() <= bandit.AttackPower() {
		t.Errorf("ronin attack = %d, expected more than the bandit's %d",
			ronin.AttackPower(), bandit.AttackPower())
	}
}

func TestEngineArcherShootsWithinRangeOnly(t *testing.T) {
	f, samurai := buildFloor(t, 6, 1)
	archer := NewUnit(KindArcher)
	if err := f.Add(archer, 4, 0, West); err != nil {
		t.Fatal(err)
	}
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Samurai at (0,0), archer at (5,0): distance 5, out of range
	e.PlayRound()
	if samurai.Health() != 20 {
		t.Errorf("health = %d, archer must not hit beyond its range", samurai.Health())
	}

	// Move the samurai within range and replay
	f.move(samurai, Point{2, 0})
	e2, err := NewEngine(f, idle, 1)
	if err != nil {
		t.Fatal(err)
	}
	e2.PlayRound()
	if samurai.Health() != 20-archer.AttackPower() {
		t.Errorf("health = %d, expected exactly one arrow of %d damage",
			samurai.Health(), archer.AttackPower())
	}
}

func TestEngineArcherDiesToCumulativeDamage(t *testing.T) {
	archer := NewUnit(KindArcher)
	f := NewFloor(3, 1)
	if err := f.Add(archer, 0, 0, East); err != nil {
		t.Fatal(err)
	}

	archer.TakeDamage(5)
	if !archer.Alive() {
		t.Fatal("archer should survive 5 damage")
	}
	archer.TakeDamage(5)
	if archer.Alive() {
		t.Error("archer should die once cumulative damage reaches its max health")
	}
	if archer.Health() != 0 {
		t.Errorf("health = %d, must clamp at 0", archer.Health())
	}
	if archer.Placed() {
		t.Error("dead archer should be off the floor")
	}
}

func TestEngineFuseBurnsDownAndDetonates(t *testing.T) {
	f, samurai := buildFloor(t, 5, 1)
	captive := NewUnit(KindCaptive)
	captive.SetFuse(2)
	if err := f.Add(captive, 2, 0, North); err != nil {
		t.Fatal(err)
	}
	witness := NewUnit(KindBandit)
	witness.SetBehavior(nil)
	if err := f.Add(witness, 1, 0, West); err != nil {
		t.Fatal(err)
	}
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	if !captive.Ticking() || captive.Fuse() != 1 {
		t.Fatalf("fuse = %d after one round, expected 1", captive.Fuse())
	}

	e.PlayRound()
	if captive.Alive() || captive.Placed() {
		t.Error("the bomb should destroy its carrier at zero")
	}
	if witness.Health() != 12-bombSplash {
		t.Errorf("adjacent bandit health = %d, expected splash to %d",
			witness.Health(), 12-bombSplash)
	}
	if samurai.Health() != 20 {
		t.Errorf("samurai health = %d, expected untouched two cells away", samurai.Health())
	}
}

func TestEngineBlastCanKillSamurai(t *testing.T) {
	f, samurai := buildFloor(t, 4, 1)
	samurai.TakeDamage(17) // 3, one splash from death
	captive := NewUnit(KindCaptive)
	captive.SetFuse(1)
	if err := f.Add(captive, 1, 0, West); err != nil {
		t.Fatal(err)
	}
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	if samurai.Alive() {
		t.Error("samurai should die to the splash")
	}
	if e.Outcome() != OutcomeLoss {
		t.Errorf("outcome = %v, expected loss", e.Outcome())
	}
}

func TestEngineRescueDefusesBomb(t *testing.T) {
	f, samurai := buildFloor(t, 4, 1)
	if err := samurai.AddAbilities(AbilityRescue); err != nil {
		t.Fatal(err)
	}
	captive := NewUnit(KindCaptive)
	captive.SetFuse(1)
	if err := f.Add(captive, 1, 0, West); err != nil {
		t.Fatal(err)
	}
	rescuer := ControllerFunc(func(turn *Turn) error {
		return turn.DoAction(AbilityRescue, "forward")
	})
	e, err := NewEngine(f, rescuer, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	if captive.Ticking() {
		t.Error("a rescued captive must be defused")
	}
	if samurai.Health() != 20 {
		t.Errorf("samurai health = %d, the bomb must not go off after the rescue", samurai.Health())
	}
	if e.Score() != rescuePoints {
		t.Errorf("score = %d, expected %d for the rescue", e.Score(), rescuePoints)
	}
}

func TestEngineDeathDisarmsNeighboringBomb(t *testing.T) {
	// Two armed captives side by side: the first blast kills the second
	// carrier before its own fuse resolves, so only one bomb goes off.
	f, samurai := buildFloor(t, 5, 1)
	first := NewUnit(KindCaptive)
	first.SetFuse(1)
	second := NewUnit(KindCaptive)
	second.SetFuse(1)
	if err := f.Add(first, 1, 0, North); err != nil {
		t.Fatal(err)
	}
	if err := f.Add(second, 2, 0, North); err != nil {
		t.Fatal(err)
	}
	witness := NewUnit(KindBandit)
	witness.SetBehavior(nil)
	if err := f.Add(witness, 3, 0, West); err != nil {
		t.Fatal(err)
	}
	idle := ControllerFunc(func(*Turn) error { return nil })
	e, err := NewEngine(f, idle, 10)
	if err != nil {
		t.Fatal(err)
	}

	e.PlayRound()
	if first.Placed() || second.Placed() {
		t.Error("both carriers should be gone")
	}
	if samurai.Health() != 20-bombSplash {
		t.Errorf("samurai health = %d, expected one splash of %d", samurai.Health(), bombSplash)
	}
	if witness.Health() != 12 {
		t.Errorf("witness health = %d, the second bomb must not detonate", witness.Health())
	}
}

func TestEngineScoreCountsKillsAndRescues(t *testing.T) {
	f, _ := buildFloor(t, 4, 1)
	bandit := NewUnit(KindBandit)
	bandit.health = 1
	if err := f.Add(bandit, 1, 0, West); err != nil {
		t.Fatal(err)
	}
	killer := ControllerFunc(func(turn *Turn) error {
		return turn.DoAction(AbilityAttack, "forward")
	})
	e, err := NewEngine(f, killer, 2)
	if err != nil {
		t.Fatal(err)
	}
	e.PlayRound()
	if e.Score() != bandit.MaxHealth() {
		t.Errorf("score = %d, expected the victim's max health %d", e.Score(), bandit.MaxHealth())
	}
}

func TestEngineSnapshotDeterminism(t *testing.T) {
	run := func() Snapshot {
		f, _ := buildFloor(t, 5, 2)
		bandit := NewUnit(KindBandit)
		if err := f.Add(bandit, 3, 0, West); err != nil {
			t.Fatal(err)
		}
		controller := ControllerFunc(func(turn *Turn) error {
			v, err := turn.DoSense(AbilityFeel, "forward")
			if err != nil {
				return err
			}
			if sp := v.(Space); sp.IsEnemy() {
				return turn.DoAction(AbilityAttack, "forward")
			}
			return turn.DoAction(AbilityWalk, "forward")
		})
		e, err := NewEngine(f, controller, 30)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			e.PlayRound()
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	if a.Round != b.Round || a.Outcome != b.Outcome || a.Score != b.Score {
		t.Fatalf("snapshot header mismatch: %+v vs %+v", a, b)
	}
	if len(a.Units) != len(b.Units) {
		t.Fatalf("unit counts differ: %d vs %d", len(a.Units), len(b.Units))
	}
	for i := range a.Units {
		if a.Units[i] != b.Units[i] {
			t.Errorf("unit %d mismatch: %+v vs %+v", i, a.Units[i], b.Units[i])
		}
	}
}

func TestNewEngineValidation(t *testing.T) {
	f := NewFloor(3, 1)
	if _, err := NewEngine(f, nil, 10); err == nil {
		t.Error("NewEngine() without a samurai should fail")
	}

	samurai := NewUnit(KindSamurai)
	if err := f.Add(samurai, 0, 0, East); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(f, nil, 10); err == nil {
		t.Error("NewEngine() without stairs should fail")
	}
}
