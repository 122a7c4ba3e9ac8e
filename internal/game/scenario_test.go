package game

import (
	"math"
	"strings"
	"testing"

	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

// dumpLog prints the full event log to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.Log.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(Summary(ts.State))
}

// --- Scenario: Camp Intrusion ---

func TestScenario_CampIntrusionFreesGarrison(t *testing.T) {
	t.Log("=== TestScenario_CampIntrusionFreesGarrison ===")
	ts := NewTestSim(
		WithGridSize(40, 40),
		WithCamp(10, 10, 5),
		WithPlayerAt(30, 30),
		WithEnemy(EnemyMelee, 10, 10, 0),
		WithEnemy(EnemyArcher, 11, 8, 0),
	)
	camp := ts.State.World.Camps[0]

	ts.RunTicks(1)
	if camp.Intruded || ts.Enemy(0).Freed {
		t.Fatal("camp intruded before the player arrived")
	}
	if ts.Enemy(0).State != EnemyIdle {
		t.Fatalf("distant garrison should idle, got %s", ts.Enemy(0).State)
	}

	ts.Player().X, ts.Player().Y = 11, 10
	ts.RunTicks(1)
	if !camp.Intruded {
		t.Fatal("camp not latched on entry")
	}
	for i := range ts.State.Enemies {
		e := ts.Enemy(i)
		if !e.Freed {
			t.Fatalf("%s not freed", e.Label)
		}
		if e.State == EnemyIdle {
			t.Fatalf("%s still idle after intrusion", e.Label)
		}
	}
	if ts.State.Stats.CampsIntruded != 1 {
		t.Fatalf("expected 1 intrusion, got %d", ts.State.Stats.CampsIntruded)
	}
	if !ts.Log.HasEntry("camp", "intruded", "2 freed") {
		dumpLog(t, ts)
		t.Fatal("intrusion event missing")
	}

	// Leaving and re-entering does not fire again.
	ts.Player().X, ts.Player().Y = 30, 30
	ts.RunTicks(1)
	ts.Player().X, ts.Player().Y = 11, 10
	ts.RunTicks(1)
	if n := ts.Log.CountCategory("camp", "intruded"); n != 1 {
		t.Fatalf("latch fired %d times", n)
	}
	if !camp.Intruded {
		t.Fatal("latch cleared")
	}
}

func TestScenario_CampBoundaryIsStrict(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(40, 40),
		WithCamp(10, 10, 5),
		WithPlayerAt(15, 10),
	)
	ts.RunTicks(1)
	if ts.State.World.Camps[0].Intruded {
		t.Fatal("standing exactly on the radius should not count as inside")
	}
}

func TestScenario_OtherCampsStayConfined(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(50, 50),
		WithCamp(10, 10, 4),
		WithCamp(35, 35, 4),
		WithPlayerAt(11, 10),
		WithEnemy(EnemyMelee, 10, 11, 0),
		WithEnemy(EnemyMelee, 35, 35, 1),
	)
	ts.RunTicks(1)
	if !ts.Enemy(0).Freed {
		t.Fatal("garrison of the entered camp should be freed")
	}
	if ts.Enemy(1).Freed || ts.State.World.Camps[1].Intruded {
		t.Fatal("the other camp reacted to an intrusion it did not receive")
	}
}

// --- Scenario: Confined Chase ---

func TestScenario_ConfinedChaserStaysInCamp(t *testing.T) {
	t.Log("=== TestScenario_ConfinedChaserStaysInCamp ===")
	ts := NewTestSim(
		WithGridSize(30, 30),
		WithCamp(10, 10, 3),
		WithPlayerAt(15, 10),
		WithEnemy(EnemyMelee, 10, 10, 0),
	)
	e := ts.Enemy(0)
	camp := ts.State.World.Camps[0]
	for i := 0; i < 300; i++ {
		ts.RunTicks(1)
		if d := math.Hypot(e.X-camp.X, e.Y-camp.Y); d > camp.Radius+1e-9 {
			dumpLog(t, ts)
			t.Fatalf("tick %d: confined enemy %.3f from the centre", ts.CurrentTick(), d)
		}
	}
	if e.State != EnemyChasing {
		t.Fatalf("enemy should keep chasing from the camp edge, got %s", e.State)
	}
	if e.X < 12.5 {
		t.Fatalf("enemy should press against the edge toward the player, x=%.2f", e.X)
	}
	if ts.Player().HP != ts.Player().MaxHP {
		t.Fatal("confined enemy reached the player")
	}
}

func TestScenario_FreedChaserLeavesCamp(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(30, 30),
		WithCamp(10, 10, 3),
		WithPlayerAt(11, 10),
		WithEnemy(EnemyMelee, 10, 10, 0),
	)
	ts.RunTicks(1)
	ts.Player().X = 18
	ts.RunTicks(150)
	if d := ts.Enemy(0).DistanceTo(10, 10); d <= 3 {
		t.Fatalf("freed enemy never left the camp, %.2f from centre", d)
	}
}

// --- Scenario: Defeat and Retry ---

func TestScenario_DefeatFreezesSimulation(t *testing.T) {
	t.Log("=== TestScenario_DefeatFreezesSimulation ===")
	ts := NewTestSim(
		WithPlayerAt(10, 10),
		WithEnemy(EnemyMelee, 10.5, 10, -1),
	)
	ts.Player().HP = 5

	at := ts.RunUntil(func(ts *TestSim) bool { return ts.State.Phase == PhaseDefeated }, 100)
	if at != 14 {
		dumpLog(t, ts)
		t.Fatalf("expected defeat at tick 14, got %d", at)
	}
	if ts.Player().HP != 0 {
		t.Fatalf("hp should clamp at 0, got %d", ts.Player().HP)
	}
	if ts.State.Stats.DamageTaken != 5 {
		t.Fatalf("damage taken should count only what was removed, got %d", ts.State.Stats.DamageTaken)
	}

	before := ts.Snapshot()
	ts.Press(KeyRight, KeyMelee)
	ts.RunTicks(50)
	after := ts.Snapshot()
	if after.Tick != before.Tick || after.Player != before.Player {
		t.Fatalf("defeated game advanced: %+v -> %+v", before, after)
	}
	if ts.Enemy(0).AttackFrame != 12 {
		t.Fatalf("enemy animation advanced after defeat, frame=%d", ts.Enemy(0).AttackFrame)
	}
	if n := ts.Log.CountCategory("game", "defeated"); n != 1 {
		t.Fatalf("expected one defeat entry, got %d", n)
	}
}

func TestScenario_DefeatStopsLaterEnemies(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(10, 10),
		WithEnemy(EnemyMelee, 10.5, 10, -1),
		WithEnemy(EnemyMelee, 9.5, 10, -1),
	)
	ts.Player().HP = 10
	ts.RunUntil(func(ts *TestSim) bool { return ts.State.Phase == PhaseDefeated }, 100)
	if n := ts.State.Stats.EnemyMeleeHits; n != 1 {
		t.Fatalf("second enemy acted after the killing blow: %d hits", n)
	}
}

func TestScenario_RetryStartsFresh(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(10, 10),
		WithEnemy(EnemyMelee, 10.5, 10, -1),
	)
	ts.Player().HP = 5
	ts.RunUntil(func(ts *TestSim) bool { return ts.State.Phase == PhaseDefeated }, 100)
	oldID := ts.State.WorldID
	oldWorld := ts.State.World

	ts.State.Retry()
	gs := ts.State
	if gs.Phase != PhasePlaying || gs.Player.HP != gs.Player.MaxHP || gs.Tick != 0 {
		t.Fatalf("retry left phase=%s hp=%d tick=%d", gs.Phase, gs.Player.HP, gs.Tick)
	}
	if gs.WorldID == oldID || gs.World == oldWorld {
		t.Fatal("retry should generate a new world")
	}
	if len(gs.Arrows) != 0 || gs.Stats != (Stats{}) {
		t.Fatal("arrows and stats should reset with the world")
	}
	if ts.Log.CountCategory("game", "defeated") != 0 || len(gs.FeedLines(10)) != 0 {
		dumpLog(t, ts)
		t.Fatal("old world's events and feed survived the retry")
	}
	if !ts.Log.HasEntry("game", "retry", gs.WorldID.String()) {
		t.Fatal("retry not logged against the new world")
	}
	for _, e := range ts.Log.Entries() {
		if e.Tick != 0 {
			t.Fatalf("entry from an older world: %s", e)
		}
	}
	if gs.Player.X != gs.World.StartX || gs.Player.Y != gs.World.StartY {
		t.Fatal("player not moved to the new start")
	}
	for _, e := range gs.Enemies {
		if e.CampID < 0 || gs.World.Camp(e.CampID) == nil {
			t.Fatalf("%s has camp %d after retry", e.Label, e.CampID)
		}
		if !gs.World.Camp(e.CampID).Contains(e.X, e.Y) {
			t.Fatalf("%s spawned outside its camp", e.Label)
		}
	}

	gs.Step(nil)
	if gs.Tick != 1 {
		t.Fatal("simulation should advance again after retry")
	}
}

func TestScenario_ResetWorldKeepsHealthAndPhase(t *testing.T) {
	ts := NewTestSim(WithPlayerAt(10, 10))
	ts.RunTicks(20)
	ts.Player().HP = 40

	ts.State.ResetWorld()
	if ts.Player().HP != 40 {
		t.Fatalf("reset should keep hp, got %d", ts.Player().HP)
	}
	if ts.State.Phase != PhasePlaying || ts.State.Tick != 0 {
		t.Fatalf("reset left phase=%s tick=%d", ts.State.Phase, ts.State.Tick)
	}
	if !ts.State.World.IsWalkable(ts.Player().X, ts.Player().Y) {
		t.Fatal("player placed on an unwalkable cell")
	}
	if ts.State.Gen.CampsPlaced != len(ts.State.World.Camps) {
		t.Fatalf("gen report says %d camps, world has %d", ts.State.Gen.CampsPlaced, len(ts.State.World.Camps))
	}
}

// --- Scenario: Wanderer Spawns ---

func TestScenario_WandererSpawnsRespectCap(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(30, 30),
		WithPlayerAt(15, 15),
		WithTuningFn(func(t *tuning.Tuning) {
			t.Spawn.MaxWanderers = 2
			t.Spawn.IntervalTicks = 10
			t.Spawn.MinPlayerDistance = 8
		}),
	)
	ts.RunTicks(9)
	if len(ts.State.Enemies) != 0 {
		t.Fatal("spawned before the first interval")
	}
	ts.RunTicks(41)
	wanderers := 0
	for _, e := range ts.State.Enemies {
		if e.CampID == -1 {
			wanderers++
		}
	}
	if wanderers != 2 || ts.State.Stats.Wanderers != 2 {
		dumpLog(t, ts)
		t.Fatalf("expected 2 wanderers, got %d (stats %d)", wanderers, ts.State.Stats.Wanderers)
	}
	for _, en := range ts.Log.Filter("spawn", "wanderer") {
		if en.Tick%10 != 0 {
			t.Fatalf("spawn off the interval at tick %d", en.Tick)
		}
	}
}

func TestScenario_WandererSpawnAvoidsPlayerAndCamps(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(30, 30),
		WithCamp(5, 5, 4),
		WithPlayerAt(25, 25),
		WithTuningFn(func(t *tuning.Tuning) {
			t.Spawn.MaxWanderers = 50
			t.Spawn.IntervalTicks = 1
			t.Spawn.MinPlayerDistance = 6
		}),
	)
	for i := 0; i < 20; i++ {
		ts.RunTicks(1)
		for _, en := range ts.Log.Filter("spawn", "wanderer") {
			if en.Tick != ts.CurrentTick() {
				continue
			}
			e := ts.State.Enemies[len(ts.State.Enemies)-1]
			if ts.State.World.CampAt(e.X, e.Y) != nil {
				t.Fatalf("wanderer %s spawned inside a camp", e.Label)
			}
			if e.DistanceTo(25, 25) < 6 {
				t.Fatalf("wanderer %s spawned %.1f from the player", e.Label, e.DistanceTo(25, 25))
			}
		}
	}
}

func TestScenario_WandererSpawnSkippedWhenNoRoom(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(30, 30),
		WithBiomeRect(BiomeLake, 0, 0, 30, 30),
		WithBiomeRect(BiomeGround, 14, 14, 2, 2),
		WithPlayerAt(15, 15),
		WithTuningFn(func(t *tuning.Tuning) {
			t.Spawn.MaxWanderers = 3
			t.Spawn.IntervalTicks = 10
			t.Spawn.MinPlayerDistance = 5
		}),
	)
	ts.RunTicks(20)
	if len(ts.State.Enemies) != 0 {
		t.Fatal("wanderer placed on an impossible map")
	}
	if ts.State.Stats.SpawnsSkipped != 2 {
		t.Fatalf("expected 2 skipped spawns, got %d", ts.State.Stats.SpawnsSkipped)
	}
}

func TestScenario_SummaryMentionsState(t *testing.T) {
	ts := NewTestSim(
		WithCamp(8, 8, 3),
		WithPlayerAt(20, 20),
		WithEnemy(EnemyArcher, 8, 8, 0),
	)
	ts.RunTicks(3)
	s := Summary(ts.State)
	for _, want := range []string{"Camp 0:", "quiet, 1 alive", "idle=1", "HP 100/100", ts.State.WorldID.String()} {
		if !strings.Contains(s, want) {
			dumpSummary(t, ts)
			t.Fatalf("summary missing %q", want)
		}
	}
}
