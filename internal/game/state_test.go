package game

import (
	"testing"

	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

func TestNewGameState_RejectsBadTuning(t *testing.T) {
	tn := tuning.Default()
	tn.World.Cols = 0
	if _, err := NewGameState(tn, 1); err == nil {
		t.Fatal("expected an error for a zero-width world")
	}
}

func TestNewGameState_GarrisonsEveryCamp(t *testing.T) {
	tn := tuning.Default()
	tn.World.Cols, tn.World.Rows = 40, 40
	tn.World.Camps.Count = 2
	tn.World.Camps.MinPlayerDistance = 8

	gs, err := NewGameState(tn, 12)
	if err != nil {
		t.Fatalf("NewGameState: %v", err)
	}
	if gs.Phase != PhasePlaying || gs.Tick != 0 {
		t.Fatalf("fresh game in phase %s at tick %d", gs.Phase, gs.Tick)
	}
	perCamp := map[int]int{}
	for _, e := range gs.Enemies {
		perCamp[e.CampID]++
		if e.Freed || e.State != EnemyIdle {
			t.Fatalf("%s should start idle and confined", e.Label)
		}
	}
	for _, c := range gs.World.Camps {
		if perCamp[c.ID] == 0 {
			t.Fatalf("camp %d has no garrison", c.ID)
		}
		if perCamp[c.ID] > tn.World.Camps.EnemiesPerCamp {
			t.Fatalf("camp %d over-garrisoned: %d", c.ID, perCamp[c.ID])
		}
	}
}

func TestNewGameState_SeedReproducesWorld(t *testing.T) {
	tn := tuning.Default()
	tn.World.Cols, tn.World.Rows = 32, 32
	a, err := NewGameState(tn, 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGameState(tn, 5)
	if err != nil {
		t.Fatal(err)
	}
	if a.WorldID == b.WorldID {
		t.Fatal("each world should get its own id")
	}
	if a.Player.X != b.Player.X || a.Player.Y != b.Player.Y || len(a.Enemies) != len(b.Enemies) {
		t.Fatal("same seed produced different starts")
	}
	for i := range a.Enemies {
		if a.Enemies[i].X != b.Enemies[i].X || a.Enemies[i].Kind != b.Enemies[i].Kind {
			t.Fatalf("enemy %d differs between runs", i)
		}
	}
}

func TestSpawnEnemy_IDsAndLabels(t *testing.T) {
	ts := NewTestSim()
	m := ts.State.SpawnEnemy(EnemyMelee, 3, 3, -1)
	a := ts.State.SpawnEnemy(EnemyArcher, 4, 4, -1)
	if m.ID != 1 || m.Label != "M1" || a.ID != 2 || a.Label != "A2" {
		t.Fatalf("got %s(%d) and %s(%d)", m.Label, m.ID, a.Label, a.ID)
	}
	if a.MaxHP != ts.State.Tuning.Archer.MaxHP || m.AggroRange != ts.State.Tuning.Melee.AggroRange {
		t.Fatal("enemy stats not taken from its kind's tuning")
	}
}
