package game

import "testing"

func TestAutopilot_MeleeWhenAdjacent(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(10, 10),
		WithEnemy(EnemyMelee, 10.6, 10, -1),
	)
	keys := NewAutopilot(1).Next(ts.State)
	if !keys.Pressed(KeyMelee) || keys.Pressed(KeyRanged) {
		t.Fatalf("expected melee only, got %v", keys)
	}
}

func TestAutopilot_ShootsAtRange(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(10, 10),
		WithEnemy(EnemyArcher, 15, 10, -1),
	)
	keys := NewAutopilot(1).Next(ts.State)
	if !keys.Pressed(KeyRanged) {
		t.Fatalf("expected a shot, got %v", keys)
	}
}

func TestAutopilot_WalksToNearestQuietCamp(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(40, 40),
		WithCamp(30, 10, 3),
		WithCamp(10, 30, 3),
		WithPlayerAt(12, 12),
	)
	ts.State.World.Camps[1].Intruded = true
	keys := NewAutopilot(1).Next(ts.State)
	if !keys.Pressed(KeyRight) || keys.Pressed(KeyDown) {
		t.Fatalf("expected to head right toward camp 0, got %v", keys)
	}
}

func TestAutopilot_IdleWhileBusy(t *testing.T) {
	ts := NewTestSim(
		WithPlayerAt(10, 10),
		WithEnemy(EnemyMelee, 10.6, 10, -1),
	)
	ts.State.Player.Attacking = true
	if keys := NewAutopilot(1).Next(ts.State); len(keys) != 0 {
		t.Fatalf("busy player should get no input, got %v", keys)
	}
}

func TestAutopilot_ClearsSmallWorld(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(24, 24),
		WithCamp(16, 16, 3),
		WithPlayerAt(5, 5),
		WithEnemy(EnemyMelee, 16, 16, 0),
	)
	ap := NewAutopilot(3)
	for i := 0; i < 3000 && len(ts.State.Enemies) > 0 && ts.State.Phase == PhasePlaying; i++ {
		ts.State.Step(ap.Next(ts.State))
	}
	if len(ts.State.Enemies) != 0 || ts.State.Stats.Kills != 1 {
		dumpSummary(t, ts)
		t.Fatalf("autopilot left %d enemies", len(ts.State.Enemies))
	}
}
