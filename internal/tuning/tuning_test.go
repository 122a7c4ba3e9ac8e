package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("  ")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.World.Cols != Default().World.Cols {
		t.Fatalf("cols=%d, want default %d", got.World.Cols, Default().World.Cols)
	}
}

func TestLoad_OverlaysPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	body := `
seed: 77
world:
  cols: 40
  camps:
    count: 2
melee:
  attack_damage: 15
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Seed != 77 {
		t.Fatalf("seed=%d, want 77", got.Seed)
	}
	if got.World.Cols != 40 {
		t.Fatalf("cols=%d, want 40", got.World.Cols)
	}
	// Untouched fields keep their defaults.
	if got.World.Rows != Default().World.Rows {
		t.Fatalf("rows=%d, want default", got.World.Rows)
	}
	if got.World.Camps.Count != 2 {
		t.Fatalf("camp count=%d, want 2", got.World.Camps.Count)
	}
	if got.World.Camps.MaxRadius != Default().World.Camps.MaxRadius {
		t.Fatalf("camp max radius lost its default")
	}
	if got.Melee.AttackDamage != 15 {
		t.Fatalf("melee damage=%d, want 15", got.Melee.AttackDamage)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	body := `
world:
  tree_density: 1.5
  biomes:
    - kind: swamp
      target_tiles: 10
      spread: 0.5
      instances: 1
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "tree_density") || !strings.Contains(msg, "swamp") {
		t.Fatalf("error should report every problem, got: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_HitFrameBeyondAnimation(t *testing.T) {
	tu := Default()
	tu.Melee.HitFrame = tu.Melee.AttackFrames + 1
	if err := tu.Validate(); err == nil {
		t.Fatal("hit frame past the animation end should be rejected")
	}
}
