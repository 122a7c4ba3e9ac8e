package game

import (
	"math/rand"
	"testing"
)

func TestNewGrid_AllGround(t *testing.T) {
	g := NewGrid(10, 8)
	if g.Cols != 10 || g.Rows != 8 {
		t.Fatalf("expected 10x8, got %dx%d", g.Cols, g.Rows)
	}
	if n := g.Count(BiomeGround); n != 80 {
		t.Fatalf("expected 80 ground cells, got %d", n)
	}
}

func TestGrid_OutOfBoundsIsNotPresent(t *testing.T) {
	g := NewGrid(4, 4)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if _, ok := g.Kind(c[0], c[1]); ok {
			t.Fatalf("cell (%d,%d) should be out of bounds", c[0], c[1])
		}
	}
	// Writes outside the grid are ignored, not a panic.
	g.Set(-1, 2, BiomeLake)
	g.Set(9, 9, BiomeLake)
	if n := g.Count(BiomeLake); n != 0 {
		t.Fatalf("out-of-bounds writes changed %d cells", n)
	}
}

func TestParseBiomeKind(t *testing.T) {
	for k := BiomeGround; k < biomeKindCount; k++ {
		got, err := ParseBiomeKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseBiomeKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseBiomeKind("swamp"); err == nil {
		t.Fatal("expected error for unknown biome")
	}
}

func TestIsWalkable_Rules(t *testing.T) {
	g := NewGrid(6, 1)
	g.Set(1, 0, BiomeLake)
	g.Set(2, 0, BiomeMountain)
	g.Set(3, 0, BiomeCamp)
	g.Set(4, 0, BiomeForest)
	g.Set(5, 0, BiomeForest)
	w := NewWorld(g)
	w.AddTree(5.3, 0.6)

	cases := []struct {
		x    float64
		want bool
		what string
	}{
		{0.5, true, "ground"},
		{1.5, false, "lake"},
		{2.5, false, "mountain"},
		{3.5, true, "camp"},
		{4.5, true, "forest without tree"},
		{5.5, false, "forest with tree"},
		{-0.1, false, "left of the map"},
		{6.0, false, "right edge"},
	}
	for _, c := range cases {
		if got := w.IsWalkable(c.x, 0.5); got != c.want {
			t.Errorf("%s: IsWalkable(%.1f,0.5) = %v, want %v", c.what, c.x, got, c.want)
		}
	}
}

func TestIsWalkable_TotalOverGeneratedGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	specs := []BiomeSpec{
		{Kind: BiomeLake, TargetTiles: 40, Spread: 0.6, Instances: 2},
		{Kind: BiomeMountain, TargetTiles: 30, Spread: 0.5, Instances: 2},
		{Kind: BiomeForest, TargetTiles: 60, Spread: 0.7, Instances: 2},
	}
	w := NewWorld(GenerateTerrain(24, 24, specs, rng))
	placeTrees(w, 0.5, rng)
	w.stampCamp(&Camp{X: 12, Y: 12, Radius: 3})

	// Sample well outside the grid too.
	for y := -2.0; y < 26; y += 0.25 {
		for x := -2.0; x < 26; x += 0.25 {
			got := w.IsWalkable(x, y)
			col, row := int(x), int(y)
			if x < 0 || y < 0 {
				if got {
					t.Fatalf("(%.2f,%.2f) is off the map but walkable", x, y)
				}
				continue
			}
			k, ok := w.Grid.Kind(col, row)
			if !ok {
				if got {
					t.Fatalf("(%.2f,%.2f) is off the map but walkable", x, y)
				}
				continue
			}
			switch k {
			case BiomeLake, BiomeMountain:
				if got {
					t.Fatalf("%s cell (%d,%d) reported walkable", k, col, row)
				}
			case BiomeCamp:
				if !got {
					t.Fatalf("camp cell (%d,%d) reported blocked", col, row)
				}
			}
		}
	}
}

func TestAddTree_OnePerCell(t *testing.T) {
	w := NewWorld(NewGrid(3, 3))
	if !w.AddTree(1.2, 1.7) {
		t.Fatal("first tree should be planted")
	}
	if w.AddTree(1.9, 1.1) {
		t.Fatal("second tree in the same cell should be refused")
	}
	if w.AddTree(5, 5) {
		t.Fatal("tree outside the grid should be refused")
	}
	if len(w.Trees) != 1 || !w.HasTree(1, 1) {
		t.Fatalf("expected exactly one tree at (1,1), got %d trees", len(w.Trees))
	}
}
