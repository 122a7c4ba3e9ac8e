package game

import (
	"math"
	"math/rand"

	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

const (
	seedCellAttempts   = 100 // random probes for a Ground seed before giving up
	campSeparationSlop = 1.0 // extra tiles kept between neighbouring camps
)

// BiomeSpec describes one region-growth pass.
type BiomeSpec struct {
	Kind        BiomeKind
	TargetTiles int     // max cells converted per instance
	Spread      float64 // probability a Ground neighbour is claimed
	Instances   int     // number of separate blobs
}

// BiomeSpecsFromTuning converts tuning-file biome entries.
func BiomeSpecsFromTuning(in []tuning.Biome) ([]BiomeSpec, error) {
	out := make([]BiomeSpec, 0, len(in))
	for _, b := range in {
		k, err := ParseBiomeKind(b.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, BiomeSpec{Kind: k, TargetTiles: b.TargetTiles, Spread: b.Spread, Instances: b.Instances})
	}
	return out, nil
}

// neighbourOffsets are the 8 surrounding cells.
var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// GenerateTerrain builds a grid of organic biome blobs. Specs are applied in
// order and each only ever claims cells that are still Ground, so earlier
// biomes are never overwritten.
func GenerateTerrain(cols, rows int, specs []BiomeSpec, rng *rand.Rand) *Grid {
	g := NewGrid(cols, rows)
	for _, spec := range specs {
		for i := 0; i < spec.Instances; i++ {
			growRegion(g, rng, spec)
		}
	}
	return g
}

// growRegion runs one breadth-first growth from a random Ground seed and
// returns the number of cells converted (never more than TargetTiles).
func growRegion(g *Grid, rng *rand.Rand, spec BiomeSpec) int {
	if spec.TargetTiles <= 0 || spec.Kind == BiomeGround {
		return 0
	}
	col, row, ok := randomGroundCell(g, rng)
	if !ok {
		return 0
	}
	g.Set(col, row, spec.Kind)
	converted := 1

	queue := [][2]int{{col, row}}
	for len(queue) > 0 && converted < spec.TargetTiles {
		cur := queue[0]
		queue = queue[1:]
		for _, i := range rng.Perm(len(neighbourOffsets)) {
			if converted >= spec.TargetTiles {
				break
			}
			nc := cur[0] + neighbourOffsets[i][0]
			nr := cur[1] + neighbourOffsets[i][1]
			if k, ok := g.Kind(nc, nr); !ok || k != BiomeGround {
				continue
			}
			if rng.Float64() >= spec.Spread {
				continue
			}
			g.Set(nc, nr, spec.Kind)
			converted++
			queue = append(queue, [2]int{nc, nr})
		}
	}
	return converted
}

// randomGroundCell probes random cells for one still tagged Ground.
func randomGroundCell(g *Grid, rng *rand.Rand) (col, row int, ok bool) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, false
	}
	for i := 0; i < seedCellAttempts; i++ {
		c, r := rng.Intn(g.Cols), rng.Intn(g.Rows)
		if k, _ := g.Kind(c, r); k == BiomeGround {
			return c, r, true
		}
	}
	return 0, 0, false
}

// GenReport summarises one world generation.
type GenReport struct {
	Trees        int
	CampsPlaced  int
	CampsDropped int
}

// GenerateWorld runs the full pipeline: terrain, trees, player start, camps.
// Camp garrisons are spawned by GameState, which owns actor IDs.
func GenerateWorld(cfg tuning.World, rng *rand.Rand) (*World, GenReport, error) {
	specs, err := BiomeSpecsFromTuning(cfg.Biomes)
	if err != nil {
		return nil, GenReport{}, err
	}
	w := NewWorld(GenerateTerrain(cfg.Cols, cfg.Rows, specs, rng))
	w.shadeSeed = rng.Int63()

	placeTrees(w, cfg.TreeDensity, rng)
	w.StartX, w.StartY = pickPlayerStart(w, cfg.PlayerPlacementAttempts, rng)
	placed, dropped := placeCamps(w, cfg.Camps, rng)

	return w, GenReport{Trees: len(w.Trees), CampsPlaced: placed, CampsDropped: dropped}, nil
}

// placeTrees plants a jittered tree on each Forest cell with probability density.
func placeTrees(w *World, density float64, rng *rand.Rand) {
	for row := 0; row < w.Grid.Rows; row++ {
		for col := 0; col < w.Grid.Cols; col++ {
			if k, _ := w.Grid.Kind(col, row); k != BiomeForest {
				continue
			}
			if rng.Float64() < density {
				w.AddTree(float64(col)+rng.Float64(), float64(row)+rng.Float64())
			}
		}
	}
}

// pickPlayerStart returns the centre of a random open (Ground or Desert) cell.
// When random probing fails it scans outward from the map centre.
func pickPlayerStart(w *World, attempts int, rng *rand.Rand) (x, y float64) {
	open := func(col, row int) bool {
		k, ok := w.Grid.Kind(col, row)
		return ok && (k == BiomeGround || k == BiomeDesert)
	}
	for i := 0; i < attempts; i++ {
		c, r := rng.Intn(w.Grid.Cols), rng.Intn(w.Grid.Rows)
		if open(c, r) {
			return float64(c) + 0.5, float64(r) + 0.5
		}
	}
	cc, cr := w.Grid.Cols/2, w.Grid.Rows/2
	maxRing := w.Grid.Cols
	if w.Grid.Rows > maxRing {
		maxRing = w.Grid.Rows
	}
	for ring := 0; ring <= maxRing; ring++ {
		for dr := -ring; dr <= ring; dr++ {
			for dc := -ring; dc <= ring; dc++ {
				if open(cc+dc, cr+dr) && w.IsWalkable(float64(cc+dc)+0.5, float64(cr+dr)+0.5) {
					return float64(cc+dc) + 0.5, float64(cr+dr) + 0.5
				}
			}
		}
	}
	return float64(cc) + 0.5, float64(cr) + 0.5
}

// placeCamps tries to place cfg.Count camps. A camp that exhausts its
// placement attempts is dropped.
func placeCamps(w *World, cfg tuning.Camps, rng *rand.Rand) (placed, dropped int) {
	for i := 0; i < cfg.Count; i++ {
		c, ok := tryPlaceCamp(w, cfg, rng)
		if !ok {
			dropped++
			continue
		}
		c.ID = len(w.Camps)
		w.Camps = append(w.Camps, c)
		w.stampCamp(c)
		placed++
	}
	return placed, dropped
}

func tryPlaceCamp(w *World, cfg tuning.Camps, rng *rand.Rand) (*Camp, bool) {
	for a := 0; a < cfg.PlacementAttempts; a++ {
		r := cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius)
		spanX := w.Width() - 2*r
		spanY := w.Height() - 2*r
		if spanX <= 0 || spanY <= 0 {
			return nil, false
		}
		cx := r + rng.Float64()*spanX
		cy := r + rng.Float64()*spanY
		if math.Hypot(cx-w.StartX, cy-w.StartY) < cfg.MinPlayerDistance {
			continue
		}
		if !campSiteClear(w, cx, cy, r) {
			continue
		}
		return &Camp{X: cx, Y: cy, Radius: r}, true
	}
	return nil, false
}

// campSiteClear rejects discs that leave the map, touch Lake/Mountain or
// overlap another camp.
func campSiteClear(w *World, cx, cy, r float64) bool {
	for _, other := range w.Camps {
		if math.Hypot(cx-other.X, cy-other.Y) < r+other.Radius+campSeparationSlop {
			return false
		}
	}
	minC, maxC := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	minR, maxR := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			if !cellInDisc(col, row, cx, cy, r) {
				continue
			}
			k, ok := w.Grid.Kind(col, row)
			if !ok || biomeBlocksMovement(k) {
				return false
			}
		}
	}
	return true
}

// --- Value noise for ground shading ---

// valueNoise2D is smooth lattice noise in [0,1]: corner values from a hash,
// blended with a smoothstep in each axis.
func valueNoise2D(x, y float64, seed int64) float64 {
	fx, fy := math.Floor(x), math.Floor(y)
	cx, cy := int(fx), int(fy)
	u, v := smoothstep(x-fx), smoothstep(y-fy)

	top := lerp(latticeValue(cx, cy, seed), latticeValue(cx+1, cy, seed), u)
	bottom := lerp(latticeValue(cx, cy+1, seed), latticeValue(cx+1, cy+1, seed), u)
	return lerp(top, bottom, v)
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// latticeValue hashes an integer lattice point and seed to [0,1].
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed) ^ uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}
