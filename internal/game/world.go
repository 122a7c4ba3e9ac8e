package game

import "math"

// Tree is a single tree standing in a forest cell. Position is continuous:
// integer cell plus sub-tile jitter.
type Tree struct {
	X, Y float64
}

// Cell returns the integer cell the tree occupies.
func (t Tree) Cell() (col, row int) {
	return int(math.Floor(t.X)), int(math.Floor(t.Y))
}

// Camp is a stamped enemy encampment. Enemies refer to it by ID (its index in
// World.Camps); the camp does not track its enemies.
type Camp struct {
	ID       int
	X, Y     float64
	Radius   float64
	Intruded bool // latches true the first time the player steps inside
}

// Contains reports whether (x, y) lies strictly inside the camp radius.
func (c *Camp) Contains(x, y float64) bool {
	return math.Hypot(x-c.X, y-c.Y) < c.Radius
}

// World owns the grid, the trees and the camps of one generated map.
type World struct {
	Grid   *Grid
	Trees  []Tree
	Camps  []*Camp
	StartX float64 // player start
	StartY float64

	treeCells []bool // row-major tree occupancy
	shadeSeed int64  // seed for ground colour noise
}

// NewWorld wraps an existing grid with empty entity lists.
func NewWorld(g *Grid) *World {
	return &World{
		Grid:      g,
		treeCells: make([]bool, g.Cols*g.Rows),
	}
}

// Width and Height are the world extent in tiles.
func (w *World) Width() float64  { return float64(w.Grid.Cols) }
func (w *World) Height() float64 { return float64(w.Grid.Rows) }

// HasTree reports whether a tree occupies cell (col, row).
func (w *World) HasTree(col, row int) bool {
	if !w.Grid.inBounds(col, row) {
		return false
	}
	return w.treeCells[row*w.Grid.Cols+col]
}

// AddTree plants a tree at (x, y). Cells that already hold a tree are left
// alone and the call reports false.
func (w *World) AddTree(x, y float64) bool {
	t := Tree{X: x, Y: y}
	col, row := t.Cell()
	if !w.Grid.inBounds(col, row) || w.HasTree(col, row) {
		return false
	}
	w.Trees = append(w.Trees, t)
	w.treeCells[row*w.Grid.Cols+col] = true
	return true
}

// IsWalkable reports whether an actor may stand at world point (x, y).
func (w *World) IsWalkable(x, y float64) bool {
	col, row := int(math.Floor(x)), int(math.Floor(y))
	k, ok := w.Grid.Kind(col, row)
	if !ok {
		return false
	}
	switch k {
	case BiomeLake, BiomeMountain:
		return false
	case BiomeCamp:
		return true
	case BiomeForest:
		return !w.HasTree(col, row)
	default:
		return true
	}
}

// Camp returns the camp with the given ID, or nil.
func (w *World) Camp(id int) *Camp {
	if id < 0 || id >= len(w.Camps) {
		return nil
	}
	return w.Camps[id]
}

// CampAt returns the camp whose radius contains (x, y), or nil.
func (w *World) CampAt(x, y float64) *Camp {
	for _, c := range w.Camps {
		if c.Contains(x, y) {
			return c
		}
	}
	return nil
}

// cellInDisc reports whether the centre of cell (col,row) lies within the
// disc at (cx,cy) with radius r.
func cellInDisc(col, row int, cx, cy, r float64) bool {
	dx := float64(col) + 0.5 - cx
	dy := float64(row) + 0.5 - cy
	return dx*dx+dy*dy <= r*r
}

// stampCamp converts every cell of the camp disc to BiomeCamp and removes
// trees inside it.
func (w *World) stampCamp(c *Camp) {
	minC, maxC := int(math.Floor(c.X-c.Radius)), int(math.Ceil(c.X+c.Radius))
	minR, maxR := int(math.Floor(c.Y-c.Radius)), int(math.Ceil(c.Y+c.Radius))
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			if cellInDisc(col, row, c.X, c.Y, c.Radius) {
				w.Grid.Set(col, row, BiomeCamp)
			}
		}
	}
	kept := w.Trees[:0]
	for _, t := range w.Trees {
		col, row := t.Cell()
		if cellInDisc(col, row, c.X, c.Y, c.Radius) {
			w.treeCells[row*w.Grid.Cols+col] = false
			continue
		}
		kept = append(kept, t)
	}
	w.Trees = kept
}
