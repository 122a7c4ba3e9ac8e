package game

import "fmt"

// BiomeKind identifies the terrain category of a grid cell.
type BiomeKind uint8

const (
	BiomeGround    BiomeKind = iota // Default open ground
	BiomeLake                       // Open water, impassable
	BiomeForest                     // Woodland floor; trees block their own cell
	BiomeDesert                     // Sand
	BiomeMountain                   // Rock, impassable
	BiomeCamp                       // Stamped enemy camp, always walkable
	biomeKindCount                  // sentinel
)

func (k BiomeKind) String() string {
	switch k {
	case BiomeGround:
		return "ground"
	case BiomeLake:
		return "lake"
	case BiomeForest:
		return "forest"
	case BiomeDesert:
		return "desert"
	case BiomeMountain:
		return "mountain"
	case BiomeCamp:
		return "camp"
	default:
		return "unknown"
	}
}

// ParseBiomeKind maps a tuning-file name to a BiomeKind.
func ParseBiomeKind(name string) (BiomeKind, error) {
	for k := BiomeKind(0); k < biomeKindCount; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return BiomeGround, fmt.Errorf("unknown biome %q", name)
}

// biomeBlocksMovement reports kinds nothing may stand on.
func biomeBlocksMovement(k BiomeKind) bool {
	return k == BiomeLake || k == BiomeMountain
}

// biomeBaseColour returns the base RGB colour for a biome.
func biomeBaseColour(k BiomeKind) (r, g, b uint8) {
	switch k {
	case BiomeGround:
		return 76, 175, 80
	case BiomeLake:
		return 33, 150, 243
	case BiomeForest:
		return 56, 142, 60
	case BiomeDesert:
		return 222, 196, 120
	case BiomeMountain:
		return 120, 116, 110
	case BiomeCamp:
		return 141, 104, 66
	default:
		return 76, 175, 80
	}
}

// Grid is the authoritative per-cell biome map.
type Grid struct {
	Cols  int
	Rows  int
	Cells []BiomeKind // row-major: index = row*Cols + col
}

// NewGrid creates a grid of plain ground.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows, Cells: make([]BiomeKind, cols*rows)}
}

// inBounds returns true if (col, row) is within the grid.
func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// Kind returns the biome at (col, row). Out-of-range cells report ok=false.
func (g *Grid) Kind(col, row int) (k BiomeKind, ok bool) {
	if !g.inBounds(col, row) {
		return BiomeGround, false
	}
	return g.Cells[row*g.Cols+col], true
}

// Set assigns a biome to (col, row); out-of-range writes are ignored.
func (g *Grid) Set(col, row int, k BiomeKind) {
	if !g.inBounds(col, row) {
		return
	}
	g.Cells[row*g.Cols+col] = k
}

// Count returns how many cells hold kind k.
func (g *Grid) Count(k BiomeKind) int {
	n := 0
	for _, c := range g.Cells {
		if c == k {
			n++
		}
	}
	return n
}
