package game

// Camera is the world-space point that sits at the screen origin.
type Camera struct {
	X, Y float64
}

// Projector maps world coordinates (tiles) to screen pixels under a 2:1
// isometric transform. HalfW/HalfH are half the tile diamond's size and
// (OriginX, OriginY) is where the camera point lands on screen.
type Projector struct {
	HalfW, HalfH     float64
	OriginX, OriginY float64
}

// NewProjector builds a projector for tiles of tileW×tileH pixels centred in
// a viewW×viewH viewport.
func NewProjector(tileW, tileH float64, viewW, viewH int) Projector {
	return Projector{
		HalfW:   tileW / 2,
		HalfH:   tileH / 2,
		OriginX: float64(viewW) / 2,
		OriginY: float64(viewH) / 2,
	}
}

// Project returns the screen position of world point (wx, wy). For an integer
// cell corner this is the top vertex of that cell's diamond.
func (p Projector) Project(wx, wy float64, cam Camera) (sx, sy float64) {
	relX := wx - cam.X
	relY := wy - cam.Y
	sx = (relX-relY)*p.HalfW + p.OriginX
	sy = (relX+relY)*p.HalfH + p.OriginY
	return sx, sy
}

// Unproject inverts Project.
func (p Projector) Unproject(sx, sy float64, cam Camera) (wx, wy float64) {
	a := (sx - p.OriginX) / p.HalfW // relX - relY
	b := (sy - p.OriginY) / p.HalfH // relX + relY
	wx = (a+b)/2 + cam.X
	wy = (b-a)/2 + cam.Y
	return wx, wy
}
