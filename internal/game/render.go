package game

import (
	"image/color"
	"math"
	"sort"

	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

// DrawKind tags a drawable. The numeric order is the tie-break rank used when
// two drawables share a sort key.
type DrawKind uint8

const (
	DrawGroundPatch DrawKind = iota
	DrawCamp
	DrawTreeTrunk
	DrawCharacterPart
	DrawTreeLeaves
	DrawArrow
)

func (k DrawKind) String() string {
	switch k {
	case DrawGroundPatch:
		return "ground"
	case DrawCamp:
		return "camp"
	case DrawTreeTrunk:
		return "trunk"
	case DrawCharacterPart:
		return "character"
	case DrawTreeLeaves:
		return "leaves"
	case DrawArrow:
		return "arrow"
	default:
		return "unknown"
	}
}

// PartKind names the pieces of a character.
type PartKind uint8

const (
	PartNone PartKind = iota
	PartLegLeft
	PartLegRight
	PartBody
	PartWeapon
)

// Shades are the face colours of a block. A flat diamond only uses Top.
type Shades struct {
	Top, Left, Right color.RGBA
}

// Drawable is one primitive of the current frame. (CX, CY) is the screen
// position of the footprint centre at ground level; Lift raises the whole
// shape and Height extrudes it into a block.
type Drawable struct {
	Kind  DrawKind
	Part  PartKind
	Owner int // actor ID for character parts, -1 otherwise

	CX, CY float64
	W, H   float64 // footprint diamond size in pixels
	Lift   float64
	Height float64

	Shades  Shades
	Outline color.RGBA // A == 0 means none
	Disc    []Point    // camp outline; replaces the diamond when set

	SortKey float64
}

// Renderer turns a GameState into sorted drawables and paints them.
type Renderer struct {
	Proj   Projector
	ViewW  int
	ViewH  int
	Margin float64

	buf []Drawable
}

// NewRenderer builds a renderer for the configured tile and viewport size.
func NewRenderer(cfg tuning.Render) *Renderer {
	return &Renderer{
		Proj:   NewProjector(cfg.TileWidth, cfg.TileHeight, cfg.ViewWidth, cfg.ViewHeight),
		ViewW:  cfg.ViewWidth,
		ViewH:  cfg.ViewHeight,
		Margin: cfg.CullMargin,
	}
}

// Resize moves the projection origin to the centre of a new viewport.
func (r *Renderer) Resize(viewW, viewH int) {
	r.ViewW, r.ViewH = viewW, viewH
	r.Proj.OriginX = float64(viewW) / 2
	r.Proj.OriginY = float64(viewH) / 2
}

// Character and prop dimensions in pixels.
const (
	legW, legH, legHeight    = 6.0, 3.0, 10.0
	legSpread                = 4.0
	bodyW, bodyH, bodyHeight = 14.0, 7.0, 14.0
	weaponW, weaponH         = 12.0, 4.0
	weaponLift, weaponHeight = 14.0, 3.0
	weaponReach              = 12.0
	trunkW, trunkH           = 10.0, 5.0
	trunkHeight              = 18.0
	leavesW, leavesH         = 34.0, 17.0
	leavesLift, leavesHeight = 16.0, 22.0
	arrowW, arrowH           = 8.0, 4.0
	arrowLift, arrowHeight   = 12.0, 2.0
	mountainHeight           = 24.0
	campDiscSegments         = 20
	walkBobAmplitude         = 2.0
	walkBobRate              = 0.3
)

var (
	outlineColour = color.RGBA{R: 20, G: 20, B: 20, A: 160}
	trunkColour   = color.RGBA{R: 101, G: 67, B: 33, A: 255}
	leavesColour  = color.RGBA{R: 46, G: 125, B: 50, A: 255}
	playerColour  = color.RGBA{R: 66, G: 135, B: 245, A: 255}
	meleeColour   = color.RGBA{R: 211, G: 47, B: 47, A: 255}
	archerColour  = color.RGBA{R: 245, G: 124, B: 0, A: 255}
	legColour     = color.RGBA{R: 62, G: 39, B: 35, A: 255}
	swordColour   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	bowColour     = color.RGBA{R: 139, G: 90, B: 43, A: 255}
	arrowColour   = color.RGBA{R: 240, G: 230, B: 200, A: 255}
	campColour    = color.RGBA{R: 141, G: 104, B: 66, A: 255}
	raidedColour  = color.RGBA{R: 150, G: 70, B: 50, A: 255}
	backdrop      = color.RGBA{R: 12, G: 14, B: 12, A: 255}
)

// scale multiplies the RGB channels of c by f.
func scale(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 {
		x := float64(v) * f
		if x > 255 {
			return 255
		}
		if x < 0 {
			return 0
		}
		return uint8(x)
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// blockShades lights the top face and darkens the sides.
func blockShades(c color.RGBA) Shades {
	return Shades{Top: c, Left: scale(c, 0.75), Right: scale(c, 0.55)}
}

// visible reports whether a screen point is inside the viewport plus margin.
func (r *Renderer) visible(sx, sy, extra float64) bool {
	m := r.Margin + extra
	return sx >= -m && sy >= -m && sx <= float64(r.ViewW)+m && sy <= float64(r.ViewH)+m
}

// visibleCells returns the clamped cell range covered by the viewport. The
// corners are unprojected so the result is the world AABB of the screen.
func (r *Renderer) visibleCells(w *World, cam Camera) (minC, maxC, minR, maxR int) {
	m := r.Margin
	corners := [4][2]float64{
		{-m, -m},
		{float64(r.ViewW) + m, -m},
		{-m, float64(r.ViewH) + m},
		{float64(r.ViewW) + m, float64(r.ViewH) + m},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		wx, wy := r.Proj.Unproject(c[0], c[1], cam)
		minX, maxX = math.Min(minX, wx), math.Max(maxX, wx)
		minY, maxY = math.Min(minY, wy), math.Max(maxY, wy)
	}
	minC = max(0, int(math.Floor(minX)))
	minR = max(0, int(math.Floor(minY)))
	maxC = min(w.Grid.Cols-1, int(math.Ceil(maxX)))
	maxR = min(w.Grid.Rows-1, int(math.Ceil(maxY)))
	return minC, maxC, minR, maxR
}

// Collect builds the unsorted drawable list for the current frame. The
// returned slice is reused by the next call.
func (r *Renderer) Collect(gs *GameState) []Drawable {
	ds := r.buf[:0]
	cam := gs.Camera()
	w := gs.World

	ds = r.collectGround(ds, w, cam)
	for _, c := range w.Camps {
		ds = r.collectCamp(ds, c, cam)
	}
	for _, t := range w.Trees {
		ds = r.collectTree(ds, t, cam)
	}
	if gs.Player.Alive() {
		p := gs.Player
		ds = r.collectCharacter(ds, &p.Actor, playerColour, p.Attacking, p.Aiming, cam)
	}
	for _, e := range gs.Enemies {
		if !e.Alive() {
			continue
		}
		col := meleeColour
		if e.Kind == EnemyArcher {
			col = archerColour
		}
		aiming := e.State == EnemyAiming || e.State == EnemyShooting
		ds = r.collectCharacter(ds, &e.Actor, col, e.Attacking, aiming, cam)
	}
	for _, a := range gs.Arrows {
		ds = r.collectArrow(ds, a, cam)
	}
	r.buf = ds
	return ds
}

func (r *Renderer) collectGround(ds []Drawable, w *World, cam Camera) []Drawable {
	minC, maxC, minR, maxR := r.visibleCells(w, cam)
	tw, th := r.Proj.HalfW*2, r.Proj.HalfH*2
	backs := make([]float64, len(w.Camps))
	for i, c := range w.Camps {
		backs[i] = r.campBackY(c, cam)
	}
	for row := minR; row <= maxR; row++ {
		for col := minC; col <= maxC; col++ {
			k, _ := w.Grid.Kind(col, row)
			cx, cy := r.Proj.Project(float64(col)+0.5, float64(row)+0.5, cam)
			if !r.visible(cx, cy, tw) {
				continue
			}
			br, bg, bb := biomeBaseColour(k)
			n := valueNoise2D(float64(col)*0.15, float64(row)*0.15, w.shadeSeed)
			base := scale(color.RGBA{R: br, G: bg, B: bb, A: 255}, 0.85+0.3*n)

			d := Drawable{
				Kind:    DrawGroundPatch,
				Owner:   -1,
				CX:      cx,
				CY:      cy,
				W:       tw,
				H:       th,
				Shades:  Shades{Top: base},
				SortKey: cy - th/2,
			}
			if k == BiomeMountain {
				// A standing block sorts by its centre so actors in the two
				// up-screen neighbours paint first and the two down-screen ones after.
				d.SortKey = cy
				d.Height = mountainHeight * (0.6 + 0.8*n)
				d.Shades = blockShades(base)
				d.Outline = outlineColour
			} else {
				// Flat cells under a camp disc must paint before it.
				for i, c := range w.Camps {
					if backs[i] < d.SortKey && cellTouchesDisc(col, row, c) {
						d.SortKey = backs[i]
					}
				}
			}
			ds = append(ds, d)
		}
	}
	return ds
}

// collectCamp emits the camp as a flattened disc: the world circle projected
// onto the ground plane.
func (r *Renderer) collectCamp(ds []Drawable, c *Camp, cam Camera) []Drawable {
	cx, cy := r.Proj.Project(c.X, c.Y, cam)
	if !r.visible(cx, cy, c.Radius*r.Proj.HalfW*2) {
		return ds
	}
	disc := make([]Point, campDiscSegments)
	for i := range disc {
		a := 2 * math.Pi * float64(i) / campDiscSegments
		sx, sy := r.Proj.Project(c.X+math.Cos(a)*c.Radius, c.Y+math.Sin(a)*c.Radius, cam)
		disc[i] = Point{X: float32(sx), Y: float32(sy)}
	}
	fill := campColour
	if c.Intruded {
		fill = raidedColour
	}
	return append(ds, Drawable{
		Kind:    DrawCamp,
		Owner:   -1,
		CX:      cx,
		CY:      cy,
		Shades:  Shades{Top: fill},
		Outline: scale(fill, 0.6),
		Disc:    disc,
		SortKey: r.campBackY(c, cam),
	})
}

// campBackY is the screen y of the up-screen edge of the camp circle.
func (r *Renderer) campBackY(c *Camp, cam Camera) float64 {
	_, y := r.Proj.Project(c.X-c.Radius/math.Sqrt2, c.Y-c.Radius/math.Sqrt2, cam)
	return y
}

// cellTouchesDisc reports whether any part of the cell lies inside the camp.
func cellTouchesDisc(col, row int, c *Camp) bool {
	nx := math.Max(float64(col), math.Min(c.X, float64(col+1)))
	ny := math.Max(float64(row), math.Min(c.Y, float64(row+1)))
	return math.Hypot(nx-c.X, ny-c.Y) < c.Radius
}

func (r *Renderer) collectTree(ds []Drawable, t Tree, cam Camera) []Drawable {
	sx, sy := r.Proj.Project(t.X, t.Y, cam)
	if !r.visible(sx, sy, leavesW) {
		return ds
	}
	key := sy
	return append(ds,
		Drawable{
			Kind:    DrawTreeTrunk,
			Owner:   -1,
			CX:      sx,
			CY:      sy,
			W:       trunkW,
			H:       trunkH,
			Height:  trunkHeight,
			Shades:  blockShades(trunkColour),
			Outline: outlineColour,
			SortKey: key,
		},
		Drawable{
			Kind:    DrawTreeLeaves,
			Owner:   -1,
			CX:      sx,
			CY:      sy,
			W:       leavesW,
			H:       leavesH,
			Lift:    leavesLift,
			Height:  leavesHeight,
			Shades:  blockShades(leavesColour),
			Outline: outlineColour,
			SortKey: key,
		},
	)
}

// collectCharacter emits two legs and a body, plus a weapon while attacking
// or aiming. Every part shares the owner's ground-contact key so the figure
// is never split by a neighbour.
func (r *Renderer) collectCharacter(ds []Drawable, a *Actor, col color.RGBA, attacking, aiming bool, cam Camera) []Drawable {
	sx, sy := r.Proj.Project(a.X, a.Y, cam)
	if !r.visible(sx, sy, bodyW) {
		return ds
	}
	key := sy
	part := func(p PartKind, cx, cy, w, h, lift, height float64, c color.RGBA) Drawable {
		return Drawable{
			Kind:    DrawCharacterPart,
			Part:    p,
			Owner:   a.ID,
			CX:      cx,
			CY:      cy,
			W:       w,
			H:       h,
			Lift:    lift,
			Height:  height,
			Shades:  blockShades(c),
			Outline: outlineColour,
			SortKey: key,
		}
	}

	var bobL, bobR float64
	if a.Moving {
		phase := float64(a.WalkFrame) * walkBobRate
		bobL = walkBobAmplitude * math.Max(0, math.Sin(phase))
		bobR = walkBobAmplitude * math.Max(0, -math.Sin(phase))
	}
	ds = append(ds,
		part(PartLegLeft, sx-legSpread, sy, legW, legH, bobL, legHeight, legColour),
		part(PartLegRight, sx+legSpread, sy, legW, legH, bobR, legHeight, legColour),
		part(PartBody, sx, sy, bodyW, bodyH, legHeight, bodyHeight, col),
	)

	if !attacking && !aiming {
		return ds
	}
	fx, fy := r.Proj.Project(a.X+a.FaceX, a.Y+a.FaceY, cam)
	dx, dy := fx-sx, fy-sy
	if l := math.Hypot(dx, dy); l > 1e-9 {
		dx, dy = dx/l, dy/l
	}
	reach := weaponReach
	wc := bowColour
	if attacking {
		wc = swordColour
	}
	return append(ds, part(PartWeapon, sx+dx*reach, sy+dy*reach*0.5, weaponW, weaponH, weaponLift, weaponHeight, wc))
}

func (r *Renderer) collectArrow(ds []Drawable, a *Arrow, cam Camera) []Drawable {
	sx, sy := r.Proj.Project(a.X, a.Y, cam)
	if !r.visible(sx, sy, arrowW) {
		return ds
	}
	return append(ds, Drawable{
		Kind:    DrawArrow,
		Owner:   -1,
		CX:      sx,
		CY:      sy,
		W:       arrowW,
		H:       arrowH,
		Lift:    arrowLift,
		Height:  arrowHeight,
		Shades:  blockShades(arrowColour),
		SortKey: sy,
	})
}

// SortDrawables orders ds back to front by (SortKey, kind rank). The sort is
// stable, so equal pairs keep collection order.
func SortDrawables(ds []Drawable) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].SortKey != ds[j].SortKey {
			return ds[i].SortKey < ds[j].SortKey
		}
		return ds[i].Kind < ds[j].Kind
	})
}

// RenderFrame clears the surface and paints the sorted scene.
func (r *Renderer) RenderFrame(gs *GameState, s Surface) []Drawable {
	s.Clear(backdrop)
	ds := r.Collect(gs)
	SortDrawables(ds)
	for i := range ds {
		paint(s, &ds[i])
	}
	return ds
}

// diamond returns the footprint at height z above the ground: left, top,
// right, bottom.
func diamond(cx, cy, w, h, z float64) [4]Point {
	y := cy - z
	return [4]Point{
		{X: float32(cx - w/2), Y: float32(y)},
		{X: float32(cx), Y: float32(y - h/2)},
		{X: float32(cx + w/2), Y: float32(y)},
		{X: float32(cx), Y: float32(y + h/2)},
	}
}

// paint draws one drawable with the matching primitive.
func paint(s Surface, d *Drawable) {
	switch d.Kind {
	case DrawCamp:
		s.FillPolygon(d.Disc, d.Shades.Top)
		if d.Outline.A > 0 {
			s.StrokePolygon(d.Disc, 1.5, d.Outline)
		}
	case DrawGroundPatch, DrawTreeTrunk, DrawCharacterPart, DrawTreeLeaves, DrawArrow:
		if d.Height <= 0 {
			paintDiamond(s, d)
		} else {
			paintBlock(s, d)
		}
	}
}

func paintDiamond(s Surface, d *Drawable) {
	top := diamond(d.CX, d.CY, d.W, d.H, d.Lift)
	s.FillPolygon(top[:], d.Shades.Top)
	if d.Outline.A > 0 {
		s.StrokePolygon(top[:], 1, d.Outline)
	}
}

// paintBlock draws the two visible side faces then the top face.
func paintBlock(s Surface, d *Drawable) {
	lo := diamond(d.CX, d.CY, d.W, d.H, d.Lift)
	hi := diamond(d.CX, d.CY, d.W, d.H, d.Lift+d.Height)

	left := []Point{lo[0], lo[3], hi[3], hi[0]}
	right := []Point{lo[3], lo[2], hi[2], hi[3]}
	s.FillPolygon(left, d.Shades.Left)
	s.FillPolygon(right, d.Shades.Right)
	s.FillPolygon(hi[:], d.Shades.Top)
	if d.Outline.A > 0 {
		s.StrokePolygon(left, 1, d.Outline)
		s.StrokePolygon(right, 1, d.Outline)
		s.StrokePolygon(hi[:], 1, d.Outline)
	}
}
