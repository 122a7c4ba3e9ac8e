package game

import "math"

// Arrow is a projectile in flight.
type Arrow struct {
	X, Y          float64
	DirX, DirY    float64 // unit vector
	Speed         float64 // tiles per tick
	Damage        int
	FiredByPlayer bool // player arrows hit enemies, enemy arrows hit the player

	spent bool
}

// NewArrow aims an arrow from (fromX, fromY) at (toX, toY). A zero-length
// shot flies along +X.
func NewArrow(fromX, fromY, toX, toY, speed float64, damage int, byPlayer bool) *Arrow {
	dx, dy := toX-fromX, toY-fromY
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		dx, dy, l = 1, 0, 1
	}
	return &Arrow{
		X:             fromX,
		Y:             fromY,
		DirX:          dx / l,
		DirY:          dy / l,
		Speed:         speed,
		Damage:        damage,
		FiredByPlayer: byPlayer,
	}
}

// Spent reports whether the arrow hit something or left the world.
func (a *Arrow) Spent() bool { return a.spent }

func (a *Arrow) advance() {
	a.X += a.DirX * a.Speed
	a.Y += a.DirY * a.Speed
}

// outOfBounds reports whether the arrow is further than margin outside the world.
func (a *Arrow) outOfBounds(w *World, margin float64) bool {
	return a.X < -margin || a.Y < -margin || a.X > w.Width()+margin || a.Y > w.Height()+margin
}

// updateArrows advances every arrow, resolves hits and drops spent arrows.
func (gs *GameState) updateArrows() {
	cfg := gs.Tuning.Arrow
	for _, a := range gs.Arrows {
		if gs.Phase == PhaseDefeated {
			break
		}
		a.advance()
		if a.FiredByPlayer {
			for _, e := range gs.Enemies {
				if !e.Alive() {
					continue
				}
				if e.DistanceTo(a.X, a.Y) <= cfg.HitRadius {
					gs.arrowHitEnemy(a, e)
					break
				}
			}
		} else if gs.Player.DistanceTo(a.X, a.Y) <= cfg.HitRadius {
			gs.arrowHitPlayer(a)
		}
		if !a.spent && a.outOfBounds(gs.World, cfg.BoundsMargin) {
			a.spent = true
		}
	}

	kept := gs.Arrows[:0]
	for _, a := range gs.Arrows {
		if !a.spent {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(gs.Arrows); i++ {
		gs.Arrows[i] = nil
	}
	gs.Arrows = kept
}
