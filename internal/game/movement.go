package game

import "math"

// TryMove takes one step of length speed along (dx, dy), sliding along
// whichever axis stays open when the full step is blocked. The direction is
// normalised, so a diagonal key pair moves exactly as far as a single axis.
// When confine is non-nil the actor may not leave the camp radius.
// It returns the displacement actually applied.
func TryMove(a *Actor, dx, dy, speed float64, w *World, confine *Camp) (appliedDx, appliedDy float64) {
	l := math.Hypot(dx, dy)
	if l < 1e-9 || speed <= 0 {
		a.Moving = false
		return 0, 0
	}
	stepX := dx / l * speed
	stepY := dy / l * speed

	canStand := func(x, y float64) bool {
		if !w.IsWalkable(x, y) {
			return false
		}
		if confine != nil && math.Hypot(x-confine.X, y-confine.Y) > confine.Radius {
			return false
		}
		return true
	}

	switch {
	case canStand(a.X+stepX, a.Y+stepY):
		appliedDx, appliedDy = stepX, stepY
	case stepX != 0 && canStand(a.X+stepX, a.Y):
		appliedDx = stepX
	case stepY != 0 && canStand(a.X, a.Y+stepY):
		appliedDy = stepY
	default:
		a.Moving = false
		return 0, 0
	}

	a.X += appliedDx
	a.Y += appliedDy
	a.Moving = true
	a.WalkFrame++
	a.FaceX, a.FaceY = dx/l, dy/l
	return appliedDx, appliedDy
}
