package game

import "math"

// neverTick is the "last event" timestamp of something that has not happened
// yet, far enough in the past that any cooldown has elapsed.
const neverTick = -1 << 30

// Actor is the shape shared by the player and enemies.
type Actor struct {
	ID    int
	Label string // e.g. "P", "M3", "A7"
	X, Y  float64

	HP    int
	MaxHP int

	Moving    bool
	WalkFrame int // advances while moving; drives leg animation

	Attacking      bool
	AttackFrame    int
	LastAttackTick int

	// Facing is the last world-space direction the actor moved or struck in.
	FaceX, FaceY float64
}

func newActor(id int, label string, x, y float64, maxHP int) Actor {
	return Actor{
		ID:             id,
		Label:          label,
		X:              x,
		Y:              y,
		HP:             maxHP,
		MaxHP:          maxHP,
		LastAttackTick: neverTick,
		FaceX:          1,
	}
}

// Alive reports whether the actor has health left.
func (a *Actor) Alive() bool { return a.HP > 0 }

// Damage subtracts n from HP, clamped to [0, MaxHP], and returns the amount
// actually removed.
func (a *Actor) Damage(n int) int {
	if n <= 0 || a.HP <= 0 {
		return 0
	}
	if n > a.HP {
		n = a.HP
	}
	a.HP -= n
	return n
}

// Heal restores HP to MaxHP.
func (a *Actor) Heal() { a.HP = a.MaxHP }

// DistanceTo returns the Euclidean distance to (x, y).
func (a *Actor) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-a.X, y-a.Y)
}

// cooldownElapsed reports whether at least cooldown ticks passed since the
// last attack.
func (a *Actor) cooldownElapsed(now, cooldown int) bool {
	return now-a.LastAttackTick >= cooldown
}

// face points the actor toward (x, y).
func (a *Actor) face(x, y float64) {
	dx, dy := x-a.X, y-a.Y
	if l := math.Hypot(dx, dy); l > 1e-9 {
		a.FaceX, a.FaceY = dx/l, dy/l
	}
}
