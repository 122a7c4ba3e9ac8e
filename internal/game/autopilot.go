package game

import (
	"math"
	"math/rand"
)

const (
	stuckTicks  = 45 // ticks without progress before the autopilot wanders
	wanderTicks = 60
)

// Autopilot produces player input for headless runs: fight what is close,
// otherwise walk to the nearest camp that has not been raided yet.
type Autopilot struct {
	rng *rand.Rand

	lastX, lastY float64
	still        int
	wander       int
	wanderDir    [2]float64
}

// NewAutopilot creates an autopilot with its own RNG stream.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- bot only
}

// Next returns the keys to hold for the coming tick.
func (ap *Autopilot) Next(gs *GameState) Keys {
	p := gs.Player
	keys := Keys{}
	if p.Busy() {
		return keys
	}

	if e := gs.nearestEnemy(p.X, p.Y, p.cfg.MeleeRange); e != nil {
		keys[KeyMelee] = true
		return keys
	}
	if e := gs.nearestEnemy(p.X, p.Y, p.cfg.ShootRange); e != nil && gs.Tick-p.LastShotTick >= p.cfg.ShotCooldown {
		keys[KeyRanged] = true
		return keys
	}

	if math.Hypot(p.X-ap.lastX, p.Y-ap.lastY) < p.cfg.Speed/2 {
		ap.still++
	} else {
		ap.still = 0
	}
	ap.lastX, ap.lastY = p.X, p.Y

	if ap.still >= stuckTicks {
		ap.still = 0
		ap.wander = wanderTicks
		ang := ap.rng.Float64() * 2 * math.Pi
		ap.wanderDir = [2]float64{math.Cos(ang), math.Sin(ang)}
	}
	if ap.wander > 0 {
		ap.wander--
		steer(keys, ap.wanderDir[0], ap.wanderDir[1])
		return keys
	}

	tx, ty, ok := ap.goal(gs)
	if !ok {
		return keys
	}
	steer(keys, tx-p.X, ty-p.Y)
	return keys
}

// goal picks the nearest living enemy if any are chasing, else the nearest
// quiet camp.
func (ap *Autopilot) goal(gs *GameState) (x, y float64, ok bool) {
	p := gs.Player
	best := math.Inf(1)
	for _, e := range gs.Enemies {
		if e.State == EnemyIdle {
			continue
		}
		if d := e.DistanceTo(p.X, p.Y); d < best {
			best, x, y, ok = d, e.X, e.Y, true
		}
	}
	if ok {
		return x, y, true
	}
	for _, c := range gs.World.Camps {
		if c.Intruded {
			continue
		}
		if d := p.DistanceTo(c.X, c.Y); d < best {
			best, x, y, ok = d, c.X, c.Y, true
		}
	}
	return x, y, ok
}

// steer presses the axis keys pointing along (dx, dy). Components much
// smaller than the other are dropped so the bot walks straight when it can.
func steer(keys Keys, dx, dy float64) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax > 0.3*ay {
		if dx > 0 {
			keys[KeyRight] = true
		} else {
			keys[KeyLeft] = true
		}
	}
	if ay > 0.3*ax {
		if dy > 0 {
			keys[KeyDown] = true
		} else {
			keys[KeyUp] = true
		}
	}
}
