package game

import "github.com/Garsondee/Iso-Frontier/internal/tuning"

// Player is the keyboard-driven actor.
type Player struct {
	Actor

	Aiming       bool
	AimFrame     int
	LastShotTick int
	TargetID     int // enemy being aimed at; lookup only, -1 when none

	cfg tuning.Player
}

// NewPlayer places a fresh player at (x, y).
func NewPlayer(x, y float64, cfg tuning.Player) *Player {
	return &Player{
		Actor:        newActor(0, "P", x, y, cfg.MaxHP),
		LastShotTick: neverTick,
		TargetID:     -1,
		cfg:          cfg,
	}
}

// Busy reports whether an attack or aim is in progress; movement is
// suppressed while busy.
func (p *Player) Busy() bool { return p.Attacking || p.Aiming }

// update runs one tick of player combat and movement.
func (p *Player) update(gs *GameState, keys Keys) {
	switch {
	case p.Attacking:
		p.Moving = false
		p.AttackFrame++
		if p.AttackFrame == p.cfg.HitFrame {
			gs.playerMeleeSweep()
		}
		if p.AttackFrame >= p.cfg.AttackFrames {
			p.Attacking = false
		}
		return

	case p.Aiming:
		p.Moving = false
		if t := gs.enemyByID(p.TargetID); t != nil {
			p.face(t.X, t.Y)
		}
		p.AimFrame++
		if p.AimFrame >= p.cfg.AimTicks {
			p.Aiming = false
			gs.playerRelease()
		}
		return
	}

	if keys.Pressed(KeyMelee) && p.cooldownElapsed(gs.Tick, p.cfg.AttackCooldown) {
		p.Moving = false
		p.Attacking = true
		p.AttackFrame = 0
		p.LastAttackTick = gs.Tick
		return
	}

	if keys.Pressed(KeyRanged) && gs.Tick-p.LastShotTick >= p.cfg.ShotCooldown {
		if t := gs.nearestEnemy(p.X, p.Y, p.cfg.ShootRange); t != nil {
			p.Moving = false
			p.TargetID = t.ID
			p.Aiming = true
			p.AimFrame = 0
			p.face(t.X, t.Y)
			return
		}
		p.TargetID = -1
	}

	dx, dy := keys.Direction()
	if dx == 0 && dy == 0 {
		p.Moving = false
		return
	}
	TryMove(&p.Actor, dx, dy, p.cfg.Speed, gs.World, nil)
}
