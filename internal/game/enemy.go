package game

import (
	"fmt"

	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

// idleHysteresis scales AggroRange for the Chasing → Idle test so enemies do
// not flicker at the boundary.
const idleHysteresis = 1.5

// EnemyKind selects the combat style.
type EnemyKind int

const (
	EnemyMelee EnemyKind = iota
	EnemyArcher
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyMelee:
		return "melee"
	case EnemyArcher:
		return "archer"
	default:
		return "unknown"
	}
}

// EnemyState is the behaviour state of an enemy.
type EnemyState int

const (
	EnemyIdle      EnemyState = iota // holding position
	EnemyChasing                     // closing on the player
	EnemyAttacking                   // melee swing in progress
	EnemyAiming                      // archer drawing the bow
	EnemyShooting                    // archer releasing
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyChasing:
		return "chasing"
	case EnemyAttacking:
		return "attacking"
	case EnemyAiming:
		return "aiming"
	case EnemyShooting:
		return "shooting"
	default:
		return "unknown"
	}
}

// Enemy is a hostile actor, either garrisoned in a camp or wandering.
type Enemy struct {
	Actor
	Kind  EnemyKind
	State EnemyState

	AggroRange    float64
	AttackRange   float64
	AttackDamage  int
	CooldownTicks int
	Speed         float64

	AttackFrames int // melee swing length
	HitFrame     int // swing frame that lands the blow
	HitReach     float64

	AimTicks  int // archer draw time
	AimFrame  int
	HitChance float64

	CampID int  // index into World.Camps, -1 for wanderers
	Freed  bool // set once the camp is intruded; lifts confinement
}

// NewEnemy builds an enemy from its kind's tuning.
func NewEnemy(id int, kind EnemyKind, x, y float64, campID int, cfg tuning.Enemy) *Enemy {
	prefix := "M"
	if kind == EnemyArcher {
		prefix = "A"
	}
	return &Enemy{
		Actor:         newActor(id, fmt.Sprintf("%s%d", prefix, id), x, y, cfg.MaxHP),
		Kind:          kind,
		State:         EnemyIdle,
		AggroRange:    cfg.AggroRange,
		AttackRange:   cfg.AttackRange,
		AttackDamage:  cfg.AttackDamage,
		CooldownTicks: cfg.CooldownTicks,
		Speed:         cfg.Speed,
		AttackFrames:  cfg.AttackFrames,
		HitFrame:      cfg.HitFrame,
		HitReach:      cfg.HitReach,
		AimTicks:      cfg.AimTicks,
		HitChance:     cfg.HitChance,
		CampID:        campID,
	}
}

// confinement returns the camp the enemy must stay inside, or nil.
func (e *Enemy) confinement(w *World) *Camp {
	if e.Freed {
		return nil
	}
	return w.Camp(e.CampID)
}

// think advances the enemy state machine by one tick.
func (e *Enemy) think(gs *GameState) {
	p := gs.Player
	dist := e.DistanceTo(p.X, p.Y)

	switch e.State {
	case EnemyIdle:
		e.Moving = false
		if e.Freed || dist <= e.AggroRange {
			gs.setEnemyState(e, EnemyChasing)
		}

	case EnemyChasing:
		if !e.Freed && dist > e.AggroRange*idleHysteresis {
			e.Moving = false
			gs.setEnemyState(e, EnemyIdle)
			return
		}
		if dist <= e.AttackRange {
			e.Moving = false
			e.face(p.X, p.Y)
			if e.cooldownElapsed(gs.Tick, e.CooldownTicks) {
				e.beginAttack(gs)
			}
			return
		}
		TryMove(&e.Actor, p.X-e.X, p.Y-e.Y, e.Speed, gs.World, e.confinement(gs.World))

	case EnemyAttacking:
		e.AttackFrame++
		if e.AttackFrame == e.HitFrame && dist <= e.HitReach {
			gs.meleeHitPlayer(e)
		}
		if e.AttackFrame >= e.AttackFrames {
			e.Attacking = false
			gs.setEnemyState(e, EnemyChasing)
		}

	case EnemyAiming:
		e.face(p.X, p.Y)
		e.AimFrame++
		if e.AimFrame >= e.AimTicks {
			gs.setEnemyState(e, EnemyShooting)
		}

	case EnemyShooting:
		gs.archerRelease(e)
		e.LastAttackTick = gs.Tick
		gs.setEnemyState(e, EnemyIdle)
	}
}

// beginAttack enters the kind's attack state. Melee cooldown runs from the
// start of the swing, archer cooldown from the release.
func (e *Enemy) beginAttack(gs *GameState) {
	switch e.Kind {
	case EnemyMelee:
		e.Attacking = true
		e.AttackFrame = 0
		e.LastAttackTick = gs.Tick
		gs.setEnemyState(e, EnemyAttacking)
	case EnemyArcher:
		e.AimFrame = 0
		gs.setEnemyState(e, EnemyAiming)
	}
}

// free lifts camp confinement; an idle enemy starts chasing at once.
func (e *Enemy) free(gs *GameState) {
	if e.Freed {
		return
	}
	e.Freed = true
	if e.State == EnemyIdle {
		gs.setEnemyState(e, EnemyChasing)
	}
}
