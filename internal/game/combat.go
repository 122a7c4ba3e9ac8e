package game

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Iso-Frontier/internal/logger"
)

// enemyByID returns the living enemy with the given ID, or nil.
func (gs *GameState) enemyByID(id int) *Enemy {
	if id < 0 {
		return nil
	}
	for _, e := range gs.Enemies {
		if e.ID == id && e.Alive() {
			return e
		}
	}
	return nil
}

// nearestEnemy returns the closest living enemy within maxDist of (x, y).
// Ties keep the earlier enemy so targeting is deterministic.
func (gs *GameState) nearestEnemy(x, y, maxDist float64) *Enemy {
	var best *Enemy
	bestD := math.Inf(1)
	for _, e := range gs.Enemies {
		if !e.Alive() {
			continue
		}
		d := e.DistanceTo(x, y)
		if d <= maxDist && d < bestD {
			best, bestD = e, d
		}
	}
	return best
}

// setEnemyState transitions e and records the change.
func (gs *GameState) setEnemyState(e *Enemy, s EnemyState) {
	if e.State == s {
		return
	}
	gs.event(e.Label, "state", "change", fmt.Sprintf("%s → %s", e.State, s), 0)
	e.State = s
}

// damagePlayer applies n damage from source and latches defeat at zero HP.
func (gs *GameState) damagePlayer(n int, source string) {
	dealt := gs.Player.Damage(n)
	if dealt == 0 {
		return
	}
	gs.Stats.DamageTaken += dealt
	gs.feed(source, true, fmt.Sprintf("hits you for %d (%d/%d)", dealt, gs.Player.HP, gs.Player.MaxHP))
	if !gs.Player.Alive() && gs.Phase == PhasePlaying {
		gs.Phase = PhaseDefeated
		gs.event("P", "game", "defeated", fmt.Sprintf("killed by %s", source), float64(gs.Tick))
		gs.feed("P", false, "has fallen")
		logger.Log.WithFields(logrus.Fields{
			"world": gs.WorldID,
			"tick":  gs.Tick,
			"by":    source,
			"kills": gs.Stats.Kills,
		}).Info("player defeated")
	}
}

// damageEnemy applies n damage to e and logs a kill when it drops.
func (gs *GameState) damageEnemy(e *Enemy, n int, how string) {
	dealt := e.Damage(n)
	if dealt == 0 {
		return
	}
	gs.event(e.Label, "combat", how, fmt.Sprintf("-%d (%d/%d)", dealt, e.HP, e.MaxHP), float64(dealt))
	if !e.Alive() {
		gs.Stats.Kills++
		gs.event(e.Label, "combat", "kill", how, 0)
		gs.feed(e.Label, true, fmt.Sprintf("%s slain", e.Kind))
	}
}

// meleeHitPlayer lands an enemy swing.
func (gs *GameState) meleeHitPlayer(e *Enemy) {
	gs.Stats.EnemyMeleeHits++
	gs.event(e.Label, "combat", "melee_hit", fmt.Sprintf("player -%d", e.AttackDamage), float64(e.AttackDamage))
	gs.damagePlayer(e.AttackDamage, e.Label)
}

// archerRelease rolls the archer's hit chance; a success looses an arrow at
// the player's current position, a failure wastes the shot.
func (gs *GameState) archerRelease(e *Enemy) {
	if gs.rng.Float64() >= e.HitChance {
		gs.event(e.Label, "combat", "shot_fumbled", "", 0)
		return
	}
	p := gs.Player
	gs.Arrows = append(gs.Arrows, NewArrow(e.X, e.Y, p.X, p.Y, gs.Tuning.Arrow.Speed, e.AttackDamage, false))
	gs.Stats.EnemyArrows++
	gs.event(e.Label, "combat", "arrow_fired", fmt.Sprintf("at (%.1f,%.1f)", p.X, p.Y), 0)
}

// playerMeleeSweep damages every living enemy within melee range.
func (gs *GameState) playerMeleeSweep() {
	p := gs.Player
	hits := 0
	for _, e := range gs.Enemies {
		if !e.Alive() || e.DistanceTo(p.X, p.Y) > p.cfg.MeleeRange {
			continue
		}
		gs.damageEnemy(e, p.cfg.MeleeDamage, "melee_hit")
		hits++
	}
	gs.Stats.PlayerMeleeHits += hits
	if hits == 0 {
		gs.event("P", "combat", "melee_miss", "", 0)
	}
}

// playerRelease fires at the locked target if it is still alive. The target
// reference is consumed either way.
func (gs *GameState) playerRelease() {
	p := gs.Player
	t := gs.enemyByID(p.TargetID)
	p.TargetID = -1
	p.LastShotTick = gs.Tick
	if t == nil {
		gs.event("P", "combat", "shot_lost_target", "", 0)
		return
	}
	gs.Arrows = append(gs.Arrows, NewArrow(p.X, p.Y, t.X, t.Y, gs.Tuning.Arrow.Speed, p.cfg.ArrowDamage, true))
	gs.Stats.PlayerArrows++
	gs.event("P", "combat", "arrow_fired", "at "+t.Label, 0)
}

func (gs *GameState) arrowHitEnemy(a *Arrow, e *Enemy) {
	a.spent = true
	gs.Stats.PlayerArrowHits++
	gs.damageEnemy(e, a.Damage, "arrow_hit")
}

func (gs *GameState) arrowHitPlayer(a *Arrow) {
	a.spent = true
	gs.Stats.EnemyArrowHits++
	gs.event("P", "combat", "arrow_hit", fmt.Sprintf("-%d", a.Damage), float64(a.Damage))
	gs.damagePlayer(a.Damage, "arrow")
}
