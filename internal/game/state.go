package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Iso-Frontier/internal/logger"
	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

const (
	garrisonSpread   = 0.7 // garrison spawns within this fraction of the camp radius
	garrisonAttempts = 20
)

// Phase is the top-level game state.
type Phase int

const (
	PhasePlaying  Phase = iota
	PhaseDefeated       // terminal until Retry; only rendering continues
)

func (p Phase) String() string {
	if p == PhaseDefeated {
		return "defeated"
	}
	return "playing"
}

// Stats are per-world counters for the HUD and headless reports.
type Stats struct {
	Ticks           int
	Kills           int
	PlayerMeleeHits int
	PlayerArrows    int
	PlayerArrowHits int
	EnemyMeleeHits  int
	EnemyArrows     int
	EnemyArrowHits  int
	DamageTaken     int
	CampsIntruded   int
	Wanderers       int
	SpawnsSkipped   int
}

// GameState is everything the tick mutates and the renderer reads.
type GameState struct {
	Tuning  tuning.Tuning
	Seed    int64
	WorldID uuid.UUID

	World   *World
	Player  *Player
	Enemies []*Enemy
	Arrows  []*Arrow

	Phase Phase
	Tick  int
	Stats Stats
	Gen   GenReport

	Events *EventLog // this world's events, combat feed included

	rng    *rand.Rand
	nextID int
}

// NewGameState validates the tuning and generates the first world.
func NewGameState(t tuning.Tuning, seed int64) (*GameState, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	gs := newBareState(t, seed)
	if err := gs.regenerate(); err != nil {
		return nil, err
	}
	return gs, nil
}

func newBareState(t tuning.Tuning, seed int64) *GameState {
	return &GameState{
		Tuning: t,
		Seed:   seed,
		Player: NewPlayer(0, 0, t.Player),
		Events: NewEventLog(false),
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		nextID: 1,
	}
}

// Camera follows the player.
func (gs *GameState) Camera() Camera {
	return Camera{X: gs.Player.X, Y: gs.Player.Y}
}

// ResetWorld regenerates terrain, trees and camps, moves the player to the
// new start and clears enemies and arrows. Health and phase are kept.
func (gs *GameState) ResetWorld() {
	if err := gs.regenerate(); err != nil {
		logger.Log.WithError(err).Error("world regeneration failed; keeping current world")
	}
}

// Retry regenerates the world, restores the player's health and returns the
// game to PhasePlaying.
func (gs *GameState) Retry() {
	gs.ResetWorld()
	gs.Player.Heal()
	gs.Phase = PhasePlaying
	gs.event("P", "game", "retry", gs.WorldID.String(), 0)
	logger.Log.WithField("world", gs.WorldID).Info("retry")
}

func (gs *GameState) regenerate() error {
	w, rep, err := GenerateWorld(gs.Tuning.World, gs.rng)
	if err != nil {
		return fmt.Errorf("generate world: %w", err)
	}
	gs.install(w)
	gs.Gen = rep
	for _, c := range w.Camps {
		gs.garrison(c)
	}
	logger.Log.WithFields(logrus.Fields{
		"world":         gs.WorldID,
		"seed":          gs.Seed,
		"size":          fmt.Sprintf("%dx%d", w.Grid.Cols, w.Grid.Rows),
		"trees":         rep.Trees,
		"camps_placed":  rep.CampsPlaced,
		"camps_dropped": rep.CampsDropped,
		"enemies":       len(gs.Enemies),
	}).Info("world generated")
	if rep.CampsDropped > 0 {
		logger.Log.WithField("dropped", rep.CampsDropped).Debug("camp placement exhausted attempts")
	}
	return nil
}

// install swaps in a world and resets everything that belonged to the old one.
func (gs *GameState) install(w *World) {
	gs.World = w
	gs.WorldID = uuid.New()
	gs.Enemies = nil
	gs.Arrows = nil
	gs.Tick = 0
	gs.Stats = Stats{}
	if gs.Events != nil {
		gs.Events.Reset()
	}
	gs.Gen = GenReport{Trees: len(w.Trees), CampsPlaced: len(w.Camps)}
	gs.nextID = 1

	p := gs.Player
	p.X, p.Y = w.StartX, w.StartY
	p.Moving = false
	p.Attacking = false
	p.Aiming = false
	p.TargetID = -1
	p.LastAttackTick = neverTick
	p.LastShotTick = neverTick
	gs.event("P", "game", "world", gs.WorldID.String(), 0)
}

// enemyConfig returns the tuning for kind.
func (gs *GameState) enemyConfig(kind EnemyKind) tuning.Enemy {
	if kind == EnemyArcher {
		return gs.Tuning.Archer
	}
	return gs.Tuning.Melee
}

// SpawnEnemy adds an enemy and returns it.
func (gs *GameState) SpawnEnemy(kind EnemyKind, x, y float64, campID int) *Enemy {
	e := NewEnemy(gs.nextID, kind, x, y, campID, gs.enemyConfig(kind))
	gs.nextID++
	gs.Enemies = append(gs.Enemies, e)
	return e
}

// randomKind rolls an archer with probability archerRatio.
func (gs *GameState) randomKind(archerRatio float64) EnemyKind {
	if gs.rng.Float64() < archerRatio {
		return EnemyArcher
	}
	return EnemyMelee
}

// garrison fills a freshly placed camp with confined enemies.
func (gs *GameState) garrison(c *Camp) {
	cfg := gs.Tuning.World.Camps
	for i := 0; i < cfg.EnemiesPerCamp; i++ {
		for a := 0; a < garrisonAttempts; a++ {
			ang := gs.rng.Float64() * 2 * math.Pi
			r := math.Sqrt(gs.rng.Float64()) * c.Radius * garrisonSpread
			x, y := c.X+math.Cos(ang)*r, c.Y+math.Sin(ang)*r
			if !gs.World.IsWalkable(x, y) {
				continue
			}
			gs.SpawnEnemy(gs.randomKind(cfg.ArcherRatio), x, y, c.ID)
			break
		}
	}
}

// Step advances the simulation by one tick. Defeated games do not advance.
func (gs *GameState) Step(keys Keys) {
	if gs.Phase == PhaseDefeated {
		return
	}
	gs.Tick++
	gs.Stats.Ticks++

	gs.Player.update(gs, keys)
	gs.checkCampIntrusion()

	for _, e := range gs.Enemies {
		if gs.Phase == PhaseDefeated {
			break
		}
		if e.Alive() {
			e.think(gs)
		}
	}

	gs.updateArrows()
	gs.reapEnemies()
	if gs.Phase == PhasePlaying {
		gs.scheduleSpawns()
	}

	p := gs.Player
	gs.Events.AddVerbose(gs.Tick, p.Label, "move", "position", fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y), 0)
}

// checkCampIntrusion latches camps the player has entered and frees their
// garrisons.
func (gs *GameState) checkCampIntrusion() {
	p := gs.Player
	for _, c := range gs.World.Camps {
		if c.Intruded || !c.Contains(p.X, p.Y) {
			continue
		}
		c.Intruded = true
		gs.Stats.CampsIntruded++
		freed := 0
		for _, e := range gs.Enemies {
			if e.CampID == c.ID && e.Alive() {
				e.free(gs)
				freed++
			}
		}
		gs.event("P", "camp", "intruded", fmt.Sprintf("camp %d, %d freed", c.ID, freed), float64(freed))
		gs.feed("P", false, fmt.Sprintf("entered camp %d", c.ID))
		logger.Log.WithFields(logrus.Fields{
			"world": gs.WorldID,
			"camp":  c.ID,
			"freed": freed,
			"tick":  gs.Tick,
		}).Debug("camp intruded")
	}
}

// reapEnemies removes dead enemies and drops a target reference to them.
func (gs *GameState) reapEnemies() {
	kept := gs.Enemies[:0]
	for _, e := range gs.Enemies {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		if gs.Player.TargetID == e.ID {
			gs.Player.TargetID = -1
		}
	}
	for i := len(kept); i < len(gs.Enemies); i++ {
		gs.Enemies[i] = nil
	}
	gs.Enemies = kept
}

// scheduleSpawns adds a wandering enemy every Spawn.IntervalTicks while the
// wanderer cap allows. A failed placement is skipped until the next interval.
func (gs *GameState) scheduleSpawns() {
	cfg := gs.Tuning.Spawn
	if cfg.MaxWanderers <= 0 || gs.Tick%cfg.IntervalTicks != 0 {
		return
	}
	wanderers := 0
	for _, e := range gs.Enemies {
		if e.CampID < 0 {
			wanderers++
		}
	}
	if wanderers >= cfg.MaxWanderers {
		return
	}
	w := gs.World
	p := gs.Player
	for a := 0; a < cfg.Attempts; a++ {
		x := float64(gs.rng.Intn(w.Grid.Cols)) + 0.5
		y := float64(gs.rng.Intn(w.Grid.Rows)) + 0.5
		if !w.IsWalkable(x, y) || w.CampAt(x, y) != nil || p.DistanceTo(x, y) < cfg.MinPlayerDistance {
			continue
		}
		e := gs.SpawnEnemy(gs.randomKind(cfg.ArcherRatio), x, y, -1)
		gs.Stats.Wanderers++
		gs.event(e.Label, "spawn", "wanderer", fmt.Sprintf("(%.1f,%.1f)", x, y), 0)
		return
	}
	gs.Stats.SpawnsSkipped++
	gs.event("--", "spawn", "skipped", "", 0)
}

// event records a structured event at the current tick.
func (gs *GameState) event(actor, category, key, value string, num float64) {
	if gs.Events != nil {
		gs.Events.Add(gs.Tick, actor, category, key, value, num)
	}
}
