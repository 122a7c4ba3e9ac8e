package game

import (
	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

// TestSim is a headless harness around a GameState with a hand-built world.
// It has no ebiten dependency and is fully deterministic for a given seed.
type TestSim struct {
	State *GameState
	Log   *EventLog
	Keys  Keys

	cols    int
	rows    int
	seed    int64
	tuning  tuning.Tuning
	verbose bool
	world   *World
	startX  float64
	startY  float64
	haveAt  bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // grid size, seed, tuning, verbose
	simOptTerrain                      // biomes, trees, camps; the grid exists
	simOptActor                        // player and enemies; the GameState exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the world dimensions in tiles.
func WithGridSize(cols, rows int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cols, ts.rows = cols, rows
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithTuning replaces the tuning. Wanderer spawning stays whatever t says.
func WithTuning(t tuning.Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.tuning = t
	}}
}

// WithTuningFn edits the current tuning in place.
func WithTuningFn(fn func(*tuning.Tuning)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		fn(&ts.tuning)
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithBiomeRect paints cells [col, col+w) × [row, row+h) with kind.
func WithBiomeRect(kind BiomeKind, col, row, w, h int) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		for r := row; r < row+h; r++ {
			for c := col; c < col+w; c++ {
				ts.world.Grid.Set(c, r, kind)
			}
		}
	}}
}

// WithTree plants a tree at (x, y).
func WithTree(x, y float64) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.world.AddTree(x, y)
	}}
}

// WithCamp stamps a camp. Its ID is its order among WithCamp options.
func WithCamp(x, y, radius float64) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		c := &Camp{ID: len(ts.world.Camps), X: x, Y: y, Radius: radius}
		ts.world.Camps = append(ts.world.Camps, c)
		ts.world.stampCamp(c)
	}}
}

// WithPlayerAt sets the player start.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.startX, ts.startY, ts.haveAt = x, y, true
	}}
}

// WithEnemy adds an enemy. campID -1 makes an unconfined wanderer.
func WithEnemy(kind EnemyKind, x, y float64, campID int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.State.SpawnEnemy(kind, x, y, campID)
	}}
}

// WithEnemyFn adds an enemy and lets the caller adjust it.
func WithEnemyFn(kind EnemyKind, x, y float64, campID int, fn func(*Enemy)) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		fn(ts.State.SpawnEnemy(kind, x, y, campID))
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid size, seed, tuning, verbose)
//  2. Terrain on an all-Ground grid
//  3. GameState install
//  4. Actors
//
// Wanderer spawning is off unless the tuning passed in enables it.
func NewTestSim(opts ...SimOption) *TestSim {
	t := tuning.Default()
	t.Spawn.MaxWanderers = 0
	ts := &TestSim{
		cols:   30,
		rows:   30,
		seed:   1,
		tuning: t,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	ts.world = NewWorld(NewGrid(ts.cols, ts.rows))
	ts.world.shadeSeed = ts.seed
	for _, o := range opts {
		if o.kind == simOptTerrain {
			o.fn(ts)
		}
	}
	if ts.haveAt {
		ts.world.StartX, ts.world.StartY = ts.startX, ts.startY
	} else {
		ts.world.StartX, ts.world.StartY = float64(ts.cols)/2, float64(ts.rows)/2
	}

	gs := newBareState(ts.tuning, ts.seed)
	gs.Events = NewEventLog(ts.verbose)
	gs.install(ts.world)
	ts.State = gs
	ts.Log = gs.Events

	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	return ts
}

// Player returns the simulated player.
func (ts *TestSim) Player() *Player { return ts.State.Player }

// Enemy returns the i-th living enemy in spawn order.
func (ts *TestSim) Enemy(i int) *Enemy { return ts.State.Enemies[i] }

// Press holds keys for every following tick until Release.
func (ts *TestSim) Press(keys ...Key) {
	if ts.Keys == nil {
		ts.Keys = Keys{}
	}
	for _, k := range keys {
		ts.Keys[k] = true
	}
}

// Release lets go of every key.
func (ts *TestSim) Release() { ts.Keys = nil }

// RunTicks advances the simulation n ticks with the held keys.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.State.Step(ts.Keys)
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.State.Step(ts.Keys)
		if predicate(ts) {
			return ts.State.Tick
		}
	}
	return -1
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.State.Tick
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick    int
	Phase   Phase
	Player  ActorSnapshot
	Enemies []ActorSnapshot
}

// ActorSnapshot is a lightweight copy of an actor's state at a tick.
type ActorSnapshot struct {
	ID    int
	Label string
	X, Y  float64
	HP    int
	State EnemyState // zero for the player
}

// Snapshot returns the current state of every actor.
func (ts *TestSim) Snapshot() SimSnapshot {
	p := ts.State.Player
	snap := SimSnapshot{
		Tick:   ts.State.Tick,
		Phase:  ts.State.Phase,
		Player: ActorSnapshot{ID: p.ID, Label: p.Label, X: p.X, Y: p.Y, HP: p.HP},
	}
	for _, e := range ts.State.Enemies {
		snap.Enemies = append(snap.Enemies, ActorSnapshot{
			ID:    e.ID,
			Label: e.Label,
			X:     e.X,
			Y:     e.Y,
			HP:    e.HP,
			State: e.State,
		})
	}
	return snap
}
