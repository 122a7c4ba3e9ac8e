package tuning

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tuning holds every numeric knob of the simulation. Values are example
// defaults; a YAML file may override any subset.
type Tuning struct {
	Seed int64 `yaml:"seed"` // 0 = derive from wall clock

	World  World  `yaml:"world"`
	Render Render `yaml:"render"`
	Player Player `yaml:"player"`
	Melee  Enemy  `yaml:"melee"`
	Archer Enemy  `yaml:"archer"`
	Arrow  Arrow  `yaml:"arrow"`
	Spawn  Spawn  `yaml:"spawn"`
}

type World struct {
	Cols                    int     `yaml:"cols"`
	Rows                    int     `yaml:"rows"`
	TreeDensity             float64 `yaml:"tree_density"`
	PlayerPlacementAttempts int     `yaml:"player_placement_attempts"`
	Biomes                  []Biome `yaml:"biomes"`
	Camps                   Camps   `yaml:"camps"`
}

// Biome is one region-growth pass. Kind is one of lake, forest, desert,
// mountain.
type Biome struct {
	Kind        string  `yaml:"kind"`
	TargetTiles int     `yaml:"target_tiles"`
	Spread      float64 `yaml:"spread"`
	Instances   int     `yaml:"instances"`
}

type Camps struct {
	Count             int     `yaml:"count"`
	MinRadius         float64 `yaml:"min_radius"`
	MaxRadius         float64 `yaml:"max_radius"`
	MinPlayerDistance float64 `yaml:"min_player_distance"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	EnemiesPerCamp    int     `yaml:"enemies_per_camp"`
	ArcherRatio       float64 `yaml:"archer_ratio"`
}

type Render struct {
	TileWidth  float64 `yaml:"tile_width"`
	TileHeight float64 `yaml:"tile_height"`
	ViewWidth  int     `yaml:"view_width"`
	ViewHeight int     `yaml:"view_height"`
	CullMargin float64 `yaml:"cull_margin"` // px
}

type Player struct {
	MaxHP          int     `yaml:"max_hp"`
	Speed          float64 `yaml:"speed"` // tiles per tick
	MeleeRange     float64 `yaml:"melee_range"`
	MeleeDamage    int     `yaml:"melee_damage"`
	AttackFrames   int     `yaml:"attack_frames"`
	HitFrame       int     `yaml:"hit_frame"`
	AttackCooldown int     `yaml:"attack_cooldown"` // ticks
	ShootRange     float64 `yaml:"shoot_range"`
	ArrowDamage    int     `yaml:"arrow_damage"`
	AimTicks       int     `yaml:"aim_ticks"`
	ShotCooldown   int     `yaml:"shot_cooldown"` // ticks
}

// Enemy tunes one enemy kind. Melee uses AttackFrames/HitFrame/HitReach,
// archers use AimTicks/HitChance.
type Enemy struct {
	MaxHP         int     `yaml:"max_hp"`
	Speed         float64 `yaml:"speed"`
	AggroRange    float64 `yaml:"aggro_range"`
	AttackRange   float64 `yaml:"attack_range"`
	AttackDamage  int     `yaml:"attack_damage"`
	CooldownTicks int     `yaml:"cooldown_ticks"`
	AttackFrames  int     `yaml:"attack_frames"`
	HitFrame      int     `yaml:"hit_frame"`
	HitReach      float64 `yaml:"hit_reach"`
	AimTicks      int     `yaml:"aim_ticks"`
	HitChance     float64 `yaml:"hit_chance"`
}

type Arrow struct {
	Speed        float64 `yaml:"speed"`
	HitRadius    float64 `yaml:"hit_radius"`
	BoundsMargin float64 `yaml:"bounds_margin"`
}

type Spawn struct {
	IntervalTicks     int     `yaml:"interval_ticks"`
	MaxWanderers      int     `yaml:"max_wanderers"`
	MinPlayerDistance float64 `yaml:"min_player_distance"`
	Attempts          int     `yaml:"attempts"`
	ArcherRatio       float64 `yaml:"archer_ratio"`
}

// BiomeKinds lists the biome names accepted in a tuning file.
var BiomeKinds = []string{"lake", "forest", "desert", "mountain"}

// Default returns the shipped tuning.
func Default() Tuning {
	return Tuning{
		World: World{
			Cols:                    64,
			Rows:                    64,
			TreeDensity:             0.3,
			PlayerPlacementAttempts: 200,
			Biomes: []Biome{
				{Kind: "lake", TargetTiles: 60, Spread: 0.55, Instances: 3},
				{Kind: "mountain", TargetTiles: 45, Spread: 0.5, Instances: 3},
				{Kind: "forest", TargetTiles: 140, Spread: 0.65, Instances: 4},
				{Kind: "desert", TargetTiles: 90, Spread: 0.6, Instances: 2},
			},
			Camps: Camps{
				Count:             4,
				MinRadius:         2.5,
				MaxRadius:         4.5,
				MinPlayerDistance: 12,
				PlacementAttempts: 40,
				EnemiesPerCamp:    4,
				ArcherRatio:       0.35,
			},
		},
		Render: Render{
			TileWidth:  64,
			TileHeight: 32,
			ViewWidth:  1280,
			ViewHeight: 720,
			CullMargin: 96,
		},
		Player: Player{
			MaxHP:          100,
			Speed:          0.08,
			MeleeRange:     1.1,
			MeleeDamage:    25,
			AttackFrames:   18,
			HitFrame:       9,
			AttackCooldown: 30,
			ShootRange:     8,
			ArrowDamage:    20,
			AimTicks:       20,
			ShotCooldown:   45,
		},
		Melee: Enemy{
			MaxHP:         60,
			Speed:         0.05,
			AggroRange:    6,
			AttackRange:   0.8,
			AttackDamage:  10,
			CooldownTicks: 60,
			AttackFrames:  24,
			HitFrame:      12,
			HitReach:      1.0,
			HitChance:     1,
		},
		Archer: Enemy{
			MaxHP:         40,
			Speed:         0.045,
			AggroRange:    9,
			AttackRange:   6,
			AttackDamage:  12,
			CooldownTicks: 90,
			AimTicks:      30,
			HitChance:     0.7,
		},
		Arrow: Arrow{
			Speed:        0.2,
			HitRadius:    0.4,
			BoundsMargin: 2,
		},
		Spawn: Spawn{
			IntervalTicks:     600,
			MaxWanderers:      4,
			MinPlayerDistance: 10,
			Attempts:          30,
			ArcherRatio:       0.3,
		},
	}
}

// Load reads a YAML tuning file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Tuning, error) {
	t := Default()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate reports every out-of-range value at once.
func (t Tuning) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	w := t.World
	if w.Cols <= 0 || w.Rows <= 0 {
		bad("world size %dx%d must be positive", w.Cols, w.Rows)
	}
	if w.TreeDensity < 0 || w.TreeDensity > 1 {
		bad("tree_density %.2f outside [0,1]", w.TreeDensity)
	}
	for i, b := range w.Biomes {
		if !knownBiome(b.Kind) {
			bad("biomes[%d]: unknown kind %q", i, b.Kind)
		}
		if b.Spread < 0 || b.Spread > 1 {
			bad("biomes[%d]: spread %.2f outside [0,1]", i, b.Spread)
		}
		if b.TargetTiles < 0 || b.Instances < 0 {
			bad("biomes[%d]: negative target_tiles or instances", i)
		}
	}
	c := w.Camps
	if c.Count < 0 || c.EnemiesPerCamp < 0 {
		bad("camps: negative count or enemies_per_camp")
	}
	if c.MinRadius <= 0 || c.MaxRadius < c.MinRadius {
		bad("camps: radius range [%.1f,%.1f] invalid", c.MinRadius, c.MaxRadius)
	}
	if c.ArcherRatio < 0 || c.ArcherRatio > 1 {
		bad("camps: archer_ratio %.2f outside [0,1]", c.ArcherRatio)
	}

	if t.Render.TileWidth <= 0 || t.Render.TileHeight <= 0 {
		bad("render: tile size must be positive")
	}
	if t.Render.ViewWidth <= 0 || t.Render.ViewHeight <= 0 {
		bad("render: view size must be positive")
	}

	p := t.Player
	if p.MaxHP <= 0 {
		bad("player: max_hp must be positive")
	}
	if p.HitFrame <= 0 || p.HitFrame > p.AttackFrames {
		bad("player: hit_frame %d outside [1,%d]", p.HitFrame, p.AttackFrames)
	}
	if p.AimTicks <= 0 {
		bad("player: aim_ticks must be positive")
	}

	if t.Melee.MaxHP <= 0 || t.Archer.MaxHP <= 0 {
		bad("enemy max_hp must be positive")
	}
	if t.Melee.HitFrame <= 0 || t.Melee.HitFrame > t.Melee.AttackFrames {
		bad("melee: hit_frame %d outside [1,%d]", t.Melee.HitFrame, t.Melee.AttackFrames)
	}
	if t.Archer.AimTicks <= 0 {
		bad("archer: aim_ticks must be positive")
	}
	if t.Archer.HitChance < 0 || t.Archer.HitChance > 1 {
		bad("archer: hit_chance %.2f outside [0,1]", t.Archer.HitChance)
	}

	if t.Arrow.Speed <= 0 || t.Arrow.HitRadius <= 0 {
		bad("arrow: speed and hit_radius must be positive")
	}
	if t.Spawn.IntervalTicks <= 0 {
		bad("spawn: interval_ticks must be positive")
	}
	return errors.Join(errs...)
}

func knownBiome(kind string) bool {
	for _, k := range BiomeKinds {
		if k == kind {
			return true
		}
	}
	return false
}
