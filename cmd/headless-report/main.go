package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Garsondee/Iso-Frontier/internal/game"
	"github.com/Garsondee/Iso-Frontier/internal/logger"
	"github.com/Garsondee/Iso-Frontier/internal/tuning"
)

type runStats struct {
	runIndex int
	seed     int64
	worldID  string

	ticksRun   int
	defeated   bool
	defeatTick int

	campsPlaced   int
	campsDropped  int
	campsIntruded int
	enemiesLeft   int

	firstIntrusionTick int
	firstKillTick      int
	firstHitTakenTick  int

	kills           int
	damageTaken     int
	playerArrows    int
	playerArrowHits int
	playerMeleeHits int
	enemyMeleeHits  int
	enemyArrows     int
	enemyArrowHits  int
	wanderers       int
	spawnsSkipped   int
	stateChanges    int

	// Last frame painted into a recording surface.
	drawables  int
	frameFills int

	// Event log leading up to the defeat, empty otherwise.
	defeatContext string
}

// defeatContextTicks is how far back the defeat dump reaches.
const defeatContextTicks = 60

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var tuningPath string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&tuningPath, "tuning", "", "path to a YAML tuning file")
	flag.Parse()

	logger.Init()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	t, err := tuning.Load(tuningPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Frontier Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d world=%dx%d camps=%d\n\n",
		runs, ticks, seedBase, seedStep, t.World.Cols, t.World.Rows, t.World.Camps.Count)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, err := runAutopilot(i+1, seed, ticks, t)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runAutopilot plays one seeded world with the autopilot at the keys.
func runAutopilot(runIndex int, seed int64, ticks int, t tuning.Tuning) (runStats, error) {
	gs, err := game.NewGameState(t, seed)
	if err != nil {
		return runStats{}, err
	}
	ap := game.NewAutopilot(seed ^ 0x5eed)
	for i := 0; i < ticks && gs.Phase == game.PhasePlaying; i++ {
		gs.Step(ap.Next(gs))
	}

	surf := &game.RecordingSurface{}
	frame := game.NewRenderer(t.Render).RenderFrame(gs, surf)

	entries := gs.Events.Entries()
	defeatTick, context := defeatContext(gs.Events, defeatContextTicks)
	st := gs.Stats
	rs := runStats{
		runIndex:           runIndex,
		seed:               seed,
		worldID:            gs.WorldID.String(),
		ticksRun:           gs.Tick,
		defeated:           gs.Phase == game.PhaseDefeated,
		defeatTick:         defeatTick,
		defeatContext:      context,
		campsPlaced:        gs.Gen.CampsPlaced,
		campsDropped:       gs.Gen.CampsDropped,
		campsIntruded:      st.CampsIntruded,
		enemiesLeft:        len(gs.Enemies),
		firstIntrusionTick: firstTick(entries, "camp", "intruded", ""),
		firstKillTick:      firstTick(entries, "combat", "kill", ""),
		firstHitTakenTick:  firstHitTaken(entries),
		kills:              st.Kills,
		damageTaken:        st.DamageTaken,
		playerArrows:       st.PlayerArrows,
		playerArrowHits:    st.PlayerArrowHits,
		playerMeleeHits:    st.PlayerMeleeHits,
		enemyMeleeHits:     st.EnemyMeleeHits,
		enemyArrows:        st.EnemyArrows,
		enemyArrowHits:     st.EnemyArrowHits,
		wanderers:          st.Wanderers,
		spawnsSkipped:      st.SpawnsSkipped,
		stateChanges:       gs.Events.CountCategory("state", "change"),
		drawables:          len(frame),
		frameFills:         len(surf.Fills()),
	}
	return rs, nil
}

// defeatContext returns the defeat tick and the log from window ticks before
// it, or -1 and "" when the player never fell.
func defeatContext(log *game.EventLog, window int) (int, string) {
	e, ok := log.LastOf("game", "defeated")
	if !ok {
		return -1, ""
	}
	return e.Tick, log.FormatRange(e.Tick-window, e.Tick)
}

func firstEntry(entries []game.EventEntry, category, key, contains string) (game.EventEntry, bool) {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e, true
		}
	}
	return game.EventEntry{}, false
}

func firstTick(entries []game.EventEntry, category, key, contains string) int {
	if e, ok := firstEntry(entries, category, key, contains); ok {
		return e.Tick
	}
	return -1
}

// firstHitTaken returns the tick of the first melee blow or arrow that
// landed on the player, or -1.
func firstHitTaken(entries []game.EventEntry) int {
	for _, e := range entries {
		if e.Category != "combat" {
			continue
		}
		if (e.Key == "melee_hit" && strings.HasPrefix(e.Value, "player")) || (e.Key == "arrow_hit" && e.Actor == "P") {
			return e.Tick
		}
	}
	return -1
}

// classifyRun names how a run ended.
func classifyRun(rs runStats) (outcome, reason string) {
	switch {
	case rs.defeated:
		return "defeated", fmt.Sprintf("fell_at_tick=%d", rs.defeatTick)
	case rs.campsPlaced > 0 && rs.campsIntruded == rs.campsPlaced && rs.enemiesLeft == 0:
		return "cleared", "all_camps_raided_and_emptied"
	case rs.campsIntruded == 0 && rs.kills == 0:
		return "stalled", "no_contact"
	default:
		return "survived", fmt.Sprintf("camps=%d/%d kills=%d", rs.campsIntruded, rs.campsPlaced, rs.kills)
	}
}

func hitRate(hits, shots int) string {
	if shots <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(hits)/float64(shots)*100)
}

func printRun(rs runStats) {
	outcome, reason := classifyRun(rs)
	fmt.Printf("--- Run %d (seed=%d world=%s) ---\n", rs.runIndex, rs.seed, rs.worldID)
	fmt.Printf("outcome=%s reason=%s ticks=%d\n", outcome, reason, rs.ticksRun)
	fmt.Printf("camps: placed=%d dropped=%d intruded=%d enemies_left=%d\n",
		rs.campsPlaced, rs.campsDropped, rs.campsIntruded, rs.enemiesLeft)
	fmt.Printf("phase_markers: first_intrusion=%d first_kill=%d first_hit_taken=%d defeat=%d\n",
		rs.firstIntrusionTick, rs.firstKillTick, rs.firstHitTakenTick, rs.defeatTick)
	fmt.Printf("player: kills=%d melee_hits=%d arrows=%d arrow_hit_rate=%s damage_taken=%d\n",
		rs.kills, rs.playerMeleeHits, rs.playerArrows, hitRate(rs.playerArrowHits, rs.playerArrows), rs.damageTaken)
	fmt.Printf("enemies: melee_hits=%d arrows=%d arrow_hit_rate=%s state_changes=%d\n",
		rs.enemyMeleeHits, rs.enemyArrows, hitRate(rs.enemyArrowHits, rs.enemyArrows), rs.stateChanges)
	fmt.Printf("spawns: wanderers=%d skipped=%d\n", rs.wanderers, rs.spawnsSkipped)
	fmt.Printf("last_frame: drawables=%d fills=%d\n", rs.drawables, rs.frameFills)
	if rs.defeatContext != "" {
		fmt.Printf("events before defeat (last %d ticks):\n%s", defeatContextTicks, rs.defeatContext)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	outcomes := map[string]int{}
	totalKills := 0
	totalDamage := 0
	totalIntruded := 0
	totalPlaced := 0
	totalDropped := 0
	totalArrows := 0
	totalArrowHits := 0
	totalSkipped := 0

	intrusionTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	defeatTicks := make([]int, 0, len(all))

	for _, rs := range all {
		o, _ := classifyRun(rs)
		outcomes[o]++
		totalKills += rs.kills
		totalDamage += rs.damageTaken
		totalIntruded += rs.campsIntruded
		totalPlaced += rs.campsPlaced
		totalDropped += rs.campsDropped
		totalArrows += rs.playerArrows
		totalArrowHits += rs.playerArrowHits
		totalSkipped += rs.spawnsSkipped
		if rs.firstIntrusionTick >= 0 {
			intrusionTicks = append(intrusionTicks, rs.firstIntrusionTick)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.defeatTick >= 0 {
			defeatTicks = append(defeatTicks, rs.defeatTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d defeated=%d cleared=%d survived=%d stalled=%d\n",
		len(all), outcomes["defeated"], outcomes["cleared"], outcomes["survived"], outcomes["stalled"])
	fmt.Printf("avg_per_run: kills=%.1f damage_taken=%.1f camps_intruded=%.1f camps_placed=%.1f camps_dropped=%.1f spawns_skipped=%.1f\n",
		avg(totalKills, len(all)), avg(totalDamage, len(all)), avg(totalIntruded, len(all)),
		avg(totalPlaced, len(all)), avg(totalDropped, len(all)), avg(totalSkipped, len(all)))
	fmt.Printf("player_arrow_hit_rate=%s\n", hitRate(totalArrowHits, totalArrows))
	fmt.Printf("phase_marker_avg_ticks: first_intrusion=%s first_kill=%s defeat=%s\n",
		avgTickString(intrusionTicks), avgTickString(killTicks), avgTickString(defeatTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
