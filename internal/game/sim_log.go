package game

import (
	"fmt"
	"strings"
)

// EventEntry is one recorded simulation event.
type EventEntry struct {
	Tick     int
	Actor    string  // label e.g. "P", "M3", "A7", or "--" for global events
	Category string  // game, camp, combat, state, spawn, move, feed
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] M3   state     change           idle → chasing
func (e EventEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for one world. It backs the on-screen
// combat feed, tests and headless reports, and is cleared when a new world
// is installed.
type EventLog struct {
	entries []EventEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick position
// entries are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, actor, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	return el.entries
}

// Reset drops every entry.
func (el *EventLog) Reset() {
	el.entries = el.entries[:0]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// Tail returns up to n of the newest entries in category, oldest first.
func (el *EventLog) Tail(category string, n int) []EventEntry {
	i := len(el.entries)
	found := 0
	for i > 0 && found < n {
		i--
		if el.entries[i].Category == category {
			found++
		}
	}
	out := make([]EventEntry, 0, found)
	for _, e := range el.entries[i:] {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (el *EventLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range el.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the game state. It is
// what the C key copies to the clipboard.
func Summary(gs *GameState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- World %s at T=%03d ---\n", gs.WorldID, gs.Tick)
	fmt.Fprintf(&sb, "Seed: %d  Size: %dx%d  Phase: %s\n",
		gs.Seed, gs.World.Grid.Cols, gs.World.Grid.Rows, gs.Phase)

	sb.WriteString("Biomes: ")
	for k := BiomeGround; k < biomeKindCount; k++ {
		if n := gs.World.Grid.Count(k); n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", k, n)
		}
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "Trees: %d  Camps: %d placed, %d dropped\n",
		len(gs.World.Trees), gs.Gen.CampsPlaced, gs.Gen.CampsDropped)

	for _, c := range gs.World.Camps {
		garrison := 0
		for _, e := range gs.Enemies {
			if e.CampID == c.ID {
				garrison++
			}
		}
		status := "quiet"
		if c.Intruded {
			status = "intruded"
		}
		fmt.Fprintf(&sb, "Camp %d: (%.1f,%.1f) r=%.1f %s, %d alive\n", c.ID, c.X, c.Y, c.Radius, status, garrison)
	}

	byState := map[EnemyState]int{}
	for _, e := range gs.Enemies {
		byState[e.State]++
	}
	sb.WriteString("Enemies: ")
	for s := EnemyIdle; s <= EnemyShooting; s++ {
		if n := byState[s]; n > 0 {
			fmt.Fprintf(&sb, "%s=%d  ", s, n)
		}
	}
	if len(gs.Enemies) == 0 {
		sb.WriteString("none")
	}
	sb.WriteByte('\n')

	p := gs.Player
	fmt.Fprintf(&sb, "Player: (%.2f,%.2f) HP %d/%d\n", p.X, p.Y, p.HP, p.MaxHP)
	st := gs.Stats
	fmt.Fprintf(&sb, "Kills: %d  Damage taken: %d  Arrows: %d fired, %d hit  Melee hits: %d\n",
		st.Kills, st.DamageTaken, st.PlayerArrows, st.PlayerArrowHits, st.PlayerMeleeHits)
	fmt.Fprintf(&sb, "Wanderers: %d spawned, %d skipped\n", st.Wanderers, st.SpawnsSkipped)
	return sb.String()
}
