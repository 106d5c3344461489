package engine

import (
	"fmt"
	"strings"
)

// BattleLogEntry is one recorded event during a headless simulation.
type BattleLogEntry struct {
	Turn     int
	Entity   string  // label e.g. "aircraft#3(RED)", or "--" for global events
	Team     string  // "BLUE", "RED", or "--"
	Category string  // move, toggle, combat, death, sensor, victory
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] aircraft#3(RED)   combat  shot   fires at sam#7(BLUE) -> MISS
func (e BattleLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-20s %-8s %-16s %s",
		e.Turn, e.Entity, e.Category, e.Key, e.Value)
}

// BattleLog collects structured events during a headless simulation.
// It is unbounded and machine-readable, meant for test assertions and
// report generation rather than live output.
type BattleLog struct {
	entries []BattleLogEntry
	verbose bool
}

// NewBattleLog creates a BattleLog. If verbose is true, per-turn
// position and observation entries are also recorded.
func NewBattleLog(verbose bool) *BattleLog {
	return &BattleLog{verbose: verbose}
}

// Add records a new entry.
func (bl *BattleLog) Add(turn int, entity, team, category, key, value string, numVal float64) {
	bl.entries = append(bl.entries, BattleLogEntry{
		Turn:     turn,
		Entity:   entity,
		Team:     team,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (bl *BattleLog) AddVerbose(turn int, entity, team, category, key, value string, numVal float64) {
	if !bl.verbose {
		return
	}
	bl.Add(turn, entity, team, category, key, value, numVal)
}

// RecordStep extracts events from one step's resolution detail.
func (bl *BattleLog) RecordStep(w *WorldState, info *StepInfo) {
	for _, mr := range info.Movement.Results {
		e := w.Entity(mr.EntityID)
		label, team := "--", "--"
		if e != nil {
			label = entityLabel(e)
			team = e.Base().Team.String()
		}
		switch {
		case mr.Action.Type == ActionToggle:
			bl.Add(w.Turn, label, team, "toggle", "radar", mr.Log, 0)
		case mr.Action.Type == ActionMove && mr.Success:
			bl.AddVerbose(w.Turn, label, team, "move", "moved", mr.Log, 0)
		case mr.Action.Type == ActionMove:
			bl.Add(w.Turn, label, team, "move", "blocked", mr.Log, 0)
		}
	}
	for _, cr := range info.Combat.CombatResults {
		e := w.Entity(cr.AttackerID)
		label, team := "--", "--"
		if e != nil {
			label = entityLabel(e)
			team = e.Base().Team.String()
		}
		prob := 0.0
		if cr.HitProbability != nil {
			prob = *cr.HitProbability
		}
		bl.Add(w.Turn, label, team, "combat", "shot", cr.Log, prob)
	}
	for _, dl := range info.Combat.DeathLogs {
		bl.Add(w.Turn, "--", "--", "death", "destroyed", dl, 0)
	}
	if info.Victory.IsGameOver {
		bl.Add(w.Turn, "--", "--", "victory", "game_over",
			fmt.Sprintf("%s (%s)", info.Victory.Result, info.Victory.Reason), 0)
	}
}

// Entries returns all recorded entries.
func (bl *BattleLog) Entries() []BattleLogEntry {
	return bl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (bl *BattleLog) Filter(category, key string) []BattleLogEntry {
	var out []BattleLogEntry
	for _, e := range bl.entries {
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

// FilterTurnRange returns entries within [fromTurn, toTurn] inclusive.
func (bl *BattleLog) FilterTurnRange(fromTurn, toTurn int) []BattleLogEntry {
	var out []BattleLogEntry
	for _, e := range bl.entries {
		if e.Turn >= fromTurn && e.Turn <= toTurn {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (bl *BattleLog) CountCategory(category, key string) int {
	return len(bl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (bl *BattleLog) LastOf(category, key string) (BattleLogEntry, bool) {
	entries := bl.Filter(category, key)
	if len(entries) == 0 {
		return BattleLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (bl *BattleLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range bl.entries {
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
func (bl *BattleLog) Format() string {
	var sb strings.Builder
	for _, e := range bl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the world state.
func (bl *BattleLog) Summary(w *WorldState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.Turn)

	for _, team := range Teams {
		alive, missiles := 0, 0
		for _, e := range w.TeamEntities(team, true) {
			alive++
			if s, ok := e.(Shooter); ok {
				missiles += s.Weapon().Missiles
			}
		}
		visible := len(w.TeamView(team).EnemyIDs())
		fmt.Fprintf(&sb, "%s: alive=%d  missiles=%d  sees=%d\n", team, alive, missiles, visible)
	}

	if w.GameOver {
		winner := "draw"
		if w.Winner != nil {
			winner = w.Winner.String()
		}
		fmt.Fprintf(&sb, "Game over: winner=%s  reason=%s\n", winner, w.GameOverReason)
	}
	return sb.String()
}
