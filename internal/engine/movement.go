package engine

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MoveResult is the structured outcome of one MOVE/TOGGLE/WAIT action.
// This is the only channel movement outcomes are surfaced through.
type MoveResult struct {
	EntityID int    `json:"entity_id"`
	Action   Action `json:"action"`
	OldPos   Pos    `json:"old_pos"`
	NewPos   Pos    `json:"new_pos"`
	Success  bool   `json:"success"`
	Code     string `json:"code,omitempty"`
	Log      string `json:"log,omitempty"`
}

// ActionResolutionResult is the movement phase's full report for a turn.
type ActionResolutionResult struct {
	Results []MoveResult `json:"results"`
	// MovementOccurred is true if at least one position actually changed.
	MovementOccurred bool `json:"movement_occurred"`
}

// FromJSON decodes a serialized resolution result.
func (r *ActionResolutionResult) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}

// MovementResolver applies MOVE, TOGGLE, and WAIT actions for a turn.
// It is stateless; all state lives on the world.
type MovementResolver struct{}

// ResolveActions applies every queued MOVE/TOGGLE/WAIT simultaneously.
//
// Collision policy (the explicit contract, not emergent behavior):
// waits and toggles resolve first in ascending entity-id order, then
// movers are shuffled with the world's seeded RNG and processed one at a
// time against live positions. A move succeeds iff its destination cell
// holds no living entity at the moment the mover is processed. A cell
// vacated earlier in the pass may therefore be entered later in the same
// pass: chains resolve in shuffle order, while two-way swaps never
// resolve (whichever side is processed first finds the other still in
// place). Two movers contending for one free cell: the first drawn wins,
// the second fails with an occupied result. Deterministic for a fixed
// seed and action map.
func (MovementResolver) ResolveActions(w *WorldState, actions map[int]Action) ActionResolutionResult {
	var result ActionResolutionResult

	var stationary []Entity // WAIT + TOGGLE
	var movers []Entity
	for _, e := range w.AliveEntities() {
		a, ok := actions[e.Base().ID]
		if !ok {
			continue // no action supplied: the entity is inert this turn
		}
		switch a.Type {
		case ActionWait, ActionToggle:
			stationary = append(stationary, e)
		case ActionMove:
			movers = append(movers, e)
		}
	}

	sort.Slice(stationary, func(i, j int) bool {
		return stationary[i].Base().ID < stationary[j].Base().ID
	})
	for _, e := range stationary {
		result.Results = append(result.Results, resolveStationary(w, e, actions[e.Base().ID]))
	}

	w.RNG().Shuffle(len(movers), func(i, j int) {
		movers[i], movers[j] = movers[j], movers[i]
	})
	for _, e := range movers {
		res := resolveMove(w, e, actions[e.Base().ID])
		if res.Success && res.NewPos != res.OldPos {
			result.MovementOccurred = true
		}
		result.Results = append(result.Results, res)
	}

	if result.MovementOccurred {
		w.TurnsWithoutMovement = 0
	} else {
		w.TurnsWithoutMovement++
	}
	return result
}

func resolveStationary(w *WorldState, e Entity, a Action) MoveResult {
	u := e.Base()
	res := MoveResult{
		EntityID: u.ID,
		Action:   a,
		OldPos:   u.Pos,
		NewPos:   u.Pos,
	}
	if v := ValidateActionInWorld(w, e, a); !v.Valid {
		res.Code = v.Code
		res.Log = v.Message
		return res
	}
	res.Success = true
	if a.Type == ActionToggle {
		sam := e.(*SAM)
		sam.On = a.On
		res.Log = fmt.Sprintf("%s radar %s", entityLabel(e), onOff(sam.On))
	}
	return res
}

func resolveMove(w *WorldState, e Entity, a Action) MoveResult {
	u := e.Base()
	res := MoveResult{
		EntityID: u.ID,
		Action:   a,
		OldPos:   u.Pos,
		NewPos:   u.Pos,
	}
	if v := ValidateActionInWorld(w, e, a); !v.Valid {
		res.Code = v.Code
		res.Log = v.Message
		return res
	}

	dx, dy := a.Dir.Delta()
	dest := Pos{X: u.Pos.X + dx, Y: u.Pos.Y + dy}
	if occupant := w.AliveEntityAt(dest); occupant != nil {
		res.Code = CodeOccupied
		res.Log = fmt.Sprintf("%s cannot move %s: %s occupied by %s",
			entityLabel(e), a.Dir, dest, entityLabel(occupant))
		return res
	}

	u.Pos = dest
	res.NewPos = dest
	res.Success = true
	res.Log = fmt.Sprintf("%s moves %s to %s", entityLabel(e), a.Dir, dest)
	return res
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
