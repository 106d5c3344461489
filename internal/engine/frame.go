package engine

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FrameEntity flattens an entity for transport: every field a consumer
// might render, with weapon and SAM fields nil when the entity has none.
type FrameEntity struct {
	ID                int      `json:"id"`
	Team              Team     `json:"team"`
	Kind              Kind     `json:"kind"`
	Type              string   `json:"type"`
	Name              string   `json:"name"`
	Position          Pos      `json:"position"`
	Alive             bool     `json:"alive"`
	CanMove           bool     `json:"can_move"`
	CanShoot          bool     `json:"can_shoot"`
	RadarRange        float64  `json:"radar_range"`
	ActiveRadar       float64  `json:"active_radar"`
	Missiles          *int     `json:"missiles,omitempty"`
	MissileMaxRange   *float64 `json:"missile_max_range,omitempty"`
	RadarOn           *bool    `json:"radar_on,omitempty"`
	CooldownRemaining *int     `json:"cooldown_remaining,omitempty"`
}

// FrameTeamView is one team's fog-of-war payload: observation snapshots
// plus id sets so a consumer can filter the entity list.
type FrameTeamView struct {
	Entities        []Observation `json:"entities"`
	FriendlyIDs     []int         `json:"friendly_ids"`
	VisibleEnemyIDs []int         `json:"visible_enemy_ids"`
}

// FrameAction pairs an entity id with its issued action and a display
// label.
type FrameAction struct {
	EntityID int    `json:"entity_id"`
	Action   Action `json:"action"`
	Label    string `json:"label"`
}

// Frame is an immutable snapshot of a single turn, serialized for
// replay storage or a frontend. The world payload is canonical and
// round-trips; entities and observations are denormalized conveniences.
type Frame struct {
	Turn         int                      `json:"turn"`
	World        json.RawMessage          `json:"world"`
	Entities     []FrameEntity            `json:"entities"`
	Observations map[string]FrameTeamView `json:"observations"`
	Actions      []FrameAction            `json:"actions,omitempty"`
	StepInfo     *StepInfo                `json:"step_info,omitempty"`
}

// NewFrame snapshots the world, the actions that produced this turn, and
// the resolution detail. Actions and info may be nil for an initial
// frame.
func NewFrame(w *WorldState, actions map[int]Action, info *StepInfo) (*Frame, error) {
	world, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("snapshotting world: %w", err)
	}

	f := &Frame{
		Turn:         w.Turn,
		World:        world,
		Observations: make(map[string]FrameTeamView, len(Teams)),
		StepInfo:     info,
	}

	for _, e := range w.Entities() {
		f.Entities = append(f.Entities, frameEntity(e))
	}

	for _, team := range Teams {
		view := w.TeamView(team)
		key := "blue"
		if team == TeamRed {
			key = "red"
		}
		f.Observations[key] = FrameTeamView{
			Entities:        view.AllObservations(),
			FriendlyIDs:     view.FriendlyIDs(),
			VisibleEnemyIDs: view.EnemyIDs(),
		}
	}

	ids := make([]int, 0, len(actions))
	for id := range actions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		a := actions[id]
		f.Actions = append(f.Actions, FrameAction{EntityID: id, Action: a, Label: a.String()})
	}

	return f, nil
}

// RestoreWorld decodes the frame's canonical world snapshot.
func (f *Frame) RestoreWorld() (*WorldState, error) {
	var w WorldState
	if err := json.Unmarshal(f.World, &w); err != nil {
		return nil, fmt.Errorf("restoring world from frame %d: %w", f.Turn, err)
	}
	return &w, nil
}

func frameEntity(e Entity) FrameEntity {
	u := e.Base()
	fe := FrameEntity{
		ID:          u.ID,
		Team:        u.Team,
		Kind:        e.Kind(),
		Type:        e.TypeTag(),
		Name:        u.Name,
		Position:    u.Pos,
		Alive:       u.Alive,
		CanMove:     u.CanMove,
		CanShoot:    u.CanShoot,
		RadarRange:  u.RadarRange,
		ActiveRadar: e.ActiveRadarRange(),
	}
	if s, ok := e.(Shooter); ok {
		ws := s.Weapon()
		missiles := ws.Missiles
		maxRange := ws.MissileMaxRange
		fe.Missiles = &missiles
		fe.MissileMaxRange = &maxRange
	}
	if s, ok := e.(*SAM); ok {
		on := s.On
		cd := s.CooldownRemaining
		fe.RadarOn = &on
		fe.CooldownRemaining = &cd
	}
	return fe
}
