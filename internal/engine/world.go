package engine

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// WorldState is the single mutable shared resource of an episode: the
// grid, every entity ever spawned (dead ones are retained, never
// removed), the seeded RNG shared by the resolvers, turn and stall
// counters, pending-kill bookkeeping, the terminal outcome once decided,
// and one fog-of-war view per team.
//
// Each episode owns an independently constructed WorldState/RNG pair;
// the engine carries no process-wide mutable state.
type WorldState struct {
	Grid Grid

	entities []Entity
	byID     map[int]Entity
	nextID   int

	seed int64
	rng  *rand.Rand

	Turn                 int
	TurnsWithoutShooting int
	TurnsWithoutMovement int

	pendingKills []int
	pendingSet   map[int]struct{}

	GameOver       bool
	Winner         *Team
	GameOverReason string

	views map[Team]*TeamView
}

// NewWorldState builds an empty world over a width x height grid with a
// deterministic RNG seeded by seed.
func NewWorldState(width, height int, seed int64) (*WorldState, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	w := &WorldState{
		Grid:       grid,
		byID:       make(map[int]Entity),
		nextID:     1,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)), // #nosec G404 -- simulation only
		pendingSet: make(map[int]struct{}),
		views: map[Team]*TeamView{
			TeamBlue: NewTeamView(TeamBlue),
			TeamRed:  NewTeamView(TeamRed),
		},
	}
	return w, nil
}

// Seed returns the seed the world RNG was constructed with.
func (w *WorldState) Seed() int64 { return w.seed }

// RNG is the shared seeded generator used for hit rolls and tie-break
// shuffles. Resolvers must draw from this generator only, so a fixed
// seed plus a fixed action stream replays identically.
func (w *WorldState) RNG() *rand.Rand { return w.rng }

// AddEntity registers an entity. Entities with id zero are assigned the
// next id from the world's allocator; explicit ids (restored from a
// serialized world) bump the allocator past themselves. Placement outside
// the grid, duplicate ids, and occupied cells are fatal configuration
// errors.
func (w *WorldState) AddEntity(e Entity) error {
	u := e.Base()
	if !w.Grid.InBounds(u.Pos) {
		return fmt.Errorf("entity position %s outside %dx%d grid", u.Pos, w.Grid.Width, w.Grid.Height)
	}
	if u.ID == 0 {
		u.ID = w.nextID
		w.nextID++
	} else {
		if _, exists := w.byID[u.ID]; exists {
			return fmt.Errorf("duplicate entity id %d", u.ID)
		}
		if u.ID >= w.nextID {
			w.nextID = u.ID + 1
		}
	}
	if u.Alive {
		if occupant := w.AliveEntityAt(u.Pos); occupant != nil {
			return fmt.Errorf("cell %s already occupied by %s", u.Pos, entityLabel(occupant))
		}
	}
	w.entities = append(w.entities, e)
	w.byID[u.ID] = e
	return nil
}

// Entity returns the entity with the given id, or nil.
func (w *WorldState) Entity(id int) Entity {
	return w.byID[id]
}

// Entities returns every entity, dead or alive, in insertion order.
func (w *WorldState) Entities() []Entity {
	return w.entities
}

// AliveEntities returns the living entities in insertion order.
func (w *WorldState) AliveEntities() []Entity {
	var out []Entity
	for _, e := range w.entities {
		if e.Base().Alive {
			out = append(out, e)
		}
	}
	return out
}

// TeamEntities returns a team's entities in insertion order.
func (w *WorldState) TeamEntities(team Team, aliveOnly bool) []Entity {
	var out []Entity
	for _, e := range w.entities {
		if e.Base().Team != team {
			continue
		}
		if aliveOnly && !e.Base().Alive {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AliveEntityAt returns the living entity occupying pos, or nil. At the
// end of every resolved turn at most one living entity occupies a cell.
func (w *WorldState) AliveEntityAt(pos Pos) Entity {
	for _, e := range w.entities {
		if e.Base().Alive && e.Base().Pos == pos {
			return e
		}
	}
	return nil
}

// TeamView returns the fog-of-war cache for a team.
func (w *WorldState) TeamView(team Team) *TeamView {
	return w.views[team]
}

// MarkForKill queues an entity for death at the end of combat
// resolution. Marking the same target twice in one turn is idempotent, so
// simultaneous hits stay order-independent.
func (w *WorldState) MarkForKill(id int) {
	if _, ok := w.pendingSet[id]; ok {
		return
	}
	w.pendingSet[id] = struct{}{}
	w.pendingKills = append(w.pendingKills, id)
}

// PendingKills returns the queued kills in mark order.
func (w *WorldState) PendingKills() []int {
	out := make([]int, len(w.pendingKills))
	copy(out, w.pendingKills)
	return out
}

// ClearPendingKills empties the kill queue after deaths are applied.
func (w *WorldState) ClearPendingKills() {
	w.pendingKills = w.pendingKills[:0]
	w.pendingSet = make(map[int]struct{})
}

// SetOutcome records the terminal result. Once set it is sticky; the
// orchestrator never re-evaluates a finished episode.
func (w *WorldState) SetOutcome(winner *Team, reason string) {
	if w.GameOver {
		return
	}
	w.GameOver = true
	w.Winner = winner
	w.GameOverReason = reason
}

// Clone deep-copies the world via its serialized form. The clone's RNG
// is reseeded from the original seed.
func (w *WorldState) Clone() (*WorldState, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("cloning world: %w", err)
	}
	var cp WorldState
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("cloning world: %w", err)
	}
	return &cp, nil
}

type worldRecord struct {
	Width                int                  `json:"width"`
	Height               int                  `json:"height"`
	Seed                 int64                `json:"seed"`
	Turn                 int                  `json:"turn"`
	TurnsWithoutShooting int                  `json:"turns_without_shooting"`
	TurnsWithoutMovement int                  `json:"turns_without_movement"`
	GameOver             bool                 `json:"game_over"`
	Winner               *Team                `json:"winner"`
	GameOverReason       string               `json:"game_over_reason,omitempty"`
	NextID               int                  `json:"next_id"`
	PendingKills         []int                `json:"pending_kills,omitempty"`
	Entities             []json.RawMessage    `json:"entities"`
	TeamViews            map[string]*TeamView `json:"team_views"`
}

// MarshalJSON serializes the full world: grid, counters, outcome,
// entities (polymorphic), pending kills, and both team views.
func (w *WorldState) MarshalJSON() ([]byte, error) {
	rec := worldRecord{
		Width:                w.Grid.Width,
		Height:               w.Grid.Height,
		Seed:                 w.seed,
		Turn:                 w.Turn,
		TurnsWithoutShooting: w.TurnsWithoutShooting,
		TurnsWithoutMovement: w.TurnsWithoutMovement,
		GameOver:             w.GameOver,
		Winner:               w.Winner,
		GameOverReason:       w.GameOverReason,
		NextID:               w.nextID,
		PendingKills:         w.PendingKills(),
		TeamViews: map[string]*TeamView{
			TeamBlue.String(): w.views[TeamBlue],
			TeamRed.String():  w.views[TeamRed],
		},
	}
	for _, e := range w.entities {
		data, err := MarshalEntity(e)
		if err != nil {
			return nil, err
		}
		rec.Entities = append(rec.Entities, data)
	}
	return json.Marshal(rec)
}

// UnmarshalJSON restores a serialized world. The RNG is reseeded from the
// stored seed; replaying a resumed world therefore matches a fresh world
// with the same seed, not the byte-exact generator state at save time.
func (w *WorldState) UnmarshalJSON(data []byte) error {
	var rec worldRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decoding world: %w", err)
	}
	restored, err := NewWorldState(rec.Width, rec.Height, rec.Seed)
	if err != nil {
		return err
	}
	for _, raw := range rec.Entities {
		e, err := UnmarshalEntity(raw)
		if err != nil {
			return err
		}
		if err := restored.addRestoredEntity(e); err != nil {
			return err
		}
	}
	restored.Turn = rec.Turn
	restored.TurnsWithoutShooting = rec.TurnsWithoutShooting
	restored.TurnsWithoutMovement = rec.TurnsWithoutMovement
	restored.GameOver = rec.GameOver
	restored.Winner = rec.Winner
	restored.GameOverReason = rec.GameOverReason
	if rec.NextID > restored.nextID {
		restored.nextID = rec.NextID
	}
	for _, id := range rec.PendingKills {
		restored.MarkForKill(id)
	}
	for name, view := range rec.TeamViews {
		var team Team
		if err := team.UnmarshalText([]byte(name)); err != nil {
			return err
		}
		if view != nil {
			restored.views[team] = view
		}
	}
	*w = *restored
	return nil
}

// addRestoredEntity registers a deserialized entity without the occupancy
// check: dead entities keep their last position and may share a cell with
// a living one.
func (w *WorldState) addRestoredEntity(e Entity) error {
	u := e.Base()
	if !w.Grid.InBounds(u.Pos) {
		return fmt.Errorf("entity position %s outside %dx%d grid", u.Pos, w.Grid.Width, w.Grid.Height)
	}
	if _, exists := w.byID[u.ID]; exists {
		return fmt.Errorf("duplicate entity id %d", u.ID)
	}
	if u.ID >= w.nextID {
		w.nextID = u.ID + 1
	}
	w.entities = append(w.entities, e)
	w.byID[u.ID] = e
	return nil
}
