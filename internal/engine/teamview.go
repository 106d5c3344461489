package engine

import (
	"encoding/json"
	"sort"
)

// TeamView is one team's fog-of-war cache: which friendly units exist,
// which enemies are currently visible, and which enemies have ever been
// seen firing. Visibility is rebuilt from scratch every turn by the
// sensor pass; the fired-before record survives resets for the life of
// the episode.
type TeamView struct {
	team         Team
	friendlyIDs  map[int]struct{}
	observations *ObservationSet
	firedBefore  map[int]struct{}
}

// NewTeamView returns an empty view for a team.
func NewTeamView(team Team) *TeamView {
	return &TeamView{
		team:         team,
		friendlyIDs:  make(map[int]struct{}),
		observations: NewObservationSet(),
		firedBefore:  make(map[int]struct{}),
	}
}

// Team returns the owning side.
func (v *TeamView) Team() Team { return v.team }

// Reset clears the per-turn visibility state. The fired-before history
// is deliberately retained.
func (v *TeamView) Reset() {
	v.friendlyIDs = make(map[int]struct{})
	v.observations.Clear()
}

// AddFriendlyID registers a living friendly unit.
func (v *TeamView) AddFriendlyID(id int) {
	v.friendlyIDs[id] = struct{}{}
}

// AddObservation merges one observation into the view.
func (v *TeamView) AddObservation(o Observation) {
	v.observations.Add(o)
}

// AddObservations merges a batch of observations into the view.
func (v *TeamView) AddObservations(obs []Observation) {
	v.observations.AddAll(obs)
}

// RecordEnemyFired permanently marks an entity as having fired a shot
// observed by this team. Decoys can never fire, so over time this record
// separates real aircraft from undiscovered decoys.
func (v *TeamView) RecordEnemyFired(id int) {
	v.firedBefore[id] = struct{}{}
}

// HasFiredBefore reports whether this team has ever recorded id firing.
func (v *TeamView) HasFiredBefore(id int) bool {
	_, ok := v.firedBefore[id]
	return ok
}

// FriendlyIDs returns the registered friendly ids, sorted.
func (v *TeamView) FriendlyIDs() []int {
	return sortedIDSet(v.friendlyIDs)
}

// ContainsFriendly reports whether id is a registered friendly.
func (v *TeamView) ContainsFriendly(id int) bool {
	_, ok := v.friendlyIDs[id]
	return ok
}

// EnemyIDs returns the ids of currently visible enemies, sorted.
func (v *TeamView) EnemyIDs() []int {
	var ids []int
	for _, o := range v.observations.All() {
		if o.IsEnemy(v.team) {
			ids = append(ids, o.EntityID)
		}
	}
	return ids
}

// Observation returns the view's record of entityID, with the
// fired-before flag stamped.
func (v *TeamView) Observation(entityID int) (Observation, bool) {
	o, ok := v.observations.Get(entityID)
	if !ok {
		return Observation{}, false
	}
	o.HasFiredBefore = v.HasFiredBefore(o.EntityID)
	return o, true
}

// EnemyObservations returns the visible-enemy observations ordered by
// entity id, each stamped with the fired-before flag.
func (v *TeamView) EnemyObservations() []Observation {
	var out []Observation
	for _, o := range v.observations.All() {
		if !o.IsEnemy(v.team) {
			continue
		}
		o.HasFiredBefore = v.HasFiredBefore(o.EntityID)
		out = append(out, o)
	}
	return out
}

// AllObservations returns every observation in the view (friendly and
// enemy) ordered by entity id, stamped with fired-before flags.
func (v *TeamView) AllObservations() []Observation {
	out := v.observations.All()
	for i := range out {
		out[i].HasFiredBefore = v.HasFiredBefore(out[i].EntityID)
	}
	return out
}

func sortedIDSet(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type teamViewRecord struct {
	Team         Team          `json:"team"`
	FriendlyIDs  []int         `json:"friendly_ids"`
	Observations []Observation `json:"observations"`
	FiredBefore  []int         `json:"fired_before"`
}

// MarshalJSON serializes the view including the fired-before history.
func (v *TeamView) MarshalJSON() ([]byte, error) {
	return json.Marshal(teamViewRecord{
		Team:         v.team,
		FriendlyIDs:  v.FriendlyIDs(),
		Observations: v.observations.All(),
		FiredBefore:  sortedIDSet(v.firedBefore),
	})
}

// UnmarshalJSON restores a serialized view.
func (v *TeamView) UnmarshalJSON(data []byte) error {
	var rec teamViewRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	v.team = rec.Team
	v.friendlyIDs = make(map[int]struct{}, len(rec.FriendlyIDs))
	for _, id := range rec.FriendlyIDs {
		v.friendlyIDs[id] = struct{}{}
	}
	v.observations = NewObservationSet()
	v.observations.AddAll(rec.Observations)
	v.firedBefore = make(map[int]struct{}, len(rec.FiredBefore))
	for _, id := range rec.FiredBefore {
		v.firedBefore[id] = struct{}{}
	}
	return nil
}
