package engine

import (
	"encoding/json"
	"sort"
)

// Observation is one team's knowledge of a single entity: who it appears
// to be and where it was seen. Observations are the fog-of-war layer
// only; they never drive mechanics, and the reported kind may be
// deceptive (an enemy decoy reads as an aircraft).
type Observation struct {
	EntityID int
	Kind     Kind
	Team     Team
	Position Pos
	// SeenBy holds the ids of every friendly sensor currently seeing the
	// entity. Detection is boolean per team; redundant observers only
	// widen this set.
	SeenBy map[int]struct{}
	// HasFiredBefore accumulates across turns and is never cleared; it is
	// stamped by the owning team view when the observation is exported.
	HasFiredBefore bool
}

// NewObservation builds an observation seen by a single observer.
func NewObservation(entityID int, kind Kind, team Team, pos Pos, observerID int) Observation {
	return Observation{
		EntityID: entityID,
		Kind:     kind,
		Team:     team,
		Position: pos,
		SeenBy:   map[int]struct{}{observerID: {}},
	}
}

// IsEnemy reports whether the observed entity is hostile to observerTeam.
func (o Observation) IsEnemy(observerTeam Team) bool {
	return o.Team != observerTeam
}

// SeenByIDs returns the observer set as a sorted slice.
func (o Observation) SeenByIDs() []int {
	ids := make([]int, 0, len(o.SeenBy))
	for id := range o.SeenBy {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type observationRecord struct {
	EntityID       int   `json:"entity_id"`
	Kind           Kind  `json:"kind"`
	Team           Team  `json:"team"`
	Position       Pos   `json:"position"`
	SeenBy         []int `json:"seen_by"`
	HasFiredBefore bool  `json:"has_fired_before"`
}

// MarshalJSON encodes the observer set as a sorted array.
func (o Observation) MarshalJSON() ([]byte, error) {
	return json.Marshal(observationRecord{
		EntityID:       o.EntityID,
		Kind:           o.Kind,
		Team:           o.Team,
		Position:       o.Position,
		SeenBy:         o.SeenByIDs(),
		HasFiredBefore: o.HasFiredBefore,
	})
}

// UnmarshalJSON decodes the array form back into a set.
func (o *Observation) UnmarshalJSON(data []byte) error {
	var rec observationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	o.EntityID = rec.EntityID
	o.Kind = rec.Kind
	o.Team = rec.Team
	o.Position = rec.Position
	o.HasFiredBefore = rec.HasFiredBefore
	o.SeenBy = make(map[int]struct{}, len(rec.SeenBy))
	for _, id := range rec.SeenBy {
		o.SeenBy[id] = struct{}{}
	}
	return nil
}

// ObservationSet folds raw per-observer sightings into one observation
// per entity, unioning the seen_by sets. Building views through an
// explicit fold keeps the sensor pass a pure function of the world.
type ObservationSet struct {
	byID map[int]*Observation
}

// NewObservationSet returns an empty set.
func NewObservationSet() *ObservationSet {
	return &ObservationSet{byID: make(map[int]*Observation)}
}

// Add merges an observation; an entity observed by multiple sensors is
// recorded once with the union of observer ids.
func (s *ObservationSet) Add(o Observation) {
	if existing, ok := s.byID[o.EntityID]; ok {
		for id := range o.SeenBy {
			existing.SeenBy[id] = struct{}{}
		}
		return
	}
	cp := o
	cp.SeenBy = make(map[int]struct{}, len(o.SeenBy))
	for id := range o.SeenBy {
		cp.SeenBy[id] = struct{}{}
	}
	s.byID[o.EntityID] = &cp
}

// AddAll merges a batch of observations.
func (s *ObservationSet) AddAll(obs []Observation) {
	for _, o := range obs {
		s.Add(o)
	}
}

// Get returns the observation of entityID, or false.
func (s *ObservationSet) Get(entityID int) (Observation, bool) {
	o, ok := s.byID[entityID]
	if !ok {
		return Observation{}, false
	}
	return *o, true
}

// Len is the number of distinct entities observed.
func (s *ObservationSet) Len() int { return len(s.byID) }

// All returns the observations ordered by entity id.
func (s *ObservationSet) All() []Observation {
	ids := make([]int, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Observation, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.byID[id])
	}
	return out
}

// Clear drops every observation.
func (s *ObservationSet) Clear() {
	s.byID = make(map[int]*Observation)
}
