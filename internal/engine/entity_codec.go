package engine

import (
	"encoding/json"
	"fmt"
)

// entityRecord is the wire form shared by all variants. Armed and
// SAM-only fields are pointers so they round-trip only for the variants
// that carry them.
type entityRecord struct {
	Type       string  `json:"type"`
	ID         int     `json:"id"`
	Team       Team    `json:"team"`
	Pos        Pos     `json:"pos"`
	Kind       Kind    `json:"kind"`
	Name       string  `json:"name,omitempty"`
	Alive      bool    `json:"alive"`
	RadarRange float64 `json:"radar_range"`
	CanMove    bool    `json:"can_move"`
	CanShoot   bool    `json:"can_shoot"`

	Missiles        *int     `json:"missiles,omitempty"`
	MissileMaxRange *float64 `json:"missile_max_range,omitempty"`
	BaseHitProb     *float64 `json:"base_hit_prob,omitempty"`
	MinHitProb      *float64 `json:"min_hit_prob,omitempty"`

	On                *bool `json:"on,omitempty"`
	CooldownSteps     *int  `json:"cooldown_steps,omitempty"`
	CooldownRemaining *int  `json:"cooldown_remaining,omitempty"`
}

func recordForEntity(e Entity) entityRecord {
	u := e.Base()
	rec := entityRecord{
		Type:       e.TypeTag(),
		ID:         u.ID,
		Team:       u.Team,
		Pos:        u.Pos,
		Kind:       e.Kind(),
		Name:       u.Name,
		Alive:      u.Alive,
		RadarRange: u.RadarRange,
		CanMove:    u.CanMove,
		CanShoot:   u.CanShoot,
	}
	if shooter, ok := e.(Shooter); ok {
		ws := shooter.Weapon()
		rec.Missiles = &ws.Missiles
		rec.MissileMaxRange = &ws.MissileMaxRange
		rec.BaseHitProb = &ws.BaseHitProb
		rec.MinHitProb = &ws.MinHitProb
	}
	if sam, ok := e.(*SAM); ok {
		rec.On = &sam.On
		rec.CooldownSteps = &sam.CooldownSteps
		rec.CooldownRemaining = &sam.CooldownRemaining
	}
	return rec
}

// MarshalEntity serializes an entity to JSON keyed by its type tag.
func MarshalEntity(e Entity) ([]byte, error) {
	return json.Marshal(recordForEntity(e))
}

func (rec entityRecord) weapon() (WeaponStats, error) {
	if rec.Missiles == nil || rec.MissileMaxRange == nil || rec.BaseHitProb == nil || rec.MinHitProb == nil {
		return WeaponStats{}, fmt.Errorf("entity type %q missing weapon stats", rec.Type)
	}
	return WeaponStats{
		Missiles:        *rec.Missiles,
		MissileMaxRange: *rec.MissileMaxRange,
		BaseHitProb:     *rec.BaseHitProb,
		MinHitProb:      *rec.MinHitProb,
	}, nil
}

func entityFromRecord(rec entityRecord) (Entity, error) {
	var (
		e   Entity
		err error
	)
	switch rec.Type {
	case "Aircraft":
		var ws WeaponStats
		if ws, err = rec.weapon(); err == nil {
			e, err = NewAircraft(rec.Team, rec.Pos, rec.RadarRange, ws)
		}
	case "AWACS":
		e, err = NewAWACS(rec.Team, rec.Pos, rec.RadarRange)
	case "Decoy":
		e, err = NewDecoy(rec.Team, rec.Pos)
	case "SAM":
		var ws WeaponStats
		if ws, err = rec.weapon(); err == nil {
			cooldownSteps := 0
			if rec.CooldownSteps != nil {
				cooldownSteps = *rec.CooldownSteps
			}
			on := false
			if rec.On != nil {
				on = *rec.On
			}
			var sam *SAM
			sam, err = NewSAM(rec.Team, rec.Pos, rec.RadarRange, ws, cooldownSteps, on)
			if err == nil {
				if rec.CooldownRemaining != nil {
					sam.CooldownRemaining = *rec.CooldownRemaining
				}
				e = sam
			}
		}
	default:
		return nil, fmt.Errorf("unknown entity type %q", rec.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("entity type %q: %w", rec.Type, err)
	}

	// Restore state the constructors do not take.
	u := e.Base()
	u.ID = rec.ID
	u.Name = rec.Name
	u.Alive = rec.Alive
	return e, nil
}

// UnmarshalEntity reconstructs the correct variant from its JSON form.
// Unknown type tags and out-of-range stats are fatal configuration errors.
func UnmarshalEntity(data []byte) (Entity, error) {
	var rec entityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding entity: %w", err)
	}
	return entityFromRecord(rec)
}
