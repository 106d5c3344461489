package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// ScenarioConfig carries every game-rule parameter of a scenario.
// MaxTurns of zero means no cap; a zero stall threshold disables that
// check.
type ScenarioConfig struct {
	GridWidth              int   `json:"grid_width"`
	GridHeight             int   `json:"grid_height"`
	MaxStalemateTurns      int   `json:"max_stalemate_turns"`
	MaxNoMoveTurns         int   `json:"max_no_move_turns"`
	MaxTurns               int   `json:"max_turns"`
	CheckMissileExhaustion bool  `json:"check_missile_exhaustion"`
	Seed                   int64 `json:"seed"`
}

func (c ScenarioConfig) validate() error {
	if c.GridWidth <= 0 || c.GridHeight <= 0 {
		return fmt.Errorf("grid dimensions must be positive: %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.MaxStalemateTurns < 0 || c.MaxNoMoveTurns < 0 || c.MaxTurns < 0 {
		return fmt.Errorf("turn thresholds cannot be negative")
	}
	return nil
}

// Scenario is a complete, self-contained episode definition: grid size,
// game rules, RNG seed, and the full initial entity list with every
// combat-relevant stat explicit. No defaults are filled in for combat
// stats; an underspecified entity fails at construction.
type Scenario struct {
	Config   ScenarioConfig
	Entities []Entity
}

// NewScenario validates the config and returns an empty scenario.
func NewScenario(cfg ScenarioConfig) (*Scenario, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scenario{Config: cfg}, nil
}

// AddEntity appends an entity to the initial order of battle.
func (s *Scenario) AddEntity(e Entity) *Scenario {
	s.Entities = append(s.Entities, e)
	return s
}

// Clone deep-copies the scenario so the engine never shares mutable
// entities with the caller.
func (s *Scenario) Clone() (*Scenario, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cloning scenario: %w", err)
	}
	var cp Scenario
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("cloning scenario: %w", err)
	}
	return &cp, nil
}

type scenarioRecord struct {
	Config   ScenarioConfig    `json:"config"`
	Entities []json.RawMessage `json:"entities"`
}

// MarshalJSON serializes the scenario with polymorphic entities.
func (s *Scenario) MarshalJSON() ([]byte, error) {
	rec := scenarioRecord{Config: s.Config}
	for _, e := range s.Entities {
		data, err := MarshalEntity(e)
		if err != nil {
			return nil, err
		}
		rec.Entities = append(rec.Entities, data)
	}
	return json.Marshal(rec)
}

// UnmarshalJSON restores a scenario; unknown entity types or out-of-range
// stats fail immediately.
func (s *Scenario) UnmarshalJSON(data []byte) error {
	var rec scenarioRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decoding scenario: %w", err)
	}
	if err := rec.Config.validate(); err != nil {
		return err
	}
	s.Config = rec.Config
	s.Entities = nil
	for _, raw := range rec.Entities {
		e, err := UnmarshalEntity(raw)
		if err != nil {
			return err
		}
		s.Entities = append(s.Entities, e)
	}
	return nil
}

// SaveJSON writes the scenario to a file.
func (s *Scenario) SaveJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scenario %s: %w", path, err)
	}
	return nil
}

// LoadScenario reads a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// mustEntity panics on a construction error; used only by the canned
// scenario builders below, whose stats are known-valid.
func mustEntity(e Entity, err error) Entity {
	if err != nil {
		panic(err)
	}
	return e
}

// MixedScenario is a combined-arms battle on a 20x13 grid: each side
// fields an AWACS, two aircraft, and a SAM; red adds a decoy screening
// its fighters. Blue's SAM starts radiating, red's starts dark.
func MixedScenario(seed int64) *Scenario {
	fighter := WeaponStats{Missiles: 4, MissileMaxRange: 4, BaseHitProb: 0.8, MinHitProb: 0.1}
	site := WeaponStats{Missiles: 6, MissileMaxRange: 6, BaseHitProb: 0.8, MinHitProb: 0.1}

	sc := &Scenario{Config: ScenarioConfig{
		GridWidth:              20,
		GridHeight:             13,
		MaxStalemateTurns:      60,
		MaxNoMoveTurns:         100,
		MaxTurns:               50,
		CheckMissileExhaustion: true,
		Seed:                   seed,
	}}

	sc.AddEntity(mustEntity(NewAWACS(TeamBlue, Pos{1, 10}, 9)))
	sc.AddEntity(mustEntity(NewAircraft(TeamBlue, Pos{5, 10}, 5, fighter)))
	sc.AddEntity(mustEntity(NewAircraft(TeamBlue, Pos{5, 12}, 5, fighter)))
	sc.AddEntity(mustEntity(NewSAM(TeamBlue, Pos{2, 2}, 8, site, 5, true)))

	sc.AddEntity(mustEntity(NewAWACS(TeamRed, Pos{19, 10}, 9)))
	sc.AddEntity(mustEntity(NewAircraft(TeamRed, Pos{15, 10}, 5, fighter)))
	sc.AddEntity(mustEntity(NewAircraft(TeamRed, Pos{15, 8}, 5, fighter)))
	sc.AddEntity(mustEntity(NewDecoy(TeamRed, Pos{16, 10})))
	sc.AddEntity(mustEntity(NewSAM(TeamRed, Pos{18, 12}, 8, site, 5, false)))

	return sc
}
