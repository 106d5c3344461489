package engine

// AWACS is the long-range unarmed sensor platform. Losing it loses the
// game, so it is both the most valuable and the most fragile unit.
type AWACS struct {
	Unit
}

// NewAWACS builds a sensor platform with the given radar range.
func NewAWACS(team Team, pos Pos, radarRange float64) (*AWACS, error) {
	if err := validateBaseRadar(radarRange); err != nil {
		return nil, err
	}
	return &AWACS{
		Unit: Unit{
			Team:       team,
			Pos:        pos,
			Alive:      true,
			CanMove:    true,
			CanShoot:   false,
			RadarRange: radarRange,
		},
	}, nil
}

func (a *AWACS) Base() *Unit               { return &a.Unit }
func (a *AWACS) Kind() Kind                { return KindAWACS }
func (a *AWACS) TypeTag() string           { return "AWACS" }
func (a *AWACS) ActiveRadarRange() float64 { return a.RadarRange }

func (a *AWACS) AllowedActions(w *WorldState) []Action {
	if !a.Alive {
		return nil
	}
	return moveActions(w, &a.Unit)
}

func (a *AWACS) Validate(w *WorldState, act Action) ActionValidation {
	return validateCommon(a, act)
}

func (a *AWACS) Clone() Entity {
	cp := *a
	return &cp
}
