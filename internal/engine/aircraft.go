package engine

// Aircraft is a mobile armed unit with a medium radar.
type Aircraft struct {
	Unit
	WeaponStats
}

// NewAircraft builds an aircraft; all combat-relevant stats are explicit,
// no defaults. Construction fails on out-of-range parameters.
func NewAircraft(team Team, pos Pos, radarRange float64, weapon WeaponStats) (*Aircraft, error) {
	if err := validateBaseRadar(radarRange); err != nil {
		return nil, err
	}
	if err := weapon.validate(); err != nil {
		return nil, err
	}
	return &Aircraft{
		Unit: Unit{
			Team:       team,
			Pos:        pos,
			Alive:      true,
			CanMove:    true,
			CanShoot:   true,
			RadarRange: radarRange,
		},
		WeaponStats: weapon,
	}, nil
}

func (a *Aircraft) Base() *Unit               { return &a.Unit }
func (a *Aircraft) Kind() Kind                { return KindAircraft }
func (a *Aircraft) TypeTag() string           { return "Aircraft" }
func (a *Aircraft) Weapon() *WeaponStats      { return &a.WeaponStats }
func (a *Aircraft) ActiveRadarRange() float64 { return a.RadarRange }

func (a *Aircraft) AllowedActions(w *WorldState) []Action {
	if !a.Alive {
		return nil
	}
	actions := moveActions(w, &a.Unit)
	actions = append(actions, shootActions(w, a, &a.WeaponStats)...)
	return actions
}

func (a *Aircraft) Validate(w *WorldState, act Action) ActionValidation {
	return validateCommon(a, act)
}

func (a *Aircraft) Clone() Entity {
	cp := *a
	return &cp
}
