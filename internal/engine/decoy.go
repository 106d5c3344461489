package engine

// Decoy is a mobile, unarmed, radarless unit that enemy sensors report as
// an aircraft. The deception is permanent: a decoy never reveals itself
// through sensing, only through a confirmed kill — or indirectly, because
// it can never be recorded as having fired.
type Decoy struct {
	Unit
}

// NewDecoy builds a decoy at the given position.
func NewDecoy(team Team, pos Pos) (*Decoy, error) {
	return &Decoy{
		Unit: Unit{
			Team:       team,
			Pos:        pos,
			Alive:      true,
			CanMove:    true,
			CanShoot:   false,
			RadarRange: 0,
		},
	}, nil
}

func (d *Decoy) Base() *Unit               { return &d.Unit }
func (d *Decoy) Kind() Kind                { return KindDecoy }
func (d *Decoy) TypeTag() string           { return "Decoy" }
func (d *Decoy) ActiveRadarRange() float64 { return 0 }

func (d *Decoy) AllowedActions(w *WorldState) []Action {
	if !d.Alive {
		return nil
	}
	return moveActions(w, &d.Unit)
}

func (d *Decoy) Validate(w *WorldState, act Action) ActionValidation {
	return validateCommon(d, act)
}

func (d *Decoy) Clone() Entity {
	cp := *d
	return &cp
}
