package engine

import "fmt"

// SAM is a stationary armed unit with a toggleable radar. With the radar
// off it is invisible to everyone, but its active sensor range drops to
// zero. Firing starts a cooldown during which it cannot shoot again.
type SAM struct {
	Unit
	WeaponStats

	On                bool
	CooldownSteps     int
	CooldownRemaining int
}

// NewSAM builds a surface-to-air site. cooldownSteps is the number of
// turns the launcher is locked out after firing.
func NewSAM(team Team, pos Pos, radarRange float64, weapon WeaponStats, cooldownSteps int, on bool) (*SAM, error) {
	if err := validateBaseRadar(radarRange); err != nil {
		return nil, err
	}
	if err := weapon.validate(); err != nil {
		return nil, err
	}
	if cooldownSteps < 0 {
		return nil, fmt.Errorf("cooldown steps cannot be negative: %d", cooldownSteps)
	}
	return &SAM{
		Unit: Unit{
			Team:       team,
			Pos:        pos,
			Alive:      true,
			CanMove:    false,
			CanShoot:   true,
			RadarRange: radarRange,
		},
		WeaponStats:   weapon,
		On:            on,
		CooldownSteps: cooldownSteps,
	}, nil
}

func (s *SAM) Base() *Unit          { return &s.Unit }
func (s *SAM) Kind() Kind           { return KindSAM }
func (s *SAM) TypeTag() string      { return "SAM" }
func (s *SAM) Weapon() *WeaponStats { return &s.WeaponStats }

// ActiveRadarRange is zero while the radar is off.
func (s *SAM) ActiveRadarRange() float64 {
	if !s.On {
		return 0
	}
	return s.RadarRange
}

// StartCooldown locks the launcher after a shot.
func (s *SAM) StartCooldown() {
	s.CooldownRemaining = s.CooldownSteps
}

// TickCooldown counts one turn of cooldown down; called during pre-turn
// housekeeping.
func (s *SAM) TickCooldown() {
	if s.CooldownRemaining > 0 {
		s.CooldownRemaining--
	}
}

func (s *SAM) AllowedActions(w *WorldState) []Action {
	if !s.Alive {
		return nil
	}
	actions := []Action{Wait(), Toggle(!s.On)}
	if s.CooldownRemaining == 0 {
		actions = append(actions, shootActions(w, s, &s.WeaponStats)...)
	}
	return actions
}

func (s *SAM) Validate(w *WorldState, act Action) ActionValidation {
	v := validateCommon(s, act)
	if !v.Valid {
		return v
	}
	if act.Type == ActionShoot && s.CooldownRemaining > 0 {
		return InvalidAction(CodeOnCooldown,
			fmt.Sprintf("%s is on cooldown for %d more turns", entityLabel(s), s.CooldownRemaining))
	}
	return v
}

func (s *SAM) Clone() Entity {
	cp := *s
	return &cp
}
