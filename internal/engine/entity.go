package engine

import "fmt"

// Unit is the shared mutable state every entity carries. Variant structs
// embed it and add their own payload; behavior that differs per variant
// goes through the Entity interface, everything else is plain data plus
// free functions.
type Unit struct {
	ID    int
	Team  Team
	Pos   Pos
	Name  string
	Alive bool

	CanMove    bool
	CanShoot   bool
	RadarRange float64
}

// WeaponStats is the payload shared by armed variants (Aircraft, SAM).
type WeaponStats struct {
	Missiles        int
	MissileMaxRange float64
	BaseHitProb     float64
	MinHitProb      float64
}

func (w WeaponStats) validate() error {
	if w.Missiles < 0 {
		return fmt.Errorf("missiles cannot be negative: %d", w.Missiles)
	}
	if w.MissileMaxRange <= 0 {
		return fmt.Errorf("missile range must be positive: %g", w.MissileMaxRange)
	}
	if w.BaseHitProb < 0 || w.BaseHitProb > 1 {
		return fmt.Errorf("base hit probability must be in [0,1]: %g", w.BaseHitProb)
	}
	if w.MinHitProb < 0 || w.MinHitProb > 1 {
		return fmt.Errorf("min hit probability must be in [0,1]: %g", w.MinHitProb)
	}
	if w.MinHitProb > w.BaseHitProb {
		return fmt.Errorf("min hit probability (%g) cannot exceed base (%g)", w.MinHitProb, w.BaseHitProb)
	}
	return nil
}

// Entity is the polymorphic surface over the four unit variants.
type Entity interface {
	// Base exposes the shared mutable state.
	Base() *Unit
	// Kind is the entity's true kind (sensing may report a spoofed one).
	Kind() Kind
	// TypeTag is the serialization type key, e.g. "Aircraft".
	TypeTag() string
	// AllowedActions enumerates locally feasible actions: capability,
	// in-bounds destinations, and shots at currently visible, in-range,
	// alive enemies. Destination occupancy is deliberately NOT checked —
	// that is resolved simultaneously across all entities in the movement
	// phase. Dead entities return nil.
	AllowedActions(w *WorldState) []Action
	// Validate performs the cheap entity-level check of a single action:
	// alive, capability, parameter shape, ammunition, SAM cooldown.
	// World-level checks (bounds, occupancy, range, visibility) belong to
	// the shared resolver validation.
	Validate(w *WorldState, a Action) ActionValidation
	// ActiveRadarRange is the effective sensor range this turn; it can be
	// zero even when the nominal range is not (a stealthed SAM).
	ActiveRadarRange() float64
	// Clone returns a deep copy.
	Clone() Entity
}

// Shooter is implemented by armed variants.
type Shooter interface {
	Weapon() *WeaponStats
}

func validateBaseRadar(radarRange float64) error {
	if radarRange < 0 {
		return fmt.Errorf("radar range cannot be negative: %g", radarRange)
	}
	return nil
}

// entityLabel formats a label using the entity's true kind when the unit
// carries no explicit name.
func entityLabel(e Entity) string {
	u := e.Base()
	name := u.Name
	if name == "" {
		name = e.Kind().String()
	}
	return fmt.Sprintf("%s#%d(%s)", name, u.ID, u.Team)
}

// moveActions returns WAIT plus every in-bounds MOVE for a mobile unit.
func moveActions(w *WorldState, u *Unit) []Action {
	actions := []Action{Wait()}
	if !u.CanMove {
		return actions
	}
	for _, dir := range MoveDirs {
		dx, dy := dir.Delta()
		dest := Pos{X: u.Pos.X + dx, Y: u.Pos.Y + dy}
		if w.Grid.InBounds(dest) {
			actions = append(actions, Move(dir))
		}
	}
	return actions
}

// shootActions returns SHOOT actions for every enemy currently visible to
// the shooter's team, alive, and within missile range.
func shootActions(w *WorldState, e Entity, weapon *WeaponStats) []Action {
	u := e.Base()
	if !u.CanShoot || weapon.Missiles <= 0 {
		return nil
	}
	var actions []Action
	view := w.TeamView(u.Team)
	for _, targetID := range view.EnemyIDs() {
		target := w.Entity(targetID)
		if target == nil || !target.Base().Alive {
			continue
		}
		if w.Grid.Distance(u.Pos, target.Base().Pos) <= weapon.MissileMaxRange {
			actions = append(actions, Shoot(targetID))
		}
	}
	return actions
}

// validateCommon implements the entity-level validation shared by every
// variant; armed variants layer ammunition and cooldown checks on top via
// the hooks below.
func validateCommon(e Entity, a Action) ActionValidation {
	u := e.Base()
	if !u.Alive {
		return InvalidAction(CodeEntityDead, fmt.Sprintf("%s is dead and cannot act", entityLabel(e)))
	}
	switch a.Type {
	case ActionWait:
		return ValidAction(fmt.Sprintf("%s can wait", entityLabel(e)))
	case ActionMove:
		if !u.CanMove {
			return InvalidAction(CodeNoCapability, fmt.Sprintf("%s cannot move (immobile)", entityLabel(e)))
		}
		if a.Dir < DirUp || a.Dir > DirRight {
			return InvalidAction(CodeInvalidDirection, fmt.Sprintf("%s invalid movement direction", entityLabel(e)))
		}
		return ValidAction("")
	case ActionShoot:
		if !u.CanShoot {
			return InvalidAction(CodeNoCapability, fmt.Sprintf("%s cannot shoot (no weapons)", entityLabel(e)))
		}
		shooter, ok := e.(Shooter)
		if !ok {
			return InvalidAction(CodeNoCapability, fmt.Sprintf("%s has no weapon implementation", entityLabel(e)))
		}
		if shooter.Weapon().Missiles <= 0 {
			return InvalidAction(CodeNoMissiles, fmt.Sprintf("%s has no missiles", entityLabel(e)))
		}
		if a.TargetID <= 0 {
			return InvalidAction(CodeInvalidTarget, fmt.Sprintf("%s invalid target id", entityLabel(e)))
		}
		return ValidAction("")
	case ActionToggle:
		if _, ok := e.(*SAM); !ok {
			return InvalidAction(CodeNotSAM, fmt.Sprintf("%s cannot toggle (not a SAM)", entityLabel(e)))
		}
		return ValidAction("")
	default:
		return InvalidAction(CodeUnknownAction, fmt.Sprintf("%s unknown action type %d", entityLabel(e), a.Type))
	}
}
