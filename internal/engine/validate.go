package engine

import "fmt"

// ValidateActionInWorld runs the entity-level check followed by the
// world-dependent checks the resolvers share. For SHOOT this covers
// target existence, liveness, hostility, team visibility, and missile
// range. MOVE occupancy is deliberately excluded: it can only be judged
// during simultaneous resolution.
func ValidateActionInWorld(w *WorldState, e Entity, a Action) ActionValidation {
	if v := e.Validate(w, a); !v.Valid {
		return v
	}

	switch a.Type {
	case ActionShoot:
		return validateShootInWorld(w, e, a)
	case ActionMove:
		dx, dy := a.Dir.Delta()
		dest := Pos{X: e.Base().Pos.X + dx, Y: e.Base().Pos.Y + dy}
		if !w.Grid.InBounds(dest) {
			return InvalidAction(CodeOutOfBounds,
				fmt.Sprintf("%s cannot move %s: %s is out of bounds", entityLabel(e), a.Dir, dest))
		}
		return ValidAction("")
	default:
		return ValidAction("")
	}
}

func validateShootInWorld(w *WorldState, e Entity, a Action) ActionValidation {
	u := e.Base()
	target := w.Entity(a.TargetID)
	if target == nil || !target.Base().Alive {
		return InvalidAction(CodeInvalidTarget,
			fmt.Sprintf("%s target #%d invalid or dead", entityLabel(e), a.TargetID))
	}
	if target.Base().Team == u.Team {
		return InvalidAction(CodeInvalidTarget,
			fmt.Sprintf("%s cannot shoot friendly %s", entityLabel(e), entityLabel(target)))
	}
	if _, visible := w.TeamView(u.Team).Observation(a.TargetID); !visible {
		return InvalidAction(CodeNotVisible,
			fmt.Sprintf("%s cannot see %s", entityLabel(e), entityLabel(target)))
	}
	weapon := e.(Shooter).Weapon()
	distance := w.Grid.Distance(u.Pos, target.Base().Pos)
	if distance > weapon.MissileMaxRange {
		return InvalidAction(CodeOutOfRange,
			fmt.Sprintf("%s target %s out of range (d=%.1f, max=%.1f)",
				entityLabel(e), entityLabel(target), distance, weapon.MissileMaxRange))
	}
	return ValidAction("")
}
