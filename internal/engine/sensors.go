package engine

// SensorSystem recomputes, once per turn, which entities each team can
// observe. It is stateless: every call is a pure recomputation from the
// current world, with no RNG involvement.
type SensorSystem struct{}

// RefreshAll rebuilds both team views after movement has been applied.
//
// Pass structure:
//  1. Reset each view (fired-before history is retained).
//  2. Register every living entity into its own team's friendly set.
//  3. Scan: each living observer with a positive active radar emits
//     observations of the living entities in range, subject to the
//     SAM-off invisibility and decoy deception rules.
//  4. Fold the raw sightings into the team views (seen_by union).
//  5. Every entity self-observes with its true kind, so a unit always
//     knows its own position even with its radar off.
func (SensorSystem) RefreshAll(w *WorldState) {
	for _, team := range Teams {
		w.TeamView(team).Reset()
	}

	alive := w.AliveEntities()
	for _, e := range alive {
		w.TeamView(e.Base().Team).AddFriendlyID(e.Base().ID)
	}

	for _, observer := range alive {
		obs := ComputeEntityObservations(w, observer)
		w.TeamView(observer.Base().Team).AddObservations(obs)
	}

	for _, e := range alive {
		u := e.Base()
		w.TeamView(u.Team).AddObservation(
			NewObservation(u.ID, e.Kind(), u.Team, u.Pos, u.ID))
	}
}

// ComputeEntityObservations returns what a single entity currently sees.
func ComputeEntityObservations(w *WorldState, observer Entity) []Observation {
	ou := observer.Base()
	if !ou.Alive {
		return nil
	}
	activeRadar := observer.ActiveRadarRange()
	if activeRadar <= 0 {
		return nil
	}

	var out []Observation
	for _, target := range w.Entities() {
		tu := target.Base()
		if tu.ID == ou.ID || !tu.Alive {
			continue
		}
		// A SAM with its radar off is unconditionally invisible, even at
		// point-blank range.
		if samRadarOff(target) {
			continue
		}
		if w.Grid.Distance(ou.Pos, tu.Pos) > activeRadar {
			continue
		}
		out = append(out, NewObservation(
			tu.ID, apparentKind(target, ou.Team), tu.Team, tu.Pos, ou.ID))
	}
	return out
}

// CanObserve reports whether observer currently sees target.
func CanObserve(w *WorldState, observer, target Entity) bool {
	ou, tu := observer.Base(), target.Base()
	if !ou.Alive || !tu.Alive || ou.ID == tu.ID {
		return false
	}
	activeRadar := observer.ActiveRadarRange()
	if activeRadar <= 0 {
		return false
	}
	if samRadarOff(target) {
		return false
	}
	return w.Grid.Distance(ou.Pos, tu.Pos) <= activeRadar
}

func samRadarOff(e Entity) bool {
	sam, ok := e.(*SAM)
	return ok && !sam.On
}

// apparentKind is the kind a target presents to an observer team.
// Friendlies see the truth; an enemy decoy reads as an aircraft,
// permanently.
func apparentKind(target Entity, observerTeam Team) Kind {
	if target.Base().Team == observerTeam {
		return target.Kind()
	}
	if target.Kind() == KindDecoy {
		return KindAircraft
	}
	return target.Kind()
}
