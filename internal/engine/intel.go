package engine

// VisibleEnemy is a fog-limited snapshot of a currently observed enemy.
// It never exposes the enemy's weapon state; decide from what sensors
// actually reported.
type VisibleEnemy struct {
	ID             int   `json:"id"`
	Team           Team  `json:"team"`
	Position       Pos   `json:"position"`
	Kind           Kind  `json:"kind"`
	HasFiredBefore bool  `json:"has_fired_before"`
	SeenBy         []int `json:"seen_by"`
}

// TeamIntel is the safe per-team decision surface: full entities for
// your own side, observation snapshots for the enemy. It is a copy of
// view state at build time and does not track later world changes.
type TeamIntel struct {
	Grid           Grid
	Team           Team
	Friendlies     []Entity
	VisibleEnemies []VisibleEnemy
}

// BuildTeamIntel snapshots the given team's knowledge from the world's
// current team view. Friendlies include dead entities so agents can
// account for losses.
func BuildTeamIntel(w *WorldState, team Team) TeamIntel {
	view := w.TeamView(team)

	var enemies []VisibleEnemy
	for _, obs := range view.EnemyObservations() {
		enemies = append(enemies, VisibleEnemy{
			ID:             obs.EntityID,
			Team:           obs.Team,
			Position:       obs.Position,
			Kind:           obs.Kind,
			HasFiredBefore: obs.HasFiredBefore,
			SeenBy:         obs.SeenByIDs(),
		})
	}

	return TeamIntel{
		Grid:           w.Grid,
		Team:           team,
		Friendlies:     w.TeamEntities(team, false),
		VisibleEnemies: enemies,
	}
}

// Friendly returns the friendly entity with the given id, or nil.
func (ti TeamIntel) Friendly(id int) Entity {
	for _, e := range ti.Friendlies {
		if e.Base().ID == id {
			return e
		}
	}
	return nil
}

// Enemy returns the visible enemy snapshot with the given id.
func (ti TeamIntel) Enemy(id int) (VisibleEnemy, bool) {
	for _, v := range ti.VisibleEnemies {
		if v.ID == id {
			return v, true
		}
	}
	return VisibleEnemy{}, false
}

// EnemiesInRange returns visible enemies within maxRange of a friendly
// entity, in observation order.
func (ti TeamIntel) EnemiesInRange(e Entity, maxRange float64) []VisibleEnemy {
	var out []VisibleEnemy
	for _, v := range ti.VisibleEnemies {
		if ti.Grid.Distance(e.Base().Pos, v.Position) <= maxRange {
			out = append(out, v)
		}
	}
	return out
}
