package engine

import "fmt"

// Terminal reason codes.
const (
	ReasonAWACSDestroyed    = "awacs_destroyed"
	ReasonMissileExhaustion = "missile_exhaustion"
	ReasonStalemate         = "stalemate"
	ReasonNoMovement        = "no_movement"
	ReasonMaxTurns          = "max_turns"
)

// VictoryResult is the outcome of a terminal check.
type VictoryResult struct {
	IsGameOver bool       `json:"is_game_over"`
	Result     GameResult `json:"result"`
	Winner     *Team      `json:"winner"`
	Reason     string     `json:"reason,omitempty"`
}

func win(winner Team, reason string) VictoryResult {
	result := ResultBlueWins
	if winner == TeamRed {
		result = ResultRedWins
	}
	w := winner
	return VictoryResult{IsGameOver: true, Result: result, Winner: &w, Reason: reason}
}

func draw(reason string) VictoryResult {
	return VictoryResult{IsGameOver: true, Result: ResultDraw, Reason: reason}
}

// VictoryConditions checks terminal states once per turn, after sensing
// and combat. Thresholds of zero disable the corresponding check.
type VictoryConditions struct {
	MaxStalemateTurns      int
	MaxNoMoveTurns         int
	MaxTurns               int
	CheckMissileExhaustion bool
}

// CheckAll evaluates the terminal conditions in fixed priority order:
// AWACS destruction (instant, overrides everything), missile exhaustion,
// shooting stalemate, movement stalemate, turn cap. Exactly one outcome
// is reported on a terminal turn.
func (v VictoryConditions) CheckAll(w *WorldState) VictoryResult {
	if r, over := checkAWACS(w); over {
		return r
	}
	if v.CheckMissileExhaustion && missilesExhausted(w) {
		return draw(ReasonMissileExhaustion)
	}
	if v.MaxStalemateTurns > 0 && w.TurnsWithoutShooting >= v.MaxStalemateTurns {
		return draw(fmt.Sprintf("%s: %d turns without shooting", ReasonStalemate, w.TurnsWithoutShooting))
	}
	if v.MaxNoMoveTurns > 0 && w.TurnsWithoutMovement >= v.MaxNoMoveTurns {
		return draw(fmt.Sprintf("%s: %d turns without movement", ReasonNoMovement, w.TurnsWithoutMovement))
	}
	if v.MaxTurns > 0 && w.Turn >= v.MaxTurns {
		return draw(fmt.Sprintf("%s: turn cap %d reached", ReasonMaxTurns, v.MaxTurns))
	}
	return VictoryResult{}
}

// checkAWACS reports a loss for any team whose last AWACS is dead. Both
// teams losing their AWACS on the same turn is a draw. Teams fielding no
// AWACS at all cannot lose this way.
func checkAWACS(w *WorldState) (VictoryResult, bool) {
	lost := map[Team]bool{}
	for _, team := range Teams {
		total, alive := 0, 0
		for _, e := range w.TeamEntities(team, false) {
			if e.Kind() == KindAWACS {
				total++
				if e.Base().Alive {
					alive++
				}
			}
		}
		lost[team] = total > 0 && alive == 0
	}

	switch {
	case lost[TeamBlue] && lost[TeamRed]:
		return draw(ReasonAWACSDestroyed), true
	case lost[TeamBlue]:
		return win(TeamRed, ReasonAWACSDestroyed), true
	case lost[TeamRed]:
		return win(TeamBlue, ReasonAWACSDestroyed), true
	default:
		return VictoryResult{}, false
	}
}

// missilesExhausted reports whether no living unit on either side can
// ever shoot again.
func missilesExhausted(w *WorldState) bool {
	for _, e := range w.AliveEntities() {
		if !e.Base().CanShoot {
			continue
		}
		if shooter, ok := e.(Shooter); ok && shooter.Weapon().Missiles > 0 {
			return false
		}
	}
	return true
}
