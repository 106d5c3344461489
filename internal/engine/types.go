package engine

import "fmt"

// Team identifies one of the two sides.
type Team int

const (
	TeamBlue Team = iota
	TeamRed
)

// Teams lists both sides in a stable order.
var Teams = [2]Team{TeamBlue, TeamRed}

func (t Team) String() string {
	switch t {
	case TeamBlue:
		return "BLUE"
	case TeamRed:
		return "RED"
	default:
		return "UNKNOWN"
	}
}

// Opponent returns the other side.
func (t Team) Opponent() Team {
	if t == TeamBlue {
		return TeamRed
	}
	return TeamBlue
}

// MarshalText encodes the team as "BLUE" or "RED".
func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes "BLUE" or "RED".
func (t *Team) UnmarshalText(data []byte) error {
	switch string(data) {
	case "BLUE":
		*t = TeamBlue
	case "RED":
		*t = TeamRed
	default:
		return fmt.Errorf("unknown team %q", string(data))
	}
	return nil
}

// Kind classifies an entity as it appears on a radar picture. Sensing may
// report a deceptive kind (an enemy decoy shows up as an aircraft).
type Kind int

const (
	KindUnknown Kind = iota
	KindAWACS
	KindAircraft
	KindDecoy
	KindSAM
)

func (k Kind) String() string {
	switch k {
	case KindAWACS:
		return "awacs"
	case KindAircraft:
		return "aircraft"
	case KindDecoy:
		return "decoy"
	case KindSAM:
		return "sam"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its lowercase name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a lowercase kind name.
func (k *Kind) UnmarshalText(data []byte) error {
	switch string(data) {
	case "awacs":
		*k = KindAWACS
	case "aircraft":
		*k = KindAircraft
	case "decoy":
		*k = KindDecoy
	case "sam":
		*k = KindSAM
	case "unknown":
		*k = KindUnknown
	default:
		return fmt.Errorf("unknown entity kind %q", string(data))
	}
	return nil
}

// GameResult is the terminal outcome of an episode.
type GameResult int

const (
	ResultNone GameResult = iota // game still in progress
	ResultBlueWins
	ResultRedWins
	ResultDraw
)

func (r GameResult) String() string {
	switch r {
	case ResultBlueWins:
		return "blue_wins"
	case ResultRedWins:
		return "red_wins"
	case ResultDraw:
		return "draw"
	default:
		return "none"
	}
}

// MarshalText encodes the result as its snake_case name.
func (r GameResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a snake_case result name.
func (r *GameResult) UnmarshalText(data []byte) error {
	switch string(data) {
	case "blue_wins":
		*r = ResultBlueWins
	case "red_wins":
		*r = ResultRedWins
	case "draw":
		*r = ResultDraw
	case "none":
		*r = ResultNone
	default:
		return fmt.Errorf("unknown game result %q", string(data))
	}
	return nil
}
