package engine

import (
	"encoding/json"
	"fmt"
)

// ActionType tags the variant of an Action.
type ActionType int

const (
	ActionWait ActionType = iota
	ActionMove
	ActionShoot
	ActionToggle
)

func (t ActionType) String() string {
	switch t {
	case ActionWait:
		return "wait"
	case ActionMove:
		return "move"
	case ActionShoot:
		return "shoot"
	case ActionToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// MoveDir is one of the four cardinal movement directions.
type MoveDir int

const (
	DirUp MoveDir = iota
	DirDown
	DirLeft
	DirRight
)

// MoveDirs lists all directions in a stable order.
var MoveDirs = [4]MoveDir{DirUp, DirDown, DirLeft, DirRight}

func (d MoveDir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) cell offset for the direction.
// Up increases y, down decreases it.
func (d MoveDir) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func parseMoveDir(s string) (MoveDir, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	default:
		return DirUp, fmt.Errorf("unknown move direction %q", s)
	}
}

// Action is one intended order for a single entity this turn.
// Exactly one variant is meaningful per action; constructor helpers below
// build well-formed values.
type Action struct {
	Type     ActionType
	Dir      MoveDir // ActionMove only
	TargetID int     // ActionShoot only
	On       bool    // ActionToggle only
}

// Wait builds a WAIT action.
func Wait() Action {
	return Action{Type: ActionWait}
}

// Move builds a MOVE action in the given direction.
func Move(dir MoveDir) Action {
	return Action{Type: ActionMove, Dir: dir}
}

// Shoot builds a SHOOT action against the given entity id.
func Shoot(targetID int) Action {
	return Action{Type: ActionShoot, TargetID: targetID}
}

// Toggle builds a TOGGLE action setting a SAM radar to the given state.
func Toggle(on bool) Action {
	return Action{Type: ActionToggle, On: on}
}

func (a Action) String() string {
	switch a.Type {
	case ActionMove:
		return fmt.Sprintf("move(%s)", a.Dir)
	case ActionShoot:
		return fmt.Sprintf("shoot(#%d)", a.TargetID)
	case ActionToggle:
		return fmt.Sprintf("toggle(%t)", a.On)
	default:
		return "wait"
	}
}

type actionRecord struct {
	Type     string `json:"type"`
	Dir      string `json:"dir,omitempty"`
	TargetID *int   `json:"target_id,omitempty"`
	On       *bool  `json:"on,omitempty"`
}

// MarshalJSON emits only the parameters relevant to the action variant.
func (a Action) MarshalJSON() ([]byte, error) {
	rec := actionRecord{Type: a.Type.String()}
	switch a.Type {
	case ActionMove:
		rec.Dir = a.Dir.String()
	case ActionShoot:
		target := a.TargetID
		rec.TargetID = &target
	case ActionToggle:
		on := a.On
		rec.On = &on
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes an action, rejecting unknown types and malformed
// parameters.
func (a *Action) UnmarshalJSON(data []byte) error {
	var rec actionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	switch rec.Type {
	case "wait":
		*a = Wait()
	case "move":
		dir, err := parseMoveDir(rec.Dir)
		if err != nil {
			return err
		}
		*a = Move(dir)
	case "shoot":
		if rec.TargetID == nil {
			return fmt.Errorf("shoot action missing target_id")
		}
		*a = Shoot(*rec.TargetID)
	case "toggle":
		if rec.On == nil {
			return fmt.Errorf("toggle action missing on flag")
		}
		*a = Toggle(*rec.On)
	default:
		return fmt.Errorf("unknown action type %q", rec.Type)
	}
	return nil
}

// ActionValidation is the structured outcome of validating an action.
// Invalid actions are reported as values, never as errors: the action
// simply takes no effect that turn.
type ActionValidation struct {
	Valid   bool   `json:"valid"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validation failure codes.
const (
	CodeEntityDead       = "ENTITY_DEAD"
	CodeNoCapability     = "NO_CAPABILITY"
	CodeInvalidDirection = "INVALID_DIRECTION"
	CodeNoMissiles       = "NO_MISSILES"
	CodeInvalidTarget    = "INVALID_TARGET"
	CodeNotSAM           = "NOT_SAM"
	CodeOnCooldown       = "ON_COOLDOWN"
	CodeUnknownAction    = "UNKNOWN_ACTION"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeNotVisible       = "NOT_VISIBLE"
	CodeOutOfBounds      = "OUT_OF_BOUNDS"
	CodeOccupied         = "OCCUPIED"
)

// ValidAction builds a passing validation result.
func ValidAction(message string) ActionValidation {
	return ActionValidation{Valid: true, Message: message}
}

// InvalidAction builds a failing validation result with a machine-readable
// code and a human-readable message.
func InvalidAction(code, message string) ActionValidation {
	return ActionValidation{Valid: false, Code: code, Message: message}
}
