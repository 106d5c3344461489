package engine

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// StepInfo carries the full resolution detail of one simulation step so
// callers can reconstruct exactly what happened without diffing world
// snapshots.
type StepInfo struct {
	Movement ActionResolutionResult `json:"movement"`
	Combat   CombatResolutionResult `json:"combat"`
	Victory  VictoryResult          `json:"victory"`
}

// Rewards are the per-team terminal payoffs of a step: +1/-1 on a win,
// zero for both teams otherwise (including draws).
type Rewards map[Team]float64

// CombatEnv drives the simulation with a gym-like Reset/Step surface.
// Each step runs the fixed pipeline: turn increment, housekeeping,
// movement, sensor refresh, combat, victory checks. Sensors are not
// re-run after combat, so a team's view on a terminal turn reflects
// pre-combat positions.
type CombatEnv struct {
	scenario *Scenario
	world    *WorldState
	victory  VictoryConditions

	movement MovementResolver
	combat   CombatResolver
	sensors  SensorSystem

	log zerolog.Logger
}

// EnvOption configures a CombatEnv.
type EnvOption func(*CombatEnv)

// WithLogger attaches a structured logger; without it the env is silent.
func WithLogger(log zerolog.Logger) EnvOption {
	return func(e *CombatEnv) { e.log = log }
}

// NewCombatEnv builds an environment for the given scenario. The
// scenario is cloned up front so later mutation by the caller cannot
// leak into episodes.
func NewCombatEnv(sc *Scenario, opts ...EnvOption) (*CombatEnv, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	cloned, err := sc.Clone()
	if err != nil {
		return nil, err
	}
	env := &CombatEnv{
		scenario: cloned,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(env)
	}
	return env, nil
}

// World returns the live world state, or nil before the first Reset.
func (e *CombatEnv) World() *WorldState { return e.world }

// Scenario returns the environment's cloned scenario.
func (e *CombatEnv) Scenario() *Scenario { return e.scenario }

// Reset starts a fresh episode from the scenario, or resumes from the
// supplied world snapshot. A resumed world must match the scenario's
// grid dimensions. Returns the initial world with team views populated.
func (e *CombatEnv) Reset(resume *WorldState) (*WorldState, error) {
	cfg := e.scenario.Config
	if resume != nil {
		if resume.Grid.Width != cfg.GridWidth || resume.Grid.Height != cfg.GridHeight {
			return nil, fmt.Errorf("resumed world grid %dx%d does not match scenario grid %dx%d",
				resume.Grid.Width, resume.Grid.Height, cfg.GridWidth, cfg.GridHeight)
		}
		w, err := resume.Clone()
		if err != nil {
			return nil, err
		}
		e.world = w
	} else {
		w, err := NewWorldState(cfg.GridWidth, cfg.GridHeight, cfg.Seed)
		if err != nil {
			return nil, err
		}
		for _, src := range e.scenario.Entities {
			if err := w.AddEntity(src.Clone()); err != nil {
				return nil, err
			}
		}
		e.world = w
	}

	e.victory = VictoryConditions{
		MaxStalemateTurns:      cfg.MaxStalemateTurns,
		MaxNoMoveTurns:         cfg.MaxNoMoveTurns,
		MaxTurns:               cfg.MaxTurns,
		CheckMissileExhaustion: cfg.CheckMissileExhaustion,
	}

	e.sensors.RefreshAll(e.world)
	e.log.Info().
		Int64("seed", e.world.Seed()).
		Int("entities", len(e.world.Entities())).
		Msg("episode reset")
	return e.world, nil
}

// Step advances the world one turn with the given per-entity actions.
// Entities absent from the map hold position. Returns the updated world,
// terminal rewards, a done flag, and the step's resolution detail.
// Calling Step before Reset, or after the episode has ended, is a usage
// error.
func (e *CombatEnv) Step(actions map[int]Action) (*WorldState, Rewards, bool, *StepInfo, error) {
	if e.world == nil {
		return nil, nil, false, nil, fmt.Errorf("step called before reset")
	}
	w := e.world
	if w.GameOver {
		return nil, nil, false, nil, fmt.Errorf("step called on finished episode (turn %d)", w.Turn)
	}

	w.Turn++
	e.housekeeping(w)

	info := &StepInfo{}
	info.Movement = e.movement.ResolveActions(w, actions)
	e.sensors.RefreshAll(w)
	info.Combat = e.combat.ResolveCombat(w, actions)
	info.Victory = e.victory.CheckAll(w)

	rewards := Rewards{TeamBlue: 0, TeamRed: 0}
	done := info.Victory.IsGameOver
	if done {
		w.SetOutcome(info.Victory.Winner, info.Victory.Reason)
		if winner := info.Victory.Winner; winner != nil {
			rewards[*winner] = 1
			rewards[winner.Opponent()] = -1
		}
		e.log.Info().
			Int("turn", w.Turn).
			Str("result", info.Victory.Result.String()).
			Str("reason", info.Victory.Reason).
			Msg("episode over")
	}

	e.logStep(w, info)
	return w, rewards, done, info, nil
}

// housekeeping runs pre-action upkeep: SAM launcher cooldowns tick down
// at the top of the turn, so a site that fired with a 1-step cooldown is
// ready again the following turn.
func (e *CombatEnv) housekeeping(w *WorldState) {
	for _, ent := range w.AliveEntities() {
		if s, ok := ent.(*SAM); ok {
			s.TickCooldown()
		}
	}
}

func (e *CombatEnv) logStep(w *WorldState, info *StepInfo) {
	ev := e.log.Debug().
		Int("turn", w.Turn).
		Bool("movement", info.Movement.MovementOccurred).
		Bool("combat", info.Combat.CombatOccurred)
	if len(info.Combat.KilledIDs) > 0 {
		ev = ev.Ints("killed", info.Combat.KilledIDs)
	}
	ev.Msg("step resolved")
}

// MarshalJSON keeps StepInfo snapshots stable for replay storage.
func (i *StepInfo) MarshalJSON() ([]byte, error) {
	type alias StepInfo
	return json.Marshal((*alias)(i))
}

// UnmarshalJSON restores a StepInfo from a replay snapshot.
func (i *StepInfo) UnmarshalJSON(data []byte) error {
	type alias StepInfo
	return json.Unmarshal(data, (*alias)(i))
}
