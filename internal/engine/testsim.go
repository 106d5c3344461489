package engine

import (
	"fmt"
	"math/rand"
)

// TestSim is a headless episode harness used by tests and the report
// tool. It wraps a CombatEnv, issues random legal actions for entities
// without a scripted policy, and records everything to a BattleLog.
type TestSim struct {
	Env *CombatEnv
	Log *BattleLog

	world    *WorldState
	policies map[int]Policy
	rng      *rand.Rand
	frames   []*Frame
	record   bool
}

// Policy chooses an action for one entity each turn. Returning false
// means "no order"; the entity holds position.
type Policy func(w *WorldState, e Entity) (Action, bool)

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // scenario, seed, verbose — applied first
	simOptPolicy                      // attach policies — applied after reset
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim) error
}

// WithScenario replaces the default mixed scenario.
func WithScenario(sc *Scenario) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) error {
		env, err := NewCombatEnv(sc)
		if err != nil {
			return err
		}
		ts.Env = env
		return nil
	}}
}

// WithPolicySeed seeds the random-action policy RNG, independent of the
// world seed.
func WithPolicySeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) error {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
		return nil
	}}
}

// WithVerbose enables per-turn verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) error {
		ts.Log = NewBattleLog(v)
		return nil
	}}
}

// WithFrames records a Frame snapshot after every step.
func WithFrames() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) error {
		ts.record = true
		return nil
	}}
}

// WithPolicy attaches a scripted policy to one entity. Entities without
// a policy act randomly from their legal action set.
func WithPolicy(entityID int, p Policy) SimOption {
	return SimOption{simOptPolicy, func(ts *TestSim) error {
		ts.policies[entityID] = p
		return nil
	}}
}

// NewTestSim constructs a harness from the given options in two ordered
// passes (infrastructure, then policies) and resets the episode.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		Log:      NewBattleLog(false),
		policies: map[int]Policy{},
		rng:      rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			if err := o.fn(ts); err != nil {
				return nil, err
			}
		}
	}
	if ts.Env == nil {
		env, err := NewCombatEnv(MixedScenario(42))
		if err != nil {
			return nil, err
		}
		ts.Env = env
	}
	w, err := ts.Env.Reset(nil)
	if err != nil {
		return nil, err
	}
	ts.world = w
	for _, o := range opts {
		if o.kind == simOptPolicy {
			if err := o.fn(ts); err != nil {
				return nil, err
			}
		}
	}
	if ts.record {
		f, err := NewFrame(w, nil, nil)
		if err != nil {
			return nil, err
		}
		ts.frames = append(ts.frames, f)
	}
	return ts, nil
}

// World returns the live world state.
func (ts *TestSim) World() *WorldState { return ts.world }

// Frames returns recorded snapshots, empty unless WithFrames was set.
func (ts *TestSim) Frames() []*Frame { return ts.frames }

// ChooseActions builds the turn's action map: scripted policies first,
// random legal actions for everyone else.
func (ts *TestSim) ChooseActions() map[int]Action {
	actions := map[int]Action{}
	for _, e := range ts.world.AliveEntities() {
		id := e.Base().ID
		if p, ok := ts.policies[id]; ok {
			if a, issued := p(ts.world, e); issued {
				actions[id] = a
			}
			continue
		}
		allowed := e.AllowedActions(ts.world)
		if len(allowed) == 0 {
			continue
		}
		actions[id] = allowed[ts.rng.Intn(len(allowed))]
	}
	return actions
}

// StepOnce advances the episode one turn with freshly chosen actions.
func (ts *TestSim) StepOnce() (bool, error) {
	actions := ts.ChooseActions()
	w, _, done, info, err := ts.Env.Step(actions)
	if err != nil {
		return false, err
	}
	ts.world = w
	ts.Log.RecordStep(w, info)
	if ts.record {
		f, err := NewFrame(w, actions, info)
		if err != nil {
			return false, err
		}
		ts.frames = append(ts.frames, f)
	}
	return done, nil
}

// RunTurns advances up to n turns, stopping early on game over.
// Returns the turn the episode ended on, or -1 if it is still running.
func (ts *TestSim) RunTurns(n int) (int, error) {
	for i := 0; i < n; i++ {
		done, err := ts.StepOnce()
		if err != nil {
			return -1, err
		}
		if done {
			return ts.world.Turn, nil
		}
	}
	return -1, nil
}

// RunUntil advances up to maxTurns, stopping early when predicate is
// satisfied. Returns the turn it triggered on, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTurns int) (int, error) {
	for i := 0; i < maxTurns; i++ {
		done, err := ts.StepOnce()
		if err != nil {
			return -1, err
		}
		if predicate(ts) {
			return ts.world.Turn, nil
		}
		if done {
			return -1, nil
		}
	}
	return -1, nil
}

// EntitySnapshot is a lightweight copy of one entity's state at a turn.
type EntitySnapshot struct {
	ID       int
	Label    string
	Team     Team
	Kind     Kind
	Pos      Pos
	Alive    bool
	Missiles int
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Turn     int
	Entities []EntitySnapshot
}

// Snapshot returns the current state of all entities.
func (ts *TestSim) Snapshot() SimSnapshot {
	snap := SimSnapshot{Turn: ts.world.Turn}
	for _, e := range ts.world.Entities() {
		u := e.Base()
		es := EntitySnapshot{
			ID:    u.ID,
			Label: entityLabel(e),
			Team:  u.Team,
			Kind:  e.Kind(),
			Pos:   u.Pos,
			Alive: u.Alive,
		}
		if s, ok := e.(Shooter); ok {
			es.Missiles = s.Weapon().Missiles
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}

// FindByName returns the live entity with the given scenario name.
func (ts *TestSim) FindByName(name string) (Entity, error) {
	for _, e := range ts.world.Entities() {
		if e.Base().Name == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no entity named %q", name)
}
