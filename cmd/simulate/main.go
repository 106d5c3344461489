// Command simulate runs a single episode with random legal actions,
// logging each turn and optionally recording the battle to a replay
// database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tacsim/gridcombat/internal/config"
	"github.com/tacsim/gridcombat/internal/engine"
	"github.com/tacsim/gridcombat/internal/logging"
	"github.com/tacsim/gridcombat/internal/replay"
)

func main() {
	var configDir string
	var seed int64
	flag.StringVar(&configDir, "config-dir", ".", "directory containing gridcombat.cfg.json")
	flag.Int64Var(&seed, "seed", 0, "override the configured RNG seed (0 keeps the config value)")
	flag.Parse()

	if err := run(configDir, seed); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string, seedOverride int64) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if seedOverride != 0 {
		cfg.Seed = seedOverride
	}

	log := logging.New(cfg.LogLevel, nil)

	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}
	if cfg.MaxTurns > 0 {
		sc.Config.MaxTurns = cfg.MaxTurns
	}

	log.Info().
		Int64("seed", sc.Config.Seed).
		Int("grid_width", sc.Config.GridWidth).
		Int("grid_height", sc.Config.GridHeight).
		Int("entities", len(sc.Entities)).
		Msg("starting episode")

	opts := []engine.SimOption{
		engine.WithScenario(sc),
		engine.WithPolicySeed(sc.Config.Seed),
	}
	if cfg.Replay.Enabled {
		opts = append(opts, engine.WithFrames())
	}
	ts, err := engine.NewTestSim(opts...)
	if err != nil {
		return err
	}

	maxTurns := sc.Config.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 10000
	}
	for turn := 0; turn < maxTurns; turn++ {
		done, err := ts.StepOnce()
		if err != nil {
			return err
		}
		w := ts.World()
		log.Debug().
			Int("turn", w.Turn).
			Int("blue_alive", len(w.TeamEntities(engine.TeamBlue, true))).
			Int("red_alive", len(w.TeamEntities(engine.TeamRed, true))).
			Msg("turn complete")
		if done {
			break
		}
	}

	w := ts.World()
	winner := "none"
	if w.Winner != nil {
		winner = w.Winner.String()
	}
	log.Info().
		Int("turns", w.Turn).
		Bool("game_over", w.GameOver).
		Str("winner", winner).
		Str("reason", w.GameOverReason).
		Msg("episode finished")
	fmt.Print(ts.Log.Summary(w))

	if cfg.Replay.Enabled {
		store, err := replay.Open(cfg.Replay.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		id, err := store.SaveEpisode(sc, w, ts.Frames())
		if err != nil {
			return err
		}
		log.Info().Uint("episode_id", id).Str("path", cfg.Replay.Path).Msg("episode recorded")
	}
	return nil
}

func loadScenario(cfg *config.RunnerConfig) (*engine.Scenario, error) {
	if cfg.ScenarioPath == "" {
		return engine.MixedScenario(cfg.Seed), nil
	}
	sc, err := engine.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		sc.Config.Seed = cfg.Seed
	}
	return sc, nil
}
