package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/tacsim/gridcombat/internal/engine"
)

type runStats struct {
	runIndex int
	seed     int64

	endTurn int
	result  engine.GameResult
	reason  string

	firstShotTurn  int
	firstDeathTurn int

	shots       int
	deaths      int
	blockedMove int
	toggles     int

	blueLost int
	redLost  int
}

func main() {
	var runs int
	var turns int
	var seedBase int64
	var seedStep int64
	var scenarioPath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&turns, "turns", 200, "max turns per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenarioPath, "scenario", "", "scenario JSON file (default: built-in mixed scenario)")
	flag.BoolVar(&verbose, "verbose", false, "print the full battle log per run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(1)
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		os.Exit(1)
	}

	scenarioName := "mixed"
	if scenarioPath != "" {
		scenarioName = scenarioPath
	}
	fmt.Printf("=== Headless Battle Report ===\n")
	fmt.Printf("scenario=%s runs=%d turns=%d seed_base=%d seed_step=%d\n\n", scenarioName, runs, turns, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats, err := runOne(i+1, seed, turns, scenarioPath, verbose)
		if err != nil {
			fmt.Printf("run %d failed: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runOne(runIndex int, seed int64, turns int, scenarioPath string, verbose bool) (runStats, error) {
	sc := engine.MixedScenario(seed)
	if scenarioPath != "" {
		loaded, err := engine.LoadScenario(scenarioPath)
		if err != nil {
			return runStats{}, fmt.Errorf("load scenario: %w", err)
		}
		loaded.Config.Seed = seed
		sc = loaded
	}

	ts, err := engine.NewTestSim(
		engine.WithScenario(sc),
		engine.WithPolicySeed(seed),
		engine.WithVerbose(verbose),
	)
	if err != nil {
		return runStats{}, err
	}
	if _, err := ts.RunTurns(turns); err != nil {
		return runStats{}, err
	}

	stats := collectStats(runIndex, seed, ts)
	if verbose {
		fmt.Print(ts.Log.Format())
		fmt.Print(ts.Log.Summary(ts.World()))
	}
	return stats, nil
}

func collectStats(runIndex int, seed int64, ts *engine.TestSim) runStats {
	stats := runStats{
		runIndex:       runIndex,
		seed:           seed,
		endTurn:        ts.World().Turn,
		reason:         ts.World().GameOverReason,
		result:         worldResult(ts.World()),
		firstShotTurn:  -1,
		firstDeathTurn: -1,
	}

	for _, e := range ts.Log.Entries() {
		switch {
		case e.Category == "combat" && e.Key == "shot":
			stats.shots++
			if stats.firstShotTurn < 0 {
				stats.firstShotTurn = e.Turn
			}
		case e.Category == "death":
			stats.deaths++
			if stats.firstDeathTurn < 0 {
				stats.firstDeathTurn = e.Turn
			}
		case e.Category == "move" && e.Key == "blocked":
			stats.blockedMove++
		case e.Category == "toggle":
			stats.toggles++
		}
	}

	for _, e := range ts.World().Entities() {
		if e.Base().Alive {
			continue
		}
		if e.Base().Team == engine.TeamBlue {
			stats.blueLost++
		} else {
			stats.redLost++
		}
	}
	return stats
}

func worldResult(w *engine.WorldState) engine.GameResult {
	switch {
	case !w.GameOver:
		return engine.ResultNone
	case w.Winner == nil:
		return engine.ResultDraw
	case *w.Winner == engine.TeamBlue:
		return engine.ResultBlueWins
	default:
		return engine.ResultRedWins
	}
}

func printRun(s runStats) {
	fmt.Printf("--- run %d (seed=%d) ---\n", s.runIndex, s.seed)
	fmt.Printf("result: %s after %d turns (%s)\n", s.result, s.endTurn, s.reason)
	fmt.Printf("shots=%d deaths=%d blocked_moves=%d toggles=%d\n", s.shots, s.deaths, s.blockedMove, s.toggles)
	if s.firstShotTurn >= 0 {
		fmt.Printf("first shot: T=%d\n", s.firstShotTurn)
	} else {
		fmt.Println("first shot: never")
	}
	if s.firstDeathTurn >= 0 {
		fmt.Printf("first death: T=%d\n", s.firstDeathTurn)
	}
	fmt.Printf("losses: blue=%d red=%d\n\n", s.blueLost, s.redLost)
}

func printAggregate(all []runStats) {
	fmt.Printf("=== Aggregate over %d runs ===\n", len(all))

	results := map[string]int{}
	reasons := map[string]int{}
	totalShots, totalDeaths, totalTurns := 0, 0, 0
	for _, s := range all {
		results[s.result.String()]++
		reasons[s.reason]++
		totalShots += s.shots
		totalDeaths += s.deaths
		totalTurns += s.endTurn
	}

	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-12s %d\n", k, results[k])
	}

	fmt.Printf("\nmean turns: %.1f  mean shots: %.1f  mean deaths: %.1f\n",
		mean(totalTurns, len(all)), mean(totalShots, len(all)), mean(totalDeaths, len(all)))

	fmt.Println("\nend reasons:")
	rkeys := make([]string, 0, len(reasons))
	for k := range reasons {
		rkeys = append(rkeys, k)
	}
	sort.Strings(rkeys)
	for _, k := range rkeys {
		fmt.Printf("  %-40s %d\n", k, reasons[k])
	}
}

func mean(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
