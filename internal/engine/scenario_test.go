package engine

import (
	"path/filepath"
	"testing"
)

func TestMixedScenario_OrderOfBattle(t *testing.T) {
	sc := MixedScenario(42)
	if sc.Config.GridWidth != 20 || sc.Config.GridHeight != 13 {
		t.Fatalf("grid = %dx%d", sc.Config.GridWidth, sc.Config.GridHeight)
	}
	if sc.Config.Seed != 42 {
		t.Fatalf("seed = %d", sc.Config.Seed)
	}
	counts := map[Kind]int{}
	for _, e := range sc.Entities {
		counts[e.Kind()]++
	}
	if counts[KindAWACS] != 2 || counts[KindAircraft] != 4 || counts[KindSAM] != 2 || counts[KindDecoy] != 1 {
		t.Fatalf("order of battle wrong: %v", counts)
	}

	env, err := NewCombatEnv(sc)
	if err != nil {
		t.Fatalf("NewCombatEnv: %v", err)
	}
	if _, err := env.Reset(nil); err != nil {
		t.Fatalf("mixed scenario should reset cleanly: %v", err)
	}
}

func TestMixedScenario_RedSAMStartsDark(t *testing.T) {
	sc := MixedScenario(1)
	var blueOn, redOn *bool
	for _, e := range sc.Entities {
		if s, ok := e.(*SAM); ok {
			on := s.On
			if s.Team == TeamBlue {
				blueOn = &on
			} else {
				redOn = &on
			}
		}
	}
	if blueOn == nil || redOn == nil {
		t.Fatal("both sides should field a SAM")
	}
	if !*blueOn || *redOn {
		t.Fatalf("blue SAM on=%t red SAM on=%t, want true/false", *blueOn, *redOn)
	}
}

func TestScenario_SaveLoad_RoundTrip(t *testing.T) {
	sc := MixedScenario(7)
	path := filepath.Join(t.TempDir(), "mixed.json")
	if err := sc.SaveJSON(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Config != sc.Config {
		t.Fatalf("config changed: %+v vs %+v", back.Config, sc.Config)
	}
	if len(back.Entities) != len(sc.Entities) {
		t.Fatalf("entity count changed: %d vs %d", len(back.Entities), len(sc.Entities))
	}
	for i := range sc.Entities {
		if back.Entities[i].TypeTag() != sc.Entities[i].TypeTag() {
			t.Fatalf("entity %d type changed", i)
		}
		if back.Entities[i].Base().Pos != sc.Entities[i].Base().Pos {
			t.Fatalf("entity %d position changed", i)
		}
	}
}

func TestScenario_Clone_Independent(t *testing.T) {
	sc := MixedScenario(7)
	cp, err := sc.Clone()
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	sc.Entities[0].Base().Pos = Pos{19, 0}
	if cp.Entities[0].Base().Pos == (Pos{19, 0}) {
		t.Fatal("clone shares entities with the original")
	}
}

func TestNewScenario_RejectsBadConfig(t *testing.T) {
	if _, err := NewScenario(ScenarioConfig{GridWidth: 0, GridHeight: 10}); err == nil {
		t.Fatal("zero width should be rejected")
	}
	if _, err := NewScenario(ScenarioConfig{GridWidth: 10, GridHeight: 10, MaxTurns: -1}); err == nil {
		t.Fatal("negative turn cap should be rejected")
	}
}
