package engine

import "testing"

// Shared builders for the engine tests. Weapon stats mirror the mixed
// scenario so boundary values (range 4, base 0.8, min 0.1) are exercised
// everywhere.

func testWeapon() WeaponStats {
	return WeaponStats{Missiles: 4, MissileMaxRange: 4, BaseHitProb: 0.8, MinHitProb: 0.1}
}

func newTestWorld(t *testing.T, width, height int, seed int64) *WorldState {
	t.Helper()
	w, err := NewWorldState(width, height, seed)
	if err != nil {
		t.Fatalf("NewWorldState: %v", err)
	}
	return w
}

func addAircraft(t *testing.T, w *WorldState, team Team, pos Pos) *Aircraft {
	t.Helper()
	a, err := NewAircraft(team, pos, 5, testWeapon())
	if err != nil {
		t.Fatalf("NewAircraft: %v", err)
	}
	if err := w.AddEntity(a); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	return a
}

func addAWACS(t *testing.T, w *WorldState, team Team, pos Pos) *AWACS {
	t.Helper()
	a, err := NewAWACS(team, pos, 9)
	if err != nil {
		t.Fatalf("NewAWACS: %v", err)
	}
	if err := w.AddEntity(a); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	return a
}

func addDecoy(t *testing.T, w *WorldState, team Team, pos Pos) *Decoy {
	t.Helper()
	d, err := NewDecoy(team, pos)
	if err != nil {
		t.Fatalf("NewDecoy: %v", err)
	}
	if err := w.AddEntity(d); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	return d
}

func addSAM(t *testing.T, w *WorldState, team Team, pos Pos, on bool) *SAM {
	t.Helper()
	s, err := NewSAM(team, pos, 8, WeaponStats{Missiles: 6, MissileMaxRange: 6, BaseHitProb: 0.8, MinHitProb: 0.1}, 5, on)
	if err != nil {
		t.Fatalf("NewSAM: %v", err)
	}
	if err := w.AddEntity(s); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	return s
}

func refreshSensors(w *WorldState) {
	SensorSystem{}.RefreshAll(w)
}
