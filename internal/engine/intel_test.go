package engine

import "testing"

func TestTeamIntel_FogLimited(t *testing.T) {
	w := newTestWorld(t, 30, 10, 1)
	blue := addAircraft(t, w, TeamBlue, Pos{0, 5})
	near := addAircraft(t, w, TeamRed, Pos{4, 5})
	far := addAircraft(t, w, TeamRed, Pos{25, 5})
	refreshSensors(w)

	intel := BuildTeamIntel(w, TeamBlue)
	if len(intel.Friendlies) != 1 || intel.Friendlies[0].Base().ID != blue.ID {
		t.Fatalf("friendlies = %d", len(intel.Friendlies))
	}
	if _, ok := intel.Enemy(near.ID); !ok {
		t.Fatal("near enemy should be visible")
	}
	if _, ok := intel.Enemy(far.ID); ok {
		t.Fatal("far enemy must not leak through the fog")
	}
}

func TestTeamIntel_DecoySpoofed(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{2, 2})
	decoy := addDecoy(t, w, TeamRed, Pos{4, 2})
	refreshSensors(w)

	intel := BuildTeamIntel(w, TeamBlue)
	v, ok := intel.Enemy(decoy.ID)
	if !ok {
		t.Fatal("decoy should be visible")
	}
	if v.Kind != KindAircraft {
		t.Fatalf("decoy leaked its true kind: %s", v.Kind)
	}
}

func TestTeamIntel_IncludesDeadFriendlies(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{2, 2})
	lost := addAircraft(t, w, TeamBlue, Pos{4, 4})
	lost.Alive = false
	refreshSensors(w)

	intel := BuildTeamIntel(w, TeamBlue)
	if len(intel.Friendlies) != 2 {
		t.Fatalf("dead friendlies should stay on the roster, got %d", len(intel.Friendlies))
	}
	if intel.Friendly(lost.ID) == nil {
		t.Fatal("lost aircraft missing from intel")
	}
}

func TestTeamIntel_EnemiesInRange(t *testing.T) {
	w := newTestWorld(t, 30, 10, 1)
	shooter := addAircraft(t, w, TeamBlue, Pos{0, 5})
	addAircraft(t, w, TeamRed, Pos{3, 5})
	edge := addAircraft(t, w, TeamRed, Pos{4, 5})
	outside := addAircraft(t, w, TeamRed, Pos{5, 5})
	refreshSensors(w)

	intel := BuildTeamIntel(w, TeamBlue)
	inRange := intel.EnemiesInRange(shooter, 4)
	if len(inRange) != 2 {
		t.Fatalf("expected 2 enemies in range 4, got %d", len(inRange))
	}
	for _, v := range inRange {
		if v.ID == outside.ID {
			t.Fatal("out-of-range enemy included")
		}
	}
	_ = edge
}

func TestTeamIntel_FiredBeforeFlag(t *testing.T) {
	w := newTestWorld(t, 10, 10, 9)
	blue := addAircraft(t, w, TeamBlue, Pos{2, 2})
	red := addAircraft(t, w, TeamRed, Pos{5, 2})
	// Guaranteed miss: the shot must not kill blue's only observer.
	red.BaseHitProb = 0
	red.MinHitProb = 0
	refreshSensors(w)

	CombatResolver{}.ResolveCombat(w, map[int]Action{red.ID: Shoot(blue.ID)})
	refreshSensors(w)

	intel := BuildTeamIntel(w, TeamBlue)
	v, ok := intel.Enemy(red.ID)
	if !ok {
		t.Fatal("red shooter should be visible")
	}
	if !v.HasFiredBefore {
		t.Fatal("intel should carry the fired-before flag")
	}
}
