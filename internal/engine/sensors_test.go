package engine

import "testing"

func TestSensors_RadarRangeBoundary(t *testing.T) {
	w := newTestWorld(t, 30, 10, 1)
	blue := addAircraft(t, w, TeamBlue, Pos{0, 5}) // radar 5
	atRange := addAircraft(t, w, TeamRed, Pos{5, 5})
	beyond := addAircraft(t, w, TeamRed, Pos{6, 5})
	refreshSensors(w)

	view := w.TeamView(TeamBlue)
	if _, ok := view.Observation(atRange.ID); !ok {
		t.Fatal("target exactly at radar range should be observed")
	}
	if _, ok := view.Observation(beyond.ID); ok {
		t.Fatal("target beyond radar range should not be observed")
	}
	_ = blue
}

func TestSensors_SAMRadarOff_Invisible(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{2, 2})
	sam := addSAM(t, w, TeamRed, Pos{3, 2}, false)
	refreshSensors(w)

	// Point-blank, but dark: invisible to the enemy.
	if _, ok := w.TeamView(TeamBlue).Observation(sam.ID); ok {
		t.Fatal("dark SAM should be invisible at any range")
	}

	sam.On = true
	refreshSensors(w)
	obs, ok := w.TeamView(TeamBlue).Observation(sam.ID)
	if !ok {
		t.Fatal("radiating SAM should be visible")
	}
	if obs.Kind != KindSAM {
		t.Fatalf("SAM should read as its true kind, got %s", obs.Kind)
	}
}

func TestSensors_DarkSAM_CannotSee(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	sam := addSAM(t, w, TeamRed, Pos{3, 2}, false)
	craft := addAircraft(t, w, TeamBlue, Pos{2, 2})
	refreshSensors(w)

	// The dark SAM contributes no observations; the craft shows up in the
	// red view only if some other red sensor sees it.
	if _, ok := w.TeamView(TeamRed).Observation(craft.ID); ok {
		t.Fatal("dark SAM should not observe anything")
	}
	_ = sam
}

func TestSensors_EnemyDecoyReadsAsAircraft(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{2, 2})
	decoy := addDecoy(t, w, TeamRed, Pos{4, 2})
	addAWACS(t, w, TeamRed, Pos{8, 2})
	refreshSensors(w)

	obs, ok := w.TeamView(TeamBlue).Observation(decoy.ID)
	if !ok {
		t.Fatal("decoy in radar range should be observed")
	}
	if obs.Kind != KindAircraft {
		t.Fatalf("enemy decoy must read as aircraft, got %s", obs.Kind)
	}

	// The decoy's own team sees the truth.
	own, ok := w.TeamView(TeamRed).Observation(decoy.ID)
	if !ok {
		t.Fatal("friendly sensors should cover the decoy")
	}
	if own.Kind != KindDecoy {
		t.Fatalf("friendly view must keep the true kind, got %s", own.Kind)
	}
}

func TestSensors_SeenByUnion(t *testing.T) {
	w := newTestWorld(t, 30, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{3, 5})
	b := addAircraft(t, w, TeamBlue, Pos{7, 5})
	target := addAircraft(t, w, TeamRed, Pos{5, 5}) // within 5 of both
	refreshSensors(w)

	obs, ok := w.TeamView(TeamBlue).Observation(target.ID)
	if !ok {
		t.Fatal("target should be observed")
	}
	seen := obs.SeenByIDs()
	if len(seen) != 2 || seen[0] != a.ID || seen[1] != b.ID {
		t.Fatalf("seen_by should union both observers sorted, got %v", seen)
	}
}

func TestSensors_SelfObservationAlwaysPresent(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	sam := addSAM(t, w, TeamBlue, Pos{2, 2}, false) // dark, alone
	refreshSensors(w)

	obs, ok := w.TeamView(TeamBlue).Observation(sam.ID)
	if !ok {
		t.Fatal("a unit always knows its own position")
	}
	if obs.Kind != KindSAM || obs.Position != (Pos{2, 2}) {
		t.Fatalf("self-observation wrong: %+v", obs)
	}
}

func TestSensors_DeadEntitiesDropOut(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{2, 2})
	target := addAircraft(t, w, TeamRed, Pos{4, 2})
	refreshSensors(w)
	if _, ok := w.TeamView(TeamBlue).Observation(target.ID); !ok {
		t.Fatal("living target should be observed")
	}

	target.Alive = false
	refreshSensors(w)
	if _, ok := w.TeamView(TeamBlue).Observation(target.ID); ok {
		t.Fatal("dead target should drop out of the view on refresh")
	}
	if len(w.TeamView(TeamRed).FriendlyIDs()) != 0 {
		t.Fatal("dead entity should leave the friendly set")
	}
}

func TestSensors_FiredBeforeSurvivesRefresh(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{2, 2})
	shooter := addAircraft(t, w, TeamRed, Pos{4, 2})
	refreshSensors(w)

	w.TeamView(TeamBlue).RecordEnemyFired(shooter.ID)
	refreshSensors(w)

	obs, ok := w.TeamView(TeamBlue).Observation(shooter.ID)
	if !ok {
		t.Fatal("shooter should still be observed")
	}
	if !obs.HasFiredBefore {
		t.Fatal("fired-before must survive sensor refreshes")
	}
}
