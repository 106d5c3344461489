package engine

import (
	"strings"
	"testing"
)

func defaultVictory() VictoryConditions {
	return VictoryConditions{
		MaxStalemateTurns:      3,
		MaxNoMoveTurns:         5,
		MaxTurns:               50,
		CheckMissileExhaustion: true,
	}
}

func TestVictory_AWACSDestroyed_OpponentWins(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	blue := addAWACS(t, w, TeamBlue, Pos{1, 1})
	addAWACS(t, w, TeamRed, Pos{8, 8})
	addAircraft(t, w, TeamBlue, Pos{3, 3})
	blue.Alive = false

	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || res.Result != ResultRedWins {
		t.Fatalf("expected red win, got %+v", res)
	}
	if !strings.Contains(res.Reason, ReasonAWACSDestroyed) {
		t.Fatalf("reason = %q", res.Reason)
	}
}

func TestVictory_BothAWACSDead_Draw(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	b := addAWACS(t, w, TeamBlue, Pos{1, 1})
	r := addAWACS(t, w, TeamRed, Pos{8, 8})
	b.Alive = false
	r.Alive = false

	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || res.Result != ResultDraw || res.Winner != nil {
		t.Fatalf("expected draw, got %+v", res)
	}
}

func TestVictory_NoAWACSFielded_CannotLoseThatWay(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{1, 1})
	addAircraft(t, w, TeamRed, Pos{8, 8})

	res := defaultVictory().CheckAll(w)
	if res.IsGameOver {
		t.Fatalf("no AWACS fielded should not end the game, got %+v", res)
	}
}

func TestVictory_AWACSOverridesStalemate(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	blue := addAWACS(t, w, TeamBlue, Pos{1, 1})
	addAWACS(t, w, TeamRed, Pos{8, 8})
	blue.Alive = false
	w.TurnsWithoutShooting = 99

	res := defaultVictory().CheckAll(w)
	if res.Result != ResultRedWins || !strings.Contains(res.Reason, ReasonAWACSDestroyed) {
		t.Fatalf("AWACS destruction must take priority, got %+v", res)
	}
}

func TestVictory_MissileExhaustion_Draw(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	b := addAircraft(t, w, TeamBlue, Pos{1, 1})
	r := addAircraft(t, w, TeamRed, Pos{8, 8})
	b.WeaponStats.Missiles = 0
	r.WeaponStats.Missiles = 0

	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || res.Result != ResultDraw {
		t.Fatalf("expected exhaustion draw, got %+v", res)
	}
	if !strings.Contains(res.Reason, ReasonMissileExhaustion) {
		t.Fatalf("reason = %q", res.Reason)
	}
}

func TestVictory_DeadShootersDoNotCountAsArmed(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	b := addAircraft(t, w, TeamBlue, Pos{1, 1})
	armedCorpse := addAircraft(t, w, TeamRed, Pos{8, 8})
	armedCorpse.Alive = false
	b.WeaponStats.Missiles = 0

	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || res.Result != ResultDraw {
		t.Fatalf("dead stockpiles should not prevent exhaustion, got %+v", res)
	}
}

func TestVictory_ExhaustionDisabled(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	b := addAircraft(t, w, TeamBlue, Pos{1, 1})
	b.WeaponStats.Missiles = 0

	v := defaultVictory()
	v.CheckMissileExhaustion = false
	if res := v.CheckAll(w); res.IsGameOver {
		t.Fatalf("exhaustion disabled but game ended: %+v", res)
	}
}

func TestVictory_ShootingStalemate(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{1, 1})
	addAircraft(t, w, TeamRed, Pos{8, 8})

	w.TurnsWithoutShooting = 2
	if res := defaultVictory().CheckAll(w); res.IsGameOver {
		t.Fatalf("below threshold, got %+v", res)
	}
	w.TurnsWithoutShooting = 3
	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || res.Result != ResultDraw || !strings.Contains(res.Reason, ReasonStalemate) {
		t.Fatalf("expected stalemate draw at threshold, got %+v", res)
	}
}

func TestVictory_MovementStalemate(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{1, 1})
	addAircraft(t, w, TeamRed, Pos{8, 8})
	w.TurnsWithoutMovement = 5

	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || !strings.Contains(res.Reason, ReasonNoMovement) {
		t.Fatalf("expected no-movement draw, got %+v", res)
	}
}

func TestVictory_TurnCap(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	addAircraft(t, w, TeamBlue, Pos{1, 1})
	addAircraft(t, w, TeamRed, Pos{8, 8})
	w.Turn = 50

	res := defaultVictory().CheckAll(w)
	if !res.IsGameOver || !strings.Contains(res.Reason, ReasonMaxTurns) {
		t.Fatalf("expected turn-cap draw, got %+v", res)
	}

	v := defaultVictory()
	v.MaxTurns = 0 // no cap
	w.Turn = 100000
	if res := v.CheckAll(w); res.IsGameOver {
		t.Fatalf("zero cap means unlimited turns, got %+v", res)
	}
}
