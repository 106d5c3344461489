package engine

import "testing"

func TestMovement_SimpleMove(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{2, 2})

	res := MovementResolver{}.ResolveActions(w, map[int]Action{a.ID: Move(DirUp)})
	if !res.MovementOccurred {
		t.Fatal("movement should have occurred")
	}
	if a.Pos != (Pos{2, 3}) {
		t.Fatalf("expected (2,3), got %s", a.Pos)
	}
	if w.TurnsWithoutMovement != 0 {
		t.Fatal("no-move counter should reset")
	}
}

func TestMovement_OutOfBoundsFails(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{0, 0})

	res := MovementResolver{}.ResolveActions(w, map[int]Action{a.ID: Move(DirLeft)})
	if res.MovementOccurred {
		t.Fatal("no movement should have occurred")
	}
	if a.Pos != (Pos{0, 0}) {
		t.Fatalf("entity moved to %s", a.Pos)
	}
	if res.Results[0].Code != CodeOutOfBounds {
		t.Fatalf("expected OUT_OF_BOUNDS, got %q", res.Results[0].Code)
	}
	if w.TurnsWithoutMovement != 1 {
		t.Fatal("no-move counter should increment")
	}
}

func TestMovement_OccupiedDestinationFails(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{2, 2})
	addAircraft(t, w, TeamRed, Pos{3, 2})

	res := MovementResolver{}.ResolveActions(w, map[int]Action{a.ID: Move(DirRight)})
	if a.Pos != (Pos{2, 2}) {
		t.Fatalf("entity moved into occupied cell: %s", a.Pos)
	}
	if res.Results[0].Code != CodeOccupied {
		t.Fatalf("expected OCCUPIED, got %q", res.Results[0].Code)
	}
}

func TestMovement_DeadEntityMovesIntoVacatedCell(t *testing.T) {
	// A dead entity does not block movement.
	w := newTestWorld(t, 10, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{2, 2})
	corpse := addAircraft(t, w, TeamRed, Pos{3, 2})
	corpse.Alive = false

	MovementResolver{}.ResolveActions(w, map[int]Action{a.ID: Move(DirRight)})
	if a.Pos != (Pos{3, 2}) {
		t.Fatalf("move over a dead entity should succeed, got %s", a.Pos)
	}
}

func TestMovement_SwapNeverResolves(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		w := newTestWorld(t, 10, 10, seed)
		a := addAircraft(t, w, TeamBlue, Pos{2, 2})
		b := addAircraft(t, w, TeamRed, Pos{3, 2})

		res := MovementResolver{}.ResolveActions(w, map[int]Action{
			a.ID: Move(DirRight),
			b.ID: Move(DirLeft),
		})

		moved := 0
		for _, r := range res.Results {
			if r.Success {
				moved++
			}
		}
		if moved != 0 {
			t.Fatalf("seed %d: swap partially resolved (%d moves)", seed, moved)
		}
	}
}

func TestMovement_ContestedCell_ExactlyOneWinner(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		w := newTestWorld(t, 10, 10, seed)
		a := addAircraft(t, w, TeamBlue, Pos{2, 2})
		b := addAircraft(t, w, TeamRed, Pos{4, 2})

		res := MovementResolver{}.ResolveActions(w, map[int]Action{
			a.ID: Move(DirRight),
			b.ID: Move(DirLeft),
		})

		winners, occupied := 0, 0
		for _, r := range res.Results {
			if r.Success {
				winners++
			} else if r.Code == CodeOccupied {
				occupied++
			}
		}
		if winners != 1 || occupied != 1 {
			t.Fatalf("seed %d: contested cell gave %d winners, %d occupied", seed, winners, occupied)
		}
		if w.AliveEntityAt(Pos{3, 2}) == nil {
			t.Fatalf("seed %d: nobody ended up in the contested cell", seed)
		}
	}
}

func TestMovement_Collision_SameSeed_SameWinner(t *testing.T) {
	run := func(seed int64) int {
		w := newTestWorld(t, 10, 10, seed)
		a := addAircraft(t, w, TeamBlue, Pos{2, 2})
		b := addAircraft(t, w, TeamRed, Pos{4, 2})
		res := MovementResolver{}.ResolveActions(w, map[int]Action{
			a.ID: Move(DirRight),
			b.ID: Move(DirLeft),
		})
		for _, r := range res.Results {
			if r.Success {
				return r.EntityID
			}
		}
		return -1
	}
	first := run(99)
	for i := 0; i < 5; i++ {
		if got := run(99); got != first {
			t.Fatalf("same seed produced different winners: %d vs %d", first, got)
		}
	}
}

func TestMovement_ToggleResolvesBeforeMoves(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	sam := addSAM(t, w, TeamBlue, Pos{5, 5}, false)

	res := MovementResolver{}.ResolveActions(w, map[int]Action{sam.ID: Toggle(true)})
	if !sam.On {
		t.Fatal("toggle did not apply")
	}
	if res.MovementOccurred {
		t.Fatal("a toggle is not movement")
	}
	if !res.Results[0].Success {
		t.Fatalf("toggle should succeed: %+v", res.Results[0])
	}
}

func TestMovement_ToggleOnNonSAMFails(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{2, 2})

	res := MovementResolver{}.ResolveActions(w, map[int]Action{a.ID: Toggle(true)})
	if res.Results[0].Success || res.Results[0].Code != CodeNotSAM {
		t.Fatalf("expected NOT_SAM failure, got %+v", res.Results[0])
	}
}

func TestMovement_EntitiesWithoutActionsAreInert(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	a := addAircraft(t, w, TeamBlue, Pos{2, 2})
	idle := addAircraft(t, w, TeamRed, Pos{7, 7})

	res := MovementResolver{}.ResolveActions(w, map[int]Action{a.ID: Wait()})
	if len(res.Results) != 1 {
		t.Fatalf("only the acting entity should be reported, got %d results", len(res.Results))
	}
	if idle.Pos != (Pos{7, 7}) {
		t.Fatal("inert entity moved")
	}
}

func TestMovement_ImmobileSAMCannotMove(t *testing.T) {
	w := newTestWorld(t, 10, 10, 1)
	sam := addSAM(t, w, TeamBlue, Pos{5, 5}, true)

	res := MovementResolver{}.ResolveActions(w, map[int]Action{sam.ID: Move(DirUp)})
	if res.Results[0].Success || res.Results[0].Code != CodeNoCapability {
		t.Fatalf("expected NO_CAPABILITY, got %+v", res.Results[0])
	}
	if sam.Pos != (Pos{5, 5}) {
		t.Fatal("SAM moved")
	}
}
