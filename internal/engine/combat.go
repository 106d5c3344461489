package engine

import "fmt"

// HitProbability is the engagement envelope contract:
//
//	p(d) = base - (base - minP) * clamp(d/maxRange, 0, 1)
//
// so p(0) = base, p(maxRange) = minP, and p(d) = 0 beyond maxRange. A
// non-positive maxRange defines probability 0 at every distance.
// Parameter ranges are enforced at entity construction; this function
// assumes 0 <= minP <= base <= 1 and d >= 0.
func HitProbability(distance, maxRange, base, minP float64) float64 {
	if maxRange <= 0 {
		return 0
	}
	if distance > maxRange {
		return 0
	}
	frac := distance / maxRange
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return base - (base-minP)*frac
}

// CombatResult is the outcome of one SHOOT action. Success means the
// shot was fired, not that it hit.
type CombatResult struct {
	AttackerID     int      `json:"attacker_id"`
	TargetID       int      `json:"target_id"`
	Success        bool     `json:"success"`
	Hit            *bool    `json:"hit,omitempty"`
	Distance       *float64 `json:"distance,omitempty"`
	HitProbability *float64 `json:"hit_probability,omitempty"`
	TargetKilled   bool     `json:"target_killed"`
	Log            string   `json:"log"`
}

// CombatResolutionResult is the combat phase's full report for a turn.
type CombatResolutionResult struct {
	CombatResults []CombatResult `json:"combat_results"`
	DeathLogs     []string       `json:"death_logs,omitempty"`
	KilledIDs     []int          `json:"killed_entity_ids,omitempty"`
	// CombatOccurred is true if at least one shot was actually fired,
	// hit or miss.
	CombatOccurred bool `json:"combat_occurred"`
}

// CombatResolver validates and resolves SHOOT actions, applies the
// resulting deaths, and maintains the shooting stall counter. Stateless;
// the world's RNG provides both the order shuffle and the hit rolls.
type CombatResolver struct{}

// ResolveCombat resolves every queued SHOOT for the turn and applies
// pending deaths in the order kills were marked.
func (c CombatResolver) ResolveCombat(w *WorldState, actions map[int]Action) CombatResolutionResult {
	results := c.resolveAll(w, actions)

	var killOrder []int
	combatOccurred := false
	for _, r := range results {
		if r.Success {
			combatOccurred = true
		}
		if r.TargetKilled {
			killOrder = append(killOrder, r.TargetID)
		}
	}

	deathLogs, killedIDs := applyPendingDeaths(w, killOrder)

	if combatOccurred {
		w.TurnsWithoutShooting = 0
	} else {
		w.TurnsWithoutShooting++
	}

	return CombatResolutionResult{
		CombatResults:  results,
		DeathLogs:      deathLogs,
		KilledIDs:      killedIDs,
		CombatOccurred: combatOccurred,
	}
}

// resolveAll processes shooters in an order shuffled by the world RNG so
// simultaneous shots are not biased by entity insertion order.
func (CombatResolver) resolveAll(w *WorldState, actions map[int]Action) []CombatResult {
	var shooters []Entity
	for _, e := range w.AliveEntities() {
		if a, ok := actions[e.Base().ID]; ok && a.Type == ActionShoot {
			shooters = append(shooters, e)
		}
	}
	w.RNG().Shuffle(len(shooters), func(i, j int) {
		shooters[i], shooters[j] = shooters[j], shooters[i]
	})

	var results []CombatResult
	for _, attacker := range shooters {
		results = append(results, resolveShot(w, attacker, actions[attacker.Base().ID]))
	}
	return results
}

// resolveShot validates one shot and, if valid, rolls it. Ammunition is
// consumed on firing regardless of hit or miss; a failed validation
// consumes nothing.
func resolveShot(w *WorldState, attacker Entity, a Action) CombatResult {
	if v := ValidateActionInWorld(w, attacker, a); !v.Valid {
		return CombatResult{
			AttackerID: attacker.Base().ID,
			TargetID:   a.TargetID,
			Log:        v.Message,
		}
	}

	target := w.Entity(a.TargetID)
	weapon := attacker.(Shooter).Weapon()

	distance := w.Grid.Distance(attacker.Base().Pos, target.Base().Pos)
	prob := HitProbability(distance, weapon.MissileMaxRange, weapon.BaseHitProb, weapon.MinHitProb)

	roll := w.RNG().Float64()
	hit := roll <= prob

	weapon.Missiles--
	if sam, ok := attacker.(*SAM); ok {
		sam.StartCooldown()
	}

	if hit {
		w.MarkForKill(target.Base().ID)
	}

	// The target's team saw the muzzle flash: record the attacker as
	// having fired. Decoys never fire, so this record slowly separates
	// real aircraft from undiscovered decoys.
	w.TeamView(target.Base().Team).RecordEnemyFired(attacker.Base().ID)

	outcome := "MISS"
	if hit {
		outcome = "HIT"
	}
	return CombatResult{
		AttackerID:     attacker.Base().ID,
		TargetID:       a.TargetID,
		Success:        true,
		Hit:            &hit,
		Distance:       &distance,
		HitProbability: &prob,
		TargetKilled:   hit,
		Log: fmt.Sprintf("%s fires at %s (d=%.1f, p=%.2f, roll=%.2f) -> %s",
			entityLabel(attacker), entityLabel(target), distance, prob, roll, outcome),
	}
}

// applyPendingDeaths marks every queued kill dead, in the stable,
// deduplicated order the kills were recorded, and emits one death log
// line per kill.
func applyPendingDeaths(w *WorldState, killOrder []int) ([]string, []int) {
	pending := make(map[int]struct{})
	for _, id := range w.PendingKills() {
		pending[id] = struct{}{}
	}

	ids := killOrder
	if ids == nil {
		ids = w.PendingKills()
	}

	var logs []string
	var killed []int
	seen := make(map[int]struct{})
	for _, id := range ids {
		if _, ok := pending[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		e := w.Entity(id)
		if e == nil || !e.Base().Alive {
			continue
		}
		e.Base().Alive = false
		logs = append(logs, fmt.Sprintf("%s was destroyed!", entityLabel(e)))
		killed = append(killed, id)
	}
	w.ClearPendingKills()
	return logs, killed
}
