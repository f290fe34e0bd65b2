package policy

import (
	"bossgym/internal/action"
	"bossgym/internal/combat"
	"bossgym/internal/config"
	"bossgym/internal/observation"
	"bossgym/internal/registry"
)

const (
	brewBelow    = 0.5
	restoreBelow = 30
	buffAbove    = 20
)

// Heuristic plays the fight the way a careful human would: pray against the
// attack that lands soonest, pull healers off their boss, keep a boss
// targeted, and drink when low.
type Heuristic struct{}

func (*Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Act(obs observation.Observation, mask action.Mask) action.Action {
	var a action.Action

	if want := soonestAttack(obs); want != combat.StyleNone && obs.ActivePrayer != want && obs.PlayerPrayer > 0 {
		a.Protection = int(want)
	}
	if !obs.RigourActive && obs.PlayerPrayer > buffAbove {
		a.Offensive = 1
	}

	switch {
	case obs.PlayerMaxHP > 0 && float64(obs.PlayerHP) < brewBelow*float64(obs.PlayerMaxHP) && mask.Valid(action.HeadPotion, 2):
		a.Potion = 2
	case obs.PlayerPrayer < restoreBelow && mask.Valid(action.HeadPotion, 3):
		a.Potion = 3
	case obs.BastionDoses == obs.StartingBastionDoses && mask.Valid(action.HeadPotion, 1):
		a.Potion = 1
	}

	a.Target = h.target(obs, mask)
	return a
}

// soonestAttack is the in-flight style with the fewest ticks left.
func soonestAttack(obs observation.Observation) combat.Style {
	best, ticks := combat.StyleNone, 0
	for _, b := range obs.Bosses {
		if !b.Attack.Protectable() {
			continue
		}
		if best == combat.StyleNone || b.AttackTicks < ticks {
			best, ticks = b.Attack, b.AttackTicks
		}
	}
	return best
}

func (h *Heuristic) target(obs observation.Observation, mask action.Mask) int {
	env := configOf(obs)
	for i, add := range obs.Adds {
		if add.Aggro != registry.AggroBoss {
			continue
		}
		idx := registry.EncodeTarget(env, registry.TargetRef{
			Kind: registry.TargetAdd, Boss: i / obs.AddsPerBoss, Add: i % obs.AddsPerBoss,
		})
		if mask.Valid(action.HeadTarget, idx) {
			if idx == obs.PlayerTarget {
				return 0
			}
			return idx
		}
	}
	if obs.PlayerTarget != 0 && mask.Valid(action.HeadTarget, obs.PlayerTarget) {
		if !h.targetIsTaggedAdd(obs) {
			return 0
		}
	}
	for i := range obs.Bosses {
		idx := registry.EncodeTarget(env, registry.TargetRef{Kind: registry.TargetBoss, Boss: i})
		if mask.Valid(action.HeadTarget, idx) {
			return idx
		}
	}
	return 0
}

// targetIsTaggedAdd reports whether the current target is an add already
// pulled onto the player, which no longer needs hitting.
func (h *Heuristic) targetIsTaggedAdd(obs observation.Observation) bool {
	ref, ok := registry.DecodeTarget(configOf(obs), obs.PlayerTarget)
	if !ok || ref.Kind != registry.TargetAdd {
		return false
	}
	return obs.Adds[ref.Boss*obs.AddsPerBoss+ref.Add].Aggro == registry.AggroPlayer
}

func configOf(obs observation.Observation) config.Env {
	return config.Env{BossCount: obs.BossCount, AddsPerBoss: obs.AddsPerBoss}
}
