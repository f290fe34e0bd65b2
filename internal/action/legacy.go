package action

import (
	"fmt"

	"bossgym/internal/combat"
	"bossgym/internal/config"
	"bossgym/internal/registry"
)

// The flat scheme lists DO_NOTHING, one slot per boss, one per add, then
// these fixed prayer and potion slots.
var legacyFixed = []struct {
	name   string
	action Action
}{
	{"TOGGLE_PROTECT_MELEE", Action{Protection: int(combat.StyleMelee)}},
	{"TOGGLE_PROTECT_MISSILES", Action{Protection: int(combat.StyleRange)}},
	{"TOGGLE_PROTECT_MAGIC", Action{Protection: int(combat.StyleMagic)}},
	{"TOGGLE_RIGOUR", Action{Offensive: 1}},
	{"DRINK_BASTION", Action{Potion: 1}},
	{"DRINK_SUPER_RESTORE", Action{Potion: 3}},
	{"DRINK_SARA_BREW", Action{Potion: 2}},
}

func FromLegacy(env config.Env, n int) (Action, error) {
	t := env.TargetCount()
	switch {
	case n >= 0 && n < t:
		return Action{Target: n}, nil
	case n >= t && n < env.LegacyActionCount():
		return legacyFixed[n-t].action, nil
	}
	return Action{}, fmt.Errorf("legacy action %d out of range [0,%d)", n, env.LegacyActionCount())
}

func LegacyName(env config.Env, n int) string {
	t := env.TargetCount()
	if n >= t && n < env.LegacyActionCount() {
		return legacyFixed[n-t].name
	}
	ref, ok := registry.DecodeTarget(env, n)
	if !ok {
		return fmt.Sprintf("UNKNOWN_%d", n)
	}
	switch ref.Kind {
	case registry.TargetBoss:
		return fmt.Sprintf("AGGRO_JAD_%d", ref.Boss+1)
	case registry.TargetAdd:
		return fmt.Sprintf("AGGRO_H%d.%d", ref.Boss+1, ref.Add+1)
	}
	return "DO_NOTHING"
}

// LegacyMask flattens a head mask into the legacy scheme.
func LegacyMask(env config.Env, m Mask) []bool {
	out := make([]bool, env.LegacyActionCount())
	for i := 0; i < env.TargetCount(); i++ {
		out[i] = m.Valid(HeadTarget, i)
	}
	for i, f := range legacyFixed {
		a := f.action
		out[env.TargetCount()+i] = m.Valid(HeadProtection, a.Protection) &&
			m.Valid(HeadOffensive, a.Offensive) && m.Valid(HeadPotion, a.Potion)
	}
	return out
}
