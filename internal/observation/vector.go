package observation

import "bossgym/internal/config"

const (
	playerScalars = 9
	bossScalars   = 4
	addScalars    = 3
	prayerValues  = 4
	attackValues  = 4
	aggroValues   = 3
)

// Dim is the length of Vector for env.
func Dim(env config.Env) int {
	n, slots := env.BossCount, env.AddSlots()
	continuous := playerScalars + bossScalars*n + addScalars*slots
	onehot := env.TargetCount() + prayerValues + attackValues*n + aggroValues*slots
	binary := 2 + n
	return continuous + onehot + binary
}

// Vector flattens an observation: raw continuous features first, then one-hot
// enums, then flags. NormalizeMask marks the continuous part.
func Vector(env config.Env, o Observation) []float64 {
	v := make([]float64, 0, Dim(env))
	v = append(v,
		float64(o.PlayerHP), float64(o.PlayerPrayer), float64(o.PlayerRanged), float64(o.PlayerDefence),
		float64(o.PlayerX), float64(o.PlayerY),
		float64(o.BastionDoses), float64(o.SaraBrewDoses), float64(o.SuperRestoreDoses),
	)
	for _, b := range o.Bosses {
		v = append(v, float64(b.HP), float64(b.AttackTicks), float64(b.X), float64(b.Y))
	}
	for _, a := range o.Adds {
		v = append(v, float64(a.HP), float64(a.X), float64(a.Y))
	}

	v = onehot(v, o.PlayerTarget, env.TargetCount())
	v = onehot(v, int(o.ActivePrayer), prayerValues)
	for _, b := range o.Bosses {
		v = onehot(v, int(b.Attack), attackValues)
	}
	for _, a := range o.Adds {
		v = onehot(v, int(a.Aggro), aggroValues)
	}

	v = append(v, flag(o.RigourActive), flag(o.AddsSpawned))
	for _, b := range o.Bosses {
		v = append(v, flag(b.Alive))
	}
	return v
}

// NormalizeMask is true for the entries of Vector a running normalizer should scale.
func NormalizeMask(env config.Env) []bool {
	mask := make([]bool, Dim(env))
	continuous := playerScalars + bossScalars*env.BossCount + addScalars*env.AddSlots()
	for i := 0; i < continuous; i++ {
		mask[i] = true
	}
	return mask
}

func onehot(v []float64, idx, n int) []float64 {
	for i := 0; i < n; i++ {
		if i == idx {
			v = append(v, 1)
		} else {
			v = append(v, 0)
		}
	}
	return v
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
