package reward

import (
	"bossgym/internal/observation"
	"bossgym/internal/registry"
)

type Weights struct {
	PrayerCorrect float64 `json:"prayer_correct"`
	PrayerWrong   float64 `json:"prayer_wrong"`
	NoTarget      float64 `json:"no_target"`
	BuffOff       float64 `json:"buff_off"`
	DamageTaken   float64 `json:"damage_taken"`
	BossDamage    float64 `json:"boss_damage"`
	BossHealed    float64 `json:"boss_healed"`
	AddTagged     float64 `json:"add_tagged"`

	Win           float64 `json:"win"`
	Loss          float64 `json:"loss"`
	Truncated     float64 `json:"truncated"`
	LengthPenalty float64 `json:"length_penalty"`

	// ScaleByLength adds LengthPenalty per step to the win bonus.
	ScaleByLength bool `json:"scale_by_length"`
	// ScaleByRemainingHP grows loss and truncation penalties with the share
	// of boss health left, from half at zero to full at untouched.
	ScaleByRemainingHP bool `json:"scale_by_remaining_hp"`
}

func DefaultWeights() Weights {
	return Weights{
		PrayerCorrect: 1, PrayerWrong: -1,
		NoTarget: -0.5, BuffOff: -0.05,
		DamageTaken: -0.1, BossDamage: 0.2, BossHealed: -0.3,
		AddTagged: 5,
		Win:       100, Loss: -50, Truncated: -150, LengthPenalty: -0.1,
		ScaleByLength: true,
	}
}

func MultibossWeights() Weights {
	w := DefaultWeights()
	w.ScaleByRemainingHP = true
	return w
}

// Dense builds a shaped reward. The prayer term fires once per attack, on the
// last tick its window is visible, against whatever prayer is up then.
func Dense(w Weights) Func {
	return func(in Input) float64 {
		o := in.Obs
		r := 0.0
		for _, b := range o.Bosses {
			if !b.Attack.Protectable() || b.AttackTicks != 1 {
				continue
			}
			if o.ActivePrayer == b.Attack {
				r += w.PrayerCorrect
			} else {
				r += w.PrayerWrong
			}
		}
		if o.PlayerTarget == 0 {
			r += w.NoTarget
		}
		if !o.RigourActive {
			r += w.BuffOff
		}

		if p := in.Prev; p != nil {
			if d := p.PlayerHP - o.PlayerHP; d > 0 {
				r += w.DamageTaken * float64(d)
			}
			for i := range o.Bosses {
				if i >= len(p.Bosses) {
					break
				}
				d := p.Bosses[i].HP - o.Bosses[i].HP
				if d > 0 {
					r += w.BossDamage * float64(d)
				} else if d < 0 {
					r += w.BossHealed * float64(-d)
				}
			}
			for i := range o.Adds {
				if i >= len(p.Adds) {
					break
				}
				if p.Adds[i].Aggro == registry.AggroBoss && o.Adds[i].Aggro == registry.AggroPlayer {
					r += w.AddTagged
				}
			}
		}
		return r + w.terminal(in)
	}
}

func (w Weights) terminal(in Input) float64 {
	switch in.Termination {
	case observation.AllBossesDefeated:
		r := w.Win
		if w.ScaleByLength {
			r += w.LengthPenalty * float64(in.Steps)
		}
		return r
	case observation.PlayerDied:
		return w.Loss * w.remainingScale(in.Obs)
	case observation.Truncated:
		return w.Truncated * w.remainingScale(in.Obs)
	}
	return 0
}

func (w Weights) remainingScale(o observation.Observation) float64 {
	total := o.TotalBossMaxHP()
	if !w.ScaleByRemainingHP || total <= 0 {
		return 1
	}
	return 0.5 + 0.5*float64(o.TotalBossHP())/float64(total)
}
