package reward

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bossgym/internal/combat"
	"bossgym/internal/logging"
	"bossgym/internal/observation"
	"bossgym/internal/registry"
)

func obs(bosses ...observation.BossState) observation.Observation {
	return observation.Observation{
		PlayerHP: 99, PlayerMaxHP: 99, PlayerTarget: 1, RigourActive: true,
		Bosses: bosses, BossCount: len(bosses),
	}
}

func boss(hp int) observation.BossState {
	return observation.BossState{HP: hp, MaxHP: 350, Alive: hp > 0}
}

func TestUnknownNameFails(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknown)
	_, err = r.Compute("nope", Input{})
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Equal(t, []string{Default, Multiboss, Sparse}, r.Names())
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("flat", func(Input) float64 { return 2 }))
	assert.Error(t, r.Register("flat", func(Input) float64 { return 3 }))
	assert.Error(t, r.Register("", func(Input) float64 { return 3 }))
	assert.Error(t, r.Register("nil", nil))

	v, err := r.Compute("flat", Input{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	assert.Contains(t, r.Names(), "flat")
}

func TestSparseIgnoresIntermediateState(t *testing.T) {
	r := NewRegistry()
	states := []observation.Observation{obs(boss(350)), obs(boss(1)), {PlayerHP: 1}}
	for _, o := range states {
		prev := o
		cases := map[observation.Termination]float64{
			observation.Ongoing:           0,
			observation.AllBossesDefeated: 1,
			observation.PlayerDied:        -1,
			observation.Truncated:         0,
		}
		for term, want := range cases {
			got, err := r.Compute(Sparse, Input{Obs: o, Prev: &prev, Termination: term, Steps: 77})
			require.NoError(t, err)
			assert.Equal(t, want, got, term.String())
		}
	}
}

func TestPrayerRewardFiresOnceWhenWindowCloses(t *testing.T) {
	f := Dense(Weights{PrayerCorrect: 1, PrayerWrong: -1})
	total := 0.0
	for ticks := 4; ticks >= 1; ticks-- {
		b := boss(350)
		b.Attack, b.AttackTicks = combat.StyleMagic, ticks
		o := obs(b)
		o.ActivePrayer = combat.StyleMagic
		total += f(Input{Obs: o})
	}
	assert.Equal(t, 1.0, total)

	b := boss(350)
	b.Attack, b.AttackTicks = combat.StyleMelee, 1
	o := obs(b)
	o.ActivePrayer = combat.StyleRange
	assert.Equal(t, -1.0, f(Input{Obs: o}))
}

func TestPrayerRewardCountsDeadCaster(t *testing.T) {
	f := Dense(Weights{PrayerCorrect: 1, PrayerWrong: -1})
	b := boss(0)
	b.Attack, b.AttackTicks = combat.StyleRange, 1
	o := obs(b)
	o.ActivePrayer = combat.StyleRange
	assert.Equal(t, 1.0, f(Input{Obs: o}))

	o.ActivePrayer = combat.StyleNone
	assert.Equal(t, -1.0, f(Input{Obs: o}))
}

func TestDenseTerms(t *testing.T) {
	w := DefaultWeights()
	f := Dense(w)

	o := obs(boss(300))
	o.PlayerTarget = 0
	o.RigourActive = false
	assert.InDelta(t, w.NoTarget+w.BuffOff, f(Input{Obs: o}), 1e-9)

	prev := obs(boss(320))
	prev.PlayerHP = 99
	cur := obs(boss(300))
	cur.PlayerHP = 89
	assert.InDelta(t, 20*w.BossDamage+10*w.DamageTaken, f(Input{Obs: cur, Prev: &prev}), 1e-9)

	healed := obs(boss(330))
	assert.InDelta(t, 10*w.BossHealed, f(Input{Obs: healed, Prev: &prev}), 1e-9)
}

func TestAddTagRewardedOnFlipOnly(t *testing.T) {
	w := DefaultWeights()
	f := Dense(w)
	prev := obs(boss(100))
	prev.Adds = []observation.AddState{{HP: 90, Aggro: registry.AggroBoss}, {HP: 90, Aggro: registry.AggroPlayer}}
	cur := obs(boss(100))
	cur.Adds = []observation.AddState{{HP: 90, Aggro: registry.AggroPlayer}, {HP: 90, Aggro: registry.AggroPlayer}}

	assert.InDelta(t, w.AddTagged, f(Input{Obs: cur, Prev: &prev}), 1e-9)
	assert.InDelta(t, 0, f(Input{Obs: cur, Prev: &cur}), 1e-9)
}

func TestTerminalBonuses(t *testing.T) {
	w := DefaultWeights()
	f := Dense(w)
	o := obs(boss(0))
	assert.InDelta(t, w.Win+w.LengthPenalty*200, f(Input{Obs: o, Termination: observation.AllBossesDefeated, Steps: 200}), 1e-9)
	assert.InDelta(t, w.Loss, f(Input{Obs: obs(boss(350)), Termination: observation.PlayerDied}), 1e-9)
	assert.InDelta(t, w.Truncated, f(Input{Obs: obs(boss(350)), Termination: observation.Truncated}), 1e-9)

	m := Dense(MultibossWeights())
	full := m(Input{Obs: obs(boss(350), boss(350)), Termination: observation.PlayerDied})
	half := m(Input{Obs: obs(boss(350), boss(0)), Termination: observation.PlayerDied})
	assert.InDelta(t, w.Loss, full, 1e-9)
	assert.InDelta(t, w.Loss*0.75, half, 1e-9)
}

func TestScriptReward(t *testing.T) {
	s, err := CompileScript("hp", `
reward = 0.0
if termination == "all_bosses_defeated" {
	reward = 10
}
if !is_undefined(prev) {
	reward += prev.player_hp - obs.player_hp
}
reward += obs.bosses[0].hp / 100
`)
	require.NoError(t, err)
	assert.Equal(t, "hp", s.Name())

	o := obs(boss(250))
	assert.Equal(t, 2.5, s.Eval(Input{Obs: o}))

	prev := obs(boss(250))
	o.PlayerHP = 90
	assert.Equal(t, 11.5, s.Eval(Input{Obs: o, Prev: &prev}))
	assert.Equal(t, 21.5, s.Eval(Input{Obs: o, Prev: &prev, Termination: observation.AllBossesDefeated}))
}

func TestScriptFailureScoresZero(t *testing.T) {
	buf := &bytes.Buffer{}
	logging.SetOutput(buf)
	t.Cleanup(func() { logging.SetOutput(nil) })

	s, err := CompileScript("spin", "for { }")
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.Eval(Input{Obs: obs(boss(1))}))
	assert.Contains(t, buf.String(), "reward script failed")

	_, err = CompileScript("broken", "reward = ")
	assert.Error(t, err)
}

func TestRegisterScripts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "const.tengo")
	require.NoError(t, os.WriteFile(path, []byte("reward = 0.5"), 0o644))

	r := NewRegistry()
	require.NoError(t, r.RegisterScripts(map[string]string{"const": path}))
	v, err := r.Compute("const", Input{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	assert.Error(t, r.RegisterScripts(map[string]string{"missing": filepath.Join(dir, "nope.tengo")}))
	assert.Error(t, r.RegisterScripts(map[string]string{Sparse: path}))
}
