package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvBounds(t *testing.T) {
	for n := MinBossCount; n <= MaxBossCount; n++ {
		for h := MinAddsPerBoss; h <= MaxAddsPerBoss; h++ {
			env, err := NewEnv(n, h)
			require.NoError(t, err)
			assert.Equal(t, 1+n+n*h, env.TargetCount())
			assert.Equal(t, env.TargetCount()+7, env.LegacyActionCount())
			assert.Equal(t, 300*n, env.DefaultMaxSteps())
		}
	}

	cases := []struct {
		bosses, adds int
		want         error
	}{
		{0, 3, ErrBossCount},
		{7, 3, ErrBossCount},
		{1, -1, ErrAddsPerBoss},
		{1, 6, ErrAddsPerBoss},
	}
	for _, c := range cases {
		_, err := NewEnv(c.bosses, c.adds)
		assert.True(t, errors.Is(err, c.want), "NewEnv(%d, %d) = %v", c.bosses, c.adds, err)
	}
}

func TestDefaultEncounterValidForEveryEnv(t *testing.T) {
	enc := DefaultEncounter()
	for n := MinBossCount; n <= MaxBossCount; n++ {
		for h := MinAddsPerBoss; h <= MaxAddsPerBoss; h++ {
			assert.NoError(t, enc.Validate(Env{BossCount: n, AddsPerBoss: h}))
		}
	}
}

func TestEncounterValidateCollectsProblems(t *testing.T) {
	enc := DefaultEncounter()
	enc.Boss.AttackSpeed = 1
	enc.Boss.AddsAt = 1.5
	enc.Layouts[2] = []Vec2Def{{X: -40, Y: 0}, {X: 0, Y: -10}}

	err := enc.Validate(Env{BossCount: 2, AddsPerBoss: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attack_speed")
	assert.Contains(t, err.Error(), "adds_at")
	assert.Contains(t, err.Error(), "outside the arena")

	err = enc.Validate(Env{BossCount: 9})
	assert.ErrorIs(t, err, ErrBossCount)
}

func TestLoadEncounterOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "enc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("boss:\n  hp: 500\nlayouts:\n  1:\n    - {x: 0, y: -8}\n"), 0o644))

	enc, err := LoadEncounter(path)
	require.NoError(t, err)
	assert.Equal(t, 500, enc.Boss.HP)
	assert.Equal(t, 3, enc.Boss.Size, "untouched keys keep defaults")
	l, ok := enc.Layout(1)
	require.True(t, ok)
	assert.Equal(t, Vec2Def{X: 0, Y: -8}, l[0])
	_, ok = enc.Layout(6)
	assert.True(t, ok)

	_, err = LoadEncounter(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	enc, err = LoadEncounter("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEncounter().Boss, enc.Boss)
}

func TestExampleEncounterLoads(t *testing.T) {
	enc, err := LoadEncounter(filepath.Join("..", "..", "configs", "encounter.example.yaml"))
	require.NoError(t, err)
	assert.NoError(t, enc.Validate(Env{BossCount: 2, AddsPerBoss: 3}))
}

func TestSettingsFromEnvironment(t *testing.T) {
	t.Setenv("JAD_COUNT", "3")
	t.Setenv("HEALERS_PER_JAD", "2")
	t.Setenv("REWARD_FUNC", "sparse")

	v := viper.New()
	BindEnv(v)
	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, Env{BossCount: 3, AddsPerBoss: 2}, s.Env)
	assert.Equal(t, "sparse", s.RewardFunc)
	assert.Equal(t, 900, s.EffectiveMaxSteps())
	assert.Equal(t, int64(1), s.Seed)
}

func TestSettingsPrefixedVariableWins(t *testing.T) {
	t.Setenv("BOSSGYM_BOSS_COUNT", "2")
	t.Setenv("JAD_COUNT", "5")

	v := viper.New()
	BindEnv(v)
	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Env.BossCount)
}

func TestSettingsRejectOutOfRange(t *testing.T) {
	v := viper.New()
	BindEnv(v)
	v.Set("boss_count", 7)
	_, err := LoadSettings(v)
	assert.ErrorIs(t, err, ErrBossCount)

	v.Set("boss_count", 1)
	v.Set("max_steps", 0)
	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, 0, s.EffectiveMaxSteps())
}
