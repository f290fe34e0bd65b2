package registry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bossgym/internal/combat"
	"bossgym/internal/config"
	"bossgym/internal/logging"
	"bossgym/internal/util"
)

func newRegistry(t *testing.T, bosses, adds int, seed int64) (*Registry, *combat.World) {
	t.Helper()
	env, err := config.NewEnv(bosses, adds)
	require.NoError(t, err)
	enc := config.DefaultEncounter()
	require.NoError(t, enc.Validate(env))
	w := combat.NewWorld(enc.Arena, util.New(seed))
	r := New(env, enc, w, util.New(seed+1))
	require.NoError(t, r.Populate())
	return r, w
}

func TestPopulateStaggersAttackOffsets(t *testing.T) {
	r, _ := newRegistry(t, 3, 0, 7)
	speed := config.DefaultEncounter().Boss.AttackSpeed

	var got []int
	seen := map[int]bool{}
	for _, b := range r.Bosses() {
		got = append(got, b.AttackDelay)
		assert.Equal(t, 1+b.AttackOrder*speed/3, b.AttackDelay)
		seen[b.AttackOrder] = true
	}
	assert.ElementsMatch(t, []int{1, 1 + speed/3, 1 + 2*speed/3}, got)
	assert.Len(t, seen, 3)
}

func TestPopulateTwiceFails(t *testing.T) {
	r, _ := newRegistry(t, 1, 0, 1)
	assert.Error(t, r.Populate())
}

func TestBossAbsentOnZeroHealthOrDying(t *testing.T) {
	r, _ := newRegistry(t, 2, 0, 3)

	_, ok := r.Boss(0)
	require.True(t, ok)

	r.BossSlot(0).HP = 0
	_, ok = r.Boss(0)
	assert.False(t, ok, "zero health must read as absent before the dying flag")

	r.BossSlot(1).Dying = true
	_, ok = r.Boss(1)
	assert.False(t, ok)

	_, ok = r.Boss(2)
	assert.False(t, ok)
	_, ok = r.Boss(-1)
	assert.False(t, ok)
	assert.True(t, r.AllBossesDefeated())
}

func TestAddsAbsentWhenParentDies(t *testing.T) {
	r, _ := newRegistry(t, 1, 3, 5)
	_, err := r.SpawnAdds(0)
	require.NoError(t, err)
	for a := 0; a < 3; a++ {
		_, ok := r.Add(0, a)
		assert.True(t, ok)
		assert.Equal(t, AggroBoss, r.AddAggro(0, a))
	}

	r.BossSlot(0).HP = 0
	for a := 0; a < 3; a++ {
		add, ok := r.Add(0, a)
		assert.False(t, ok)
		assert.Nil(t, add)
		assert.Positive(t, r.AddSlot(0, a).HP)
		assert.Equal(t, AggroAbsent, r.AddAggro(0, a))
	}
}

func TestRegisterAddRejectsBadSlots(t *testing.T) {
	r, w := newRegistry(t, 1, 2, 1)
	u := w.SpawnAdd("x", config.DefaultEncounter().Add, combat.Point{X: 1, Y: 1}, r.BossSlot(0).Unit)

	_, err := r.RegisterAdd(0, 2, u)
	assert.Error(t, err)
	_, err = r.RegisterAdd(1, 0, u)
	assert.Error(t, err)

	_, err = r.RegisterAdd(0, 0, u)
	require.NoError(t, err)
	_, err = r.RegisterAdd(0, 0, u)
	assert.Error(t, err)
}

func TestAddSpawnAtHalfHealthIsIdempotent(t *testing.T) {
	r, _ := newRegistry(t, 1, 3, 11)
	boss := r.BossSlot(0)

	boss.HP = boss.MaxHP/2 + 1
	spawned, err := r.CheckAddSpawns()
	require.NoError(t, err)
	assert.Empty(t, spawned)
	assert.False(t, r.AnyAddSpawned())

	boss.HP = boss.MaxHP / 2
	spawned, err = r.CheckAddSpawns()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, spawned)
	assert.True(t, boss.AddsSpawned())
	assert.True(t, r.AnyAddSpawned())

	var placed []*Add
	for a := 0; a < 3; a++ {
		add := r.AddSlot(0, a)
		require.NotNil(t, add)
		placed = append(placed, add)
	}
	player := r.Player()
	for i, a := range placed {
		assert.False(t, combat.Overlaps(a.Pos, a.Size, boss.Pos, boss.Size), "add %d on boss", i)
		assert.False(t, combat.Overlaps(a.Pos, a.Size, player.Pos, player.Size), "add %d on player", i)
		for j := i + 1; j < len(placed); j++ {
			assert.False(t, combat.Overlaps(a.Pos, a.Size, placed[j].Pos, placed[j].Size), "adds %d and %d", i, j)
		}
	}

	boss.HP = boss.MaxHP / 4
	spawned, err = r.CheckAddSpawns()
	require.NoError(t, err)
	assert.Empty(t, spawned)
	for a := 0; a < 3; a++ {
		assert.Same(t, placed[a], r.AddSlot(0, a))
	}
}

func TestPlayerHitFlipsAggro(t *testing.T) {
	r, w := newRegistry(t, 1, 1, 2)
	_, err := r.SpawnAdds(0)
	require.NoError(t, err)
	assert.Equal(t, AggroBoss, r.AddAggro(0, 0))

	add, ok := r.Add(0, 0)
	require.True(t, ok)
	w.AssignAggro(add.Unit, r.Player().Unit)
	assert.Equal(t, AggroPlayer, r.AddAggro(0, 0))
	assert.Equal(t, AggroAbsent, r.AddAggro(0, 1))
}

func TestTargetRoundTrip(t *testing.T) {
	for n := config.MinBossCount; n <= config.MaxBossCount; n++ {
		for h := config.MinAddsPerBoss; h <= config.MaxAddsPerBoss; h++ {
			env, err := config.NewEnv(n, h)
			require.NoError(t, err)

			seen := map[int]bool{0: true}
			for b := 0; b < n; b++ {
				ref := TargetRef{Kind: TargetBoss, Boss: b}
				idx := EncodeTarget(env, ref)
				got, ok := DecodeTarget(env, idx)
				require.True(t, ok)
				assert.Equal(t, ref, got)
				seen[idx] = true
				for a := 0; a < h; a++ {
					ref := TargetRef{Kind: TargetAdd, Boss: b, Add: a}
					idx := EncodeTarget(env, ref)
					got, ok := DecodeTarget(env, idx)
					require.True(t, ok)
					assert.Equal(t, ref, got)
					seen[idx] = true
				}
			}
			assert.Len(t, seen, env.TargetCount())
			_, ok := DecodeTarget(env, env.TargetCount())
			assert.False(t, ok)
			_, ok = DecodeTarget(env, -1)
			assert.False(t, ok)
		}
	}
}

func TestRefOfAndValid(t *testing.T) {
	r, _ := newRegistry(t, 2, 2, 4)
	_, err := r.SpawnAdds(1)
	require.NoError(t, err)
	env := r.Env()

	add := r.AddSlot(1, 1)
	ref := r.RefOf(add.Unit)
	assert.Equal(t, TargetRef{Kind: TargetAdd, Boss: 1, Add: 1}, ref)
	assert.Equal(t, TargetRef{Kind: TargetBoss, Boss: 0}, r.RefOf(r.BossSlot(0).Unit))
	assert.Equal(t, TargetRef{}, r.RefOf(nil))

	assert.True(t, r.Valid(0))
	assert.True(t, r.Valid(EncodeTarget(env, ref)))
	assert.False(t, r.Valid(EncodeTarget(env, TargetRef{Kind: TargetAdd, Boss: 0, Add: 0})))

	r.BossSlot(1).Dying = true
	assert.False(t, r.Valid(EncodeTarget(env, ref)))
	assert.False(t, r.Valid(2))
}

func TestAddFallsBackBesideBoss(t *testing.T) {
	env, err := config.NewEnv(1, 5)
	require.NoError(t, err)
	enc := config.DefaultEncounter()
	// every sample lands inside the boss footprint
	enc.Add.SpawnRadius, enc.Add.SpawnAttempts = 1, 3
	require.NoError(t, enc.Validate(env))
	w := combat.NewWorld(enc.Arena, util.New(4))
	r := New(env, enc, w, util.New(5))
	require.NoError(t, r.Populate())
	quiet := &bytes.Buffer{}
	logging.SetOutput(quiet)
	t.Cleanup(func() { logging.SetOutput(nil) })

	adds, err := r.SpawnAdds(0)
	require.NoError(t, err)
	require.Len(t, adds, 5)
	boss, p := r.BossSlot(0), r.Player()
	for i, a := range adds {
		assert.True(t, w.InBounds(a.Pos.X, a.Pos.Y, a.Size))
		assert.False(t, combat.Overlaps(a.Pos, a.Size, boss.Pos, boss.Size), "add %d inside boss", i)
		assert.False(t, combat.Overlaps(a.Pos, a.Size, p.Pos, p.Size))
		for _, b := range adds[:i] {
			assert.False(t, combat.Overlaps(a.Pos, a.Size, b.Pos, b.Size), "adds %d and %d share a tile", i, b.Index)
		}
	}
	assert.Contains(t, quiet.String(), "add spawn attempts exhausted")
}
