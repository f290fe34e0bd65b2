package registry

import (
	"fmt"
	"math/rand"
	"strings"

	"bossgym/internal/combat"
	"bossgym/internal/config"
	"bossgym/internal/logging"
)

// Region is the slice of the fight the registry spawns into.
type Region interface {
	SpawnPlayer(def config.PlayerDef, items []config.ItemDef, pos combat.Point) *combat.Player
	SpawnBoss(id string, def config.BossDef, pos combat.Point) *combat.Unit
	SpawnAdd(id string, def config.AddDef, pos combat.Point, parent *combat.Unit) *combat.Unit
	InBounds(x, y, size int) bool
	CollidesWithMob(x, y, size int, exclude *combat.Unit) bool
}

type Boss struct {
	*combat.Unit
	Index int
	// AttackOrder is the boss's slot in this episode's shuffled attack rotation.
	AttackOrder int

	trigger combat.Threshold
}

// AddsSpawned reports whether the boss has crossed its add threshold.
func (b *Boss) AddsSpawned() bool { return b.trigger.Fired() }

type Add struct {
	*combat.Unit
	Boss  int
	Index int
}

type AggroKind int

const (
	AggroAbsent AggroKind = iota
	AggroBoss
	AggroPlayer
)

func (k AggroKind) String() string {
	switch k {
	case AggroBoss:
		return "boss"
	case AggroPlayer:
		return "player"
	}
	return "absent"
}

// Registry holds every boss and add of one episode under stable indices.
// Entities are never removed, only reported absent once dead.
type Registry struct {
	env    config.Env
	enc    *config.Encounter
	region Region
	rng    *rand.Rand

	player *combat.Player
	bosses []*Boss
	adds   [][]*Add
}

func New(env config.Env, enc *config.Encounter, region Region, rng *rand.Rand) *Registry {
	r := &Registry{env: env, enc: enc, region: region, rng: rng}
	r.adds = make([][]*Add, env.BossCount)
	for i := range r.adds {
		r.adds[i] = make([]*Add, env.AddsPerBoss)
	}
	return r
}

// Populate spawns the player and every boss at the layout for the configured
// boss count, with attack offsets spread over one attack cycle in a shuffled order.
func (r *Registry) Populate() error {
	if r.player != nil {
		return fmt.Errorf("registry already populated")
	}
	n := r.env.BossCount
	layout, ok := r.enc.Layout(n)
	if !ok {
		return fmt.Errorf("no spawn layout for %d bosses", n)
	}
	spawn := combat.Point{X: r.enc.Player.Spawn.X, Y: r.enc.Player.Spawn.Y}
	r.player = r.region.SpawnPlayer(r.enc.Player, r.enc.Inventory, spawn)

	order := r.rng.Perm(n)
	speed := r.enc.Boss.AttackSpeed
	name := strings.ToLower(r.enc.Boss.Name)
	if name == "" {
		name = "boss"
	}
	for i := 0; i < n; i++ {
		pos := spawn.Add(combat.Point{X: layout[i].X, Y: layout[i].Y})
		u := r.region.SpawnBoss(fmt.Sprintf("%s_%d", name, i+1), r.enc.Boss, pos)
		u.AttackDelay = 1 + order[i]*speed/n
		r.bosses = append(r.bosses, &Boss{
			Unit: u, Index: i, AttackOrder: order[i],
			trigger: combat.Threshold{Ratio: r.enc.Boss.AddsAt},
		})
	}
	logging.Debug("registry populated", logging.Fields{"bosses": n, "order": order})
	return nil
}

func (r *Registry) Env() config.Env        { return r.env }
func (r *Registry) Player() *combat.Player { return r.player }
func (r *Registry) Bosses() []*Boss        { return r.bosses }

// BossSlot returns the boss stored at i whether or not it is alive.
func (r *Registry) BossSlot(i int) *Boss {
	if i < 0 || i >= len(r.bosses) {
		return nil
	}
	return r.bosses[i]
}

// Boss returns the boss at i if it is alive. Health and the dying flag are
// both checked since the flag lags health by one tick.
func (r *Registry) Boss(i int) (*Boss, bool) {
	b := r.BossSlot(i)
	if b == nil || b.Dying || b.HP <= 0 {
		return nil, false
	}
	return b, true
}

// AddSlot returns the add stored at (b, a) whether or not it is alive.
func (r *Registry) AddSlot(b, a int) *Add {
	if b < 0 || b >= len(r.adds) || a < 0 || a >= r.env.AddsPerBoss {
		return nil
	}
	return r.adds[b][a]
}

// Add returns the add at (b, a) if it and its parent boss are both alive.
func (r *Registry) Add(b, a int) (*Add, bool) {
	add := r.AddSlot(b, a)
	if add == nil || add.Dying || add.HP <= 0 {
		return nil, false
	}
	if _, ok := r.Boss(b); !ok {
		return nil, false
	}
	return add, true
}

func (r *Registry) RegisterAdd(b, a int, u *combat.Unit) (*Add, error) {
	if b < 0 || b >= r.env.BossCount || a < 0 || a >= r.env.AddsPerBoss {
		return nil, fmt.Errorf("add slot (%d,%d) out of range for %d bosses x %d adds", b, a, r.env.BossCount, r.env.AddsPerBoss)
	}
	if r.adds[b][a] != nil {
		return nil, fmt.Errorf("add slot (%d,%d) already registered", b, a)
	}
	add := &Add{Unit: u, Boss: b, Index: a}
	r.adds[b][a] = add
	return add, nil
}

// SpawnAdds fills every add slot of boss b.
func (r *Registry) SpawnAdds(b int) ([]*Add, error) {
	boss := r.BossSlot(b)
	if boss == nil {
		return nil, fmt.Errorf("spawn adds: no boss %d", b)
	}
	name := strings.ToLower(r.enc.Add.Name)
	if name == "" {
		name = "add"
	}
	var out []*Add
	for a := 0; a < r.env.AddsPerBoss; a++ {
		if r.adds[b][a] != nil {
			continue
		}
		pos := r.addPosition(boss)
		u := r.region.SpawnAdd(fmt.Sprintf("%s_%d.%d", name, b+1, a+1), r.enc.Add, pos, boss.Unit)
		add, err := r.RegisterAdd(b, a, u)
		if err != nil {
			return out, err
		}
		out = append(out, add)
	}
	return out, nil
}

// addPosition samples a tile around the boss by rejection: a candidate must
// lie inside the arena and clear every mob and the player. After the attempt
// budget it settles for a tile beside the boss.
func (r *Registry) addPosition(boss *Boss) combat.Point {
	radius := r.enc.Add.SpawnRadius
	size := r.enc.Add.Size
	center := boss.Pos.Add(combat.Point{X: boss.Size / 2, Y: boss.Size / 2})
	for try := 0; try < r.enc.Add.SpawnAttempts; try++ {
		c := center.Add(combat.Point{X: r.rng.Intn(2*radius+1) - radius, Y: r.rng.Intn(2*radius+1) - radius})
		if r.free(c, size) {
			return c
		}
	}
	pos, free := r.besideBoss(boss, size)
	logging.Info("add spawn attempts exhausted", logging.Fields{
		"boss": boss.Index, "attempts": r.enc.Add.SpawnAttempts, "x": pos.X, "y": pos.Y, "free": free,
	})
	return pos
}

func (r *Registry) free(c combat.Point, size int) bool {
	return r.region.InBounds(c.X, c.Y, size) &&
		!r.region.CollidesWithMob(c.X, c.Y, size, nil) &&
		!combat.Overlaps(c, size, r.player.Pos, r.player.Size)
}

// besideBoss scans the ring of tiles touching the boss footprint, player side
// first. free is false when every ring tile is taken and one had to be shared.
func (r *Registry) besideBoss(boss *Boss, size int) (pos combat.Point, free bool) {
	var spare *combat.Point
	for y := boss.Pos.Y + boss.Size; y >= boss.Pos.Y-size; y-- {
		for x := boss.Pos.X - size; x <= boss.Pos.X+boss.Size; x++ {
			c := combat.Point{X: x, Y: y}
			if combat.Overlaps(c, size, boss.Pos, boss.Size) || !r.region.InBounds(x, y, size) {
				continue
			}
			if r.free(c, size) {
				return c, true
			}
			if spare == nil {
				spare = &c
			}
		}
	}
	if spare != nil {
		return *spare, false
	}
	return boss.Pos.Add(combat.Point{X: boss.Size / 2, Y: boss.Size}), false
}

// CheckAddSpawns fires each living boss's add threshold and spawns its adds
// the first time it trips. It returns the indices of bosses that spawned.
func (r *Registry) CheckAddSpawns() ([]int, error) {
	var spawned []int
	for i, b := range r.bosses {
		if _, ok := r.Boss(i); !ok {
			continue
		}
		if !b.trigger.Check(b.Unit) {
			continue
		}
		if _, err := r.SpawnAdds(i); err != nil {
			return spawned, err
		}
		spawned = append(spawned, i)
		logging.Debug("adds spawned", logging.Fields{"boss": i, "hp": b.HP, "count": r.env.AddsPerBoss})
	}
	return spawned, nil
}

func (r *Registry) AnyAddSpawned() bool {
	for _, slots := range r.adds {
		for _, a := range slots {
			if a != nil {
				return true
			}
		}
	}
	return false
}

// AllBossesDefeated is evaluated fresh on every call.
func (r *Registry) AllBossesDefeated() bool {
	for i := 0; i < r.env.BossCount; i++ {
		b := r.BossSlot(i)
		if b == nil {
			return false
		}
		if b.HP > 0 && !b.Dying {
			return false
		}
	}
	return true
}

func (r *Registry) AddAggro(b, a int) AggroKind {
	add, ok := r.Add(b, a)
	if !ok || add.Aggro == nil {
		return AggroAbsent
	}
	if r.player != nil && add.Aggro == r.player.Unit {
		return AggroPlayer
	}
	return AggroBoss
}
