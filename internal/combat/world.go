package combat

import (
	"math/rand"

	"bossgym/internal/config"
)

// World is the headless fight: one player, any number of mobs, and the hits
// currently in flight between them.
type World struct {
	Width  int
	Height int
	Time   int
	Rng    *rand.Rand
	Emit   func(Event)

	player  *Player
	units   []*Unit
	pending []pendingHit
}

func NewWorld(arena config.ArenaDef, rng *rand.Rand) *World {
	return &World{Width: arena.Width, Height: arena.Height, Rng: rng}
}

func (w *World) emit(ev Event) {
	if w.Emit != nil {
		w.Emit(ev)
	}
}

func (w *World) Player() *Player { return w.player }
func (w *World) Units() []*Unit  { return w.units }

func (w *World) SpawnPlayer(def config.PlayerDef, items []config.ItemDef, pos Point) *Player {
	w.player = newPlayer(def, items, pos)
	w.emit(Event{T: w.Time, Type: "Spawn", Payload: map[string]any{
		"id": w.player.ID, "x": pos.X, "y": pos.Y, "hp": w.player.HP, "max_hp": w.player.MaxHP,
	}})
	return w.player
}

func (w *World) SpawnBoss(id string, def config.BossDef, pos Point) *Unit {
	u := &Unit{
		ID: id, Kind: KindBoss, HP: def.HP, MaxHP: def.HP, Pos: pos, Size: def.Size,
		AttackSpeed: def.AttackSpeed, AttackDelay: def.AttackSpeed,
		MaxHit: def.MaxHit, FlightDelay: def.FlightDelay,
	}
	w.units = append(w.units, u)
	w.emit(Event{T: w.Time, Type: "Spawn", Payload: map[string]any{
		"id": id, "x": pos.X, "y": pos.Y, "boss": true, "hp": u.HP, "max_hp": u.MaxHP,
	}})
	return u
}

// SpawnAdd places an add that starts out healing parent.
func (w *World) SpawnAdd(id string, def config.AddDef, pos Point, parent *Unit) *Unit {
	u := &Unit{
		ID: id, Kind: KindAdd, HP: def.HP, MaxHP: def.HP, Pos: pos, Size: def.Size,
		AttackSpeed: def.AttackSpeed, AttackDelay: def.HealInterval, MaxHit: def.MaxHit,
		Parent: parent, Aggro: parent,
		healAmount: def.HealAmount, healInterval: def.HealInterval,
	}
	w.units = append(w.units, u)
	w.emit(Event{T: w.Time, Type: "Spawn", Payload: map[string]any{
		"id": id, "x": pos.X, "y": pos.Y, "parent": parent.ID, "hp": u.HP, "max_hp": u.MaxHP,
	}})
	return u
}

func (w *World) InBounds(x, y, size int) bool {
	return x >= 0 && y >= 0 && x+size <= w.Width && y+size <= w.Height
}

// CollidesWithMob reports whether a footprint of size at (x, y) overlaps any
// living mob other than exclude.
func (w *World) CollidesWithMob(x, y, size int, exclude *Unit) bool {
	p := Point{X: x, Y: y}
	for _, u := range w.units {
		if u == exclude || !u.Alive() {
			continue
		}
		if Overlaps(p, size, u.Pos, u.Size) {
			return true
		}
	}
	return false
}

func (w *World) AssignAggro(u, target *Unit) {
	if u == nil || u.Aggro == target {
		return
	}
	u.Aggro = target
	payload := map[string]any{"id": u.ID}
	if target != nil {
		payload["target"] = target.ID
	}
	w.emit(Event{T: w.Time, Type: "Aggro", Payload: payload})
}

// Tick advances the fight by one tick.
func (w *World) Tick() {
	w.Time++
	w.markDying()
	for _, u := range w.units {
		u.style = StyleNone
	}
	if w.player != nil {
		w.player.style = StyleNone
		if w.player.Alive() {
			w.player.drainPrayer()
		}
	}
	for _, u := range w.units {
		switch u.Kind {
		case KindBoss:
			w.bossTick(u)
		case KindAdd:
			w.addTick(u)
		}
	}
	w.playerTick()
	w.landHits()
}

// markDying flags units that hit zero health on an earlier tick.
func (w *World) markDying() {
	mark := func(u *Unit) {
		if u.HP > 0 || u.Dying {
			return
		}
		u.Dying = true
		w.emit(Event{T: w.Time, Type: "Death", Payload: map[string]any{"id": u.ID}})
		if w.player != nil && w.player.Target == u {
			w.player.Target = nil
		}
	}
	if w.player != nil {
		mark(w.player.Unit)
	}
	for _, u := range w.units {
		mark(u)
	}
}

func (w *World) playerTick() {
	p := w.player
	if p == nil || !p.Alive() {
		return
	}
	if p.attackTimer > 0 {
		p.attackTimer--
	}
	t := p.Target
	if t == nil || !t.Alive() || p.attackTimer > 0 {
		return
	}
	p.attackTimer = p.AttackSpeed
	p.style = StyleRange
	w.resolve(pendingHit{attack: Attack{Style: StyleRange, MaxHit: p.maxHit()}, src: p.Unit, dst: t, landAt: w.Time})
	if t.Kind == KindAdd {
		w.AssignAggro(t, p.Unit)
	}
}

func (w *World) landHits() {
	keep := w.pending[:0]
	var due []pendingHit
	for _, h := range w.pending {
		if h.landAt <= w.Time {
			due = append(due, h)
			continue
		}
		keep = append(keep, h)
	}
	w.pending = keep
	for _, h := range due {
		w.resolve(h)
	}
}
