package combat

// addTick walks an add to its aggro target, then either heals it (boss aggro)
// or hits it in melee (player aggro). An add whose target is gone idles.
func (w *World) addTick(a *Unit) {
	if !a.Alive() {
		return
	}
	t := a.Aggro
	if t == nil || !t.Alive() {
		return
	}
	if a.reach(t) > 1 {
		w.moveToward(a, t)
		return
	}
	if a.AttackDelay > 0 {
		a.AttackDelay--
	}
	if a.AttackDelay > 0 {
		return
	}
	if t.Kind == KindBoss {
		a.AttackDelay = a.healInterval
		a.style = StyleHeal
		w.resolve(pendingHit{attack: Attack{Style: StyleHeal, MaxHit: a.healAmount}, src: a, dst: t, landAt: w.Time})
		return
	}
	a.AttackDelay = a.AttackSpeed
	a.style = StyleMelee
	w.pending = append(w.pending, pendingHit{attack: Attack{Style: StyleMelee, MaxHit: a.MaxHit}, src: a, dst: t, landAt: w.Time})
}

func (w *World) moveToward(a, t *Unit) {
	next := a.Pos.Step(t.Pos)
	candidates := []Point{next, {X: next.X, Y: a.Pos.Y}, {X: a.Pos.X, Y: next.Y}}
	for _, c := range candidates {
		if c == a.Pos || !w.InBounds(c.X, c.Y, a.Size) {
			continue
		}
		if w.CollidesWithMob(c.X, c.Y, a.Size, a) {
			continue
		}
		if w.player != nil && Overlaps(c, a.Size, w.player.Pos, w.player.Size) {
			continue
		}
		old := a.Pos
		a.Pos = c
		w.emit(Event{T: w.Time, Type: "Move", Payload: map[string]any{
			"id": a.ID, "from": []int{old.X, old.Y}, "to": []int{c.X, c.Y},
		}})
		return
	}
}
