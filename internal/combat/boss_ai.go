package combat

// bossTick runs a boss's attack cycle: count down, then launch at the player.
// Magic and range fly for FlightDelay ticks; melee lands immediately and is
// only used when the player is adjacent.
func (w *World) bossTick(b *Unit) {
	p := w.player
	if !b.Alive() || p == nil || !p.Alive() {
		return
	}
	b.AttackDelay--
	if b.AttackDelay > 0 {
		return
	}
	b.AttackDelay = b.AttackSpeed
	style := w.pickBossStyle(b, p.Unit)
	b.style = style
	delay := b.FlightDelay
	if style == StyleMelee {
		delay = 0
	}
	w.pending = append(w.pending, pendingHit{
		attack: Attack{Style: style, MaxHit: b.MaxHit, Delay: delay},
		src:    b, dst: p.Unit, landAt: w.Time + delay,
	})
	w.emit(Event{T: w.Time, Type: "Cast", Payload: map[string]any{
		"caster": b.ID, "style": style.String(), "lands_at": w.Time + delay,
	}})
}

func (w *World) pickBossStyle(b, target *Unit) Style {
	if b.reach(target) <= 1 {
		return []Style{StyleMagic, StyleRange, StyleMelee}[w.Rng.Intn(3)]
	}
	if w.Rng.Intn(2) == 0 {
		return StyleMagic
	}
	return StyleRange
}
