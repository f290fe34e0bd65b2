package combat

import (
	"math/rand"
	"strings"
)

// Style is the closed set of attack variants. The first four values double as
// the protection-prayer enum: none, magic, range, melee.
type Style int

const (
	StyleNone Style = iota
	StyleMagic
	StyleRange
	StyleMelee
	StyleHeal
)

func (s Style) String() string {
	switch s {
	case StyleMagic:
		return "magic"
	case StyleRange:
		return "range"
	case StyleMelee:
		return "melee"
	case StyleHeal:
		return "heal"
	}
	return "none"
}

func ParseStyle(s string) Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "magic", "mage":
		return StyleMagic
	case "range", "ranged", "missiles":
		return StyleRange
	case "melee":
		return StyleMelee
	case "heal":
		return StyleHeal
	}
	return StyleNone
}

// Protectable reports whether a protection prayer can negate the style.
func (s Style) Protectable() bool { return s == StyleMagic || s == StyleRange || s == StyleMelee }

// Attack is one launched attack. Heal is an attack with negative damage.
type Attack struct {
	Style  Style
	MaxHit int
	Delay  int
}

// Roll returns the hit point delta the attack inflicts: positive damage,
// negative healing, zero when blocked.
func (a Attack) Roll(rng *rand.Rand, blocked bool) int {
	if blocked || a.MaxHit <= 0 {
		return 0
	}
	amount := rng.Intn(a.MaxHit + 1)
	if a.Style == StyleHeal {
		return -amount
	}
	return amount
}

type pendingHit struct {
	attack Attack
	src    *Unit
	dst    *Unit
	landAt int
}

// resolve lands a hit. Damage against the player is negated by a matching
// protection prayer active at landing time.
func (w *World) resolve(h pendingHit) {
	if h.dst.Dying {
		return
	}
	blocked := false
	if w.player != nil && h.dst == w.player.Unit && h.attack.Style.Protectable() {
		blocked = w.player.ActiveProtection() == h.attack.Style
	}
	delta := h.attack.Roll(w.Rng, blocked)
	before := h.dst.HP
	h.dst.HP -= delta
	if h.dst.HP < 0 {
		h.dst.HP = 0
	}
	if h.dst.HP > h.dst.MaxHP && delta < 0 {
		h.dst.HP = max(h.dst.MaxHP, before)
	}
	w.emit(Event{T: w.Time, Type: "Hit", Payload: map[string]any{
		"style": h.attack.Style.String(), "delta": delta, "blocked": blocked,
		"caster": h.src.ID, "target": h.dst.ID, "hp": h.dst.HP,
	}})
}
