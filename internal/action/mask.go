package action

import (
	"bossgym/internal/combat"
	"bossgym/internal/registry"
)

// Mask holds one legality slice per head.
type Mask [][]bool

// ComputeMask reads live registry state. Prayer heads are always open; zero
// prayer points are handled when the toggle runs.
func ComputeMask(reg *registry.Registry) Mask {
	env := reg.Env()
	m := Mask{
		make([]bool, ProtectionValues),
		make([]bool, OffensiveValues),
		make([]bool, PotionValues),
		make([]bool, env.TargetCount()),
	}
	for i := range m[HeadProtection] {
		m[HeadProtection][i] = true
	}
	for i := range m[HeadOffensive] {
		m[HeadOffensive][i] = true
	}

	m[HeadPotion][0] = true
	if p := reg.Player(); p != nil {
		for i, kind := range combat.ConsumableKinds {
			m[HeadPotion][i+1] = p.Inventory.Doses(kind) > 0
		}
	}
	for i := range m[HeadTarget] {
		m[HeadTarget][i] = reg.Valid(i)
	}
	return m
}

func (m Mask) Valid(head, idx int) bool {
	if head < 0 || head >= len(m) || idx < 0 || idx >= len(m[head]) {
		return false
	}
	return m[head][idx]
}

// Allows reports whether every head of a is marked valid.
func (m Mask) Allows(a Action) bool {
	for h := 0; h < Heads; h++ {
		if !m.Valid(h, a.Head(h)) {
			return false
		}
	}
	return true
}

// Options lists the valid indices of one head.
func (m Mask) Options(head int) []int {
	var out []int
	if head < 0 || head >= len(m) {
		return out
	}
	for i, ok := range m[head] {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
