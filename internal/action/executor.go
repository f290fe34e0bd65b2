package action

import (
	"bossgym/internal/combat"
	"bossgym/internal/registry"
)

// Result says what an action actually changed.
type Result struct {
	ProtectionToggled bool
	OffensiveToggled  bool
	Drank             combat.ConsumableKind
	Retargeted        bool
}

type Executor struct {
	reg *registry.Registry
}

func NewExecutor(reg *registry.Registry) *Executor { return &Executor{reg: reg} }

// Apply runs each head in order. Values outside a head, dead targets and
// empty potions are no-ops rather than errors.
func (e *Executor) Apply(a Action) Result {
	var res Result
	p := e.reg.Player()
	if p == nil || !p.Alive() {
		return res
	}
	if a.Protection > 0 && a.Protection < ProtectionValues {
		res.ProtectionToggled = toggle(p, p.ProtectionPrayer(combat.Style(a.Protection)))
	}
	if a.Offensive == 1 {
		res.OffensiveToggled = toggle(p, p.OffensivePrayer())
	}
	if a.Potion > 0 && a.Potion < PotionValues {
		kind := combat.ConsumableKinds[a.Potion-1]
		if p.Consume(p.Inventory.Find(kind)) {
			res.Drank = kind
		}
	}
	if a.Target > 0 {
		if ref, ok := registry.DecodeTarget(e.reg.Env(), a.Target); ok {
			if u, live := e.reg.Resolve(ref); live && p.Target != u {
				p.SetTarget(u)
				res.Retargeted = true
			}
		}
	}
	return res
}

// toggle turns an active prayer off and an inactive one on. Activation fails
// with no prayer points left.
func toggle(p *combat.Player, pr *combat.Prayer) bool {
	if pr == nil {
		return false
	}
	if pr.IsActive() {
		pr.Deactivate()
		return true
	}
	return pr.Activate(p)
}
