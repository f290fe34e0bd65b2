package combat

import (
	"strings"

	"bossgym/internal/config"
)

type Prayer struct {
	Name     string
	Protects Style
	Group    string
	Drain    float64
	Damage   float64
	active   bool
	owner    *Player
}

func (p *Prayer) IsActive() bool { return p.active }

// Activate switches the prayer on, switching off any prayer sharing its group.
// It refuses when the player has no prayer points left.
func (p *Prayer) Activate(pl *Player) bool {
	if pl == nil || pl.Prayer <= 0 {
		return false
	}
	for _, other := range pl.prayers {
		if other != p && other.Group != "" && other.Group == p.Group {
			other.active = false
		}
	}
	p.active = true
	return true
}

func (p *Prayer) Deactivate() { p.active = false }

type Player struct {
	*Unit
	Prayer      int
	MaxPrayer   int
	Ranged      int
	Defence     int
	BaseRanged  int
	BaseDefence int

	Target    *Unit
	Inventory *Inventory

	prayers     []*Prayer
	drained     float64
	attackTimer int
}

func newPlayer(def config.PlayerDef, items []config.ItemDef, pos Point) *Player {
	name := def.Name
	if name == "" {
		name = "player"
	}
	p := &Player{
		Unit: &Unit{
			ID: name, Kind: KindPlayer, HP: def.HP, MaxHP: def.HP, Pos: pos, Size: 1,
			AttackSpeed: def.AttackSpeed, MaxHit: def.MaxHit,
		},
		Prayer: def.Prayer, MaxPrayer: def.Prayer,
		Ranged: def.Ranged, BaseRanged: def.Ranged,
		Defence: def.Defence, BaseDefence: def.Defence,
		Inventory: NewInventory(items),
	}
	for _, pd := range def.Prayers {
		p.prayers = append(p.prayers, &Prayer{
			Name: pd.Name, Protects: ParseStyle(pd.Protects), Group: pd.Group,
			Drain: pd.Drain, Damage: pd.Damage, owner: p,
		})
	}
	return p
}

// FindPrayer looks a prayer up by name, ignoring case.
func (p *Player) FindPrayer(name string) *Prayer {
	for _, pr := range p.prayers {
		if strings.EqualFold(pr.Name, name) {
			return pr
		}
	}
	return nil
}

// ProtectionPrayer returns the prayer protecting from style, if the player knows one.
func (p *Player) ProtectionPrayer(style Style) *Prayer {
	for _, pr := range p.prayers {
		if style != StyleNone && pr.Protects == style {
			return pr
		}
	}
	return nil
}

// OffensivePrayer returns the first prayer that boosts damage.
func (p *Player) OffensivePrayer() *Prayer {
	for _, pr := range p.prayers {
		if pr.Damage > 0 {
			return pr
		}
	}
	return nil
}

func (p *Player) ActiveProtection() Style {
	for _, pr := range p.prayers {
		if pr.active && pr.Protects != StyleNone {
			return pr.Protects
		}
	}
	return StyleNone
}

func (p *Player) OffensiveActive() bool {
	pr := p.OffensivePrayer()
	return pr != nil && pr.active
}

func (p *Player) SetTarget(u *Unit) { p.Target = u }

func (p *Player) maxHit() int {
	hit := float64(p.MaxHit)
	if p.BaseRanged > 0 {
		hit = hit * float64(p.Ranged) / float64(p.BaseRanged)
	}
	for _, pr := range p.prayers {
		if pr.active && pr.Damage > 0 {
			hit *= pr.Damage
		}
	}
	return int(hit)
}

// drainPrayer removes points for every active prayer and switches all prayers
// off once the points run out.
func (p *Player) drainPrayer() {
	rate := 0.0
	for _, pr := range p.prayers {
		if pr.active {
			rate += pr.Drain
		}
	}
	if rate == 0 {
		return
	}
	p.drained += rate
	for p.drained >= 1 && p.Prayer > 0 {
		p.drained--
		p.Prayer--
	}
	if p.Prayer <= 0 {
		p.Prayer = 0
		p.drained = 0
		for _, pr := range p.prayers {
			pr.active = false
		}
	}
}
