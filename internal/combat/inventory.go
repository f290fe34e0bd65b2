package combat

import (
	"math"
	"strings"

	"bossgym/internal/config"
)

// ConsumableKind is resolved once when the inventory is built, so drinking is
// a direct lookup instead of a name scan.
type ConsumableKind int

const (
	ConsumableNone ConsumableKind = iota
	ConsumableBastion
	ConsumableSaraBrew
	ConsumableSuperRestore
)

// ConsumableKinds lists every real kind in action/observation order.
var ConsumableKinds = []ConsumableKind{ConsumableBastion, ConsumableSaraBrew, ConsumableSuperRestore}

// Label is the case-insensitive name fragment identifying the kind.
func (k ConsumableKind) Label() string {
	switch k {
	case ConsumableBastion:
		return "bastion"
	case ConsumableSaraBrew:
		return "saradomin brew"
	case ConsumableSuperRestore:
		return "super restore"
	}
	return ""
}

func (k ConsumableKind) String() string {
	if l := k.Label(); l != "" {
		return l
	}
	return "none"
}

// KindOf classifies an item name by label substring. Two items sharing a label
// fragment resolve to the first matching kind.
func KindOf(name string) ConsumableKind {
	lower := strings.ToLower(name)
	for _, k := range ConsumableKinds {
		if strings.Contains(lower, k.Label()) {
			return k
		}
	}
	return ConsumableNone
}

type Effect struct {
	Type     string
	Stat     string
	Flat     int
	Percent  float64
	Overheal bool
}

type Item struct {
	Name    string
	Kind    ConsumableKind
	Doses   int
	Effects []Effect
}

type Inventory struct {
	Items []*Item
}

func NewInventory(defs []config.ItemDef) *Inventory {
	inv := &Inventory{}
	for _, d := range defs {
		it := &Item{Name: d.Name, Kind: KindOf(d.Name), Doses: d.Doses}
		for _, ef := range d.Effects {
			it.Effects = append(it.Effects, Effect{
				Type: strings.ToLower(ef.Type), Stat: strings.ToLower(ef.Stat),
				Flat: ef.Flat, Percent: ef.Percent, Overheal: ef.Overheal,
			})
		}
		inv.Items = append(inv.Items, it)
	}
	return inv
}

func (inv *Inventory) Doses(kind ConsumableKind) int {
	total := 0
	for _, it := range inv.Items {
		if it.Kind == kind && kind != ConsumableNone {
			total += it.Doses
		}
	}
	return total
}

// Find returns the first item of kind with a dose left.
func (inv *Inventory) Find(kind ConsumableKind) *Item {
	for _, it := range inv.Items {
		if it.Kind == kind && kind != ConsumableNone && it.Doses > 0 {
			return it
		}
	}
	return nil
}

// FindByName returns the first item whose name contains label, ignoring case,
// with a dose left.
func (inv *Inventory) FindByName(label string) *Item {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return nil
	}
	for _, it := range inv.Items {
		if it.Doses > 0 && strings.Contains(strings.ToLower(it.Name), label) {
			return it
		}
	}
	return nil
}

// Consume drinks one dose of item and applies its effect table.
func (p *Player) Consume(item *Item) bool {
	if item == nil || item.Doses <= 0 || !p.Alive() {
		return false
	}
	item.Doses--
	for _, ef := range item.Effects {
		switch ef.Type {
		case "heal":
			amount := ef.Flat + int(math.Floor(ef.Percent*float64(p.MaxHP)))
			ceiling := p.MaxHP
			if ef.Overheal {
				ceiling += amount
			}
			if p.HP < ceiling {
				p.HP = min(p.HP+amount, ceiling)
			}
		case "boost":
			stat, base := p.stat(ef.Stat)
			if stat == nil {
				continue
			}
			boosted := base + ef.Flat + int(math.Floor(ef.Percent*float64(base)))
			if *stat < boosted {
				*stat = boosted
			}
		case "reduce":
			stat, _ := p.stat(ef.Stat)
			if stat == nil {
				continue
			}
			*stat -= ef.Flat + int(math.Floor(ef.Percent*float64(*stat)))
			if *stat < 1 {
				*stat = 1
			}
		case "restore":
			stat, base := p.stat(ef.Stat)
			if stat == nil || *stat >= base {
				continue
			}
			*stat = min(*stat+ef.Flat+int(math.Floor(ef.Percent*float64(base))), base)
		}
	}
	return true
}

func (p *Player) stat(name string) (*int, int) {
	switch name {
	case "ranged":
		return &p.Ranged, p.BaseRanged
	case "defence":
		return &p.Defence, p.BaseDefence
	case "prayer":
		return &p.Prayer, p.MaxPrayer
	}
	return nil, 0
}
