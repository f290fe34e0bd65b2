package observation

import (
	"bossgym/internal/combat"
	"bossgym/internal/registry"
	"bossgym/internal/tracker"
)

type Doses struct {
	Bastion      int `json:"bastion"`
	SaraBrew     int `json:"sara_brew"`
	SuperRestore int `json:"super_restore"`
}

func DosesOf(p *combat.Player) Doses {
	if p == nil {
		return Doses{}
	}
	return Doses{
		Bastion:      p.Inventory.Doses(combat.ConsumableBastion),
		SaraBrew:     p.Inventory.Doses(combat.ConsumableSaraBrew),
		SuperRestore: p.Inventory.Doses(combat.ConsumableSuperRestore),
	}
}

// Of returns the count for one consumable kind.
func (d Doses) Of(kind combat.ConsumableKind) int {
	switch kind {
	case combat.ConsumableBastion:
		return d.Bastion
	case combat.ConsumableSaraBrew:
		return d.SaraBrew
	case combat.ConsumableSuperRestore:
		return d.SuperRestore
	}
	return 0
}

type BossState struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	// Attack is the style in flight, AttackTicks the ticks it stays visible.
	Attack      combat.Style `json:"attack"`
	AttackTicks int          `json:"attack_ticks"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Alive       bool         `json:"alive"`
}

type AddState struct {
	HP    int                `json:"hp"`
	MaxHP int                `json:"max_hp"`
	X     int                `json:"x"`
	Y     int                `json:"y"`
	Aggro registry.AggroKind `json:"aggro"`
}

// Observation is one tick's snapshot. Bosses has BossCount entries and Adds
// BossCount*AddsPerBoss, boss-major.
type Observation struct {
	PlayerHP      int `json:"player_hp"`
	PlayerMaxHP   int `json:"player_max_hp"`
	PlayerPrayer  int `json:"player_prayer"`
	PlayerRanged  int `json:"player_ranged"`
	PlayerDefence int `json:"player_defence"`
	PlayerX       int `json:"player_location_x"`
	PlayerY       int `json:"player_location_y"`
	PlayerTarget  int `json:"player_target"`

	ActivePrayer combat.Style `json:"active_prayer"`
	RigourActive bool         `json:"rigour_active"`

	BastionDoses              int `json:"bastion_doses"`
	SaraBrewDoses             int `json:"sara_brew_doses"`
	SuperRestoreDoses         int `json:"super_restore_doses"`
	StartingBastionDoses      int `json:"starting_bastion_doses"`
	StartingSaraBrewDoses     int `json:"starting_sara_brew_doses"`
	StartingSuperRestoreDoses int `json:"starting_super_restore_doses"`

	Bosses      []BossState `json:"bosses"`
	Adds        []AddState  `json:"adds"`
	AddsSpawned bool        `json:"adds_spawned"`

	BossCount   int `json:"boss_count"`
	AddsPerBoss int `json:"adds_per_boss"`
}

type Input struct {
	Registry      *registry.Registry
	Attacks       []tracker.State
	StartingDoses Doses
}

// Build snapshots the registry. It reads state only.
func Build(in Input) Observation {
	reg := in.Registry
	env := reg.Env()
	p := reg.Player()
	doses := DosesOf(p)

	obs := Observation{
		PlayerHP: p.HP, PlayerMaxHP: p.MaxHP, PlayerPrayer: p.Prayer,
		PlayerRanged: p.Ranged, PlayerDefence: p.Defence,
		PlayerX: p.Pos.X, PlayerY: p.Pos.Y,
		ActivePrayer: p.ActiveProtection(),
		RigourActive: p.OffensiveActive(),

		BastionDoses: doses.Bastion, SaraBrewDoses: doses.SaraBrew, SuperRestoreDoses: doses.SuperRestore,
		StartingBastionDoses:      in.StartingDoses.Bastion,
		StartingSaraBrewDoses:     in.StartingDoses.SaraBrew,
		StartingSuperRestoreDoses: in.StartingDoses.SuperRestore,

		Bosses:      make([]BossState, env.BossCount),
		Adds:        make([]AddState, env.AddSlots()),
		AddsSpawned: reg.AnyAddSpawned(),
		BossCount:   env.BossCount,
		AddsPerBoss: env.AddsPerBoss,
	}
	if idx := registry.EncodeTarget(env, reg.RefOf(p.Target)); reg.Valid(idx) {
		obs.PlayerTarget = idx
	}

	for i := range obs.Bosses {
		slot := reg.BossSlot(i)
		if slot == nil {
			continue
		}
		bs := BossState{HP: max(slot.HP, 0), MaxHP: slot.MaxHP, X: slot.Pos.X, Y: slot.Pos.Y}
		_, bs.Alive = reg.Boss(i)
		// a projectile outlives its caster, so the window stays visible
		if i < len(in.Attacks) && in.Attacks[i].InFlight() {
			bs.Attack = in.Attacks[i].Style
			bs.AttackTicks = in.Attacks[i].Remaining
		}
		obs.Bosses[i] = bs
	}

	for b := 0; b < env.BossCount; b++ {
		for a := 0; a < env.AddsPerBoss; a++ {
			slot := reg.AddSlot(b, a)
			if slot == nil {
				continue
			}
			as := AddState{MaxHP: slot.MaxHP, X: slot.Pos.X, Y: slot.Pos.Y, Aggro: reg.AddAggro(b, a)}
			if _, ok := reg.Add(b, a); ok {
				as.HP = slot.HP
			}
			obs.Adds[b*env.AddsPerBoss+a] = as
		}
	}
	return obs
}

// TotalBossHP sums the health of every boss slot.
func (o Observation) TotalBossHP() int {
	total := 0
	for _, b := range o.Bosses {
		total += b.HP
	}
	return total
}

func (o Observation) TotalBossMaxHP() int {
	total := 0
	for _, b := range o.Bosses {
		total += b.MaxHP
	}
	return total
}
