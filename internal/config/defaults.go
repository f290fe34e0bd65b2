package config

func DefaultEncounter() *Encounter {
	return &Encounter{
		Arena: ArenaDef{Width: 27, Height: 27},
		Player: PlayerDef{
			Name: "player", HP: 99, Prayer: 99, Ranged: 99, Defence: 99,
			AttackSpeed: 5, MaxHit: 35,
			Spawn: Vec2Def{X: 13, Y: 22},
			Prayers: []PrayerDef{
				{Name: "Protect from Magic", Protects: "magic", Group: "protect", Drain: 0.2},
				{Name: "Protect from Missiles", Protects: "range", Group: "protect", Drain: 0.2},
				{Name: "Protect from Melee", Protects: "melee", Group: "protect", Drain: 0.2},
				{Name: "Rigour", Group: "offensive", Drain: 0.4, Damage: 1.23},
			},
		},
		Boss: BossDef{
			Name: "Jad", HP: 350, Size: 3, AttackSpeed: 8, MaxHit: 97, FlightDelay: 3, AddsAt: 0.5,
		},
		Add: AddDef{
			Name: "Healer", HP: 90, Size: 1, HealAmount: 20, HealInterval: 4,
			AttackSpeed: 4, MaxHit: 13, SpawnRadius: 4, SpawnAttempts: 50,
		},
		Inventory: []ItemDef{
			{Name: "Bastion potion(4)", Doses: 4, Effects: []EffectDef{
				{Type: "boost", Stat: "ranged", Flat: 4, Percent: 0.10},
				{Type: "boost", Stat: "defence", Flat: 5, Percent: 0.15},
			}},
			{Name: "Saradomin brew(4)", Doses: 4, Effects: []EffectDef{
				{Type: "heal", Stat: "hp", Flat: 2, Percent: 0.15, Overheal: true},
				{Type: "boost", Stat: "defence", Flat: 2, Percent: 0.20},
				{Type: "reduce", Stat: "ranged", Flat: 2, Percent: 0.10},
			}},
			{Name: "Super restore(4)", Doses: 4, Effects: []EffectDef{
				{Type: "restore", Stat: "prayer", Flat: 8, Percent: 0.25},
				{Type: "restore", Stat: "ranged", Flat: 8, Percent: 0.25},
				{Type: "restore", Stat: "defence", Flat: 8, Percent: 0.25},
			}},
		},
		Layouts: map[int][]Vec2Def{
			1: {{X: -1, Y: -10}},
			2: {{X: -7, Y: -10}, {X: 5, Y: -10}},
			3: {{X: -9, Y: -8}, {X: -1, Y: -11}, {X: 7, Y: -8}},
			4: {{X: -10, Y: -7}, {X: -4, Y: -11}, {X: 2, Y: -11}, {X: 8, Y: -7}},
			5: {{X: -11, Y: -5}, {X: -7, Y: -11}, {X: -1, Y: -14}, {X: 5, Y: -11}, {X: 9, Y: -5}},
			6: {{X: -10, Y: -4}, {X: -9, Y: -10}, {X: -3, Y: -13}, {X: 3, Y: -13}, {X: 9, Y: -10}, {X: 10, Y: -4}},
		},
	}
}
