package config

type PlayerDef struct {
	Name        string      `yaml:"name"`
	HP          int         `yaml:"hp"`
	Prayer      int         `yaml:"prayer"`
	Ranged      int         `yaml:"ranged"`
	Defence     int         `yaml:"defence"`
	AttackSpeed int         `yaml:"attack_speed"`
	MaxHit      int         `yaml:"max_hit"`
	Spawn       Vec2Def     `yaml:"spawn"`
	Prayers     []PrayerDef `yaml:"prayers"`
	Note        string      `yaml:"note"`
}

type PrayerDef struct {
	Name string `yaml:"name"`
	// Protects is one of magic, range, melee; empty for offensive prayers.
	Protects string `yaml:"protects"`
	// Group names a set of mutually exclusive prayers.
	Group string  `yaml:"group"`
	Drain float64 `yaml:"drain"`
	// Damage multiplies the player's max hit while active.
	Damage float64 `yaml:"damage"`
}

type Vec2Def struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}
