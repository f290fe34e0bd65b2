package config

type BossDef struct {
	Name        string `yaml:"name"`
	HP          int    `yaml:"hp"`
	Size        int    `yaml:"size"`
	AttackSpeed int    `yaml:"attack_speed"`
	MaxHit      int    `yaml:"max_hit"`
	FlightDelay int    `yaml:"flight_delay"`
	// AddsAt is the health ratio at or below which a boss calls its adds.
	AddsAt float64 `yaml:"adds_at"`
	Note   string  `yaml:"note"`
}

type AddDef struct {
	Name          string `yaml:"name"`
	HP            int    `yaml:"hp"`
	Size          int    `yaml:"size"`
	HealAmount    int    `yaml:"heal_amount"`
	HealInterval  int    `yaml:"heal_interval"`
	AttackSpeed   int    `yaml:"attack_speed"`
	MaxHit        int    `yaml:"max_hit"`
	SpawnRadius   int    `yaml:"spawn_radius"`
	SpawnAttempts int    `yaml:"spawn_attempts"`
	Note          string `yaml:"note"`
}
