package config

type ItemDef struct {
	Name    string      `yaml:"name"`
	Doses   int         `yaml:"doses"`
	Effects []EffectDef `yaml:"effects"`
	Note    string      `yaml:"note"`
}

// EffectDef is one line of a consumable's effect table. Type is one of heal,
// boost, reduce or restore; Stat is hp, prayer, ranged or defence.
type EffectDef struct {
	Type     string  `yaml:"type"`
	Stat     string  `yaml:"stat"`
	Flat     int     `yaml:"flat"`
	Percent  float64 `yaml:"percent"`
	Overheal bool    `yaml:"overheal"`
}
