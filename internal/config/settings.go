package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the host-level knobs resolved from flags, environment and an
// optional config file before anything else is constructed.
type Settings struct {
	Env           Env
	RewardFunc    string
	Seed          int64
	EncounterPath string
	// MaxSteps truncates episodes; negative selects Env.DefaultMaxSteps, zero disables.
	MaxSteps      int
	LogLevel      string
	Listen        string
	RewardScripts map[string]string
}

// BindEnv wires viper keys to BOSSGYM_* variables and to the variable names
// the training scripts already export.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix("bossgym")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("boss_count", "BOSSGYM_BOSS_COUNT", "JAD_COUNT")
	_ = v.BindEnv("adds_per_boss", "BOSSGYM_ADDS_PER_BOSS", "HEALERS_PER_JAD")
	_ = v.BindEnv("reward_func", "BOSSGYM_REWARD_FUNC", "REWARD_FUNC")

	v.SetDefault("boss_count", 1)
	v.SetDefault("adds_per_boss", 3)
	v.SetDefault("reward_func", "default")
	v.SetDefault("seed", 1)
	v.SetDefault("encounter", "")
	v.SetDefault("max_steps", -1)
	v.SetDefault("log_level", "info")
	v.SetDefault("listen", "127.0.0.1:8765")
}

func LoadSettings(v *viper.Viper) (Settings, error) {
	env, err := NewEnv(v.GetInt("boss_count"), v.GetInt("adds_per_boss"))
	if err != nil {
		return Settings{}, fmt.Errorf("settings: %w", err)
	}
	s := Settings{
		Env:           env,
		RewardFunc:    strings.TrimSpace(v.GetString("reward_func")),
		Seed:          v.GetInt64("seed"),
		EncounterPath: v.GetString("encounter"),
		MaxSteps:      v.GetInt("max_steps"),
		LogLevel:      v.GetString("log_level"),
		Listen:        v.GetString("listen"),
		RewardScripts: v.GetStringMapString("reward_scripts"),
	}
	if s.RewardFunc == "" {
		return Settings{}, fmt.Errorf("settings: reward_func is empty")
	}
	return s, nil
}

func (s Settings) EffectiveMaxSteps() int {
	if s.MaxSteps < 0 {
		return s.Env.DefaultMaxSteps()
	}
	return s.MaxSteps
}
