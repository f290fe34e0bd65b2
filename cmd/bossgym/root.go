package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bossgym/internal/config"
	"bossgym/internal/episode"
	"bossgym/internal/logging"
	"bossgym/internal/reward"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "bossgym",
	Short: "Boss encounter environment for reinforcement learning",
	Long: `bossgym runs a tick-based boss fight as a steppable environment and
serves it to an external trainer over a line-delimited JSON protocol.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "settings file (yaml, json or toml)")
	pf.Int("boss-count", 1, "number of bosses (1-6)")
	pf.Int("adds-per-boss", 3, "adds each boss spawns at half health (0-5)")
	pf.String("reward", reward.Default, "reward function name")
	pf.Int64("seed", 1, "base seed; each episode derives its own")
	pf.String("encounter", "", "encounter yaml overriding the built-in fight")
	pf.Int("max-steps", -1, "truncate episodes after this many steps (0 disables, negative uses 300 per boss)")
	pf.String("log-level", "info", "debug, info or error")

	for key, flag := range map[string]string{
		"boss_count":    "boss-count",
		"adds_per_boss": "adds-per-boss",
		"reward_func":   "reward",
		"seed":          "seed",
		"encounter":     "encounter",
		"max_steps":     "max-steps",
		"log_level":     "log-level",
	} {
		_ = v.BindPFlag(key, pf.Lookup(flag))
	}
	config.BindEnv(v)
}

func initConfig() error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}
	level, err := logging.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return err
	}
	logging.SetLevel(level)
	return nil
}

// app is everything resolved from settings before any environment exists.
type app struct {
	settings  config.Settings
	encounter *config.Encounter
	rewards   *reward.Registry
	reward    reward.Func
}

func loadApp() (*app, error) {
	s, err := config.LoadSettings(v)
	if err != nil {
		return nil, err
	}
	enc, err := config.LoadEncounter(s.EncounterPath)
	if err != nil {
		return nil, err
	}
	if err := enc.Validate(s.Env); err != nil {
		return nil, err
	}
	rewards := reward.NewRegistry()
	if err := rewards.RegisterScripts(s.RewardScripts); err != nil {
		return nil, err
	}
	f, err := rewards.Get(s.RewardFunc)
	if err != nil {
		return nil, err
	}
	logging.Info("settings loaded", logging.Fields{
		"boss_count": s.Env.BossCount, "adds_per_boss": s.Env.AddsPerBoss,
		"reward": s.RewardFunc, "seed": s.Seed, "max_steps": s.EffectiveMaxSteps(),
	})
	return &app{settings: s, encounter: enc, rewards: rewards, reward: f}, nil
}

func (a *app) controller(seed int64) (*episode.Controller, error) {
	return episode.New(episode.Options{
		Env:        a.settings.Env,
		Encounter:  a.encounter,
		Reward:     a.reward,
		RewardName: a.settings.RewardFunc,
		Seed:       seed,
		MaxSteps:   a.settings.MaxSteps,
	})
}
