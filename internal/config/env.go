package config

import (
	"errors"
	"fmt"
)

const (
	MinBossCount   = 1
	MaxBossCount   = 6
	MinAddsPerBoss = 0
	MaxAddsPerBoss = 5

	// fixed prayer/potion slots at the tail of the legacy flat action space
	legacyFixedActions = 7
	stepsPerBoss       = 300
)

var (
	ErrBossCount   = errors.New("boss count out of range")
	ErrAddsPerBoss = errors.New("adds per boss out of range")
)

// Env is the shape of an environment: how many bosses and how many adds each
// boss may spawn. Every array size in observations and masks derives from it.
type Env struct {
	BossCount   int `yaml:"boss_count" json:"boss_count"`
	AddsPerBoss int `yaml:"adds_per_boss" json:"adds_per_boss"`
}

func NewEnv(bossCount, addsPerBoss int) (Env, error) {
	e := Env{BossCount: bossCount, AddsPerBoss: addsPerBoss}
	if err := e.Validate(); err != nil {
		return Env{}, err
	}
	return e, nil
}

func (e Env) Validate() error {
	if e.BossCount < MinBossCount || e.BossCount > MaxBossCount {
		return fmt.Errorf("%w: got %d, want %d-%d", ErrBossCount, e.BossCount, MinBossCount, MaxBossCount)
	}
	if e.AddsPerBoss < MinAddsPerBoss || e.AddsPerBoss > MaxAddsPerBoss {
		return fmt.Errorf("%w: got %d, want %d-%d", ErrAddsPerBoss, e.AddsPerBoss, MinAddsPerBoss, MaxAddsPerBoss)
	}
	return nil
}

// AddSlots is the number of add slots across all bosses.
func (e Env) AddSlots() int { return e.BossCount * e.AddsPerBoss }

// TargetCount is the size of the target action head: no-op, every boss, every add slot.
func (e Env) TargetCount() int { return 1 + e.BossCount + e.AddSlots() }

func (e Env) LegacyActionCount() int { return e.TargetCount() + legacyFixedActions }

func (e Env) DefaultMaxSteps() int { return stepsPerBoss * e.BossCount }
