package config

import (
	"errors"
	"fmt"
)

type ArenaDef struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Encounter is everything the headless fight needs besides the Env shape.
type Encounter struct {
	Arena     ArenaDef          `yaml:"arena"`
	Player    PlayerDef         `yaml:"player"`
	Boss      BossDef           `yaml:"boss"`
	Add       AddDef            `yaml:"add"`
	Inventory []ItemDef         `yaml:"inventory"`
	Layouts   map[int][]Vec2Def `yaml:"layouts"` // boss offsets from the player spawn, keyed by boss count
}

// Layout returns boss spawn offsets for n bosses.
func (e *Encounter) Layout(n int) ([]Vec2Def, bool) {
	l, ok := e.Layouts[n]
	if !ok || len(l) != n {
		return nil, false
	}
	return l, true
}

func (e *Encounter) Validate(env Env) error {
	if err := env.Validate(); err != nil {
		return err
	}
	var errs []error
	if e.Arena.Width <= 0 || e.Arena.Height <= 0 {
		errs = append(errs, fmt.Errorf("arena: size must be positive, got %dx%d", e.Arena.Width, e.Arena.Height))
	}
	if e.Player.HP <= 0 {
		errs = append(errs, errors.New("player: hp must be positive"))
	}
	if e.Player.AttackSpeed <= 0 {
		errs = append(errs, errors.New("player: attack_speed must be positive"))
	}
	if e.Boss.HP <= 0 || e.Boss.Size <= 0 {
		errs = append(errs, errors.New("boss: hp and size must be positive"))
	}
	if e.Boss.AttackSpeed <= 1 {
		errs = append(errs, fmt.Errorf("boss: attack_speed must exceed 1, got %d", e.Boss.AttackSpeed))
	}
	if e.Boss.AddsAt <= 0 || e.Boss.AddsAt >= 1 {
		errs = append(errs, fmt.Errorf("boss: adds_at must be in (0,1), got %v", e.Boss.AddsAt))
	}
	if env.AddsPerBoss > 0 {
		if e.Add.HP <= 0 || e.Add.Size <= 0 {
			errs = append(errs, errors.New("add: hp and size must be positive"))
		}
		if e.Add.SpawnAttempts <= 0 || e.Add.SpawnRadius <= 0 {
			errs = append(errs, errors.New("add: spawn_attempts and spawn_radius must be positive"))
		}
	}
	layout, ok := e.Layout(env.BossCount)
	if !ok {
		errs = append(errs, fmt.Errorf("layouts: no %d-boss layout", env.BossCount))
	}
	for i, off := range layout {
		x, y := e.Player.Spawn.X+off.X, e.Player.Spawn.Y+off.Y
		if x < 0 || y < 0 || x+e.Boss.Size > e.Arena.Width || y+e.Boss.Size > e.Arena.Height {
			errs = append(errs, fmt.Errorf("layouts[%d][%d]: boss at (%d,%d) is outside the arena", env.BossCount, i, x, y))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid encounter: %w", errors.Join(errs...))
	}
	return nil
}
