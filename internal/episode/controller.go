package episode

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"bossgym/internal/action"
	"bossgym/internal/combat"
	"bossgym/internal/config"
	"bossgym/internal/logging"
	"bossgym/internal/observation"
	"bossgym/internal/registry"
	"bossgym/internal/reward"
	"bossgym/internal/tracker"
	"bossgym/internal/util"
)

var ErrNotReset = errors.New("episode not reset")

type Options struct {
	Env        config.Env
	Encounter  *config.Encounter
	Reward     reward.Func
	RewardName string
	Seed       int64
	// MaxSteps truncates episodes; zero disables, negative uses Env.DefaultMaxSteps.
	MaxSteps int
	// Emit receives combat events when set.
	Emit func(combat.Event)
}

// StepResult follows the usual split: Terminated for a decided fight,
// Truncated for running out of steps.
type StepResult struct {
	Observation observation.Observation `json:"observation"`
	Reward      float64                 `json:"reward"`
	Terminated  bool                    `json:"terminated"`
	Truncated   bool                    `json:"truncated"`
	Termination observation.Termination `json:"termination"`
	Mask        action.Mask             `json:"validity_mask"`
	Steps       int                     `json:"steps"`
}

// Done reports whether the episode is over either way.
func (r StepResult) Done() bool { return r.Terminated || r.Truncated }

type Space struct {
	ActionShape    []int  `json:"action_shape"`
	LegacyActions  int    `json:"legacy_actions"`
	ObservationDim int    `json:"observation_dim"`
	BossCount      int    `json:"boss_count"`
	AddsPerBoss    int    `json:"adds_per_boss"`
	Reward         string `json:"reward"`
	MaxSteps       int    `json:"max_steps"`
	// NormalizeMask marks the observation_vector entries worth normalizing.
	NormalizeMask  []bool `json:"normalize_mask"`
}

// Controller runs one episode at a time. Reset throws the previous world and
// registry away.
type Controller struct {
	opts     Options
	maxSteps int
	episode  int

	world    *combat.World
	reg      *registry.Registry
	exec     *action.Executor
	trackers []*tracker.Tracker
	machine  *fsm.FSM

	start observation.Doses
	prev  *observation.Observation
	last  StepResult
	steps int
	total float64
}

func New(opts Options) (*Controller, error) {
	if err := opts.Env.Validate(); err != nil {
		return nil, err
	}
	if opts.Encounter == nil {
		opts.Encounter = config.DefaultEncounter()
	}
	if err := opts.Encounter.Validate(opts.Env); err != nil {
		return nil, err
	}
	if opts.Reward == nil {
		return nil, fmt.Errorf("episode: reward func is required")
	}
	limit := opts.MaxSteps
	if limit < 0 {
		limit = opts.Env.DefaultMaxSteps()
	}
	return &Controller{opts: opts, maxSteps: limit}, nil
}

func (c *Controller) Space() Space {
	env := c.opts.Env
	return Space{
		ActionShape:    action.Shape(env),
		LegacyActions:  env.LegacyActionCount(),
		ObservationDim: observation.Dim(env),
		BossCount:      env.BossCount,
		AddsPerBoss:    env.AddsPerBoss,
		Reward:         c.opts.RewardName,
		MaxSteps:       c.maxSteps,
		NormalizeMask:  observation.NormalizeMask(env),
	}
}

func (c *Controller) Env() config.Env              { return c.opts.Env }
func (c *Controller) Episode() int                 { return c.episode }
func (c *Controller) Steps() int                   { return c.steps }
func (c *Controller) TotalReward() float64         { return c.total }
func (c *Controller) Registry() *registry.Registry { return c.reg }

// Reset starts a new episode and returns its first observation with zero reward.
func (c *Controller) Reset() (StepResult, error) {
	if c.reg != nil && c.steps > 0 {
		c.logSummary("episode abandoned")
	}
	c.episode++
	seed := util.EpisodeSeed(c.opts.Seed, c.episode)
	world := combat.NewWorld(c.opts.Encounter.Arena, util.New(seed))
	world.Emit = c.opts.Emit
	reg := registry.New(c.opts.Env, c.opts.Encounter, world, util.New(seed+1))
	if err := reg.Populate(); err != nil {
		return StepResult{}, fmt.Errorf("reset: %w", err)
	}

	c.world, c.reg = world, reg
	c.exec = action.NewExecutor(reg)
	c.trackers = make([]*tracker.Tracker, 0, c.opts.Env.BossCount)
	for _, b := range reg.Bosses() {
		c.trackers = append(c.trackers, tracker.New(b.AttackCountdown()))
	}
	c.machine = newMachine(c.episode)
	c.start = observation.DosesOf(reg.Player())
	c.prev = nil
	c.steps = 0
	c.total = 0

	c.last = StepResult{Observation: c.observe(), Mask: action.ComputeMask(reg)}
	logging.Debug("episode reset", logging.Fields{"episode": c.episode, "seed": seed})
	return c.last, nil
}

// Step applies a, advances one tick and scores it. After termination it
// returns the final observation again with zero reward and does not advance.
func (c *Controller) Step(a action.Action) (StepResult, error) {
	if c.reg == nil {
		return StepResult{}, ErrNotReset
	}
	if c.Termination().Terminal() {
		res := c.last
		res.Reward = 0
		return res, nil
	}

	c.exec.Apply(a)
	c.world.Tick()
	if _, err := c.reg.CheckAddSpawns(); err != nil {
		return StepResult{}, fmt.Errorf("step: %w", err)
	}
	for i, b := range c.reg.Bosses() {
		c.trackers[i].Observe(b.AttackCountdown(), b.AttackStyle())
	}
	c.steps++

	obs := c.observe()
	term := c.checkTermination()
	r := c.opts.Reward(reward.Input{Obs: obs, Prev: c.prev, Termination: term, Steps: c.steps})
	c.total += r
	c.prev = &obs

	c.last = StepResult{
		Observation: obs,
		Reward:      r,
		Terminated:  term == observation.PlayerDied || term == observation.AllBossesDefeated,
		Truncated:   term == observation.Truncated,
		Termination: term,
		Mask:        action.ComputeMask(c.reg),
		Steps:       c.steps,
	}
	if term.Terminal() {
		c.logSummary("episode finished")
	}
	return c.last, nil
}

// Termination reports the current state. Terminal states never change.
func (c *Controller) Termination() observation.Termination {
	if c.machine == nil {
		return observation.Ongoing
	}
	t, err := observation.ParseTermination(c.machine.Current())
	if err != nil {
		return observation.Ongoing
	}
	return t
}

// Mask is the validity mask for the next step.
func (c *Controller) Mask() (action.Mask, error) {
	if c.reg == nil {
		return nil, ErrNotReset
	}
	return action.ComputeMask(c.reg), nil
}

// checkTermination evaluates the end conditions once per tick. A player death
// wins over a simultaneous boss kill.
func (c *Controller) checkTermination() observation.Termination {
	if t := c.Termination(); t.Terminal() {
		return t
	}
	var event string
	switch {
	case !c.reg.Player().Alive():
		event = evPlayerDied
	case c.reg.AllBossesDefeated():
		event = evBossesDefeated
	case c.maxSteps > 0 && c.steps >= c.maxSteps:
		event = evTruncate
	default:
		return observation.Ongoing
	}
	if err := c.machine.Event(context.Background(), event); err != nil {
		logging.Error("termination transition failed", err, logging.Fields{"episode": c.episode, "event": event})
	}
	return c.Termination()
}

func (c *Controller) observe() observation.Observation {
	attacks := make([]tracker.State, len(c.trackers))
	for i, t := range c.trackers {
		attacks[i] = t.State()
	}
	return observation.Build(observation.Input{Registry: c.reg, Attacks: attacks, StartingDoses: c.start})
}

func (c *Controller) logSummary(msg string) {
	logging.Info(msg, logging.Fields{
		"episode":      c.episode,
		"steps":        c.steps,
		"reward":       c.total,
		"termination":  c.Termination().String(),
		"boss_hp_left": c.last.Observation.TotalBossHP(),
		"player_hp":    c.last.Observation.PlayerHP,
	})
}
