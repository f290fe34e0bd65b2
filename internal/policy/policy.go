package policy

import (
	"fmt"
	"math/rand"

	"bossgym/internal/action"
	"bossgym/internal/observation"
)

// Policy picks the next action from what the environment exposes.
type Policy interface {
	Name() string
	Act(obs observation.Observation, mask action.Mask) action.Action
}

var Names = []string{"random", "heuristic"}

func New(name string, rng *rand.Rand) (Policy, error) {
	switch name {
	case "random":
		return &Random{rng: rng}, nil
	case "heuristic":
		return &Heuristic{}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}

// Random samples every head uniformly among the entries the mask allows.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random { return &Random{rng: rng} }

func (*Random) Name() string { return "random" }

func (p *Random) Act(_ observation.Observation, mask action.Mask) action.Action {
	pick := func(head int) int {
		opts := mask.Options(head)
		if len(opts) == 0 {
			return 0
		}
		return opts[p.rng.Intn(len(opts))]
	}
	return action.Action{
		Protection: pick(action.HeadProtection),
		Offensive:  pick(action.HeadOffensive),
		Potion:     pick(action.HeadPotion),
		Target:     pick(action.HeadTarget),
	}
}
