package reward

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"bossgym/internal/observation"
)

var ErrUnknown = errors.New("unknown reward function")

// Input is everything a reward function may look at. Prev is nil on the
// first step of an episode.
type Input struct {
	Obs         observation.Observation
	Prev        *observation.Observation
	Termination observation.Termination
	Steps       int
}

// Func must be total: every input yields a number.
type Func func(Input) float64

const (
	Sparse    = "sparse"
	Default   = "default"
	Multiboss = "multiboss"
)

type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns a registry holding the built-in functions.
func NewRegistry() *Registry {
	r := &Registry{funcs: map[string]Func{}}
	r.funcs[Sparse] = SparseFunc
	r.funcs[Default] = Dense(DefaultWeights())
	r.funcs[Multiboss] = Dense(MultibossWeights())
	return r
}

func (r *Registry) Register(name string, f Func) error {
	name = strings.TrimSpace(name)
	if name == "" || f == nil {
		return fmt.Errorf("register reward: name and func are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.funcs[name]; dup {
		return fmt.Errorf("register reward: %q already registered", name)
	}
	r.funcs[name] = f
	return nil
}

func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknown, name, strings.Join(r.namesLocked(), ", "))
	}
	return f, nil
}

func (r *Registry) Compute(name string, in Input) (float64, error) {
	f, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	return f(in), nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SparseFunc pays only at the end: +1 for a win, -1 for a death, 0 otherwise.
func SparseFunc(in Input) float64 {
	switch in.Termination {
	case observation.AllBossesDefeated:
		return 1
	case observation.PlayerDied:
		return -1
	}
	return 0
}
