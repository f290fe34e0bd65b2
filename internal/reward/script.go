package reward

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"bossgym/internal/logging"
)

// scriptTimeout bounds a single reward evaluation.
const scriptTimeout = 100 * time.Millisecond

// scriptModules are the stdlib modules a reward script may import. Nothing
// that touches the filesystem or the process.
var scriptModules = []string{"math", "text", "fmt", "enum", "rand", "json"}

// Script is a reward function written in tengo. The script sees obs, prev
// (undefined on the first step), termination and steps, and assigns reward.
type Script struct {
	name     string
	compiled *tengo.Compiled
}

func CompileScript(name, src string) (*Script, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("obs", map[string]any{})
	_ = script.Add("prev", nil)
	_ = script.Add("termination", "")
	_ = script.Add("steps", 0)
	_ = script.Add("reward", 0.0)
	script.SetImports(stdlib.GetModuleMap(scriptModules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile reward script %s: %w", name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// LoadScript compiles the script at path.
func LoadScript(name, path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load reward script %s: %w", name, err)
	}
	return CompileScript(name, string(b))
}

func (s *Script) Name() string { return s.name }

// Eval runs the script on a fresh clone. Failures score 0 and are logged,
// keeping the function total.
func (s *Script) Eval(in Input) float64 {
	v, err := s.run(in)
	if err != nil {
		logging.Error("reward script failed", err, logging.Fields{"reward": s.name, "steps": in.Steps})
		return 0
	}
	return v
}

func (s *Script) Func() Func { return s.Eval }

func (s *Script) run(in Input) (float64, error) {
	c := s.compiled.Clone()
	obs, err := asMap(in.Obs)
	if err != nil {
		return 0, err
	}
	if err := c.Set("obs", obs); err != nil {
		return 0, err
	}
	if in.Prev != nil {
		prev, err := asMap(*in.Prev)
		if err != nil {
			return 0, err
		}
		if err := c.Set("prev", prev); err != nil {
			return 0, err
		}
	}
	if err := c.Set("termination", in.Termination.String()); err != nil {
		return 0, err
	}
	if err := c.Set("steps", in.Steps); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return 0, err
	}
	return c.Get("reward").Float(), nil
}

// asMap gives scripts the observation under its wire field names.
func asMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterScripts compiles and registers name→path pairs.
func (r *Registry) RegisterScripts(scripts map[string]string) error {
	for name, path := range scripts {
		s, err := LoadScript(name, path)
		if err != nil {
			return err
		}
		if err := r.Register(name, s.Func()); err != nil {
			return err
		}
	}
	return nil
}
