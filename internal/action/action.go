package action

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"bossgym/internal/config"
)

const (
	HeadProtection = iota
	HeadOffensive
	HeadPotion
	HeadTarget
	Heads
)

const (
	ProtectionValues = 4 // no-op, magic, range, melee
	OffensiveValues  = 2 // no-op, toggle
	PotionValues     = 4 // none, bastion, saradomin brew, super restore
)

var ErrMissing = errors.New("missing action")

// Action picks one value per head; all four resolve on the same tick.
// On the wire it is a 4-element array.
type Action struct {
	Protection int
	Offensive  int
	Potion     int
	Target     int
}

// Noop leaves everything as it is.
var Noop = Action{}

// Shape is the size of each head for env.
func Shape(env config.Env) []int {
	return []int{ProtectionValues, OffensiveValues, PotionValues, env.TargetCount()}
}

func (a Action) Head(h int) int {
	switch h {
	case HeadProtection:
		return a.Protection
	case HeadOffensive:
		return a.Offensive
	case HeadPotion:
		return a.Potion
	case HeadTarget:
		return a.Target
	}
	return 0
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal([Heads]int{a.Protection, a.Offensive, a.Potion, a.Target})
}

func (a *Action) UnmarshalJSON(b []byte) error {
	var heads []int
	if err := json.Unmarshal(b, &heads); err != nil {
		return fmt.Errorf("action must be an array of %d integers: %w", Heads, err)
	}
	if len(heads) != Heads {
		return fmt.Errorf("action must have %d heads, got %d", Heads, len(heads))
	}
	*a = Action{Protection: heads[0], Offensive: heads[1], Potion: heads[2], Target: heads[3]}
	return nil
}

// Decode accepts either the head array or a legacy flat integer.
func Decode(env config.Env, raw json.RawMessage) (Action, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Action{}, ErrMissing
	}
	if raw[0] == '[' {
		var a Action
		if err := json.Unmarshal(raw, &a); err != nil {
			return Action{}, err
		}
		return a, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return Action{}, fmt.Errorf("action must be a head array or a legacy integer: %w", err)
	}
	return FromLegacy(env, n)
}
