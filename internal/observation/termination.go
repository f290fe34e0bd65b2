package observation

import "fmt"

type Termination int

const (
	Ongoing Termination = iota
	PlayerDied
	AllBossesDefeated
	Truncated
)

var terminationNames = []string{"ongoing", "player_died", "all_bosses_defeated", "truncated"}

func (t Termination) String() string {
	if t < 0 || int(t) >= len(terminationNames) {
		return "unknown"
	}
	return terminationNames[t]
}

func ParseTermination(s string) (Termination, error) {
	for i, n := range terminationNames {
		if n == s {
			return Termination(i), nil
		}
	}
	return Ongoing, fmt.Errorf("unknown termination %q", s)
}

func (t Termination) Terminal() bool { return t != Ongoing }

func (t Termination) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Termination) UnmarshalText(b []byte) error {
	v, err := ParseTermination(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
