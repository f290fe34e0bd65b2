package tracker

import "bossgym/internal/combat"

const (
	// ProjectileWindow covers the launch tick plus a three tick flight.
	ProjectileWindow = 4
	MeleeWindow      = 1
)

// State is what the player can know about a boss's current attack. Remaining
// counts the ticks the attack stays visible, including this one; zero means idle.
type State struct {
	Style     combat.Style
	Remaining int
}

func (s State) InFlight() bool { return s.Remaining > 0 }

// Closing reports whether this is the last tick the attack is visible.
func (s State) Closing() bool { return s.Remaining == 1 }

// Tracker turns a boss's attack countdown into an in-flight signal. The
// countdown jumping from 1 or less to above 1 marks a launch, and the style
// read on that tick is the only time it is available.
type Tracker struct {
	prev  int
	state State
}

func New(initialCountdown int) *Tracker {
	return &Tracker{prev: initialCountdown}
}

func (t *Tracker) State() State { return t.state }

// Observe feeds one tick. An open window shrinks first, so a new launch on the
// tick an old window closes replaces it.
func (t *Tracker) Observe(countdown int, style combat.Style) State {
	if t.state.Remaining > 0 {
		t.state.Remaining--
		if t.state.Remaining == 0 {
			t.state = State{}
		}
	}
	if t.prev <= 1 && countdown > 1 {
		t.state = launch(style)
	}
	t.prev = countdown
	return t.state
}

func launch(style combat.Style) State {
	switch style {
	case combat.StyleMagic, combat.StyleRange:
		return State{Style: style, Remaining: ProjectileWindow}
	case combat.StyleMelee:
		return State{Style: style, Remaining: MeleeWindow}
	}
	return State{}
}
