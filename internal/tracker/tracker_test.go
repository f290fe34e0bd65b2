package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bossgym/internal/combat"
)

// run replays a boss cycle of speed 8 that launches on the first tick.
func run(tr *Tracker, style combat.Style, ticks int) []State {
	countdown := []int{8, 7, 6, 5, 4, 3, 2, 1}
	var out []State
	for i := 0; i < ticks; i++ {
		c := countdown[i%len(countdown)]
		s := combat.StyleNone
		if c == 8 {
			s = style
		}
		out = append(out, tr.Observe(c, s))
	}
	return out
}

func TestWindowLengths(t *testing.T) {
	cases := []struct {
		style  combat.Style
		window int
	}{
		{combat.StyleMagic, 4},
		{combat.StyleRange, 4},
		{combat.StyleMelee, 1},
	}
	for _, c := range cases {
		t.Run(c.style.String(), func(t *testing.T) {
			states := run(New(1), c.style, 8)
			for i, s := range states {
				if i < c.window {
					assert.Equal(t, c.style, s.Style, "tick %d", i)
					assert.Equal(t, c.window-i, s.Remaining, "tick %d", i)
				} else {
					assert.False(t, s.InFlight(), "tick %d", i)
					assert.Equal(t, combat.StyleNone, s.Style)
				}
			}
			assert.True(t, states[c.window-1].Closing())
		})
	}
}

func TestNoLaunchWhileCountingDown(t *testing.T) {
	tr := New(5)
	for _, c := range []int{4, 3, 2} {
		assert.False(t, tr.Observe(c, combat.StyleMagic).InFlight())
	}
}

func TestRelaunchAfterFullCycle(t *testing.T) {
	states := run(New(1), combat.StyleRange, 12)
	assert.True(t, states[8].InFlight())
	assert.Equal(t, 4, states[8].Remaining)
	assert.False(t, states[7].InFlight())
}

func TestHealStyleIsNotAnAttack(t *testing.T) {
	tr := New(1)
	assert.False(t, tr.Observe(8, combat.StyleHeal).InFlight())
}

func TestNewLaunchReplacesClosingWindow(t *testing.T) {
	tr := New(1)
	tr.Observe(4, combat.StyleMagic)
	tr.Observe(3, combat.StyleNone)
	tr.Observe(2, combat.StyleNone)
	tr.Observe(1, combat.StyleNone)
	s := tr.Observe(4, combat.StyleMelee)
	assert.Equal(t, State{Style: combat.StyleMelee, Remaining: 1}, s)
	assert.Equal(t, s, tr.State())
}
