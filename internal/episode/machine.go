package episode

import (
	"context"

	"github.com/looplab/fsm"

	"bossgym/internal/logging"
	"bossgym/internal/observation"
)

const (
	evPlayerDied     = "player_died"
	evBossesDefeated = "bosses_defeated"
	evTruncate       = "truncate"
)

// newMachine builds the termination machine. Every terminal state has no
// outgoing event, so once reached it stays.
func newMachine(episode int) *fsm.FSM {
	ongoing := observation.Ongoing.String()
	return fsm.NewFSM(
		ongoing,
		fsm.Events{
			{Name: evPlayerDied, Src: []string{ongoing}, Dst: observation.PlayerDied.String()},
			{Name: evBossesDefeated, Src: []string{ongoing}, Dst: observation.AllBossesDefeated.String()},
			{Name: evTruncate, Src: []string{ongoing}, Dst: observation.Truncated.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logging.Debug("episode state", logging.Fields{"episode": episode, "from": e.Src, "to": e.Dst})
			},
		},
	)
}
