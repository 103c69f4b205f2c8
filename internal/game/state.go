// Package game provides the game session: the command loop, the state
// machine and the orchestration of movement, battles and the bench.
package game

// State represents the current session state.
type State int

const (
	// StateActive accepts every command.
	StateActive State = iota
	// StatePendingSwitch follows energy depletion while a benched Pymon still has
	// energy. Only a bench switch can leave it.
	StatePendingSwitch
	// StateTerminated follows energy depletion with no alternative. It is final.
	StateTerminated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePendingSwitch:
		return "pending_switch"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
