// Package session drives one extraction lifecycle per opened host surface.
//
// Lifecycle:
//
//	idle ──► extracting ──► success
//	 │            │
//	 │            └───────► error
//	 └────────────────────► error   (ineligible page, unreadable address)
//
// success and error only lead back to idle through an explicit retry. Opening,
// closing or navigating re-initialises the session to idle from any state.
package session

// State of an extraction session.
type State string

const (
	StateIdle       State = "idle"
	StateExtracting State = "extracting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

var validTransitions = map[State][]State{
	StateIdle:       {StateExtracting, StateError},
	StateExtracting: {StateSuccess, StateError},
	StateSuccess:    {StateIdle},
	StateError:      {StateIdle},
}

// CanTransition reports whether the lifecycle allows moving from → to.
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s ends an attempt.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateError
}
