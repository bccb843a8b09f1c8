package mdp

import "fmt"

// NoActionError indicates that a policy had no action mapped for a
// state it was queried on during planning or rollout.
type NoActionError struct {
	StateID int
}

func (e *NoActionError) Error() string {
	return fmt.Sprintf("no action available for state %d", e.StateID)
}

// NoTransitionError indicates that an environment declares no reachable
// successor for a state under the selected action.
type NoTransitionError struct {
	StateID int
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition available for state %d", e.StateID)
}
