package gridworld

import "errors"

// Sentinel errors returned by GridWorld constructors. A constructor
// either returns a fully-built GridWorld or one of these; no partially
// constructed environment is ever exposed.
var (
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridworld: grid must have at least one row and one column")
	// ErrInvalidTransitionMatrix indicates the transition tensor does
	// not have shape [states][actions][states], or some (state, action)
	// row does not sum to 1.
	ErrInvalidTransitionMatrix = errors.New("gridworld: transition probabilities must have shape SxAxS' and rows summing to 1")
	// ErrInvalidRewardMatrix indicates the reward tensor does not have
	// shape [states][actions][states].
	ErrInvalidRewardMatrix = errors.New("gridworld: rewards must have shape SxAxS'")
)
