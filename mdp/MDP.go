// Package mdp outlines the interfaces and structs needed to describe
// finite Markov decision processes and to execute policies on them
package mdp

// State represents a state in an MDP. Each state has a unique integer
// ID, starting at 0 and dense up to the number of states, so that
// values indexed by state can live in plain arrays. Callers are
// responsible for keeping IDs dense and unique; the package does not
// check this.
type State interface {
	ID() int
}

// Action represents an action in an MDP. Like states, actions are
// identified by a dense, unique, zero-based integer ID.
type Action interface {
	ID() int
}

// MDP represents a finite Markov decision process: an agent situated
// in a stochastic environment that changes in discrete timesteps. For
// every action the agent performs, the environment moves from a state
// s to a state s' according to a transition function giving the
// probability of each (s, a, s') triplet.
type MDP interface {
	// NStates returns the number of states.
	NStates() int

	// NActions returns the number of actions.
	NActions() int

	// States returns every state, ordered by ID.
	States() []State

	// Actions returns every action, ordered by ID.
	Actions() []Action

	// IsTerminal returns whether the given state is terminal.
	IsTerminal(s State) bool

	// DiscountFactor determines the present value of future rewards.
	// A factor of 1 leaves rewards undiscounted.
	DiscountFactor() float64

	// TransitionProbability returns the probability of landing in next
	// when taking action a in state s.
	TransitionProbability(s State, a Action, next State) float64

	// Reward returns the reward for the transition triplet (s, a, next).
	Reward(s State, a Action, next State) float64

	// Act samples a successor of s from the categorical distribution
	// given by TransitionProbability(s, a, ·). An environment whose
	// (s, a) row carries no probability mass is malformed, and Act
	// panics rather than silently choosing a state.
	Act(s State, a Action) State
}
