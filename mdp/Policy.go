package mdp

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Policy maps state IDs to action IDs. A policy may be partial: states
// with no mapped action are a legitimate, observable condition rather
// than a construction error, and callers must handle the missing case
// returned by SelectAction.
type Policy struct {
	mapping map[int]int
}

// NewPolicy wraps an explicit state ID to action ID mapping. The
// policy takes ownership of the map.
func NewPolicy(mapping map[int]int) *Policy {
	return &Policy{mapping: mapping}
}

// NewRandomPolicy assigns each state an action drawn uniformly at
// random from the action set, using a source seeded with seed.
// NewRandomPolicy panics if actions is empty.
func NewRandomPolicy(states []State, actions []Action, seed uint64) *Policy {
	if len(actions) == 0 {
		panic("newRandomPolicy: actions must not be empty")
	}

	weights := make([]float64, len(actions))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}
	dist := distuv.NewCategorical(weights, rand.NewSource(seed))

	mapping := make(map[int]int, len(states))
	for _, state := range states {
		mapping[state.ID()] = actions[int(dist.Rand())].ID()
	}

	return &Policy{mapping: mapping}
}

// SelectAction returns the action ID mapped to the given state. The
// second return value is false when the policy defines no action for
// the state.
func (p *Policy) SelectAction(s State) (int, bool) {
	action, ok := p.mapping[s.ID()]
	return action, ok
}

// Len returns the number of states the policy maps.
func (p *Policy) Len() int {
	return len(p.mapping)
}
