package solver

import (
	"math"

	"github.com/gridplan/gridplan/mdp"
)

// PolicyIteration alternates policy evaluation and greedy policy
// improvement until the policy is stable. Evaluation starts from a
// seeded random policy and sweeps all states until the largest
// absolute value change drops below theta or maxIterations sweeps have
// run; improvement replaces each state's action with the greedy one
// against the current values.
type PolicyIteration struct {
	theta         float64
	maxIterations int
	seed          uint64
}

// NewPolicyIteration returns a PolicyIteration planner. Theta is the
// convergence threshold on the maximum value change during evaluation,
// maxIterations caps the evaluation sweeps, and seed drives the random
// initial policy. NewPolicyIteration panics if theta or maxIterations
// is not positive.
func NewPolicyIteration(theta float64, maxIterations int, seed uint64) *PolicyIteration {
	validateParams(theta, maxIterations)
	return &PolicyIteration{theta: theta, maxIterations: maxIterations,
		seed: seed}
}

// FindOptimalPolicy returns an optimal policy for the MDP. The random
// initial policy maps every state, so a *mdp.NoActionError indicates a
// structural fault rather than an expected condition; it aborts the
// optimization with no policy returned.
func (pi *PolicyIteration) FindOptimalPolicy(m mdp.MDP) (*mdp.Policy, error) {
	states := m.States()
	actions := m.Actions()
	values := make([]float64, m.NStates())
	swept := make([]float64, m.NStates())

	// start from a random policy
	mapping := make(map[int]int, len(states))
	random := mdp.NewRandomPolicy(states, actions, pi.seed)
	for _, s := range states {
		if a, ok := random.SelectAction(s); ok {
			mapping[s.ID()] = a
		}
	}

	for {
		// policy evaluation
		for i := 0; i < pi.maxIterations; i++ {
			delta := 0.0
			for _, s := range states {
				actionID, ok := mapping[s.ID()]
				if !ok {
					return nil, &mdp.NoActionError{StateID: s.ID()}
				}

				v := actionValue(m, values, s, actions[actionID])
				delta = math.Max(delta, math.Abs(v-values[s.ID()]))
				swept[s.ID()] = v
			}
			values, swept = swept, values

			if delta < pi.theta {
				break
			}
		}

		// policy improvement
		stable := true
		for _, s := range states {
			prev, ok := mapping[s.ID()]
			if !ok {
				return nil, &mdp.NoActionError{StateID: s.ID()}
			}

			best, _ := greedyAction(m, values, s)
			stable = stable && best == prev
			mapping[s.ID()] = best
		}

		if stable {
			return mdp.NewPolicy(mapping), nil
		}
	}
}
