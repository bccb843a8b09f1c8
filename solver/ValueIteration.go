package solver

import (
	"math"

	"github.com/gridplan/gridplan/mdp"
)

// ValueIteration iterates the Bellman optimality backup
// V(s) = max over a of sum over s' of P(s,a,s')*(R(s,a,s') + gamma*V(s'))
// to a fixed point, then extracts the greedy policy against the final
// values in a single pass.
type ValueIteration struct {
	theta         float64
	maxIterations int
}

// NewValueIteration returns a ValueIteration planner. Theta is the
// convergence threshold on the maximum value change per sweep and
// maxIterations caps the sweeps. NewValueIteration panics if theta or
// maxIterations is not positive.
func NewValueIteration(theta float64, maxIterations int) *ValueIteration {
	validateParams(theta, maxIterations)
	return &ValueIteration{theta: theta, maxIterations: maxIterations}
}

// FindOptimalPolicy returns an optimal policy for the MDP. The
// returned policy maps every state; ties between equally-valued
// actions keep the earlier-enumerated action.
func (vi *ValueIteration) FindOptimalPolicy(m mdp.MDP) (*mdp.Policy, error) {
	states := m.States()
	values := make([]float64, m.NStates())
	swept := make([]float64, m.NStates())

	for i := 0; i < vi.maxIterations; i++ {
		delta := 0.0
		for _, s := range states {
			_, v := greedyAction(m, values, s)
			delta = math.Max(delta, math.Abs(v-values[s.ID()]))
			swept[s.ID()] = v
		}
		values, swept = swept, values

		if delta < vi.theta {
			break
		}
	}

	// greedy policy extraction over the final values
	mapping := make(map[int]int, len(states))
	for _, s := range states {
		best, _ := greedyAction(m, values, s)
		mapping[s.ID()] = best
	}

	return mdp.NewPolicy(mapping), nil
}
