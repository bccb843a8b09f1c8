// Package solver implements dynamic-programming planners that search
// for an optimal policy on a finite MDP.
//
// Both planners perform Bellman backups in synchronous (Jacobi-style)
// sweeps: each sweep reads the previous sweep's full value array and
// writes a fresh one, rather than reading partially-updated values
// within the same sweep. This affects convergence speed and the exact
// intermediate values, but not the fixed point.
package solver

import (
	"fmt"
	"math"

	"github.com/gridplan/gridplan/mdp"
)

// Solver is any algorithm that searches for an optimal policy on a
// Markov decision process. Solvers never mutate the MDP they are
// given.
type Solver interface {
	FindOptimalPolicy(m mdp.MDP) (*mdp.Policy, error)
}

// Type names the available solver types.
type Type string

const (
	PolicyIterationSolver Type = "PolicyIteration"
	ValueIterationSolver  Type = "ValueIteration"
)

// Config describes a solver in serializable form so that experiment
// configurations can be stored as JSON.
type Config struct {
	Type          Type    `json:"type"`
	Theta         float64 `json:"theta"`
	MaxIterations int     `json:"maxIterations"`
	Seed          uint64  `json:"seed"`
}

// Create instantiates the solver the configuration describes.
func (c Config) Create() (Solver, error) {
	switch c.Type {
	case PolicyIterationSolver:
		return NewPolicyIteration(c.Theta, c.MaxIterations, c.Seed), nil
	case ValueIterationSolver:
		return NewValueIteration(c.Theta, c.MaxIterations), nil
	default:
		return nil, fmt.Errorf("create: unknown solver type %q", c.Type)
	}
}

// validateParams panics on degenerate convergence parameters. These
// are contract violations, not recoverable runtime conditions.
func validateParams(theta float64, maxIterations int) {
	if theta <= 0 {
		panic(fmt.Sprintf("solver: theta must be positive, got %v", theta))
	}
	if maxIterations <= 0 {
		panic(fmt.Sprintf("solver: maxIterations must be positive, got %d",
			maxIterations))
	}
}

// actionValue computes the one-step Bellman backup
// sum over s' of P(s,a,s') * (R(s,a,s') + gamma*V(s')).
func actionValue(m mdp.MDP, values []float64, s mdp.State, a mdp.Action) float64 {
	v := 0.0
	for _, next := range m.States() {
		p := m.TransitionProbability(s, a, next)
		if p == 0 {
			continue
		}
		r := m.Reward(s, a, next)
		v += p * (r + m.DiscountFactor()*values[next.ID()])
	}
	return v
}

// greedyAction returns the ID and backup value of the action
// maximizing actionValue at s. Ties keep the earlier-enumerated
// action.
func greedyAction(m mdp.MDP, values []float64, s mdp.State) (int, float64) {
	bestID, bestValue := -1, math.Inf(-1)
	for _, a := range m.Actions() {
		if v := actionValue(m, values, s, a); v > bestValue {
			bestValue = v
			bestID = a.ID()
		}
	}
	return bestID, bestValue
}
