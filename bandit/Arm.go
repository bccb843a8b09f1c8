// Package bandit implements multi-armed bandit arms, action-value
// strategies, and a benchmark harness for comparing them
package bandit

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Arm is a single reward-producing lever.
type Arm interface {
	// Value returns the true value of the arm, if known.
	Value() (float64, bool)

	// Pull yields a reward sampled from the arm's reward distribution.
	Pull() float64
}

// RandomArm samples rewards from an underlying reward distribution.
// The true value of the arm is not directly observable from rewards;
// when a value is declared, it is assumed to be an outcome the reward
// distribution can produce.
type RandomArm struct {
	value float64
	known bool
	dist  distuv.Rander
}

// NewRandomArm returns an arm with an unknown true value that samples
// rewards from dist.
func NewRandomArm(dist distuv.Rander) *RandomArm {
	return &RandomArm{dist: dist}
}

// NewValuedArm returns an arm with the declared true value that
// samples rewards from dist.
func NewValuedArm(value float64, dist distuv.Rander) *RandomArm {
	return &RandomArm{value: value, known: true, dist: dist}
}

// NewNormalArm returns an arm whose rewards follow a unit-variance
// normal distribution centred on value, with value as the declared
// true value.
func NewNormalArm(value float64, seed uint64) *RandomArm {
	return NewValuedArm(value, distuv.Normal{
		Mu:    value,
		Sigma: 1,
		Src:   rand.NewSource(seed),
	})
}

// Value returns the true value of the arm, if known.
func (a *RandomArm) Value() (float64, bool) {
	return a.value, a.known
}

// Pull samples a reward from the arm's reward distribution.
func (a *RandomArm) Pull() float64 {
	return a.dist.Rand()
}

// MultiArm is an ordered collection of arms pulled by index.
type MultiArm struct {
	arms []Arm
}

// NewMultiArm wraps the given arms.
func NewMultiArm(arms []Arm) *MultiArm {
	return &MultiArm{arms: arms}
}

// Len returns the number of arms.
func (m *MultiArm) Len() int {
	return len(m.arms)
}

// Pull pulls arm k and returns its reward.
func (m *MultiArm) Pull(k int) float64 {
	return m.arms[k].Pull()
}

// OptimalArm returns the index of the arm with the highest true value.
// The second return value is false when any arm's value is unknown, in
// which case no optimal arm can be named.
func (m *MultiArm) OptimalArm() (int, bool) {
	if len(m.arms) == 0 {
		return 0, false
	}

	best, bestValue := 0, math.Inf(-1)
	for i, arm := range m.arms {
		value, known := arm.Value()
		if !known {
			return 0, false
		}
		if value > bestValue {
			best, bestValue = i, value
		}
	}
	return best, true
}
