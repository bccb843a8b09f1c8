package bandit

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Strategy selects how a Bandit trades exploration off against
// exploitation. The set of strategies is closed.
type Strategy int

const (
	// Greedy always selects the arm with the highest current estimate.
	Greedy Strategy = iota
	// EpsilonGreedy selects a uniformly random arm with probability
	// epsilon and the greedy arm otherwise.
	EpsilonGreedy
	// UCB selects the arm maximizing the upper confidence bound
	// Q(a) + c*sqrt(ln(t)/N(a)), trying every arm once first.
	UCB
)

// Bandit learns incremental action-value estimates over a fixed number
// of arms. Estimates are updated either by the sample-average rule
// (step size 1/N(a)) or with a constant step size.
type Bandit struct {
	nArms      int
	strategy   Strategy
	epsilon    float64
	confidence float64

	// stepSize of 0 selects the sample-average rule
	stepSize float64
	initial  float64

	estimates []float64
	pulls     []int
	steps     int
	action    int
	rng       *rand.Rand
}

// NewGreedy returns a bandit that always exploits its estimates.
func NewGreedy(arms int, seed uint64) *Bandit {
	return newBandit(arms, Greedy, 0, 0, seed)
}

// NewEpsilonGreedy returns a bandit that explores a uniformly random
// arm with probability epsilon. NewEpsilonGreedy panics if epsilon
// lies outside [0, 1].
func NewEpsilonGreedy(arms int, epsilon float64, seed uint64) *Bandit {
	if epsilon < 0 || epsilon > 1 {
		panic(fmt.Sprintf("bandit: epsilon must be in [0, 1], got %v", epsilon))
	}
	return newBandit(arms, EpsilonGreedy, epsilon, 0, seed)
}

// NewUCB returns a bandit using upper-confidence-bound arm selection
// with exploration coefficient c. NewUCB panics if c is not positive.
func NewUCB(arms int, c float64, seed uint64) *Bandit {
	if c <= 0 {
		panic(fmt.Sprintf("bandit: UCB coefficient must be positive, got %v", c))
	}
	return newBandit(arms, UCB, 0, c, seed)
}

func newBandit(arms int, strategy Strategy, epsilon, confidence float64,
	seed uint64) *Bandit {
	if arms <= 0 {
		panic(fmt.Sprintf("bandit: need at least one arm, got %d", arms))
	}

	return &Bandit{
		nArms:      arms,
		strategy:   strategy,
		epsilon:    epsilon,
		confidence: confidence,
		estimates:  make([]float64, arms),
		pulls:      make([]int, arms),
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// WithConstantStepSize returns a copy of the bandit that updates its
// estimates with the constant step size alpha instead of the
// sample-average rule. Pull counts are reset. WithConstantStepSize
// panics if alpha lies outside (0, 1].
func (b *Bandit) WithConstantStepSize(alpha float64) *Bandit {
	if alpha <= 0 || alpha > 1 {
		panic(fmt.Sprintf("bandit: invalid step size %v", alpha))
	}

	clone := b.clone()
	clone.stepSize = alpha
	return clone
}

// WithInitialValues returns a copy of the bandit with every estimate
// set to value. Optimistic initial values encourage early exploration.
// Pull counts are reset.
func (b *Bandit) WithInitialValues(value float64) *Bandit {
	clone := b.clone()
	clone.initial = value
	for i := range clone.estimates {
		clone.estimates[i] = value
	}
	return clone
}

// Restart returns a fresh copy of the bandit with its estimates back
// at their initial value and pull counts reset.
func (b *Bandit) Restart() *Bandit {
	return b.WithInitialValues(b.initial)
}

// clone copies the bandit with reset pull counts and step counter.
func (b *Bandit) clone() *Bandit {
	clone := &Bandit{
		nArms:      b.nArms,
		strategy:   b.strategy,
		epsilon:    b.epsilon,
		confidence: b.confidence,
		stepSize:   b.stepSize,
		initial:    b.initial,
		estimates:  make([]float64, b.nArms),
		pulls:      make([]int, b.nArms),
		rng:        b.rng,
	}
	copy(clone.estimates, b.estimates)
	return clone
}

// SelectArm chooses the next arm to pull according to the bandit's
// strategy and records it as the current action.
func (b *Bandit) SelectArm() int {
	switch {
	case b.strategy == UCB:
		b.action = b.ucbArm()
	case b.strategy == EpsilonGreedy && b.rng.Float64() < b.epsilon:
		b.action = b.rng.Intn(b.nArms)
	default:
		b.action = argmax(b.estimates)
	}
	return b.action
}

// ucbArm scores every arm by its upper confidence bound. Arms that
// have never been pulled are tried first, in index order.
func (b *Bandit) ucbArm() int {
	b.steps++
	for i, n := range b.pulls {
		if n == 0 {
			return i
		}
	}

	best, bestScore := 0, math.Inf(-1)
	for i, estimate := range b.estimates {
		score := estimate + b.confidence*
			math.Sqrt(math.Log(float64(b.steps))/float64(b.pulls[i]))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// ReceiveReward updates the estimate of the current action with the
// observed reward, using the sample-average rule unless a constant
// step size was configured.
func (b *Bandit) ReceiveReward(reward float64) {
	b.pulls[b.action]++

	alpha := b.stepSize
	if alpha == 0 {
		alpha = 1.0 / float64(b.pulls[b.action])
	}

	b.estimates[b.action] += alpha * (reward - b.estimates[b.action])
}

// Estimates returns the bandit's current action-value estimates. The
// returned slice is shared and must not be modified.
func (b *Bandit) Estimates() []float64 {
	return b.estimates
}

// argmax returns the index of the largest value, keeping the earliest
// index on ties.
func argmax(values []float64) int {
	best, bestValue := 0, math.Inf(-1)
	for i, v := range values {
		if v > bestValue {
			best, bestValue = i, v
		}
	}
	return best
}
