package mdp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridplan/gridplan/mdp"
)

type chainState struct{ id int }

func (s chainState) ID() int { return s.id }

type chainAction struct{ id int }

func (a chainAction) ID() int { return a.id }

const (
	forward  = 0
	backward = 1
)

// chain is a deterministic corridor of states: forward moves one state
// up, backward one state down, both clamped at the ends. The last
// state is terminal and transitions into it are free; every other
// transition costs -1.
type chain struct {
	states  []mdp.State
	actions []mdp.Action
}

func newChain(n int) *chain {
	c := &chain{
		actions: []mdp.Action{chainAction{forward}, chainAction{backward}},
	}
	for i := 0; i < n; i++ {
		c.states = append(c.states, chainState{i})
	}
	return c
}

func (c *chain) NStates() int            { return len(c.states) }
func (c *chain) NActions() int           { return len(c.actions) }
func (c *chain) States() []mdp.State     { return c.states }
func (c *chain) Actions() []mdp.Action   { return c.actions }
func (c *chain) DiscountFactor() float64 { return 1 }

func (c *chain) IsTerminal(s mdp.State) bool {
	return s.ID() == len(c.states)-1
}

func (c *chain) next(s mdp.State, a mdp.Action) int {
	if a.ID() == forward {
		if s.ID() == len(c.states)-1 {
			return s.ID()
		}
		return s.ID() + 1
	}
	if s.ID() == 0 {
		return 0
	}
	return s.ID() - 1
}

func (c *chain) TransitionProbability(s mdp.State, a mdp.Action, next mdp.State) float64 {
	if next.ID() == c.next(s, a) {
		return 1
	}
	return 0
}

func (c *chain) Reward(s mdp.State, a mdp.Action, next mdp.State) float64 {
	if c.IsTerminal(next) {
		return 0
	}
	return -1
}

func (c *chain) Act(s mdp.State, a mdp.Action) mdp.State {
	return c.states[c.next(s, a)]
}

// deadEnd declares no reachable successor for any state.
type deadEnd struct{ *chain }

func (d deadEnd) TransitionProbability(mdp.State, mdp.Action, mdp.State) float64 {
	return 0
}

// allForward maps every chain state to the forward action.
func allForward(n int) *mdp.Policy {
	mapping := make(map[int]int, n)
	for i := 0; i < n; i++ {
		mapping[i] = forward
	}
	return mdp.NewPolicy(mapping)
}

func TestRunPolicyReachesTerminal(t *testing.T) {
	env := newChain(10)
	policy := allForward(10)

	episode, err := mdp.RunPolicy(env, policy, env.states[0], 1000)
	require.NoError(t, err)

	assert.Equal(t, 0, episode.StartingState)
	assert.Equal(t, 0, episode.Trajectory[0])
	assert.Equal(t, 9, episode.Trajectory[len(episode.Trajectory)-1])
	assert.Len(t, episode.Trajectory, 10)
	assert.Equal(t, 9, episode.Steps())

	// eight -1 transitions, then a free step into the terminal
	assert.InDelta(t, -8.0, episode.TotalReward, 1e-12)
}

func TestRunPolicyStopsAtMaxSteps(t *testing.T) {
	env := newChain(10)
	mapping := make(map[int]int)
	for i := 0; i < 10; i++ {
		mapping[i] = backward
	}
	policy := mdp.NewPolicy(mapping)

	episode, err := mdp.RunPolicy(env, policy, env.states[3], 5)
	require.NoError(t, err)

	// never reaches the terminal, so exactly maxSteps states are
	// appended after the start
	assert.Equal(t, []int{3, 2, 1, 0, 0, 0}, episode.Trajectory)
	assert.InDelta(t, -5.0, episode.TotalReward, 1e-12)
}

func TestRunPolicyTerminalStart(t *testing.T) {
	env := newChain(10)
	policy := allForward(10)

	episode, err := mdp.RunPolicy(env, policy, env.states[9], 1000)
	require.NoError(t, err)

	assert.Equal(t, []int{9, 9}, episode.Trajectory)
	assert.Zero(t, episode.TotalReward)
}

func TestRunPolicyNoActionAtStart(t *testing.T) {
	env := newChain(10)
	policy := mdp.NewPolicy(map[int]int{})

	episode, err := mdp.RunPolicy(env, policy, env.states[0], 1000)
	assert.Nil(t, episode)

	var noAction *mdp.NoActionError
	require.ErrorAs(t, err, &noAction)
	assert.Equal(t, 0, noAction.StateID)
}

func TestRunPolicyNoActionMidway(t *testing.T) {
	env := newChain(10)
	policy := mdp.NewPolicy(map[int]int{0: forward})

	episode, err := mdp.RunPolicy(env, policy, env.states[0], 1000)
	assert.Nil(t, episode)

	var noAction *mdp.NoActionError
	require.ErrorAs(t, err, &noAction)
	assert.Equal(t, 1, noAction.StateID)
}

func TestRunPolicyNoTransition(t *testing.T) {
	env := deadEnd{newChain(3)}
	policy := allForward(3)

	episode, err := mdp.RunPolicy(env, policy, env.states[0], 10)
	assert.Nil(t, episode)

	var noTransition *mdp.NoTransitionError
	require.ErrorAs(t, err, &noTransition)
	assert.Equal(t, 0, noTransition.StateID)
}
