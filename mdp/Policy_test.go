package mdp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridplan/gridplan/mdp"
)

func TestNewPolicyPartialMapping(t *testing.T) {
	policy := mdp.NewPolicy(map[int]int{1: 10})

	action, ok := policy.SelectAction(chainState{1})
	require.True(t, ok)
	assert.Equal(t, 10, action)

	// an unmapped state is a legitimate miss, not an error
	_, ok = policy.SelectAction(chainState{0})
	assert.False(t, ok)
}

func TestNewRandomPolicy(t *testing.T) {
	var seed uint64 = 192382

	states := make([]mdp.State, 5)
	for i := range states {
		states[i] = chainState{i}
	}
	actions := make([]mdp.Action, 4)
	for i := range actions {
		actions[i] = chainAction{i}
	}

	policy := mdp.NewRandomPolicy(states, actions, seed)
	assert.Equal(t, 5, policy.Len())

	for _, state := range states {
		action, ok := policy.SelectAction(state)
		require.True(t, ok)
		assert.GreaterOrEqual(t, action, 0)
		assert.Less(t, action, len(actions))
	}

	// no action for a state outside the set
	_, ok := policy.SelectAction(chainState{10})
	assert.False(t, ok)
}

func TestNewRandomPolicyDeterministic(t *testing.T) {
	var seed uint64 = 7

	states := make([]mdp.State, 8)
	for i := range states {
		states[i] = chainState{i}
	}
	actions := []mdp.Action{chainAction{0}, chainAction{1}}

	first := mdp.NewRandomPolicy(states, actions, seed)
	second := mdp.NewRandomPolicy(states, actions, seed)

	for _, state := range states {
		a, _ := first.SelectAction(state)
		b, _ := second.SelectAction(state)
		assert.Equal(t, a, b)
	}
}

func TestNewRandomPolicyEmptyActionsPanics(t *testing.T) {
	assert.Panics(t, func() {
		mdp.NewRandomPolicy([]mdp.State{chainState{0}}, nil, 1)
	})
}
