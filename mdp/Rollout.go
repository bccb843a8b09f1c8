package mdp

// RunPolicy executes a policy on an MDP and returns the resulting
// episode. Starting from start, each step queries the policy for an
// action, samples the next state with Act, appends it to the
// trajectory, and accumulates the reward of the sampled transition.
// The rollout stops the first time the current state is terminal, or
// after maximumSteps transitions, whichever comes first.
//
// A state with no mapped action aborts the rollout with a
// *NoActionError, and a (state, action) pair with no positive-
// probability successor aborts it with a *NoTransitionError. No
// partial episode is returned in either case.
func RunPolicy(m MDP, p *Policy, start State, maximumSteps int) (*Episode, error) {
	states := m.States()
	actions := m.Actions()

	current := start
	trajectory := make([]int, 1, maximumSteps+1)
	trajectory[0] = start.ID()
	totalReward := 0.0

	for step := 0; step < maximumSteps; step++ {
		actionID, ok := p.SelectAction(current)
		if !ok {
			return nil, &NoActionError{StateID: current.ID()}
		}
		action := actions[actionID]

		if !reachable(m, states, current, action) {
			return nil, &NoTransitionError{StateID: current.ID()}
		}

		next := m.Act(current, action)
		trajectory = append(trajectory, next.ID())
		totalReward += m.Reward(current, action, next)
		current = next

		if m.IsTerminal(current) {
			break
		}
	}

	return &Episode{
		StartingState: start.ID(),
		Trajectory:    trajectory,
		TotalReward:   totalReward,
	}, nil
}

// reachable reports whether any successor of (s, a) has positive
// transition probability.
func reachable(m MDP, states []State, s State, a Action) bool {
	for _, next := range states {
		if m.TransitionProbability(s, a, next) > 0 {
			return true
		}
	}
	return false
}
