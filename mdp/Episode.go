package mdp

// Episode is the result of executing a policy on an MDP: the starting
// state, the trajectory of visited states over the horizon, and the
// total reward accumulated along the way. Trajectories hold state IDs
// and always begin with the starting state.
type Episode struct {
	StartingState int
	Trajectory    []int
	TotalReward   float64
}

// Steps returns the number of transitions taken in the episode.
func (e *Episode) Steps() int {
	return len(e.Trajectory) - 1
}
