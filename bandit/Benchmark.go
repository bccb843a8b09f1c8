package bandit

// Result holds per-bandit, per-step statistics averaged over the runs
// of a benchmark. Both histories are indexed [bandit][step].
type Result struct {
	AverageReward           [][]float64
	OptimalActionPercentage [][]float64
}

// Benchmark repeatedly restarts a set of bandits against a shared set
// of arms and averages reward and optimal-action statistics across
// runs. When any arm's true value is unknown, the optimal-action
// history stays zero, since no optimal arm can be named.
type Benchmark struct {
	arms    *MultiArm
	bandits []*Bandit
}

// NewBenchmark returns a benchmark over the given arms and bandits.
func NewBenchmark(arms *MultiArm, bandits []*Bandit) *Benchmark {
	return &Benchmark{arms: arms, bandits: bandits}
}

// Run plays every bandit for the given number of steps, restarting
// them between runs, and returns the statistics averaged over runs.
func (bm *Benchmark) Run(runs, steps int) Result {
	averageReward := makeHistory(len(bm.bandits), steps)
	optimalPercentage := makeHistory(len(bm.bandits), steps)

	optimalArm, hasOptimal := bm.arms.OptimalArm()

	for run := 0; run < runs; run++ {
		bandits := make([]*Bandit, len(bm.bandits))
		for i, b := range bm.bandits {
			bandits[i] = b.Restart()
		}

		for t := 0; t < steps; t++ {
			for i, b := range bandits {
				arm := b.SelectArm()
				reward := bm.arms.Pull(arm)

				averageReward[i][t] += reward
				if hasOptimal && arm == optimalArm {
					optimalPercentage[i][t]++
				}

				b.ReceiveReward(reward)
			}
		}
	}

	for t := 0; t < steps; t++ {
		for i := range bm.bandits {
			averageReward[i][t] /= float64(runs)
			optimalPercentage[i][t] /= float64(runs)
		}
	}

	return Result{
		AverageReward:           averageReward,
		OptimalActionPercentage: optimalPercentage,
	}
}

func makeHistory(bandits, steps int) [][]float64 {
	history := make([][]float64, bandits)
	for i := range history {
		history[i] = make([]float64, steps)
	}
	return history
}
