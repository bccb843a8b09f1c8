package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gridplan/gridplan/bandit"
	"github.com/gridplan/gridplan/mdp"
	"github.com/gridplan/gridplan/mdp/gridworld"
	"github.com/gridplan/gridplan/solver"
)

type CLI struct {
	Verbose bool `short:"v" help:"Verbose logging"`

	Solve   SolveCmd   `cmd:"" help:"Solve a corner gridworld and print the optimal policy"`
	Rollout RolloutCmd `cmd:"" help:"Solve a corner gridworld and execute the optimal policy"`
	Bandit  BanditCmd  `cmd:"" help:"Benchmark bandit strategies on normally distributed arms"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gridplan"),
		kong.Description("Tabular reinforcement-learning planners and bandits"),
		kong.UsageOnError(),
	)

	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx.FatalIfErrorf(ctx.Run())
}

// gridFlags are the options shared by the solve and rollout commands.
type gridFlags struct {
	Rows          int     `default:"4" help:"Grid rows"`
	Columns       int     `default:"4" help:"Grid columns"`
	Uncertainty   float64 `default:"0.2" help:"Probability of an action failing to move"`
	Solver        string  `default:"value" enum:"value,policy" help:"Planner: value or policy iteration"`
	Theta         float64 `default:"1e-6" help:"Convergence threshold"`
	MaxIterations int     `default:"10000" help:"Evaluation sweep cap"`
	Seed          uint64  `default:"42" help:"Random seed"`
}

// solve builds the corner world and runs the configured planner on it.
func (f gridFlags) solve() (*gridworld.GridWorld, *mdp.Policy, error) {
	grid, err := gridworld.NewCorner(f.Rows, f.Columns, f.Uncertainty, f.Seed)
	if err != nil {
		return nil, nil, fmt.Errorf("building corner world: %w", err)
	}

	solverType := solver.ValueIterationSolver
	if f.Solver == "policy" {
		solverType = solver.PolicyIterationSolver
	}

	s, err := solver.Config{
		Type:          solverType,
		Theta:         f.Theta,
		MaxIterations: f.MaxIterations,
		Seed:          f.Seed,
	}.Create()
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	policy, err := s.FindOptimalPolicy(grid)
	if err != nil {
		return nil, nil, fmt.Errorf("planning failed: %w", err)
	}
	log.Debug("planner finished", "solver", solverType,
		"states", grid.NStates(), "elapsed", time.Since(start))

	return grid, policy, nil
}

type SolveCmd struct {
	gridFlags
}

func (c *SolveCmd) Run() error {
	grid, policy, err := c.solve()
	if err != nil {
		return err
	}

	fmt.Println(grid.RenderPolicy(policy))
	log.Info("solved corner world", "rows", c.Rows, "columns", c.Columns,
		"uncertainty", c.Uncertainty)
	return nil
}

type RolloutCmd struct {
	gridFlags
	StartRow int `default:"0" help:"Starting row"`
	StartCol int `default:"1" help:"Starting column"`
	MaxSteps int `default:"100" help:"Maximum rollout steps"`
}

func (c *RolloutCmd) Run() error {
	grid, policy, err := c.solve()
	if err != nil {
		return err
	}

	if c.StartRow < 0 || c.StartRow >= c.Rows ||
		c.StartCol < 0 || c.StartCol >= c.Columns {
		return fmt.Errorf("start (%d, %d) outside %dx%d grid",
			c.StartRow, c.StartCol, c.Rows, c.Columns)
	}

	start := grid.TileAt(c.StartRow, c.StartCol)
	episode, err := mdp.RunPolicy(grid, policy, start, c.MaxSteps)
	if err != nil {
		return fmt.Errorf("rollout failed: %w", err)
	}

	log.Info("rollout finished", "start", episode.StartingState,
		"steps", episode.Steps(), "totalReward", episode.TotalReward)
	fmt.Println("trajectory:", episode.Trajectory)
	return nil
}

type BanditCmd struct {
	Arms       int     `default:"10" help:"Number of arms"`
	Epsilon    float64 `default:"0.1" help:"Epsilon for the epsilon-greedy bandit"`
	Confidence float64 `default:"2" help:"Exploration coefficient for the UCB bandit"`
	Runs       int     `default:"200" help:"Benchmark restarts"`
	Steps      int     `default:"1000" help:"Pulls per run"`
	Seed       uint64  `default:"42" help:"Random seed"`
}

func (c *BanditCmd) Run() error {
	// arm values drawn from a standard normal, rewards unit-variance
	// around each value
	values := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(c.Seed)}
	arms := make([]bandit.Arm, c.Arms)
	for i := range arms {
		arms[i] = bandit.NewNormalArm(values.Rand(), c.Seed+uint64(i)+1)
	}
	multiArm := bandit.NewMultiArm(arms)

	bandits := []*bandit.Bandit{
		bandit.NewGreedy(c.Arms, c.Seed),
		bandit.NewEpsilonGreedy(c.Arms, c.Epsilon, c.Seed),
		bandit.NewUCB(c.Arms, c.Confidence, c.Seed),
	}
	names := []string{"greedy", "epsilon-greedy", "ucb"}

	start := time.Now()
	result := bandit.NewBenchmark(multiArm, bandits).Run(c.Runs, c.Steps)
	log.Debug("benchmark finished", "elapsed", time.Since(start))

	last := c.Steps - 1
	for i, name := range names {
		log.Info("bandit result", "strategy", name,
			"finalAverageReward", result.AverageReward[i][last],
			"finalOptimalActionPct", result.OptimalActionPercentage[i][last])
	}
	return nil
}
