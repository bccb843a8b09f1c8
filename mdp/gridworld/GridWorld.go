// Package gridworld implements a 2D grid environment as a finite MDP
// with dense SxAxS' transition-probability and reward tensors
package gridworld

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"

	"github.com/gridplan/gridplan/mdp"
)

// rowSumTolerance is the absolute tolerance used when validating that
// each (state, action) transition row sums to 1.
const rowSumTolerance = 1e-9

// Move represents a movement action on the grid, one cell in each of
// the four cardinal directions.
type Move int

const (
	North Move = iota
	South
	East
	West
)

// Moves lists every movement action in ID order.
var Moves = [4]Move{North, South, East, West}

// ID returns the dense zero-based identifier of the move.
func (m Move) ID() int { return int(m) }

func (m Move) String() string {
	switch m {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Tile is a single cell of the grid, identified by
// id = row*columns + column.
type Tile struct {
	id       int
	row, col int
}

// ID returns the dense zero-based identifier of the tile.
func (t Tile) ID() int { return t.id }

// Row returns the tile's row on the grid.
func (t Tile) Row() int { return t.row }

// Col returns the tile's column on the grid.
func (t Tile) Col() int { return t.col }

// GridWorld is a grid-based Markov decision process, commonly used in
// reinforcement learning to model an agent navigating a 2-dimensional
// grid of stochastic transitions, collecting rewards. The transition
// and reward tensors are immutable after construction, so a GridWorld
// may be shared read-only between concurrent planner or rollout runs.
type GridWorld struct {
	rows, columns int
	tiles         []Tile
	states        []mdp.State
	actions       []mdp.Action
	transitions   *tensor.Dense
	rewards       *tensor.Dense

	// flat views over the tensor backings, indexed (s*A + a)*S + s'
	transitionData []float64
	rewardData     []float64

	terminals map[int]bool
	source    rand.Source
}

// New creates a custom GridWorld from explicit transition and reward
// tensors of shape [S][4][S'], where S = rows*columns. Every
// (state, action) transition row must sum to 1 within a small
// tolerance. The seed drives the categorical sampling performed by
// Act.
func New(rows, columns int, transitions, rewards *tensor.Dense,
	isTerminal func(Tile) bool, seed uint64) (*GridWorld, error) {
	if rows <= 0 || columns <= 0 {
		return nil, ErrEmptyGrid
	}

	n := rows * columns
	if !validShape(transitions, n) {
		return nil, ErrInvalidTransitionMatrix
	}
	if !validShape(rewards, n) {
		return nil, ErrInvalidRewardMatrix
	}
	transitionData, ok := transitions.Data().([]float64)
	if !ok {
		return nil, ErrInvalidTransitionMatrix
	}
	rewardData, ok := rewards.Data().([]float64)
	if !ok {
		return nil, ErrInvalidRewardMatrix
	}

	g := &GridWorld{
		rows:           rows,
		columns:        columns,
		transitions:    transitions,
		rewards:        rewards,
		transitionData: transitionData,
		rewardData:     rewardData,
		terminals:      make(map[int]bool),
		source:         rand.NewSource(seed),
	}
	g.buildTiles(isTerminal)

	if err := g.validateRowSums(); err != nil {
		return nil, err
	}
	return g, nil
}

// buildTiles fills in the tile arena and the terminal set.
func (g *GridWorld) buildTiles(isTerminal func(Tile) bool) {
	n := g.rows * g.columns
	g.tiles = make([]Tile, 0, n)
	g.states = make([]mdp.State, 0, n)

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.columns; c++ {
			tile := Tile{id: r*g.columns + c, row: r, col: c}
			if isTerminal != nil && isTerminal(tile) {
				g.terminals[tile.id] = true
			}
			g.tiles = append(g.tiles, tile)
			g.states = append(g.states, tile)
		}
	}

	g.actions = make([]mdp.Action, len(Moves))
	for i, move := range Moves {
		g.actions[i] = move
	}
}

// validateRowSums checks that every (state, action) transition row
// sums to 1 within rowSumTolerance.
func (g *GridWorld) validateRowSums() error {
	n := g.rows * g.columns
	for s := 0; s < n; s++ {
		for a := range Moves {
			base := (s*len(Moves) + a) * n
			sum := floats.Sum(g.transitionData[base : base+n])
			if !scalar.EqualWithinAbs(sum, 1, rowSumTolerance) {
				return ErrInvalidTransitionMatrix
			}
		}
	}
	return nil
}

// validShape reports whether t has shape [n][len(Moves)][n].
func validShape(t *tensor.Dense, n int) bool {
	if t == nil {
		return false
	}
	shape := t.Shape()
	return len(shape) == 3 && shape[0] == n && shape[1] == len(Moves) &&
		shape[2] == n
}

// flat returns the index of (s, a, next) in the flat tensor backing.
func (g *GridWorld) flat(s, a, next int) int {
	return (s*len(Moves)+a)*g.rows*g.columns + next
}

// Rows returns the number of rows on the grid.
func (g *GridWorld) Rows() int { return g.rows }

// Columns returns the number of columns on the grid.
func (g *GridWorld) Columns() int { return g.columns }

// Tiles returns the grid's tiles ordered by ID. The returned slice is
// shared and must not be modified.
func (g *GridWorld) Tiles() []Tile { return g.tiles }

// TileAt returns the tile at (row, col).
func (g *GridWorld) TileAt(row, col int) Tile {
	return g.tiles[row*g.columns+col]
}

// NStates returns the number of states.
func (g *GridWorld) NStates() int { return g.rows * g.columns }

// NActions returns the number of movement actions.
func (g *GridWorld) NActions() int { return len(Moves) }

// States returns every tile as an mdp.State, ordered by ID.
func (g *GridWorld) States() []mdp.State { return g.states }

// Actions returns every movement action, ordered by ID.
func (g *GridWorld) Actions() []mdp.Action { return g.actions }

// IsTerminal returns whether the given state is terminal.
func (g *GridWorld) IsTerminal(s mdp.State) bool {
	return g.terminals[s.ID()]
}

// DiscountFactor returns 1: gridworld rewards are undiscounted.
func (g *GridWorld) DiscountFactor() float64 { return 1.0 }

// TransitionProbability returns the probability of the transition
// triplet (s, a, next).
func (g *GridWorld) TransitionProbability(s mdp.State, a mdp.Action,
	next mdp.State) float64 {
	return g.transitionData[g.flat(s.ID(), a.ID(), next.ID())]
}

// Reward returns the reward of the transition triplet (s, a, next).
func (g *GridWorld) Reward(s mdp.State, a mdp.Action, next mdp.State) float64 {
	return g.rewardData[g.flat(s.ID(), a.ID(), next.ID())]
}

// Act samples the next state after taking action a in state s, using
// the grid's seeded source. Act panics if the (s, a) row carries no
// probability mass, which indicates a malformed environment.
func (g *GridWorld) Act(s mdp.State, a mdp.Action) mdp.State {
	n := g.rows * g.columns
	base := (s.ID()*len(Moves) + a.ID()) * n

	dist := distuv.NewCategorical(g.transitionData[base:base+n], g.source)
	return g.states[int(dist.Rand())]
}
