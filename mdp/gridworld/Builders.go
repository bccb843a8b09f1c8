package gridworld

import (
	"fmt"

	"gorgonia.org/tensor"
)

// TransitionModel describes movement uncertainty. Given an intended
// move, the model returns a directional function: the probability of
// actually moving in each of the four directions. The four directional
// probabilities of each intended move must sum to 1.
type TransitionModel func(Move) func(Move) float64

// SlipModel returns a TransitionModel in which the intended direction
// succeeds with probability forward and each of the two orthogonal
// directions occurs with probability lateral. The opposite direction
// never occurs, so forward + 2*lateral must equal 1 for the resulting
// grid to validate.
func SlipModel(forward, lateral float64) TransitionModel {
	return func(intended Move) func(Move) float64 {
		return func(direction Move) float64 {
			switch {
			case direction == intended:
				return forward
			case orthogonal(intended, direction):
				return lateral
			default:
				return 0
			}
		}
	}
}

// orthogonal reports whether two moves are at right angles.
func orthogonal(a, b Move) bool {
	vertical := func(m Move) bool { return m == North || m == South }
	return vertical(a) != vertical(b)
}

// NewFromModel creates a GridWorld whose movement actions share a
// state-independent transition model. For every non-terminal tile and
// every action, the model's four directional probabilities are summed
// onto the neighboring tile in each direction, or back onto the source
// tile when that neighbor is a wall or lies beyond the grid boundary.
// The reward function's value is assigned to the entries that
// represent an actual move into a non-wall tile. Terminal tiles are
// self-absorbing with probability 1 for every action.
func NewFromModel(rows, columns int, isWall func(Tile) bool,
	model TransitionModel, reward func(Tile) float64,
	isTerminal func(Tile) bool, seed uint64) (*GridWorld, error) {
	if rows <= 0 || columns <= 0 {
		return nil, ErrEmptyGrid
	}

	n := rows * columns
	tiles := makeTiles(rows, columns)
	probs := make([]float64, n*len(Moves)*n)
	rewards := make([]float64, n*len(Moves)*n)

	for _, tile := range tiles {
		if isTerminal(tile) {
			for _, action := range Moves {
				probs[flatIndex(tile.id, action.ID(), tile.id, n)] = 1
			}
			continue
		}

		for _, action := range Moves {
			directional := model(action)
			for _, direction := range Moves {
				dest := tiles[neighbor(tile.row, tile.col, rows, columns,
					direction)]

				if isWall(dest) {
					probs[flatIndex(tile.id, action.ID(), tile.id, n)] +=
						directional(direction)
					continue
				}

				probs[flatIndex(tile.id, action.ID(), dest.id, n)] +=
					directional(direction)
				rewards[flatIndex(tile.id, action.ID(), dest.id, n)] =
					reward(dest)
			}
		}
	}

	return New(rows, columns, asTensor(probs, n), asTensor(rewards, n),
		isTerminal, seed)
}

// NewCorner creates the corner benchmark: the top-left and bottom-right
// tiles are self-absorbing terminal states, and every other tile moves
// to the intended neighbor with probability 1-uncertainty, staying in
// place with probability uncertainty. Moves against the grid boundary
// keep the agent in place with probability 1. Every non-terminal
// transition carries a reward of -1, so an optimal policy takes the
// shortest path to the nearer corner.
//
// NewCorner panics if uncertainty lies outside [0, 1].
func NewCorner(rows, columns int, uncertainty float64, seed uint64) (*GridWorld, error) {
	if uncertainty < 0 || uncertainty > 1 {
		panic(fmt.Sprintf("newCorner: uncertainty must be in [0, 1], got %v",
			uncertainty))
	}
	if rows <= 0 || columns <= 0 {
		return nil, ErrEmptyGrid
	}

	n := rows * columns
	tiles := makeTiles(rows, columns)
	probs := make([]float64, n*len(Moves)*n)
	rewards := make([]float64, n*len(Moves)*n)
	isTerminal := func(t Tile) bool { return t.id == 0 || t.id == n-1 }

	for _, tile := range tiles {
		if isTerminal(tile) {
			for _, action := range Moves {
				probs[flatIndex(tile.id, action.ID(), tile.id, n)] = 1
			}
			continue
		}

		for _, action := range Moves {
			next := neighbor(tile.row, tile.col, rows, columns, action)
			if next == tile.id {
				probs[flatIndex(tile.id, action.ID(), tile.id, n)] = 1
			} else {
				probs[flatIndex(tile.id, action.ID(), next, n)] = 1 - uncertainty
				probs[flatIndex(tile.id, action.ID(), tile.id, n)] = uncertainty
			}

			// Negative rewards on every non-terminal transition force
			// the optimal policy to reach a corner in as few
			// transitions as possible.
			rewards[flatIndex(tile.id, action.ID(), next, n)] = -1
		}
	}

	return New(rows, columns, asTensor(probs, n), asTensor(rewards, n),
		isTerminal, seed)
}

// makeTiles builds the tile arena for a rows x columns grid.
func makeTiles(rows, columns int) []Tile {
	tiles := make([]Tile, 0, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			tiles = append(tiles, Tile{id: r*columns + c, row: r, col: c})
		}
	}
	return tiles
}

// neighbor returns the ID of the tile one step in direction dir from
// (row, col), clamped to the source tile at the grid boundary.
func neighbor(row, col, rows, columns int, dir Move) int {
	switch dir {
	case North:
		if row > 0 {
			row--
		}
	case South:
		if row < rows-1 {
			row++
		}
	case East:
		if col < columns-1 {
			col++
		}
	case West:
		if col > 0 {
			col--
		}
	}
	return row*columns + col
}

// flatIndex returns the index of (s, a, next) in a flat SxAxS' backing.
func flatIndex(s, a, next, n int) int {
	return (s*len(Moves)+a)*n + next
}

// asTensor wraps a flat SxAxS' backing slice in a dense tensor.
func asTensor(backing []float64, n int) *tensor.Dense {
	return tensor.New(tensor.WithShape(n, len(Moves), n),
		tensor.WithBacking(backing))
}
