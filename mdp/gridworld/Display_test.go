package gridworld_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridplan/gridplan/mdp"
	"github.com/gridplan/gridplan/mdp/gridworld"
)

func TestString(t *testing.T) {
	grid, err := gridworld.NewCorner(2, 3, 0.2, testSeed)
	require.NoError(t, err)

	out := grid.String()
	assert.Equal(t, 2, strings.Count(out, "T"))
	for _, id := range []string{"1", "2", "3", "4"} {
		assert.Contains(t, out, id)
	}
}

func TestRenderPolicy(t *testing.T) {
	grid, err := gridworld.NewCorner(2, 3, 0.2, testSeed)
	require.NoError(t, err)

	policy := mdp.NewPolicy(map[int]int{
		1: gridworld.West.ID(),
		2: gridworld.South.ID(),
	})

	out := grid.RenderPolicy(policy)
	assert.Contains(t, out, "←")
	assert.Contains(t, out, "↓")
	// unmapped non-terminal tiles show a dot
	assert.Contains(t, out, "·")
	assert.Equal(t, 2, strings.Count(out, "T"))
}
