package gridworld

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridplan/gridplan/mdp"
)

// Rendering is purely diagnostic; nothing in the planning contract
// depends on it.

var (
	cellStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	terminalStyle = cellStyle.Bold(true)
)

// arrow maps each move to the glyph used when rendering a policy.
var arrow = map[int]string{
	North.ID(): "↑",
	South.ID(): "↓",
	East.ID():  "→",
	West.ID():  "←",
}

// String renders the grid as text, marking terminal tiles with T and
// every other tile with its ID.
func (g *GridWorld) String() string {
	return g.render(func(t Tile) string {
		return fmt.Sprintf("%d", t.id)
	})
}

// RenderPolicy renders the grid with the policy's action for each tile
// drawn as an arrow. Tiles with no mapped action show a dot, and
// terminal tiles show T.
func (g *GridWorld) RenderPolicy(p *mdp.Policy) string {
	return g.render(func(t Tile) string {
		action, ok := p.SelectAction(t)
		if !ok {
			return "·"
		}
		glyph, known := arrow[action]
		if !known {
			return "?"
		}
		return glyph
	})
}

// render draws the grid one cell at a time. The cell function returns
// the tile's content; terminal tiles are always drawn as T.
func (g *GridWorld) render(cell func(Tile) string) string {
	rows := make([]string, g.rows)
	for r := 0; r < g.rows; r++ {
		cells := make([]string, g.columns)
		for c := 0; c < g.columns; c++ {
			tile := g.tiles[r*g.columns+c]
			if g.terminals[tile.id] {
				cells[c] = terminalStyle.Render("T")
				continue
			}
			cells[c] = cellStyle.Render(cell(tile))
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
