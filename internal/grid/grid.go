package grid

// Size is the fixed board dimension: 16x16 cells.
const Size = 16

// Grid is the static 16x16 topology. It owns every Cell; all other
// components reference cells through it or through the *Cell pointers it
// hands out (which remain valid for the grid's lifetime).
type Grid struct {
	cells [Size][Size]Cell
}

// NewGrid allocates a fresh, empty 16x16 grid with neighbor links wired.
func NewGrid() *Grid {
	g := &Grid{}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			g.cells[x][y] = Cell{X: x, Y: y}
		}
	}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			c := &g.cells[x][y]
			for _, dir := range AllDirections {
				dx, dy := dir.delta()
				nx, ny := x+dx, y+dy
				if nx >= 0 && nx < Size && ny >= 0 && ny < Size {
					c.neighbors[dir] = &g.cells[nx][ny]
				}
			}
		}
	}
	return g
}

// At returns the cell at (x,y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Cell {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return nil
	}
	return &g.cells[x][y]
}

// Each invokes fn for every cell in row-major order.
func (g *Grid) Each(fn func(c *Cell)) {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			fn(&g.cells[x][y])
		}
	}
}

// InBounds reports whether (x,y) addresses a cell of this grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}
