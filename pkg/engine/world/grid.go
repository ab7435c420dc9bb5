package world

// Direction represents a cardinal direction between neighbouring tiles.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns the four cardinal directions.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// Delta returns the row and column offset for the direction.
func (d Direction) Delta() (row, col int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

// Grid is a rectangular map of tiles stored row-major.
type Grid struct {
	tiles []*Tile
	rows  int
	cols  int
}

// NewGrid creates a grid with the given dimensions.
// Panics if either dimension is not positive.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Build(rows, cols)
	return g
}

// Build initializes the grid with the given dimensions, replacing any tiles.
func (g *Grid) Build(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.rows = rows
	g.cols = cols
	g.tiles = make([]*Tile, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.tiles[row*cols+col] = NewTile(row, col)
		}
	}
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// TileCount returns rows*cols.
func (g *Grid) TileCount() int {
	return g.rows * g.cols
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// GetTile returns the tile at the given position, or nil if out of bounds
func (g *Grid) GetTile(row, col int) *Tile {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.tiles[row*g.cols+col]
}

// Neighbor returns the tile next to t in direction dir, or nil at the edge.
func (g *Grid) Neighbor(t *Tile, dir Direction) *Tile {
	if t == nil {
		return nil
	}
	dr, dc := dir.Delta()
	return g.GetTile(t.Row+dr, t.Col+dc)
}

// ForEachTile calls fn for every tile, row by row.
func (g *Grid) ForEachTile(fn func(row, col int, tile *Tile)) {
	for i, t := range g.tiles {
		fn(i/g.cols, i%g.cols, t)
	}
}

// CountTerrain returns how many tiles carry each base terrain.
func (g *Grid) CountTerrain() map[string]int {
	counts := make(map[string]int)
	for _, t := range g.tiles {
		counts[t.Terrain]++
	}
	return counts
}

// LandFraction returns the share of tiles that are land, 0.0 to 1.0.
func (g *Grid) LandFraction() float64 {
	if len(g.tiles) == 0 {
		return 0
	}
	land := 0
	for _, t := range g.tiles {
		if t.IsLand() {
			land++
		}
	}
	return float64(land) / float64(len(g.tiles))
}
