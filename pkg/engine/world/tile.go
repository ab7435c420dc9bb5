// Package world provides the tile grid that maps are made of.
// These are engine-level constructs; the terrain names come from a ruleset.
package world

import "fmt"

// Tile represents a single map tile.
type Tile struct {
	Row int
	Col int

	// Terrain is the base terrain name from the ruleset (e.g. "Grassland", "Ocean").
	Terrain string
	// Feature is an optional terrain feature on top of the base terrain (e.g. "Hill").
	Feature string

	Elevation   float64 // -1.0 (deep water) to 1.0 (peaks)
	Temperature float64 // -1.0 (polar) to 1.0 (equatorial)

	Water bool
}

// NewTile creates a tile at the given position with no terrain assigned.
func NewTile(row, col int) *Tile {
	return &Tile{Row: row, Col: col}
}

// IsLand returns true if the tile is not water.
func (t *Tile) IsLand() bool {
	return !t.Water
}

// String returns a short description used in logs and dumps.
func (t *Tile) String() string {
	if t.Feature != "" {
		return fmt.Sprintf("%d:%d %s/%s", t.Row, t.Col, t.Terrain, t.Feature)
	}
	return fmt.Sprintf("%d:%d %s", t.Row, t.Col, t.Terrain)
}
