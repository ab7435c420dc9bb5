package mapgen

import (
	"fmt"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/ruleset"
)

// palette picks ruleset terrains for generated tiles.
type palette struct {
	deep     string
	shallow  string
	land     []ruleset.Terrain
	features []ruleset.Terrain
}

func newPalette(rs *ruleset.Ruleset) (*palette, error) {
	water := rs.TerrainsOfType(ruleset.TerrainWater)
	land := rs.TerrainsOfType(ruleset.TerrainLand)
	if len(water) == 0 || len(land) == 0 {
		return nil, fmt.Errorf("ruleset %s: %w", rs.Name, ErrNoTerrain)
	}
	p := &palette{
		deep:     water[0].Name,
		shallow:  water[0].Name,
		land:     land,
		features: rs.TerrainsOfType(ruleset.TerrainFeature),
	}
	if len(water) > 1 {
		p.shallow = water[1].Name
	}
	return p, nil
}

// landFor returns the land terrain whose band covers temp, or the nearest end.
func (p *palette) landFor(temp float64) string {
	for _, t := range p.land {
		if ruleset.Covers(t.Temperature, temp) {
			return t.Name
		}
	}
	if len(p.land[0].Temperature) == 2 && temp < p.land[0].Temperature[0] {
		return p.land[0].Name
	}
	return p.land[len(p.land)-1].Name
}

func (p *palette) featureFor(elev float64) string {
	for _, t := range p.features {
		if ruleset.Covers(t.Elevation, elev) {
			return t.Name
		}
	}
	return ""
}

// paint assigns terrain names. Water next to land becomes shallow.
func (p *palette) paint(grid *world.Grid) {
	grid.ForEachTile(func(row, col int, tile *world.Tile) {
		if !tile.Water {
			tile.Terrain = p.landFor(tile.Temperature)
			tile.Feature = p.featureFor(tile.Elevation)
			return
		}
		tile.Terrain = p.deep
		for _, dir := range world.AllDirections() {
			if n := grid.Neighbor(tile, dir); n != nil && n.IsLand() {
				tile.Terrain = p.shallow
				return
			}
		}
	})
}
