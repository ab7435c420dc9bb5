// Package devtools provides developer tools for inspecting generated maps.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/ruleset"
)

const mapDumpFilename = "map.txt"

// symbols assigns one character per terrain: the initial, lower case for water.
func symbols(rs *ruleset.Ruleset) map[string]rune {
	out := make(map[string]rune, len(rs.Terrains))
	for _, t := range rs.Terrains {
		r := []rune(t.Name)[0]
		if t.Type == ruleset.TerrainWater {
			r = unicode.ToLower(r)
		} else {
			r = unicode.ToUpper(r)
		}
		out[t.Name] = r
	}
	return out
}

// tileSymbol returns the character for a tile; features win over the base terrain.
func tileSymbol(sym map[string]rune, tile *world.Tile) rune {
	if tile == nil {
		return ' '
	}
	if r, ok := sym[tile.Feature]; ok && tile.Feature != "" {
		return r
	}
	if r, ok := sym[tile.Terrain]; ok {
		return r
	}
	return '?'
}

// WriteMapDump writes a plain-text dump of grid: metadata, legend, the map
// and terrain counts. Odd rows are indented by one column as on the hex map.
func WriteMapDump(w io.Writer, grid *world.Grid, rs *ruleset.Ruleset) error {
	if grid == nil {
		return fmt.Errorf("no grid")
	}
	sym := symbols(rs)

	var b strings.Builder
	b.WriteString("=== MAP DUMP ===\n\n--- Metadata ---\n")
	fmt.Fprintf(&b, "ruleset: %s\n", rs.Name)
	if mods := rs.ModNames(); len(mods) > 0 {
		sort.Strings(mods)
		fmt.Fprintf(&b, "mods: %s\n", strings.Join(mods, ", "))
	}
	fmt.Fprintf(&b, "grid_rows: %d\n", grid.Rows())
	fmt.Fprintf(&b, "grid_cols: %d\n", grid.Cols())
	fmt.Fprintf(&b, "land_fraction: %.2f\n\n", grid.LandFraction())

	b.WriteString("--- Legend ---\n")
	for _, t := range rs.Terrains {
		fmt.Fprintf(&b, "%c = %s (%s)\n", sym[t.Name], t.Name, t.Type)
	}

	b.WriteString("\n--- Map ---\n")
	for row := 0; row < grid.Rows(); row++ {
		if row%2 == 1 {
			b.WriteByte(' ')
		}
		for col := 0; col < grid.Cols(); col++ {
			b.WriteRune(tileSymbol(sym, grid.GetTile(row, col)))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n--- Terrain counts ---\n")
	counts := grid.CountTerrain()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s: %d\n", name, counts[name])
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// DumpMapToFile writes the dump to map.txt in the working directory and
// returns its absolute path.
func DumpMapToFile(grid *world.Grid, rs *ruleset.Ruleset) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteMapDump(f, grid, rs); err != nil {
		return "", err
	}
	return absPath, nil
}
