package devtools

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"

	"frontier/pkg/engine/terminal"
	"frontier/pkg/engine/world"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/ruleset"
)

// TerminalMapSize returns the map size that fills the terminal behind out, two
// characters per tile and one line kept for the prompt.
func TerminalMapSize(out *os.File) (width, height int) {
	cols, rows := terminal.SizeOf(out)
	return max(cols/2-1, 1), max(rows-1, 1)
}

// WriteColorMap writes grid as coloured blocks using the terrain colours of
// images' ruleset.
func WriteColorMap(w io.Writer, grid *world.Grid, images *assets.Images) error {
	var b strings.Builder
	for row := 0; row < grid.Rows(); row++ {
		if row%2 == 1 {
			b.WriteByte(' ')
		}
		for col := 0; col < grid.Cols(); col++ {
			tile := grid.GetTile(row, col)
			c := images.TerrainColor(tile.Terrain)
			cell := "  "
			if tile.Feature != "" {
				f := images.TerrainColor(tile.Feature)
				cell = color.RGB(f.R, f.G, f.B).Sprint("▲ ")
			}
			b.WriteString(color.RGB(c.R, c.G, c.B, true).Sprint(cell))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DumpPreview generates one background preview map sized to the terminal and
// prints it to out, in colour on a terminal and as a text dump otherwise.
func DumpPreview(ctx context.Context, out *os.File, rulesets *ruleset.Cache, gen mapgen.Generator) error {
	base := rulesets.Vanilla()
	if base == nil {
		return fmt.Errorf("vanilla ruleset not loaded")
	}
	width, height := TerminalMapSize(out)
	grid, err := gen.Generate(ctx, base, mapgen.Parameters{
		Shape:                  mapgen.ShapeRectangular,
		Type:                   mapgen.TypePangaea,
		Width:                  width,
		Height:                 height,
		TemperatureExtremeness: 0.7,
		WaterThreshold:         -0.1,
	})
	if err != nil {
		return fmt.Errorf("generating preview: %w", err)
	}
	if !terminal.IsTerminal(out) {
		return WriteMapDump(out, grid, base)
	}
	images := assets.NewImagesFromCache(rulesets)
	images.SetRuleset(base)
	return WriteColorMap(out, grid, images)
}
