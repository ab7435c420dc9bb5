package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/assets"
)

// RenderHTML returns an HTML page showing grid with its terrain colours.
func RenderHTML(grid *world.Grid, images *assets.Images, title string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>` + html.EscapeString(title) + `</title>
    <style>
        body { background-color: #1a1a2e; color: #eee; font-family: sans-serif; padding: 20px; }
        .header { color: #bb86fc; font-size: 18px; margin-bottom: 10px; }
        .map { background-color: #0f0f1a; padding: 20px; border-radius: 8px; display: inline-block; }
        .row { height: 16px; white-space: nowrap; }
        .odd { margin-left: 6px; }
        .tile { display: inline-block; width: 12px; height: 16px; }
    </style>
</head>
<body>
`)
	fmt.Fprintf(&b, "    <div class=\"header\">%s</div>\n", html.EscapeString(title))
	b.WriteString("    <div class=\"map\">\n")
	for row := 0; row < grid.Rows(); row++ {
		class := "row"
		if row%2 == 1 {
			class += " odd"
		}
		fmt.Fprintf(&b, "        <div class=\"%s\">", class)
		for col := 0; col < grid.Cols(); col++ {
			tile := grid.GetTile(row, col)
			c := images.TerrainColor(tile.Terrain)
			name := tile.Terrain
			if tile.Feature != "" {
				name += "/" + tile.Feature
			}
			fmt.Fprintf(&b, `<span class="tile" title="%s" style="background:#%02x%02x%02x"></span>`,
				html.EscapeString(name), c.R, c.G, c.B)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("    </div>\n</body>\n</html>\n")
	return b.String()
}

// SaveScreenshotHTML writes RenderHTML to a timestamped file in dir and
// returns its path.
func SaveScreenshotHTML(grid *world.Grid, images *assets.Images, dir string) (string, error) {
	name := fmt.Sprintf("screenshot-%s.html", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	title := "Frontier"
	if rs := images.Ruleset(); rs != nil {
		title += " - " + rs.Name
	}
	if err := os.WriteFile(path, []byte(RenderHTML(grid, images, title)), 0o644); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return path, nil
}
