package preview

import "math"

// Preview sizing, in screen pixels and tiles.
const (
	TileAdvance = 24.0
	TileSize    = 32.0
	MaxTiles    = 3000.0
	MaxScale    = 20.0
)

// PreviewSize returns the map size that fills a viewport and the scale the
// map is drawn at. Large viewports get a smaller map drawn bigger so the tile
// count stays at or below MaxTiles.
func PreviewSize(viewWidth, viewHeight int) (width, height int, scale float64) {
	scale = 1
	w := float64(viewWidth) / TileAdvance
	h := float64(viewHeight) / TileSize
	if w*h > MaxTiles {
		scale = w * h / MaxTiles
		w /= scale
		h /= scale
		scale = math.Min(scale, MaxScale)
	}
	return max(int(w), 1), max(int(h), 1), scale
}
