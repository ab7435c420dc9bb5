package ebiten

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/preview"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/screens"
)

// cachedMap is a map rendered once to an offscreen image.
type cachedMap struct {
	img   *ebiten.Image
	rs    *ruleset.Ruleset
	scale float64
	used  bool
}

// tileRect returns the pixel rectangle of a tile. Odd rows are shifted by
// half a tile, as on a hex map.
func tileRect(row, col int, scale float64) (x, y, w, h float32) {
	w = float32(preview.TileAdvance * scale)
	h = float32(preview.TileSize * scale)
	x = float32(col) * w
	if row%2 == 1 {
		x += w / 2
	}
	y = float32(row) * h
	return x, y, w, h
}

// mapPixelSize returns the size of a rows x cols map drawn at scale.
func mapPixelSize(rows, cols int, scale float64) (width, height int) {
	width = int(math.Ceil((float64(cols) + 0.5) * preview.TileAdvance * scale))
	height = int(math.Ceil(float64(rows) * preview.TileSize * scale))
	return max(width, 1), max(height, 1)
}

// fitScale returns the largest scale at which grid fits in width x height.
func fitScale(grid *world.Grid, width, height int) float64 {
	pw, ph := mapPixelSize(grid.Rows(), grid.Cols(), 1)
	return math.Min(float64(width)/float64(pw), float64(height)/float64(ph))
}

// mapImage returns grid rendered with the colours of images' ruleset.
func (a *App) mapImage(grid *world.Grid, images *assets.Images, scale float64) *ebiten.Image {
	rs := images.Ruleset()
	if c, ok := a.mapCache[grid]; ok && c.rs == rs && c.scale == scale {
		c.used = true
		return c.img
	}
	if c, ok := a.mapCache[grid]; ok {
		c.img.Deallocate()
	}
	w, h := mapPixelSize(grid.Rows(), grid.Cols(), scale)
	img := ebiten.NewImage(w, h)
	grid.ForEachTile(func(row, col int, tile *world.Tile) {
		x, y, tw, th := tileRect(row, col, scale)
		vector.DrawFilledRect(img, x, y, tw, th, images.TerrainColor(tile.Terrain), false)
		if tile.Feature != "" {
			vector.DrawFilledRect(img, x+tw/4, y+th/4, tw/2, th/2, images.TerrainColor(tile.Feature), false)
			vector.StrokeRect(img, x+tw/4, y+th/4, tw/2, th/2, 1, colorFeatureOverlay, false)
		}
	})
	a.mapCache[grid] = &cachedMap{img: img, rs: rs, scale: scale, used: true}
	return img
}

// pruneMapCache frees images not drawn this frame.
func (a *App) pruneMapCache() {
	for key, c := range a.mapCache {
		if !c.used {
			c.img.Deallocate()
			delete(a.mapCache, key)
			continue
		}
		c.used = false
	}
}

// Draw renders the active screen (Ebiten interface).
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	top := a.env.Stack.Top()
	if top == nil {
		return
	}

	if v, ok := top.(screens.BackgroundView); ok {
		a.drawBackground(screen, v.Background(), v.Images())
	}
	if v, ok := top.(screens.MapView); ok && v.Map() != nil {
		a.drawWorldMap(screen, v.Map(), v.Images())
	}
	if v, ok := top.(screens.TitleView); ok {
		drawText(screen, v.Title(), a.fonts.title, panelPadding, panelPadding, colorText)
	}
	if v, ok := top.(screens.MenuView); ok {
		bg := colorPanel
		if _, main := top.(*screens.MainMenu); main {
			bg = colorMainPanel
		}
		a.drawMenu(screen, v.Menu(), bg)
	}
	if v, ok := top.(screens.PopupView); ok {
		for _, m := range v.Popups() {
			a.drawMenu(screen, m, colorPanel)
		}
	}
	a.drawToasts(screen)
	a.pruneMapCache()
}

func (a *App) drawBackground(screen *ebiten.Image, stack *preview.Stack, images *assets.Images) {
	for _, l := range stack.Layers() {
		switch l.Kind {
		case preview.LayerBackdrop:
			screen.Fill(colorBackdrop)
		case preview.LayerMap:
			if l.Alpha <= 0 {
				continue
			}
			img := a.mapImage(l.Map, images, l.Scale)
			op := &ebiten.DrawImageOptions{}
			op.ColorScale.ScaleAlpha(float32(l.Alpha))
			screen.DrawImage(img, op)
		}
	}
}

func (a *App) drawWorldMap(screen *ebiten.Image, grid *world.Grid, images *assets.Images) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale := fitScale(grid, sw, sh)
	img := a.mapImage(grid, images, scale)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sw-img.Bounds().Dx())/2, float64(sh-img.Bounds().Dy())/2)
	screen.DrawImage(img, op)
}

func (a *App) drawToasts(screen *ebiten.Image) {
	active := a.env.Toasts.Active()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	y := float32(sh) - panelPadding
	for i := len(active) - 1; i >= 0; i-- {
		w, h := text.Measure(active[i], a.fonts.bold, 0)
		boxW, boxH := float32(w)+2*lineSpacing, float32(h)+lineSpacing
		y -= boxH
		x := (float32(sw) - boxW) / 2
		drawRoundedRectWithShadow(screen, x, y, boxW, boxH, 8, 1, colorToast, colorToastBorder, 0.6)
		drawText(screen, active[i], a.fonts.bold, x+lineSpacing, y+lineSpacing/2, colorText)
		y -= lineSpacing
	}
}
