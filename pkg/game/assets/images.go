// Package assets resolves images and colours against the ruleset a screen shows.
//
// Each screen owns its own Images value, so switching the ruleset on one
// screen never changes how another screen looks.
package assets

import (
	"image/color"

	"github.com/zyedidia/generic/mapset"

	"frontier/pkg/game/ruleset"
)

// fallbackColor is used for terrains the active ruleset does not know.
var fallbackColor = color.RGBA{R: 96, G: 96, B: 96, A: 255}

// Images is the image context of one screen.
// It is used from the interactive thread only.
type Images struct {
	ruleset  *ruleset.Ruleset
	images   mapset.Set[string]
	tileSets mapset.Set[string]
}

// NewImages creates an image context over the images and tile sets named by
// the given rulesets.
func NewImages(rulesets ...*ruleset.Ruleset) *Images {
	i := &Images{
		images:   mapset.New[string](),
		tileSets: mapset.New[string](),
	}
	for _, rs := range rulesets {
		i.Register(rs)
	}
	return i
}

// NewImagesFromCache registers every ruleset held by c.
func NewImagesFromCache(c *ruleset.Cache) *Images {
	i := NewImages()
	for _, name := range c.Names() {
		if rs, ok := c.Get(name); ok {
			i.Register(rs)
		}
	}
	return i
}

// Register adds the images and tile sets a ruleset ships with.
func (i *Images) Register(rs *ruleset.Ruleset) {
	if rs == nil {
		return
	}
	for _, t := range rs.Terrains {
		if t.Image != "" {
			i.images.Put(t.Image)
		}
	}
	for _, ts := range rs.TileSets {
		i.tileSets.Put(ts)
	}
}

// SetRuleset makes rs the ruleset images are resolved against.
func (i *Images) SetRuleset(rs *ruleset.Ruleset) {
	i.ruleset = rs
}

// Ruleset returns the active ruleset, or nil if none was set.
func (i *Images) Ruleset() *ruleset.Ruleset {
	return i.ruleset
}

// ImageExists reports whether an image is available at path.
func (i *Images) ImageExists(path string) bool {
	return i.images.Has(path)
}

// KnownTileSet reports whether the named tile set can be drawn.
func (i *Images) KnownTileSet(name string) bool {
	return i.tileSets.Has(name)
}

// TerrainImage returns the image path for a terrain, or "" if there is none.
func (i *Images) TerrainImage(name string) string {
	if i.ruleset == nil {
		return ""
	}
	t, ok := i.ruleset.Terrain(name)
	if !ok || !i.ImageExists(t.Image) {
		return ""
	}
	return t.Image
}

// TerrainColor returns the colour the active ruleset gives a terrain.
func (i *Images) TerrainColor(name string) color.RGBA {
	if i.ruleset == nil {
		return fallbackColor
	}
	t, ok := i.ruleset.Terrain(name)
	if !ok {
		return fallbackColor
	}
	return color.RGBA{R: t.Color[0], G: t.Color[1], B: t.Color[2], A: 255}
}
