// Package ruleset loads the rule data that maps and games are built from.
//
// A base ruleset (for example "Civ V - Gods & Kings") supplies terrains, units
// and victory types. Mods are partial rulesets layered on top of a base one;
// Complex composes them in order, later entries overriding earlier ones.
package ruleset

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Terrain types used by the map generator.
const (
	TerrainWater   = "water"
	TerrainLand    = "land"
	TerrainFeature = "feature"
)

// Terrain describes one terrain entry.
type Terrain struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Color [3]uint8 `yaml:"color"`
	Image string   `yaml:"image,omitempty"`

	// Temperature is the [min, max) band a land terrain covers.
	Temperature []float64 `yaml:"temperature,omitempty"`
	// Elevation is the [min, max) band a feature covers.
	Elevation []float64 `yaml:"elevation,omitempty"`
}

// Covers reports whether v falls inside band. An empty band covers nothing.
func Covers(band []float64, v float64) bool {
	if len(band) != 2 {
		return false
	}
	return v >= band[0] && v < band[1]
}

// Ruleset is a named set of game rules.
type Ruleset struct {
	Name      string    `yaml:"name"`
	Base      bool      `yaml:"base"`
	TileSets  []string  `yaml:"tileSets,omitempty"`
	Terrains  []Terrain `yaml:"terrains"`
	Units     []string  `yaml:"units,omitempty"`
	Victories []string  `yaml:"victories,omitempty"`

	// Mods holds the names of mods layered onto this ruleset.
	Mods mapset.Set[string] `yaml:"-"`

	terrainIndex map[string]int
}

// index prepares the lookup indexes after decoding.
func (r *Ruleset) index() {
	r.terrainIndex = make(map[string]int, len(r.Terrains))
	for i, t := range r.Terrains {
		r.terrainIndex[t.Name] = i
	}
	if r.Mods.Size() == 0 {
		r.Mods = mapset.New[string]()
	}
}

// Validate checks that a ruleset can be used.
func (r *Ruleset) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("ruleset has no name")
	}
	seen := mapset.New[string]()
	for _, t := range r.Terrains {
		if t.Name == "" {
			return fmt.Errorf("ruleset %q: terrain without a name", r.Name)
		}
		if seen.Has(t.Name) {
			return fmt.Errorf("ruleset %q: duplicate terrain %q", r.Name, t.Name)
		}
		seen.Put(t.Name)
		switch t.Type {
		case TerrainWater, TerrainLand, TerrainFeature:
		default:
			return fmt.Errorf("ruleset %q: terrain %q has unknown type %q", r.Name, t.Name, t.Type)
		}
	}
	if r.Base {
		if len(r.TerrainsOfType(TerrainWater)) == 0 || len(r.TerrainsOfType(TerrainLand)) == 0 {
			return fmt.Errorf("ruleset %q: a base ruleset needs water and land terrains", r.Name)
		}
	}
	return nil
}

// Terrain returns the named terrain.
func (r *Ruleset) Terrain(name string) (Terrain, bool) {
	if r.terrainIndex == nil {
		r.index()
	}
	i, ok := r.terrainIndex[name]
	if !ok {
		return Terrain{}, false
	}
	return r.Terrains[i], true
}

// TerrainsOfType returns the terrains of the given type in declaration order.
func (r *Ruleset) TerrainsOfType(typ string) []Terrain {
	var out []Terrain
	for _, t := range r.Terrains {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// HasMod reports whether the named mod is part of this ruleset.
func (r *Ruleset) HasMod(name string) bool {
	return r.Mods.Has(name)
}

// ModNames returns the names of the mods layered onto this ruleset.
func (r *Ruleset) ModNames() []string {
	var names []string
	r.Mods.Each(func(name string) {
		names = append(names, name)
	})
	return names
}

// clone returns a deep copy with its own indexes.
func (r *Ruleset) clone() *Ruleset {
	out := &Ruleset{
		Name:      r.Name,
		Base:      r.Base,
		TileSets:  append([]string(nil), r.TileSets...),
		Terrains:  append([]Terrain(nil), r.Terrains...),
		Units:     append([]string(nil), r.Units...),
		Victories: append([]string(nil), r.Victories...),
		Mods:      mapset.New[string](),
	}
	r.Mods.Each(func(name string) { out.Mods.Put(name) })
	out.index()
	return out
}

// apply layers mod on top of r. Terrains with the same name are replaced,
// new entries are appended.
func (r *Ruleset) apply(mod *Ruleset) {
	for _, t := range mod.Terrains {
		if i, ok := r.terrainIndex[t.Name]; ok {
			r.Terrains[i] = t
			continue
		}
		r.terrainIndex[t.Name] = len(r.Terrains)
		r.Terrains = append(r.Terrains, t)
	}

	units := mapset.New[string]()
	for _, u := range r.Units {
		units.Put(u)
	}
	for _, u := range mod.Units {
		if !units.Has(u) {
			units.Put(u)
			r.Units = append(r.Units, u)
		}
	}

	victories := mapset.New[string]()
	for _, v := range r.Victories {
		victories.Put(v)
	}
	for _, v := range mod.Victories {
		if !victories.Has(v) {
			victories.Put(v)
			r.Victories = append(r.Victories, v)
		}
	}

	r.Mods.Put(mod.Name)
}
