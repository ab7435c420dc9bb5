// Package mapgen produces tile maps from map parameters and a ruleset.
package mapgen

import (
	"fmt"

	"frontier/pkg/game/ruleset"
)

// Map shapes
const (
	ShapeRectangular = "Rectangular"
	ShapeHexagonal   = "Hexagonal"
)

// Map types
const (
	TypePangaea    = "Pangaea"
	TypeContinents = "Continents"
)

// Parameters describe the map to generate.
type Parameters struct {
	Shape  string
	Type   string
	Width  int
	Height int

	// TemperatureExtremeness stretches the temperature range, 0.0 to 1.0.
	TemperatureExtremeness float64
	// WaterThreshold is the elevation below which tiles become water.
	WaterThreshold float64
	// TemperatureShift moves every tile's temperature, -1.0 to 1.0.
	TemperatureShift float64

	// Seed makes generation reproducible; 0 picks a random seed.
	Seed uint64
}

// Validate checks that the parameters describe a map that can be generated.
func (p Parameters) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("map size %dx%d must be positive", p.Width, p.Height)
	}
	switch p.Shape {
	case ShapeRectangular, ShapeHexagonal:
	default:
		return fmt.Errorf("unknown map shape %q", p.Shape)
	}
	if p.TemperatureExtremeness < 0 || p.TemperatureExtremeness > 1 {
		return fmt.Errorf("temperature extremeness %v out of range", p.TemperatureExtremeness)
	}
	return nil
}

// ModifyForEasterEgg applies the map tweaks of an active occasion.
func (p *Parameters) ModifyForEasterEgg(h ruleset.Holiday) {
	p.WaterThreshold += h.Tweaks.WaterShift
	p.TemperatureShift += h.Tweaks.TemperatureShift
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
