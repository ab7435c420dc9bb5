package mapgen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/ruleset"
)

// NoiseGenerator builds maps from layered value noise shaped by a land mask.
type NoiseGenerator struct{}

// Name returns the name of this generator
func (g *NoiseGenerator) Name() string {
	return "Value Noise"
}

const (
	octaves     = 3
	persistence = 0.5
)

// Generate creates a new grid. The context is checked between rows.
func (g *NoiseGenerator) Generate(ctx context.Context, rs *ruleset.Ruleset, p Parameters) (*world.Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rs == nil {
		return nil, fmt.Errorf("generate: %w", ErrNoTerrain)
	}
	palette, err := newPalette(rs)
	if err != nil {
		return nil, err
	}

	seed := p.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	elevation := newValueNoise(rng, p.Width, p.Height)
	climate := newValueNoise(rng, p.Width, p.Height)

	grid := world.NewGrid(p.Height, p.Width)
	for row := 0; row < p.Height; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for col := 0; col < p.Width; col++ {
			tile := grid.GetTile(row, col)
			x, y := normalized(col, p.Width), normalized(row, p.Height)

			elev := elevation.at(col, row)*0.9 + 0.55 - landMask(p.Type, x, y)
			if p.Shape == ShapeHexagonal && outsideHexagon(x, y) {
				elev = -1
			}
			tile.Elevation = clamp(elev, -1, 1)
			tile.Temperature = temperature(y, climate.at(col, row), p)
			tile.Water = tile.Elevation < p.WaterThreshold
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	palette.paint(grid)
	return grid, nil
}

// normalized maps i in [0, n) to [-1, 1].
func normalized(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i)/float64(n-1)*2 - 1
}

// landMask returns how much elevation is removed at x, y. Pangaea keeps one
// landmass around the centre, continents split it in two.
func landMask(mapType string, x, y float64) float64 {
	switch mapType {
	case TypeContinents:
		left := math.Hypot(x+0.5, y*0.8)
		right := math.Hypot(x-0.5, y*0.8)
		return math.Min(left, right) * 1.6
	default:
		return math.Hypot(x*0.9, y) * 1.3
	}
}

func outsideHexagon(x, y float64) bool {
	ax, ay := math.Abs(x), math.Abs(y)
	return ay > 1 || (ax > 0.5 && (ax+ay)*0.5 > 0.95)
}

// temperature is warm at the equator (y = 0) and cold at the poles.
func temperature(y, noise float64, p Parameters) float64 {
	latitude := math.Abs(y)
	t := (1 - 2*latitude) * (0.5 + 0.5*p.TemperatureExtremeness)
	t += noise * 0.25
	t += p.TemperatureShift
	return clamp(t, -1, 1)
}

// valueNoise is fractal value noise over a random lattice.
type valueNoise struct {
	layers []lattice
}

type lattice struct {
	cell   float64
	cols   int
	values []float64
	weight float64
}

func newValueNoise(rng *rand.Rand, width, height int) *valueNoise {
	size := math.Max(float64(width), float64(height))
	n := &valueNoise{}
	cell := math.Max(size/4, 2)
	weight := 1.0
	total := 0.0
	for i := 0; i < octaves; i++ {
		cols := int(float64(width)/cell) + 2
		rows := int(float64(height)/cell) + 2
		l := lattice{cell: cell, cols: cols, values: make([]float64, cols*rows), weight: weight}
		for j := range l.values {
			l.values[j] = rng.Float64()*2 - 1
		}
		n.layers = append(n.layers, l)
		total += weight
		weight *= persistence
		cell = math.Max(cell/2, 1)
	}
	for i := range n.layers {
		n.layers[i].weight /= total
	}
	return n
}

// at returns the noise value at a tile, -1.0 to 1.0.
func (n *valueNoise) at(col, row int) float64 {
	v := 0.0
	for _, l := range n.layers {
		v += l.sample(float64(col)/l.cell, float64(row)/l.cell) * l.weight
	}
	return v
}

func (l lattice) sample(x, y float64) float64 {
	x0, y0 := int(x), int(y)
	fx, fy := smoothstep(x-float64(x0)), smoothstep(y-float64(y0))
	v := func(cx, cy int) float64 { return l.values[cy*l.cols+cx] }
	top := lerp(v(x0, y0), v(x0+1, y0), fx)
	bottom := lerp(v(x0, y0+1), v(x0+1, y0+1), fx)
	return lerp(top, bottom, fy)
}

func smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
