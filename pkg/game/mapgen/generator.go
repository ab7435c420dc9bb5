package mapgen

import (
	"context"
	"errors"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/ruleset"
)

// Generator is an interface for map generation algorithms.
// Implementations must return ctx.Err() promptly once ctx is cancelled.
type Generator interface {
	Generate(ctx context.Context, rs *ruleset.Ruleset, p Parameters) (*world.Grid, error)
	Name() string
}

// Available generators
var (
	Noise = &NoiseGenerator{}
)

// DefaultGenerator is the default map generator
var DefaultGenerator Generator = Noise

// ErrNoTerrain is wrapped when a ruleset lacks the terrains a map needs.
var ErrNoTerrain = errors.New("ruleset has no usable terrain")
