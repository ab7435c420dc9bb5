// Package starter sets up and starts new games.
package starter

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v4/mem"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/config"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/state"
)

// Memory estimate used before creating or loading a game.
const (
	baseMemory   = 64 << 20
	bytesPerTile = 16 << 10
)

// QuickDifficulty is the difficulty quickstart games use.
const QuickDifficulty = "Chieftain"

// MemoryProbe reports the bytes of memory available to the game.
type MemoryProbe func(ctx context.Context) (uint64, error)

// SystemMemory asks the operating system how much memory is available.
func SystemMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// Starter creates games.
type Starter struct {
	Rulesets  *ruleset.Cache
	Generator mapgen.Generator
	Settings  *config.SettingsManager
	Memory    MemoryProbe
}

// SetupFromSettings returns the parameters of the last game the player set up,
// or the defaults, with the difficulty replaced when one is given.
func SetupFromSettings(s config.Settings, difficulty string) state.GameParameters {
	p := config.DefaultGameParameters()
	if s.LastGameSetup != nil {
		p = s.LastGameSetup.Clone()
	}
	if difficulty != "" {
		p.Difficulty = difficulty
	}
	return p
}

// CheckMemory fails with ErrNotEnoughMemory when a map of the given number of
// tiles does not fit. A failing probe is logged and treated as enough memory.
func (s *Starter) CheckMemory(ctx context.Context, tiles int) error {
	if s.Memory == nil {
		return nil
	}
	available, err := s.Memory(ctx)
	if err != nil {
		log.Printf("[Starter] Cannot read available memory: %v", err)
		return nil
	}
	need := uint64(baseMemory) + uint64(tiles)*bytesPerTile
	if available < need {
		return fmt.Errorf("need %d bytes, have %d: %w", need, available, ErrNotEnoughMemory)
	}
	return nil
}

// StartNewGame creates a game from params. A setup without victory types gets
// every victory type of its ruleset. It honours ctx cancellation.
func (s *Starter) StartNewGame(ctx context.Context, params state.GameParameters) (*state.Game, error) {
	if err := s.CheckMemory(ctx, params.MapWidth*params.MapHeight); err != nil {
		return nil, err
	}
	rs, err := s.Rulesets.ComplexFromParameters(params)
	if err != nil {
		return nil, &ShowableError{Message: i18n.Tr("ERR_RULESET", params.BaseRuleset), Err: err}
	}
	params = params.Clone()
	if len(params.VictoryTypes) == 0 {
		params.VictoryTypes = append([]string(nil), rs.Victories...)
	}

	grid, err := s.Generator.Generate(ctx, rs, mapgen.Parameters{
		Shape:                  mapgen.ShapeRectangular,
		Type:                   mapgen.TypeContinents,
		Width:                  params.MapWidth,
		Height:                 params.MapHeight,
		TemperatureExtremeness: 0.6,
		WaterThreshold:         0,
	})
	if err != nil {
		return nil, fmt.Errorf("generating map: %w", err)
	}
	return s.newGame(params, grid), nil
}

func (s *Starter) newGame(params state.GameParameters, grid *world.Grid) *state.Game {
	g := state.NewGame(uuid.NewString(), params, grid)
	if s.Settings != nil {
		current := s.Settings.Get()
		g.TileSet, g.UnitSet = current.TileSet, current.UnitSet
		s.Settings.SetLastGameSetup(params)
	}
	log.Printf("[Starter] Started game %s on %s (%dx%d)", g.ID, params.BaseRuleset, params.MapWidth, params.MapHeight)
	return g
}
