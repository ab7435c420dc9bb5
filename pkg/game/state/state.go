// Package state holds the game information that is started, saved and resumed.
package state

import (
	"time"

	"frontier/pkg/engine/world"
)

// GameParameters describe how a game was set up.
type GameParameters struct {
	Difficulty   string   `yaml:"difficulty" toml:"difficulty"`
	BaseRuleset  string   `yaml:"baseRuleset" toml:"base_ruleset"`
	Mods         []string `yaml:"mods,omitempty" toml:"mods"`
	VictoryTypes []string `yaml:"victoryTypes,omitempty" toml:"victory_types"`
	Players      int      `yaml:"players" toml:"players"`
	MapWidth     int      `yaml:"mapWidth" toml:"map_width"`
	MapHeight    int      `yaml:"mapHeight" toml:"map_height"`
}

// Clone returns a deep copy so callers can adjust parameters without sharing slices.
func (p GameParameters) Clone() GameParameters {
	out := p
	out.Mods = append([]string(nil), p.Mods...)
	out.VictoryTypes = append([]string(nil), p.VictoryTypes...)
	return out
}

// Game represents one started game.
type Game struct {
	ID         string
	Turn       int
	Parameters GameParameters
	Map        *world.Grid
	StartedAt  time.Time

	// TileSet and UnitSet record the visual sets the game was loaded with,
	// so resuming can tell whether its world screen needs a reload.
	TileSet string
	UnitSet string
}

// NewGame creates a game on turn 1.
func NewGame(id string, params GameParameters, grid *world.Grid) *Game {
	return &Game{
		ID:         id,
		Turn:       1,
		Parameters: params.Clone(),
		Map:        grid,
		StartedAt:  time.Now(),
	}
}

// NextTurn advances the turn counter.
func (g *Game) NextTurn() {
	g.Turn++
}
