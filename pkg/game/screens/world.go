package screens

import (
	"log"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/engine/world"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/menu"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/state"
)

// WorldScreen shows a running game.
type WorldScreen struct {
	navigator
	game    *state.Game
	ruleset *ruleset.Ruleset
	images  *assets.Images

	// tileSet and unitSet are the sets the screen was built with.
	tileSet string
	unitSet string
}

// NewWorldScreen creates the screen for g, drawn with rs.
func NewWorldScreen(env *Env, g *state.Game, rs *ruleset.Ruleset) *WorldScreen {
	s := env.Settings.Get()
	images := env.newImages()
	images.SetRuleset(rs)
	g.TileSet, g.UnitSet = s.TileSet, s.UnitSet
	return &WorldScreen{
		navigator: navigator{env: env},
		game:      g,
		ruleset:   rs,
		images:    images,
		tileSet:   s.TileSet,
		unitSet:   s.UnitSet,
	}
}

func isWorldScreen(s Screen) bool {
	_, ok := s.(*WorldScreen)
	return ok
}

// Name returns "World".
func (w *WorldScreen) Name() string { return "World" }

// Title returns the turn line.
func (w *WorldScreen) Title() string { return i18n.Tr("TITLE_WORLD", w.game.Turn) }

// Game returns the game shown.
func (w *WorldScreen) Game() *state.Game { return w.game }

// Ruleset returns the game's ruleset.
func (w *WorldScreen) Ruleset() *ruleset.Ruleset { return w.ruleset }

// Map returns the game map.
func (w *WorldScreen) Map() *world.Grid { return w.game.Map }

// Images returns the screen's image context.
func (w *WorldScreen) Images() *assets.Images { return w.images }

// TileSetStrings returns the tile and unit set the screen was built with.
func (w *WorldScreen) TileSetStrings() (tileSet, unitSet string) {
	return w.tileSet, w.unitSet
}

// CloseMenuPopups closes the in-game menu and anything it opened.
func (w *WorldScreen) CloseMenuPopups() {
	w.CloseAll()
}

// Update does nothing; the world is turn based.
func (w *WorldScreen) Update(dt float64) {}

// HandleIntent routes intents to popups first. Back or Tab opens the menu,
// Enter ends the turn.
func (w *WorldScreen) HandleIntent(intent engineinput.Intent) {
	if w.handle(intent) {
		return
	}
	switch intent.Action {
	case engineinput.ActionBack, engineinput.ActionOpenMenu:
		w.OpenPopup(menu.NewWorldMenu(w))
	case engineinput.ActionHelp:
		w.Navigate(menu.DestCivilopedia)
	case engineinput.ActionConfirm:
		w.game.NextTurn()
		w.env.autosave(w.game)
	}
}

// Navigate pushes the screen for d in the context of this game.
func (w *WorldScreen) Navigate(d menu.Destination) {
	switch d {
	case menu.DestCivilopedia:
		w.env.Stack.Push(NewCivilopediaScreen(w.env, w.ruleset))
	case menu.DestSaveGame:
		w.env.Stack.Push(NewSaveGameScreen(w.env, w.game))
	case menu.DestVictoryStatus:
		w.env.Stack.Push(NewVictoryScreen(w.env, w.game))
	case menu.DestNewGame:
		w.env.Stack.Push(NewNewGameScreen(w.env, &w.game.Parameters))
	default:
		w.env.Stack.Push(NewDestination(w.env, d))
	}
}

// Dispose closes popups.
func (w *WorldScreen) Dispose() {
	w.CloseAll()
	log.Printf("[World] Disposed game %s", w.game.ID)
}
