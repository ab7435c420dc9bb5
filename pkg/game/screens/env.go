package screens

import (
	"context"
	"log"
	"time"

	"frontier/pkg/engine/browser"
	"frontier/pkg/engine/task"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/config"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/saves"
	"frontier/pkg/game/starter"
	"frontier/pkg/game/state"
)

// Env is what every screen shares.
type Env struct {
	Runner     *task.Runner
	Dispatcher *task.Dispatcher
	Rulesets   *ruleset.Cache
	Generator  mapgen.Generator
	Settings   *config.SettingsManager
	Saves      *saves.Manager
	Starter    *starter.Starter
	Browser    *browser.Opener
	Stack      *Stack
	Toasts     *Toasts

	// Viewport returns the window size in pixels.
	Viewport func() (width, height int)
	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// newImages creates a screen's own image context.
func (e *Env) newImages() *assets.Images {
	return assets.NewImagesFromCache(e.Rulesets)
}

// tileSets lists the tile sets the bundled rulesets ship.
func (e *Env) tileSets() []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range e.Rulesets.Names() {
		rs, _ := e.Rulesets.Get(name)
		for _, ts := range rs.TileSets {
			if !seen[ts] {
				seen[ts] = true
				out = append(out, ts)
			}
		}
	}
	return out
}

// toast shows a message from any goroutine.
func (e *Env) toast(text string) {
	e.Dispatcher.Post(func() { e.Toasts.Show(text) })
}

// openWorld replaces everything above the main menu with a world screen for g.
func (e *Env) openWorld(g *state.Game, rs *ruleset.Ruleset) {
	e.Stack.RemoveAll(func(s Screen) bool {
		_, keep := s.(*MainMenu)
		return !keep
	})
	e.Stack.Push(NewWorldScreen(e, g, rs))
	e.autosave(g)
}

// autosave writes g to the autosave slot in the background.
func (e *Env) autosave(g *state.Game) *task.Job {
	snapshot := *g
	snapshot.Parameters = g.Parameters.Clone()
	return e.Runner.Run("Autosave", func(ctx context.Context) error {
		return e.Saves.Autosave(&snapshot)
	})
}

// loadGame loads a save in the background and opens it.
func (e *Env) loadGame(name string, load func() (*state.Game, error)) {
	e.Runner.Run("LoadGame", func(ctx context.Context) error {
		g, err := load()
		if err != nil {
			log.Printf("[Screens] Cannot load %s: %v", name, err)
			e.toast(i18n.Tr("ERR_LOAD_FAILED", err.Error()))
			return nil
		}
		if g.Map != nil {
			if err := e.Starter.CheckMemory(ctx, g.Map.TileCount()); err != nil {
				e.toast(starter.UserMessage(err))
				return nil
			}
		}
		rs, err := e.Rulesets.ComplexFromParameters(g.Parameters)
		if err != nil {
			e.toast(i18n.Tr("ERR_RULESET", g.Parameters.BaseRuleset))
			return nil
		}
		e.Dispatcher.Post(func() { e.openWorld(g, rs) })
		return nil
	})
}

// startGame starts a new game in the background and opens it.
func (e *Env) startGame(name string, params state.GameParameters) {
	e.Toasts.Show(i18n.Tr("TOAST_WORKING"))
	e.Runner.Run(name, func(ctx context.Context) error {
		g, err := e.Starter.StartNewGame(ctx, params)
		if err != nil {
			log.Printf("[Screens] %s failed: %v", name, err)
			e.toast(starter.UserMessage(err))
			return nil
		}
		if err := e.Settings.Save(); err != nil {
			log.Printf("[Screens] Cannot save settings: %v", err)
		}
		rs, err := e.Rulesets.ComplexFromParameters(g.Parameters)
		if err != nil {
			e.toast(starter.UserMessage(err))
			return nil
		}
		e.Dispatcher.Post(func() { e.openWorld(g, rs) })
		return nil
	})
}
