package screens

import (
	"log"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/menu"
	"frontier/pkg/game/preview"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/saves"
	"frontier/pkg/game/starter"
)

// MainMenu is the first screen: the main menu buttons over an animated
// map preview.
type MainMenu struct {
	navigator
	menu       *menu.Menu
	images     *assets.Images
	background *preview.Stack
	scheduler  *preview.Scheduler
}

// NewMainMenu creates the main menu and starts the background preview if the
// configured tile set is available.
func NewMainMenu(env *Env) *MainMenu {
	images := env.newImages()
	images.SetRuleset(env.Rulesets.Vanilla())

	m := &MainMenu{
		navigator:  navigator{env: env},
		images:     images,
		background: preview.NewStack(),
	}
	m.scheduler = preview.NewScheduler(preview.Config{
		Runner:     env.Runner,
		Dispatcher: env.Dispatcher,
		Rulesets:   env.Rulesets,
		Generator:  env.Generator,
		Images:     images,
		Stack:      m.background,
		Viewport:   env.Viewport,
		EasterEggs: func() bool { return env.Settings.Get().EnableEasterEggs },
		Now:        env.Now,
	})
	m.menu = menu.NewMainMenu(m, menu.MainMenuOptions{
		AutosaveExists: env.Saves.AutosaveExists(),
		SavesExist:     env.Saves.Any(),
	})

	tileSet := env.Settings.Get().TileSet
	if images.KnownTileSet(tileSet) {
		m.scheduler.Start()
	} else {
		log.Printf("[MainMenu] Tile set %q not available, no background preview", tileSet)
	}
	return m
}

// Name returns "MainMenu".
func (m *MainMenu) Name() string { return "MainMenu" }

// Menu returns the main menu.
func (m *MainMenu) Menu() *menu.Menu { return m.menu }

// Background returns the layered background.
func (m *MainMenu) Background() *preview.Stack { return m.background }

// Images returns the screen's image context.
func (m *MainMenu) Images() *assets.Images { return m.images }

// Scheduler returns the preview scheduler.
func (m *MainMenu) Scheduler() *preview.Scheduler { return m.scheduler }

// Update advances fades and the preview replacement timer.
func (m *MainMenu) Update(dt float64) {
	m.background.Update(dt)
	m.scheduler.Update(dt)
}

// HandleIntent routes the intent to popups, then the menu.
func (m *MainMenu) HandleIntent(intent engineinput.Intent) {
	if m.handle(intent) {
		return
	}
	switch intent.Action {
	case engineinput.ActionBack:
		m.env.Stack.Pop()
		return
	case engineinput.ActionHelp:
		m.OpenCivilopedia()
		return
	}
	m.menu.Handle(intent)
}

// StopPreview stops background generation and any pending replacement.
func (m *MainMenu) StopPreview() {
	m.scheduler.Stop()
}

// Navigate pushes the screen for d.
func (m *MainMenu) Navigate(d menu.Destination) {
	switch d {
	case menu.DestCivilopedia:
		m.OpenCivilopedia()
	case menu.DestNewGame:
		m.env.Stack.Push(NewNewGameScreen(m.env, nil))
	default:
		m.env.Stack.Push(NewDestination(m.env, d))
	}
}

// Resume returns to the running game, or loads the autosave.
func (m *MainMenu) Resume() {
	s := m.env.Settings.Get()
	if found := m.env.Stack.Find(isWorldScreen); found != nil {
		w := found.(*WorldScreen)
		tileSet, unitSet := w.TileSetStrings()
		if tileSet == s.TileSet && unitSet == s.UnitSet {
			m.env.Stack.ResetTo(w)
			w.CloseMenuPopups()
			m.images.SetRuleset(w.Ruleset())
			return
		}
		log.Printf("[MainMenu] Sets changed since the game was opened, reloading")
		m.env.Stack.RemoveAll(isWorldScreen)
	}
	if !m.env.Saves.AutosaveExists() {
		m.env.Toasts.Show(i18n.Tr("ERR_NO_AUTOSAVE"))
		return
	}
	m.env.loadGame(saves.AutosaveName, m.env.Saves.LoadAutosave)
}

// Quickstart starts a game with the last setup at the easiest difficulty.
func (m *MainMenu) Quickstart() {
	params := starter.SetupFromSettings(m.env.Settings.Get(), starter.QuickDifficulty)
	m.env.startGame("QuickStart", params)
}

// OpenCivilopedia shows the encyclopedia for the ruleset the player is most
// likely interested in.
func (m *MainMenu) OpenCivilopedia() {
	m.StopPreview()
	rs := m.civilopediaRuleset()
	if rs == nil {
		return
	}
	m.images.SetRuleset(rs)
	m.env.Stack.Push(NewCivilopediaScreen(m.env, rs))
}

func (m *MainMenu) civilopediaRuleset() *ruleset.Ruleset {
	if rs := m.scheduler.EasterEggRuleset(); rs != nil {
		return rs
	}
	s := m.env.Settings.Get()
	if s.LastGameSetup == nil {
		rs, ok := m.env.Rulesets.Get(ruleset.GodsAndKings)
		if !ok {
			return nil
		}
		return rs
	}
	rs, err := m.env.Rulesets.ComplexFromParameters(*s.LastGameSetup)
	if err == nil {
		return rs
	}
	log.Printf("[MainMenu] Cannot compose last setup ruleset: %v", err)
	base, ok := m.env.Rulesets.Get(s.LastGameSetup.BaseRuleset)
	if !ok {
		return nil
	}
	return base
}

// Recreate rebuilds the screen for a new window size.
func (m *MainMenu) Recreate() Screen {
	m.StopPreview()
	return NewMainMenu(m.env)
}

// Dispose stops the preview and forgets the occasion ruleset.
func (m *MainMenu) Dispose() {
	m.StopPreview()
	m.scheduler.ClearEasterEgg()
	m.CloseAll()
}
