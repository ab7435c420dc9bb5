package screens

import (
	"context"
	"fmt"
	"log"
	"strings"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/menu"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/starter"
	"frontier/pkg/game/state"
)

const listInstructions = "Up/down to select, Enter to activate, Esc to go back"

// MenuScreen is a full-window screen made of one menu. Back, or the menu
// closing, leaves the screen.
type MenuScreen struct {
	env  *Env
	name string
	menu *menu.Menu
}

func newMenuScreen(env *Env, name, titleID string, items []menu.MenuItem) *MenuScreen {
	items = append(items, &menu.Button{LabelID: "MENU_BACK"})
	return &MenuScreen{
		env:  env,
		name: name,
		menu: menu.New(items, &menu.ButtonHandler{
			Title:        i18n.Tr(titleID),
			Instructions: listInstructions,
		}),
	}
}

// Name returns the screen name.
func (s *MenuScreen) Name() string { return s.name }

// Menu returns the screen's menu.
func (s *MenuScreen) Menu() *menu.Menu { return s.menu }

// Update does nothing.
func (s *MenuScreen) Update(dt float64) {}

// HandleIntent forwards to the menu and leaves when it closes.
func (s *MenuScreen) HandleIntent(intent engineinput.Intent) {
	s.menu.Handle(intent)
	if s.menu.Closed() && s.env.Stack.Top() == Screen(s) {
		s.env.Stack.Pop()
	}
}

// Dispose closes the menu.
func (s *MenuScreen) Dispose() {
	s.menu.Close()
}

func headings(lines ...string) []menu.MenuItem {
	items := make([]menu.MenuItem, len(lines))
	for i, l := range lines {
		items[i] = &menu.Heading{Text: l}
	}
	return items
}

// NewDestination creates the screen for a destination that needs no context.
func NewDestination(env *Env, d menu.Destination) Screen {
	switch d {
	case menu.DestNewGame:
		return NewNewGameScreen(env, nil)
	case menu.DestLoadGame:
		return NewLoadGameScreen(env)
	case menu.DestMods:
		return NewModsScreen(env)
	case menu.DestCivilopedia:
		return NewCivilopediaScreen(env, env.Rulesets.Vanilla())
	}
	return newMenuScreen(env, d.TitleID(), d.TitleID(), headings(i18n.Tr("INFO_UNAVAILABLE")))
}

// NewNewGameScreen shows the game setup and starts it. A nil params uses the
// last setup from the settings.
func NewNewGameScreen(env *Env, params *state.GameParameters) *MenuScreen {
	var p state.GameParameters
	if params != nil {
		p = params.Clone()
	} else {
		p = starter.SetupFromSettings(env.Settings.Get(), "")
	}
	line := func(labelID, value string) string {
		return i18n.Tr("SETUP_LINE", i18n.Tr(labelID), value)
	}
	mods := strings.Join(p.Mods, ", ")
	if mods == "" {
		mods = "-"
	}
	items := headings(
		line("SETUP_DIFFICULTY", p.Difficulty),
		line("SETUP_RULESET", p.BaseRuleset),
		line("SETUP_MODS", mods),
		line("SETUP_MAP_SIZE", fmt.Sprintf("%dx%d", p.MapWidth, p.MapHeight)),
		line("SETUP_PLAYERS", fmt.Sprint(p.Players)),
	)
	items = append(items, &menu.Button{
		LabelID:  "MENU_START",
		Key:      "s",
		KeepOpen: true,
		Action:   func() { env.startGame("NewGame", p) },
	})
	return newMenuScreen(env, "NewGame", "TITLE_NEW_GAME", items)
}

// NewLoadGameScreen lists the saved games, most recent first.
func NewLoadGameScreen(env *Env) *MenuScreen {
	entries, err := env.Saves.List()
	if err != nil {
		log.Printf("[Screens] Cannot list saves: %v", err)
	}
	var items []menu.MenuItem
	for _, e := range entries {
		name := e.Name
		items = append(items, &menu.Button{
			Label:    i18n.Tr("SAVE_ENTRY", name, e.Turn),
			Help:     e.SavedAt.Format("2006-01-02 15:04"),
			KeepOpen: true,
			Action: func() {
				env.loadGame(name, func() (*state.Game, error) { return env.Saves.Load(name) })
			},
		})
	}
	if len(items) == 0 {
		items = headings(i18n.Tr("INFO_NO_SAVES"))
	}
	return newMenuScreen(env, "LoadGame", "TITLE_LOAD_GAME", items)
}

// NewSaveGameScreen saves g, as a new save or over an existing one.
func NewSaveGameScreen(env *Env, g *state.Game) *MenuScreen {
	save := func(name string) func() {
		return func() {
			snapshot := *g
			env.Runner.Run("SaveGame", func(ctx context.Context) error {
				if err := env.Saves.Save(name, &snapshot); err != nil {
					return fmt.Errorf("saving %s: %w", name, err)
				}
				env.toast(i18n.Tr("TOAST_GAME_SAVED"))
				return nil
			})
		}
	}
	items := []menu.MenuItem{&menu.Button{
		Label:  saveName(g),
		Key:    "s",
		Action: save(saveName(g)),
	}}
	entries, err := env.Saves.List()
	if err != nil {
		log.Printf("[Screens] Cannot list saves: %v", err)
	}
	for _, e := range entries {
		if e.Name == saveName(g) {
			continue
		}
		items = append(items, &menu.Button{
			Label:  i18n.Tr("SAVE_ENTRY", e.Name, e.Turn),
			Action: save(e.Name),
		})
	}
	return newMenuScreen(env, "SaveGame", "TITLE_SAVE_GAME", items)
}

// saveName is the default save name of g.
func saveName(g *state.Game) string {
	id := g.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s %s-%d", g.Parameters.BaseRuleset, id, g.Turn)
}

// NewCivilopediaScreen lists what rs contains.
func NewCivilopediaScreen(env *Env, rs *ruleset.Ruleset) *MenuScreen {
	items := headings(rs.Name)
	items = append(items, &menu.Heading{Text: i18n.Tr("HEADING_TERRAINS")})
	for _, t := range rs.Terrains {
		items = append(items, &menu.Heading{Text: "  " + t.Name})
	}
	if len(rs.Units) > 0 {
		items = append(items, &menu.Heading{Text: i18n.Tr("HEADING_UNITS")})
		for _, u := range rs.Units {
			items = append(items, &menu.Heading{Text: "  " + u})
		}
	}
	if len(rs.Victories) > 0 {
		items = append(items, &menu.Heading{Text: i18n.Tr("HEADING_VICTORIES")})
		for _, v := range rs.Victories {
			items = append(items, &menu.Heading{Text: "  " + v})
		}
	}
	return newMenuScreen(env, "Civilopedia", "TITLE_CIVILOPEDIA", items)
}

// NewVictoryScreen shows the victory types of g.
func NewVictoryScreen(env *Env, g *state.Game) *MenuScreen {
	items := headings(i18n.Tr("VICTORY_TURN", g.Turn, g.ID))
	items = append(items, &menu.Heading{Text: i18n.Tr("HEADING_VICTORIES")})
	for _, v := range g.Parameters.VictoryTypes {
		items = append(items, &menu.Heading{Text: "  " + v})
	}
	return newMenuScreen(env, "VictoryStatus", "TITLE_VICTORY_STATUS", items)
}

// NewModsScreen lists the loaded mods.
func NewModsScreen(env *Env) *MenuScreen {
	var items []menu.MenuItem
	for _, name := range env.Rulesets.Names() {
		if rs, ok := env.Rulesets.Get(name); ok && !rs.Base {
			items = append(items, &menu.Heading{Text: name})
		}
	}
	if len(items) == 0 {
		items = headings(i18n.Tr("INFO_NO_MODS"))
	}
	return newMenuScreen(env, "Mods", "TITLE_MODS", items)
}
