package menu

// MainMenuTarget is what the main menu buttons act on.
type MainMenuTarget interface {
	Navigator
	// StopPreview runs before every button action.
	StopPreview()
	Resume()
	Quickstart()
}

// MainMenuOptions decide which optional buttons appear.
type MainMenuOptions struct {
	AutosaveExists bool
	SavesExist     bool
}

// NewMainMenu creates the main menu. The menu stays open after activations;
// the screen owning it decides when to leave.
func NewMainMenu(t MainMenuTarget, opts MainMenuOptions) *Menu {
	button := func(labelID, key string, col int, action func()) *Button {
		return &Button{
			LabelID:  labelID,
			Key:      key,
			Col:      col,
			KeepOpen: true,
			Action: func() {
				t.StopPreview()
				action()
			},
		}
	}
	navigate := func(d Destination) func() {
		return func() { t.Navigate(d) }
	}

	var buttons []*Button
	if opts.AutosaveExists {
		buttons = append(buttons, button("MENU_RESUME", "r", 0, t.Resume))
	}
	buttons = append(buttons,
		button("MENU_QUICKSTART", "q", 0, t.Quickstart),
		button("MENU_START_NEW_GAME", "n", 0, navigate(DestNewGame)),
	)
	if opts.SavesExist {
		buttons = append(buttons, button("MENU_LOAD_GAME", "l", 0, navigate(DestLoadGame)))
	}
	buttons = append(buttons,
		button("MENU_MULTIPLAYER", "m", 1, navigate(DestMultiplayer)),
		button("MENU_MAP_EDITOR", "e", 1, navigate(DestMapEditor)),
		button("MENU_MODS", "d", 1, navigate(DestMods)),
		button("MENU_OPTIONS", "o", 1, t.OpenOptions),
	)
	return New(Buttons(buttons...), &ButtonHandler{
		Title:        "Frontier",
		Instructions: "Up/down to select, Enter or the shown key to activate, F1 for the Civilopedia",
	})
}
