package menu

import "frontier/pkg/game/i18n"

// Community links
const (
	DiscordURL = "https://discord.gg/bjrB4Xw"
	GithubURL  = "https://github.com/yairm210/UnCiv"
	RedditURL  = "https://www.reddit.com/r/Unciv/"
)

const popupInstructions = "Up/down to select, Enter to activate, Esc to close"

func popupHandler(titleID string) *ButtonHandler {
	return &ButtonHandler{Title: i18n.Tr(titleID), Instructions: popupInstructions}
}

// NewWorldMenu creates the in-game menu popup.
func NewWorldMenu(nav Navigator) *Menu {
	navigate := func(d Destination) func() {
		return func() { nav.Navigate(d) }
	}
	return New(Buttons(
		&Button{LabelID: "MENU_MAP_EDITOR", Action: func() { nav.OpenPopup(NewMapEditorPopup(nav)) }},
		&Button{LabelID: "MENU_CIVILOPEDIA", Action: navigate(DestCivilopedia)},
		&Button{LabelID: "MENU_LOAD_GAME", Action: navigate(DestLoadGame)},
		&Button{LabelID: "MENU_SAVE_GAME", Action: navigate(DestSaveGame)},
		&Button{LabelID: "MENU_START_NEW_GAME", Action: navigate(DestNewGame)},
		&Button{LabelID: "MENU_MULTIPLAYER", Action: navigate(DestMultiplayer)},
		&Button{LabelID: "MENU_VICTORY_STATUS", Action: navigate(DestVictoryStatus)},
		&Button{LabelID: "MENU_OPTIONS", Action: nav.OpenOptions},
		&Button{LabelID: "MENU_COMMUNITY", Action: func() { nav.OpenPopup(NewCommunityPopup(nav)) }},
		&Button{LabelID: "MENU_CLOSE"},
	), &ButtonHandler{Instructions: popupInstructions})
}

// NewMapEditorPopup offers to create or load a map.
func NewMapEditorPopup(nav Navigator) *Menu {
	return New(Buttons(
		&Button{LabelID: "MENU_NEW_MAP", Action: func() { nav.Navigate(DestNewMap) }},
		&Button{LabelID: "MENU_LOAD_MAP", Action: func() { nav.Navigate(DestLoadMap) }},
		&Button{LabelID: "MENU_CLOSE"},
	), popupHandler("MENU_MAP_EDITOR"))
}

// NewCommunityPopup offers the community links.
func NewCommunityPopup(nav Navigator) *Menu {
	open := func(url string) func() {
		return func() { nav.OpenURL(url) }
	}
	return New(Buttons(
		&Button{LabelID: "MENU_DISCORD", Help: DiscordURL, Action: open(DiscordURL)},
		&Button{LabelID: "MENU_GITHUB", Help: GithubURL, Action: open(GithubURL)},
		&Button{LabelID: "MENU_REDDIT", Help: RedditURL, Action: open(RedditURL)},
		&Button{LabelID: "MENU_CLOSE"},
	), popupHandler("MENU_COMMUNITY"))
}
