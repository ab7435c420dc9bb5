package menu

// Destination is a screen a menu button leads to.
type Destination int

// Destinations
const (
	DestNewGame Destination = iota
	DestLoadGame
	DestSaveGame
	DestMultiplayer
	DestMapEditor
	DestNewMap
	DestLoadMap
	DestMods
	DestCivilopedia
	DestVictoryStatus
)

// TitleID returns the message ID of the destination's title.
func (d Destination) TitleID() string {
	switch d {
	case DestNewGame:
		return "TITLE_NEW_GAME"
	case DestLoadGame:
		return "TITLE_LOAD_GAME"
	case DestSaveGame:
		return "TITLE_SAVE_GAME"
	case DestMultiplayer:
		return "TITLE_MULTIPLAYER"
	case DestMapEditor, DestNewMap, DestLoadMap:
		return "TITLE_MAP_EDITOR"
	case DestMods:
		return "TITLE_MODS"
	case DestCivilopedia:
		return "TITLE_CIVILOPEDIA"
	case DestVictoryStatus:
		return "TITLE_VICTORY_STATUS"
	}
	return ""
}

// Navigator is what menu buttons act on. Screens implement it.
type Navigator interface {
	// Navigate pushes the screen for d.
	Navigate(d Destination)
	// OpenPopup shows m on top of the current screen.
	OpenPopup(m *Menu)
	// OpenOptions shows the options popup.
	OpenOptions()
	// OpenURL opens an external link.
	OpenURL(url string)
}
