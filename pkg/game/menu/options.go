package menu

import (
	"fmt"
	"log"
	"strings"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/game/config"
	"frontier/pkg/game/i18n"
)

// Languages offered in the options.
var Languages = []string{"en", "de"}

// BindingMenuItem shows the keys bound to an action.
type BindingMenuItem struct {
	Action engineinput.Action
}

// GetLabel returns the action name and its keys.
func (b *BindingMenuItem) GetLabel() string {
	codes := engineinput.GetBindingsByAction()[b.Action]
	codeText := strings.Join(codes, ", ")
	if codeText == "" {
		codeText = "(unbound)"
	}
	return fmt.Sprintf("%s: %s", engineinput.ActionName(b.Action), codeText)
}

// IsSelectable returns false; bindings are fixed.
func (b *BindingMenuItem) IsSelectable() bool {
	return false
}

// GetHelpText returns nothing.
func (b *BindingMenuItem) GetHelpText() string {
	return ""
}

// optionItem is a setting that changes when activated.
type optionItem struct {
	label  func() string
	change func()
}

func (o *optionItem) GetLabel() string    { return o.label() }
func (o *optionItem) IsSelectable() bool  { return true }
func (o *optionItem) GetHelpText() string { return "" }

// OptionsMenuHandler edits the settings. Changes are saved when the menu closes.
type OptionsMenuHandler struct {
	settings *config.SettingsManager
	tileSets []string
	onClose  func(changed bool)
	changed  bool
}

// NewOptionsMenu creates the options popup. tileSets lists the selectable
// tile sets; onClose is told whether anything changed.
func NewOptionsMenu(settings *config.SettingsManager, tileSets []string, onClose func(changed bool)) *Menu {
	return NewDynamic(&OptionsMenuHandler{settings: settings, tileSets: tileSets, onClose: onClose})
}

// GetMenuItems returns the options, the fixed bindings and a close button.
func (h *OptionsMenuHandler) GetMenuItems() []MenuItem {
	s := h.settings.Get()
	items := []MenuItem{
		&optionItem{
			label: func() string { return i18n.Tr("OPTION_EASTER_EGGS", onOff(s.EnableEasterEggs)) },
			change: func() {
				h.settings.Update(func(s *config.Settings) { s.EnableEasterEggs = !s.EnableEasterEggs })
			},
		},
		&optionItem{
			label: func() string { return i18n.Tr("OPTION_TILE_SET", s.TileSet) },
			change: func() {
				next := cycle(h.tileSets, s.TileSet)
				h.settings.Update(func(s *config.Settings) { s.TileSet, s.UnitSet = next, next })
			},
		},
		&optionItem{
			label: func() string { return i18n.Tr("OPTION_LANGUAGE", s.Language) },
			change: func() {
				next := cycle(Languages, s.Language)
				if err := i18n.SetLanguage(next); err != nil {
					log.Printf("[Options] %v", err)
					return
				}
				h.settings.Update(func(s *config.Settings) { s.Language = next })
			},
		},
		&Heading{Text: i18n.Tr("BINDINGS_HEADING")},
	}
	for _, act := range []engineinput.Action{
		engineinput.ActionUp,
		engineinput.ActionDown,
		engineinput.ActionConfirm,
		engineinput.ActionBack,
		engineinput.ActionHelp,
		engineinput.ActionOpenMenu,
	} {
		items = append(items, &BindingMenuItem{Action: act})
	}
	return append(items, &Button{LabelID: "MENU_CLOSE"})
}

// GetTitle returns the menu title.
func (h *OptionsMenuHandler) GetTitle() string {
	return i18n.Tr("TITLE_OPTIONS")
}

// GetInstructions returns the menu instructions.
func (h *OptionsMenuHandler) GetInstructions(selected MenuItem) string {
	return "Enter changes the selected option, Esc closes"
}

// OnSelect does nothing.
func (h *OptionsMenuHandler) OnSelect(item MenuItem, index int) {}

// OnActivate changes an option, or closes on the close button.
func (h *OptionsMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	switch it := item.(type) {
	case *optionItem:
		it.change()
		h.changed = true
		return false, ""
	case *Button:
		return true, ""
	}
	return false, ""
}

// OnExit saves the settings if they changed.
func (h *OptionsMenuHandler) OnExit() {
	if h.changed {
		if err := h.settings.Save(); err != nil {
			log.Printf("[Options] Cannot save settings: %v", err)
		}
	}
	if h.onClose != nil {
		h.onClose(h.changed)
	}
}

func onOff(b bool) string {
	if b {
		return i18n.Tr("OPTION_ON")
	}
	return i18n.Tr("OPTION_OFF")
}

// cycle returns the entry after current, wrapping around.
func cycle(values []string, current string) string {
	if len(values) == 0 {
		return current
	}
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
