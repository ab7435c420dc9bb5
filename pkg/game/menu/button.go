package menu

import (
	"frontier/pkg/game/i18n"
)

// Button is a selectable item with an optional shortcut key.
type Button struct {
	LabelID string // message ID, translated on display
	Label   string // shown as is when set, for data such as save names
	Key     string
	Help    string
	Col     int

	// Action runs on activation.
	Action func()
	// KeepOpen leaves the menu open after Action.
	KeepOpen bool
}

// GetLabel returns the translated label.
func (b *Button) GetLabel() string {
	if b.Label != "" {
		return b.Label
	}
	return i18n.Tr(b.LabelID)
}

// IsSelectable returns true.
func (b *Button) IsSelectable() bool {
	return true
}

// GetHelpText returns the button's help text.
func (b *Button) GetHelpText() string {
	return b.Help
}

// Shortcut returns the key that activates the button.
func (b *Button) Shortcut() string {
	return b.Key
}

// Column returns the layout column.
func (b *Button) Column() int {
	return b.Col
}

// Heading is a non-selectable line of text.
type Heading struct {
	Text string
}

func (h *Heading) GetLabel() string    { return h.Text }
func (h *Heading) IsSelectable() bool  { return false }
func (h *Heading) GetHelpText() string { return "" }

// ButtonHandler runs Button actions. It serves every menu made of buttons.
type ButtonHandler struct {
	Title        string
	Instructions string
	// OnClose runs once when the menu closes.
	OnClose func()
}

// OnSelect does nothing.
func (h *ButtonHandler) OnSelect(item MenuItem, index int) {}

// OnActivate runs the button's action.
func (h *ButtonHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	b, ok := item.(*Button)
	if !ok {
		return false, ""
	}
	if b.Action != nil {
		b.Action()
	}
	return !b.KeepOpen, ""
}

// OnExit runs OnClose.
func (h *ButtonHandler) OnExit() {
	if h.OnClose != nil {
		h.OnClose()
	}
}

// GetTitle returns the title.
func (h *ButtonHandler) GetTitle() string {
	return h.Title
}

// GetInstructions returns the instructions.
func (h *ButtonHandler) GetInstructions(selected MenuItem) string {
	return h.Instructions
}

// Buttons converts buttons to menu items.
func Buttons(buttons ...*Button) []MenuItem {
	items := make([]MenuItem, len(buttons))
	for i, b := range buttons {
		items[i] = b
	}
	return items
}
