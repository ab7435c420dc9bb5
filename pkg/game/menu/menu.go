// Package menu provides the menu model that screens and popups are built from.
//
// A Menu does not block or draw: the owning screen feeds it intents from its
// Update and a renderer reads its items, selection and help text to draw it.
package menu

import (
	engineinput "frontier/pkg/engine/input"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// ShortcutItem is an optional interface for items activated by a single key.
type ShortcutItem interface {
	MenuItem
	Shortcut() string
}

// ColumnItem is an optional interface for items placed in a given column.
type ColumnItem interface {
	MenuItem
	Column() int
}

// MenuHandler handles menu item selection and activation.
type MenuHandler interface {
	// OnSelect is called when an item is selected (navigated to).
	OnSelect(item MenuItem, index int)
	// OnActivate is called when an item is activated (Enter or its shortcut).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// OnExit is called once when the menu closes.
	OnExit()
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
}

// DynamicMenuHandler extends MenuHandler with items that can change while
// the menu is open. GetMenuItems is called on every access.
type DynamicMenuHandler interface {
	MenuHandler
	GetMenuItems() []MenuItem
}

// Menu is an open menu: its items, the selection and whether it was closed.
type Menu struct {
	handler  MenuHandler
	items    []MenuItem
	selected int
	helpText string
	closed   bool
}

// New creates a menu over fixed items.
func New(items []MenuItem, handler MenuHandler) *Menu {
	m := &Menu{handler: handler, items: items}
	m.selected = firstSelectable(items)
	return m
}

// NewDynamic creates a menu whose items come from the handler.
func NewDynamic(handler DynamicMenuHandler) *Menu {
	return New(handler.GetMenuItems(), handler)
}

func firstSelectable(items []MenuItem) int {
	for i, item := range items {
		if item.IsSelectable() {
			return i
		}
	}
	return 0
}

// Items returns the current items.
func (m *Menu) Items() []MenuItem {
	if d, ok := m.handler.(DynamicMenuHandler); ok {
		m.items = d.GetMenuItems()
		if m.selected >= len(m.items) || !m.items[m.selected].IsSelectable() {
			m.selected = firstSelectable(m.items)
		}
	}
	return m.items
}

// Selected returns the index of the selected item.
func (m *Menu) Selected() int {
	return m.selected
}

// Title returns the handler's title.
func (m *Menu) Title() string {
	return m.handler.GetTitle()
}

// Instructions returns the handler's instructions for the selected item.
func (m *Menu) Instructions() string {
	items := m.Items()
	var sel MenuItem
	if m.selected >= 0 && m.selected < len(items) {
		sel = items[m.selected]
	}
	return m.handler.GetInstructions(sel)
}

// HelpText returns the help text left by the last activation.
func (m *Menu) HelpText() string {
	return m.helpText
}

// Closed reports whether the menu has been closed.
func (m *Menu) Closed() bool {
	return m.closed
}

// Close closes the menu. Closing twice is a no-op.
func (m *Menu) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.handler.OnExit()
}

// Handle applies one intent and reports whether the menu consumed it.
// Shortcut keys take precedence over bound actions.
func (m *Menu) Handle(intent engineinput.Intent) bool {
	if m.closed {
		return false
	}
	items := m.Items()

	if intent.Code != "" {
		for i, item := range items {
			if s, ok := item.(ShortcutItem); ok && item.IsSelectable() && s.Shortcut() == intent.Code {
				m.selectIndex(i)
				m.activate(i)
				return true
			}
		}
	}

	switch intent.Action {
	case engineinput.ActionUp:
		m.move(items, -1)
	case engineinput.ActionDown:
		m.move(items, 1)
	case engineinput.ActionConfirm:
		if m.selected >= 0 && m.selected < len(items) && items[m.selected].IsSelectable() {
			m.activate(m.selected)
		}
	case engineinput.ActionBack:
		m.Close()
	default:
		return false
	}
	return true
}

// Activate activates the item at index, as a click would.
func (m *Menu) Activate(index int) {
	items := m.Items()
	if m.closed || index < 0 || index >= len(items) || !items[index].IsSelectable() {
		return
	}
	m.selectIndex(index)
	m.activate(index)
}

func (m *Menu) selectIndex(i int) {
	if i == m.selected {
		return
	}
	m.selected = i
	m.helpText = ""
	m.handler.OnSelect(m.items[i], i)
}

func (m *Menu) activate(i int) {
	shouldClose, help := m.handler.OnActivate(m.items[i], i)
	m.helpText = help
	if shouldClose {
		m.Close()
	}
}

// move steps the selection to the next selectable item in dir, wrapping around.
func (m *Menu) move(items []MenuItem, dir int) {
	n := len(items)
	for step := 1; step < n; step++ {
		i := ((m.selected+dir*step)%n + n) % n
		if items[i].IsSelectable() {
			m.selectIndex(i)
			return
		}
	}
}
