package screens

import (
	"log"

	"frontier/pkg/engine/browser"
	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/game/i18n"
	"frontier/pkg/game/menu"
)

// popups is the popup stack of a screen.
type popups struct {
	open []*menu.Menu
}

// Popups returns the open popups, bottom to top.
func (p *popups) Popups() []*menu.Menu {
	p.prune()
	return p.open
}

// OpenPopup shows m on top.
func (p *popups) OpenPopup(m *menu.Menu) {
	p.open = append(p.open, m)
}

// HasPopups reports whether any popup is open.
func (p *popups) HasPopups() bool {
	p.prune()
	return len(p.open) > 0
}

// CloseAll closes every popup.
func (p *popups) CloseAll() {
	for _, m := range p.open {
		m.Close()
	}
	p.open = nil
}

// handle forwards the intent to the top popup. A popup is modal, so any
// intent is consumed while one is open.
func (p *popups) handle(intent engineinput.Intent) bool {
	p.prune()
	if len(p.open) == 0 {
		return false
	}
	top := p.open[len(p.open)-1]
	top.Handle(intent)
	p.prune()
	return true
}

func (p *popups) prune() {
	kept := p.open[:0]
	for _, m := range p.open {
		if !m.Closed() {
			kept = append(kept, m)
		}
	}
	p.open = kept
}

// navigator implements the parts of menu.Navigator every screen shares.
type navigator struct {
	env *Env
	popups
}

// OpenOptions shows the options popup.
func (n *navigator) OpenOptions() {
	n.OpenPopup(menu.NewOptionsMenu(n.env.Settings, n.env.tileSets(), nil))
}

// OpenURL opens a link, falling back to the clipboard.
func (n *navigator) OpenURL(url string) {
	outcome, err := n.env.Browser.Open(url)
	switch {
	case err != nil:
		log.Printf("[Screens] Cannot open %s: %v", url, err)
		n.env.Toasts.Show(url)
	case outcome == browser.Copied:
		n.env.Toasts.Show(i18n.Tr("TOAST_URL_COPIED", url))
	}
}
