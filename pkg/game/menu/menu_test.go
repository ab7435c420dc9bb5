package menu

import (
	"testing"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/game/config"
)

// fakeNavigator records what the buttons asked for.
type fakeNavigator struct {
	destinations []Destination
	popups       []*Menu
	urls         []string
	options      int
	stops        int
	resumes      int
	quickstarts  int
}

func (n *fakeNavigator) Navigate(d Destination) { n.destinations = append(n.destinations, d) }
func (n *fakeNavigator) OpenPopup(m *Menu)      { n.popups = append(n.popups, m) }
func (n *fakeNavigator) OpenOptions()           { n.options++ }
func (n *fakeNavigator) OpenURL(url string)     { n.urls = append(n.urls, url) }
func (n *fakeNavigator) StopPreview()           { n.stops++ }
func (n *fakeNavigator) Resume()                { n.resumes++ }
func (n *fakeNavigator) Quickstart()            { n.quickstarts++ }

func key(code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.DebouncedInput{Device: engineinput.DeviceKeyboard, Code: code})
}

func labels(m *Menu) []string {
	var out []string
	for _, item := range m.Items() {
		out = append(out, item.GetLabel())
	}
	return out
}

func TestMenu_NavigationWraps(t *testing.T) {
	m := New([]MenuItem{
		&Heading{Text: "Title"},
		&Button{LabelID: "A"},
		&Button{LabelID: "B"},
	}, &ButtonHandler{})

	if m.Selected() != 1 {
		t.Fatalf("Selected() = %d, want first selectable 1", m.Selected())
	}
	m.Handle(key("arrow_up"))
	if m.Selected() != 2 {
		t.Errorf("up from first = %d, want wrap to 2", m.Selected())
	}
	m.Handle(key("arrow_down"))
	if m.Selected() != 1 {
		t.Errorf("down from last = %d, want wrap to 1 (heading skipped)", m.Selected())
	}
}

func TestMenu_ConfirmRunsActionAndCloses(t *testing.T) {
	ran, exited := 0, 0
	m := New(Buttons(&Button{LabelID: "A", Action: func() { ran++ }}), &ButtonHandler{OnClose: func() { exited++ }})
	if !m.Handle(key("enter")) {
		t.Fatal("Enter not consumed")
	}
	if ran != 1 || !m.Closed() || exited != 1 {
		t.Errorf("ran %d closed %v exited %d, want 1 true 1", ran, m.Closed(), exited)
	}
	if m.Handle(key("enter")) {
		t.Error("closed menu consumed an intent")
	}
	m.Close()
	if exited != 1 {
		t.Errorf("OnExit ran %d times, want once", exited)
	}
}

func TestMenu_UnhandledIntent(t *testing.T) {
	m := New(Buttons(&Button{LabelID: "A", Key: "a"}), &ButtonHandler{})
	if m.Handle(key("z")) {
		t.Error("unbound key without a shortcut was consumed")
	}
}

func TestMainMenu_OptionalButtons(t *testing.T) {
	nav := &fakeNavigator{}
	without := NewMainMenu(nav, MainMenuOptions{})
	with := NewMainMenu(nav, MainMenuOptions{AutosaveExists: true, SavesExist: true})

	if got := len(without.Items()); got != 6 {
		t.Errorf("buttons without saves = %d (%v), want 6", got, labels(without))
	}
	if got := len(with.Items()); got != 8 {
		t.Errorf("buttons with saves = %d (%v), want 8", got, labels(with))
	}
	if with.Items()[0].GetLabel() != "Resume" {
		t.Errorf("first button = %q, want Resume", with.Items()[0].GetLabel())
	}
}

func TestMainMenu_ShortcutsStopPreviewFirst(t *testing.T) {
	nav := &fakeNavigator{}
	m := NewMainMenu(nav, MainMenuOptions{AutosaveExists: true, SavesExist: true})

	for _, code := range []string{"r", "q", "n", "l", "m", "e", "d", "o"} {
		if !m.Handle(key(code)) {
			t.Errorf("shortcut %q not consumed", code)
		}
	}
	if nav.stops != 8 {
		t.Errorf("StopPreview calls = %d, want 8", nav.stops)
	}
	if nav.resumes != 1 || nav.quickstarts != 1 || nav.options != 1 {
		t.Errorf("resume %d quickstart %d options %d, want 1 each", nav.resumes, nav.quickstarts, nav.options)
	}
	want := []Destination{DestNewGame, DestLoadGame, DestMultiplayer, DestMapEditor, DestMods}
	if len(nav.destinations) != len(want) {
		t.Fatalf("destinations = %v, want %v", nav.destinations, want)
	}
	for i := range want {
		if nav.destinations[i] != want[i] {
			t.Errorf("destination %d = %v, want %v", i, nav.destinations[i], want[i])
		}
	}
	if m.Closed() {
		t.Error("main menu closed after an activation")
	}
}

func TestMainMenu_LoadShortcutAbsentWithoutSaves(t *testing.T) {
	nav := &fakeNavigator{}
	m := NewMainMenu(nav, MainMenuOptions{})
	if m.Handle(key("l")) || m.Handle(key("r")) {
		t.Error("shortcut of a hidden button was consumed")
	}
}

func TestWorldMenu_NavigationClosesPopup(t *testing.T) {
	nav := &fakeNavigator{}
	m := NewWorldMenu(nav)
	m.Activate(1) // Civilopedia
	if len(nav.destinations) != 1 || nav.destinations[0] != DestCivilopedia {
		t.Errorf("destinations = %v, want Civilopedia", nav.destinations)
	}
	if !m.Closed() {
		t.Error("world menu stayed open after navigating")
	}
}

func TestWorldMenu_MapEditorOpensPopup(t *testing.T) {
	nav := &fakeNavigator{}
	NewWorldMenu(nav).Activate(0)
	if len(nav.popups) != 1 {
		t.Fatalf("popups = %d, want 1", len(nav.popups))
	}
	editor := nav.popups[0]
	editor.Activate(1)
	if len(nav.destinations) != 1 || nav.destinations[0] != DestLoadMap {
		t.Errorf("destinations = %v, want LoadMap", nav.destinations)
	}
}

func TestCommunityPopup_OpensLinks(t *testing.T) {
	nav := &fakeNavigator{}
	m := NewWorldMenu(nav)
	m.Activate(8)
	if len(nav.popups) != 1 {
		t.Fatalf("community popup not opened")
	}
	community := nav.popups[0]
	community.Activate(0)
	if len(nav.urls) != 1 || nav.urls[0] != DiscordURL {
		t.Errorf("urls = %v, want Discord", nav.urls)
	}
	if !community.Closed() {
		t.Error("community popup stayed open after opening a link")
	}
}

func TestWorldMenu_CloseButton(t *testing.T) {
	nav := &fakeNavigator{}
	m := NewWorldMenu(nav)
	m.Activate(len(m.Items()) - 1)
	if !m.Closed() || len(nav.destinations)+len(nav.popups)+len(nav.urls) != 0 {
		t.Error("close button did more than close")
	}
}

func TestOptionsMenu_TogglesAndSaves(t *testing.T) {
	sm := config.NewSettingsManager(nil)
	closedWith := false
	m := NewOptionsMenu(sm, []string{"FantasyHex", "Minimal"}, func(changed bool) { closedWith = changed })

	m.Activate(0)
	if sm.Get().EnableEasterEggs {
		t.Error("easter eggs still enabled after toggling")
	}
	m.Activate(1)
	if got := sm.Get().TileSet; got != "Minimal" {
		t.Errorf("TileSet = %q, want Minimal", got)
	}
	m.Handle(key("escape"))
	if !m.Closed() || !closedWith {
		t.Errorf("closed %v changed %v, want both true", m.Closed(), closedWith)
	}
}

func TestCycle(t *testing.T) {
	if got := cycle([]string{"a", "b"}, "b"); got != "a" {
		t.Errorf("cycle wrap = %q, want a", got)
	}
	if got := cycle([]string{"a", "b"}, "x"); got != "a" {
		t.Errorf("cycle unknown = %q, want a", got)
	}
}
