package screens

import (
	"context"
	"strings"
	"testing"
	"time"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/engine/task"
	"frontier/pkg/game/config"
	"frontier/pkg/game/mapgen"
	"frontier/pkg/game/menu"
	"frontier/pkg/game/preview"
	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/saves"
	"frontier/pkg/game/starter"
	"frontier/pkg/game/state"
)

var ordinaryDay = time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *Env {
	t.Helper()
	cache, err := ruleset.LoadBundled()
	if err != nil {
		t.Fatalf("LoadBundled() error = %v", err)
	}
	settings := config.NewSettingsManager(nil)
	env := &Env{
		Runner:     task.NewRunner(context.Background()),
		Dispatcher: task.NewDispatcher(),
		Rulesets:   cache,
		Generator:  mapgen.Noise,
		Settings:   settings,
		Saves:      saves.NewManager(nil),
		Stack:      NewStack(),
		Toasts:     &Toasts{},
		Viewport:   func() (int, int) { return 960, 640 },
		Now:        func() time.Time { return ordinaryDay },
	}
	env.Starter = &starter.Starter{Rulesets: cache, Generator: mapgen.Noise, Settings: settings}
	return env
}

// settle waits for every background task and runs what they posted, until
// nothing is left.
func settle(env *Env) {
	for {
		env.Runner.Wait()
		if env.Dispatcher.Drain() == 0 {
			return
		}
	}
}

func key(code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.DebouncedInput{Device: engineinput.DeviceKeyboard, Code: code})
}

func action(a engineinput.Action) engineinput.Intent {
	return engineinput.Intent{Action: a}
}

func hasToast(env *Env, substr string) bool {
	for _, text := range env.Toasts.Active() {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

type fakeScreen struct {
	name     string
	disposed int
}

func (f *fakeScreen) Name() string                           { return f.name }
func (f *fakeScreen) Update(dt float64)                      {}
func (f *fakeScreen) HandleIntent(intent engineinput.Intent) {}
func (f *fakeScreen) Dispose()                               { f.disposed++ }

type recreating struct {
	fakeScreen
	fresh *fakeScreen
}

func (r *recreating) Recreate() Screen { return r.fresh }

func TestStack_PopLastQuits(t *testing.T) {
	s := NewStack()
	a, b := &fakeScreen{name: "a"}, &fakeScreen{name: "b"}
	s.Push(a)
	s.Push(b)

	s.Pop()
	if s.Top() != Screen(a) || b.disposed != 1 || s.Quitting() {
		t.Fatalf("after first Pop: top = %v, b disposed %d, quitting %v", s.Top(), b.disposed, s.Quitting())
	}
	s.Pop()
	if !s.Quitting() || s.Len() != 0 {
		t.Errorf("after last Pop: quitting = %v, len = %d, want true, 0", s.Quitting(), s.Len())
	}
	s.Pop()
}

func TestStack_RemoveAllAndResetTo(t *testing.T) {
	s := NewStack()
	base, w1, top := &fakeScreen{name: "base"}, &fakeScreen{name: "world"}, &fakeScreen{name: "top"}
	s.Push(base)
	s.Push(w1)
	s.Push(top)

	if s.ResetTo(&fakeScreen{name: "elsewhere"}) {
		t.Error("ResetTo(screen not on stack) = true")
	}
	if !s.ResetTo(w1) || s.Top() != Screen(w1) || top.disposed != 1 {
		t.Fatalf("ResetTo(world): top = %v, disposed = %d", s.Top().Name(), top.disposed)
	}

	n := s.RemoveAll(func(sc Screen) bool { return sc.Name() == "world" })
	if n != 1 || w1.disposed != 1 || s.Len() != 1 {
		t.Errorf("RemoveAll() = %d, disposed %d, len %d, want 1, 1, 1", n, w1.disposed, s.Len())
	}
	if s.Find(func(sc Screen) bool { return sc.Name() == "world" }) != nil {
		t.Error("Find() returned a removed screen")
	}
}

func TestStack_RecreateReplacesTop(t *testing.T) {
	s := NewStack()
	fresh := &fakeScreen{name: "fresh"}
	old := &recreating{fakeScreen: fakeScreen{name: "old"}, fresh: fresh}
	s.Push(old)

	s.Recreate()
	if s.Top() != Screen(fresh) || old.disposed != 1 || s.Len() != 1 {
		t.Errorf("Recreate(): top = %s, old disposed %d, len %d", s.Top().Name(), old.disposed, s.Len())
	}
}

func TestToasts_Expire(t *testing.T) {
	var toasts Toasts
	toasts.Show("one")
	toasts.Update(ToastDuration / 2)
	toasts.Show("two")
	toasts.Update(ToastDuration / 2)

	got := toasts.Active()
	if len(got) != 1 || got[0] != "two" {
		t.Errorf("Active() = %v, want [two]", got)
	}
}

func TestMainMenu_StartsPreview(t *testing.T) {
	env := newEnv(t)
	m := NewMainMenu(env)
	env.Stack.Push(m)

	if !m.Scheduler().Running() {
		t.Fatal("preview not started")
	}
	settle(env)
	if got := len(m.Background().MapLayers()); got != 1 {
		t.Errorf("map layers = %d, want 1", got)
	}
	if m.Scheduler().State() != preview.StateDisplayed {
		t.Errorf("state = %s, want displayed", m.Scheduler().State())
	}
	if m.Images().Ruleset().Name != ruleset.Vanilla {
		t.Errorf("image ruleset = %s, want %s", m.Images().Ruleset().Name, ruleset.Vanilla)
	}
}

func TestMainMenu_UnknownTileSetSkipsPreview(t *testing.T) {
	env := newEnv(t)
	env.Settings.Update(func(s *config.Settings) { s.TileSet = "NoSuchTiles" })
	m := NewMainMenu(env)

	if m.Scheduler().Running() || m.Scheduler().State() != preview.StateIdle {
		t.Errorf("preview running with an unknown tile set")
	}
	if len(m.Background().Layers()) != 1 {
		t.Errorf("background layers = %d, want only the backdrop", len(m.Background().Layers()))
	}
}

func TestMainMenu_Quickstart(t *testing.T) {
	env := newEnv(t)
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.HandleIntent(key("q"))
	if m.Scheduler().Running() {
		t.Error("preview still running after a button")
	}
	if !hasToast(env, "Working") {
		t.Errorf("toasts = %v, want a working toast", env.Toasts.Active())
	}
	settle(env)

	w, ok := env.Stack.Top().(*WorldScreen)
	if !ok {
		t.Fatalf("top screen = %s, want World", env.Stack.Top().Name())
	}
	if w.Game().Parameters.Difficulty != starter.QuickDifficulty {
		t.Errorf("difficulty = %s, want %s", w.Game().Parameters.Difficulty, starter.QuickDifficulty)
	}
	if !env.Saves.AutosaveExists() {
		t.Error("opening the game did not autosave")
	}
	if env.Settings.Get().LastGameSetup == nil {
		t.Error("last game setup not recorded")
	}
}

func TestMainMenu_QuickstartFillsVictoryTypes(t *testing.T) {
	env := newEnv(t)
	env.Settings.SetLastGameSetup(state.GameParameters{
		Difficulty:  "King",
		BaseRuleset: ruleset.GodsAndKings,
		Players:     2,
		MapWidth:    12,
		MapHeight:   8,
	})
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.HandleIntent(key("q"))
	settle(env)

	w, ok := env.Stack.Top().(*WorldScreen)
	if !ok {
		t.Fatalf("top screen = %s, want World", env.Stack.Top().Name())
	}
	got := w.Game().Parameters.VictoryTypes
	if want := w.Ruleset().Victories; len(want) == 0 || len(got) != len(want) {
		t.Errorf("victory types = %v, want the ruleset's %v", got, want)
	}
}

func TestMainMenu_QuickstartNotEnoughMemory(t *testing.T) {
	env := newEnv(t)
	env.Starter.Memory = func(ctx context.Context) (uint64, error) { return 1, nil }
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.HandleIntent(key("q"))
	settle(env)

	if env.Stack.Top() != Screen(m) {
		t.Errorf("top screen = %s, want the main menu", env.Stack.Top().Name())
	}
	if !hasToast(env, "Not enough memory") {
		t.Errorf("toasts = %v, want the memory message", env.Toasts.Active())
	}
}

func startWorld(t *testing.T, env *Env) *WorldScreen {
	t.Helper()
	m := NewMainMenu(env)
	env.Stack.Push(m)
	m.Quickstart()
	settle(env)
	w, ok := env.Stack.Top().(*WorldScreen)
	if !ok {
		t.Fatalf("top screen = %s, want World", env.Stack.Top().Name())
	}
	return w
}

func TestMainMenu_ResumeReturnsToWorld(t *testing.T) {
	env := newEnv(t)
	w := startWorld(t, env)
	w.HandleIntent(action(engineinput.ActionOpenMenu))
	if !w.HasPopups() {
		t.Fatal("world menu did not open")
	}

	again := NewMainMenu(env)
	env.Stack.Push(again)
	if len(again.Menu().Items()) == 0 || again.Menu().Items()[0].GetLabel() != "Resume" {
		t.Fatalf("first button = %q, want Resume", again.Menu().Items()[0].GetLabel())
	}
	again.HandleIntent(key("r"))

	if env.Stack.Top() != Screen(w) {
		t.Errorf("top screen = %s, want the existing world", env.Stack.Top().Name())
	}
	if w.HasPopups() {
		t.Error("world menu popups still open after resume")
	}
	settle(env)
}

func TestMainMenu_ResumeReloadsWhenTileSetChanged(t *testing.T) {
	env := newEnv(t)
	w := startWorld(t, env)

	again := NewMainMenu(env)
	env.Stack.Push(again)
	env.Settings.Update(func(s *config.Settings) { s.TileSet = "Minimal" })
	again.Resume()
	settle(env)

	top, ok := env.Stack.Top().(*WorldScreen)
	if !ok || top == w {
		t.Fatalf("top screen = %v, want a reloaded world", env.Stack.Top().Name())
	}
	if ts, _ := top.TileSetStrings(); ts != "Minimal" {
		t.Errorf("tile set = %s, want Minimal", ts)
	}
	if top.Game().ID != w.Game().ID {
		t.Errorf("reloaded game %s, want %s", top.Game().ID, w.Game().ID)
	}
}

func TestMainMenu_ResumeLoadsAutosave(t *testing.T) {
	env := newEnv(t)
	g, err := env.Starter.StartNewGame(context.Background(), starter.SetupFromSettings(env.Settings.Get(), ""))
	if err != nil {
		t.Fatalf("StartNewGame() error = %v", err)
	}
	g.Turn = 7
	if err := env.Saves.Autosave(g); err != nil {
		t.Fatalf("Autosave() error = %v", err)
	}

	m := NewMainMenu(env)
	env.Stack.Push(m)
	m.HandleIntent(key("r"))
	settle(env)

	w, ok := env.Stack.Top().(*WorldScreen)
	if !ok {
		t.Fatalf("top screen = %s, want World", env.Stack.Top().Name())
	}
	if w.Game().Turn != 7 {
		t.Errorf("turn = %d, want 7", w.Game().Turn)
	}
}

func TestMainMenu_BackClosesPopupsThenQuits(t *testing.T) {
	env := newEnv(t)
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.HandleIntent(key("o"))
	if !m.HasPopups() {
		t.Fatal("options popup did not open")
	}
	m.HandleIntent(action(engineinput.ActionBack))
	if m.HasPopups() || env.Stack.Len() != 1 {
		t.Fatalf("after Back: popups %v, stack %d, want closed and 1", m.HasPopups(), env.Stack.Len())
	}
	m.HandleIntent(action(engineinput.ActionBack))
	if !env.Stack.Quitting() {
		t.Error("Back on the main menu did not quit")
	}
	settle(env)
}

func TestMainMenu_HelpOpensCivilopedia(t *testing.T) {
	env := newEnv(t)
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.HandleIntent(action(engineinput.ActionHelp))
	if got := env.Stack.Top().Name(); got != "Civilopedia" {
		t.Errorf("top screen = %s, want Civilopedia", got)
	}
	if m.Scheduler().Running() {
		t.Error("preview still running after help")
	}
	settle(env)
}

func TestMainMenu_CivilopediaWithoutLastSetupUsesGodsAndKings(t *testing.T) {
	env := newEnv(t)
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.OpenCivilopedia()
	if got := m.Images().Ruleset().Name; got != ruleset.GodsAndKings {
		t.Errorf("image ruleset = %q, want %q", got, ruleset.GodsAndKings)
	}
	if got := env.Stack.Top().Name(); got != "Civilopedia" {
		t.Errorf("top screen = %s, want Civilopedia", got)
	}
	settle(env)
}

func TestMainMenu_CivilopediaAbortsWithoutBaseRuleset(t *testing.T) {
	env := newEnv(t)
	vanillaOnly := ruleset.NewCache()
	vanillaOnly.Add(env.Rulesets.Vanilla())
	env.Rulesets = vanillaOnly
	m := NewMainMenu(env)
	env.Stack.Push(m)

	m.OpenCivilopedia()
	if env.Stack.Top() != Screen(m) {
		t.Errorf("top screen = %s, want the main menu", env.Stack.Top().Name())
	}
	settle(env)
}

func TestMainMenu_CivilopediaUsesEasterEgg(t *testing.T) {
	env := newEnv(t)
	env.Now = func() time.Time { return time.Date(2026, time.October, 31, 18, 0, 0, 0, time.UTC) }
	m := NewMainMenu(env)
	env.Stack.Push(m)
	settle(env)

	m.OpenCivilopedia()
	if !m.Images().Ruleset().HasMod("Samhain") {
		t.Errorf("image ruleset mods = %v, want Samhain", m.Images().Ruleset().ModNames())
	}

	m.Dispose()
	if m.Scheduler().EasterEggRuleset() != nil {
		t.Error("Dispose() kept the easter egg ruleset")
	}
}

func TestMainMenu_RecreateStopsPreview(t *testing.T) {
	env := newEnv(t)
	m := NewMainMenu(env)
	env.Stack.Push(m)

	env.Stack.Recreate()
	fresh, ok := env.Stack.Top().(*MainMenu)
	if !ok || fresh == m {
		t.Fatalf("top screen after Recreate() = %v", env.Stack.Top())
	}
	if m.Scheduler().Running() {
		t.Error("old preview still running")
	}
	settle(env)
}

func TestWorldScreen_MenuNavigatesAndCloses(t *testing.T) {
	env := newEnv(t)
	w := startWorld(t, env)

	w.HandleIntent(action(engineinput.ActionBack))
	popups := w.Popups()
	if len(popups) != 1 {
		t.Fatalf("popups = %d, want the world menu", len(popups))
	}
	popups[0].Activate(1)

	if got := env.Stack.Top().Name(); got != "Civilopedia" {
		t.Errorf("top screen = %s, want Civilopedia", got)
	}
	if w.HasPopups() {
		t.Error("world menu still open after navigating")
	}

	env.Stack.HandleIntent(action(engineinput.ActionBack))
	if env.Stack.Top() != Screen(w) {
		t.Errorf("Back from Civilopedia left %s on top", env.Stack.Top().Name())
	}
}

func TestWorldScreen_ConfirmEndsTurn(t *testing.T) {
	env := newEnv(t)
	w := startWorld(t, env)

	w.HandleIntent(action(engineinput.ActionConfirm))
	settle(env)
	if w.Game().Turn != 2 {
		t.Errorf("turn = %d, want 2", w.Game().Turn)
	}
	g, err := env.Saves.LoadAutosave()
	if err != nil || g.Turn != 2 {
		t.Errorf("autosave turn = %v, %v, want 2", g, err)
	}
}

func TestLoadGameScreen_ListsSaves(t *testing.T) {
	env := newEnv(t)
	w := startWorld(t, env)
	if err := env.Saves.Save("First", w.Game()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := NewLoadGameScreen(env)
	var labels []string
	for _, item := range s.Menu().Items() {
		labels = append(labels, item.GetLabel())
	}
	joined := strings.Join(labels, "|")
	if !strings.Contains(joined, "First (turn 1)") || !strings.Contains(joined, "Autosave") {
		t.Errorf("labels = %v, want First and Autosave entries", labels)
	}
}

func TestDestination_UnavailableScreenGoesBack(t *testing.T) {
	env := newEnv(t)
	base := &fakeScreen{name: "base"}
	env.Stack.Push(base)
	env.Stack.Push(NewDestination(env, menu.DestMultiplayer))

	env.Stack.HandleIntent(action(engineinput.ActionBack))
	if env.Stack.Top() != Screen(base) {
		t.Errorf("top screen = %s, want base", env.Stack.Top().Name())
	}
}
