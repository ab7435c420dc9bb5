// Package ebiten drives the screen stack with Ebiten: it polls input, runs
// the interactive thread and draws the active screen.
package ebiten

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/game/screens"
)

// keyRepeatInfo tracks the repeat state of a held key or button.
type keyRepeatInfo struct {
	firstPressed int64 // milliseconds
	lastRepeat   int64 // milliseconds
}

// App implements ebiten.Game.
type App struct {
	env   *screens.Env
	fonts *fonts

	width   int
	height  int
	resized bool

	debouncer      engineinput.Debouncer
	keyRepeatState map[string]keyRepeatInfo

	mapCache map[any]*cachedMap

	windowOpenedLogged bool
}

// New creates the app for a window of the given size.
func New(env *screens.Env, width, height int) (*App, error) {
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &App{
		env:            env,
		fonts:          f,
		width:          width,
		height:         height,
		keyRepeatState: make(map[string]keyRepeatInfo),
		mapCache:       make(map[any]*cachedMap),
	}, nil
}

// Viewport returns the current render surface size in pixels.
func (a *App) Viewport() (width, height int) {
	return a.width, a.height
}

// Update runs one tick of the interactive thread (Ebiten interface).
func (a *App) Update() error {
	if !a.windowOpenedLogged {
		a.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("[App] Main window opened (%dx%d)", w, h)
	}
	dt := 1 / float64(ebiten.TPS())

	a.env.Dispatcher.Drain()
	if a.resized {
		a.resized = false
		a.env.Stack.Recreate()
	}
	for _, intent := range a.pollIntents() {
		a.env.Stack.HandleIntent(intent)
		if a.env.Stack.Quitting() {
			break
		}
	}
	if a.env.Stack.Quitting() {
		log.Printf("[App] Last screen closed, quitting")
		return ebiten.Termination
	}
	a.env.Stack.Update(dt)
	a.env.Toasts.Update(dt)
	return nil
}

// Layout follows the window size and rebuilds the active screen when it
// changes (Ebiten interface).
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.resized = true
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until the game quits.
func Run(a *App, title string) error {
	ebiten.SetWindowSize(a.width, a.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(a)
}
