// Package screens holds the screens of the game and the stack they live on.
//
// Screens are driven by the renderer: it forwards intents and elapsed time to
// the top screen and draws it through the optional view interfaces below.
package screens

import (
	"log"

	engineinput "frontier/pkg/engine/input"
	"frontier/pkg/engine/world"
	"frontier/pkg/game/assets"
	"frontier/pkg/game/menu"
	"frontier/pkg/game/preview"
)

// Screen is one full-window view.
type Screen interface {
	Name() string
	// Update advances the screen by dt seconds.
	Update(dt float64)
	// HandleIntent reacts to one player intent.
	HandleIntent(intent engineinput.Intent)
	// Dispose releases the screen's resources. It is called once, when the
	// screen leaves the stack.
	Dispose()
}

// Recreatable is an optional interface for screens that rebuild themselves
// when the window is resized.
type Recreatable interface {
	Recreate() Screen
}

// BackgroundView is an optional interface for screens with a layered background.
type BackgroundView interface {
	Background() *preview.Stack
	Images() *assets.Images
}

// MenuView is an optional interface for screens built around a menu.
type MenuView interface {
	Menu() *menu.Menu
}

// PopupView is an optional interface for screens that show popups.
type PopupView interface {
	Popups() []*menu.Menu
}

// MapView is an optional interface for screens that show a game map.
type MapView interface {
	Map() *world.Grid
	Images() *assets.Images
}

// TitleView is an optional interface for screens with a title line.
type TitleView interface {
	Title() string
}

// Stack is the stack of open screens; the top one is active.
// It is used from the interactive thread only.
type Stack struct {
	screens []Screen
	quit    bool
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push makes sc the active screen.
func (s *Stack) Push(sc Screen) {
	log.Printf("[Screens] Push %s", sc.Name())
	s.screens = append(s.screens, sc)
}

// Pop disposes the active screen. Popping the last screen quits.
func (s *Stack) Pop() {
	if len(s.screens) == 0 {
		return
	}
	top := s.screens[len(s.screens)-1]
	s.screens = s.screens[:len(s.screens)-1]
	top.Dispose()
	if len(s.screens) == 0 {
		s.quit = true
	}
}

// Top returns the active screen, or nil.
func (s *Stack) Top() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Len returns the number of screens.
func (s *Stack) Len() int {
	return len(s.screens)
}

// Find returns the topmost screen matching pred, or nil.
func (s *Stack) Find(pred func(Screen) bool) Screen {
	for i := len(s.screens) - 1; i >= 0; i-- {
		if pred(s.screens[i]) {
			return s.screens[i]
		}
	}
	return nil
}

// RemoveAll disposes and removes every screen matching pred and returns how
// many were removed.
func (s *Stack) RemoveAll(pred func(Screen) bool) int {
	kept := s.screens[:0]
	removed := 0
	for _, sc := range s.screens {
		if pred(sc) {
			sc.Dispose()
			removed++
			continue
		}
		kept = append(kept, sc)
	}
	for i := len(kept); i < len(s.screens); i++ {
		s.screens[i] = nil
	}
	s.screens = kept
	return removed
}

// ResetTo disposes every screen above target, making it active.
// It reports false, changing nothing, if target is not on the stack.
func (s *Stack) ResetTo(target Screen) bool {
	idx := -1
	for i, sc := range s.screens {
		if sc == target {
			idx = i
		}
	}
	if idx < 0 {
		return false
	}
	for len(s.screens) > idx+1 {
		s.Pop()
	}
	return true
}

// Recreate rebuilds the active screen if it supports it.
func (s *Stack) Recreate() {
	top := s.Top()
	r, ok := top.(Recreatable)
	if !ok {
		return
	}
	fresh := r.Recreate()
	top.Dispose()
	s.screens[len(s.screens)-1] = fresh
}

// Quitting reports whether the last screen was popped.
func (s *Stack) Quitting() bool {
	return s.quit
}

// Update advances the active screen.
func (s *Stack) Update(dt float64) {
	if top := s.Top(); top != nil {
		top.Update(dt)
	}
}

// HandleIntent forwards an intent to the active screen.
func (s *Stack) HandleIntent(intent engineinput.Intent) {
	if top := s.Top(); top != nil {
		top.HandleIntent(intent)
	}
}
