// Package input turns device events into high-level intents in four tiers:
// raw device codes, debounced codes, bound actions and intents.
package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceMouse
)

// Action represents a high-level intent in the menus.
type Action int

const (
	ActionNone Action = iota

	// Navigation
	ActionUp
	ActionDown
	ActionLeft
	ActionRight

	// Meta / UI
	ActionConfirm  // Activate the selected button (Enter, Space, A)
	ActionBack     // Close the top popup or leave the screen (Escape, B)
	ActionHelp     // Open the encyclopedia (F1, ?)
	ActionOpenMenu // Open the in-game menu (Tab, Start)
)

// Intent is the 4th-layer description of what the player wants to do.
// Code keeps the originating key so menus can match button shortcuts
// before the bound action is considered.
type Intent struct {
	Action Action
	Code   string
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "q", "arrow_up", "gamepad_a").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after key-repeat suppression.
type DebouncedInput struct {
	Device Device
	Code   string
}

// RepeatWindow is how soon the same code on the same device is treated as a repeat.
const RepeatWindow = 120 * time.Millisecond

// Debouncer drops repeats of the same code arriving within RepeatWindow.
type Debouncer struct {
	last     RawInput
	lastSeen bool
}

// Accept returns the debounced event and whether it should be handled.
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	repeat := d.lastSeen &&
		raw.Device == d.last.Device &&
		raw.Code == d.last.Code &&
		raw.Timestamp.Sub(d.last.Timestamp) < RepeatWindow
	d.last, d.lastSeen = raw, true
	if repeat {
		return DebouncedInput{}, false
	}
	return DebouncedInput{Device: raw.Device, Code: raw.Code}, true
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Letter keys are left unbound; they are menu shortcuts.
var bindings = map[string]Action{
	"arrow_up":    ActionUp,
	"arrow_down":  ActionDown,
	"arrow_left":  ActionLeft,
	"arrow_right": ActionRight,

	"enter": ActionConfirm,
	"space": ActionConfirm,

	"escape":    ActionBack,
	"backspace": ActionBack,

	"f1": ActionHelp,
	"?":  ActionHelp,

	"tab": ActionOpenMenu,

	"gamepad_dpad_up":    ActionUp,
	"gamepad_dpad_down":  ActionDown,
	"gamepad_dpad_left":  ActionLeft,
	"gamepad_dpad_right": ActionRight,
	"gamepad_a":          ActionConfirm,
	"gamepad_b":          ActionBack,
	"gamepad_start":      ActionOpenMenu,
}

// MapToIntent is the 3rd+4th layer: it applies the bindings to a debounced
// input and returns a high-level Intent. Unbound codes yield ActionNone with
// the code preserved.
func MapToIntent(ev DebouncedInput) Intent {
	return Intent{Action: bindings[ev.Code], Code: ev.Code}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionOpenMenu:
		return "Open Menu"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so the options screen doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
