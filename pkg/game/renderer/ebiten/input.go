package ebiten

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "frontier/pkg/engine/input"
)

// repeatKeys are held-key codes that repeat.
var repeatKeys = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
}

// pressKeys fire once per press.
var pressKeys = map[ebiten.Key]string{
	ebiten.KeyEnter:     "enter",
	ebiten.KeyKPEnter:   "enter",
	ebiten.KeySpace:     "space",
	ebiten.KeyEscape:    "escape",
	ebiten.KeyBackspace: "backspace",
	ebiten.KeyF1:        "f1",
	ebiten.KeyTab:       "tab",
}

// pollIntents collects this tick's input as intents, gamepad first.
func (a *App) pollIntents() []engineinput.Intent {
	now := time.Now()
	var raws []engineinput.RawInput
	for _, code := range a.gamepadCodes(now) {
		raws = append(raws, engineinput.RawInput{Device: engineinput.DeviceGamepad, Code: code, Timestamp: now})
	}
	for _, code := range a.keyboardCodes(now) {
		raws = append(raws, engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: code, Timestamp: now})
	}

	var intents []engineinput.Intent
	for _, raw := range raws {
		ev, ok := a.debouncer.Accept(raw)
		if !ok {
			continue
		}
		intents = append(intents, engineinput.MapToIntent(ev))
	}
	return intents
}

func (a *App) keyboardCodes(now time.Time) []string {
	var codes []string
	for _, rk := range repeatKeys {
		if a.shouldRepeatKey(ebiten.IsKeyPressed(rk.key), "key_"+rk.code, now) {
			codes = append(codes, rk.code)
		}
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if code, ok := pressKeys[k]; ok {
			codes = append(codes, code)
			continue
		}
		if k == ebiten.KeySlash && ebiten.IsKeyPressed(ebiten.KeyShift) {
			codes = append(codes, "?")
			continue
		}
		if code := letterCode(k); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// letterCode returns "a".."z" for letter keys, used as menu shortcuts.
func letterCode(k ebiten.Key) string {
	name := k.String()
	if len(name) != 1 || name[0] < 'A' || name[0] > 'Z' {
		return ""
	}
	return strings.ToLower(name)
}

// gamepadCodes reads every connected gamepad. Button indices are tuned for
// XInput-style controllers; other devices may differ.
func (a *App) gamepadCodes(now time.Time) []string {
	const deadZone = 0.5
	var codes []string
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		x := ebiten.GamepadAxisValue(id, 0)
		y := ebiten.GamepadAxisValue(id, 1)
		directions := []struct {
			held   bool
			button ebiten.GamepadButton
			name   string
		}{
			{y < -deadZone, ebiten.GamepadButton11, "up"},
			{x > deadZone, ebiten.GamepadButton12, "right"},
			{y > deadZone, ebiten.GamepadButton13, "down"},
			{x < -deadZone, ebiten.GamepadButton14, "left"},
		}
		for _, d := range directions {
			held := d.held || ebiten.IsGamepadButtonPressed(id, d.button)
			if a.shouldRepeatKey(held, fmt.Sprintf("gamepad_%d_%s", id, d.name), now) {
				codes = append(codes, "gamepad_dpad_"+d.name)
			}
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton0) {
			codes = append(codes, "gamepad_a")
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton1) {
			codes = append(codes, "gamepad_b")
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton7) {
			codes = append(codes, "gamepad_start")
		}
	}
	return codes
}

// shouldRepeatKey reports whether a held key fires this tick: on the first
// press, then every keyRepeatInterval after keyRepeatInitialDelay.
func (a *App) shouldRepeatKey(pressed bool, code string, now time.Time) bool {
	ms := now.UnixMilli()
	state, exists := a.keyRepeatState[code]
	if !pressed {
		delete(a.keyRepeatState, code)
		return false
	}
	if !exists {
		a.keyRepeatState[code] = keyRepeatInfo{firstPressed: ms, lastRepeat: ms}
		return true
	}
	if ms-state.firstPressed >= keyRepeatInitialDelay && ms-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = ms
		a.keyRepeatState[code] = state
		return true
	}
	return false
}
