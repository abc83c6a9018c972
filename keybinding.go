package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings  map[string][]string
	combinations map[string][]KeyCombination

	// Key state readers, replaced in tests
	justPressed func(ebiten.Key) bool
	held        func(ebiten.Key) bool
}

// NewKeybindingManager creates a new KeybindingManager.
// Unparseable key strings are skipped.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{
		justPressed: inpututil.IsKeyJustPressed,
		held:        ebiten.IsKeyPressed,
	}
	km.UpdateKeybindings(keybindings)
	return km
}

// getKeyMapping returns a mapping from string keys to Ebiten keys
func getKeyMapping() map[string]ebiten.Key {
	return map[string]ebiten.Key{
		// Letters
		"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
		"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
		"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
		"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
		"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
		"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
		"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

		// Numbers
		"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
		"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
		"Key8": ebiten.Key8, "Key9": ebiten.Key9,

		// Special keys
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,

		// Punctuation
		"Comma":     ebiten.KeyComma,
		"Period":    ebiten.KeyPeriod,
		"Slash":     ebiten.KeySlash,
		"Semicolon": ebiten.KeySemicolon,
		"Quote":     ebiten.KeyQuote,
		"Minus":     ebiten.KeyMinus,
		"Equal":     ebiten.KeyEqual,

		// Numpad
		"Numpad0":     ebiten.KeyNumpad0,
		"Numpad1":     ebiten.KeyNumpad1,
		"Numpad2":     ebiten.KeyNumpad2,
		"Numpad3":     ebiten.KeyNumpad3,
		"Numpad4":     ebiten.KeyNumpad4,
		"Numpad5":     ebiten.KeyNumpad5,
		"Numpad6":     ebiten.KeyNumpad6,
		"Numpad7":     ebiten.KeyNumpad7,
		"Numpad8":     ebiten.KeyNumpad8,
		"Numpad9":     ebiten.KeyNumpad9,
		"NumpadEnter": ebiten.KeyNumpadEnter,
	}
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseKeyString parses a key string like "Shift+KeyB" into a KeyCombination
func parseKeyString(keyStr string) (KeyCombination, error) {
	var combination KeyCombination

	if strings.TrimSpace(keyStr) == "" {
		return combination, errors.New("empty key string")
	}
	parts := strings.Split(keyStr, "+")

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	key, exists := getKeyMapping()[keyName]
	if !exists {
		return combination, fmt.Errorf("unknown key %q in %q", keyName, keyStr)
	}
	combination.Key = key

	// Check for modifiers
	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return combination, fmt.Errorf("unknown modifier %q in %q", modifier, keyStr)
		}
	}

	return combination, nil
}

// validateKeybindings rejects unknown actions, unparseable key strings and
// combinations bound to more than one action.
func validateKeybindings(keybindings map[string][]string) error {
	var errs []error
	owners := make(map[KeyCombination]string)

	actions := make([]string, 0, len(keybindings))
	for action := range keybindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	for _, action := range actions {
		if !isKnownAction(action) {
			errs = append(errs, fmt.Errorf("unknown action %q (valid: %s)", action, strings.Join(actionNames(), ", ")))
			continue
		}
		for _, keyStr := range keybindings[action] {
			combination, err := parseKeyString(keyStr)
			if err != nil {
				errs = append(errs, fmt.Errorf("action %q: %w", action, err))
				continue
			}
			if owner, taken := owners[combination]; taken && owner != action {
				errs = append(errs, fmt.Errorf("key %q bound to both %q and %q", keyStr, owner, action))
				continue
			}
			owners[combination] = action
		}
	}

	return errors.Join(errs...)
}

// isKeyPressed checks if a key combination was just pressed with exactly its modifiers
func (km *KeybindingManager) isKeyPressed(combination KeyCombination) bool {
	// Check if the main key was just pressed
	if !km.justPressed(combination.Key) {
		return false
	}

	// Modifiers must match exactly
	if combination.Shift != km.held(ebiten.KeyShift) {
		return false
	}
	if combination.Ctrl != km.held(ebiten.KeyControl) {
		return false
	}
	if combination.Alt != km.held(ebiten.KeyAlt) {
		return false
	}

	return true
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, combination := range km.combinations[action] {
		if km.isKeyPressed(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !km.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}

// UpdateKeybindings replaces the keybindings map and re-parses it
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	km.keybindings = keybindings
	km.combinations = make(map[string][]KeyCombination, len(keybindings))
	for action, keyStrings := range keybindings {
		for _, keyStr := range keyStrings {
			if combination, err := parseKeyString(keyStr); err == nil {
				km.combinations[action] = append(km.combinations[action], combination)
			}
		}
	}
}
