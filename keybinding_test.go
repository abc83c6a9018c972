package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyString(t *testing.T) {
	tests := []struct {
		name     string
		keyStr   string
		expected KeyCombination
		wantErr  bool
	}{
		{"Plain key", "PageDown", KeyCombination{Key: ebiten.KeyPageDown}, false},
		{"Shift modifier", "Shift+KeyB", KeyCombination{Key: ebiten.KeyB, Shift: true}, false},
		{"Lowercase modifiers", "ctrl+alt+Space", KeyCombination{Key: ebiten.KeySpace, Ctrl: true, Alt: true}, false},
		{"Unknown key", "Shift+KeyBB", KeyCombination{}, true},
		{"Unknown modifier", "Super+KeyA", KeyCombination{}, true},
		{"Empty", "", KeyCombination{}, true},
		{"Dangling plus", "Shift+", KeyCombination{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combination, err := parseKeyString(tt.keyStr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, combination)
		})
	}
}

func TestValidateKeybindings(t *testing.T) {
	tests := []struct {
		name        string
		keybindings map[string][]string
		wantErr     string
	}{
		{"Defaults", GetDefaultKeybindings(), ""},
		{"Extra keys", map[string][]string{"next": {"PageDown", "Space"}, "previous": {"PageUp", "Backspace"}}, ""},
		{"Same key twice in one action", map[string][]string{"next": {"Space", "Space"}}, ""},
		{"Unknown action", map[string][]string{"zoom_in": {"Equal"}}, "unknown action"},
		{"Unknown key", map[string][]string{"next": {"KeyÄ"}}, "unknown key"},
		{"Conflict", map[string][]string{"next": {"Space"}, "previous": {"Space"}}, "bound to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKeybindings(tt.keybindings)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// fakeKeyboard stands in for the ebiten key state functions
type fakeKeyboard struct {
	justPressed map[ebiten.Key]bool
	held        map[ebiten.Key]bool
}

func newFakeKeyboard() *fakeKeyboard {
	return &fakeKeyboard{
		justPressed: make(map[ebiten.Key]bool),
		held:        make(map[ebiten.Key]bool),
	}
}

func (f *fakeKeyboard) install(km *KeybindingManager) {
	km.justPressed = func(k ebiten.Key) bool { return f.justPressed[k] }
	km.held = func(k ebiten.Key) bool { return f.held[k] }
}

func TestKeybindingManagerCheckAction(t *testing.T) {
	km := NewKeybindingManager(map[string][]string{
		"next":     {"PageDown", "Shift+Space"},
		"previous": {"PageUp", "Bogus"},
	})
	keyboard := newFakeKeyboard()
	keyboard.install(km)

	assert.False(t, km.CheckAction("next"))

	keyboard.justPressed[ebiten.KeyPageDown] = true
	assert.True(t, km.CheckAction("next"))
	assert.False(t, km.CheckAction("previous"))

	// Unrequested modifiers block the binding
	keyboard.held[ebiten.KeyControl] = true
	assert.False(t, km.CheckAction("next"))
	keyboard.held[ebiten.KeyControl] = false

	keyboard.justPressed[ebiten.KeyPageDown] = false
	keyboard.justPressed[ebiten.KeySpace] = true
	assert.False(t, km.CheckAction("next"))
	keyboard.held[ebiten.KeyShift] = true
	assert.True(t, km.CheckAction("next"))

	// Unparseable strings are skipped, valid siblings still work
	keyboard.held[ebiten.KeyShift] = false
	keyboard.justPressed[ebiten.KeyPageUp] = true
	assert.True(t, km.CheckAction("previous"))

	assert.False(t, km.CheckAction("unknown"))
}

func TestKeybindingManagerUpdate(t *testing.T) {
	km := NewKeybindingManager(GetDefaultKeybindings())
	keyboard := newFakeKeyboard()
	keyboard.install(km)
	keyboard.justPressed[ebiten.KeyN] = true

	assert.False(t, km.CheckAction("next"))

	updated := map[string][]string{"next": {"KeyN"}}
	km.UpdateKeybindings(updated)
	assert.True(t, km.CheckAction("next"))
	assert.Equal(t, updated, km.GetKeybindings())
}
