package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"imgv/internal/logger"
)

// recordingActions counts navigation calls on top of a real cursor
type recordingActions struct {
	cursor   *Cursor
	next     int
	previous int
}

func (r *recordingActions) NavigateNext() {
	r.next++
	r.cursor.StepForward()
}

func (r *recordingActions) NavigatePrevious() {
	r.previous++
	r.cursor.StepBack()
}

func (r *recordingActions) GetCurrentIndex() int   { return r.cursor.Index() }
func (r *recordingActions) GetTotalPagesCount() int { return r.cursor.Len() }

func newTestInputHandler(length int) (*InputHandler, *recordingActions, *fakeKeyboard) {
	actions := &recordingActions{cursor: NewCursor(length)}
	km := NewKeybindingManager(GetDefaultKeybindings())
	keyboard := newFakeKeyboard()
	keyboard.install(km)
	return NewInputHandler(actions, km), actions, keyboard
}

func TestInputHandlerNavigation(t *testing.T) {
	h, actions, keyboard := newTestInputHandler(3)

	assert.False(t, h.HandleInput())
	assert.Equal(t, 0, actions.next+actions.previous)

	keyboard.justPressed[ebiten.KeyPageDown] = true
	assert.True(t, h.HandleInput())
	assert.Equal(t, 1, actions.GetCurrentIndex())
	assert.True(t, h.HandleInput())
	assert.True(t, h.HandleInput())
	assert.Equal(t, 3, actions.next)
	assert.Equal(t, 2, actions.GetCurrentIndex(), "forward stops at the last image")

	keyboard.justPressed[ebiten.KeyPageDown] = false
	keyboard.justPressed[ebiten.KeyPageUp] = true
	assert.True(t, h.HandleInput())
	assert.Equal(t, 1, actions.GetCurrentIndex())
	assert.Equal(t, 1, actions.previous)
}

func TestInputHandlerIgnoresOtherKeys(t *testing.T) {
	h, actions, keyboard := newTestInputHandler(3)

	for _, key := range []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowRight, ebiten.KeyEnter, ebiten.KeyHome} {
		keyboard.justPressed[key] = true
	}
	assert.False(t, h.HandleInput())
	assert.Equal(t, 0, actions.GetCurrentIndex())
}

func TestInputHandlerEmptyList(t *testing.T) {
	h, actions, keyboard := newTestInputHandler(0)
	keyboard.justPressed[ebiten.KeyPageDown] = true
	keyboard.justPressed[ebiten.KeyPageUp] = true

	assert.False(t, h.HandleInput())
	assert.Equal(t, 0, actions.next+actions.previous)
}

func TestActionExecutor(t *testing.T) {
	actions := &recordingActions{cursor: NewCursor(2)}
	executor := NewActionExecutor()

	assert.True(t, executor.ExecuteAction("next", actions))
	assert.True(t, executor.ExecuteAction("previous", actions))
	assert.False(t, executor.ExecuteAction("exit", actions))
	assert.Equal(t, 1, actions.next)
	assert.Equal(t, 1, actions.previous)
}

func TestDefaultKeybindingsAreIndependentCopies(t *testing.T) {
	first := GetDefaultKeybindings()
	first["next"][0] = "Space"

	assert.Equal(t, []string{"PageDown"}, GetDefaultKeybindings()["next"])
	assert.ElementsMatch(t, []string{"previous", "next"}, actionNames())
	assert.Len(t, GetActionDescriptions(), len(actionDefinitions))
}

func TestInputHandlerLogsCursorMoves(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = previous })

	h, _, keyboard := newTestInputHandler(2)
	keyboard.justPressed[ebiten.KeyPageDown] = true
	h.HandleInput()
	h.HandleInput()

	moves := logs.FilterMessage("Moved cursor").All()
	require.Len(t, moves, 1, "a press at the last image does not move")
	assert.Equal(t, int64(0), moves[0].ContextMap()["from"])
	assert.Equal(t, int64(1), moves[0].ContextMap()["to"])
}

func TestDescribeKeybindings(t *testing.T) {
	assert.Equal(t,
		"  PageUp     Previous image\n  PageDown   Next image\n",
		describeKeybindings(GetDefaultKeybindings()))

	custom := describeKeybindings(map[string][]string{"next": {"Space", "Shift+KeyN"}, "previous": {}})
	assert.Contains(t, custom, "(unbound)  Previous image")
	assert.Contains(t, custom, "Space, Shift+KeyN Next image")
}
