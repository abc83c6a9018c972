package main

import (
	"go.uber.org/zap"

	"imgv/internal/logger"
)

// InputHandler handles all keyboard input processing
type InputHandler struct {
	inputActions      InputActions
	keybindingManager *KeybindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, keybindingManager *KeybindingManager) *InputHandler {
	return &InputHandler{
		inputActions:      inputActions,
		keybindingManager: keybindingManager,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.GetTotalPagesCount() == 0 {
		return false
	}

	return h.handleNavigationKeys()
}

func (h *InputHandler) handleNavigationKeys() bool {
	inputProcessed := false
	from := h.inputActions.GetCurrentIndex()

	if h.keybindingManager.ExecuteAction("next", h.inputActions) {
		inputProcessed = true
	}

	if h.keybindingManager.ExecuteAction("previous", h.inputActions) {
		inputProcessed = true
	}

	if to := h.inputActions.GetCurrentIndex(); to != from {
		logger.Debug("Moved cursor", zap.Int("from", from), zap.Int("to", to))
	}
	return inputProcessed
}
