package main

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Rendering data
	GetCurrentImage() *ebiten.Image
	GetPlaceholder() *ebiten.Image
	IsUpscaleEnabled() bool

	// UI state
	IsShowingInfo() bool

	// Display data
	GetCurrentName() string
	GetCurrentPageNumber() string
	GetFontSize() float64
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Navigation
	NavigateNext()
	NavigatePrevious()

	// Common data access
	GetCurrentIndex() int
	GetTotalPagesCount() int
}
