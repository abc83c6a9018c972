package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Common colors used in rendering
var (
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorBackground = color.RGBA{0, 0, 0, 255}

	// Background color for the semi-transparent info box
	bgColorLight = color.RGBA{0, 0, 0, 128}
)

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{
		renderState: renderState,
	}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	img := r.renderState.GetCurrentImage()
	upscale := r.renderState.IsUpscaleEnabled()
	if img == nil {
		// Placeholders are drawn at their natural size when they fit
		img = r.renderState.GetPlaceholder()
		upscale = false
	}
	if img == nil {
		return
	}

	r.drawImageCentered(screen, img, upscale)

	// Draw info display (page status, etc.) at bottom of screen if enabled
	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}
}

func (r *Renderer) drawImageCentered(screen, img *ebiten.Image, upscale bool) {
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	scale := fitScale(iw, ih, w, h, upscale)
	offsetX, offsetY := centerOffset(iw, ih, w, h, scale)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)

	screen.DrawImage(img, op)
}

// fitScale returns the largest scale at which an iw x ih image fits inside
// maxW x maxH with its aspect ratio intact. Without upscale the result is
// capped at 1.
func fitScale(iw, ih, maxW, maxH int, upscale bool) float64 {
	if iw <= 0 || ih <= 0 || maxW <= 0 || maxH <= 0 {
		return 1
	}

	scale := math.Min(float64(maxW)/float64(iw), float64(maxH)/float64(ih))
	if !upscale && scale > 1 {
		return 1
	}
	return scale
}

// centerOffset returns the top-left position of the scaled image centred in the canvas
func centerOffset(iw, ih, maxW, maxH int, scale float64) (float64, float64) {
	sw, sh := float64(iw)*scale, float64(ih)*scale
	return float64(maxW)/2 - sw/2, float64(maxH)/2 - sh/2
}

// buildInfoString formats the caption shown in the corner
func buildInfoString(pageNumber, name string) string {
	if name == "" {
		return pageNumber
	}
	return pageNumber + "  " + name
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	if globalFontSource == nil {
		return
	}

	infoFont := &text.GoTextFace{
		Source: globalFontSource,
		Size:   r.renderState.GetFontSize(),
	}

	infoText := buildInfoString(r.renderState.GetCurrentPageNumber(), r.renderState.GetCurrentName())

	// Measure text dimensions
	textWidth, textHeight := text.Measure(infoText, infoFont, 0)

	// Position at bottom right corner
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	// Semi-transparent background
	bgPadding := 5.0
	bgX := textX - bgPadding
	bgY := textY - bgPadding
	bgW := textWidth + bgPadding*2
	bgH := textHeight + bgPadding*2

	DrawFilledRect(screen, bgX, bgY, bgW, bgH, bgColorLight)

	// Draw text
	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)
}
