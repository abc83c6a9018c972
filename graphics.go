package main

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	placeholderWidth  = 400
	placeholderHeight = 300
)

var (
	colorErrorBackground   = color.RGBA{120, 30, 30, 255} // Dark red
	colorNoImageBackground = color.RGBA{40, 40, 40, 255}  // Dark gray
)

// Global font source for placeholders and the info caption
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws text with specified position and color
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// truncateText shortens s to at most maxChars runes, ending with "..."
func truncateText(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	if maxChars <= 3 {
		return string(runes[:max(maxChars, 0)])
	}
	return string(runes[:maxChars-3]) + "..."
}

// createPlaceholderImage draws a bordered panel with a title and optional text lines
func createPlaceholderImage(width, height int, background color.RGBA, title string, lines ...string) *ebiten.Image {
	// Default size if not specified
	if width <= 0 || height <= 0 {
		width, height = placeholderWidth, placeholderHeight
	}

	img := ebiten.NewImage(width, height)
	img.Fill(background)

	// Draw white border
	DrawFilledRect(img, 0, 0, float64(width), 3, colorWhite)
	DrawFilledRect(img, 0, float64(height-3), float64(width), 3, colorWhite)
	DrawFilledRect(img, 0, 0, 3, float64(height), colorWhite)
	DrawFilledRect(img, float64(width-3), 0, 3, float64(height), colorWhite)

	// Without a font source only the panel is drawn
	if globalFontSource == nil {
		return img
	}

	font := &text.GoTextFace{
		Source: globalFontSource,
		Size:   20.0,
	}

	DrawText(img, title, font, 10, 30, colorWhite)

	// Rough estimate: 10px per character
	maxChars := (width - 20) / 10
	for i, line := range lines {
		DrawText(img, truncateText(line, maxChars), font, 10, float64(60+30*i), colorWhite)
	}

	return img
}

// CreateErrorImage creates an error placeholder image with filename and error message
func CreateErrorImage(width, height int, filename, errorMsg string) *ebiten.Image {
	return createPlaceholderImage(width, height, colorErrorBackground, "ERROR",
		"File: "+filename,
		"Reason: "+errorMsg,
	)
}

// CreateNoImageImage creates the placeholder shown when there is nothing to display
func CreateNoImageImage(width, height int, dir string) *ebiten.Image {
	return createPlaceholderImage(width, height, colorNoImageBackground, "No image",
		"Directory: "+dir,
	)
}
