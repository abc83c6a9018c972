package main

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"imgv/internal/logger"
)

const windowTitleBase = "Image Viewer"

// Game owns the session and the single texture currently on screen
type Game struct {
	session *Session
	config  Config

	inputHandler *InputHandler
	renderer     *Renderer

	// Texture of the entry at loadedIdx, or a placeholder when loading failed
	current     *ebiten.Image
	placeholder *ebiten.Image
	loadedIdx   int

	title string

	// GPU texture constructors; tests replace them to run without a display
	newTexture      func(img image.Image) *ebiten.Image
	newErrorTexture func(name, reason string) *ebiten.Image
	newEmptyTexture func(dir string) *ebiten.Image
	releaseTexture  func(img *ebiten.Image)
}

// NewGame wires input and rendering around a session
func NewGame(session *Session, config Config) *Game {
	g := &Game{
		session:   session,
		config:    config,
		loadedIdx: -1,
	}

	g.newTexture = ebiten.NewImageFromImage
	g.newErrorTexture = func(name, reason string) *ebiten.Image {
		return CreateErrorImage(placeholderWidth, placeholderHeight, name, reason)
	}
	g.newEmptyTexture = func(dir string) *ebiten.Image {
		return CreateNoImageImage(placeholderWidth, placeholderHeight, dir)
	}
	g.releaseTexture = (*ebiten.Image).Deallocate

	keybindings := NewKeybindingManager(config.Keybindings)
	logger.Debug("Key bindings", zap.Any("keybindings", keybindings.GetKeybindings()))

	g.inputHandler = NewInputHandler(g, keybindings)
	g.renderer = NewRenderer(g)
	return g
}

// Update processes input, then reloads the texture when the cursor moved
func (g *Game) Update() error {
	g.inputHandler.HandleInput()
	g.syncCurrentImage()

	if title := g.windowTitle(); title != g.title {
		g.title = title
		ebiten.SetWindowTitle(title)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// needsReload reports whether the held texture belongs to another entry
func (g *Game) needsReload() bool {
	return g.session.Cursor.Valid() && g.loadedIdx != g.session.Cursor.Index()
}

// syncCurrentImage decodes the entry under the cursor once per cursor change
func (g *Game) syncCurrentImage() {
	entry, ok := g.session.Current()
	if !ok {
		if g.placeholder == nil {
			g.placeholder = g.newEmptyTexture(g.session.Target.Dir)
		}
		return
	}
	if !g.needsReload() {
		return
	}

	g.releaseCurrent()
	g.loadedIdx = g.session.Cursor.Index()

	rgba, err := loadEntry(entry)
	if err != nil {
		logger.Warn("Cannot display image",
			zap.String("path", entry.Path),
			zap.Stringer("kind", errorKind(err)),
			zap.Error(err))
		g.placeholder = g.newErrorTexture(entry.Name(), errorReason(err))
		return
	}

	logger.Debug("Displaying image",
		zap.String("path", entry.Path),
		zap.Int("index", g.loadedIdx),
		zap.Int("width", rgba.Bounds().Dx()),
		zap.Int("height", rgba.Bounds().Dy()))
	g.current = g.newTexture(rgba)
}

// releaseCurrent frees the GPU memory of the previous entry
func (g *Game) releaseCurrent() {
	if g.current != nil {
		g.releaseTexture(g.current)
		g.current = nil
	}
	if g.placeholder != nil {
		g.releaseTexture(g.placeholder)
		g.placeholder = nil
	}
}

// errorReason is the short text shown on an error placeholder
func errorReason(err error) string {
	var ve *ViewerError
	if errors.As(err, &ve) && ve.Err != nil {
		return fmt.Sprintf("%s (%v)", ve.Kind, ve.Err)
	}
	return err.Error()
}

// windowTitle names the entry under the cursor
func (g *Game) windowTitle() string {
	if name := g.GetCurrentName(); name != "" {
		return windowTitleBase + " - " + name
	}
	return windowTitleBase
}

// InputActions implementation

func (g *Game) NavigateNext() {
	g.session.Cursor.StepForward()
}

func (g *Game) NavigatePrevious() {
	g.session.Cursor.StepBack()
}

func (g *Game) GetCurrentIndex() int {
	return g.session.Cursor.Index()
}

func (g *Game) GetTotalPagesCount() int {
	return g.session.Cursor.Len()
}

// RenderState implementation

func (g *Game) GetCurrentImage() *ebiten.Image {
	return g.current
}

func (g *Game) GetPlaceholder() *ebiten.Image {
	return g.placeholder
}

func (g *Game) IsUpscaleEnabled() bool {
	return g.config.Upscale
}

func (g *Game) IsShowingInfo() bool {
	return g.config.ShowInfo
}

func (g *Game) GetCurrentName() string {
	entry, ok := g.session.Current()
	if !ok {
		return ""
	}
	return entry.Name()
}

func (g *Game) GetCurrentPageNumber() string {
	total := g.session.Cursor.Len()
	if total == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", g.session.Cursor.Index()+1, total)
}

func (g *Game) GetFontSize() float64 {
	return g.config.FontSize
}
