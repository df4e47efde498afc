// Package ebitenbackend presents a trellis.Driver in an Ebitengine window.
//
// Ebitengine owns the main loop, so each Update runs one Driver.Frame into a
// command buffer and the following Draw replays it onto the screen.
package ebitenbackend

import (
	"errors"
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/trellis"
	"go.uber.org/zap"
)

// RunConfig holds the window settings for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the fixed update rate. Defaults to 60.
	TPS int
	// Keyboard makes the driver's Input read the physical keyboard.
	Keyboard bool
	// ShowStats draws frame rate and entity count over the scene.
	ShowStats bool
	// Screenshots receives captures. Created on demand when
	// ScreenshotAction is set.
	Screenshots *Screenshots
	// ScreenshotAction is an input action that queues a capture when
	// just pressed.
	ScreenshotAction string
}

// ConfigFromWindow converts the window section of a trellis config.
func ConfigFromWindow(w trellis.WindowConfig) RunConfig {
	return RunConfig{Title: w.Title, Width: w.Width, Height: w.Height, TPS: w.TargetFPS, Keyboard: true}
}

// Run opens the window and drives d until the window is closed or a frame
// fails. The active scene is shut down before Run returns.
func Run(d *trellis.Driver, cfg RunConfig) error {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 450
	}
	if cfg.Keyboard {
		d.Input.SetSource(Keyboard{})
	}
	if cfg.ScreenshotAction != "" && cfg.Screenshots == nil {
		cfg.Screenshots = NewScreenshots("")
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowClosingHandled(true)

	g := newGame(d, cfg)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err != nil {
		trellis.Logger().Error("game loop stopped", zap.Error(err))
	}
	return errors.Join(err, d.Shutdown())
}

type game struct {
	driver   *trellis.Driver
	cfg      RunConfig
	dt       float64
	buf      *trellis.CommandBuffer
	textures map[trellis.Texture]*ebiten.Image
	op       ebiten.DrawImageOptions
	overlay  *statsOverlay
}

func newGame(d *trellis.Driver, cfg RunConfig) *game {
	g := &game{
		driver:   d,
		cfg:      cfg,
		dt:       1 / float64(cfg.TPS),
		buf:      trellis.NewCommandBuffer(256),
		textures: make(map[trellis.Texture]*ebiten.Image),
	}
	if cfg.ShowStats {
		g.overlay = &statsOverlay{}
	}
	return g
}

func (g *game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	g.buf.Reset()
	if err := g.driver.Frame(g.buf, g.dt); err != nil {
		return err
	}
	if g.cfg.ScreenshotAction != "" && g.driver.Input.JustPressed(g.cfg.ScreenshotAction) {
		g.cfg.Screenshots.Queue(g.cfg.ScreenshotAction)
	}
	if g.overlay != nil {
		g.overlay.update(g.dt, g.driver)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	view := ebiten.GeoM{}
	for _, cmd := range g.buf.Commands() {
		switch cmd.Type {
		case trellis.CommandBeginCamera:
			view = viewGeoM(cmd.View)
		case trellis.CommandEndCamera:
			view = ebiten.GeoM{}
		case trellis.CommandClear:
			screen.Fill(cmd.Color.RGBA())
		case trellis.CommandTexturedRect:
			g.drawRect(screen, &cmd, view)
		}
	}
	if g.cfg.Screenshots != nil {
		g.cfg.Screenshots.flush(screen)
	}
	if g.overlay != nil {
		g.overlay.draw(screen)
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func (g *game) drawRect(target *ebiten.Image, cmd *trellis.DrawCommand, view ebiten.GeoM) {
	img := g.image(cmd.Texture)
	if img == nil || cmd.Source.Width <= 0 || cmd.Source.Height <= 0 {
		return
	}
	src := image.Rect(
		int(cmd.Source.X), int(cmd.Source.Y),
		int(cmd.Source.X+cmd.Source.Width), int(cmd.Source.Y+cmd.Source.Height),
	)
	sub := img.SubImage(src).(*ebiten.Image)

	g.op.GeoM = rectGeoM(cmd.Source, cmd.Dest, cmd.Origin, cmd.Rotation)
	g.op.GeoM.Concat(view)
	g.op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	g.op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	target.DrawImage(sub, &g.op)
}

// image returns the GPU image for tex, uploading plain images on first use.
func (g *game) image(tex trellis.Texture) *ebiten.Image {
	switch t := tex.(type) {
	case nil:
		return nil
	case *ebiten.Image:
		return t
	case image.Image:
		if img, ok := g.textures[tex]; ok {
			return img
		}
		img := ebiten.NewImageFromImage(t)
		g.textures[tex] = img
		return img
	default:
		return nil
	}
}

// rectGeoM maps the source region onto dst: scale to the destination size,
// move origin to (0, 0), rotate by rotation degrees, then move to dst.
func rectGeoM(src, dst trellis.Rect, origin trellis.Vec2, rotation float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(dst.Width/src.Width, dst.Height/src.Height)
	m.Translate(-origin.X, -origin.Y)
	m.Rotate(rotation * math.Pi / 180)
	m.Translate(dst.X, dst.Y)
	return m
}

// viewGeoM converts a trellis affine matrix [a b c d tx ty].
func viewGeoM(t [6]float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}
