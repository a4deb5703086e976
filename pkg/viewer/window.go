//go:build cgo

package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/meshview/pkg/render"
)

// windowKeys maps window keys to signals, checked in order each tick.
var windowKeys = []struct {
	key ebiten.Key
	sig Signal
}{
	{ebiten.KeyEscape, Quit},
	{ebiten.KeyArrowUp, RotateUp},
	{ebiten.KeyW, RotateUp},
	{ebiten.KeyArrowDown, RotateDown},
	{ebiten.KeyS, RotateDown},
	{ebiten.KeyArrowLeft, RotateLeft},
	{ebiten.KeyA, RotateLeft},
	{ebiten.KeyArrowRight, RotateRight},
	{ebiten.KeyD, RotateRight},
	{ebiten.KeyPageUp, RollCounterClockwise},
	{ebiten.KeyQ, RollCounterClockwise},
	{ebiten.KeyPageDown, RollClockwise},
	{ebiten.KeyE, RollClockwise},
	{ebiten.KeyEqual, ZoomIn},
	{ebiten.KeyNumpadAdd, ZoomIn},
	{ebiten.KeyMinus, ZoomOut},
	{ebiten.KeyNumpadSubtract, ZoomOut},
	{ebiten.KeyX, ToggleMode},
	{ebiten.KeyB, ToggleCulling},
	{ebiten.KeyR, Reset},
	{ebiten.KeySlash, ToggleHUD},
}

// RunWindow opens a desktop window showing v and blocks until a Quit
// signal, the window is closed, or ctx is done.
func RunWindow(ctx context.Context, v *Viewer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive", width, height)
	}

	g := &windowGame{
		ctx:    ctx,
		v:      v,
		fb:     render.NewFramebuffer(width, height),
		width:  width,
		height: height,
	}
	ebiten.SetWindowTitle("meshview - " + v.Mesh().Name)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(v.cfg.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

type windowGame struct {
	ctx context.Context
	v   *Viewer

	fb            *render.Framebuffer
	img           *ebiten.Image
	pix           []byte
	width, height int
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if g.fb.Width != g.width || g.fb.Height != g.height {
		g.fb = render.NewFramebuffer(g.width, g.height)
	}

	var signals []Signal
	for _, k := range windowKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			signals = append(signals, k.sig)
		}
	}
	if !g.v.Step(signals, g.fb) {
		return ebiten.Termination
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	fb := g.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
		g.pix = make([]byte, 4*fb.Width*fb.Height)
	}

	fb.CopyRGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)

	if s := g.v.Status(); s.ShowHUD {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%.0f FPS  %s", ebiten.ActualFPS(), s))
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.width, g.height
}
