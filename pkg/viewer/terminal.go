package viewer

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/meshview/pkg/render"
)

// signalBuffer bounds the keys queued between two frames. Extra presses are
// dropped rather than blocking the event reader.
const signalBuffer = 64

var _ Backend = (*Terminal)(nil)

// Terminal is a Backend that renders into the terminal's alternate screen
// with half-block characters, two framebuffer rows per terminal row.
type Terminal struct {
	term *uv.Terminal
	fb   *render.Framebuffer
	hud  *HUD

	signals chan Signal
	sizes   chan uv.Size
}

// NewTerminal takes over the terminal. The caller must Close it to restore
// the screen.
func NewTerminal() (*Terminal, error) {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		_ = term.Shutdown(context.Background())
		return nil, fmt.Errorf("resize terminal: %w", err)
	}

	t := &Terminal{
		term:    term,
		fb:      render.NewFramebuffer(width, height*2),
		hud:     NewHUD(),
		signals: make(chan Signal, signalBuffer),
		sizes:   make(chan uv.Size, 1),
	}
	go t.readEvents()

	return t, nil
}

// readEvents translates terminal events into signals and size changes. It
// never touches the framebuffer; Poll applies resizes on the loop goroutine.
func (t *Terminal) readEvents() {
	for ev := range t.term.Events() {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			// Keep only the latest size.
			select {
			case <-t.sizes:
			default:
			}
			t.sizes <- uv.Size(ev)
		case uv.KeyPressEvent:
			if sig, ok := KeySignal(ev); ok {
				select {
				case t.signals <- sig:
				default:
				}
			}
		}
	}
}

// Poll returns the signals received since the last call and applies any
// pending resize.
func (t *Terminal) Poll() []Signal {
	select {
	case size := <-t.sizes:
		t.term.Erase()
		_ = t.term.Resize(size.Width, size.Height)
		t.fb = render.NewFramebuffer(size.Width, size.Height*2)
	default:
	}

	var out []Signal
	for {
		select {
		case sig := <-t.signals:
			out = append(out, sig)
		default:
			return out
		}
	}
}

// Canvas returns the framebuffer for the next frame.
func (t *Terminal) Canvas() render.Canvas {
	return t.fb
}

// SetStatus updates the HUD.
func (t *Terminal) SetStatus(s Status) {
	t.hud.SetStatus(s)
}

// Present draws the framebuffer and HUD and flushes them to the terminal.
func (t *Terminal) Present() error {
	t.hud.UpdateFPS()
	t.term.Draw(frame{fb: t.fb, hud: t.hud})
	if err := t.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.term.ExitAltScreen()
	t.term.ShowCursor()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := t.term.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown terminal: %w", err)
	}
	return nil
}

// frame layers the HUD over the framebuffer.
type frame struct {
	fb  *render.Framebuffer
	hud *HUD
}

func (f frame) Draw(scr uv.Screen, area uv.Rectangle) {
	f.fb.Draw(scr, area)
	f.hud.Draw(scr, area)
}

// KeySignal maps a key press to its signal.
func KeySignal(ev uv.KeyPressEvent) (Signal, bool) {
	// "+" cannot be spelled in MatchString, so symbol keys match on text.
	switch ev.Text {
	case "+", "=":
		return ZoomIn, true
	case "-", "_":
		return ZoomOut, true
	case "?":
		return ToggleHUD, true
	}

	switch {
	case ev.MatchString("esc", "ctrl+c"):
		return Quit, true
	case ev.MatchString("up", "w"):
		return RotateUp, true
	case ev.MatchString("down", "s"):
		return RotateDown, true
	case ev.MatchString("left", "a"):
		return RotateLeft, true
	case ev.MatchString("right", "d"):
		return RotateRight, true
	case ev.MatchString("pgup", "q"):
		return RollCounterClockwise, true
	case ev.MatchString("pgdown", "e"):
		return RollClockwise, true
	case ev.MatchString("x"):
		return ToggleMode, true
	case ev.MatchString("b"):
		return ToggleCulling, true
	case ev.MatchString("r"):
		return Reset, true
	case ev.MatchString("shift+/"):
		return ToggleHUD, true
	}
	return 0, false
}
