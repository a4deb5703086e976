// Package viewer drives meshview's interaction loop: it turns input signals
// into mesh rotations and scene changes, and renders one frame per iteration
// through a Backend.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/taigrr/meshview/pkg/models"
	"github.com/taigrr/meshview/pkg/render"
)

// ErrNoWindow is returned by RunWindow in builds without window support.
var ErrNoWindow = errors.New("window backend not available in this build (needs cgo)")

// RotationStep is the angle turned per rotation signal.
const RotationStep = math.Pi / 20

// fitFraction is the share of the smaller canvas side an auto-fitted mesh's
// bounding sphere spans.
const fitFraction = 0.9

// Backend is a display and input source for the viewer.
type Backend interface {
	// Poll drains pending input without blocking.
	Poll() []Signal
	// Canvas returns the surface the next frame is drawn on. It may change
	// between frames, for example after a resize.
	Canvas() render.Canvas
	// Present shows the frame drawn since the last call.
	Present() error
	// Close releases the display.
	Close() error
}

// StatusReceiver is implemented by backends that display viewer status.
type StatusReceiver interface {
	SetStatus(Status)
}

// Status summarises the viewer state for overlays.
type Status struct {
	Name    string
	Faces   int
	Zoom    float64
	Mode    render.RenderMode
	Culling bool
	Smooth  bool
	ShowHUD bool
	Stats   render.Stats
}

// Viewer owns a mesh and scene and mutates them in response to signals. It is
// not safe for concurrent use; backends feed it from the loop goroutine.
type Viewer struct {
	mesh     *models.Mesh
	pristine *models.Mesh
	scene    *render.Scene
	renderer *render.Renderer
	cfg      Config

	state   State
	motion  *motion
	showHUD bool

	// Canvas size seen by the last frame, for re-centring on resize.
	width, height int
	initialZoom   float64
	fitted        bool
}

// New creates a viewer for mesh. The mesh is rotated in place; a copy is kept
// for Reset.
func New(mesh *models.Mesh, scene *render.Scene, cfg Config) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	return &Viewer{
		mesh:        mesh,
		pristine:    mesh.Clone(),
		scene:       scene,
		renderer:    render.NewRenderer(),
		cfg:         cfg,
		state:       Running,
		motion:      newMotion(cfg.FPS),
		showHUD:     cfg.HUD,
		initialZoom: scene.Zoom,
		fitted:      cfg.Zoom > 0,
	}, nil
}

// State returns the loop state.
func (v *Viewer) State() State { return v.state }

// Mesh returns the mesh being viewed.
func (v *Viewer) Mesh() *models.Mesh { return v.mesh }

// Scene returns the scene.
func (v *Viewer) Scene() *render.Scene { return v.scene }

// Status returns the current overlay information.
func (v *Viewer) Status() Status {
	return Status{
		Name:    v.mesh.Name,
		Faces:   v.mesh.TriangleCount(),
		Zoom:    v.scene.Zoom,
		Mode:    v.scene.Mode,
		Culling: v.scene.CullBackfaces,
		Smooth:  v.cfg.Smooth,
		ShowHUD: v.showHUD,
		Stats:   v.renderer.Stats,
	}
}

// Apply performs the mutation for one signal. Signals after Quit are ignored.
func (v *Viewer) Apply(sig Signal) {
	if v.state == Stopped {
		return
	}

	switch sig {
	case Quit:
		v.state = Stopped
	case RotateLeft:
		v.rotate(models.AxisY, RotationStep)
	case RotateRight:
		v.rotate(models.AxisY, -RotationStep)
	case RotateUp:
		v.rotate(models.AxisX, RotationStep)
	case RotateDown:
		v.rotate(models.AxisX, -RotationStep)
	case RollCounterClockwise:
		v.rotate(models.AxisZ, RotationStep)
	case RollClockwise:
		v.rotate(models.AxisZ, -RotationStep)
	case ZoomIn:
		v.scene.ZoomIn()
	case ZoomOut:
		v.scene.ZoomOut()
	case ToggleMode:
		v.scene.ToggleMode()
	case ToggleCulling:
		v.scene.CullBackfaces = !v.scene.CullBackfaces
	case ToggleHUD:
		v.showHUD = !v.showHUD
	case Reset:
		v.reset()
	}
}

func (v *Viewer) rotate(axis models.Axis, angle float64) {
	if v.cfg.Smooth {
		v.motion.push(axis, angle)
		return
	}
	v.mesh.Rotate(axis, angle)
}

func (v *Viewer) reset() {
	v.motion.reset()
	v.mesh.Vertices = append(v.mesh.Vertices[:0], v.pristine.Vertices...)
	v.scene.SetZoom(v.initialZoom)
}

// Step applies every signal in order and then, unless one of them stopped
// the viewer, renders one frame onto c. It reports whether a frame was drawn.
func (v *Viewer) Step(signals []Signal, c render.Canvas) bool {
	for _, sig := range signals {
		v.Apply(sig)
	}
	if v.state == Stopped {
		return false
	}

	v.track(c)
	if v.cfg.Smooth {
		v.motion.update(v.mesh)
	}
	v.renderer.RenderFrame(c, v.mesh, v.scene)
	return true
}

// track re-centres the scene when the canvas size changes, and fits the zoom
// to the first canvas when no zoom was configured.
func (v *Viewer) track(c render.Canvas) {
	w, h := c.Size()
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	v.scene.Resize(w, h)

	if !v.fitted {
		v.fitted = true
		v.scene.SetZoom(FitZoom(v.pristine, w, h))
		v.initialZoom = v.scene.Zoom
	}
}

// FitZoom returns the zoom at which mesh, turned any way about the origin,
// stays inside a width x height canvas. The result is not clamped; a scene
// floors it at render.MinZoom, so a mesh reaching further than about
// 0.45*min(width, height) units from the origin still overflows. Loading
// with Mesh.Fit avoids that.
func FitZoom(mesh *models.Mesh, width, height int) float64 {
	var r float64
	for _, p := range mesh.Vertices {
		r = max(r, p.Len())
	}
	if r == 0 || width <= 0 || height <= 0 {
		return render.DefaultZoom
	}
	return fitFraction * float64(min(width, height)) / (2 * r)
}

// Run loops Poll, Step and Present until a Quit signal arrives or ctx is
// done, capping the frame rate at the configured FPS. The backend is closed
// on return. Cancelling ctx is a normal exit.
func (v *Viewer) Run(ctx context.Context, b Backend) (err error) {
	defer func() {
		if cerr := b.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close backend: %w", cerr))
		}
	}()

	frame := time.Second / time.Duration(v.cfg.FPS)
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		if ctx.Err() != nil {
			return nil
		}

		start := time.Now()
		if !v.Step(b.Poll(), b.Canvas()) {
			return nil
		}
		if sr, ok := b.(StatusReceiver); ok {
			sr.SetStatus(v.Status())
		}
		if err := b.Present(); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}

		timer.Reset(max(frame-time.Since(start), 0))
	}
}
