package render

import (
	"fmt"
	"math/rand/v2"

	"github.com/taigrr/meshview/pkg/math3d"
)

// RenderMode selects how faces are drawn.
type RenderMode int

const (
	ModeShaded RenderMode = iota
	ModeWireframe
)

func (m RenderMode) String() string {
	switch m {
	case ModeShaded:
		return "shaded"
	case ModeWireframe:
		return "wireframe"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// Zoom limits and defaults.
const (
	DefaultZoom = 200.0
	ZoomStep    = 1.1
	MinZoom     = 1.0
	MaxZoom     = 1e5
)

// Scene holds the camera and lighting state shared by every face in a frame.
// Lights are unit vectors fixed at creation; only Zoom, Center and the
// toggles change afterwards.
type Scene struct {
	Zoom   float64
	Center Point

	Light1 math3d.Vec3
	Light2 math3d.Vec3

	Mode          RenderMode
	CullBackfaces bool

	Background Color
	Foreground Color
}

// NewScene creates a scene centred on a width x height canvas with two light
// directions drawn from rng.
func NewScene(width, height int, rng *rand.Rand) (*Scene, error) {
	l1 := math3d.V3(rng.Float64(), rng.Float64(), rng.Float64())
	l2 := math3d.V3(rng.Float64(), rng.Float64(), rng.Float64())
	return NewSceneWithLights(width, height, l1, l2)
}

// NewSceneWithLights creates a scene with the given light directions. Both
// are normalized here; a zero vector is an error.
func NewSceneWithLights(width, height int, l1, l2 math3d.Vec3) (*Scene, error) {
	u1, err := l1.Unit()
	if err != nil {
		return nil, fmt.Errorf("light 1: %w", err)
	}
	u2, err := l2.Unit()
	if err != nil {
		return nil, fmt.Errorf("light 2: %w", err)
	}

	s := &Scene{
		Zoom:       DefaultZoom,
		Light1:     u1,
		Light2:     u2,
		Mode:       ModeShaded,
		Background: ColorBlack,
		Foreground: ColorWhite,
	}
	s.Resize(width, height)
	return s, nil
}

// Resize re-centres the scene on a canvas of the new size.
func (s *Scene) Resize(width, height int) {
	s.Center = Point{X: float64(width) / 2, Y: float64(height) / 2}
}

// Project maps v to canvas space with a scaled orthographic projection.
// Z is ignored.
func (s *Scene) Project(v math3d.Vec3) Point {
	return Point{
		X: s.Center.X + v.X*s.Zoom,
		Y: s.Center.Y + v.Y*s.Zoom,
	}
}

// ZoomIn enlarges the view by one step.
func (s *Scene) ZoomIn() {
	s.SetZoom(s.Zoom * ZoomStep)
}

// ZoomOut shrinks the view by one step.
func (s *Scene) ZoomOut() {
	s.SetZoom(s.Zoom / ZoomStep)
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (s *Scene) SetZoom(z float64) {
	s.Zoom = min(max(z, MinZoom), MaxZoom)
}

// ToggleMode switches between shaded and wireframe drawing.
func (s *Scene) ToggleMode() {
	if s.Mode == ModeShaded {
		s.Mode = ModeWireframe
	} else {
		s.Mode = ModeShaded
	}
}
