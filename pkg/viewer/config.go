package viewer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/taigrr/meshview/pkg/render"
)

// Config holds the user-facing viewer settings.
type Config struct {
	// FPS caps the render rate. Input is never throttled.
	FPS int
	// Smooth eases rotations in over several frames instead of jumping.
	Smooth bool
	// Wireframe starts in wireframe mode instead of shaded.
	Wireframe bool
	// Cull starts with backface culling on.
	Cull bool
	// HUD starts with the status overlay visible.
	HUD bool
	// Background is the canvas clear colour.
	Background render.Color
	// Zoom is the initial zoom factor; 0 fits the mesh to the first canvas.
	Zoom float64
	// Seed seeds the light direction generator; 0 picks a time-based seed.
	Seed uint64
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		FPS:        60,
		HUD:        true,
		Background: render.RGB(30, 30, 40),
	}
}

// Validate reports settings the viewer cannot run with.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Zoom < 0 {
		return errors.New("zoom must not be negative")
	}
	return nil
}

// NewScene creates the scene for a width x height canvas, drawing its light
// directions from the configured seed.
func (c Config) NewScene(width, height int) (*render.Scene, error) {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	scene, err := render.NewScene(width, height, rand.New(rand.NewPCG(seed, seed>>1|1)))
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}

	scene.Background = c.Background
	if c.Wireframe {
		scene.Mode = render.ModeWireframe
	}
	scene.CullBackfaces = c.Cull
	if c.Zoom > 0 {
		scene.SetZoom(c.Zoom)
	}
	return scene, nil
}
