// meshview - Interactive 3D Mesh Viewer
// View OBJ and glTF meshes as flat-shaded or wireframe triangles, in the
// terminal or in a desktop window.
//
// Controls:
//
//	Arrows / W A S D  - Rotate about X (up/down) and Y (left/right)
//	PgUp/PgDn, Q/E    - Roll counter-clockwise / clockwise
//	+/-               - Zoom in/out
//	X                 - Toggle wireframe
//	B                 - Toggle backface culling
//	R                 - Reset view
//	?                 - Toggle HUD overlay
//	Esc               - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/meshview/pkg/models"
	"github.com/taigrr/meshview/pkg/render"
	"github.com/taigrr/meshview/pkg/viewer"
)

var version = "dev"

// options holds the flags shared by the view and snapshot commands.
type options struct {
	fps         int
	bg          string
	wireframe   bool
	cull        bool
	smooth      bool
	hud         bool
	seed        uint64
	zoom        float64
	fit         bool
	triangulate bool

	window        bool
	width, height int
}

func (o *options) config() (viewer.Config, error) {
	cfg := viewer.DefaultConfig()
	cfg.FPS = o.fps
	cfg.Wireframe = o.wireframe
	cfg.Cull = o.cull
	cfg.Smooth = o.smooth
	cfg.HUD = o.hud
	cfg.Seed = o.seed
	cfg.Zoom = o.zoom

	bg, err := render.ParseColor(o.bg)
	if err != nil {
		return cfg, err
	}
	cfg.Background = bg

	return cfg, cfg.Validate()
}

// addRenderFlags registers the flags that shape a rendered frame.
func addRenderFlags(cmd *cobra.Command, o *options) {
	f := cmd.Flags()
	f.StringVar(&o.bg, "bg", "30,30,40", "Background color (R,G,B)")
	f.BoolVar(&o.wireframe, "wireframe", false, "Start in wireframe mode")
	f.BoolVar(&o.cull, "cull", false, "Skip faces turned away from the viewer")
	f.Uint64Var(&o.seed, "seed", 0, "Seed for the random light directions (0 = time based)")
	f.Float64Var(&o.zoom, "zoom", 0, "Zoom factor in pixels per unit (0 = fit to screen)")
	f.BoolVar(&o.fit, "fit", true, "Centre the mesh and scale it to a 2-unit box")
	f.BoolVar(&o.triangulate, "triangulate", false, "Fan-triangulate OBJ polygon faces instead of rejecting them")
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "meshview [model.obj|model.glb|model.gltf]",
		Short: "Interactive 3D mesh viewer",
		Long: `meshview - Interactive 3D Mesh Viewer

Rotate and zoom a triangle mesh rendered with flat two-light shading or as a
wireframe. Without a file the built-in cube is shown.

Controls:
  Arrows / W A S D  - Rotate
  PgUp/PgDn, Q/E    - Roll
  +/-               - Zoom
  X                 - Toggle wireframe
  B                 - Toggle backface culling
  R                 - Reset view
  ?                 - Toggle HUD overlay
  Esc               - Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runView(cmd.Context(), path, &opts)
		},
	}

	addRenderFlags(cmd, &opts)
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "Target FPS")
	cmd.Flags().BoolVar(&opts.smooth, "smooth", false, "Ease rotations over several frames")
	cmd.Flags().BoolVar(&opts.hud, "hud", true, "Show the HUD overlay")
	cmd.Flags().BoolVar(&opts.window, "window", false, "Open a desktop window instead of using the terminal")
	cmd.Flags().IntVar(&opts.width, "width", 800, "Window width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 600, "Window height in pixels")

	cmd.AddCommand(newInfoCmd(), newSnapshotCmd())

	if err := fang.Execute(context.Background(), cmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

// loadMesh reads path, or builds the default cube when path is empty, and
// prepares it for viewing.
func loadMesh(path string, o *options) (*models.Mesh, error) {
	var mesh *models.Mesh
	if path == "" {
		mesh = models.NewCube()
	} else {
		var err error
		mesh, err = models.Load(path, models.OBJOptions{Triangulate: o.triangulate})
		if err != nil {
			return nil, err
		}
	}

	if o.fit {
		mesh.Fit(2)
	}
	if n := mesh.DegenerateFaces(); n > 0 {
		fmt.Fprintf(os.Stderr, "Warning: %d degenerate faces will be skipped\n", n)
	}
	return mesh, nil
}

func runView(ctx context.Context, path string, o *options) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}

	mesh, err := loadMesh(path, o)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded: %s\n", mesh)

	// The viewer re-centres on the first frame, so the size here only
	// matters for the window.
	scene, err := cfg.NewScene(o.width, o.height)
	if err != nil {
		return err
	}
	v, err := viewer.New(mesh, scene, cfg)
	if err != nil {
		return err
	}

	if o.window {
		return viewer.RunWindow(ctx, v, o.width, o.height)
	}

	term, err := viewer.NewTerminal()
	if err != nil {
		return err
	}
	return v.Run(ctx, term)
}
