package viewer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/taigrr/meshview/pkg/models"
	"github.com/taigrr/meshview/pkg/render"
)

// fakeBackend replays batches of signals, one per Poll, then reports no input.
type fakeBackend struct {
	batches  [][]Signal
	fb       *render.Framebuffer
	presents int
	closed   bool
	status   Status

	presentErr error
	onPresent  func(n int)
}

func newFakeBackend(batches ...[]Signal) *fakeBackend {
	return &fakeBackend{batches: batches, fb: render.NewFramebuffer(64, 48)}
}

func (f *fakeBackend) Poll() []Signal {
	if len(f.batches) == 0 {
		return nil
	}
	b := f.batches[0]
	f.batches = f.batches[1:]
	return b
}

func (f *fakeBackend) Canvas() render.Canvas { return f.fb }

func (f *fakeBackend) SetStatus(s Status) { f.status = s }

func (f *fakeBackend) Present() error {
	f.presents++
	if f.onPresent != nil {
		f.onPresent(f.presents)
	}
	return f.presentErr
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.FPS = 1000
	cfg.Zoom = 10
	return cfg
}

func newTestViewer(t *testing.T, cfg Config) *Viewer {
	t.Helper()
	scene, err := render.NewSceneWithLights(64, 48, math3d.V3(0, 0, 1), math3d.V3(1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	scene.Zoom = cfg.Zoom
	v, err := New(models.NewCube(), scene, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return v
}

func assertVerticesNear(t *testing.T, got, want []math3d.Vec3, eps float64) {
	t.Helper()
	for i := range want {
		if got[i].Distance(want[i]) > eps {
			t.Fatalf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyRotation(t *testing.T) {
	tests := []struct {
		sig   Signal
		axis  models.Axis
		angle float64
	}{
		{RotateLeft, models.AxisY, RotationStep},
		{RotateRight, models.AxisY, -RotationStep},
		{RotateUp, models.AxisX, RotationStep},
		{RotateDown, models.AxisX, -RotationStep},
		{RollCounterClockwise, models.AxisZ, RotationStep},
		{RollClockwise, models.AxisZ, -RotationStep},
	}

	for _, tc := range tests {
		t.Run(tc.sig.String(), func(t *testing.T) {
			v := newTestViewer(t, testConfig())
			want := models.NewCube()
			want.Rotate(tc.axis, tc.angle)

			v.Apply(tc.sig)

			assertVerticesNear(t, v.Mesh().Vertices, want.Vertices, 0)
			if v.State() != Running {
				t.Errorf("State = %v, want running", v.State())
			}
		})
	}
}

func TestApplySceneSignals(t *testing.T) {
	v := newTestViewer(t, testConfig())
	s := v.Scene()

	v.Apply(ZoomIn)
	if math.Abs(s.Zoom-11) > 1e-9 {
		t.Errorf("Zoom after ZoomIn = %v, want 11", s.Zoom)
	}
	v.Apply(ZoomOut)
	if math.Abs(s.Zoom-10) > 1e-9 {
		t.Errorf("Zoom after ZoomOut = %v, want 10", s.Zoom)
	}

	v.Apply(ToggleMode)
	if s.Mode != render.ModeWireframe {
		t.Errorf("Mode = %v, want wireframe", s.Mode)
	}
	v.Apply(ToggleCulling)
	if !s.CullBackfaces {
		t.Error("ToggleCulling did not enable culling")
	}
	hud := v.Status().ShowHUD
	v.Apply(ToggleHUD)
	if v.Status().ShowHUD == hud {
		t.Error("ToggleHUD did not flip the HUD")
	}
}

func TestStepDrainsThenRenders(t *testing.T) {
	v := newTestViewer(t, testConfig())
	fb := render.NewFramebuffer(64, 48)

	if !v.Step([]Signal{ZoomIn, ZoomIn, RotateLeft}, fb) {
		t.Fatal("Step reported no frame while running")
	}
	if math.Abs(v.Scene().Zoom-12.1) > 1e-9 {
		t.Errorf("Zoom = %v, want both zooms applied before the frame", v.Scene().Zoom)
	}
	if got := v.Status().Stats.Drawn; got != 12 {
		t.Errorf("frame drew %d faces, want 12", got)
	}
	if got := fb.GetPixel(0, 0); got != v.Scene().Background {
		t.Errorf("background pixel = %v, want %v", got, v.Scene().Background)
	}
}

func TestStepQuit(t *testing.T) {
	v := newTestViewer(t, testConfig())
	fb := render.NewFramebuffer(64, 48)

	if v.Step([]Signal{RotateLeft, Quit, ZoomIn}, fb) {
		t.Error("Step rendered after Quit")
	}
	if v.State() != Stopped {
		t.Fatalf("State = %v, want stopped", v.State())
	}
	for i, p := range fb.Pixels {
		if p != (render.Color{}) {
			t.Fatalf("pixel %d drawn after Quit", i)
		}
	}
	if v.Scene().Zoom != 10 {
		t.Errorf("signal after Quit applied: zoom = %v", v.Scene().Zoom)
	}

	want := models.NewCube()
	want.Rotate(models.AxisY, RotationStep)
	assertVerticesNear(t, v.Mesh().Vertices, want.Vertices, 0)
}

func TestReset(t *testing.T) {
	v := newTestViewer(t, testConfig())
	for _, sig := range []Signal{RotateLeft, RotateUp, RollClockwise, ZoomIn, ZoomIn} {
		v.Apply(sig)
	}
	v.Apply(Reset)

	assertVerticesNear(t, v.Mesh().Vertices, models.NewCube().Vertices, 0)
	if v.Scene().Zoom != 10 {
		t.Errorf("Zoom after Reset = %v, want 10", v.Scene().Zoom)
	}
}

func TestSmoothRotationConverges(t *testing.T) {
	cfg := testConfig()
	cfg.FPS = 60
	cfg.Smooth = true
	v := newTestViewer(t, cfg)
	fb := render.NewFramebuffer(64, 48)

	v.Step([]Signal{RotateLeft, RotateLeft, RotateLeft}, fb)
	if v.Mesh().Vertices[0] == models.NewCube().Vertices[0] {
		t.Fatal("first smooth frame applied no rotation")
	}

	for i := 0; !v.motion.settled(); i++ {
		if i > 600 {
			t.Fatal("smooth rotation did not settle within 600 frames")
		}
		v.Step(nil, fb)
	}

	want := models.NewCube()
	want.Rotate(models.AxisY, 3*RotationStep)
	assertVerticesNear(t, v.Mesh().Vertices, want.Vertices, 1e-9)
}

func TestResizeRecentres(t *testing.T) {
	v := newTestViewer(t, testConfig())

	v.Step(nil, render.NewFramebuffer(100, 100))
	if v.Scene().Center != (render.Point{X: 50, Y: 50}) {
		t.Errorf("Center = %v", v.Scene().Center)
	}
	v.Step(nil, render.NewFramebuffer(200, 50))
	if v.Scene().Center != (render.Point{X: 100, Y: 25}) {
		t.Errorf("Center after resize = %v", v.Scene().Center)
	}
	if v.Scene().Zoom != 10 {
		t.Errorf("configured zoom changed on resize: %v", v.Scene().Zoom)
	}
}

func TestAutoFitZoom(t *testing.T) {
	cfg := testConfig()
	cfg.Zoom = 0
	v := newTestViewer(t, cfg)

	v.Step(nil, render.NewFramebuffer(100, 60))
	want := FitZoom(models.NewCube(), 100, 60)
	if math.Abs(v.Scene().Zoom-want) > 1e-9 {
		t.Fatalf("Zoom = %v, want fitted %v", v.Scene().Zoom, want)
	}

	v.Apply(ZoomIn)
	v.Apply(Reset)
	if math.Abs(v.Scene().Zoom-want) > 1e-9 {
		t.Errorf("Reset zoom = %v, want fitted %v", v.Scene().Zoom, want)
	}
}

func TestFitZoom(t *testing.T) {
	cube := models.NewCube()
	z := FitZoom(cube, 200, 100)
	// Bounding sphere diameter 2*sqrt(3)*z spans 90% of the 100px side.
	if got := 2 * math.Sqrt(3) * z; math.Abs(got-90) > 1e-9 {
		t.Errorf("fitted diameter = %v, want 90", got)
	}
	if got := FitZoom(models.NewMesh("empty"), 200, 100); got != render.DefaultZoom {
		t.Errorf("empty mesh zoom = %v, want default", got)
	}
}

func TestFitZoomLargeMesh(t *testing.T) {
	big := models.NewCube()
	big.Transform(math3d.ScaleUniform(1000))

	z := FitZoom(big, 100, 60)
	if z >= render.MinZoom {
		t.Fatalf("FitZoom = %v, want below MinZoom for a 1000-unit cube", z)
	}

	scene, err := render.NewSceneWithLights(100, 60, math3d.V3(0, 0, 1), math3d.V3(1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.Zoom = 0
	v, err := New(big, scene, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v.Step(nil, render.NewFramebuffer(100, 60))
	if got := v.Scene().Zoom; got != render.MinZoom {
		t.Errorf("Zoom = %v, want floor %v", got, render.MinZoom)
	}
}

func TestRunQuits(t *testing.T) {
	v := newTestViewer(t, testConfig())
	b := newFakeBackend([]Signal{RotateLeft}, []Signal{ZoomIn}, []Signal{Quit})

	if err := v.Run(context.Background(), b); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.presents != 2 {
		t.Errorf("presented %d frames, want 2", b.presents)
	}
	if !b.closed {
		t.Error("backend not closed")
	}
	if b.status.Faces != 12 || b.status.Name != "Cube" {
		t.Errorf("status = %+v", b.status)
	}
}

func TestRunContextCancel(t *testing.T) {
	v := newTestViewer(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newFakeBackend()
	b.onPresent = func(n int) {
		if n == 3 {
			cancel()
		}
	}

	if err := v.Run(ctx, b); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.presents != 3 || !b.closed {
		t.Errorf("presents = %d, closed = %v", b.presents, b.closed)
	}
}

func TestRunPresentError(t *testing.T) {
	v := newTestViewer(t, testConfig())
	b := newFakeBackend()
	b.presentErr = errors.New("display gone")

	err := v.Run(context.Background(), b)
	if err == nil || !errors.Is(err, b.presentErr) {
		t.Fatalf("Run error = %v, want wrapped present error", err)
	}
	if !b.closed {
		t.Error("backend not closed after error")
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	scene, _ := render.NewSceneWithLights(10, 10, math3d.V3(0, 0, 1), math3d.V3(0, 1, 0))

	cfg := testConfig()
	cfg.FPS = 0
	if _, err := New(models.NewCube(), scene, cfg); err == nil {
		t.Error("expected error for zero FPS")
	}

	bad := models.NewCube()
	bad.Faces[0].V[0] = 99
	if _, err := New(bad, scene, testConfig()); !errors.Is(err, models.ErrIndexOutOfRange) {
		t.Errorf("New error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestConfigNewScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Wireframe = true
	cfg.Cull = true
	cfg.Zoom = 55

	a, err := cfg.NewScene(80, 40)
	if err != nil {
		t.Fatal(err)
	}
	b, err := cfg.NewScene(80, 40)
	if err != nil {
		t.Fatal(err)
	}

	if a.Light1 != b.Light1 || a.Light2 != b.Light2 {
		t.Error("same seed gave different lights")
	}
	if a.Mode != render.ModeWireframe || !a.CullBackfaces || a.Zoom != 55 {
		t.Errorf("scene = %+v, want config applied", a)
	}
	if a.Background != cfg.Background {
		t.Errorf("Background = %v, want %v", a.Background, cfg.Background)
	}
}
