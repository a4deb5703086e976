package render

import (
	"math"
	"testing"

	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/taigrr/meshview/pkg/models"
)

// xyTriangle lies in the z=0 plane with normal +z.
var (
	xyVertices = []math3d.Vec3{{}, {X: 1}, {Y: 1}}
	xyFace     = models.Face{V: [3]int{0, 1, 2}}
)

func TestDepth(t *testing.T) {
	verts := []math3d.Vec3{{Z: 1}, {Z: 2}, {Z: 6}, {Z: -3}}
	tests := []struct {
		face models.Face
		want float64
	}{
		{models.Face{V: [3]int{0, 1, 2}}, 3},
		{models.Face{V: [3]int{0, 1, 3}}, 0},
		{models.Face{V: [3]int{2, 1, 0}}, 3},
	}
	for _, tc := range tests {
		if got := Depth(tc.face, verts); got != tc.want {
			t.Errorf("Depth(%v) = %v, want %v", tc.face.V, got, tc.want)
		}
	}
}

func TestShadingCoefficient(t *testing.T) {
	tests := []struct {
		name  string
		light math3d.Vec3
		want  float64
	}{
		{"parallel", math3d.V3(0, 0, 1), 2},
		{"anti-parallel", math3d.V3(0, 0, -1), 0},
		{"orthogonal x", math3d.V3(1, 0, 0), 1},
		{"orthogonal y", math3d.V3(0, 1, 0), 1},
		{"oblique", math3d.V3(0, 1, 1).Normalize(), 1 + math.Sqrt2/2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k, ok := ShadingCoefficient(xyFace, xyVertices, tc.light)
			if !ok {
				t.Fatal("triangle reported degenerate")
			}
			if math.Abs(k-tc.want) > 1e-12 {
				t.Errorf("coefficient = %v, want %v", k, tc.want)
			}
		})
	}
}

func TestShadingCoefficientWinding(t *testing.T) {
	flipped := models.Face{V: [3]int{0, 2, 1}}
	k, _ := ShadingCoefficient(flipped, xyVertices, math3d.V3(0, 0, 1))
	if math.Abs(k) > 1e-12 {
		t.Errorf("reversed winding coefficient = %v, want 0", k)
	}
}

func TestShadingCoefficientDegenerate(t *testing.T) {
	verts := []math3d.Vec3{{}, {X: 1}, {X: 2}}
	if _, ok := ShadingCoefficient(xyFace, verts, math3d.V3(0, 0, 1)); ok {
		t.Error("collinear triangle should report !ok")
	}
}

func TestShadeColor(t *testing.T) {
	tests := []struct {
		name   string
		l1, l2 math3d.Vec3
		want   Color
	}{
		// k1 = 2, k2 = 0: red channel 256 clamps to 255.
		{"front and back", math3d.V3(0, 0, 1), math3d.V3(0, 0, -1), RGB(255, 128, 0)},
		// k1 = k2 = 2: every channel overflows but blue.
		{"both lights on normal", math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), RGB(255, 255, 128)},
		{"both lights edge-on", math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), RGB(128, 128, 64)},
		{"both lights behind", math3d.V3(0, 0, -1), math3d.V3(0, 0, -1), RGB(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSceneWithLights(10, 10, tc.l1, tc.l2)
			if err != nil {
				t.Fatal(err)
			}
			got, ok := ShadeColor(xyFace, xyVertices, s)
			if !ok {
				t.Fatal("ShadeColor reported degenerate")
			}
			if got != tc.want {
				t.Errorf("ShadeColor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDrawFace(t *testing.T) {
	s := newTestScene(t)
	s.Zoom = 20
	s.Center = Point{}
	verts := []math3d.Vec3{{X: 0.1, Y: 0.1}, {X: 1.9, Y: 0.1}, {X: 0.1, Y: 1.9}}

	fb := NewFramebuffer(40, 40)
	if !DrawFace(fb, xyFace, verts, s) {
		t.Fatal("DrawFace skipped a valid face")
	}
	want, _ := ShadeColor(xyFace, verts, s)
	if got := fb.GetPixel(10, 10); got != want {
		t.Errorf("shaded interior pixel = %v, want %v", got, want)
	}

	s.Mode = ModeWireframe
	s.Foreground = RGB(1, 2, 3)
	fb = NewFramebuffer(40, 40)
	DrawFace(fb, xyFace, verts, s)
	if got := fb.GetPixel(10, 10); got == s.Foreground {
		t.Error("wireframe filled the interior")
	}
	if got := fb.GetPixel(20, 2); got != s.Foreground {
		t.Errorf("wireframe edge pixel = %v, want %v", got, s.Foreground)
	}
}

func TestDrawFaceDegenerate(t *testing.T) {
	s := newTestScene(t)
	verts := []math3d.Vec3{{}, {X: 0.1}, {X: 0.2}}
	fb := NewFramebuffer(100, 80)
	if DrawFace(fb, xyFace, verts, s) {
		t.Error("degenerate face should be skipped in shaded mode")
	}
}
