package render

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/taigrr/meshview/pkg/models"
)

// Depth returns the mean z of the face's vertices, the painter's sort key.
// The viewer sits on the +z side, so ascending depth paints back to front.
func Depth(f models.Face, vertices []math3d.Vec3) float64 {
	return (vertices[f.V[0]].Z + vertices[f.V[1]].Z + vertices[f.V[2]].Z) / 3
}

// ScreenPolygon projects the face's vertices in winding order.
func ScreenPolygon(f models.Face, vertices []math3d.Vec3, s *Scene) [3]Point {
	return [3]Point{
		s.Project(vertices[f.V[0]]),
		s.Project(vertices[f.V[1]]),
		s.Project(vertices[f.V[2]]),
	}
}

// faceNormal returns (b-a) × (c-a). Swapping the edges flips the sign.
func faceNormal(f models.Face, vertices []math3d.Vec3) math3d.Vec3 {
	a := vertices[f.V[0]]
	return vertices[f.V[1]].Sub(a).Cross(vertices[f.V[2]].Sub(a))
}

// ShadingCoefficient returns dot(n, light)/|n| + 1 for the face normal n, a
// value in [0, 2]: 2 when n points along light, 0 when it points against it.
// ok is false for zero-area faces, which have no normal.
func ShadingCoefficient(f models.Face, vertices []math3d.Vec3, light math3d.Vec3) (k float64, ok bool) {
	n := faceNormal(f, vertices)
	l := n.Len()
	if l == 0 || math.IsNaN(l) {
		return 0, false
	}
	return n.Dot(light)/l + 1, true
}

// ShadeColor mixes the two light coefficients into a fill colour: red follows
// light 1, blue light 2, green both.
func ShadeColor(f models.Face, vertices []math3d.Vec3, s *Scene) (Color, bool) {
	k1, ok := ShadingCoefficient(f, vertices, s.Light1)
	if !ok {
		return Color{}, false
	}
	k2, _ := ShadingCoefficient(f, vertices, s.Light2)

	lc1 := int(math.Floor(64 * k1))
	lc2 := int(math.Floor(64 * k2))
	return RGB(clampChannel(2*lc1), clampChannel(lc1+lc2), clampChannel(lc2)), true
}

// DrawFace draws one face onto c in the scene's mode. It reports false when
// the face was skipped as degenerate.
func DrawFace(c Canvas, f models.Face, vertices []math3d.Vec3, s *Scene) bool {
	poly := ScreenPolygon(f, vertices, s)

	switch s.Mode {
	case ModeWireframe:
		c.StrokePolygon(poly[:], s.Foreground)
	default:
		col, ok := ShadeColor(f, vertices, s)
		if !ok {
			return false
		}
		c.FillPolygon(poly[:], col)
	}
	return true
}
