package render

import (
	"math"
)

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C of the edge
// (x0,y0)→(x1,y1). Its sign tells which side of the edge a point lies on.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// StrokePolygon draws the closed outline through pts.
func (fb *Framebuffer) StrokePolygon(pts []Point, c Color) {
	if len(pts) == 0 {
		return
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		a, b, ok := fb.clipLine(a, b)
		if !ok {
			continue
		}
		fb.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), c)
	}
}

// clipLine trims the segment a-b to a one-pixel margin around the
// framebuffer (Liang-Barsky), so far off-screen vertices cost nothing to draw.
func (fb *Framebuffer) clipLine(a, b Point) (Point, Point, bool) {
	xmin, ymin := -1.0, -1.0
	xmax, ymax := float64(fb.Width), float64(fb.Height)
	dx, dy := b.X-a.X, b.Y-a.Y

	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	if !clip(-dx, a.X-xmin) || !clip(dx, xmax-a.X) ||
		!clip(-dy, a.Y-ymin) || !clip(dy, ymax-a.Y) {
		return a, b, false
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return a, b, false
	}
	return Point{a.X + t0*dx, a.Y + t0*dy}, Point{a.X + t1*dx, a.Y + t1*dy}, true
}

// FillPolygon fills a convex polygon as a fan of triangles around pts[0].
func (fb *Framebuffer) FillPolygon(pts []Point, c Color) {
	for i := 1; i+1 < len(pts); i++ {
		fb.FillTriangle(pts[0], pts[i], pts[i+1], c)
	}
}

// FillTriangle fills the pixels whose centers fall inside the triangle. Either
// winding is accepted; zero-area triangles draw nothing.
func (fb *Framebuffer) FillTriangle(p0, p1, p2 Point, c Color) {
	area2 := (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
	if area2 == 0 || math.IsNaN(area2) {
		return
	}
	if area2 < 0 {
		// Flip to a consistent winding so inside means all edges >= 0.
		p1, p2 = p2, p1
	}

	// Bounding box, clamped to the screen before converting to int so huge
	// coordinates cannot overflow.
	x0 := math.Max(0, math.Floor(min3(p0.X, p1.X, p2.X)))
	x1 := math.Min(float64(fb.Width-1), math.Ceil(max3(p0.X, p1.X, p2.X)))
	y0 := math.Max(0, math.Floor(min3(p0.Y, p1.Y, p2.Y)))
	y1 := math.Min(float64(fb.Height-1), math.Ceil(max3(p0.Y, p1.Y, p2.Y)))
	if !(x0 <= x1 && y0 <= y1) {
		return
	}
	minX, maxX, minY, maxY := int(x0), int(x1), int(y0), int(y1)

	// Edge 0: p1 -> p2, Edge 1: p2 -> p0, Edge 2: p0 -> p1
	A0, B0, C0 := edgeCoeffs(p1.X, p1.Y, p2.X, p2.Y)
	A1, B1, C1 := edgeCoeffs(p2.X, p2.Y, p0.X, p0.Y)
	A2, B2, C2 := edgeCoeffs(p0.X, p0.Y, p1.X, p1.Y)

	// Evaluate edge functions at the first pixel center
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = c
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func round(v float64) int {
	return int(math.Round(v))
}
