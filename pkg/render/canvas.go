package render

// Point is a position in canvas pixel space, x right and y down.
type Point struct {
	X, Y float64
}

// Canvas is the drawing surface a frame is rendered onto. Framebuffer is the
// software implementation; window and terminal frontends present it.
type Canvas interface {
	// Size returns the canvas dimensions in pixels.
	Size() (width, height int)
	// Clear fills the whole canvas with c.
	Clear(c Color)
	// StrokePolygon draws the closed outline through pts.
	StrokePolygon(pts []Point, c Color)
	// FillPolygon fills the convex polygon through pts.
	FillPolygon(pts []Point, c Color)
}
