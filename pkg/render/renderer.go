package render

import (
	"slices"

	"github.com/taigrr/meshview/pkg/models"
)

// Stats counts what happened to the faces of the last frame.
type Stats struct {
	Drawn      int
	Degenerate int
	Culled     int
}

// Renderer draws meshes with the painter's algorithm: faces are sorted by
// ascending depth and painted back to front, with no depth buffer. The sort
// runs over an index slice reused between frames, so the mesh's own face
// order is never changed.
type Renderer struct {
	Stats Stats

	order  []int
	depths []float64
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Order returns the face indices of mesh in painting order. The slice is
// owned by the renderer and overwritten by the next call.
func (r *Renderer) Order(mesh *models.Mesh) []int {
	r.order = r.order[:0]
	r.depths = r.depths[:0]
	for i := range mesh.Faces {
		r.order = append(r.order, i)
		r.depths = append(r.depths, Depth(mesh.Faces[i], mesh.Vertices))
	}

	depths := r.depths
	slices.SortStableFunc(r.order, func(a, b int) int {
		switch {
		case depths[a] < depths[b]:
			return -1
		case depths[a] > depths[b]:
			return 1
		}
		return 0
	})
	return r.order
}

// RenderFrame clears c to the scene background and paints every face of mesh.
func (r *Renderer) RenderFrame(c Canvas, mesh *models.Mesh, s *Scene) {
	r.Stats = Stats{}
	c.Clear(s.Background)

	for _, i := range r.Order(mesh) {
		if s.CullBackfaces && mesh.FaceNormal(i).Z < 0 {
			r.Stats.Culled++
			continue
		}
		if DrawFace(c, mesh.Faces[i], mesh.Vertices, s) {
			r.Stats.Drawn++
		} else {
			r.Stats.Degenerate++
		}
	}
}
