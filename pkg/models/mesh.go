// Package models provides mesh representation and loading for meshview.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/meshview/pkg/math3d"
)

// ErrIndexOutOfRange is returned when a face references a vertex that does not exist.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// Axis selects one of the three rotation axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Mesh is an indexed triangle mesh. Vertex positions are rotated in place; the
// face list is never rewritten once loaded.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle of 0-based indices into Mesh.Vertices. The winding
// V[0]→V[1]→V[2] decides which way its normal points.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// NewCube returns the unit cube with corners at (±1, ±1, ±1), triangulated into
// 12 outward-facing faces.
func NewCube() *Mesh {
	m := NewMesh("Cube")
	m.Vertices = []math3d.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: -1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: 1, Z: -1},
		{X: 1, Y: 1, Z: 1},
	}
	m.Faces = []Face{
		{V: [3]int{0, 1, 2}}, // x = -1
		{V: [3]int{3, 2, 1}},
		{V: [3]int{7, 2, 3}}, // y = +1
		{V: [3]int{7, 6, 2}},
		{V: [3]int{5, 4, 7}}, // x = +1
		{V: [3]int{7, 4, 6}},
		{V: [3]int{5, 1, 4}}, // y = -1
		{V: [3]int{1, 0, 4}},
		{V: [3]int{1, 5, 3}}, // z = +1
		{V: [3]int{7, 3, 5}},
		{V: [3]int{6, 4, 2}}, // z = -1
		{V: [3]int{0, 2, 4}},
	}
	m.CalculateBounds()
	return m
}

// Validate checks that every face index refers to an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d with %d vertices: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

// Rotate turns every vertex about axis by angle radians, in place.
func (m *Mesh) Rotate(axis Axis, angle float64) {
	switch axis {
	case AxisX:
		for i := range m.Vertices {
			m.Vertices[i] = m.Vertices[i].RotateX(angle)
		}
	case AxisY:
		for i := range m.Vertices {
			m.Vertices[i] = m.Vertices[i].RotateY(angle)
		}
	case AxisZ:
		for i := range m.Vertices {
			m.Vertices[i] = m.Vertices[i].RotateZ(angle)
		}
	}
}

// FaceNormal returns the unnormalized normal (b-a) × (c-a) of face i.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	a := m.Vertices[f.V[0]]
	edge1 := m.Vertices[f.V[1]].Sub(a)
	edge2 := m.Vertices[f.V[2]].Sub(a)
	return edge1.Cross(edge2)
}

// DegenerateFaces counts zero-area faces.
func (m *Mesh) DegenerateFaces() int {
	n := 0
	for i := range m.Faces {
		if m.FaceNormal(i).LenSq() == 0 {
			n++
		}
	}
	return n
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it so its largest dimension
// equals extent. Flat or empty meshes are only centered.
func (m *Mesh) Fit(extent float64) {
	m.CalculateBounds()
	transform := math3d.Translate(m.Center().Negate())
	if maxDim := m.Size().MaxComponent(); maxDim > 0 {
		transform = math3d.ScaleUniform(extent / maxDim).Mul(transform)
	}
	m.Transform(transform)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

func (m *Mesh) String() string {
	return fmt.Sprintf("%s: %d vertices, %d faces", m.Name, len(m.Vertices), len(m.Faces))
}
