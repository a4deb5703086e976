package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/meshview/pkg/math3d"
)

// ErrPolygonFace is returned for faces with more than three vertices when
// triangulation is not enabled.
var ErrPolygonFace = errors.New("polygon face (more than 3 vertices)")

// OBJOptions controls how Wavefront OBJ files are read.
type OBJOptions struct {
	// Triangulate splits polygon faces into a triangle fan instead of
	// rejecting them.
	Triangulate bool
}

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string, opts OBJOptions) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	return ParseOBJ(f, filepath.Base(path), opts)
}

// ParseOBJ reads vertex (v) and face (f) records. Face indices are 1-based in
// the file and may carry /vt/vn fields, which are dropped. The whole input must
// parse and every face must reference an existing vertex, otherwise no mesh is
// returned.
func ParseOBJ(r io.Reader, name string, opts OBJOptions) (*Mesh, error) {
	mesh := NewMesh(name)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			faces, err := parseFace(fields[1:], opts)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			mesh.Faces = append(mesh.Faces, faces...)
		case "o":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()

	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var xyz [3]float64
	for i := range 3 {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("vertex coordinate %q: %w", fields[i], err)
		}
		xyz[i] = f
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), nil
}

func parseFace(fields []string, opts OBJOptions) ([]Face, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("face needs 3 indices, got %d", len(fields))
	}
	if len(fields) > 3 && !opts.Triangulate {
		return nil, fmt.Errorf("%d indices: %w", len(fields), ErrPolygonFace)
	}

	idx := make([]int, len(fields))
	for i, tok := range fields {
		pos, _, _ := strings.Cut(tok, "/")
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("face index %q: %w", tok, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("face index %d: %w", n, ErrIndexOutOfRange)
		}
		idx[i] = n - 1
	}

	faces := make([]Face, 0, len(idx)-2)
	for i := 1; i+1 < len(idx); i++ {
		faces = append(faces, Face{V: [3]int{idx[0], idx[i], idx[i+1]}})
	}
	return faces, nil
}
