package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load reads a mesh file, choosing the loader from the file extension.
func Load(path string, opts OBJOptions) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		mesh *Mesh
		err  error
	)
	switch ext {
	case ".obj":
		mesh, err = LoadOBJ(path, opts)
	case ".glb", ".gltf":
		mesh, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%q (use .obj, .glb or .gltf): %w", ext, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return mesh, nil
}
