package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taigrr/meshview/pkg/models"
)

func newInfoCmd() *cobra.Command {
	var triangulate bool

	cmd := &cobra.Command{
		Use:   "info <model.obj|model.glb|model.gltf>",
		Short: "Display mesh information",
		Long:  "Display information about a mesh file including vertex and face counts, bounding box and degenerate faces.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0], triangulate)
		},
	}
	cmd.Flags().BoolVar(&triangulate, "triangulate", false, "Fan-triangulate OBJ polygon faces instead of rejecting them")

	return cmd
}

func runInfo(modelPath string, triangulate bool) error {
	info, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	mesh, err := models.Load(modelPath, models.OBJOptions{Triangulate: triangulate})
	if err != nil {
		return err
	}

	size := mesh.Size()
	center := mesh.Center()
	ext := filepath.Ext(modelPath)

	fmt.Printf("File:       %s\n", filepath.Base(modelPath))
	fmt.Printf("Name:       %s\n", mesh.Name)
	fmt.Printf("Format:     %s\n", strings.ToUpper(strings.TrimPrefix(ext, ".")))
	fmt.Printf("Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Println()
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Printf("Degenerate: %d\n", mesh.DegenerateFaces())
	fmt.Println()
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", mesh.BoundsMin.X, mesh.BoundsMin.Y, mesh.BoundsMin.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", mesh.BoundsMax.X, mesh.BoundsMax.Y, mesh.BoundsMax.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)

	return nil
}
