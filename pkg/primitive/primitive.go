// Package primitive generates sample meshes from analytic solids using
// the sdfx geometry kernel. The solids are tessellated with marching cubes
// and handed back as ordinary mesh models, so the rest of the pipeline
// treats them exactly like decoded STL input. Useful for demos and for
// exercising the voxelizer without an STL file on hand.
package primitive

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/mesh"
)

// meshCells controls marching cubes tessellation resolution.
const meshCells = 64

// Box returns a tessellated box with the given edge lengths, centered at
// the origin.
func Box(x, y, z float64) (*mesh.Model, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("primitive box: %w", err)
	}
	return fromSolid(s)
}

// Sphere returns a tessellated sphere with the given radius, centered at
// the origin.
func Sphere(radius float64) (*mesh.Model, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("primitive sphere: %w", err)
	}
	return fromSolid(s)
}

// Cylinder returns a tessellated cylinder with the given height and
// radius, centered at the origin with its axis along Z.
func Cylinder(height, radius float64) (*mesh.Model, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("primitive cylinder: %w", err)
	}
	return fromSolid(s)
}

// fromSolid tessellates an SDF with marching cubes and indexes the
// resulting triangle soup into a Model, merging shared vertices.
func fromSolid(s sdf.SDF3) (*mesh.Model, error) {
	renderer := render.NewMarchingCubesUniform(meshCells)
	triangles := render.ToTriangles(s, renderer)

	lookup := make(map[[3]float64]int)
	var vertices []v3.Vec
	tris := make([][3]int, 0, len(triangles))

	for _, tri := range triangles {
		var idx [3]int
		for j := 0; j < 3; j++ {
			v := tri[j]
			key := [3]float64{v.X, v.Y, v.Z}
			i, ok := lookup[key]
			if !ok {
				i = len(vertices)
				lookup[key] = i
				vertices = append(vertices, v)
			}
			idx[j] = i
		}
		tris = append(tris, idx)
	}
	return mesh.New(vertices, tris)
}
