// Package analyze derives read-only statistics and cross-sectional slices
// from a voxel grid and its source mesh. Nothing in this package mutates
// the grid or the mesh; every result is recomputed on demand.
package analyze

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/mesh"
	"github.com/chazu/voxl/pkg/voxel"
)

// GridStats summarizes an occupancy grid.
type GridStats struct {
	Resolution  int
	Pitch       float64
	TotalCells  int
	FilledCells int
	FillRatio   float64 // FilledCells / TotalCells, in [0,1]
}

// GridStatistics computes summary statistics for a grid.
func GridStatistics(g *voxel.Grid) GridStats {
	total := g.TotalCount()
	filled := g.FilledCount()
	return GridStats{
		Resolution:  g.Resolution(),
		Pitch:       g.Pitch(),
		TotalCells:  total,
		FilledCells: filled,
		FillRatio:   float64(filled) / float64(total),
	}
}

// MeshStats summarizes a mesh model.
type MeshStats struct {
	Vertices    int
	Triangles   int
	Volume      float64 // approximate for non-watertight meshes
	SurfaceArea float64
	Min, Max    v3.Vec
}

// MeshStatistics computes summary statistics for a mesh.
func MeshStatistics(m *mesh.Model) MeshStats {
	min, max := m.Bounds()
	return MeshStats{
		Vertices:    m.VertexCount(),
		Triangles:   m.TriangleCount(),
		Volume:      m.Volume(),
		SurfaceArea: m.SurfaceArea(),
		Min:         min,
		Max:         max,
	}
}

// BoundingBoxInfo exposes the mesh bounding box for combined reporting.
func BoundingBoxInfo(m *mesh.Model) (min, max v3.Vec) {
	return m.Bounds()
}
