package voxel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/mesh"
)

// columnIndex is the spatial acceleration structure for voxelization: a
// uniform bucket grid over the (Y,Z) plane, one bucket per grid column,
// holding the indices of every triangle whose bounding box overlaps that
// column. Both the parity ray test (which casts along +X through a column)
// and the surface overlap test (which additionally filters by X range)
// consult only the local bucket instead of the whole mesh. Memory is
// O(triangle count x average column span), independent of the dense grid.
type columnIndex struct {
	resolution int
	origin     v3.Vec
	pitch      float64
	buckets    [][]int32   // resolution*resolution buckets, index j*resolution+k
	boundsMin  []v3.Vec    // per-triangle bounding boxes
	boundsMax  []v3.Vec
	tris       [][3]v3.Vec // resolved triangle vertices
}

func buildColumnIndex(m *mesh.Model, resolution int, origin v3.Vec, pitch float64) *columnIndex {
	n := m.TriangleCount()
	idx := &columnIndex{
		resolution: resolution,
		origin:     origin,
		pitch:      pitch,
		buckets:    make([][]int32, resolution*resolution),
		boundsMin:  make([]v3.Vec, n),
		boundsMax:  make([]v3.Vec, n),
		tris:       make([][3]v3.Vec, n),
	}

	// Bounding boxes are grown by a sliver so triangles lying exactly on a
	// column boundary land in both adjacent buckets.
	eps := pitch * 1e-9

	for t := 0; t < n; t++ {
		tri := m.Triangle(t)
		idx.tris[t] = tri
		lo := tri[0].Min(tri[1]).Min(tri[2])
		hi := tri[0].Max(tri[1]).Max(tri[2])
		idx.boundsMin[t] = lo
		idx.boundsMax[t] = hi

		jlo := idx.clampCell(lo.Y-eps, origin.Y)
		jhi := idx.clampCell(hi.Y+eps, origin.Y)
		klo := idx.clampCell(lo.Z-eps, origin.Z)
		khi := idx.clampCell(hi.Z+eps, origin.Z)
		for j := jlo; j <= jhi; j++ {
			for k := klo; k <= khi; k++ {
				b := j*resolution + k
				idx.buckets[b] = append(idx.buckets[b], int32(t))
			}
		}
	}
	return idx
}

// clampCell maps a world coordinate to a cell index clamped to the grid.
func (idx *columnIndex) clampCell(w, origin float64) int {
	c := int(math.Floor((w - origin) / idx.pitch))
	if c < 0 {
		return 0
	}
	if c >= idx.resolution {
		return idx.resolution - 1
	}
	return c
}

// column returns the triangle indices whose bounding boxes overlap grid
// column (j,k).
func (idx *columnIndex) column(j, k int) []int32 {
	return idx.buckets[j*idx.resolution+k]
}

// xCellRange returns the clamped cell range spanned by triangle t along X.
func (idx *columnIndex) xCellRange(t int32) (lo, hi int) {
	eps := idx.pitch * 1e-9
	lo = idx.clampCell(idx.boundsMin[t].X-eps, idx.origin.X)
	hi = idx.clampCell(idx.boundsMax[t].X+eps, idx.origin.X)
	return lo, hi
}
