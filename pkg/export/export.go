// Package export converts grid contents into forms consumed by external
// serializers and renderers: an ordered world-coordinate list of filled
// cells, a NumPy .npy dense array, delimited coordinate tables and slice
// images.
package export

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/voxel"
)

// FilledCoordinates returns the world coordinate of every filled cell's
// center, in lexicographic (i,j,k) order. Grid origin and pitch convert
// indices to world positions, so a coordinate maps back to its cell by
// flooring (coord - origin) / pitch.
func FilledCoordinates(g *voxel.Grid) []v3.Vec {
	r := g.Resolution()
	out := make([]v3.Vec, 0, g.FilledCount())
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			for k := 0; k < r; k++ {
				if g.At(i, j, k) {
					out = append(out, g.CellCenter(i, j, k))
				}
			}
		}
	}
	return out
}
