package analyze

import (
	"fmt"

	"github.com/chazu/voxl/pkg/voxel"
)

// Slice is a 2D occupancy plane extracted from a grid at a fixed index
// along one axis. The two in-plane axes keep the grid's axis order: an X
// slice is indexed (j,k), a Y slice (i,k), a Z slice (i,j). A Slice is a
// copied view; the source grid is never retained or mutated.
type Slice struct {
	axis  voxel.Axis
	index int
	side  int
	cells []bool // flat, u*side+v
}

// IndexError reports a slice request outside the grid, naming the axis and
// the valid range. The grid itself remains valid.
type IndexError struct {
	Axis  voxel.Axis
	Index int
	Limit int // valid indices are [0, Limit)
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("slice index %d out of range for axis %s: valid range [0,%d)", e.Index, e.Axis, e.Limit)
}

// ExtractSlice returns the occupancy plane of g at the given index along
// axis. Fails with an IndexError if index is outside [0, resolution).
func ExtractSlice(g *voxel.Grid, axis voxel.Axis, index int) (*Slice, error) {
	r := g.Resolution()
	if index < 0 || index >= r {
		return nil, &IndexError{Axis: axis, Index: index, Limit: r}
	}

	s := &Slice{axis: axis, index: index, side: r, cells: make([]bool, r*r)}
	for u := 0; u < r; u++ {
		for v := 0; v < r; v++ {
			var filled bool
			switch axis {
			case voxel.AxisX:
				filled = g.At(index, u, v)
			case voxel.AxisY:
				filled = g.At(u, index, v)
			case voxel.AxisZ:
				filled = g.At(u, v, index)
			}
			s.cells[u*r+v] = filled
		}
	}
	return s, nil
}

// Axis returns the axis the slice was taken along.
func (s *Slice) Axis() voxel.Axis { return s.axis }

// Index returns the grid index the slice was taken at.
func (s *Slice) Index() int { return s.index }

// Side returns the slice's edge length in cells (the grid resolution).
func (s *Slice) Side() int { return s.side }

// At reports whether in-plane cell (u,v) is filled.
func (s *Slice) At(u, v int) bool { return s.cells[u*s.side+v] }

// FilledCount returns the number of filled cells in the plane.
func (s *Slice) FilledCount() int {
	n := 0
	for _, c := range s.cells {
		if c {
			n++
		}
	}
	return n
}
