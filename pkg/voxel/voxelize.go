package voxel

import (
	"context"
	"runtime"
	"sort"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/mesh"
)

// Ray tilt applied to every parity ray for the whole voxelization pass.
// A ray cast exactly along +X through a column center can graze shared
// triangle edges (e.g. the diagonal of a quad split at y==z), flipping
// parity. The tilt moves the ray off such degeneracies while staying far
// below the voxel pitch; using two different constants avoids trading one
// symmetry plane for another.
const (
	rayTiltY = 1.0e-8
	rayTiltZ = 2.3e-8
)

// Voxelizer converts meshes into occupancy grids. The zero value is ready
// to use. Workers sets the size of the column worker pool; values <= 0 use
// GOMAXPROCS.
type Voxelizer struct {
	Workers int
}

// Voxelize builds an occupancy grid with a default Voxelizer.
func Voxelize(ctx context.Context, m *mesh.Model, resolution int, mode FillMode) (*Grid, error) {
	var v Voxelizer
	return v.Voxelize(ctx, m, resolution, mode)
}

// Voxelize builds a dense cubic occupancy grid for the mesh at the given
// resolution. The result is fully determined by (mesh, resolution, mode):
// repeated calls produce bit-identical grids. On context cancellation the
// partial grid is discarded and a CanceledError is returned.
//
// FillSurface marks every cell whose box intersects a mesh triangle.
// FillSolid additionally marks every cell whose center lies inside the
// mesh volume, decided by an even-odd parity ray test along +X.
func (v *Voxelizer) Voxelize(ctx context.Context, m *mesh.Model, resolution int, mode FillMode) (*Grid, error) {
	if resolution < MinResolution || resolution > MaxResolution {
		return nil, &ResolutionError{Resolution: resolution}
	}

	min, max := m.Bounds()
	size := max.Sub(min)
	side := max3(size.X, size.Y, size.Z)
	pitch := side / float64(resolution)

	// Center the mesh within the cube: on axes shorter than the longest
	// extent the origin shifts below the bounding-box minimum by half the
	// slack, keeping voxels cubic instead of stretching them.
	cube := v3.Vec{X: side, Y: side, Z: side}
	origin := size.Sub(cube).MulScalar(0.5).Add(min)

	grid := newGrid(resolution, origin, pitch, mode)
	index := buildColumnIndex(m, resolution, origin, pitch)

	workers := v.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	columns := resolution * resolution
	if workers > columns {
		workers = columns
	}

	// Columns are split into contiguous slabs, one goroutine per slab.
	// Every cell belongs to exactly one column, so workers write disjoint
	// grid cells and no locking is needed.
	counts := make([]int, workers)
	var wg sync.WaitGroup
	chunk := (columns + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > columns {
			end = columns
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var xs []float64
			for c := start; c < end; c++ {
				if ctx.Err() != nil {
					return
				}
				j := c / resolution
				k := c % resolution
				counts[w] += fillColumn(grid, index, mode, j, k, &xs)
			}
		}(w, start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, &CanceledError{Resolution: resolution, Cause: err}
	}

	for _, n := range counts {
		grid.filled += n
	}
	return grid, nil
}

// fillColumn marks the filled cells of grid column (j,k) and returns how
// many cells it marked. xs is a scratch buffer reused across columns.
func fillColumn(g *Grid, index *columnIndex, mode FillMode, j, k int, xs *[]float64) int {
	tris := index.column(j, k)
	if len(tris) == 0 && mode == FillSurface {
		return 0
	}

	r := g.resolution
	base := func(i int) int { return (i*r+j)*r + k }
	marked := 0

	// Surface pass: cells whose box intersects a local triangle.
	cellMin := v3.Vec{
		X: g.origin.X,
		Y: g.origin.Y + float64(j)*g.pitch,
		Z: g.origin.Z + float64(k)*g.pitch,
	}
	for _, t := range tris {
		lo, hi := index.xCellRange(t)
		for i := lo; i <= hi; i++ {
			if g.cells[base(i)] {
				continue
			}
			bmin := v3.Vec{X: cellMin.X + float64(i)*g.pitch, Y: cellMin.Y, Z: cellMin.Z}
			bmax := bmin.Add(v3.Vec{X: g.pitch, Y: g.pitch, Z: g.pitch})
			if triBoxOverlap(index.tris[t], bmin, bmax) {
				g.cells[base(i)] = true
				marked++
			}
		}
	}

	if mode != FillSolid || len(tris) == 0 {
		return marked
	}

	// Parity pass: cast one tilted ray through the column and mark cells
	// whose center sits behind an odd number of crossings.
	rayOrigin := v3.Vec{
		X: g.origin.X - g.pitch,
		Y: g.origin.Y + (float64(j)+0.5)*g.pitch,
		Z: g.origin.Z + (float64(k)+0.5)*g.pitch,
	}
	rayDir := v3.Vec{X: 1, Y: rayTiltY, Z: rayTiltZ}

	*xs = (*xs)[:0]
	for _, t := range tris {
		if x, ok := rayTriangle(rayOrigin, rayDir, index.tris[t]); ok {
			*xs = append(*xs, x)
		}
	}
	if len(*xs) == 0 {
		return marked
	}
	sort.Float64s(*xs)

	crossed := 0
	for i := 0; i < r; i++ {
		cx := float64(i) + 1.5 // center distance from rayOrigin.X in pitch units
		for crossed < len(*xs) && (*xs)[crossed] < cx*g.pitch {
			crossed++
		}
		if crossed%2 == 1 && !g.cells[base(i)] {
			g.cells[base(i)] = true
			marked++
		}
	}
	return marked
}

// rayTriangle intersects a ray with a triangle (Moller-Trumbore) and
// returns the hit distance along the ray. Triangles parallel to the ray
// are skipped; the global ray tilt keeps edge and vertex grazes off the
// exact boundary so each crossing is counted once.
func rayTriangle(origin, dir v3.Vec, tri [3]v3.Vec) (float64, bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -1e-13 && det < 1e-13 {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(tri[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	vv := dir.Dot(q) * inv
	if vv < 0 || u+vv > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= 0 {
		return 0, false
	}
	return t, true
}
