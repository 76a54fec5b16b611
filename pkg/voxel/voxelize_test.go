package voxel

import (
	"context"
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/mesh"
)

// unitCube returns a unit cube mesh: side 1, minimum corner at the origin,
// 8 vertices, 12 triangles.
func unitCube(t *testing.T) *mesh.Model {
	t.Helper()
	vertices := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	triangles := [][3]int{
		{0, 2, 1}, {0, 3, 2},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{2, 3, 7}, {2, 7, 6},
		{0, 4, 7}, {0, 7, 3},
		{1, 2, 6}, {1, 6, 5},
	}
	m, err := mesh.New(vertices, triangles)
	if err != nil {
		t.Fatalf("mesh.New(cube): %v", err)
	}
	return m
}

// octahedron returns a regular octahedron with unit circumradius: a convex
// closed mesh with no axis-aligned faces.
func octahedron(t *testing.T) *mesh.Model {
	t.Helper()
	vertices := []v3.Vec{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	triangles := [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
	m, err := mesh.New(vertices, triangles)
	if err != nil {
		t.Fatalf("mesh.New(octahedron): %v", err)
	}
	return m
}

func TestResolutionBounds(t *testing.T) {
	cube := unitCube(t)
	tests := []struct {
		resolution int
		ok         bool
	}{
		{9, false},
		{10, true},
		{200, true},
		{201, false},
	}
	for _, tt := range tests {
		g, err := Voxelize(context.Background(), cube, tt.resolution, FillSurface)
		if tt.ok {
			if err != nil {
				t.Errorf("Voxelize(res=%d): %v", tt.resolution, err)
			}
			continue
		}
		var rerr *ResolutionError
		if !errors.As(err, &rerr) {
			t.Errorf("Voxelize(res=%d): got %v, want ResolutionError", tt.resolution, err)
		}
		if g != nil {
			t.Errorf("Voxelize(res=%d): returned a grid alongside the error", tt.resolution)
		}
	}
}

func TestUnitCubeSolidFillsGrid(t *testing.T) {
	g, err := Voxelize(context.Background(), unitCube(t), 10, FillSolid)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	if got := g.FilledCount(); got != 1000 {
		t.Errorf("FilledCount = %d, want 1000", got)
	}
	if got := g.TotalCount(); got != 1000 {
		t.Errorf("TotalCount = %d, want 1000", got)
	}
	if g.Pitch() != 0.1 {
		t.Errorf("Pitch = %g, want 0.1", g.Pitch())
	}
}

func TestUnitCubeSurfaceMarksBoundaryCells(t *testing.T) {
	g, err := Voxelize(context.Background(), unitCube(t), 10, FillSurface)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	// The cube's faces pass through exactly the outermost cell layer:
	// 10^3 - 8^3 boundary cells.
	if got := g.FilledCount(); got != 488 {
		t.Errorf("FilledCount = %d, want 488", got)
	}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			for k := 0; k < 10; k++ {
				boundary := i == 0 || i == 9 || j == 0 || j == 9 || k == 0 || k == 9
				if g.At(i, j, k) != boundary {
					t.Fatalf("cell (%d,%d,%d): filled = %v, want %v", i, j, k, g.At(i, j, k), boundary)
				}
			}
		}
	}
}

func TestVoxelizeDeterministic(t *testing.T) {
	oct := octahedron(t)
	for _, mode := range []FillMode{FillSolid, FillSurface} {
		v1 := Voxelizer{Workers: 1}
		v4 := Voxelizer{Workers: 4}
		a, err := v1.Voxelize(context.Background(), oct, 33, mode)
		if err != nil {
			t.Fatalf("Voxelize(%s): %v", mode, err)
		}
		b, err := v4.Voxelize(context.Background(), oct, 33, mode)
		if err != nil {
			t.Fatalf("Voxelize(%s): %v", mode, err)
		}
		if a.FilledCount() != b.FilledCount() {
			t.Fatalf("%s: filled counts differ: %d vs %d", mode, a.FilledCount(), b.FilledCount())
		}
		for i := 0; i < 33; i++ {
			for j := 0; j < 33; j++ {
				for k := 0; k < 33; k++ {
					if a.At(i, j, k) != b.At(i, j, k) {
						t.Fatalf("%s: grids differ at (%d,%d,%d)", mode, i, j, k)
					}
				}
			}
		}
	}
}

func TestSolidContainsSurface(t *testing.T) {
	oct := octahedron(t)
	solid, err := Voxelize(context.Background(), oct, 24, FillSolid)
	if err != nil {
		t.Fatalf("Voxelize(solid): %v", err)
	}
	surface, err := Voxelize(context.Background(), oct, 24, FillSurface)
	if err != nil {
		t.Fatalf("Voxelize(surface): %v", err)
	}
	if solid.FilledCount() < surface.FilledCount() {
		t.Errorf("solid count %d < surface count %d", solid.FilledCount(), surface.FilledCount())
	}
	for i := 0; i < 24; i++ {
		for j := 0; j < 24; j++ {
			for k := 0; k < 24; k++ {
				if surface.At(i, j, k) && !solid.At(i, j, k) {
					t.Fatalf("surface cell (%d,%d,%d) missing from solid fill", i, j, k)
				}
			}
		}
	}
}

func TestVoxelizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, err := Voxelize(ctx, octahedron(t), 64, FillSolid)
	var cerr *CanceledError
	if !errors.As(err, &cerr) {
		t.Fatalf("got %v, want CanceledError", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CanceledError does not unwrap to context.Canceled: %v", err)
	}
	if g != nil {
		t.Errorf("canceled voxelization returned a partial grid")
	}
}

func TestCubingCentersShortAxes(t *testing.T) {
	// A 1 x 1 x 2 box: Z is the longest extent, so X and Y gain half the
	// slack below their bounding-box minimum.
	vertices := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 2}, {X: 1, Y: 0, Z: 2}, {X: 1, Y: 1, Z: 2}, {X: 0, Y: 1, Z: 2},
	}
	triangles := [][3]int{
		{0, 2, 1}, {0, 3, 2},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{2, 3, 7}, {2, 7, 6},
		{0, 4, 7}, {0, 7, 3},
		{1, 2, 6}, {1, 6, 5},
	}
	m, err := mesh.New(vertices, triangles)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}

	g, err := Voxelize(context.Background(), m, 10, FillSolid)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	if g.Pitch() != 0.2 {
		t.Errorf("Pitch = %g, want 0.2", g.Pitch())
	}
	origin := g.Origin()
	if origin.X != -0.5 || origin.Y != -0.5 || origin.Z != 0 {
		t.Errorf("Origin = %v, want (-0.5,-0.5,0)", origin)
	}
	// The mesh occupies the central 5 cells on X and Y and all 10 on Z.
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			for k := 0; k < 10; k++ {
				inside := i >= 2 && i <= 7 && j >= 2 && j <= 7
				if g.At(i, j, k) && !inside {
					t.Fatalf("cell (%d,%d,%d) filled outside the centered mesh", i, j, k)
				}
			}
		}
	}
}

func TestCellRoundTrip(t *testing.T) {
	g, err := Voxelize(context.Background(), octahedron(t), 16, FillSolid)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			for k := 0; k < 16; k++ {
				if !g.At(i, j, k) {
					continue
				}
				ri, rj, rk := g.CellAt(g.CellCenter(i, j, k))
				if ri != i || rj != j || rk != k {
					t.Fatalf("round trip (%d,%d,%d) -> (%d,%d,%d)", i, j, k, ri, rj, rk)
				}
			}
		}
	}
}
