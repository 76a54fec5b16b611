package primitive

import (
	"context"
	"testing"

	"github.com/chazu/voxl/pkg/voxel"
)

func TestBoxBounds(t *testing.T) {
	m, err := Box(10, 10, 10)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	if m.TriangleCount() == 0 {
		t.Fatal("box mesh has no triangles")
	}
	min, max := m.Bounds()
	// Marching cubes lands vertices within a cell of the exact surface.
	tol := 10.0 / meshCells * 2
	for _, d := range []float64{min.X, min.Y, min.Z} {
		if d < -5-tol || d > -5+tol {
			t.Errorf("min bound %g, want near -5", d)
		}
	}
	for _, d := range []float64{max.X, max.Y, max.Z} {
		if d < 5-tol || d > 5+tol {
			t.Errorf("max bound %g, want near 5", d)
		}
	}
}

func TestSphereVoxelizes(t *testing.T) {
	m, err := Sphere(4)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	g, err := voxel.Voxelize(context.Background(), m, 24, voxel.FillSolid)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	ratio := float64(g.FilledCount()) / float64(g.TotalCount())
	// A sphere fills pi/6 of its bounding cube.
	if ratio < 0.35 || ratio > 0.7 {
		t.Errorf("fill ratio %g, implausible for a sphere", ratio)
	}
}

func TestCylinderSolidContainsSurface(t *testing.T) {
	m, err := Cylinder(6, 2)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	solid, err := voxel.Voxelize(context.Background(), m, 20, voxel.FillSolid)
	if err != nil {
		t.Fatalf("Voxelize(solid): %v", err)
	}
	surface, err := voxel.Voxelize(context.Background(), m, 20, voxel.FillSurface)
	if err != nil {
		t.Fatalf("Voxelize(surface): %v", err)
	}
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			for k := 0; k < 20; k++ {
				if surface.At(i, j, k) && !solid.At(i, j, k) {
					t.Fatalf("surface cell (%d,%d,%d) missing from solid fill", i, j, k)
				}
			}
		}
	}
}
