package session

import (
	"bytes"
	"context"
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/mesh"
	"github.com/chazu/voxl/pkg/voxel"
)

func cubeModel(t *testing.T) *mesh.Model {
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
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func TestVoxelizeWithoutMesh(t *testing.T) {
	s := New()
	g, err := s.Voxelize(context.Background(), 10, voxel.FillSolid)
	if !errors.Is(err, ErrNoMesh) {
		t.Fatalf("got %v, want ErrNoMesh", err)
	}
	if g != nil {
		t.Error("returned a grid with no mesh loaded")
	}
}

func TestLoadMeshAndVoxelize(t *testing.T) {
	s := New()
	var buf bytes.Buffer
	if err := cubeModel(t).EncodeSTL(&buf); err != nil {
		t.Fatalf("EncodeSTL: %v", err)
	}
	m, err := s.LoadMesh(buf.Bytes())
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", m.TriangleCount())
	}
	if s.Mesh() != m {
		t.Error("Mesh() does not return the loaded model")
	}

	g, err := s.Voxelize(context.Background(), 10, voxel.FillSolid)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	if g.FilledCount() != 1000 {
		t.Errorf("FilledCount = %d, want 1000", g.FilledCount())
	}
	if s.Grid() != g {
		t.Error("Grid() does not return the installed grid")
	}
}

func TestLoadMeshFailureLeavesSessionIntact(t *testing.T) {
	s := New()
	s.SetMesh(cubeModel(t))
	if _, err := s.Voxelize(context.Background(), 10, voxel.FillSolid); err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	prev := s.Grid()

	if _, err := s.LoadMesh([]byte("not an stl")); err == nil {
		t.Fatal("LoadMesh accepted garbage")
	}
	if s.Grid() != prev {
		t.Error("failed load replaced the current grid")
	}
	if s.Mesh() == nil {
		t.Error("failed load dropped the current mesh")
	}
}

func TestFailedBuildKeepsPreviousGrid(t *testing.T) {
	s := New()
	s.SetMesh(cubeModel(t))
	prev, err := s.Voxelize(context.Background(), 10, voxel.FillSolid)
	if err != nil {
		t.Fatalf("Voxelize: %v", err)
	}

	_, err = s.Voxelize(context.Background(), 5000, voxel.FillSolid)
	var rerr *voxel.ResolutionError
	if !errors.As(err, &rerr) {
		t.Fatalf("got %v, want ResolutionError", err)
	}
	if s.Grid() != prev {
		t.Error("failed build replaced the previous grid")
	}
}

func TestSetMeshDropsGrid(t *testing.T) {
	s := New()
	s.SetMesh(cubeModel(t))
	if _, err := s.Voxelize(context.Background(), 10, voxel.FillSolid); err != nil {
		t.Fatalf("Voxelize: %v", err)
	}
	s.SetMesh(cubeModel(t))
	if s.Grid() != nil {
		t.Error("SetMesh left a grid from the previous mesh installed")
	}
}

func TestCanceledBuildReportsCause(t *testing.T) {
	s := New()
	s.SetMesh(cubeModel(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Voxelize(ctx, 50, voxel.FillSolid)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled in the chain", err)
	}
	if s.Grid() != nil {
		t.Error("canceled build installed a grid")
	}
}
