// Package voxel converts a triangle mesh into a dense cubic occupancy grid.
// The grid side length is the requested resolution; the voxel pitch is the
// largest bounding-box extent divided by the resolution, so the mesh always
// fits in the cube and voxels stay cubic. Meshes with unequal extents are
// centered within the cube rather than stretched.
package voxel

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Axis identifies one of the three grid axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts a user-supplied axis name ("x", "Y", ...) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q: want x, y or z", s)
	}
}

// FillMode selects which cells a voxelization marks as filled.
type FillMode int

const (
	// FillSolid marks boundary cells and all interior cells.
	FillSolid FillMode = iota
	// FillSurface marks only cells crossed by the mesh surface.
	FillSurface
)

func (m FillMode) String() string {
	switch m {
	case FillSolid:
		return "solid"
	case FillSurface:
		return "surface"
	default:
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
}

// ParseFillMode converts a user-supplied mode name to a FillMode.
func ParseFillMode(s string) (FillMode, error) {
	switch s {
	case "solid":
		return FillSolid, nil
	case "surface":
		return FillSurface, nil
	default:
		return 0, fmt.Errorf("unknown fill mode %q: want solid or surface", s)
	}
}

// Grid is a dense cubic occupancy grid. It is immutable once returned by
// Voxelize and safe for concurrent reads. Cell (i,j,k) covers the world
// box [origin + idx*pitch, origin + (idx+1)*pitch) per axis.
type Grid struct {
	resolution int
	pitch      float64
	origin     v3.Vec
	mode       FillMode
	cells      []bool // flat, C order: (i*R + j)*R + k
	filled     int
}

// Resolution returns the grid side length in cells.
func (g *Grid) Resolution() int { return g.resolution }

// Pitch returns the edge length of one cubic voxel.
func (g *Grid) Pitch() float64 { return g.pitch }

// Origin returns the world position of the grid's minimum corner.
func (g *Grid) Origin() v3.Vec { return g.origin }

// Mode returns the fill mode the grid was built with.
func (g *Grid) Mode() FillMode { return g.mode }

// TotalCount returns resolution cubed.
func (g *Grid) TotalCount() int {
	return g.resolution * g.resolution * g.resolution
}

// FilledCount returns the number of filled cells, counted at build time.
func (g *Grid) FilledCount() int { return g.filled }

// At reports whether cell (i,j,k) is filled.
func (g *Grid) At(i, j, k int) bool {
	return g.cells[(i*g.resolution+j)*g.resolution+k]
}

// CellCenter returns the world coordinate of the center of cell (i,j,k).
func (g *Grid) CellCenter(i, j, k int) v3.Vec {
	return v3.Vec{
		X: g.origin.X + (float64(i)+0.5)*g.pitch,
		Y: g.origin.Y + (float64(j)+0.5)*g.pitch,
		Z: g.origin.Z + (float64(k)+0.5)*g.pitch,
	}
}

// CellAt returns the grid cell containing the world point p. Indices are
// not clamped; callers must range-check them against Resolution.
func (g *Grid) CellAt(p v3.Vec) (i, j, k int) {
	i = int(math.Floor((p.X - g.origin.X) / g.pitch))
	j = int(math.Floor((p.Y - g.origin.Y) / g.pitch))
	k = int(math.Floor((p.Z - g.origin.Z) / g.pitch))
	return i, j, k
}

// Center returns the world coordinate of the grid cube's geometric center.
// This can differ from the mesh bounding-box center, since the mesh is
// re-centered inside the cube when its extents are unequal.
func (g *Grid) Center() v3.Vec {
	half := float64(g.resolution) * g.pitch / 2
	return v3.Vec{X: g.origin.X + half, Y: g.origin.Y + half, Z: g.origin.Z + half}
}

func newGrid(resolution int, origin v3.Vec, pitch float64, mode FillMode) *Grid {
	return &Grid{
		resolution: resolution,
		pitch:      pitch,
		origin:     origin,
		mode:       mode,
		cells:      make([]bool, resolution*resolution*resolution),
	}
}
