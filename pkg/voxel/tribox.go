package voxel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// triBoxOverlap reports whether a triangle intersects an axis-aligned box,
// using the separating axis theorem: 3 box face normals, the triangle
// normal, and the 9 cross products of box and triangle edges. Touching
// counts as overlap, so a face lying exactly on a cell boundary marks the
// cell it touches.
func triBoxOverlap(tri [3]v3.Vec, boxMin, boxMax v3.Vec) bool {
	center := boxMin.Add(boxMax).MulScalar(0.5)
	half := boxMax.Sub(boxMin).MulScalar(0.5)

	// A vertex lying exactly on a box face can round to a few ulps outside
	// the exact half extent, turning a touch into a miss. Grow the box by
	// the same sliver the column buckets use so coplanar geometry stays in.
	eps := (half.X + half.Y + half.Z) * 1e-9
	half = half.Add(v3.Vec{X: eps, Y: eps, Z: eps})

	// Move the box to the origin.
	v0 := tri[0].Sub(center)
	v1 := tri[1].Sub(center)
	v2 := tri[2].Sub(center)

	// Box face normals: compare per-axis extents directly.
	if min3(v0.X, v1.X, v2.X) > half.X || max3(v0.X, v1.X, v2.X) < -half.X {
		return false
	}
	if min3(v0.Y, v1.Y, v2.Y) > half.Y || max3(v0.Y, v1.Y, v2.Y) < -half.Y {
		return false
	}
	if min3(v0.Z, v1.Z, v2.Z) > half.Z || max3(v0.Z, v1.Z, v2.Z) < -half.Z {
		return false
	}

	e0 := v1.Sub(v0)
	e1 := v2.Sub(v1)
	e2 := v0.Sub(v2)

	// Triangle plane.
	normal := e0.Cross(e1)
	if separatedOnAxis(normal, v0, v1, v2, half) {
		return false
	}

	// Cross products of box axes with triangle edges.
	axes := [3]v3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	for _, box := range axes {
		for _, edge := range [3]v3.Vec{e0, e1, e2} {
			axis := box.Cross(edge)
			if axis.Length2() < 1e-12 {
				continue // edge parallel to the box axis
			}
			if separatedOnAxis(axis, v0, v1, v2, half) {
				return false
			}
		}
	}
	return true
}

// separatedOnAxis projects the triangle and the origin-centered box onto
// axis and reports whether the projections are disjoint.
func separatedOnAxis(axis, v0, v1, v2, half v3.Vec) bool {
	p0 := v0.Dot(axis)
	p1 := v1.Dot(axis)
	p2 := v2.Dot(axis)
	rad := half.X*math.Abs(axis.X) + half.Y*math.Abs(axis.Y) + half.Z*math.Abs(axis.Z)
	return min3(p0, p1, p2) > rad || max3(p0, p1, p2) < -rad
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
