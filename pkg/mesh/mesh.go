// Package mesh provides the immutable in-memory triangle mesh model.
// A Model is constructed once, from STL bytes or from raw vertex and
// triangle data, and is read-only afterwards. The bounding box is computed
// at construction and cached.
package mesh

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/floats"
)

// Model is an immutable triangle mesh: a vertex list plus triangle index
// triples into it. All accessors are safe for concurrent use.
type Model struct {
	vertices  []v3.Vec
	triangles [][3]int
	min, max  v3.Vec
}

// New builds a Model from raw vertex and triangle data. Every triangle
// index must refer to a valid vertex. The mesh must have at least one
// triangle and a non-zero extent along every axis; otherwise a
// DegenerateError is returned. The slices are copied, so the caller may
// reuse its buffers.
func New(vertices []v3.Vec, triangles [][3]int) (*Model, error) {
	if len(triangles) == 0 {
		return nil, &DegenerateError{Axis: -1}
	}
	for ti, t := range triangles {
		for _, vi := range t {
			if vi < 0 || vi >= len(vertices) {
				return nil, &ParseError{
					Reason: fmt.Sprintf("triangle %d references vertex %d, mesh has %d vertices", ti, vi, len(vertices)),
				}
			}
		}
	}

	m := &Model{
		vertices:  append([]v3.Vec(nil), vertices...),
		triangles: append([][3]int(nil), triangles...),
	}
	m.computeBounds()

	size := m.max.Sub(m.min)
	for axis, extent := range [3]float64{size.X, size.Y, size.Z} {
		if extent <= 0 {
			return nil, &DegenerateError{Axis: axis}
		}
	}
	return m, nil
}

// computeBounds scans every vertex referenced by a triangle. Unreferenced
// vertices do not contribute to the bounding box.
func (m *Model) computeBounds() {
	first := true
	for _, t := range m.triangles {
		for _, vi := range t {
			v := m.vertices[vi]
			if first {
				m.min, m.max = v, v
				first = false
				continue
			}
			m.min = m.min.Min(v)
			m.max = m.max.Max(v)
		}
	}
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int { return len(m.vertices) }

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int { return len(m.triangles) }

// Vertex returns vertex i.
func (m *Model) Vertex(i int) v3.Vec { return m.vertices[i] }

// TriangleIndices returns the vertex index triple of triangle i.
func (m *Model) TriangleIndices(i int) [3]int { return m.triangles[i] }

// Triangle returns the resolved vertex positions of triangle i.
func (m *Model) Triangle(i int) [3]v3.Vec {
	t := m.triangles[i]
	return [3]v3.Vec{m.vertices[t[0]], m.vertices[t[1]], m.vertices[t[2]]}
}

// Bounds returns the cached axis-aligned bounding box.
func (m *Model) Bounds() (min, max v3.Vec) { return m.min, m.max }

// Volume approximates the enclosed volume by summing signed tetrahedron
// volumes against the origin. The result is exact for a closed, consistently
// oriented mesh; for non-watertight input it is a best-effort approximation,
// never an error.
func (m *Model) Volume() float64 {
	signed := make([]float64, len(m.triangles))
	for i := range m.triangles {
		t := m.Triangle(i)
		signed[i] = t[0].Dot(t[1].Cross(t[2])) / 6.0
	}
	v := floats.Sum(signed)
	if v < 0 {
		v = -v
	}
	return v
}

// SurfaceArea returns the sum of all triangle areas.
func (m *Model) SurfaceArea() float64 {
	areas := make([]float64, len(m.triangles))
	for i := range m.triangles {
		t := m.Triangle(i)
		cross := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
		areas[i] = cross.Length() / 2.0
	}
	return floats.Sum(areas)
}
