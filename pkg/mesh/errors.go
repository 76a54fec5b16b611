package mesh

import "fmt"

// ParseError reports malformed or truncated mesh bytes. No partial Model
// is ever produced alongside a ParseError.
type ParseError struct {
	Line   int    // 1-based line for ASCII input, 0 for binary
	Reason string // what was wrong with the input
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("stl parse: line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("stl parse: %s", e.Reason)
}

// DegenerateError reports a mesh that parsed cleanly but has no usable
// spatial extent: either it contains no triangles at all, or its bounding
// box collapses to zero length along some axis. Voxelization requires a
// non-degenerate extent, so such meshes are rejected at construction.
type DegenerateError struct {
	Axis int // 0=X, 1=Y, 2=Z; -1 when the mesh has no triangles
}

func (e *DegenerateError) Error() string {
	if e.Axis < 0 {
		return "degenerate mesh: no triangles"
	}
	return fmt.Sprintf("degenerate mesh: zero extent along %c axis", "XYZ"[e.Axis])
}
