package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Binary STL layout: 80-byte header, uint32 triangle count, then per
// triangle a float32 normal, three float32 vertices and a uint16
// attribute, 50 bytes each.
const (
	binaryHeaderLen   = 80
	binaryTriangleLen = 50
)

// Decode parses STL bytes, auto-detecting the encoding. Files that begin
// with "solid" and contain a "facet" keyword are treated as ASCII;
// everything else is treated as binary. Use DecodeBinary or DecodeASCII
// when the caller already knows the encoding.
func Decode(data []byte) (*Model, error) {
	if looksASCII(data) {
		return DecodeASCII(data)
	}
	return DecodeBinary(data)
}

// looksASCII reports whether the bytes resemble an ASCII STL file. The
// "solid" prefix alone is not enough: some binary files abuse it in their
// comment header, so the facet keyword must appear as well.
func looksASCII(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(trimmed, []byte("solid")) && bytes.Contains(head, []byte("facet"))
}

// DecodeBinary parses a binary STL file. Shared vertices are merged so
// that the resulting Model carries an indexed triangle list.
func DecodeBinary(data []byte) (*Model, error) {
	if len(data) < binaryHeaderLen+4 {
		return nil, &ParseError{Reason: fmt.Sprintf("binary header truncated: %d bytes", len(data))}
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderLen:])
	body := data[binaryHeaderLen+4:]
	need := int64(count) * binaryTriangleLen
	if int64(len(body)) < need {
		return nil, &ParseError{
			Reason: fmt.Sprintf("truncated: %d triangles declared, body holds %d bytes of %d", count, len(body), need),
		}
	}

	d := newDeduper()
	for i := 0; i < int(count); i++ {
		tri := body[i*binaryTriangleLen:]
		var idx [3]int
		for v := 0; v < 3; v++ {
			// Skip the 12-byte normal; it is recomputed on encode.
			const vertOff = 12
			var p [3]float32
			for c := 0; c < 3; c++ {
				bits := binary.LittleEndian.Uint32(tri[vertOff+12*v+4*c:])
				p[c] = math.Float32frombits(bits)
			}
			idx[v] = d.add(p)
		}
		d.triangles = append(d.triangles, idx)
	}
	return d.build()
}

// DecodeASCII parses an ASCII STL file.
func DecodeASCII(data []byte) (*Model, error) {
	d := newDeduper()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	line := 0
	var tri [3]int
	vertInFacet := 0
	inFacet := false

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid", "endsolid", "outer", "endloop":
			// Structural keywords carry no geometry.
		case "facet":
			if inFacet {
				return nil, &ParseError{Line: line, Reason: "facet without preceding endfacet"}
			}
			inFacet = true
			vertInFacet = 0
		case "endfacet":
			if !inFacet {
				return nil, &ParseError{Line: line, Reason: "endfacet without facet"}
			}
			if vertInFacet != 3 {
				return nil, &ParseError{Line: line, Reason: fmt.Sprintf("facet has %d vertices, want 3", vertInFacet)}
			}
			d.triangles = append(d.triangles, tri)
			inFacet = false
		case "vertex":
			if !inFacet {
				return nil, &ParseError{Line: line, Reason: "vertex outside facet"}
			}
			if vertInFacet >= 3 {
				return nil, &ParseError{Line: line, Reason: "more than 3 vertices in facet"}
			}
			if len(fields) != 4 {
				return nil, &ParseError{Line: line, Reason: fmt.Sprintf("vertex has %d coordinates, want 3", len(fields)-1)}
			}
			var p [3]float32
			for c := 0; c < 3; c++ {
				f, err := strconv.ParseFloat(fields[c+1], 32)
				if err != nil {
					return nil, &ParseError{Line: line, Reason: fmt.Sprintf("bad coordinate %q", fields[c+1])}
				}
				p[c] = float32(f)
			}
			tri[vertInFacet] = d.add(p)
			vertInFacet++
		default:
			return nil, &ParseError{Line: line, Reason: fmt.Sprintf("unexpected token %q", fields[0])}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if inFacet {
		return nil, &ParseError{Line: line, Reason: "unterminated facet"}
	}
	return d.build()
}

// deduper accumulates triangles while merging identical vertices, so STL's
// vertex-per-facet representation becomes an indexed mesh.
type deduper struct {
	lookup    map[[3]float32]int
	vertices  []v3.Vec
	triangles [][3]int
}

func newDeduper() *deduper {
	return &deduper{lookup: make(map[[3]float32]int)}
}

func (d *deduper) add(p [3]float32) int {
	if i, ok := d.lookup[p]; ok {
		return i
	}
	i := len(d.vertices)
	d.lookup[p] = i
	d.vertices = append(d.vertices, v3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
	return i
}

func (d *deduper) build() (*Model, error) {
	return New(d.vertices, d.triangles)
}

// EncodeSTL writes the model as binary STL. Facet normals are recomputed
// from the triangle winding.
func (m *Model) EncodeSTL(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var header [binaryHeaderLen]byte
	copy(header[:], "voxl binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return err
	}

	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
		if l := n.Length(); l > 0 {
			n = n.DivScalar(l)
		}
		rec := [12]float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(t[0].X), float32(t[0].Y), float32(t[0].Z),
			float32(t[1].X), float32(t[1].Y), float32(t[1].Z),
			float32(t[2].X), float32(t[2].Y), float32(t[2].Z),
		}
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
