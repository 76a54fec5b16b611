package colormap

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/chazu/voxl/pkg/voxel"
)

// Entry is the color assigned to one filled cell.
type Entry struct {
	Cell   [3]int // grid index (i,j,k)
	Scalar float64
	Color  color.RGBA
}

// Assignment holds one Entry per filled cell, in lexicographic (i,j,k)
// order - the same order export.FilledCoordinates uses, so the two can be
// zipped by the renderer.
type Assignment []Entry

// Assign computes a color for every filled cell of the grid. The result
// is fully determined by (grid, strategy, map): coordinate and distance
// strategies are pure functions of the cell index, and the random strategy
// draws from a generator seeded with the strategy's explicit seed in cell
// order. Scalars of the coordinate and distance strategies are normalized
// to [0,1] over the grid's filled cells.
func Assign(g *voxel.Grid, s Strategy, m Map) Assignment {
	r := g.Resolution()
	center := (float64(r) - 1) / 2

	var rng *rand.Rand
	if s.kind == StrategyRandom {
		rng = rand.New(rand.NewSource(s.seed))
	}

	out := make(Assignment, 0, g.FilledCount())
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			for k := 0; k < r; k++ {
				if !g.At(i, j, k) {
					continue
				}
				var v float64
				switch s.kind {
				case StrategyCoordinate:
					switch s.axis {
					case voxel.AxisX:
						v = float64(i)
					case voxel.AxisY:
						v = float64(j)
					case voxel.AxisZ:
						v = float64(k)
					}
				case StrategyDistance:
					di, dj, dk := float64(i)-center, float64(j)-center, float64(k)-center
					v = math.Sqrt(di*di + dj*dj + dk*dk)
				case StrategyRadial:
					di, dj := float64(i)-center, float64(j)-center
					v = math.Sqrt(di*di + dj*dj)
				case StrategyRandom:
					v = rng.Float64()
				}
				out = append(out, Entry{Cell: [3]int{i, j, k}, Scalar: v})
			}
		}
	}

	// The random strategy already yields values in [0,1); the geometric
	// strategies are normalized over the observed range so the full
	// colormap span is used.
	if s.kind != StrategyRandom && len(out) > 0 {
		lo, hi := out[0].Scalar, out[0].Scalar
		for _, e := range out[1:] {
			lo = math.Min(lo, e.Scalar)
			hi = math.Max(hi, e.Scalar)
		}
		span := hi - lo
		for i := range out {
			if span > 0 {
				out[i].Scalar = (out[i].Scalar - lo) / span
			} else {
				out[i].Scalar = 0
			}
		}
	}

	for i := range out {
		out[i].Color = m.Lookup(out[i].Scalar)
	}
	return out
}
