package colormap

import (
	"fmt"

	"github.com/chazu/voxl/pkg/voxel"
)

// StrategyKind enumerates the ways a filled cell maps to a scalar.
type StrategyKind int

const (
	// StrategyCoordinate colors by the cell's index along one axis.
	StrategyCoordinate StrategyKind = iota
	// StrategyDistance colors by distance from the grid's geometric center.
	StrategyDistance
	// StrategyRadial colors by radial distance from the center in the XY plane.
	StrategyRadial
	// StrategyRandom colors by a seeded pseudo-random draw per cell.
	StrategyRandom
)

// Strategy is a closed tagged variant selecting a coloring rule. Construct
// one with ByCoordinate, DistanceFromCenter, RadialXY or Random.
type Strategy struct {
	kind StrategyKind
	axis voxel.Axis
	seed int64
}

// ByCoordinate colors cells by their grid index along the given axis.
func ByCoordinate(axis voxel.Axis) Strategy {
	return Strategy{kind: StrategyCoordinate, axis: axis}
}

// DistanceFromCenter colors cells by their distance from the grid's
// geometric center. The grid center is used, not the mesh bounding-box
// center: the two differ when the mesh was re-centered during cubing.
func DistanceFromCenter() Strategy {
	return Strategy{kind: StrategyDistance}
}

// RadialXY colors cells by their radial distance from the grid center in
// the XY plane.
func RadialXY() Strategy {
	return Strategy{kind: StrategyRadial}
}

// Random colors cells by a seeded pseudo-random value. The seed is
// explicit so the same seed reproduces the same coloring.
func Random(seed int64) Strategy {
	return Strategy{kind: StrategyRandom, seed: seed}
}

// Kind returns the strategy's variant tag.
func (s Strategy) Kind() StrategyKind { return s.kind }

func (s Strategy) String() string {
	switch s.kind {
	case StrategyCoordinate:
		return fmt.Sprintf("%s-coordinate", s.axis)
	case StrategyDistance:
		return "distance-from-center"
	case StrategyRadial:
		return "radial-xy"
	case StrategyRandom:
		return fmt.Sprintf("random(seed=%d)", s.seed)
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(s.kind))
	}
}

// ParseStrategy resolves a user-supplied strategy name. Axis names select
// ByCoordinate; "distance", "radial" and "random" select the others. The
// seed applies only to "random".
func ParseStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case "x", "y", "z", "X", "Y", "Z":
		axis, err := voxel.ParseAxis(name)
		if err != nil {
			return Strategy{}, err
		}
		return ByCoordinate(axis), nil
	case "distance":
		return DistanceFromCenter(), nil
	case "radial":
		return RadialXY(), nil
	case "random":
		return Random(seed), nil
	default:
		return Strategy{}, fmt.Errorf("unknown color strategy %q: want x, y, z, distance, radial or random", name)
	}
}
