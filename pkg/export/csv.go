package export

import (
	"encoding/csv"
	"io"
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxl/pkg/colormap"
	"github.com/chazu/voxl/pkg/voxel"
)

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteCoordinateCSV writes an x,y,z table of filled-cell world
// coordinates, one row per voxel, in the order produced by
// FilledCoordinates.
func WriteCoordinateCSV(w io.Writer, coords []v3.Vec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for _, c := range coords {
		if err := cw.Write([]string{formatCoord(c.X), formatCoord(c.Y), formatCoord(c.Z)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteColorCSV writes the renderer feed: world coordinate, scalar and RGB
// per filled cell. The assignment must come from the same grid so the two
// sequences line up.
func WriteColorCSV(w io.Writer, g *voxel.Grid, asg colormap.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z", "scalar", "r", "g", "b"}); err != nil {
		return err
	}
	for _, e := range asg {
		p := g.CellCenter(e.Cell[0], e.Cell[1], e.Cell[2])
		row := []string{
			formatCoord(p.X), formatCoord(p.Y), formatCoord(p.Z),
			strconv.FormatFloat(e.Scalar, 'f', 6, 64),
			strconv.Itoa(int(e.Color.R)),
			strconv.Itoa(int(e.Color.G)),
			strconv.Itoa(int(e.Color.B)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
