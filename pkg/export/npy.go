package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/voxl/pkg/voxel"
)

// npyHeaderLen is the fixed total header size: 6-byte magic, 2-byte
// version, 2-byte length field and 118 bytes of dict + padding. 118 leaves
// room for any resolution the grid allows and keeps the data section
// 64-byte aligned.
const npyHeaderLen = 118

// WriteNPY writes the grid occupancy as a NumPy .npy (format 1.0) boolean
// array of shape (R,R,R) in C order, matching grid index order (i,j,k).
func WriteNPY(w io.Writer, g *voxel.Grid) error {
	bw := bufio.NewWriter(w)

	r := g.Resolution()
	header := fmt.Sprintf("{'descr': '|b1', 'fortran_order': False, 'shape': (%d, %d, %d), }", r, r, r)
	if _, err := bw.WriteString("\x93NUMPY\x01\x00"); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(npyHeaderLen)); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(npyHeaderLen >> 8)); err != nil {
		return err
	}
	for len(header) < npyHeaderLen-1 {
		header += " "
	}
	header += "\n"
	if _, err := bw.WriteString(header); err != nil {
		return err
	}

	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			for k := 0; k < r; k++ {
				b := byte(0)
				if g.At(i, j, k) {
					b = 1
				}
				if err := bw.WriteByte(b); err != nil {
					return err
				}
			}
		}
	}
	return bw.Flush()
}
