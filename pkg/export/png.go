package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/chazu/voxl/pkg/analyze"
)

// WriteSlicePNG renders a slice as a grayscale PNG: filled cells white,
// empty cells black. The image's x axis is the slice's first in-plane
// axis and y grows downward with the second, so row u of the image is
// in-plane row u of the slice.
func WriteSlicePNG(w io.Writer, s *analyze.Slice) error {
	side := s.Side()
	img := image.NewGray(image.Rect(0, 0, side, side))
	for u := 0; u < side; u++ {
		for v := 0; v < side; v++ {
			if s.At(u, v) {
				img.SetGray(v, u, color.Gray{Y: 255})
			}
		}
	}
	return png.Encode(w, img)
}
