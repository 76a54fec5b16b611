// voxl converts STL meshes into dense voxel occupancy grids and derives
// slices, statistics, colors and exports from them.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error.
		os.Exit(1)
	}
}
