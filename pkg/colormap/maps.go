// Package colormap assigns display colors to filled voxels. A coloring is
// the composition of a Strategy, which maps each filled cell to a scalar
// in [0,1], and a Map, which turns the scalar into an RGB color through a
// fixed anchor table. Maps form a closed enumeration: adding one means
// adding a constant and a table entry, never runtime registration.
package colormap

import (
	"fmt"
	"image/color"
	"strings"
)

// Map identifies one of the built-in colormaps.
type Map int

// The built-in colormaps, matching the palette names the viewer offers.
const (
	Viridis Map = iota
	Plasma
	Inferno
	Magma
	Cividis
	Turbo
	Rainbow
	Jet
	Hot
	Cool
	Spring
	Summer
	Autumn
	Winter
	Spectral
	RdYlBu
	RdBu
	PiYG
	BrBG
	RdGy
	PuOr
	Sunset
	Sunsetdark
	Oryel
	Peach
	Pinkyl
	Mint
	BluGrn
	Darkmint
	Electric
	Plotly3
	Deep
	Dense
	Haline
	Ice
	Thermal

	numMaps // keep last
)

var mapNames = [numMaps]string{
	"Viridis", "Plasma", "Inferno", "Magma", "Cividis",
	"Turbo", "Rainbow", "Jet", "Hot", "Cool", "Spring", "Summer",
	"Autumn", "Winter", "Spectral", "RdYlBu", "RdBu", "PiYG",
	"BrBG", "RdGy", "PuOr", "Sunset", "Sunsetdark", "Oryel",
	"Peach", "Pinkyl", "Mint", "BluGrn", "Darkmint", "Electric",
	"Plotly3", "Deep", "Dense", "Haline", "Ice", "Thermal",
}

type rgb [3]uint8

// mapAnchors holds the anchor colors of each map, evenly spaced over
// [0,1]. Lookup interpolates linearly between adjacent anchors.
var mapAnchors = [numMaps][]rgb{
	Viridis:    {{68, 1, 84}, {59, 82, 139}, {33, 145, 140}, {94, 201, 98}, {253, 231, 37}},
	Plasma:     {{13, 8, 135}, {126, 3, 168}, {204, 71, 120}, {248, 149, 64}, {240, 249, 33}},
	Inferno:    {{0, 0, 4}, {87, 16, 110}, {188, 55, 84}, {249, 142, 9}, {252, 255, 164}},
	Magma:      {{0, 0, 4}, {81, 18, 124}, {183, 55, 121}, {254, 136, 97}, {252, 253, 191}},
	Cividis:    {{0, 32, 76}, {73, 74, 109}, {124, 123, 120}, {187, 173, 108}, {255, 234, 70}},
	Turbo:      {{48, 18, 59}, {62, 156, 254}, {164, 252, 80}, {249, 129, 37}, {122, 4, 3}},
	Rainbow:    {{150, 0, 90}, {0, 0, 200}, {0, 152, 255}, {44, 255, 150}, {255, 234, 0}, {255, 0, 0}},
	Jet:        {{0, 0, 131}, {0, 60, 170}, {5, 255, 255}, {255, 255, 0}, {250, 0, 0}, {128, 0, 0}},
	Hot:        {{0, 0, 0}, {230, 0, 0}, {255, 210, 0}, {255, 255, 255}},
	Cool:       {{0, 255, 255}, {255, 0, 255}},
	Spring:     {{255, 0, 255}, {255, 255, 0}},
	Summer:     {{0, 128, 102}, {255, 255, 102}},
	Autumn:     {{255, 0, 0}, {255, 255, 0}},
	Winter:     {{0, 0, 255}, {0, 255, 128}},
	Spectral:   {{158, 1, 66}, {244, 109, 67}, {255, 255, 191}, {102, 194, 165}, {94, 79, 162}},
	RdYlBu:     {{165, 0, 38}, {253, 174, 97}, {255, 255, 191}, {116, 173, 209}, {49, 54, 149}},
	RdBu:       {{103, 0, 31}, {214, 96, 77}, {247, 247, 247}, {67, 147, 195}, {5, 48, 97}},
	PiYG:       {{142, 1, 82}, {233, 163, 201}, {247, 247, 247}, {161, 215, 106}, {39, 100, 25}},
	BrBG:       {{84, 48, 5}, {223, 194, 125}, {245, 245, 245}, {128, 205, 193}, {0, 60, 48}},
	RdGy:       {{103, 0, 31}, {214, 96, 77}, {255, 255, 255}, {135, 135, 135}, {26, 26, 26}},
	PuOr:       {{127, 59, 8}, {253, 184, 99}, {247, 247, 247}, {178, 171, 210}, {45, 0, 75}},
	Sunset:     {{243, 231, 155}, {250, 196, 132}, {248, 160, 126}, {235, 127, 134}, {220, 66, 146}},
	Sunsetdark: {{252, 222, 156}, {250, 164, 118}, {240, 116, 110}, {227, 79, 111}, {125, 13, 94}},
	Oryel:      {{255, 247, 188}, {254, 196, 79}, {236, 112, 20}},
	Peach:      {{253, 224, 197}, {250, 138, 80}, {236, 60, 33}},
	Pinkyl:     {{254, 237, 222}, {250, 159, 181}, {199, 1, 98}},
	Mint:       {{228, 241, 225}, {106, 188, 160}, {13, 93, 95}},
	BluGrn:     {{212, 241, 212}, {101, 191, 165}, {38, 100, 90}},
	Darkmint:   {{210, 230, 215}, {85, 156, 158}, {18, 63, 90}},
	Electric:   {{0, 0, 0}, {30, 0, 100}, {120, 0, 180}, {220, 90, 130}, {255, 180, 130}, {255, 250, 220}},
	Plotly3:    {{5, 0, 57}, {83, 30, 170}, {177, 42, 160}, {240, 97, 104}, {252, 185, 90}, {240, 249, 33}},
	Deep:       {{253, 253, 204}, {106, 168, 180}, {69, 83, 131}, {39, 26, 57}},
	Dense:      {{230, 240, 240}, {131, 158, 201}, {122, 70, 142}, {54, 14, 36}},
	Haline:     {{41, 24, 107}, {18, 95, 142}, {56, 164, 145}, {170, 217, 98}, {253, 238, 153}},
	Ice:        {{3, 5, 18}, {60, 74, 126}, {120, 148, 185}, {219, 240, 249}},
	Thermal:    {{3, 35, 51}, {66, 57, 141}, {172, 77, 124}, {245, 133, 66}, {232, 250, 91}},
}

func (m Map) String() string {
	if m < 0 || m >= numMaps {
		return fmt.Sprintf("Map(%d)", int(m))
	}
	return mapNames[m]
}

// Maps returns every built-in colormap in declaration order.
func Maps() []Map {
	all := make([]Map, numMaps)
	for i := range all {
		all[i] = Map(i)
	}
	return all
}

// Names returns the names of every built-in colormap.
func Names() []string {
	return append([]string(nil), mapNames[:]...)
}

// Parse resolves a colormap by name, case-insensitively.
func Parse(name string) (Map, error) {
	for i, n := range mapNames {
		if strings.EqualFold(n, name) {
			return Map(i), nil
		}
	}
	return 0, fmt.Errorf("unknown colormap %q: want one of %s", name, strings.Join(mapNames[:], ", "))
}

// Lookup maps a scalar in [0,1] to a display color by linear interpolation
// between the map's anchors. Values outside [0,1] are clamped; a Map value
// outside the enumeration falls back to Viridis.
func (m Map) Lookup(t float64) color.RGBA {
	if m < 0 || m >= numMaps {
		m = Viridis
	}
	anchors := mapAnchors[m]
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(anchors)-1)
	i := int(pos)
	if i >= len(anchors)-1 {
		last := anchors[len(anchors)-1]
		return color.RGBA{R: last[0], G: last[1], B: last[2], A: 255}
	}
	frac := pos - float64(i)
	a, b := anchors[i], anchors[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*frac + 0.5)
	}
	return color.RGBA{R: lerp(a[0], b[0]), G: lerp(a[1], b[1]), B: lerp(a[2], b[2]), A: 255}
}
