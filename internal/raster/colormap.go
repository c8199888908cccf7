package raster

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"
	"strings"
)

// Colormap maps t in [0, 1] onto evenly spaced colour stops.
type Colormap struct {
	Name  string
	stops []color.NRGBA
}

// At returns the colour for t. NaN maps to the first stop.
func (c Colormap) At(t float64) color.NRGBA {
	if len(c.stops) == 0 {
		return color.NRGBA{A: 255}
	}
	if t <= 0 || math.IsNaN(t) {
		return c.stops[0]
	}
	if t >= 1 {
		return c.stops[len(c.stops)-1]
	}
	idx := t * float64(len(c.stops)-1)
	lo := int(idx)
	hi := min(lo+1, len(c.stops)-1)
	return lerp(c.stops[lo], c.stops[hi], idx-float64(lo))
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + t*(float64(y)-float64(x)) + 0.5) }
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func (c Colormap) reversed(name string) Colormap {
	s := slices.Clone(c.stops)
	slices.Reverse(s)
	return Colormap{Name: name, stops: s}
}

var colormaps = map[string]Colormap{}

func register(c Colormap) { colormaps[c.Name] = c }

func init() {
	jet := Colormap{Name: "jet", stops: []color.NRGBA{
		{0, 0, 128, 255}, {0, 0, 255, 255}, {0, 128, 255, 255}, {0, 255, 255, 255},
		{128, 255, 128, 255}, {255, 255, 0, 255}, {255, 128, 0, 255}, {255, 0, 0, 255}, {128, 0, 0, 255},
	}}
	turbo := Colormap{Name: "turbo", stops: []color.NRGBA{
		{48, 18, 59, 255}, {70, 107, 227, 255}, {41, 187, 236, 255}, {49, 242, 153, 255},
		{162, 252, 60, 255}, {237, 208, 58, 255}, {251, 128, 34, 255}, {210, 49, 5, 255}, {122, 4, 3, 255},
	}}
	viridis := Colormap{Name: "viridis", stops: []color.NRGBA{
		{68, 1, 84, 255}, {72, 35, 116, 255}, {64, 67, 135, 255}, {52, 94, 141, 255},
		{41, 120, 142, 255}, {32, 144, 140, 255}, {34, 167, 132, 255}, {68, 190, 112, 255},
		{121, 209, 81, 255}, {189, 222, 38, 255}, {253, 231, 37, 255},
	}}
	plasma := Colormap{Name: "plasma", stops: []color.NRGBA{
		{13, 8, 135, 255}, {75, 3, 161, 255}, {125, 3, 168, 255}, {168, 34, 150, 255},
		{203, 70, 121, 255}, {229, 107, 93, 255}, {248, 148, 65, 255}, {253, 195, 40, 255}, {240, 249, 33, 255},
	}}
	greys := Colormap{Name: "greys", stops: []color.NRGBA{{255, 255, 255, 255}, {0, 0, 0, 255}}}
	reds := Colormap{Name: "reds", stops: []color.NRGBA{
		{255, 245, 240, 255}, {252, 187, 161, 255}, {251, 106, 74, 255}, {203, 24, 29, 255}, {103, 0, 13, 255},
	}}
	blues := Colormap{Name: "blues", stops: []color.NRGBA{
		{247, 251, 255, 255}, {198, 219, 239, 255}, {107, 174, 214, 255}, {33, 113, 181, 255}, {8, 48, 107, 255},
	}}
	for _, c := range []Colormap{jet, turbo, viridis, plasma, greys, reds, blues} {
		register(c)
		register(c.reversed(c.Name + "_r"))
	}
}

// LookupColormap finds a colormap by case-insensitive name, e.g. "jet" or
// "Greys_r".
func LookupColormap(name string) (Colormap, error) {
	c, ok := colormaps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Colormap{}, fmt.Errorf("raster: unknown colormap %q", name)
	}
	return c, nil
}

// Colormaps lists the registered names.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
