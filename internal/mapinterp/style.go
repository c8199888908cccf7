package mapinterp

import (
	"fmt"
	"image/color"
	"strings"
)

// Style groups the look of a rendering. It travels inside Config; there is
// no process-wide style.
type Style struct {
	Name       string `validate:"oneof=default retro"`
	Background color.NRGBA
	Outline    color.NRGBA
	Cmap       string
	Padding    int `validate:"gte=0,lte=1000"`
}

func DefaultStyle() Style {
	return Style{
		Name:       "default",
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Outline:    color.NRGBA{A: 255},
		Cmap:       "jet",
		Padding:    40,
	}
}

// RetroStyle renders in greys on paper-toned background.
func RetroStyle() Style {
	return Style{
		Name:       "retro",
		Background: color.NRGBA{R: 246, G: 241, B: 228, A: 255},
		Outline:    color.NRGBA{R: 40, G: 34, B: 28, A: 255},
		Cmap:       "greys_r",
		Padding:    40,
	}
}

func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultStyle(), nil
	case "retro":
		return RetroStyle(), nil
	}
	return Style{}, fmt.Errorf("%w: unknown style %q", ErrConfig, name)
}
