package mapinterp

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"climap/internal/anchor"
	"climap/internal/compose"
	"climap/internal/geom"
	"climap/internal/interp"
)

// ExtraShape is an additional boundary file outlined on the map.
type ExtraShape struct {
	Path      string `validate:"required"`
	CRS       string
	Color     color.NRGBA
	Width     float64 `validate:"gte=0"`
	FillAlpha float64 `validate:"gte=0,lte=1"`
}

// Config holds every rendering option. Build one with NewConfig, or start
// from DefaultConfig and call Validate.
type Config struct {
	// Levels are ascending contour levels; nil picks them from the data.
	Levels []float64
	// ContourLevels are the iso-line levels; nil reuses Levels.
	ContourLevels []float64
	// Cmap overrides the style's colormap.
	Cmap    string
	NumCols int           `validate:"min=2,max=4096"`
	NumRows int           `validate:"min=2,max=4096"`
	Method  interp.Method `validate:"oneof=cubic linear nearest"`
	// ClampToLevels limits the surface to [Levels[0], Levels[n-1]].
	ClampToLevels bool

	Zoom                *geom.BBox
	ExtrapolateIntoZoom bool
	// AnchorCorners makes the four window corners borrow values too. With
	// the midpoints alone the hull is a diamond and cubic or linear leave
	// the window corners blank, e.g. north-east Poland.
	AnchorCorners bool
	Margin        float64 `validate:"gte=0,lte=90"`

	FillContours bool
	ShowContours bool
	ShowPoints   bool
	ShowGrid     bool
	ShowCbar     bool
	ShowFrame    bool

	BoundaryWidth float64 `validate:"gte=0,lte=50"`
	GridWidth     float64 `validate:"gte=0,lte=50"`
	GridDash      bool

	PlotWidth   int `validate:"min=50,max=10000"`
	OutputWidth int `validate:"min=1,max=10000"`

	ExtraShapes []ExtraShape `validate:"dive"`
	Style       Style
	// Save is the PNG path written after a successful Draw; empty skips it.
	Save string
}

func DefaultConfig() Config {
	return Config{
		NumCols:             240,
		NumRows:             240,
		Method:              interp.Cubic,
		ExtrapolateIntoZoom: true,
		Margin:              anchor.DefaultMargin,
		FillContours:        true,
		ShowCbar:            true,
		ShowFrame:           true,
		BoundaryWidth:       1,
		GridWidth:           0.5,
		PlotWidth:           900,
		OutputWidth:         compose.DefaultWidth,
		Style:               DefaultStyle(),
	}
}

type Option func(*Config)

func WithLevels(levels ...float64) Option { return func(c *Config) { c.Levels = levels } }
func WithCmap(name string) Option         { return func(c *Config) { c.Cmap = name } }
func WithMethod(m interp.Method) Option   { return func(c *Config) { c.Method = m } }
func WithStyle(s Style) Option            { return func(c *Config) { c.Style = s } }
func WithSave(path string) Option         { return func(c *Config) { c.Save = path } }

func WithMesh(cols, rows int) Option {
	return func(c *Config) { c.NumCols, c.NumRows = cols, rows }
}

func WithZoom(b geom.BBox) Option {
	return func(c *Config) { c.Zoom = &b }
}

// WithClamp limits interpolated values to the outer levels.
func WithClamp() Option { return func(c *Config) { c.ClampToLevels = true } }

func WithExtraShape(s ExtraShape) Option {
	return func(c *Config) { c.ExtraShapes = append(c.ExtraShapes, s) }
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	c := DefaultConfig()
	for _, o := range opts {
		o(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

var validate = validator.New()

// Validate reports the first problem with c, wrapped in ErrConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrConfig, describe(err))
	}
	if err := checkLevels("levels", c.Levels); err != nil {
		return err
	}
	if err := checkLevels("contour levels", c.ContourLevels); err != nil {
		return err
	}
	if c.ClampToLevels && len(c.Levels) == 0 {
		return fmt.Errorf("%w: clamping to levels requires explicit levels", ErrConfig)
	}
	if z := c.Zoom; z != nil && (!finite(z.MinX, z.MinY, z.MaxX, z.MaxY) || z.MinX >= z.MaxX || z.MinY >= z.MaxY) {
		return fmt.Errorf("%w: zoom window %+v has no area", ErrConfig, *z)
	}
	if c.Save != "" && !strings.EqualFold(filepath.Ext(c.Save), ".png") {
		return fmt.Errorf("%w: save path %q must end in .png", ErrConfig, c.Save)
	}
	return nil
}

func checkLevels(name string, lv []float64) error {
	if lv == nil {
		return nil
	}
	if len(lv) < 2 {
		return fmt.Errorf("%w: %s need at least two values", ErrConfig, name)
	}
	if !finite(lv...) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrConfig, name, lv)
	}
	if !sort.Float64sAreSorted(lv) {
		return fmt.Errorf("%w: %s must be ascending", ErrConfig, name)
	}
	for i := 1; i < len(lv); i++ {
		if lv[i] == lv[i-1] {
			return fmt.Errorf("%w: %s repeat %v", ErrConfig, name, lv[i])
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
}
