// Package mapinterp turns point measurements into a map image: values are
// interpolated over a mesh, drawn as contours and clipped to boundary
// polygons.
package mapinterp

import (
	"errors"
	"fmt"
	"image"
	"log"

	"climap/internal/anchor"
	"climap/internal/boundary"
	"climap/internal/compose"
	"climap/internal/geom"
	"climap/internal/interp"
	"climap/internal/raster"
)

// Map pairs samples with the boundary they are drawn inside.
type Map struct {
	samples []geom.Sample
	source  boundary.Source
	store   *boundary.Store
}

// New uses a store over the embedded world outlines. Use WithStore to read
// boundaries from elsewhere.
func New(samples []geom.Sample, src boundary.Source) *Map {
	return &Map{samples: samples, source: src, store: boundary.NewStore("")}
}

func (m *Map) WithStore(s *boundary.Store) *Map {
	m.store = s
	return m
}

func (m *Map) Samples() []geom.Sample  { return m.samples }
func (m *Map) Source() boundary.Source { return m.source }
func (m *Map) Store() *boundary.Store  { return m.store }

// Result is the output of Draw with the intermediate products kept.
type Result struct {
	Image    *image.RGBA
	Surface  *interp.Surface
	Levels   []float64
	Anchors  []anchor.Anchor
	Extent   geom.BBox
	Polygons geom.PolygonSet
	Viewport raster.Viewport
}

// Draw runs the whole pipeline. Nothing is written unless cfg.Save is set.
func (m *Map) Draw(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cmapName := cfg.Style.Cmap
	if cfg.Cmap != "" {
		cmapName = cfg.Cmap
	}
	cm, err := raster.LookupColormap(cmapName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if len(m.samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrInsufficientData)
	}
	for i, s := range m.samples {
		if !finite(s.Value, s.Lon, s.Lat) {
			return nil, fmt.Errorf("%w: sample %d is not finite (%v, %v, %v)", ErrInsufficientData, i, s.Value, s.Lon, s.Lat)
		}
	}

	polys, err := m.store.Load(m.source)
	switch {
	case errors.Is(err, boundary.ErrNoSelection):
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	case errors.Is(err, boundary.ErrInvalidSource), errors.Is(err, boundary.ErrUnsupportedFormat):
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	case err != nil:
		return nil, err
	}
	if len(polys) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoBoundary, m.source.Countries)
	}

	zoom := cfg.Zoom
	if zoom == nil && m.source.Path == "" {
		if v, ok := boundary.DefaultView(m.source.Countries); ok {
			zoom = &v
		}
	}
	window := anchor.Window(polys, zoom, cfg.ExtrapolateIntoZoom)
	syn, err := anchor.Synthesize(window, cfg.Margin, m.samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}
	anchors := syn.Anchors[:]
	if cfg.AnchorCorners {
		for _, c := range syn.Corners {
			anchors = append(anchors, anchor.Borrow(c, m.samples))
		}
	}

	pts := make([]interp.Point, 0, len(m.samples)+len(anchors))
	for _, s := range m.samples {
		pts = append(pts, interp.Point{X: s.Lon, Y: s.Lat, Z: s.Value})
	}
	for _, a := range anchors {
		pts = append(pts, interp.Point{X: a.X, Y: a.Y, Z: a.Value})
	}
	surface, err := interp.Interpolate(pts, cfg.NumCols, cfg.NumRows, cfg.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	levels := cfg.Levels
	if levels == nil {
		if lo, hi, ok := surface.Range(); ok {
			levels = raster.AutoLevels(lo, hi, 10)
		} else {
			log.Printf("DEBUG: mapinterp: surface has no defined cells")
		}
	}
	if cfg.ClampToLevels {
		surface.Clamp(levels[0], levels[len(levels)-1])
	}
	lineLevels := cfg.ContourLevels
	if lineLevels == nil {
		lineLevels = levels
	}

	view := syn.Extent()
	if zoom != nil {
		view = *zoom
	}
	layout := raster.Layout{PlotWidth: cfg.PlotWidth, Padding: cfg.Style.Padding}
	if cfg.ShowCbar && cfg.FillContours {
		layout.TopBand = raster.ColorbarBand
	}
	vp, err := raster.NewViewport(view, layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	shapes, err := loadShapes(cfg.ExtraShapes)
	if err != nil {
		return nil, err
	}
	opts := raster.ContourOptions{
		Levels:     levels,
		LineLevels: lineLevels,
		Cmap:       cm,
		Fill:       cfg.FillContours,
		Lines:      cfg.ShowContours,
		Shapes:     shapes,
		Colorbar:   cfg.ShowCbar,
		Background: cfg.Style.Background,
	}
	if cfg.ShowPoints {
		opts.Points = m.samples
	}
	contour := raster.RenderContours(vp, surface, opts)
	mask := raster.BuildMask(vp, polys, raster.MaskOptions{
		Background:    cfg.Style.Background,
		Outline:       cfg.Style.Outline,
		BoundaryWidth: cfg.BoundaryWidth,
		Frame:         cfg.ShowFrame,
	})
	var grid image.Image
	if cfg.ShowGrid {
		grid = raster.RenderGrid(vp, raster.GridOptions{Width: cfg.GridWidth, Dash: cfg.GridDash})
	}
	img := compose.Compose(contour, mask, grid, cfg.OutputWidth)

	if cfg.Save != "" {
		if err := compose.Save(cfg.Save, img); err != nil {
			return nil, fmt.Errorf("mapinterp: save %s: %w", cfg.Save, err)
		}
	}
	return &Result{
		Image:    img,
		Surface:  surface,
		Levels:   levels,
		Anchors:  anchors,
		Extent:   syn.Extent(),
		Polygons: polys,
		Viewport: vp,
	}, nil
}

func loadShapes(extra []ExtraShape) ([]raster.Shape, error) {
	var out []raster.Shape
	for _, e := range extra {
		set, err := boundary.LoadFile(e.Path)
		if err != nil {
			return nil, err
		}
		if set, err = boundary.Reproject(set, e.CRS); err != nil {
			return nil, err
		}
		c := e.Color
		if c.A == 0 {
			c.A = 255
		}
		out = append(out, raster.Shape{Polygons: set, Color: c, Width: e.Width, FillAlpha: e.FillAlpha})
	}
	return out, nil
}
