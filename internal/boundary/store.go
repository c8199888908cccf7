package boundary

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"climap/internal/geom"
)

//go:embed world/countries.geojson
var worldGeoJSON []byte

var (
	ErrUnsupportedFormat = errors.New("boundary: unsupported file format")
	// ErrNoSelection means neither a country nor a custom file was given.
	ErrNoSelection = errors.New("boundary: no country or boundary file selected")
	// ErrInvalidSource means a country filter was combined with a custom file.
	ErrInvalidSource = errors.New("boundary: country filter cannot be combined with a custom boundary file")
)

// Source selects boundaries: either countries of the world set or a custom
// file. CRS applies to the custom file only; empty means EPSG:4326.
type Source struct {
	Countries []string
	Path      string
	CRS       string
}

// Store loads boundary polygons. The world set is decoded once and shared.
type Store struct {
	worldPath string

	mu    sync.Mutex
	world geom.PolygonSet
}

// NewStore returns a store whose world set comes from worldPath, or from
// the embedded outlines when worldPath is empty.
func NewStore(worldPath string) *Store {
	return &Store{worldPath: worldPath}
}

// World returns the full, unfiltered world set.
func (s *Store) World() (geom.PolygonSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.world == nil {
		var (
			set geom.PolygonSet
			err error
		)
		if s.worldPath == "" {
			set, err = geom.ParseGeoJSONPolygons(worldGeoJSON)
		} else {
			set, err = LoadFile(s.worldPath)
		}
		if err != nil {
			return nil, fmt.Errorf("boundary: world set: %w", err)
		}
		s.world = set
	}
	return clone(s.world), nil
}

// Load resolves src into a polygon set in EPSG:4326. An unknown country
// yields an empty set, not an error.
func (s *Store) Load(src Source) (geom.PolygonSet, error) {
	hasCountry := len(expand(src.Countries)) > 0
	switch {
	case src.Path == "" && !hasCountry:
		return nil, ErrNoSelection
	case src.Path != "" && hasCountry && src.Path != s.worldPath:
		return nil, ErrInvalidSource
	case src.Path != "" && !hasCountry:
		set, err := LoadFile(src.Path)
		if err != nil {
			return nil, err
		}
		return Reproject(set, src.CRS)
	}
	world, err := s.World()
	if err != nil {
		return nil, err
	}
	return Filter(world, src.Countries), nil
}

// LoadFile decodes a boundary file by extension. Coordinates are returned
// as stored.
func LoadFile(path string) (geom.PolygonSet, error) {
	var (
		set geom.PolygonSet
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		set, err = LoadShapefile(path)
	case ".geojson", ".json":
		set, err = geom.LoadGeoJSONPolygons(path)
	case ".wkt":
		set, err = geom.LoadWKTPolygons(path)
	case ".kml":
		set, err = geom.LoadKMLPolygons(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("boundary: load %s: %w", path, err)
	}
	return set, nil
}

func clone(set geom.PolygonSet) geom.PolygonSet {
	out := make(geom.PolygonSet, len(set))
	for i, p := range set {
		p.Ring = append([]geom.Point(nil), p.Ring...)
		out[i] = p
	}
	return out
}
