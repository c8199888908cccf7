package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"climap/internal/geom"
	"climap/internal/mapinterp"
)

// parseFloats reads a comma separated list; empty gives nil.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseBBox reads "minlon,minlat,maxlon,maxlat".
func parseBBox(s string) (*geom.BBox, error) {
	v, err := parseFloats(s)
	if err != nil || v == nil {
		return nil, err
	}
	if len(v) != 4 {
		return nil, fmt.Errorf("zoom wants minlon,minlat,maxlon,maxlat, got %q", s)
	}
	return &geom.BBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// shapeFlags collects repeated -shape "path[;crs[;#rrggbb]]" values.
type shapeFlags []mapinterp.ExtraShape

func (s *shapeFlags) String() string {
	names := make([]string, 0, len(*s))
	for _, e := range *s {
		names = append(names, e.Path)
	}
	return strings.Join(names, ",")
}

func (s *shapeFlags) Set(v string) error {
	parts := strings.Split(v, ";")
	e := mapinterp.ExtraShape{Path: strings.TrimSpace(parts[0]), Width: 1, Color: color.NRGBA{A: 255}}
	if e.Path == "" {
		return fmt.Errorf("shape path is empty")
	}
	if len(parts) > 1 {
		e.CRS = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		c, err := parseHex(parts[2])
		if err != nil {
			return err
		}
		e.Color = c
	}
	*s = append(*s, e)
	return nil
}

func parseHex(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q, want #rrggbb", s)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, nil
}
