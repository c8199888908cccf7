package boundary

import (
	"strings"

	"climap/internal/geom"
)

// EuropeToken selects the fixed European country list.
const EuropeToken = "EUROPE"

// EuropeView is the lon/lat window used when the Europe list is selected.
var EuropeView = geom.BBox{MinX: -25, MinY: 30, MaxX: 45, MaxY: 73}

var europe = []string{
	"PRT", "ESP", "GBR", "FRA", "DEU", "POL", "CZE", "BEL", "NLD", "LUX",
	"AND", "CHE", "ITA", "AUT", "SVN", "HRV", "BIH", "MNE", "ALB", "GRC",
	"TUR", "CYP", "CYN", "MLT", "SMR", "BGR", "MKD", "KOS", "SRB", "HUN",
	"SVK", "UKR", "ROU", "BLR", "MDA", "RUS", "LVA", "LTU", "EST", "FIN",
	"SWE", "NOR", "DNK", "GEO", "FRO", "ISL", "MAR", "DZA", "TUN", "LBY",
	"EGY", "ISR", "PSX", "LBN", "SYR", "JOR", "SAU", "IRQ", "IRN", "ARM",
}

// expand replaces the Europe token with its country codes.
func expand(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.EqualFold(t, EuropeToken) {
			out = append(out, europe...)
			continue
		}
		out = append(out, t)
	}
	return out
}

// Matches reports whether c is selected by token. Three-letter tokens are
// compared with the ISO alpha-3 code; longer or shorter tokens match as a
// case-insensitive substring of the admin or short name.
func Matches(c geom.Country, token string) bool {
	if len(token) == 3 {
		return strings.EqualFold(c.Code, token)
	}
	t := strings.ToLower(token)
	return strings.Contains(strings.ToLower(c.Admin), t) || strings.Contains(strings.ToLower(c.Name), t)
}

// Filter keeps the polygons whose country matches any token, in source
// order. Each polygon appears at most once.
func Filter(set geom.PolygonSet, tokens []string) geom.PolygonSet {
	toks := expand(tokens)
	out := geom.PolygonSet{}
	for _, p := range set {
		for _, t := range toks {
			if Matches(p.Country, t) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// DefaultView returns the fixed viewport implied by the selection, if any.
func DefaultView(tokens []string) (geom.BBox, bool) {
	for _, t := range tokens {
		if strings.EqualFold(strings.TrimSpace(t), EuropeToken) {
			return EuropeView, true
		}
	}
	return geom.BBox{}, false
}
