package mapinterp

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks invalid options or option combinations.
	ErrConfig = errors.New("mapinterp: invalid configuration")
	// ErrInsufficientData marks missing samples or a missing boundary selection.
	ErrInsufficientData = errors.New("mapinterp: insufficient data")
	// ErrNoBoundary means the boundary selection matched no polygons.
	ErrNoBoundary = fmt.Errorf("%w: boundary selection matched no polygons", ErrConfig)
)
