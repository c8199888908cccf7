package tui

import (
	"fmt"
	"math"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// formatValue prints a surface value, or a dash outside the mesh.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.3g", v)
}
