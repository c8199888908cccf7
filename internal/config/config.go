package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults holds CLI defaults read from the environment.
type Defaults struct {
	// WorldBoundaries replaces the embedded world outlines, e.g. a Natural
	// Earth admin-0 shapefile.
	WorldBoundaries string
	OutputWidth     int
	NumCols         int
	NumRows         int
	Style           string
	Cmap            string
}

// Load reads a .env file when present, then the CLIMAP_* variables.
func Load() Defaults {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return Defaults{
		WorldBoundaries: os.Getenv("CLIMAP_WORLD_BOUNDARIES"),
		OutputWidth:     getenvInt("CLIMAP_OUTPUT_WIDTH", 700),
		NumCols:         getenvInt("CLIMAP_NUMCOLS", 240),
		NumRows:         getenvInt("CLIMAP_NUMROWS", 240),
		Style:           getenvDefault("CLIMAP_STYLE", "default"),
		Cmap:            os.Getenv("CLIMAP_CMAP"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
