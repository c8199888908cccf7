package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"climap/internal/anchor"
	"climap/internal/boundary"
	"climap/internal/config"
	"climap/internal/geom"
	"climap/internal/interp"
	"climap/internal/mapinterp"
	"climap/internal/stations"
	"climap/internal/tui"
)

const usage = `usage: climap <command> [flags]

commands:
  render   draw a map and write it as PNG
  preview  draw a map and browse it in the terminal

run "climap <command> -h" for flags`

// job is a parsed command line.
type job struct {
	cmd       string
	mp        *mapinterp.Map
	cfg       mapinterp.Config
	debugLogs bool
}

type sampleFlags struct {
	data       string
	records    string
	yearly     bool
	stat       string
	continuity float64
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	j, err := parseArgs(config.Load(), os.Args[1], os.Args[2:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(tui.ErrorStyle.Render("climap: " + err.Error()))
	}
	switch j.cmd {
	case "render":
		res, err := j.mp.Draw(j.cfg)
		if err != nil {
			log.Fatal(tui.ErrorStyle.Render("climap: " + err.Error()))
		}
		b := res.Image.Bounds()
		fmt.Println(tui.StatusStyle.Render(fmt.Sprintf("wrote %s (%dx%d, %d levels, %d anchors)",
			j.cfg.Save, b.Dx(), b.Dy(), len(res.Levels), len(res.Anchors))))
	case "preview":
		// The alternate screen owns the terminal, so logs go to a file or nowhere.
		log.SetOutput(io.Discard)
		if j.debugLogs {
			f, err := tea.LogToFile("climap-debug.log", "climap")
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
		}
		p := tea.NewProgram(tui.New(j.mp, j.cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatal(err)
		}
	}
}

// parseArgs builds the map and its configuration for one command.
func parseArgs(d config.Defaults, cmd string, args []string) (*job, error) {
	if cmd != "render" && cmd != "preview" {
		return nil, fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)

	var sf sampleFlags
	fs.StringVar(&sf.data, "data", "", "sample CSV (value, lon, lat)")
	fs.StringVar(&sf.records, "records", "", "station records CSV (station, value, lon, lat), reduced to one sample per station")
	fs.BoolVar(&sf.yearly, "yearly", false, "records carry a leading year column and are summed per year first")
	fs.StringVar(&sf.stat, "stat", "mean", "per-station statistic: mean, median, max, min")
	fs.Float64Var(&sf.continuity, "continuity", 0, "keep stations with at least this share of the best station's record count (0 keeps all)")

	country := fs.String("country", "", "comma separated country names or codes; EUROPE selects the European set")
	boundaryFile := fs.String("boundary", "", "custom boundary file (.shp, .geojson, .json, .wkt, .kml)")
	crs := fs.String("crs", "", "CRS of the custom boundary file, e.g. EPSG:2180")
	world := fs.String("world", d.WorldBoundaries, "world boundary file replacing the embedded outlines")

	method := fs.String("method", "cubic", "interpolation: cubic, linear, nearest")
	numCols := fs.Int("numcols", d.NumCols, "mesh columns")
	numRows := fs.Int("numrows", d.NumRows, "mesh rows")
	levels := fs.String("levels", "", "comma separated ascending contour levels (default: from data)")
	lineLevels := fs.String("contour-levels", "", "comma separated iso-line levels (default: -levels)")
	clamp := fs.Bool("clamp", false, "clamp interpolated values to the outer levels")
	cmap := fs.String("cmap", d.Cmap, "colormap name (default: the style's)")
	style := fs.String("style", d.Style, "style: default, retro")

	zoom := fs.String("zoom", "", "view window minlon,minlat,maxlon,maxlat")
	noIntoZoom := fs.Bool("no-extrapolate-zoom", false, "place anchors around the boundary instead of the zoom window")
	corners := fs.Bool("corners", false, "let the four window corners borrow values too; without them cubic and linear leave the corners outside the midpoint diamond blank")
	margin := fs.Float64("margin", anchor.DefaultMargin, "anchor margin in degrees")

	noFill := fs.Bool("no-fill", false, "skip filled contour bands")
	contours := fs.Bool("contours", false, "draw iso-lines")
	points := fs.Bool("points", false, "mark sample locations")
	grid := fs.Bool("grid", false, "draw the lon/lat grid")
	gridDash := fs.Bool("grid-dash", false, "dash grid lines")
	noCbar := fs.Bool("no-cbar", false, "skip the colorbar")
	noFrame := fs.Bool("no-frame", false, "skip the plot frame")
	boundaryWidth := fs.Float64("boundary-width", 1, "boundary outline width in pixels")
	width := fs.Int("width", d.OutputWidth, "output image width")
	var shapes shapeFlags
	fs.Var(&shapes, "shape", `extra outline "path[;crs[;#rrggbb]]", repeatable`)

	out := fs.String("out", "", "PNG output path (render default: map.png)")
	debugLogs := fs.Bool("debug-log", false, "preview: write logs to climap-debug.log")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	samples, err := loadSamples(sf)
	if err != nil {
		return nil, err
	}

	m, err := interp.ParseMethod(*method)
	if err != nil {
		return nil, err
	}
	st, err := mapinterp.ParseStyle(*style)
	if err != nil {
		return nil, err
	}
	lv, err := parseFloats(*levels)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	llv, err := parseFloats(*lineLevels)
	if err != nil {
		return nil, fmt.Errorf("contour levels: %w", err)
	}
	z, err := parseBBox(*zoom)
	if err != nil {
		return nil, err
	}

	save := *out
	if save == "" && cmd == "render" {
		save = "map.png"
	}
	opts := []mapinterp.Option{
		mapinterp.WithMethod(m),
		mapinterp.WithMesh(*numCols, *numRows),
		mapinterp.WithStyle(st),
		mapinterp.WithCmap(*cmap),
		mapinterp.WithSave(save),
		func(c *mapinterp.Config) {
			c.Levels = lv
			c.ContourLevels = llv
			c.ClampToLevels = *clamp
			c.Zoom = z
			c.ExtrapolateIntoZoom = !*noIntoZoom
			c.AnchorCorners = *corners
			c.Margin = *margin
			c.FillContours = !*noFill
			c.ShowContours = *contours
			c.ShowPoints = *points
			c.ShowGrid = *grid
			c.GridDash = *gridDash
			c.ShowCbar = !*noCbar
			c.ShowFrame = !*noFrame
			c.BoundaryWidth = *boundaryWidth
			c.OutputWidth = *width
		},
	}
	for _, s := range shapes {
		opts = append(opts, mapinterp.WithExtraShape(s))
	}
	cfg, err := mapinterp.NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	src := boundary.Source{Countries: splitList(*country), Path: *boundaryFile, CRS: *crs}
	mp := mapinterp.New(samples, src).WithStore(boundary.NewStore(*world))
	return &job{cmd: cmd, mp: mp, cfg: cfg, debugLogs: *debugLogs}, nil
}

func loadSamples(sf sampleFlags) ([]geom.Sample, error) {
	switch {
	case sf.data != "" && sf.records != "":
		return nil, errors.New("use either -data or -records, not both")
	case sf.data != "":
		return geom.LoadSamplesCSV(sf.data)
	case sf.records == "":
		return nil, errors.New("no samples: set -data or -records")
	}
	st, err := stations.ParseStat(sf.stat)
	if err != nil {
		return nil, err
	}
	recs, err := stations.LoadCSV(sf.records, sf.yearly)
	if err != nil {
		return nil, err
	}
	if sf.continuity > 0 {
		if recs, err = stations.CheckContinuity(recs, sf.continuity); err != nil {
			return nil, err
		}
	}
	red := stations.PerRecord
	if sf.yearly {
		red = stations.YearlySum
	}
	return stations.Aggregate(recs, red, st)
}
