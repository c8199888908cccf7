package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"climap/internal/anchor"
	"climap/internal/compose"
	"climap/internal/geom"
	"climap/internal/mapinterp"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout returns the map area origin and size; View uses the same numbers.
func (m Model) layout() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	w = contentWidth
	if m.showSidebar {
		w -= sidebarWidth + 1
		x = sidebarWidth + 1
	}
	return x, headerHeight, max(10, w), contentHeight
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-1-2) // provisional; will be refined in View
		}
	case renderedMsg:
		m.rendering = false
		if msg.err != nil {
			m.status = "render error: " + describe(msg.err)
			return m, nil
		}
		m.res = msg.res
		b := m.res.Image.Bounds()
		m.status = fmt.Sprintf("rendered %dx%d  method=%s  levels=%d  anchors=%d",
			b.Dx(), b.Dy(), m.cfg.Method, len(m.res.Levels), len(m.res.Anchors))
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end", "j", "k":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "m":
			return m, m.cycleMethod()
		case "f":
			m.cfg.FillContours = !m.cfg.FillContours
			m.status = fmt.Sprintf("fill: %v", m.cfg.FillContours)
			return m, m.render()
		case "c":
			m.cfg.ShowContours = !m.cfg.ShowContours
			m.status = fmt.Sprintf("contours: %v", m.cfg.ShowContours)
			return m, m.render()
		case "p":
			m.cfg.ShowPoints = !m.cfg.ShowPoints
			m.status = fmt.Sprintf("points: %v", m.cfg.ShowPoints)
			return m, m.render()
		case "g":
			m.cfg.ShowGrid = !m.cfg.ShowGrid
			m.status = fmt.Sprintf("grid: %v", m.cfg.ShowGrid)
			return m, m.render()
		case "x":
			m.cfg.AnchorCorners = !m.cfg.AnchorCorners
			m.status = fmt.Sprintf("corner anchors: %v", m.cfg.AnchorCorners)
			return m, m.render()
		case "o":
			m.showGeometry = !m.showGeometry
			m.status = fmt.Sprintf("geometry view: %v", m.showGeometry)
		case "w":
			if m.res == nil {
				m.status = "nothing rendered yet"
				break
			}
			if err := compose.Save(m.savePath, m.res.Image); err != nil {
				m.status = "save error: " + err.Error()
			} else {
				m.status = "saved " + m.savePath
			}
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.height-1-2)
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			m.inspectPopup = m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					return m, m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY += 1
		case "down":
			m.offsetY -= 1
		case "left":
			m.offsetX += 2
		case "right":
			m.offsetX -= 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// hover tracks the mouse over the map area: lon/lat and surface value for
// the footer, and in geometry view the nearest sample or anchor.
func (m *Model) hover(cx, cy int) {
	ox, oy, w, h := m.layout()
	if cx < ox || cx >= ox+w || cy < oy || cy >= oy+h || m.res == nil {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hovering = true
	x, y := cx-ox, cy-oy
	var lon, lat float64
	var ok bool
	if m.showGeometry {
		lon, lat, ok = m.cellToLonLat(x, y, w, h)
	} else {
		lon, lat, ok = m.imageLonLat(x, y, w, h)
	}
	m.hoverHasGeo = ok
	if ok {
		m.hoverLon, m.hoverLat = lon, lat
		m.hoverValue = m.res.Surface.At(lon, lat)
	}
	if !m.showGeometry {
		return
	}
	hxMic, hyMic := x*2, y*4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	try := func(lon, lat float64) {
		mx, my, ok := m.screenXYMicro(lon, lat, w, h)
		if !ok {
			return
		}
		dx, dy := mx-hxMic, my-hyMic
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by = mx, my
		}
	}
	for _, s := range m.mp.Samples() {
		try(s.Lon, s.Lat)
	}
	for _, a := range m.res.Anchors {
		try(a.X, a.Y)
	}
	m.hoverMicX, m.hoverMicY = bx, by
}

// inspect describes the sample nearest to the hovered location, or to the
// window centre when the mouse is elsewhere.
func (m Model) inspect() string {
	if m.res == nil {
		return "nothing rendered yet"
	}
	win := m.window()
	p := geom.Point{X: (win.MinX + win.MaxX) / 2, Y: (win.MinY + win.MaxY) / 2}
	if m.hoverHasGeo {
		p = geom.Point{X: m.hoverLon, Y: m.hoverLat}
	}
	samples := m.mp.Samples()
	i := anchor.Nearest(p, samples)
	if i < 0 {
		return "no samples"
	}
	s := samples[i]
	meta := []string{
		fmt.Sprintf("at: lon=%.4f lat=%.4f", p.X, p.Y),
		fmt.Sprintf("surface: %s", formatValue(m.res.Surface.At(p.X, p.Y))),
		fmt.Sprintf("nearest sample: lon=%.4f lat=%.4f value=%g", s.Lon, s.Lat, s.Value),
		fmt.Sprintf("distance: %.3f°", math.Hypot(s.Lon-p.X, s.Lat-p.Y)),
		fmt.Sprintf("window: [%.3f, %.3f, %.3f, %.3f]", win.MinX, win.MinY, win.MaxX, win.MaxY),
	}
	if m.selPath != "" {
		meta = append(meta, "file: "+m.selPath)
	}
	return strings.Join(meta, "\n")
}

func describe(err error) string {
	switch {
	case errors.Is(err, mapinterp.ErrNoBoundary):
		return "no boundary polygons: " + err.Error()
	case errors.Is(err, mapinterp.ErrInsufficientData):
		return "not enough data: " + err.Error()
	case errors.Is(err, mapinterp.ErrConfig):
		return "bad option: " + err.Error()
	}
	return err.Error()
}
