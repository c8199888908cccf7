// Package tui previews rendered maps in the terminal.
package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"climap/internal/interp"
	"climap/internal/mapinterp"
)

var methods = []interp.Method{interp.Cubic, interp.Linear, interp.Nearest}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Rendering
	mp        *mapinterp.Map
	cfg       mapinterp.Config
	savePath  string
	res       *mapinterp.Result
	rendering bool

	// geometry view: braille outlines instead of the image
	showGeometry bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverValue  float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

type renderedMsg struct {
	res *mapinterp.Result
	err error
}

// New previews mp drawn with cfg. The PNG path in cfg is only written on
// request (key w).
func New(mp *mapinterp.Map, cfg mapinterp.Config) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "rendering...",
		mp:          mp,
		cfg:         cfg,
		savePath:    cfg.Save,
		rendering:   true,
	}
	m.cfg.Save = ""
	if m.savePath == "" {
		m.savePath = "climap.png"
	}
	if wd, err := os.Getwd(); err == nil {
		m.cwd = wd
	} else {
		m.cwd = "."
	}
	delegate := list.NewDefaultDelegate()
	m.l = list.New([]list.Item{}, delegate, 0, 0)
	m.l.Title = "Samples"
	m.l.SetShowHelp(false)
	m.l.SetFilteringEnabled(true)
	m.refreshDir()

	m.tbl = table.New(table.WithFocused(true))
	return m
}

func (m Model) Init() tea.Cmd { return m.render() }

// render draws the map off the update loop.
func (m *Model) render() tea.Cmd {
	m.rendering = true
	mp, cfg := m.mp, m.cfg
	return func() tea.Msg {
		res, err := mp.Draw(cfg)
		return renderedMsg{res: res, err: err}
	}
}

func (m *Model) cycleMethod() tea.Cmd {
	i := 0
	for k, meth := range methods {
		if meth == m.cfg.Method {
			i = k
		}
	}
	m.cfg.Method = methods[(i+1)%len(methods)]
	m.status = "method: " + string(m.cfg.Method)
	return m.render()
}
