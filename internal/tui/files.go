package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"climap/internal/geom"
	"climap/internal/mapinterp"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

// refreshDir lists sample CSV files in the working directory.
func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.ToLower(filepath.Ext(name)) != ".csv" {
			continue
		}
		items = append(items, fileItem{title: name, desc: "samples", path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
}

// loadPath swaps the samples for those in p, keeping the boundary, and
// re-renders.
func (m *Model) loadPath(p string) tea.Cmd {
	samples, err := geom.LoadSamplesCSV(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	m.selPath = p
	m.mp = mapinterp.New(samples, m.mp.Source()).WithStore(m.mp.Store())
	m.status = "loaded: " + filepath.Base(p) + fmt.Sprintf("  samples=%d", len(samples))
	return m.render()
}
