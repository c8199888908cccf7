package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"climap/internal/anchor"
	"climap/internal/geom"
)

var attrColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "kind", Width: 8},
	{Title: "lon", Width: 10},
	{Title: "lat", Width: 10},
	{Title: "value", Width: 10},
}

// attrRows lists the samples followed by the synthesized anchors.
func attrRows(samples []geom.Sample, anchors []anchor.Anchor) []table.Row {
	rows := make([]table.Row, 0, len(samples)+len(anchors))
	for _, s := range samples {
		rows = append(rows, table.Row{fmt.Sprintf("%d", len(rows)+1), "sample", fmt.Sprintf("%.4f", s.Lon), fmt.Sprintf("%.4f", s.Lat), fmt.Sprintf("%g", s.Value)})
	}
	for _, a := range anchors {
		rows = append(rows, table.Row{fmt.Sprintf("%d", len(rows)+1), "anchor", fmt.Sprintf("%.4f", a.X), fmt.Sprintf("%.4f", a.Y), fmt.Sprintf("%g", a.Value)})
	}
	return rows
}

// refreshAttrsFromCurrent rebuilds the table from the current map
func (m *Model) refreshAttrsFromCurrent() {
	var anchors []anchor.Anchor
	if m.res != nil {
		anchors = m.res.Anchors
	}
	rows := attrRows(m.mp.Samples(), anchors)
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current map"
		return
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(attrColumns)
	m.tbl.SetRows(rows)
}
