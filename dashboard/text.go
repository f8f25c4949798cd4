package dashboard

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

// RenderText formats the KPI tiles and every computed series as plain text
// tables.
func RenderText(view View) string {
	buf := &strings.Builder{}
	buf.WriteString(PageTitle + "\n")
	buf.WriteString(KPITable(view) + "\n")

	for _, s := range view.Report.Series {
		buf.WriteString("\n" + SeriesTable(s) + "\n")
	}
	for _, s := range view.Report.Skipped {
		buf.WriteString(fmt.Sprintf("\n%s: %s\n", s.ID, s.Reason))
	}
	return buf.String()
}

// KPITable renders the formatted KPI tiles.
func KPITable(view View) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"지표", "값"})
	for _, tile := range view.Tiles {
		t.AppendRow(table.Row{tile.Label, tile.Value})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// SeriesTable renders one series as a two column table titled with the
// series title.
func SeriesTable(series models.Series) string {
	t := table.NewWriter()
	t.SetTitle(series.Title)
	xLabel := series.XLabel
	if xLabel == "" {
		xLabel = "구분"
	}
	t.AppendHeader(table.Row{xLabel, series.YLabel})
	for _, p := range series.Points {
		t.AppendRow(table.Row{p.Key, fmt.Sprintf("%.1f", p.Value)})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}
