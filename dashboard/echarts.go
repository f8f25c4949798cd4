package dashboard

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

const (
	chartWidth  = "100%"
	chartHeight = "380px"
)

// RenderChart writes a standalone interactive HTML chart for one series.
func RenderChart(w io.Writer, series models.Series) error {
	if len(series.Points) == 0 {
		return fmt.Errorf("series %s has no points", series.ID)
	}
	initOpts := charts.WithInitializationOpts(opts.Initialization{
		PageTitle: series.Title,
		Width:     chartWidth,
		Height:    chartHeight,
	})
	title := charts.WithTitleOpts(opts.Title{Title: series.Title})

	switch series.Kind {
	case models.ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(initOpts, title)
		pie.AddSeries(series.YLabel, pieItems(series))
		return pie.Render(w)
	case models.ChartLine:
		line := charts.NewLine()
		line.SetGlobalOptions(initOpts, title,
			charts.WithXAxisOpts(opts.XAxis{Name: series.XLabel}),
			charts.WithYAxisOpts(opts.YAxis{Name: series.YLabel}),
		)
		line.SetXAxis(series.Keys()).AddSeries(series.YLabel, lineItems(series))
		return line.Render(w)
	default:
		bar := charts.NewBar()
		bar.SetGlobalOptions(initOpts, title,
			charts.WithXAxisOpts(opts.XAxis{Name: series.XLabel}),
			charts.WithYAxisOpts(opts.YAxis{Name: series.YLabel}),
		)
		bar.SetXAxis(series.Keys()).AddSeries(series.YLabel, barItems(series))
		return bar.Render(w)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func pieItems(series models.Series) []opts.PieData {
	items := make([]opts.PieData, 0, len(series.Points))
	for _, p := range series.Points {
		items = append(items, opts.PieData{Name: p.Key, Value: round1(p.Value)})
	}
	return items
}

func lineItems(series models.Series) []opts.LineData {
	items := make([]opts.LineData, 0, len(series.Points))
	for _, p := range series.Points {
		items = append(items, opts.LineData{Value: round1(p.Value)})
	}
	return items
}

func barItems(series models.Series) []opts.BarData {
	items := make([]opts.BarData, 0, len(series.Points))
	for _, p := range series.Points {
		items = append(items, opts.BarData{Value: round1(p.Value)})
	}
	return items
}
