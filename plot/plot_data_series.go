package plot

import (
	"fmt"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

type dataSeriesForGraph struct {
	series models.Series
}

func NewDataSeriesForGraph(series models.Series) dataSeriesForGraph {
	return dataSeriesForGraph{series: series}
}

func (d dataSeriesForGraph) GetNameGraph() string {
	return d.series.Title
}
func (d dataSeriesForGraph) getNameXAxis() string {
	return d.series.XLabel
}
func (d dataSeriesForGraph) getNameYAxis() string {
	return d.series.YLabel
}
func (d dataSeriesForGraph) getYValues() []float64 {
	return d.series.Values()
}
func (d dataSeriesForGraph) getXValues() []string {
	return d.series.Keys()
}

// getNumericXValues parses the keys as numbers; ok is false if any key is
// not numeric.
func (d dataSeriesForGraph) getNumericXValues() (values []float64, ok bool) {
	keys := d.getXValues()
	values = make([]float64, len(keys))
	for i, k := range keys {
		v, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func (d dataSeriesForGraph) lenXValues() int {
	return len(d.series.Points)
}

func (d dataSeriesForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	// Проверка входных параметров
	if d.lenXValues() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if d.lenXValues() < 2 {
		x = 10.0
	} else if d.lenXValues() < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100        // отступ для оси Y и подписей
		spacingRatio = 0.2        // соотношение отступа между столбцами к ширине столбца
		aspectRatio  = 9.0 / 16.0 // соотношение сторон по умолчанию
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d dataSeriesForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for _, p := range d.series.Points {
		bars = append(bars, chart.Value{
			Value: p.Value,
			Label: p.Key,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}

func (d dataSeriesForGraph) generatePieValues() []chart.Value {
	var values []chart.Value
	for _, p := range d.series.Points {
		values = append(values, chart.Value{
			Value: p.Value,
			Label: fmt.Sprintf("%s: %.1f", p.Key, p.Value),
		})
	}
	return values
}

func (d dataSeriesForGraph) generateGrid() []chart.Tick {
	var ticks []chart.Tick
	max := findMaxValue(d.getYValues())
	gridStep := calculateGridStep(max)
	if gridStep <= 0 {
		return nil
	}
	for i := 0.0; i <= max+gridStep/2; i += gridStep {
		ticks = append(ticks, chart.Tick{
			Value: i,
			Label: fmt.Sprintf("%.1f", i),
		})
	}
	return ticks
}
