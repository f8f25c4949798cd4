package plot

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

// Options tune PNG rendering. A nil Font falls back to the go-chart default,
// which has no Hangul glyphs.
type Options struct {
	Font *truetype.Font
}

// LoadFont reads a TrueType font such as NanumGothic.
func LoadFont(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading font %s: %v", path, err)
	}
	font, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("error parsing font %s: %v", path, err)
	}
	return font, nil
}

// Draw renders a series as PNG using the chart kind of the series.
func Draw(series models.Series, opts Options) ([]byte, error) {
	if len(series.Points) == 0 {
		return nil, fmt.Errorf("series %s has no points", series.ID)
	}
	data := NewDataSeriesForGraph(series)
	switch series.Kind {
	case models.ChartPie:
		return DrawPie(data, opts)
	case models.ChartLine:
		return DrawLine(data, opts)
	default:
		return DrawPlotBar(data, opts)
	}
}

func DrawPie(data dataSeriesForGraph, opts Options) ([]byte, error) {
	total := 0.0
	for _, v := range data.getYValues() {
		total += v
	}
	if total <= 0 {
		return nil, fmt.Errorf("pie %s needs positive values", data.GetNameGraph())
	}

	pie := chart.PieChart{
		Title:  data.GetNameGraph(),
		Font:   opts.Font,
		Width:  1024,
		Height: 1024,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		Values: data.generatePieValues(),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering pie chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawLine draws a marker line over numeric keys. Series with a single or
// non-numeric key are drawn as bars.
func DrawLine(data dataSeriesForGraph, opts Options) ([]byte, error) {
	xValues, ok := data.getNumericXValues()
	if !ok || len(xValues) < 2 {
		return DrawPlotBar(data, opts)
	}
	yValues := data.getYValues()
	maxY := axisMax(yValues)

	series := &chart.ContinuousSeries{
		Name:    data.getNameYAxis(),
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			StrokeWidth: 2,
			DotColor:    drawing.ColorBlue,
			DotWidth:    4,
		},
	}

	var xTicks []chart.Tick
	for i, x := range xValues {
		xTicks = append(xTicks, chart.Tick{Value: x, Label: data.getXValues()[i]})
	}

	graph := chart.Chart{
		Title: data.GetNameGraph(),
		Font:  opts.Font,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  1300,
		Height: 700,
		XAxis: chart.XAxis{
			Name:  data.getNameXAxis(),
			Ticks: xTicks,
			Range: &chart.ContinuousRange{Min: xValues[0], Max: xValues[len(xValues)-1]},
		},
		YAxis: chart.YAxis{
			Name:  data.getNameYAxis(),
			Range: &chart.ContinuousRange{Min: 0, Max: maxY},
			Ticks: data.generateGrid(),
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.1f", vf)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering line chart: %v", err)
	}
	return buffer.Bytes(), nil
}

func DrawPlotBar(data dataForGraph, opts Options) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Font = opts.Font
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: axisMax(data.getYValues()),
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0}, // Пунктирная линия
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 45,
		FontSize:            17,
	}
	buffer := bytes.NewBuffer([]byte{})

	// Отрисовываем график в формате PNG
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}

// axisMax rounds the largest value up to the grid step; never zero so the
// axis range stays valid for all-zero series.
func axisMax(y []float64) float64 {
	max := findMaxValue(y)
	if max <= 0 {
		return 1
	}
	step := calculateGridStep(max)
	return math.Ceil(max/step) * step
}

func calculateGridStep(maxValue float64) float64 {
	// Проверка на корректность входного значения
	if maxValue <= 0 {
		return 0
	}

	// Обработка очень маленьких чисел
	if maxValue < 1e-10 {
		return 1e-10
	}

	// Находим порядок величины максимального значения
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))

	// Нормализуем значение к диапазону [1, 10)
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude

	// Округляем большие шаги до "красивых" чисел
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}

	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return int(count * 8)
}
