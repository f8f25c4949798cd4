package dashboard

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/domain/models"
	"github.com/pivolan/attrition_dashboard/stats"
)

const PageTitle = "퇴직율 분석 및 인사이트"

// Tile is one formatted KPI metric.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is everything one dashboard render shows. It is rebuilt on every
// request from the shared table.
type View struct {
	RenderID string        `json:"render_id"`
	Source   string        `json:"source"`
	KPI      models.KPISet `json:"kpi"`
	Tiles    []Tile        `json:"tiles"`
	Report   models.Report `json:"report"`
}

// Build computes KPIs and every supported aggregate for table.
func Build(table *dataset.Table) (View, error) {
	kpi, err := stats.ComputeKPIs(table)
	if err != nil {
		return View{}, err
	}
	return View{
		RenderID: uuid.NewV4().String(),
		Source:   table.Source(),
		KPI:      kpi,
		Tiles:    Tiles(kpi),
		Report:   stats.Aggregate(table),
	}, nil
}

// Series returns the computed series with the given id.
func (v View) Series(id string) (models.Series, bool) {
	for _, s := range v.Report.Series {
		if s.ID == id {
			return s, true
		}
	}
	return models.Series{}, false
}

var printer = message.NewPrinter(language.Korean)

func Tiles(kpi models.KPISet) []Tile {
	return []Tile{
		{Label: "전체 직원 수", Value: FormatCount(kpi.TotalCount)},
		{Label: "퇴직자 수", Value: FormatCount(kpi.DepartedCount)},
		{Label: "유지율", Value: FormatPercent(kpi.RetentionRatePct)},
		{Label: "퇴직율", Value: FormatPercent(kpi.DepartureRatePct)},
		{Label: "평균 귀가 거리", Value: formatMean(kpi.MeanCommuteDistance, "%.2f km")},
		{Label: "평균 업무 만족도", Value: formatMean(kpi.MeanSatisfaction, "%.2f/5")},
		{Label: "평균 나이", Value: formatMean(kpi.MeanAge, "%.1f세")},
	}
}

// FormatCount renders a headcount with thousands separators, e.g. "1,470명".
func FormatCount(n int) string {
	return printer.Sprintf("%d명", n)
}

func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatMean(m models.Mean, format string) string {
	if !m.Valid {
		return "-"
	}
	return fmt.Sprintf(format, m.Value)
}

// UnavailableMessage is shown instead of the dashboard when the dataset
// cannot be loaded.
func UnavailableMessage(fileName string) string {
	return fmt.Sprintf("데이터가 없습니다. '%s' 파일을 확인하세요.", fileName)
}

var nonAlnum = regexp.MustCompile("[^a-z0-9]+")

// Slug transliterates a chart title to ASCII for file names.
func Slug(title string) string {
	s := strings.ToLower(unidecode.Unidecode(title))
	s = strings.Trim(nonAlnum.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "chart"
	}
	return s
}

// ChartFileName names an exported PNG of a series.
func ChartFileName(series models.Series, at time.Time) string {
	return fmt.Sprintf("%s_%s.png", Slug(series.Title), at.Format("20060102-150405"))
}
