package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/domain/models"
)

// group accumulates a running mean for one key.
type group struct {
	key   string
	order float64
	sum   float64
	n     int
}

// groupMean averages values per key. Empty keys and NaN values are skipped,
// and groups left without values are dropped. The result is ordered by sort
// key ascending (ties by label).
func groupMean(keys []string, order []float64, values []float64, scale float64) []models.Point {
	groups := make(map[string]*group)
	for i, key := range keys {
		if key == "" || math.IsNaN(values[i]) {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			if order != nil {
				g.order = order[i]
			}
			groups[key] = g
		}
		g.sum += values[i]
		g.n++
	}

	list := make([]*group, 0, len(groups))
	for _, g := range groups {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].order != list[j].order {
			return list[i].order < list[j].order
		}
		return list[i].key < list[j].key
	})

	points := make([]models.Point, len(list))
	for i, g := range list {
		points[i] = models.Point{Key: g.key, Value: g.sum / float64(g.n) * scale}
	}
	return points
}

func requireFields(table *dataset.Table, seriesID string, fields ...string) error {
	var missing []string
	for _, f := range fields {
		if !table.HasColumn(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s needs %v", models.ErrOptionalFieldMissing, seriesID, missing)
	}
	return nil
}

// TenureByDepartment is the mean tenure per department (pie chart).
func TenureByDepartment(table *dataset.Table) (models.Series, error) {
	if err := requireFields(table, models.SeriesTenureByDepartment, models.FieldDepartment, models.FieldTenureYears); err != nil {
		return models.Series{}, err
	}
	depts, _ := table.Text(models.FieldDepartment)
	tenure, _ := table.Numbers(models.FieldTenureYears)
	return models.Series{
		ID:     models.SeriesTenureByDepartment,
		Title:  "부서별 평균 근속연수",
		Kind:   models.ChartPie,
		XLabel: "부서",
		YLabel: "평균 근속연수",
		Points: groupMean(depts, nil, tenure, 1),
	}, nil
}

// RaiseBucket rounds a raise percentage to the nearest integer, ties to even.
// ok is false for NaN and values outside the int32 range.
func RaiseBucket(raise float64) (bucket int, ok bool) {
	rounded := math.RoundToEven(raise)
	if math.IsNaN(rounded) || rounded < math.MinInt32 || rounded > math.MaxInt32 {
		return 0, false
	}
	return int(rounded), true
}

// DepartureRateByRaise is the departure rate (%) per rounded raise
// percentage (line chart). Records without a raise value are dropped.
func DepartureRateByRaise(table *dataset.Table) (models.Series, error) {
	if err := requireFields(table, models.SeriesDepartureByRaise, models.FieldRaisePct); err != nil {
		return models.Series{}, err
	}
	raises, _ := table.Numbers(models.FieldRaisePct)
	departed, _ := table.Numbers(models.FieldDeparted)

	keys := make([]string, len(raises))
	order := make([]float64, len(raises))
	for i, r := range raises {
		bucket, ok := RaiseBucket(r)
		if !ok {
			continue
		}
		keys[i] = strconv.Itoa(bucket)
		order[i] = float64(bucket)
	}
	return models.Series{
		ID:     models.SeriesDepartureByRaise,
		Title:  "급여인상율과 퇴직율",
		Kind:   models.ChartLine,
		XLabel: "급여인상율(%)",
		YLabel: "퇴직율(%)",
		Points: groupMean(keys, order, departed, 100),
	}, nil
}

// DepartureRateByOvertime is the departure rate (%) per overtime category
// (bar chart).
func DepartureRateByOvertime(table *dataset.Table) (models.Series, error) {
	if err := requireFields(table, models.SeriesDepartureByOvertime, models.FieldOvertime); err != nil {
		return models.Series{}, err
	}
	overtime, _ := table.Text(models.FieldOvertime)
	departed, _ := table.Numbers(models.FieldDeparted)
	return models.Series{
		ID:     models.SeriesDepartureByOvertime,
		Title:  "야근정도별 퇴직율",
		Kind:   models.ChartBar,
		XLabel: "야근정도",
		YLabel: "퇴직율(%)",
		Points: groupMean(overtime, nil, departed, 100),
	}, nil
}

// SatisfactionByDepartment is the mean satisfaction per department, highest
// first (bar chart).
func SatisfactionByDepartment(table *dataset.Table) (models.Series, error) {
	if err := requireFields(table, models.SeriesSatisfactionByDepartment, models.FieldDepartment, models.FieldSatisfaction); err != nil {
		return models.Series{}, err
	}
	depts, _ := table.Text(models.FieldDepartment)
	satisfaction, _ := table.Numbers(models.FieldSatisfaction)

	points := groupMean(depts, nil, satisfaction, 1)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	return models.Series{
		ID:     models.SeriesSatisfactionByDepartment,
		Title:  "부서별 업무 환경 만족도 평균",
		Kind:   models.ChartBar,
		XLabel: "부서",
		YLabel: "업무 환경 만족도 평균",
		Points: points,
	}, nil
}

type aggregator struct {
	id  string
	run func(*dataset.Table) (models.Series, error)
}

var aggregators = []aggregator{
	{models.SeriesTenureByDepartment, TenureByDepartment},
	{models.SeriesDepartureByRaise, DepartureRateByRaise},
	{models.SeriesDepartureByOvertime, DepartureRateByOvertime},
	{models.SeriesSatisfactionByDepartment, SatisfactionByDepartment},
}

// Aggregate runs every aggregate the table's capabilities allow. Skipped and
// failed aggregates are listed in the report and never stop the others.
func Aggregate(table *dataset.Table) models.Report {
	report := models.Report{}
	caps := table.Capabilities()
	for _, a := range aggregators {
		if !caps.Can(a.id) {
			report.Skipped = append(report.Skipped, models.SkippedSeries{
				ID:     a.id,
				Reason: fmt.Sprintf("%v: %v", models.ErrOptionalFieldMissing, caps.Missing[a.id]),
			})
			continue
		}
		series, err := a.run(table)
		if err != nil {
			report.Skipped = append(report.Skipped, models.SkippedSeries{ID: a.id, Reason: err.Error()})
			continue
		}
		report.Series = append(report.Series, series)
	}
	return report
}
