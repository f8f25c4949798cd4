package stats

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/domain/models"
)

func newTable(t *testing.T, headers []string, rows ...[]string) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable("test", headers, rows)
	require.NoError(t, err)
	return table
}

var hrHeaders = []string{
	models.FieldAttrition, models.FieldDepartment, models.FieldTenureYears, models.FieldCommute,
	models.FieldSatisfaction, models.FieldRaisePct, models.FieldOvertime, models.FieldAge,
}

func hrTable(t *testing.T) *dataset.Table {
	return newTable(t, hrHeaders,
		[]string{"Yes", "Sales", "2", "10", "1", "11", "Yes", "30"},
		[]string{"No", "Sales", "6", "2", "3", "14.5", "No", "40"},
		[]string{"No", "HR", "10", "", "4", "15.5", "No", "50"},
		[]string{"Yes", "R&D", "1", "4", "2", "12", "Yes", ""},
		[]string{"No", "R&D", "5", "6", "4", "", "No", "35"},
	)
}

func TestComputeKPIsExample(t *testing.T) {
	table := newTable(t, []string{models.FieldAttrition}, []string{"Yes"}, []string{"No"}, []string{"No"})

	kpi, err := ComputeKPIs(table)
	require.NoError(t, err)
	assert.Equal(t, 3, kpi.TotalCount)
	assert.Equal(t, 1, kpi.DepartedCount)
	assert.Equal(t, "33.3", fmt.Sprintf("%.1f", kpi.DepartureRatePct))
	assert.Equal(t, "66.7", fmt.Sprintf("%.1f", kpi.RetentionRatePct))
	assert.False(t, kpi.MeanAge.Valid)
	assert.False(t, kpi.MeanCommuteDistance.Valid)
}

func TestComputeKPIsMeans(t *testing.T) {
	kpi, err := ComputeKPIs(hrTable(t))
	require.NoError(t, err)

	assert.Equal(t, 5, kpi.TotalCount)
	assert.Equal(t, 2, kpi.DepartedCount)
	assert.InDelta(t, 40.0, kpi.DepartureRatePct, 1e-9)
	assert.InDelta(t, 60.0, kpi.RetentionRatePct, 1e-9)
	assert.Equal(t, models.Mean{Value: 5.5, Valid: true}, kpi.MeanCommuteDistance)
	assert.Equal(t, models.Mean{Value: 2.8, Valid: true}, kpi.MeanSatisfaction)
	assert.Equal(t, models.Mean{Value: 38.75, Valid: true}, kpi.MeanAge)
}

func TestComputeKPIsRateProperties(t *testing.T) {
	statuses := []string{"Yes", "No", "No", "Yes", "No", "No", "No"}
	for n := 1; n <= len(statuses); n++ {
		rows := make([][]string, n)
		for i := range rows {
			rows[i] = []string{statuses[i]}
		}
		table, err := dataset.NewTable("test", []string{models.FieldAttrition}, rows)
		require.NoError(t, err)

		kpi, err := ComputeKPIs(table)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, kpi.DepartureRatePct+kpi.RetentionRatePct, 1e-9)
		assert.Equal(t, kpi.DepartedCount, int(math.Round(float64(kpi.TotalCount)*kpi.DepartureRatePct/100)))
	}
}

func TestComputeKPIsEmpty(t *testing.T) {
	table := newTable(t, []string{models.FieldAttrition, models.FieldAge})

	_, err := ComputeKPIs(table)
	assert.ErrorIs(t, err, models.ErrEmptyDataset)

	_, err = ComputeKPIs(nil)
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}

func TestRaiseBucket(t *testing.T) {
	tests := []struct {
		raise float64
		want  int
	}{
		{4.4, 4},
		{4.6, 5},
		{4.5, 4},
		{5.5, 6},
		{6.5, 6},
		{11, 11},
		{-0.5, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.raise), func(t *testing.T) {
			bucket, ok := RaiseBucket(tt.raise)
			assert.True(t, ok)
			assert.Equal(t, tt.want, bucket)
		})
	}

	for _, raise := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e30, -1e30} {
		_, ok := RaiseBucket(raise)
		assert.False(t, ok, "raise %v", raise)
	}
}

func TestDepartureRateByRaiseRoundsBeforeGrouping(t *testing.T) {
	table := newTable(t, []string{models.FieldAttrition, models.FieldRaisePct},
		[]string{"Yes", "4.4"},
		[]string{"No", "4.6"},
		[]string{"Yes", "5.5"},
		[]string{"No", ""},
	)

	series, err := DepartureRateByRaise(table)
	require.NoError(t, err)
	assert.Equal(t, models.ChartLine, series.Kind)
	assert.Equal(t, []models.Point{
		{Key: "4", Value: 100},
		{Key: "5", Value: 0},
		{Key: "6", Value: 100},
	}, series.Points)
}

func TestDepartureRateByRaiseNumericOrder(t *testing.T) {
	table := newTable(t, []string{models.FieldAttrition, models.FieldRaisePct},
		[]string{"Yes", "11"},
		[]string{"No", "9"},
		[]string{"No", "11.2"},
		[]string{"Yes", "25"},
	)

	series, err := DepartureRateByRaise(table)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "11", "25"}, series.Keys())
	assert.Equal(t, []float64{0, 50, 100}, series.Values())
}

func TestTenureByDepartment(t *testing.T) {
	series, err := TenureByDepartment(hrTable(t))
	require.NoError(t, err)
	assert.Equal(t, models.ChartPie, series.Kind)
	assert.Equal(t, []models.Point{
		{Key: "HR", Value: 10},
		{Key: "R&D", Value: 3},
		{Key: "Sales", Value: 4},
	}, series.Points)
}

func TestDepartureRateByOvertime(t *testing.T) {
	series, err := DepartureRateByOvertime(hrTable(t))
	require.NoError(t, err)
	assert.Equal(t, models.ChartBar, series.Kind)
	assert.Equal(t, []models.Point{
		{Key: "No", Value: 0},
		{Key: "Yes", Value: 100},
	}, series.Points)
}

func TestSatisfactionByDepartmentSortedDescending(t *testing.T) {
	series, err := SatisfactionByDepartment(hrTable(t))
	require.NoError(t, err)
	assert.Equal(t, []models.Point{
		{Key: "HR", Value: 4},
		{Key: "R&D", Value: 3},
		{Key: "Sales", Value: 2},
	}, series.Points)
}

func TestGroupMeanSkipsEmptyKeysAndEmptyGroups(t *testing.T) {
	nan := math.NaN()
	points := groupMean(
		[]string{"a", "", "b", "a", "c"},
		nil,
		[]float64{1, 5, nan, 3, 2},
		1,
	)
	assert.Equal(t, []models.Point{{Key: "a", Value: 2}, {Key: "c", Value: 2}}, points)
}

func TestAggregateWithoutDepartment(t *testing.T) {
	table := newTable(t, []string{models.FieldAttrition, models.FieldTenureYears, models.FieldSatisfaction, models.FieldRaisePct, models.FieldOvertime},
		[]string{"Yes", "1", "2", "11", "Yes"},
		[]string{"No", "3", "4", "12", "No"},
	)

	_, err := TenureByDepartment(table)
	assert.ErrorIs(t, err, models.ErrOptionalFieldMissing)
	_, err = SatisfactionByDepartment(table)
	assert.ErrorIs(t, err, models.ErrOptionalFieldMissing)

	report := Aggregate(table)
	require.Len(t, report.Series, 2)
	assert.Equal(t, models.SeriesDepartureByRaise, report.Series[0].ID)
	assert.Equal(t, models.SeriesDepartureByOvertime, report.Series[1].ID)

	require.Len(t, report.Skipped, 2)
	assert.Equal(t, models.SeriesTenureByDepartment, report.Skipped[0].ID)
	assert.Contains(t, report.Skipped[0].Reason, models.FieldDepartment)
	assert.Equal(t, models.SeriesSatisfactionByDepartment, report.Skipped[1].ID)
}

func TestAggregateFullTable(t *testing.T) {
	report := Aggregate(hrTable(t))
	assert.Empty(t, report.Skipped)
	ids := make([]string, len(report.Series))
	for i, s := range report.Series {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{
		models.SeriesTenureByDepartment,
		models.SeriesDepartureByRaise,
		models.SeriesDepartureByOvertime,
		models.SeriesSatisfactionByDepartment,
	}, ids)
}

func TestAggregateIsFreshPerCall(t *testing.T) {
	table := hrTable(t)
	first := Aggregate(table)
	first.Series[0].Points[0].Value = -1

	second := Aggregate(table)
	assert.Equal(t, 10.0, second.Series[0].Points[0].Value)
}
