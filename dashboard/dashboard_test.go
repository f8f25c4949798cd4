package dashboard

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/domain/models"
)

func hrTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable("hr.csv",
		[]string{models.FieldAttrition, models.FieldDepartment, models.FieldTenureYears, models.FieldCommute,
			models.FieldSatisfaction, models.FieldRaisePct, models.FieldOvertime, models.FieldAge},
		[][]string{
			{"Yes", "Sales", "2", "10", "1", "11", "Yes", "30"},
			{"No", "Sales", "6", "2", "3", "14.5", "No", "40"},
			{"No", "HR", "10", "", "4", "15.5", "No", "50"},
			{"Yes", "R&D", "1", "4", "2", "12", "Yes", "32"},
		})
	require.NoError(t, err)
	return table
}

func TestBuild(t *testing.T) {
	view, err := Build(hrTable(t))
	require.NoError(t, err)

	assert.NotEmpty(t, view.RenderID)
	assert.Equal(t, "hr.csv", view.Source)
	assert.Len(t, view.Report.Series, 4)
	assert.Equal(t, []Tile{
		{Label: "전체 직원 수", Value: "4명"},
		{Label: "퇴직자 수", Value: "2명"},
		{Label: "유지율", Value: "50.0%"},
		{Label: "퇴직율", Value: "50.0%"},
		{Label: "평균 귀가 거리", Value: "5.33 km"},
		{Label: "평균 업무 만족도", Value: "2.50/5"},
		{Label: "평균 나이", Value: "38.0세"},
	}, view.Tiles)

	s, ok := view.Series(models.SeriesDepartureByOvertime)
	require.True(t, ok)
	assert.Equal(t, models.ChartBar, s.Kind)
	_, ok = view.Series("unknown")
	assert.False(t, ok)

	other, err := Build(hrTable(t))
	require.NoError(t, err)
	assert.NotEqual(t, view.RenderID, other.RenderID)
}

func TestBuildEmpty(t *testing.T) {
	table, err := dataset.NewTable("empty.csv", []string{models.FieldAttrition}, nil)
	require.NoError(t, err)

	_, err = Build(table)
	assert.ErrorIs(t, err, models.ErrEmptyDataset)
}

func TestTilesMissingMeans(t *testing.T) {
	tiles := Tiles(models.KPISet{TotalCount: 1470, DepartedCount: 237, RetentionRatePct: 83.877, DepartureRatePct: 16.122})
	assert.Equal(t, "1,470명", tiles[0].Value)
	assert.Equal(t, "237명", tiles[1].Value)
	assert.Equal(t, "83.9%", tiles[2].Value)
	assert.Equal(t, "16.1%", tiles[3].Value)
	for _, tile := range tiles[4:] {
		assert.Equal(t, "-", tile.Value, tile.Label)
	}
}

func TestRenderPage(t *testing.T) {
	view, err := Build(hrTable(t))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, RenderPage(buf, view))
	html := buf.String()

	assert.Contains(t, html, PageTitle)
	assert.Contains(t, html, "4명")
	assert.Contains(t, html, `src="/charts/`+models.SeriesTenureByDepartment+`"`)
	assert.Contains(t, html, "지금 우리는")
	assert.Contains(t, html, "ㅠㅠ")
	assert.NotContains(t, html, `class="notice"`)
}

func TestRenderPageSkipped(t *testing.T) {
	table, err := dataset.NewTable("hr.csv",
		[]string{models.FieldAttrition, models.FieldOvertime},
		[][]string{{"Yes", "Yes"}, {"No", "No"}})
	require.NoError(t, err)
	view, err := Build(table)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, RenderPage(buf, view))
	html := buf.String()
	assert.Contains(t, html, `src="/charts/`+models.SeriesDepartureByOvertime+`"`)
	assert.NotContains(t, html, `src="/charts/`+models.SeriesTenureByDepartment+`"`)
	assert.Contains(t, html, `class="notice"`)
}

func TestRenderErrorPage(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, RenderErrorPage(buf, UnavailableMessage("HR Data.csv")))
	html := buf.String()

	assert.Contains(t, html, "데이터가 없습니다. &#39;HR Data.csv&#39; 파일을 확인하세요.")
	assert.NotContains(t, html, `class="tile"`)
	assert.NotContains(t, html, "<iframe")
}

func TestRenderChart(t *testing.T) {
	kinds := []models.ChartKind{models.ChartPie, models.ChartLine, models.ChartBar}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			buf := &bytes.Buffer{}
			err := RenderChart(buf, models.Series{
				ID:     "test",
				Title:  "Departure rate",
				Kind:   kind,
				XLabel: "raise",
				YLabel: "rate",
				Points: []models.Point{{Key: "11", Value: 19.54}, {Key: "12", Value: 16.6}},
			})
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "echarts")
			assert.Contains(t, buf.String(), "Departure rate")
		})
	}

	assert.Error(t, RenderChart(&bytes.Buffer{}, models.Series{ID: "empty"}))
}

func TestRenderText(t *testing.T) {
	view, err := Build(hrTable(t))
	require.NoError(t, err)

	text := RenderText(view)
	assert.True(t, strings.HasPrefix(text, PageTitle))
	assert.Contains(t, text, "전체 직원 수")
	assert.Contains(t, text, "야근정도별 퇴직율")
	assert.Contains(t, text, "100.0")
}

func TestSlug(t *testing.T) {
	ascii := regexp.MustCompile(`^[a-z0-9_]+$`)
	for _, title := range []string{"부서별 평균 근속연수", "급여인상율과 퇴직율", "Departure / Rate (%)"} {
		assert.Regexp(t, ascii, Slug(title), title)
	}
	assert.Equal(t, "departure_rate", Slug("Departure / Rate (%)"))
	assert.Equal(t, "chart", Slug("%%%"))
}

func TestChartFileName(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	name := ChartFileName(models.Series{Title: "Overtime"}, at)
	assert.Equal(t, "overtime_20240301-123000.png", name)
}
