package models

type ChartKind string

const (
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// Canonical column names of the HR dataset.
const (
	FieldAttrition    = "퇴직여부" // Yes/No
	FieldDeparted     = "퇴직"   // derived 0/1
	FieldDepartment   = "부서"
	FieldTenureYears  = "근속연수"
	FieldCommute      = "집과의거리"
	FieldSatisfaction = "업무환경만족도" // 1-5
	FieldRaisePct     = "급여증가분백분율"
	FieldOvertime     = "야근정도"
	FieldAge          = "나이"
	FieldHeadcount    = "직원수"   // constant, dropped
	FieldAdult        = "18세이상" // constant, dropped
)

// Series identifiers, also used as chart route names.
const (
	SeriesTenureByDepartment       = "tenure_by_department"
	SeriesDepartureByRaise         = "departure_by_raise"
	SeriesDepartureByOvertime      = "departure_by_overtime"
	SeriesSatisfactionByDepartment = "satisfaction_by_department"
)

// Mean is an average that may be absent when the column has no values.
type Mean struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

type KPISet struct {
	TotalCount          int     `json:"total_count"`
	DepartedCount       int     `json:"departed_count"`
	RetentionRatePct    float64 `json:"retention_rate_pct"`
	DepartureRatePct    float64 `json:"departure_rate_pct"`
	MeanCommuteDistance Mean    `json:"mean_commute_distance"`
	MeanSatisfaction    Mean    `json:"mean_satisfaction"`
	MeanAge             Mean    `json:"mean_age"`
}

type Point struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type Series struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   ChartKind `json:"kind"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Points []Point   `json:"points"`
}

func (s Series) Keys() []string {
	keys := make([]string, len(s.Points))
	for i, p := range s.Points {
		keys[i] = p.Key
	}
	return keys
}

func (s Series) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Capabilities records which optional aggregates a loaded table supports.
// Missing lists the absent fields per series id.
type Capabilities struct {
	TenureByDepartment       bool                `json:"tenure_by_department"`
	DepartureByRaise         bool                `json:"departure_by_raise"`
	DepartureByOvertime      bool                `json:"departure_by_overtime"`
	SatisfactionByDepartment bool                `json:"satisfaction_by_department"`
	Missing                  map[string][]string `json:"missing,omitempty"`
}

func (c Capabilities) Can(seriesID string) bool {
	switch seriesID {
	case SeriesTenureByDepartment:
		return c.TenureByDepartment
	case SeriesDepartureByRaise:
		return c.DepartureByRaise
	case SeriesDepartureByOvertime:
		return c.DepartureByOvertime
	case SeriesSatisfactionByDepartment:
		return c.SatisfactionByDepartment
	}
	return false
}

// SkippedSeries is an aggregate that could not be computed for a table.
type SkippedSeries struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type Report struct {
	Series  []Series        `json:"series"`
	Skipped []SkippedSeries `json:"skipped,omitempty"`
}
