package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pivolan/go_utils"

	"github.com/pivolan/attrition_dashboard/domain/models"
)

// maxNumericValue bounds every numeric field; larger magnitudes are corrupt.
const maxNumericValue = 1e9

var (
	// numericFields are parsed once at load; a missing value is stored as NaN.
	numericFields = []string{
		models.FieldTenureYears,
		models.FieldCommute,
		models.FieldSatisfaction,
		models.FieldRaisePct,
		models.FieldAge,
	}
	droppedFields = []string{models.FieldHeadcount, models.FieldAdult}
	missingTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}
	attritionMap  = map[string]int8{"Yes": 1, "No": 0}
)

// Table is the loaded employee dataset. It is never mutated after
// construction and is safe to share between goroutines; accessors return
// copies.
type Table struct {
	source   string
	columns  []string
	text     map[string][]string
	numbers  map[string][]float64
	departed []int8
	caps     models.Capabilities
}

// NewTable builds a table from a header row and data rows. It derives the
// departed column, validates numeric fields and drops the constant columns.
func NewTable(source string, headers []string, rows [][]string) (*Table, error) {
	attritionIdx := indexOf(headers, models.FieldAttrition)
	if attritionIdx < 0 {
		return nil, fmt.Errorf("%w: %s: required column %q is missing", models.ErrDataIntegrity, source, models.FieldAttrition)
	}

	t := &Table{
		source:   source,
		text:     make(map[string][]string),
		numbers:  make(map[string][]float64),
		departed: make([]int8, len(rows)),
	}
	for _, header := range headers {
		if go_utils.InArray(header, droppedFields) {
			continue
		}
		t.columns = append(t.columns, header)
		t.text[header] = make([]string, len(rows))
	}

	for r, row := range rows {
		if len(row) > len(headers) {
			return nil, fmt.Errorf("%w: %s line %d: expected %d fields, saw %d", models.ErrDataUnavailable, source, r+2, len(headers), len(row))
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		status := strings.TrimSpace(row[attritionIdx])
		value, ok := attritionMap[status]
		if !ok {
			// line numbers count the header as line 1
			return nil, fmt.Errorf("%w: %s line %d: unmapped %s value %q", models.ErrDataIntegrity, source, r+2, models.FieldAttrition, status)
		}
		t.departed[r] = value
		for c, header := range headers {
			if col, ok := t.text[header]; ok {
				col[r] = row[c]
			}
		}
	}

	for _, field := range numericFields {
		raw, ok := t.text[field]
		if !ok {
			continue
		}
		parsed := make([]float64, len(raw))
		for r, v := range raw {
			v = strings.TrimSpace(v)
			if go_utils.InArray(v, missingTokens) {
				parsed[r] = math.NaN()
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %s value %q is not numeric", models.ErrDataIntegrity, source, r+2, field, v)
			}
			if math.IsInf(f, 0) || math.Abs(f) > maxNumericValue {
				return nil, fmt.Errorf("%w: %s line %d: %s value %q is out of range", models.ErrDataIntegrity, source, r+2, field, v)
			}
			parsed[r] = f
		}
		t.numbers[field] = parsed
	}

	t.columns = append(t.columns, models.FieldDeparted)
	t.caps = negotiate(t)
	return t, nil
}

// negotiate decides which optional aggregates the table can feed.
func negotiate(t *Table) models.Capabilities {
	caps := models.Capabilities{Missing: map[string][]string{}}
	need := func(seriesID string, fields ...string) bool {
		var missing []string
		for _, f := range fields {
			if !t.HasColumn(f) {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			caps.Missing[seriesID] = missing
			return false
		}
		return true
	}
	caps.TenureByDepartment = need(models.SeriesTenureByDepartment, models.FieldDepartment, models.FieldTenureYears)
	caps.DepartureByRaise = need(models.SeriesDepartureByRaise, models.FieldRaisePct)
	caps.DepartureByOvertime = need(models.SeriesDepartureByOvertime, models.FieldOvertime)
	caps.SatisfactionByDepartment = need(models.SeriesSatisfactionByDepartment, models.FieldDepartment, models.FieldSatisfaction)
	return caps
}

func (t *Table) Source() string { return t.source }

func (t *Table) Len() int { return len(t.departed) }

func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

func (t *Table) HasColumn(name string) bool {
	if name == models.FieldDeparted {
		return true
	}
	_, ok := t.text[name]
	return ok
}

func (t *Table) Capabilities() models.Capabilities {
	caps := t.caps
	caps.Missing = make(map[string][]string, len(t.caps.Missing))
	for k, v := range t.caps.Missing {
		caps.Missing[k] = append([]string(nil), v...)
	}
	return caps
}

// Text returns the raw values of a column with surrounding spaces trimmed.
func (t *Table) Text(name string) ([]string, bool) {
	col, ok := t.text[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(col))
	for i, v := range col {
		out[i] = strings.TrimSpace(v)
	}
	return out, true
}

// Numbers returns a parsed numeric column; NaN marks a missing value.
func (t *Table) Numbers(name string) ([]float64, bool) {
	if name == models.FieldDeparted {
		out := make([]float64, len(t.departed))
		for i, d := range t.departed {
			out[i] = float64(d)
		}
		return out, true
	}
	col, ok := t.numbers[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), col...), true
}

func (t *Table) Departed() []int8 {
	return append([]int8(nil), t.departed...)
}

func indexOf(a []string, x string) int {
	for i, s := range a {
		if s == x {
			return i
		}
	}
	return -1
}
