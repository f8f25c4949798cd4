package stats

import (
	"fmt"
	"math"

	"github.com/pivolan/attrition_dashboard/dataset"
	"github.com/pivolan/attrition_dashboard/domain/models"
)

// ComputeKPIs returns the headline numbers of the dashboard.
func ComputeKPIs(table *dataset.Table) (models.KPISet, error) {
	if table == nil || table.Len() == 0 {
		return models.KPISet{}, fmt.Errorf("%w: no records to summarize", models.ErrEmptyDataset)
	}

	departed := table.Departed()
	quit := 0
	for _, d := range departed {
		quit += int(d)
	}
	departureRate := float64(quit) / float64(len(departed)) * 100

	return models.KPISet{
		TotalCount:          len(departed),
		DepartedCount:       quit,
		DepartureRatePct:    departureRate,
		RetentionRatePct:    100 - departureRate,
		MeanCommuteDistance: columnMean(table, models.FieldCommute),
		MeanSatisfaction:    columnMean(table, models.FieldSatisfaction),
		MeanAge:             columnMean(table, models.FieldAge),
	}, nil
}

func columnMean(table *dataset.Table, field string) models.Mean {
	values, ok := table.Numbers(field)
	if !ok {
		return models.Mean{}
	}
	return mean(values)
}

// mean skips NaN values. Valid is false when nothing is left.
func mean(values []float64) models.Mean {
	sum, n := 0.0, 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return models.Mean{}
	}
	return models.Mean{Value: sum / float64(n), Valid: true}
}
