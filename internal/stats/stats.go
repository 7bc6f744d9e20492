// Package stats holds the arithmetic behind the admin dashboard: period
// change percentages, month-bucketed time series and category inventory
// ratios. All functions are pure so the handlers stay thin.
package stats

import (
	"context"
	"math"
	"time"
)

// CalculatePercentage reports the relative change from previous to current,
// in percent. A zero baseline is expressed as current*100 instead of a
// division by zero; downstream dashboards rely on this exact convention.
func CalculatePercentage(current, previous float64) float64 {
	if previous == 0 {
		return current * 100
	}
	return ((current - previous) / previous) * 100
}

// ChartDoc is one document's contribution to a time series: when it was
// created and how much it adds to its bucket. Count series pass Value 1.
type ChartDoc struct {
	CreatedAt time.Time
	Value     float64
}

// ChartData buckets docs into a series of length months ending at today's
// month: index length-1 is the current month, index 0 the oldest. Documents
// are assigned by month-number difference modulo 12, so a document from the
// same calendar month of an earlier year lands in the recent bucket. That
// mirrors the dashboard's historical behavior and is kept on purpose.
func ChartData(length int, today time.Time, docs []ChartDoc) []float64 {
	data := make([]float64, length)
	for _, doc := range docs {
		monthDiff := (int(today.Month()) - int(doc.CreatedAt.Month()) + 12) % 12
		if monthDiff < length {
			data[length-1-monthDiff] += doc.Value
		}
	}
	return data
}

// CategoryCounter is the one product query Inventories needs.
type CategoryCounter interface {
	CountByCategory(ctx context.Context, category string) (int64, error)
}

// Inventories maps each category to its rounded share of the total product
// count, preserving category order. The result marshals to the dashboard's
// array-of-single-pair objects. A zero total yields zero shares.
func Inventories(ctx context.Context, counter CategoryCounter, categories []string, total int64) ([]map[string]int, error) {
	out := make([]map[string]int, 0, len(categories))
	for _, category := range categories {
		count, err := counter.CountByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(float64(count) / float64(total) * 100))
		}
		out = append(out, map[string]int{category: percentage})
	}
	return out, nil
}
