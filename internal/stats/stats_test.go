package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePercentage(t *testing.T) {
	t.Run("Relative change with nonzero baseline", func(t *testing.T) {
		assert.InDelta(t, 50.0, CalculatePercentage(150, 100), 1e-9)
		assert.InDelta(t, -25.0, CalculatePercentage(75, 100), 1e-9)
		assert.InDelta(t, 0.0, CalculatePercentage(40, 40), 1e-9)
	})

	t.Run("Zero baseline reports current times hundred", func(t *testing.T) {
		assert.InDelta(t, 700.0, CalculatePercentage(7, 0), 1e-9)
		assert.InDelta(t, 0.0, CalculatePercentage(0, 0), 1e-9)
	})
}

func TestChartData(t *testing.T) {
	today := time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

	t.Run("Document two months back lands in bucket length-1-2", func(t *testing.T) {
		docs := []ChartDoc{
			{CreatedAt: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), Value: 1},
		}
		data := ChartData(6, today, docs)
		require.Len(t, data, 6)
		assert.Equal(t, []float64{0, 0, 0, 1, 0, 0}, data)
	})

	t.Run("Document eight months back contributes nothing to a six bucket series", func(t *testing.T) {
		docs := []ChartDoc{
			{CreatedAt: time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC), Value: 1},
		}
		assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, ChartData(6, today, docs))
	})

	t.Run("Same calendar month of an earlier year lands in the current bucket", func(t *testing.T) {
		docs := []ChartDoc{
			{CreatedAt: time.Date(2022, time.July, 1, 0, 0, 0, 0, time.UTC), Value: 1},
		}
		data := ChartData(6, today, docs)
		assert.Equal(t, 1.0, data[5])
	})

	t.Run("Values accumulate per bucket", func(t *testing.T) {
		docs := []ChartDoc{
			{CreatedAt: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), Value: 120},
			{CreatedAt: time.Date(2024, time.June, 20, 0, 0, 0, 0, time.UTC), Value: 30},
			{CreatedAt: time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC), Value: 5},
		}
		data := ChartData(6, today, docs)
		assert.Equal(t, 150.0, data[4])
		assert.Equal(t, 5.0, data[5])
	})
}

type fakeCategoryCounter map[string]int64

func (f fakeCategoryCounter) CountByCategory(_ context.Context, category string) (int64, error) {
	return f[category], nil
}

func TestInventories(t *testing.T) {
	counter := fakeCategoryCounter{"laptop": 3, "shoes": 1}

	t.Run("Rounded share per category, order preserved", func(t *testing.T) {
		out, err := Inventories(context.Background(), counter, []string{"laptop", "shoes"}, 4)
		require.NoError(t, err)
		assert.Equal(t, []map[string]int{{"laptop": 75}, {"shoes": 25}}, out)
	})

	t.Run("Idempotent for unchanged data", func(t *testing.T) {
		first, err := Inventories(context.Background(), counter, []string{"laptop", "shoes"}, 4)
		require.NoError(t, err)
		second, err := Inventories(context.Background(), counter, []string{"laptop", "shoes"}, 4)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Zero total yields zero shares instead of dividing by zero", func(t *testing.T) {
		out, err := Inventories(context.Background(), counter, []string{"laptop"}, 0)
		require.NoError(t, err)
		assert.Equal(t, []map[string]int{{"laptop": 0}}, out)
	})
}
