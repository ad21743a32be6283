package charts

import (
	"testing"

	"github.com/aristath/allocator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	points := []domain.FrontierPoint{
		{Tolerance: 0, Risk: 0, Return: 0},
		{Tolerance: 25, Risk: 25, Return: 40},
		{Tolerance: 50, Risk: 25, Return: 40},
		{Tolerance: 55, Risk: 55, Return: 60},
	}

	s := Summarize(points)

	assert.Equal(t, 4, s.Points)
	assert.Equal(t, 3, s.DistinctPoints)
	assert.Equal(t, 3, s.Efficient)
	assert.Equal(t, 0.0, s.MinRisk)
	assert.Equal(t, 55.0, s.MaxRisk)
	assert.Equal(t, 0.0, s.MinReturn)
	assert.Equal(t, 60.0, s.MaxReturn)
	assert.InDelta(t, 35.0, s.MeanReturn, 1e-9)
	assert.Greater(t, s.Correlation, 0.9)
	assert.LessOrEqual(t, s.Correlation, 1.0)
}

func TestSummarize_Degenerate(t *testing.T) {
	assert.Equal(t, FrontierSummary{}, Summarize(nil))

	flat := []domain.FrontierPoint{
		{Tolerance: 0, Risk: 0, Return: 0},
		{Tolerance: 5, Risk: 0, Return: 0},
	}
	s := Summarize(flat)
	assert.Equal(t, 2, s.Points)
	assert.Equal(t, 1, s.DistinctPoints)
	assert.Equal(t, 0.0, s.Correlation)

	single := Summarize([]domain.FrontierPoint{{Tolerance: 100, Risk: 70, Return: 12}})
	assert.Equal(t, 70.0, single.MinRisk)
	assert.Equal(t, 12.0, single.MeanReturn)
	assert.Equal(t, 0.0, single.Correlation)
}
