package charts

import (
	"testing"

	"github.com/aristath/allocator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEfficientPoints(t *testing.T) {
	tests := []struct {
		name     string
		points   []domain.FrontierPoint
		expected []domain.FrontierPoint
	}{
		{
			name:     "empty",
			points:   nil,
			expected: []domain.FrontierPoint{},
		},
		{
			name: "monotone frontier keeps every distinct step",
			points: []domain.FrontierPoint{
				{Tolerance: 0, Risk: 0, Return: 0},
				{Tolerance: 5, Risk: 0, Return: 0},
				{Tolerance: 25, Risk: 25, Return: 40},
				{Tolerance: 55, Risk: 55, Return: 60},
			},
			expected: []domain.FrontierPoint{
				{Tolerance: 0, Risk: 0, Return: 0},
				{Tolerance: 25, Risk: 25, Return: 40},
				{Tolerance: 55, Risk: 55, Return: 60},
			},
		},
		{
			name: "dominated points dropped",
			points: []domain.FrontierPoint{
				{Tolerance: 30, Risk: 30, Return: 20},
				{Tolerance: 35, Risk: 25, Return: 30},
				{Tolerance: 40, Risk: 25, Return: 25},
				{Tolerance: 45, Risk: 40, Return: 30},
			},
			expected: []domain.FrontierPoint{
				{Tolerance: 35, Risk: 25, Return: 30},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EfficientPoints(tt.points))
		})
	}
}
