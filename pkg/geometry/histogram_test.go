package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramLookup(t *testing.T) {
	h := Histogram{Edges: []float64{0, 1, 2, 3}, Values: []float64{10, 20, 30}}
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{name: "first edge", x: 0, want: 10},
		{name: "inside first bin", x: 0.5, want: 10},
		{name: "inner edge belongs to upper bin", x: 1, want: 20},
		{name: "just below last edge", x: 2.999, want: 30},
		{name: "last edge", x: 3, want: 30},
		{name: "beyond last edge", x: 10, want: 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.Lookup(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := h.Lookup(-0.1)
	assert.ErrorIs(t, err, ErrBelowDomain)
}

func TestHistogramValidate(t *testing.T) {
	tests := []struct {
		name    string
		h       Histogram
		wantErr bool
	}{
		{name: "ok", h: Histogram{Edges: []float64{0, 1}, Values: []float64{1}}},
		{
			name: "ok with counts",
			h:    Histogram{Edges: []float64{0, 1, 2}, Values: []float64{1, 2}, Counts: []int{3, 4}},
		},
		{name: "too few edges", h: Histogram{Edges: []float64{0}}, wantErr: true},
		{
			name:    "not ascending",
			h:       Histogram{Edges: []float64{0, 2, 1}, Values: []float64{1, 2}},
			wantErr: true,
		},
		{
			name:    "value count mismatch",
			h:       Histogram{Edges: []float64{0, 1, 2}, Values: []float64{1}},
			wantErr: true,
		},
		{
			name:    "count mismatch",
			h:       Histogram{Edges: []float64{0, 1, 2}, Values: []float64{1, 2}, Counts: []int{1}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.h.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHistogram)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewHistogram(t *testing.T) {
	tests := []struct {
		name       string
		samples    []float64
		bins       int
		wantEdges  []float64
		wantCounts []int
	}{
		{
			name:       "max lands in last bin",
			samples:    []float64{4, 0, 3, 1, 2},
			bins:       2,
			wantEdges:  []float64{0, 2, 4},
			wantCounts: []int{2, 3},
		},
		{
			name:       "constant samples",
			samples:    []float64{1, 1, 1},
			bins:       2,
			wantEdges:  []float64{0.5, 1, 1.5},
			wantCounts: []int{0, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHistogram(tt.samples, tt.bins)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.wantEdges, h.Edges, eps)
			assert.Equal(t, tt.wantCounts, h.Counts)
		})
	}

	_, err := NewHistogram(nil, 3)
	assert.ErrorIs(t, err, ErrInvalidHistogram)
	_, err = NewHistogram([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidHistogram)
}
