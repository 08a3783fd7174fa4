package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrBelowDomain      = errors.New("value below histogram domain")
	ErrInvalidHistogram = errors.New("invalid histogram")
)

// Histogram maps a continuous value to a per-bin value.
// Edges has one more entry than Values. Counts is optional.
type Histogram struct {
	Edges  []float64 `json:"edges" yaml:"edges"`
	Values []float64 `json:"values" yaml:"values"`
	Counts []int     `json:"counts,omitempty" yaml:"counts,omitempty"`
}

func (h Histogram) Validate() error {
	if len(h.Edges) < 2 {
		return fmt.Errorf("%w: need at least 2 edges, got %d", ErrInvalidHistogram, len(h.Edges))
	}
	for i := 1; i < len(h.Edges); i++ {
		if h.Edges[i] <= h.Edges[i-1] {
			return fmt.Errorf("%w: edges not strictly ascending at %d", ErrInvalidHistogram, i)
		}
	}
	if len(h.Values) != len(h.Edges)-1 {
		return fmt.Errorf("%w: %d values for %d edges",
			ErrInvalidHistogram, len(h.Values), len(h.Edges))
	}
	if len(h.Counts) != 0 && len(h.Counts) != len(h.Edges)-1 {
		return fmt.Errorf("%w: %d counts for %d edges",
			ErrInvalidHistogram, len(h.Counts), len(h.Edges))
	}
	return nil
}

// Lookup returns Values[j] for the first bin with Edges[j] <= x < Edges[j+1].
// Values at or beyond the last edge resolve to the last bin.
// Values below the first edge indicate a calibration mismatch and
// return ErrBelowDomain.
func (h Histogram) Lookup(x float64) (float64, error) {
	if len(h.Values) == 0 || len(h.Edges) != len(h.Values)+1 {
		return 0, ErrInvalidHistogram
	}
	if x < h.Edges[0] {
		return 0, fmt.Errorf("%w: %v < %v", ErrBelowDomain, x, h.Edges[0])
	}
	for j := range h.Values {
		if x < h.Edges[j+1] {
			return h.Values[j], nil
		}
	}
	return h.Values[len(h.Values)-1], nil
}

// NewHistogram bins samples into equal width bins over [min, max] where the
// last bin is closed. Only Edges and Counts are set.
func NewHistogram(samples []float64, bins int) (Histogram, error) {
	if bins < 1 {
		return Histogram{}, fmt.Errorf("%w: bins must be positive, got %d", ErrInvalidHistogram, bins)
	}
	if len(samples) == 0 {
		return Histogram{}, fmt.Errorf("%w: no samples", ErrInvalidHistogram)
	}
	lo, hi := floats.Min(samples), floats.Max(samples)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[bins] = hi

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	// stat.Histogram needs the last divider to be above the max sample
	dividers := append([]float64(nil), edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	raw := stat.Histogram(nil, dividers, sorted, nil)

	counts := make([]int, bins)
	for i, c := range raw {
		counts[i] = int(c)
	}
	return Histogram{Edges: edges, Counts: counts}, nil
}
