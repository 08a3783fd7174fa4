package calibration

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const roundPlaces = 4

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(roundPlaces).InexactFloat64()
}

// ImportanceWeights maps histogram counts to weights in [0,1]. Rare bins get
// higher weights: the inverse frequency of each bin is min-max normalized.
// Empty bins get weight 1, if all bins are equally populated every weight is 1.
func ImportanceWeights(counts []int) []float64 {
	total := float64(lo.Sum(counts))
	filled := lo.Filter(counts, func(c int, _ int) bool { return c > 0 })
	if len(filled) == 0 {
		return lo.Map(counts, func(_ int, _ int) float64 { return 1 })
	}
	factor := func(c int) float64 { return total / float64(c) }
	fMin := factor(lo.Max(filled))
	fMax := factor(lo.Min(filled)) / fMin
	return lo.Map(counts, func(c int, _ int) float64 {
		if c == 0 || fMax == 1 {
			return 1
		}
		f := factor(c) / fMin
		return round((f - 1) / (fMax - 1))
	})
}

// ThrottleValues maps histogram counts into the speed range [low, high].
// The most populated bin gets high, the least populated low.
func ThrottleValues(counts []int, low, high float64) []float64 {
	cMin, cMax := float64(lo.Min(counts)), float64(lo.Max(counts))
	return lo.Map(counts, func(c int, _ int) float64 {
		if cMax == cMin {
			return high
		}
		return round((float64(c)-cMin)/(cMax-cMin)*(high-low) + low)
	})
}
