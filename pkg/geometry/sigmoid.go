package geometry

import "math"

// beyond this exponent magnitude the result is saturated
const sigmoidGuard = 700.0

// Sigmoid is a bounded logistic response:
// ymin + (ymax-ymin) / (1 + exp(-k*(x-x0))).
// Very large exponents return the limit instead of overflowing.
func Sigmoid(x, k, x0, ymin, ymax float64) float64 {
	e := -k * (x - x0)
	switch {
	case e < -sigmoidGuard:
		return ymax
	case e > sigmoidGuard:
		return ymin
	}
	return ymin + (ymax-ymin)/(1+math.Exp(e))
}

// SigmoidParams is a stored parameter set for Sigmoid.
type SigmoidParams struct {
	K    float64 `json:"k" yaml:"k"`
	X0   float64 `json:"x0" yaml:"x0"`
	YMin float64 `json:"ymin" yaml:"ymin"`
	YMax float64 `json:"ymax" yaml:"ymax"`
}

func (s SigmoidParams) Eval(x float64) float64 {
	return Sigmoid(x, s.K, s.X0, s.YMin, s.YMax)
}
