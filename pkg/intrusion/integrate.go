package intrusion

import (
	"gonum.org/v1/gonum/integrate"
)

// Trapezoid integrates y over the ascending abscissae x with the trapezoidal rule.
// A curve of fewer than two points has no extent and integrates to zero.
func Trapezoid(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	return integrate.Trapezoidal(x, y)
}
