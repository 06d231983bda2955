package util

import (
	"math"
	"strconv"
)

// EMA is an exponential moving average. The first sample seeds the state.
type EMA struct {
	alpha, prev float64
	ok          bool
}

func NewEMA(alpha float64) *EMA { return &EMA{alpha: alpha} }
func (e *EMA) Next(v float64) float64 {
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

// Smooth runs a fresh EMA over values and returns the smoothed copy.
// alpha outside (0,1) returns values unchanged.
func Smooth(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	if alpha <= 0 || alpha >= 1 {
		copy(out, values)
		return out
	}
	e := NewEMA(alpha)
	for i, v := range values {
		out[i] = e.Next(v)
	}
	return out
}

func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// ClampFloor returns x, or floor when x is below it or NaN.
func ClampFloor(x, floor float64) float64 {
	if math.IsNaN(x) || x < floor {
		return floor
	}
	return x
}

// Clamp returns x limited to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FmtFloat formats v with the shortest representation that round-trips.
func FmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
