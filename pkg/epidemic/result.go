package epidemic

import "iter"

// Result is the trajectory of one run: Len() == days+1 points indexed by day.
// It is never modified after Compute returns.
type Result struct {
	cfg     Config
	variant Variant
	points  []Point
}

// Config returns the configuration the run was computed from.
func (r *Result) Config() Config { return r.cfg }

// Variant returns the integration variant of the run.
func (r *Result) Variant() Variant { return r.variant }

// Len returns the number of stored days (days+1).
func (r *Result) Len() int { return len(r.points) }

// At returns the compartments on day t. It panics when t is out of range.
func (r *Result) At(t int) Point { return r.points[t] }

// Initial returns day 0.
func (r *Result) Initial() Point { return r.points[0] }

// Final returns the last simulated day.
func (r *Result) Final() Point { return r.points[len(r.points)-1] }

// Population returns S+I+R on day t.
func (r *Result) Population(t int) float64 { return r.points[t].Total() }

// Points returns a copy of the trajectory.
func (r *Result) Points() []Point {
	out := make([]Point, len(r.points))
	copy(out, r.points)
	return out
}

// Peak returns the day on which the infectious compartment is largest and
// its size. Ties keep the earliest day.
func (r *Result) Peak() (day int, infectious float64) {
	for t, p := range r.points {
		if p.I > infectious {
			day, infectious = t, p.I
		}
	}
	return day, infectious
}

// ScaledView lazily yields (day, point/magnitude) for every stored day.
// The stored trajectory is left untouched; each call returns an
// independent sequence.
func (r *Result) ScaledView(magnitude float64) (iter.Seq2[int, Point], error) {
	return r.SampledView(1, magnitude)
}

// SampledView is ScaledView restricted to days that are multiples of step.
// The final day is always included so the view ends where the run ends.
func (r *Result) SampledView(step int, magnitude float64) (iter.Seq2[int, Point], error) {
	if !(magnitude > 0) {
		return nil, configErr("magnitude", magnitude, "must be > 0")
	}
	if step <= 0 {
		return nil, configErr("step", step, "must be > 0")
	}
	points := r.points
	return func(yield func(int, Point) bool) {
		last := len(points) - 1
		for t := 0; t <= last; t += step {
			if !yield(t, points[t].Scale(magnitude)) {
				return
			}
		}
		if last%step != 0 {
			yield(last, points[last].Scale(magnitude))
		}
	}, nil
}
