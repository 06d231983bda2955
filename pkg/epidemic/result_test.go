package epidemic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA(t *testing.T) *Result {
	t.Helper()
	res, err := ComputeNonVital(mustConfig(t, Params{Population: 1000, Days: 10, ContactRate: 0.3, MeanRecoveryRate: 0.1}))
	require.NoError(t, err)
	return res
}

func TestResult_ScaledView(t *testing.T) {
	res := scenarioA(t)
	before := res.Points()

	view, err := res.ScaledView(1000)
	require.NoError(t, err)

	days := 0
	for day, p := range view {
		raw := res.At(day)
		assert.InDelta(t, raw.S/1000, p.S, 1e-15)
		assert.InDelta(t, raw.I/1000, p.I, 1e-15)
		assert.InDelta(t, raw.R/1000, p.R, 1e-15)
		assert.InDelta(t, 1.0, p.Total(), 1e-12)
		days++
	}
	assert.Equal(t, res.Len(), days)
	assert.Equal(t, before, res.Points(), "view must not alter the stored result")
}

func TestResult_IndependentViews(t *testing.T) {
	res := scenarioA(t)

	thousands, err := res.ScaledView(1000)
	require.NoError(t, err)
	ones, err := res.ScaledView(1)
	require.NoError(t, err)

	var a, b []Point
	for _, p := range thousands {
		a = append(a, p)
	}
	for _, p := range ones {
		b = append(b, p)
	}
	require.Len(t, a, 11)
	require.Len(t, b, 11)
	assert.Equal(t, res.Points(), b)
	assert.Equal(t, 0.999, a[0].S)

	// a view can be ranged again
	n := 0
	for range thousands {
		n++
	}
	assert.Equal(t, 11, n)
}

func TestResult_ViewEarlyBreak(t *testing.T) {
	res := scenarioA(t)
	view, err := res.ScaledView(1)
	require.NoError(t, err)
	seen := 0
	for day := range view {
		seen++
		if day == 3 {
			break
		}
	}
	assert.Equal(t, 4, seen)
}

func TestResult_SampledView(t *testing.T) {
	res := scenarioA(t)

	view, err := res.SampledView(7, 1)
	require.NoError(t, err)
	var days []int
	for d := range view {
		days = append(days, d)
	}
	assert.Equal(t, []int{0, 7, 10}, days, "final day is always included")

	view, err = res.SampledView(5, 1)
	require.NoError(t, err)
	days = days[:0]
	for d := range view {
		days = append(days, d)
	}
	assert.Equal(t, []int{0, 5, 10}, days)
}

func TestResult_ViewRejectsBadArguments(t *testing.T) {
	res := scenarioA(t)
	for _, m := range []float64{0, -1000} {
		_, err := res.ScaledView(m)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
	_, err := res.SampledView(0, 1)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestResult_Accessors(t *testing.T) {
	res := scenarioA(t)
	assert.Equal(t, NonVital, res.Variant())
	assert.Equal(t, 1000, res.Config().Population())
	assert.Equal(t, res.At(0), res.Initial())
	assert.Equal(t, res.At(10), res.Final())
	assert.InDelta(t, 1000.0, res.Population(5), 1e-9)

	pts := res.Points()
	pts[0].S = -1
	assert.Equal(t, 999.0, res.Initial().S, "Points returns a copy")
}

func TestResult_Peak(t *testing.T) {
	res, err := ComputeNonVital(mustConfig(t, Params{Population: 1000, Days: 200, ContactRate: 0.3, MeanRecoveryRate: 0.1}))
	require.NoError(t, err)

	day, peak := res.Peak()
	require.Greater(t, day, 0)
	require.Less(t, day, 200)
	for d := 0; d < res.Len(); d++ {
		assert.LessOrEqual(t, res.At(d).I, peak)
	}
	assert.Equal(t, peak, res.At(day).I)
	t.Logf("peak day=%d infectious=%.2f", day, peak)
}
