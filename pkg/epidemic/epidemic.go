package epidemic

import (
	"math"

	"github.com/ja7ad/epidemic/pkg/util"
)

// rates holds the per-day coefficients of one run.
type rates struct {
	beta  float64 // contact rate
	gamma float64 // recovery rate
	birth float64 // per capita per day
	death float64 // per capita per day
}

// flows are the raw Euler transfers of one day, before clamping.
type flows struct {
	births     float64
	infections float64
	recoveries float64
	deathsS    float64
	deathsI    float64
	deathsR    float64
}

// ComputeNonVital integrates the closed-population SIR system:
//
//	dS/dt = -β·S·I/N
//	dI/dt =  β·S·I/N - γ·I
//	dR/dt =  γ·I
//
// with N fixed at cfg.Population().
func ComputeNonVital(cfg Config) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	rt := rates{beta: cfg.contactRate, gamma: cfg.recoveryRate}
	n := float64(cfg.population)
	return integrate(cfg, NonVital, func(p Point) Point {
		return advance(p, n, rt)
	}), nil
}

// ComputeVital integrates the open-population SIR system:
//
//	dS/dt = b·N - β·S·I/N - μ·S
//	dI/dt =       β·S·I/N - γ·I - μ·I
//	dR/dt =       γ·I           - μ·R
//
// N is recomputed from S+I+R every day. b and μ are the configured birth
// and death rates converted with PerDayRate.
func ComputeVital(cfg Config) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if !cfg.hasVital {
		return nil, configErr("death_rate/birth_rate", nil, "required by the vital variant")
	}
	rt := rates{
		beta:  cfg.contactRate,
		gamma: cfg.recoveryRate,
		birth: PerDayRate(cfg.birthRate),
		death: PerDayRate(cfg.deathRate),
	}
	return integrate(cfg, Vital, func(p Point) Point {
		return advance(p, p.Total(), rt)
	}), nil
}

// Compute dispatches on v.
func Compute(cfg Config, v Variant) (*Result, error) {
	switch v {
	case NonVital:
		return ComputeNonVital(cfg)
	case Vital:
		return ComputeVital(cfg)
	default:
		return nil, configErr("variant", v.String(), "expected non-vital or vital")
	}
}

func (c Config) check() error {
	if !c.valid {
		return configErr("config", nil, "not built with NewConfig")
	}
	return nil
}

// integrate runs exactly cfg.days explicit one-day steps from the day-0
// condition: one infectious individual, everyone else susceptible.
func integrate(cfg Config, v Variant, step func(Point) Point) *Result {
	points := make([]Point, cfg.days+1)
	points[0] = Point{S: float64(cfg.population - 1), I: 1, R: 0}
	for t := 1; t <= cfg.days; t++ {
		points[t] = step(points[t-1])
	}
	return &Result{cfg: cfg, variant: v, points: points}
}

// advance performs one explicit Euler step of a day. N is the mixing
// population used in the incidence term β·S·I/N.
func advance(p Point, n float64, rt rates) Point {
	f := flows{
		births:     rt.birth * n,
		infections: util.SafeDiv(rt.beta*p.S*p.I, n),
		recoveries: rt.gamma * p.I,
		deathsS:    rt.death * p.S,
		deathsI:    rt.death * p.I,
		deathsR:    rt.death * p.R,
	}
	return settle(p, f)
}

// settle applies f to p with the zero floor clamp: a compartment cannot lose
// more than it holds during a step. When the raw Euler outflows of a
// compartment exceed its size they are scaled down together so it lands on
// zero instead of going negative. The clipped amount never reaches the
// receiving compartment, so S+I+R still changes only by births - deaths.
func settle(p Point, f flows) Point {
	infections, deathsS := capOutflow(p.S, f.infections, f.deathsS)
	recoveries, deathsI := capOutflow(p.I, f.recoveries, f.deathsI)
	deathsR, _ := capOutflow(p.R, f.deathsR, 0)

	return Point{
		S: util.ClampFloor(p.S+f.births-infections-deathsS, 0),
		I: util.ClampFloor(p.I+infections-recoveries-deathsI, 0),
		R: util.ClampFloor(p.R+recoveries-deathsR, 0),
	}
}

// capOutflow scales the pair (a, b) so that a+b <= stock.
func capOutflow(stock, a, b float64) (float64, float64) {
	a, b = math.Max(a, 0), math.Max(b, 0)
	total := a + b
	if stock <= 0 {
		return 0, 0
	}
	if total <= stock {
		return a, b
	}
	k := stock / total
	return a * k, b * k
}
