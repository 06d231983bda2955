package epidemic

import (
	"fmt"
	"strings"

	"github.com/ja7ad/epidemic/pkg/util"
)

// VitalRateScale converts the configured birth/death rates, given per 1000
// individuals per year, into per-capita per-day rates used by the daily step.
const VitalRateScale = 365.0 * 1000.0

// PerDayRate converts a per-1000-per-year demographic rate to a per-capita daily rate.
func PerDayRate(perThousandPerYear float64) float64 {
	return perThousandPerYear / VitalRateScale
}

// Variant selects the integration scheme.
type Variant int

const (
	NonVital Variant = iota // closed population
	Vital                   // births and deaths enabled
)

func (v Variant) String() string {
	switch v {
	case NonVital:
		return "non-vital"
	case Vital:
		return "vital"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant accepts "non-vital"/"nonvital"/"closed" and "vital"/"open".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "non-vital", "nonvital", "non_vital", "closed":
		return NonVital, nil
	case "vital", "open":
		return Vital, nil
	default:
		return 0, configErr("variant", s, "expected non-vital or vital")
	}
}

// Params is the raw, unvalidated input to NewConfig.
// Units:
//   - Population: individuals at day 0
//   - Days: number of one-day steps
//   - ContactRate (β), MeanRecoveryRate (γ): per day
//   - DeathRate/BirthRate: per 1000 individuals per year, nil when absent
type Params struct {
	Population       int
	Days             int
	ContactRate      float64
	MeanRecoveryRate float64
	DeathRate        *float64
	BirthRate        *float64

	// Vital makes missing DeathRate/BirthRate a construction error.
	Vital bool
}

// Rate is a helper to fill optional Params fields.
func Rate(v float64) *float64 { return &v }

// DefaultParams returns the parameters of the West Africa study runs:
// a Guinea-sized population over 861 days with a 10-day infectious period.
func DefaultParams(v Variant) Params {
	p := Params{
		Population:       12720001,
		Days:             861,
		ContactRate:      0.2,
		MeanRecoveryRate: 1.0 / 10,
	}
	if v == Vital {
		p.Population = 12720000
		p.DeathRate = Rate(8.7)
		p.BirthRate = Rate(37.2)
		p.Vital = true
	}
	return p
}

// Config is a validated, immutable parameter set. The zero value is not
// usable; build one with NewConfig.
type Config struct {
	population   int
	days         int
	contactRate  float64
	recoveryRate float64
	deathRate    float64
	birthRate    float64
	hasVital     bool
	valid        bool
}

// NewConfig validates p once and returns an immutable Config.
func NewConfig(p Params) (Config, error) {
	switch {
	case p.Population <= 0:
		return Config{}, configErr("population", p.Population, "must be > 0")
	case p.Days < 0:
		return Config{}, configErr("days", p.Days, "must be >= 0")
	case !util.Finite(p.ContactRate) || p.ContactRate <= 0:
		return Config{}, configErr("contact_rate", p.ContactRate, "must be a finite number > 0")
	case !util.Finite(p.MeanRecoveryRate) || p.MeanRecoveryRate <= 0:
		return Config{}, configErr("mean_recovery_rate", p.MeanRecoveryRate, "must be a finite number > 0")
	}

	cfg := Config{
		population:   p.Population,
		days:         p.Days,
		contactRate:  p.ContactRate,
		recoveryRate: p.MeanRecoveryRate,
	}

	if err := checkRate("death_rate", p.DeathRate, p.Vital); err != nil {
		return Config{}, err
	}
	if err := checkRate("birth_rate", p.BirthRate, p.Vital); err != nil {
		return Config{}, err
	}
	if p.DeathRate != nil && p.BirthRate != nil {
		cfg.deathRate = *p.DeathRate
		cfg.birthRate = *p.BirthRate
		cfg.hasVital = true
	}

	cfg.valid = true
	return cfg, nil
}

func checkRate(field string, v *float64, required bool) error {
	if v == nil {
		if required {
			return configErr(field, nil, "required by the vital variant")
		}
		return nil
	}
	if !util.Finite(*v) || *v < 0 {
		return configErr(field, *v, "must be a finite number >= 0")
	}
	return nil
}

func (c Config) Population() int           { return c.population }
func (c Config) Days() int                 { return c.days }
func (c Config) ContactRate() float64      { return c.contactRate }
func (c Config) MeanRecoveryRate() float64 { return c.recoveryRate }

// VitalRates returns the configured death and birth rates (per 1000 per year)
// and whether both were supplied.
func (c Config) VitalRates() (death, birth float64, ok bool) {
	return c.deathRate, c.birthRate, c.hasVital
}

// Params returns a copy of the parameters c was built from.
func (c Config) Params() Params {
	p := Params{
		Population:       c.population,
		Days:             c.days,
		ContactRate:      c.contactRate,
		MeanRecoveryRate: c.recoveryRate,
	}
	if c.hasVital {
		p.DeathRate = Rate(c.deathRate)
		p.BirthRate = Rate(c.birthRate)
	}
	return p
}

// Point is the compartment sizes on one day.
type Point struct {
	S float64 // susceptible
	I float64 // infectious
	R float64 // recovered
}

// Total returns S+I+R.
func (p Point) Total() float64 { return p.S + p.I + p.R }

// Scale divides every compartment by m.
func (p Point) Scale(m float64) Point {
	return Point{S: p.S / m, I: p.I / m, R: p.R / m}
}
