// Package epidemic computes SIR (Susceptible-Infectious-Recovered) epidemic
// trajectories by explicit fixed-step integration.
//
// # Overview
//
//   - NewConfig(Params) (Config, error) validates parameters once and returns
//     an immutable Config. Every rejection is a *ConfigError that unwraps to
//     ErrInvalidConfig.
//   - ComputeNonVital(Config) integrates a closed population.
//   - ComputeVital(Config) adds births and deaths; the population drifts.
//   - Result holds days+1 points (S, I, R). Day 0 is (population-1, 1, 0).
//     ScaledView and SampledView produce lazy, non-mutating views divided by
//     a display magnitude.
//
// # Integration
//
// Both variants advance one day per step with explicit Euler. Large
// contact rates can make a step remove more individuals from a compartment
// than it holds. The engine clamps such a compartment at zero (by capping
// its outflows) and continues; this is lossy but keeps every value
// physically meaningful, and is not reported as an error.
//
// # Vital rates
//
// Birth and death rates are configured per 1000 individuals per year, the
// way demographic tables publish them (e.g. 37.2 births, 8.7 deaths). They
// are divided by VitalRateScale (365 × 1000) before use.
//
// # Concurrency
//
// Compute functions keep no state and share no memory between calls; runs
// may be executed from separate goroutines without coordination.
//
// Example:
//
//	cfg, err := epidemic.NewConfig(epidemic.Params{
//	    Population: 1000, Days: 120, ContactRate: 0.3, MeanRecoveryRate: 0.1,
//	})
//	if err != nil { return err }
//	res, _ := epidemic.ComputeNonVital(cfg)
//	day, peak := res.Peak()
package epidemic
