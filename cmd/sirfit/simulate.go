package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ja7ad/epidemic/pkg/epidemic"
	"github.com/ja7ad/epidemic/pkg/logging"
	"github.com/ja7ad/epidemic/pkg/render"
	"github.com/ja7ad/epidemic/pkg/scenario"
	"github.com/ja7ad/epidemic/pkg/types"
)

type simulateOpts struct {
	scenario string

	// model overrides
	variant      string
	population   int
	days         int
	contactRate  float64
	recoveryRate float64
	deathRate    float64
	birthRate    float64

	// presentation
	magnitude string
	every     int
	format    string
	summary   bool

	files fileOutputs
}

// run is one computed scenario.
type run struct {
	id        string
	scenario  scenario.Scenario
	magnitude types.Magnitude
	result    *epidemic.Result
	err       error
}

func newSimulateCmd(g *globals) *cobra.Command {
	var o simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run SIR simulations",
		Long: `Run one or more SIR simulations and print the trajectory.

Without --scenario or model flags every scenario of the scenario file runs.
Model flags override the selected scenario, or the defaults of --variant
when no scenario is selected. Birth and death rates are per 1000
individuals per year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, g, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.scenario, "scenario", "S", "", "scenario name from the scenario file")
	f.StringVar(&o.variant, "variant", "non-vital", "integration variant: non-vital or vital")
	f.IntVarP(&o.population, "population", "p", 0, "population at day 0")
	f.IntVarP(&o.days, "days", "d", 0, "number of simulated days")
	f.Float64VarP(&o.contactRate, "contact-rate", "b", 0, "contact rate β (per day)")
	f.Float64VarP(&o.recoveryRate, "recovery-rate", "g", 0, "mean recovery rate γ (per day)")
	f.Float64Var(&o.deathRate, "death-rate", 0, "death rate, per 1000 per year (vital only)")
	f.Float64Var(&o.birthRate, "birth-rate", 0, "birth rate, per 1000 per year (vital only)")
	f.StringVarP(&o.magnitude, "magnitude", "m", "", "display divisor: 1000, k, m (default from scenario file)")
	f.IntVar(&o.every, "every", 7, "print every n-th day (the last day is always printed)")
	f.StringVarP(&o.format, "format", "f", "table", "stdout format: table, bars, csv, json, html")
	f.BoolVar(&o.summary, "summary", true, "print a summary after each run")
	o.files.register(cmd)

	return cmd
}

func runSimulate(cmd *cobra.Command, g *globals, o simulateOpts) error {
	if o.every <= 0 {
		return fmt.Errorf("every must be > 0")
	}
	r, err := render.New(o.format)
	if err != nil {
		return err
	}
	list, err := o.resolve(cmd, g.file)
	if err != nil {
		return err
	}

	runs := computeAll(cmd.Context(), g.file, list, o.magnitude)
	out := cmd.OutOrStdout()
	for _, rn := range runs {
		if rn.err != nil {
			return fmt.Errorf("scenario %s: %w", rn.scenario.Name, rn.err)
		}
		t, err := trajectoryOf(rn, o.every)
		if err != nil {
			return err
		}
		if err := r.RenderTrajectory(out, t); err != nil {
			return err
		}
		suffix := ""
		if len(runs) > 1 {
			suffix = rn.scenario.Name
		}
		if err := o.files.trajectory(suffix, t); err != nil {
			return err
		}
		if o.summary {
			printSummary(out, rn)
		}
	}
	return nil
}

// resolve picks the scenarios to run.
func (o simulateOpts) resolve(cmd *cobra.Command, f *scenario.File) ([]scenario.Scenario, error) {
	flags := cmd.Flags()
	overridden := false
	for _, name := range []string{"variant", "population", "days", "contact-rate", "recovery-rate", "death-rate", "birth-rate"} {
		overridden = overridden || flags.Changed(name)
	}

	var s scenario.Scenario
	switch {
	case o.scenario != "":
		found, err := f.Find(o.scenario)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, f.Names())
		}
		s = found
	case overridden:
		v, err := epidemic.ParseVariant(o.variant)
		if err != nil {
			return nil, err
		}
		s = scenario.FromParams("custom", v, epidemic.DefaultParams(v))
	default:
		return f.Scenarios, nil
	}

	if flags.Changed("variant") {
		s.Variant = o.variant
	}
	if flags.Changed("population") {
		s.Population = o.population
	}
	if flags.Changed("days") {
		s.Days = o.days
	}
	if flags.Changed("contact-rate") {
		s.ContactRate = o.contactRate
	}
	if flags.Changed("recovery-rate") {
		s.MeanRecoveryRate = o.recoveryRate
	}
	if flags.Changed("death-rate") {
		s.DeathRate = epidemic.Rate(o.deathRate)
	}
	if flags.Changed("birth-rate") {
		s.BirthRate = epidemic.Rate(o.birthRate)
	}
	return []scenario.Scenario{s}, nil
}

// computeAll runs every scenario on its own goroutine. Runs share no state.
func computeAll(ctx context.Context, f *scenario.File, list []scenario.Scenario, magnitude string) []run {
	runs := make([]run, len(list))
	var wg sync.WaitGroup
	for i, s := range list {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runs[i] = compute(ctx, f, s, magnitude)
		}()
	}
	wg.Wait()
	return runs
}

func compute(ctx context.Context, f *scenario.File, s scenario.Scenario, magnitude string) run {
	rn := run{id: uuid.NewString(), scenario: s}

	if magnitude != "" {
		rn.magnitude, rn.err = types.ParseMagnitude(magnitude)
	} else {
		rn.magnitude, rn.err = f.MagnitudeFor(s)
	}
	if rn.err != nil {
		return rn
	}

	slog.Debug("simulate", "run", rn.id, "scenario", s.Name, "variant", s.Variant,
		"population", s.Population, "days", s.Days)
	rn.result, rn.err = s.Run()
	if rn.err != nil {
		return rn
	}
	if slog.Default().Enabled(ctx, logging.LevelTrace) {
		for d, p := range rn.result.Points() {
			slog.Log(ctx, logging.LevelTrace, "day", "run", rn.id, "day", d, "s", p.S, "i", p.I, "r", p.R)
		}
	}
	return rn
}

func trajectoryOf(rn run, every int) (render.Trajectory, error) {
	view, err := rn.result.SampledView(every, rn.magnitude.Float())
	if err != nil {
		return render.Trajectory{}, err
	}
	t := render.Trajectory{
		Title:     fmt.Sprintf("%s (%s)", rn.scenario.Name, rn.result.Variant()),
		RunID:     rn.id,
		Magnitude: rn.magnitude,
	}
	for day, p := range view {
		t.Rows = append(t.Rows, render.Row{Label: strconv.Itoa(day), S: p.S, I: p.I, R: p.R})
	}
	return t, nil
}

func printSummary(w io.Writer, rn run) {
	res := rn.result
	cfg := res.Config()
	day, peak := res.Peak()
	final := res.Final()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s summary (run %s):\n", rn.scenario.Name, rn.id)
	fmt.Fprintf(w, "- variant:         %s\n", res.Variant())
	fmt.Fprintf(w, "- population:      %s -> %s\n",
		humanize.Comma(int64(cfg.Population())), humanize.Comma(int64(res.Population(res.Len()-1))))
	fmt.Fprintf(w, "- days:            %d\n", cfg.Days())
	fmt.Fprintf(w, "- β / γ:           %g / %g (R0 %.2f)\n",
		cfg.ContactRate(), cfg.MeanRecoveryRate(), cfg.ContactRate()/cfg.MeanRecoveryRate())
	if death, birth, ok := cfg.VitalRates(); ok && res.Variant() == epidemic.Vital {
		fmt.Fprintf(w, "- births / deaths: %g / %g per 1000 per year\n", birth, death)
	}
	fmt.Fprintf(w, "- peak infectious: %s on day %d\n", humanize.Comma(int64(peak)), day)
	fmt.Fprintf(w, "- final S/I/R:     %s / %s / %s\n",
		humanize.Comma(int64(final.S)), humanize.Comma(int64(final.I)), humanize.Comma(int64(final.R)))
	fmt.Fprintln(w)
}
