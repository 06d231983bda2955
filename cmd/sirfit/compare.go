package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ja7ad/epidemic/pkg/render"
	"github.com/ja7ad/epidemic/pkg/types"
	"github.com/ja7ad/epidemic/pkg/weekly"
)

// daysPerWeek is the sampling step that lines simulated days up with
// weekly reports.
const daysPerWeek = 7

type compareOpts struct {
	country    string
	collection string
	scenario   string
	caseDef    string
	source     string
	ema        float64
	magnitude  string
	format     string
	files      fileOutputs
}

func newCompareCmd(g *globals) *cobra.Command {
	var o compareOpts

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Overlay observed weekly cases on a simulated trajectory",
		Long: `Overlay observed weekly cases on a simulated trajectory.

The scenario is sampled every 7 days and its n-th sample is paired with the
n-th week of the report. Observed counts are divided by the same magnitude
as the simulation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, g, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.country, "country", "", "country of the report")
	f.StringVar(&o.collection, "collection", "", "collection name")
	f.StringVarP(&o.scenario, "scenario", "S", "non-vital", "scenario name from the scenario file")
	f.StringVar(&o.caseDef, "case", "confirmed", "case definition to overlay: confirmed or probable")
	f.StringVar(&o.source, "source", weekly.SourcePatientDatabase, "data source of the report")
	f.Float64Var(&o.ema, "ema", 0, "smooth observed counts with this EMA alpha in (0,1]; 0 disables")
	f.StringVarP(&o.magnitude, "magnitude", "m", "", "display divisor (default from scenario file)")
	f.StringVarP(&o.format, "format", "f", "table", "stdout format: table, bars, csv, json, html")
	o.files.register(cmd)
	return cmd
}

func runCompare(cmd *cobra.Command, g *globals, o compareOpts) error {
	if o.country == "" || o.collection == "" {
		return fmt.Errorf("--country and --collection are required")
	}
	caseDef, err := parseCaseDefinition(o.caseDef)
	if err != nil {
		return err
	}
	if o.ema < 0 || o.ema > 1 {
		return fmt.Errorf("ema must be within [0, 1], got %g", o.ema)
	}
	r, err := render.New(o.format)
	if err != nil {
		return err
	}

	sc, err := g.file.Find(o.scenario)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, g.file.Names())
	}
	m, err := g.file.MagnitudeFor(sc)
	if o.magnitude != "" {
		m, err = types.ParseMagnitude(o.magnitude)
	}
	if err != nil {
		return err
	}

	s, err := g.openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err := weekly.Load(cmd.Context(), s, o.country, o.collection, weekly.ParseOptions{Source: o.source})
	if err != nil {
		return err
	}
	if o.ema > 0 {
		w = w.Smooth(o.ema)
	}

	res, err := sc.Run()
	if err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	view, err := res.SampledView(daysPerWeek, m.Float())
	if err != nil {
		return err
	}

	weeks := w.Weeks()
	t := render.Trajectory{
		Title:       fmt.Sprintf("%s vs %s (%s)", w.Title(), sc.Name, res.Variant()),
		RunID:       uuid.NewString(),
		Magnitude:   m,
		OverlayName: caseDef + " cases",
	}
	n := 0
	for day, p := range view {
		label := fmt.Sprintf("day %d", day)
		if n < len(weeks) {
			label = weeks[n]
		}
		t.Rows = append(t.Rows, render.Row{Label: label, S: p.S, I: p.I, R: p.R})
		n++
	}
	for _, obs := range w.Observations(caseDef) {
		t.Overlay = append(t.Overlay, render.Observation{Label: obs.Label, Value: m.Scale(obs.Value)})
	}

	if err := r.RenderTrajectory(cmd.OutOrStdout(), t); err != nil {
		return err
	}
	return o.files.trajectory("", t)
}

func parseCaseDefinition(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "confirmed":
		return weekly.Confirmed, nil
	case "probable":
		return weekly.Probable, nil
	default:
		return "", fmt.Errorf("unknown case definition %q (want confirmed or probable)", s)
	}
}
