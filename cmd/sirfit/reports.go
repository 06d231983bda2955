package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ja7ad/epidemic/pkg/render"
	"github.com/ja7ad/epidemic/pkg/weekly"
)

func newReportsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage and chart weekly case reports",
	}
	cmd.AddCommand(
		newReportsImportCmd(g),
		newReportsListCmd(g),
		newReportsShowCmd(g),
		newReportsDeleteCmd(g),
	)
	return cmd
}

// openStore opens the report database selected by --db.
func (g *globals) openStore(cmd *cobra.Command) (*weekly.Store, error) {
	return weekly.Open(cmd.Context(), g.dbPath)
}

func newReportsImportCmd(g *globals) *cobra.Command {
	var country, collection string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a weekly report JSON document",
		Long: `Import a weekly report JSON document into the report database.

The document has an optional "location" and a "data" array of
{week, source, case_definition, value} entries. Importing the same
country and collection again replaces the stored document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if country == "" {
				return fmt.Errorf("--country is required")
			}
			if collection == "" {
				collection = filepath.Base(args[0])
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			s, err := g.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.ImportJSON(cmd.Context(), country, collection, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s/%s: %d entries\n", country, collection, len(doc.Entries))
			return nil
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "country the report belongs to (Guinea, Liberia, Sierra_Leone, ...)")
	cmd.Flags().StringVar(&collection, "collection", "", "collection name (default: file name)")
	return cmd
}

func newReportsListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored report collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no reports in %s\n", s.Path())
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "COUNTRY\tCOLLECTION\tLOCATION\tIMPORTED")
			for _, in := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", in.Country, in.Collection, orDash(in.Location), humanize.Time(in.ImportedAt))
			}
			return tw.Flush()
		},
	}
}

func newReportsDeleteCmd(g *globals) *cobra.Command {
	var country, collection string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a stored report collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if country == "" || collection == "" {
				return fmt.Errorf("--country and --collection are required")
			}
			s, err := g.openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			return s.Delete(cmd.Context(), country, collection)
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "country of the collection")
	cmd.Flags().StringVar(&collection, "collection", "", "collection name")
	return cmd
}

type showOpts struct {
	country    string
	collection string
	all        bool
	sums       bool
	source     string
	interval   int
	format     string
	files      fileOutputs
}

func newReportsShowCmd(g *globals) *cobra.Command {
	var o showOpts

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Chart probable and confirmed cases per week",
		Long: `Chart probable and confirmed cases per week.

With --country and --collection one report is charted. With --all every
national and capital-area collection of the built-in catalog is charted;
district collections are skipped. --sums adds one week-by-week sum per
country.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, g, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.country, "country", "", "country of the report")
	f.StringVar(&o.collection, "collection", "", "collection name")
	f.BoolVar(&o.all, "all", false, "chart every catalog collection")
	f.BoolVar(&o.sums, "sums", false, "with --all, also chart per-country sums")
	f.StringVar(&o.source, "source", weekly.SourcePatientDatabase, "data source: \"Patient database\" or \"Situation report\"")
	f.IntVar(&o.interval, "interval", 1, "merge this many consecutive weeks into one bar")
	f.StringVarP(&o.format, "format", "f", "bars", "stdout format: table, bars, csv, json, html")
	o.files.register(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, g *globals, o showOpts) error {
	if !o.all && (o.country == "" || o.collection == "") {
		return fmt.Errorf("either --all or both --country and --collection are required")
	}
	r, err := render.New(o.format)
	if err != nil {
		return err
	}

	s, err := g.openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	popts := weekly.ParseOptions{Source: o.source, Interval: o.interval}
	var reports []*weekly.Weekly
	if o.all {
		ds, err := weekly.LoadAll(cmd.Context(), s, weekly.DefaultCatalog(), popts)
		if err != nil {
			return err
		}
		reports = ds.Reports
		if o.sums {
			reports = append(reports, ds.Sums...)
		}
		if len(reports) == 0 {
			return fmt.Errorf("no catalog collections in %s", s.Path())
		}
	} else {
		w, err := weekly.Load(cmd.Context(), s, o.country, o.collection, popts)
		if err != nil {
			return err
		}
		reports = []*weekly.Weekly{w}
	}

	out := cmd.OutOrStdout()
	for _, w := range reports {
		h := histogramOf(w)
		if err := r.RenderHistogram(out, h); err != nil {
			return err
		}
		fmt.Fprintln(out)
		suffix := ""
		if len(reports) > 1 {
			suffix = w.Title()
		}
		if err := o.files.histogram(suffix, h); err != nil {
			return err
		}
	}
	return nil
}

// histogramOf charts probable next to confirmed cases.
func histogramOf(w *weekly.Weekly) render.Histogram {
	values := func(series []weekly.WeekCount) []float64 {
		out := make([]float64, len(series))
		for i, c := range series {
			out[i] = c.Value
		}
		return out
	}
	return render.Histogram{
		Title:  w.Title(),
		XLabel: "Weeks",
		YLabel: "Value",
		Labels: w.Weeks(),
		Series: []render.Bars{
			{Name: "Probable cases", Values: values(w.Probable)},
			{Name: "Confirmed cases", Values: values(w.Confirmed)},
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
