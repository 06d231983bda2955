package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// Table writes aligned columns with thousands separators.
type Table struct{}

func (Table) RenderTrajectory(w io.Writer, t Trajectory) error {
	if t.Title != "" {
		fmt.Fprintf(w, "%s (%s)\n\n", t.Title, t.Magnitude.Humanized())
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	obs := overlayIndex(t.Overlay)

	header := []string{"DAY", "S", "I", "R"}
	if len(obs) > 0 {
		header = append(header, strings.ToUpper(overlayName(t)))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(tw, strings.Join(dashes(header), "\t")+"\t")

	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t", r.Label, num(r.S), num(r.I), num(r.R))
		if len(obs) > 0 {
			if v, ok := obs[r.Label]; ok {
				fmt.Fprintf(tw, "%s\t", num(v))
			} else {
				fmt.Fprint(tw, "-\t")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func (Table) RenderHistogram(w io.Writer, h Histogram) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if h.Title != "" {
		fmt.Fprintf(w, "%s\n\n", h.Title)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{strings.ToUpper(orDefault(h.XLabel, "week"))}
	for _, s := range h.Series {
		header = append(header, strings.ToUpper(s.Name))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(tw, strings.Join(dashes(header), "\t")+"\t")

	for i, label := range h.Labels {
		cells := []string{label}
		for _, s := range h.Series {
			cells = append(cells, num(s.Values[i]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func num(v float64) string {
	if v == float64(int64(v)) {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 3)
}

func dashes(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.Repeat("-", len(h))
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
