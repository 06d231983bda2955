package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ja7ad/epidemic/pkg/util"
)

// Terminal draws horizontal bar charts with lipgloss styles.
type Terminal struct {
	// Width is the length in cells of the longest bar.
	Width int

	// MaxRows limits trajectory output; rows are sampled evenly. 0 means all.
	MaxRows int

	title  lipgloss.Style
	subtle lipgloss.Style
	label  lipgloss.Style
	colors []lipgloss.Style
}

// NewTerminal returns a Terminal with the default palette.
func NewTerminal() *Terminal {
	return &Terminal{
		Width:   50,
		MaxRows: 60,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:   lipgloss.NewStyle().Width(10),
		colors: []lipgloss.Style{
			lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
			lipgloss.NewStyle().Foreground(lipgloss.Color("42")),  // green
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		},
	}
}

func (t *Terminal) RenderTrajectory(w io.Writer, tr Trajectory) error {
	rows := sampleRows(tr.Rows, t.MaxRows)
	obs := overlayIndex(tr.Overlay)

	var ymax float64
	for _, r := range rows {
		ymax = math.Max(ymax, r.I)
		if v, ok := obs[r.Label]; ok {
			ymax = math.Max(ymax, v)
		}
	}

	var b strings.Builder
	b.WriteString(t.title.Render(orDefault(tr.Title, "SIR trajectory")) + "\n")
	legend := t.colors[1].Render("█ infectious")
	if len(obs) > 0 {
		legend += "  " + t.colors[3].Render("█ "+overlayName(tr))
	}
	b.WriteString(t.subtle.Render(fmt.Sprintf("values in %s", tr.Magnitude.Humanized())) + "  " + legend + "\n\n")

	for _, r := range rows {
		b.WriteString(t.label.Render(r.Label))
		b.WriteString(t.colors[1].Render(t.bar(r.I, ymax)))
		b.WriteString(" " + num(r.I) + "\n")
		if v, ok := obs[r.Label]; ok {
			b.WriteString(t.label.Render(""))
			b.WriteString(t.colors[3].Render(t.bar(v, ymax)))
			b.WriteString(" " + num(v) + "\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Terminal) RenderHistogram(w io.Writer, h Histogram) error {
	if err := h.Validate(); err != nil {
		return err
	}
	var all [][]float64
	for _, s := range h.Series {
		all = append(all, s.Values)
	}
	ymax := maxOf(all...)

	var b strings.Builder
	b.WriteString(t.title.Render(orDefault(h.Title, "Weekly cases")) + "\n")
	var legend []string
	for j, s := range h.Series {
		legend = append(legend, t.color(j).Render("█ "+s.Name))
	}
	b.WriteString(strings.Join(legend, "  ") + "\n\n")

	for k, label := range h.Labels {
		for j, s := range h.Series {
			if j == 0 {
				b.WriteString(t.label.Render(label))
			} else {
				b.WriteString(t.label.Render(""))
			}
			v := s.Values[k]
			b.WriteString(t.color(j).Render(t.bar(v, ymax)))
			if v != 0 {
				b.WriteString(" " + num(v))
			}
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Terminal) color(j int) lipgloss.Style {
	return t.colors[j%len(t.colors)]
}

// bar returns a run of full blocks proportional to v/top.
func (t *Terminal) bar(v, top float64) string {
	n := int(math.Round(util.Clamp(util.SafeDiv(v, top), 0, 1) * float64(t.Width)))
	return strings.Repeat("█", n)
}

// sampleRows keeps at most n rows, evenly spaced, always including the last.
func sampleRows(rows []Row, n int) []Row {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	step := (len(rows) + n - 1) / n
	out := make([]Row, 0, n+1)
	for k := 0; k < len(rows); k += step {
		out = append(out, rows[k])
	}
	if (len(rows)-1)%step != 0 {
		out = append(out, rows[len(rows)-1])
	}
	return out
}
