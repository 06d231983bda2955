// Package render draws simulation trajectories and weekly case histograms.
// It knows nothing about how the numbers were produced: callers pass
// labelled rows already divided by their display magnitude.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ja7ad/epidemic/pkg/types"
)

// ErrFormat is returned by New for an unknown output format.
var ErrFormat = errors.New("render: unknown format")

// Row is one labelled (S, I, R) sample, already scaled.
type Row struct {
	Label string  `json:"label"`
	S     float64 `json:"s"`
	I     float64 `json:"i"`
	R     float64 `json:"r"`
}

// Observation is one observed value for a period label.
type Observation struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Trajectory is a simulated time series with an optional observed overlay.
// Overlay values are matched to rows by label.
type Trajectory struct {
	Title       string
	RunID       string
	Magnitude   types.Magnitude
	Rows        []Row
	Overlay     []Observation
	OverlayName string
}

// Bars is one named series of a histogram.
type Bars struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Histogram is a grouped bar chart; every Bars has len(Labels) values.
type Histogram struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Labels []string `json:"labels"`
	Series []Bars   `json:"series"`
}

// Validate checks that every series matches the label count.
func (h Histogram) Validate() error {
	for _, s := range h.Series {
		if len(s.Values) != len(h.Labels) {
			return fmt.Errorf("render: series %q has %d values for %d labels", s.Name, len(s.Values), len(h.Labels))
		}
	}
	return nil
}

// Renderer writes charts to w.
type Renderer interface {
	RenderTrajectory(w io.Writer, t Trajectory) error
	RenderHistogram(w io.Writer, h Histogram) error
}

// Formats lists the names accepted by New.
var Formats = []string{"table", "csv", "json", "html", "bars"}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return Table{}, nil
	case "csv":
		return CSV{}, nil
	case "json":
		return JSON{}, nil
	case "html":
		return HTML{}, nil
	case "bars", "terminal":
		return NewTerminal(), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrFormat, format, strings.Join(Formats, ", "))
	}
}

func overlayIndex(obs []Observation) map[string]float64 {
	idx := make(map[string]float64, len(obs))
	for _, o := range obs {
		idx[o.Label] = o.Value
	}
	return idx
}

func overlayName(t Trajectory) string {
	if t.OverlayName != "" {
		return t.OverlayName
	}
	return "observed"
}

func maxOf(values ...[]float64) float64 {
	var m float64
	for _, vs := range values {
		for _, v := range vs {
			if v > m {
				m = v
			}
		}
	}
	return m
}
