package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/ja7ad/epidemic/pkg/util"
)

// HTML writes a standalone page with an inline SVG chart.
type HTML struct{}

const (
	chartW   = 960.0
	chartH   = 420.0
	chartPad = 48.0

	// share of a histogram group taken by one bar
	barShare = 0.35
)

var palette = []string{"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e", "#9467bd"}

type line struct {
	Name   string
	Color  string
	Points string
}

type bar struct {
	X, Y, W, H float64
	Color      string
	Value      string
}

type tick struct {
	X, Y  float64
	Label string
}

type page struct {
	Title   string
	Subtle  string
	W, H    float64
	Lines   []line
	Bars    []bar
	Ticks   []tick
	YMax    string
	Legend  []line
	Rows    []Row
	Labels  []string
	Columns []Bars
}

func (HTML) RenderTrajectory(w io.Writer, t Trajectory) error {
	n := len(t.Rows)
	s := make([]float64, n)
	i := make([]float64, n)
	r := make([]float64, n)
	for k, row := range t.Rows {
		s[k], i[k], r[k] = row.S, row.I, row.R
	}
	obs := make([]float64, len(t.Overlay))
	for k, o := range t.Overlay {
		obs[k] = o.Value
	}
	ymax := maxOf(s, i, r, obs)

	p := page{
		Title:  orDefault(t.Title, "SIR trajectory"),
		Subtle: fmt.Sprintf("values in %s · %d rows", t.Magnitude.Humanized(), n),
		W:      chartW,
		H:      chartH,
		YMax:   num(ymax),
		Rows:   t.Rows,
	}
	if t.RunID != "" {
		p.Subtle += " · run " + t.RunID
	}

	x := func(k int) float64 {
		if n <= 1 {
			return chartPad
		}
		return chartPad + float64(k)*(chartW-2*chartPad)/float64(n-1)
	}
	for k, series := range []struct {
		name   string
		values []float64
	}{{"Susceptible", s}, {"Infectious", i}, {"Recovered", r}} {
		pts := make([]string, n)
		for j, v := range series.values {
			pts[j] = fmt.Sprintf("%.2f,%.2f", x(j), yPos(v, ymax))
		}
		l := line{Name: series.name, Color: palette[k], Points: strings.Join(pts, " ")}
		p.Lines = append(p.Lines, l)
		p.Legend = append(p.Legend, l)
	}

	if len(t.Overlay) > 0 {
		pos := make(map[string]int, n)
		for k, row := range t.Rows {
			pos[row.Label] = k
		}
		width := (chartW - 2*chartPad) / float64(max(n, 1)) * barShare * 2
		for _, o := range t.Overlay {
			k, ok := pos[o.Label]
			if !ok {
				continue
			}
			y := yPos(o.Value, ymax)
			p.Bars = append(p.Bars, bar{
				X: x(k) - width/2, Y: y, W: width, H: chartH - chartPad - y,
				Color: palette[3], Value: valueLabel(o.Value),
			})
		}
		p.Legend = append(p.Legend, line{Name: overlayName(t), Color: palette[3]})
	}
	for k, row := range t.Rows {
		if n <= 12 || k%(n/12+1) == 0 {
			p.Ticks = append(p.Ticks, tick{X: x(k), Y: chartH - chartPad + 14, Label: row.Label})
		}
	}
	return tpl.Execute(w, p)
}

func (HTML) RenderHistogram(w io.Writer, h Histogram) error {
	if err := h.Validate(); err != nil {
		return err
	}
	var all [][]float64
	for _, s := range h.Series {
		all = append(all, s.Values)
	}
	ymax := maxOf(all...)

	p := page{
		Title:   orDefault(h.Title, "Weekly cases"),
		Subtle:  fmt.Sprintf("%s by %s", orDefault(h.YLabel, "value"), orDefault(h.XLabel, "week")),
		W:       chartW,
		H:       chartH,
		YMax:    num(ymax),
		Labels:  h.Labels,
		Columns: h.Series,
	}

	n := len(h.Labels)
	group := (chartW - 2*chartPad) / float64(max(n, 1))
	width := group * barShare
	for j, s := range h.Series {
		color := palette[j%len(palette)]
		p.Legend = append(p.Legend, line{Name: s.Name, Color: color})
		for k, v := range s.Values {
			y := yPos(v, ymax)
			p.Bars = append(p.Bars, bar{
				X: chartPad + float64(k)*group + float64(j)*width,
				Y: y, W: width, H: chartH - chartPad - y,
				Color: color, Value: valueLabel(v),
			})
		}
	}
	for k, label := range h.Labels {
		p.Ticks = append(p.Ticks, tick{
			X:     chartPad + float64(k)*group + width*float64(len(h.Series))/2,
			Y:     chartH - chartPad + 8,
			Label: label,
		})
	}
	return tpl.Execute(w, p)
}

func yPos(v, ymax float64) float64 {
	return chartH - chartPad - util.SafeDiv(v, ymax)*(chartH-2*chartPad)
}

// valueLabel is empty for zero-height bars so they stay unannotated.
func valueLabel(v float64) string {
	if v == 0 {
		return ""
	}
	return num(v)
}

var tpl = template.Must(template.New("chart").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1{margin:0 0 8px}
.small{color:#555}
table{border-collapse:collapse;font-size:13px;margin-top:16px}
th,td{border:1px solid #ddd;padding:4px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
.legend span{display:inline-block;margin-right:14px}
.legend i{display:inline-block;width:12px;height:12px;margin-right:4px;vertical-align:middle}
svg text{font-size:9px;fill:#333}
</style>

<h1>{{.Title}}</h1>
<p class="small">{{.Subtle}} &nbsp;|&nbsp; max {{.YMax}}</p>

<p class="legend">{{range .Legend}}<span><i style="background:{{.Color}}"></i>{{.Name}}</span>{{end}}</p>

<svg width="{{.W}}" height="{{.H}}" viewBox="0 0 {{.W}} {{.H}}" xmlns="http://www.w3.org/2000/svg">
{{range .Bars}}<rect x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" width="{{printf "%.2f" .W}}" height="{{printf "%.2f" .H}}" fill="{{.Color}}" fill-opacity="0.75"/>
{{if .Value}}<text x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" dy="-2">{{.Value}}</text>
{{end}}{{end}}{{range .Lines}}<polyline fill="none" stroke="{{.Color}}" stroke-width="2" points="{{.Points}}"/>
{{end}}{{range .Ticks}}<text x="{{printf "%.2f" .X}}" y="{{printf "%.2f" .Y}}" transform="rotate(90 {{printf "%.2f" .X}} {{printf "%.2f" .Y}})">{{.Label}}</text>
{{end}}</svg>

{{if .Rows}}
<table>
<thead><tr><th>label</th><th>S</th><th>I</th><th>R</th></tr></thead>
<tbody>
{{range .Rows}}<tr><td>{{.Label}}</td><td>{{printf "%.3f" .S}}</td><td>{{printf "%.3f" .I}}</td><td>{{printf "%.3f" .R}}</td></tr>
{{end}}</tbody>
</table>
{{end}}
{{if .Labels}}
<table>
<thead><tr><th>week</th>{{range .Columns}}<th>{{.Name}}</th>{{end}}</tr></thead>
<tbody>
{{range $i, $l := .Labels}}<tr><td>{{$l}}</td>{{range $.Columns}}<td>{{index .Values $i}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
{{end}}
</html>`))
