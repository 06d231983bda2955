package render

import (
	"encoding/csv"
	"io"

	"github.com/ja7ad/epidemic/pkg/util"
)

// CSV writes one record per row with a header line.
type CSV struct{}

func (CSV) RenderTrajectory(w io.Writer, t Trajectory) error {
	cw := csv.NewWriter(w)
	obs := overlayIndex(t.Overlay)

	header := []string{"label", "s", "i", "r"}
	if len(obs) > 0 {
		header = append(header, overlayName(t))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range t.Rows {
		rec := []string{r.Label, util.FmtFloat(r.S), util.FmtFloat(r.I), util.FmtFloat(r.R)}
		if len(obs) > 0 {
			v, ok := obs[r.Label]
			if ok {
				rec = append(rec, util.FmtFloat(v))
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (CSV) RenderHistogram(w io.Writer, h Histogram) error {
	if err := h.Validate(); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{orDefault(h.XLabel, "week")}
	for _, s := range h.Series {
		header = append(header, s.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, label := range h.Labels {
		rec := []string{label}
		for _, s := range h.Series {
			rec = append(rec, util.FmtFloat(s.Values[i]))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
