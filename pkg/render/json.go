package render

import (
	"encoding/json"
	"io"
)

// JSON writes an indented document.
type JSON struct{}

type trajectoryDoc struct {
	Title       string        `json:"title,omitempty"`
	RunID       string        `json:"run_id,omitempty"`
	Magnitude   float64       `json:"magnitude"`
	Unit        string        `json:"unit"`
	Rows        []Row         `json:"rows"`
	OverlayName string        `json:"overlay_name,omitempty"`
	Overlay     []Observation `json:"overlay,omitempty"`
}

func (JSON) RenderTrajectory(w io.Writer, t Trajectory) error {
	doc := trajectoryDoc{
		Title:     t.Title,
		RunID:     t.RunID,
		Magnitude: t.Magnitude.Float(),
		Unit:      t.Magnitude.Humanized(),
		Rows:      t.Rows,
		Overlay:   t.Overlay,
	}
	if doc.Rows == nil {
		doc.Rows = []Row{}
	}
	if len(t.Overlay) > 0 {
		doc.OverlayName = overlayName(t)
	}
	return encode(w, doc)
}

func (JSON) RenderHistogram(w io.Writer, h Histogram) error {
	if err := h.Validate(); err != nil {
		return err
	}
	return encode(w, h)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
