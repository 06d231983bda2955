package weekly

import "strings"

// Data sources found in the WHO weekly documents.
const (
	SourceSituationReport = "Situation report"
	SourcePatientDatabase = "Patient database"
)

// Case definitions.
const (
	Probable  = "Probable"
	Confirmed = "Confirmed"
)

// Document is one weekly report collection as stored in the repository.
type Document struct {
	// Location is set for sub-national reports (e.g. a capital city).
	Location string  `json:"location,omitempty"`
	Entries  []Entry `json:"data"`
}

// Entry is one reported figure.
type Entry struct {
	Week           string  `json:"week"`
	Source         string  `json:"source"`
	CaseDefinition string  `json:"case_definition"`
	Value          float64 `json:"value"`
}

// WeekCount is a case count for one period label.
type WeekCount struct {
	Week  string  `json:"week"`
	Value float64 `json:"value"`
}

// Observation is a (period label, observed value) pair handed to renderers.
type Observation struct {
	Label string
	Value float64
}

// Weekly is a parsed report: probable and confirmed counts aligned on the
// same week labels.
type Weekly struct {
	Country   string
	Location  string
	Probable  []WeekCount
	Confirmed []WeekCount
}

// Title is "<country> <location>", or just the country.
func (w *Weekly) Title() string {
	country := strings.ReplaceAll(w.Country, "_", " ")
	if w.Location == "" {
		return country
	}
	return country + " " + w.Location
}

// Weeks returns the period labels in report order.
func (w *Weekly) Weeks() []string {
	out := make([]string, len(w.Probable))
	for i, c := range w.Probable {
		out[i] = c.Week
	}
	return out
}

// Series returns the counts of one case definition.
func (w *Weekly) Series(caseDefinition string) []WeekCount {
	if strings.EqualFold(caseDefinition, Probable) {
		return w.Probable
	}
	return w.Confirmed
}

// Observations converts one case definition to renderer pairs.
func (w *Weekly) Observations(caseDefinition string) []Observation {
	series := w.Series(caseDefinition)
	out := make([]Observation, len(series))
	for i, c := range series {
		out[i] = Observation{Label: c.Week, Value: c.Value}
	}
	return out
}

// Total returns the sum of one case definition.
func (w *Weekly) Total(caseDefinition string) float64 {
	var sum float64
	for _, c := range w.Series(caseDefinition) {
		sum += c.Value
	}
	return sum
}
