package weekly

import (
	"fmt"
	"strings"

	"github.com/ja7ad/epidemic/pkg/util"
)

// ParseOptions controls Parse.
type ParseOptions struct {
	// Source selects which data source to read; empty means SourcePatientDatabase.
	Source string

	// Interval merges that many consecutive weeks into one bucket labelled
	// by its first week. Values <= 1 keep weekly resolution.
	Interval int
}

// Parse turns a report document into aligned probable/confirmed series.
// Weeks keep the order in which they first appear; a week reported for
// only one case definition counts as 0 for the other.
func Parse(doc Document, country string, opts ParseOptions) (*Weekly, error) {
	source := opts.Source
	if source == "" {
		source = SourcePatientDatabase
	}

	var order []string
	probable := map[string]float64{}
	confirmed := map[string]float64{}
	seen := map[string]struct{}{}
	for i, e := range doc.Entries {
		if !strings.EqualFold(e.Source, source) {
			continue
		}
		week := strings.TrimSpace(e.Week)
		if week == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrNoWeek, i)
		}
		if !util.Finite(e.Value) || e.Value < 0 {
			return nil, fmt.Errorf("%w: week %s value %v", ErrBadValue, week, e.Value)
		}

		var into map[string]float64
		switch {
		case strings.EqualFold(e.CaseDefinition, Probable):
			into = probable
		case strings.EqualFold(e.CaseDefinition, Confirmed):
			into = confirmed
		default:
			continue // suspected and other definitions are not charted
		}
		if _, ok := seen[week]; !ok {
			seen[week] = struct{}{}
			order = append(order, week)
		}
		into[week] += e.Value
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoEntries, source)
	}

	w := &Weekly{
		Country:   country,
		Location:  doc.Location,
		Probable:  make([]WeekCount, len(order)),
		Confirmed: make([]WeekCount, len(order)),
	}
	for i, week := range order {
		w.Probable[i] = WeekCount{Week: week, Value: probable[week]}
		w.Confirmed[i] = WeekCount{Week: week, Value: confirmed[week]}
	}
	if opts.Interval > 1 {
		w.Probable = bucket(w.Probable, opts.Interval)
		w.Confirmed = bucket(w.Confirmed, opts.Interval)
	}
	return w, nil
}

func bucket(in []WeekCount, n int) []WeekCount {
	out := make([]WeekCount, 0, (len(in)+n-1)/n)
	for i := 0; i < len(in); i += n {
		b := WeekCount{Week: in[i].Week}
		for _, c := range in[i:min(i+n, len(in))] {
			b.Value += c.Value
		}
		out = append(out, b)
	}
	return out
}

// SumAll adds several reports week by week under a new country name.
// Week labels keep first-seen order across the inputs.
func SumAll(list []*Weekly, country string) *Weekly {
	var order []string
	probable := map[string]float64{}
	confirmed := map[string]float64{}
	for _, w := range list {
		for i := range w.Probable {
			week := w.Probable[i].Week
			if _, ok := probable[week]; !ok {
				order = append(order, week)
			}
			probable[week] += w.Probable[i].Value
			confirmed[week] += w.Confirmed[i].Value
		}
	}

	sum := &Weekly{
		Country:   country,
		Probable:  make([]WeekCount, len(order)),
		Confirmed: make([]WeekCount, len(order)),
	}
	for i, week := range order {
		sum.Probable[i] = WeekCount{Week: week, Value: probable[week]}
		sum.Confirmed[i] = WeekCount{Week: week, Value: confirmed[week]}
	}
	return sum
}

// Smooth returns a copy of w with both series passed through an EMA.
func (w *Weekly) Smooth(alpha float64) *Weekly {
	out := &Weekly{Country: w.Country, Location: w.Location}
	out.Probable = smoothCounts(w.Probable, alpha)
	out.Confirmed = smoothCounts(w.Confirmed, alpha)
	return out
}

func smoothCounts(in []WeekCount, alpha float64) []WeekCount {
	values := make([]float64, len(in))
	for i, c := range in {
		values[i] = c.Value
	}
	values = util.Smooth(values, alpha)
	out := make([]WeekCount, len(in))
	for i, c := range in {
		out[i] = WeekCount{Week: c.Week, Value: values[i]}
	}
	return out
}
