package weekly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(location string) Document {
	return Document{
		Location: location,
		Entries: []Entry{
			{Week: "2014-W40", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: 10},
			{Week: "2014-W40", Source: SourcePatientDatabase, CaseDefinition: Probable, Value: 3},
			{Week: "2014-W41", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: 14},
			{Week: "2014-W41", Source: SourceSituationReport, CaseDefinition: Confirmed, Value: 99},
			{Week: "2014-W42", Source: SourcePatientDatabase, CaseDefinition: Probable, Value: 5},
			{Week: "2014-W42", Source: SourcePatientDatabase, CaseDefinition: "Suspected", Value: 40},
			{Week: "2014-W43", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: 20},
		},
	}
}

func TestParse_AlignsSeries(t *testing.T) {
	w, err := Parse(sampleDoc(""), "Guinea", ParseOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Guinea", w.Title())
	assert.Equal(t, []string{"2014-W40", "2014-W41", "2014-W42", "2014-W43"}, w.Weeks())
	assert.Equal(t, []WeekCount{
		{"2014-W40", 3}, {"2014-W41", 0}, {"2014-W42", 5}, {"2014-W43", 0},
	}, w.Probable)
	assert.Equal(t, []WeekCount{
		{"2014-W40", 10}, {"2014-W41", 14}, {"2014-W42", 0}, {"2014-W43", 20},
	}, w.Confirmed)
	assert.Equal(t, 44.0, w.Total(Confirmed))
	assert.Equal(t, 8.0, w.Total(Probable))
}

func TestParse_SourceAndLocation(t *testing.T) {
	w, err := Parse(sampleDoc("Conakry"), "Guinea", ParseOptions{Source: "situation REPORT"})
	require.NoError(t, err)
	assert.Equal(t, "Guinea Conakry", w.Title())
	assert.Equal(t, []WeekCount{{"2014-W41", 99}}, w.Confirmed)
	assert.Equal(t, []WeekCount{{"2014-W41", 0}}, w.Probable)
}

func TestParse_Interval(t *testing.T) {
	w, err := Parse(sampleDoc(""), "Sierra_Leone", ParseOptions{Interval: 3})
	require.NoError(t, err)
	assert.Equal(t, "Sierra Leone", w.Title())
	assert.Equal(t, []WeekCount{{"2014-W40", 24}, {"2014-W43", 20}}, w.Confirmed)
	assert.Equal(t, []WeekCount{{"2014-W40", 8}, {"2014-W43", 0}}, w.Probable)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(Document{}, "Guinea", ParseOptions{})
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = Parse(Document{Entries: []Entry{{Week: "w1", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: -1}}}, "Guinea", ParseOptions{})
	assert.ErrorIs(t, err, ErrBadValue)

	_, err = Parse(Document{Entries: []Entry{{Week: "w1", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: math.NaN()}}}, "Guinea", ParseOptions{})
	assert.ErrorIs(t, err, ErrBadValue)

	_, err = Parse(Document{Entries: []Entry{{Week: " ", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: 1}}}, "Guinea", ParseOptions{})
	assert.ErrorIs(t, err, ErrNoWeek)
}

func TestSumAll(t *testing.T) {
	national, err := Parse(sampleDoc(""), "Guinea", ParseOptions{})
	require.NoError(t, err)
	capital, err := Parse(Document{Location: "Conakry", Entries: []Entry{
		{Week: "2014-W41", Source: SourcePatientDatabase, CaseDefinition: Confirmed, Value: 1},
		{Week: "2014-W44", Source: SourcePatientDatabase, CaseDefinition: Probable, Value: 2},
	}}, "Guinea", ParseOptions{})
	require.NoError(t, err)

	sum := SumAll([]*Weekly{national, capital}, "Guinea Sum")
	assert.Equal(t, "Guinea Sum", sum.Title())
	assert.Equal(t, []string{"2014-W40", "2014-W41", "2014-W42", "2014-W43", "2014-W44"}, sum.Weeks())
	assert.Equal(t, 15.0, sum.Confirmed[1].Value)
	assert.Equal(t, 2.0, sum.Probable[4].Value)
	assert.Equal(t, national.Total(Confirmed)+capital.Total(Confirmed), sum.Total(Confirmed))

	empty := SumAll(nil, "none")
	assert.Empty(t, empty.Weeks())
}

func TestObservationsAndSmooth(t *testing.T) {
	w, err := Parse(sampleDoc(""), "Guinea", ParseOptions{})
	require.NoError(t, err)

	obs := w.Observations(Confirmed)
	require.Len(t, obs, 4)
	assert.Equal(t, Observation{Label: "2014-W41", Value: 14}, obs[1])

	s := w.Smooth(0.5)
	assert.Equal(t, w.Weeks(), s.Weeks())
	assert.InDelta(t, 10.0, s.Confirmed[0].Value, 1e-12)
	assert.InDelta(t, 12.0, s.Confirmed[1].Value, 1e-12)
	assert.InDelta(t, 6.0, s.Confirmed[2].Value, 1e-12)
	assert.Equal(t, 14.0, w.Confirmed[1].Value, "original left untouched")
}
