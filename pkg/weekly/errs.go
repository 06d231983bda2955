package weekly

import "errors"

var (
	// ErrNoEntries indicates a report had no entries for the requested source.
	ErrNoEntries = errors.New("weekly: no entries for source")

	// ErrBadValue indicates a negative or non-finite case count.
	ErrBadValue = errors.New("weekly: invalid case count")

	// ErrNoWeek indicates an entry without a week label.
	ErrNoWeek = errors.New("weekly: entry without week")

	// ErrDistrict indicates a district-level collection; that layout is no
	// longer parsed.
	ErrDistrict = errors.New("weekly: district reports are not supported")

	// ErrNotFound indicates the repository holds no such report.
	ErrNotFound = errors.New("weekly: report not found")
)
