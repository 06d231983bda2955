package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMagnitude is returned by ParseMagnitude for non-positive or malformed input.
var ErrMagnitude = errors.New("types: magnitude must be a positive number")

// Magnitude is a positive divisor applied to head counts for display,
// e.g. Thousand to report counts in thousands.
type Magnitude float64

const (
	One      Magnitude = 1
	Thousand Magnitude = 1e3
	Million  Magnitude = 1e6
	Billion  Magnitude = 1e9
)

// Humanized returns the unit label used on chart axes.
func (m Magnitude) Humanized() string {
	switch m {
	case One:
		return "individuals"
	case Thousand:
		return "thousands"
	case Million:
		return "millions"
	case Billion:
		return "billions"
	default:
		return fmt.Sprintf("x%s", strconv.FormatFloat(float64(m), 'g', -1, 64))
	}
}

// Float returns m as a float64.
func (m Magnitude) Float() float64 { return float64(m) }

// Valid reports whether m can be used as a divisor.
func (m Magnitude) Valid() bool {
	f := float64(m)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Scale divides v by m.
func (m Magnitude) Scale(v float64) float64 { return v / float64(m) }

// String implements fmt.Stringer.
func (m Magnitude) String() string { return m.Humanized() }

// ParseMagnitude accepts a plain number ("1000", "1e3") or a suffix
// shorthand: "k", "m", "b" (case-insensitive). Empty input means One.
func ParseMagnitude(s string) (Magnitude, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "":
		return One, nil
	case "k", "thousand", "thousands":
		return Thousand, nil
	case "m", "million", "millions":
		return Million, nil
	case "b", "billion", "billions":
		return Billion, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMagnitude, s)
	}
	m := Magnitude(v)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrMagnitude, s)
	}
	return m, nil
}
