package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagnitude_Humanized(t *testing.T) {
	cases := []struct {
		in   Magnitude
		want string
	}{
		{One, "individuals"},
		{Thousand, "thousands"},
		{Million, "millions"},
		{Billion, "billions"},
		{Magnitude(250), "x250"},
		{Magnitude(0.5), "x0.5"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			require.Equal(t, tc.want, tc.in.Humanized())
			require.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestMagnitude_Scale(t *testing.T) {
	assert.InDelta(t, 12720.001, Thousand.Scale(12720001), 1e-9)
	assert.InDelta(t, 12.720001, Million.Scale(12720001), 1e-12)
	assert.Equal(t, 42.0, One.Scale(42))
}

func TestMagnitude_Valid(t *testing.T) {
	assert.True(t, Thousand.Valid())
	assert.False(t, Magnitude(0).Valid())
	assert.False(t, Magnitude(-1).Valid())
}

func TestParseMagnitude(t *testing.T) {
	cases := []struct {
		in   string
		want Magnitude
	}{
		{"", One},
		{"k", Thousand},
		{"K", Thousand},
		{" thousands ", Thousand},
		{"M", Million},
		{"b", Billion},
		{"1000", Thousand},
		{"1e6", Million},
		{"250", Magnitude(250)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMagnitude(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"0", "-5", "abc", "NaN", "+Inf"} {
		_, err := ParseMagnitude(bad)
		assert.ErrorIs(t, err, ErrMagnitude, "input %q", bad)
	}
}
