package epidemic

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Valid(t *testing.T) {
	cfg, err := NewConfig(Params{Population: 1000, Days: 10, ContactRate: 0.3, MeanRecoveryRate: 0.1})
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Population())
	assert.Equal(t, 10, cfg.Days())
	assert.Equal(t, 0.3, cfg.ContactRate())
	assert.Equal(t, 0.1, cfg.MeanRecoveryRate())

	_, _, ok := cfg.VitalRates()
	assert.False(t, ok)
}

func TestNewConfig_VitalRates(t *testing.T) {
	cfg, err := NewConfig(DefaultParams(Vital))
	require.NoError(t, err)
	death, birth, ok := cfg.VitalRates()
	require.True(t, ok)
	assert.Equal(t, 8.7, death)
	assert.Equal(t, 37.2, birth)

	p := cfg.Params()
	require.NotNil(t, p.DeathRate)
	require.NotNil(t, p.BirthRate)
	assert.Equal(t, 8.7, *p.DeathRate)

	// zero rates are valid
	_, err = NewConfig(Params{Population: 10, Days: 1, ContactRate: 1, MeanRecoveryRate: 1,
		DeathRate: Rate(0), BirthRate: Rate(0), Vital: true})
	assert.NoError(t, err)
}

func TestNewConfig_ScenarioC(t *testing.T) {
	_, err := NewConfig(Params{Population: 0, Days: 10, ContactRate: 0.3, MeanRecoveryRate: 0.1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewConfig(Params{Population: 100, Days: 10, ContactRate: 0, MeanRecoveryRate: 0.1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewConfig_Rejections(t *testing.T) {
	base := Params{Population: 100, Days: 10, ContactRate: 0.3, MeanRecoveryRate: 0.1}

	cases := []struct {
		name  string
		mut   func(p *Params)
		field string
	}{
		{"population zero", func(p *Params) { p.Population = 0 }, "population"},
		{"population negative", func(p *Params) { p.Population = -5 }, "population"},
		{"days negative", func(p *Params) { p.Days = -1 }, "days"},
		{"contact zero", func(p *Params) { p.ContactRate = 0 }, "contact_rate"},
		{"contact negative", func(p *Params) { p.ContactRate = -0.3 }, "contact_rate"},
		{"contact NaN", func(p *Params) { p.ContactRate = math.NaN() }, "contact_rate"},
		{"recovery zero", func(p *Params) { p.MeanRecoveryRate = 0 }, "mean_recovery_rate"},
		{"recovery inf", func(p *Params) { p.MeanRecoveryRate = math.Inf(1) }, "mean_recovery_rate"},
		{"death negative", func(p *Params) { p.DeathRate = Rate(-1); p.BirthRate = Rate(1) }, "death_rate"},
		{"birth negative", func(p *Params) { p.DeathRate = Rate(1); p.BirthRate = Rate(-0.1) }, "birth_rate"},
		{"vital without death", func(p *Params) { p.Vital = true; p.BirthRate = Rate(1) }, "death_rate"},
		{"vital without birth", func(p *Params) { p.Vital = true; p.DeathRate = Rate(1) }, "birth_rate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mut(&p)
			_, err := NewConfig(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestNewConfig_DoesNotAliasParams(t *testing.T) {
	death := 8.7
	p := Params{Population: 100, Days: 1, ContactRate: 1, MeanRecoveryRate: 1, DeathRate: &death, BirthRate: Rate(2)}
	cfg, err := NewConfig(p)
	require.NoError(t, err)

	death = 99
	d, _, _ := cfg.VitalRates()
	assert.Equal(t, 8.7, d)
}

func TestParseVariant(t *testing.T) {
	for in, want := range map[string]Variant{
		"":          NonVital,
		"non-vital": NonVital,
		"NonVital":  NonVital,
		"closed":    NonVital,
		"vital":     Vital,
		" Open ":    Vital,
	} {
		got, err := ParseVariant(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseVariant("seir")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	assert.Equal(t, "non-vital", NonVital.String())
	assert.Equal(t, "vital", Vital.String())
	assert.Equal(t, "variant(9)", Variant(9).String())
}

func TestDefaultParams(t *testing.T) {
	nv := DefaultParams(NonVital)
	assert.Equal(t, 12720001, nv.Population)
	assert.Equal(t, 861, nv.Days)
	assert.Nil(t, nv.DeathRate)

	v := DefaultParams(Vital)
	assert.Equal(t, 12720000, v.Population)
	assert.True(t, v.Vital)
	require.NotNil(t, v.BirthRate)
	assert.Equal(t, 37.2, *v.BirthRate)
}

func TestPoint(t *testing.T) {
	p := Point{S: 900, I: 60, R: 40}
	assert.Equal(t, 1000.0, p.Total())
	assert.Equal(t, Point{S: 0.9, I: 0.06, R: 0.04}, p.Scale(1000))
}
