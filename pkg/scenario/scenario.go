// Package scenario loads named simulation scenarios from YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ja7ad/epidemic/pkg/epidemic"
	"github.com/ja7ad/epidemic/pkg/types"
)

var (
	// ErrNotFound is returned by File.Find for an unknown scenario name.
	ErrNotFound = errors.New("scenario: not found")

	// ErrDuplicate is returned by Validate when two scenarios share a name.
	ErrDuplicate = errors.New("scenario: duplicate name")
)

// File is the on-disk document.
type File struct {
	// Magnitude is the default display divisor ("1000", "k", "m").
	Magnitude string `yaml:"magnitude,omitempty"`

	// Database is the path of the weekly report store.
	Database string `yaml:"database,omitempty"`

	Logging LoggingConfig `yaml:"logging"`

	Scenarios []Scenario `yaml:"scenarios"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `yaml:"level"`
}

// Scenario is one simulation run.
type Scenario struct {
	Name             string   `yaml:"name"`
	Variant          string   `yaml:"variant"`
	Population       int      `yaml:"population"`
	Days             int      `yaml:"days"`
	ContactRate      float64  `yaml:"contact_rate"`
	MeanRecoveryRate float64  `yaml:"mean_recovery_rate"`
	DeathRate        *float64 `yaml:"death_rate,omitempty"`
	BirthRate        *float64 `yaml:"birth_rate,omitempty"`

	// Magnitude overrides File.Magnitude for this scenario.
	Magnitude string `yaml:"magnitude,omitempty"`
}

// Default returns the two runs of the 2014 West Africa study.
func Default() *File {
	nv := epidemic.DefaultParams(epidemic.NonVital)
	v := epidemic.DefaultParams(epidemic.Vital)
	return &File{
		Magnitude: "1000",
		Database:  "sirfit.db",
		Logging:   LoggingConfig{Level: "info"},
		Scenarios: []Scenario{
			FromParams("non-vital", epidemic.NonVital, nv),
			FromParams("vital", epidemic.Vital, v),
		},
	}
}

// FromParams builds a Scenario from engine parameters.
func FromParams(name string, variant epidemic.Variant, p epidemic.Params) Scenario {
	return Scenario{
		Name:             name,
		Variant:          variant.String(),
		Population:       p.Population,
		Days:             p.Days,
		ContactRate:      p.ContactRate,
		MeanRecoveryRate: p.MeanRecoveryRate,
		DeathRate:        p.DeathRate,
		BirthRate:        p.BirthRate,
	}
}

// Load reads a scenario file and applies environment overrides.
// A missing path yields Default().
func Load(path string) (*File, error) {
	f := Default()
	if path != "" {
		var err error
		if f, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	applyEnvOverrides(f)
	return f, nil
}

// LoadFromFile reads and validates a YAML scenario file.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document. ${VAR} references are expanded first.
// Top-level fields missing from the document keep their Default() values;
// a document without scenarios keeps the default scenarios.
func Parse(data []byte) (*File, error) {
	f := Default()
	defaults := f.Scenarios
	f.Scenarios = nil
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), f); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if len(f.Scenarios) == 0 {
		f.Scenarios = defaults
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Marshal encodes f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Validate checks every scenario by building its engine config.
func (f *File) Validate() error {
	if _, err := types.ParseMagnitude(f.Magnitude); err != nil {
		return fmt.Errorf("magnitude: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario #%d: name is required", i)
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, s.Name)
		}
		seen[s.Name] = struct{}{}
		if _, _, err := s.Config(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if _, err := types.ParseMagnitude(s.Magnitude); err != nil {
			return fmt.Errorf("scenario %s: magnitude: %w", s.Name, err)
		}
	}
	return nil
}

// Find returns the scenario called name.
func (f *File) Find(name string) (Scenario, error) {
	for _, s := range f.Scenarios {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names lists the scenario names in file order.
func (f *File) Names() []string {
	out := make([]string, 0, len(f.Scenarios))
	for _, s := range f.Scenarios {
		out = append(out, s.Name)
	}
	return out
}

// MagnitudeFor resolves the display magnitude of s, falling back to the
// file default.
func (f *File) MagnitudeFor(s Scenario) (types.Magnitude, error) {
	if s.Magnitude != "" {
		return types.ParseMagnitude(s.Magnitude)
	}
	return types.ParseMagnitude(f.Magnitude)
}

// Params converts s to engine parameters. The vital variant requires both
// demographic rates.
func (s Scenario) Params() (epidemic.Params, epidemic.Variant, error) {
	v, err := epidemic.ParseVariant(s.Variant)
	if err != nil {
		return epidemic.Params{}, 0, err
	}
	return epidemic.Params{
		Population:       s.Population,
		Days:             s.Days,
		ContactRate:      s.ContactRate,
		MeanRecoveryRate: s.MeanRecoveryRate,
		DeathRate:        s.DeathRate,
		BirthRate:        s.BirthRate,
		Vital:            v == epidemic.Vital,
	}, v, nil
}

// Config validates s and returns the engine config and variant.
func (s Scenario) Config() (epidemic.Config, epidemic.Variant, error) {
	p, v, err := s.Params()
	if err != nil {
		return epidemic.Config{}, 0, err
	}
	cfg, err := epidemic.NewConfig(p)
	if err != nil {
		return epidemic.Config{}, 0, err
	}
	return cfg, v, nil
}

// Run validates and computes s.
func (s Scenario) Run() (*epidemic.Result, error) {
	cfg, v, err := s.Config()
	if err != nil {
		return nil, err
	}
	return epidemic.Compute(cfg, v)
}

func applyEnvOverrides(f *File) {
	if v := os.Getenv("SIRFIT_MAGNITUDE"); v != "" {
		f.Magnitude = v
	}
	if v := os.Getenv("SIRFIT_DB"); v != "" {
		f.Database = v
	}
	if v := os.Getenv("SIRFIT_LOG_LEVEL"); v != "" {
		f.Logging.Level = v
	}
}
