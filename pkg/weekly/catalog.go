package weekly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Catalog maps a country to its report collections.
type Catalog map[string][]string

// DefaultCatalog lists the West Africa collections: a national summary,
// the capital area and the deprecated district breakdown per country.
func DefaultCatalog() Catalog {
	return Catalog{
		"Guinea": {
			"guinea_weekly.json",
			"guinea_conarky_weekly.json",
			"guinea_district_weekly.json",
		},
		"Liberia": {
			"liberia_weekly.json",
			"liberia_monsterrado_weekly.json",
			"liberia_district_weekly.json",
		},
		"Sierra_Leone": {
			"sierra_weekly.json",
			"sierra_westernarea_weekly.json",
			"sierra_district_weekly.json",
		},
	}
}

// Countries returns the catalog keys sorted.
func (c Catalog) Countries() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// IsDistrict reports whether collection uses the district layout.
func IsDistrict(collection string) bool {
	return strings.Contains(collection, "district")
}

// Dataset is the result of LoadAll.
type Dataset struct {
	// Reports holds every parsed collection, capital areas included.
	Reports []*Weekly

	// Summaries holds national reports only (no Location).
	Summaries []*Weekly

	// Sums holds one week-by-week sum per country, named "<country> Sum".
	Sums []*Weekly
}

// LoadAll fetches and parses every catalog collection from repo. District
// collections are skipped; missing collections are logged and skipped.
func LoadAll(ctx context.Context, repo Repository, catalog Catalog, opts ParseOptions) (*Dataset, error) {
	ds := &Dataset{}
	for _, country := range catalog.Countries() {
		var perCountry []*Weekly
		for _, collection := range catalog[country] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if IsDistrict(collection) {
				slog.Debug("skip district collection", "country", country, "collection", collection)
				continue
			}
			w, err := Load(ctx, repo, country, collection, opts)
			if errors.Is(err, ErrNotFound) {
				slog.Warn("collection missing", "country", country, "collection", collection)
				continue
			}
			if err != nil {
				return nil, err
			}
			perCountry = append(perCountry, w)
			ds.Reports = append(ds.Reports, w)
			if w.Location == "" {
				ds.Summaries = append(ds.Summaries, w)
			}
		}
		if len(perCountry) > 0 {
			name := strings.ReplaceAll(country, "_", " ") + " Sum"
			ds.Sums = append(ds.Sums, SumAll(perCountry, name))
		}
	}
	return ds, nil
}

// Load fetches and parses a single collection.
func Load(ctx context.Context, repo Repository, country, collection string, opts ParseOptions) (*Weekly, error) {
	if IsDistrict(collection) {
		return nil, fmt.Errorf("%w: %s", ErrDistrict, collection)
	}
	doc, err := repo.Report(ctx, country, collection)
	if err != nil {
		return nil, err
	}
	w, err := Parse(doc, country, opts)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", country, collection, err)
	}
	return w, nil
}
