package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"portfolioanalyzer/internal/domain"

	"github.com/gocarina/gocsv"
)

type factorRow struct {
	Scenario              string  `csv:"scenario"`
	Category              string  `csv:"category"`
	ImpactMin             float64 `csv:"impact_min"`
	ImpactMax             float64 `csv:"impact_max"`
	PrimaryDrivers        string  `csv:"primary_drivers"` // pipe separated
	VolatilityMultiplier  float64 `csv:"volatility_multiplier"`
	CorrelationAdjustment float64 `csv:"correlation_adjustment"`
}

// WithOverridesCSV builds a new catalog from base, replacing (or adding)
// every row found in the csv. Rows must reference scenarios that already
// exist in base. base itself is not modified.
func WithOverridesCSV(base *Catalog, r io.Reader, version string) (*Catalog, error) {
	rows := []factorRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalog csv: %w", err)
	}

	merged := map[factorKey]domain.ScenarioImpactFactor{}
	for _, f := range base.Factors() {
		merged[factorKey{scenario: f.Scenario, category: f.Category}] = f
	}

	for i, fr := range rows {
		scenario := domain.ScenarioID(strings.TrimSpace(fr.Scenario))
		if _, ok := base.Scenario(scenario); !ok {
			return nil, fmt.Errorf("catalog csv row %d: unknown scenario %q", i+1, fr.Scenario)
		}
		category := domain.AssetCategory(strings.TrimSpace(fr.Category))
		if category == "" {
			return nil, fmt.Errorf("catalog csv row %d: missing category", i+1)
		}

		drivers := []string{}
		for _, d := range strings.Split(fr.PrimaryDrivers, "|") {
			if d = strings.TrimSpace(d); d != "" {
				drivers = append(drivers, d)
			}
		}

		merged[factorKey{scenario: scenario, category: category}] = domain.ScenarioImpactFactor{
			Scenario:              scenario,
			Category:              category,
			ImpactRange:           domain.ImpactRange{Min: fr.ImpactMin, Max: fr.ImpactMax},
			PrimaryDrivers:        drivers,
			VolatilityMultiplier:  fr.VolatilityMultiplier,
			CorrelationAdjustment: fr.CorrelationAdjustment,
		}
	}

	factors := []domain.ScenarioImpactFactor{}
	for _, f := range merged {
		factors = append(factors, f)
	}

	return New(
		version,
		base.Scenarios(),
		factors,
		base.sectorAdjustmentList(),
		base.normRatings,
	)
}

// LoadOverridesFile is WithOverridesCSV for a file on disk; the file name
// becomes part of the version so results can be traced back to it
func LoadOverridesFile(base *Catalog, path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog overrides: %w", err)
	}
	defer f.Close()

	return WithOverridesCSV(base, f, fmt.Sprintf("%s+%s", base.Version(), path))
}
