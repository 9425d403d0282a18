package catalog

import (
	"fmt"
	"math"
	"sort"

	"portfolioanalyzer/internal/domain"
)

// sector adjustments are bounded to this many percentage points in
// either direction
const MaxSectorAdjustment = 5.0

type factorKey struct {
	scenario domain.ScenarioID
	category domain.AssetCategory
}

type sectorKey struct {
	scenario domain.ScenarioID
	sector   string
}

type SectorAdjustment struct {
	Scenario   domain.ScenarioID
	Sector     string
	Adjustment float64
}

// Catalog is the static scenario reference table. It is never mutated
// after construction - replacing it means building a new Catalog and
// swapping it into a Store.
type Catalog struct {
	version           string
	scenarios         []domain.Scenario
	factors           map[factorKey]domain.ScenarioImpactFactor
	sectorAdjustments map[sectorKey]float64
	normRatings       map[domain.AssetCategory]int
}

func New(
	version string,
	scenarios []domain.Scenario,
	factors []domain.ScenarioImpactFactor,
	sectorAdjustments []SectorAdjustment,
	normRatings map[domain.AssetCategory]int,
) (*Catalog, error) {
	c := &Catalog{
		version:           version,
		scenarios:         append([]domain.Scenario{}, scenarios...),
		factors:           map[factorKey]domain.ScenarioImpactFactor{},
		sectorAdjustments: map[sectorKey]float64{},
		normRatings:       map[domain.AssetCategory]int{},
	}
	for _, f := range factors {
		key := factorKey{scenario: f.Scenario, category: f.Category}
		if _, ok := c.factors[key]; ok {
			return nil, fmt.Errorf("duplicate catalog entry for %s/%s", f.Scenario, f.Category)
		}
		c.factors[key] = copyFactor(f)
	}
	for _, s := range sectorAdjustments {
		c.sectorAdjustments[sectorKey{scenario: s.Scenario, sector: domain.NormalizeSector(s.Sector)}] = s.Adjustment
	}
	for category, rating := range normRatings {
		c.normRatings[category] = rating
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", version, err)
	}

	return c, nil
}

// Validate checks that the catalog is total over scenarios x categories
// and that every row is internally sane
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("nil catalog")
	}
	if len(c.scenarios) == 0 {
		return fmt.Errorf("catalog has no scenarios")
	}

	known := map[domain.ScenarioID]bool{}
	for _, s := range c.scenarios {
		if known[s.ID] {
			return fmt.Errorf("duplicate scenario %s", s.ID)
		}
		known[s.ID] = true

		for _, category := range domain.AllAssetCategories {
			if _, ok := c.factors[factorKey{scenario: s.ID, category: category}]; !ok {
				return fmt.Errorf("missing entry for %s/%s", s.ID, category)
			}
		}
	}

	for key, f := range c.factors {
		if !known[key.scenario] {
			return fmt.Errorf("entry for unknown scenario %s", key.scenario)
		}
		if f.ImpactRange.Min > f.ImpactRange.Max {
			return fmt.Errorf("%s/%s impact range min %f > max %f", key.scenario, key.category, f.ImpactRange.Min, f.ImpactRange.Max)
		}
		if f.VolatilityMultiplier < 0 {
			return fmt.Errorf("%s/%s has negative volatility multiplier", key.scenario, key.category)
		}
		if len(f.PrimaryDrivers) == 0 {
			return fmt.Errorf("%s/%s has no primary drivers", key.scenario, key.category)
		}
	}
	for key, adj := range c.sectorAdjustments {
		if !known[key.scenario] {
			return fmt.Errorf("sector adjustment for unknown scenario %s", key.scenario)
		}
		if math.Abs(adj) > MaxSectorAdjustment {
			return fmt.Errorf("sector adjustment %s/%s of %f exceeds bound", key.scenario, key.sector, adj)
		}
	}
	for _, category := range domain.AllAssetCategories {
		rating, ok := c.normRatings[category]
		if !ok {
			return fmt.Errorf("missing norm risk rating for %s", category)
		}
		if rating < 1 || rating > 10 {
			return fmt.Errorf("norm risk rating for %s out of range: %d", category, rating)
		}
	}

	return nil
}

func (c *Catalog) Version() string {
	return c.version
}

func (c *Catalog) Scenarios() []domain.Scenario {
	return append([]domain.Scenario{}, c.scenarios...)
}

func (c *Catalog) Scenario(id domain.ScenarioID) (domain.Scenario, bool) {
	for _, s := range c.scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scenario{}, false
}

// Factor is a direct (scenario, category) lookup with no fallback
func (c *Catalog) Factor(scenario domain.ScenarioID, category domain.AssetCategory) (domain.ScenarioImpactFactor, bool) {
	f, ok := c.factors[factorKey{scenario: scenario, category: category}]
	if !ok {
		return domain.ScenarioImpactFactor{}, false
	}
	return copyFactor(f), true
}

// Lookup resolves the row for an asset. The asset's category is tried
// first, then the broad category of its asset type, and finally a
// neutral zero-impact row. The returned fallback says which one was used.
func (c *Catalog) Lookup(scenario domain.ScenarioID, asset domain.PortfolioAsset) (domain.ScenarioImpactFactor, domain.CatalogFallback) {
	if f, ok := c.Factor(scenario, asset.Category()); ok {
		return f, domain.CatalogFallback_None
	}

	typeDefault := domain.DefaultCategory(asset.AssetType, asset.GeographicRegion)
	if f, ok := c.Factor(scenario, typeDefault); ok {
		return f, domain.CatalogFallback_AssetTypeDefault
	}

	return domain.ScenarioImpactFactor{
		Scenario:              scenario,
		Category:              asset.Category(),
		ImpactRange:           domain.ImpactRange{Min: 0, Max: 0},
		PrimaryDrivers:        []string{"no catalog mapping"},
		VolatilityMultiplier:  1,
		CorrelationAdjustment: 0,
	}, domain.CatalogFallback_Neutral
}

// SectorAdjustment returns 0 for sectors with no entry
func (c *Catalog) SectorAdjustment(scenario domain.ScenarioID, sector string) float64 {
	if sector == "" {
		return 0
	}
	return c.sectorAdjustments[sectorKey{scenario: scenario, sector: domain.NormalizeSector(sector)}]
}

// NormRiskRating is the typical risk rating of a holding in the category
func (c *Catalog) NormRiskRating(category domain.AssetCategory) (int, bool) {
	r, ok := c.normRatings[category]
	return r, ok
}

// Factors lists every row, ordered by scenario then category. Extra
// categories (not in domain.AllAssetCategories) sort after the known ones.
func (c *Catalog) Factors() []domain.ScenarioImpactFactor {
	rank := map[domain.AssetCategory]int{}
	for i, category := range domain.AllAssetCategories {
		rank[category] = i
	}
	categoryRank := func(category domain.AssetCategory) int {
		if r, ok := rank[category]; ok {
			return r
		}
		return len(rank)
	}

	out := []domain.ScenarioImpactFactor{}
	for _, s := range c.scenarios {
		rows := []domain.ScenarioImpactFactor{}
		for key, f := range c.factors {
			if key.scenario == s.ID {
				rows = append(rows, copyFactor(f))
			}
		}
		sort.Slice(rows, func(i, j int) bool {
			ri, rj := categoryRank(rows[i].Category), categoryRank(rows[j].Category)
			if ri != rj {
				return ri < rj
			}
			return rows[i].Category < rows[j].Category
		})
		out = append(out, rows...)
	}
	return out
}

func (c *Catalog) sectorAdjustmentList() []SectorAdjustment {
	out := []SectorAdjustment{}
	for key, adj := range c.sectorAdjustments {
		out = append(out, SectorAdjustment{
			Scenario:   key.scenario,
			Sector:     key.sector,
			Adjustment: adj,
		})
	}
	return out
}

func copyFactor(f domain.ScenarioImpactFactor) domain.ScenarioImpactFactor {
	f.PrimaryDrivers = append([]string{}, f.PrimaryDrivers...)
	return f
}
