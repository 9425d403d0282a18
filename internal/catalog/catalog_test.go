package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"portfolioanalyzer/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, DefaultVersion, c.Version())

	ids := []domain.ScenarioID{}
	for _, s := range c.Scenarios() {
		ids = append(ids, s.ID)
		require.NotEmpty(t, s.Name)
		require.NotEmpty(t, s.Description)
	}
	require.Equal(t, "", cmp.Diff([]domain.ScenarioID{
		domain.ScenarioID_Recession,
		domain.ScenarioID_HighInflation,
		domain.ScenarioID_RisingRates,
		domain.ScenarioID_MarketCrash,
	}, ids))

	require.Len(t, c.Factors(), 40)

	t.Run("every category resolves directly", func(t *testing.T) {
		for _, s := range c.Scenarios() {
			for _, category := range domain.AllAssetCategories {
				f, ok := c.Factor(s.ID, category)
				require.True(t, ok)
				require.LessOrEqual(t, f.ImpactRange.Min, f.ImpactRange.Max)
				require.GreaterOrEqual(t, f.VolatilityMultiplier, 0.0)
				require.NotEmpty(t, f.PrimaryDrivers)
			}
		}
	})

	t.Run("sector adjustments stay within bounds", func(t *testing.T) {
		for _, adj := range c.sectorAdjustmentList() {
			require.LessOrEqual(t, adj.Adjustment, MaxSectorAdjustment)
			require.GreaterOrEqual(t, adj.Adjustment, -MaxSectorAdjustment)
		}
	})

	t.Run("returned drivers cannot mutate the catalog", func(t *testing.T) {
		f, _ := c.Factor(domain.ScenarioID_Recession, domain.AssetCategory_Cash)
		f.PrimaryDrivers[0] = "changed"
		again, _ := c.Factor(domain.ScenarioID_Recession, domain.AssetCategory_Cash)
		require.Equal(t, "capital preservation", again.PrimaryDrivers[0])
	})
}

func TestCatalog_Lookup(t *testing.T) {
	c := Default()

	t.Run("direct category", func(t *testing.T) {
		f, fallback := c.Lookup(domain.ScenarioID_Recession, domain.PortfolioAsset{
			AssetType:     domain.AssetType_Etf,
			AssetCategory: domain.AssetCategory_GovernmentBonds,
		})
		require.Equal(t, domain.CatalogFallback_None, fallback)
		require.Equal(t, domain.AssetCategory_GovernmentBonds, f.Category)
		require.Equal(t, 10.0, f.Midpoint())
	})

	t.Run("missing category uses the asset type default", func(t *testing.T) {
		f, fallback := c.Lookup(domain.ScenarioID_Recession, domain.PortfolioAsset{
			AssetType: domain.AssetType_Reit,
		})
		// no category given at all is not a fallback, the default is the category
		require.Equal(t, domain.CatalogFallback_None, fallback)
		require.Equal(t, domain.AssetCategory_RealEstate, f.Category)
	})

	t.Run("unknown category falls back to the asset type default", func(t *testing.T) {
		f, fallback := c.Lookup(domain.ScenarioID_Recession, domain.PortfolioAsset{
			AssetType:        domain.AssetType_Stock,
			AssetCategory:    domain.AssetCategory("frontier_markets"),
			GeographicRegion: domain.GeographicRegion_EmergingMarkets,
		})
		require.Equal(t, domain.CatalogFallback_AssetTypeDefault, fallback)
		require.Equal(t, domain.AssetCategory_EmergingMarkets, f.Category)
	})

	t.Run("sector adjustment is normalized and defaults to zero", func(t *testing.T) {
		require.Equal(t, 5.0, c.SectorAdjustment(domain.ScenarioID_Recession, "Consumer Staples"))
		require.Equal(t, 0.0, c.SectorAdjustment(domain.ScenarioID_Recession, "space tourism"))
		require.Equal(t, 0.0, c.SectorAdjustment(domain.ScenarioID_Recession, ""))
	})
}

func TestNew(t *testing.T) {
	t.Run("rejects duplicate rows", func(t *testing.T) {
		factors := defaultFactors()
		factors = append(factors, factors[0])
		_, err := New("x", defaultScenarios, factors, nil, defaultNormRatings())
		require.ErrorContains(t, err, "duplicate")
	})

	t.Run("rejects missing rows", func(t *testing.T) {
		_, err := New("x", defaultScenarios, defaultFactors()[1:], nil, defaultNormRatings())
		require.ErrorContains(t, err, "missing entry")
	})

	t.Run("rejects inverted ranges", func(t *testing.T) {
		factors := defaultFactors()
		factors[0].ImpactRange = domain.ImpactRange{Min: 5, Max: -5}
		_, err := New("x", defaultScenarios, factors, nil, defaultNormRatings())
		require.ErrorContains(t, err, "impact range")
	})

	t.Run("rejects negative volatility multiplier", func(t *testing.T) {
		factors := defaultFactors()
		factors[3].VolatilityMultiplier = -1
		_, err := New("x", defaultScenarios, factors, nil, defaultNormRatings())
		require.ErrorContains(t, err, "volatility")
	})

	t.Run("rejects out of bound sector adjustments", func(t *testing.T) {
		_, err := New("x", defaultScenarios, defaultFactors(), []SectorAdjustment{
			{Scenario: domain.ScenarioID_Recession, Sector: "tech", Adjustment: 7},
		}, defaultNormRatings())
		require.ErrorContains(t, err, "exceeds bound")
	})
}

const overridesCsv = `scenario,category,impact_min,impact_max,primary_drivers,volatility_multiplier,correlation_adjustment
recession,us_large_cap,-40,-20,earnings collapse|layoffs,2.0,0.3
recession,digital_assets,-80,-40,speculative unwind,3.0,0.5
`

func TestWithOverridesCSV(t *testing.T) {
	base := Default()

	t.Run("replaces and adds rows", func(t *testing.T) {
		c, err := WithOverridesCSV(base, strings.NewReader(overridesCsv), "test")
		require.NoError(t, err)
		require.Equal(t, "test", c.Version())

		f, ok := c.Factor(domain.ScenarioID_Recession, domain.AssetCategory_UsLargeCap)
		require.True(t, ok)
		require.Equal(t, "", cmp.Diff(domain.ScenarioImpactFactor{
			Scenario:              domain.ScenarioID_Recession,
			Category:              domain.AssetCategory_UsLargeCap,
			ImpactRange:           domain.ImpactRange{Min: -40, Max: -20},
			PrimaryDrivers:        []string{"earnings collapse", "layoffs"},
			VolatilityMultiplier:  2.0,
			CorrelationAdjustment: 0.3,
		}, f))

		_, fallback := c.Lookup(domain.ScenarioID_Recession, domain.PortfolioAsset{
			AssetType:     domain.AssetType_Etf,
			AssetCategory: domain.AssetCategory("digital_assets"),
		})
		require.Equal(t, domain.CatalogFallback_None, fallback)

		// untouched rows and tables carry over
		require.Len(t, c.Factors(), 41)
		require.Equal(t, 5.0, c.SectorAdjustment(domain.ScenarioID_Recession, "consumer_staples"))

		// base is unchanged
		orig, _ := base.Factor(domain.ScenarioID_Recession, domain.AssetCategory_UsLargeCap)
		require.Equal(t, -35.0, orig.ImpactRange.Min)
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := WithOverridesCSV(base, strings.NewReader(
			"scenario,category,impact_min,impact_max,primary_drivers,volatility_multiplier,correlation_adjustment\nstagflation,cash,0,1,x,1,0\n",
		), "test")
		require.ErrorContains(t, err, "unknown scenario")
	})

	t.Run("invalid row is rejected by validation", func(t *testing.T) {
		_, err := WithOverridesCSV(base, strings.NewReader(
			"scenario,category,impact_min,impact_max,primary_drivers,volatility_multiplier,correlation_adjustment\nrecession,cash,5,1,x,1,0\n",
		), "test")
		require.Error(t, err)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.csv")
		require.NoError(t, os.WriteFile(path, []byte(overridesCsv), 0o600))

		c, err := LoadOverridesFile(base, path)
		require.NoError(t, err)
		require.Equal(t, DefaultVersion+"+"+path, c.Version())
	})
}

func TestStore(t *testing.T) {
	t.Run("swap publishes a new catalog", func(t *testing.T) {
		store, err := NewStore(Default())
		require.NoError(t, err)

		next, err := WithOverridesCSV(store.Current(), strings.NewReader(overridesCsv), "next")
		require.NoError(t, err)
		require.NoError(t, store.Swap(next))
		require.Equal(t, "next", store.Current().Version())
	})

	t.Run("invalid catalog is refused and the old one kept", func(t *testing.T) {
		store, err := NewStore(Default())
		require.NoError(t, err)

		err = store.Swap(&Catalog{version: "broken"})
		require.Error(t, err)
		require.Equal(t, DefaultVersion, store.Current().Version())

		require.Error(t, store.Swap(nil))
	})

	t.Run("concurrent readers during swaps", func(t *testing.T) {
		store, err := NewStore(Default())
		require.NoError(t, err)
		next, err := WithOverridesCSV(Default(), strings.NewReader(overridesCsv), "next")
		require.NoError(t, err)

		wg := sync.WaitGroup{}
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					c := store.Current()
					if _, ok := c.Factor(domain.ScenarioID_Recession, domain.AssetCategory_UsLargeCap); !ok {
						t.Errorf("catalog %s missing recession/us_large_cap", c.Version())
					}
				}
			}()
		}
		for i := 0; i < 10; i++ {
			if i%2 == 0 {
				require.NoError(t, store.Swap(next))
			} else {
				require.NoError(t, store.Swap(Default()))
			}
		}
		wg.Wait()
	})
}
