package l1_service

import (
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/util"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRiskScorer_Score(t *testing.T) {
	scorer := NewRiskScorer()

	t.Run("single asset is maximally concentrated", func(t *testing.T) {
		profile := scorer.Score([]domain.PortfolioAsset{
			newAsset("VTI", domain.AssetType_Etf, 100, 1000),
		})
		require.Equal(t, 10.0, profile.ConcentrationRisk)
		require.Equal(t, 1.0, profile.HerfindahlIndex)
	})

	t.Run("concentration increases as allocation gets less uniform", func(t *testing.T) {
		even := scorer.Score([]domain.PortfolioAsset{
			newAsset("A", domain.AssetType_Stock, 50, 50),
			newAsset("B", domain.AssetType_Stock, 50, 50),
		})
		skewed := scorer.Score([]domain.PortfolioAsset{
			newAsset("A", domain.AssetType_Stock, 90, 90),
			newAsset("B", domain.AssetType_Stock, 10, 10),
		})
		single := scorer.Score([]domain.PortfolioAsset{
			newAsset("A", domain.AssetType_Stock, 100, 100),
		})

		require.InDelta(t, 5.0, even.ConcentrationRisk, 1e-9)
		require.InDelta(t, 8.2, skewed.ConcentrationRisk, 1e-9)
		require.Less(t, even.ConcentrationRisk, skewed.ConcentrationRisk)
		require.Less(t, skewed.ConcentrationRisk, single.ConcentrationRisk)
	})

	t.Run("well diversified portfolio is floored at 1", func(t *testing.T) {
		assets := []domain.PortfolioAsset{}
		for _, s := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T"} {
			assets = append(assets, newAsset(s, domain.AssetType_Stock, 5, 5))
		}
		profile := scorer.Score(assets)
		require.InDelta(t, 0.05, profile.HerfindahlIndex, 1e-9)
		require.Equal(t, 1.0, profile.ConcentrationRisk)
	})

	t.Run("sector and geographic concentration", func(t *testing.T) {
		a := newAsset("AAPL", domain.AssetType_Stock, 30, 30)
		a.Sector = "Technology"
		a.GeographicRegion = domain.GeographicRegion_Us
		b := newAsset("MSFT", domain.AssetType_Stock, 20, 20)
		b.Sector = "technology"
		b.GeographicRegion = domain.GeographicRegion_Us
		c := newAsset("VEA", domain.AssetType_Etf, 30, 30)
		c.GeographicRegion = domain.GeographicRegion_DevelopedInternational
		d := newAsset("XOM", domain.AssetType_Stock, 20, 20)
		d.Sector = "Energy"

		profile := scorer.Score([]domain.PortfolioAsset{a, b, c, d})

		require.InDelta(t, 50.0, profile.SectorConcentration, 1e-9)
		require.InDelta(t, 50.0, profile.GeographicRisk, 1e-9)

		warnings := profile.Findings.OfKind(domain.FindingKind_ConcentrationWarning)
		messages := []string{}
		for _, w := range warnings {
			messages = append(messages, w.Message)
		}
		require.Equal(t, "", cmp.Diff([]string{
			"AAPL is 30.00% of the portfolio, above the 25% single-holding guideline",
			"VEA is 30.00% of the portfolio, above the 25% single-holding guideline",
			"sector technology is 50.00% of the portfolio, above the 40% sector guideline",
		}, messages))
	})

	t.Run("no sectors gives zero sector concentration", func(t *testing.T) {
		profile := scorer.Score(vtiBnd())
		require.Equal(t, 0.0, profile.SectorConcentration)
		require.Equal(t, 0.0, profile.GeographicRisk)
	})

	t.Run("volatility and credit are allocation weighted", func(t *testing.T) {
		a := newAsset("A", domain.AssetType_Stock, 60, 60)
		a.RiskRating = util.IntPointer(8)
		a.AssetCategory = domain.AssetCategory_EmergingMarkets
		b := newAsset("B", domain.AssetType_Cash, 40, 40)
		// missing rating falls back to 5, missing category to the type default

		profile := scorer.Score([]domain.PortfolioAsset{a, b})

		require.InDelta(t, 0.6*8+0.4*5, profile.VolatilityScore, 1e-9)
		require.InDelta(t, 0.6*8+0.4*1, profile.CreditRisk, 1e-9)
	})

	t.Run("unknown category uses the asset type default for credit", func(t *testing.T) {
		a := newAsset("GLD", domain.AssetType_Commodity, 100, 100)
		a.AssetCategory = domain.AssetCategory("precious_metals")

		profile := scorer.Score([]domain.PortfolioAsset{a})
		require.Equal(t, 5.0, profile.CreditRisk)
	})

	t.Run("overall score is the mean of the four sub scores", func(t *testing.T) {
		profile := scorer.Score(vtiBnd())

		// hhi = .36 + .16 = .52, exposure floors at 1, volatility = 5, credit = .6*6 + .4*2
		require.InDelta(t, 5.2, profile.ConcentrationRisk, 1e-9)
		require.InDelta(t, 5.0, profile.VolatilityScore, 1e-9)
		require.InDelta(t, 4.4, profile.CreditRisk, 1e-9)
		require.InDelta(t, (5.2+1+5+4.4)/4, profile.OverallRiskScore, 1e-9)
	})

	t.Run("allocations off 100 are normalized with a warning", func(t *testing.T) {
		profile := scorer.Score([]domain.PortfolioAsset{
			newAsset("A", domain.AssetType_Stock, 25, 25),
			newAsset("B", domain.AssetType_Stock, 25, 25),
		})
		require.Len(t, profile.Findings.OfKind(domain.FindingKind_AllocationNormalized), 1)
		require.InDelta(t, 5.0, profile.ConcentrationRisk, 1e-9)
	})

	t.Run("scores stay within 1 and 10", func(t *testing.T) {
		a := newAsset("A", domain.AssetType_Stock, 100, 100)
		a.RiskRating = util.IntPointer(10)
		a.Sector = "tech"
		a.GeographicRegion = domain.GeographicRegion_EmergingMarkets
		a.AssetCategory = domain.AssetCategory_EmergingMarkets

		profile := scorer.Score([]domain.PortfolioAsset{a})
		for _, s := range []float64{
			profile.OverallRiskScore,
			profile.ConcentrationRisk,
			profile.VolatilityScore,
			profile.CreditRisk,
		} {
			require.GreaterOrEqual(t, s, 1.0)
			require.LessOrEqual(t, s, 10.0)
		}
	})

	t.Run("identical input gives identical output", func(t *testing.T) {
		a := newAsset("A", domain.AssetType_Stock, 70, 70)
		a.Sector = "energy"
		b := newAsset("B", domain.AssetType_Stock, 30, 30)
		b.Sector = "utilities"
		assets := []domain.PortfolioAsset{a, b}

		require.Equal(t, "", cmp.Diff(scorer.Score(assets), scorer.Score(assets)))
	})
}
