package l1_service

import (
	"fmt"
	"math"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/util"
	"sort"

	"github.com/montanaflynn/stats"
)

const (
	minScore = 1.0
	maxScore = 10.0

	singleAssetWarningThreshold = 25.0
	sectorWarningThreshold      = 40.0
)

// creditWeights is the 1-10 credit risk proxy per category
var creditWeights = map[domain.AssetCategory]float64{
	domain.AssetCategory_Cash:                   1,
	domain.AssetCategory_GovernmentBonds:        2,
	domain.AssetCategory_CorporateBonds:         4,
	domain.AssetCategory_HighYieldBonds:         7,
	domain.AssetCategory_UsLargeCap:             6,
	domain.AssetCategory_UsSmallCap:             7,
	domain.AssetCategory_InternationalDeveloped: 6,
	domain.AssetCategory_EmergingMarkets:        8,
	domain.AssetCategory_RealEstate:             6,
	domain.AssetCategory_Commodities:            5,
}

// RiskScorer derives a RiskProfile from a holding set. Score is pure and
// tolerant of slightly inconsistent input, which it reports as findings.
type RiskScorer interface {
	Score(assets []domain.PortfolioAsset) domain.RiskProfile
}

type riskScorerHandler struct{}

func NewRiskScorer() RiskScorer {
	return riskScorerHandler{}
}

func (h riskScorerHandler) Score(assets []domain.PortfolioAsset) domain.RiskProfile {
	findings := domain.Findings{}

	weights, normalized := allocationWeights(assets)
	if normalized {
		sum := domain.SumAllocations(assets)
		findings = append(findings, domain.Finding{
			Kind:         domain.FindingKind_AllocationNormalized,
			Severity:     domain.FindingSeverity_Warning,
			Message:      fmt.Sprintf("allocations sum to %.2f%%, weights were rescaled to 100%% for scoring", sum),
			Field:        util.StringPointer("allocationPercentage"),
			ActualNumber: util.FloatPointer(sum),
		})
	}

	hhi := 0.0
	volatility := 0.0
	credit := 0.0
	sectorTotals := map[string]float64{}
	regionTotals := map[domain.GeographicRegion]float64{}
	for i, asset := range assets {
		w := weights[i]
		hhi += w * w
		volatility += w * float64(asset.EffectiveRiskRating())
		credit += w * creditWeight(asset)

		if sector := asset.NormalizedSector(); sector != "" {
			sectorTotals[sector] += w * 100
		}
		if asset.GeographicRegion != "" {
			regionTotals[asset.GeographicRegion] += w * 100
		}

		if w*100 > singleAssetWarningThreshold {
			findings = append(findings, domain.Finding{
				Kind:         domain.FindingKind_ConcentrationWarning,
				Severity:     domain.FindingSeverity_Warning,
				Message:      fmt.Sprintf("%s is %.2f%% of the portfolio, above the %.0f%% single-holding guideline", asset.Symbol, w*100, singleAssetWarningThreshold),
				Field:        util.StringPointer("allocationPercentage"),
				AssetIndex:   util.IntPointer(i),
				ActualNumber: util.FloatPointer(w * 100),
				SuggestedFix: util.StringPointer("consider diversifying this position"),
			})
		}
	}

	sectors := make([]string, 0, len(sectorTotals))
	sectorValues := make([]float64, 0, len(sectorTotals))
	for sector, total := range sectorTotals {
		sectors = append(sectors, sector)
		sectorValues = append(sectorValues, total)
	}
	sort.Strings(sectors)
	for _, sector := range sectors {
		if sectorTotals[sector] > sectorWarningThreshold {
			findings = append(findings, domain.Finding{
				Kind:         domain.FindingKind_ConcentrationWarning,
				Severity:     domain.FindingSeverity_Warning,
				Message:      fmt.Sprintf("sector %s is %.2f%% of the portfolio, above the %.0f%% sector guideline", sector, sectorTotals[sector], sectorWarningThreshold),
				Field:        util.StringPointer("sector"),
				ActualValue:  util.StringPointer(sector),
				ActualNumber: util.FloatPointer(sectorTotals[sector]),
			})
		}
	}

	regionValues := make([]float64, 0, len(regionTotals))
	for _, total := range regionTotals {
		regionValues = append(regionValues, total)
	}

	sectorConcentration := maxOrZero(sectorValues)
	geographicRisk := maxOrZero(regionValues)

	concentrationRisk := clampScore(hhi * 10)
	volatilityScore := clampScore(volatility)
	creditRisk := clampScore(credit)
	exposureScore := clampScore((sectorConcentration + geographicRisk) / 20)

	overall, err := stats.Mean([]float64{concentrationRisk, exposureScore, volatilityScore, creditRisk})
	if err != nil {
		overall = minScore
	}

	return domain.RiskProfile{
		OverallRiskScore:    clampScore(overall),
		ConcentrationRisk:   concentrationRisk,
		HerfindahlIndex:     hhi,
		SectorConcentration: sectorConcentration,
		GeographicRisk:      geographicRisk,
		VolatilityScore:     volatilityScore,
		CreditRisk:          creditRisk,
		Findings:            findings,
	}
}

// allocationWeights converts allocation percentages into fractions. When
// the percentages don't add up to 100 they are rescaled by their sum.
func allocationWeights(assets []domain.PortfolioAsset) ([]float64, bool) {
	sum := domain.SumAllocations(assets)
	divisor := 100.0
	normalized := false
	if math.Abs(sum-100) > domain.ConsistencyTolerance+1e-9 && sum > 0 {
		divisor = sum
		normalized = true
	}

	weights := make([]float64, len(assets))
	for i, asset := range assets {
		weights[i] = asset.AllocationPercentage / divisor
	}
	return weights, normalized
}

func creditWeight(asset domain.PortfolioAsset) float64 {
	if w, ok := creditWeights[asset.Category()]; ok {
		return w
	}
	return creditWeights[domain.DefaultCategory(asset.AssetType, asset.GeographicRegion)]
}

func maxOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return m
}

func clampScore(v float64) float64 {
	return math.Max(minScore, math.Min(maxScore, v))
}
