package l2_service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"portfolioanalyzer/internal/catalog"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/logger"
	"portfolioanalyzer/internal/metrics"
	l1_service "portfolioanalyzer/internal/service/l1"
	"portfolioanalyzer/internal/util"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownScenario = errors.New("unknown scenario")

const (
	maxQualityAdjustment      = 5.0
	qualityAdjustmentPerPoint = 1.0

	neutralFallbackConfidence = 40.0
	assetTypeFallbackPenalty  = 15.0
	clippedPenalty            = 10.0
	missingSectorPenalty      = 5.0
	missingRegionPenalty      = 5.0
	riskScorePenaltyThreshold = 7.0
	riskScorePenaltyPerPoint  = 2.0

	correlationShiftHoldings = 5

	minRiskRating = 1
	maxRiskRating = 10
)

type AnalyzeInput struct {
	// opaque, only echoed back on the result
	PortfolioID string
	Assets      []domain.PortfolioAsset
	// scored from Assets when nil
	RiskProfile *domain.RiskProfile
	ScenarioID  domain.ScenarioID
}

type AnalyzeAllInput struct {
	PortfolioID string
	Assets      []domain.PortfolioAsset
	RiskProfile *domain.RiskProfile
}

// ScenarioImpactService projects the impact of an economic scenario on a
// holding set using the scenario catalog. The only error it returns is
// ErrUnknownScenario; everything else degrades into lower confidence.
type ScenarioImpactService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.ScenarioAnalysisResult, error)
	AnalyzeAll(ctx context.Context, input AnalyzeAllInput) ([]domain.ScenarioAnalysisResult, error)
	Scenarios() []domain.Scenario
}

type scenarioImpactServiceHandler struct {
	CatalogStore *catalog.Store
	RiskScorer   l1_service.RiskScorer
}

func NewScenarioImpactService(catalogStore *catalog.Store, riskScorer l1_service.RiskScorer) ScenarioImpactService {
	return scenarioImpactServiceHandler{
		CatalogStore: catalogStore,
		RiskScorer:   riskScorer,
	}
}

func (h scenarioImpactServiceHandler) Scenarios() []domain.Scenario {
	return h.CatalogStore.Current().Scenarios()
}

func (h scenarioImpactServiceHandler) Analyze(ctx context.Context, input AnalyzeInput) (*domain.ScenarioAnalysisResult, error) {
	// one catalog snapshot per call, even if a reload happens midway
	cat := h.CatalogStore.Current()
	return h.analyze(ctx, cat, input)
}

// AnalyzeAll runs every catalog scenario in parallel. Results follow the
// catalog's scenario order.
func (h scenarioImpactServiceHandler) AnalyzeAll(ctx context.Context, input AnalyzeAllInput) ([]domain.ScenarioAnalysisResult, error) {
	cat := h.CatalogStore.Current()
	scenarios := cat.Scenarios()

	riskProfile := input.RiskProfile
	if riskProfile == nil {
		p := h.RiskScorer.Score(input.Assets)
		riskProfile = &p
	}

	results := make([]domain.ScenarioAnalysisResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, scenario := range scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			result, err := h.analyze(gctx, cat, AnalyzeInput{
				PortfolioID: input.PortfolioID,
				Assets:      input.Assets,
				RiskProfile: riskProfile,
				ScenarioID:  scenario.ID,
			})
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to analyze all scenarios: %w", err)
	}

	return results, nil
}

func (h scenarioImpactServiceHandler) analyze(ctx context.Context, cat *catalog.Catalog, input AnalyzeInput) (*domain.ScenarioAnalysisResult, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	scenario, ok := cat.Scenario(input.ScenarioID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, input.ScenarioID)
	}

	riskProfile := input.RiskProfile
	if riskProfile == nil {
		p := h.RiskScorer.Score(input.Assets)
		riskProfile = &p
	}

	findings := domain.Findings{}
	impacts := make([]domain.AssetImpactResult, 0, len(input.Assets))
	factors := make([]domain.ScenarioImpactFactor, 0, len(input.Assets))
	for i, asset := range input.Assets {
		impact, factor := assetImpact(cat, scenario.ID, asset, riskProfile.OverallRiskScore)
		impacts = append(impacts, impact)
		factors = append(factors, factor)

		if impact.Breakdown.Fallback != domain.CatalogFallback_None {
			findings = append(findings, missingCategoryFinding(i, asset, impact))
			metrics.CatalogFallbacksTotal.WithLabelValues(string(scenario.ID), string(impact.Breakdown.Fallback)).Inc()
			log.Infow(
				"catalog fallback",
				"scenario", scenario.ID,
				"symbol", asset.Symbol,
				"category", asset.Category(),
				"fallback", impact.Breakdown.Fallback,
				"resolvedCategory", impact.Category,
			)
		}
	}

	totalDollar, totalPercentage, confidence := aggregate(input.Assets, impacts)

	result := &domain.ScenarioAnalysisResult{
		PortfolioID:           input.PortfolioID,
		ScenarioID:            scenario.ID,
		ScenarioName:          scenario.Name,
		CatalogVersion:        cat.Version(),
		TotalImpactPercentage: totalPercentage,
		TotalImpactDollar:     totalDollar,
		ConfidenceScore:       confidence,
		AssetImpacts:          impacts,
		PortfolioRiskChanges:  h.riskChanges(input.Assets, impacts, factors),
		Findings:              findings,
	}

	elapsed := time.Since(start)
	metrics.ScenarioAnalysesTotal.WithLabelValues(string(scenario.ID)).Inc()
	metrics.ScenarioAnalysisDuration.Observe(elapsed.Seconds())
	log.Debugw(
		"scenario analysis complete",
		"portfolioID", input.PortfolioID,
		"scenario", scenario.ID,
		"assets", len(input.Assets),
		"elapsed", elapsed,
	)

	return result, nil
}

func assetImpact(
	cat *catalog.Catalog,
	scenarioID domain.ScenarioID,
	asset domain.PortfolioAsset,
	overallRiskScore float64,
) (domain.AssetImpactResult, domain.ScenarioImpactFactor) {
	factor, fallback := cat.Lookup(scenarioID, asset)

	midpoint := factor.Midpoint()
	sectorAdjustment := cat.SectorAdjustment(scenarioID, asset.Sector)
	qualityAdj := qualityAdjustment(cat, factor.Category, asset, midpoint)
	raw := midpoint + sectorAdjustment + qualityAdj

	impact, clipped := factor.ImpactRange.Clip(raw)
	impactDollar := asset.DollarAmount.
		Mul(decimal.NewFromFloat(impact)).
		Div(decimal.NewFromInt(100)).
		Round(2)

	return domain.AssetImpactResult{
		Symbol:           asset.Symbol,
		Category:         factor.Category,
		ImpactPercentage: impact,
		ImpactDollar:     impactDollar,
		ConfidenceLevel:  confidenceLevel(factor.ImpactRange, fallback, clipped, asset, overallRiskScore),
		PrimaryDrivers:   factor.PrimaryDrivers,
		Breakdown: domain.ImpactBreakdown{
			CatalogMidpoint:   midpoint,
			SectorAdjustment:  sectorAdjustment,
			QualityAdjustment: qualityAdj,
			RawImpact:         raw,
			ImpactRange:       factor.ImpactRange,
			Clipped:           clipped,
			Fallback:          fallback,
		},
	}, factor
}

// qualityAdjustment pushes riskier-than-typical holdings further in the
// direction the category moves. No rating means no adjustment.
func qualityAdjustment(cat *catalog.Catalog, category domain.AssetCategory, asset domain.PortfolioAsset, midpoint float64) float64 {
	if asset.RiskRating == nil || midpoint == 0 {
		return 0
	}
	norm, ok := cat.NormRiskRating(category)
	if !ok {
		norm = domain.NeutralRiskRating
	}

	direction := 1.0
	if midpoint < 0 {
		direction = -1.0
	}
	adj := float64(*asset.RiskRating-norm) * qualityAdjustmentPerPoint * direction
	return math.Max(-maxQualityAdjustment, math.Min(maxQualityAdjustment, adj))
}

func confidenceBase(r domain.ImpactRange) float64 {
	width := r.Width()
	switch {
	case width <= 10:
		return 90
	case width <= 20:
		return 80
	case width <= 30:
		return 70
	}
	return 60
}

func confidenceLevel(
	r domain.ImpactRange,
	fallback domain.CatalogFallback,
	clipped bool,
	asset domain.PortfolioAsset,
	overallRiskScore float64,
) float64 {
	confidence := confidenceBase(r)
	switch fallback {
	case domain.CatalogFallback_AssetTypeDefault:
		confidence -= assetTypeFallbackPenalty
	case domain.CatalogFallback_Neutral:
		confidence = neutralFallbackConfidence
	}

	if clipped {
		confidence -= clippedPenalty
	}
	if asset.NormalizedSector() == "" {
		confidence -= missingSectorPenalty
	}
	if asset.GeographicRegion == "" {
		confidence -= missingRegionPenalty
	}
	confidence -= riskScorePenaltyPerPoint * math.Max(0, overallRiskScore-riskScorePenaltyThreshold)

	return math.Max(0, math.Min(100, confidence))
}

// aggregate weights everything by dollar size. The dollar total is an
// exact decimal sum of the already rounded per-asset amounts.
func aggregate(assets []domain.PortfolioAsset, impacts []domain.AssetImpactResult) (decimal.Decimal, float64, float64) {
	totalDollar := decimal.Zero
	for _, impact := range impacts {
		totalDollar = totalDollar.Add(impact.ImpactDollar)
	}

	held := domain.SumDollarAmounts(assets)
	if held.IsZero() {
		confidences := []float64{}
		for _, impact := range impacts {
			confidences = append(confidences, impact.ConfidenceLevel)
		}
		mean, err := stats.Mean(confidences)
		if err != nil {
			mean = 0
		}
		return totalDollar, 0, mean
	}

	totalPercentage := totalDollar.Div(held).Mul(decimal.NewFromInt(100)).InexactFloat64()

	weightedConfidence := decimal.Zero
	for i, impact := range impacts {
		weightedConfidence = weightedConfidence.Add(
			assets[i].DollarAmount.Mul(decimal.NewFromFloat(impact.ConfidenceLevel)),
		)
	}
	confidence := weightedConfidence.Div(held).InexactFloat64()

	return totalDollar, totalPercentage, confidence
}

// riskChanges rescores the holdings as they would look after the
// scenario: dollar amounts moved by their impact, allocations re-derived
// from those, and risk ratings scaled by the category's volatility
// multiplier.
func (h scenarioImpactServiceHandler) riskChanges(
	assets []domain.PortfolioAsset,
	impacts []domain.AssetImpactResult,
	factors []domain.ScenarioImpactFactor,
) domain.PortfolioRiskChanges {
	pre := h.RiskScorer.Score(assets)

	post := make([]domain.PortfolioAsset, len(assets))
	postTotal := decimal.Zero
	for i, asset := range assets {
		moved := asset.DollarAmount.Mul(
			decimal.NewFromInt(1).Add(decimal.NewFromFloat(impacts[i].ImpactPercentage).Div(decimal.NewFromInt(100))),
		)
		asset.DollarAmount = moved
		asset.RiskRating = util.IntPointer(scaledRiskRating(asset.EffectiveRiskRating(), factors[i].VolatilityMultiplier))
		post[i] = asset
		postTotal = postTotal.Add(moved)
	}
	if postTotal.IsPositive() {
		for i := range post {
			post[i].AllocationPercentage = post[i].DollarAmount.Div(postTotal).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
	}

	after := h.RiskScorer.Score(post)

	return domain.PortfolioRiskChanges{
		OverallRiskDelta:   after.OverallRiskScore - pre.OverallRiskScore,
		ConcentrationDelta: after.ConcentrationRisk - pre.ConcentrationRisk,
		VolatilityDelta:    after.VolatilityScore - pre.VolatilityScore,
		CorrelationShifts:  correlationShifts(assets, factors),
	}
}

func scaledRiskRating(rating int, volatilityMultiplier float64) int {
	scaled := int(math.Round(float64(rating) * volatilityMultiplier))
	if scaled < minRiskRating {
		return minRiskRating
	}
	if scaled > maxRiskRating {
		return maxRiskRating
	}
	return scaled
}

// correlationShifts covers every pair among the largest holdings by
// dollar amount. Ties keep input order.
func correlationShifts(assets []domain.PortfolioAsset, factors []domain.ScenarioImpactFactor) []domain.CorrelationShift {
	order := make([]int, len(assets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return assets[order[i]].DollarAmount.GreaterThan(assets[order[j]].DollarAmount)
	})
	if len(order) > correlationShiftHoldings {
		order = order[:correlationShiftHoldings]
	}

	shifts := []domain.CorrelationShift{}
	for x := 0; x < len(order); x++ {
		for y := x + 1; y < len(order); y++ {
			a, b := order[x], order[y]
			shifts = append(shifts, domain.CorrelationShift{
				SymbolA:          assets[a].Symbol,
				SymbolB:          assets[b].Symbol,
				CorrelationDelta: (factors[a].CorrelationAdjustment + factors[b].CorrelationAdjustment) / 2,
			})
		}
	}
	return shifts
}

func missingCategoryFinding(index int, asset domain.PortfolioAsset, impact domain.AssetImpactResult) domain.Finding {
	var message string
	switch impact.Breakdown.Fallback {
	case domain.CatalogFallback_AssetTypeDefault:
		message = fmt.Sprintf("no catalog entry for category %q of %s, used %s instead", asset.Category(), asset.Symbol, impact.Category)
	default:
		message = fmt.Sprintf("no catalog entry for category %q of %s, assumed zero impact", asset.Category(), asset.Symbol)
	}
	return domain.Finding{
		Kind:         domain.FindingKind_MissingCategoryMapping,
		Severity:     domain.FindingSeverity_Info,
		Message:      message,
		Field:        util.StringPointer("assetCategory"),
		AssetIndex:   util.IntPointer(index),
		ActualValue:  util.StringPointer(string(asset.Category())),
		SuggestedFix: util.StringPointer("set assetCategory to one of the catalog categories"),
	}
}
