package domain

import (
	"github.com/shopspring/decimal"
)

type ScenarioID string

const (
	ScenarioID_Recession     ScenarioID = "recession"
	ScenarioID_HighInflation ScenarioID = "high_inflation"
	ScenarioID_RisingRates   ScenarioID = "rising_rates"
	ScenarioID_MarketCrash   ScenarioID = "market_crash"
)

type Scenario struct {
	ID          ScenarioID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

type ImpactRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r ImpactRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

func (r ImpactRange) Width() float64 {
	return r.Max - r.Min
}

func (r ImpactRange) Clip(v float64) (clipped float64, wasClipped bool) {
	if v < r.Min {
		return r.Min, true
	}
	if v > r.Max {
		return r.Max, true
	}
	return v, false
}

type ScenarioImpactFactor struct {
	Scenario              ScenarioID    `json:"scenario"`
	Category              AssetCategory `json:"category"`
	ImpactRange           ImpactRange   `json:"impactRange"`
	PrimaryDrivers        []string      `json:"primaryDrivers"`
	VolatilityMultiplier  float64       `json:"volatilityMultiplier"`
	CorrelationAdjustment float64       `json:"correlationAdjustment"`
}

func (f ScenarioImpactFactor) Midpoint() float64 {
	return f.ImpactRange.Midpoint()
}

// CatalogFallback describes how an asset's catalog row was found
type CatalogFallback string

const (
	CatalogFallback_None             CatalogFallback = ""
	CatalogFallback_AssetTypeDefault CatalogFallback = "asset_type_default"
	CatalogFallback_Neutral          CatalogFallback = "neutral"
)

type ImpactBreakdown struct {
	CatalogMidpoint   float64         `json:"catalogMidpoint"`
	SectorAdjustment  float64         `json:"sectorAdjustment"`
	QualityAdjustment float64         `json:"qualityAdjustment"`
	RawImpact         float64         `json:"rawImpact"`
	ImpactRange       ImpactRange     `json:"impactRange"`
	Clipped           bool            `json:"clipped"`
	Fallback          CatalogFallback `json:"fallback,omitempty"`
}

type AssetImpactResult struct {
	Symbol           string          `json:"symbol"`
	Category         AssetCategory   `json:"category"`
	ImpactPercentage float64         `json:"impactPercentage"`
	ImpactDollar     decimal.Decimal `json:"impactDollar"`
	ConfidenceLevel  float64         `json:"confidenceLevel"`
	PrimaryDrivers   []string        `json:"primaryDrivers"`
	Breakdown        ImpactBreakdown `json:"breakdown"`
}

type CorrelationShift struct {
	SymbolA          string  `json:"symbolA"`
	SymbolB          string  `json:"symbolB"`
	CorrelationDelta float64 `json:"correlationDelta"`
}

type PortfolioRiskChanges struct {
	OverallRiskDelta   float64            `json:"overallRiskDelta"`
	ConcentrationDelta float64            `json:"concentrationDelta"`
	VolatilityDelta    float64            `json:"volatilityDelta"`
	CorrelationShifts  []CorrelationShift `json:"correlationShifts"`
}

type ScenarioAnalysisResult struct {
	PortfolioID           string               `json:"portfolioID"`
	ScenarioID            ScenarioID           `json:"scenarioID"`
	ScenarioName          string               `json:"scenarioName"`
	CatalogVersion        string               `json:"catalogVersion"`
	TotalImpactPercentage float64              `json:"totalImpactPercentage"`
	TotalImpactDollar     decimal.Decimal      `json:"totalImpactDollar"`
	ConfidenceScore       float64              `json:"confidenceScore"`
	AssetImpacts          []AssetImpactResult  `json:"assetImpacts"`
	PortfolioRiskChanges  PortfolioRiskChanges `json:"portfolioRiskChanges"`
	Findings              Findings             `json:"findings"`
}
