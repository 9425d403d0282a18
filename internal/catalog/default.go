package catalog

import (
	"fmt"

	"portfolioanalyzer/internal/domain"
)

const DefaultVersion = "2025.1"

var defaultScenarios = []domain.Scenario{
	{
		ID:          domain.ScenarioID_Recession,
		Name:        "Recession",
		Description: "Economic contraction with falling corporate earnings, rising unemployment and central bank rate cuts.",
	},
	{
		ID:          domain.ScenarioID_HighInflation,
		Name:        "High Inflation",
		Description: "Sustained inflation well above target, eroding real returns on fixed income and cash.",
	},
	{
		ID:          domain.ScenarioID_RisingRates,
		Name:        "Rising Interest Rates",
		Description: "Rapid tightening of monetary policy pushing yields higher across the curve.",
	},
	{
		ID:          domain.ScenarioID_MarketCrash,
		Name:        "Market Crash",
		Description: "Sudden broad equity sell-off with a liquidity squeeze and flight to quality.",
	},
}

func row(
	scenario domain.ScenarioID,
	category domain.AssetCategory,
	lo, hi float64,
	volatilityMultiplier float64,
	correlationAdjustment float64,
	drivers ...string,
) domain.ScenarioImpactFactor {
	return domain.ScenarioImpactFactor{
		Scenario:              scenario,
		Category:              category,
		ImpactRange:           domain.ImpactRange{Min: lo, Max: hi},
		PrimaryDrivers:        drivers,
		VolatilityMultiplier:  volatilityMultiplier,
		CorrelationAdjustment: correlationAdjustment,
	}
}

// impact ranges are percentages, drawn from historical drawdowns and
// rallies of each category in comparable periods
func defaultFactors() []domain.ScenarioImpactFactor {
	const (
		recession     = domain.ScenarioID_Recession
		highInflation = domain.ScenarioID_HighInflation
		risingRates   = domain.ScenarioID_RisingRates
		marketCrash   = domain.ScenarioID_MarketCrash

		usLargeCap      = domain.AssetCategory_UsLargeCap
		usSmallCap      = domain.AssetCategory_UsSmallCap
		intlDeveloped   = domain.AssetCategory_InternationalDeveloped
		emergingMarkets = domain.AssetCategory_EmergingMarkets
		govBonds        = domain.AssetCategory_GovernmentBonds
		corpBonds       = domain.AssetCategory_CorporateBonds
		highYield       = domain.AssetCategory_HighYieldBonds
		realEstate      = domain.AssetCategory_RealEstate
		commodities     = domain.AssetCategory_Commodities
		cash            = domain.AssetCategory_Cash
	)

	return []domain.ScenarioImpactFactor{
		row(recession, usLargeCap, -35, -15, 1.8, 0.20, "earnings contraction", "rising unemployment", "risk-off sentiment"),
		row(recession, usSmallCap, -45, -20, 2.1, 0.25, "credit tightening", "earnings contraction", "liquidity stress"),
		row(recession, intlDeveloped, -35, -15, 1.8, 0.20, "global trade slowdown", "earnings contraction", "currency volatility"),
		row(recession, emergingMarkets, -45, -20, 2.2, 0.25, "capital outflows", "commodity demand collapse", "dollar strength"),
		row(recession, govBonds, 5, 15, 1.2, -0.30, "flight to quality", "rate cuts", "deflationary pressure"),
		row(recession, corpBonds, -5, 5, 1.4, 0.10, "widening credit spreads", "rate cuts", "default risk"),
		row(recession, highYield, -20, -5, 1.9, 0.30, "default risk", "widening credit spreads", "liquidity stress"),
		row(recession, realEstate, -30, -10, 1.7, 0.20, "falling occupancy", "tightening credit", "declining rents"),
		row(recession, commodities, -25, -5, 1.6, 0.05, "falling industrial demand", "inventory build-up", "dollar strength"),
		row(recession, cash, 0, 2, 1.0, 0, "capital preservation", "rate cuts reduce yield"),

		row(highInflation, usLargeCap, -15, 5, 1.4, 0.10, "margin compression", "higher discount rates", "pricing power"),
		row(highInflation, usSmallCap, -20, 0, 1.6, 0.15, "input cost pressure", "margin compression", "financing costs"),
		row(highInflation, intlDeveloped, -15, 5, 1.4, 0.10, "margin compression", "currency effects", "energy costs"),
		row(highInflation, emergingMarkets, -10, 15, 1.6, 0.05, "commodity exports", "currency effects", "capital flows"),
		row(highInflation, govBonds, -15, -5, 1.5, 0.25, "real yield erosion", "rising rates", "inflation expectations"),
		row(highInflation, corpBonds, -15, -3, 1.5, 0.20, "real yield erosion", "rising rates", "spread widening"),
		row(highInflation, highYield, -12, 0, 1.5, 0.15, "rising rates", "refinancing risk", "nominal revenue growth"),
		row(highInflation, realEstate, -5, 15, 1.3, -0.05, "rising replacement cost", "rent escalation", "financing costs"),
		row(highInflation, commodities, 10, 35, 1.7, -0.20, "supply constraints", "inflation hedge demand", "currency debasement"),
		row(highInflation, cash, -8, -2, 1.0, 0, "purchasing power erosion", "lagging deposit rates"),

		row(risingRates, usLargeCap, -15, 0, 1.3, 0.10, "higher discount rates", "valuation compression", "financing costs"),
		row(risingRates, usSmallCap, -20, -3, 1.5, 0.15, "floating rate debt", "financing costs", "valuation compression"),
		row(risingRates, intlDeveloped, -15, 0, 1.3, 0.10, "capital flows to the us", "valuation compression", "currency effects"),
		row(risingRates, emergingMarkets, -25, -5, 1.7, 0.15, "dollar strength", "capital outflows", "debt servicing costs"),
		row(risingRates, govBonds, -12, -3, 1.4, 0.20, "duration risk", "rising yields", "inflation expectations"),
		row(risingRates, corpBonds, -12, -3, 1.4, 0.15, "duration risk", "rising yields", "spread widening"),
		row(risingRates, highYield, -10, 0, 1.5, 0.15, "refinancing risk", "rising yields", "default risk"),
		row(risingRates, realEstate, -25, -5, 1.6, 0.15, "cap rate expansion", "mortgage costs", "financing costs"),
		row(risingRates, commodities, -10, 5, 1.3, 0, "dollar strength", "slowing demand", "carry costs"),
		row(risingRates, cash, 1, 4, 1.0, 0, "higher deposit yields", "capital preservation"),

		row(marketCrash, usLargeCap, -45, -25, 2.5, 0.35, "forced deleveraging", "panic selling", "liquidity stress"),
		row(marketCrash, usSmallCap, -55, -30, 2.8, 0.40, "liquidity stress", "forced deleveraging", "panic selling"),
		row(marketCrash, intlDeveloped, -45, -25, 2.5, 0.35, "contagion", "forced deleveraging", "currency volatility"),
		row(marketCrash, emergingMarkets, -55, -30, 2.9, 0.40, "capital flight", "contagion", "currency collapse"),
		row(marketCrash, govBonds, 2, 12, 1.3, -0.35, "flight to quality", "emergency rate cuts"),
		row(marketCrash, corpBonds, -10, 2, 1.6, 0.15, "spread widening", "liquidity stress", "flight to quality"),
		row(marketCrash, highYield, -30, -10, 2.2, 0.35, "default risk", "spread widening", "liquidity stress"),
		row(marketCrash, realEstate, -40, -20, 2.3, 0.30, "forced selling", "liquidity stress", "credit freeze"),
		row(marketCrash, commodities, -30, -5, 2.0, 0.15, "demand collapse", "forced deleveraging", "dollar strength"),
		row(marketCrash, cash, 0, 1, 1.0, 0, "capital preservation", "liquidity value"),
	}
}

// positive values mean the sector holds up better than its category
// average in the scenario
func defaultSectorAdjustments() []SectorAdjustment {
	adj := func(scenario domain.ScenarioID, sector string, v float64) SectorAdjustment {
		return SectorAdjustment{Scenario: scenario, Sector: sector, Adjustment: v}
	}
	return []SectorAdjustment{
		adj(domain.ScenarioID_Recession, "consumer_staples", 5),
		adj(domain.ScenarioID_Recession, "healthcare", 4),
		adj(domain.ScenarioID_Recession, "utilities", 4),
		adj(domain.ScenarioID_Recession, "communication_services", 1),
		adj(domain.ScenarioID_Recession, "technology", -2),
		adj(domain.ScenarioID_Recession, "industrials", -3),
		adj(domain.ScenarioID_Recession, "materials", -3),
		adj(domain.ScenarioID_Recession, "energy", -3),
		adj(domain.ScenarioID_Recession, "financials", -4),
		adj(domain.ScenarioID_Recession, "consumer_discretionary", -5),

		adj(domain.ScenarioID_HighInflation, "energy", 5),
		adj(domain.ScenarioID_HighInflation, "materials", 4),
		adj(domain.ScenarioID_HighInflation, "real_estate", 2),
		adj(domain.ScenarioID_HighInflation, "consumer_staples", 1),
		adj(domain.ScenarioID_HighInflation, "utilities", -2),
		adj(domain.ScenarioID_HighInflation, "communication_services", -2),
		adj(domain.ScenarioID_HighInflation, "technology", -4),
		adj(domain.ScenarioID_HighInflation, "consumer_discretionary", -4),

		adj(domain.ScenarioID_RisingRates, "financials", 4),
		adj(domain.ScenarioID_RisingRates, "energy", 2),
		adj(domain.ScenarioID_RisingRates, "consumer_staples", -1),
		adj(domain.ScenarioID_RisingRates, "technology", -4),
		adj(domain.ScenarioID_RisingRates, "utilities", -5),
		adj(domain.ScenarioID_RisingRates, "real_estate", -5),

		adj(domain.ScenarioID_MarketCrash, "consumer_staples", 5),
		adj(domain.ScenarioID_MarketCrash, "utilities", 4),
		adj(domain.ScenarioID_MarketCrash, "healthcare", 3),
		adj(domain.ScenarioID_MarketCrash, "energy", -3),
		adj(domain.ScenarioID_MarketCrash, "technology", -4),
		adj(domain.ScenarioID_MarketCrash, "consumer_discretionary", -4),
		adj(domain.ScenarioID_MarketCrash, "financials", -5),
	}
}

func defaultNormRatings() map[domain.AssetCategory]int {
	return map[domain.AssetCategory]int{
		domain.AssetCategory_Cash:                   1,
		domain.AssetCategory_GovernmentBonds:        2,
		domain.AssetCategory_CorporateBonds:         3,
		domain.AssetCategory_HighYieldBonds:         6,
		domain.AssetCategory_UsLargeCap:             5,
		domain.AssetCategory_UsSmallCap:             7,
		domain.AssetCategory_InternationalDeveloped: 6,
		domain.AssetCategory_EmergingMarkets:        8,
		domain.AssetCategory_RealEstate:             6,
		domain.AssetCategory_Commodities:            7,
	}
}

// Default builds the catalog shipped with the binary. It panics if the
// built-in tables are inconsistent, which a unit test guards against.
func Default() *Catalog {
	c, err := New(
		DefaultVersion,
		defaultScenarios,
		defaultFactors(),
		defaultSectorAdjustments(),
		defaultNormRatings(),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build default catalog: %w", err))
	}
	return c
}
