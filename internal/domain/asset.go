package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type AssetType string

const (
	AssetType_Stock      AssetType = "stock"
	AssetType_Etf        AssetType = "etf"
	AssetType_MutualFund AssetType = "mutual_fund"
	AssetType_Bond       AssetType = "bond"
	AssetType_Reit       AssetType = "reit"
	AssetType_Commodity  AssetType = "commodity"
	AssetType_Cash       AssetType = "cash"
)

var AllAssetTypes = []AssetType{
	AssetType_Stock,
	AssetType_Etf,
	AssetType_MutualFund,
	AssetType_Bond,
	AssetType_Reit,
	AssetType_Commodity,
	AssetType_Cash,
}

func (a AssetType) IsValid() bool {
	for _, t := range AllAssetTypes {
		if t == a {
			return true
		}
	}
	return false
}

// AssetCategory is the finer-grained classification that the scenario
// catalog is keyed on. Values outside of AllAssetCategories are legal
// data, they just resolve through the catalog fallback.
type AssetCategory string

const (
	AssetCategory_UsLargeCap             AssetCategory = "us_large_cap"
	AssetCategory_UsSmallCap             AssetCategory = "us_small_cap"
	AssetCategory_InternationalDeveloped AssetCategory = "international_developed"
	AssetCategory_EmergingMarkets        AssetCategory = "emerging_markets"
	AssetCategory_GovernmentBonds        AssetCategory = "government_bonds"
	AssetCategory_CorporateBonds         AssetCategory = "corporate_bonds"
	AssetCategory_HighYieldBonds         AssetCategory = "high_yield_bonds"
	AssetCategory_RealEstate             AssetCategory = "real_estate"
	AssetCategory_Commodities            AssetCategory = "commodities"
	AssetCategory_Cash                   AssetCategory = "cash"
)

var AllAssetCategories = []AssetCategory{
	AssetCategory_UsLargeCap,
	AssetCategory_UsSmallCap,
	AssetCategory_InternationalDeveloped,
	AssetCategory_EmergingMarkets,
	AssetCategory_GovernmentBonds,
	AssetCategory_CorporateBonds,
	AssetCategory_HighYieldBonds,
	AssetCategory_RealEstate,
	AssetCategory_Commodities,
	AssetCategory_Cash,
}

type GeographicRegion string

const (
	GeographicRegion_Us                     GeographicRegion = "us"
	GeographicRegion_DevelopedInternational GeographicRegion = "developed_international"
	GeographicRegion_EmergingMarkets        GeographicRegion = "emerging_markets"
	GeographicRegion_Global                 GeographicRegion = "global"
)

var AllGeographicRegions = []GeographicRegion{
	GeographicRegion_Us,
	GeographicRegion_DevelopedInternational,
	GeographicRegion_EmergingMarkets,
	GeographicRegion_Global,
}

func (g GeographicRegion) IsValid() bool {
	for _, r := range AllGeographicRegions {
		if r == g {
			return true
		}
	}
	return false
}

// DefaultCategory is the broad category an asset type maps to when
// no (usable) category was supplied
func DefaultCategory(assetType AssetType, region GeographicRegion) AssetCategory {
	switch assetType {
	case AssetType_Bond:
		return AssetCategory_GovernmentBonds
	case AssetType_Reit:
		return AssetCategory_RealEstate
	case AssetType_Commodity:
		return AssetCategory_Commodities
	case AssetType_Cash:
		return AssetCategory_Cash
	}

	// equity-like
	switch region {
	case GeographicRegion_DevelopedInternational:
		return AssetCategory_InternationalDeveloped
	case GeographicRegion_EmergingMarkets:
		return AssetCategory_EmergingMarkets
	}
	return AssetCategory_UsLargeCap
}

const NeutralRiskRating = 5

type PortfolioAsset struct {
	Symbol               string           `json:"symbol" validate:"required"`
	Name                 string           `json:"name" validate:"required"`
	AssetType            AssetType        `json:"assetType" validate:"required"`
	AssetCategory        AssetCategory    `json:"assetCategory,omitempty"`
	Sector               string           `json:"sector,omitempty"`
	GeographicRegion     GeographicRegion `json:"geographicRegion,omitempty"`
	AllocationPercentage float64          `json:"allocationPercentage"`
	DollarAmount         decimal.Decimal  `json:"dollarAmount"`
	Shares               *decimal.Decimal `json:"shares,omitempty"`
	AvgPurchasePrice     *decimal.Decimal `json:"avgPurchasePrice,omitempty"`
	RiskRating           *int             `json:"riskRating,omitempty"`
}

// EffectiveRiskRating falls back to the neutral midpoint
func (a PortfolioAsset) EffectiveRiskRating() int {
	if a.RiskRating == nil {
		return NeutralRiskRating
	}
	return *a.RiskRating
}

// Category returns the supplied category, or the asset type's default
// when none was given
func (a PortfolioAsset) Category() AssetCategory {
	if a.AssetCategory != "" {
		return a.AssetCategory
	}
	return DefaultCategory(a.AssetType, a.GeographicRegion)
}

// NormalizedSector lowercases and snake-cases the sector so that
// "Consumer Staples" and "consumer_staples" group together
func (a PortfolioAsset) NormalizedSector() string {
	return NormalizeSector(a.Sector)
}

func NormalizeSector(sector string) string {
	s := strings.ToLower(strings.TrimSpace(sector))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.Join(strings.Fields(s), "_")
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
