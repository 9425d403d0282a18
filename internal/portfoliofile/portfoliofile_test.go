package portfoliofile

import (
	"os"
	"path/filepath"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/util"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const vtiBndCsv = `symbol,name,asset_type,asset_category,sector,geographic_region,allocation_percentage,dollar_amount,shares,avg_purchase_price,risk_rating
VTI,Vanguard Total Stock Market,ETF,us_large_cap,,us,60%,"$60,000.00",250,,6
BND,Vanguard Total Bond Market,etf,government_bonds,,us,40,40000,,,2
`

func TestParseAssetsCSV(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		p, err := ParseAssetsCSV(strings.NewReader(vtiBndCsv))
		require.NoError(t, err)

		shares := decimal.NewFromInt(250)
		require.Equal(t, "", cmp.Diff([]domain.PortfolioAsset{
			{
				Symbol:               "VTI",
				Name:                 "Vanguard Total Stock Market",
				AssetType:            domain.AssetType_Etf,
				AssetCategory:        domain.AssetCategory_UsLargeCap,
				GeographicRegion:     domain.GeographicRegion_Us,
				AllocationPercentage: 60,
				DollarAmount:         decimal.NewFromInt(60000),
				Shares:               &shares,
				RiskRating:           util.IntPointer(6),
			},
			{
				Symbol:               "BND",
				Name:                 "Vanguard Total Bond Market",
				AssetType:            domain.AssetType_Etf,
				AssetCategory:        domain.AssetCategory_GovernmentBonds,
				GeographicRegion:     domain.GeographicRegion_Us,
				AllocationPercentage: 40,
				DollarAmount:         decimal.NewFromInt(40000),
				RiskRating:           util.IntPointer(2),
			},
		}, p.Assets))
		require.Equal(t, DefaultCurrency, p.Currency)
		require.True(t, decimal.NewFromInt(100000).Equal(p.TotalValue))
		require.Empty(t, p.Findings)
	})

	t.Run("bad cells become findings on their row", func(t *testing.T) {
		p, err := ParseAssetsCSV(strings.NewReader(
			"symbol,name,asset_type,allocation_percentage,dollar_amount,risk_rating\n" +
				"AAPL,Apple,stock,fifty,100,7\n" +
				"MSFT,Microsoft,stock,50,lots,high\n",
		))
		require.NoError(t, err)
		require.Len(t, p.Assets, 2)

		fields := []string{}
		for _, f := range p.Findings {
			require.Equal(t, domain.FindingKind_OutOfRangeField, f.Kind)
			fields = append(fields, *f.Field)
		}
		require.Equal(t, "", cmp.Diff([]string{"allocationPercentage", "dollarAmount", "riskRating"}, fields))
		require.Equal(t, 0, *p.Findings[0].AssetIndex)
		require.Equal(t, 1, *p.Findings[2].AssetIndex)
	})
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(dir, "retirement.csv")
		require.NoError(t, os.WriteFile(path, []byte(vtiBndCsv), 0o600))

		p, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "retirement", p.Name)
		require.Len(t, p.Assets, 2)
	})

	t.Run("json defaults", func(t *testing.T) {
		path := filepath.Join(dir, "p.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"name": "core",
			"assets": [
				{"symbol": "VTI", "name": "Total Market", "assetType": "etf", "allocationPercentage": 100, "dollarAmount": "1234.5"}
			]
		}`), 0o600))

		p, err := ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "core", p.Name)
		require.Equal(t, DefaultCurrency, p.Currency)
		require.True(t, decimal.RequireFromString("1234.5").Equal(p.TotalValue))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "nope.csv"))
		require.ErrorContains(t, err, "failed to read portfolio file")
	})
}

func TestPortfolio_MergeFindings(t *testing.T) {
	p, err := ParseAssetsCSV(strings.NewReader(
		"symbol,name,asset_type,allocation_percentage,dollar_amount\n" +
			"AAPL,Apple,stock,fifty,100\n" +
			"MSFT,Microsoft,stock,50,100\n",
	))
	require.NoError(t, err)
	require.Len(t, p.Findings, 1)

	validated := domain.Findings{
		{
			Kind:       domain.FindingKind_OutOfRangeField,
			Severity:   domain.FindingSeverity_Error,
			Field:      util.StringPointer("allocationPercentage"),
			AssetIndex: util.IntPointer(0),
		},
		{
			Kind:       domain.FindingKind_InvalidSymbolFormat,
			Severity:   domain.FindingSeverity_Error,
			Field:      util.StringPointer("symbol"),
			AssetIndex: util.IntPointer(1),
		},
		{
			Kind:     domain.FindingKind_InvalidAllocationSum,
			Severity: domain.FindingSeverity_Error,
			Field:    util.StringPointer("allocationPercentage"),
		},
	}

	merged := p.MergeFindings(validated)
	kinds := []domain.FindingKind{}
	for _, f := range merged {
		kinds = append(kinds, f.Kind)
	}
	require.Equal(t, []domain.FindingKind{
		domain.FindingKind_OutOfRangeField,
		domain.FindingKind_InvalidSymbolFormat,
		domain.FindingKind_InvalidAllocationSum,
	}, kinds)
	require.Equal(t, "fifty", *merged[0].ActualValue)
	// the parse findings themselves are untouched
	require.Len(t, p.Findings, 1)
}
