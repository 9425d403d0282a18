// Package portfoliofile reads candidate portfolios from csv or json, for
// the import endpoint and the cli.
package portfoliofile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/util"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

// assetRow keeps every column as text so that one bad cell becomes a
// finding on that row instead of failing the whole file
type assetRow struct {
	Symbol               string `csv:"symbol"`
	Name                 string `csv:"name"`
	AssetType            string `csv:"asset_type"`
	AssetCategory        string `csv:"asset_category"`
	Sector               string `csv:"sector"`
	GeographicRegion     string `csv:"geographic_region"`
	AllocationPercentage string `csv:"allocation_percentage"`
	DollarAmount         string `csv:"dollar_amount"`
	Shares               string `csv:"shares"`
	AvgPurchasePrice     string `csv:"avg_purchase_price"`
	RiskRating           string `csv:"risk_rating"`
}

type Portfolio struct {
	Name       string                  `json:"name"`
	Currency   string                  `json:"currency"`
	TotalValue decimal.Decimal         `json:"totalValue"`
	Assets     []domain.PortfolioAsset `json:"assets"`
	// cells that could not be parsed
	Findings domain.Findings `json:"findings"`
}

// ParseAssetsCSV reads one asset per row. Currency defaults to USD and
// the total value to the sum of the dollar amounts.
func ParseAssetsCSV(r io.Reader) (*Portfolio, error) {
	rows := []assetRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio csv: %w", err)
	}

	out := &Portfolio{
		Currency: DefaultCurrency,
		Assets:   []domain.PortfolioAsset{},
		Findings: domain.Findings{},
	}
	for i, row := range rows {
		asset, findings := row.toAsset(i)
		out.Assets = append(out.Assets, asset)
		out.Findings = append(out.Findings, findings...)
	}
	out.TotalValue = domain.SumDollarAmounts(out.Assets)

	return out, nil
}

func (r assetRow) toAsset(index int) (domain.PortfolioAsset, domain.Findings) {
	findings := domain.Findings{}
	unparseable := func(field string, value string, expected string) {
		findings = append(findings, domain.Finding{
			Kind:        domain.FindingKind_OutOfRangeField,
			Severity:    domain.FindingSeverity_Error,
			Message:     fmt.Sprintf("asset %d: %s %q is not %s", index, field, value, expected),
			Field:       util.StringPointer(field),
			AssetIndex:  util.IntPointer(index),
			ActualValue: util.StringPointer(value),
			Expected:    util.StringPointer(expected),
		})
	}

	asset := domain.PortfolioAsset{
		Symbol:           strings.TrimSpace(r.Symbol),
		Name:             strings.TrimSpace(r.Name),
		AssetType:        domain.AssetType(strings.ToLower(strings.TrimSpace(r.AssetType))),
		AssetCategory:    domain.AssetCategory(strings.TrimSpace(r.AssetCategory)),
		Sector:           strings.TrimSpace(r.Sector),
		GeographicRegion: domain.GeographicRegion(strings.TrimSpace(r.GeographicRegion)),
	}

	if v := strings.TrimSpace(r.AllocationPercentage); v != "" {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			unparseable("allocationPercentage", v, "a number")
		} else {
			asset.AllocationPercentage = f
		}
	}

	decimalCell := func(field string, value string) *decimal.Decimal {
		value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
		if value == "" {
			return nil
		}
		d, err := decimal.NewFromString(strings.TrimPrefix(value, "$"))
		if err != nil {
			unparseable(field, value, "a decimal amount")
			return nil
		}
		return &d
	}
	if d := decimalCell("dollarAmount", r.DollarAmount); d != nil {
		asset.DollarAmount = *d
	}
	asset.Shares = decimalCell("shares", r.Shares)
	asset.AvgPurchasePrice = decimalCell("avgPurchasePrice", r.AvgPurchasePrice)

	if v := strings.TrimSpace(r.RiskRating); v != "" {
		rating, err := strconv.Atoi(v)
		if err != nil {
			unparseable("riskRating", v, "an integer")
		} else {
			asset.RiskRating = &rating
		}
	}

	return asset, findings
}

// ParseJSON reads a portfolio object with name, currency, totalValue and
// assets. Currency and total value default the same way as csv.
func ParseJSON(r io.Reader) (*Portfolio, error) {
	out := &Portfolio{}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio json: %w", err)
	}
	if out.Currency == "" {
		out.Currency = DefaultCurrency
	}
	if out.Assets == nil {
		out.Assets = []domain.PortfolioAsset{}
	}
	// omitted total means "whatever the holdings add up to"
	if out.TotalValue.IsZero() {
		out.TotalValue = domain.SumDollarAmounts(out.Assets)
	}
	out.Findings = domain.Findings{}
	return out, nil
}

// ReadFile picks the parser from the extension; anything not ending in
// .json is read as csv
func ReadFile(path string) (*Portfolio, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file: %w", err)
	}

	var out *Portfolio
	if strings.EqualFold(filepath.Ext(path), ".json") {
		out, err = ParseJSON(bytes.NewReader(content))
	} else {
		out, err = ParseAssetsCSV(bytes.NewReader(content))
	}
	if err != nil {
		return nil, err
	}

	if out.Name == "" {
		out.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return out, nil
}

// MergeFindings returns the parse findings followed by the validator's.
// Validator findings about a row that already failed to parse are left
// out, since they describe the zero value standing in for the bad cell.
// Portfolio level findings are always kept.
func (p Portfolio) MergeFindings(validated domain.Findings) domain.Findings {
	unparsedRows := map[int]bool{}
	for _, f := range p.Findings {
		if f.AssetIndex != nil {
			unparsedRows[*f.AssetIndex] = true
		}
	}

	out := append(domain.Findings{}, p.Findings...)
	for _, f := range validated {
		if f.AssetIndex != nil && unparsedRows[*f.AssetIndex] {
			continue
		}
		out = append(out, f)
	}
	return out
}
