package l1_service

import (
	"errors"
	"fmt"
	"math"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/util"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var symbolRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

type ValidateInput struct {
	Assets []domain.PortfolioAsset
	// declared portfolio total, compared against the sum of dollar amounts
	TotalValue decimal.Decimal
	// optional ISO 4217 code
	Currency string
}

// AllocationValidator checks a candidate holding set for internal
// consistency. It never fails; every problem comes back as a finding so
// the caller can decide what blocks a save.
type AllocationValidator interface {
	Validate(input ValidateInput) domain.Findings
}

type allocationValidatorHandler struct {
	structValidator *validator.Validate
}

func NewAllocationValidator() AllocationValidator {
	v := validator.New()
	// report json names ("assetType") instead of go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return allocationValidatorHandler{
		structValidator: v,
	}
}

func (h allocationValidatorHandler) Validate(input ValidateInput) domain.Findings {
	findings := domain.Findings{}

	// structurally broken assets are excluded from per-asset checks
	structurallyValid := make([]bool, len(input.Assets))
	for i, asset := range input.Assets {
		missing := h.missingRequiredFields(i, asset)
		findings = append(findings, missing...)
		structurallyValid[i] = len(missing) == 0
	}

	if len(input.Assets) < domain.MinPortfolioAssets {
		findings = append(findings, domain.Finding{
			Kind:         domain.FindingKind_CardinalityViolation,
			Severity:     domain.FindingSeverity_Error,
			Message:      "portfolio must contain at least one asset",
			Field:        util.StringPointer("assets"),
			ActualNumber: util.FloatPointer(0),
			Expected:     util.StringPointer(fmt.Sprintf("between %d and %d assets", domain.MinPortfolioAssets, domain.MaxPortfolioAssets)),
		})
		return findings
	}
	if len(input.Assets) > domain.MaxPortfolioAssets {
		findings = append(findings, domain.Finding{
			Kind:         domain.FindingKind_CardinalityViolation,
			Severity:     domain.FindingSeverity_Error,
			Message:      fmt.Sprintf("portfolio has %d assets, at most %d are allowed", len(input.Assets), domain.MaxPortfolioAssets),
			Field:        util.StringPointer("assets"),
			ActualNumber: util.FloatPointer(float64(len(input.Assets))),
			Expected:     util.StringPointer(fmt.Sprintf("between %d and %d assets", domain.MinPortfolioAssets, domain.MaxPortfolioAssets)),
			SuggestedFix: util.StringPointer("combine or remove smaller holdings"),
		})
	}

	for i, asset := range input.Assets {
		if !structurallyValid[i] {
			continue
		}
		findings = append(findings, checkAssetFields(i, asset)...)
	}

	findings = append(findings, checkDuplicateSymbols(input.Assets)...)
	findings = append(findings, checkAllocationSum(input.Assets)...)
	findings = append(findings, checkDollarConsistency(input.Assets, input.TotalValue)...)
	findings = append(findings, checkCurrency(input.Currency)...)

	return findings
}

func (h allocationValidatorHandler) missingRequiredFields(index int, asset domain.PortfolioAsset) domain.Findings {
	err := h.structValidator.Struct(asset)
	if err == nil {
		return nil
	}

	findings := domain.Findings{}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// only happens for invalid validator usage, surface it as a
		// generic structural failure rather than dropping it
		return domain.Findings{{
			Kind:       domain.FindingKind_MissingRequiredField,
			Severity:   domain.FindingSeverity_Error,
			Message:    fmt.Sprintf("asset %d could not be validated: %s", index, err.Error()),
			AssetIndex: util.IntPointer(index),
		}}
	}

	for _, fe := range validationErrors {
		findings = append(findings, domain.Finding{
			Kind:         domain.FindingKind_MissingRequiredField,
			Severity:     domain.FindingSeverity_Error,
			Message:      fmt.Sprintf("asset %d is missing required field %s", index, fe.Field()),
			Field:        util.StringPointer(fe.Field()),
			AssetIndex:   util.IntPointer(index),
			SuggestedFix: util.StringPointer(fmt.Sprintf("provide a value for %s", fe.Field())),
		})
	}
	return findings
}

func checkAssetFields(index int, asset domain.PortfolioAsset) domain.Findings {
	findings := domain.Findings{}

	if !symbolRegex.MatchString(asset.Symbol) {
		findings = append(findings, domain.Finding{
			Kind:         domain.FindingKind_InvalidSymbolFormat,
			Severity:     domain.FindingSeverity_Error,
			Message:      fmt.Sprintf("symbol %q must be 1-20 letters or digits", asset.Symbol),
			Field:        util.StringPointer("symbol"),
			AssetIndex:   util.IntPointer(index),
			ActualValue:  util.StringPointer(asset.Symbol),
			Expected:     util.StringPointer(symbolRegex.String()),
			SuggestedFix: util.StringPointer("remove spaces and punctuation from the symbol"),
		})
	}

	if !asset.AssetType.IsValid() {
		allowed := []string{}
		for _, t := range domain.AllAssetTypes {
			allowed = append(allowed, string(t))
		}
		findings = append(findings, domain.Finding{
			Kind:         domain.FindingKind_UnsupportedAssetType,
			Severity:     domain.FindingSeverity_Error,
			Message:      fmt.Sprintf("assetType %q is not supported", asset.AssetType),
			Field:        util.StringPointer("assetType"),
			AssetIndex:   util.IntPointer(index),
			ActualValue:  util.StringPointer(string(asset.AssetType)),
			Expected:     util.StringPointer("one of " + strings.Join(allowed, ", ")),
			SuggestedFix: util.StringPointer("use one of " + strings.Join(allowed, ", ")),
		})
	}

	if asset.GeographicRegion != "" && !asset.GeographicRegion.IsValid() {
		allowed := []string{}
		for _, r := range domain.AllGeographicRegions {
			allowed = append(allowed, string(r))
		}
		findings = append(findings, outOfRange(
			index,
			"geographicRegion",
			string(asset.GeographicRegion),
			nil,
			"one of "+strings.Join(allowed, ", "),
		))
	}

	if asset.AllocationPercentage <= 0 || asset.AllocationPercentage > 100 {
		findings = append(findings, outOfRange(
			index,
			"allocationPercentage",
			fmt.Sprintf("%v", asset.AllocationPercentage),
			util.FloatPointer(asset.AllocationPercentage),
			"greater than 0 and at most 100",
		))
	}

	if asset.DollarAmount.IsNegative() {
		findings = append(findings, outOfRange(
			index,
			"dollarAmount",
			asset.DollarAmount.String(),
			util.FloatPointer(asset.DollarAmount.InexactFloat64()),
			"at least 0",
		))
	}

	if asset.RiskRating != nil && (*asset.RiskRating < 1 || *asset.RiskRating > 10) {
		findings = append(findings, outOfRange(
			index,
			"riskRating",
			fmt.Sprintf("%d", *asset.RiskRating),
			util.FloatPointer(float64(*asset.RiskRating)),
			"between 1 and 10",
		))
	}

	return findings
}

func outOfRange(index int, field string, actual string, actualNumber *float64, expected string) domain.Finding {
	return domain.Finding{
		Kind:         domain.FindingKind_OutOfRangeField,
		Severity:     domain.FindingSeverity_Error,
		Message:      fmt.Sprintf("asset %d: %s is %s, expected %s", index, field, actual, expected),
		Field:        util.StringPointer(field),
		AssetIndex:   util.IntPointer(index),
		ActualValue:  util.StringPointer(actual),
		ActualNumber: actualNumber,
		Expected:     util.StringPointer(expected),
	}
}

// checkDuplicateSymbols emits one finding per duplicate pair, so three
// copies of a symbol produce three findings
func checkDuplicateSymbols(assets []domain.PortfolioAsset) domain.Findings {
	findings := domain.Findings{}
	for i := 0; i < len(assets); i++ {
		a := domain.NormalizeSymbol(assets[i].Symbol)
		if a == "" {
			continue
		}
		for j := i + 1; j < len(assets); j++ {
			if domain.NormalizeSymbol(assets[j].Symbol) != a {
				continue
			}
			findings = append(findings, domain.Finding{
				Kind:         domain.FindingKind_DuplicateSymbol,
				Severity:     domain.FindingSeverity_Error,
				Message:      fmt.Sprintf("symbol %s appears at asset %d and asset %d", a, i, j),
				Field:        util.StringPointer("symbol"),
				AssetIndex:   util.IntPointer(j),
				RelatedIndex: util.IntPointer(i),
				ActualValue:  util.StringPointer(assets[j].Symbol),
				SuggestedFix: util.StringPointer("merge the two holdings into one"),
			})
		}
	}
	return findings
}

func checkAllocationSum(assets []domain.PortfolioAsset) domain.Findings {
	sum := domain.SumAllocations(assets)
	// small epsilon so float noise at the boundary is not reported
	if math.Abs(sum-100) <= domain.ConsistencyTolerance+1e-9 {
		return nil
	}
	return domain.Findings{{
		Kind:         domain.FindingKind_InvalidAllocationSum,
		Severity:     domain.FindingSeverity_Error,
		Message:      fmt.Sprintf("allocation percentages sum to %.2f%%, expected 100%% (±%.2f)", sum, domain.ConsistencyTolerance),
		Field:        util.StringPointer("allocationPercentage"),
		ActualValue:  util.StringPointer(fmt.Sprintf("%.2f", sum)),
		ActualNumber: util.FloatPointer(sum),
		Expected:     util.StringPointer("100"),
		SuggestedFix: util.StringPointer(fmt.Sprintf("adjust allocations by %.2f percentage points", 100-sum)),
	}}
}

func checkDollarConsistency(assets []domain.PortfolioAsset, totalValue decimal.Decimal) domain.Findings {
	sum := domain.SumDollarAmounts(assets)
	diff := sum.Sub(totalValue).Abs()
	if diff.LessThanOrEqual(decimal.NewFromFloat(domain.ConsistencyTolerance)) {
		return nil
	}
	return domain.Findings{{
		Kind:         domain.FindingKind_InvalidDollarConsistency,
		Severity:     domain.FindingSeverity_Error,
		Message:      fmt.Sprintf("dollar amounts sum to %s, declared total value is %s", sum.StringFixed(2), totalValue.StringFixed(2)),
		Field:        util.StringPointer("dollarAmount"),
		ActualValue:  util.StringPointer(sum.StringFixed(2)),
		ActualNumber: util.FloatPointer(sum.InexactFloat64()),
		Expected:     util.StringPointer(totalValue.StringFixed(2)),
		SuggestedFix: util.StringPointer("update the total value or the holdings so they agree"),
	}}
}

func checkCurrency(currency string) domain.Findings {
	if currency == "" || util.IsSupportedCurrency(currency) {
		return nil
	}
	return domain.Findings{{
		Kind:        domain.FindingKind_UnsupportedCurrency,
		Severity:    domain.FindingSeverity_Error,
		Message:     fmt.Sprintf("currency %q is not a supported ISO 4217 code", currency),
		Field:       util.StringPointer("currency"),
		ActualValue: util.StringPointer(currency),
		Expected:    util.StringPointer("ISO 4217 code, e.g. USD"),
	}}
}
