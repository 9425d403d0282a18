package l3_service

import (
	"encoding/json"
	"fmt"
	"portfolioanalyzer/internal/db/models/postgres/public/model"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/util"
)

func portfolioFromModel(p model.Portfolio, assets []model.PortfolioAsset) (*domain.Portfolio, error) {
	out := &domain.Portfolio{
		PortfolioID:   p.PortfolioID,
		UserAccountID: p.UserAccountID,
		Name:          p.Name,
		Description:   p.Description,
		Currency:      p.Currency,
		TotalValue:    p.TotalValue,
		Assets:        []domain.PortfolioAsset{},
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, a := range assets {
		out.Assets = append(out.Assets, assetFromModel(a))
	}

	if p.RiskProfile != nil {
		profile := domain.RiskProfile{}
		if err := json.Unmarshal([]byte(*p.RiskProfile), &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal risk profile of portfolio %s: %w", p.PortfolioID, err)
		}
		out.RiskProfile = &profile
	}

	return out, nil
}

func assetFromModel(a model.PortfolioAsset) domain.PortfolioAsset {
	out := domain.PortfolioAsset{
		Symbol:               a.Symbol,
		Name:                 a.Name,
		AssetType:            domain.AssetType(a.AssetType),
		AllocationPercentage: a.AllocationPercentage,
		DollarAmount:         a.DollarAmount,
		Shares:               a.Shares,
		AvgPurchasePrice:     a.AvgPurchasePrice,
	}
	if a.AssetCategory != nil {
		out.AssetCategory = domain.AssetCategory(*a.AssetCategory)
	}
	if a.Sector != nil {
		out.Sector = *a.Sector
	}
	if a.GeographicRegion != nil {
		out.GeographicRegion = domain.GeographicRegion(*a.GeographicRegion)
	}
	if a.RiskRating != nil {
		out.RiskRating = util.IntPointer(int(*a.RiskRating))
	}
	return out
}

func assetToModel(a domain.PortfolioAsset) model.PortfolioAsset {
	out := model.PortfolioAsset{
		Symbol:               a.Symbol,
		Name:                 a.Name,
		AssetType:            string(a.AssetType),
		AllocationPercentage: a.AllocationPercentage,
		DollarAmount:         a.DollarAmount,
		Shares:               a.Shares,
		AvgPurchasePrice:     a.AvgPurchasePrice,
	}
	if a.AssetCategory != "" {
		out.AssetCategory = util.StringPointer(string(a.AssetCategory))
	}
	if a.Sector != "" {
		out.Sector = util.StringPointer(a.Sector)
	}
	if a.GeographicRegion != "" {
		out.GeographicRegion = util.StringPointer(string(a.GeographicRegion))
	}
	if a.RiskRating != nil {
		rating := int32(*a.RiskRating)
		out.RiskRating = &rating
	}
	return out
}

func assetsToModel(assets []domain.PortfolioAsset) []model.PortfolioAsset {
	out := make([]model.PortfolioAsset, 0, len(assets))
	for _, a := range assets {
		out = append(out, assetToModel(a))
	}
	return out
}

func riskProfileToJson(profile domain.RiskProfile) (*string, error) {
	bytes, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal risk profile: %w", err)
	}
	return util.StringPointer(string(bytes)), nil
}

func analysisToModel(portfolio domain.Portfolio, result domain.ScenarioAnalysisResult) (*model.ScenarioAnalysis, error) {
	bytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario analysis: %w", err)
	}
	return &model.ScenarioAnalysis{
		PortfolioID:           portfolio.PortfolioID,
		ScenarioID:            string(result.ScenarioID),
		CatalogVersion:        result.CatalogVersion,
		TotalImpactPercentage: result.TotalImpactPercentage,
		TotalImpactDollar:     result.TotalImpactDollar,
		ConfidenceScore:       result.ConfidenceScore,
		Result:                string(bytes),
	}, nil
}

func analysisFromModel(sa model.ScenarioAnalysis) (*domain.ScenarioAnalysisResult, error) {
	out := domain.ScenarioAnalysisResult{}
	if err := json.Unmarshal([]byte(sa.Result), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario analysis %s: %w", sa.ScenarioAnalysisID, err)
	}
	return &out, nil
}
