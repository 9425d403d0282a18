package l3_service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"portfolioanalyzer/internal/db/models/postgres/public/model"
	"portfolioanalyzer/internal/domain"
	"portfolioanalyzer/internal/logger"
	"portfolioanalyzer/internal/metrics"
	"portfolioanalyzer/internal/repository"
	l1_service "portfolioanalyzer/internal/service/l1"
	l2_service "portfolioanalyzer/internal/service/l2"
	"strings"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrPortfolioNotFound = errors.New("portfolio not found")

// ValidationError is returned by writes when the validator reports at
// least one error-severity finding. Findings holds the full list,
// warnings included.
type ValidationError struct {
	Findings domain.Findings
}

func (e ValidationError) Error() string {
	blocking := []string{}
	for _, f := range e.Findings {
		if f.Severity == domain.FindingSeverity_Error {
			blocking = append(blocking, f.Kind.String())
		}
	}
	return fmt.Sprintf("portfolio failed validation: %s", strings.Join(blocking, ", "))
}

const defaultAnalysesLimit = 20

type PortfolioInput struct {
	Name        string
	Description *string
	Currency    string
	TotalValue  decimal.Decimal
	Assets      []domain.PortfolioAsset
}

type ValidatePortfolioResult struct {
	Findings domain.Findings `json:"findings"`
	// only computed when nothing blocks
	RiskProfile *domain.RiskProfile `json:"riskProfile,omitempty"`
}

type SavePortfolioResult struct {
	Portfolio domain.Portfolio `json:"portfolio"`
	// non-blocking validator findings
	Findings domain.Findings `json:"findings"`
}

type PortfolioService interface {
	Validate(ctx context.Context, input PortfolioInput) ValidatePortfolioResult
	Create(ctx context.Context, userAccountID uuid.UUID, input PortfolioInput) (*SavePortfolioResult, error)
	Update(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID, input PortfolioInput) (*SavePortfolioResult, error)
	Get(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID) (*domain.Portfolio, error)
	List(ctx context.Context, userAccountID uuid.UUID) ([]domain.Portfolio, error)
	Delete(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID) error
	Analyze(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID, scenarioID domain.ScenarioID) (*domain.ScenarioAnalysisResult, error)
	AnalyzeAll(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID) ([]domain.ScenarioAnalysisResult, error)
	ListAnalyses(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID, limit int64) ([]domain.ScenarioAnalysisResult, error)
}

type portfolioServiceHandler struct {
	Transactor                 repository.Transactor
	PortfolioRepository        repository.PortfolioRepository
	PortfolioAssetRepository   repository.PortfolioAssetRepository
	ScenarioAnalysisRepository repository.ScenarioAnalysisRepository
	AllocationValidator        l1_service.AllocationValidator
	RiskScorer                 l1_service.RiskScorer
	ScenarioImpactService      l2_service.ScenarioImpactService
}

func NewPortfolioService(
	transactor repository.Transactor,
	portfolioRepository repository.PortfolioRepository,
	portfolioAssetRepository repository.PortfolioAssetRepository,
	scenarioAnalysisRepository repository.ScenarioAnalysisRepository,
	allocationValidator l1_service.AllocationValidator,
	riskScorer l1_service.RiskScorer,
	scenarioImpactService l2_service.ScenarioImpactService,
) PortfolioService {
	return portfolioServiceHandler{
		Transactor:                 transactor,
		PortfolioRepository:        portfolioRepository,
		PortfolioAssetRepository:   portfolioAssetRepository,
		ScenarioAnalysisRepository: scenarioAnalysisRepository,
		AllocationValidator:        allocationValidator,
		RiskScorer:                 riskScorer,
		ScenarioImpactService:      scenarioImpactService,
	}
}

func (h portfolioServiceHandler) Validate(ctx context.Context, input PortfolioInput) ValidatePortfolioResult {
	findings := h.AllocationValidator.Validate(l1_service.ValidateInput{
		Assets:     input.Assets,
		TotalValue: input.TotalValue,
		Currency:   input.Currency,
	})
	result := ValidatePortfolioResult{Findings: findings}
	if !findings.HasBlocking() {
		profile := h.RiskScorer.Score(input.Assets)
		result.RiskProfile = &profile
	}
	return result
}

// validateForWrite returns the risk profile to store alongside the
// portfolio, or a ValidationError
func (h portfolioServiceHandler) validateForWrite(ctx context.Context, input PortfolioInput) (*domain.RiskProfile, domain.Findings, error) {
	result := h.Validate(ctx, input)
	if result.RiskProfile == nil {
		metrics.ValidationRejectionsTotal.Inc()
		logger.FromContext(ctx).Infow(
			"portfolio rejected by validation",
			"findings", len(result.Findings),
			"blocking", ValidationError{Findings: result.Findings}.Error(),
		)
		return nil, nil, ValidationError{Findings: result.Findings}
	}
	return result.RiskProfile, result.Findings, nil
}

func (h portfolioServiceHandler) Create(ctx context.Context, userAccountID uuid.UUID, input PortfolioInput) (*SavePortfolioResult, error) {
	riskProfile, findings, err := h.validateForWrite(ctx, input)
	if err != nil {
		return nil, err
	}
	riskProfileJson, err := riskProfileToJson(*riskProfile)
	if err != nil {
		return nil, err
	}

	var saved *model.Portfolio
	var savedAssets []model.PortfolioAsset
	err = h.Transactor.WithTx(ctx, func(tx *sql.Tx) error {
		saved, err = h.PortfolioRepository.Add(tx, model.Portfolio{
			UserAccountID: userAccountID,
			Name:          input.Name,
			Description:   input.Description,
			Currency:      strings.ToUpper(strings.TrimSpace(input.Currency)),
			TotalValue:    input.TotalValue,
			RiskProfile:   riskProfileJson,
		})
		if err != nil {
			return err
		}
		savedAssets, err = h.PortfolioAssetRepository.ReplaceAll(tx, saved.PortfolioID, assetsToModel(input.Assets))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	portfolio, err := portfolioFromModel(*saved, savedAssets)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infow("created portfolio", "portfolioID", portfolio.PortfolioID, "assets", len(portfolio.Assets))

	return &SavePortfolioResult{
		Portfolio: *portfolio,
		Findings:  findings,
	}, nil
}

func (h portfolioServiceHandler) Update(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID, input PortfolioInput) (*SavePortfolioResult, error) {
	riskProfile, findings, err := h.validateForWrite(ctx, input)
	if err != nil {
		return nil, err
	}
	riskProfileJson, err := riskProfileToJson(*riskProfile)
	if err != nil {
		return nil, err
	}

	var saved *model.Portfolio
	var savedAssets []model.PortfolioAsset
	err = h.Transactor.WithTx(ctx, func(tx *sql.Tx) error {
		existing, err := h.getOwned(tx, userAccountID, portfolioID)
		if err != nil {
			return err
		}
		existing.Name = input.Name
		existing.Description = input.Description
		existing.Currency = strings.ToUpper(strings.TrimSpace(input.Currency))
		existing.TotalValue = input.TotalValue
		existing.RiskProfile = riskProfileJson

		saved, err = h.PortfolioRepository.Update(tx, *existing)
		if err != nil {
			return err
		}
		savedAssets, err = h.PortfolioAssetRepository.ReplaceAll(tx, portfolioID, assetsToModel(input.Assets))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio %s: %w", portfolioID, err)
	}

	portfolio, err := portfolioFromModel(*saved, savedAssets)
	if err != nil {
		return nil, err
	}

	return &SavePortfolioResult{
		Portfolio: *portfolio,
		Findings:  findings,
	}, nil
}

// getOwned hides portfolios of other users behind ErrPortfolioNotFound
func (h portfolioServiceHandler) getOwned(tx *sql.Tx, userAccountID uuid.UUID, portfolioID uuid.UUID) (*model.Portfolio, error) {
	p, err := h.PortfolioRepository.Get(tx, portfolioID)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, portfolioID)
	} else if err != nil {
		return nil, err
	}
	if p.UserAccountID != userAccountID {
		return nil, fmt.Errorf("%w: %s", ErrPortfolioNotFound, portfolioID)
	}
	return p, nil
}

func (h portfolioServiceHandler) Get(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID) (*domain.Portfolio, error) {
	p, err := h.getOwned(nil, userAccountID, portfolioID)
	if err != nil {
		return nil, err
	}

	assets, err := h.PortfolioAssetRepository.ListByPortfolio(nil, []uuid.UUID{portfolioID})
	if err != nil {
		return nil, err
	}

	return portfolioFromModel(*p, assets[portfolioID])
}

func (h portfolioServiceHandler) List(ctx context.Context, userAccountID uuid.UUID) ([]domain.Portfolio, error) {
	portfolios, err := h.PortfolioRepository.List(nil, repository.PortfolioListFilter{
		UserAccountIDs: []uuid.UUID{userAccountID},
	})
	if err != nil {
		return nil, err
	}

	ids := []uuid.UUID{}
	for _, p := range portfolios {
		ids = append(ids, p.PortfolioID)
	}
	assets, err := h.PortfolioAssetRepository.ListByPortfolio(nil, ids)
	if err != nil {
		return nil, err
	}

	out := []domain.Portfolio{}
	for _, p := range portfolios {
		portfolio, err := portfolioFromModel(p, assets[p.PortfolioID])
		if err != nil {
			return nil, err
		}
		out = append(out, *portfolio)
	}

	return out, nil
}

func (h portfolioServiceHandler) Delete(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID) error {
	return h.Transactor.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := h.getOwned(tx, userAccountID, portfolioID); err != nil {
			return err
		}
		return h.PortfolioRepository.Delete(tx, portfolioID)
	})
}

func (h portfolioServiceHandler) Analyze(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID, scenarioID domain.ScenarioID) (*domain.ScenarioAnalysisResult, error) {
	portfolio, err := h.Get(ctx, userAccountID, portfolioID)
	if err != nil {
		return nil, err
	}

	// holdings may have been written before a scorer change, always rescore
	riskProfile := h.RiskScorer.Score(portfolio.Assets)
	result, err := h.ScenarioImpactService.Analyze(ctx, l2_service.AnalyzeInput{
		PortfolioID: portfolio.PortfolioID.String(),
		Assets:      portfolio.Assets,
		RiskProfile: &riskProfile,
		ScenarioID:  scenarioID,
	})
	if err != nil {
		return nil, err
	}

	record, err := analysisToModel(*portfolio, *result)
	if err != nil {
		return nil, err
	}
	if _, err := h.ScenarioAnalysisRepository.Add(nil, *record); err != nil {
		return nil, err
	}

	return result, nil
}

func (h portfolioServiceHandler) AnalyzeAll(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID) ([]domain.ScenarioAnalysisResult, error) {
	portfolio, err := h.Get(ctx, userAccountID, portfolioID)
	if err != nil {
		return nil, err
	}

	riskProfile := h.RiskScorer.Score(portfolio.Assets)
	results, err := h.ScenarioImpactService.AnalyzeAll(ctx, l2_service.AnalyzeAllInput{
		PortfolioID: portfolio.PortfolioID.String(),
		Assets:      portfolio.Assets,
		RiskProfile: &riskProfile,
	})
	if err != nil {
		return nil, err
	}

	err = h.Transactor.WithTx(ctx, func(tx *sql.Tx) error {
		for _, result := range results {
			record, err := analysisToModel(*portfolio, result)
			if err != nil {
				return err
			}
			if _, err := h.ScenarioAnalysisRepository.Add(tx, *record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save scenario analyses: %w", err)
	}

	return results, nil
}

func (h portfolioServiceHandler) ListAnalyses(ctx context.Context, userAccountID uuid.UUID, portfolioID uuid.UUID, limit int64) ([]domain.ScenarioAnalysisResult, error) {
	if _, err := h.getOwned(nil, userAccountID, portfolioID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultAnalysesLimit
	}

	records, err := h.ScenarioAnalysisRepository.ListByPortfolio(portfolioID, limit)
	if err != nil {
		return nil, err
	}

	out := []domain.ScenarioAnalysisResult{}
	for _, r := range records {
		result, err := analysisFromModel(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *result)
	}

	return out, nil
}
