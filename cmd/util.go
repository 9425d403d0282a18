package cmd

import (
	"database/sql"
	"fmt"
	"portfolioanalyzer/api"
	"portfolioanalyzer/internal/catalog"
	"portfolioanalyzer/internal/repository"
	l1_service "portfolioanalyzer/internal/service/l1"
	l2_service "portfolioanalyzer/internal/service/l2"
	l3_service "portfolioanalyzer/internal/service/l3"
	"portfolioanalyzer/internal/util"

	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

type Dependencies struct {
	ApiHandler   *api.ApiHandler
	CatalogStore *catalog.Store
	Secrets      *util.Secrets
}

func CloseDependencies(deps *Dependencies) {
	if err := deps.ApiHandler.Db.Close(); err != nil {
		zap.S().Errorw("failed to close db", "error", err)
	}
}

// LoadCatalog returns the built-in catalog, with the overrides csv applied
// when a path is given
func LoadCatalog(overridesPath string) (*catalog.Catalog, error) {
	c := catalog.Default()
	if overridesPath == "" {
		return c, nil
	}
	return catalog.LoadOverridesFile(c, overridesPath)
}

// ReloadCatalog re-reads the overrides file and swaps it in. On failure
// the catalog in use is kept.
func ReloadCatalog(store *catalog.Store, overridesPath string) error {
	c, err := LoadCatalog(overridesPath)
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	if err := store.Swap(c); err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	zap.S().Infow("reloaded scenario catalog", "version", c.Version())
	return nil
}

// NewEngine builds the db-free part of the service: validator, scorer and
// scenario engine over the given catalog
func NewEngine(c *catalog.Catalog) (*catalog.Store, l1_service.AllocationValidator, l1_service.RiskScorer, l2_service.ScenarioImpactService, error) {
	store, err := catalog.NewStore(c)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	riskScorer := l1_service.NewRiskScorer()
	return store, l1_service.NewAllocationValidator(), riskScorer, l2_service.NewScenarioImpactService(store, riskScorer), nil
}

func InitializeDependencies() (*Dependencies, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	c, err := LoadCatalog(secrets.CatalogOverridesPath)
	if err != nil {
		return nil, err
	}
	catalogStore, allocationValidator, riskScorer, scenarioImpactService, err := NewEngine(c)
	if err != nil {
		return nil, err
	}

	portfolioService := l3_service.NewPortfolioService(
		repository.NewTransactor(dbConn),
		repository.NewPortfolioRepository(dbConn),
		repository.NewPortfolioAssetRepository(dbConn),
		repository.NewScenarioAnalysisRepository(dbConn),
		allocationValidator,
		riskScorer,
		scenarioImpactService,
	)

	apiHandler := &api.ApiHandler{
		Db:                    dbConn,
		ApiRequestRepository:  repository.NewApiRequestRepository(dbConn),
		PortfolioService:      portfolioService,
		ScenarioImpactService: scenarioImpactService,
		JwtDecodeToken:        secrets.Jwt,
	}

	zap.S().Infow("initialized dependencies", "catalogVersion", c.Version(), "port", secrets.Port)

	return &Dependencies{
		ApiHandler:   apiHandler,
		CatalogStore: catalogStore,
		Secrets:      secrets,
	}, nil
}
