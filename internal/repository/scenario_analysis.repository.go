package repository

import (
	"database/sql"
	"fmt"
	"time"

	"portfolioanalyzer/internal/db/models/postgres/public/model"
	"portfolioanalyzer/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

type ScenarioAnalysisRepository interface {
	Add(tx *sql.Tx, sa model.ScenarioAnalysis) (*model.ScenarioAnalysis, error)
	ListByPortfolio(portfolioID uuid.UUID, limit int64) ([]model.ScenarioAnalysis, error)
}

type scenarioAnalysisRepositoryHandler struct {
	Db *sql.DB
}

func NewScenarioAnalysisRepository(db *sql.DB) ScenarioAnalysisRepository {
	return scenarioAnalysisRepositoryHandler{Db: db}
}

func (h scenarioAnalysisRepositoryHandler) Add(tx *sql.Tx, sa model.ScenarioAnalysis) (*model.ScenarioAnalysis, error) {
	sa.CreatedAt = time.Now().UTC()
	query := table.ScenarioAnalysis.
		INSERT(table.ScenarioAnalysis.MutableColumns).
		MODEL(sa).
		RETURNING(table.ScenarioAnalysis.AllColumns)

	db := queryable(h.Db, tx)
	out := model.ScenarioAnalysis{}
	err := query.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert scenario analysis: %w", err)
	}

	return &out, nil
}

// ListByPortfolio returns the most recent analyses first
func (h scenarioAnalysisRepositoryHandler) ListByPortfolio(portfolioID uuid.UUID, limit int64) ([]model.ScenarioAnalysis, error) {
	query := table.ScenarioAnalysis.
		SELECT(table.ScenarioAnalysis.AllColumns).
		WHERE(table.ScenarioAnalysis.PortfolioID.EQ(postgres.UUID(portfolioID))).
		ORDER_BY(table.ScenarioAnalysis.CreatedAt.DESC())
	if limit > 0 {
		query = query.LIMIT(limit)
	}

	result := []model.ScenarioAnalysis{}
	err := query.Query(h.Db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario analyses: %w", err)
	}

	return result, nil
}
