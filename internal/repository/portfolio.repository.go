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

type PortfolioRepository interface {
	Add(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error)
	Get(tx *sql.Tx, id uuid.UUID) (*model.Portfolio, error)
	List(tx *sql.Tx, filter PortfolioListFilter) ([]model.Portfolio, error)
	Update(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error)
	Delete(tx *sql.Tx, id uuid.UUID) error
}

type portfolioRepositoryHandler struct {
	Db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return portfolioRepositoryHandler{Db: db}
}

func (h portfolioRepositoryHandler) Add(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	query := table.Portfolio.
		INSERT(table.Portfolio.MutableColumns).
		MODEL(p).
		RETURNING(table.Portfolio.AllColumns)

	out := model.Portfolio{}
	err := query.Query(queryable(h.Db, tx), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return &out, nil
}

// Get wraps qrm.ErrNoRows when the portfolio does not exist
func (h portfolioRepositoryHandler) Get(tx *sql.Tx, id uuid.UUID) (*model.Portfolio, error) {
	query := table.Portfolio.
		SELECT(table.Portfolio.AllColumns).
		WHERE(table.Portfolio.PortfolioID.EQ(postgres.UUID(id)))

	result := model.Portfolio{}
	err := query.Query(queryable(h.Db, tx), &result)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio %s: %w", id, err)
	}

	return &result, nil
}

type PortfolioListFilter struct {
	UserAccountIDs []uuid.UUID
}

func (h portfolioRepositoryHandler) List(tx *sql.Tx, filter PortfolioListFilter) ([]model.Portfolio, error) {
	query := table.Portfolio.
		SELECT(table.Portfolio.AllColumns).
		ORDER_BY(table.Portfolio.CreatedAt.DESC())

	if len(filter.UserAccountIDs) > 0 {
		ids := []postgres.Expression{}
		for _, id := range filter.UserAccountIDs {
			ids = append(ids, postgres.UUID(id))
		}
		query = query.WHERE(table.Portfolio.UserAccountID.IN(ids...))
	}

	result := []model.Portfolio{}
	err := query.Query(queryable(h.Db, tx), &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	return result, nil
}

func (h portfolioRepositoryHandler) Update(tx *sql.Tx, p model.Portfolio) (*model.Portfolio, error) {
	p.UpdatedAt = time.Now().UTC()
	query := table.Portfolio.
		UPDATE(
			table.Portfolio.Name,
			table.Portfolio.Description,
			table.Portfolio.Currency,
			table.Portfolio.TotalValue,
			table.Portfolio.RiskProfile,
			table.Portfolio.UpdatedAt,
		).
		MODEL(p).
		WHERE(table.Portfolio.PortfolioID.EQ(postgres.UUID(p.PortfolioID))).
		RETURNING(table.Portfolio.AllColumns)

	out := model.Portfolio{}
	err := query.Query(queryable(h.Db, tx), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio %s: %w", p.PortfolioID, err)
	}

	return &out, nil
}

// Delete removes the portfolio; assets and analyses cascade
func (h portfolioRepositoryHandler) Delete(tx *sql.Tx, id uuid.UUID) error {
	query := table.Portfolio.
		DELETE().
		WHERE(table.Portfolio.PortfolioID.EQ(postgres.UUID(id)))

	_, err := query.Exec(queryable(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to delete portfolio %s: %w", id, err)
	}

	return nil
}
