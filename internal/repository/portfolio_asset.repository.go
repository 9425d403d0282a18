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

type PortfolioAssetRepository interface {
	// ListByPortfolio returns assets grouped by portfolio in submission order
	ListByPortfolio(tx *sql.Tx, portfolioIDs []uuid.UUID) (map[uuid.UUID][]model.PortfolioAsset, error)
	// ReplaceAll swaps the whole asset set of a portfolio. Callers should
	// pass a tx so the delete and insert commit together.
	ReplaceAll(tx *sql.Tx, portfolioID uuid.UUID, assets []model.PortfolioAsset) ([]model.PortfolioAsset, error)
}

type portfolioAssetRepositoryHandler struct {
	Db *sql.DB
}

func NewPortfolioAssetRepository(db *sql.DB) PortfolioAssetRepository {
	return portfolioAssetRepositoryHandler{Db: db}
}

func (h portfolioAssetRepositoryHandler) ListByPortfolio(tx *sql.Tx, portfolioIDs []uuid.UUID) (map[uuid.UUID][]model.PortfolioAsset, error) {
	out := map[uuid.UUID][]model.PortfolioAsset{}
	if len(portfolioIDs) == 0 {
		return out, nil
	}

	ids := []postgres.Expression{}
	for _, id := range portfolioIDs {
		ids = append(ids, postgres.UUID(id))
	}
	query := table.PortfolioAsset.
		SELECT(table.PortfolioAsset.AllColumns).
		WHERE(table.PortfolioAsset.PortfolioID.IN(ids...)).
		ORDER_BY(
			table.PortfolioAsset.PortfolioID.ASC(),
			table.PortfolioAsset.Position.ASC(),
		)

	db := queryable(h.Db, tx)
	result := []model.PortfolioAsset{}
	err := query.Query(db, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio assets: %w", err)
	}

	for _, a := range result {
		out[a.PortfolioID] = append(out[a.PortfolioID], a)
	}

	return out, nil
}

func (h portfolioAssetRepositoryHandler) ReplaceAll(tx *sql.Tx, portfolioID uuid.UUID, assets []model.PortfolioAsset) ([]model.PortfolioAsset, error) {
	db := queryable(h.Db, tx)

	deleteQuery := table.PortfolioAsset.
		DELETE().
		WHERE(table.PortfolioAsset.PortfolioID.EQ(postgres.UUID(portfolioID)))
	if _, err := deleteQuery.Exec(db); err != nil {
		return nil, fmt.Errorf("failed to delete assets of portfolio %s: %w", portfolioID, err)
	}

	if len(assets) == 0 {
		return []model.PortfolioAsset{}, nil
	}

	now := time.Now().UTC()
	for i := range assets {
		assets[i].PortfolioID = portfolioID
		assets[i].Position = int32(i)
		assets[i].CreatedAt = now
	}

	insertQuery := table.PortfolioAsset.
		INSERT(table.PortfolioAsset.MutableColumns).
		MODELS(assets).
		RETURNING(table.PortfolioAsset.AllColumns)

	out := []model.PortfolioAsset{}
	err := insertQuery.Query(db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert assets of portfolio %s: %w", portfolioID, err)
	}

	return out, nil
}
