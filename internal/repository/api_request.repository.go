package repository

import (
	"database/sql"
	"fmt"

	"portfolioanalyzer/internal/db/models/postgres/public/model"
	"portfolioanalyzer/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
)

// ApiRequestRepository records every http request. The row is written
// before the handler runs and completed with the response afterwards.
type ApiRequestRepository interface {
	Add(tx *sql.Tx, ar model.APIRequest) (*model.APIRequest, error)
	Complete(tx *sql.Tx, ar model.APIRequest) error
}

type apiRequestRepositoryHandler struct {
	Db *sql.DB
}

func NewApiRequestRepository(db *sql.DB) ApiRequestRepository {
	return apiRequestRepositoryHandler{Db: db}
}

func (h apiRequestRepositoryHandler) Add(tx *sql.Tx, ar model.APIRequest) (*model.APIRequest, error) {
	query := table.APIRequest.
		INSERT(table.APIRequest.MutableColumns).
		MODEL(ar).
		RETURNING(table.APIRequest.AllColumns)

	out := model.APIRequest{}
	err := query.Query(queryable(h.Db, tx), &out)
	if err != nil {
		return nil, fmt.Errorf("failed to record api request %s %s: %w", ar.Method, ar.Route, err)
	}

	return &out, nil
}

// Complete fills in the caller and response columns; the request side is
// left as Add wrote it
func (h apiRequestRepositoryHandler) Complete(tx *sql.Tx, ar model.APIRequest) error {
	query := table.APIRequest.
		UPDATE(
			table.APIRequest.UserAccountID,
			table.APIRequest.DurationMs,
			table.APIRequest.StatusCode,
			table.APIRequest.ResponseBody,
		).
		MODEL(ar).
		WHERE(table.APIRequest.RequestID.EQ(postgres.UUID(ar.RequestID)))

	_, err := query.Exec(queryable(h.Db, tx))
	if err != nil {
		return fmt.Errorf("failed to complete api request %s: %w", ar.RequestID, err)
	}

	return nil
}
